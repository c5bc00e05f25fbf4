// Package input provides interactive terminal input utilities.
//
// # Overview
//
// Prompts read from an injectable stream, so the same code serves a real
// terminal, piped answers, and tests:
//
//	prompter := input.NewPrompter(os.Stdin, os.Stdout)
//
//	user, err := prompter.Prompt("Database user", "root")
//	password, err := prompter.PromptSecret("Database password")
//
//	if ok, _ := prompter.Confirm("Continue?", true); ok {
//	    // User said yes
//	}
//
// # Styling
//
// The package uses lipgloss for consistent terminal styling:
//   - Prompts are displayed in cyan and bold
//   - Hints (defaults, [Y/n]) are displayed in gray
//
// # Non-Interactive Mode
//
// Callers check Interactive (or IsTerminal) and skip prompts when input is
// not a terminal, falling back to flag values and defaults.
package input
