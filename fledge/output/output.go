// Package output provides beautiful, styled terminal output for CLI tools.
//
// All tools in the Firebird Suite use this package for consistent, delightful UX.
// Functions use lipgloss for styling but abstract away the details from callers.
package output

import (
	"fmt"
	"io"
	"os"
	"sync"

	"github.com/charmbracelet/lipgloss"
)

var (
	successStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("green")).Bold(true)
	errorStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("red")).Bold(true)
	warnStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("yellow"))
	infoStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("cyan"))
	stepStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("240"))

	mu          sync.Mutex
	out         io.Writer = os.Stdout
	verboseMode bool
)

// SetOutput redirects all messages to w and returns the previous writer.
// A nil w restores os.Stdout.
func SetOutput(w io.Writer) io.Writer {
	mu.Lock()
	defer mu.Unlock()

	prev := out
	if w == nil {
		w = os.Stdout
	}
	out = w
	return prev
}

// Writer returns the writer messages currently go to.
func Writer() io.Writer {
	mu.Lock()
	defer mu.Unlock()
	return out
}

// SetVerbose enables or disables verbose output for debugging.
// This should be called by the CLI when the --verbose flag is set.
func SetVerbose(v bool) {
	mu.Lock()
	defer mu.Unlock()
	verboseMode = v
}

// Success prints a success message with 🔥 emoji and green color.
// Use this for completed operations.
//
// Example:
//
//	output.Success("Auth scaffold complete")
func Success(msg string) {
	printLine(successStyle.Render("🔥 " + msg))
}

// Error prints an error message with ❌ emoji and red color.
// Use this for failures that need user attention.
func Error(msg string) {
	printLine(errorStyle.Render("❌ " + msg))
}

// Warn prints a non-fatal problem with ⚠ and yellow color.
//
// Example:
//
//	output.Warn("pnpm not found, falling back to npm")
func Warn(msg string) {
	printLine(warnStyle.Render("⚠️  " + msg))
}

// Info prints an informational message with ℹ️ emoji and cyan color.
// Use this for status updates or explanations.
func Info(msg string) {
	printLine(infoStyle.Render("ℹ️  " + msg))
}

// Step prints an indented step message in gray.
// Use this for actionable next steps or sub-items.
//
// Example:
//
//	output.Step("Database: postgresql")
//	output.Step("Package manager: pnpm")
func Step(msg string) {
	printLine(stepStyle.Render("   " + msg))
}

// Verbose prints a debug message with 🔍 emoji only if verbose mode is enabled.
func Verbose(msg string) {
	mu.Lock()
	enabled := verboseMode
	mu.Unlock()

	if enabled {
		printLine(stepStyle.Render("🔍 " + msg))
	}
}

func printLine(s string) {
	fmt.Fprintln(Writer(), s)
}
