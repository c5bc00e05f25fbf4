// Package input provides interactive terminal input utilities.
//
// All tools in the Firebird Suite use this package for consistent
// user interaction when prompts are needed.
package input

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"golang.org/x/term"
)

var (
	promptStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("cyan")).Bold(true)
	hintStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("240"))
)

// Prompter reads answers from an input stream and writes prompts to an
// output stream. The zero value is not usable; use NewPrompter.
type Prompter struct {
	in     io.Reader
	reader *bufio.Reader
	out    io.Writer
}

// NewPrompter creates a prompter. A nil in or out falls back to
// os.Stdin / os.Stdout.
func NewPrompter(in io.Reader, out io.Writer) *Prompter {
	if in == nil {
		in = os.Stdin
	}
	if out == nil {
		out = os.Stdout
	}
	return &Prompter{in: in, reader: bufio.NewReader(in), out: out}
}

// Interactive reports whether the input stream is a terminal.
func (p *Prompter) Interactive() bool {
	return IsTerminal(p.in)
}

// Prompt asks the user for text input with an optional default value.
// If the user presses Enter without typing anything, the default is returned.
// A closed input stream also yields the default.
//
// Example:
//
//	user, err := prompter.Prompt("Database user", "root")
//	// Displays: Database user (root): _
func (p *Prompter) Prompt(message, defaultValue string) (string, error) {
	p.printPrompt(message, defaultValue)

	answer, err := p.readLine()
	if err != nil {
		return "", err
	}
	if answer == "" {
		return defaultValue, nil
	}
	return answer, nil
}

// PromptSecret asks for a value without echoing it when the input is a
// terminal. Empty input returns "". Surrounding spaces are kept.
func (p *Prompter) PromptSecret(message string) (string, error) {
	p.printPrompt(message, "")

	if f, ok := p.in.(*os.File); ok && term.IsTerminal(int(f.Fd())) {
		secret, err := term.ReadPassword(int(f.Fd()))
		fmt.Fprintln(p.out)
		if err != nil {
			return "", fmt.Errorf("read %s: %w", strings.ToLower(message), err)
		}
		return string(secret), nil
	}

	line, err := p.readRaw()
	return strings.TrimRight(line, "\r\n"), err
}

// Confirm asks the user a yes/no question.
// Returns true if the user answers yes (y/Y/yes/YES), false otherwise.
// If defaultYes is true, pressing Enter returns true.
//
// Example:
//
//	ok, err := prompter.Confirm("Replace existing .env?", false)
//	// Displays: Replace existing .env? [y/N]: _
func (p *Prompter) Confirm(message string, defaultYes bool) (bool, error) {
	hint := "[y/N]"
	if defaultYes {
		hint = "[Y/n]"
	}
	fmt.Fprint(p.out, promptStyle.Render(message)+" "+hintStyle.Render(hint)+": ")

	answer, err := p.readLine()
	if err != nil {
		return false, err
	}

	answer = strings.ToLower(answer)
	if answer == "" {
		return defaultYes, nil
	}
	return answer == "y" || answer == "yes", nil
}

func (p *Prompter) printPrompt(message, defaultValue string) {
	if defaultValue != "" {
		fmt.Fprint(p.out, promptStyle.Render(message)+" "+
			hintStyle.Render(fmt.Sprintf("(%s)", defaultValue))+": ")
		return
	}
	fmt.Fprint(p.out, promptStyle.Render(message)+": ")
}

// readLine returns one trimmed line.
func (p *Prompter) readLine() (string, error) {
	line, err := p.readRaw()
	return strings.TrimSpace(line), err
}

// readRaw returns one line including its terminator. EOF is not an error:
// whatever was typed before it is returned.
func (p *Prompter) readRaw() (string, error) {
	line, err := p.reader.ReadString('\n')
	if err != nil && !errors.Is(err, io.EOF) {
		return "", fmt.Errorf("read answer: %w", err)
	}
	return line, nil
}

// IsTerminal reports whether r is a character device such as an
// interactive shell's stdin.
func IsTerminal(r io.Reader) bool {
	f, ok := r.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}
