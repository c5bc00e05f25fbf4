package exec

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/exec"
	"strings"
	"sync"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/rs/zerolog"
)

// CommandError reports an external command that could not start or exited
// with a nonzero status.
type CommandError struct {
	Command  string // Command line as the user would type it
	Dir      string
	ExitCode int // -1 when the process never started
	Err      error
}

func (e *CommandError) Error() string {
	if e.ExitCode < 0 {
		return fmt.Sprintf("%s could not start: %v", e.Command, e.Err)
	}
	return fmt.Sprintf("%s failed with exit code %d", e.Command, e.ExitCode)
}

func (e *CommandError) Unwrap() error {
	return e.Err
}

// Hint returns advice for the user, or "" when there is none.
func (e *CommandError) Hint() string {
	if isCommandNotFound(e.Err) {
		name, _, _ := strings.Cut(e.Command, " ")
		return fmt.Sprintf("💡 Command '%s' not found. Please install it and try again", name)
	}
	return ""
}

// Executor runs external commands and streams their output
type Executor struct {
	stdout io.Writer
	stderr io.Writer
	quiet  bool
	logger zerolog.Logger

	// For mocking in tests
	commandFunc func(name string, args ...string) *exec.Cmd
}

// Options configures command execution
type Options struct {
	Stdout io.Writer
	Stderr io.Writer
	Quiet  bool            // Show a spinner instead of streaming output
	Logger *zerolog.Logger // Defaults to a no-op logger
}

// NewExecutor creates an executor with sensible defaults
func NewExecutor(opts *Options) *Executor {
	if opts == nil {
		opts = &Options{}
	}

	// Set defaults for nil fields
	if opts.Stdout == nil {
		opts.Stdout = os.Stdout
	}
	if opts.Stderr == nil {
		opts.Stderr = os.Stderr
	}
	logger := zerolog.Nop()
	if opts.Logger != nil {
		logger = opts.Logger.With().Str("component", "exec").Logger()
	}

	return &Executor{
		stdout:      opts.Stdout,
		stderr:      opts.Stderr,
		quiet:       opts.Quiet,
		logger:      logger,
		commandFunc: exec.Command, // Can be mocked for tests
	}
}

// Run executes name with args in dir and blocks until it exits.
// An empty dir runs in the current working directory.
func (e *Executor) Run(ctx context.Context, dir, name string, args ...string) error {
	line := commandLine(name, args)
	start := time.Now()
	e.logger.Debug().Str("command", line).Str("dir", dir).Msg("Command started")

	var err error
	if e.quiet {
		err = e.runWithSpinner(ctx, dir, line, name, args...)
	} else {
		// Stdout and stderr may be the same writer
		var mu sync.Mutex
		stdout := NewStreamingWriter(e.stdout, "  │ ", lipgloss.Color("245"))
		stderr := NewStreamingWriter(e.stderr, "  │ ", lipgloss.Color("245"))
		stdout.mu, stderr.mu = &mu, &mu
		err = e.run(ctx, dir, stdout, stderr, name, args...)
		stdout.Flush()
		stderr.Flush()
	}

	event := e.logger.Debug()
	if err != nil {
		event = e.logger.Error().Err(err)
	}
	event.Str("command", line).Dur("duration", time.Since(start)).Msg("Command finished")

	return err
}

// run starts the process and waits for it, honouring ctx cancellation
func (e *Executor) run(ctx context.Context, dir string, stdout, stderr io.Writer, name string, args ...string) error {
	cmd := e.commandFunc(name, args...)

	if dir != "" {
		cmd.Dir = dir
	}

	cmd.Stdout = stdout
	cmd.Stderr = stderr

	cmdErr := &CommandError{Command: commandLine(name, args), Dir: dir, ExitCode: -1}

	if err := cmd.Start(); err != nil {
		cmdErr.Err = err
		return cmdErr
	}

	// Wait for completion
	errCh := make(chan error, 1)
	go func() {
		errCh <- cmd.Wait()
	}()

	select {
	case <-ctx.Done():
		if cmd.Process != nil {
			cmd.Process.Kill()
		}
		<-errCh
		cmdErr.Err = fmt.Errorf("cancelled: %w", ctx.Err())
		return cmdErr
	case err := <-errCh:
		if err == nil {
			return nil
		}
		cmdErr.Err = err
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			cmdErr.ExitCode = exitErr.ExitCode()
		}
		return cmdErr
	}
}

// runWithSpinner captures the command's output behind a spinner and only
// shows it when the command fails
func (e *Executor) runWithSpinner(ctx context.Context, dir, message, name string, args ...string) error {
	var captured bytes.Buffer

	p := tea.NewProgram(newSpinnerModel(message), tea.WithOutput(e.stderr), tea.WithInput(nil))

	done := make(chan error, 1)
	go func() {
		err := e.run(ctx, dir, &captured, &captured, name, args...)
		p.Send(spinnerDoneMsg{err: err})
		done <- err
	}()

	if _, err := p.Run(); err != nil {
		e.logger.Debug().Err(err).Msg("Spinner stopped")
	}

	err := <-done
	if err != nil && captured.Len() > 0 {
		w := NewStreamingWriter(e.stderr, "  │ ", lipgloss.Color("245"))
		w.Write(captured.Bytes())
		w.Flush()
	}
	return err
}

// spinnerModel is the bubbletea model for the spinner
type spinnerModel struct {
	spinner spinner.Model
	message string
	done    bool
	err     error
}

type spinnerDoneMsg struct {
	err error
}

func newSpinnerModel(message string) *spinnerModel {
	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = lipgloss.NewStyle().Foreground(lipgloss.Color("205"))
	return &spinnerModel{
		spinner: s,
		message: message,
	}
}

func (m *spinnerModel) Init() tea.Cmd {
	return m.spinner.Tick
}

func (m *spinnerModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case spinnerDoneMsg:
		m.done = true
		m.err = msg.err
		return m, tea.Quit
	case spinner.TickMsg:
		if !m.done {
			var cmd tea.Cmd
			m.spinner, cmd = m.spinner.Update(msg)
			return m, cmd
		}
	}
	return m, nil
}

func (m *spinnerModel) View() string {
	if m.done {
		if m.err != nil {
			return fmt.Sprintf("❌ %s\n", m.message)
		}
		return fmt.Sprintf("✅ %s\n", m.message)
	}
	return fmt.Sprintf("%s %s...", m.spinner.View(), m.message)
}

// isCommandNotFound checks if an error indicates a command was not found
func isCommandNotFound(err error) bool {
	if err == nil {
		return false
	}
	return errors.Is(err, exec.ErrNotFound) ||
		// Some systems return different errors
		strings.Contains(err.Error(), "executable file not found") ||
		strings.Contains(err.Error(), "command not found")
}

func commandLine(name string, args []string) string {
	return strings.Join(append([]string{name}, args...), " ")
}
