package generator

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/rs/zerolog"
)

// CommandRunner runs one external command in dir and blocks until it exits.
// A nonzero exit status must be reported as an error.
type CommandRunner interface {
	Run(ctx context.Context, dir, name string, args ...string) error
}

// RunOptions configures a Runner.
type RunOptions struct {
	DryRun bool
	Force  bool            // Replace artifacts whose policy is PolicyPreserve
	Writer io.Writer       // Where to write progress (defaults to os.Stdout)
	Logger *zerolog.Logger // Structured step log (defaults to a no-op logger)
}

// StepError reports the step that aborted a run.
type StepError struct {
	Index int // Zero-based position in the step list
	Total int
	Step  Step
	Err   error
}

func (e *StepError) Error() string {
	return fmt.Sprintf("step %d/%d (%s) failed: %v", e.Index+1, e.Total, e.Step.Description(), e.Err)
}

func (e *StepError) Unwrap() error {
	return e.Err
}

// Report summarizes a run, including runs that stopped early.
type Report struct {
	Total   int
	Applied []Step
	Skipped []*WriteFile
}

// Completed reports how many steps ran (applied or skipped).
func (r *Report) Completed() int {
	return len(r.Applied) + len(r.Skipped)
}

// Runner executes a step list in order and aborts on the first failure.
//
// There is no rollback: artifacts written before a failing step stay on
// disk, and no step is retried.
type Runner struct {
	files    *FileWriter
	commands CommandRunner
	out      io.Writer
	dryRun   bool
	logger   zerolog.Logger
}

// NewRunner creates a runner that sends RunCommand steps to commands.
func NewRunner(commands CommandRunner, opts RunOptions) *Runner {
	if opts.Writer == nil {
		opts.Writer = os.Stdout
	}
	logger := zerolog.Nop()
	if opts.Logger != nil {
		logger = opts.Logger.With().Str("component", "runner").Logger()
	}

	return &Runner{
		files:    NewFileWriter(opts.Force),
		commands: commands,
		out:      opts.Writer,
		dryRun:   opts.DryRun,
		logger:   logger,
	}
}

// Run executes steps against the project at root.
// The returned report is never nil, even when err is not.
func (r *Runner) Run(ctx context.Context, root string, steps []Step) (*Report, error) {
	report := &Report{Total: len(steps)}

	// Phase 1: reject malformed steps before anything touches disk
	if err := Validate(root, steps); err != nil {
		return report, fmt.Errorf("validation failed: %w", err)
	}

	// Phase 2: execute in declaration order, stop at the first failure
	for i, step := range steps {
		if r.dryRun {
			if w, ok := step.(*WriteFile); ok {
				if r.preview(root, w) {
					report.Skipped = append(report.Skipped, w)
					continue
				}
			} else {
				fmt.Fprintf(r.out, "✓ [DRY RUN] %s\n", step.Description())
			}
			report.Applied = append(report.Applied, step)
			continue
		}

		start := time.Now()
		r.logger.Debug().Int("step", i+1).Int("total", len(steps)).Str("action", step.Description()).Msg("Step started")

		skipped, err := r.apply(ctx, root, step)
		if err != nil {
			r.logger.Error().Err(err).Int("step", i+1).Dur("duration", time.Since(start)).Msg("Step failed")
			return report, &StepError{Index: i, Total: len(steps), Step: step, Err: err}
		}

		r.logger.Debug().Int("step", i+1).Bool("skipped", skipped).Dur("duration", time.Since(start)).Msg("Step completed")

		if skipped {
			report.Skipped = append(report.Skipped, step.(*WriteFile))
			continue
		}
		report.Applied = append(report.Applied, step)
	}

	return report, nil
}

// Validate checks every step's static shape without side effects.
// It never looks at the filesystem state, so a valid plan can still fail
// while running.
func Validate(root string, steps []Step) error {
	for i, step := range steps {
		switch s := step.(type) {
		case *WriteFile:
			if s.Content == nil {
				return fmt.Errorf("step %d: content is nil for file: %s", i+1, s.Path)
			}
			if _, err := ResolvePath(root, s.Path); err != nil {
				return fmt.Errorf("step %d: %w", i+1, err)
			}
		case *RunCommand:
			if s.Name == "" {
				return fmt.Errorf("step %d: command name is empty", i+1)
			}
			if s.Dir != "" {
				if _, err := ResolvePath(root, s.Dir); err != nil {
					return fmt.Errorf("step %d: %w", i+1, err)
				}
			}
		case nil:
			return fmt.Errorf("step %d: nil step", i+1)
		default:
			return fmt.Errorf("step %d: unsupported step type %T", i+1, step)
		}
	}
	return nil
}

// preview prints what a dry run would do with w, including a diff against
// an existing target. It reports whether the target would be kept.
func (r *Runner) preview(root string, w *WriteFile) (kept bool) {
	target, err := ResolvePath(root, w.Path)
	if err != nil {
		return false
	}
	existing, err := os.ReadFile(target)
	if err != nil {
		fmt.Fprintf(r.out, "✓ [DRY RUN] %s\n", w.Description())
		return false
	}

	if w.Policy.Resolve(true, r.files.Force) == Skip {
		fmt.Fprintf(r.out, "⚠ [DRY RUN] Keep existing %s\n", w.Path)
		return true
	}

	fmt.Fprintf(r.out, "✓ [DRY RUN] %s\n", w.Description())
	fmt.Fprint(r.out, Diff(w.Path, existing, w.Content))
	return false
}

// apply dispatches one step. skipped is true when a preserved artifact was kept.
func (r *Runner) apply(ctx context.Context, root string, step Step) (skipped bool, err error) {
	switch s := step.(type) {
	case *WriteFile:
		result, err := r.files.Write(root, s)
		if err != nil {
			return false, err
		}
		if result.Skipped {
			fmt.Fprintf(r.out, "⚠ Kept existing %s (use --force to replace it)\n", s.Path)
			return true, nil
		}
		fmt.Fprintf(r.out, "✓ %s\n", s.Description())
		return false, nil

	case *RunCommand:
		if r.commands == nil {
			return false, errors.New("no command runner configured")
		}
		dir := root
		if s.Dir != "" {
			if dir, err = ResolvePath(root, s.Dir); err != nil {
				return false, err
			}
		}
		fmt.Fprintf(r.out, "> %s\n", s.CommandLine())
		if err := r.commands.Run(ctx, filepath.Clean(dir), s.Name, s.Args...); err != nil {
			return false, err
		}
		return false, nil

	default:
		return false, fmt.Errorf("unsupported step type %T", step)
	}
}
