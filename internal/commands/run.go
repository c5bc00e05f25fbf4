package commands

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/glamour"
	"github.com/rs/zerolog"
	"github.com/simonhull/firebird-suite/weaver/fledge/exec"
	"github.com/simonhull/firebird-suite/weaver/fledge/generator"
	"github.com/simonhull/firebird-suite/weaver/fledge/output"
	"github.com/simonhull/firebird-suite/weaver/fledge/project"
	"github.com/simonhull/firebird-suite/weaver/internal/logging"
	"github.com/simonhull/firebird-suite/weaver/internal/recipes"
	"github.com/spf13/cobra"
	"golang.org/x/term"
	"gopkg.in/yaml.v3"
)

// runFlags are shared by every scaffold command.
type runFlags struct {
	force  bool
	dryRun bool
	plan   bool
	quiet  bool
}

func (f *runFlags) register(cmd *cobra.Command) {
	cmd.Flags().BoolVar(&f.force, "force", false, "Replace files that are normally preserved, such as .env")
	cmd.Flags().BoolVar(&f.dryRun, "dry-run", false, "Print what would happen without writing or running anything")
	cmd.Flags().BoolVar(&f.plan, "plan", false, "Print the step list as YAML and exit")
	cmd.Flags().BoolVar(&f.quiet, "quiet", false, "Show a spinner instead of command output")
}

// execute runs plan against target and prints the next steps.
func execute(ctx context.Context, env *Env, registry *recipes.Registry, plan *recipes.Plan, target string, flags runFlags) error {
	if flags.plan {
		return printPlan(env.Stdout, plan, target)
	}

	logger := env.logger.With().Str("recipe", plan.Key.String()).Logger()
	done := logging.LogOperationStart(logger, "scaffold")
	defer done()

	missing := keptEnvKeysMissing(target, plan, flags.force)
	if len(missing) > 0 {
		output.Warn(fmt.Sprintf("Existing %s will be kept but is missing %s, rerun with --force to replace it",
			recipes.EnvPath, strings.Join(missing, ", ")))
	}

	commands := env.Commands
	if commands == nil {
		commands = exec.NewExecutor(&exec.Options{
			Stdout: env.Stdout,
			Stderr: env.Stderr,
			Quiet:  flags.quiet,
			Logger: &logger,
		})
	}

	runner := generator.NewRunner(commands, generator.RunOptions{
		DryRun: flags.dryRun,
		Force:  flags.force,
		Writer: env.Stdout,
		Logger: &logger,
	})

	report, err := runner.Run(ctx, target, plan.Steps)
	if err != nil {
		output.Error(fmt.Sprintf("Applied %d of %d steps", report.Completed(), report.Total))
		if len(missing) > 0 {
			output.Info(fmt.Sprintf("%s is missing %s", recipes.EnvPath, strings.Join(missing, ", ")))
		}
		var cmdErr *exec.CommandError
		if errors.As(err, &cmdErr) {
			if hint := cmdErr.Hint(); hint != "" {
				output.Info(hint)
			}
		}
		return err
	}

	if flags.dryRun {
		output.Success(fmt.Sprintf("Dry run of %s complete, nothing was changed", plan.Key))
		return nil
	}

	output.Success(fmt.Sprintf("%s scaffold complete (%d steps)", plan.Key.Recipe, report.Total))

	notes, err := registry.Notes(plan, missing)
	if err != nil {
		return err
	}
	printNotes(env.Stdout, notes)
	return nil
}

// keptEnvKeysMissing returns the keys plan would write that an existing env
// file lacks. It returns nil when the file is absent or will be replaced.
func keptEnvKeysMissing(target string, plan *recipes.Plan, force bool) []string {
	envPath := filepath.Join(target, recipes.EnvPath)
	if force || !fileExists(envPath) {
		return nil
	}
	missing, err := recipes.MissingEnvKeys(envPath, plan.EnvKeys)
	if err != nil {
		output.Warn(fmt.Sprintf("Could not check %s: %v", envPath, err))
		return nil
	}
	return missing
}

// planStep is the YAML shape of one step. Content is summarized by size.
type planStep struct {
	Write  string `yaml:"write,omitempty"`
	Policy string `yaml:"policy,omitempty"`
	Mode   string `yaml:"mode,omitempty"`
	Bytes  int    `yaml:"bytes,omitempty"`
	Run    string `yaml:"run,omitempty"`
	Dir    string `yaml:"dir,omitempty"`
}

type planDocument struct {
	Recipe string     `yaml:"recipe"`
	Target string     `yaml:"target"`
	Steps  []planStep `yaml:"steps"`
}

func printPlan(w io.Writer, plan *recipes.Plan, target string) error {
	doc := planDocument{Recipe: plan.Key.String(), Target: target}
	for _, step := range plan.Steps {
		switch s := step.(type) {
		case *generator.WriteFile:
			doc.Steps = append(doc.Steps, planStep{
				Write:  s.Path,
				Policy: s.Policy.String(),
				Mode:   fmt.Sprintf("%04o", s.Mode.Perm()),
				Bytes:  len(s.Content),
			})
		case *generator.RunCommand:
			doc.Steps = append(doc.Steps, planStep{Run: s.CommandLine(), Dir: s.Dir})
		}
	}

	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(doc); err != nil {
		return fmt.Errorf("encode plan: %w", err)
	}
	return enc.Close()
}

// printNotes renders markdown for a terminal and prints it raw otherwise.
func printNotes(w io.Writer, notes string) {
	if isTerminal(w) {
		renderer, err := glamour.NewTermRenderer(glamour.WithAutoStyle(), glamour.WithWordWrap(100))
		if err == nil {
			if rendered, err := renderer.Render(notes); err == nil {
				fmt.Fprint(w, rendered)
				return
			}
		}
	}
	fmt.Fprintln(w)
	fmt.Fprint(w, notes)
}

func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}

// inspectProject warns about targets that do not look like a Next.js app.
// It returns nil when target is not a readable directory.
func inspectProject(target string, logger zerolog.Logger) *project.Info {
	dir := projectDir(target)
	if dir == "" {
		return nil
	}

	info, err := project.Detect(dir)
	if err != nil {
		output.Warn(err.Error())
		return nil
	}

	switch {
	case !info.HasPackageJSON():
		output.Warn(fmt.Sprintf("No package.json in %s, the generated code expects a Next.js project", dir))
	case !info.DependsOn("next"):
		output.Warn("package.json does not list next, the generated routes use the Next.js App Router")
	}

	if info.PackageManager != "" {
		logger.Debug().Str("pm", info.PackageManager).Str("lockfile", info.Lockfile).Msg("Package manager detected")
		output.Verbose(fmt.Sprintf("Detected package manager: %s", info.PackageManager))
	}
	return info
}

// detectedManager is the package manager the project already uses, if any.
func detectedManager(info *project.Info) string {
	if info == nil {
		return ""
	}
	return info.PackageManager
}

// projectDir returns target when it is a directory, so a bad path is
// reported by the resolver instead of the config loader.
func projectDir(target string) string {
	info, err := os.Stat(target)
	if err != nil || !info.IsDir() {
		return ""
	}
	return target
}

func fileExists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}
