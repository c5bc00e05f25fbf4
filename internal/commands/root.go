package commands

import (
	"fmt"
	"io"
	"os"
	osexec "os/exec"

	"github.com/rs/zerolog"
	"github.com/simonhull/firebird-suite/weaver"
	"github.com/simonhull/firebird-suite/weaver/fledge/generator"
	"github.com/simonhull/firebird-suite/weaver/fledge/output"
	"github.com/simonhull/firebird-suite/weaver/internal/logging"
	"github.com/simonhull/firebird-suite/weaver/internal/pkgmgr"
	"github.com/spf13/cobra"
)

// Env is the process environment the commands run against.
type Env struct {
	Stdin    io.Reader
	Stdout   io.Writer
	Stderr   io.Writer
	LookPath pkgmgr.LookPathFunc

	// Commands runs external programs. Nil builds an exec.Executor per run.
	Commands generator.CommandRunner

	// UserConfig overrides the per-user config file location.
	UserConfig string

	logger   zerolog.Logger
	closeLog func() error
}

// DefaultEnv wires the commands to the real terminal and PATH.
func DefaultEnv() *Env {
	return &Env{
		Stdin:    os.Stdin,
		Stdout:   os.Stdout,
		Stderr:   os.Stderr,
		LookPath: osexec.LookPath,
	}
}

// Close releases the log file, if any.
func (e *Env) Close() error {
	if e.closeLog == nil {
		return nil
	}
	err := e.closeLog()
	e.closeLog = nil
	return err
}

// RootCmd creates and returns the root command for the Weaver CLI
func RootCmd(env *Env) *cobra.Command {
	var (
		verbose bool
		logFile string
	)

	cmd := &cobra.Command{
		Use:   "weaver",
		Short: "Weave integrations into an existing web application",
		Long: `Weaver bootstraps integration boilerplate into a Next.js project.

It renders configuration and source files, installs dependencies and runs
the setup commands each integration needs, in a fixed order that stops at
the first failure:
• auth     better-auth with a Prisma database adapter
• storage  Cloudflare R2 / S3 uploads (presigned, direct or both)

Learn more: https://github.com/simonhull/firebird-suite`,
		Version:       weaver.Version,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			output.SetOutput(env.Stdout)
			output.SetVerbose(verbose)

			logger, closeLog, err := logging.Setup(logging.Options{
				Verbose: verbose,
				File:    logFile,
				Console: env.Stderr,
			})
			if err != nil {
				return fmt.Errorf("set up logging: %w", err)
			}
			env.logger = logger
			env.closeLog = closeLog
			return nil
		},
	}

	cmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable verbose output for debugging")
	cmd.PersistentFlags().StringVar(&logFile, "log-file", "", "Append structured JSON logs to this file")

	return cmd
}

// VersionCmd prints the build version
func VersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "Weaver v%s\n", weaver.Version)
		},
	}
}
