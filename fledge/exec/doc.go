// Package exec runs external commands for a scaffold: package installs,
// code generators and migrations.
//
// The package knows nothing about specific tools. An Executor spawns a
// process in a working directory, streams its output line by line with a
// dim prefix, and blocks until the process exits:
//
//	executor := exec.NewExecutor(nil)
//	err := executor.Run(ctx, projectDir, "pnpm", "add", "zod")
//
// A nonzero exit status or a missing binary is reported as a *CommandError.
// ExitCode is -1 when the process never started, and Hint suggests what to
// install.
//
// With Options.Quiet the output is captured behind a spinner and only shown
// when the command fails.
//
// Executor satisfies generator.CommandRunner, so a step runner can drive it
// directly and tests can swap in a fake.
package exec
