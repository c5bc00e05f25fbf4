// Package generator turns a declarative list of steps into files on disk and
// external command invocations.
//
// # Features
//
//   - Template rendering from an embedded filesystem with a parse cache
//   - Per-artifact overwrite policies (overwrite, preserve, --force)
//   - Atomic file writes that never escape the project root
//   - Fail-fast execution with a report of what already ran
//
// # Running steps
//
// A plan is plain data. The Runner executes it strictly in order and stops
// at the first failing step:
//
//	steps := []generator.Step{
//	    &generator.RunCommand{Name: "pnpm", Args: []string{"add", "zod"}},
//	    &generator.WriteFile{Path: ".env", Content: env, Policy: generator.PolicyPreserve},
//	    &generator.WriteFile{Path: "lib/s3.ts", Content: client},
//	}
//
//	runner := generator.NewRunner(executor, generator.RunOptions{Force: force})
//	report, err := runner.Run(ctx, projectRoot, steps)
//
// Nothing is rolled back when a step fails. Files written by earlier steps
// stay on disk and report.Applied lists them.
package generator
