// Package output provides beautiful, styled terminal output for CLI tools.
//
// # Overview
//
// All tools in the Firebird Suite use this package for consistent,
// delightful terminal output.
//
// # Usage
//
// Import the package and call the output functions:
//
//	import "github.com/simonhull/firebird-suite/weaver/fledge/output"
//
//	output.Success("Operation completed!")
//	output.Warn("Kept existing .env")
//	output.Info("Next steps:")
//	output.Step("pnpm dev")
//	output.Error("Something went wrong")
//
// Messages go to os.Stdout unless SetOutput redirects them, which is how
// tests and commands with their own writer capture them.
//
// # Verbose Mode
//
// Enable verbose output for debugging:
//
//	output.SetVerbose(true)
//	output.Verbose("This only prints in verbose mode")
//
// # Styling
//
//   - Success: 🔥 green bold
//   - Error: ❌ red bold
//   - Warn: ⚠️ yellow
//   - Info: ℹ️ cyan
//   - Step: indented gray
//   - Verbose: 🔍 gray (when enabled)
package output
