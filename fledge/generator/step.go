package generator

import (
	"fmt"
	"io/fs"
	"strings"
)

// Step is one scheduled action in a scaffold run.
//
// A step is pure data: it describes what should happen but never does it.
// The Runner consumes steps strictly in order and dispatches each one to the
// FileWriter or to a CommandRunner. The set of step kinds is closed; the only
// implementations are *WriteFile and *RunCommand.
type Step interface {
	// Description returns a human-readable summary for console output,
	// e.g. "Write lib/auth.ts (412 bytes)" or "Run pnpm add zod".
	Description() string

	step()
}

// WriteFile materializes one rendered artifact.
//
// Path is relative to the project root and must not escape it.
// Content may be empty but must not be nil.
// Policy decides what happens when the file already exists.
type WriteFile struct {
	Path    string
	Content []byte
	Mode    fs.FileMode
	Policy  OverwritePolicy
}

func (*WriteFile) step() {}

func (w *WriteFile) Description() string {
	return fmt.Sprintf("Write %s (%d bytes)", w.Path, len(w.Content))
}

// RunCommand invokes one external program.
//
// Dir is relative to the project root; an empty Dir means the root itself.
// Args are passed to the program verbatim, never through a shell.
type RunCommand struct {
	Name string
	Args []string
	Dir  string
}

func (*RunCommand) step() {}

func (r *RunCommand) Description() string {
	return "Run " + r.CommandLine()
}

// CommandLine renders the command the way a user would type it.
func (r *RunCommand) CommandLine() string {
	parts := append([]string{r.Name}, r.Args...)
	return strings.Join(parts, " ")
}
