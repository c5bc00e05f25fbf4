package generator

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
)

// WriteError reports a filesystem failure while materializing an artifact.
// It is always fatal to the run.
type WriteError struct {
	Path string
	Op   string
	Err  error
}

func (e *WriteError) Error() string {
	return fmt.Sprintf("%s %s: %v", e.Op, e.Path, e.Err)
}

func (e *WriteError) Unwrap() error {
	return e.Err
}

// WriteResult describes what the FileWriter did with one WriteFile step.
type WriteResult struct {
	Path    string // Absolute path of the target
	Bytes   int    // Bytes written (0 when skipped)
	Existed bool   // Target existed before the write
	Skipped bool   // Target was preserved by its policy
}

// FileWriter materializes WriteFile steps under a project root.
//
// Behavior:
//   - Creates missing parent directories (no error if they exist)
//   - Applies the step's OverwritePolicy; Force upgrades preserve to overwrite
//   - Writes through a temp file in the target directory and renames it into
//     place, so a failed write never leaves a half-written artifact
type FileWriter struct {
	Force bool
}

// NewFileWriter creates a writer. force replaces preserved artifacts too.
func NewFileWriter(force bool) *FileWriter {
	return &FileWriter{Force: force}
}

// Write applies one WriteFile step relative to root.
func (w *FileWriter) Write(root string, step *WriteFile) (WriteResult, error) {
	if step.Content == nil {
		return WriteResult{}, &WriteError{Path: step.Path, Op: "write", Err: errors.New("content is nil")}
	}

	target, err := ResolvePath(root, step.Path)
	if err != nil {
		return WriteResult{}, &WriteError{Path: step.Path, Op: "resolve", Err: err}
	}
	result := WriteResult{Path: target}

	dir := filepath.Dir(target)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return result, &WriteError{Path: dir, Op: "create directory", Err: err}
	}

	info, err := os.Stat(target)
	switch {
	case err == nil:
		if info.IsDir() {
			return result, &WriteError{Path: target, Op: "write", Err: errors.New("target is a directory")}
		}
		result.Existed = true
	case !errors.Is(err, fs.ErrNotExist):
		return result, &WriteError{Path: target, Op: "stat", Err: err}
	}

	if step.Policy.Resolve(result.Existed, w.Force) == Skip {
		result.Skipped = true
		return result, nil
	}

	mode := step.Mode
	if mode == 0 {
		mode = 0644
	}
	if err := writeFileAtomic(target, step.Content, mode); err != nil {
		return result, &WriteError{Path: target, Op: "write", Err: err}
	}

	result.Bytes = len(step.Content)
	return result, nil
}

// ResolvePath joins a step path onto root, rejecting absolute paths and
// paths that would land outside root.
func ResolvePath(root, rel string) (string, error) {
	if rel == "" {
		return "", errors.New("empty path")
	}
	if filepath.IsAbs(rel) {
		return "", fmt.Errorf("path must be relative to the project root: %s", rel)
	}

	clean := filepath.Clean(filepath.FromSlash(rel))
	if clean == ".." || strings.HasPrefix(clean, ".."+string(filepath.Separator)) {
		return "", fmt.Errorf("path escapes the project root: %s", rel)
	}

	return filepath.Join(root, clean), nil
}

// writeFileAtomic writes content next to path and renames it over path.
func writeFileAtomic(path string, content []byte, mode fs.FileMode) error {
	tmp, err := os.CreateTemp(filepath.Dir(path), "."+filepath.Base(path)+".tmp-*")
	if err != nil {
		return err
	}
	tmpName := tmp.Name()

	// Best effort, the rename below consumes the file on success
	defer os.Remove(tmpName)

	if _, err := tmp.Write(content); err != nil {
		tmp.Close()
		return err
	}
	if err := tmp.Close(); err != nil {
		return err
	}
	if err := os.Chmod(tmpName, mode); err != nil {
		return err
	}

	return os.Rename(tmpName, path)
}
