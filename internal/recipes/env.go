package recipes

import (
	"bytes"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"sort"

	"github.com/subosito/gotenv"
)

// envKeys returns the keys defined by env file content, sorted.
func envKeys(content []byte) ([]string, error) {
	env, err := gotenv.StrictParse(bytes.NewReader(content))
	if err != nil {
		return nil, fmt.Errorf("parse env file: %w", err)
	}

	keys := make([]string, 0, len(env))
	for k := range env {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys, nil
}

// MissingEnvKeys reports which of want are not defined in the env file at
// path. A missing file lacks every key.
func MissingEnvKeys(path string, want []string) ([]string, error) {
	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return append([]string(nil), want...), nil
	}
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}

	have, err := gotenv.StrictParse(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}

	var missing []string
	for _, k := range want {
		if _, ok := have[k]; !ok {
			missing = append(missing, k)
		}
	}
	return missing, nil
}
