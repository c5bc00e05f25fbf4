package logging

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSetup_SilentByDefault(t *testing.T) {
	logger, closeFn, err := Setup(Options{})
	require.NoError(t, err)
	defer closeFn()

	assert.Equal(t, zerolog.Disabled, logger.GetLevel())
}

func TestSetup_Verbose(t *testing.T) {
	var console bytes.Buffer

	logger, closeFn, err := Setup(Options{Verbose: true, Console: &console})
	require.NoError(t, err)
	defer closeFn()

	logger.Debug().Str("step", "1/4").Msg("Step started")
	assert.Contains(t, console.String(), "Step started")
	assert.Contains(t, console.String(), "1/4")
}

func TestSetup_LogFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "logs", "weaver.log")

	logger, closeFn, err := Setup(Options{File: path})
	require.NoError(t, err)

	logger.Info().Str("recipe", "auth").Msg("Scaffold finished")
	require.NoError(t, closeFn())

	data, err := os.ReadFile(path)
	require.NoError(t, err)

	lines := strings.Split(strings.TrimSpace(string(data)), "\n")
	require.Len(t, lines, 2) // initialization record + ours

	var record map[string]any
	require.NoError(t, json.Unmarshal([]byte(lines[1]), &record))
	assert.Equal(t, "Scaffold finished", record["message"])
	assert.Equal(t, "auth", record["recipe"])
	assert.Equal(t, "info", record["level"])
}

func TestSetup_LogFileError(t *testing.T) {
	blocker := filepath.Join(t.TempDir(), "file")
	require.NoError(t, os.WriteFile(blocker, nil, 0644))

	_, closeFn, err := Setup(Options{File: filepath.Join(blocker, "weaver.log")})
	assert.ErrorContains(t, err, "failed to create log directory")
	assert.NoError(t, closeFn())
}

func TestComponent(t *testing.T) {
	var buf bytes.Buffer
	logger := Component(zerolog.New(&buf), "runner")

	logger.Info().Msg("hello")
	assert.Contains(t, buf.String(), `"component":"runner"`)
}

func TestLogOperationStart(t *testing.T) {
	var buf bytes.Buffer
	logger := zerolog.New(&buf).Level(zerolog.DebugLevel)

	done := LogOperationStart(logger, "render templates")
	done()

	output := buf.String()
	assert.Contains(t, output, "Operation started")
	assert.Contains(t, output, "Operation completed")
	assert.Contains(t, output, "duration")
}
