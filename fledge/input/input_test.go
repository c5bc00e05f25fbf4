package input

import (
	"bytes"
	"errors"
	"os"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPrompt(t *testing.T) {
	tests := []struct {
		name         string
		in           string
		defaultValue string
		want         string
	}{
		{"typed answer", "admin\n", "root", "admin"},
		{"empty answer uses default", "\n", "root", "root"},
		{"whitespace is trimmed", "  db.internal  \n", "localhost", "db.internal"},
		{"closed input uses default", "", "better_auth", "better_auth"},
		{"answer without newline", "postgres", "root", "postgres"},
		{"empty default", "\n", "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var out bytes.Buffer
			p := NewPrompter(strings.NewReader(tt.in), &out)

			got, err := p.Prompt("Database user", tt.defaultValue)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
			assert.Contains(t, out.String(), "Database user")
			if tt.defaultValue != "" {
				assert.Contains(t, out.String(), "("+tt.defaultValue+")")
			}
		})
	}
}

func TestPrompt_Sequence(t *testing.T) {
	// One reader must serve every prompt, buffered bytes included
	p := NewPrompter(strings.NewReader("alice\n\nshop\n"), &bytes.Buffer{})

	user, err := p.Prompt("Database user", "root")
	require.NoError(t, err)
	password, err := p.PromptSecret("Database password")
	require.NoError(t, err)
	name, err := p.Prompt("Database name", "better_auth")
	require.NoError(t, err)
	host, err := p.Prompt("Database host", "localhost")
	require.NoError(t, err)

	assert.Equal(t, "alice", user)
	assert.Equal(t, "", password)
	assert.Equal(t, "shop", name)
	assert.Equal(t, "localhost", host)
}

func TestPromptSecret_KeepsSurroundingSpaces(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{" pa ss \n", " pa ss "},
		{"secret\r\n", "secret"},
		{"\ttab", "\ttab"},
		{"\n", ""},
		{"", ""},
	}

	for _, tt := range tests {
		p := NewPrompter(strings.NewReader(tt.in), &bytes.Buffer{})
		got, err := p.PromptSecret("Database password")
		require.NoError(t, err)
		assert.Equal(t, tt.want, got, "input %q", tt.in)
	}
}

type failingReader struct{}

func (failingReader) Read([]byte) (int, error) { return 0, errors.New("device gone") }

func TestPrompt_ReadError(t *testing.T) {
	p := NewPrompter(failingReader{}, &bytes.Buffer{})

	_, err := p.Prompt("Database user", "root")
	assert.ErrorContains(t, err, "device gone")
}

func TestConfirm(t *testing.T) {
	tests := []struct {
		in         string
		defaultYes bool
		want       bool
	}{
		{"y\n", false, true},
		{"YES\n", false, true},
		{"n\n", true, false},
		{"maybe\n", true, false},
		{"\n", true, true},
		{"\n", false, false},
		{"", true, true},
	}

	for _, tt := range tests {
		t.Run(strings.TrimSpace(tt.in), func(t *testing.T) {
			var out bytes.Buffer
			p := NewPrompter(strings.NewReader(tt.in), &out)

			got, err := p.Confirm("Continue?", tt.defaultYes)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)

			if tt.defaultYes {
				assert.Contains(t, out.String(), "[Y/n]")
			} else {
				assert.Contains(t, out.String(), "[y/N]")
			}
		})
	}
}

func TestIsTerminal(t *testing.T) {
	assert.False(t, IsTerminal(strings.NewReader("x")))

	f, err := os.CreateTemp(t.TempDir(), "stdin")
	require.NoError(t, err)
	defer f.Close()
	assert.False(t, IsTerminal(f))

	assert.False(t, NewPrompter(strings.NewReader(""), nil).Interactive())
}
