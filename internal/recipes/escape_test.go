package recipes

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEnvQuote(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"", `""`},
		{"plain", `"plain"`},
		{`say "hi"`, `"say \"hi\""`},
		{`C:\path`, `"C:\\path"`},
		{"$HOME", `"\$HOME"`},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := envQuote(tt.in)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}

	for _, bad := range []string{"a\nb", "a\rb"} {
		_, err := envQuote(bad)
		assert.Error(t, err)
	}
}

func TestIdentifier(t *testing.T) {
	for _, ok := range []string{"mysql", "postgresql", "Provider_2"} {
		got, err := identifier(ok)
		require.NoError(t, err)
		assert.Equal(t, ok, got)
	}

	for _, bad := range []string{"", "2sql", `my"sql`, "my sql", "sql-server"} {
		_, err := identifier(bad)
		assert.Error(t, err, bad)
	}
}
