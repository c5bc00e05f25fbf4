package secret

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerate(t *testing.T) {
	for _, length := range []int{1, 2, 16, DefaultLength, 128} {
		s, err := Generate(length)
		require.NoError(t, err)
		assert.Len(t, s, length)

		for _, r := range s {
			assert.True(t, strings.ContainsRune(Alphabet, r), "unexpected symbol %q in %q", r, s)
		}
	}
}

func TestGenerate_InvalidLength(t *testing.T) {
	for _, length := range []int{0, -1} {
		s, err := Generate(length)
		assert.Error(t, err)
		assert.Empty(t, s)
	}
}

func TestGenerate_Distinct(t *testing.T) {
	seen := make(map[string]bool)
	for i := 0; i < 100; i++ {
		s, err := Generate(DefaultLength)
		require.NoError(t, err)
		assert.False(t, seen[s], "duplicate secret %q", s)
		seen[s] = true
	}
}

func TestGenerate_UsesWholeAlphabet(t *testing.T) {
	// 62 symbols over 20k draws: missing one has probability ~1e-137
	s, err := Generate(20000)
	require.NoError(t, err)

	for _, r := range Alphabet {
		assert.True(t, strings.ContainsRune(s, r), "symbol %q never drawn", r)
	}
}

func TestMask(t *testing.T) {
	assert.Equal(t, "", Mask(""))
	assert.Equal(t, "****", Mask("abc"))
	assert.Equal(t, "****", Mask("abcd"))
	assert.Equal(t, "AY7H****", Mask("AY7HaJcIp6l3WNg0rggTa9FOhHGATVQe"))
}
