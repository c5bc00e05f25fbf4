package generator

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDiff_Identical(t *testing.T) {
	assert.Empty(t, Diff("a.txt", []byte("same\n"), []byte("same\n")))
}

func TestDiff_ChangedLine(t *testing.T) {
	old := []byte("one\ntwo\nthree\n")
	newer := []byte("one\n2\nthree\n")

	got := Diff("lib/auth.ts", old, newer)
	assert.Equal(t, strings.Join([]string{
		"--- lib/auth.ts (existing)",
		"+++ lib/auth.ts (generated)",
		"@@ -1,3 +1,3 @@",
		" one",
		"-two",
		"+2",
		" three",
		"",
	}, "\n"), got)
}

func TestDiff_FromEmpty(t *testing.T) {
	got := Diff(".env", []byte{}, []byte("A=1\nB=2\n"))
	assert.Contains(t, got, "@@ -0,0 +1,2 @@\n+A=1\n+B=2\n")
}

func TestDiff_SeparateHunks(t *testing.T) {
	var old, newer []string
	for i := 0; i < 20; i++ {
		line := string(rune('a' + i))
		old = append(old, line)
		newer = append(newer, line)
	}
	newer[1] = "B"
	newer[18] = "S"

	got := Diff("x", []byte(strings.Join(old, "\n")+"\n"), []byte(strings.Join(newer, "\n")+"\n"))
	assert.Equal(t, 2, strings.Count(got, "@@ -"))
	assert.Contains(t, got, "@@ -1,5 +1,5 @@")
	assert.Contains(t, got, "@@ -16,5 +16,5 @@")
}

func TestDiff_Binary(t *testing.T) {
	assert.Equal(t, "Binary file logo.png differs\n", Diff("logo.png", []byte{0, 1}, []byte{0, 2}))
}

func TestEditScript(t *testing.T) {
	script := editScript([]string{"a", "b", "c"}, []string{"a", "c", "d"})

	var ops []string
	for _, e := range script {
		ops = append(ops, string(e.op)+e.text)
	}
	assert.Equal(t, []string{" a", "-b", " c", "+d"}, ops)
}
