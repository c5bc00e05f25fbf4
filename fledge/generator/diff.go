package generator

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// DiffContext is the number of unchanged lines shown around each change.
const DiffContext = 3

// maxDiffLines bounds the edit-script search on large existing files.
const maxDiffLines = 10000

var (
	diffHeaderStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("240"))
	diffHunkStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("cyan")).Bold(true)
	diffAddedStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("green"))
	diffRemovedStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("red"))
)

// Diff renders a unified diff from an existing file to the content that
// would replace it. Identical content yields "".
//
// Example:
//
//	fmt.Print(generator.Diff("lib/auth.ts", existing, rendered))
func Diff(path string, existing, generated []byte) string {
	if bytes.Equal(existing, generated) {
		return ""
	}
	if bytes.IndexByte(existing, 0) >= 0 || bytes.IndexByte(generated, 0) >= 0 {
		return fmt.Sprintf("Binary file %s differs\n", path)
	}

	a, b := splitLines(existing), splitLines(generated)
	if len(a) > maxDiffLines || len(b) > maxDiffLines {
		return fmt.Sprintf("%s: too large to diff (%d and %d lines)\n", path, len(a), len(b))
	}

	script := editScript(a, b)

	var buf strings.Builder
	buf.WriteString(diffHeaderStyle.Render("--- "+path+" (existing)") + "\n")
	buf.WriteString(diffHeaderStyle.Render("+++ "+path+" (generated)") + "\n")
	for _, h := range hunks(script, DiffContext) {
		writeHunk(&buf, h)
	}
	return buf.String()
}

// edit is one line of an edit script. ax and by are the zero-based
// positions in the old and new text where the edit applies.
type edit struct {
	op   byte // ' ', '-' or '+'
	text string
	ax   int
	by   int
}

// editScript computes a shortest edit script from a to b with Myers'
// O(ND) algorithm.
func editScript(a, b []string) []edit {
	n, m := len(a), len(b)
	limit := n + m
	offset := limit + 1
	v := make([]int, 2*limit+3)

	var trace [][]int
search:
	for d := 0; d <= limit; d++ {
		trace = append(trace, append([]int(nil), v...))
		for k := -d; k <= d; k += 2 {
			var x int
			if k == -d || (k != d && v[offset+k-1] < v[offset+k+1]) {
				x = v[offset+k+1]
			} else {
				x = v[offset+k-1] + 1
			}
			y := x - k
			for x < n && y < m && a[x] == b[y] {
				x++
				y++
			}
			v[offset+k] = x
			if x >= n && y >= m {
				break search
			}
		}
	}

	// Walk the trace backwards from (n, m) to the origin
	var script []edit
	x, y := n, m
	for d := len(trace) - 1; d >= 0; d-- {
		prev := trace[d]
		k := x - y

		prevK := k - 1
		if k == -d || (k != d && prev[offset+k-1] < prev[offset+k+1]) {
			prevK = k + 1
		}
		prevX := prev[offset+prevK]
		prevY := prevX - prevK

		for x > prevX && y > prevY {
			x--
			y--
			script = append(script, edit{op: ' ', text: a[x], ax: x, by: y})
		}
		if d == 0 {
			break
		}
		if x == prevX {
			y--
			script = append(script, edit{op: '+', text: b[y], ax: x, by: y})
		} else {
			x--
			script = append(script, edit{op: '-', text: a[x], ax: x, by: y})
		}
	}

	for i, j := 0, len(script)-1; i < j; i, j = i+1, j-1 {
		script[i], script[j] = script[j], script[i]
	}
	return script
}

// hunks groups changes with up to context unchanged lines on each side.
// Changes separated by at most 2*context unchanged lines share a hunk.
func hunks(script []edit, context int) [][]edit {
	var out [][]edit
	for i := 0; i < len(script); {
		if script[i].op == ' ' {
			i++
			continue
		}

		last := i
		for j := i + 1; j < len(script); j++ {
			if script[j].op == ' ' {
				continue
			}
			if j-last-1 > 2*context {
				break
			}
			last = j
		}

		start := max(i-context, 0)
		stop := min(last+context+1, len(script))
		out = append(out, script[start:stop])
		i = stop
	}
	return out
}

func writeHunk(buf *strings.Builder, h []edit) {
	var oldCount, newCount int
	for _, e := range h {
		if e.op != '+' {
			oldCount++
		}
		if e.op != '-' {
			newCount++
		}
	}

	// Unified diffs number an empty range by the line before it
	oldStart, newStart := h[0].ax, h[0].by
	if oldCount > 0 {
		oldStart++
	}
	if newCount > 0 {
		newStart++
	}

	header := fmt.Sprintf("@@ -%d,%d +%d,%d @@", oldStart, oldCount, newStart, newCount)
	buf.WriteString(diffHunkStyle.Render(header) + "\n")

	for _, e := range h {
		line := string(e.op) + e.text
		switch e.op {
		case '+':
			line = diffAddedStyle.Render(line)
		case '-':
			line = diffRemovedStyle.Render(line)
		}
		buf.WriteString(line + "\n")
	}
}

// splitLines splits content into lines without the trailing empty line a
// final newline would produce.
func splitLines(data []byte) []string {
	if len(data) == 0 {
		return nil
	}
	lines := strings.Split(string(data), "\n")
	if lines[len(lines)-1] == "" {
		lines = lines[:len(lines)-1]
	}
	return lines
}
