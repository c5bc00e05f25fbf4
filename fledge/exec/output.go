package exec

import (
	"bytes"
	"io"
	"sync"

	"github.com/charmbracelet/lipgloss"
)

// StreamingWriter prefixes and styles each line of a child process's output
type StreamingWriter struct {
	prefix string
	style  lipgloss.Style
	writer io.Writer
	// Buffer for incomplete lines
	buffer []byte
	// Guards writer when it is shared with another StreamingWriter
	mu *sync.Mutex
}

// NewStreamingWriter creates a formatted output writer
func NewStreamingWriter(writer io.Writer, prefix string, color lipgloss.Color) *StreamingWriter {
	return &StreamingWriter{
		prefix: prefix,
		style:  lipgloss.NewStyle().Foreground(color),
		writer: writer,
	}
}

// Write formats and writes output line by line
func (s *StreamingWriter) Write(p []byte) (n int, err error) {
	s.buffer = append(s.buffer, p...)

	for {
		i := bytes.IndexByte(s.buffer, '\n')
		if i < 0 {
			break
		}
		line := bytes.TrimSuffix(s.buffer[:i], []byte("\r"))
		if err := s.emit(string(line)); err != nil {
			return 0, err
		}
		s.buffer = s.buffer[i+1:]
	}

	return len(p), nil
}

// Flush writes any remaining buffered content
func (s *StreamingWriter) Flush() error {
	if len(s.buffer) == 0 {
		return nil
	}
	err := s.emit(string(s.buffer))
	s.buffer = s.buffer[:0]
	return err
}

func (s *StreamingWriter) emit(line string) error {
	if s.mu != nil {
		s.mu.Lock()
		defer s.mu.Unlock()
	}
	_, err := io.WriteString(s.writer, s.formatLine(line)+"\n")
	return err
}

// formatLine formats a single line with prefix and style
func (s *StreamingWriter) formatLine(line string) string {
	return s.style.Render(s.prefix + line)
}
