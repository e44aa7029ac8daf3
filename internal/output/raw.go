package output

import (
	"bufio"
	"fmt"
	"io"
)

// RawWriter writes the content of each record as-is, for piping into files or
// editors. Records are separated by the configured separator.
type RawWriter struct {
	w       *bufio.Writer
	sep     string
	written int
}

// NewRawWriter creates a raw writer.
func NewRawWriter(w io.Writer, sep string) *RawWriter {
	return &RawWriter{w: bufio.NewWriter(w), sep: sep}
}

// Write writes one record. Accepted types are ExportRecord (its Content),
// string, []byte and fmt.Stringer.
func (w *RawWriter) Write(data any) error {
	var content string
	switch v := data.(type) {
	case ExportRecord:
		content = v.Content
	case *ExportRecord:
		content = v.Content
	case string:
		content = v
	case []byte:
		content = string(v)
	case fmt.Stringer:
		content = v.String()
	default:
		return fmt.Errorf("raw output cannot render %T", data)
	}

	if w.written > 0 {
		if _, err := w.w.WriteString(w.sep); err != nil {
			return err
		}
	}
	if _, err := w.w.WriteString(content + "\n"); err != nil {
		return err
	}
	w.written++
	return w.w.Flush()
}

// WriteAll writes multiple records.
func (w *RawWriter) WriteAll(data []any) error {
	for _, item := range data {
		if err := w.Write(item); err != nil {
			return err
		}
	}
	return nil
}

// Flush flushes the buffer.
func (w *RawWriter) Flush() error {
	return w.w.Flush()
}

// Close flushes the writer.
func (w *RawWriter) Close() error {
	return w.Flush()
}
