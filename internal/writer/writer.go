// Package writer writes the generated documents to files or the console.
package writer

import (
	"fmt"
	"io"
	"os"
)

// Console is the output name that selects the console writer.
const Console = "-"

// Writer writes generated documents.
type Writer struct {
	console io.Writer
}

// New creates a new writer that prints console output to the given writer.
func New(console io.Writer) *Writer {
	return &Writer{
		console: console,
	}
}

// Write writes the content to the named file, or to the console if the name
// is Console. An empty name is ignored.
func (w *Writer) Write(name, content string) error {
	switch name {
	case "":
		return nil

	case Console:
		if _, err := io.WriteString(w.console, content); err != nil {
			return fmt.Errorf("writing to console: %w", err)
		}
		return nil

	default:
		if err := os.WriteFile(name, []byte(content), 0o644); err != nil {
			return fmt.Errorf("writing file '%s': %w", name, err)
		}
		return nil
	}
}
