// Package output provides adapters for delivering the composed commit message.
package output

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/atotto/clipboard"
)

// Writer prints the commit message to an output stream, normally stdout.
type Writer struct {
	out io.Writer
}

// NewWriter creates a new Writer printing to out.
func NewWriter(out io.Writer) *Writer {
	return &Writer{out: out}
}

// WriteMessage writes the message followed by a single newline.
func (w *Writer) WriteMessage(_ context.Context, message string) error {
	_, err := fmt.Fprintln(w.out, message)
	return err
}

// FileWriter writes the commit message to a file, replacing its content.
// Pointing it at .git/COMMIT_EDITMSG lets a prepare-commit-msg hook use the message.
type FileWriter struct {
	path string
}

// NewFileWriter creates a new FileWriter for the given path.
func NewFileWriter(path string) *FileWriter {
	return &FileWriter{path: path}
}

// WriteMessage writes the message followed by a newline, creating parent directories as needed.
func (w *FileWriter) WriteMessage(_ context.Context, message string) error {
	if dir := filepath.Dir(w.path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("failed to create directory for %s: %w", w.path, err)
		}
	}
	if err := os.WriteFile(w.path, []byte(message+"\n"), 0o644); err != nil {
		return fmt.Errorf("failed to write %s: %w", w.path, err)
	}
	return nil
}

// ClipboardWriter copies the commit message to the system clipboard.
type ClipboardWriter struct {
	write func(string) error
}

// NewClipboardWriter creates a new ClipboardWriter using the system clipboard.
func NewClipboardWriter() *ClipboardWriter {
	return &ClipboardWriter{write: clipboard.WriteAll}
}

// NewClipboardWriterWithFunc creates a ClipboardWriter with a custom write function.
// This is useful for testing.
func NewClipboardWriterWithFunc(write func(string) error) *ClipboardWriter {
	return &ClipboardWriter{write: write}
}

// WriteMessage copies the message to the clipboard.
func (w *ClipboardWriter) WriteMessage(_ context.Context, message string) error {
	if err := w.write(message); err != nil {
		return fmt.Errorf("failed to copy to clipboard: %w", err)
	}
	return nil
}
