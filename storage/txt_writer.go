package storage

import (
	"bufio"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/VeraSamohina/skypro-course-work-OOP/models"
)

// TXTWriter persists the human-readable blocks, one per vacancy.
type TXTWriter struct {
	mu   sync.Mutex
	file *os.File
	buf  *bufio.Writer
}

// NewTXTWriter creates (or truncates) the file at the given path.
func NewTXTWriter(path string) (*TXTWriter, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return nil, fmt.Errorf("txt: create output dir: %w", err)
	}

	f, err := os.Create(path)
	if err != nil {
		return nil, fmt.Errorf("txt: create file %q: %w", path, err)
	}

	return &TXTWriter{file: f, buf: bufio.NewWriter(f)}, nil
}

// Write appends one rendered block per vacancy, separated by blank lines.
func (w *TXTWriter) Write(vacs []*models.Vacancy) error {
	w.mu.Lock()
	defer w.mu.Unlock()

	for _, v := range vacs {
		if _, err := w.buf.WriteString(v.String() + "\n"); err != nil {
			return fmt.Errorf("txt: write %q: %w", v.Title, err)
		}
	}
	return w.buf.Flush()
}

// Close flushes and closes the underlying file.
func (w *TXTWriter) Close() error {
	if err := w.buf.Flush(); err != nil {
		_ = w.file.Close()
		return err
	}
	return w.file.Close()
}
