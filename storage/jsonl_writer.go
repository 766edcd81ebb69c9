package storage

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/VeraSamohina/skypro-course-work-OOP/models"
)

// JSONLWriter writes vacancies as one flat JSON record per line — the
// machine-oriented, streaming-friendly form. The key order follows the
// Vacancy field order: title, link, employer, salary_from, salary_to,
// currency, currency_rate, town, date.
// It is safe for concurrent use.
type JSONLWriter struct {
	mu   sync.Mutex
	file *os.File
	enc  *json.Encoder
}

// NewJSONLWriter creates (or truncates) the file at the given path.
// Intermediate directories are created automatically.
func NewJSONLWriter(path string) (*JSONLWriter, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return nil, fmt.Errorf("jsonl: create output dir: %w", err)
	}

	f, err := os.Create(path)
	if err != nil {
		return nil, fmt.Errorf("jsonl: create file %q: %w", path, err)
	}

	return &JSONLWriter{file: f, enc: json.NewEncoder(f)}, nil
}

// Write appends one line per vacancy.
func (w *JSONLWriter) Write(vacs []*models.Vacancy) error {
	w.mu.Lock()
	defer w.mu.Unlock()

	for _, v := range vacs {
		if err := w.enc.Encode(v); err != nil {
			return fmt.Errorf("jsonl: encode %q: %w", v.Title, err)
		}
	}
	return nil
}

// Close closes the underlying file.
func (w *JSONLWriter) Close() error {
	return w.file.Close()
}
