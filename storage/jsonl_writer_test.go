package storage

import (
	"bufio"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/VeraSamohina/skypro-course-work-OOP/models"
)

func storedFixture() []*models.Vacancy {
	return []*models.Vacancy{
		{
			Title:        "Go Developer",
			Link:         "https://hh.ru/vacancy/1",
			Employer:     "Acme",
			SalaryFrom:   1000,
			SalaryTo:     0,
			Currency:     "USD",
			CurrencyRate: 90,
			Town:         "Москва",
			Date:         "01.03.2024",
		},
		{
			Title: "Intern",
			Link:  "https://hh.ru/vacancy/2",
			Town:  "Казань",
			Date:  "02.03.2024",
		},
	}
}

func TestJSONLRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out", "vacancies.jsonl")

	w, err := NewJSONLWriter(path)
	if err != nil {
		t.Fatalf("NewJSONLWriter: %v", err)
	}
	vacs := storedFixture()
	if err := w.Write(vacs); err != nil {
		t.Fatalf("Write: %v", err)
	}
	if err := w.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}

	f, err := os.Open(path)
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	defer f.Close()

	var got []*models.Vacancy
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		v := &models.Vacancy{}
		if err := json.Unmarshal(scanner.Bytes(), v); err != nil {
			t.Fatalf("unmarshal line %q: %v", scanner.Text(), err)
		}
		got = append(got, v)
	}
	if err := scanner.Err(); err != nil {
		t.Fatalf("scan: %v", err)
	}

	if len(got) != len(vacs) {
		t.Fatalf("got %d lines, want %d", len(got), len(vacs))
	}
	for i := range vacs {
		if *got[i] != *vacs[i] {
			t.Errorf("line %d: got %+v, want %+v", i, got[i], vacs[i])
		}
	}
}

func TestJSONLStableKeyOrder(t *testing.T) {
	path := filepath.Join(t.TempDir(), "vacancies.jsonl")

	w, err := NewJSONLWriter(path)
	if err != nil {
		t.Fatalf("NewJSONLWriter: %v", err)
	}
	if err := w.Write(storedFixture()[:1]); err != nil {
		t.Fatalf("Write: %v", err)
	}
	if err := w.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read: %v", err)
	}

	line := string(data)
	keys := []string{`"title"`, `"link"`, `"employer"`, `"salary_from"`, `"salary_to"`,
		`"currency"`, `"currency_rate"`, `"town"`, `"date"`}
	last := -1
	for _, key := range keys {
		idx := strings.Index(line, key)
		if idx < 0 {
			t.Fatalf("key %s missing in %s", key, line)
		}
		if idx < last {
			t.Errorf("key %s out of order in %s", key, line)
		}
		last = idx
	}
}

func TestTXTWriterRendersBlocks(t *testing.T) {
	path := filepath.Join(t.TempDir(), "vacancies.txt")

	w, err := NewTXTWriter(path)
	if err != nil {
		t.Fatalf("NewTXTWriter: %v", err)
	}
	if err := w.Write(storedFixture()); err != nil {
		t.Fatalf("Write: %v", err)
	}
	if err := w.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	text := string(data)

	for _, want := range []string{"Go Developer", "зарплата: от 1000 USD", "Не указана", "Казань"} {
		if !strings.Contains(text, want) {
			t.Errorf("txt output missing %q", want)
		}
	}
}
