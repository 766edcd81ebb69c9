package provider

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strconv"
	"testing"

	"github.com/VeraSamohina/skypro-course-work-OOP/models"
	"github.com/VeraSamohina/skypro-course-work-OOP/utils"
)

const hhSampleJSON = `{
  "items": [
    {
      "name": "Go Developer",
      "employer": {"name": "Acme"},
      "salary": {"from": 1000, "to": null, "currency": "USD"},
      "alternate_url": "https://hh.ru/vacancy/1",
      "area": {"name": "Москва"},
      "published_at": "2024-03-01T10:00:00+0300"
    },
    {
      "name": "Intern",
      "employer": {"name": "Beta"},
      "salary": null,
      "alternate_url": "https://hh.ru/vacancy/2",
      "area": {"name": "Казань"},
      "published_at": "2024-03-02T10:00:00+0300"
    },
    {
      "name": "Backend Developer",
      "employer": {"name": "Gamma"},
      "salary": {"from": 100000, "to": 150000, "currency": "RUR"},
      "alternate_url": "https://hh.ru/vacancy/3",
      "area": {"name": "Москва"},
      "published_at": "2024-03-03T10:00:00+0300"
    }
  ]
}`

func newTestHH(t *testing.T, handler http.HandlerFunc) *HeadHunter {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	h := NewHeadHunter(utils.NewLogger(), 1)
	h.baseURL = srv.URL
	return h
}

func TestHeadHunterFetchMapsRecords(t *testing.T) {
	h := newTestHH(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Query().Get("page") != "0" {
			_, _ = w.Write([]byte(`{"items": []}`))
			return
		}
		if r.URL.Query().Get("archived") != "false" {
			t.Errorf("archived param: got %q", r.URL.Query().Get("archived"))
		}
		_, _ = w.Write([]byte(hhSampleJSON))
	})

	raws, err := h.Fetch(context.Background(), "go developer", 3)
	if err != nil {
		t.Fatalf("Fetch: %v", err)
	}
	if len(raws) != 3 {
		t.Fatalf("got %d records, want 3", len(raws))
	}

	first := raws[0]
	if first.Title != "Go Developer" || first.Employer != "Acme" {
		t.Errorf("first record mapping: %+v", first)
	}
	if !first.HasSalary || first.SalaryFrom != 1000 || first.SalaryTo != 0 {
		t.Errorf("salary mapping: %+v", first)
	}
	if first.Currency != "USD" {
		t.Errorf("currency: got %q, want USD", first.Currency)
	}
	if first.DateFormat != models.DateISO8601 || first.Published != "2024-03-01T10:00:00+0300" {
		t.Errorf("date mapping: %+v", first)
	}
	if first.Source != "hh" {
		t.Errorf("source: got %q, want hh", first.Source)
	}

	// Null salary block → the unknown-salary marker.
	second := raws[1]
	if second.HasSalary || second.SalaryFrom != 0 || second.SalaryTo != 0 || second.Currency != "" {
		t.Errorf("no-salary mapping: %+v", second)
	}

	// Legacy ruble code is canonicalized.
	third := raws[2]
	if third.Currency != "RUB" {
		t.Errorf("RUR must map to RUB, got %q", third.Currency)
	}
}

func TestHeadHunterStopsOnEmptyPage(t *testing.T) {
	var pagesServed []string
	h := newTestHH(t, func(w http.ResponseWriter, r *http.Request) {
		page := r.URL.Query().Get("page")
		pagesServed = append(pagesServed, page)
		if n, _ := strconv.Atoi(page); n >= 1 {
			_, _ = w.Write([]byte(`{"items": []}`))
			return
		}
		_, _ = w.Write([]byte(hhSampleJSON))
	})

	raws, err := h.Fetch(context.Background(), "go", 5)
	if err != nil {
		t.Fatalf("Fetch: %v", err)
	}
	if len(raws) != 3 {
		t.Errorf("got %d records, want 3", len(raws))
	}
	if len(pagesServed) != 2 {
		t.Errorf("pagination must stop after the first empty page, served %v", pagesServed)
	}
}

func TestHeadHunterPartialResultsOnError(t *testing.T) {
	h := newTestHH(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Query().Get("page") == "0" {
			_, _ = w.Write([]byte(hhSampleJSON))
			return
		}
		w.WriteHeader(http.StatusInternalServerError)
	})

	raws, err := h.Fetch(context.Background(), "go", 2)
	if err == nil {
		t.Fatal("expected error from failing page")
	}
	if len(raws) != 3 {
		t.Errorf("first page results must survive, got %d", len(raws))
	}
}
