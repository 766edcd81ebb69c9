package services

import (
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/VeraSamohina/skypro-course-work-OOP/models"
	"github.com/VeraSamohina/skypro-course-work-OOP/utils"
)

func sampleVacancies() []*models.Vacancy {
	return []*models.Vacancy{
		{Title: "Senior Go", SalaryFrom: 3000, CurrencyRate: 90, Town: "Москва", Date: "01.03.2024"},
		{Title: "Middle Go", SalaryFrom: 150000, CurrencyRate: 1, Town: "Москва", Date: "02.03.2024"},
		{Title: "Junior Go", SalaryFrom: 80000, CurrencyRate: 1, Town: "Казань", Date: "03.03.2024"},
		{Title: "Intern", Town: "Казань", Date: "04.03.2024"},
	}
}

func TestReportCounts(t *testing.T) {
	svc := NewReportService(utils.NewLogger())
	r := svc.Generate(sampleVacancies())

	if r.TotalVacancies != 4 {
		t.Errorf("TotalVacancies: got %d, want 4", r.TotalVacancies)
	}
	if r.WithSalary != 3 {
		t.Errorf("WithSalary: got %d, want 3", r.WithSalary)
	}
}

func TestReportSalaryStats(t *testing.T) {
	svc := NewReportService(utils.NewLogger())
	r := svc.Generate(sampleVacancies())

	if r.MinNormalized != 80000 {
		t.Errorf("MinNormalized: got %v, want 80000", r.MinNormalized)
	}
	if r.MaxNormalized != 270000 {
		t.Errorf("MaxNormalized: got %v, want 270000", r.MaxNormalized)
	}
	wantAvg := round2((270000.0 + 150000.0 + 80000.0) / 3)
	if r.AvgNormalized != wantAvg {
		t.Errorf("AvgNormalized: got %v, want %v", r.AvgNormalized, wantAvg)
	}
}

func TestReportBestPaid(t *testing.T) {
	svc := NewReportService(utils.NewLogger())
	r := svc.Generate(sampleVacancies())

	if len(r.BestPaid) != 3 {
		t.Fatalf("BestPaid len: got %d, want 3", len(r.BestPaid))
	}
	if r.BestPaid[0].Title != "Senior Go" {
		t.Errorf("BestPaid[0]: got %q, want Senior Go", r.BestPaid[0].Title)
	}
}

func TestReportTownGrouping(t *testing.T) {
	svc := NewReportService(utils.NewLogger())
	r := svc.Generate(sampleVacancies())

	if r.VacanciesByTown["Москва"] != 2 {
		t.Errorf("Москва count: got %d, want 2", r.VacanciesByTown["Москва"])
	}
	if r.VacanciesByTown["Казань"] != 2 {
		t.Errorf("Казань count: got %d, want 2", r.VacanciesByTown["Казань"])
	}
}

func TestTruncateKeepsRunesIntact(t *testing.T) {
	tests := []struct {
		in  string
		max int
	}{
		{"Менеджер по продажам недвижимости в Москве", 38},
		{"Санкт-Петербург и Ленинградская область", 28},
		{"short", 38},
		{"Казань", 28},
	}

	for _, tt := range tests {
		got := truncate(tt.in, tt.max)
		if !utf8.ValidString(got) {
			t.Errorf("truncate(%q, %d) produced invalid UTF-8: %q", tt.in, tt.max, got)
		}
		if utf8.RuneCountInString(got) > tt.max {
			t.Errorf("truncate(%q, %d) is %d runes long", tt.in, tt.max, utf8.RuneCountInString(got))
		}
		if utf8.RuneCountInString(tt.in) <= tt.max {
			if got != tt.in {
				t.Errorf("truncate(%q, %d) changed a string under the budget: %q", tt.in, tt.max, got)
			}
		} else if !strings.HasSuffix(got, "...") {
			t.Errorf("truncate(%q, %d) = %q, missing ellipsis", tt.in, tt.max, got)
		}
	}
}

func TestReportEmptyInput(t *testing.T) {
	svc := NewReportService(utils.NewLogger())
	r := svc.Generate(nil)
	if r.TotalVacancies != 0 || r.WithSalary != 0 || len(r.BestPaid) != 0 {
		t.Errorf("expected zeroed report for empty input, got %+v", r)
	}
}
