package models

import "fmt"

// DateLayout is the canonical publication-date pattern (DD.MM.YYYY) shared
// by normalization, date sorting and persistence.
const DateLayout = "02.01.2006"

// DateFormat tells the normalizer how a provider encodes publication dates.
type DateFormat int

const (
	// DateISO8601 — timestamp string, e.g. "2024-03-01T10:00:00+0300".
	DateISO8601 DateFormat = iota
	// DateUnixSeconds — epoch seconds as a decimal string.
	DateUnixSeconds
)

// RawVacancy is the provider-agnostic input shape of the normalizer. Each
// provider maps its own wire record into this struct; no provider-specific
// field names survive past this point.
type RawVacancy struct {
	Source     string // provider name, e.g. "hh" or "superjob"
	Title      string
	Employer   string
	SalaryFrom int
	SalaryTo   int
	Currency   string // canonical uppercase code; "" when HasSalary is false
	HasSalary  bool   // false when the provider gave no salary block at all
	Link       string
	Town       string
	Published  string // native date representation, interpreted per DateFormat
	DateFormat DateFormat
}

// Vacancy is the canonical, comparable record produced by the normalizer.
// SalaryFrom/SalaryTo are in the posting's native currency; 0 means "not
// specified". CurrencyRate converts the native salary to the base currency:
// 1 for base-currency postings, 0 when no salary was given, otherwise the
// looked-up exchange rate. Field order matches the stable key order of the
// structured line format.
type Vacancy struct {
	Title        string  `json:"title"`
	Link         string  `json:"link"`
	Employer     string  `json:"employer"`
	SalaryFrom   int     `json:"salary_from"`
	SalaryTo     int     `json:"salary_to"`
	Currency     string  `json:"currency"`
	CurrencyRate float64 `json:"currency_rate"`
	Town         string  `json:"town"`
	Date         string  `json:"date"` // DD.MM.YYYY
}

// NormalizedSalary is the only cross-provider-comparable monetary figure.
// Evaluates to 0 for unknown-salary vacancies.
func (v *Vacancy) NormalizedSalary() float64 {
	return float64(v.SalaryFrom) * v.CurrencyRate
}

// SalaryPhrase renders the native salary bounds for display. Normalized
// values are never shown — a converted number must not be presented as the
// posting's stated figure.
func (v *Vacancy) SalaryPhrase() string {
	switch {
	case v.SalaryFrom != 0 && v.SalaryTo != 0:
		return fmt.Sprintf("от %d до %d %s", v.SalaryFrom, v.SalaryTo, v.Currency)
	case v.SalaryFrom != 0:
		return fmt.Sprintf("от %d %s", v.SalaryFrom, v.Currency)
	case v.SalaryTo != 0:
		return fmt.Sprintf("до %d %s", v.SalaryTo, v.Currency)
	default:
		return "Не указана"
	}
}

// String renders the human-readable block consumed by the TXT writer and
// the console listing.
func (v *Vacancy) String() string {
	return fmt.Sprintf("%s\nРаботодатель: %s\nзарплата: %s\nдата публикации: %s\nссылка на вакансию %s\n%s\n",
		v.Title, v.Employer, v.SalaryPhrase(), v.Date, v.Link, v.Town)
}

// Report holds the computed summary over one normalized session.
type Report struct {
	TotalVacancies  int
	WithSalary      int
	MinNormalized   float64
	MaxNormalized   float64
	AvgNormalized   float64
	BestPaid        []*Vacancy
	VacanciesByTown map[string]int
}
