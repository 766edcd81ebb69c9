package services

import (
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/VeraSamohina/skypro-course-work-OOP/models"
)

// ErrInvalidThreshold rejects a negative minimum-salary filter. The source
// collection is left untouched.
var ErrInvalidThreshold = errors.New("minimum salary threshold must be non-negative")

// SortByDateDesc reorders the collection in place by publication date, most
// recent first. The sort is stable: equal dates keep their prior relative
// order. An unparseable date here is a contract violation — normalization
// guarantees parseability — and is surfaced, not skipped.
func SortByDateDesc(vacs []*models.Vacancy) error {
	type keyed struct {
		vac *models.Vacancy
		at  time.Time
	}

	items := make([]keyed, len(vacs))
	for i, v := range vacs {
		at, err := time.Parse(models.DateLayout, v.Date)
		if err != nil {
			return fmt.Errorf("vacancy %q carries unparseable date %q: %w", v.Title, v.Date, err)
		}
		items[i] = keyed{vac: v, at: at}
	}

	sort.SliceStable(items, func(i, j int) bool {
		return items[i].at.After(items[j].at)
	})

	for i := range items {
		vacs[i] = items[i].vac
	}
	return nil
}

// SortBySalaryDesc reorders the collection in place by normalized salary,
// highest first, stable for ties. Unknown-salary vacancies evaluate to 0 and
// fall to the end without special-casing.
func SortBySalaryDesc(vacs []*models.Vacancy) {
	sort.SliceStable(vacs, func(i, j int) bool {
		return vacs[i].NormalizedSalary() > vacs[j].NormalizedSalary()
	})
}

// FilterByMinSalary returns a new slice with the vacancies whose normalized
// salary strictly exceeds min. A threshold of 0 still excludes
// unknown-salary vacancies. The source slice is not modified.
func FilterByMinSalary(vacs []*models.Vacancy, min float64) ([]*models.Vacancy, error) {
	if min < 0 {
		return nil, fmt.Errorf("%w: got %v", ErrInvalidThreshold, min)
	}

	out := make([]*models.Vacancy, 0, len(vacs))
	for _, v := range vacs {
		if v.NormalizedSalary() > min {
			out = append(out, v)
		}
	}
	return out, nil
}

// Render concatenates the human-readable blocks for the whole collection,
// one blank line between vacancies. Empty input renders to an empty string.
func Render(vacs []*models.Vacancy) string {
	var b strings.Builder
	for _, v := range vacs {
		b.WriteString(v.String())
		b.WriteByte('\n')
	}
	return b.String()
}
