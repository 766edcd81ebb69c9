package services

import (
	"fmt"
	"sort"
	"strings"

	"github.com/VeraSamohina/skypro-course-work-OOP/models"
	"github.com/VeraSamohina/skypro-course-work-OOP/utils"
)

// ReportService computes a console summary over one normalized session.
type ReportService struct {
	logger *utils.Logger
}

// NewReportService creates a ReportService with the given logger.
func NewReportService(logger *utils.Logger) *ReportService {
	return &ReportService{logger: logger}
}

// Generate computes the summary. Salary statistics cover only vacancies
// with a known salary; the 0-sentinel records are counted separately.
func (s *ReportService) Generate(vacs []*models.Vacancy) *models.Report {
	report := &models.Report{
		VacanciesByTown: make(map[string]int),
	}

	if len(vacs) == 0 {
		return report
	}

	report.TotalVacancies = len(vacs)

	var paid []*models.Vacancy
	for _, v := range vacs {
		if v.Town != "" {
			report.VacanciesByTown[v.Town]++
		}
		if v.NormalizedSalary() > 0 {
			paid = append(paid, v)
		}
	}

	if len(paid) > 0 {
		report.WithSalary = len(paid)
		report.MinNormalized = paid[0].NormalizedSalary()
		report.MaxNormalized = paid[0].NormalizedSalary()
		var total float64
		for _, v := range paid {
			n := v.NormalizedSalary()
			total += n
			if n < report.MinNormalized {
				report.MinNormalized = n
			}
			if n > report.MaxNormalized {
				report.MaxNormalized = n
			}
		}
		report.AvgNormalized = round2(total / float64(len(paid)))

		best := make([]*models.Vacancy, len(paid))
		copy(best, paid)
		sort.SliceStable(best, func(i, j int) bool {
			return best[i].NormalizedSalary() > best[j].NormalizedSalary()
		})
		if len(best) > 5 {
			best = best[:5]
		}
		report.BestPaid = best
	}

	return report
}

// Print renders the report to the console.
func (s *ReportService) Print(r *models.Report) {
	sep := strings.Repeat("═", 54)
	thin := strings.Repeat("─", 54)

	fmt.Printf("\n\033[1;35m%s\033[0m\n", sep)
	fmt.Printf("\033[1;35m  VACANCY SEARCH SUMMARY\033[0m\n")
	fmt.Printf("\033[1;35m%s\033[0m\n\n", sep)

	fmt.Printf("\033[1;33m  Overview\033[0m\n")
	fmt.Printf("  %s\n", thin)
	fmt.Printf("  Total vacancies        : \033[1m%d\033[0m\n", r.TotalVacancies)
	fmt.Printf("  With stated salary     : \033[1m%d\033[0m\n", r.WithSalary)
	fmt.Printf("  Salary not specified   : \033[1m%d\033[0m\n", r.TotalVacancies-r.WithSalary)
	fmt.Println()

	fmt.Printf("\033[1;33m  Normalized Salary (base currency)\033[0m\n")
	fmt.Printf("  %s\n", thin)
	if r.WithSalary > 0 {
		fmt.Printf("  Average : \033[1;32m%.2f\033[0m\n", r.AvgNormalized)
		fmt.Printf("  Minimum : \033[1;32m%.2f\033[0m\n", r.MinNormalized)
		fmt.Printf("  Maximum : \033[1;32m%.2f\033[0m\n", r.MaxNormalized)
	} else {
		fmt.Printf("  No salary data available\n")
	}
	fmt.Println()

	fmt.Printf("\033[1;33m  Top 5 Best Paid\033[0m\n")
	fmt.Printf("  %s\n", thin)
	if len(r.BestPaid) == 0 {
		fmt.Printf("  No paid vacancies found\n")
	} else {
		for i, v := range r.BestPaid {
			fmt.Printf("  \033[1m%d.\033[0m %-40s \033[1;32m%.0f\033[0m\n",
				i+1, truncate(v.Title, 38), v.NormalizedSalary())
		}
	}
	fmt.Println()

	fmt.Printf("\033[1;33m  Vacancies by Town\033[0m\n")
	fmt.Printf("  %s\n", thin)
	if len(r.VacanciesByTown) == 0 {
		fmt.Printf("  No location data\n")
	} else {
		type townCount struct {
			town  string
			count int
		}
		var towns []townCount
		for town, cnt := range r.VacanciesByTown {
			towns = append(towns, townCount{town, cnt})
		}
		sort.Slice(towns, func(i, j int) bool {
			if towns[i].count != towns[j].count {
				return towns[i].count > towns[j].count
			}
			return towns[i].town < towns[j].town
		})
		if len(towns) > 10 {
			towns = towns[:10]
		}
		for _, tc := range towns {
			fmt.Printf("  %-30s %d\n", truncate(tc.town, 28), tc.count)
		}
	}

	fmt.Printf("\n\033[1;35m%s\033[0m\n\n", sep)
}

func round2(f float64) float64 {
	return float64(int(f*100+0.5)) / 100
}

// truncate shortens s to max runes. Titles and towns here are mostly
// Cyrillic, so cutting on bytes would split a rune in half.
func truncate(s string, max int) string {
	runes := []rune(s)
	if len(runes) <= max {
		return s
	}
	return string(runes[:max-3]) + "..."
}
