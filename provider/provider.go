// Package provider implements the per-source vacancy clients. Each provider
// owns its wire schema and pagination quirks and maps every record into the
// normalizer's input shape, so no provider-specific branching leaks into the
// normalization logic.
package provider

import (
	"context"
	"strings"
	"time"

	"github.com/VeraSamohina/skypro-course-work-OOP/models"
	"github.com/VeraSamohina/skypro-course-work-OOP/utils"
)

const httpTimeout = 15 * time.Second

// Provider fetches raw vacancy records for a search query, up to the given
// number of pages, already mapped to the normalizer's input shape.
type Provider interface {
	Name() string
	Fetch(ctx context.Context, query string, pages int) ([]models.RawVacancy, error)
}

// currencyAliases maps provider wire codes to the canonical uppercase code.
// hh.ru still reports the ruble under its legacy code.
var currencyAliases = map[string]string{
	"RUR": "RUB",
}

func canonicalCurrency(code string) string {
	code = strings.ToUpper(strings.TrimSpace(code))
	if canon, ok := currencyAliases[code]; ok {
		return canon
	}
	return code
}

// FetchAll runs every provider through the pool, each writing into its own
// buffer, and merges the buffers sequentially once all have finished. A
// failed provider is logged and contributes whatever it managed to fetch;
// it never discards the other providers' results.
func FetchAll(ctx context.Context, providers []Provider, query string, pages int, pool *utils.WorkerPool, logger *utils.Logger) []models.RawVacancy {
	buffers := make([][]models.RawVacancy, len(providers))

	for i, p := range providers {
		i, p := i, p
		pool.Submit(func() {
			records, err := p.Fetch(ctx, query, pages)
			if err != nil {
				logger.Error("[provider] %s fetch failed: %v", p.Name(), err)
			}
			buffers[i] = records
		})
	}
	pool.Wait()

	var merged []models.RawVacancy
	for _, buf := range buffers {
		merged = append(merged, buf...)
	}
	return merged
}
