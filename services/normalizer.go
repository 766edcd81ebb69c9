// Package services holds the normalization and ranking engine: the raw
// record → canonical vacancy transformation and the sort/filter/render
// operations over the canonical collection.
package services

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/VeraSamohina/skypro-course-work-OOP/currency"
	"github.com/VeraSamohina/skypro-course-work-OOP/models"
	"github.com/VeraSamohina/skypro-course-work-OOP/utils"
)

// ErrMalformedRecord marks a raw record with a missing or unparseable
// required field. The record is dropped; the batch continues.
var ErrMalformedRecord = errors.New("malformed provider record")

// renamedCurrencies translates deprecated codes to their current ones before
// the rate lookup — the rate source only quotes current codes. A fixed,
// explicit table, never inferred.
var renamedCurrencies = map[string]string{
	"BYR": "BYN",
}

// iso8601Layouts covers the timestamp shapes providers actually emit:
// offset with a colon, hh.ru's offset without one, and no offset at all.
var iso8601Layouts = []string{
	time.RFC3339,
	"2006-01-02T15:04:05-0700",
	"2006-01-02T15:04:05",
}

// Normalizer converts raw provider records into canonical vacancies. It is
// the only component that talks to the currency gateway, at most once per
// record.
type Normalizer struct {
	gateway   currency.Gateway
	baseCode  string // canonical base-currency code, e.g. "RUB"
	baseLabel string // display label for the base currency, e.g. "рублей"
	now       func() time.Time
	logger    *utils.Logger
}

// NewNormalizer creates a Normalizer converting into the given base currency.
func NewNormalizer(gateway currency.Gateway, baseCode, baseLabel string, logger *utils.Logger) *Normalizer {
	return &Normalizer{
		gateway:   gateway,
		baseCode:  strings.ToUpper(strings.TrimSpace(baseCode)),
		baseLabel: baseLabel,
		now:       time.Now,
		logger:    logger,
	}
}

// Normalize maps one raw record into a canonical vacancy. It never mutates
// the input; on any failure no partially constructed vacancy escapes.
func (n *Normalizer) Normalize(ctx context.Context, raw models.RawVacancy) (*models.Vacancy, error) {
	date, err := n.resolveDate(raw)
	if err != nil {
		return nil, err
	}

	vac := &models.Vacancy{
		Title:    raw.Title,
		Employer: raw.Employer,
		Link:     raw.Link,
		Town:     raw.Town,
		Date:     date,
	}

	if !raw.HasSalary {
		// Zeros everywhere: the unknown-salary marker. CurrencyRate 0
		// keeps the normalized salary at 0 for ranking.
		return vac, nil
	}

	vac.SalaryFrom = raw.SalaryFrom
	vac.SalaryTo = raw.SalaryTo

	code := strings.ToUpper(strings.TrimSpace(raw.Currency))
	if renamed, ok := renamedCurrencies[code]; ok {
		code = renamed
	}

	if code == n.baseCode {
		// Base currency short-circuits the gateway entirely.
		vac.Currency = n.baseLabel
		vac.CurrencyRate = 1
		return vac, nil
	}

	rate, err := n.gateway.Rate(ctx, code, n.now())
	if err != nil {
		return nil, fmt.Errorf("%s record %q (currency %s): %w", raw.Source, raw.Title, code, err)
	}

	vac.Currency = code
	vac.CurrencyRate = rate
	return vac, nil
}

// NormalizeAll applies Normalize to every record with per-record isolation:
// a failed record is logged and skipped, one bad record never discards the
// batch.
func (n *Normalizer) NormalizeAll(ctx context.Context, raws []models.RawVacancy) []*models.Vacancy {
	out := make([]*models.Vacancy, 0, len(raws))

	for _, raw := range raws {
		vac, err := n.Normalize(ctx, raw)
		if err != nil {
			n.logger.Warn("[normalizer] Dropping record %q from %s: %v", raw.Title, raw.Source, err)
			continue
		}
		out = append(out, vac)
	}

	n.logger.Info("[normalizer] Normalized %d → %d vacancies (dropped %d)",
		len(raws), len(out), len(raws)-len(out))
	return out
}

// resolveDate parses the provider's native date representation into the
// canonical DD.MM.YYYY form. A parse failure fails the record — a fabricated
// placeholder date would corrupt the date sort downstream.
func (n *Normalizer) resolveDate(raw models.RawVacancy) (string, error) {
	published := strings.TrimSpace(raw.Published)
	if published == "" {
		return "", fmt.Errorf("%w: empty publication date", ErrMalformedRecord)
	}

	switch raw.DateFormat {
	case models.DateUnixSeconds:
		seconds, err := strconv.ParseInt(published, 10, 64)
		if err != nil {
			return "", fmt.Errorf("%w: bad epoch timestamp %q", ErrMalformedRecord, published)
		}
		return time.Unix(seconds, 0).UTC().Format(models.DateLayout), nil
	default:
		for _, layout := range iso8601Layouts {
			if t, err := time.Parse(layout, published); err == nil {
				return t.Format(models.DateLayout), nil
			}
		}
		return "", fmt.Errorf("%w: unparseable timestamp %q", ErrMalformedRecord, published)
	}
}
