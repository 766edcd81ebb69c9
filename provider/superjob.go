package provider

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/VeraSamohina/skypro-course-work-OOP/models"
	"github.com/VeraSamohina/skypro-course-work-OOP/utils"
)

const (
	sjBaseURL  = "https://api.superjob.ru/2.0/vacancies"
	sjPageSize = 100
)

// SuperJob fetches vacancies from the superjob.ru API. The application key
// is passed in at construction, not read from process-wide state.
type SuperJob struct {
	baseURL string
	apiKey  string
	client  *http.Client
	retry   *utils.RetryConfig
	logger  *utils.Logger
}

// NewSuperJob constructs a client authenticating with apiKey.
func NewSuperJob(apiKey string, logger *utils.Logger, maxRetries int) *SuperJob {
	return &SuperJob{
		baseURL: sjBaseURL,
		apiKey:  apiKey,
		client:  &http.Client{Timeout: httpTimeout},
		retry: &utils.RetryConfig{
			MaxAttempts: maxRetries,
			BaseDelay:   time.Second,
			Logger:      logger,
		},
		logger: logger,
	}
}

// sjResponse mirrors the top-level SuperJob search response.
type sjResponse struct {
	Objects []sjObject `json:"objects"`
}

// sjObject carries salary bounds inline; 0 means the bound is not set.
type sjObject struct {
	Profession    string `json:"profession"`
	FirmName      string `json:"firm_name"`
	PaymentFrom   int    `json:"payment_from"`
	PaymentTo     int    `json:"payment_to"`
	Currency      string `json:"currency"` // lowercase wire code, e.g. "rub"
	Link          string `json:"link"`
	Town          sjTown `json:"town"`
	DatePublished int64  `json:"date_published"` // epoch seconds
}

type sjTown struct {
	Title string `json:"title"`
}

// Name implements Provider.
func (s *SuperJob) Name() string { return "superjob" }

// Fetch retrieves up to pages result pages for query, stopping early on an
// empty page. A missing API key skips the provider gracefully.
func (s *SuperJob) Fetch(ctx context.Context, query string, pages int) ([]models.RawVacancy, error) {
	if s.apiKey == "" {
		s.logger.Warn("[superjob] API key not configured — skipping provider")
		return nil, nil
	}

	var out []models.RawVacancy

	for page := 0; page < pages; page++ {
		objects, err := s.fetchPage(ctx, query, page)
		if err != nil {
			return out, fmt.Errorf("page %d: %w", page, err)
		}
		s.logger.Info("[superjob] Page %d — %d vacancies", page, len(objects))
		if len(objects) == 0 {
			break
		}
		for _, obj := range objects {
			out = append(out, s.mapObject(obj))
		}
	}

	return out, nil
}

func (s *SuperJob) fetchPage(ctx context.Context, query string, page int) ([]sjObject, error) {
	params := url.Values{}
	params.Set("keyword", query)
	params.Set("count", strconv.Itoa(sjPageSize))
	params.Set("page", strconv.Itoa(page))
	params.Set("archive", "false")

	headers := map[string]string{"X-Api-App-Id": s.apiKey}

	var resp sjResponse
	err := s.retry.Do(ctx, "superjob page fetch", func() error {
		return getJSON(ctx, s.client, s.baseURL+"?"+params.Encode(), headers, &resp)
	})
	if err != nil {
		return nil, err
	}
	return resp.Objects, nil
}

// mapObject converts one wire record. SuperJob reports a currency even for
// postings with no stated salary, so "has salary" is derived from the
// bounds: both zero means not specified.
func (s *SuperJob) mapObject(obj sjObject) models.RawVacancy {
	raw := models.RawVacancy{
		Source:     s.Name(),
		Title:      obj.Profession,
		Employer:   obj.FirmName,
		Link:       obj.Link,
		Town:       obj.Town.Title,
		Published:  strconv.FormatInt(obj.DatePublished, 10),
		DateFormat: models.DateUnixSeconds,
	}

	if obj.PaymentFrom != 0 || obj.PaymentTo != 0 {
		raw.HasSalary = true
		raw.SalaryFrom = obj.PaymentFrom
		raw.SalaryTo = obj.PaymentTo
		raw.Currency = canonicalCurrency(obj.Currency)
	}

	return raw
}
