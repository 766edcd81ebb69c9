package provider

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/VeraSamohina/skypro-course-work-OOP/models"
	"github.com/VeraSamohina/skypro-course-work-OOP/utils"
)

const (
	hhBaseURL  = "https://api.hh.ru/vacancies/"
	hhPageSize = 100
)

// HeadHunter fetches vacancies from the hh.ru public API. No credentials
// are required.
type HeadHunter struct {
	baseURL string
	client  *http.Client
	retry   *utils.RetryConfig
	logger  *utils.Logger
}

// NewHeadHunter constructs a client with a shared HTTP transport.
func NewHeadHunter(logger *utils.Logger, maxRetries int) *HeadHunter {
	return &HeadHunter{
		baseURL: hhBaseURL,
		client:  &http.Client{Timeout: httpTimeout},
		retry: &utils.RetryConfig{
			MaxAttempts: maxRetries,
			BaseDelay:   time.Second,
			Logger:      logger,
		},
		logger: logger,
	}
}

// hhResponse mirrors the top-level hh.ru search response.
type hhResponse struct {
	Items []hhItem `json:"items"`
}

type hhItem struct {
	Name         string     `json:"name"`
	Employer     hhEmployer `json:"employer"`
	Salary       *hhSalary  `json:"salary"`
	AlternateURL string     `json:"alternate_url"`
	Area         hhArea     `json:"area"`
	PublishedAt  string     `json:"published_at"` // ISO8601, e.g. 2024-03-01T10:00:00+0300
}

type hhEmployer struct {
	Name string `json:"name"`
}

// hhSalary is absent entirely when the posting names no salary; either
// bound may also be null on its own.
type hhSalary struct {
	From     *int   `json:"from"`
	To       *int   `json:"to"`
	Currency string `json:"currency"`
}

type hhArea struct {
	Name string `json:"name"`
}

// Name implements Provider.
func (h *HeadHunter) Name() string { return "hh" }

// Fetch retrieves up to pages result pages for query, stopping early on an
// empty page.
func (h *HeadHunter) Fetch(ctx context.Context, query string, pages int) ([]models.RawVacancy, error) {
	var out []models.RawVacancy

	for page := 0; page < pages; page++ {
		items, err := h.fetchPage(ctx, query, page)
		if err != nil {
			return out, fmt.Errorf("page %d: %w", page, err)
		}
		h.logger.Info("[hh] Page %d — %d vacancies", page, len(items))
		if len(items) == 0 {
			break
		}
		for _, item := range items {
			out = append(out, h.mapItem(item))
		}
	}

	return out, nil
}

func (h *HeadHunter) fetchPage(ctx context.Context, query string, page int) ([]hhItem, error) {
	params := url.Values{}
	params.Set("text", query)
	params.Set("page", strconv.Itoa(page))
	params.Set("per_page", strconv.Itoa(hhPageSize))
	params.Set("archived", "false")

	var resp hhResponse
	err := h.retry.Do(ctx, "hh page fetch", func() error {
		return getJSON(ctx, h.client, h.baseURL+"?"+params.Encode(), nil, &resp)
	})
	if err != nil {
		return nil, err
	}
	return resp.Items, nil
}

func (h *HeadHunter) mapItem(item hhItem) models.RawVacancy {
	raw := models.RawVacancy{
		Source:     h.Name(),
		Title:      item.Name,
		Employer:   item.Employer.Name,
		Link:       item.AlternateURL,
		Town:       item.Area.Name,
		Published:  item.PublishedAt,
		DateFormat: models.DateISO8601,
	}

	if item.Salary != nil {
		raw.HasSalary = true
		if item.Salary.From != nil {
			raw.SalaryFrom = *item.Salary.From
		}
		if item.Salary.To != nil {
			raw.SalaryTo = *item.Salary.To
		}
		raw.Currency = canonicalCurrency(item.Salary.Currency)
	}

	return raw
}

// getJSON performs one GET and decodes the JSON body into dst.
func getJSON(ctx context.Context, client *http.Client, reqURL string, headers map[string]string, dst any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return err
	}
	req.Header.Set("Accept", "application/json")
	for k, v := range headers {
		req.Header.Set(k, v)
	}

	resp, err := client.Do(req)
	if err != nil {
		return fmt.Errorf("http GET: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("read body: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("status %d: %s", resp.StatusCode, string(body))
	}
	if err := json.Unmarshal(body, dst); err != nil {
		return fmt.Errorf("json unmarshal: %w", err)
	}
	return nil
}
