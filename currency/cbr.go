package currency

import (
	"context"
	"encoding/xml"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"golang.org/x/text/encoding/charmap"

	"github.com/VeraSamohina/skypro-course-work-OOP/utils"
)

const (
	cbrDailyURL = "https://www.cbr.ru/scripts/XML_daily.asp"
	httpTimeout = 15 * time.Second
)

// CBRClient fetches daily exchange rates from the Bank of Russia XML feed.
// The feed quotes every currency against the ruble, so the returned rate is
// directly usable as the salary multiplier.
type CBRClient struct {
	baseURL string
	client  *http.Client
	retry   *utils.RetryConfig
	logger  *utils.Logger
}

// NewCBRClient constructs a client with retrying HTTP transport.
func NewCBRClient(logger *utils.Logger, maxRetries int) *CBRClient {
	return &CBRClient{
		baseURL: cbrDailyURL,
		client:  &http.Client{Timeout: httpTimeout},
		retry: &utils.RetryConfig{
			MaxAttempts: maxRetries,
			BaseDelay:   time.Second,
			Logger:      logger,
		},
		logger: logger,
	}
}

// valCurs mirrors the top-level element of the XML_daily feed.
type valCurs struct {
	XMLName xml.Name `xml:"ValCurs"`
	Valutes []valute `xml:"Valute"`
}

type valute struct {
	CharCode string `xml:"CharCode"`
	Nominal  int    `xml:"Nominal"`
	Value    string `xml:"Value"` // decimal comma, e.g. "90,1234"
}

// Rate looks up the quote for code as of the given date. A missing code or
// an unreachable feed yields ErrRateUnavailable.
func (c *CBRClient) Rate(ctx context.Context, code string, asOf time.Time) (float64, error) {
	code = strings.ToUpper(strings.TrimSpace(code))

	var body []byte
	err := c.retry.Do(ctx, "cbr rate lookup", func() error {
		var reqErr error
		body, reqErr = c.fetchDaily(ctx, asOf)
		return reqErr
	})
	if err != nil {
		return 0, fmt.Errorf("%w: %s: %v", ErrRateUnavailable, code, err)
	}

	rates, err := parseDaily(body)
	if err != nil {
		return 0, fmt.Errorf("%w: %s: %v", ErrRateUnavailable, code, err)
	}

	rate, ok := rates[code]
	if !ok {
		return 0, fmt.Errorf("%w: code %s not quoted on %s", ErrRateUnavailable, code, asOf.Format("02.01.2006"))
	}
	return rate, nil
}

func (c *CBRClient) fetchDaily(ctx context.Context, asOf time.Time) ([]byte, error) {
	params := url.Values{}
	params.Set("date_req", asOf.Format("02/01/2006"))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"?"+params.Encode(), nil)
	if err != nil {
		return nil, err
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("http GET: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read body: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("cbr returned %d", resp.StatusCode)
	}
	return body, nil
}

// parseDaily decodes the windows-1251 feed into a code → rate map. The feed
// quotes some currencies per 10/100/10000 units, so the multiplier is
// Value/Nominal.
func parseDaily(body []byte) (map[string]float64, error) {
	decoder := xml.NewDecoder(strings.NewReader(string(body)))
	decoder.CharsetReader = func(charset string, input io.Reader) (io.Reader, error) {
		if strings.EqualFold(charset, "windows-1251") {
			return charmap.Windows1251.NewDecoder().Reader(input), nil
		}
		return nil, fmt.Errorf("unsupported charset %q", charset)
	}

	var feed valCurs
	if err := decoder.Decode(&feed); err != nil {
		return nil, fmt.Errorf("xml decode: %w", err)
	}

	rates := make(map[string]float64, len(feed.Valutes))
	for _, v := range feed.Valutes {
		if v.Nominal <= 0 {
			continue
		}
		value, err := strconv.ParseFloat(strings.ReplaceAll(v.Value, ",", "."), 64)
		if err != nil || value <= 0 {
			continue
		}
		rates[strings.ToUpper(v.CharCode)] = value / float64(v.Nominal)
	}
	return rates, nil
}
