package yahoo

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"sort"
	"time"

	"github.com/acagil/borsabot/internal/contracts"
	"github.com/acagil/borsabot/pkg/httputil"
	"github.com/acagil/borsabot/pkg/logger"
	"github.com/acagil/borsabot/pkg/redis"
)

const cacheTTL = 24 * time.Hour

// Client fetches daily OHLCV data from the Yahoo Finance chart API.
// Implements contracts.PriceProvider.
// SSOT: Yahoo Finance calls happen in this client only.
type Client struct {
	httpClient *httputil.Client
	cache      *redis.Cache
	logger     *logger.Logger
	baseURL    string
}

// NewClient creates a new Yahoo Finance client. cache may be a disabled
// cache; lookups then always miss.
func NewClient(httpClient *httputil.Client, cache *redis.Cache, log *logger.Logger) *Client {
	return &Client{
		httpClient: httpClient,
		cache:      cache,
		logger:     log,
		baseURL:    "https://query1.finance.yahoo.com/v8/finance/chart",
	}
}

// chartResponse is the Yahoo chart API response shape.
type chartResponse struct {
	Chart struct {
		Result []struct {
			Timestamp  []int64 `json:"timestamp"`
			Indicators struct {
				Quote []struct {
					Open   []*float64 `json:"open"`
					High   []*float64 `json:"high"`
					Low    []*float64 `json:"low"`
					Close  []*float64 `json:"close"`
					Volume []*float64 `json:"volume"`
				} `json:"quote"`
			} `json:"indicators"`
		} `json:"result"`
		Error *struct {
			Code        string `json:"code"`
			Description string `json:"description"`
		} `json:"error"`
	} `json:"chart"`
}

// FetchHistory returns the daily candles for a ticker in [start, end].
// An empty series means Yahoo had no data for the range.
func (c *Client) FetchHistory(ctx context.Context, ticker string, start, end time.Time) (contracts.PriceSeries, error) {
	cacheKey := fmt.Sprintf("prices:%s:%s:%s", ticker, start.Format("2006-01-02"), end.Format("2006-01-02"))

	var cached contracts.PriceSeries
	if found, err := c.cache.Get(ctx, cacheKey, &cached); err == nil && found {
		return cached, nil
	}

	fullURL := fmt.Sprintf("%s/%s?interval=1d&period1=%d&period2=%d",
		c.baseURL, url.PathEscape(ticker), start.Unix(), end.Unix())

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, fullURL, nil)
	if err != nil {
		return nil, fmt.Errorf("create request failed: %w", err)
	}
	req.Header.Set("User-Agent", "Mozilla/5.0")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("yahoo fetch failed: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("yahoo read body failed: %w", err)
	}
	if resp.StatusCode == http.StatusNotFound {
		return nil, nil // unknown ticker: no data, not an error
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("yahoo: unexpected status %d", resp.StatusCode)
	}

	series, err := parseChart(body)
	if err != nil {
		return nil, fmt.Errorf("yahoo parse failed: %w", err)
	}

	if err := c.cache.Set(ctx, cacheKey, series, cacheTTL); err != nil {
		c.logger.WithError(err).Warn("Price cache write failed")
	}

	c.logger.WithFields(map[string]interface{}{
		"ticker": ticker,
		"from":   start.Format("2006-01-02"),
		"to":     end.Format("2006-01-02"),
		"rows":   len(series),
	}).Debug("Fetched price history")

	return series, nil
}

// parseChart converts the chart JSON into a time-ascending series,
// skipping null bars (holidays, halted sessions).
func parseChart(body []byte) (contracts.PriceSeries, error) {
	var chart chartResponse
	if err := json.Unmarshal(body, &chart); err != nil {
		return nil, fmt.Errorf("decode failed: %w", err)
	}
	if chart.Chart.Error != nil {
		return nil, fmt.Errorf("api error: %s", chart.Chart.Error.Description)
	}
	if len(chart.Chart.Result) == 0 || len(chart.Chart.Result[0].Timestamp) == 0 {
		return nil, nil
	}

	result := chart.Chart.Result[0]
	if len(result.Indicators.Quote) == 0 {
		return nil, nil
	}
	quote := result.Indicators.Quote[0]

	series := make(contracts.PriceSeries, 0, len(result.Timestamp))
	for i, ts := range result.Timestamp {
		o := deref(quote.Open, i)
		h := deref(quote.High, i)
		l := deref(quote.Low, i)
		cl := deref(quote.Close, i)
		if o == 0 && h == 0 && l == 0 && cl == 0 {
			continue
		}
		series = append(series, contracts.Candle{
			Time:   time.Unix(ts, 0).UTC(),
			Open:   o,
			High:   h,
			Low:    l,
			Close:  cl,
			Volume: deref(quote.Volume, i),
		})
	}

	sort.Slice(series, func(i, j int) bool { return series[i].Time.Before(series[j].Time) })
	return series, nil
}

func deref(values []*float64, i int) float64 {
	if i >= len(values) || values[i] == nil {
		return 0
	}
	return *values[i]
}
