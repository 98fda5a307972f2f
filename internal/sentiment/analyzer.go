package sentiment

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"math"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/acagil/borsabot/internal/contracts"
	"github.com/acagil/borsabot/pkg/config"
	"github.com/acagil/borsabot/pkg/httputil"
	"github.com/acagil/borsabot/pkg/logger"
)

const (
	newsQuery    = "borsa OR ekonomi OR \"stock market\" OR economy"
	newsPageSize = 50
	newsMaxAge   = 2 * 24 * time.Hour
)

// Analyzer produces the per-sector sentiment snapshot from recent news.
// Implements contracts.SentimentProvider.
type Analyzer struct {
	httpClient *httputil.Client
	scraper    *HeadlineScraper
	logger     *logger.Logger
	apiKey     string
	baseURL    string
}

// NewAnalyzer creates a sentiment analyzer. When no NewsAPI key is
// configured the analyzer scrapes headlines instead.
func NewAnalyzer(cfg config.NewsAPIConfig, httpClient *httputil.Client, scraper *HeadlineScraper, log *logger.Logger) *Analyzer {
	return &Analyzer{
		httpClient: httpClient,
		scraper:    scraper,
		logger:     log,
		apiKey:     cfg.APIKey,
		baseURL:    cfg.BaseURL,
	}
}

// Snapshot fetches recent headlines, scores each one and aggregates the
// scores per sector. A run with no usable news yields an empty map,
// which downstream treats as neutral.
func (a *Analyzer) Snapshot(ctx context.Context) (contracts.SectorSentiment, error) {
	headlines, err := a.fetchHeadlines(ctx)
	if err != nil {
		return nil, fmt.Errorf("fetch headlines: %w", err)
	}
	if len(headlines) == 0 {
		a.logger.Warn("No headlines available for sentiment snapshot")
		return contracts.SectorSentiment{}, nil
	}

	sums := make(map[string]float64)
	counts := make(map[string]int)

	for _, headline := range headlines {
		score := Score(headline)

		// Every article contributes to the general bucket.
		sums[contracts.SectorGeneral] += score
		counts[contracts.SectorGeneral]++

		for _, sector := range ClassifySectors(headline) {
			sums[sector] += score
			counts[sector]++
		}
	}

	snapshot := make(contracts.SectorSentiment, len(sums))
	for sector, sum := range sums {
		snapshot[sector] = round3(sum / float64(counts[sector]))
	}

	a.logger.WithFields(map[string]interface{}{
		"headlines": len(headlines),
		"sectors":   len(snapshot) - 1,
	}).Info("Sentiment snapshot built")

	return snapshot, nil
}

// fetchHeadlines returns headline texts from NewsAPI, or from the
// scraper fallback when no API key is configured.
func (a *Analyzer) fetchHeadlines(ctx context.Context) ([]string, error) {
	if a.apiKey == "" {
		a.logger.Debug("NEWS_API_KEY not set, falling back to headline scraping")
		return a.scraper.Headlines(ctx)
	}

	params := url.Values{}
	params.Set("q", newsQuery)
	params.Set("language", "en")
	params.Set("sortBy", "publishedAt")
	params.Set("pageSize", fmt.Sprintf("%d", newsPageSize))
	params.Set("from", time.Now().Add(-newsMaxAge).Format("2006-01-02"))
	params.Set("apiKey", a.apiKey)

	fullURL := fmt.Sprintf("%s/everything?%s", a.baseURL, params.Encode())

	resp, err := a.httpClient.Get(ctx, fullURL)
	if err != nil {
		return nil, fmt.Errorf("newsapi request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("newsapi: unexpected status %d", resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("newsapi read body failed: %w", err)
	}

	var payload struct {
		Articles []struct {
			Title       string `json:"title"`
			Description string `json:"description"`
		} `json:"articles"`
	}
	if err := json.Unmarshal(body, &payload); err != nil {
		return nil, fmt.Errorf("newsapi decode failed: %w", err)
	}

	headlines := make([]string, 0, len(payload.Articles))
	for _, article := range payload.Articles {
		text := strings.TrimSpace(article.Title + " " + article.Description)
		if text != "" {
			headlines = append(headlines, text)
		}
	}
	return headlines, nil
}

// Score assigns a sentiment score in [-1.0, +1.0] to a text by counting
// positive and negative keyword hits. Intensifier words scale both
// counts by 1.5x.
func Score(text string) float64 {
	if text == "" {
		return 0.0
	}

	words := strings.Fields(strings.ToLower(text))

	positiveCount := 0
	negativeCount := 0
	intensified := false

	for _, word := range words {
		if containsAny(word, positiveWords) {
			positiveCount++
		}
		if containsAny(word, negativeWords) {
			negativeCount++
		}
		if !intensified && containsAny(word, intensifiers) {
			intensified = true
		}
	}

	if intensified {
		positiveCount = int(float64(positiveCount) * 1.5)
		negativeCount = int(float64(negativeCount) * 1.5)
	}

	total := positiveCount + negativeCount
	if total == 0 {
		return 0.0
	}

	score := float64(positiveCount-negativeCount) / float64(total)
	return math.Max(-1.0, math.Min(1.0, score))
}

// ClassifySectors returns the sectors whose keywords appear in the text.
func ClassifySectors(text string) []string {
	textLower := strings.ToLower(text)

	sectors := make([]string, 0, 2)
	for sector, keywords := range sectorKeywords {
		for _, keyword := range keywords {
			if strings.Contains(textLower, keyword) {
				sectors = append(sectors, sector)
				break
			}
		}
	}
	return sectors
}

func containsAny(word string, list []string) bool {
	for _, item := range list {
		if strings.Contains(word, item) {
			return true
		}
	}
	return false
}

func round3(v float64) float64 {
	return math.Round(v*1000) / 1000
}
