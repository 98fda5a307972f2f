package sentiment

import (
	"context"
	"fmt"
	"net/http"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/acagil/borsabot/pkg/httputil"
	"github.com/acagil/borsabot/pkg/logger"
)

const maxScrapedHeadlines = 60

// HeadlineScraper pulls financial news headlines from public pages when
// no NewsAPI key is available. Best effort: an unreachable page yields
// an empty headline list, not a failure.
type HeadlineScraper struct {
	httpClient *httputil.Client
	logger     *logger.Logger
	sources    []scrapeSource
}

type scrapeSource struct {
	url      string
	selector string
}

// NewHeadlineScraper creates a scraper over the default sources.
func NewHeadlineScraper(httpClient *httputil.Client, log *logger.Logger) *HeadlineScraper {
	return &HeadlineScraper{
		httpClient: httpClient,
		logger:     log,
		sources: []scrapeSource{
			{url: "https://bigpara.hurriyet.com.tr/haberler/", selector: "ul.news-list li a"},
			{url: "https://www.bloomberght.com/borsa", selector: "div.widget-news-list a"},
		},
	}
}

// Headlines scrapes all configured sources and returns the collected
// headline texts.
func (s *HeadlineScraper) Headlines(ctx context.Context) ([]string, error) {
	headlines := make([]string, 0, maxScrapedHeadlines)

	for _, source := range s.sources {
		texts, err := s.scrape(ctx, source)
		if err != nil {
			s.logger.WithFields(map[string]interface{}{
				"url":   source.url,
				"error": err.Error(),
			}).Warn("Headline scrape failed")
			continue
		}
		headlines = append(headlines, texts...)
		if len(headlines) >= maxScrapedHeadlines {
			headlines = headlines[:maxScrapedHeadlines]
			break
		}
	}

	return headlines, nil
}

func (s *HeadlineScraper) scrape(ctx context.Context, source scrapeSource) ([]string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, source.url, nil)
	if err != nil {
		return nil, fmt.Errorf("create request failed: %w", err)
	}
	req.Header.Set("User-Agent", "Mozilla/5.0 (Macintosh; Intel Mac OS X 10_15_7) AppleWebKit/537.36")

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("unexpected status code: %d", resp.StatusCode)
	}

	doc, err := goquery.NewDocumentFromReader(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("parse HTML failed: %w", err)
	}

	texts := make([]string, 0, 20)
	doc.Find(source.selector).Each(func(_ int, sel *goquery.Selection) {
		text := strings.TrimSpace(sel.Text())
		if len(text) > 15 { // skip nav links and fragments
			texts = append(texts, text)
		}
	})

	return texts, nil
}
