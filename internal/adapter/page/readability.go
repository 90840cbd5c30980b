// Package page fetches web pages and reduces them to readable text units
// via readability extraction.
package page

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/go-shiori/go-readability"

	"github.com/SelfStudyHebrew/SelfStudyHebrew/internal/adapter/hebrew"
	"github.com/SelfStudyHebrew/SelfStudyHebrew/internal/domain"
)

const (
	userAgent = "selfstudy/1.0"
	// maxBodySize caps untrusted HTML reads.
	maxBodySize = 10 << 20
)

// Extractor fetches a URL and extracts its article text.
type Extractor struct {
	client *http.Client
	logger *slog.Logger
}

func NewExtractor(timeout time.Duration, logger *slog.Logger) *Extractor {
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Extractor{
		client: &http.Client{Timeout: timeout},
		logger: logger,
	}
}

func (e *Extractor) Extract(ctx context.Context, pageURL string) (*domain.Page, error) {
	parsed, err := url.Parse(pageURL)
	if err != nil {
		return nil, fmt.Errorf("parsing url: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, pageURL, nil)
	if err != nil {
		return nil, fmt.Errorf("building request: %w", err)
	}
	req.Header.Set("User-Agent", userAgent)
	req.Header.Set("Accept", "text/html,application/xhtml+xml")

	resp, err := e.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetching page: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("fetching page: status %d", resp.StatusCode)
	}

	return e.extract(resp.Body, parsed, pageURL)
}

// ExtractHTML reduces HTML already on hand (a saved page, a local file) to
// text units. source labels the result; relative links resolve against a
// placeholder host.
func (e *Extractor) ExtractHTML(r io.Reader, source string) (*domain.Page, error) {
	base, _ := url.Parse("http://localhost/")
	return e.extract(r, base, source)
}

func (e *Extractor) extract(r io.Reader, base *url.URL, source string) (*domain.Page, error) {
	article, err := readability.FromReader(io.LimitReader(r, maxBodySize), base)
	if err != nil {
		return nil, fmt.Errorf("extracting article: %w", err)
	}

	units := splitParagraphs(hebrew.NormalizeInput(article.TextContent))
	e.logger.Debug("page extracted",
		"source", source, "title", article.Title, "units", len(units))

	return &domain.Page{
		URL:   source,
		Title: article.Title,
		Units: units,
	}, nil
}

// splitParagraphs turns readability text output into paragraph units.
// TextContent separates blocks with newlines; blank and whitespace-only
// lines are dropped.
func splitParagraphs(text string) []string {
	var units []string
	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		units = append(units, line)
	}
	return units
}
