package fetch

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	nurl "net/url"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/PuerkitoBio/goquery"
	readability "github.com/go-shiori/go-readability"
)

const (
	DefaultTimeout  = 10 * time.Second
	MaxCharsDefault = 20000

	// browser-like identity so trivially bot-blocked sites still answer
	userAgent    = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/121.0.0.0 Safari/537.36"
	acceptHeader = "text/html,application/xhtml+xml,application/xml;q=0.9,*/*;q=0.8"
)

// Extractor turns one URL into its plain-text body.
type Extractor interface {
	Extract(ctx context.Context, url string) (string, error)
}

type EngineType string

const (
	HTTPEngine     EngineType = "http"
	ChromedpEngine EngineType = "chromedp"
)

// NewExtractor builds the configured extraction engine.
func NewExtractor(engine EngineType, timeout time.Duration, maxChars int) (Extractor, error) {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	if maxChars <= 0 {
		maxChars = MaxCharsDefault
	}
	switch engine {
	case HTTPEngine, "":
		return &httpExtractor{
			client:   &http.Client{Timeout: timeout},
			maxChars: maxChars,
		}, nil
	case ChromedpEngine:
		return &chromedpExtractor{timeout: timeout, maxChars: maxChars}, nil
	default:
		return nil, fmt.Errorf("unsupported fetch engine: %s", engine)
	}
}

// httpExtractor fetches a page with a plain HTTP GET and reduces it to
// article text via readability, falling back to joining <p> nodes when
// readability finds nothing usable.
type httpExtractor struct {
	client   *http.Client
	maxChars int
}

func (e *httpExtractor) Extract(ctx context.Context, url string) (string, error) {
	if strings.TrimSpace(url) == "" {
		return "", errors.New("invalid url")
	}

	req, err := http.NewRequestWithContext(ctx, "GET", url, nil)
	if err != nil {
		return "", fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("User-Agent", userAgent)
	req.Header.Set("Accept", acceptHeader)
	req.Header.Set("Accept-Language", "en-US,en;q=0.5")

	resp, err := e.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("fetch %s: %w", url, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return "", fmt.Errorf("fetch %s: status %d", url, resp.StatusCode)
	}

	doc, err := goquery.NewDocumentFromReader(resp.Body)
	if err != nil {
		return "", fmt.Errorf("parse %s: %w", url, err)
	}
	html, err := doc.Html()
	if err != nil {
		return "", fmt.Errorf("parse %s: %w", url, err)
	}

	return truncate(extractText(html, doc, url), e.maxChars), nil
}

// truncate caps text at max bytes without splitting a multi-byte rune.
func truncate(text string, max int) string {
	if len(text) <= max {
		return text
	}
	for max > 0 && !utf8.RuneStart(text[max]) {
		max--
	}
	return text[:max]
}

// extractText prefers readability's article body; when that comes back
// empty it joins the page's paragraph nodes instead.
func extractText(html string, doc *goquery.Document, url string) string {
	article, err := readability.FromReader(strings.NewReader(html), mustParseURL(url))
	if err == nil {
		if t := strings.TrimSpace(article.TextContent); t != "" {
			return t
		}
	}
	var parts []string
	doc.Find("p").Each(func(_ int, s *goquery.Selection) {
		if t := strings.TrimSpace(s.Text()); t != "" {
			parts = append(parts, t)
		}
	})
	return strings.Join(parts, "\n")
}

func mustParseURL(raw string) *nurl.URL {
	u, err := nurl.Parse(raw)
	if err != nil {
		return &nurl.URL{}
	}
	return u
}
