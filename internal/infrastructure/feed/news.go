package feed

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/mmcdole/gofeed"

	"LaunchTracker/internal/config"
	"LaunchTracker/internal/domain"
	"LaunchTracker/internal/scanner"
)

// NewsScanner queries a news search endpoint and decodes the RSS/Atom response.
type NewsScanner struct {
	client         *http.Client
	endpoint       string
	querySuffix    string
	timeout        time.Duration
	userAgent      string
	acceptLanguage string
}

var _ scanner.Scanner = (*NewsScanner)(nil)

// NewNewsScanner wires an HTTP client; a nil client gets the configured timeout.
func NewNewsScanner(client *http.Client, cfg config.FeedConfig) *NewsScanner {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 5 * time.Second
	}
	if client == nil {
		client = &http.Client{Timeout: timeout}
	}
	return &NewsScanner{
		client:         client,
		endpoint:       cfg.Endpoint,
		querySuffix:    cfg.QuerySuffix,
		timeout:        timeout,
		userAgent:      cfg.UserAgent,
		acceptLanguage: cfg.AcceptLanguage,
	}
}

// Name identifies the strategy inside the registry.
func (n *NewsScanner) Name() string {
	return "news"
}

// Scan searches for the developer's launches. req.URL overrides the configured endpoint.
func (n *NewsScanner) Scan(ctx context.Context, req scanner.Request) ([]domain.RawItem, error) {
	endpoint := n.endpoint
	if req.URL != "" {
		endpoint = req.URL
	}
	if endpoint == "" {
		return nil, fmt.Errorf("news endpoint is not configured")
	}

	ctx, cancel := context.WithTimeout(ctx, n.timeout)
	defer cancel()

	searchURL := SearchURL(endpoint, Query(req.Developer.Name, n.querySuffix))
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodGet, searchURL, nil)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	if n.userAgent != "" {
		httpReq.Header.Set("User-Agent", n.userAgent)
	}
	if n.acceptLanguage != "" {
		httpReq.Header.Set("Accept-Language", n.acceptLanguage)
	}

	resp, err := n.client.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("request feed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("feed returned %s", resp.Status)
	}

	items, err := decode(resp.Body, 0)
	if err != nil {
		return nil, fmt.Errorf("parse feed: %w", err)
	}
	return items, nil
}

// ParseXML decodes feed XML supplied directly by a user. limit <= 0 keeps every item.
func ParseXML(r io.Reader, limit int) ([]domain.RawItem, error) {
	items, err := decode(r, limit)
	if err != nil {
		return nil, &domain.ParseError{Source: "feed xml", Err: err}
	}
	return items, nil
}

// Query builds the search phrase for one developer.
func Query(developer, suffix string) string {
	return strings.TrimSpace(strings.TrimSpace(developer) + " " + strings.TrimSpace(suffix))
}

// SearchURL substitutes the escaped query into the first %s of endpoint,
// or appends it as the q parameter when there is no placeholder.
func SearchURL(endpoint, query string) string {
	escaped := url.QueryEscape(query)
	if strings.Contains(endpoint, "%s") {
		return strings.Replace(endpoint, "%s", escaped, 1)
	}
	sep := "?"
	if strings.Contains(endpoint, "?") {
		sep = "&"
	}
	return endpoint + sep + "q=" + escaped
}

func decode(r io.Reader, limit int) ([]domain.RawItem, error) {
	parsed, err := gofeed.NewParser().Parse(r)
	if err != nil {
		return nil, err
	}

	items := make([]domain.RawItem, 0, len(parsed.Items))
	for _, it := range parsed.Items {
		if it == nil {
			continue
		}
		title := strings.TrimSpace(it.Title)
		if title == "" {
			continue
		}
		pub := it.Published
		if pub == "" {
			pub = it.Updated
		}
		items = append(items, domain.RawItem{
			Title:   title,
			Link:    strings.TrimSpace(it.Link),
			PubDate: strings.TrimSpace(pub),
		})
		if limit > 0 && len(items) == limit {
			break
		}
	}
	return items, nil
}
