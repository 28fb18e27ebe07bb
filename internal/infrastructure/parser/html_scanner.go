package parser

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"

	"LaunchTracker/internal/domain"
	"LaunchTracker/internal/scanner"
)

// Selector option keys understood by HTMLScanner.
const (
	OptionItem  = "item"
	OptionTitle = "title"
	OptionLink  = "link"
	OptionDate  = "date"
)

var defaultSelectors = map[string]string{
	OptionItem:  "article",
	OptionTitle: "h1, h2, h3",
	OptionLink:  "a[href]",
	OptionDate:  "time",
}

// HTMLScanner scrapes a developer's launches page with CSS selectors from config.
type HTMLScanner struct {
	client *http.Client
	logger *slog.Logger
}

var _ scanner.Scanner = (*HTMLScanner)(nil)

// NewHTMLScanner wires an HTTP client; a nil client gets a 5s timeout.
func NewHTMLScanner(client *http.Client, logger *slog.Logger) *HTMLScanner {
	if client == nil {
		client = &http.Client{Timeout: 5 * time.Second}
	}
	return &HTMLScanner{client: client, logger: logger}
}

// Name identifies the strategy inside the registry.
func (h *HTMLScanner) Name() string {
	return "html"
}

// Scan fetches req.URL and returns one raw item per matched item node.
func (h *HTMLScanner) Scan(ctx context.Context, req scanner.Request) ([]domain.RawItem, error) {
	if req.URL == "" {
		return nil, fmt.Errorf("no page url configured for %s", req.Developer.Name)
	}

	base, err := url.Parse(req.URL)
	if err != nil {
		return nil, fmt.Errorf("invalid page url %s: %w", req.URL, err)
	}

	doc, err := h.fetchDocument(ctx, req.URL)
	if err != nil {
		return nil, err
	}

	items := extractItems(doc, base, selectors(req.Options))
	h.debug("html page scanned", "developer", req.Developer.Name, "url", req.URL, "items", len(items))
	return items, nil
}

func (h *HTMLScanner) fetchDocument(ctx context.Context, pageURL string) (*goquery.Document, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, pageURL, nil)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("User-Agent", "LaunchTracker/1.0")

	resp, err := h.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("request document: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("page returned %s", resp.Status)
	}

	doc, err := goquery.NewDocumentFromReader(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("parse document: %w", err)
	}

	return doc, nil
}

func extractItems(doc *goquery.Document, base *url.URL, sel map[string]string) []domain.RawItem {
	var items []domain.RawItem
	doc.Find(sel[OptionItem]).Each(func(_ int, node *goquery.Selection) {
		item, ok := parseItem(node, base, sel)
		if ok {
			items = append(items, item)
		}
	})
	return items
}

func parseItem(node *goquery.Selection, base *url.URL, sel map[string]string) (domain.RawItem, bool) {
	title := collapse(node.Find(sel[OptionTitle]).First().Text())
	if title == "" {
		return domain.RawItem{}, false
	}

	var link string
	if href, ok := node.Find(sel[OptionLink]).First().Attr("href"); ok {
		link = resolve(base, href)
	}

	dateNode := node.Find(sel[OptionDate]).First()
	date, ok := dateNode.Attr("datetime")
	if !ok {
		date = dateNode.Text()
	}

	return domain.RawItem{
		Title:   title,
		Link:    link,
		PubDate: strings.TrimSpace(date),
	}, true
}

func selectors(options map[string]string) map[string]string {
	sel := make(map[string]string, len(defaultSelectors))
	for key, value := range defaultSelectors {
		sel[key] = value
	}
	for key, value := range options {
		if _, known := defaultSelectors[key]; known && strings.TrimSpace(value) != "" {
			sel[key] = value
		}
	}
	return sel
}

func resolve(base *url.URL, href string) string {
	ref, err := url.Parse(strings.TrimSpace(href))
	if err != nil {
		return href
	}
	return base.ResolveReference(ref).String()
}

func collapse(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

func (h *HTMLScanner) debug(msg string, args ...interface{}) {
	if h.logger != nil {
		h.logger.Debug(msg, args...)
	}
}
