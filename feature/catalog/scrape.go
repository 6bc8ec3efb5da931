package catalog

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"regexp"
	"sort"
	"strings"
	"time"

	"poewikibot/core/wiki"

	"go.uber.org/zap"
	"golang.org/x/net/html"
)

// columnName matches a valid Cargo column identifier. Special:CargoTables
// pages embed the field list in the same markup as the site chrome, so the
// extractor only accepts tokens that look like column names.
var columnName = regexp.MustCompile(`^_?[a-zA-Z][a-zA-Z0-9_]*$`)

// Scraper extracts column definitions from the wiki's Special:CargoTables
// pages and produces the JSON mapping the Catalog loads.
type Scraper struct {
	baseURL string
	http    *http.Client
	logger  *zap.Logger
}

// NewScraper creates a scraper against the configured article base URL.
func NewScraper(cfg wiki.Config, logger *zap.Logger) *Scraper {
	timeout := cfg.TimeoutSeconds
	if timeout <= 0 {
		timeout = 30
	}
	return &Scraper{
		baseURL: cfg.BaseURL,
		http:    &http.Client{Timeout: time.Duration(timeout) * time.Second},
		logger:  logger,
	}
}

// AllTables returns every table the mapping should cover: the tables the
// resolver always queries plus each distinct supplementary table.
func AllTables() []string {
	seen := map[string]bool{}
	var tables []string
	for _, t := range coreTables {
		if !seen[t] {
			seen[t] = true
			tables = append(tables, t)
		}
	}
	for _, t := range classTables {
		if !seen[t] {
			seen[t] = true
			tables = append(tables, t)
		}
	}
	sort.Strings(tables)
	return tables
}

// ScrapeAll fetches the column list of every table in AllTables. Per-table
// failures are logged and skipped so one broken page does not lose the rest;
// an error is returned only when nothing could be scraped.
func (s *Scraper) ScrapeAll(ctx context.Context) (map[string][]string, error) {
	mapping := map[string][]string{}
	for _, table := range AllTables() {
		fields, err := s.ScrapeTable(ctx, table)
		if err != nil {
			s.logger.Warn("Skipping table, scrape failed",
				zap.String("table", table),
				zap.Error(err),
			)
			continue
		}
		mapping[table] = fields
		s.logger.Info("Scraped table",
			zap.String("table", table),
			zap.Int("fields", len(fields)),
		)
	}

	if len(mapping) == 0 {
		return nil, fmt.Errorf("no tables could be scraped from %s", s.baseURL)
	}
	return mapping, nil
}

// ScrapeTable fetches Special:CargoTables/<table> and extracts its declared
// column names in page order.
func (s *Scraper) ScrapeTable(ctx context.Context, table string) ([]string, error) {
	pageURL := s.baseURL + "Special:CargoTables/" + table

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, pageURL, nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}

	resp, err := s.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch table page: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		return nil, fmt.Errorf("HTTP %d fetching %s", resp.StatusCode, pageURL)
	}
	return parseFields(resp.Body)
}

// parseFields walks the page's content area and collects the leading token
// of every list item that looks like a column declaration.
func parseFields(r io.Reader) ([]string, error) {
	doc, err := html.Parse(r)
	if err != nil {
		return nil, fmt.Errorf("parse table page: %w", err)
	}

	content := findContentNode(doc)
	if content == nil {
		// Pages served outside MediaWiki skins have no content wrapper.
		content = doc
	}

	seen := map[string]bool{}
	var fields []string
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.ElementNode && n.Data == "li" {
			if name := fieldName(nodeText(n)); name != "" && !seen[name] {
				seen[name] = true
				fields = append(fields, name)
			}
			return
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(content)
	return fields, nil
}

// findContentNode locates the MediaWiki content div so site chrome lists
// (navigation, toolbox) are never mistaken for column declarations.
func findContentNode(n *html.Node) *html.Node {
	if n.Type == html.ElementNode {
		for _, attr := range n.Attr {
			if attr.Key == "id" && attr.Val == "mw-content-text" {
				return n
			}
		}
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if found := findContentNode(c); found != nil {
			return found
		}
	}
	return nil
}

// nodeText concatenates the text content below a node.
func nodeText(n *html.Node) string {
	var b strings.Builder
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.TextNode {
			b.WriteString(n.Data)
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(n)
	return b.String()
}

// fieldName extracts the column name from a list-item text like
// "physical_damage_min - Integer" or "name (String)".
func fieldName(text string) string {
	tokens := strings.Fields(strings.TrimSpace(text))
	if len(tokens) == 0 {
		return ""
	}
	name := tokens[0]
	if !columnName.MatchString(name) {
		return ""
	}
	return name
}

// WriteMapping persists the scraped mapping as the JSON file Load expects.
func WriteMapping(path string, mapping map[string][]string) error {
	data, err := json.MarshalIndent(mapping, "", "  ")
	if err != nil {
		return fmt.Errorf("encode mapping: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write mapping file: %w", err)
	}
	return nil
}
