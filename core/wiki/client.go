package wiki

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"go.uber.org/zap"
)

// MaxTitlesPerCall is the MediaWiki ceiling for one titles= parameter.
// Callers batching more file names than this must chunk.
const MaxTitlesPerCall = 50

// Client defines the interface for remote wiki queries.
type Client interface {
	// CargoQuery runs a structured-table query and returns the result rows.
	CargoQuery(ctx context.Context, q CargoQuery) ([]Row, error)
	// ImageInfo resolves up to MaxTitlesPerCall file page titles to direct URLs.
	ImageInfo(ctx context.Context, titles []string) (map[string]string, error)
}

// CargoQuery describes one cargoquery API call.
type CargoQuery struct {
	Tables  string
	Fields  string
	Where   string
	OrderBy string
	Limit   int
}

// Row is the decoded "title" object of one cargoquery result.
type Row map[string]string

// Get returns the value for field, accepting both the underscore and the
// space spelling of the key. Cargo echoes requested field names back with
// spaces, so this is the single place that absorbs the divergence.
func (r Row) Get(field string) string {
	if v, ok := r[field]; ok {
		return v
	}
	if v, ok := r[strings.ReplaceAll(field, "_", " ")]; ok {
		return v
	}
	return r[strings.ReplaceAll(field, " ", "_")]
}

// APIError is an error envelope returned alongside a 2xx status. Consumers
// treat it as an empty result set; it stays a distinct type so a batched
// query can tell a rejected call from a genuinely empty one.
type APIError struct {
	Code string `json:"code"`
	Info string `json:"info"`
}

func (e *APIError) Error() string {
	return fmt.Sprintf("wiki api error %s: %s", e.Code, e.Info)
}

// IsAPIError reports whether err is an error envelope rather than a
// transport failure.
func IsAPIError(err error) bool {
	var apiErr *APIError
	return errors.As(err, &apiErr)
}

// EscapeWhere doubles single quotes so a value can be embedded inside a
// quoted Cargo where clause.
func EscapeWhere(v string) string {
	return strings.ReplaceAll(v, "'", "''")
}

// NewClient creates an HTTP-backed wiki client based on the configuration.
func NewClient(cfg Config, logger *zap.Logger) Client {
	timeout := cfg.TimeoutSeconds
	if timeout <= 0 {
		timeout = 30
	}
	timeoutDuration := time.Duration(timeout) * time.Second

	// Strict transport timeouts so a stalled remote only costs one request.
	transport := &http.Transport{
		Proxy: http.ProxyFromEnvironment,
		DialContext: (&net.Dialer{
			Timeout:   timeoutDuration,
			KeepAlive: 30 * time.Second,
		}).DialContext,
		ForceAttemptHTTP2:     true,
		MaxIdleConns:          100,
		IdleConnTimeout:       90 * time.Second,
		TLSHandshakeTimeout:   timeoutDuration,
		ExpectContinueTimeout: 1 * time.Second,
		ResponseHeaderTimeout: timeoutDuration,
	}

	return &httpClient{
		apiURL: cfg.APIURL,
		http:   &http.Client{Transport: transport},
		logger: logger,
	}
}

type httpClient struct {
	apiURL string
	http   *http.Client
	logger *zap.Logger
}

type cargoEnvelope struct {
	CargoQuery []struct {
		Title Row `json:"title"`
	} `json:"cargoquery"`
	Error *APIError `json:"error"`
}

func (c *httpClient) CargoQuery(ctx context.Context, q CargoQuery) ([]Row, error) {
	params := url.Values{}
	params.Set("action", "cargoquery")
	params.Set("tables", q.Tables)
	params.Set("fields", q.Fields)
	if q.Where != "" {
		params.Set("where", q.Where)
	}
	if q.OrderBy != "" {
		// The parameter name really does contain a space.
		params.Set("order by", q.OrderBy)
	}
	if q.Limit > 0 {
		params.Set("limit", strconv.Itoa(q.Limit))
	}
	params.Set("format", "json")

	body, err := c.get(ctx, params)
	if err != nil {
		return nil, err
	}

	var env cargoEnvelope
	if err := json.Unmarshal(body, &env); err != nil {
		return nil, fmt.Errorf("decode cargoquery response: %w", err)
	}
	if env.Error != nil {
		c.logger.Debug("cargoquery rejected",
			zap.String("tables", q.Tables),
			zap.String("code", env.Error.Code),
			zap.String("info", env.Error.Info),
		)
		return nil, env.Error
	}

	rows := make([]Row, 0, len(env.CargoQuery))
	for _, item := range env.CargoQuery {
		rows = append(rows, item.Title)
	}
	return rows, nil
}

type imageInfoEnvelope struct {
	Query struct {
		Pages map[string]struct {
			Title     string `json:"title"`
			ImageInfo []struct {
				URL string `json:"url"`
			} `json:"imageinfo"`
		} `json:"pages"`
	} `json:"query"`
}

func (c *httpClient) ImageInfo(ctx context.Context, titles []string) (map[string]string, error) {
	if len(titles) == 0 {
		return map[string]string{}, nil
	}

	params := url.Values{}
	params.Set("action", "query")
	params.Set("titles", strings.Join(titles, "|"))
	params.Set("prop", "imageinfo")
	params.Set("iiprop", "url")
	params.Set("format", "json")

	body, err := c.get(ctx, params)
	if err != nil {
		return nil, err
	}

	var env imageInfoEnvelope
	if err := json.Unmarshal(body, &env); err != nil {
		return nil, fmt.Errorf("decode imageinfo response: %w", err)
	}

	urls := make(map[string]string, len(env.Query.Pages))
	for _, page := range env.Query.Pages {
		if page.Title == "" || len(page.ImageInfo) == 0 {
			continue
		}
		urls[page.Title] = page.ImageInfo[0].URL
	}
	return urls, nil
}

func (c *httpClient) get(ctx context.Context, params url.Values) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.apiURL+"?"+params.Encode(), nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("send request: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read response: %w", err)
	}
	if resp.StatusCode >= 400 {
		return nil, fmt.Errorf("HTTP %d: %s", resp.StatusCode, string(body))
	}
	return body, nil
}
