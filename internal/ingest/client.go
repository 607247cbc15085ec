package ingest

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"mime/multipart"
	"net/http"
	"net/url"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Gateway is the request surface the views depend on. *Client implements it;
// tests substitute fakes.
type Gateway interface {
	ListIngests(ctx context.Context) ([]IngestRecord, error)
	FetchLogs(ctx context.Context, id ID, limit int) ([]LogLine, error)
	Upload(ctx context.Context, name string, r io.Reader) (UploadResult, error)
}

// Ensure Client implements Gateway at compile time.
var _ Gateway = (*Client)(nil)

// Client talks to the ingestion backend over HTTP.
type Client struct {
	baseURL   *url.URL
	http      *http.Client
	userAgent string
	logger    *slog.Logger
}

const (
	defaultAPIURL    = "http://127.0.0.1:8000"
	defaultUserAgent = "logdeck/0.1"

	// DefaultLogLimit caps the number of log lines fetched per ingest.
	DefaultLogLimit = 500
)

// Option customises a Client.
type Option func(*Client)

// WithTimeout bounds every request. Zero leaves requests unbounded.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) {
		c.http.Timeout = d
	}
}

// WithHTTPClient replaces the underlying transport client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		if hc != nil {
			c.http = hc
		}
	}
}

// WithLogger sets the logger used for request tracing.
func WithLogger(logger *slog.Logger) Option {
	return func(c *Client) {
		if logger != nil {
			c.logger = logger
		}
	}
}

// NewClient builds a Client for the backend at apiURL (host:port or full URL).
func NewClient(apiURL string, opts ...Option) (*Client, error) {
	base, err := parseBaseURL(apiURL)
	if err != nil {
		return nil, err
	}
	c := &Client{
		baseURL:   base,
		http:      &http.Client{},
		userAgent: defaultUserAgent,
		logger:    slog.Default(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

// BaseURL returns the normalised backend address.
func (c *Client) BaseURL() string {
	return c.baseURL.String()
}

// ListIngests retrieves every ingest record, newest ordering as the backend sends it.
func (c *Client) ListIngests(ctx context.Context) ([]IngestRecord, error) {
	raw, err := c.Request(ctx, http.MethodGet, "/api/ingests", nil, "")
	if err != nil {
		return nil, err
	}
	var elems []json.RawMessage
	if err := json.Unmarshal(raw, &elems); err != nil {
		return nil, &HTTPError{Message: fmt.Sprintf("decode ingests: %v", err), Err: err}
	}
	if elems == nil {
		return nil, nil
	}
	records := make([]IngestRecord, 0, len(elems))
	for _, elem := range elems {
		records = append(records, decodeIngestRecord(elem))
	}
	return records, nil
}

// FetchLogs retrieves at most limit log lines for the given ingest.
func (c *Client) FetchLogs(ctx context.Context, id ID, limit int) ([]LogLine, error) {
	if strings.TrimSpace(string(id)) == "" {
		return nil, &HTTPError{Message: "ingest id required"}
	}
	if limit <= 0 {
		limit = DefaultLogLimit
	}
	rel := &url.URL{
		Path:     "/api/ingests/" + string(id) + "/logs",
		RawPath:  "/api/ingests/" + url.PathEscape(string(id)) + "/logs",
		RawQuery: url.Values{"limit": []string{strconv.Itoa(limit)}}.Encode(),
	}
	raw, err := c.requestURL(ctx, http.MethodGet, rel, nil, "")
	if err != nil {
		return nil, err
	}
	var elems []json.RawMessage
	if err := json.Unmarshal(raw, &elems); err != nil {
		return nil, &HTTPError{Message: fmt.Sprintf("decode logs: %v", err), Err: err}
	}
	lines := make([]LogLine, 0, len(elems))
	for _, elem := range elems {
		lines = append(lines, decodeLogLine(elem))
	}
	return lines, nil
}

// Upload posts r as the multipart field "file" and returns the response body verbatim.
func (c *Client) Upload(ctx context.Context, name string, r io.Reader) (UploadResult, error) {
	if r == nil {
		return UploadResult{}, &HTTPError{Message: "no file to upload"}
	}
	var body bytes.Buffer
	form := multipart.NewWriter(&body)
	part, err := form.CreateFormFile("file", filepath.Base(name))
	if err != nil {
		return UploadResult{}, &HTTPError{Message: fmt.Sprintf("create form: %v", err), Err: err}
	}
	if _, err := io.Copy(part, r); err != nil {
		return UploadResult{}, &HTTPError{Message: fmt.Sprintf("read file: %v", err), Err: err}
	}
	if err := form.Close(); err != nil {
		return UploadResult{}, &HTTPError{Message: fmt.Sprintf("close form: %v", err), Err: err}
	}
	raw, err := c.Request(ctx, http.MethodPost, "/upload", &body, form.FormDataContentType())
	if err != nil {
		return UploadResult{}, err
	}
	return UploadResult{Raw: raw}, nil
}

// Request performs one call and returns the success body verbatim. Failures are
// always *HTTPError or *DatabaseUnavailableError.
func (c *Client) Request(ctx context.Context, method, path string, body io.Reader, contentType string) (json.RawMessage, error) {
	rel, err := url.Parse(path)
	if err != nil {
		return nil, &HTTPError{Message: fmt.Sprintf("parse path %q: %v", path, err), Err: err}
	}
	return c.requestURL(ctx, method, rel, body, contentType)
}

func (c *Client) requestURL(ctx context.Context, method string, rel *url.URL, body io.Reader, contentType string) (json.RawMessage, error) {
	if c == nil {
		return nil, &HTTPError{Message: "client is nil"}
	}
	reqURL := c.baseURL.ResolveReference(rel)
	req, err := http.NewRequestWithContext(ctx, method, reqURL.String(), body)
	if err != nil {
		return nil, &HTTPError{Message: fmt.Sprintf("create request: %v", err), Err: err}
	}
	requestID := uuid.NewString()
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", c.userAgent)
	req.Header.Set("X-Request-ID", requestID)
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}

	start := time.Now()
	resp, err := c.http.Do(req)
	if err != nil {
		c.logger.Warn("request failed", "method", method, "path", rel.String(), "request_id", requestID, "error", err)
		return nil, &HTTPError{Message: err.Error(), Err: err}
	}
	defer func() { _ = resp.Body.Close() }()

	payload, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &HTTPError{Status: resp.StatusCode, Message: fmt.Sprintf("read response: %v", err), Err: err}
	}
	c.logger.Debug("request complete",
		"method", method,
		"path", rel.String(),
		"status", resp.StatusCode,
		"request_id", requestID,
		"elapsed", time.Since(start))

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, classify(resp.StatusCode, payload)
	}
	trimmed := bytes.TrimSpace(payload)
	if len(trimmed) == 0 {
		return json.RawMessage("null"), nil
	}
	if !json.Valid(trimmed) {
		return nil, &HTTPError{Status: resp.StatusCode, Message: errorText(resp.StatusCode, payload)}
	}
	return json.RawMessage(trimmed), nil
}

func parseBaseURL(apiURL string) (*url.URL, error) {
	trimmed := strings.TrimSpace(apiURL)
	if trimmed == "" {
		trimmed = defaultAPIURL
	}
	if !strings.Contains(trimmed, "://") {
		trimmed = "http://" + trimmed
	}
	u, err := url.Parse(trimmed)
	if err != nil {
		return nil, fmt.Errorf("parse api url %q: %w", apiURL, err)
	}
	if u.Host == "" {
		return nil, fmt.Errorf("parse api url %q: missing host", apiURL)
	}
	u.Path = ""
	u.RawPath = ""
	u.RawQuery = ""
	u.Fragment = ""
	return u, nil
}
