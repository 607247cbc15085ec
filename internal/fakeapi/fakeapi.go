// Package fakeapi is an in-memory stand-in for the ingestion backend. Tests
// point an ingest.Client at it to exercise real HTTP round trips.
package fakeapi

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strconv"
	"sync"

	"github.com/labstack/echo/v4"
)

// Failure forces a route to answer with a fixed status and raw body.
type Failure struct {
	Status int
	Body   string
}

// Upload records one multipart upload received by the backend.
type Upload struct {
	FileName string
	Content  []byte
}

// Backend serves /api/ingests, /api/ingests/:id/logs, and /upload.
type Backend struct {
	mu          sync.Mutex
	echo        *echo.Echo
	ingests     json.RawMessage
	logs        map[string]json.RawMessage
	failures    map[string]Failure
	uploadReply json.RawMessage
	uploads     []Upload
	requests    []string
	logLimits   []int
}

// Route keys accepted by Fail.
const (
	RouteIngests = "ingests"
	RouteLogs    = "logs"
	RouteUpload  = "upload"
)

// New returns a backend with an empty ingest list.
func New() *Backend {
	b := &Backend{
		ingests:     json.RawMessage("[]"),
		logs:        make(map[string]json.RawMessage),
		failures:    make(map[string]Failure),
		uploadReply: json.RawMessage(`{"status":"ok"}`),
	}
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Use(b.record)
	e.GET("/api/ingests", b.handleIngests)
	e.GET("/api/ingests/:id/logs", b.handleLogs)
	e.POST("/upload", b.handleUpload)
	b.echo = e
	return b
}

// Start serves the backend on a loopback listener. Call the returned func to stop it.
func (b *Backend) Start() (string, func()) {
	srv := httptest.NewServer(b.echo)
	return srv.URL, srv.Close
}

// Handler exposes the echo router.
func (b *Backend) Handler() http.Handler {
	return b.echo
}

// SetIngests replaces the /api/ingests body with the JSON encoding of v.
func (b *Backend) SetIngests(v any) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.ingests = mustJSON(v)
}

// SetLogs sets the log body returned for ingest id.
func (b *Backend) SetLogs(id string, v any) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.logs[id] = mustJSON(v)
}

// SetUploadReply sets the /upload success body.
func (b *Backend) SetUploadReply(v any) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.uploadReply = mustJSON(v)
}

// Fail forces route to fail until Recover is called.
func (b *Backend) Fail(route string, f Failure) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.failures[route] = f
}

// Recover clears a forced failure.
func (b *Backend) Recover(route string) {
	b.mu.Lock()
	defer b.mu.Unlock()
	delete(b.failures, route)
}

// Requests returns the request URIs seen so far, in arrival order.
func (b *Backend) Requests() []string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return append([]string(nil), b.requests...)
}

// LogLimits returns the limit query values seen by the logs route.
func (b *Backend) LogLimits() []int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return append([]int(nil), b.logLimits...)
}

// Uploads returns the uploads received so far.
func (b *Backend) Uploads() []Upload {
	b.mu.Lock()
	defer b.mu.Unlock()
	return append([]Upload(nil), b.uploads...)
}

func (b *Backend) record(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		b.mu.Lock()
		b.requests = append(b.requests, c.Request().RequestURI)
		b.mu.Unlock()
		return next(c)
	}
}

func (b *Backend) failure(route string) (Failure, bool) {
	b.mu.Lock()
	defer b.mu.Unlock()
	f, ok := b.failures[route]
	return f, ok
}

func (b *Backend) handleIngests(c echo.Context) error {
	if f, ok := b.failure(RouteIngests); ok {
		return writeFailure(c, f)
	}
	b.mu.Lock()
	body := b.ingests
	b.mu.Unlock()
	return c.JSONBlob(http.StatusOK, body)
}

func (b *Backend) handleLogs(c echo.Context) error {
	limit, _ := strconv.Atoi(c.QueryParam("limit"))
	b.mu.Lock()
	b.logLimits = append(b.logLimits, limit)
	b.mu.Unlock()

	if f, ok := b.failure(RouteLogs); ok {
		return writeFailure(c, f)
	}
	b.mu.Lock()
	body, ok := b.logs[c.Param("id")]
	b.mu.Unlock()
	if !ok {
		return c.JSON(http.StatusNotFound, map[string]string{"detail": "Ingest not found"})
	}
	return c.JSONBlob(http.StatusOK, body)
}

func (b *Backend) handleUpload(c echo.Context) error {
	if f, ok := b.failure(RouteUpload); ok {
		return writeFailure(c, f)
	}
	fh, err := c.FormFile("file")
	if err != nil {
		return c.JSON(http.StatusUnprocessableEntity, map[string]string{"detail": "file field required"})
	}
	src, err := fh.Open()
	if err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"detail": err.Error()})
	}
	defer func() { _ = src.Close() }()
	content, err := io.ReadAll(src)
	if err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"detail": err.Error()})
	}

	b.mu.Lock()
	b.uploads = append(b.uploads, Upload{FileName: fh.Filename, Content: content})
	reply := b.uploadReply
	b.mu.Unlock()
	return c.JSONBlob(http.StatusOK, reply)
}

func writeFailure(c echo.Context, f Failure) error {
	return c.Blob(f.Status, "application/json", []byte(f.Body))
}

func mustJSON(v any) json.RawMessage {
	if raw, ok := v.(json.RawMessage); ok {
		return raw
	}
	if s, ok := v.(string); ok {
		return json.RawMessage(s)
	}
	data, err := json.Marshal(v)
	if err != nil {
		panic(err)
	}
	return data
}
