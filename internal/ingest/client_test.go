package ingest

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/five82/logdeck/internal/fakeapi"
)

func newTestClient(t *testing.T) (*Client, *fakeapi.Backend) {
	t.Helper()
	backend := fakeapi.New()
	url, stop := backend.Start()
	t.Cleanup(stop)

	c, err := NewClient(url)
	require.NoError(t, err)
	return c, backend
}

func TestParseBaseURL_DefaultsAndNormalizes(t *testing.T) {
	u, err := parseBaseURL("")
	require.NoError(t, err)
	assert.Equal(t, "http", u.Scheme)
	assert.Equal(t, "127.0.0.1:8000", u.Host)

	u, err = parseBaseURL("example.com:1234/path?x=1#frag")
	require.NoError(t, err)
	assert.Equal(t, "http://example.com:1234", u.String())

	_, err = parseBaseURL("http://")
	assert.Error(t, err)
}

func TestClient_ListIngests(t *testing.T) {
	c, backend := newTestClient(t)
	backend.SetIngests(`[
		{"id": "a1", "file_name": "app.log", "status": "success", "created_at": "2024-01-01T00:00:00Z", "inserted_rows": 10, "total_rows": 12},
		{"id": 7, "file_name": null, "status": "error", "inserted_rows": null}
	]`)

	records, err := c.ListIngests(context.Background())
	require.NoError(t, err)
	require.Len(t, records, 2)

	assert.Equal(t, ID("a1"), records[0].ID)
	assert.Equal(t, Text("app.log"), records[0].FileName)
	assert.Equal(t, Count(10), records[0].InsertedRows)
	assert.Equal(t, Count(12), records[0].TotalRows)
	assert.False(t, records[0].ParsedCreatedAt().IsZero())

	assert.Equal(t, ID("7"), records[1].ID)
	assert.Empty(t, records[1].FileName)
	assert.Zero(t, records[1].InsertedRows)
	assert.True(t, records[1].ParsedCreatedAt().IsZero())
}

func TestClient_ListIngestsToleratesMalformedRecords(t *testing.T) {
	c, backend := newTestClient(t)
	backend.SetIngests(`[{"id":1},"bad",null,{"id":"x","file_name":"x.log"}]`)

	records, err := c.ListIngests(context.Background())
	require.NoError(t, err)
	require.Len(t, records, 4)

	assert.Equal(t, ID("1"), records[0].ID)
	assert.Equal(t, IngestRecord{}, records[1])
	assert.Equal(t, IngestRecord{}, records[2])
	assert.Equal(t, IngestRecord{ID: "x", FileName: "x.log"}, records[3])
}

func TestClient_ListIngestsNonArrayBodyFails(t *testing.T) {
	c, backend := newTestClient(t)
	backend.SetIngests(`{"items":[]}`)

	_, err := c.ListIngests(context.Background())
	var httpErr *HTTPError
	require.ErrorAs(t, err, &httpErr)
	assert.Contains(t, httpErr.Message, "decode ingests")
}

func TestClient_ListIngestsNullBodyIsEmpty(t *testing.T) {
	c, backend := newTestClient(t)
	backend.SetIngests("null")

	records, err := c.ListIngests(context.Background())
	require.NoError(t, err)
	assert.Empty(t, records)
}

func TestClient_FetchLogsEncodesIDAndLimit(t *testing.T) {
	c, backend := newTestClient(t)
	backend.SetLogs("42", `[{"timestamp":"2024-01-01T00:00:00Z","level":"ERROR","module":"ingest","message":"boom"}]`)

	lines, err := c.FetchLogs(context.Background(), "42", 0)
	require.NoError(t, err)
	require.Len(t, lines, 1)
	assert.Equal(t, LogLine{Timestamp: "2024-01-01T00:00:00Z", Level: "ERROR", Module: "ingest", Message: "boom"}, lines[0])

	assert.Equal(t, []int{DefaultLogLimit}, backend.LogLimits())
	assert.Contains(t, backend.Requests(), "/api/ingests/42/logs?limit=500")
}

func TestClient_FetchLogsToleratesMalformedLines(t *testing.T) {
	c, backend := newTestClient(t)
	backend.SetLogs("9", `[null, "plain text", 12, {"level": 3, "message": "ok"}, {"level": "WARN"}]`)

	lines, err := c.FetchLogs(context.Background(), "9", 500)
	require.NoError(t, err)
	require.Len(t, lines, 5)
	assert.Equal(t, LogLine{}, lines[0])
	assert.Equal(t, Text("plain text"), lines[1].Message)
	assert.Equal(t, Text("12"), lines[2].Message)
	assert.Equal(t, Text("3"), lines[3].Level)
	assert.Equal(t, Text("WARN"), lines[4].Level)
}

func TestClient_FetchLogsRequiresID(t *testing.T) {
	c, err := NewClient("127.0.0.1:1")
	require.NoError(t, err)
	_, err = c.FetchLogs(context.Background(), " ", 10)
	assert.Error(t, err)
}

func TestClient_UploadSendsMultipartFile(t *testing.T) {
	c, backend := newTestClient(t)
	backend.SetUploadReply(map[string]any{"filename": "app.log", "records": 3})

	res, err := c.Upload(context.Background(), "/tmp/some/app.log", strings.NewReader("line one\nline two\n"))
	require.NoError(t, err)
	assert.JSONEq(t, `{"filename":"app.log","records":3}`, string(res.Raw))
	assert.Contains(t, res.Pretty(), "\n  \"filename\": \"app.log\"")

	uploads := backend.Uploads()
	require.Len(t, uploads, 1)
	assert.Equal(t, "app.log", uploads[0].FileName)
	assert.Equal(t, "line one\nline two\n", string(uploads[0].Content))
}

func TestClient_ErrorMessagePriority(t *testing.T) {
	tests := []struct {
		name   string
		status int
		body   string
		want   string
	}{
		{"detail field", http.StatusBadRequest, `{"detail":"Uploaded file is empty"}`, "Uploaded file is empty"},
		{"non-string detail", http.StatusUnprocessableEntity, `{"detail":[{"loc":["file"]}]}`, `[{"loc":["file"]}]`},
		{"empty detail stringifies body", http.StatusBadRequest, `{"detail":"","code":1}`, `{"detail":"","code":1}`},
		{"zero detail stringifies body", http.StatusBadRequest, `{"detail":0}`, `{"detail":0}`},
		{"false detail stringifies body", http.StatusBadRequest, `{"detail":false,"code":2}`, `{"detail":false,"code":2}`},
		{"non-zero number detail", http.StatusBadRequest, `{"detail":42}`, "42"},
		{"json without detail", http.StatusInternalServerError, `{"error": "x"}`, `{"error":"x"}`},
		{"plain text", http.StatusBadGateway, "upstream exploded\n", "upstream exploded"},
		{"status text", http.StatusTeapot, "", "I'm a teapot"},
		{"generic fallback", 599, "", "HTTP 599"},
		{"503 without database", http.StatusServiceUnavailable, `{"detail":"maintenance window"}`, "maintenance window"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, backend := newTestClient(t)
			backend.Fail(fakeapi.RouteIngests, fakeapi.Failure{Status: tt.status, Body: tt.body})

			_, err := c.ListIngests(context.Background())
			require.Error(t, err)

			var httpErr *HTTPError
			require.True(t, errors.As(err, &httpErr), "err = %T, want *HTTPError", err)
			assert.Equal(t, tt.status, httpErr.Status)
			assert.Equal(t, tt.want, httpErr.Message)
			assert.False(t, IsDatabaseUnavailable(err))
		})
	}
}

func TestClient_DatabaseUnavailableAnyCase(t *testing.T) {
	bodies := []string{
		`{"detail":"database connection pool exhausted"}`,
		`{"detail":"DATABASE offline"}`,
		`{"detail":"The DataBase is gone"}`,
		`{"error":"database"}`,
		"Database unreachable",
	}
	for _, body := range bodies {
		t.Run(body, func(t *testing.T) {
			c, backend := newTestClient(t)
			backend.Fail(fakeapi.RouteIngests, fakeapi.Failure{Status: http.StatusServiceUnavailable, Body: body})

			_, err := c.ListIngests(context.Background())
			require.Error(t, err)
			assert.True(t, IsDatabaseUnavailable(err))
			assert.ErrorIs(t, err, ErrDatabaseUnavailable)

			var httpErr *HTTPError
			assert.False(t, errors.As(err, &httpErr), "database errors must not be *HTTPError")
		})
	}
}

func TestClient_DatabaseWordOnOtherStatusIsHTTPError(t *testing.T) {
	c, backend := newTestClient(t)
	backend.Fail(fakeapi.RouteIngests, fakeapi.Failure{Status: http.StatusInternalServerError, Body: `{"detail":"database exploded"}`})

	_, err := c.ListIngests(context.Background())
	require.Error(t, err)
	assert.False(t, IsDatabaseUnavailable(err))
	assert.Equal(t, "database exploded", err.Error())
}

func TestClient_TransportAndDecodeFailuresAreHTTPErrors(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte("{not-json"))
	}))
	url := server.URL
	c, err := NewClient(url)
	require.NoError(t, err)

	_, err = c.ListIngests(context.Background())
	var httpErr *HTTPError
	require.ErrorAs(t, err, &httpErr)
	assert.Equal(t, "{not-json", httpErr.Message)

	server.Close()
	_, err = c.ListIngests(context.Background())
	require.ErrorAs(t, err, &httpErr)
	assert.Zero(t, httpErr.Status)
	assert.NotNil(t, httpErr.Unwrap())
}

func TestClient_SetsHeaders(t *testing.T) {
	var gotUA, gotAccept, gotRequestID string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotUA = r.Header.Get("User-Agent")
		gotAccept = r.Header.Get("Accept")
		gotRequestID = r.Header.Get("X-Request-ID")
		_, _ = w.Write([]byte("[]"))
	}))
	t.Cleanup(server.Close)

	c, err := NewClient(server.URL, WithTimeout(2*time.Second))
	require.NoError(t, err)
	_, err = c.ListIngests(context.Background())
	require.NoError(t, err)

	assert.True(t, strings.HasPrefix(gotUA, "logdeck/"), "User-Agent = %q", gotUA)
	assert.Equal(t, "application/json", gotAccept)
	assert.Len(t, gotRequestID, 36)
}
