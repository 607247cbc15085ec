package main

import (
	"bytes"
	"net/http"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/five82/logdeck/internal/fakeapi"
)

type result struct {
	code   int
	stdout string
	stderr string
}

// runCLI runs logdeck against a fresh config dir so the user's files are never read.
func runCLI(t *testing.T, args ...string) result {
	t.Helper()
	dir := t.TempDir()
	t.Setenv("LOGDECK_LOG_FILE", filepath.Join(dir, "logdeck.log"))
	args = append([]string{"--config", filepath.Join(dir, "config.toml")}, args...)

	var stdout, stderr bytes.Buffer
	code := run(args, &stdout, &stderr)
	return result{code: code, stdout: stdout.String(), stderr: stderr.String()}
}

func startBackend(t *testing.T) (*fakeapi.Backend, string) {
	t.Helper()
	backend := fakeapi.New()
	url, stop := backend.Start()
	t.Cleanup(stop)
	return backend, url
}

func TestIngests_Table(t *testing.T) {
	backend, url := startBackend(t)
	backend.SetIngests(`[
		{"id": 1, "file_name": "app.log", "status": "success", "inserted_rows": 1200, "total_rows": 1250},
		{"id": "b7", "status": "failed"}
	]`)

	res := runCLI(t, "--api", url, "ingests")
	require.Equal(t, 0, res.code, res.stderr)
	for _, want := range []string{"ID", "File", "Status", "Created", "Rows", "app.log", "1200 / 1250", "b7", "0 / 0"} {
		assert.Contains(t, res.stdout, want)
	}
	assert.Contains(t, res.stdout, "2 ingests, 1,200 rows inserted")
}

func TestIngests_JSON(t *testing.T) {
	backend, url := startBackend(t)
	backend.SetIngests(`[{"id":1}]`)

	res := runCLI(t, "--api", url, "ingests", "--json")
	require.Equal(t, 0, res.code, res.stderr)
	assert.Equal(t, "[\n  {\n    \"id\": 1\n  }\n]\n", res.stdout)
}

func TestLogs_FormatsLines(t *testing.T) {
	backend, url := startBackend(t)
	backend.SetLogs("42", `[{"timestamp":"2024-01-01T00:00:00Z","level":"ERROR","module":"ingest","message":"boom"}]`)

	res := runCLI(t, "--api", url, "logs", "42")
	require.Equal(t, 0, res.code, res.stderr)
	assert.Equal(t, "2024-01-01T00:00:00Z [ERROR] ingest - boom\n", res.stdout)
	assert.Equal(t, []int{500}, backend.LogLimits())
}

func TestLogs_LimitFromFlagAndEnv(t *testing.T) {
	backend, url := startBackend(t)
	backend.SetLogs("42", `[]`)

	res := runCLI(t, "--api", url, "logs", "42", "--limit", "10")
	require.Equal(t, 0, res.code, res.stderr)
	assert.Equal(t, "No logs found in this file.\n", res.stdout)

	t.Setenv("LOGDECK_LOG_LIMIT", "7")
	res = runCLI(t, "--api", url, "logs", "42")
	require.Equal(t, 0, res.code, res.stderr)

	assert.Equal(t, []int{10, 7}, backend.LogLimits())
}

func TestLogs_NotFound(t *testing.T) {
	_, url := startBackend(t)

	res := runCLI(t, "--api", url, "logs", "missing")
	assert.Equal(t, 1, res.code)
	assert.Contains(t, res.stderr, "logdeck: fetch logs for missing: Ingest not found")
}

func TestAPIURLFromEnv(t *testing.T) {
	backend, url := startBackend(t)
	t.Setenv("LOGDECK_API_URL", url)

	res := runCLI(t, "probe")
	require.Equal(t, 0, res.code, res.stderr)
	assert.Contains(t, res.stdout, "available")
	assert.Equal(t, []string{"/api/ingests"}, backend.Requests())
}

func TestProbe_DatabaseUnavailableExitCode(t *testing.T) {
	backend, url := startBackend(t)
	backend.Fail(fakeapi.RouteIngests, fakeapi.Failure{
		Status: http.StatusServiceUnavailable,
		Body:   `{"detail":"database connection pool exhausted"}`,
	})

	res := runCLI(t, "--api", url, "probe")
	assert.Equal(t, exitDatabaseUnavailable, res.code)
	assert.Contains(t, res.stdout, "degraded")
	assert.Contains(t, res.stderr, "logdeck: Database unavailable")
}

func TestProbe_OtherFailure(t *testing.T) {
	backend, url := startBackend(t)
	backend.Fail(fakeapi.RouteIngests, fakeapi.Failure{Status: http.StatusServiceUnavailable, Body: `{"detail":"maintenance"}`})

	res := runCLI(t, "--api", url, "probe")
	assert.Equal(t, 1, res.code)
	assert.Contains(t, res.stderr, "maintenance")
}

func TestUpload_PrintsReply(t *testing.T) {
	backend, url := startBackend(t)
	backend.SetUploadReply(`{"inserted":2}`)

	path := filepath.Join(t.TempDir(), "app.log")
	require.NoError(t, os.WriteFile(path, []byte("line one\nline two\n"), 0o644))

	res := runCLI(t, "--api", url, "upload", path)
	require.Equal(t, 0, res.code, res.stderr)
	assert.Equal(t, "{\n  \"inserted\": 2\n}\n", res.stdout)
	assert.Contains(t, res.stderr, "uploaded app.log (18 B)")

	uploads := backend.Uploads()
	require.Len(t, uploads, 1)
	assert.Equal(t, "app.log", uploads[0].FileName)
	assert.Equal(t, "line one\nline two\n", string(uploads[0].Content))
}

func TestUpload_MissingFile(t *testing.T) {
	backend, url := startBackend(t)

	res := runCLI(t, "--api", url, "upload", filepath.Join(t.TempDir(), "nope.log"))
	assert.Equal(t, 1, res.code)
	assert.Empty(t, backend.Uploads())
}

func TestExport_WritesWorkbook(t *testing.T) {
	backend, url := startBackend(t)
	backend.SetIngests(`[{"id":1,"file_name":"app.log","status":"success"}]`)

	out := filepath.Join(t.TempDir(), "ingests")
	res := runCLI(t, "--api", url, "export", out)
	require.Equal(t, 0, res.code, res.stderr)
	assert.Contains(t, res.stdout, "wrote "+out+".xlsx (1 rows)")

	_, err := os.Stat(out + ".xlsx")
	assert.NoError(t, err)
}

func TestInvalidConfigFile(t *testing.T) {
	dir := t.TempDir()
	cfgPath := filepath.Join(dir, "config.toml")
	require.NoError(t, os.WriteFile(cfgPath, []byte("log_limit = 0\n"), 0o644))
	t.Setenv("LOGDECK_LOG_FILE", filepath.Join(dir, "logdeck.log"))

	var stdout, stderr bytes.Buffer
	code := run([]string{"--config", cfgPath, "probe"}, &stdout, &stderr)
	assert.Equal(t, 1, code)
	assert.Contains(t, stderr.String(), "log_limit must be positive")
}
