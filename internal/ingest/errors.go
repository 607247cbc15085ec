package ingest

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"
)

// ErrDatabaseUnavailable matches any *DatabaseUnavailableError via errors.Is.
var ErrDatabaseUnavailable = errors.New("database unavailable")

// HTTPError is a non-success response, or a transport/parse failure (Status 0),
// carrying a human-readable message.
type HTTPError struct {
	Status  int
	Message string
	Err     error
}

func (e *HTTPError) Error() string {
	return e.Message
}

func (e *HTTPError) Unwrap() error {
	return e.Err
}

// DatabaseUnavailableError is returned for a 503 whose message mentions the
// database. Callers special-case it to enter degraded mode.
type DatabaseUnavailableError struct {
	Message string
}

func (e *DatabaseUnavailableError) Error() string {
	return "Database unavailable — try again later"
}

// Is lets errors.Is(err, ErrDatabaseUnavailable) match.
func (e *DatabaseUnavailableError) Is(target error) bool {
	return target == ErrDatabaseUnavailable
}

// IsDatabaseUnavailable reports whether err is (or wraps) a DatabaseUnavailableError.
func IsDatabaseUnavailable(err error) bool {
	var dbErr *DatabaseUnavailableError
	return errors.As(err, &dbErr)
}

// classify turns a non-success response into the matching error kind.
func classify(status int, body []byte) error {
	msg := errorText(status, body)
	if status == http.StatusServiceUnavailable && strings.Contains(strings.ToLower(msg), "database") {
		return &DatabaseUnavailableError{Message: msg}
	}
	return &HTTPError{Status: status, Message: msg}
}

// errorText derives the message in priority order: body.detail, the JSON body
// re-serialized, the raw text, the status text, then "HTTP {status}".
func errorText(status int, body []byte) string {
	if msg := jsonErrorText(body); msg != "" {
		return msg
	}
	if text := strings.TrimSpace(string(body)); text != "" {
		return text
	}
	if text := http.StatusText(status); text != "" {
		return text
	}
	return fmt.Sprintf("HTTP %d", status)
}

func jsonErrorText(body []byte) string {
	trimmed := bytes.TrimSpace(body)
	if len(trimmed) == 0 || !json.Valid(trimmed) {
		return ""
	}
	var obj map[string]json.RawMessage
	if err := json.Unmarshal(trimmed, &obj); err == nil {
		if detail, ok := obj["detail"]; ok {
			if text := detailText(detail); text != "" {
				return text
			}
		}
	}
	var compact bytes.Buffer
	if err := json.Compact(&compact, trimmed); err != nil {
		return string(trimmed)
	}
	return compact.String()
}

// detailText renders a detail value. Falsy values (empty string, false,
// null, numeric zero) fall through to the whole body.
func detailText(raw json.RawMessage) string {
	trimmed := bytes.TrimSpace(raw)
	switch {
	case len(trimmed) == 0, bytes.Equal(trimmed, []byte("null")), bytes.Equal(trimmed, []byte("false")):
		return ""
	case isZeroNumber(trimmed):
		return ""
	case trimmed[0] == '"':
		var s string
		if err := json.Unmarshal(trimmed, &s); err != nil {
			return ""
		}
		return s
	default:
		var compact bytes.Buffer
		if err := json.Compact(&compact, trimmed); err != nil {
			return string(trimmed)
		}
		return compact.String()
	}
}

func isZeroNumber(raw []byte) bool {
	if raw[0] != '-' && (raw[0] < '0' || raw[0] > '9') {
		return false
	}
	f, err := strconv.ParseFloat(string(raw), 64)
	return err == nil && f == 0
}
