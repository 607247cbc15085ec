package ingest

import (
	"bytes"
	"encoding/json"
	"strings"
	"time"
)

const timestampLayout = "2006-01-02 15:04:05"

// ID is an opaque ingest identifier. The backend may send it as a JSON string
// or number; either way it is kept in textual form.
type ID string

// UnmarshalJSON accepts strings, numbers, and null.
func (id *ID) UnmarshalJSON(data []byte) error {
	*id = ID(scalarText(data))
	return nil
}

func (id ID) String() string {
	return string(id)
}

// Text is a tolerant string field: strings decode as-is, other scalars keep
// their JSON spelling, null and absent values are empty.
type Text string

// UnmarshalJSON never fails so that one odd field cannot drop a whole record.
func (t *Text) UnmarshalJSON(data []byte) error {
	*t = Text(scalarText(data))
	return nil
}

func (t Text) String() string {
	return string(t)
}

// Count is a non-negative row counter that tolerates null, strings, and floats.
type Count int64

// UnmarshalJSON decodes numbers and numeric strings; anything else is zero.
func (c *Count) UnmarshalJSON(data []byte) error {
	var n json.Number
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	if err := dec.Decode(&n); err != nil {
		var s string
		if json.Unmarshal(data, &s) != nil {
			*c = 0
			return nil
		}
		n = json.Number(strings.TrimSpace(s))
	}
	if v, err := n.Int64(); err == nil {
		*c = Count(max(v, 0))
		return nil
	}
	if f, err := n.Float64(); err == nil {
		*c = Count(max(int64(f), 0))
		return nil
	}
	*c = 0
	return nil
}

// IngestRecord mirrors one element of GET /api/ingests.
type IngestRecord struct {
	ID           ID    `json:"id"`
	FileName     Text  `json:"file_name"`
	Status       Text  `json:"status"`
	CreatedAt    Text  `json:"created_at"`
	InsertedRows Count `json:"inserted_rows"`
	TotalRows    Count `json:"total_rows"`
}

// ParsedCreatedAt returns CreatedAt as time.Time, or the zero time when the
// value is absent or not a recognised layout.
func (r IngestRecord) ParsedCreatedAt() time.Time {
	return parseTime(string(r.CreatedAt))
}

// decodeIngestRecord decodes a single element. Non-object elements become a
// record with every field absent, so they render with the usual fallbacks.
func decodeIngestRecord(raw json.RawMessage) IngestRecord {
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 || trimmed[0] != '{' {
		return IngestRecord{}
	}
	var rec IngestRecord
	if err := json.Unmarshal(trimmed, &rec); err != nil {
		return IngestRecord{}
	}
	return rec
}

// LogLine mirrors one element of GET /api/ingests/{id}/logs.
type LogLine struct {
	Timestamp Text `json:"timestamp"`
	Level     Text `json:"level"`
	Module    Text `json:"module"`
	Message   Text `json:"message"`
}

// decodeLogLine decodes a single element. Non-object elements become a line
// whose message is the raw JSON text.
func decodeLogLine(raw json.RawMessage) LogLine {
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null")) {
		return LogLine{}
	}
	if trimmed[0] != '{' {
		return LogLine{Message: Text(scalarText(trimmed))}
	}
	var line LogLine
	if err := json.Unmarshal(trimmed, &line); err != nil {
		return LogLine{Message: Text(trimmed)}
	}
	return line
}

// UploadResult is the /upload success body, kept verbatim.
type UploadResult struct {
	Raw json.RawMessage
}

// Pretty returns the body indented with two spaces, or the raw text when it
// cannot be re-indented.
func (u UploadResult) Pretty() string {
	if len(u.Raw) == 0 {
		return "null"
	}
	var buf bytes.Buffer
	if err := json.Indent(&buf, u.Raw, "", "  "); err != nil {
		return string(u.Raw)
	}
	return buf.String()
}

func scalarText(data []byte) string {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null")) {
		return ""
	}
	if trimmed[0] == '"' {
		var s string
		if err := json.Unmarshal(trimmed, &s); err == nil {
			return s
		}
	}
	return string(trimmed)
}

func parseTime(value string) time.Time {
	value = strings.TrimSpace(value)
	if value == "" {
		return time.Time{}
	}
	for _, layout := range []string{time.RFC3339Nano, time.RFC3339} {
		if t, err := time.Parse(layout, value); err == nil {
			return t
		}
	}
	// Naive timestamps carry no zone and are read as local time.
	for _, layout := range []string{"2006-01-02T15:04:05.999999999", "2006-01-02T15:04:05", timestampLayout} {
		if t, err := time.ParseInLocation(layout, value, time.Local); err == nil {
			return t
		}
	}
	return time.Time{}
}
