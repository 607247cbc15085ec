// Package ingest provides the HTTP client for the log-ingestion backend.
//
// # Overview
//
// Client is the single translation boundary between the network and the rest
// of logdeck. Every call goes through Client.Request, which returns the
// success body verbatim and turns every failure into one of two error kinds:
//
//   - *DatabaseUnavailableError: a 503 whose message mentions "database"
//     (any case). The UI reacts by entering degraded mode.
//   - *HTTPError: any other non-success status, plus transport and decode
//     failures (Status is 0 for transport failures).
//
// # Error Messages
//
// For non-success responses the message is derived in priority order:
//
//  1. the JSON body's "detail" field
//  2. the JSON body re-serialized
//  3. the raw response text
//  4. the HTTP status text
//  5. "HTTP {status}"
//
// # Endpoints
//
//   - GET  /api/ingests                    ListIngests
//   - GET  /api/ingests/{id}/logs?limit=N  FetchLogs
//   - POST /upload (multipart "file")      Upload
//
// # Decoding
//
// No schema validation happens here. IngestRecord and LogLine use tolerant
// field types (ID, Text, Count) so null, absent, or oddly typed fields decode
// to sensible zero values instead of failing the whole response. Log elements
// are decoded one by one; a non-object element becomes a line carrying the raw
// JSON as its message.
//
// # Requests
//
// Requests set Accept: application/json, a logdeck User-Agent, and a fresh
// X-Request-ID. No timeout is applied unless WithTimeout is given, and nothing
// is retried.
package ingest
