package state

import (
	"context"
	"log/slog"

	"github.com/five82/logdeck/internal/ingest"
)

// Lister is the part of the ingest client the monitor needs.
type Lister interface {
	ListIngests(ctx context.Context) ([]ingest.IngestRecord, error)
}

// ProbeResult describes how the startup probe settled.
type ProbeResult struct {
	// Degraded is true when this probe moved the session into degraded mode.
	Degraded bool
	// Err is the probe failure, if any. Non-database failures are reported
	// here but cause no state change.
	Err error
}

// Monitor probes backend health once at startup.
type Monitor struct {
	lister  Lister
	session *Session
	logger  *slog.Logger
}

// NewMonitor builds a Monitor writing into session.
func NewMonitor(lister Lister, session *Session, logger *slog.Logger) *Monitor {
	if logger == nil {
		logger = slog.Default()
	}
	return &Monitor{lister: lister, session: session, logger: logger}
}

// Probe issues one ingest-list request purely as a health check. The result
// is discarded on success. Only a database-unavailable failure degrades the
// session; every other error is logged and swallowed.
func (m *Monitor) Probe(ctx context.Context) ProbeResult {
	if m == nil || m.lister == nil {
		return ProbeResult{}
	}
	_, err := m.lister.ListIngests(ctx)
	if err == nil {
		m.logger.Debug("startup probe ok")
		return ProbeResult{}
	}
	if !ingest.IsDatabaseUnavailable(err) {
		m.logger.Warn("startup probe failed", "error", err)
		return ProbeResult{Err: err}
	}
	m.logger.Warn("backend database unavailable, entering degraded mode", "error", err)
	degraded := false
	if m.session != nil {
		degraded = m.session.MarkDegraded(err.Error())
	}
	return ProbeResult{Degraded: degraded, Err: err}
}
