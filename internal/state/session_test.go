package state

import (
	"sync"
	"testing"
	"time"
)

func TestSession_DefaultsToAvailable(t *testing.T) {
	s := NewSession()
	if s.Degraded() {
		t.Fatal("Degraded() = true, want false for a new session")
	}
	if got := s.Snapshot().Availability.String(); got != "available" {
		t.Fatalf("Availability = %q, want available", got)
	}

	var nilSession *Session
	if nilSession.Degraded() {
		t.Fatal("nil session should read as available")
	}
}

func TestSession_MarkDegradedWritesOnce(t *testing.T) {
	s := NewSession()
	before := time.Now()

	if !s.MarkDegraded("first") {
		t.Fatal("first MarkDegraded should perform the write")
	}
	if s.MarkDegraded("second") {
		t.Fatal("second MarkDegraded should be ignored")
	}

	snap := s.Snapshot()
	if !snap.Degraded() || snap.Reason != "first" {
		t.Fatalf("snapshot = %#v, want degraded with reason first", snap)
	}
	if snap.Since.Before(before) {
		t.Fatalf("Since = %v, want >= %v", snap.Since, before)
	}
}

func TestSession_ConcurrentMarkDegradedSingleWinner(t *testing.T) {
	s := NewSession()
	var wg sync.WaitGroup
	var mu sync.Mutex
	winners := 0
	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if s.MarkDegraded("race") {
				mu.Lock()
				winners++
				mu.Unlock()
			}
		}()
	}
	wg.Wait()
	if winners != 1 {
		t.Fatalf("winners = %d, want 1", winners)
	}
}
