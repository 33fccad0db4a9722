package session

import (
	"context"
	"fmt"
	"sync"

	"github.com/google/uuid"

	"github.com/jonathan/docwriter/internal/report"
)

// Store keeps generated report batches keyed by session.
type Store interface {
	// Get returns the session's reports. A missing session is a
	// NotFoundError.
	Get(ctx context.Context, sessionID string) ([]*report.Report, error)
	// Put stores the session's reports, replacing any previous batch.
	Put(ctx context.Context, sessionID string, reports []*report.Report) error
}

// NotFoundError indicates an unknown or expired session
type NotFoundError struct {
	SessionID string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("session %q not found", e.SessionID)
}

// NewSessionID mints a fresh session identifier.
func NewSessionID() string {
	return "session_" + uuid.NewString()
}

// MemoryStore is an in-process Store. Safe for concurrent use.
type MemoryStore struct {
	mu       sync.RWMutex
	sessions map[string][]*report.Report
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{sessions: make(map[string][]*report.Report)}
}

func (s *MemoryStore) Get(_ context.Context, sessionID string) ([]*report.Report, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	reports, ok := s.sessions[sessionID]
	if !ok {
		return nil, &NotFoundError{SessionID: sessionID}
	}

	out := make([]*report.Report, len(reports))
	copy(out, reports)
	return out, nil
}

func (s *MemoryStore) Put(_ context.Context, sessionID string, reports []*report.Report) error {
	stored := make([]*report.Report, len(reports))
	copy(stored, reports)

	s.mu.Lock()
	defer s.mu.Unlock()
	s.sessions[sessionID] = stored
	return nil
}
