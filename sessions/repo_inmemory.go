package sessions

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/datascope-labs/authrelay/internal/errors"
)

var _ Repo = (*InMemoryRepo)(nil)

// InMemoryRepo is a thread-safe in-memory implementation of Repo. Entries
// are expired lazily on read, so no background sweeper is needed for a
// single-process deployment.
type InMemoryRepo struct {
	mu         sync.RWMutex
	flows      map[string]flowEntry
	sessions   map[string]sessionEntry
	flowTTL    time.Duration
	sessionTTL time.Duration
	now        func() time.Time
}

type flowEntry struct {
	state     FlowState
	expiresAt time.Time
}

type sessionEntry struct {
	session   Session
	expiresAt time.Time
}

// NewInMemoryRepo creates a new in-memory session repository.
func NewInMemoryRepo(flowTTL, sessionTTL time.Duration) *InMemoryRepo {
	return &InMemoryRepo{
		flows:      make(map[string]flowEntry),
		sessions:   make(map[string]sessionEntry),
		flowTTL:    flowTTL,
		sessionTTL: sessionTTL,
		now:        time.Now,
	}
}

// PutFlowState stores or replaces the login flow state for a browser.
func (r *InMemoryRepo) PutFlowState(_ context.Context, browserID string, state FlowState) error {
	if browserID == "" {
		return fmt.Errorf("browserID is required")
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	r.flows[browserID] = flowEntry{state: state, expiresAt: r.now().Add(r.flowTTL)}
	return nil
}

// TakeFlowState retrieves and deletes the flow state for a browser.
func (r *InMemoryRepo) TakeFlowState(_ context.Context, browserID string) (FlowState, error) {
	if browserID == "" {
		return FlowState{}, fmt.Errorf("browserID is required")
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	entry, ok := r.flows[browserID]
	if !ok {
		return FlowState{}, errors.ErrNotFound
	}
	delete(r.flows, browserID)

	if r.now().After(entry.expiresAt) {
		return FlowState{}, errors.ErrFlowExpired
	}
	return entry.state, nil
}

// PutSession stores or replaces the session for a browser.
func (r *InMemoryRepo) PutSession(_ context.Context, browserID string, session Session) error {
	if browserID == "" {
		return fmt.Errorf("browserID is required")
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	r.sessions[browserID] = sessionEntry{session: session, expiresAt: r.now().Add(r.sessionTTL)}
	return nil
}

// GetSession retrieves the session for a browser.
func (r *InMemoryRepo) GetSession(_ context.Context, browserID string) (Session, error) {
	if browserID == "" {
		return Session{}, fmt.Errorf("browserID is required")
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	entry, ok := r.sessions[browserID]
	if !ok {
		return Session{}, errors.ErrSessionNotFound
	}
	if r.now().After(entry.expiresAt) {
		delete(r.sessions, browserID)
		return Session{}, errors.ErrSessionNotFound
	}
	return entry.session, nil
}

// DeleteSession removes the session for a browser.
func (r *InMemoryRepo) DeleteSession(_ context.Context, browserID string) error {
	if browserID == "" {
		return fmt.Errorf("browserID is required")
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	delete(r.sessions, browserID)
	return nil
}
