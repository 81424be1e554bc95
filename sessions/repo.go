package sessions

import "context"

// Repo is the per-browser session store. All keys are scoped by the opaque
// browser ID carried in the session cookie; entries expire at store level.
type Repo interface {
	// PutFlowState stores the login flow state, replacing any in-flight
	// flow for the same browser (last writer wins).
	PutFlowState(ctx context.Context, browserID string, state FlowState) error

	// TakeFlowState retrieves and deletes the flow state in one step so a
	// verifier can never be replayed. Returns errors.ErrNotFound when no
	// unexpired flow state exists.
	TakeFlowState(ctx context.Context, browserID string) (FlowState, error)

	// PutSession persists the tokens obtained from the provider.
	PutSession(ctx context.Context, browserID string, session Session) error

	// GetSession returns the persisted session. Returns
	// errors.ErrSessionNotFound when none exists.
	GetSession(ctx context.Context, browserID string) (Session, error)

	DeleteSession(ctx context.Context, browserID string) error
}
