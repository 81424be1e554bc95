package sessions

import "time"

// Session holds the tokens obtained from the identity provider for a single
// browser. The raw token values never leave the store except to handlers;
// responses only ever carry presence/expiry metadata.
type Session struct {
	AccessToken  string    `json:"access_token"`
	RefreshToken string    `json:"refresh_token,omitempty"`
	ExpiresAt    time.Time `json:"expires_at"`
	CreatedAt    time.Time `json:"created_at"`
}

// Valid reports whether the session carries an unexpired access token.
func (s Session) Valid(now time.Time) bool {
	return s.AccessToken != "" && now.Before(s.ExpiresAt)
}

// FlowState is the transient PKCE verifier / anti-CSRF state pair persisted
// between login initiation and the provider callback. It is consumed exactly
// once; a second login initiation from the same browser overwrites it.
type FlowState struct {
	Verifier  string    `json:"verifier"`
	State     string    `json:"state"`
	CreatedAt time.Time `json:"created_at"`
}
