// Package provider wraps the identity provider the relay authenticates
// against: building the authorization URL the browser is sent to, and
// exchanging the returned authorization code for tokens.
package provider

import "context"

// TokenResult is the outcome of a successful authorization-code exchange.
// ExpiresIn is the access token lifetime in seconds as reported by the
// provider; callers convert it to an absolute expiry when persisting.
type TokenResult struct {
	AccessToken  string
	RefreshToken string
	ExpiresIn    int64
}

type Provider interface {
	// AuthorizationURL builds the URL to redirect the browser to.
	AuthorizationURL(redirectURI, state, codeChallenge string) (string, error)

	// Exchange swaps an authorization code for tokens. It fails with a
	// provider error on an invalid code, verifier, or redirect mismatch.
	Exchange(ctx context.Context, code, redirectURI, verifier string) (TokenResult, error)
}
