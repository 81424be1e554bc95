// Package pkce generates the Proof Key for Code Exchange material used to
// bind an authorization code to the browser session that requested it.
package pkce

import (
	"crypto/rand"
	"crypto/sha256"
	"encoding/base64"
	"fmt"
)

const (
	verifierBytes = 32 // 32 bytes = 43 base64url chars, RFC 7636 minimum
	stateBytes    = 32
)

// GenerateCodeVerifier creates a fresh random PKCE code verifier.
func GenerateCodeVerifier() (string, error) {
	return randomString(verifierBytes)
}

// GenerateCodeChallenge derives the S256 code challenge from a verifier.
func GenerateCodeChallenge(verifier string) string {
	hash := sha256.Sum256([]byte(verifier))
	return base64.RawURLEncoding.EncodeToString(hash[:])
}

// GenerateState creates a fresh anti-CSRF state token.
func GenerateState() (string, error) {
	return randomString(stateBytes)
}

func randomString(length int) (string, error) {
	b := make([]byte, length)
	if _, err := rand.Read(b); err != nil {
		return "", fmt.Errorf("pkce: failed to read random bytes: %w", err)
	}
	return base64.RawURLEncoding.EncodeToString(b), nil
}
