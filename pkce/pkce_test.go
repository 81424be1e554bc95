package pkce_test

import (
	"crypto/sha256"
	"encoding/base64"
	"testing"

	"github.com/datascope-labs/authrelay/pkce"
	"github.com/stretchr/testify/require"
)

func TestGenerateCodeVerifier(t *testing.T) {
	v1, err := pkce.GenerateCodeVerifier()
	require.NoError(t, err)
	require.GreaterOrEqual(t, len(v1), 43) // RFC 7636 minimum length

	v2, err := pkce.GenerateCodeVerifier()
	require.NoError(t, err)
	require.NotEqual(t, v1, v2, "each flow must get a fresh verifier")
}

func TestGenerateCodeChallenge(t *testing.T) {
	// RFC 7636 appendix B test vector
	const verifier = "dBjftJeZ4CVP-mB92K27uhbUJU1p1r_wW1gFWFOEjXk"
	require.Equal(t, "E9Melhoa2OwvFrEMTJguCHaoeK1t8URWbuGJSstw-cM", pkce.GenerateCodeChallenge(verifier))
}

func TestGenerateCodeChallengeIsS256(t *testing.T) {
	verifier, err := pkce.GenerateCodeVerifier()
	require.NoError(t, err)

	hash := sha256.Sum256([]byte(verifier))
	require.Equal(t, base64.RawURLEncoding.EncodeToString(hash[:]), pkce.GenerateCodeChallenge(verifier))
}

func TestGenerateState(t *testing.T) {
	s1, err := pkce.GenerateState()
	require.NoError(t, err)
	require.NotEmpty(t, s1)

	s2, err := pkce.GenerateState()
	require.NoError(t, err)
	require.NotEqual(t, s1, s2)
}
