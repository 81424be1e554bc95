package provider_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/datascope-labs/authrelay/provider"
)

const (
	testClientID     = "relay-client"
	testClientSecret = "relay-secret"
	testRedirectURI  = "http://localhost:8080/api/auth/callback"
	testState        = "random-state-value"
	testChallenge    = "E9Melhoa2OwvFrEMTJguCHaoeK1t8URWbuGJSstw-cM"
	testVerifier     = "dBjftJeZ4CVP-mB92K27uhbUJU1p1r_wW1gFWFOEjXk"
)

type fakeProviderConfig struct {
	issuer   string
	clientID string
}

func (c fakeProviderConfig) GetIssuerURL() string  { return c.issuer }
func (c fakeProviderConfig) GetClientID() string   { return c.clientID }
func (fakeProviderConfig) GetClientSecret() string { return testClientSecret }
func (fakeProviderConfig) GetScopes() []string     { return []string{"openid", "email"} }

// newFakeIdP serves just enough OIDC discovery plus a token endpoint to
// exercise the real exchange path.
func newFakeIdP(t *testing.T, tokenHandler http.HandlerFunc) *httptest.Server {
	t.Helper()

	if tokenHandler == nil {
		tokenHandler = func(w http.ResponseWriter, _ *http.Request) {
			http.Error(w, "unexpected token call", http.StatusBadRequest)
		}
	}

	mux := http.NewServeMux()
	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)

	mux.HandleFunc("GET /.well-known/openid-configuration", func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(map[string]any{
			"issuer":                 srv.URL,
			"authorization_endpoint": srv.URL + "/authorize",
			"token_endpoint":         srv.URL + "/token",
			"jwks_uri":               srv.URL + "/keys",
		})
	})
	mux.HandleFunc("POST /token", tokenHandler)

	return srv
}

func TestAuthorizationURL(t *testing.T) {
	idp := newFakeIdP(t, func(w http.ResponseWriter, _ *http.Request) {
		http.Error(w, "unexpected token call", http.StatusBadRequest)
	})

	p, err := provider.NewOIDC(context.Background(), fakeProviderConfig{issuer: idp.URL, clientID: testClientID})
	require.NoError(t, err)

	authURL, err := p.AuthorizationURL(testRedirectURI, testState, testChallenge)
	require.NoError(t, err)

	parsed, err := url.Parse(authURL)
	require.NoError(t, err)
	require.Equal(t, idp.URL+"/authorize", parsed.Scheme+"://"+parsed.Host+parsed.Path)

	q := parsed.Query()
	require.Equal(t, "code", q.Get("response_type"))
	require.Equal(t, testClientID, q.Get("client_id"))
	require.Equal(t, testRedirectURI, q.Get("redirect_uri"))
	require.Equal(t, testState, q.Get("state"))
	require.Equal(t, testChallenge, q.Get("code_challenge"))
	require.Equal(t, "S256", q.Get("code_challenge_method"))
}

func TestAuthorizationURLRequiresState(t *testing.T) {
	idp := newFakeIdP(t, nil)

	p, err := provider.NewOIDC(context.Background(), fakeProviderConfig{issuer: idp.URL, clientID: testClientID})
	require.NoError(t, err)

	_, err = p.AuthorizationURL(testRedirectURI, "", testChallenge)
	require.Error(t, err)
}

func TestExchange(t *testing.T) {
	idp := newFakeIdP(t, func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, r.ParseForm())
		require.Equal(t, "authorization_code", r.PostFormValue("grant_type"))
		require.Equal(t, "auth-code-1", r.PostFormValue("code"))
		require.Equal(t, testRedirectURI, r.PostFormValue("redirect_uri"))
		require.Equal(t, testVerifier, r.PostFormValue("code_verifier"))

		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(map[string]any{
			"access_token":  "access-token-1",
			"token_type":    "bearer",
			"refresh_token": "refresh-token-1",
			"expires_in":    3600,
		})
	})

	p, err := provider.NewOIDC(context.Background(), fakeProviderConfig{issuer: idp.URL, clientID: testClientID})
	require.NoError(t, err)

	tokens, err := p.Exchange(context.Background(), "auth-code-1", testRedirectURI, testVerifier)
	require.NoError(t, err)
	require.Equal(t, "access-token-1", tokens.AccessToken)
	require.Equal(t, "refresh-token-1", tokens.RefreshToken)
	require.InDelta(t, 3600, tokens.ExpiresIn, 5)
}

func TestExchangeProviderRejection(t *testing.T) {
	idp := newFakeIdP(t, func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusBadRequest)
		_ = json.NewEncoder(w).Encode(map[string]any{
			"error":             "invalid_grant",
			"error_description": "authorization code expired",
		})
	})

	p, err := provider.NewOIDC(context.Background(), fakeProviderConfig{issuer: idp.URL, clientID: testClientID})
	require.NoError(t, err)

	_, err = p.Exchange(context.Background(), "stale-code", testRedirectURI, testVerifier)
	require.Error(t, err)
	require.Contains(t, err.Error(), "token exchange failed")
}

func TestNewOIDCRequiresClientID(t *testing.T) {
	idp := newFakeIdP(t, nil)

	_, err := provider.NewOIDC(context.Background(), fakeProviderConfig{issuer: idp.URL})
	require.Error(t, err)
}
