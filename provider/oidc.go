package provider

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/coreos/go-oidc/v3/oidc"
	"github.com/rs/zerolog/log"
	"golang.org/x/oauth2"

	"github.com/datascope-labs/authrelay/internal/config"
)

var _ Provider = (*OIDCProvider)(nil)

// OIDCProvider talks to a single upstream provider whose endpoints are
// located via OIDC discovery at startup.
type OIDCProvider struct {
	oauthConfig oauth2.Config
}

// NewOIDC discovers the provider's endpoints from the configured issuer.
func NewOIDC(ctx context.Context, cfg config.ProviderConfig) (*OIDCProvider, error) {
	if cfg.GetClientID() == "" {
		return nil, errors.New("provider client ID is required")
	}

	oidcProvider, err := oidc.NewProvider(ctx, cfg.GetIssuerURL())
	if err != nil {
		return nil, fmt.Errorf("failed to discover OIDC provider: %w", err)
	}

	log.Info().Str("issuer", cfg.GetIssuerURL()).Msg("OIDC provider discovered")

	return &OIDCProvider{
		oauthConfig: oauth2.Config{
			ClientID:     cfg.GetClientID(),
			ClientSecret: cfg.GetClientSecret(),
			Endpoint:     oidcProvider.Endpoint(),
			Scopes:       cfg.GetScopes(),
		},
	}, nil
}

// AuthorizationURL builds the provider authorization URL carrying the state
// token and the S256 PKCE challenge.
func (p *OIDCProvider) AuthorizationURL(redirectURI, state, codeChallenge string) (string, error) {
	if state == "" {
		return "", errors.New("state parameter is required")
	}
	if codeChallenge == "" {
		return "", errors.New("code challenge is required")
	}

	// RedirectURL is per request: the callback URI is derived from the
	// incoming request's origin, not fixed at startup.
	oauthCfg := p.oauthConfig
	oauthCfg.RedirectURL = redirectURI

	return oauthCfg.AuthCodeURL(state,
		oauth2.SetAuthURLParam("code_challenge", codeChallenge),
		oauth2.SetAuthURLParam("code_challenge_method", "S256"),
	), nil
}

// Exchange performs the authorization-code token exchange.
func (p *OIDCProvider) Exchange(ctx context.Context, code, redirectURI, verifier string) (TokenResult, error) {
	if code == "" {
		return TokenResult{}, errors.New("authorization code is required")
	}

	oauthCfg := p.oauthConfig
	oauthCfg.RedirectURL = redirectURI

	token, err := oauthCfg.Exchange(ctx, code,
		oauth2.SetAuthURLParam("code_verifier", verifier),
	)
	if err != nil {
		return TokenResult{}, fmt.Errorf("token exchange failed: %w", err)
	}

	var expiresIn int64
	if !token.Expiry.IsZero() {
		expiresIn = int64(time.Until(token.Expiry).Seconds())
	}

	log.Debug().
		Bool("has_refresh_token", token.RefreshToken != "").
		Int64("expires_in", expiresIn).
		Msg("authorization code exchange successful")

	return TokenResult{
		AccessToken:  token.AccessToken,
		RefreshToken: token.RefreshToken,
		ExpiresIn:    expiresIn,
	}, nil
}
