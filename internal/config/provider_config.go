package config

import "strings"

// ProviderConfig describes the single upstream identity provider the relay
// authenticates against.
type ProviderConfig interface {
	GetIssuerURL() string
	GetClientID() string
	GetClientSecret() string
	GetScopes() []string
}

type Provider struct{}

var _ ProviderConfig = Provider{}

func (Provider) GetIssuerURL() string {
	return GetEnv("OAUTH_ISSUER_URL", "http://localhost:9090")
}

func (Provider) GetClientID() string {
	return GetEnv("OAUTH_CLIENT_ID", "")
}

func (Provider) GetClientSecret() string {
	return GetEnv("OAUTH_CLIENT_SECRET", "")
}

func (Provider) GetScopes() []string {
	scopes := GetEnv("OAUTH_SCOPES", "openid profile email offline_access")
	return strings.Fields(scopes)
}
