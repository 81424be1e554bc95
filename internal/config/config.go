package config

type Config interface {
	EnvConfig
	CorsConfig
	ProviderConfig
	SessionConfig
}

type mainConfig struct {
	EnvVars
	Cors
	Provider
	Sessions
}

func New() Config {
	return mainConfig{}
}
