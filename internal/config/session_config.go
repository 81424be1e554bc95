package config

import "time"

type SessionConfig interface {
	GetSessionCookieName() string
	GetCookieSigningSecret() string
	GetSessionSealKey() string
	GetSessionTTL() time.Duration
	GetFlowStateTTL() time.Duration
	GetSessionStore() string
	GetRedisAddr() string
	GetRedisPassword() string
}

type Sessions struct{}

var _ SessionConfig = Sessions{}

func (Sessions) GetSessionCookieName() string {
	return GetEnv("SESSION_COOKIE_NAME", "authrelay_session")
}

func (Sessions) GetCookieSigningSecret() string {
	return GetEnv("COOKIE_SIGNING_SECRET", "")
}

// GetSessionSealKey returns the hex-encoded 256-bit key used to seal token
// values before they are written to the session store.
func (Sessions) GetSessionSealKey() string {
	return GetEnv("SESSION_SEAL_KEY", "")
}

func (Sessions) GetSessionTTL() time.Duration {
	return durationEnv("SESSION_TTL", 24*time.Hour)
}

// GetFlowStateTTL bounds the window between login initiation and callback.
func (Sessions) GetFlowStateTTL() time.Duration {
	return durationEnv("FLOW_STATE_TTL", 10*time.Minute)
}

// GetSessionStore selects the store backend: "memory" or "redis".
func (Sessions) GetSessionStore() string {
	return GetEnv("SESSION_STORE", "memory")
}

func (Sessions) GetRedisAddr() string {
	return GetEnv("REDIS_ADDR", "localhost:6379")
}

func (Sessions) GetRedisPassword() string {
	return GetEnv("REDIS_PASSWORD", "")
}

func durationEnv(envVar string, defaultValue time.Duration) time.Duration {
	value := GetEnv(envVar, "")
	if value == "" {
		return defaultValue
	}
	d, err := time.ParseDuration(value)
	if err != nil {
		return defaultValue
	}
	return d
}
