package server

// Route path constants
// All application routes are defined here to ensure consistency and prevent typos
const (
	// Auth Routes - browser redirect flow
	RouteAuthLogin    = "/api/auth/login"
	RouteAuthCallback = "/api/auth/callback"
	RouteAuthLogout   = "/api/auth/logout"

	// Auth Routes - programmatic JSON API
	RouteAuthMe = "/api/auth/me"

	// Operational routes
	RouteHealth  = "/healthz"
	RouteMetrics = "/metrics"
)
