package server

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"github.com/google/uuid"
)

const (
	contentTypeJSON = "application/json; charset=utf-8"

	// genericLoginError is shown when login initiation fails for any
	// internal reason; details stay in the logs.
	genericLoginError = "failed to initiate login"
)

// callbackRedirectURI derives the provider redirect URI from the origin of
// the current request, so the relay works behind any hostname without a
// fixed configuration entry. A configured base URL pins it instead, for
// providers that require an exact registered redirect.
func (s *Server) callbackRedirectURI(r *http.Request) string {
	if base := s.config.GetBaseURL(); base != "" {
		return strings.TrimSuffix(base, "/") + RouteAuthCallback
	}
	return fmt.Sprintf("%s://%s%s", getScheme(r), r.Host, RouteAuthCallback)
}

// ensureBrowserID returns the browser ID from the session cookie, minting a
// new cookie when none (or an invalid one) is present.
func (s *Server) ensureBrowserID(w http.ResponseWriter, r *http.Request) (string, error) {
	if browserID, ok := s.browserIDFromRequest(r); ok {
		return browserID, nil
	}

	browserID := uuid.New().String()
	value, err := s.cookies.mint(browserID)
	if err != nil {
		return "", err
	}
	s.setBrowserCookie(w, r, value, int(s.cookies.ttl.Seconds()))
	return browserID, nil
}

// redirectSuccess sends the browser back to the application root after a
// completed login.
func redirectSuccess(w http.ResponseWriter, r *http.Request) {
	http.Redirect(w, r, "/?login=success", http.StatusFound)
}

// redirectWithError sends the browser back to the application root with a
// URL-encoded error message. Flow endpoints are reached via full-page
// navigation, so errors are never returned as raw payloads.
func redirectWithError(w http.ResponseWriter, r *http.Request, errorMsg string) {
	http.Redirect(w, r, "/?error="+url.QueryEscape(errorMsg), http.StatusFound)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", contentTypeJSON)
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeJSONError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}
