package server

import (
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/datascope-labs/authrelay/internal/config"
)

// cookieCodec mints and parses the browser session cookie. The cookie value
// is a compact HS256 JWT carrying only the opaque browser ID; tokens
// themselves never go into cookies.
type cookieCodec struct {
	cookieName string
	secret     []byte
	ttl        time.Duration
}

func newCookieCodec(cfg config.SessionConfig) (*cookieCodec, error) {
	secret := cfg.GetCookieSigningSecret()
	if secret == "" {
		return nil, errors.New("cookie signing secret is required")
	}
	return &cookieCodec{
		cookieName: cfg.GetSessionCookieName(),
		secret:     []byte(secret),
		ttl:        cfg.GetSessionTTL(),
	}, nil
}

func (c *cookieCodec) mint(browserID string) (string, error) {
	now := time.Now()
	claims := jwt.RegisteredClaims{
		ID:        browserID,
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(c.ttl)),
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(c.secret)
	if err != nil {
		return "", fmt.Errorf("failed to sign session cookie: %w", err)
	}
	return signed, nil
}

func (c *cookieCodec) parse(value string) (string, error) {
	var claims jwt.RegisteredClaims
	_, err := jwt.ParseWithClaims(value, &claims, func(_ *jwt.Token) (interface{}, error) {
		return c.secret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil {
		return "", fmt.Errorf("invalid session cookie: %w", err)
	}
	if claims.ID == "" {
		return "", errors.New("session cookie has no browser ID")
	}
	return claims.ID, nil
}

// browserIDFromRequest returns the browser ID from a valid session cookie.
func (s *Server) browserIDFromRequest(r *http.Request) (string, bool) {
	cookie, err := r.Cookie(s.cookies.cookieName)
	if err != nil || cookie.Value == "" {
		return "", false
	}
	browserID, err := s.cookies.parse(cookie.Value)
	if err != nil {
		return "", false
	}
	return browserID, true
}

// setBrowserCookie writes the signed session cookie. SameSite=Lax so the
// cookie still accompanies the top-level redirect back from the provider.
func (s *Server) setBrowserCookie(w http.ResponseWriter, r *http.Request, value string, maxAge int) {
	http.SetCookie(w, &http.Cookie{
		Name:     s.cookies.cookieName,
		Value:    value,
		Path:     "/",
		HttpOnly: true,
		Secure:   getScheme(r) == "https",
		SameSite: http.SameSiteLaxMode,
		MaxAge:   maxAge,
	})
}

func (s *Server) clearBrowserCookie(w http.ResponseWriter, r *http.Request) {
	s.setBrowserCookie(w, r, "", -1)
}
