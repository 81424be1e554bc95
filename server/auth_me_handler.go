package server

import (
	"net/http"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/datascope-labs/authrelay/internal/errors"
)

// SessionUser reports presence/metadata of the stored tokens. The raw token
// values are never included.
type SessionUser struct {
	HasToken        bool      `json:"hasToken"`
	ExpiresAt       time.Time `json:"expiresAt"`
	HasRefreshToken bool      `json:"hasRefreshToken"`
}

type MeResponse struct {
	Authenticated bool         `json:"authenticated"`
	User          *SessionUser `json:"user"`
	Reason        string       `json:"reason,omitempty"`
}

// MeHandler reports session status without contacting the provider. Unlike
// the flow endpoints it is consumed programmatically, so failures are
// structured JSON rather than redirects.
func (s *Server) MeHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()

		browserID, ok := s.browserIDFromRequest(r)
		if !ok {
			writeJSON(w, http.StatusOK, MeResponse{Authenticated: false})
			return
		}

		session, err := s.sessions.GetSession(ctx, browserID)
		if errors.Is(err, errors.ErrSessionNotFound) {
			writeJSON(w, http.StatusOK, MeResponse{Authenticated: false})
			return
		}
		if err != nil {
			log.Err(err).Msg("Me: failed to read session")
			writeJSONError(w, http.StatusInternalServerError, "internal server error")
			return
		}

		if !session.Valid(time.Now()) {
			writeJSON(w, http.StatusOK, MeResponse{Authenticated: false, Reason: "session_expired"})
			return
		}

		writeJSON(w, http.StatusOK, MeResponse{
			Authenticated: true,
			User: &SessionUser{
				HasToken:        true,
				ExpiresAt:       session.ExpiresAt,
				HasRefreshToken: session.RefreshToken != "",
			},
		})
	}
}
