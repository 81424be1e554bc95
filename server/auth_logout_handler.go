package server

import (
	"net/http"

	"github.com/rs/zerolog/log"
)

// LogoutHandler deletes the stored session and clears the browser cookie.
// Failures are logged but the browser always ends up back at the root.
func (s *Server) LogoutHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if browserID, ok := s.browserIDFromRequest(r); ok {
			if err := s.sessions.DeleteSession(r.Context(), browserID); err != nil {
				log.Err(err).Msg("Logout: failed to delete session")
			}
		}
		s.clearBrowserCookie(w, r)
		http.Redirect(w, r, "/", http.StatusFound)
	}
}
