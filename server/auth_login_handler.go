package server

import (
	"net/http"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/datascope-labs/authrelay/pkce"
	"github.com/datascope-labs/authrelay/sessions"
)

// LoginHandler starts the authorization-code flow: it generates fresh PKCE
// material and a state token, persists both for the callback, and redirects
// the browser to the provider. Every failure collapses into a redirect to
// the application root with a generic error.
func (s *Server) LoginHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()

		browserID, err := s.ensureBrowserID(w, r)
		if err != nil {
			log.Err(err).Msg("Login: failed to establish browser session")
			redirectWithError(w, r, genericLoginError)
			return
		}

		verifier, err := pkce.GenerateCodeVerifier()
		if err != nil {
			log.Err(err).Msg("Login: failed to generate PKCE verifier")
			redirectWithError(w, r, genericLoginError)
			return
		}

		state, err := pkce.GenerateState()
		if err != nil {
			log.Err(err).Msg("Login: failed to generate state token")
			redirectWithError(w, r, genericLoginError)
			return
		}

		// A repeat login overwrites any in-flight flow for this browser,
		// invalidating the earlier one (last writer wins).
		flowState := sessions.FlowState{
			Verifier:  verifier,
			State:     state,
			CreatedAt: time.Now(),
		}
		if err := s.sessions.PutFlowState(ctx, browserID, flowState); err != nil {
			log.Err(err).Msg("Login: failed to persist flow state")
			redirectWithError(w, r, genericLoginError)
			return
		}

		authURL, err := s.provider.AuthorizationURL(
			s.callbackRedirectURI(r),
			state,
			pkce.GenerateCodeChallenge(verifier),
		)
		if err != nil {
			log.Err(err).Msg("Login: failed to build authorization URL")
			redirectWithError(w, r, genericLoginError)
			return
		}

		s.metrics.LoginInitiated()
		http.Redirect(w, r, authURL, http.StatusFound)
	}
}
