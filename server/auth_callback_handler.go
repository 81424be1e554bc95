package server

import (
	"net/http"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/datascope-labs/authrelay/sessions"
)

// CallbackHandler completes the authorization-code flow. Its branches are
// mutually exclusive and exhaustive; every path ends in exactly one
// redirect back to the application root.
func (s *Server) CallbackHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		query := r.URL.Query()

		// The provider's own error signaling takes precedence.
		if errorParam := query.Get("error"); errorParam != "" {
			msg := errorParam
			if desc := query.Get("error_description"); desc != "" {
				msg = errorParam + ": " + desc
			}
			log.Warn().Str("error", errorParam).Msg("Callback: provider returned an error")
			s.metrics.CallbackResult("provider_error")
			redirectWithError(w, r, msg)
			return
		}

		code := query.Get("code")
		state := query.Get("state")
		if code == "" || state == "" {
			s.metrics.CallbackResult("protocol_violation")
			redirectWithError(w, r, "missing authorization code or state")
			return
		}

		// The flow state is consumed exactly once; whether it is absent,
		// expired, or present with a different token, the state check must
		// fail hard - CSRF protection depends on this equality being exact.
		browserID, haveCookie := s.browserIDFromRequest(r)
		if !haveCookie {
			s.metrics.CallbackResult("protocol_violation")
			redirectWithError(w, r, "invalid state parameter")
			return
		}

		flowState, err := s.sessions.TakeFlowState(ctx, browserID)
		if err != nil || flowState.State != state {
			s.metrics.CallbackResult("protocol_violation")
			redirectWithError(w, r, "invalid state parameter")
			return
		}

		if flowState.Verifier == "" {
			s.metrics.CallbackResult("protocol_violation")
			redirectWithError(w, r, "missing PKCE verifier")
			return
		}

		tokens, err := s.provider.Exchange(ctx, code, s.callbackRedirectURI(r), flowState.Verifier)
		if err != nil {
			log.Err(err).Msg("Callback: token exchange failed")
			s.metrics.CallbackResult("exchange_failed")
			redirectWithError(w, r, exchangeErrorMessage(err))
			return
		}

		now := time.Now()
		session := sessions.Session{
			AccessToken:  tokens.AccessToken,
			RefreshToken: tokens.RefreshToken,
			ExpiresAt:    now.Add(time.Duration(tokens.ExpiresIn) * time.Second),
			CreatedAt:    now,
		}
		if err := s.sessions.PutSession(ctx, browserID, session); err != nil {
			log.Err(err).Msg("Callback: failed to persist session")
			s.metrics.CallbackResult("store_failed")
			redirectWithError(w, r, "failed to persist session")
			return
		}

		s.metrics.CallbackResult("success")
		redirectSuccess(w, r)
	}
}

// exchangeErrorMessage extracts a human-readable message from an exchange
// failure, falling back to a generic string.
func exchangeErrorMessage(err error) string {
	if err == nil || err.Error() == "" {
		return "token exchange failed"
	}
	return err.Error()
}
