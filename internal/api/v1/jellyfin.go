package v1

import (
	"errors"
	"net/http"
	"strings"

	"github.com/vmunix/vidio/internal/jellyfin"
)

// TokenHeader carries the Jellyfin access token on /stats requests.
const TokenHeader = "X-Emby-Token"

// writeUpstreamError maps Jellyfin failures to HTTP responses.
func writeUpstreamError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, jellyfin.ErrUnauthorized):
		writeError(w, http.StatusUnauthorized, codeUnauthorized, "Jellyfin rejected the credentials")
	case errors.Is(err, jellyfin.ErrInvalidSession):
		writeError(w, http.StatusBadRequest, codeBadRequest, err.Error())
	case errors.Is(err, jellyfin.ErrUnavailable):
		writeError(w, http.StatusServiceUnavailable, codeUnavailable, "Jellyfin is unavailable, try again later")
	default:
		writeError(w, http.StatusBadGateway, codeUpstream, err.Error())
	}
}

func (s *Server) jellyfinLogin(w http.ResponseWriter, r *http.Request) {
	var req JellyfinLoginRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	if strings.TrimSpace(req.Username) == "" {
		writeError(w, http.StatusBadRequest, codeBadRequest, "username is required")
		return
	}

	session, err := s.deps.Jellyfin.AuthenticateByName(r.Context(), req.Username, req.Password)
	if err != nil {
		s.log.Warn("jellyfin login failed", "user", req.Username, "error", err)
		writeUpstreamError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, session)
}

func (s *Server) getStats(w http.ResponseWriter, r *http.Request) {
	session := jellyfin.Session{
		AccessToken: r.Header.Get(TokenHeader),
		UserID:      r.URL.Query().Get("user_id"),
	}
	if session.AccessToken == "" {
		writeError(w, http.StatusUnauthorized, codeUnauthorized, TokenHeader+" header is required")
		return
	}
	if session.UserID == "" {
		writeError(w, http.StatusBadRequest, codeBadRequest, "user_id is required")
		return
	}

	result, err := s.deps.Stats.Fetch(r.Context(), session)
	if err != nil {
		writeUpstreamError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, result)
}
