package v1

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/vmunix/vidio/internal/auth"
	"github.com/vmunix/vidio/internal/settings"
)

const statusProbeTimeout = 5 * time.Second

func (s *Server) getStatus(w http.ResponseWriter, r *http.Request) {
	resp := StatusResponse{
		Status:  "ok",
		Version: s.cfg.Version,
		Admin:   s.deps.Gate.Enabled(),
	}

	if jf := s.deps.Jellyfin; jf != nil {
		resp.Jellyfin.Configured = true
		if b, ok := jf.(interface{ State() string }); ok {
			resp.Jellyfin.BreakerState = b.State()
		}

		ctx, cancel := context.WithTimeout(r.Context(), statusProbeTimeout)
		defer cancel()
		info, err := jf.PublicInfo(ctx)
		if err != nil {
			resp.Jellyfin.Error = err.Error()
		} else {
			resp.Jellyfin.Reachable = true
			resp.Jellyfin.ServerName = info.ServerName
			resp.Jellyfin.Version = info.Version
		}
	}

	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) getLanding(w http.ResponseWriter, r *http.Request) {
	cp := s.deps.Landing.Select(r.URL.Query().Get("lang"), r.Header.Get("Accept-Language"))

	reveal, err := s.deps.Settings.Get(settings.KeyRevealImage)
	if err != nil {
		s.log.Error("read reveal image", "error", err)
		reveal = settings.DefaultRevealImage
	}

	w.Header().Set("Content-Language", cp.Lang)
	w.Header().Add("Vary", "Accept-Language")
	writeJSON(w, http.StatusOK, LandingResponse{
		Copy:        *cp,
		RevealImage: reveal,
		Languages:   s.deps.Landing.Languages(),
	})
}

func (s *Server) listSettings(w http.ResponseWriter, r *http.Request) {
	all, err := s.deps.Settings.All()
	if err != nil {
		writeError(w, http.StatusInternalServerError, codeInternal, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, all)
}

func (s *Server) updateSetting(w http.ResponseWriter, r *http.Request) {
	key := r.PathValue("key")

	var req SettingRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	if err := s.deps.Settings.Set(key, req.Value); err != nil {
		switch {
		case errors.Is(err, settings.ErrUnknownKey):
			writeError(w, http.StatusNotFound, codeNotFound,
				fmt.Sprintf("%v (known: %s)", err, strings.Join(settings.Keys(), ", ")))
		case errors.Is(err, settings.ErrInvalidValue):
			writeError(w, http.StatusBadRequest, codeBadRequest, err.Error())
		default:
			writeError(w, http.StatusInternalServerError, codeInternal, err.Error())
		}
		return
	}

	value, err := s.deps.Settings.Get(key)
	if err != nil {
		writeError(w, http.StatusInternalServerError, codeInternal, err.Error())
		return
	}
	s.log.Info("setting updated", "key", key)
	writeJSON(w, http.StatusOK, SettingResponse{Key: key, Value: value})
}

func (s *Server) adminLogin(w http.ResponseWriter, r *http.Request) {
	var req AdminLoginRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	tok, err := s.deps.Gate.Login(req.Password)
	if err != nil {
		switch {
		case errors.Is(err, auth.ErrDisabled):
			writeError(w, http.StatusServiceUnavailable, codeUnavailable, "Admin mode is not configured")
		case errors.Is(err, auth.ErrInvalidCredentials):
			writeError(w, http.StatusUnauthorized, codeUnauthorized, "Invalid password")
		default:
			writeError(w, http.StatusInternalServerError, codeInternal, err.Error())
		}
		return
	}
	writeJSON(w, http.StatusOK, tok)
}

func (s *Server) adminLogout(w http.ResponseWriter, r *http.Request) {
	s.deps.Gate.Logout(auth.BearerToken(r.Header.Get("Authorization")))
	w.WriteHeader(http.StatusNoContent)
}
