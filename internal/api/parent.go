package api

import (
	"errors"
	"net/http"

	"github.com/goodtune/brightboard/internal/session"
	"github.com/goodtune/brightboard/internal/settings"
)

func (s *Server) handleGetProgress(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, s.deps.Ledger.Progress(r.Context()))
}

func (s *Server) handleResetProgress(w http.ResponseWriter, r *http.Request) {
	if err := s.deps.Ledger.ResetAll(r.Context()); err != nil {
		s.logger.Error().Err(err).Msg("Failed to reset progress")
		writeError(w, http.StatusInternalServerError, codeInternal, "Failed to reset progress")
		return
	}
	writeJSON(w, http.StatusOK, s.deps.Ledger.Progress(r.Context()))
}

func viewSettings(d settings.Data) SettingsView {
	return SettingsView{
		SoundEnabled:  d.SoundEnabled,
		TVMode:        d.TVMode,
		SessionLength: d.SessionLength,
	}
}

func (s *Server) handleGetSettings(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, viewSettings(s.deps.Settings.Get()))
}

func (s *Server) handleUpdateSettings(w http.ResponseWriter, r *http.Request) {
	var u settings.Update
	if err := decodeBody(r, &u); err != nil {
		writeError(w, http.StatusBadRequest, codeBadRequest, "Invalid request body")
		return
	}
	s.writeSettings(w, func() (settings.Data, error) {
		return s.deps.Settings.Update(r.Context(), u)
	})
}

func (s *Server) handleToggleSound(w http.ResponseWriter, r *http.Request) {
	s.writeSettings(w, func() (settings.Data, error) {
		return s.deps.Settings.ToggleSound(r.Context())
	})
}

func (s *Server) handleToggleTV(w http.ResponseWriter, r *http.Request) {
	s.writeSettings(w, func() (settings.Data, error) {
		return s.deps.Settings.ToggleTVMode(r.Context())
	})
}

// writeSettings applies change and keeps the focus navigator in step with
// TV mode.
func (s *Server) writeSettings(w http.ResponseWriter, change func() (settings.Data, error)) {
	data, err := change()
	switch {
	case err == nil:
		s.deps.Navigator.SetEnabled(data.TVMode)
		writeJSON(w, http.StatusOK, viewSettings(data))
	case errors.Is(err, settings.ErrInvalidSessionLength), errors.Is(err, settings.ErrInvalidPIN):
		writeError(w, http.StatusBadRequest, codeBadRequest, err.Error())
	default:
		s.logger.Error().Err(err).Msg("Failed to save settings")
		writeError(w, http.StatusInternalServerError, codeInternal, "Failed to save settings")
	}
}

func (s *Server) sessionResponse(status session.Status) SessionResponse {
	return SessionResponse{Status: status, Pad: s.deps.PinPad.State()}
}

func (s *Server) handleGetSession(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, s.sessionResponse(s.deps.Guardian.Tick(r.Context())))
}

func (s *Server) handleStartSession(w http.ResponseWriter, r *http.Request) {
	var req StartSessionRequest
	if err := decodeBody(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, codeBadRequest, "Invalid request body")
		return
	}

	minutes := req.Minutes
	if minutes == nil {
		minutes = s.deps.Settings.Get().SessionLength
	}
	if minutes == nil {
		writeError(w, http.StatusBadRequest, codeBadRequest, "No session length is configured")
		return
	}

	status, err := s.deps.Guardian.Start(r.Context(), *minutes)
	switch {
	case err == nil:
		writeJSON(w, http.StatusOK, s.sessionResponse(status))
	case errors.Is(err, session.ErrInvalidDuration):
		writeError(w, http.StatusBadRequest, codeBadRequest, err.Error())
	case errors.Is(err, session.ErrLocked):
		writeError(w, http.StatusLocked, codeLocked, lockedMessage)
	default:
		s.logger.Error().Err(err).Msg("Failed to start session")
		writeError(w, http.StatusInternalServerError, codeInternal, "Failed to start session")
	}
}

func (s *Server) handleEndSession(w http.ResponseWriter, r *http.Request) {
	status, err := s.deps.Guardian.End(r.Context())
	switch {
	case err == nil:
		writeJSON(w, http.StatusOK, s.sessionResponse(status))
	case errors.Is(err, session.ErrLocked):
		writeError(w, http.StatusLocked, codeLocked, lockedMessage)
	default:
		s.logger.Error().Err(err).Msg("Failed to end session")
		writeError(w, http.StatusInternalServerError, codeInternal, "Failed to end session")
	}
}

func (s *Server) handleUnlock(w http.ResponseWriter, r *http.Request) {
	var req UnlockRequest
	if err := decodeBody(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, codeBadRequest, "Invalid request body")
		return
	}

	status, err := s.deps.Guardian.Unlock(r.Context(), req.PIN)
	switch {
	case err == nil:
		writeJSON(w, http.StatusOK, s.sessionResponse(status))
	case errors.Is(err, session.ErrInvalidPIN):
		writeError(w, http.StatusForbidden, codeInvalidPIN, "Wrong PIN")
	default:
		s.logger.Error().Err(err).Msg("Failed to unlock session")
		writeError(w, http.StatusInternalServerError, codeInternal, "Failed to unlock")
	}
}

func (s *Server) handlePIN(w http.ResponseWriter, r *http.Request) {
	var req PINRequest
	if err := decodeBody(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, codeBadRequest, "Invalid request body")
		return
	}

	if req.Backspace {
		writeJSON(w, http.StatusOK, s.deps.PinPad.Backspace())
		return
	}

	state, err := s.deps.PinPad.Press(r.Context(), req.Digit)
	switch {
	case err == nil:
		writeJSON(w, http.StatusOK, state)
	case errors.Is(err, session.ErrNotLocked):
		writeError(w, http.StatusConflict, codeNotLocked, "The session is not locked")
	case errors.Is(err, session.ErrInvalidDigit):
		writeError(w, http.StatusBadRequest, codeBadRequest, err.Error())
	default:
		writeError(w, http.StatusInternalServerError, codeInternal, err.Error())
	}
}
