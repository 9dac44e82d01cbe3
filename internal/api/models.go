package api

import (
	"bytes"
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"github.com/goodtune/brightboard/internal/engine"
	"github.com/goodtune/brightboard/internal/focus"
	"github.com/goodtune/brightboard/internal/games"
	"github.com/goodtune/brightboard/internal/progress"
	"github.com/goodtune/brightboard/internal/session"
)

// Error codes.
const (
	codeNotFound   = "not_found"
	codeBadRequest = "bad_request"
	codeLocked     = "locked"
	codeResolving  = "resolving"
	codeComplete   = "complete"
	codeInvalidPIN = "invalid_pin"
	codeNotLocked  = "not_locked"
	codeInternal   = "internal"
)

// ErrorResponse is the body of every non-2xx response.
type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message"`
}

// GamesResponse lists the catalog for a mode.
type GamesResponse struct {
	Mode  games.Mode   `json:"mode"`
	Games []games.Game `json:"games"`
}

// CreatePlayRequest starts a play. Level is used by games with levels.
type CreatePlayRequest struct {
	Level int `json:"level,omitempty"`
}

// PlayResponse is a play and its current state.
type PlayResponse struct {
	ID string `json:"id"`
	engine.Snapshot
}

// AnswerRequest carries a game-specific answer.
type AnswerRequest struct {
	Answer json.RawMessage `json:"answer"`
}

// ResultResponse is returned after scoring a free-play game.
type ResultResponse struct {
	GameID   string        `json:"gameId"`
	Stars    int           `json:"stars"`
	Progress progress.Data `json:"progress"`
}

// SettingsView is the settings record without the parent PIN.
type SettingsView struct {
	SoundEnabled  bool `json:"soundEnabled"`
	TVMode        bool `json:"tvMode"`
	SessionLength *int `json:"sessionLength"`
}

// StartSessionRequest starts a session. Minutes defaults to the configured
// session length.
type StartSessionRequest struct {
	Minutes *int `json:"minutes,omitempty"`
}

// UnlockRequest unlocks with a full PIN.
type UnlockRequest struct {
	PIN string `json:"pin"`
}

// PINRequest is one keypad press.
type PINRequest struct {
	Digit     string `json:"digit,omitempty"`
	Backspace bool   `json:"backspace,omitempty"`
}

// SessionResponse combines the guardian status and the keypad state.
type SessionResponse struct {
	session.Status
	Pad session.PadState `json:"pad"`
}

// FocusMoveRequest describes the current scope and the key pressed.
type FocusMoveRequest struct {
	Scope    focus.Rect      `json:"scope"`
	Elements []focus.Element `json:"elements"`
	Focused  string          `json:"focused"`
	Key      string          `json:"key"`
}

// FocusMoveResponse is the element that holds focus after the key.
type FocusMoveResponse struct {
	Focus   string `json:"focus"`
	Handled bool   `json:"handled"`
}

// writeJSON writes a JSON response.
func writeJSON(w http.ResponseWriter, statusCode int, data interface{}) {
	var buf bytes.Buffer
	if err := json.NewEncoder(&buf).Encode(data); err != nil {
		http.Error(w, `{"error":"internal","message":"Failed to encode response"}`, http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	_, _ = w.Write(buf.Bytes())
}

// writeError writes an error response.
func writeError(w http.ResponseWriter, statusCode int, code, message string) {
	writeJSON(w, statusCode, ErrorResponse{
		Error:   code,
		Message: message,
	})
}

// decodeBody decodes an optional JSON body into v. An empty body leaves v
// untouched.
func decodeBody(r *http.Request, v interface{}) error {
	if r.Body == nil {
		return nil
	}
	err := json.NewDecoder(r.Body).Decode(v)
	if errors.Is(err, io.EOF) {
		return nil
	}
	return err
}
