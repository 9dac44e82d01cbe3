package api

import (
	"net/http"
	"strconv"

	"github.com/goodtune/brightboard/internal/audio"
	"github.com/gorilla/mux"
)

func (s *Server) handleFocusMove(w http.ResponseWriter, r *http.Request) {
	var req FocusMoveRequest
	if err := decodeBody(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, codeBadRequest, "Invalid request body")
		return
	}

	focused, handled := s.deps.Navigator.Handle(req.Scope, req.Elements, req.Focused, req.Key)

	writeJSON(w, http.StatusOK, FocusMoveResponse{Focus: focused, Handled: handled})
}

func (s *Server) handleCue(w http.ResponseWriter, r *http.Request) {
	name := mux.Vars(r)["name"]
	notes, err := audio.Notes(name)
	if err != nil {
		writeError(w, http.StatusNotFound, codeNotFound, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, notes)
}

func (s *Server) handleStarCue(w http.ResponseWriter, r *http.Request) {
	count, err := strconv.Atoi(mux.Vars(r)["count"])
	if err != nil {
		writeError(w, http.StatusBadRequest, codeBadRequest, "Invalid star count")
		return
	}
	writeJSON(w, http.StatusOK, audio.StarNotes(count))
}
