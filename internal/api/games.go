package api

import (
	"errors"
	"net/http"

	"github.com/goodtune/brightboard/internal/engine"
	"github.com/goodtune/brightboard/internal/games"
	"github.com/gorilla/mux"
)

func (s *Server) handleListGames(w http.ResponseWriter, r *http.Request) {
	mode, err := games.ParseMode(r.URL.Query().Get("mode"))
	if err != nil {
		writeError(w, http.StatusBadRequest, codeBadRequest, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, GamesResponse{Mode: mode, Games: s.deps.Games.Games(mode)})
}

func (s *Server) handleCreatePlay(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]

	var req CreatePlayRequest
	if err := decodeBody(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, codeBadRequest, "Invalid request body")
		return
	}

	play, err := s.deps.Games.NewPlay(id, games.PlayOptions{Level: req.Level}, s.engineOptions())
	if err != nil {
		s.writeGameError(w, id, err)
		return
	}

	playID := s.plays.add(play)
	s.logger.Info().Str("play_id", playID).Str("game", id).Msg("Play started")
	writeJSON(w, http.StatusCreated, PlayResponse{ID: playID, Snapshot: play.Snapshot()})
}

func (s *Server) handleRecordResult(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]

	var result games.FreePlayResult
	if err := decodeBody(r, &result); err != nil {
		writeError(w, http.StatusBadRequest, codeBadRequest, "Invalid request body")
		return
	}

	stars, err := s.deps.Games.Score(id, result)
	if err != nil {
		s.writeGameError(w, id, err)
		return
	}

	data, err := s.deps.Ledger.RecordCompletion(r.Context(), id, stars, true)
	if err != nil {
		s.logger.Error().Err(err).Str("game", id).Msg("Failed to record result")
		writeError(w, http.StatusInternalServerError, codeInternal, "Failed to record result")
		return
	}
	if s.deps.Cues != nil {
		s.deps.Cues.PlayStars(stars)
	}

	writeJSON(w, http.StatusOK, ResultResponse{GameID: id, Stars: stars, Progress: data})
}

func (s *Server) writeGameError(w http.ResponseWriter, id string, err error) {
	switch {
	case errors.Is(err, games.ErrUnknownGame), errors.Is(err, games.ErrComingSoon):
		writeError(w, http.StatusNotFound, codeNotFound, "Coming soon")
	case errors.Is(err, games.ErrNotRoundBased), errors.Is(err, games.ErrNotFreePlay):
		writeError(w, http.StatusBadRequest, codeBadRequest, err.Error())
	default:
		s.logger.Error().Err(err).Str("game", id).Msg("Failed to start game")
		writeError(w, http.StatusInternalServerError, codeInternal, "Failed to start game")
	}
}

func (s *Server) lookupPlay(w http.ResponseWriter, r *http.Request) (string, engine.Play, bool) {
	playID := mux.Vars(r)["playID"]
	play, ok := s.plays.get(playID)
	if !ok {
		writeError(w, http.StatusNotFound, codeNotFound, "Play not found")
		return playID, nil, false
	}
	return playID, play, true
}

func (s *Server) handleGetPlay(w http.ResponseWriter, r *http.Request) {
	playID, play, ok := s.lookupPlay(w, r)
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, PlayResponse{ID: playID, Snapshot: play.Snapshot()})
}

func (s *Server) handleDeletePlay(w http.ResponseWriter, r *http.Request) {
	playID := mux.Vars(r)["playID"]
	if !s.plays.remove(playID) {
		writeError(w, http.StatusNotFound, codeNotFound, "Play not found")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleAnswer(w http.ResponseWriter, r *http.Request) {
	playID, play, ok := s.lookupPlay(w, r)
	if !ok {
		return
	}

	var req AnswerRequest
	if err := decodeBody(r, &req); err != nil || len(req.Answer) == 0 {
		writeError(w, http.StatusBadRequest, codeBadRequest, "An answer is required")
		return
	}

	snap, err := play.SubmitJSON(r.Context(), req.Answer)
	switch {
	case err == nil:
		writeJSON(w, http.StatusOK, PlayResponse{ID: playID, Snapshot: snap})
	case errors.Is(err, engine.ErrAwaitingAdvance):
		writeError(w, http.StatusConflict, codeResolving, "This round is already answered")
	case errors.Is(err, engine.ErrGameComplete):
		writeError(w, http.StatusConflict, codeComplete, "This game is finished")
	case errors.Is(err, engine.ErrBadAnswer):
		writeError(w, http.StatusBadRequest, codeBadRequest, err.Error())
	case errors.Is(err, engine.ErrClosed):
		writeError(w, http.StatusNotFound, codeNotFound, "Play not found")
	default:
		s.logger.Error().Err(err).Str("play_id", playID).Msg("Failed to submit answer")
		writeError(w, http.StatusInternalServerError, codeInternal, "Failed to submit answer")
	}
}

func (s *Server) handleHint(w http.ResponseWriter, r *http.Request) {
	playID, play, ok := s.lookupPlay(w, r)
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, PlayResponse{ID: playID, Snapshot: play.Hint()})
}

func (s *Server) handlePlayAgain(w http.ResponseWriter, r *http.Request) {
	playID, play, ok := s.lookupPlay(w, r)
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, PlayResponse{ID: playID, Snapshot: play.PlayAgain()})
}
