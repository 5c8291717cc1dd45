// internal/httpserver/api.go
//
// JSON game endpoints:
//   - POST /game/new     {mode?, answer?} → {token, state}
//   - POST /game/answer  {answer}         → state
//   - POST /game/giveup                   → state
//   - GET  /game/state                    → state
//
// Error bodies are {"error": code}:
//   400 bad_json | empty_answer | bad_request, 422 invalid_pattern,
//   404 no_game, 409 not_in_progress, 500 store_failed.

package httpserver

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"github.com/rs/zerolog/log"

	"github.com/robalobadob/reddle/internal/game"
	"github.com/robalobadob/reddle/internal/metrics"
	"github.com/robalobadob/reddle/internal/store"
)

// newGameReq/Res payloads for POST /game/new.
type newGameReq struct {
	Mode   string `json:"mode"`   // "random" | "daily"
	Answer string `json:"answer"` // optional fixed answer (testing)
}
type newGameRes struct {
	Token string    `json:"token"`
	State stateView `json:"state"`
}

// handleNewGame starts (or restarts) the caller's game and issues a session token.
func (s *Server) handleNewGame(w http.ResponseWriter, r *http.Request) {
	var req newGameReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil && !errors.Is(err, io.EOF) {
		writeError(w, http.StatusBadRequest, "bad_json")
		return
	}
	pick, mode, err := s.picker(startRequest{Mode: req.Mode, Answer: req.Answer})
	if err != nil {
		writeError(w, http.StatusBadRequest, "bad_request")
		return
	}

	sid, _ := s.sessionID(r)
	snap, err := s.startGame(r.Context(), sid, pick, mode)
	if err != nil {
		log.Error().Err(err).Msg("start game")
		writeError(w, http.StatusInternalServerError, "store_failed")
		return
	}

	tok, exp, err := s.signSession(snap.ID)
	if err != nil {
		log.Error().Err(err).Msg("sign session")
		writeError(w, http.StatusInternalServerError, "sign_failed")
		return
	}
	s.setSessionCookie(w, tok, exp)
	writeJSON(w, http.StatusOK, newGameRes{Token: tok, State: newStateView(snap)})
}

// answerReq is the payload for POST /game/answer.
type answerReq struct {
	Answer string `json:"answer"`
}

// handleAnswer validates the submission and scores it against the caller's game.
func (s *Server) handleAnswer(w http.ResponseWriter, r *http.Request) {
	var req answerReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "bad_json")
		return
	}
	text, err := game.ValidateAnswer(req.Answer)
	if err != nil {
		s.rejectAnswer(w, err)
		return
	}
	sid, err := s.sessionID(r)
	if err != nil {
		writeError(w, http.StatusNotFound, "no_game")
		return
	}
	snap, err := s.submitAnswer(r.Context(), sid, text)
	if err != nil {
		s.writeOpError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, newStateView(snap))
}

// handleGiveUp completes the caller's game.
func (s *Server) handleGiveUp(w http.ResponseWriter, r *http.Request) {
	sid, err := s.sessionID(r)
	if err != nil {
		writeError(w, http.StatusNotFound, "no_game")
		return
	}
	snap, err := s.giveUp(r.Context(), sid)
	if err != nil {
		s.writeOpError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, newStateView(snap))
}

// handleState returns the caller's game, or an empty NotStarted view.
func (s *Server) handleState(w http.ResponseWriter, r *http.Request) {
	sid, err := s.sessionID(r)
	if err != nil {
		writeJSON(w, http.StatusOK, emptyView())
		return
	}
	snap, err := s.currentState(r.Context(), sid)
	if errors.Is(err, store.ErrNotFound) {
		writeJSON(w, http.StatusOK, emptyView())
		return
	}
	if err != nil {
		log.Error().Err(err).Str("gameId", sid).Msg("load game")
		writeError(w, http.StatusInternalServerError, "store_failed")
		return
	}
	writeJSON(w, http.StatusOK, newStateView(snap))
}

// rejectAnswer reports a submission that failed validation.
func (s *Server) rejectAnswer(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, game.ErrEmptyAnswer):
		metrics.RejectedAnswers.WithLabelValues("empty").Inc()
		writeError(w, http.StatusBadRequest, "empty_answer")
	default:
		metrics.RejectedAnswers.WithLabelValues("invalid_pattern").Inc()
		writeError(w, http.StatusUnprocessableEntity, "invalid_pattern")
	}
}

// writeOpError maps game/store errors to HTTP responses.
func (s *Server) writeOpError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, store.ErrNotFound):
		writeError(w, http.StatusNotFound, "no_game")
	case errors.Is(err, errNotInProgress):
		metrics.RejectedAnswers.WithLabelValues("not_in_progress").Inc()
		writeError(w, http.StatusConflict, "not_in_progress")
	case errors.Is(err, game.ErrInvalidPattern):
		writeError(w, http.StatusUnprocessableEntity, "invalid_pattern")
	default:
		log.Error().Err(err).Msg("game operation")
		writeError(w, http.StatusInternalServerError, "store_failed")
	}
}
