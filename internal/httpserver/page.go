// internal/httpserver/page.go
//
// Server-rendered game page.
//   - GET  /             renders the header, scrollback, answer form and rules.
//   - POST /play/new     starts a game (form field "mode"), then redirects to /.
//   - POST /play/answer  validates field "answer"; on failure re-renders with the error.
//   - POST /play/giveup  gives up, then redirects to /.
//
// The answer form is disabled unless the game is in progress; in its place
// the page offers a new-game button.

package httpserver

import (
	"bytes"
	"errors"
	"html/template"
	"net/http"

	"github.com/rs/zerolog/log"

	"github.com/robalobadob/reddle/internal/game"
	"github.com/robalobadob/reddle/internal/metrics"
	"github.com/robalobadob/reddle/internal/store"
)

// pageData is everything index.html needs.
type pageData struct {
	State      stateView
	InProgress bool
	Error      string // validation message above the input
	Answer     string // input value to keep after a rejected submission
}

var templateFuncs = template.FuncMap{
	"isLiteral": game.IsLiteral,
}

// answerErrorText is the user-facing message for a rejected submission.
func answerErrorText(err error) string {
	if errors.Is(err, game.ErrEmptyAnswer) {
		return "Please enter an answer."
	}
	return "That pattern is not valid."
}

func (s *Server) handlePage(w http.ResponseWriter, r *http.Request) {
	s.renderPage(w, r, http.StatusOK, pageData{})
}

// renderPage loads the caller's state into data and executes the template.
func (s *Server) renderPage(w http.ResponseWriter, r *http.Request, status int, data pageData) {
	data.State = emptyView()
	if sid, err := s.sessionID(r); err == nil {
		snap, err := s.currentState(r.Context(), sid)
		switch {
		case err == nil:
			data.State = newStateView(snap)
		case !errors.Is(err, store.ErrNotFound):
			log.Error().Err(err).Str("gameId", sid).Msg("load game")
			http.Error(w, "server error", http.StatusInternalServerError)
			return
		}
	}
	data.InProgress = data.State.Status == game.StatusInProgress

	var buf bytes.Buffer
	if err := s.tmpl.ExecuteTemplate(&buf, "index.html", data); err != nil {
		log.Error().Err(err).Msg("render page")
		http.Error(w, "template error", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	_, _ = buf.WriteTo(w)
}

func (s *Server) handlePlayNew(w http.ResponseWriter, r *http.Request) {
	pick, mode, err := s.picker(startRequest{Mode: r.FormValue("mode")})
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	sid, _ := s.sessionID(r)
	snap, err := s.startGame(r.Context(), sid, pick, mode)
	if err != nil {
		log.Error().Err(err).Msg("start game")
		http.Error(w, "server error", http.StatusInternalServerError)
		return
	}
	tok, exp, err := s.signSession(snap.ID)
	if err != nil {
		log.Error().Err(err).Msg("sign session")
		http.Error(w, "server error", http.StatusInternalServerError)
		return
	}
	s.setSessionCookie(w, tok, exp)
	http.Redirect(w, r, "/", http.StatusSeeOther)
}

func (s *Server) handlePlayAnswer(w http.ResponseWriter, r *http.Request) {
	raw := r.FormValue("answer")
	text, err := game.ValidateAnswer(raw)
	if err != nil {
		reason := "invalid_pattern"
		if errors.Is(err, game.ErrEmptyAnswer) {
			reason = "empty"
		}
		metrics.RejectedAnswers.WithLabelValues(reason).Inc()
		s.renderPage(w, r, http.StatusUnprocessableEntity, pageData{Error: answerErrorText(err), Answer: raw})
		return
	}
	sid, err := s.sessionID(r)
	if err != nil {
		http.Redirect(w, r, "/", http.StatusSeeOther)
		return
	}
	if _, err := s.submitAnswer(r.Context(), sid, text); err != nil &&
		!errors.Is(err, errNotInProgress) && !errors.Is(err, store.ErrNotFound) {
		log.Error().Err(err).Str("gameId", sid).Msg("submit answer")
		http.Error(w, "server error", http.StatusInternalServerError)
		return
	}
	http.Redirect(w, r, "/", http.StatusSeeOther)
}

func (s *Server) handlePlayGiveUp(w http.ResponseWriter, r *http.Request) {
	sid, err := s.sessionID(r)
	if err != nil {
		http.Redirect(w, r, "/", http.StatusSeeOther)
		return
	}
	if _, err := s.giveUp(r.Context(), sid); err != nil &&
		!errors.Is(err, errNotInProgress) && !errors.Is(err, store.ErrNotFound) {
		log.Error().Err(err).Str("gameId", sid).Msg("give up")
		http.Error(w, "server error", http.StatusInternalServerError)
		return
	}
	http.Redirect(w, r, "/", http.StatusSeeOther)
}
