// internal/httpserver/routes_daily.go
//
// HTTP routes for the "word of the day" mode.
//   - GET  /daily      → today's date key (UTC) and the size of the word pool
//   - POST /daily/new  → start the caller's game on today's word
//
// Every session playing on the same UTC day gets the same target; the index
// is HMAC(DAILY_SALT, date) over the loaded word list.

package httpserver

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"

	"github.com/robalobadob/reddle/internal/daily"
)

// dailyInfo is returned by GET /daily.
type dailyInfo struct {
	Date  string `json:"date"`
	Words int    `json:"words"`
}

// mountDaily registers the /daily routes.
func (s *Server) mountDaily(r chi.Router) {
	r.Route("/daily", func(r chi.Router) {
		r.Use(jsonContentType)
		r.Get("/", s.handleDailyInfo)
		r.Post("/new", s.handleDailyNew)
	})
}

func (s *Server) handleDailyInfo(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, dailyInfo{Date: daily.DateKey(time.Now()), Words: s.words.Len()})
}

// handleDailyNew is POST /game/new with mode "daily".
func (s *Server) handleDailyNew(w http.ResponseWriter, r *http.Request) {
	pick, mode, err := s.picker(startRequest{Mode: "daily"})
	if err != nil {
		writeError(w, http.StatusBadRequest, "bad_request")
		return
	}
	sid, _ := s.sessionID(r)
	snap, err := s.startGame(r.Context(), sid, pick, mode)
	if err != nil {
		log.Error().Err(err).Msg("start daily game")
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
