// internal/httpserver/play.go
//
// Session-level game operations shared by the JSON API and the HTML page.
// Each operation runs under the session lock: load → mutate → save, then
// pushes the new state to live subscribers.

package httpserver

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/rs/zerolog/log"

	"github.com/robalobadob/reddle/internal/game"
	"github.com/robalobadob/reddle/internal/metrics"
	"github.com/robalobadob/reddle/internal/store"
)

var errNotInProgress = errors.New("game not in progress")

// stateView is the client-facing game state.
// Target is only disclosed once the game is completed.
type stateView struct {
	Status   game.Status    `json:"status"`
	Target   string         `json:"target,omitempty"`
	Messages []game.Message `json:"messages"`
}

func newStateView(s game.Snapshot) stateView {
	v := stateView{Status: s.Status, Messages: s.Messages}
	if v.Status == "" {
		v.Status = game.StatusNotStarted
	}
	if v.Messages == nil {
		v.Messages = []game.Message{}
	}
	if s.Status == game.StatusCompleted {
		v.Target = s.Target
	}
	return v
}

// emptyView is what a caller without a game sees.
func emptyView() stateView { return newStateView(game.Snapshot{}) }

// startRequest selects how the next target is drawn.
type startRequest struct {
	Mode   string // "random" (default) | "daily"
	Answer string // fixed target, honoured only with ALLOW_FIXED_ANSWER
}

// picker resolves the word source for a start request.
func (s *Server) picker(req startRequest) (game.Picker, string, error) {
	if req.Answer != "" {
		if !s.cfg.AllowFixedAnswer {
			return nil, "", fmt.Errorf("fixed answers are disabled")
		}
		if !game.IsLiteral(req.Answer) {
			return nil, "", fmt.Errorf("fixed answer must be 5 letters a-z")
		}
		fixed := strings.ToLower(strings.TrimSpace(req.Answer))
		return func() string { return fixed }, "fixed", nil
	}
	switch req.Mode {
	case "", "random":
		return s.words.Random, "random", nil
	case "daily":
		return s.words.Daily(s.cfg.DailySalt), "daily", nil
	default:
		return nil, "", fmt.Errorf("unknown mode %q", req.Mode)
	}
}

// startGame starts a new game for sid, or for a fresh session when sid is
// empty or unknown. It returns the game snapshot; its ID is the session ID.
func (s *Server) startGame(ctx context.Context, sid string, pick game.Picker, mode string) (game.Snapshot, error) {
	if sid == "" {
		g := game.New(pick)
		sid = g.ID()
		return s.mutate(ctx, sid, func() (*game.Game, error) { return g, nil }, func(g *game.Game) error {
			g.NewGame()
			metrics.GamesStarted.WithLabelValues(mode).Inc()
			return nil
		})
	}
	return s.mutate(ctx, sid, func() (*game.Game, error) {
		snap, err := s.store.Get(ctx, sid)
		if errors.Is(err, store.ErrNotFound) {
			// Expired or evicted session: keep the caller's id.
			return game.Restore(game.Snapshot{ID: sid}, pick), nil
		}
		if err != nil {
			return nil, err
		}
		return game.Restore(snap, pick), nil
	}, func(g *game.Game) error {
		g.NewGame()
		metrics.GamesStarted.WithLabelValues(mode).Inc()
		return nil
	})
}

// submitAnswer applies an already validated answer to sid's game.
func (s *Server) submitAnswer(ctx context.Context, sid, text string) (game.Snapshot, error) {
	return s.mutate(ctx, sid, s.loader(ctx, sid), func(g *game.Game) error {
		if g.Status() != game.StatusInProgress {
			return errNotInProgress
		}
		if err := g.Answer(text); err != nil {
			return err
		}
		st := g.State()
		last := st.Messages[len(st.Messages)-1]
		if last.Kind == game.KindCorrect {
			metrics.ObserveAnswer(true, true)
			metrics.GamesCompleted.WithLabelValues("correct").Inc()
		} else {
			metrics.ObserveAnswer(game.IsLiteral(text), last.Matched)
		}
		return nil
	})
}

// giveUp completes sid's game, revealing the target.
func (s *Server) giveUp(ctx context.Context, sid string) (game.Snapshot, error) {
	return s.mutate(ctx, sid, s.loader(ctx, sid), func(g *game.Game) error {
		if g.Status() != game.StatusInProgress {
			return errNotInProgress
		}
		g.GiveUp()
		metrics.GamesCompleted.WithLabelValues("giveup").Inc()
		return nil
	})
}

// currentState reads sid's game without mutating it.
func (s *Server) currentState(ctx context.Context, sid string) (game.Snapshot, error) {
	return s.store.Get(ctx, sid)
}

// loader returns a func that loads sid's game from the store.
func (s *Server) loader(ctx context.Context, sid string) func() (*game.Game, error) {
	return func() (*game.Game, error) {
		snap, err := s.store.Get(ctx, sid)
		if err != nil {
			return nil, err
		}
		return game.Restore(snap, s.words.Random), nil
	}
}

// mutate runs op on the loaded game under the session lock and saves it.
// Subscribers are notified only after a successful save.
func (s *Server) mutate(ctx context.Context, sid string, load func() (*game.Game, error), op func(*game.Game) error) (game.Snapshot, error) {
	unlock := s.locks.lock(sid)
	defer unlock()

	g, err := load()
	if err != nil {
		return game.Snapshot{}, err
	}

	var changed *game.Snapshot
	cancel := g.Subscribe(func(st game.Snapshot) { changed = &st })
	defer cancel()

	if err := op(g); err != nil {
		return g.State(), err
	}
	if changed == nil {
		return g.State(), nil
	}
	if err := s.store.Save(ctx, *changed); err != nil {
		return game.Snapshot{}, fmt.Errorf("save game %s: %w", sid, err)
	}
	s.hub.publish(sid, newStateView(*changed))
	log.Debug().Str("gameId", sid).Str("status", string(changed.Status)).Int("messages", len(changed.Messages)).Msg("game updated")
	return *changed, nil
}
