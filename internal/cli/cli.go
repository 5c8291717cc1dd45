// Package cli is the terminal front end: one in-process game driven by
// lines read from the user.
//
// Commands are :new, :giveup, :help and :quit; any other line is an answer.
// Output is produced by a game observer, so every message appended to the
// log is printed exactly once.
package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/rs/zerolog/log"

	"github.com/robalobadob/reddle/internal/game"
)

const prompt = "> "

// printer writes newly appended log messages.
type printer struct {
	out     io.Writer
	printed int
}

func (p *printer) render(s game.Snapshot) {
	if len(s.Messages) < p.printed {
		// New game: the log was cleared.
		p.printed = 0
	}
	for i := p.printed; i < len(s.Messages); i++ {
		fmt.Fprintf(p.out, "#%d: %s\n", i, formatMessage(s.Messages[i]))
	}
	p.printed = len(s.Messages)
}

func formatMessage(m game.Message) string {
	switch m.Kind {
	case game.KindStart:
		return TextStarted
	case game.KindCorrect:
		return TextCorrect
	case game.KindGiveUp:
		return fmt.Sprintf(TextGaveUp, m.Target)
	case game.KindAnswer:
		result := TextMissed
		if m.Matched {
			result = TextMatched
		}
		return fmt.Sprintf("%s => %s", m.Answer, result)
	}
	return string(m.Kind)
}

// Run plays g until in is exhausted, :quit is entered or ctx is cancelled.
func Run(ctx context.Context, in io.Reader, out io.Writer, g *game.Game) error {
	p := &printer{out: out, printed: len(g.State().Messages)}
	cancel := g.Subscribe(p.render)
	defer cancel()

	fmt.Fprint(out, TextGreeting)

	// Stops the reader once Run returns, including after :quit.
	readCtx, stop := context.WithCancel(ctx)
	defer stop()
	lines, readErr := readLines(readCtx, in)

	for {
		fmt.Fprint(out, prompt)
		select {
		case <-ctx.Done():
			fmt.Fprintln(out)
			return ctx.Err()
		case line, ok := <-lines:
			if !ok {
				fmt.Fprintln(out)
				select {
				case err := <-readErr:
					return err
				default:
					return ctx.Err()
				}
			}
			if quit := handleLine(out, g, line); quit {
				fmt.Fprintln(out, TextBye)
				return nil
			}
		}
	}
}

// readLines streams lines from in until it is exhausted or ctx is done.
// lines is closed when the reader stops; a scan error, if any, is sent on
// errc before that.
func readLines(ctx context.Context, in io.Reader) (lines <-chan string, errc <-chan error) {
	out := make(chan string)
	errs := make(chan error, 1)
	go func() {
		defer close(out)
		sc := bufio.NewScanner(in)
		for sc.Scan() {
			select {
			case out <- sc.Text():
			case <-ctx.Done():
				return
			}
		}
		errs <- sc.Err()
	}()
	return out, errs
}

// handleLine executes one input line and reports whether to quit.
func handleLine(out io.Writer, g *game.Game, line string) bool {
	switch strings.TrimSpace(line) {
	case ":quit", ":q":
		return true
	case ":help":
		fmt.Fprint(out, TextHelp)
		return false
	case ":new":
		g.NewGame()
		log.Debug().Str("gameId", g.ID()).Msg("new game")
		return false
	case ":giveup":
		if g.Status() != game.StatusInProgress {
			fmt.Fprintln(out, TextNotInProgress)
			return false
		}
		g.GiveUp()
		return false
	}

	text, err := game.ValidateAnswer(line)
	switch {
	case errors.Is(err, game.ErrEmptyAnswer):
		fmt.Fprintln(out, TextEmptyAnswer)
		return false
	case err != nil:
		fmt.Fprintln(out, TextBadPattern)
		return false
	}
	if g.Status() != game.StatusInProgress {
		fmt.Fprintln(out, TextNotInProgress)
		return false
	}
	if err := g.Answer(text); err != nil {
		fmt.Fprintln(out, TextBadPattern)
	}
	return false
}
