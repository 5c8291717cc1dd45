// internal/game/engine.go
//
// Core game engine for a single REddle session.
// Responsibilities:
//   - Start (and restart) games with a target drawn from a Picker.
//   - Score answers: a 5-letter literal is compared for equality,
//     anything else is tested as a case-insensitive pattern.
//   - Track state transitions: NotStarted → InProgress → Completed → InProgress …
//   - Notify observers after every effective mutation.
//
// A Game is not safe for concurrent use; callers that share one across
// goroutines must serialize access (see httpserver's session locks).
package game

import (
	"regexp"
	"strings"

	"github.com/google/uuid"

	"github.com/robalobadob/reddle/internal/words"
)

// literalRe is the shape of a literal guess after trim+lowercase.
var literalRe = regexp.MustCompile(`^[a-z]{5}$`)

// Game holds the state of one game session.
type Game struct {
	id        string
	status    Status
	target    string
	messages  []Message
	pick      Picker
	observers []func(Snapshot) // registration order; nil once cancelled
}

// New constructs a game in the NotStarted state.
// If pick is nil, targets come from the embedded word list.
func New(pick Picker) *Game {
	return &Game{
		id:     uuid.NewString(),
		status: StatusNotStarted,
		pick:   defaultPicker(pick),
	}
}

// Restore rebuilds a game from a snapshot (e.g. one loaded from a store).
func Restore(s Snapshot, pick Picker) *Game {
	status := s.Status
	if status == "" {
		status = StatusNotStarted
	}
	return &Game{
		id:       s.ID,
		status:   status,
		target:   s.Target,
		messages: append([]Message(nil), s.Messages...),
		pick:     defaultPicker(pick),
	}
}

func defaultPicker(pick Picker) Picker {
	if pick != nil {
		return pick
	}
	return func() string { return words.Default().Random() }
}

// ID returns the game identifier.
func (g *Game) ID() string { return g.id }

// Status returns the current lifecycle state.
func (g *Game) Status() Status { return g.status }

// NewGame draws a new target, clears the log and appends a start message.
// Callable from any state.
func (g *Game) NewGame() {
	g.target = strings.ToLower(g.pick())
	g.status = StatusInProgress
	g.messages = nil
	g.push(Message{Kind: KindStart})
	g.notify()
}

// Answer scores one submission.
//
// Outside InProgress the call is ignored and returns nil.
// A normalized 5-letter a–z text is a literal guess: it is compared for
// equality and never interpreted as a pattern. Anything else is compiled
// case-insensitively and tested against the target; a pattern match never
// completes the game.
//
// Text that does not compile yields an error wrapping ErrInvalidPattern and
// leaves the game untouched. Presentation layers validate with
// ValidateAnswer before calling.
func (g *Game) Answer(text string) error {
	if g.status != StatusInProgress {
		return nil
	}
	normalized := strings.ToLower(strings.TrimSpace(text))
	if literalRe.MatchString(normalized) {
		correct := normalized == g.target
		g.push(Message{Kind: KindAnswer, Answer: text, Matched: correct})
		if correct {
			g.push(Message{Kind: KindCorrect})
			g.status = StatusCompleted
		}
		g.notify()
		return nil
	}

	re, err := compilePattern(text)
	if err != nil {
		return err
	}
	g.push(Message{Kind: KindAnswer, Answer: text, Matched: re.MatchString(g.target)})
	g.notify()
	return nil
}

// GiveUp reveals the target and completes the game.
// It only has an effect while InProgress, so a completed game carries
// exactly one terminal message.
func (g *Game) GiveUp() {
	if g.status != StatusInProgress {
		return
	}
	g.push(Message{Kind: KindGiveUp, Target: g.target})
	g.status = StatusCompleted
	g.notify()
}

// State returns a copy of the current state. It has no side effects.
func (g *Game) State() Snapshot {
	msgs := make([]Message, len(g.messages))
	copy(msgs, g.messages)
	return Snapshot{
		ID:       g.id,
		Status:   g.status,
		Target:   g.target,
		Messages: msgs,
	}
}

// Subscribe registers fn to be called with the new state after every
// mutation. Observers run in the order they subscribed.
// The returned func removes the observer.
func (g *Game) Subscribe(fn func(Snapshot)) (cancel func()) {
	id := len(g.observers)
	g.observers = append(g.observers, fn)
	return func() { g.observers[id] = nil }
}

// push appends a message with a fresh identifier.
func (g *Game) push(m Message) {
	m.ID = uuid.NewString()
	g.messages = append(g.messages, m)
}

func (g *Game) notify() {
	if len(g.observers) == 0 {
		return
	}
	s := g.State()
	for _, fn := range g.observers {
		if fn != nil {
			fn(s)
		}
	}
}
