// internal/game/types.go
//
// Core type definitions for the REddle game engine.
// Defines:
//   - Status: lifecycle of one game (NotStarted/InProgress/Completed).
//   - Kind + Message: append-only log entries shown as the scrollback.
//   - Snapshot: a copy of a game's state, used for reads, observers and storage.
//   - Picker: source of target words.

package game

// Status represents where a game is in its lifecycle.
// Only InProgress accepts answers.
type Status string

const (
	StatusNotStarted Status = "NotStarted"
	StatusInProgress Status = "InProgress"
	StatusCompleted  Status = "Completed"
)

// Kind tags a Message.
type Kind string

const (
	KindStart   Kind = "start"
	KindAnswer  Kind = "answer"
	KindCorrect Kind = "correct"
	KindGiveUp  Kind = "giveup"
)

// Message is one entry of the game log.
// Answer/Matched are set for KindAnswer, Target for KindGiveUp.
type Message struct {
	ID      string `json:"id"`                // unique per message (uuid)
	Kind    Kind   `json:"type"`              // start | answer | correct | giveup
	Answer  string `json:"answer,omitempty"`  // text as submitted, not normalized
	Matched bool   `json:"matched"`           // result of the literal/pattern test; false on non-answer kinds
	Target  string `json:"target,omitempty"`  // revealed word on give-up
}

// Snapshot is a point-in-time copy of a Game.
// Messages is never shared with the Game it came from.
type Snapshot struct {
	ID       string    `json:"id"`
	Status   Status    `json:"status"`
	Target   string    `json:"target"`
	Messages []Message `json:"messages"`
}

// Picker returns the target word for a new game.
type Picker func() string
