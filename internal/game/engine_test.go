package game

import (
	"errors"
	"reflect"
	"testing"

	"github.com/robalobadob/reddle/internal/words"
)

func fixed(word string) Picker {
	return func() string { return word }
}

func started(t *testing.T, target string) *Game {
	t.Helper()
	g := New(fixed(target))
	g.NewGame()
	return g
}

func kinds(msgs []Message) []Kind {
	out := make([]Kind, len(msgs))
	for i, m := range msgs {
		out[i] = m.Kind
	}
	return out
}

func TestNewGameStartsFresh(t *testing.T) {
	g := New(nil)
	if g.Status() != StatusNotStarted {
		t.Fatalf("expected NotStarted, got %s", g.Status())
	}

	for i := 0; i < 3; i++ {
		g.NewGame()
		s := g.State()
		if s.Status != StatusInProgress {
			t.Errorf("expected InProgress, got %s", s.Status)
		}
		if len(s.Messages) != 1 || s.Messages[0].Kind != KindStart {
			t.Errorf("expected log [start], got %v", kinds(s.Messages))
		}
		if !words.Default().Contains(s.Target) {
			t.Errorf("target %q is not from the word list", s.Target)
		}
	}
}

func TestNewGameRestartsCompletedGame(t *testing.T) {
	g := started(t, "apple")
	g.GiveUp()
	g.NewGame()

	s := g.State()
	if s.Status != StatusInProgress {
		t.Errorf("expected InProgress, got %s", s.Status)
	}
	if got := kinds(s.Messages); !reflect.DeepEqual(got, []Kind{KindStart}) {
		t.Errorf("expected log cleared to [start], got %v", got)
	}
}

func TestAnswerScenarios(t *testing.T) {
	cases := []struct {
		name       string
		answer     string
		wantKinds  []Kind
		wantMatch  bool
		wantStatus Status
	}{
		{"literal correct", "apple", []Kind{KindStart, KindAnswer, KindCorrect}, true, StatusCompleted},
		{"literal correct with case and space", "  APPLE ", []Kind{KindStart, KindAnswer, KindCorrect}, true, StatusCompleted},
		{"literal wrong", "grape", []Kind{KindStart, KindAnswer}, false, StatusInProgress},
		{"pattern match", "^a.*e$", []Kind{KindStart, KindAnswer}, true, StatusInProgress},
		{"pattern is case-insensitive", "^APP", []Kind{KindStart, KindAnswer}, true, StatusInProgress},
		{"pattern miss", "z", []Kind{KindStart, KindAnswer}, false, StatusInProgress},
		{"pattern with dots", "a.c.e", []Kind{KindStart, KindAnswer}, false, StatusInProgress},
		{"five wildcard pattern still a pattern", ".....", []Kind{KindStart, KindAnswer}, true, StatusInProgress},
		{"exact pattern does not complete", "^apple$", []Kind{KindStart, KindAnswer}, true, StatusInProgress},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			g := started(t, "apple")
			if err := g.Answer(tc.answer); err != nil {
				t.Fatalf("Answer(%q): %v", tc.answer, err)
			}
			s := g.State()
			if got := kinds(s.Messages); !reflect.DeepEqual(got, tc.wantKinds) {
				t.Fatalf("expected kinds %v, got %v", tc.wantKinds, got)
			}
			ans := s.Messages[1]
			if ans.Answer != tc.answer {
				t.Errorf("expected submitted text %q, got %q", tc.answer, ans.Answer)
			}
			if ans.Matched != tc.wantMatch {
				t.Errorf("expected matched=%v, got %v", tc.wantMatch, ans.Matched)
			}
			if s.Status != tc.wantStatus {
				t.Errorf("expected status %s, got %s", tc.wantStatus, s.Status)
			}
		})
	}
}

func TestLiteralScoredByEquality(t *testing.T) {
	// As a pattern " Apple\t" could never match; as a literal it is "apple".
	g := started(t, "apple")
	if err := g.Answer(" Apple\t"); err != nil {
		t.Fatal(err)
	}
	s := g.State()
	if !s.Messages[1].Matched || s.Status != StatusCompleted {
		t.Errorf("expected literal win, got %+v", s)
	}
	if s.Messages[1].Answer != " Apple\t" {
		t.Errorf("answer should keep the submitted text, got %q", s.Messages[1].Answer)
	}
}

func TestAnswerIgnoredWhenCompleted(t *testing.T) {
	g := started(t, "apple")
	g.GiveUp()
	before := g.State()

	if err := g.Answer("apple"); err != nil {
		t.Fatalf("expected silent ignore, got %v", err)
	}
	if after := g.State(); !reflect.DeepEqual(before, after) {
		t.Errorf("state changed after ignored answer:\nbefore %+v\nafter  %+v", before, after)
	}
}

func TestAnswerIgnoredWhenNotStarted(t *testing.T) {
	g := New(fixed("apple"))
	if err := g.Answer("apple"); err != nil {
		t.Fatal(err)
	}
	s := g.State()
	if s.Status != StatusNotStarted || len(s.Messages) != 0 {
		t.Errorf("expected untouched NotStarted game, got %+v", s)
	}
}

func TestAnswerInvalidPatternLeavesState(t *testing.T) {
	g := started(t, "apple")
	before := g.State()

	err := g.Answer("a(")
	if !errors.Is(err, ErrInvalidPattern) {
		t.Fatalf("expected ErrInvalidPattern, got %v", err)
	}
	if after := g.State(); !reflect.DeepEqual(before, after) {
		t.Error("invalid pattern must not change state")
	}
}

func TestGiveUp(t *testing.T) {
	g := started(t, "apple")
	g.GiveUp()

	s := g.State()
	if s.Status != StatusCompleted {
		t.Errorf("expected Completed, got %s", s.Status)
	}
	last := s.Messages[len(s.Messages)-1]
	if last.Kind != KindGiveUp || last.Target != "apple" {
		t.Errorf("expected giveup revealing apple, got %+v", last)
	}
}

func TestGiveUpOnlyOnce(t *testing.T) {
	g := started(t, "apple")
	g.GiveUp()
	g.GiveUp()

	if got := kinds(g.State().Messages); !reflect.DeepEqual(got, []Kind{KindStart, KindGiveUp}) {
		t.Errorf("expected a single giveup, got %v", got)
	}

	fresh := New(fixed("apple"))
	fresh.GiveUp()
	if s := fresh.State(); s.Status != StatusNotStarted || len(s.Messages) != 0 {
		t.Errorf("give-up before start must be a no-op, got %+v", s)
	}
}

func TestGiveUpAfterCorrectIsNoop(t *testing.T) {
	g := started(t, "apple")
	_ = g.Answer("apple")
	g.GiveUp()

	if got := kinds(g.State().Messages); !reflect.DeepEqual(got, []Kind{KindStart, KindAnswer, KindCorrect}) {
		t.Errorf("expected correct to stay terminal, got %v", got)
	}
}

func TestStateIsIdempotentAndDetached(t *testing.T) {
	g := started(t, "apple")
	_ = g.Answer("^a")

	s1 := g.State()
	s2 := g.State()
	if !reflect.DeepEqual(s1, s2) {
		t.Fatal("two reads without mutation differ")
	}

	s1.Messages[0].Kind = KindCorrect
	if g.State().Messages[0].Kind != KindStart {
		t.Error("snapshot shares memory with game")
	}
}

func TestMessageIDsUnique(t *testing.T) {
	g := started(t, "apple")
	for _, a := range []string{"a", "b", "grape", "^a.*e$", "p{2}", "apple"} {
		_ = g.Answer(a)
	}
	seen := map[string]bool{}
	for _, m := range g.State().Messages {
		if m.ID == "" {
			t.Fatal("message without id")
		}
		if seen[m.ID] {
			t.Fatalf("duplicate id %s", m.ID)
		}
		seen[m.ID] = true
	}
}

func TestSubscribeNotifiesAfterMutation(t *testing.T) {
	g := New(fixed("apple"))
	var got []Snapshot
	cancel := g.Subscribe(func(s Snapshot) { got = append(got, s) })

	g.NewGame()
	_ = g.Answer("grape")
	_ = g.Answer("a(") // rejected, no notification
	g.GiveUp()
	_ = g.Answer("apple") // ignored, no notification
	g.GiveUp()            // no-op

	if len(got) != 3 {
		t.Fatalf("expected 3 notifications, got %d", len(got))
	}
	if got[2].Status != StatusCompleted {
		t.Errorf("last notification should carry Completed, got %s", got[2].Status)
	}

	cancel()
	g.NewGame()
	if len(got) != 3 {
		t.Error("observer called after cancel")
	}
}

func TestSubscribersNotifiedInOrder(t *testing.T) {
	g := New(fixed("apple"))
	var order []int
	for i := 0; i < 5; i++ {
		i := i
		g.Subscribe(func(Snapshot) { order = append(order, i) })
	}
	cancel := g.Subscribe(func(Snapshot) { order = append(order, 99) })
	g.Subscribe(func(Snapshot) { order = append(order, 5) })
	cancel()

	g.NewGame()
	_ = g.Answer("grape")

	want := []int{0, 1, 2, 3, 4, 5, 0, 1, 2, 3, 4, 5}
	if !reflect.DeepEqual(order, want) {
		t.Fatalf("expected notification order %v, got %v", want, order)
	}
}

func TestRestoreRoundTrip(t *testing.T) {
	g := started(t, "apple")
	_ = g.Answer("^a")
	s := g.State()

	r := Restore(s, fixed("grape"))
	if !reflect.DeepEqual(r.State(), s) {
		t.Fatalf("restored state differs:\nwant %+v\ngot  %+v", s, r.State())
	}

	r.NewGame()
	if r.State().Target != "grape" {
		t.Error("restored game should draw from the given picker")
	}
	if r.ID() != g.ID() {
		t.Error("restore must keep the game id")
	}
}
