// internal/words/words.go
//
// Provides the fixed list of candidate target words.
//
// Responsibilities:
//   - Load the list from a file (WORDS_FILE) or fall back to the embedded default.
//   - Keep only valid entries: exactly 5 lowercase letters a–z, no duplicates.
//   - Pick targets uniformly at random, or deterministically per day.
//
// Word list format:
//   One word per line; blank lines and lines starting with '#' are skipped;
//   entries are trimmed and lowercased before validation.

package words

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"sync"

	"github.com/valyala/fastrand"

	"github.com/robalobadob/reddle/assets"
	"github.com/robalobadob/reddle/internal/daily"
)

// ErrEmpty is returned when a source yields no valid words.
var ErrEmpty = errors.New("words: list is empty")

// List is an immutable set of candidate target words.
type List struct {
	words []string
	set   map[string]struct{}
}

var (
	defaultOnce sync.Once
	defaultList *List
)

// Default returns the embedded word list, loaded once.
// It panics if the embedded file is unusable, which is a build defect.
func Default() *List {
	defaultOnce.Do(func() {
		l, err := loadEmbedded()
		if err != nil {
			panic(fmt.Sprintf("words: embedded list: %v", err))
		}
		defaultList = l
	})
	return defaultList
}

// Load reads the list from path, or returns the embedded default if path is empty.
func Load(path string) (*List, error) {
	if path == "" {
		return Default(), nil
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open word list: %w", err)
	}
	defer f.Close()
	return Parse(f)
}

func loadEmbedded() (*List, error) {
	f, err := assets.WordList()
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return Parse(f)
}

// Parse reads one word per line from r and keeps the valid entries.
func Parse(r io.Reader) (*List, error) {
	l := &List{set: make(map[string]struct{})}
	sc := bufio.NewScanner(r)
	for sc.Scan() {
		w := strings.ToLower(strings.TrimSpace(sc.Text()))
		if w == "" || strings.HasPrefix(w, "#") {
			continue
		}
		if len(w) != 5 || !isAlpha(w) {
			continue
		}
		if _, dup := l.set[w]; dup {
			continue
		}
		l.set[w] = struct{}{}
		l.words = append(l.words, w)
	}
	if err := sc.Err(); err != nil {
		return nil, err
	}
	if len(l.words) == 0 {
		return nil, ErrEmpty
	}
	return l, nil
}

// isAlpha reports whether s is all lowercase ASCII letters.
func isAlpha(s string) bool {
	for _, r := range s {
		if r < 'a' || r > 'z' {
			return false
		}
	}
	return true
}

// Random returns a uniformly chosen word. Not cryptographically random.
func (l *List) Random() string {
	return l.words[fastrand.Uint32n(uint32(len(l.words)))]
}

// Daily returns a picker that yields the same word for everyone on a given
// UTC date, derived from salt.
func (l *List) Daily(salt string) func() string {
	sched := daily.NewSchedule(salt)
	return func() string {
		return l.words[sched.Today(len(l.words))]
	}
}

// Contains reports whether w is in the list.
func (l *List) Contains(w string) bool {
	_, ok := l.set[strings.ToLower(w)]
	return ok
}

// Len returns the number of words.
func (l *List) Len() int { return len(l.words) }
