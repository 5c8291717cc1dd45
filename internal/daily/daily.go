// Package daily maps calendar days to word positions, so every session
// playing on the same UTC day gets the same target.
package daily

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/binary"
	"io"
	"time"
)

const dateLayout = "2006-01-02"

// DateKey returns the UTC day of t as YYYY-MM-DD.
func DateKey(t time.Time) string {
	return t.UTC().Format(dateLayout)
}

// Schedule derives one position per day from a secret salt.
// Without the salt the sequence of daily words cannot be predicted.
type Schedule struct {
	salt []byte
	now  func() time.Time
}

// NewSchedule returns a Schedule keyed by salt that reads the wall clock.
func NewSchedule(salt string) *Schedule {
	return &Schedule{salt: []byte(salt), now: time.Now}
}

// At returns the position for the day containing t, in [0, n).
// It returns 0 when n is not positive.
func (s *Schedule) At(t time.Time, n int) int {
	if n <= 0 {
		return 0
	}
	mac := hmac.New(sha256.New, s.salt)
	_, _ = io.WriteString(mac, DateKey(t))
	sum := mac.Sum(nil)
	return int(binary.BigEndian.Uint64(sum) % uint64(n))
}

// Today returns the position for the current day.
func (s *Schedule) Today(n int) int {
	return s.At(s.now(), n)
}
