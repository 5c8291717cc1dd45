package daily

import (
	"testing"
	"time"
)

func TestDateKeyUsesUTC(t *testing.T) {
	loc := time.FixedZone("UTC+9", 9*60*60)
	ts := time.Date(2026, 3, 2, 3, 0, 0, 0, loc) // 2026-03-01 18:00 UTC
	if got := DateKey(ts); got != "2026-03-01" {
		t.Errorf("DateKey = %s; want 2026-03-01", got)
	}
}

func TestScheduleStableWithinDay(t *testing.T) {
	s := NewSchedule("salt")
	day := time.Date(2026, 10, 18, 0, 30, 0, 0, time.UTC)

	a := s.At(day, 129)
	b := s.At(day.Add(23*time.Hour), 129)
	if a != b {
		t.Fatalf("same day gave %d and %d", a, b)
	}
	if a < 0 || a >= 129 {
		t.Fatalf("index %d out of range", a)
	}
}

func TestScheduleVariesAcrossDays(t *testing.T) {
	s := NewSchedule("salt")
	start := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	seen := map[int]bool{}
	for i := 0; i < 30; i++ {
		seen[s.At(start.AddDate(0, 0, i), 1000)] = true
	}
	if len(seen) < 2 {
		t.Error("expected different indexes across days")
	}
}

func TestScheduleDependsOnSalt(t *testing.T) {
	start := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	a, b := NewSchedule("one"), NewSchedule("two")
	differ := false
	for i := 0; i < 30 && !differ; i++ {
		day := start.AddDate(0, 0, i)
		differ = a.At(day, 1000) != b.At(day, 1000)
	}
	if !differ {
		t.Error("different salts produced the same schedule")
	}
}

func TestScheduleToday(t *testing.T) {
	s := NewSchedule("salt")
	fixed := time.Date(2026, 5, 5, 12, 0, 0, 0, time.UTC)
	s.now = func() time.Time { return fixed }
	if got, want := s.Today(50), s.At(fixed, 50); got != want {
		t.Errorf("Today = %d; want %d", got, want)
	}
}

func TestScheduleEmpty(t *testing.T) {
	if got := NewSchedule("salt").At(time.Now(), 0); got != 0 {
		t.Errorf("At with n=0 = %d; want 0", got)
	}
}
