package metrics

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
)

func TestObserveAnswer(t *testing.T) {
	lit := Answers.WithLabelValues("literal", "true")
	pat := Answers.WithLabelValues("pattern", "false")
	litBefore, patBefore := testutil.ToFloat64(lit), testutil.ToFloat64(pat)

	ObserveAnswer(true, true)
	ObserveAnswer(false, false)
	ObserveAnswer(false, false)

	if got := testutil.ToFloat64(lit) - litBefore; got != 1 {
		t.Errorf("literal/true delta = %v; want 1", got)
	}
	if got := testutil.ToFloat64(pat) - patBefore; got != 2 {
		t.Errorf("pattern/false delta = %v; want 2", got)
	}
}
