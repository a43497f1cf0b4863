package observ

import (
	"strings"
	"testing"
	"time"
)

func TestTimerReport(t *testing.T) {
	clock := time.Unix(0, 0)
	tm := NewTimer()
	tm.now = func() time.Time { return clock }

	a := tm.Begin("compile")
	clock = clock.Add(2 * time.Millisecond)
	if d := tm.End(a, "3 functions"); d != 2*time.Millisecond {
		t.Fatalf("compile took %v", d)
	}
	b := tm.Begin("prove")
	clock = clock.Add(5 * time.Millisecond)
	tm.End(b, "")
	tm.End(99, "ignored")

	r := tm.Report()
	if r.TotalMS != 7 || len(r.Phases) != 2 {
		t.Fatalf("report = %+v", r)
	}
	s := tm.Summary()
	for _, want := range []string{"compile", "// 3 functions", "prove", "total"} {
		if !strings.Contains(s, want) {
			t.Fatalf("summary %q lacks %q", s, want)
		}
	}
	if len(tm.Phases()) != 2 {
		t.Fatalf("phases = %v", tm.Phases())
	}
}

func TestEmptyTimer(t *testing.T) {
	if r := NewTimer().Report(); r.TotalMS != 0 || r.Phases != nil {
		t.Fatalf("report = %+v", r)
	}
}
