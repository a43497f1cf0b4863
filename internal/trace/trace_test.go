package trace

import (
	"bytes"
	"context"
	"encoding/json"
	"strings"
	"testing"
	"time"
)

func names(events []Event) string {
	parts := make([]string, len(events))
	for i, ev := range events {
		parts[i] = ev.Kind.String() + ":" + ev.Name
	}
	return strings.Join(parts, ",")
}

func TestLevelFiltersScopes(t *testing.T) {
	ring := NewRingTracer(16, LevelPhase)
	ctx := WithTracer(context.Background(), ring)

	ctx, stage := StartSpan(ctx, ScopeStage, "compile")
	_, fn := StartSpan(ctx, ScopeFunc, "fn:main")
	if fn != nil {
		t.Fatal("func span must be inert at phase level")
	}
	fn.With("instructions", "3").End("")
	Mark(ctx, ScopeFunc, "root", "/src")
	stage.End("")

	if got := names(ring.Snapshot()); got != "begin:compile,end:compile" {
		t.Fatalf("events = %s", got)
	}
}

func TestRingKeepsNewestInOrder(t *testing.T) {
	ring := NewRingTracer(3, LevelDebug)
	ctx := WithTracer(context.Background(), ring)
	for _, name := range []string{"a", "b", "c", "d"} {
		Mark(ctx, ScopeStep, name, "")
	}
	if got := names(ring.Snapshot()); got != "mark:b,mark:c,mark:d" {
		t.Fatalf("snapshot = %s", got)
	}
}

func TestSpansNest(t *testing.T) {
	ring := NewRingTracer(16, LevelDebug)
	ctx := WithTracer(context.Background(), ring)

	ctx, outer := StartSpan(ctx, ScopeStage, "compile")
	inner := func() *Span {
		ctx, sp := StartSpan(ctx, ScopeFunc, "fn:main")
		Mark(ctx, ScopeStep, "call", "add")
		return sp
	}()
	inner.With("instructions", "12").End("")
	inner.End("twice")
	outer.End("")

	events := ring.Snapshot()
	if got := names(events); got != "begin:compile,begin:fn:main,mark:call,end:fn:main,end:compile" {
		t.Fatalf("events = %s", got)
	}
	if events[1].ParentID != outer.ID() || events[1].Depth != 1 {
		t.Fatalf("inner begin = %+v", events[1])
	}
	if events[2].ParentID != inner.ID() || events[2].Depth != 2 {
		t.Fatalf("mark = %+v", events[2])
	}
	if v, ok := events[3].Attr("instructions"); !ok || v != "12" {
		t.Fatalf("end attrs = %+v", events[3].Attrs)
	}
	for i := 1; i < len(events); i++ {
		if events[i].Seq <= events[i-1].Seq {
			t.Fatalf("sequence not increasing at %d", i)
		}
	}
}

func TestTextFormat(t *testing.T) {
	origin := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	ev := &Event{
		Time:   origin.Add(1500 * time.Microsecond),
		Kind:   KindEnd,
		Depth:  2,
		Name:   "emit",
		Detail: "ok",
		Attrs:  []Attr{{"b", "2"}, {"a", "1"}},
	}
	got := string(FormatEvent(ev, FormatText, origin))
	want := "[    1.500ms]     ← emit (ok) {b=2, a=1}\n"
	if got != want {
		t.Fatalf("text = %q, want %q", got, want)
	}
}

func TestNDJSONStream(t *testing.T) {
	var buf bytes.Buffer
	ctx := WithTracer(context.Background(), NewStreamTracer(&buf, LevelDebug, FormatNDJSON))
	Mark(ctx, ScopeDriver, "boot", "", Attr{"entry", "main"})

	var got jsonEvent
	if err := json.Unmarshal(buf.Bytes(), &got); err != nil {
		t.Fatalf("decode %q: %v", buf.String(), err)
	}
	if got.Name != "boot" || got.Kind != "mark" || got.Scope != "driver" || got.Attrs["entry"] != "main" {
		t.Fatalf("event = %+v", got)
	}
}

func TestNewAndDump(t *testing.T) {
	var buf bytes.Buffer
	tr, err := New(Config{Level: LevelPhase, Mode: ModeBoth, Output: &buf, RingSize: 8})
	if err != nil {
		t.Fatal(err)
	}
	_, sp := StartSpan(WithTracer(context.Background(), tr), ScopeStage, "prove")
	sp.End("failed")
	if !strings.Contains(buf.String(), "← prove (failed)") {
		t.Fatalf("stream output = %q", buf.String())
	}

	var dump bytes.Buffer
	ok, err := Dump(tr, &dump, FormatText)
	if !ok || err != nil {
		t.Fatalf("dump = %v, %v", ok, err)
	}
	if strings.Count(dump.String(), "prove") != 2 {
		t.Fatalf("dump = %q", dump.String())
	}

	off, err := New(Config{Level: LevelOff})
	if err != nil || Enabled(off) {
		t.Fatalf("off tracer = %v, %v", off, err)
	}
	if ok, _ := Dump(off, &dump, FormatText); ok {
		t.Fatal("nop tracer has no ring")
	}
}

func TestParseNames(t *testing.T) {
	if l, err := ParseLevel(" Detail "); err != nil || l != LevelDetail {
		t.Fatalf("ParseLevel = %v, %v", l, err)
	}
	if _, err := ParseLevel("verbose"); err == nil {
		t.Fatal("expected an error")
	}
	if m, err := ParseMode("RING"); err != nil || m != ModeRing {
		t.Fatalf("ParseMode = %v, %v", m, err)
	}
	if f, _ := ParseFormat("json"); f != FormatNDJSON {
		t.Fatalf("ParseFormat = %v", f)
	}
	if formatForPath("run.jsonl") != FormatNDJSON || formatForPath("-") != FormatText {
		t.Fatal("format by extension")
	}
}

func TestHeartbeat(t *testing.T) {
	ring := NewRingTracer(64, LevelPhase)
	stop := StartHeartbeat(WithTracer(context.Background(), ring), time.Millisecond)
	deadline := time.Now().Add(2 * time.Second)
	for len(ring.Snapshot()) == 0 && time.Now().Before(deadline) {
		time.Sleep(time.Millisecond)
	}
	stop()
	stop()
	events := ring.Snapshot()
	if len(events) == 0 || events[0].Kind != KindHeartbeat || events[0].Detail != "#1" {
		t.Fatalf("heartbeats = %+v", events)
	}

	StartHeartbeat(context.Background(), time.Millisecond)()
}

func TestNopContext(t *testing.T) {
	if Enabled(FromContext(context.Background())) {
		t.Fatal("expected disabled tracer")
	}
	ctx, sp := StartSpan(context.Background(), ScopeStage, "x")
	if sp != nil || sp.End("") != 0 || sp.ID() != 0 {
		t.Fatal("nop span must be inert")
	}
	if ctx != context.Background() {
		t.Fatal("context must be unchanged")
	}
}

func TestErrorLevelKeepsPhaseRing(t *testing.T) {
	tr, err := New(Config{Level: LevelError, Mode: ModeStream})
	if err != nil {
		t.Fatal(err)
	}
	ring, ok := tr.(*RingTracer)
	if !ok {
		t.Fatalf("tracer = %T, want *RingTracer", tr)
	}
	_, sp := StartSpan(WithTracer(context.Background(), tr), ScopeStage, "compile")
	sp.End("error")
	if got := names(ring.Snapshot()); got != "begin:compile,end:compile" {
		t.Fatalf("events = %s", got)
	}
}
