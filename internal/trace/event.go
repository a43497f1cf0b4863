package trace

import (
	"fmt"
	"strings"
	"time"
)

// Kind is the type of trace event.
type Kind uint8

const (
	KindBegin Kind = iota + 1
	KindEnd
	KindMark
	KindHeartbeat
)

func (k Kind) String() string {
	switch k {
	case KindBegin:
		return "begin"
	case KindEnd:
		return "end"
	case KindMark:
		return "mark"
	case KindHeartbeat:
		return "heartbeat"
	default:
		return "unknown"
	}
}

// Scope is the granularity of an event. Coarser scopes have lower values.
type Scope uint8

const (
	// ScopeDriver covers a whole acc command.
	ScopeDriver Scope = iota + 1
	// ScopeStage covers one pipeline stage: locate, compile, emit, assemble, prove.
	ScopeStage
	// ScopeFunc covers per-function and per-root work inside a stage.
	ScopeFunc
	// ScopeStep covers single engine steps and cache lookups.
	ScopeStep
)

func (s Scope) String() string {
	switch s {
	case ScopeDriver:
		return "driver"
	case ScopeStage:
		return "stage"
	case ScopeFunc:
		return "func"
	case ScopeStep:
		return "step"
	default:
		return "unknown"
	}
}

// Level controls how fine-grained the recorded events are.
type Level uint8

const (
	LevelOff    Level = iota
	LevelError        // nothing is streamed; the ring is dumped on failure
	LevelPhase        // driver and stage spans
	LevelDetail       // plus functions and include roots
	LevelDebug        // everything
)

var levelNames = [...]string{"off", "error", "phase", "detail", "debug"}

func (l Level) String() string {
	if int(l) < len(levelNames) {
		return levelNames[l]
	}
	return "unknown"
}

// ParseLevel accepts the names printed by Level.String, case-insensitively.
func ParseLevel(s string) (Level, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	for i, name := range levelNames {
		if s == name {
			return Level(i), nil
		}
	}
	return LevelOff, fmt.Errorf("invalid trace level: %q (expected: %s)", s, strings.Join(levelNames[:], "|"))
}

// Admits reports whether events of the given scope are recorded at this level.
func (l Level) Admits(scope Scope) bool {
	switch l {
	case LevelPhase:
		return scope <= ScopeStage
	case LevelDetail:
		return scope <= ScopeFunc
	case LevelDebug:
		return true
	}
	return false
}

// Attr is one key-value annotation. Attrs keep insertion order.
type Attr struct {
	Key   string
	Value string
}

// Event is a single trace record.
type Event struct {
	Time     time.Time
	Seq      uint64
	Kind     Kind
	Scope    Scope
	SpanID   uint64
	ParentID uint64 // 0 for a root span
	Depth    int    // nesting depth, 0 for a root span
	Name     string // e.g. "compile", "fn:main"
	Detail   string
	Attrs    []Attr
}

// Attr returns the value recorded for key.
func (e *Event) Attr(key string) (string, bool) {
	for _, a := range e.Attrs {
		if a.Key == key {
			return a.Value, true
		}
	}
	return "", false
}
