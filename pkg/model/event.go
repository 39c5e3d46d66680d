// Package model defines the event log and the session state derived from it.
package model

import (
	"fmt"
	"time"
)

// EventKind is the type of a tracked action.
type EventKind string

const (
	KindStart      EventKind = "start"
	KindStop       EventKind = "stop"
	KindBreakStart EventKind = "break_start"
	KindBreakStop  EventKind = "break_stop"
)

// ParseEventKind parses the wire representation of an event kind.
func ParseEventKind(s string) (EventKind, error) {
	switch EventKind(s) {
	case KindStart, KindStop, KindBreakStart, KindBreakStop:
		return EventKind(s), nil
	}
	return "", fmt.Errorf("unknown event kind %q", s)
}

func (k EventKind) String() string {
	return string(k)
}

// Event is one immutable timestamped action.
type Event struct {
	Kind      EventKind `json:"kind"`
	Timestamp time.Time `json:"timestamp"`
}

// NewEvent constructs an event with the timestamp normalized to UTC.
func NewEvent(kind EventKind, t time.Time) Event {
	return Event{Kind: kind, Timestamp: t.UTC()}
}

// SessionState is the work-period state derived from the log tail.
// It is never persisted.
type SessionState int

const (
	Idle SessionState = iota
	Working
	OnBreak
)

func (s SessionState) String() string {
	switch s {
	case Working:
		return "working"
	case OnBreak:
		return "on break"
	default:
		return "idle"
	}
}

// Log is an ordered sequence of events. Insertion order is action order,
// not timestamp order: offsets can backdate an event before an earlier
// one's timestamp.
type Log struct {
	Events []Event
}

// Append adds an event to the tail of the log.
func (l *Log) Append(e Event) {
	l.Events = append(l.Events, e)
}

// RemoveLast removes and returns the most recent event. The second return
// is false on an empty log.
func (l *Log) RemoveLast() (Event, bool) {
	if len(l.Events) == 0 {
		return Event{}, false
	}
	last := l.Events[len(l.Events)-1]
	l.Events = l.Events[:len(l.Events)-1]
	return last, true
}

// Len returns the number of events in the log.
func (l *Log) Len() int {
	return len(l.Events)
}

// Last returns the most recent event without removing it.
func (l *Log) Last() (Event, bool) {
	if len(l.Events) == 0 {
		return Event{}, false
	}
	return l.Events[len(l.Events)-1], true
}

// State derives the session state by replaying the log from empty.
// The log is the single source of truth; there is no stored flag.
func (l *Log) State() SessionState {
	state := Idle
	for _, e := range l.Events {
		switch e.Kind {
		case KindStart:
			state = Working
		case KindStop:
			state = Idle
		case KindBreakStart:
			state = OnBreak
		case KindBreakStop:
			state = Working
		}
	}
	return state
}

// OpenStart returns the unmatched Start event, if the session is open.
func (l *Log) OpenStart() (Event, bool) {
	if l.State() == Idle {
		return Event{}, false
	}
	for i := len(l.Events) - 1; i >= 0; i-- {
		if l.Events[i].Kind == KindStart {
			return l.Events[i], true
		}
	}
	return Event{}, false
}

// OpenBreak returns the unmatched BreakStart event, if any.
func (l *Log) OpenBreak() (Event, bool) {
	if l.State() != OnBreak {
		return Event{}, false
	}
	for i := len(l.Events) - 1; i >= 0; i-- {
		if l.Events[i].Kind == KindBreakStart {
			return l.Events[i], true
		}
	}
	return Event{}, false
}

// Validate replays the log and reports the first event that violates the
// alternation invariants (no double Start, no Stop without Start, breaks
// only inside an open work period, no nested breaks).
func (l *Log) Validate() error {
	state := Idle
	for i, e := range l.Events {
		legal := false
		switch e.Kind {
		case KindStart:
			legal = state == Idle
			state = Working
		case KindStop:
			legal = state == Working
			state = Idle
		case KindBreakStart:
			legal = state == Working
			state = OnBreak
		case KindBreakStop:
			legal = state == OnBreak
			state = Working
		}
		if !legal {
			return fmt.Errorf("event %d: %s not legal here", i, e.Kind)
		}
	}
	return nil
}

// Clone returns a deep copy of the log.
func (l *Log) Clone() *Log {
	events := make([]Event, len(l.Events))
	copy(events, l.Events)
	return &Log{Events: events}
}
