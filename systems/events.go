package systems

import (
	"fmt"
	"time"
)

// EventKind colors an event log line.
type EventKind int

const (
	EventInfo EventKind = iota
	EventWarning
	EventError
)

type Event struct {
	At   time.Time
	Kind EventKind
	Text string
}

// Line renders the event with a 24h timestamp, e.g. "[14:03:07] Killed web-1".
func (e Event) Line() string {
	return fmt.Sprintf("[%s] %s", e.At.Format("15:04:05"), e.Text)
}

// EventLog keeps the most recent events, oldest first.
type EventLog struct {
	events []Event
	limit  int
	Now    func() time.Time
}

func NewEventLog(limit int) *EventLog {
	if limit <= 0 {
		limit = 1
	}
	return &EventLog{limit: limit, Now: time.Now}
}

func (l *EventLog) Add(kind EventKind, format string, args ...any) {
	l.events = append(l.events, Event{At: l.Now(), Kind: kind, Text: fmt.Sprintf(format, args...)})
	if over := len(l.events) - l.limit; over > 0 {
		l.events = append(l.events[:0], l.events[over:]...)
	}
}

func (l *EventLog) Events() []Event {
	return l.events
}
