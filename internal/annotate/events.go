package annotate

import (
	"fmt"
	"sync"

	"github.com/goccy/go-json"
)

type EventType int

const (
	SourceFileUpdate EventType = iota
	LineNumberUpdate
	BreakpointEvent
	BreakpointsBegin
	BreakpointsEnd
	AbsoluteSourceAccepted
	AbsoluteSourceDenied
	SourcesStart
	SourceFile
	SourcesEnd
)

var eventNames = [...]string{
	SourceFileUpdate:       "source-file-update",
	LineNumberUpdate:       "line-number-update",
	BreakpointEvent:        "breakpoint",
	BreakpointsBegin:       "breakpoints-begin",
	BreakpointsEnd:         "breakpoints-end",
	AbsoluteSourceAccepted: "absolute-source-accepted",
	AbsoluteSourceDenied:   "absolute-source-denied",
	SourcesStart:           "sources-start",
	SourceFile:             "source-file",
	SourcesEnd:             "sources-end",
}

func (t EventType) String() string {
	if t < 0 || int(t) >= len(eventNames) { return fmt.Sprintf("event(%d)", int(t)) }
	return eventNames[t]
}

func (t EventType) MarshalText() ([]byte, error) {
	if t < 0 || int(t) >= len(eventNames) { return nil, fmt.Errorf("unknown event type %d", int(t)) }
	return []byte(eventNames[t]), nil
}

func (t *EventType) UnmarshalText(text []byte) error {
	for i, name := range eventNames {
		if name == string(text) {
			*t = EventType(i)
			return nil
		}
	}
	return fmt.Errorf("unknown event type %q", text)
}

// Event is one structured fact recovered from the debugger output.
// Data is the primary datum: a file, a line number or a breakpoint label.
// Line and File are only set on breakpoint events.
type Event struct {
	Type    EventType
	Data    string
	Line    string
	File    string
	Enabled bool
}

type eventJSON struct {
	Type    EventType `json:"type"`
	Data    string    `json:"data,omitempty"`
	Line    string    `json:"line,omitempty"`
	File    string    `json:"file,omitempty"`
	Enabled *bool     `json:"enabled,omitempty"`
}

func (e Event) MarshalJSON() ([]byte, error) {
	out := eventJSON{Type: e.Type, Data: e.Data, Line: e.Line, File: e.File}
	if e.Type == BreakpointEvent {
		enabled := e.Enabled
		out.Enabled = &enabled
	}
	return json.Marshal(out)
}

func (e *Event) UnmarshalJSON(data []byte) error {
	var in eventJSON
	if err := json.Unmarshal(data, &in); err != nil { return err }
	*e = Event{Type: in.Type, Data: in.Data, Line: in.Line, File: in.File}
	if in.Enabled != nil { e.Enabled = *in.Enabled }
	return nil
}

// EventQueue receives events in emission order.
type EventQueue interface {
	Append(e Event)
}

// EventList is an EventQueue safe for one producer and any number of readers.
type EventList struct {
	mu     sync.Mutex
	events []Event
}

func (l *EventList) Append(e Event) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.events = append(l.events, e)
}

func (l *EventList) Len() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.events)
}

// Events returns a copy of the queued events.
func (l *EventList) Events() []Event {
	l.mu.Lock()
	defer l.mu.Unlock()
	return append([]Event{}, l.events...)
}

// Drain returns the queued events and empties the queue.
func (l *EventList) Drain() []Event {
	l.mu.Lock()
	defer l.mu.Unlock()
	events := l.events
	l.events = nil
	return events
}
