package window

import "sync"

type EventKind int

const (
	EventOther EventKind = iota
	EventKey
	EventQuit
)

func (k EventKind) String() string {
	switch k {
	case EventQuit:
		return "quit"
	case EventKey:
		return "key"
	default:
		return "other"
	}
}

type Event struct {
	Kind EventKind
	// Origin says where the event came from, e.g. "close", "keyboard",
	// "api" or "signal".
	Origin string
}

func Quit(origin string) Event {
	return Event{Kind: EventQuit, Origin: origin}
}

// Queue collects events pushed from callbacks or other goroutines until
// the render thread drains them.
type Queue struct {
	mu     sync.Mutex
	events []Event
}

func (q *Queue) Push(ev Event) {
	q.mu.Lock()
	q.events = append(q.events, ev)
	q.mu.Unlock()
}

// Drain returns the queued events in arrival order and empties the queue.
func (q *Queue) Drain() []Event {
	q.mu.Lock()
	defer q.mu.Unlock()
	events := q.events
	q.events = nil
	return events
}

// ContainsQuit reports whether any event asks to terminate.
func ContainsQuit(events []Event) bool {
	for _, ev := range events {
		if ev.Kind == EventQuit {
			return true
		}
	}
	return false
}
