// Package renderloop runs the single-threaded poll/draw/present loop.
package renderloop

import (
	"github.com/fosdem/glhello/lib/window"
)

type State int

const (
	Running State = iota
	Terminated
)

func (s State) String() string {
	if s == Terminated {
		return "TERMINATED"
	}
	return "RUNNING"
}

type EventSource interface {
	PollEvents() []window.Event
}

type Frame interface {
	DrawFrame()
}

type Presenter interface {
	SwapBuffers()
}

// Loop has no frame timing or cap; presentation pacing is up to the
// swap interval of the window.
type Loop struct {
	Events  EventSource
	Frame   Frame
	Present Presenter

	// OnEvents sees every drained batch, quit included.
	OnEvents func(events []window.Event)
	// Maintenance runs after each presented frame.
	Maintenance []func()

	state  State
	frames uint64
}

func (l *Loop) State() State {
	return l.state
}

func (l *Loop) Frames() uint64 {
	return l.frames
}

// Step runs one iteration. A quit event seen while draining moves the loop
// to Terminated before anything is drawn.
func (l *Loop) Step() State {
	if l.state == Terminated {
		return l.state
	}

	events := l.Events.PollEvents()
	if l.OnEvents != nil && len(events) > 0 {
		l.OnEvents(events)
	}
	if window.ContainsQuit(events) {
		l.state = Terminated
		return l.state
	}

	l.Frame.DrawFrame()
	l.Present.SwapBuffers()
	l.frames++

	for _, m := range l.Maintenance {
		m()
	}
	return l.state
}

// Run steps until terminated and returns the number of frames presented.
func (l *Loop) Run() uint64 {
	for l.Step() == Running {
	}
	return l.frames
}
