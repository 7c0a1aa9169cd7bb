package particles

import "log/slog"

// State is the lifecycle phase of a Loop.
type State int

const (
	Idle State = iota
	Running
)

func (s State) String() string {
	switch s {
	case Idle:
		return "idle"
	case Running:
		return "running"
	}
	return "unknown"
}

// Scheduler runs a callback once on the next display frame.
type Scheduler interface {
	RequestFrame(fn func(Surface))
}

// Loop drives the field one frame at a time: clear, tick, connect.
// Once running it reschedules itself forever.
type Loop struct {
	field   *Field
	binding *Binding
	state   State
	sched   Scheduler
	frames  uint64
	last    ConnectStats
}

// NewLoop creates an idle loop over the field bound to b.
func NewLoop(f *Field, b *Binding) *Loop {
	return &Loop{field: f, binding: b}
}

// Run seeds the field and starts the frame cycle on sched. It returns false
// and schedules nothing when there is no surface to draw on. Calling Run on
// a running loop does nothing.
func (l *Loop) Run(sched Scheduler) bool {
	if l.state == Running {
		return true
	}
	if l.field == nil || l.binding == nil || l.binding.Viewport().Empty() {
		slog.Warn("particle loop not started: no drawing surface")
		return false
	}
	l.field.Initialize(l.binding.Viewport())
	l.sched = sched
	l.state = Running
	sched.RequestFrame(l.step)
	return true
}

func (l *Loop) step(s Surface) {
	l.Frame(s)
	l.sched.RequestFrame(l.step)
}

// Frame runs a single frame without scheduling the next one. Every particle
// is updated before any edge is drawn.
func (l *Loop) Frame(s Surface) {
	s.Clear()
	l.field.Tick(s)
	l.last = l.field.Connect(s)
	l.frames++
}

// State returns the loop's lifecycle phase.
func (l *Loop) State() State {
	return l.state
}

// Frames returns how many frames have been drawn.
func (l *Loop) Frames() uint64 {
	return l.frames
}

// LastFrame returns the connection stats of the most recent frame.
func (l *Loop) LastFrame() ConnectStats {
	return l.last
}

// Stepper is a Scheduler pumped by hand: each Step runs the callback queued
// by the previous frame. Ebitengine's Draw and the tests both drive it.
type Stepper struct {
	pending func(Surface)
}

// RequestFrame queues fn for the next Step, replacing any earlier request.
func (st *Stepper) RequestFrame(fn func(Surface)) {
	st.pending = fn
}

// Step runs the queued callback on s and reports whether one was queued.
func (st *Stepper) Step(s Surface) bool {
	fn := st.pending
	if fn == nil {
		return false
	}
	st.pending = nil
	fn(s)
	return true
}
