package domain

import "time"

const (
	FlipDuration   = 600 * time.Millisecond
	SettleDuration = 400 * time.Millisecond
	// ExitDuration is when an exiting card counts as resolved. The exit
	// transition itself runs a little longer.
	ExitDuration           = 400 * time.Millisecond
	ExitTransitionDuration = 500 * time.Millisecond
)

type Phase string

const (
	PhaseNone     Phase = "none"
	PhaseFlipping Phase = "flipping"
	PhaseExiting  Phase = "exiting"
)

type State string

const (
	StateIdleFront State = "idle-front"
	StateIdleBack  State = "idle-back"
	StateFlipping  State = "flipping"
	StateExiting   State = "exiting"
)

type FaceState struct {
	Flipped   bool
	Animating Phase
}

func (f FaceState) State() State {
	switch f.Animating {
	case PhaseExiting:
		return StateExiting
	case PhaseFlipping:
		return StateFlipping
	}
	if f.Flipped {
		return StateIdleBack
	}
	return StateIdleFront
}

type TimerKind int

const (
	TimerFlip TimerKind = iota
	TimerSettle
	TimerExit
	timerKinds
)

func (k TimerKind) String() string {
	switch k {
	case TimerFlip:
		return "flip"
	case TimerSettle:
		return "settle"
	case TimerExit:
		return "exit"
	default:
		return "unknown"
	}
}

// Timer is a deferred transition. It carries the versions it was issued
// for; firing it after any of them moved on does nothing. Session and Card
// are stamped by the controller.
type Timer struct {
	Kind    TimerKind
	After   time.Duration
	Session uint64
	Card    int
	Version uint64
}

type EventKind int

const (
	EventNone EventKind = iota
	EventIgnored
	EventDragged
	EventFlipped
	EventFlipSettled
	EventCancelled
	EventSettled
	EventCommitted
	EventResolved
)

type Event struct {
	Kind      EventKind
	Direction Direction
}

// Step is the result of feeding one input to the machine: what happened
// and which timers must be scheduled.
type Step struct {
	Event  Event
	Timers []Timer
}

// CardMachine is the interaction state of the single card on screen.
type CardMachine struct {
	card       Card
	face       FaceState
	tracker    Tracker
	front      Feedback
	back       Feedback
	transform  Transform
	transition Transition
	versions   [timerKinds]uint64
	committed  Direction
	resolved   bool
}

func NewCardMachine(card Card) *CardMachine {
	return &CardMachine{
		card:      card,
		face:      FaceState{Animating: PhaseNone},
		transform: Identity(),
	}
}

func (m *CardMachine) Card() Card           { return m.card }
func (m *CardMachine) Face() FaceState      { return m.face }
func (m *CardMachine) State() State         { return m.face.State() }
func (m *CardMachine) Drag() DragState      { return m.tracker.State() }
func (m *CardMachine) Transform() Transform { return m.transform }
func (m *CardMachine) Committed() Direction { return m.committed }

// Feedback returns the color hints for the front and back faces.
func (m *CardMachine) Feedback() (Feedback, Feedback) { return m.front, m.back }

func (m *CardMachine) DragStart(pointerX float64) Step {
	if m.face.Animating == PhaseExiting {
		return ignored()
	}
	m.tracker.Start(pointerX)
	m.transition = Transition{}
	m.versions[TimerSettle]++
	return Step{}
}

func (m *CardMachine) DragMove(pointerX float64) Step {
	delta, ok := m.tracker.Move(pointerX)
	if !ok {
		return Step{}
	}
	m.transform = Dragged(delta, m.face.Flipped)
	feedback := FeedbackFor(delta)
	if m.face.Flipped {
		m.back = feedback
	} else {
		m.front = feedback
	}
	return Step{Event: Event{Kind: EventDragged}}
}

func (m *CardMachine) DragEnd() Step {
	g, ok := m.tracker.End()
	if !ok {
		return Step{}
	}
	switch g.Kind {
	case GestureCommit:
		return m.Commit(g.Direction)
	case GestureTap:
		return m.Flip()
	default:
		return m.cancel()
	}
}

// Flip toggles the visible face. A flip during Flipping toggles again and
// supersedes the pending flip timer.
func (m *CardMachine) Flip() Step {
	if m.face.Animating == PhaseExiting {
		return ignored()
	}
	m.tracker.Reset()
	m.face.Flipped = !m.face.Flipped
	m.face.Animating = PhaseFlipping
	m.transform = Resting(m.face.Flipped)
	m.transition = Transition{Duration: FlipDuration, Easing: EasingFlip}
	return Step{
		Event:  Event{Kind: EventFlipped},
		Timers: []Timer{m.schedule(TimerFlip, FlipDuration)},
	}
}

// Commit moves the card into Exiting. The caller records the outcome when
// it sees EventCommitted; a second commit on the same card is ignored.
func (m *CardMachine) Commit(dir Direction) Step {
	if m.face.Animating == PhaseExiting {
		return ignored()
	}
	if dir != DirectionKnown && dir != DirectionUnknown {
		return ignored()
	}
	m.tracker.Reset()
	m.face.Animating = PhaseExiting
	m.committed = dir
	m.transform = Exiting(dir, m.face.Flipped)
	m.transition = Transition{Duration: ExitTransitionDuration, Easing: EasingIn}
	m.versions[TimerFlip]++
	m.versions[TimerSettle]++
	return Step{
		Event:  Event{Kind: EventCommitted, Direction: dir},
		Timers: []Timer{m.schedule(TimerExit, ExitDuration)},
	}
}

func (m *CardMachine) cancel() Step {
	m.transform = Resting(m.face.Flipped)
	m.transition = Transition{Duration: SettleDuration, Easing: EasingSpring}
	m.front = FeedbackNeutral
	m.back = FeedbackNeutral
	return Step{
		Event:  Event{Kind: EventCancelled},
		Timers: []Timer{m.schedule(TimerSettle, SettleDuration)},
	}
}

// Fire applies a timer issued earlier by this machine. Stale timers are
// ignored.
func (m *CardMachine) Fire(t Timer) Step {
	if t.Kind < 0 || t.Kind >= timerKinds || t.Version != m.versions[t.Kind] {
		return ignored()
	}
	switch t.Kind {
	case TimerFlip:
		if m.face.Animating != PhaseFlipping {
			return ignored()
		}
		m.face.Animating = PhaseNone
		if !m.tracker.State().Dragging {
			m.transition = Transition{}
		}
		return Step{Event: Event{Kind: EventFlipSettled}}
	case TimerSettle:
		if m.face.Animating == PhaseExiting || m.tracker.State().Dragging {
			return ignored()
		}
		m.transition = Transition{}
		return Step{Event: Event{Kind: EventSettled}}
	case TimerExit:
		if m.face.Animating != PhaseExiting || m.resolved {
			return ignored()
		}
		m.resolved = true
		return Step{Event: Event{Kind: EventResolved, Direction: m.committed}}
	}
	return ignored()
}

func (m *CardMachine) schedule(kind TimerKind, after time.Duration) Timer {
	m.versions[kind]++
	return Timer{Kind: kind, After: after, Version: m.versions[kind]}
}

func ignored() Step {
	return Step{Event: Event{Kind: EventIgnored}}
}
