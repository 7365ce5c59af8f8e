package domain

import "math"

// Gesture grammar, in pixels of horizontal pointer travel.
const (
	CommitThreshold   = 130.0
	TapThreshold      = 10.0
	FeedbackThreshold = 50.0
	RotationDivisor   = 15.0
	LiftDivisor       = 20.0
)

type Direction int

const (
	DirectionNone Direction = iota
	DirectionKnown
	DirectionUnknown
)

func (d Direction) String() string {
	switch d {
	case DirectionKnown:
		return "known"
	case DirectionUnknown:
		return "unknown"
	default:
		return "none"
	}
}

type GestureKind int

const (
	GestureCancel GestureKind = iota
	GestureTap
	GestureCommit
)

func (k GestureKind) String() string {
	switch k {
	case GestureTap:
		return "tap"
	case GestureCommit:
		return "commit"
	default:
		return "cancel"
	}
}

type Gesture struct {
	Kind      GestureKind
	Direction Direction
	Delta     float64
}

// Classify resolves a released drag. Anything strictly between the tap and
// commit thresholds is an almost-swipe that snaps back.
func Classify(delta float64) Gesture {
	distance := math.Abs(delta)
	switch {
	case distance > CommitThreshold:
		dir := DirectionKnown
		if delta < 0 {
			dir = DirectionUnknown
		}
		return Gesture{Kind: GestureCommit, Direction: dir, Delta: delta}
	case distance < TapThreshold:
		return Gesture{Kind: GestureTap, Delta: delta}
	default:
		return Gesture{Kind: GestureCancel, Delta: delta}
	}
}

type Feedback int

const (
	FeedbackNeutral Feedback = iota
	FeedbackPositive
	FeedbackNegative
)

func (f Feedback) String() string {
	switch f {
	case FeedbackPositive:
		return "positive"
	case FeedbackNegative:
		return "negative"
	default:
		return "neutral"
	}
}

func FeedbackFor(delta float64) Feedback {
	switch {
	case delta > FeedbackThreshold:
		return FeedbackPositive
	case delta < -FeedbackThreshold:
		return FeedbackNegative
	default:
		return FeedbackNeutral
	}
}

// DragState is meaningful only between a drag start and its release.
type DragState struct {
	StartX   float64
	Delta    float64
	Dragging bool
}

// Tracker follows one pointer drag at a time.
type Tracker struct {
	drag DragState
}

func (t *Tracker) Start(pointerX float64) {
	t.drag = DragState{StartX: pointerX, Dragging: true}
}

// Move reports ok=false when no drag is in progress.
func (t *Tracker) Move(pointerX float64) (float64, bool) {
	if !t.drag.Dragging {
		return 0, false
	}
	t.drag.Delta = pointerX - t.drag.StartX
	return t.drag.Delta, true
}

// End classifies the drag and resets the tracker whatever the outcome.
func (t *Tracker) End() (Gesture, bool) {
	if !t.drag.Dragging {
		return Gesture{}, false
	}
	g := Classify(t.drag.Delta)
	t.Reset()
	return g, true
}

func (t *Tracker) Reset() {
	t.drag = DragState{}
}

func (t *Tracker) State() DragState {
	return t.drag
}
