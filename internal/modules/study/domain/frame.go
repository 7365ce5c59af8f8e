package domain

// Frame is everything a renderer needs to draw the study screen.
type Frame struct {
	Front         string
	Back          string
	Flipped       bool
	Phase         Phase
	State         State
	Transform     Transform
	Transition    Transition
	FrontFeedback Feedback
	BackFeedback  Feedback
	Dragging      bool
	Progress      float64
	Index         int
	Total         int
	Done          bool
}

// Frame renders the machine alone; the controller fills in progress.
func (m *CardMachine) Frame() Frame {
	return Frame{
		Front:         m.card.Front,
		Back:          m.card.Back,
		Flipped:       m.face.Flipped,
		Phase:         m.face.Animating,
		State:         m.face.State(),
		Transform:     m.transform,
		Transition:    m.transition,
		FrontFeedback: m.front,
		BackFeedback:  m.back,
		Dragging:      m.tracker.State().Dragging,
	}
}
