package dto

import "time"

type Card struct {
	Front string
	Back  string
}

type StartInput struct {
	Cards []Card
}

type Timer struct {
	Kind    string
	After   time.Duration
	Session uint64
	Card    int
	Version uint64
}

type FrameOutput struct {
	Front              string
	Back               string
	Flipped            bool
	Phase              string
	State              string
	Transform          string
	TranslateX         float64
	Rotate             float64
	TranslateY         float64
	Scale              float64
	FlipY              float64
	TransitionDuration time.Duration
	TransitionEasing   string
	FrontFeedback      string
	BackFeedback       string
	Dragging           bool
	Progress           float64
	Index              int
	Total              int
	Done               bool
}

type ResultOutput struct {
	SessionID    string
	Percent      int
	KnownCount   int
	UnknownCount int
	Total        int
	KnownCards   []Card
	UnknownCards []Card
}

type StepOutput struct {
	Event     string
	Direction string
	Frame     FrameOutput
	Timers    []Timer
	Finished  bool
	Result    ResultOutput
}
