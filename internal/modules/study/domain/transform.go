package domain

import (
	"math"
	"strconv"
	"strings"
	"time"
)

const (
	FlippedScale     = 1.05
	ExitDistance     = 1000.0
	ExitScale        = 0.5
	ExitRotateFactor = 10.0
)

// Transform is the card's visual placement. Renderers compose it as
// translateX, rotate, translateY, scale, then the flip rotation.
type Transform struct {
	TranslateX float64
	Rotate     float64
	TranslateY float64
	Scale      float64
	FlipY      float64
}

func Identity() Transform {
	return Transform{Scale: 1}
}

// Resting is where a card settles with no drag applied.
func Resting(flipped bool) Transform {
	if flipped {
		return Transform{Scale: FlippedScale, FlipY: 180}
	}
	return Identity()
}

func Dragged(delta float64, flipped bool) Transform {
	t := Resting(flipped)
	t.TranslateX = delta
	t.Rotate = delta / RotationDivisor
	t.TranslateY = -math.Abs(delta) / LiftDivisor
	return t
}

// Exiting sends the card off-screen in the commit direction while keeping
// its flip orientation.
func Exiting(dir Direction, flipped bool) Transform {
	x := ExitDistance
	if dir == DirectionUnknown {
		x = -ExitDistance
	}
	t := Transform{TranslateX: x, Rotate: x / ExitRotateFactor, Scale: ExitScale}
	if flipped {
		t.FlipY = 180
	}
	return t
}

func (t Transform) String() string {
	parts := make([]string, 0, 5)
	if t.TranslateX != 0 {
		parts = append(parts, "translateX("+num(t.TranslateX)+"px)")
	}
	if t.Rotate != 0 {
		parts = append(parts, "rotate("+num(t.Rotate)+"deg)")
	}
	if t.TranslateY != 0 {
		parts = append(parts, "translateY("+num(t.TranslateY)+"px)")
	}
	if t.Scale != 1 {
		parts = append(parts, "scale("+num(t.Scale)+")")
	}
	if t.FlipY != 0 {
		parts = append(parts, "rotateY("+num(t.FlipY)+"deg)")
	}
	if len(parts) == 0 {
		return "none"
	}
	return strings.Join(parts, " ")
}

func num(v float64) string {
	return strconv.FormatFloat(math.Round(v*100)/100, 'f', -1, 64)
}

const (
	EasingFlip   = "ease"
	EasingSpring = "cubic-bezier(0.175, 0.885, 0.32, 1.275)"
	EasingIn     = "ease-in"
)

// Transition describes how a renderer should animate into the current
// transform. The zero value means an immediate jump.
type Transition struct {
	Duration time.Duration
	Easing   string
}
