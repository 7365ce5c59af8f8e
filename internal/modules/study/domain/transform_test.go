package domain

import "testing"

func TestTransformString(t *testing.T) {
	t.Parallel()
	cases := []struct {
		name string
		in   Transform
		want string
	}{
		{name: "identity", in: Identity(), want: "none"},
		{name: "resting flipped", in: Resting(true), want: "scale(1.05) rotateY(180deg)"},
		{name: "dragged", in: Dragged(30, false), want: "translateX(30px) rotate(2deg) translateY(-1.5px)"},
		{name: "dragged left flipped", in: Dragged(-45, true), want: "translateX(-45px) rotate(-3deg) translateY(-2.25px) scale(1.05) rotateY(180deg)"},
		{name: "exit known", in: Exiting(DirectionKnown, false), want: "translateX(1000px) rotate(100deg) scale(0.5)"},
		{name: "exit unknown flipped", in: Exiting(DirectionUnknown, true), want: "translateX(-1000px) rotate(-100deg) scale(0.5) rotateY(180deg)"},
	}
	for _, tc := range cases {
		if got := tc.in.String(); got != tc.want {
			t.Fatalf("%s: want %q got %q", tc.name, tc.want, got)
		}
	}
}
