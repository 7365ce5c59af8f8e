package domain

import (
	"fmt"
	"math"

	apperrors "flipdeck/internal/platform/errors"
)

type Card struct {
	Front string
	Back  string
}

// SessionState is one pass over a shuffled deck. Index only moves forward
// and every card before it is in exactly one of Known or Unknown.
type SessionState struct {
	ID      string
	Cards   []Card
	Index   int
	Known   []Card
	Unknown []Card
}

func NewSessionState(id string, cards []Card) (*SessionState, error) {
	if len(cards) == 0 {
		return nil, apperrors.ErrEmptyDeck
	}
	return &SessionState{
		ID:    id,
		Cards: cards,
	}, nil
}

// Current returns the card under the cursor. ok is false once the session
// is complete.
func (s *SessionState) Current() (Card, bool) {
	if s.Index >= len(s.Cards) {
		return Card{}, false
	}
	return s.Cards[s.Index], true
}

// Record classifies the current card. It must be called once per card
// before Advance.
func (s *SessionState) Record(dir Direction) error {
	if s.Index >= len(s.Cards) {
		return fmt.Errorf("%w: record at index %d of %d", apperrors.ErrStateViolation, s.Index, len(s.Cards))
	}
	if s.classified() != s.Index {
		return fmt.Errorf("%w: card %d already classified", apperrors.ErrStateViolation, s.Index)
	}
	card := s.Cards[s.Index]
	switch dir {
	case DirectionKnown:
		s.Known = append(s.Known, card)
	case DirectionUnknown:
		s.Unknown = append(s.Unknown, card)
	default:
		return fmt.Errorf("%w: record with direction %s", apperrors.ErrStateViolation, dir)
	}
	return nil
}

// Advance moves past a classified card and reports whether the session is
// complete.
func (s *SessionState) Advance() (bool, error) {
	if s.Index >= len(s.Cards) {
		return true, fmt.Errorf("%w: advance past end of deck", apperrors.ErrStateViolation)
	}
	if s.classified() != s.Index+1 {
		return false, fmt.Errorf("%w: advance over unclassified card %d", apperrors.ErrStateViolation, s.Index)
	}
	s.Index++
	return s.Done(), nil
}

func (s *SessionState) Done() bool {
	return s.Index >= len(s.Cards)
}

// Progress is index/len in [0, 1].
func (s *SessionState) Progress() float64 {
	if len(s.Cards) == 0 {
		return 0
	}
	return float64(s.Index) / float64(len(s.Cards))
}

func (s *SessionState) Result() Result {
	total := len(s.Cards)
	percent := 0
	if total > 0 {
		percent = int(math.Round(100 * float64(len(s.Known)) / float64(total)))
	}
	return Result{
		SessionID:    s.ID,
		Percent:      percent,
		KnownCount:   len(s.Known),
		UnknownCount: len(s.Unknown),
		Total:        total,
		KnownCards:   append([]Card(nil), s.Known...),
		UnknownCards: append([]Card(nil), s.Unknown...),
	}
}

func (s *SessionState) classified() int {
	return len(s.Known) + len(s.Unknown)
}

type Result struct {
	SessionID    string
	Percent      int
	KnownCount   int
	UnknownCount int
	Total        int
	KnownCards   []Card
	UnknownCards []Card
}
