package service_test

import (
	"context"
	"errors"
	"fmt"
	"math/rand/v2"
	"testing"

	"flipdeck/internal/modules/study/domain"
	"flipdeck/internal/modules/study/service"
	apperrors "flipdeck/internal/platform/errors"
)

type seqIDs struct{ n int }

func (s *seqIDs) New() string {
	s.n++
	return fmt.Sprintf("session-%d", s.n)
}

type memDecks struct {
	cards []domain.Card
	saves int
	err   error
}

func (m *memDecks) SaveDeck(_ context.Context, cards []domain.Card) error {
	if m.err != nil {
		return m.err
	}
	m.saves++
	m.cards = append([]domain.Card(nil), cards...)
	return nil
}

func (m *memDecks) LoadDeck(context.Context) ([]domain.Card, error) {
	if len(m.cards) == 0 {
		return nil, apperrors.ErrNoSavedDeck
	}
	return append([]domain.Card(nil), m.cards...), nil
}

type recordingReporter struct {
	results []domain.Result
	err     error
}

func (r *recordingReporter) Report(_ context.Context, result domain.Result) error {
	r.results = append(r.results, result)
	return r.err
}

func newController(decks *memDecks, reporter *recordingReporter, opts ...service.Option) *service.Controller {
	opts = append([]service.Option{service.WithRand(rand.New(rand.NewPCG(1, 2)))}, opts...)
	return service.NewController(&seqIDs{}, decks, reporter, opts...)
}

// resolve fires the exit timer of a commit output.
func resolve(t *testing.T, c *service.Controller, out service.Output) service.Output {
	t.Helper()
	for _, timer := range out.Timers {
		if timer.Kind == domain.TimerExit {
			next, err := c.Fire(context.Background(), timer)
			if err != nil {
				t.Fatalf("fire exit: %v", err)
			}
			if next.Event.Kind != domain.EventResolved {
				t.Fatalf("exit timer must resolve, got %+v", next.Event)
			}
			return next
		}
	}
	t.Fatalf("no exit timer in %+v", out.Timers)
	return service.Output{}
}

func TestStartSessionRejectsEmptyDeck(t *testing.T) {
	t.Parallel()
	decks := &memDecks{}
	c := newController(decks, &recordingReporter{})
	if _, err := c.StartSession(context.Background(), nil); !errors.Is(err, apperrors.ErrEmptyDeck) {
		t.Fatalf("expected empty deck error, got %v", err)
	}
	if decks.saves != 0 {
		t.Fatalf("empty deck must not be persisted")
	}
	if c.Frame() != (domain.Frame{}) || c.Finished() {
		t.Fatalf("no session state may be initialized: %+v", c.Frame())
	}
	out, err := c.DragStart(10)
	if err != nil || out.Event.Kind != domain.EventIgnored {
		t.Fatalf("pointer input without a session must be ignored, got %+v %v", out, err)
	}
}

func TestResumeScenarioKnownThenUnknown(t *testing.T) {
	t.Parallel()
	a, b := domain.Card{Front: "A", Back: "1"}, domain.Card{Front: "B", Back: "2"}
	decks := &memDecks{cards: []domain.Card{a, b}}
	reporter := &recordingReporter{}
	c := newController(decks, reporter)

	out, err := c.ResumeSession(context.Background())
	if err != nil {
		t.Fatalf("resume: %v", err)
	}
	if out.Frame.Front != "A" || out.Frame.Total != 2 || out.Frame.Progress != 0 {
		t.Fatalf("resume must keep stored order: %+v", out.Frame)
	}
	if decks.saves != 0 {
		t.Fatalf("resume must not re-persist the deck")
	}

	out, err = c.Know()
	if err != nil {
		t.Fatalf("know: %v", err)
	}
	out = resolve(t, c, out)
	if out.Frame.Front != "B" || out.Frame.Progress != 0.5 || out.Frame.State != domain.StateIdleFront {
		t.Fatalf("second card must start idle front: %+v", out.Frame)
	}

	out, err = c.DontKnow()
	if err != nil {
		t.Fatalf("dont know: %v", err)
	}
	out = resolve(t, c, out)
	if !out.Finished || !out.Frame.Done || out.Frame.Progress != 1 {
		t.Fatalf("session must finish: %+v", out)
	}

	res, ok := c.Result()
	if !ok || res.Percent != 50 {
		t.Fatalf("want 50%%, got %+v", res)
	}
	if len(res.KnownCards) != 1 || res.KnownCards[0] != a || len(res.UnknownCards) != 1 || res.UnknownCards[0] != b {
		t.Fatalf("unexpected partition: %+v", res)
	}
	if len(reporter.results) != 1 || reporter.results[0].SessionID != "session-1" {
		t.Fatalf("reporter must receive the result once: %+v", reporter.results)
	}
}

func TestStartSessionPersistsShuffledCopy(t *testing.T) {
	t.Parallel()
	cards := []domain.Card{{Front: "A", Back: "1"}, {Front: "B", Back: "2"}, {Front: "C", Back: "3"}, {Front: "D", Back: "4"}}
	input := append([]domain.Card(nil), cards...)
	decks := &memDecks{}
	c := newController(decks, &recordingReporter{})

	out, err := c.StartSession(context.Background(), input)
	if err != nil {
		t.Fatalf("start: %v", err)
	}
	if decks.saves != 1 || len(decks.cards) != len(cards) {
		t.Fatalf("shuffled deck must be persisted once: %+v", decks)
	}
	if out.Frame.Front != decks.cards[0].Front {
		t.Fatalf("first frame must show the first persisted card")
	}
	for i := range cards {
		if input[i] != cards[i] {
			t.Fatalf("input must not be reordered")
		}
	}
}

func TestStartSessionFailsWhenPersistFails(t *testing.T) {
	t.Parallel()
	c := newController(&memDecks{err: errors.New("disk full")}, &recordingReporter{})
	if _, err := c.StartSession(context.Background(), []domain.Card{{Front: "A", Back: "1"}}); err == nil {
		t.Fatalf("expected persist error")
	}
	if c.Frame() != (domain.Frame{}) {
		t.Fatalf("failed start must leave no session")
	}
}

func TestResumeWithoutSavedDeck(t *testing.T) {
	t.Parallel()
	c := newController(&memDecks{}, &recordingReporter{})
	if _, err := c.ResumeSession(context.Background()); !errors.Is(err, apperrors.ErrNoSavedDeck) {
		t.Fatalf("expected no saved deck, got %v", err)
	}
}

func TestGestureCommitAndCancel(t *testing.T) {
	t.Parallel()
	decks := &memDecks{cards: []domain.Card{{Front: "A", Back: "1"}, {Front: "B", Back: "2"}}}
	c := newController(decks, &recordingReporter{})
	if _, err := c.ResumeSession(context.Background()); err != nil {
		t.Fatalf("resume: %v", err)
	}

	c.DragStart(500)
	c.DragMove(380)
	out, err := c.DragEnd()
	if err != nil || out.Event.Kind != domain.EventCancelled {
		t.Fatalf("almost-swipe must cancel, got %+v %v", out.Event, err)
	}
	if out.Frame.Index != 0 || out.Frame.State != domain.StateIdleFront {
		t.Fatalf("cancel must not move the session: %+v", out.Frame)
	}

	c.DragStart(500)
	c.DragMove(200)
	out, err = c.DragEnd()
	if err != nil || out.Event.Kind != domain.EventCommitted || out.Event.Direction != domain.DirectionUnknown {
		t.Fatalf("left swipe must commit unknown, got %+v %v", out.Event, err)
	}
	if out.Frame.Phase != domain.PhaseExiting || out.Frame.Index != 0 {
		t.Fatalf("commit must exit without advancing: %+v", out.Frame)
	}
	if len(out.Timers) != 1 || out.Timers[0].Session == 0 || out.Timers[0].Card != 0 {
		t.Fatalf("timers must be stamped with session and card: %+v", out.Timers)
	}

	ignored, err := c.DragStart(10)
	if err != nil || ignored.Event.Kind != domain.EventIgnored {
		t.Fatalf("drag start while exiting must be ignored, got %+v", ignored.Event)
	}
	resolve(t, c, out)
	if c.Frame().Front != "B" {
		t.Fatalf("expected second card, got %+v", c.Frame())
	}
}

func TestStaleTimersAreDropped(t *testing.T) {
	t.Parallel()
	decks := &memDecks{cards: []domain.Card{{Front: "A", Back: "1"}, {Front: "B", Back: "2"}, {Front: "C", Back: "3"}}}
	c := newController(decks, &recordingReporter{})
	if _, err := c.ResumeSession(context.Background()); err != nil {
		t.Fatalf("resume: %v", err)
	}

	flip, _ := c.Flip()
	commit, _ := c.Know()
	resolve(t, c, commit)

	for _, timer := range append(flip.Timers, commit.Timers...) {
		out, err := c.Fire(context.Background(), timer)
		if err != nil || out.Event.Kind != domain.EventIgnored {
			t.Fatalf("timer %+v from previous card must be ignored, got %+v", timer, out.Event)
		}
	}
	if c.Frame().Index != 1 {
		t.Fatalf("stale exit timer must not advance again: %+v", c.Frame())
	}

	old, _ := c.Know()
	if _, err := c.ResumeSession(context.Background()); err != nil {
		t.Fatalf("resume again: %v", err)
	}
	out, err := c.Fire(context.Background(), old.Timers[0])
	if err != nil || out.Event.Kind != domain.EventIgnored {
		t.Fatalf("timer from previous session must be ignored, got %+v", out.Event)
	}
	if c.Frame().Index != 0 {
		t.Fatalf("new session must be untouched: %+v", c.Frame())
	}
}

func TestDiscreteFlipMatchesTap(t *testing.T) {
	t.Parallel()
	decks := &memDecks{cards: []domain.Card{{Front: "A", Back: "1"}}}
	c := newController(decks, &recordingReporter{})
	if _, err := c.ResumeSession(context.Background()); err != nil {
		t.Fatalf("resume: %v", err)
	}
	flip, err := c.Flip()
	if err != nil || !flip.Frame.Flipped || flip.Frame.State != domain.StateFlipping {
		t.Fatalf("flip: %+v %v", flip.Frame, err)
	}
	settled, err := c.Fire(context.Background(), flip.Timers[0])
	if err != nil || settled.Frame.State != domain.StateIdleBack {
		t.Fatalf("flip timer: %+v %v", settled.Frame, err)
	}
	c.DragStart(100)
	tap, err := c.DragEnd()
	if err != nil || tap.Event.Kind != domain.EventFlipped || tap.Frame.Flipped {
		t.Fatalf("tap must flip back to front: %+v %v", tap, err)
	}
}

func TestActionsAfterFinishAreViolations(t *testing.T) {
	t.Parallel()
	decks := &memDecks{cards: []domain.Card{{Front: "A", Back: "1"}}}
	c := newController(decks, &recordingReporter{})
	if _, err := c.ResumeSession(context.Background()); err != nil {
		t.Fatalf("resume: %v", err)
	}
	out, _ := c.Know()
	resolve(t, c, out)

	if _, err := c.Know(); !errors.Is(err, apperrors.ErrStateViolation) {
		t.Fatalf("commit after finish must be a violation, got %v", err)
	}
	if _, err := c.Flip(); !errors.Is(err, apperrors.ErrStateViolation) {
		t.Fatalf("flip after finish must be a violation, got %v", err)
	}
	if _, err := c.Advance(context.Background()); !errors.Is(err, apperrors.ErrStateViolation) {
		t.Fatalf("advance after finish must be a violation, got %v", err)
	}
	if out, err := c.DragStart(0); err != nil || !out.Finished {
		t.Fatalf("pointer input after finish is ignored, got %+v %v", out, err)
	}
}

func TestAdvanceBeforeCommitIsViolation(t *testing.T) {
	t.Parallel()
	decks := &memDecks{cards: []domain.Card{{Front: "A", Back: "1"}, {Front: "B", Back: "2"}}}
	c := newController(decks, &recordingReporter{})
	if _, err := c.ResumeSession(context.Background()); err != nil {
		t.Fatalf("resume: %v", err)
	}
	if _, err := c.Advance(context.Background()); !errors.Is(err, apperrors.ErrStateViolation) {
		t.Fatalf("advance over unclassified card must fail, got %v", err)
	}
	if c.Frame().Index != 0 {
		t.Fatalf("index must not move")
	}
}

func TestStrictModePanicsOnViolation(t *testing.T) {
	t.Parallel()
	c := newController(&memDecks{}, &recordingReporter{}, service.WithStrict(true))
	defer func() {
		r := recover()
		err, ok := r.(error)
		if !ok || !errors.Is(err, apperrors.ErrStateViolation) {
			t.Fatalf("expected state violation panic, got %v", r)
		}
	}()
	c.Know()
}

func TestReporterFailureStillFinishes(t *testing.T) {
	t.Parallel()
	decks := &memDecks{cards: []domain.Card{{Front: "A", Back: "1"}}}
	c := newController(decks, &recordingReporter{err: errors.New("store down")})
	if _, err := c.ResumeSession(context.Background()); err != nil {
		t.Fatalf("resume: %v", err)
	}
	commit, _ := c.DontKnow()
	out, err := c.Fire(context.Background(), commit.Timers[0])
	if err == nil {
		t.Fatalf("expected reporter error")
	}
	if !out.Finished {
		t.Fatalf("session must still finish")
	}
	if res, ok := c.Result(); !ok || res.Percent != 0 || res.UnknownCount != 1 {
		t.Fatalf("unexpected result: %+v", res)
	}
}

func TestEverySessionPartitionsTheDeck(t *testing.T) {
	t.Parallel()
	cards := make([]domain.Card, 9)
	for i := range cards {
		cards[i] = domain.Card{Front: fmt.Sprintf("f%d", i), Back: fmt.Sprintf("b%d", i)}
	}
	for seed := uint64(0); seed < 20; seed++ {
		pick := rand.New(rand.NewPCG(seed, 99))
		c := service.NewController(&seqIDs{}, &memDecks{}, &recordingReporter{}, service.WithRand(rand.New(rand.NewPCG(seed, 1))))
		if _, err := c.StartSession(context.Background(), cards); err != nil {
			t.Fatalf("start: %v", err)
		}
		for !c.Finished() {
			var out service.Output
			var err error
			if pick.IntN(2) == 0 {
				c.DragStart(0)
				c.DragMove(131 + float64(pick.IntN(400)))
				out, err = c.DragEnd()
			} else {
				out, err = c.DontKnow()
			}
			if err != nil {
				t.Fatalf("commit: %v", err)
			}
			resolve(t, c, out)
		}
		res, _ := c.Result()
		if res.KnownCount+res.UnknownCount != len(cards) {
			t.Fatalf("seed %d: partition size mismatch %+v", seed, res)
		}
		seen := map[domain.Card]int{}
		for _, card := range append(res.KnownCards, res.UnknownCards...) {
			seen[card]++
		}
		for _, card := range cards {
			if seen[card] != 1 {
				t.Fatalf("seed %d: card %+v classified %d times", seed, card, seen[card])
			}
		}
	}
}
