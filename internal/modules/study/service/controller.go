package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math/rand/v2"

	"flipdeck/internal/modules/study/domain"
	studyout "flipdeck/internal/modules/study/port/out"
	apperrors "flipdeck/internal/platform/errors"
	"flipdeck/internal/platform/id"
	"flipdeck/internal/platform/logging"
)

// Output is what one input did to the session.
type Output struct {
	Event    domain.Event
	Frame    domain.Frame
	Timers   []domain.Timer
	Finished bool
}

type Option func(*Controller)

func WithRand(rng *rand.Rand) Option {
	return func(c *Controller) { c.rng = rng }
}

func WithLogger(logger *slog.Logger) Option {
	return func(c *Controller) {
		if logger != nil {
			c.logger = logger
		}
	}
}

// WithStrict makes state violations panic instead of returning an error.
func WithStrict(strict bool) Option {
	return func(c *Controller) { c.strict = strict }
}

// Controller owns the session state and the machine for the card on
// screen. It is driven from a single event loop and is not safe for
// concurrent use.
type Controller struct {
	ids      id.Generator
	decks    studyout.DeckStore
	reporter studyout.ResultsReporter
	rng      *rand.Rand
	logger   *slog.Logger
	strict   bool

	generation uint64
	state      *domain.SessionState
	machine    *domain.CardMachine
	result     *domain.Result
}

func NewController(ids id.Generator, decks studyout.DeckStore, reporter studyout.ResultsReporter, opts ...Option) *Controller {
	c := &Controller{
		ids:      ids,
		decks:    decks,
		reporter: reporter,
		logger:   logging.Discard(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// StartSession shuffles a copy of cards, persists that order and shows the
// first card.
func (c *Controller) StartSession(ctx context.Context, cards []domain.Card) (Output, error) {
	if len(cards) == 0 {
		return Output{}, fmt.Errorf("start session: %w", apperrors.ErrEmptyDeck)
	}
	shuffled := domain.Shuffle(cards, c.rng)
	if c.decks != nil {
		if err := c.decks.SaveDeck(ctx, shuffled); err != nil {
			return Output{}, fmt.Errorf("persist deck: %w", err)
		}
	}
	return c.begin(shuffled, "start")
}

// ResumeSession replays the persisted deck in its stored order.
func (c *Controller) ResumeSession(ctx context.Context) (Output, error) {
	if c.decks == nil {
		return Output{}, apperrors.ErrNoSavedDeck
	}
	cards, err := c.decks.LoadDeck(ctx)
	if err != nil {
		return Output{}, err
	}
	if len(cards) == 0 {
		return Output{}, apperrors.ErrNoSavedDeck
	}
	return c.begin(cards, "resume")
}

func (c *Controller) begin(cards []domain.Card, how string) (Output, error) {
	state, err := domain.NewSessionState(c.ids.New(), cards)
	if err != nil {
		return Output{}, err
	}
	c.generation++
	c.state = state
	c.result = nil
	c.machine = domain.NewCardMachine(cards[0])
	c.logger.Info("session started", "session_id", state.ID, "mode", how, "cards", len(cards))
	return Output{Frame: c.Frame()}, nil
}

func (c *Controller) DragStart(pointerX float64) (Output, error) {
	if !c.active() {
		return c.idle(), nil
	}
	return c.apply(c.machine.DragStart(pointerX))
}

func (c *Controller) DragMove(pointerX float64) (Output, error) {
	if !c.active() {
		return c.idle(), nil
	}
	return c.apply(c.machine.DragMove(pointerX))
}

func (c *Controller) DragEnd() (Output, error) {
	if !c.active() {
		return c.idle(), nil
	}
	return c.apply(c.machine.DragEnd())
}

func (c *Controller) Flip() (Output, error) {
	if !c.active() {
		return c.idle(), c.violation(fmt.Errorf("%w: flip without an active card", apperrors.ErrStateViolation))
	}
	return c.apply(c.machine.Flip())
}

func (c *Controller) Know() (Output, error) {
	return c.commit(domain.DirectionKnown)
}

func (c *Controller) DontKnow() (Output, error) {
	return c.commit(domain.DirectionUnknown)
}

func (c *Controller) commit(dir domain.Direction) (Output, error) {
	if !c.active() {
		return c.idle(), c.violation(fmt.Errorf("%w: commit %s without an active card", apperrors.ErrStateViolation, dir))
	}
	return c.apply(c.machine.Commit(dir))
}

// Fire delivers a timer scheduled from an earlier Output. Timers from a
// previous card or session are dropped.
func (c *Controller) Fire(ctx context.Context, t domain.Timer) (Output, error) {
	if !c.active() || t.Session != c.generation || t.Card != c.state.Index {
		return c.idle(), nil
	}
	step := c.machine.Fire(t)
	if step.Event.Kind != domain.EventResolved {
		return c.apply(step)
	}
	out, err := c.Advance(ctx)
	out.Event = step.Event
	return out, err
}

// Advance moves to the next card once the current one is resolved.
func (c *Controller) Advance(ctx context.Context) (Output, error) {
	if !c.active() {
		return c.idle(), c.violation(fmt.Errorf("%w: advance without an active card", apperrors.ErrStateViolation))
	}
	done, err := c.state.Advance()
	if err != nil {
		return c.idle(), c.violation(err)
	}
	if done {
		return c.finish(ctx)
	}
	card, _ := c.state.Current()
	c.machine = domain.NewCardMachine(card)
	c.logger.Debug("card advanced", "session_id", c.state.ID, "index", c.state.Index, "progress", c.state.Progress())
	return Output{Frame: c.Frame()}, nil
}

func (c *Controller) finish(ctx context.Context) (Output, error) {
	result := c.state.Result()
	c.result = &result
	c.logger.Info("session finished", "session_id", result.SessionID, "percent", result.Percent, "known", result.KnownCount, "unknown", result.UnknownCount)
	out := Output{Frame: c.Frame(), Finished: true}
	if c.reporter == nil {
		return out, nil
	}
	if err := c.reporter.Report(ctx, result); err != nil {
		c.logger.Error("report results", "session_id", result.SessionID, "error", err)
		return out, fmt.Errorf("report results: %w", err)
	}
	return out, nil
}

func (c *Controller) apply(step domain.Step) (Output, error) {
	if step.Event.Kind == domain.EventCommitted {
		if err := c.state.Record(step.Event.Direction); err != nil {
			return c.idle(), c.violation(err)
		}
		c.logger.Debug("card committed", "session_id", c.state.ID, "index", c.state.Index, "direction", step.Event.Direction.String())
	}
	timers := make([]domain.Timer, 0, len(step.Timers))
	for _, t := range step.Timers {
		t.Session = c.generation
		t.Card = c.state.Index
		timers = append(timers, t)
	}
	return Output{Event: step.Event, Frame: c.Frame(), Timers: timers}, nil
}

// Frame renders the current state. Before any session it is the zero
// Frame; after the last card it reports Done.
func (c *Controller) Frame() domain.Frame {
	if c.state == nil {
		return domain.Frame{}
	}
	frame := domain.Frame{}
	if c.machine != nil && !c.state.Done() {
		frame = c.machine.Frame()
	}
	frame.Progress = c.state.Progress()
	frame.Index = c.state.Index
	frame.Total = len(c.state.Cards)
	frame.Done = c.state.Done()
	return frame
}

// Result is available once the last card has been resolved.
func (c *Controller) Result() (domain.Result, bool) {
	if c.result == nil {
		return domain.Result{}, false
	}
	return *c.result, true
}

func (c *Controller) Finished() bool {
	return c.result != nil
}

func (c *Controller) active() bool {
	return c.state != nil && c.machine != nil && !c.state.Done()
}

func (c *Controller) idle() Output {
	return Output{Event: domain.Event{Kind: domain.EventIgnored}, Frame: c.Frame(), Finished: c.Finished()}
}

func (c *Controller) violation(err error) error {
	sessionID := ""
	if c.state != nil {
		sessionID = c.state.ID
	}
	c.logger.Error("state violation", "session_id", sessionID, "error", err)
	if c.strict && errors.Is(err, apperrors.ErrStateViolation) {
		panic(err)
	}
	return err
}
