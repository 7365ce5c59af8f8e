package setup

import (
	"context"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	deckdto "flipdeck/internal/modules/deck/dto"
	historydto "flipdeck/internal/modules/history/dto"
	apperrors "flipdeck/internal/platform/errors"
)

type fakePort struct {
	entries []historydto.Entry
	saved   []deckdto.Card
	text    string
	err     error
}

func (f fakePort) History(context.Context) ([]historydto.Entry, error) { return f.entries, nil }

func (f fakePort) Saved(context.Context) (deckdto.DeckOutput, error) {
	if f.err != nil {
		return deckdto.DeckOutput{}, f.err
	}
	return deckdto.DeckOutput{Cards: f.saved, Text: f.text}, nil
}

func TestReloadToleratesMissingDeck(t *testing.T) {
	t.Parallel()
	m := New(fakePort{
		entries: []historydto.Entry{{Date: "2026-10-14", Score: 80, Count: 5}},
		err:     apperrors.ErrNoSavedDeck,
	})
	msg, ok := m.Reload()().(LoadedMsg)
	if !ok {
		t.Fatalf("expected LoadedMsg")
	}
	if msg.Err != nil || msg.Saved != 0 || len(msg.Entries) != 1 {
		t.Fatalf("unexpected load result %+v", msg)
	}
}

func TestCtrlSRequestsStartWithPastedText(t *testing.T) {
	t.Parallel()
	m := New(fakePort{})
	m.input.SetValue("hola, hello\nperro, dog")
	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyCtrlS})
	if cmd == nil {
		t.Fatalf("expected a start request")
	}
	msg, ok := cmd().(StartRequestedMsg)
	if !ok || msg.Raw != "hola, hello\nperro, dog" {
		t.Fatalf("unexpected message %#v", cmd())
	}
}

func TestCtrlSWithEmptyInputWarns(t *testing.T) {
	t.Parallel()
	m := New(fakePort{})
	m, cmd := m.Update(tea.KeyMsg{Type: tea.KeyCtrlS})
	if cmd != nil {
		t.Fatalf("no request expected for empty input")
	}
	if m.warning == "" {
		t.Fatalf("expected a warning")
	}
}

func TestResumeNeedsSavedDeck(t *testing.T) {
	t.Parallel()
	m := New(fakePort{})
	m, cmd := m.Update(tea.KeyMsg{Type: tea.KeyCtrlR})
	if cmd != nil || m.warning == "" {
		t.Fatalf("resume without a saved deck must warn")
	}

	m, _ = m.Update(LoadedMsg{Saved: 3})
	_, cmd = m.Update(tea.KeyMsg{Type: tea.KeyCtrlR})
	if cmd == nil {
		t.Fatalf("expected a resume request")
	}
	if _, ok := cmd().(ResumeRequestedMsg); !ok {
		t.Fatalf("expected ResumeRequestedMsg")
	}
}

func TestEscLeavesPasteArea(t *testing.T) {
	t.Parallel()
	m := New(fakePort{})
	if !m.Typing() {
		t.Fatalf("paste area starts focused")
	}
	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyEsc})
	if m.Typing() {
		t.Fatalf("esc must blur the paste area")
	}
}

func TestSavedDeckPrefillsEmptyPasteArea(t *testing.T) {
	t.Parallel()
	port := fakePort{saved: []deckdto.Card{{Front: "hola", Back: "hello"}}, text: "hola, hello"}
	m := New(port)
	msg, ok := m.Reload()().(LoadedMsg)
	if !ok || msg.Text != "hola, hello" || msg.Saved != 1 {
		t.Fatalf("unexpected load result %+v", msg)
	}
	m, _ = m.Update(msg)
	if got := m.input.Value(); got != "hola, hello" {
		t.Fatalf("paste area should hold the saved deck, got %q", got)
	}

	typed := New(port)
	typed.input.SetValue("perro, dog")
	typed, _ = typed.Update(msg)
	if got := typed.input.Value(); got != "perro, dog" {
		t.Fatalf("typed text must not be replaced, got %q", got)
	}
}
