package components

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"
)

func TestMatchHintsUsesFirstWord(t *testing.T) {
	t.Parallel()
	got := MatchHints("re", 5)
	if len(got) != 1 || got[0].Name != "resume" {
		t.Fatalf("unexpected hints %v", got)
	}
	if got := MatchHints("import words.txt mdtable", 5); len(got) != 1 || got[0].Name != "import" {
		t.Fatalf("arguments must not hide the command hint: %v", got)
	}
	if all := MatchHints("", 3); len(all) != 3 {
		t.Fatalf("limit not applied: %v", all)
	}
}

func TestPaletteSubmitAndCancel(t *testing.T) {
	t.Parallel()
	p := NewPalette()
	p.Open()
	p.input.SetValue("  study ")
	p, cmd := p.Update(tea.KeyMsg{Type: tea.KeyEnter})
	if p.Visible() {
		t.Fatalf("enter must close the palette")
	}
	msg, ok := cmd().(PaletteSubmitMsg)
	if !ok || msg.Input != "study" {
		t.Fatalf("unexpected submit %#v", cmd())
	}

	p.Open()
	p, cmd = p.Update(tea.KeyMsg{Type: tea.KeyEsc})
	if p.Visible() {
		t.Fatalf("esc must close the palette")
	}
	if _, ok := cmd().(PaletteCancelMsg); !ok {
		t.Fatalf("expected cancel message")
	}
}

func TestTabCompletesUniqueCommand(t *testing.T) {
	t.Parallel()
	p := NewPalette()
	p.Open()
	p.input.SetValue("im")
	p, _ = p.Update(tea.KeyMsg{Type: tea.KeyTab})
	if got := p.input.Value(); got != "import " {
		t.Fatalf("expected completion, got %q", got)
	}

	p.input.SetValue("s")
	p, _ = p.Update(tea.KeyMsg{Type: tea.KeyTab})
	if got := p.input.Value(); got != "s" {
		t.Fatalf("ambiguous prefix must stay as typed, got %q", got)
	}
}
