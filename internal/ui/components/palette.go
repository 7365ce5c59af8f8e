package components

import (
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"flipdeck/internal/ui/theme"
)

// PaletteSubmitMsg is emitted when the user confirms a command.
type PaletteSubmitMsg struct{ Input string }

// PaletteCancelMsg is emitted when the user presses esc.
type PaletteCancelMsg struct{}

var (
	paletteStyle = lipgloss.NewStyle().
			BorderStyle(lipgloss.RoundedBorder()).
			BorderForeground(theme.Peach).
			Background(theme.Mantle).
			Foreground(theme.Text).
			Padding(0, 1)

	usageStyle = lipgloss.NewStyle().Foreground(theme.Lavender)
	hintStyle  = lipgloss.NewStyle().Foreground(theme.Subtext0)
)

// Hint is one palette command with its usage line.
type Hint struct {
	Name  string
	Usage string
	Help  string
}

// hints must stay in sync with the switch in app/model.go executePalette.
var paletteHints = []Hint{
	{Name: "import", Usage: "import <file> [format]", Help: "parse a deck file and study it"},
	{Name: "study", Usage: "study", Help: "reshuffle and study the saved deck"},
	{Name: "resume", Usage: "resume", Help: "continue the saved deck in its saved order"},
	{Name: "history", Usage: "history", Help: "show recent scores"},
	{Name: "plugins", Usage: "plugins", Help: "list importer plugins"},
	{Name: "setup", Usage: "setup", Help: "back to the paste area"},
	{Name: "quit", Usage: "quit", Help: "leave flipdeck"},
}

// MatchHints returns up to limit hints whose name starts with the first
// word typed so far.
func MatchHints(input string, limit int) []Hint {
	word := strings.ToLower(strings.TrimSpace(input))
	if i := strings.IndexByte(word, ' '); i >= 0 {
		word = word[:i]
	}
	var matching []Hint
	for _, h := range paletteHints {
		if word != "" && !strings.HasPrefix(h.Name, word) {
			continue
		}
		matching = append(matching, h)
		if len(matching) == limit {
			break
		}
	}
	return matching
}

// Palette is a command-palette overlay backed by bubbles/textinput.
type Palette struct {
	input   textinput.Model
	visible bool
	width   int
}

func NewPalette() Palette {
	ti := textinput.New()
	ti.Placeholder = "import, study, resume…"
	ti.CharLimit = 256
	return Palette{input: ti}
}

func (p Palette) Visible() bool { return p.visible }

// Open shows the palette, clears the input, and returns the focus command.
func (p *Palette) Open() tea.Cmd {
	p.visible = true
	p.input.SetValue("")
	return p.input.Focus()
}

func (p *Palette) SetWidth(w int) { p.width = w }

func (p Palette) Update(msg tea.Msg) (Palette, tea.Cmd) {
	if !p.visible {
		return p, nil
	}
	if msg, ok := msg.(tea.KeyMsg); ok {
		switch msg.String() {
		case "esc":
			p.close()
			return p, func() tea.Msg { return PaletteCancelMsg{} }
		case "enter":
			val := strings.TrimSpace(p.input.Value())
			p.close()
			return p, func() tea.Msg { return PaletteSubmitMsg{Input: val} }
		case "tab":
			p.complete()
			return p, nil
		}
	}
	var cmd tea.Cmd
	p.input, cmd = p.input.Update(msg)
	return p, cmd
}

func (p Palette) View() string {
	if !p.visible {
		return ""
	}
	var sb strings.Builder
	sb.WriteString(theme.Title.Render("Command Palette") + "\n")
	sb.WriteString(": " + p.input.View() + "\n")
	if matching := MatchHints(p.input.Value(), 5); len(matching) > 0 {
		sb.WriteString("\n")
		for _, h := range matching {
			sb.WriteString("  " + usageStyle.Render(h.Usage) + "  " + hintStyle.Render(h.Help) + "\n")
		}
	}

	w := p.width
	if w < 20 {
		w = 64
	}
	return paletteStyle.Width(w - 2).Render(sb.String())
}

func (p *Palette) close() {
	p.visible = false
	p.input.Blur()
}

// complete fills in the command name when exactly one hint matches.
func (p *Palette) complete() {
	value := p.input.Value()
	if strings.Contains(strings.TrimSpace(value), " ") {
		return
	}
	if matching := MatchHints(value, 2); len(matching) == 1 {
		p.input.SetValue(matching[0].Name + " ")
		p.input.CursorEnd()
	}
}
