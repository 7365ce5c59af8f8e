package setup

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/bubbles/textarea"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	deckdto "flipdeck/internal/modules/deck/dto"
	historydto "flipdeck/internal/modules/history/dto"
	apperrors "flipdeck/internal/platform/errors"
	"flipdeck/internal/ui/theme"
)

// ─── port ────────────────────────────────────────────────────────────────────

// Port is what the setup screen reads: past scores and the saved deck.
type Port interface {
	History(ctx context.Context) ([]historydto.Entry, error)
	Saved(ctx context.Context) (deckdto.DeckOutput, error)
}

// ─── messages ────────────────────────────────────────────────────────────────

// LoadedMsg is sent when history and the saved deck finish loading.
type LoadedMsg struct {
	Entries []historydto.Entry
	Saved   int
	// Text prefills an empty paste area with the saved deck.
	Text string
	Err  error
}

// StartRequestedMsg asks the parent to import Raw and start a session.
type StartRequestedMsg struct{ Raw string }

// ResumeRequestedMsg asks the parent to resume the saved deck.
type ResumeRequestedMsg struct{}

// ─── model ───────────────────────────────────────────────────────────────────

// Model is the setup screen: a paste area for "term, definition" lines,
// the resume shortcut and the recent scores.
type Model struct {
	port    Port
	input   textarea.Model
	history table.Model
	spinner spinner.Model
	entries []historydto.Entry
	saved   int
	busy    bool
	warning string
	width   int
	height  int
}

func New(port Port) Model {
	ta := textarea.New()
	ta.Placeholder = "hola, hello\nperro, dog\ngato\tcat"
	ta.ShowLineNumbers = false
	ta.CharLimit = 0
	ta.MaxHeight = 0
	ta.Focus()

	tbl := table.New(
		table.WithColumns([]table.Column{
			{Title: "Date", Width: 12},
			{Title: "Score", Width: 7},
			{Title: "Cards", Width: 7},
		}),
		table.WithHeight(6),
	)
	styles := table.DefaultStyles()
	styles.Header = styles.Header.Foreground(theme.Sapphire).Bold(true)
	styles.Selected = lipgloss.NewStyle()
	tbl.SetStyles(styles)

	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = lipgloss.NewStyle().Foreground(theme.Lavender)

	return Model{port: port, input: ta, history: tbl, spinner: sp}
}

func (m Model) Init() tea.Cmd {
	return tea.Batch(textarea.Blink, m.Reload())
}

// Reload refreshes history and the saved deck.
func (m Model) Reload() tea.Cmd {
	return func() tea.Msg {
		if m.port == nil {
			return LoadedMsg{}
		}
		ctx := context.Background()
		entries, err := m.port.History(ctx)
		if err != nil {
			return LoadedMsg{Err: fmt.Errorf("load history: %w", err)}
		}
		deck, err := m.port.Saved(ctx)
		if err != nil && !errors.Is(err, apperrors.ErrNoSavedDeck) {
			return LoadedMsg{Entries: entries, Err: fmt.Errorf("load saved deck: %w", err)}
		}
		return LoadedMsg{Entries: entries, Saved: len(deck.Cards), Text: deck.Text}
	}
}

// Typing reports whether the paste area holds focus, in which case global
// key bindings must yield.
func (m Model) Typing() bool { return m.input.Focused() }

// SetBusy shows the spinner while the parent imports a deck.
func (m *Model) SetBusy(busy bool) tea.Cmd {
	m.busy = busy
	if busy {
		return m.spinner.Tick
	}
	return nil
}

// Warn shows a user-facing warning under the paste area.
func (m *Model) Warn(text string) { m.warning = text }

// Focus returns keyboard focus to the paste area.
func (m *Model) Focus() tea.Cmd { return m.input.Focus() }

func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.input.SetWidth(max(m.width-6, 20))
		m.input.SetHeight(max(m.height-16, 4))

	case LoadedMsg:
		if msg.Err != nil {
			m.warning = msg.Err.Error()
		}
		m.entries = msg.Entries
		m.saved = msg.Saved
		if msg.Text != "" && strings.TrimSpace(m.input.Value()) == "" {
			m.input.SetValue(msg.Text)
		}
		m.history.SetRows(rows(msg.Entries))

	case spinner.TickMsg:
		if m.busy {
			var cmd tea.Cmd
			m.spinner, cmd = m.spinner.Update(msg)
			cmds = append(cmds, cmd)
		}

	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+s":
			if m.busy {
				return m, nil
			}
			raw := m.input.Value()
			if strings.TrimSpace(raw) == "" {
				m.warning = "paste at least one \"term, definition\" line"
				return m, nil
			}
			m.warning = ""
			return m, func() tea.Msg { return StartRequestedMsg{Raw: raw} }
		case "ctrl+r":
			if m.saved == 0 {
				m.warning = "no saved deck to resume"
				return m, nil
			}
			m.warning = ""
			return m, func() tea.Msg { return ResumeRequestedMsg{} }
		case "esc":
			if m.input.Focused() {
				m.input.Blur()
				return m, nil
			}
		case "i":
			if !m.input.Focused() {
				cmd := m.input.Focus()
				return m, cmd
			}
		}
		if m.input.Focused() {
			var cmd tea.Cmd
			m.input, cmd = m.input.Update(msg)
			cmds = append(cmds, cmd)
		}

	default:
		var cmd tea.Cmd
		m.input, cmd = m.input.Update(msg)
		cmds = append(cmds, cmd)
	}

	return m, tea.Batch(cmds...)
}

func (m Model) View() string {
	var sb strings.Builder
	sb.WriteString(theme.Title.Render("New deck"))
	sb.WriteString(theme.Muted.Render("  one card per line: term, definition"))
	sb.WriteString("\n")
	sb.WriteString(m.input.View())
	sb.WriteString("\n")

	switch {
	case m.busy:
		sb.WriteString(m.spinner.View() + " importing…")
	case m.warning != "":
		sb.WriteString(theme.Hot.Render(m.warning))
	default:
		hint := "ctrl+s: study  esc: leave paste area"
		if m.saved > 0 {
			hint += fmt.Sprintf("  ctrl+r: resume (%d cards)", m.saved)
		}
		sb.WriteString(theme.Muted.Render(hint))
	}
	sb.WriteString("\n\n")

	sb.WriteString(theme.Title.Render("Recent scores") + "\n")
	if len(m.entries) == 0 {
		sb.WriteString(theme.Muted.Render("No sessions yet."))
	} else {
		sb.WriteString(m.history.View())
	}
	return sb.String()
}

// ─── private ─────────────────────────────────────────────────────────────────

func rows(entries []historydto.Entry) []table.Row {
	out := make([]table.Row, 0, len(entries))
	for _, e := range entries {
		out = append(out, table.Row{e.Date, fmt.Sprintf("%d%%", e.Score), fmt.Sprintf("%d", e.Count)})
	}
	return out
}
