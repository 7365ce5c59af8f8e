package results

import (
	"context"
	"fmt"

	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/glamour"
	"github.com/charmbracelet/lipgloss"

	historydto "flipdeck/internal/modules/history/dto"
	studydto "flipdeck/internal/modules/study/dto"
	"flipdeck/internal/ui/theme"
)

// ─── port ────────────────────────────────────────────────────────────────────

type Port interface {
	Summary(ctx context.Context, input historydto.RecordInput) (historydto.SummaryOutput, error)
}

// ─── messages ────────────────────────────────────────────────────────────────

// SummaryMsg is sent when the results markdown has been built.
type SummaryMsg struct {
	Out historydto.SummaryOutput
	Err error
}

// ─── model ───────────────────────────────────────────────────────────────────

// Model shows the score of a finished session and the cards to revisit.
type Model struct {
	port     Port
	viewport viewport.Model
	renderer *glamour.TermRenderer
	result   studydto.ResultOutput
	summary  historydto.SummaryOutput
	width    int
	height   int
}

func New(port Port) Model {
	r, _ := glamour.NewTermRenderer(
		glamour.WithStylePath("dark"),
		glamour.WithWordWrap(0),
	)
	return Model{port: port, viewport: viewport.New(0, 0), renderer: r}
}

func (m Model) Init() tea.Cmd { return nil }

// Show switches the view to result and loads its summary.
func (m *Model) Show(result studydto.ResultOutput) tea.Cmd {
	m.result = result
	m.summary = historydto.SummaryOutput{}
	m.viewport.SetContent(theme.Muted.Render("building summary…"))
	return m.summaryCmd(result)
}

func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.resize()
		if m.summary.Markdown != "" {
			m.viewport.SetContent(m.render(m.summary.Markdown))
		}

	case SummaryMsg:
		if msg.Err != nil {
			m.viewport.SetContent(theme.Hot.Render("Error: " + msg.Err.Error()))
			return m, nil
		}
		m.summary = msg.Out
		m.viewport.SetContent(m.render(msg.Out.Markdown))
		m.viewport.GotoTop()
	}

	var cmd tea.Cmd
	m.viewport, cmd = m.viewport.Update(msg)
	return m, cmd
}

func (m Model) View() string {
	score := fmt.Sprintf("%d%%", m.result.Percent)
	banner := theme.Hot.Render(score)
	if m.result.Percent >= 80 {
		banner = theme.Good.Render(score)
	}
	header := lipgloss.JoinHorizontal(lipgloss.Top,
		theme.Title.Render("Results  "),
		banner,
		theme.Muted.Render(fmt.Sprintf("  %d known · %d to review", m.result.KnownCount, m.result.UnknownCount)),
	)
	if m.summary.Verdict != "" {
		header += "\n" + theme.Title.Render(m.summary.Verdict)
	}
	footer := theme.Muted.Render("enter: new deck  ↑/↓: scroll")
	return lipgloss.JoinVertical(lipgloss.Left, header, "", m.viewport.View(), footer)
}

// ─── private ─────────────────────────────────────────────────────────────────

func (m *Model) resize() {
	m.viewport.Width = m.width
	m.viewport.Height = max(m.height-5, 1)
	if r, err := glamour.NewTermRenderer(
		glamour.WithStylePath("dark"),
		glamour.WithWordWrap(m.width),
	); err == nil {
		m.renderer = r
	}
}

func (m Model) render(markdown string) string {
	if m.renderer != nil {
		if out, err := m.renderer.Render(markdown); err == nil {
			return out
		}
	}
	return markdown
}

func (m Model) summaryCmd(result studydto.ResultOutput) tea.Cmd {
	return func() tea.Msg {
		if m.port == nil {
			return SummaryMsg{}
		}
		out, err := m.port.Summary(context.Background(), recordInput(result))
		return SummaryMsg{Out: out, Err: err}
	}
}

func recordInput(r studydto.ResultOutput) historydto.RecordInput {
	return historydto.RecordInput{
		SessionID:    r.SessionID,
		Percent:      r.Percent,
		KnownCount:   r.KnownCount,
		UnknownCount: r.UnknownCount,
		Total:        r.Total,
		KnownCards:   cards(r.KnownCards),
		UnknownCards: cards(r.UnknownCards),
	}
}

func cards(in []studydto.Card) []historydto.Card {
	out := make([]historydto.Card, 0, len(in))
	for _, c := range in {
		out = append(out, historydto.Card{Front: c.Front, Back: c.Back})
	}
	return out
}
