package study

import (
	"context"
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/progress"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	studydto "flipdeck/internal/modules/study/dto"
	"flipdeck/internal/ui/theme"
)

// ─── port ────────────────────────────────────────────────────────────────────

// Port is the minimal interface this view needs from the study use-case.
// Calls run inside Update: the study controller expects a single caller.
type Port interface {
	Press(ctx context.Context, pointerX float64) (studydto.StepOutput, error)
	Motion(ctx context.Context, pointerX float64) (studydto.StepOutput, error)
	Release(ctx context.Context) (studydto.StepOutput, error)
	Flip(ctx context.Context) (studydto.StepOutput, error)
	Know(ctx context.Context) (studydto.StepOutput, error)
	DontKnow(ctx context.Context) (studydto.StepOutput, error)
	Fire(ctx context.Context, timer studydto.Timer) (studydto.StepOutput, error)
}

// ─── messages ────────────────────────────────────────────────────────────────

// TimerFiredMsg carries a timer back to the controller once it elapsed.
type TimerFiredMsg struct{ Timer studydto.Timer }

// FinishedMsg is sent when the last card resolved.
type FinishedMsg struct {
	Result studydto.ResultOutput
	Err    error
}

// ─── key bindings ────────────────────────────────────────────────────────────

type keyMap struct {
	Know     key.Binding
	DontKnow key.Binding
	Flip     key.Binding
}

func defaultKeys() keyMap {
	return keyMap{
		Know:     key.NewBinding(key.WithKeys("right", "l", "y"), key.WithHelp("→/y", "know")),
		DontKnow: key.NewBinding(key.WithKeys("left", "h", "n"), key.WithHelp("←/n", "don't know")),
		Flip:     key.NewBinding(key.WithKeys(" ", "f"), key.WithHelp("space", "flip")),
	}
}

// ─── model ───────────────────────────────────────────────────────────────────

// Model renders the card on screen and turns keys, mouse drags and elapsed
// timers into controller calls.
type Model struct {
	port      Port
	keys      keyMap
	progress  progress.Model
	frame     studydto.FrameOutput
	cellWidth float64
	status    string
	width     int
	height    int
}

// New creates a study Model. cellWidth converts terminal columns into the
// pixel distances the gesture thresholds are expressed in.
func New(port Port, cellWidth float64) Model {
	if cellWidth <= 0 {
		cellWidth = 8
	}
	bar := progress.New(progress.WithSolidFill(string(theme.Lavender)), progress.WithoutPercentage())
	return Model{
		port:      port,
		keys:      defaultKeys(),
		progress:  bar,
		cellWidth: cellWidth,
	}
}

func (m Model) Init() tea.Cmd { return nil }

// Load shows the first frame of a started or resumed session and schedules
// its timers.
func (m *Model) Load(out studydto.StepOutput) tea.Cmd {
	m.status = ""
	m.frame = out.Frame
	return schedule(out.Timers)
}

// Frame is the last frame the controller produced.
func (m Model) Frame() studydto.FrameOutput { return m.frame }

// Dragging reports whether a pointer drag is in progress.
func (m Model) Dragging() bool { return m.frame.Dragging }

func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	ctx := context.Background()

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.progress.Width = max(m.width-16, 10)

	case TimerFiredMsg:
		return m.apply(m.port.Fire(ctx, msg.Timer))

	case tea.MouseMsg:
		switch {
		case msg.Action == tea.MouseActionPress && msg.Button == tea.MouseButtonLeft:
			return m.apply(m.port.Press(ctx, m.pointerX(msg.X)))
		case msg.Action == tea.MouseActionMotion && m.frame.Dragging:
			return m.apply(m.port.Motion(ctx, m.pointerX(msg.X)))
		case msg.Action == tea.MouseActionRelease && m.frame.Dragging:
			return m.apply(m.port.Release(ctx))
		}

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Know):
			return m.apply(m.port.Know(ctx))
		case key.Matches(msg, m.keys.DontKnow):
			return m.apply(m.port.DontKnow(ctx))
		case key.Matches(msg, m.keys.Flip):
			return m.apply(m.port.Flip(ctx))
		}
	}
	return m, nil
}

func (m Model) View() string {
	f := m.frame
	if f.Total == 0 {
		return theme.Muted.Render("No session running.")
	}
	if f.Done {
		return theme.Title.Render("Session complete") + theme.Muted.Render("  saving results…")
	}

	header := theme.Title.Render("Study") +
		theme.Muted.Render(fmt.Sprintf("  card %d of %d", min(f.Index+1, f.Total), f.Total))
	bar := m.progress.ViewAs(f.Progress)

	card := m.renderCard()
	body := m.place(card)

	hints := theme.Muted.Render("drag or ←/→ to answer  ·  click or space to flip")
	if m.status != "" {
		hints = theme.Hot.Render(m.status)
	}
	return lipgloss.JoinVertical(lipgloss.Left, header, bar, "", body, "", hints)
}

// ─── private ─────────────────────────────────────────────────────────────────

func (m Model) apply(out studydto.StepOutput, err error) (Model, tea.Cmd) {
	m.frame = out.Frame
	m.status = ""
	if err != nil {
		m.status = err.Error()
	}
	if out.Finished {
		result := out.Result
		return m, func() tea.Msg { return FinishedMsg{Result: result, Err: err} }
	}
	return m, schedule(out.Timers)
}

func (m Model) pointerX(column int) float64 {
	return float64(column) * m.cellWidth
}

func (m Model) cardWidth() int {
	w := 44
	if m.width > 0 && m.width-8 < w {
		w = m.width - 8
	}
	scaled := int(math.Round(float64(w) * m.frame.Scale))
	return max(scaled, 12)
}

func (m Model) renderCard() string {
	f := m.frame
	text, feedback := f.Front, f.FrontFeedback
	if f.Flipped {
		text, feedback = f.Back, f.BackFeedback
	}
	label := "TERM"
	if f.Flipped {
		label = "DEFINITION"
	}

	style := theme.Card.
		Width(m.cardWidth()).
		Height(7).
		Background(theme.FaceColor(f.Flipped, feedback))
	switch {
	case f.Phase == "flipping":
		style = style.BorderForeground(theme.Lavender)
	case feedback == "positive":
		style = style.BorderForeground(theme.Green)
	case feedback == "negative":
		style = style.BorderForeground(theme.Red)
	}

	content := lipgloss.JoinVertical(lipgloss.Center,
		lipgloss.NewStyle().Foreground(theme.Surface1).Render(label),
		"",
		lipgloss.NewStyle().Bold(true).Render(text),
	)
	return style.Render(content)
}

// place positions the card horizontally by its TranslateX and vertically by
// its TranslateY. Terminal cells are about twice as tall as they are wide.
func (m Model) place(card string) string {
	w := lipgloss.Width(card)
	width := m.width
	if width < w {
		width = w
	}
	dx := int(math.Round(m.frame.TranslateX / m.cellWidth))
	dy := int(math.Round(m.frame.TranslateY / (2 * m.cellWidth)))

	left := (width-w)/2 + dx
	left = max(0, min(left, width-w))

	lean := ""
	switch {
	case m.frame.FrontFeedback == "positive" || m.frame.BackFeedback == "positive":
		lean = theme.Good.Render("know →")
	case m.frame.FrontFeedback == "negative" || m.frame.BackFeedback == "negative":
		lean = theme.Bad.Render("← again")
	}

	var sb strings.Builder
	for i := 0; i < max(dy, 0); i++ {
		sb.WriteString("\n")
	}
	for i, line := range strings.Split(card, "\n") {
		sb.WriteString(strings.Repeat(" ", left))
		sb.WriteString(line)
		if i == 0 && lean != "" {
			sb.WriteString("  " + lean)
		}
		sb.WriteString("\n")
	}
	return strings.TrimSuffix(sb.String(), "\n")
}

func schedule(timers []studydto.Timer) tea.Cmd {
	if len(timers) == 0 {
		return nil
	}
	cmds := make([]tea.Cmd, 0, len(timers))
	for _, t := range timers {
		cmds = append(cmds, tea.Tick(t.After, func(time.Time) tea.Msg {
			return TimerFiredMsg{Timer: t}
		}))
	}
	return tea.Batch(cmds...)
}
