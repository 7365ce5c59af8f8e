package app

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	deckdto "flipdeck/internal/modules/deck/dto"
	historydto "flipdeck/internal/modules/history/dto"
	importerdto "flipdeck/internal/modules/importer/dto"
	studydto "flipdeck/internal/modules/study/dto"
	apperrors "flipdeck/internal/platform/errors"
	"flipdeck/internal/ui/components"
	"flipdeck/internal/ui/theme"
	resultsview "flipdeck/internal/ui/views/results"
	setupview "flipdeck/internal/ui/views/setup"
	studyview "flipdeck/internal/ui/views/study"
)

// ─── ports ───────────────────────────────────────────────────────────────────
// Each port is the minimal interface that this orchestration layer requires.
// Sub-view ports are defined in their own packages and narrowed further.

type studyPort interface {
	studyview.Port
	Start(ctx context.Context, cards []studydto.Card) (studydto.StepOutput, error)
	Resume(ctx context.Context) (studydto.StepOutput, error)
}

type deckPort interface {
	Import(ctx context.Context, raw, format string, save bool) (deckdto.DeckOutput, error)
	Saved(ctx context.Context) (deckdto.DeckOutput, error)
}

type historyPort interface {
	List(ctx context.Context) ([]historydto.Entry, error)
	Summary(ctx context.Context, input historydto.RecordInput) (historydto.SummaryOutput, error)
}

type importerPort interface {
	List(ctx context.Context) ([]importerdto.PluginInfo, error)
}

// ─── screens ─────────────────────────────────────────────────────────────────

type screenID int

const (
	screenSetup screenID = iota
	screenStudy
	screenResults
)

var screenLabels = map[screenID]string{
	screenSetup:   "Setup",
	screenStudy:   "Study",
	screenResults: "Results",
}

// Launch selects what the UI does right after start-up.
type Launch int

const (
	LaunchSetup Launch = iota
	LaunchSaved
	LaunchResume
)

// ─── async messages ───────────────────────────────────────────────────────────

type deckImportedMsg struct {
	deck deckdto.DeckOutput
	err  error
}

type savedDeckMsg struct {
	deck deckdto.DeckOutput
	err  error
}

type pluginsListedMsg struct {
	plugins []importerdto.PluginInfo
	err     error
}

// ─── key bindings ─────────────────────────────────────────────────────────────

type keyMap struct {
	Help     key.Binding
	Palette  key.Binding
	Quit     key.Binding
	Back     key.Binding
	Start    key.Binding
	Resume   key.Binding
	Know     key.Binding
	DontKnow key.Binding
	Flip     key.Binding
}

func defaultKeys() keyMap {
	return keyMap{
		Help:     key.NewBinding(key.WithKeys("?"), key.WithHelp("?", "help")),
		Palette:  key.NewBinding(key.WithKeys(":"), key.WithHelp(":", "palette")),
		Quit:     key.NewBinding(key.WithKeys("ctrl+c", "q"), key.WithHelp("q", "quit")),
		Back:     key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "new deck")),
		Start:    key.NewBinding(key.WithKeys("ctrl+s"), key.WithHelp("ctrl+s", "study pasted deck")),
		Resume:   key.NewBinding(key.WithKeys("ctrl+r"), key.WithHelp("ctrl+r", "resume saved deck")),
		Know:     key.NewBinding(key.WithKeys("right", "l", "y"), key.WithHelp("→/l/y", "know")),
		DontKnow: key.NewBinding(key.WithKeys("left", "h", "n"), key.WithHelp("←/h/n", "don't know")),
		Flip:     key.NewBinding(key.WithKeys(" ", "f"), key.WithHelp("space/f", "flip")),
	}
}

func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Help, k.Palette, k.Quit}
}

func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Start, k.Resume, k.Back},
		{k.Know, k.DontKnow, k.Flip},
		{k.Help, k.Palette, k.Quit},
	}
}

// ─── model ───────────────────────────────────────────────────────────────────

// Model is the root Bubble Tea model. It owns screen routing, the global
// help overlay and the command palette. Business logic lives behind the
// ports; rendering is delegated to the screen views.
type Model struct {
	study    studyPort
	deck     deckPort
	history  historyPort
	importer importerPort

	setupView   setupview.Model
	studyView   studyview.Model
	resultsView resultsview.Model

	launch   Launch
	screen   screenID
	keys     keyMap
	help     help.Model
	showHelp bool
	palette  components.Palette
	status   string
	width    int
	height   int
}

// ─── constructor ─────────────────────────────────────────────────────────────

func NewModel(
	study studyPort,
	deck deckPort,
	history historyPort,
	importer importerPort,
	cellWidth float64,
) Model {
	return Model{
		study:       study,
		deck:        deck,
		history:     history,
		importer:    importer,
		setupView:   setupview.New(setupPortBridge{deck: deck, history: history}),
		studyView:   studyview.New(study, cellWidth),
		resultsView: resultsview.New(history),
		screen:      screenSetup,
		keys:        defaultKeys(),
		help:        help.New(),
		palette:     components.NewPalette(),
		status:      "ready",
	}
}

// WithLaunch makes Init start the saved deck or resume it.
func (m Model) WithLaunch(launch Launch) Model {
	m.launch = launch
	return m
}

func (m Model) Init() tea.Cmd {
	switch m.launch {
	case LaunchSaved:
		return tea.Batch(m.setupView.Init(), m.savedCmd())
	case LaunchResume:
		return tea.Batch(m.setupView.Init(), func() tea.Msg { return setupview.ResumeRequestedMsg{} })
	default:
		return m.setupView.Init()
	}
}

// ─── update ───────────────────────────────────────────────────────────────────

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd

	// The palette intercepts all input while open.
	if m.palette.Visible() {
		if _, ok := msg.(tea.KeyMsg); ok {
			var cmd tea.Cmd
			m.palette, cmd = m.palette.Update(msg)
			return m, cmd
		}
	}

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.palette.SetWidth(min(m.width-4, 80))
		m.help.Width = m.width
		m.propagateSize()
		return m, nil

	// Timers and finish notices belong to the study view whatever screen
	// is showing.
	case studyview.TimerFiredMsg:
		var cmd tea.Cmd
		m.studyView, cmd = m.studyView.Update(msg)
		return m, cmd

	case studyview.FinishedMsg:
		m.screen = screenResults
		m.status = fmt.Sprintf("session finished: %d%%", msg.Result.Percent)
		if msg.Err != nil {
			m.status = "results not saved: " + msg.Err.Error()
		}
		return m, m.resultsView.Show(msg.Result)

	case setupview.StartRequestedMsg:
		return m, tea.Batch(m.setupView.SetBusy(true), m.importCmd(msg.Raw, ""))

	case setupview.ResumeRequestedMsg:
		return m.resume()

	case deckImportedMsg:
		m.setupView.SetBusy(false)
		if msg.err != nil {
			m.setupView.Warn(deckWarning(msg.err))
			m.status = "import failed"
			return m, nil
		}
		next, cmd := m.start(msg.deck.Cards)
		if msg.deck.Dropped > 0 && next.screen == screenStudy {
			next.status += fmt.Sprintf(", %s skipped", plural(msg.deck.Dropped, "malformed line"))
		}
		return next, cmd

	case savedDeckMsg:
		if msg.err != nil {
			m.status = deckWarning(msg.err)
			return m, nil
		}
		return m.start(msg.deck.Cards)

	case pluginsListedMsg:
		if msg.err != nil {
			m.status = "plugins: " + msg.err.Error()
			return m, nil
		}
		m.status = pluginSummary(msg.plugins)
		return m, nil

	case components.PaletteSubmitMsg:
		return m.executePalette(msg.Input)

	case components.PaletteCancelMsg:
		m.status = "ready"
		return m, nil

	case tea.KeyMsg:
		if m.showHelp {
			if msg.String() == "?" || msg.String() == "esc" {
				m.showHelp = false
			}
			return m, nil
		}
		if msg.String() == "ctrl+c" {
			return m, tea.Quit
		}

		// Yield to the paste area while it has focus.
		if !(m.screen == screenSetup && m.setupView.Typing()) {
			switch msg.String() {
			case "q":
				if m.screen == screenStudy {
					return m.backToSetup("session saved; ctrl+r resumes it")
				}
				return m, tea.Quit
			case "?":
				m.showHelp = !m.showHelp
				return m, nil
			case ":":
				cmds = append(cmds, m.palette.Open())
				return m, tea.Batch(cmds...)
			case "enter":
				if m.screen == screenResults {
					return m.backToSetup("ready")
				}
			}
		}
	}

	// Propagate the message to the active screen.
	var screenCmd tea.Cmd
	switch m.screen {
	case screenSetup:
		m.setupView, screenCmd = m.setupView.Update(msg)
	case screenStudy:
		m.studyView, screenCmd = m.studyView.Update(msg)
	case screenResults:
		m.resultsView, screenCmd = m.resultsView.Update(msg)
	}
	cmds = append(cmds, screenCmd)

	return m, tea.Batch(cmds...)
}

// ─── view ────────────────────────────────────────────────────────────────────

func (m Model) View() string {
	titleBar := m.renderTitleBar()
	statusBar := m.renderStatusBar()
	contentH := m.height - lipgloss.Height(titleBar) - lipgloss.Height(statusBar)
	if contentH < 1 {
		contentH = 1
	}

	var content string
	switch {
	case m.showHelp:
		content = lipgloss.NewStyle().Width(m.width).Height(contentH).
			Render(m.help.View(m.keys))
	case m.palette.Visible():
		content = lipgloss.Place(m.width, contentH,
			lipgloss.Center, lipgloss.Center, m.palette.View())
	default:
		content = lipgloss.NewStyle().Height(contentH).Render(m.activeView())
	}

	return lipgloss.JoinVertical(lipgloss.Left, titleBar, content, statusBar)
}

func (m Model) activeView() string {
	switch m.screen {
	case screenSetup:
		return m.setupView.View()
	case screenStudy:
		return m.studyView.View()
	case screenResults:
		return m.resultsView.View()
	}
	return ""
}

func (m Model) renderTitleBar() string {
	bar := "flipdeck  " + theme.Hot.Render(" "+screenLabels[m.screen]+" ")
	return lipgloss.NewStyle().Background(theme.Mantle).Width(m.width).Render(bar) + "\n"
}

func (m Model) renderStatusBar() string {
	left := m.status
	if m.screen == screenStudy {
		f := m.studyView.Frame()
		left = theme.Hot.Render(fmt.Sprintf("● %.0f%%", f.Progress*100)) + "  " + left
	}
	right := theme.Muted.Render("?:help  :::palette  q:quit")
	gap := m.width - lipgloss.Width(left) - lipgloss.Width(right)
	if gap < 1 {
		gap = 1
	}
	bar := left + strings.Repeat(" ", gap) + right
	return "\n" + lipgloss.NewStyle().Background(theme.Mantle).Width(m.width).Render(bar)
}

// ─── palette execution ────────────────────────────────────────────────────────

func (m Model) executePalette(input string) (tea.Model, tea.Cmd) {
	if strings.TrimSpace(input) == "" {
		return m, nil
	}
	parts := strings.Fields(input)

	switch parts[0] {
	case "import":
		if len(parts) < 2 {
			m.status = "usage: import <file> [format]"
			return m, nil
		}
		raw, err := os.ReadFile(parts[1])
		if err != nil {
			m.status = "import: " + err.Error()
			return m, nil
		}
		format := ""
		if len(parts) >= 3 {
			format = parts[2]
		}
		m.screen = screenSetup
		return m, tea.Batch(m.setupView.SetBusy(true), m.importCmd(string(raw), format))

	case "study":
		return m, m.savedCmd()

	case "resume":
		return m.resume()

	case "history", "setup":
		return m.backToSetup("ready")

	case "plugins":
		return m, m.pluginsCmd()

	case "quit":
		return m, tea.Quit

	default:
		m.status = "unknown command: " + parts[0]
	}
	return m, nil
}

// ─── helpers ─────────────────────────────────────────────────────────────────

// start runs inside Update so the study controller only ever sees the
// event loop.
func (m Model) start(cards []deckdto.Card) (Model, tea.Cmd) {
	out, err := m.study.Start(context.Background(), toStudyCards(cards))
	if err != nil {
		m.setupView.Warn(deckWarning(err))
		m.screen = screenSetup
		return m, nil
	}
	cmd := m.studyView.Load(out)
	m.screen = screenStudy
	m.status = "studying " + plural(out.Frame.Total, "card")
	return m, cmd
}

func (m Model) resume() (tea.Model, tea.Cmd) {
	out, err := m.study.Resume(context.Background())
	if err != nil {
		m.status = deckWarning(err)
		m.setupView.Warn(m.status)
		return m, nil
	}
	cmd := m.studyView.Load(out)
	m.screen = screenStudy
	m.status = "resumed " + plural(out.Frame.Total, "card")
	return m, cmd
}

func plural(n int, noun string) string {
	if n == 1 {
		return "1 " + noun
	}
	return fmt.Sprintf("%d %ss", n, noun)
}

func (m Model) backToSetup(status string) (tea.Model, tea.Cmd) {
	m.screen = screenSetup
	m.status = status
	return m, tea.Batch(m.setupView.Reload(), m.setupView.Focus())
}

func (m *Model) propagateSize() {
	sz := tea.WindowSizeMsg{Width: m.width, Height: m.height - 3}
	m.setupView, _ = m.setupView.Update(sz)
	m.studyView, _ = m.studyView.Update(sz)
	m.resultsView, _ = m.resultsView.Update(sz)
}

func deckWarning(err error) string {
	switch {
	case errors.Is(err, apperrors.ErrEmptyDeck):
		return "no cards found: use one \"term, definition\" per line"
	case errors.Is(err, apperrors.ErrNoSavedDeck):
		return "no saved deck to resume"
	default:
		return err.Error()
	}
}

func pluginSummary(plugins []importerdto.PluginInfo) string {
	if len(plugins) == 0 {
		return "no importer plugins installed"
	}
	names := make([]string, 0, len(plugins))
	for _, p := range plugins {
		name := p.Name
		if !p.Enabled {
			name += " (disabled)"
		}
		names = append(names, name)
	}
	return "plugins: " + strings.Join(names, ", ")
}

func toStudyCards(cards []deckdto.Card) []studydto.Card {
	out := make([]studydto.Card, 0, len(cards))
	for _, c := range cards {
		out = append(out, studydto.Card{Front: c.Front, Back: c.Back})
	}
	return out
}

// ─── async commands ───────────────────────────────────────────────────────────

func (m Model) importCmd(raw, format string) tea.Cmd {
	return func() tea.Msg {
		deck, err := m.deck.Import(context.Background(), raw, format, false)
		return deckImportedMsg{deck: deck, err: err}
	}
}

func (m Model) savedCmd() tea.Cmd {
	return func() tea.Msg {
		deck, err := m.deck.Saved(context.Background())
		return savedDeckMsg{deck: deck, err: err}
	}
}

func (m Model) pluginsCmd() tea.Cmd {
	return func() tea.Msg {
		if m.importer == nil {
			return pluginsListedMsg{err: fmt.Errorf("importer not configured")}
		}
		plugins, err := m.importer.List(context.Background())
		return pluginsListedMsg{plugins: plugins, err: err}
	}
}

// ─── port bridges ─────────────────────────────────────────────────────────────

type setupPortBridge struct {
	deck    deckPort
	history historyPort
}

func (b setupPortBridge) History(ctx context.Context) ([]historydto.Entry, error) {
	return b.history.List(ctx)
}

func (b setupPortBridge) Saved(ctx context.Context) (deckdto.DeckOutput, error) {
	return b.deck.Saved(ctx)
}
