package theme

import "github.com/charmbracelet/lipgloss"

var (
	Base     = lipgloss.Color("#1e1e2e")
	Mantle   = lipgloss.Color("#181825")
	Surface0 = lipgloss.Color("#313244")
	Surface1 = lipgloss.Color("#45475a")
	Text     = lipgloss.Color("#cdd6f4")
	Subtext0 = lipgloss.Color("#a6adc8")
	Lavender = lipgloss.Color("#b4befe")
	Sapphire = lipgloss.Color("#74c7ec")
	Green    = lipgloss.Color("#a6e3a1")
	Red      = lipgloss.Color("#f38ba8")
	Peach    = lipgloss.Color("#fab387")

	// Card faces. Feedback tints replace the face color while a drag
	// leans far enough to either side.
	CardFront    = lipgloss.Color("#ffffff")
	CardBack     = lipgloss.Color("#f8f9ff")
	CardPositive = lipgloss.Color("#e8f5e9")
	CardNegative = lipgloss.Color("#ffebee")
	CardInk      = lipgloss.Color("#1e1e2e")

	App = lipgloss.NewStyle().
		Background(Base).
		Foreground(Text).
		Padding(1, 2)

	Pane = lipgloss.NewStyle().
		BorderStyle(lipgloss.RoundedBorder()).
		BorderForeground(Surface1).
		Background(Mantle).
		Foreground(Text).
		Padding(1)

	PaneActive = Pane.BorderForeground(Lavender)

	Card = lipgloss.NewStyle().
		BorderStyle(lipgloss.RoundedBorder()).
		BorderForeground(Surface1).
		Foreground(CardInk).
		Align(lipgloss.Center, lipgloss.Center).
		Padding(1, 2)

	Title = lipgloss.NewStyle().Foreground(Sapphire).Bold(true)
	Muted = lipgloss.NewStyle().Foreground(Subtext0)
	Hot   = lipgloss.NewStyle().Foreground(Peach).Bold(true)
	Good  = lipgloss.NewStyle().Foreground(Green).Bold(true)
	Bad   = lipgloss.NewStyle().Foreground(Red).Bold(true)
)

// FaceColor picks the background for a card face from its feedback hint.
func FaceColor(back bool, feedback string) lipgloss.Color {
	switch feedback {
	case "positive":
		return CardPositive
	case "negative":
		return CardNegative
	}
	if back {
		return CardBack
	}
	return CardFront
}
