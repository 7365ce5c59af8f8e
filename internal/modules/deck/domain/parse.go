package domain

import "strings"

const FormatText = "text"

// ParseText reads one card per line as "front, back" or "front<TAB>back".
// A line with a comma splits at its first comma, otherwise at its first tab.
// Lines that do not yield both halves are dropped.
func ParseText(raw string) []Card {
	lines := strings.Split(strings.ReplaceAll(raw, "\r\n", "\n"), "\n")
	cards := make([]Card, 0, len(lines))
	for _, line := range lines {
		card, ok := ParseLine(line)
		if ok {
			cards = append(cards, card)
		}
	}
	return cards
}

// CountLines counts the non-blank lines of raw.
func CountLines(raw string) int {
	n := 0
	for _, line := range strings.Split(raw, "\n") {
		if strings.TrimSpace(line) != "" {
			n++
		}
	}
	return n
}

func ParseLine(line string) (Card, bool) {
	if strings.TrimSpace(line) == "" {
		return Card{}, false
	}
	sep := "\t"
	if strings.Contains(line, ",") {
		sep = ","
	}
	front, back, found := strings.Cut(line, sep)
	if !found {
		return Card{}, false
	}
	card := Card{Front: strings.TrimSpace(front), Back: strings.TrimSpace(back)}
	if !card.Valid() {
		return Card{}, false
	}
	return card, true
}

// FormatLines renders cards back into the one-per-line text form.
func FormatLines(cards []Card) string {
	lines := make([]string, 0, len(cards))
	for _, c := range cards {
		lines = append(lines, c.Front+", "+c.Back)
	}
	return strings.Join(lines, "\n")
}
