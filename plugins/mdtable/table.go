package main

import (
	"regexp"
	"strings"

	importerrpc "flipdeck/internal/modules/importer/adapter/out/rpc"
)

var separatorCell = regexp.MustCompile(`^:?-+:?$`)

// parseTable reads the first two columns of every markdown table row. A row
// directly above a separator row is a header and is skipped.
func parseTable(raw string) []importerrpc.Card {
	lines := strings.Split(strings.ReplaceAll(raw, "\r\n", "\n"), "\n")
	rows := make([][]string, 0, len(lines))
	for _, line := range lines {
		line = strings.TrimSpace(line)
		if !strings.HasPrefix(line, "|") {
			rows = append(rows, nil)
			continue
		}
		rows = append(rows, splitRow(line))
	}

	cards := []importerrpc.Card{}
	for i, cells := range rows {
		if cells == nil || isSeparator(cells) {
			continue
		}
		if i+1 < len(rows) && rows[i+1] != nil && isSeparator(rows[i+1]) {
			continue
		}
		if len(cells) < 2 || cells[0] == "" || cells[1] == "" {
			continue
		}
		cards = append(cards, importerrpc.Card{Front: cells[0], Back: cells[1]})
	}
	return cards
}

func splitRow(line string) []string {
	line = strings.TrimPrefix(line, "|")
	line = strings.TrimSuffix(line, "|")
	cells := []string{}
	cur := strings.Builder{}
	for i := 0; i < len(line); i++ {
		switch {
		case line[i] == '\\' && i+1 < len(line) && line[i+1] == '|':
			cur.WriteByte('|')
			i++
		case line[i] == '|':
			cells = append(cells, strings.TrimSpace(cur.String()))
			cur.Reset()
		default:
			cur.WriteByte(line[i])
		}
	}
	return append(cells, strings.TrimSpace(cur.String()))
}

func isSeparator(cells []string) bool {
	for _, c := range cells {
		if !separatorCell.MatchString(strings.ReplaceAll(c, " ", "")) {
			return false
		}
	}
	return len(cells) > 0
}
