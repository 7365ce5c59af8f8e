package domain

import (
	"fmt"
	"path/filepath"
	"strings"
	"time"
)

const (
	SchemaVersion = 1
	HistoryKey    = "studyHistory"
	MaxEntries    = 5
	DateLayout    = "2006-01-02"
	// LegendaryPercent is the lowest score that earns the top verdict.
	LegendaryPercent = 80
)

// Entry is one finished session in the rolling history.
type Entry struct {
	Date  string `json:"date"`
	Score int    `json:"score"`
	Count int    `json:"count"`
}

// Push prepends e and keeps the newest MaxEntries.
func Push(entries []Entry, e Entry) []Entry {
	out := make([]Entry, 0, MaxEntries)
	out = append(out, e)
	for _, old := range entries {
		if len(out) == MaxEntries {
			break
		}
		out = append(out, old)
	}
	return out
}

type Card struct {
	Front string
	Back  string
}

type Result struct {
	SessionID    string
	Percent      int
	KnownCount   int
	UnknownCount int
	Total        int
	KnownCards   []Card
	UnknownCards []Card
}

func Verdict(percent int) string {
	if percent >= LegendaryPercent {
		return "Legendary!"
	}
	return "Keep Grinding!"
}

// Note is the markdown record written for each finished session.
type Note struct {
	Result     Result
	FinishedAt time.Time
}

// RelPath is relative to the data directory.
func (n Note) RelPath() string {
	at := n.FinishedAt.UTC()
	name := fmt.Sprintf("%s-%s.md", at.Format("150405"), n.Result.SessionID)
	return filepath.Join("results", at.Format("2006"), at.Format("01"), at.Format("02"), name)
}

// Summary renders the result as markdown for the results screen and the
// session note body.
func Summary(r Result) string {
	b := strings.Builder{}
	fmt.Fprintf(&b, "# %s\n\n", Verdict(r.Percent))
	fmt.Fprintf(&b, "You knew **%d%%** of the deck.\n\n", r.Percent)
	fmt.Fprintf(&b, "- Known: %d\n- Unknown: %d\n- Total: %d\n", r.KnownCount, r.UnknownCount, r.Total)
	if len(r.UnknownCards) > 0 {
		b.WriteString("\n## Focus on these\n\n")
		b.WriteString("| Term | Definition |\n|---|---|\n")
		for _, c := range r.UnknownCards {
			fmt.Fprintf(&b, "| %s | %s |\n", escapeCell(c.Front), escapeCell(c.Back))
		}
	}
	return b.String()
}

// HistoryTable renders entries as a markdown list, newest first.
func HistoryTable(entries []Entry) string {
	if len(entries) == 0 {
		return "_No sessions yet._"
	}
	b := strings.Builder{}
	b.WriteString("| Date | Score | Cards |\n|---|---|---|\n")
	for _, e := range entries {
		fmt.Fprintf(&b, "| %s | %d%% | %d |\n", e.Date, e.Score, e.Count)
	}
	return strings.TrimSuffix(b.String(), "\n")
}

func escapeCell(s string) string {
	return strings.ReplaceAll(s, "|", `\|`)
}
