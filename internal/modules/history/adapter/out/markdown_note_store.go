package out

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"flipdeck/internal/modules/history/domain"
	historyout "flipdeck/internal/modules/history/port/out"
	"flipdeck/internal/platform/markdown"
)

const (
	overviewName  = "history.md"
	overviewStart = "<!-- flipdeck:history:start -->"
	overviewEnd   = "<!-- flipdeck:history:end -->"
)

type resultMeta struct {
	SchemaVersion int    `yaml:"schema_version"`
	SessionID     string `yaml:"session_id"`
	Percent       int    `yaml:"percent"`
	Known         int    `yaml:"known"`
	Unknown       int    `yaml:"unknown"`
	Total         int    `yaml:"total"`
	FinishedAt    string `yaml:"finished_at"`
}

// MarkdownNoteStore writes markdown notes under the data directory.
type MarkdownNoteStore struct {
	dataPath string
}

func NewMarkdownNoteStore(dataPath string) historyout.NoteStore {
	return &MarkdownNoteStore{dataPath: dataPath}
}

func (s *MarkdownNoteStore) WriteResult(_ context.Context, note domain.Note) (string, error) {
	path := filepath.Join(s.dataPath, note.RelPath())
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return "", fmt.Errorf("create results dir: %w", err)
	}
	r := note.Result
	meta := resultMeta{
		SchemaVersion: domain.SchemaVersion,
		SessionID:     r.SessionID,
		Percent:       r.Percent,
		Known:         r.KnownCount,
		Unknown:       r.UnknownCount,
		Total:         r.Total,
		FinishedAt:    note.FinishedAt.UTC().Format(time.RFC3339),
	}
	rendered, err := markdown.RenderFrontmatter(meta, domain.Summary(r))
	if err != nil {
		return "", err
	}
	if err := os.WriteFile(path, []byte(rendered), 0o644); err != nil {
		return "", fmt.Errorf("write results note: %w", err)
	}
	return path, nil
}

// WriteOverview refreshes the history table in results/history.md and
// leaves anything outside the managed block alone.
func (s *MarkdownNoteStore) WriteOverview(_ context.Context, entries []domain.Entry) error {
	path := filepath.Join(s.dataPath, "results", overviewName)
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create results dir: %w", err)
	}
	body := "# Study history\n"
	raw, err := os.ReadFile(path)
	switch {
	case err == nil:
		body = string(raw)
	case !errors.Is(err, os.ErrNotExist):
		return fmt.Errorf("read history overview: %w", err)
	}
	body = markdown.ReplaceManagedBlock(body, overviewStart, overviewEnd, domain.HistoryTable(entries))
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		return fmt.Errorf("write history overview: %w", err)
	}
	return nil
}
