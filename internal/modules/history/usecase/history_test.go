package usecase_test

import (
	"fmt"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	historyout "flipdeck/internal/modules/history/adapter/out"
	"flipdeck/internal/modules/history/domain"
	"flipdeck/internal/modules/history/dto"
	"flipdeck/internal/modules/history/service"
	"flipdeck/internal/modules/history/usecase"
	"flipdeck/internal/platform/blob"
	"flipdeck/internal/platform/clock"
	"flipdeck/internal/platform/markdown"
)

func TestRecordCapsHistoryAndWritesNote(t *testing.T) {
	t.Parallel()
	dir := t.TempDir()
	store := blob.NewFileStore(filepath.Join(dir, "blobs"))
	histories := historyout.NewBlobHistoryStore(store)
	seed := []domain.Entry{}
	for i := 5; i >= 1; i-- {
		seed = append(seed, domain.Entry{Date: fmt.Sprintf("2026-01-%02d", i), Score: i * 10, Count: 4})
	}
	if err := histories.Save(context.Background(), seed); err != nil {
		t.Fatalf("seed history: %v", err)
	}

	now := time.Date(2026, 10, 14, 9, 30, 15, 0, time.UTC)
	uc := usecase.NewInteractor(service.NewHistoryService(clock.Fixed(now), histories, historyout.NewMarkdownNoteStore(dir)))
	out, err := uc.Record(context.Background(), dto.RecordInput{
		SessionID:    "s-1",
		Percent:      50,
		KnownCount:   1,
		UnknownCount: 1,
		Total:        2,
		KnownCards:   []dto.Card{{Front: "A", Back: "1"}},
		UnknownCards: []dto.Card{{Front: "B", Back: "2"}},
	})
	if err != nil {
		t.Fatalf("record: %v", err)
	}
	if len(out.Entries) != 5 {
		t.Fatalf("history must stay at 5 entries, got %d", len(out.Entries))
	}
	if out.Entries[0] != (dto.Entry{Date: "2026-10-14", Score: 50, Count: 2}) {
		t.Fatalf("new entry must lead: %+v", out.Entries[0])
	}
	if out.Entries[4].Score != 20 {
		t.Fatalf("oldest entry must be dropped: %+v", out.Entries)
	}

	listed, err := uc.List(context.Background())
	if err != nil || len(listed) != 5 || listed[0].Score != 50 {
		t.Fatalf("list must return the persisted history: %+v %v", listed, err)
	}

	wantPath := filepath.Join(dir, "results", "2026", "10", "14", "093015-s-1.md")
	if out.NotePath != wantPath {
		t.Fatalf("want note %s got %s", wantPath, out.NotePath)
	}
	raw, err := os.ReadFile(out.NotePath)
	if err != nil {
		t.Fatalf("read note: %v", err)
	}
	meta := struct {
		SchemaVersion int    `yaml:"schema_version"`
		SessionID     string `yaml:"session_id"`
		Percent       int    `yaml:"percent"`
		Total         int    `yaml:"total"`
		FinishedAt    string `yaml:"finished_at"`
	}{}
	body, err := markdown.SplitFrontmatter(string(raw), &meta)
	if err != nil {
		t.Fatalf("split note: %v", err)
	}
	if meta.SchemaVersion != 1 || meta.SessionID != "s-1" || meta.Percent != 50 || meta.Total != 2 || meta.FinishedAt != "2026-10-14T09:30:15Z" {
		t.Fatalf("unexpected frontmatter: %+v", meta)
	}
	if !strings.Contains(body, "Focus on these") || !strings.Contains(body, "| B | 2 |") {
		t.Fatalf("note must list unknown cards:\n%s", body)
	}

	overview, err := os.ReadFile(filepath.Join(dir, "results", "history.md"))
	if err != nil {
		t.Fatalf("read overview: %v", err)
	}
	if !strings.Contains(string(overview), "| 2026-10-14 | 50% | 2 |") {
		t.Fatalf("overview must show new entry:\n%s", overview)
	}
}

func TestRecordWithoutNotesAndEmptyHistory(t *testing.T) {
	t.Parallel()
	store := blob.NewFileStore(t.TempDir())
	uc := usecase.NewInteractor(service.NewHistoryService(clock.Fixed(time.Date(2026, 1, 2, 0, 0, 0, 0, time.UTC)), historyout.NewBlobHistoryStore(store), nil))

	entries, err := uc.List(context.Background())
	if err != nil || len(entries) != 0 {
		t.Fatalf("fresh history must be empty: %+v %v", entries, err)
	}
	out, err := uc.Record(context.Background(), dto.RecordInput{SessionID: "s", Percent: 100, KnownCount: 3, Total: 3})
	if err != nil {
		t.Fatalf("record: %v", err)
	}
	if out.NotePath != "" || len(out.Entries) != 1 || out.Entries[0].Date != "2026-01-02" {
		t.Fatalf("unexpected output: %+v", out)
	}
	if _, err := uc.Record(context.Background(), dto.RecordInput{SessionID: "s"}); err == nil {
		t.Fatalf("empty result must be rejected")
	}
}

func TestSummaryVerdict(t *testing.T) {
	t.Parallel()
	uc := usecase.NewInteractor(service.NewHistoryService(clock.SystemClock{}, historyout.NewBlobHistoryStore(blob.NewFileStore(t.TempDir())), nil))
	out, err := uc.Summary(context.Background(), dto.RecordInput{Percent: 80, KnownCount: 4, UnknownCount: 1, Total: 5})
	if err != nil {
		t.Fatalf("summary: %v", err)
	}
	if out.Verdict != "Legendary!" || !strings.HasPrefix(out.Markdown, "# Legendary!") {
		t.Fatalf("unexpected summary: %+v", out)
	}
}
