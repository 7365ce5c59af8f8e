package markdown_test

import (
	"strings"
	"testing"

	"flipdeck/internal/platform/markdown"
)

type noteMeta struct {
	SessionID string `yaml:"session_id"`
	Percent   int    `yaml:"percent"`
}

func TestRenderThenSplitKeepsFieldOrder(t *testing.T) {
	t.Parallel()
	rendered, err := markdown.RenderFrontmatter(noteMeta{SessionID: "s-1", Percent: 50}, "# Results\n")
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	if !strings.HasPrefix(rendered, "---\nsession_id: s-1\npercent: 50\n---\n") {
		t.Fatalf("unexpected frontmatter layout:\n%s", rendered)
	}
	meta := noteMeta{}
	body, err := markdown.SplitFrontmatter(rendered, &meta)
	if err != nil {
		t.Fatalf("split: %v", err)
	}
	if meta.SessionID != "s-1" || meta.Percent != 50 {
		t.Fatalf("unexpected meta: %+v", meta)
	}
	if strings.TrimSpace(body) != "# Results" {
		t.Fatalf("unexpected body: %q", body)
	}
}

func TestSplitWithoutFrontmatter(t *testing.T) {
	t.Parallel()
	meta := noteMeta{}
	body, err := markdown.SplitFrontmatter("plain", &meta)
	if err != nil || body != "plain" {
		t.Fatalf("plain content must pass through, got %q %v", body, err)
	}
	if _, err := markdown.SplitFrontmatter("---\npercent: 1\n", &meta); err == nil {
		t.Fatalf("unterminated frontmatter should fail")
	}
}
