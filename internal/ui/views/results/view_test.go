package results

import (
	"context"
	"strings"
	"testing"

	historydto "flipdeck/internal/modules/history/dto"
	studydto "flipdeck/internal/modules/study/dto"
)

type fakePort struct{ got historydto.RecordInput }

func (f *fakePort) Summary(_ context.Context, in historydto.RecordInput) (historydto.SummaryOutput, error) {
	f.got = in
	return historydto.SummaryOutput{Verdict: "Keep Grinding!", Markdown: "# Results\n\nFocus on these"}, nil
}

func TestShowLoadsSummaryForResult(t *testing.T) {
	t.Parallel()
	port := &fakePort{}
	m := New(port)
	cmd := m.Show(studydto.ResultOutput{
		SessionID:    "s-1",
		Percent:      50,
		KnownCount:   1,
		UnknownCount: 1,
		Total:        2,
		UnknownCards: []studydto.Card{{Front: "gato", Back: "cat"}},
	})
	msg, ok := cmd().(SummaryMsg)
	if !ok || msg.Err != nil {
		t.Fatalf("unexpected summary message %#v", cmd())
	}
	if port.got.SessionID != "s-1" || len(port.got.UnknownCards) != 1 || port.got.UnknownCards[0].Back != "cat" {
		t.Fatalf("result not forwarded: %+v", port.got)
	}

	m, _ = m.Update(msg)
	out := m.View()
	if !strings.Contains(out, "50%") || !strings.Contains(out, "Keep Grinding!") {
		t.Fatalf("view missing score or verdict:\n%s", out)
	}
}
