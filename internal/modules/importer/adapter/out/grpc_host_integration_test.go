package out_test

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"os"
	"os/exec"
	"path/filepath"
	"runtime"
	"testing"
	"time"

	importerout "flipdeck/internal/modules/importer/adapter/out"
	"flipdeck/internal/modules/importer/domain"
)

func TestGRPCHostIntegrationMarkdownTablePlugin(t *testing.T) {
	binPath, checksum := buildMarkdownTablePlugin(t)
	manifest := domain.Manifest{
		Name:    "mdtable",
		Version: "1.0.0",
		Binary:  binPath,
		SHA256:  checksum,
		Enabled: true,
		Formats: []string{"mdtable", "md"},
	}

	host := importerout.NewGRPCHost(nil)
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := host.CheckLifecycle(ctx, manifest); err != nil {
		t.Fatalf("check lifecycle: %v", err)
	}
	metadata, err := host.GetMetadata(ctx, manifest)
	if err != nil {
		t.Fatalf("get metadata: %v", err)
	}
	if metadata.Name != "mdtable" || len(metadata.Formats) != 2 {
		t.Fatalf("unexpected metadata: %+v", metadata)
	}

	cards, err := host.Parse(ctx, manifest, domain.ParseRequest{Format: "mdtable", Raw: "| Term | Meaning |\n|---|---|\n| hund | dog |\n| katze | cat |\n"})
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if len(cards) != 2 || cards[0] != (domain.Card{Front: "hund", Back: "dog"}) {
		t.Fatalf("unexpected cards: %+v", cards)
	}

	if _, err := host.Parse(ctx, manifest, domain.ParseRequest{Format: "csv", Raw: "a,b"}); err == nil {
		t.Fatalf("plugin must reject formats it does not declare")
	}
}

func buildMarkdownTablePlugin(t *testing.T) (string, string) {
	t.Helper()
	binPath := filepath.Join(t.TempDir(), "mdtable-plugin")
	cmd := exec.Command("go", "build", "-o", binPath, "./plugins/mdtable")
	cmd.Dir = repositoryRoot(t)
	if out, err := cmd.CombinedOutput(); err != nil {
		t.Fatalf("build mdtable plugin: %v\n%s", err, string(out))
	}
	payload, err := os.ReadFile(binPath)
	if err != nil {
		t.Fatalf("read built plugin: %v", err)
	}
	hash := sha256.Sum256(payload)
	return binPath, hex.EncodeToString(hash[:])
}

func repositoryRoot(t *testing.T) string {
	t.Helper()
	_, file, _, ok := runtime.Caller(0)
	if !ok {
		t.Fatalf("runtime caller failed")
	}
	return filepath.Clean(filepath.Join(filepath.Dir(file), "../../../../../"))
}
