package architecture_test

import (
	"go/parser"
	"go/token"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

const modulesPrefix = "flipdeck/internal/modules/"

// sourceImport is one import of one non-test file.
type sourceImport struct {
	file string
	path string
}

func walkImports(t *testing.T, root string) []sourceImport {
	t.Helper()
	fset := token.NewFileSet()
	var out []sourceImport
	err := filepath.WalkDir(root, func(path string, d os.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() || !strings.HasSuffix(path, ".go") || strings.HasSuffix(path, "_test.go") {
			return nil
		}
		node, err := parser.ParseFile(fset, path, nil, parser.ImportsOnly)
		if err != nil {
			return err
		}
		for _, imp := range node.Imports {
			out = append(out, sourceImport{file: filepath.ToSlash(path), path: strings.Trim(imp.Path.Value, `"`)})
		}
		return nil
	})
	if err != nil {
		t.Fatalf("walk %s: %v", root, err)
	}
	return out
}

// location splits a path below internal/modules into module and layer.
func location(path string) (module, layer string) {
	i := strings.Index(path, "modules/")
	if i < 0 {
		return "", ""
	}
	parts := strings.Split(path[i+len("modules/"):], "/")
	if len(parts) < 2 {
		return "", ""
	}
	module = parts[0]
	switch parts[1] {
	case "adapter", "port":
		if len(parts) > 2 && (parts[2] == "in" || parts[2] == "out") {
			layer = parts[1] + "/" + parts[2]
		}
	case "domain", "dto", "service", "usecase":
		layer = parts[1]
	}
	return module, layer
}

// forbidden lists, per layer, the same-module layers it must not import.
var forbidden = map[string][]string{
	"domain":     {"adapter/in", "adapter/out", "usecase", "service", "port/in", "port/out"},
	"dto":        {"adapter/in", "adapter/out", "usecase", "service"},
	"port/out":   {"adapter/in", "adapter/out", "usecase", "service"},
	"port/in":    {"adapter/in", "adapter/out", "usecase", "service"},
	"service":    {"adapter/in", "adapter/out", "usecase"},
	"usecase":    {"adapter/in", "adapter/out"},
	"adapter/in": {"adapter/out", "usecase", "service", "domain", "port/out"},
}

func TestHexagonalLayerImports(t *testing.T) {
	t.Parallel()
	for _, imp := range walkImports(t, filepath.Join("..", "modules")) {
		if !strings.HasPrefix(imp.path, modulesPrefix) {
			continue
		}
		fromModule, fromLayer := location(imp.file)
		toModule, toLayer := location(imp.path)
		if fromLayer == "" {
			continue
		}
		if fromModule != toModule {
			if toLayer != "port/in" && toLayer != "dto" {
				t.Fatalf("%s reaches into %s/%s: %s", imp.file, toModule, toLayer, imp.path)
			}
			continue
		}
		for _, bad := range forbidden[fromLayer] {
			if toLayer == bad {
				t.Fatalf("%s (%s) must not import %s: %s", imp.file, fromLayer, bad, imp.path)
			}
		}
	}
}

func TestDomainStaysOnStandardLibrary(t *testing.T) {
	t.Parallel()
	for _, imp := range walkImports(t, filepath.Join("..", "modules")) {
		if _, layer := location(imp.file); layer != "domain" {
			continue
		}
		if imp.path == "flipdeck/internal/platform/errors" {
			continue
		}
		first, _, _ := strings.Cut(imp.path, "/")
		if strings.Contains(first, ".") || strings.HasPrefix(imp.path, "flipdeck/") {
			t.Fatalf("domain file %s imports %s", imp.file, imp.path)
		}
	}
}

func TestUIImportsOnlyModuleDTOs(t *testing.T) {
	t.Parallel()
	for _, imp := range walkImports(t, filepath.Join("..", "ui")) {
		if !strings.HasPrefix(imp.path, modulesPrefix) {
			continue
		}
		if _, layer := location(imp.path); layer != "dto" {
			t.Fatalf("ui file %s must reach modules through dto only: %s", imp.file, imp.path)
		}
	}
}

func TestModulesNeverImportUI(t *testing.T) {
	t.Parallel()
	for _, imp := range walkImports(t, filepath.Join("..", "modules")) {
		if strings.HasPrefix(imp.path, "flipdeck/internal/ui") || strings.HasPrefix(imp.path, "flipdeck/internal/bootstrap") {
			t.Fatalf("%s imports outer layer %s", imp.file, imp.path)
		}
	}
}
