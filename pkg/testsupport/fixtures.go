package testsupport

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-formwidget/pkg/schemaform"
	"github.com/goliatone/go-formwidget/pkg/widget"
)

// LoadDocument reads an OpenAPI fixture from disk.
func LoadDocument(t *testing.T, path string) *schemaform.Document {
	t.Helper()

	doc, err := schemaform.NewLoader().Load(Context(), schemaform.SourceFromFile(path))
	if err != nil {
		t.Fatalf("load document: %v", err)
	}
	return doc
}

// MustBuild builds the widget tree of operationID from the fixture at path.
func MustBuild(t *testing.T, path, operationID string, options ...schemaform.Option) *widget.Container {
	t.Helper()

	op, err := LoadDocument(t, path).Operation(operationID)
	if err != nil {
		t.Fatalf("operation: %v", err)
	}
	root, err := schemaform.NewBuilder(options...).Build(op)
	if err != nil {
		t.Fatalf("build %s: %v", operationID, err)
	}
	return root
}

// CompareGolden returns a diff string if the values differ.
func CompareGolden(want, got any) string {
	return cmp.Diff(want, got)
}

// MustReadGolden reads a golden file and returns its raw bytes.
func MustReadGolden(t *testing.T, path string) []byte {
	t.Helper()
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read golden: %v", err)
	}
	return data
}

// WriteMaybeGolden updates a golden file when UPDATE_GOLDENS is set. Returns
// true if the golden was written (test should exit early).
func WriteMaybeGolden(t *testing.T, path string, data []byte) bool {
	t.Helper()
	if os.Getenv("UPDATE_GOLDENS") == "" {
		return false
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("mkdir golden dir: %v", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		t.Fatalf("write golden: %v", err)
	}
	return true
}

// Context returns a background context for tests.
func Context() context.Context {
	return context.Background()
}
