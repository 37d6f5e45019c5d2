package storage

import (
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/surge-http/surge/pkg/model"
)

func writeImportFile(t *testing.T, doc interface{}) string {
	t.Helper()
	data, err := json.Marshal(doc)
	if err != nil {
		t.Fatalf("marshal import doc: %v", err)
	}
	path := filepath.Join(t.TempDir(), "import.json")
	if err := os.WriteFile(path, data, 0644); err != nil {
		t.Fatalf("write import doc: %v", err)
	}
	return path
}

func TestImportCollection_AssignsNewIdentity(t *testing.T) {
	store := newTestStore(t)
	path := writeImportFile(t, map[string]interface{}{
		"id":   "source-id",
		"name": "payments",
		"requests": []map[string]interface{}{
			{"id": "r1", "name": "charge", "method": "POST", "url": "http://x/charge"},
		},
	})

	c, err := store.ImportCollection(path)
	if err != nil {
		t.Fatalf("ImportCollection() error = %v", err)
	}

	if c.ID == "source-id" || c.ID == "" {
		t.Errorf("imported id = %q, source identity must be discarded", c.ID)
	}
	if c.CreatedAt.IsZero() || c.UpdatedAt.IsZero() {
		t.Error("imported collection missing fresh timestamps")
	}
	if len(c.Requests) != 1 || c.Requests[0].Name != "charge" {
		t.Errorf("nested requests lost: %+v", c.Requests)
	}
}

func TestImportCollection_TwiceYieldsTwoCollections(t *testing.T) {
	store := newTestStore(t)
	path := writeImportFile(t, map[string]interface{}{"id": "dup", "name": "twice"})

	first, err := store.ImportCollection(path)
	if err != nil {
		t.Fatalf("first import error = %v", err)
	}
	second, err := store.ImportCollection(path)
	if err != nil {
		t.Fatalf("second import error = %v", err)
	}

	if first.ID == second.ID {
		t.Errorf("both imports share id %q", first.ID)
	}

	ids := make(map[string]bool)
	for _, c := range store.LoadCollections() {
		ids[c.ID] = true
	}
	if !ids[first.ID] || !ids[second.ID] {
		t.Errorf("loadCollections() missing imported ids: %v", ids)
	}
}

func TestImportCollection_NotJSONRaisesImportError(t *testing.T) {
	store := newTestStore(t)
	path := filepath.Join(t.TempDir(), "bad.json")
	if err := os.WriteFile(path, []byte("{{{"), 0644); err != nil {
		t.Fatalf("write file: %v", err)
	}

	_, err := store.ImportCollection(path)
	var importErr *ImportError
	if !errors.As(err, &importErr) {
		t.Errorf("error = %v (%T), want *ImportError", err, err)
	}
}

func TestImportCollection_UnreadableRaisesImportError(t *testing.T) {
	store := newTestStore(t)
	_, err := store.ImportCollection(filepath.Join(t.TempDir(), "missing.json"))
	var importErr *ImportError
	if !errors.As(err, &importErr) {
		t.Errorf("error = %v (%T), want *ImportError", err, err)
	}
}

func TestImportEnvironment_YAML(t *testing.T) {
	store := newTestStore(t)
	path := filepath.Join(t.TempDir(), "dev.yaml")
	content := "BASE_URL: http://localhost:3000\nAPI_TOKEN: secret\n"
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("write yaml: %v", err)
	}

	env, err := store.ImportEnvironment(path)
	if err != nil {
		t.Fatalf("ImportEnvironment() error = %v", err)
	}
	if env.Name != "dev" {
		t.Errorf("name = %q, want dev (derived from filename)", env.Name)
	}
	if env.Variables["BASE_URL"] != "http://localhost:3000" {
		t.Errorf("variables = %v", env.Variables)
	}
	if store.GetEnvironment(env.ID) == nil {
		t.Error("imported environment not persisted")
	}
}

func TestImportEnvironment_JSON(t *testing.T) {
	store := newTestStore(t)
	doc := model.Environment{ID: "old", Name: "prod", Variables: map[string]string{"base": "http://prod"}}
	data, _ := json.Marshal(doc)
	path := filepath.Join(t.TempDir(), "prod.json")
	if err := os.WriteFile(path, data, 0644); err != nil {
		t.Fatalf("write json: %v", err)
	}

	env, err := store.ImportEnvironment(path)
	if err != nil {
		t.Fatalf("ImportEnvironment() error = %v", err)
	}
	if env.ID == "old" {
		t.Error("import must assign a new id")
	}
	if env.Variables["base"] != "http://prod" {
		t.Errorf("variables = %v", env.Variables)
	}
}

func TestLintCollectionDocument(t *testing.T) {
	valid := []byte(`{"name":"ok","requests":[{"id":"r1","method":"GET","url":"http://x"}]}`)
	if warnings := LintCollectionDocument(valid); len(warnings) != 0 {
		t.Errorf("valid document produced warnings: %v", warnings)
	}

	invalid := []byte(`{"requests":[{"id":"r1","method":"FETCH","url":"http://x"}]}`)
	if warnings := LintCollectionDocument(invalid); len(warnings) == 0 {
		t.Error("unknown method should produce a schema warning")
	}
}
