package ingestion

import (
	"os"
	"path/filepath"
	"testing"
)

func TestParser_ParseFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "credit_policy.txt")
	if err := os.WriteFile(path, []byte("Credit applications are evaluated on bureau data."), 0o644); err != nil {
		t.Fatalf("Failed to write test file: %v", err)
	}

	parser := NewParser()

	doc, err := parser.ParseFile(path)
	if err != nil {
		t.Fatalf("ParseFile() failed: %v", err)
	}
	if doc.Title != "credit_policy" {
		t.Errorf("Expected title from filename, got %q", doc.Title)
	}
	if doc.Content != "Credit applications are evaluated on bureau data." {
		t.Errorf("Unexpected content %q", doc.Content)
	}
	if doc.ID == "" {
		t.Error("Expected a generated document id")
	}

	if _, err := parser.ParseFile(filepath.Join(dir, "policy.pdf")); err == nil {
		t.Error("Expected an error for an unsupported extension")
	}

	empty := filepath.Join(dir, "empty.txt")
	if err := os.WriteFile(empty, nil, 0o644); err != nil {
		t.Fatalf("Failed to write empty file: %v", err)
	}
	if _, err := parser.ParseFile(empty); err == nil {
		t.Error("Expected an error for an empty file")
	}
}

func TestParser_ParseFAQ(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "faq.json")
	content := `[
  {"question": "How are decisions made?", "answer": "Automated with compliance review."},
  {"question": "Who sees my data?", "answer": "Only vetted partners."}
]`
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("Failed to write FAQ file: %v", err)
	}

	parser := NewParser()

	entries, err := parser.ParseFAQ(path)
	if err != nil {
		t.Fatalf("ParseFAQ() failed: %v", err)
	}
	if len(entries) != 2 {
		t.Fatalf("Expected 2 entries, got %d", len(entries))
	}
	if entries[0].Question != "How are decisions made?" {
		t.Errorf("Unexpected question %q", entries[0].Question)
	}

	emptyList := filepath.Join(dir, "empty.json")
	if err := os.WriteFile(emptyList, []byte(`[]`), 0o644); err != nil {
		t.Fatalf("Failed to write empty FAQ file: %v", err)
	}
	if _, err := parser.ParseFAQ(emptyList); err == nil {
		t.Error("Expected an error for an empty FAQ list")
	}
}
