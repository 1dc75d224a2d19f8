package guardrail_test

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/finassist/policy-agent/internal/guardrail"
)

func TestFileIdentityStore_RoundTrip(t *testing.T) {
	store, err := guardrail.NewFileIdentityStore(t.TempDir())
	if err != nil {
		t.Fatalf("NewFileIdentityStore() failed: %v", err)
	}

	identity := &guardrail.Identity{
		RemoteID:  "gr-abc",
		Version:   "3",
		ProfileID: "external",
		CreatedAt: time.Now(),
	}

	if err := store.Save(identity); err != nil {
		t.Fatalf("Save() failed: %v", err)
	}

	loaded, err := store.Load("external")
	if err != nil {
		t.Fatalf("Load() failed: %v", err)
	}
	if loaded == nil {
		t.Fatal("Expected a stored identity")
	}
	if loaded.RemoteID != "gr-abc" || loaded.Version != "3" || loaded.ProfileID != "external" {
		t.Errorf("Loaded identity does not match saved one: %+v", loaded)
	}

	if err := store.Delete("external"); err != nil {
		t.Fatalf("Delete() failed: %v", err)
	}
	loaded, err = store.Load("external")
	if err != nil {
		t.Fatalf("Load() after delete failed: %v", err)
	}
	if loaded != nil {
		t.Error("Expected no identity after delete")
	}
}

func TestFileIdentityStore_MissingFile(t *testing.T) {
	store, err := guardrail.NewFileIdentityStore(t.TempDir())
	if err != nil {
		t.Fatalf("NewFileIdentityStore() failed: %v", err)
	}

	identity, err := store.Load("never-created")
	if err != nil {
		t.Fatalf("Load() of absent identity should not error, got %v", err)
	}
	if identity != nil {
		t.Errorf("Expected nil identity, got %+v", identity)
	}

	// Delete of an absent identity is a no-op.
	if err := store.Delete("never-created"); err != nil {
		t.Errorf("Delete() of absent identity should not error, got %v", err)
	}
}

func TestFileIdentityStore_RejectsIncompleteFile(t *testing.T) {
	dir := t.TempDir()
	store, err := guardrail.NewFileIdentityStore(dir)
	if err != nil {
		t.Fatalf("NewFileIdentityStore() failed: %v", err)
	}

	path := filepath.Join(dir, "guardrail_identity_external.json")
	if err := os.WriteFile(path, []byte(`{"profile": "external"}`), 0o644); err != nil {
		t.Fatalf("Failed to write identity file: %v", err)
	}

	if _, err := store.Load("external"); err == nil {
		t.Error("Expected an error for an identity without id or version")
	}
}
