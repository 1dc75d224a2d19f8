package guardrail_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/finassist/policy-agent/internal/guardrail"
)

func TestRegistry_GetReturnsCopy(t *testing.T) {
	registry := guardrail.DefaultRegistry()

	first, err := registry.Get(guardrail.ProfileExternal)
	if err != nil {
		t.Fatalf("Get() failed: %v", err)
	}

	// Mutating the returned profile must not leak into the registry.
	first.DeniedTopics[0] = "mutated"
	first.BlockedWords = append(first.BlockedWords, "mutated")

	second, err := registry.Get(guardrail.ProfileExternal)
	if err != nil {
		t.Fatalf("Get() failed: %v", err)
	}
	if second.DeniedTopics[0] == "mutated" {
		t.Error("Registry profile was mutated through a returned copy")
	}
	if len(second.BlockedWords) == len(first.BlockedWords) {
		t.Error("Registry blocked words grew through a returned copy")
	}
}

func TestNewRegistry_Validation(t *testing.T) {
	_, err := guardrail.NewRegistry([]guardrail.Profile{{
		ID:                "external",
		ModerationEnabled: true,
	}})
	if err == nil {
		t.Error("Expected an error for a moderated profile without blocked words")
	}

	_, err = guardrail.NewRegistry([]guardrail.Profile{{}})
	if err == nil {
		t.Error("Expected an error for a profile with an empty id")
	}
}

func TestLoadRegistry(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "profiles.yaml")

	content := `profiles:
  - id: partner
    denied_topics:
      - Internal pricing
    blocked_words:
      - exploit
    moderation_enabled: true
`
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("Failed to write profiles file: %v", err)
	}

	registry, err := guardrail.LoadRegistry(path)
	if err != nil {
		t.Fatalf("LoadRegistry() failed: %v", err)
	}

	profile, err := registry.Get("partner")
	if err != nil {
		t.Fatalf("Get() failed: %v", err)
	}
	if len(profile.DeniedTopics) != 1 || profile.DeniedTopics[0] != "Internal pricing" {
		t.Errorf("Unexpected denied topics %v", profile.DeniedTopics)
	}

	// A missing file falls back to the built-in profiles.
	registry, err = guardrail.LoadRegistry(filepath.Join(dir, "absent.yaml"))
	if err != nil {
		t.Fatalf("LoadRegistry() for a missing file failed: %v", err)
	}
	if _, err := registry.Get(guardrail.ProfileExternal); err != nil {
		t.Errorf("Expected built-in external profile, got %v", err)
	}
}
