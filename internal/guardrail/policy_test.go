package guardrail_test

import (
	"testing"

	"github.com/finassist/policy-agent/internal/guardrail"
)

func TestCanonicalTopicName(t *testing.T) {
	tests := []struct {
		topic string
		want  string
	}{
		{"Fraud detection bypass", "fraud_detection_bypass"},
		{"Credit limit algorithm", "credit_limit_algorithm"},
		{"SQL-Injection (advanced)", "sqlinjection_advanced"},
		{"already_canonical_2", "already_canonical_2"},
		{"  Spaces  ", "__spaces__"},
	}

	for _, tt := range tests {
		if got := guardrail.CanonicalTopicName(tt.topic); got != tt.want {
			t.Errorf("CanonicalTopicName(%q) = %q, want %q", tt.topic, got, tt.want)
		}
	}
}

func TestBuildPolicySpec(t *testing.T) {
	profile := guardrail.Profile{
		ID:                 "external",
		DeniedTopics:       []string{"Fraud detection bypass", "Credit limit algorithm"},
		BlockedWords:       []string{"hack", "jailbreak"},
		PIICategories:      []string{"EMAIL"},
		GroundingRequired:  true,
		GroundingThreshold: 0.8,
	}

	spec := guardrail.BuildPolicySpec(profile)

	if len(spec.Topics) != 2 {
		t.Fatalf("Expected 2 topic rules, got %d", len(spec.Topics))
	}
	if spec.Topics[0].Name != "fraud_detection_bypass" {
		t.Errorf("Unexpected topic name %q", spec.Topics[0].Name)
	}
	if spec.Topics[0].Definition != "Fraud detection bypass" {
		t.Errorf("Unexpected topic definition %q", spec.Topics[0].Definition)
	}
	if len(spec.Topics[0].Examples) == 0 {
		t.Error("Expected at least one example per topic")
	}

	if len(spec.Words) != 2 {
		t.Errorf("Expected 2 blocked words, got %d", len(spec.Words))
	}

	if len(spec.PII) != 1 || spec.PII[0].Action != "ANONYMIZE" {
		t.Errorf("Expected one ANONYMIZE PII rule, got %+v", spec.PII)
	}

	if spec.GroundingThreshold != 0.8 {
		t.Errorf("Expected grounding threshold 0.8, got %v", spec.GroundingThreshold)
	}

	if spec.BlockedInputMessage == "" || spec.BlockedOutputMessage == "" {
		t.Error("Expected blocked messages to be set")
	}
}

func TestBuildPolicySpec_GroundingDefaults(t *testing.T) {
	spec := guardrail.BuildPolicySpec(guardrail.Profile{
		ID:                "internal",
		BlockedWords:      []string{"exploit"},
		GroundingRequired: true,
	})
	if spec.GroundingThreshold != 0.75 {
		t.Errorf("Expected default threshold 0.75, got %v", spec.GroundingThreshold)
	}

	spec = guardrail.BuildPolicySpec(guardrail.Profile{
		ID:           "internal",
		BlockedWords: []string{"exploit"},
	})
	if spec.GroundingThreshold != 0 {
		t.Errorf("Expected no grounding threshold, got %v", spec.GroundingThreshold)
	}
}
