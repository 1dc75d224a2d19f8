package router

import "testing"

func TestClassifier_Classify(t *testing.T) {
	classifier := NewClassifier()

	tests := []struct {
		name  string
		query string
		want  Specialist
	}{
		{"rewards keyword", "Will I earn points for UPS shipping?", SpecialistRecommendation},
		{"cashback keyword", "How much cashback do I get at restaurants?", SpecialistRecommendation},
		{"merchant category code", "What MCC does this store use?", SpecialistRecommendation},
		{"flight question", "Do airfare purchases qualify?", SpecialistRecommendation},
		{"policy question", "How are credit applications evaluated?", SpecialistPolicy},
		{"privacy question", "Who can see my application data?", SpecialistPolicy},
		{"uppercase keyword", "Tell me about BONUS offers", SpecialistRecommendation},
		{"empty query", "", SpecialistPolicy},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			decision := classifier.Classify(tt.query, "external")
			if decision.Specialist != tt.want {
				t.Errorf("Classify(%q) routed to %s, want %s", tt.query, decision.Specialist, tt.want)
			}
			if decision.Profile != "external" {
				t.Errorf("Profile must pass through unchanged, got %q", decision.Profile)
			}
		})
	}
}

func TestClassifier_Deterministic(t *testing.T) {
	classifier := NewClassifier()

	query := "Do hotel stays earn points?"
	first := classifier.Classify(query, "internal")
	for i := 0; i < 10; i++ {
		if got := classifier.Classify(query, "internal"); got != first {
			t.Fatalf("Classification changed between runs: %+v vs %+v", first, got)
		}
	}
}
