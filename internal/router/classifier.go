package router

import "strings"

// Specialist identifies which answering strategy handles a query.
type Specialist string

const (
	SpecialistPolicy         Specialist = "policy"
	SpecialistRecommendation Specialist = "recommendation"
)

// RoutingDecision is computed per query and never persisted.
type RoutingDecision struct {
	Specialist Specialist
	Profile    string
}

// rewardsKeywords is the fixed rewards/merchant-category vocabulary. A query
// containing any of these routes to the recommendation specialist.
var rewardsKeywords = []string{
	"reward", "points", "bonus", "cashback", "category",
	"hotel", "airfare", "flight", "car rental", "shipping",
	"office supply", "dining", "restaurant", "online purchase",
	"merchant category", "mcc",
}

// Classifier deterministically routes queries by keyword membership. No
// learned model: mis-routing is self-correcting (the policy specialist still
// answers a rewards question reasonably) and determinism keeps tests
// reproducible.
type Classifier struct{}

func NewClassifier() *Classifier {
	return &Classifier{}
}

func (c *Classifier) Classify(query string, profile string) RoutingDecision {
	decision := RoutingDecision{
		Specialist: SpecialistPolicy,
		Profile:    profile,
	}

	lowered := strings.ToLower(query)
	for _, keyword := range rewardsKeywords {
		if strings.Contains(lowered, keyword) {
			decision.Specialist = SpecialistRecommendation
			break
		}
	}

	return decision
}
