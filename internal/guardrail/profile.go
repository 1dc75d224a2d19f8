package guardrail

import (
	"errors"
	"fmt"
	"os"
	"slices"

	"gopkg.in/yaml.v3"
)

var ErrUnknownProfile = errors.New("unknown guardrail profile")

const (
	ProfileExternal = "external"
	ProfileInternal = "internal"
)

// Profile is one caller class's moderation policy bundle. Profiles are fixed
// at process start; the registry never hands out a mutable reference so two
// lookups of the same id always observe identical policy.
type Profile struct {
	ID                 string   `yaml:"id"`
	DeniedTopics       []string `yaml:"denied_topics"`
	BlockedWords       []string `yaml:"blocked_words"`
	AllowedWords       []string `yaml:"allowed_words"`
	PIICategories      []string `yaml:"pii_categories"`
	GroundingRequired  bool     `yaml:"grounding_required"`
	GroundingThreshold float64  `yaml:"grounding_threshold"`
	ModerationEnabled  bool     `yaml:"moderation_enabled"`
}

func (p Profile) clone() Profile {
	p.DeniedTopics = slices.Clone(p.DeniedTopics)
	p.BlockedWords = slices.Clone(p.BlockedWords)
	p.AllowedWords = slices.Clone(p.AllowedWords)
	p.PIICategories = slices.Clone(p.PIICategories)
	return p
}

var defaultBlockedWords = []string{
	"hack", "bypass", "exploit", "reverse engineer", "fraud",
	"unauthorized", "adversarial", "SQL injection",
	"malicious", "data exfiltration", "jailbreak",
}

var defaultPIICategories = []string{
	"NAME", "EMAIL", "PHONE", "ADDRESS",
	"US_SOCIAL_SECURITY_NUMBER", "CREDIT_DEBIT_CARD_NUMBER",
	"DRIVER_ID", "US_PASSPORT_NUMBER",
}

// DefaultProfiles returns the two built-in caller classes. External callers
// are customer-facing and never see internal process or algorithm detail;
// internal callers may discuss internal policy but abuse and exfiltration
// topics stay blocked.
func DefaultProfiles() []Profile {
	return []Profile{
		{
			ID: ProfileExternal,
			DeniedTopics: []string{
				"Fraud detection bypass", "Credit risk strategy",
				"Internal approval process", "Model jailbreaking",
				"Unauthorized model access", "Data exfiltration",
				"Bypassing safety guardrails", "Unauthorized partner APIs",
				"Internal collections framework", "Internal underwriting",
				"Credit limit algorithm", "Chargeback trick",
				"Unsolicited card exploit",
			},
			BlockedWords:       slices.Clone(defaultBlockedWords),
			PIICategories:      slices.Clone(defaultPIICategories),
			GroundingRequired:  true,
			GroundingThreshold: 0.75,
			ModerationEnabled:  true,
		},
		{
			ID: ProfileInternal,
			DeniedTopics: []string{
				"Fraud detection bypass", "Model jailbreaking",
				"Unauthorized model access", "Data exfiltration",
				"Bypassing safety guardrails", "Unauthorized partner APIs",
				"PII data leakage",
			},
			BlockedWords:      slices.Clone(defaultBlockedWords),
			PIICategories:     slices.Clone(defaultPIICategories),
			ModerationEnabled: true,
		},
	}
}

// Registry holds the statically configured profiles. No mutation is exposed
// after construction.
type Registry struct {
	profiles map[string]Profile
}

func NewRegistry(profiles []Profile) (*Registry, error) {
	byID := make(map[string]Profile, len(profiles))
	for _, profile := range profiles {
		if profile.ID == "" {
			return nil, fmt.Errorf("profile with empty id")
		}
		if profile.ModerationEnabled && len(profile.BlockedWords) == 0 {
			// The moderation service rejects empty word lists at policy creation
			return nil, fmt.Errorf("profile %q requires a non-empty blocked word list", profile.ID)
		}
		byID[profile.ID] = profile.clone()
	}

	return &Registry{profiles: byID}, nil
}

func DefaultRegistry() *Registry {
	registry, err := NewRegistry(DefaultProfiles())
	if err != nil {
		// Built-in profiles always satisfy the invariants
		panic(err)
	}
	return registry
}

// LoadRegistry reads profile definitions from a YAML file. Missing file means
// the built-in defaults.
func LoadRegistry(path string) (*Registry, error) {
	if path == "" {
		return DefaultRegistry(), nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return DefaultRegistry(), nil
		}
		return nil, fmt.Errorf("failed to read profiles file: %w", err)
	}

	var file struct {
		Profiles []Profile `yaml:"profiles"`
	}
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("failed to parse profiles file: %w", err)
	}
	if len(file.Profiles) == 0 {
		return nil, fmt.Errorf("profiles file %s defines no profiles", path)
	}

	return NewRegistry(file.Profiles)
}

// Get returns the profile for id. The returned value is a copy.
func (r *Registry) Get(id string) (Profile, error) {
	profile, ok := r.profiles[id]
	if !ok {
		return Profile{}, fmt.Errorf("%w: %q", ErrUnknownProfile, id)
	}
	return profile.clone(), nil
}

func (r *Registry) IDs() []string {
	ids := make([]string, 0, len(r.profiles))
	for id := range r.profiles {
		ids = append(ids, id)
	}
	slices.Sort(ids)
	return ids
}
