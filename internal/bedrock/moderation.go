package bedrock

import (
	"context"
	"fmt"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsbedrock "github.com/aws/aws-sdk-go-v2/service/bedrock"
	bedrocktypes "github.com/aws/aws-sdk-go-v2/service/bedrock/types"
	"github.com/aws/aws-sdk-go-v2/service/bedrockruntime"
	runtimetypes "github.com/aws/aws-sdk-go-v2/service/bedrockruntime/types"

	"github.com/finassist/policy-agent/internal/guardrail"
)

// Moderation implements guardrail.ModerationAPI on top of AWS Bedrock
// Guardrails: the control-plane client creates and describes policies, the
// runtime client applies them to text.
type Moderation struct {
	control *awsbedrock.Client
	runtime *bedrockruntime.Client
}

func NewModeration(clients *Clients) *Moderation {
	return &Moderation{
		control: clients.Control,
		runtime: clients.Runtime,
	}
}

func (m *Moderation) Apply(ctx context.Context, remoteID, version string, direction guardrail.Direction, text string) (*guardrail.ModerationOutcome, error) {
	source := runtimetypes.GuardrailContentSourceInput
	if direction == guardrail.DirectionOutput {
		source = runtimetypes.GuardrailContentSourceOutput
	}

	output, err := m.runtime.ApplyGuardrail(ctx, &bedrockruntime.ApplyGuardrailInput{
		GuardrailIdentifier: aws.String(remoteID),
		GuardrailVersion:    aws.String(version),
		Source:              source,
		Content: []runtimetypes.GuardrailContentBlock{
			&runtimetypes.GuardrailContentBlockMemberText{
				Value: runtimetypes.GuardrailTextBlock{Text: aws.String(text)},
			},
		},
	})
	if err != nil {
		return nil, fmt.Errorf("failed to apply guardrail %s: %w", remoteID, err)
	}

	outcome := &guardrail.ModerationOutcome{
		Intervened: output.Action == runtimetypes.GuardrailActionGuardrailIntervened,
	}
	if outcome.Intervened {
		outcome.Reason = interventionReason(output.Assessments)
		for _, out := range output.Outputs {
			if out.Text != nil && *out.Text != "" {
				outcome.OutputText = *out.Text
				break
			}
		}
	}

	return outcome, nil
}

func (m *Moderation) CreatePolicy(ctx context.Context, spec guardrail.PolicySpec) (string, error) {
	input := &awsbedrock.CreateGuardrailInput{
		Name:                    aws.String(spec.Name),
		Description:             aws.String(spec.Description),
		BlockedInputMessaging:   aws.String(spec.BlockedInputMessage),
		BlockedOutputsMessaging: aws.String(spec.BlockedOutputMessage),
		ContentPolicyConfig:     defaultContentPolicy(),
	}

	if len(spec.Topics) > 0 {
		topicPolicy := &bedrocktypes.GuardrailTopicPolicyConfig{}
		for _, topic := range spec.Topics {
			topicPolicy.TopicsConfig = append(topicPolicy.TopicsConfig, bedrocktypes.GuardrailTopicConfig{
				Name:       aws.String(topic.Name),
				Definition: aws.String(topic.Definition),
				Examples:   topic.Examples,
				Type:       bedrocktypes.GuardrailTopicTypeDeny,
			})
		}
		input.TopicPolicyConfig = topicPolicy
	}

	if len(spec.Words) > 0 {
		wordPolicy := &bedrocktypes.GuardrailWordPolicyConfig{}
		for _, word := range spec.Words {
			wordPolicy.WordsConfig = append(wordPolicy.WordsConfig, bedrocktypes.GuardrailWordConfig{
				Text: aws.String(word),
			})
		}
		input.WordPolicyConfig = wordPolicy
	}

	if len(spec.PII) > 0 {
		piiPolicy := &bedrocktypes.GuardrailSensitiveInformationPolicyConfig{}
		for _, rule := range spec.PII {
			piiPolicy.PiiEntitiesConfig = append(piiPolicy.PiiEntitiesConfig, bedrocktypes.GuardrailPiiEntityConfig{
				Type:   bedrocktypes.GuardrailPiiEntityType(rule.Category),
				Action: bedrocktypes.GuardrailSensitiveInformationAction(rule.Action),
			})
		}
		input.SensitiveInformationPolicyConfig = piiPolicy
	}

	if spec.GroundingThreshold > 0 {
		input.ContextualGroundingPolicyConfig = &bedrocktypes.GuardrailContextualGroundingPolicyConfig{
			FiltersConfig: []bedrocktypes.GuardrailContextualGroundingFilterConfig{
				{
					Type:      bedrocktypes.GuardrailContextualGroundingFilterTypeGrounding,
					Threshold: aws.Float64(spec.GroundingThreshold),
				},
			},
		}
	}

	output, err := m.control.CreateGuardrail(ctx, input)
	if err != nil {
		return "", fmt.Errorf("failed to create guardrail %s: %w", spec.Name, err)
	}
	if output.GuardrailId == nil {
		return "", fmt.Errorf("create guardrail %s returned no id", spec.Name)
	}

	return *output.GuardrailId, nil
}

func (m *Moderation) PolicyVersion(ctx context.Context, remoteID string) (string, error) {
	output, err := m.control.GetGuardrail(ctx, &awsbedrock.GetGuardrailInput{
		GuardrailIdentifier: aws.String(remoteID),
	})
	if err != nil {
		return "", fmt.Errorf("failed to describe guardrail %s: %w", remoteID, err)
	}
	if output.Version == nil || *output.Version == "" {
		return "", fmt.Errorf("guardrail %s has no version", remoteID)
	}

	return *output.Version, nil
}

// defaultContentPolicy is the baseline content filter set applied to every
// policy regardless of profile.
func defaultContentPolicy() *bedrocktypes.GuardrailContentPolicyConfig {
	filter := func(t bedrocktypes.GuardrailContentFilterType, in, out bedrocktypes.GuardrailFilterStrength) bedrocktypes.GuardrailContentFilterConfig {
		return bedrocktypes.GuardrailContentFilterConfig{Type: t, InputStrength: in, OutputStrength: out}
	}

	return &bedrocktypes.GuardrailContentPolicyConfig{
		FiltersConfig: []bedrocktypes.GuardrailContentFilterConfig{
			filter(bedrocktypes.GuardrailContentFilterTypeHate, bedrocktypes.GuardrailFilterStrengthMedium, bedrocktypes.GuardrailFilterStrengthMedium),
			filter(bedrocktypes.GuardrailContentFilterTypeInsults, bedrocktypes.GuardrailFilterStrengthMedium, bedrocktypes.GuardrailFilterStrengthMedium),
			filter(bedrocktypes.GuardrailContentFilterTypeSexual, bedrocktypes.GuardrailFilterStrengthHigh, bedrocktypes.GuardrailFilterStrengthHigh),
			filter(bedrocktypes.GuardrailContentFilterTypeViolence, bedrocktypes.GuardrailFilterStrengthHigh, bedrocktypes.GuardrailFilterStrengthHigh),
			filter(bedrocktypes.GuardrailContentFilterTypeMisconduct, bedrocktypes.GuardrailFilterStrengthHigh, bedrocktypes.GuardrailFilterStrengthHigh),
			// Prompt-attack filtering only applies to input
			filter(bedrocktypes.GuardrailContentFilterTypePromptAttack, bedrocktypes.GuardrailFilterStrengthHigh, bedrocktypes.GuardrailFilterStrengthNone),
		},
	}
}

// interventionReason extracts a human-readable reason from the assessment
// list, preferring denied topics over generic content filters.
func interventionReason(assessments []runtimetypes.GuardrailAssessment) string {
	var reasons []string

	for _, assessment := range assessments {
		if assessment.TopicPolicy != nil {
			for _, topic := range assessment.TopicPolicy.Topics {
				if topic.Name != nil {
					reasons = append(reasons, fmt.Sprintf("denied topic %q", *topic.Name))
				}
			}
		}
		if assessment.WordPolicy != nil {
			for _, word := range assessment.WordPolicy.CustomWords {
				if word.Match != nil {
					reasons = append(reasons, fmt.Sprintf("blocked word %q", *word.Match))
				}
			}
		}
		if assessment.ContentPolicy != nil {
			for _, filter := range assessment.ContentPolicy.Filters {
				reasons = append(reasons, fmt.Sprintf("content filter %s", filter.Type))
			}
		}
		if assessment.SensitiveInformationPolicy != nil && len(assessment.SensitiveInformationPolicy.PiiEntities) > 0 {
			reasons = append(reasons, "sensitive information detected")
		}
	}

	if len(reasons) == 0 {
		return "guardrail intervened"
	}
	return strings.Join(reasons, "; ")
}
