package llm

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/google/generative-ai-go/genai"

	"github.com/KalebGordon/Rivoney/internal/ops"
	"github.com/KalebGordon/Rivoney/internal/resume"
)

// GapOracle proposes follow-up questions about gaps between a resume and a
// job description. In strict mode the response shape is enforced through a
// provider-side schema; loose mode only requests JSON output.
type GapOracle struct {
	client Client
	tier   ModelTier
}

// NewGapOracle creates a gap oracle on the given client.
func NewGapOracle(client Client) *GapOracle {
	return &GapOracle{client: client, tier: TierStandard}
}

// ProposeGaps asks the model for up to maxQuestions raw question items.
func (o *GapOracle) ProposeGaps(ctx context.Context, doc *resume.Document, jobDescription string, maxQuestions int, strict bool) ([]map[string]any, error) {
	prompt, err := buildGapPrompt(doc, jobDescription, maxQuestions)
	if err != nil {
		return nil, err
	}

	var raw string
	if strict {
		raw, err = o.client.GenerateStructuredJSON(ctx, prompt, o.tier, gapResponseSchema())
	} else {
		raw, err = o.client.GenerateJSON(ctx, prompt, o.tier)
	}
	if err != nil {
		return nil, &ErrOracleUnavailable{Stage: "gap analysis", Err: err}
	}

	var envelope struct {
		Questions []map[string]any `json:"questions"`
	}
	if err := json.Unmarshal([]byte(raw), &envelope); err != nil {
		return nil, fmt.Errorf("failed to decode gap response: %w", err)
	}
	return envelope.Questions, nil
}

// gapResponseSchema is the provider-side schema for strict-mode gap analysis.
// Gemini rejects unknown keys under a schema, so every field the prompt
// mentions must appear here.
func gapResponseSchema() *genai.Schema {
	return &genai.Schema{
		Type:     genai.TypeObject,
		Required: []string{"questions"},
		Properties: map[string]*genai.Schema{
			"questions": {
				Type: genai.TypeArray,
				Items: &genai.Schema{
					Type:     genai.TypeObject,
					Required: []string{"question", "jd_gap", "gap_reason", "coverage_status"},
					Properties: map[string]*genai.Schema{
						"question":        {Type: genai.TypeString},
						"jd_gap":          {Type: genai.TypeString},
						"gap_reason":      {Type: genai.TypeString},
						"coverage_status": {Type: genai.TypeString, Enum: []string{"missing", "weak"}},
						"answer_hint":     {Type: genai.TypeString},
						"target_section": {
							Type: genai.TypeString,
							Enum: []string{"work", "projects", "skills", "education", "certifications"},
						},
						"target_anchor":    {Type: genai.TypeString},
						"suggested_fields": {Type: genai.TypeArray, Items: &genai.Schema{Type: genai.TypeString}},
						"skill_tags":       {Type: genai.TypeArray, Items: &genai.Schema{Type: genai.TypeString}},
						"evidence_type": {
							Type: genai.TypeString,
							Enum: []string{"metric", "artifact", "responsibility", "toolstack", "scope", "outcome", "compliance"},
						},
						"priority":        {Type: genai.TypeString, Enum: []string{"high", "medium"}},
						"response_tier":   {Type: genai.TypeString, Enum: []string{"skill", "context", "highlight"}},
						"bullet_skeleton": {Type: genai.TypeString},
						"example_bullet":  {Type: genai.TypeString},
					},
				},
			},
		},
	}
}

// OpsOracle turns answered questions into edit operations. The six-variant
// operation shape cannot be expressed as a provider schema, so the response
// is requested as plain JSON and every item is validated downstream before
// it is applied.
type OpsOracle struct {
	client Client
	tier   ModelTier
}

// NewOpsOracle creates an operation oracle on the given client.
func NewOpsOracle(client Client) *OpsOracle {
	return &OpsOracle{client: client, tier: TierAdvanced}
}

// ProposeOperations asks the model for a list of raw operation items.
func (o *OpsOracle) ProposeOperations(ctx context.Context, doc *resume.Document, jobDescription string, qa []ops.QA) ([]json.RawMessage, error) {
	prompt, err := buildOpsPrompt(doc, jobDescription, qa)
	if err != nil {
		return nil, err
	}

	raw, err := o.client.GenerateJSON(ctx, prompt, o.tier)
	if err != nil {
		return nil, &ErrOracleUnavailable{Stage: "operation planning", Err: err}
	}

	var envelope struct {
		Operations []json.RawMessage `json:"operations"`
	}
	if err := json.Unmarshal([]byte(raw), &envelope); err != nil {
		return nil, fmt.Errorf("failed to decode operations response: %w", err)
	}
	return envelope.Operations, nil
}
