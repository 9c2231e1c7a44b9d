package advisor

import (
	"encoding/json"
	"time"

	"github.com/rotisserie/eris"

	"github.com/sells-group/insurance-advisor/internal/estimate"
	"github.com/sells-group/insurance-advisor/internal/model"
	"github.com/sells-group/insurance-advisor/pkg/anthropic"
)

const (
	toolRecommendedCover = "calculate_recommended_cover"
	toolInsurancePlan    = "calculate_insurance_plan"
)

func toolDefinitions() []anthropic.Tool {
	return []anthropic.Tool{
		{
			Name: toolRecommendedCover,
			Description: "Calculates the recommended life insurance cover (sum assured). " +
				"Provide dob in YYYY-MM-DD format; use age_override only when no date of birth is available.",
			InputSchema: anthropic.InputSchema{
				Properties: map[string]any{
					"income":       map[string]any{"type": "number", "description": "Annual income in INR"},
					"dob":          map[string]any{"type": "string", "description": "Date of birth, YYYY-MM-DD"},
					"age_override": map[string]any{"type": "integer", "description": "Age in years, only when dob is unknown"},
					"liabilities":  map[string]any{"type": "number", "description": "Outstanding loans and debts in INR"},
					"assets":       map[string]any{"type": "number", "description": "Savings and assets to deduct, in INR"},
				},
				Required: []string{"income"},
			},
		},
		{
			Name: toolInsurancePlan,
			Description: "Ranks term insurance plans for a fully profiled applicant. " +
				"Call only after gathering age, income, smoker status, gender, cover type and policy type.",
			InputSchema: anthropic.InputSchema{
				Properties: map[string]any{
					"age":         map[string]any{"type": "integer"},
					"income":      map[string]any{"type": "number", "description": "Annual income in INR"},
					"liabilities": map[string]any{"type": "number"},
					"smoker":      map[string]any{"type": "boolean"},
					"gender":      map[string]any{"type": "string"},
					"is_rop":      map[string]any{"type": "boolean", "description": "Whether the applicant wants return of premium"},
					"cover_type":  map[string]any{"type": "string", "description": "Flat, Increasing or Decreasing"},
					"policy_type": map[string]any{"type": "string", "description": "Pure Term, Return of Premium, TULIP, Joint or Increased"},
				},
				Required: []string{"age", "income", "smoker", "gender"},
			},
		},
	}
}

type coverArgs struct {
	Income      float64 `json:"income"`
	DOB         string  `json:"dob"`
	AgeOverride *int    `json:"age_override"`
	Liabilities float64 `json:"liabilities"`
	Assets      float64 `json:"assets"`
}

type coverResult struct {
	RecommendedCover float64 `json:"recommended_cover"`
	CalculatedAge    int     `json:"calculated_age"`
}

// runTool dispatches one tool_use block. The plan result is returned
// separately so the caller can attach it to the chat response.
func (a *Advisor) runTool(name string, input json.RawMessage) (string, *model.Advice, error) {
	switch name {
	case toolRecommendedCover:
		payload, err := a.recommendedCover(input)
		return payload, nil, err
	case toolInsurancePlan:
		return a.insurancePlan(input)
	default:
		return "", nil, eris.Errorf("advisor: unknown tool %q", name)
	}
}

func (a *Advisor) recommendedCover(input json.RawMessage) (string, error) {
	var args coverArgs
	if err := json.Unmarshal(input, &args); err != nil {
		return "", eris.Wrap(err, "advisor: decode cover input")
	}

	age := -1
	if args.DOB != "" {
		dob, err := time.Parse("2006-01-02", args.DOB)
		if err == nil {
			age = estimate.AgeFromDOB(dob, time.Now())
		}
	}
	// Fall back to the model-supplied age when the DOB is absent or unparseable.
	if age < 0 && args.AgeOverride != nil {
		age = *args.AgeOverride
	}
	if age < 0 {
		return "", eris.New("advisor: could not determine age, provide dob as YYYY-MM-DD")
	}

	cover := estimate.RecommendedCover(args.Income, args.Liabilities, age, args.Assets)
	return marshalPayload(coverResult{RecommendedCover: cover, CalculatedAge: age})
}

func (a *Advisor) insurancePlan(input json.RawMessage) (string, *model.Advice, error) {
	var profile model.Profile
	if err := json.Unmarshal(input, &profile); err != nil {
		return "", nil, eris.Wrap(err, "advisor: decode plan input")
	}

	advice, err := a.ranker.Recommend(profile)
	if err != nil {
		return "", nil, eris.Wrap(err, "advisor: rank plans")
	}

	payload, err := marshalPayload(advice)
	if err != nil {
		return "", nil, err
	}
	return payload, advice, nil
}

func marshalPayload(v any) (string, error) {
	b, err := json.Marshal(v)
	if err != nil {
		return "", eris.Wrap(err, "advisor: encode tool result")
	}
	return string(b), nil
}

func errorPayload(err error) string {
	b, _ := json.Marshal(map[string]string{"error": err.Error()}) //nolint:errcheck
	return string(b)
}
