package refdata

import (
	"context"

	"github.com/sells-group/insurance-advisor/internal/model"
)

// Eligibility dataset column names and fallbacks for blank cells.
const (
	colCategory  = "Category"
	colCondition = "Condition / Profile"
	colImpact    = "Impact on Eligibility"

	defaultCategory  = "General"
	defaultCondition = "Unknown"
	defaultImpact    = "Review needed"
)

// LoadEligibilityRules reads the eligibility reference CSV. The rules are
// advisory text only; nothing in the scoring path evaluates them.
func LoadEligibilityRules(ctx context.Context, path string) ([]model.EligibilityRule, error) {
	rows, err := readCSVRows(ctx, path)
	if err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, nil
	}

	header := rows[0]
	categoryIdx := columnIndex(header, colCategory)
	conditionIdx := columnIndex(header, colCondition)
	impactIdx := columnIndex(header, colImpact)

	rules := make([]model.EligibilityRule, 0, len(rows)-1)
	for _, row := range rows[1:] {
		rule := model.EligibilityRule{
			Category:  cell(row, categoryIdx),
			Condition: cell(row, conditionIdx),
			Impact:    cell(row, impactIdx),
		}
		if rule.Category == "" {
			rule.Category = defaultCategory
		}
		if rule.Condition == "" {
			rule.Condition = defaultCondition
		}
		if rule.Impact == "" {
			rule.Impact = defaultImpact
		}
		rules = append(rules, rule)
	}

	return rules, nil
}
