package scorer

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/sells-group/insurance-advisor/internal/model"
)

func eligibleProduct(features model.Features) *model.Product {
	return &model.Product{
		Metadata: model.ProductMetadata{
			InsurerName: "HDFC Life",
			ProductName: "Click 2 Protect",
		},
		Features: features,
		Eligibility: model.Eligibility{
			MinAge: 18, MaxAge: 65, MinIncome: 0,
		},
	}
}

func TestSuitability_NoProduct(t *testing.T) {
	o := Suitability(model.Profile{Age: 30}, nil)
	assert.Equal(t, OutcomeNoMatch, o.Kind)
	assert.Equal(t, -50, o.Score)
	assert.False(t, o.Disqualified())
}

func TestSuitability_HardAgeFilter(t *testing.T) {
	p := eligibleProduct(model.Features{"rop": true, "critical_illness": true})
	p.Eligibility.MinAge = 25

	// One year below the minimum disqualifies regardless of feature flags.
	o := Suitability(model.Profile{Age: 24, Income: 1_000_000, WantsROP: true}, p)
	assert.Equal(t, OutcomeIneligible, o.Kind)
	assert.Equal(t, -1000, o.Score)
	assert.True(t, o.Disqualified())

	o = Suitability(model.Profile{Age: 66, Income: 1_000_000}, eligibleProduct(nil))
	assert.Equal(t, OutcomeIneligible, o.Kind)
}

func TestSuitability_HardIncomeFilter(t *testing.T) {
	p := eligibleProduct(nil)
	p.Eligibility.MinIncome = 500_000

	o := Suitability(model.Profile{Age: 30, Income: 499_999}, p)
	assert.Equal(t, OutcomeIneligible, o.Kind)
	assert.Equal(t, -1000, o.Score)
}

func TestSuitability_ROPPreference(t *testing.T) {
	wants := model.Profile{Age: 30, Income: 1_000_000, WantsROP: true}

	o := Suitability(wants, eligibleProduct(model.Features{"rop": true}))
	assert.Equal(t, 20, o.Score)

	o = Suitability(wants, eligibleProduct(model.Features{}))
	assert.Equal(t, -30, o.Score)

	// No preference: a plan offering ROP is neutral.
	indifferent := model.Profile{Age: 30, Income: 1_000_000}
	o = Suitability(indifferent, eligibleProduct(model.Features{"rop": true}))
	assert.Equal(t, 0, o.Score)
}

func TestSuitability_BudgetBoost(t *testing.T) {
	cheap := eligibleProduct(model.Features{"cheap": true})

	o := Suitability(model.Profile{Age: 30, Income: 400_000}, cheap)
	assert.Equal(t, 15, o.Score)

	// Higher income gets no budget boost.
	o = Suitability(model.Profile{Age: 30, Income: 600_000}, cheap)
	assert.Equal(t, 0, o.Score)
}

func TestSuitability_FeatureBonuses(t *testing.T) {
	p := eligibleProduct(model.Features{
		"critical_illness": true,
		"wop":              true,
		"govt_backed":      true,
		"whole_life":       true,
	})

	// 5 + 3 + 2 + 2
	o := Suitability(model.Profile{Age: 30, Income: 1_000_000}, p)
	assert.Equal(t, OutcomeEligible, o.Kind)
	assert.Equal(t, 12, o.Score)
}
