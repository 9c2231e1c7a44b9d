package refdata

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sells-group/insurance-advisor/internal/model"
)

func TestLoadInsurerStats_CSV(t *testing.T) {
	stats, err := LoadInsurerStats(context.Background(), "testdata/claims.csv")
	require.NoError(t, err)

	// Empty-name row is dropped; unparseable numerics coerce to 0.
	require.Len(t, stats, 3)
	assert.Equal(t, model.InsurerStat{Name: "HDFC Life", CSR: 99.5, Solvency: 1.9}, stats[0])
	assert.Equal(t, model.InsurerStat{Name: "ICICI Prudential", CSR: 97.8, Solvency: 2.0}, stats[1])
	assert.Equal(t, model.InsurerStat{Name: "SBI Life", CSR: 0, Solvency: 0}, stats[2])
}

func TestLoadInsurerStats_MissingFile(t *testing.T) {
	_, err := LoadInsurerStats(context.Background(), "testdata/absent.csv")
	require.Error(t, err)
}

func TestLoadProducts(t *testing.T) {
	products, err := LoadProducts("testdata/products.json")
	require.NoError(t, err)
	require.Len(t, products, 2)

	first := products[0]
	assert.Equal(t, "HDFC Life Insurance", first.Metadata.InsurerName)
	assert.Equal(t, "Click 2 Protect Super", first.Metadata.ProductName)
	assert.True(t, first.Features.Enabled("critical_illness"))
	assert.Equal(t, 300000.0, first.Eligibility.MinIncome)

	// Second entry omits eligibility entirely: catalogue defaults apply.
	second := products[1]
	assert.Equal(t, model.DefaultMinAge, second.Eligibility.MinAge)
	assert.Equal(t, model.DefaultMaxAge, second.Eligibility.MaxAge)
}

func TestLoadEligibilityRules(t *testing.T) {
	rules, err := LoadEligibilityRules(context.Background(), "testdata/eligibility.csv")
	require.NoError(t, err)
	require.Len(t, rules, 3)

	assert.Equal(t, "Income", rules[0].Category)
	assert.Equal(t, "Annual income below 3 LPA", rules[0].Condition)

	// Blank row picks up every fallback.
	assert.Equal(t, "General", rules[2].Category)
	assert.Equal(t, "Unknown", rules[2].Condition)
	assert.Equal(t, "Review needed", rules[2].Impact)
}

func TestLoad_Snapshot(t *testing.T) {
	snap, err := Load(context.Background(), Paths{
		Claims:      "testdata/claims.csv",
		Products:    "testdata/products.json",
		Eligibility: "testdata/eligibility.csv",
	})
	require.NoError(t, err)

	assert.Len(t, snap.Insurers, 3)
	assert.Len(t, snap.Products, 2)
	assert.Len(t, snap.Eligibility, 3)
}

func TestLoad_PropagatesFirstError(t *testing.T) {
	_, err := Load(context.Background(), Paths{
		Claims:      "testdata/absent.csv",
		Products:    "testdata/products.json",
		Eligibility: "testdata/eligibility.csv",
	})
	require.Error(t, err)
}

func TestEligibilityContext(t *testing.T) {
	snap := &Snapshot{Eligibility: []model.EligibilityRule{
		{Category: "Income", Condition: "Annual income below 3 LPA", Impact: "Not eligible for most insurers"},
	}}

	text := snap.EligibilityContext()
	assert.Contains(t, text, "### Term Insurance Eligibility Conditions:")
	assert.Contains(t, text, "- **Income**: If user matches 'Annual income below 3 LPA', then: Not eligible for most insurers")
}

func TestEligibilityContext_Empty(t *testing.T) {
	snap := &Snapshot{}
	assert.Equal(t, "No eligibility data available.", snap.EligibilityContext())

	var nilSnap *Snapshot
	assert.Equal(t, "No eligibility data available.", nilSnap.EligibilityContext())
}
