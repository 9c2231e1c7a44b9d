package estimate

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func baseInput() PremiumInput {
	return PremiumInput{
		Age:        30,
		SumInsured: 10_000_000,
		Gender:     "Male",
		CoverType:  "Flat",
		PolicyType: "Pure Term",
	}
}

func TestPremium_Benchmark(t *testing.T) {
	// All factors 1.0: base rate * cover factor 1.0 = 12000.
	assert.Equal(t, 12000, Premium(baseInput()))
}

func TestPremium_MonotonicInSumInsured(t *testing.T) {
	in := baseInput()
	prev := 0
	for cover := 5_000_000.0; cover <= 100_000_000; cover += 5_000_000 {
		in.SumInsured = cover
		p := Premium(in)
		assert.GreaterOrEqual(t, p, prev, "cover %.0f", cover)
		prev = p
	}
}

func TestPremium_SmokerLoading(t *testing.T) {
	in := baseInput()
	nonSmoker := Premium(in)
	in.Smoker = true
	smoker := Premium(in)

	// 1.5x loading.
	assert.Equal(t, 18000, smoker)
	assert.GreaterOrEqual(t, smoker, nonSmoker)
}

func TestPremium_AgeFactor(t *testing.T) {
	in := baseInput()
	in.Age = 40
	// 1 + (40-30)*0.05 = 1.5
	assert.Equal(t, 18000, Premium(in))

	in.Age = 25 // no loading below 30
	assert.Equal(t, 12000, Premium(in))
}

func TestPremium_GenderDiscount(t *testing.T) {
	in := baseInput()
	in.Gender = "Female"
	// 12000 * 0.85
	assert.Equal(t, 10200, Premium(in))
}

func TestPremium_MarketFactorOrderedSubstring(t *testing.T) {
	in := baseInput()
	in.Insurer = "HDFC Life Insurance Co. Ltd."
	assert.Equal(t, 13800, Premium(in)) // 12000 * 1.15

	in.Insurer = "Pramerica Life"
	assert.Equal(t, 10800, Premium(in)) // 12000 * 0.90

	in.Insurer = "Unknown Insurer"
	assert.Equal(t, 12000, Premium(in)) // default 1.0
}

func TestPremium_CoverTypeFactors(t *testing.T) {
	in := baseInput()
	in.CoverType = "Increasing Cover"
	assert.Equal(t, 14400, Premium(in)) // 1.2

	in.CoverType = "Decreasing Cover"
	assert.Equal(t, 10800, Premium(in)) // 0.9
}

func TestPremium_PolicyTypePrecedence(t *testing.T) {
	in := baseInput()

	// "joint" wins outright even when other keywords appear.
	in.PolicyType = "Joint Return of Premium"
	assert.Equal(t, 20400, Premium(in)) // 12000 * 1.7

	in.PolicyType = "TULIP"
	assert.Equal(t, 18000, Premium(in)) // 1.5

	// "return of premium" forces the ROP factor even with the flag false.
	in.PolicyType = "Return of Premium"
	assert.Equal(t, 22800, Premium(in)) // 12000 * 1.9

	// "increased" forces the increasing cover-type factor.
	in.PolicyType = "Increased Sum Assured"
	assert.Equal(t, 14400, Premium(in)) // 1.2
}

func TestPremium_ROPFlagNotDoubled(t *testing.T) {
	in := baseInput()
	in.ROP = true
	in.PolicyType = "Return of Premium"
	// Flag sets 1.9 and the policy-type rule re-asserts the same factor;
	// the loading must not compound.
	assert.Equal(t, 22800, Premium(in))
}
