package estimate

import (
	"math"
	"strings"
)

// baseRate is the annual premium for the benchmark profile (age 30,
// non-smoker male, 1 crore flat pure-term cover).
const baseRate = 12000

// marketFactor is one entry of the insurer pricing tier table.
type marketFactor struct {
	name   string
	factor float64
}

// marketFactors holds simulated market rates per insurer brand tier.
// Matching is a case-insensitive substring check and the first hit wins,
// so this stays an ordered slice rather than a map.
var marketFactors = []marketFactor{
	{"HDFC Life", 1.15},
	{"ICICI Prudential", 1.12},
	{"SBI Life", 1.10},
	{"Max Life", 1.05},
	{"Bajaj Allianz Life", 1.00}, // benchmark
	{"TATA AIA", 1.02},
	{"Kotak Life", 0.95},
	{"Pramerica Life", 0.90},
	{"Aditya Birla", 1.00},
}

// PremiumInput holds every rating dimension of the multiplicative model.
type PremiumInput struct {
	Age        int
	SumInsured float64
	Smoker     bool
	ROP        bool
	Gender     string
	Insurer    string
	CoverType  string // "Flat", "Increasing", "Decreasing"
	PolicyType string // "Pure Term", "Return of Premium", "TULIP", "Joint", ...
}

// Premium estimates the annual premium for the given input by multiplying
// the base rate with independent rating factors. Always returns a value >= 0.
func Premium(in PremiumInput) int {
	market := 1.0
	for _, mf := range marketFactors {
		if strings.Contains(strings.ToLower(in.Insurer), strings.ToLower(mf.name)) {
			market = mf.factor
			break
		}
	}

	coverFactor := in.SumInsured / 10_000_000

	ageFactor := 1.0
	if in.Age > 30 {
		ageFactor = 1 + float64(in.Age-30)*0.05
	}

	smokerFactor := 1.0
	if in.Smoker {
		smokerFactor = 1.5
	}

	ropFactor := 1.0
	if in.ROP {
		ropFactor = 1.9
	}

	genderFactor := 1.0
	if strings.EqualFold(in.Gender, "female") {
		genderFactor = 0.85
	}

	coverTypeFactor := 1.0
	ct := strings.ToLower(in.CoverType)
	switch {
	case strings.Contains(ct, "increasing"):
		coverTypeFactor = 1.2
	case strings.Contains(ct, "decreasing"):
		coverTypeFactor = 0.9
	}

	// Policy-type rules are evaluated first-match-wins; later rules override
	// the ROP and cover-type factors instead of setting their own.
	policyTypeFactor := 1.0
	pt := strings.ToLower(in.PolicyType)
	switch {
	case strings.Contains(pt, "joint"):
		policyTypeFactor = 1.7 // spouse cover
	case strings.Contains(pt, "tulip"), strings.Contains(pt, "unit linked"):
		policyTypeFactor = 1.5 // investment component
	case strings.Contains(pt, "return of premium"):
		ropFactor = 1.9
	case strings.Contains(pt, "increasing"), strings.Contains(pt, "increased"):
		coverTypeFactor = 1.2
	}

	premium := baseRate * coverFactor * ageFactor * smokerFactor *
		ropFactor * genderFactor * market * coverTypeFactor * policyTypeFactor

	return int(math.Round(premium))
}
