// Package estimate provides coverage-needs and premium estimation for the
// recommendation engine.
package estimate

import "time"

// ageBand maps an inclusive age range to its income multiplier.
type ageBand struct {
	minAge, maxAge int
	multiplier     float64
}

// incomeMultipliers is the human-life-value step table. Ages outside every
// band fall back to 20x.
var incomeMultipliers = []ageBand{
	{18, 35, 25},
	{36, 40, 20},
	{41, 45, 15},
	{46, 50, 12},
	{51, 55, 10},
	{56, 60, 5},
}

const fallbackMultiplier = 20

// RecommendedCover computes the suggested sum insured from income, open
// liabilities, and deductible assets. Never returns a negative value.
func RecommendedCover(income, liabilities float64, age int, assets float64) float64 {
	multiplier := float64(fallbackMultiplier)
	for _, band := range incomeMultipliers {
		if age >= band.minAge && age <= band.maxAge {
			multiplier = band.multiplier
			break
		}
	}

	needs := income*multiplier + liabilities - assets
	if needs < 0 {
		return 0
	}
	return needs
}

// AgeFromDOB computes completed years between dob and now.
func AgeFromDOB(dob, now time.Time) int {
	age := now.Year() - dob.Year()
	if now.Month() < dob.Month() || (now.Month() == dob.Month() && now.Day() < dob.Day()) {
		age--
	}
	return age
}
