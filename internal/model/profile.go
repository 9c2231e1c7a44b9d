// Package model defines the domain types shared across the recommendation engine.
package model

import "math"

// Profile holds the applicant data gathered before a recommendation call.
// The engine only reads profiles; it never mutates them.
type Profile struct {
	Age         int     `json:"age"`
	Income      float64 `json:"income"`
	Liabilities float64 `json:"liabilities"`
	Assets      float64 `json:"assets,omitempty"`
	Smoker      bool    `json:"smoker"`
	WantsROP    bool    `json:"is_rop"`
	Gender      string  `json:"gender"`
	CoverType   string  `json:"cover_type"`
	PolicyType  string  `json:"policy_type"`
}

// Numeric reports whether all numeric fields are finite. Non-finite values
// would propagate through every factor and poison the ranking, so callers
// reject them up front.
func (p Profile) Numeric() bool {
	for _, v := range []float64{p.Income, p.Liabilities, p.Assets} {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return false
		}
	}
	return true
}
