package model

import "time"

// Recommendation is one ranked insurer/product pair. Field names preserve
// the wire shape the frontend consumes.
type Recommendation struct {
	Company         string   `json:"company"`
	ProductName     string   `json:"product_name"`
	USP             string   `json:"usp"`
	PremiumEstimate int      `json:"premium_estimate"`
	CSR             float64  `json:"csr"`
	Solvency        float64  `json:"solvency"`
	Score           float64  `json:"score"`
	Suitability     int      `json:"suitability"`
	Features        Features `json:"features"`
}

// Analysis explains how the recommended cover was derived.
type Analysis struct {
	RecommendedCover float64 `json:"recommended_cover"`
	Logic            string  `json:"logic"`
}

// Advice is the full output of one ranking call. An empty Recommendations
// slice is a valid outcome, distinct from a data-unavailable error.
type Advice struct {
	Analysis        Analysis         `json:"analysis"`
	Recommendations []Recommendation `json:"recommendations"`
}

// RunStatus represents the state of a stored recommendation run.
type RunStatus string

const (
	RunStatusQueued   RunStatus = "queued"
	RunStatusComplete RunStatus = "complete"
	RunStatusFailed   RunStatus = "failed"
)

// Run is an audit record of a single recommendation request.
type Run struct {
	ID        string    `json:"id"`
	Profile   Profile   `json:"profile"`
	Status    RunStatus `json:"status"`
	Result    *Advice   `json:"result,omitempty"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
