package model

// InsurerStat holds one insurer's claims and solvency statistics from the
// claims dataset. Immutable after load.
type InsurerStat struct {
	Name     string  `json:"company"`
	CSR      float64 `json:"csr"`      // claim settlement ratio, 0-100
	Solvency float64 `json:"solvency"` // regulatory solvency ratio, >= 0
}
