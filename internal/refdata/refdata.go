// Package refdata loads the reference datasets (insurer claims statistics,
// product catalogue, eligibility rules) into an immutable snapshot.
package refdata

import (
	"context"
	"fmt"
	"strings"

	"github.com/rotisserie/eris"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/sells-group/insurance-advisor/internal/model"
)

// ErrNoData indicates the insurer reference set is empty or was never
// loaded. Recommendation calls fail fast on it instead of emitting
// zero-filled results.
var ErrNoData = eris.New("refdata: no insurer data loaded")

// Paths locates the three reference datasets on disk.
type Paths struct {
	Claims      string // insurer claims/solvency CSV or XLSX
	Products    string // product catalogue JSON
	Eligibility string // eligibility rules CSV
}

// Snapshot is a process-lifetime, read-only view of the reference data.
// It is built once by Load and may be shared across concurrent readers
// without locking.
type Snapshot struct {
	Insurers    []model.InsurerStat
	Products    []model.Product
	Eligibility []model.EligibilityRule
}

// Load reads all three datasets concurrently and returns the assembled
// snapshot. The snapshot is only published after every load completes.
func Load(ctx context.Context, paths Paths) (*Snapshot, error) {
	var snap Snapshot

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		insurers, err := LoadInsurerStats(ctx, paths.Claims)
		if err != nil {
			return err
		}
		snap.Insurers = insurers
		return nil
	})
	g.Go(func() error {
		products, err := LoadProducts(paths.Products)
		if err != nil {
			return err
		}
		snap.Products = products
		return nil
	})
	g.Go(func() error {
		rules, err := LoadEligibilityRules(ctx, paths.Eligibility)
		if err != nil {
			return err
		}
		snap.Eligibility = rules
		return nil
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	zap.L().Info("refdata: snapshot loaded",
		zap.Int("insurers", len(snap.Insurers)),
		zap.Int("products", len(snap.Products)),
		zap.Int("eligibility_rules", len(snap.Eligibility)),
	)

	return &snap, nil
}

// EligibilityContext renders the eligibility rules as bullet-point text for
// inclusion in caller-side prompts. Pure formatting, no gating logic.
func (s *Snapshot) EligibilityContext() string {
	if s == nil || len(s.Eligibility) == 0 {
		return "No eligibility data available."
	}

	var b strings.Builder
	b.WriteString("### Term Insurance Eligibility Conditions:\n")
	for _, rule := range s.Eligibility {
		fmt.Fprintf(&b, "- **%s**: If user matches '%s', then: %s\n",
			rule.Category, rule.Condition, rule.Impact)
	}
	return b.String()
}

// columnIndex finds a header column by case-insensitive name, or -1.
func columnIndex(header []string, name string) int {
	for i, h := range header {
		if strings.EqualFold(strings.TrimSpace(h), name) {
			return i
		}
	}
	return -1
}

// cell returns the trimmed value at index i, or "" when out of range.
func cell(row []string, i int) string {
	if i < 0 || i >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[i])
}
