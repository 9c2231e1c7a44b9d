// Package match selects the catalogue entry that represents a requested
// policy category for a given insurer.
package match

import (
	"strings"

	"github.com/sells-group/insurance-advisor/internal/model"
)

// Policy returns the first catalogue entry belonging to the insurer that
// satisfies the category rule for the requested policy type, in catalogue
// order. The boolean is false when no entry qualifies; the insurer is then
// excluded from the ranking round entirely. There is deliberately no
// best-effort fallback to an unrelated category.
func Policy(insurer string, products []model.Product, policyType string) (*model.Product, bool) {
	insurerLower := strings.ToLower(insurer)
	requested := strings.ToLower(policyType)

	for i := range products {
		p := &products[i]
		if !strings.Contains(strings.ToLower(p.Metadata.InsurerName), insurerLower) {
			continue
		}
		if categoryMatches(p, requested) {
			return p, true
		}
	}
	return nil, false
}

// categoryMatches applies the ordered category rules. The default branch
// guards against mis-tagged catalogue rows: a row whose brochure type says
// "term insurance" but whose category says "unit linked" is not pure term.
func categoryMatches(p *model.Product, requested string) bool {
	brochure := strings.ToLower(p.Metadata.BrochureType)
	category := strings.ToLower(p.Metadata.ProductCategory)

	switch {
	case strings.Contains(requested, "tulip"), strings.Contains(requested, "unit linked"):
		return strings.Contains(brochure, "ulip") || strings.Contains(category, "unit linked")

	case strings.Contains(requested, "return of premium"):
		return strings.Contains(brochure, "return of premium") || strings.Contains(category, "savings")

	default: // pure term
		if !strings.Contains(brochure, "term insurance") && !strings.Contains(category, "pure risk") {
			return false
		}
		return !strings.Contains(category, "unit linked") && !strings.Contains(category, "savings")
	}
}
