// Package scorer implements suitability scoring and composite ranking of
// insurer/product pairs for an applicant profile.
package scorer

import (
	"go.uber.org/zap"

	"github.com/sells-group/insurance-advisor/internal/model"
)

// OutcomeKind tags the result of a suitability evaluation.
type OutcomeKind int

const (
	// OutcomeNoMatch means no catalogue entry was available for the insurer.
	OutcomeNoMatch OutcomeKind = iota
	// OutcomeIneligible means an entry exists but a hard filter failed.
	OutcomeIneligible
	// OutcomeEligible means hard filters passed; Score holds the soft score.
	OutcomeEligible
)

// Sentinel score bands. The ranker distinguishes hard disqualification from
// a merely low soft score at the DisqualifyCutoff.
const (
	noMatchScore     = -50
	ineligibleScore  = -1000
	DisqualifyCutoff = -900
)

// Outcome is the tagged result of scoring one matched entry.
type Outcome struct {
	Kind  OutcomeKind
	Score int
}

// Disqualified reports whether the outcome falls in the hard-filter band.
func (o Outcome) Disqualified() bool {
	return o.Score <= DisqualifyCutoff
}

// Suitability evaluates how well a matched catalogue entry fits the
// applicant. Hard eligibility filters short-circuit all soft scoring.
func Suitability(profile model.Profile, p *model.Product) Outcome {
	if p == nil {
		return Outcome{Kind: OutcomeNoMatch, Score: noMatchScore}
	}

	elig := p.Eligibility
	if profile.Age < elig.MinAge || profile.Age > elig.MaxAge {
		return Outcome{Kind: OutcomeIneligible, Score: ineligibleScore}
	}
	if profile.Income < elig.MinIncome {
		return Outcome{Kind: OutcomeIneligible, Score: ineligibleScore}
	}

	score := 0

	// Return-of-premium preference. A plan offering ROP unasked is neutral:
	// the premium penalty already prices it.
	if profile.WantsROP {
		if p.Features.Enabled("rop") {
			score += 20
		} else {
			score -= 30
		}
	}

	// Budget fit for lower incomes.
	if profile.Income < 500_000 && p.Features.Enabled("cheap") {
		score += 15
	}

	// General feature bonuses.
	if p.Features.Enabled("critical_illness") {
		score += 5
	}
	if p.Features.Enabled("wop") {
		score += 3
	}
	if p.Features.Enabled("govt_backed") {
		score += 2
	}
	if p.Features.Enabled("whole_life") {
		score += 2
	}

	zap.L().Debug("scorer: suitability",
		zap.String("product", p.Metadata.ProductName),
		zap.Int("score", score),
	)

	return Outcome{Kind: OutcomeEligible, Score: score}
}
