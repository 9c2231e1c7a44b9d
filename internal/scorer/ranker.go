package scorer

import (
	"fmt"
	"sort"

	"github.com/rotisserie/eris"
	"go.uber.org/zap"

	"github.com/sells-group/insurance-advisor/internal/estimate"
	"github.com/sells-group/insurance-advisor/internal/match"
	"github.com/sells-group/insurance-advisor/internal/model"
	"github.com/sells-group/insurance-advisor/internal/refdata"
)

// Profile defaults applied when the caller leaves the free-text fields empty.
const (
	defaultCoverType  = "Flat"
	defaultPolicyType = "Pure Term"
)

// Ranker orchestrates needs calculation, policy matching, suitability
// scoring, and premium estimation across every insurer in the snapshot.
// A Ranker is stateless between calls and safe for concurrent use.
type Ranker struct {
	snap *refdata.Snapshot
	cfg  Config
}

// NewRanker creates a Ranker over an immutable reference-data snapshot.
func NewRanker(snap *refdata.Snapshot, cfg Config) *Ranker {
	return &Ranker{snap: snap, cfg: cfg}
}

// Recommend produces the ranked shortlist for one applicant. An empty
// shortlist is a valid outcome; only missing reference data is an error.
func (r *Ranker) Recommend(profile model.Profile) (*model.Advice, error) {
	if r.snap == nil || len(r.snap.Insurers) == 0 {
		return nil, eris.Wrap(refdata.ErrNoData, "ranker: recommend")
	}
	if !profile.Numeric() {
		return nil, eris.New("ranker: profile contains non-finite numeric fields")
	}

	if profile.CoverType == "" {
		profile.CoverType = defaultCoverType
	}
	if profile.PolicyType == "" {
		profile.PolicyType = defaultPolicyType
	}

	recommendedCover := estimate.RecommendedCover(
		profile.Income, profile.Liabilities, profile.Age, profile.Assets)

	var results []model.Recommendation
	for _, insurer := range r.snap.Insurers {
		rec, ok := r.evaluate(profile, insurer, recommendedCover)
		if !ok {
			continue
		}
		results = append(results, rec)
	}

	// Stable sort keeps reference-data order for equal scores, which makes
	// the ranking deterministic run to run.
	sort.SliceStable(results, func(i, j int) bool {
		return results[i].Score > results[j].Score
	})
	if len(results) > r.cfg.TopN {
		results = results[:r.cfg.TopN]
	}

	zap.L().Info("ranker: recommendation complete",
		zap.Int("candidates", len(results)),
		zap.Float64("recommended_cover", recommendedCover),
	)

	return &model.Advice{
		Analysis: model.Analysis{
			RecommendedCover: recommendedCover,
			Logic: fmt.Sprintf(
				"Calculated based on 20x annual income (%.0f) plus liabilities (%.0f).",
				profile.Income, profile.Liabilities),
		},
		Recommendations: results,
	}, nil
}

// evaluate runs the per-insurer pipeline. The boolean is false when the
// insurer is excluded: no qualifying catalogue entry, or hard-disqualified.
func (r *Ranker) evaluate(profile model.Profile, insurer model.InsurerStat, cover float64) (model.Recommendation, bool) {
	product, ok := match.Policy(insurer.Name, r.snap.Products, profile.PolicyType)
	if !ok {
		zap.L().Debug("ranker: no catalogue match",
			zap.String("insurer", insurer.Name),
			zap.String("policy_type", profile.PolicyType),
		)
		return model.Recommendation{}, false
	}

	outcome := Suitability(profile, product)
	if outcome.Disqualified() {
		zap.L().Debug("ranker: applicant ineligible",
			zap.String("insurer", insurer.Name),
			zap.String("product", product.Metadata.ProductName),
		)
		return model.Recommendation{}, false
	}

	premium := estimate.Premium(estimate.PremiumInput{
		Age:        profile.Age,
		SumInsured: cover,
		Smoker:     profile.Smoker,
		ROP:        profile.WantsROP,
		Gender:     profile.Gender,
		Insurer:    insurer.Name,
		CoverType:  profile.CoverType,
		PolicyType: profile.PolicyType,
	})

	score := r.cfg.CSRWeight*insurer.CSR +
		r.cfg.SolvencyWeight*insurer.Solvency +
		float64(outcome.Score) -
		float64(premium)/r.cfg.PremiumDivisor

	return model.Recommendation{
		Company:         insurer.Name,
		ProductName:     product.Metadata.ProductName,
		USP:             product.USP(),
		PremiumEstimate: premium,
		CSR:             insurer.CSR,
		Solvency:        insurer.Solvency,
		Score:           score,
		Suitability:     outcome.Score,
		Features:        product.Features,
	}, true
}
