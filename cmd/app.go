package main

import (
	"context"

	"github.com/sells-group/insurance-advisor/internal/refdata"
	"github.com/sells-group/insurance-advisor/internal/scorer"
	"github.com/sells-group/insurance-advisor/internal/store"
)

// loadSnapshot reads the reference datasets named in config.
func loadSnapshot(ctx context.Context) (*refdata.Snapshot, error) {
	return refdata.Load(ctx, refdata.Paths{
		Claims:      cfg.Data.ClaimsPath,
		Products:    cfg.Data.ProductsPath,
		Eligibility: cfg.Data.EligibilityPath,
	})
}

// initRanker builds a ranker, applying a weights file when one is given.
func initRanker(snap *refdata.Snapshot, weightsPath string) (*scorer.Ranker, error) {
	rcfg := scorer.DefaultConfig()
	if weightsPath != "" {
		var err error
		rcfg, err = scorer.LoadConfig(weightsPath)
		if err != nil {
			return nil, err
		}
	}
	return scorer.NewRanker(snap, rcfg), nil
}

func initStore(ctx context.Context) (store.Store, error) {
	st, err := store.Open(ctx, cfg.Store.Driver, cfg.Store.DatabaseURL)
	if err != nil {
		return nil, err
	}
	if err := st.Migrate(ctx); err != nil {
		st.Close() //nolint:errcheck
		return nil, err
	}
	return st, nil
}
