package scorer

import (
	"context"

	"github.com/rotisserie/eris"
	"go.uber.org/zap"

	"github.com/sells-group/insurance-advisor/internal/model"
	"github.com/sells-group/insurance-advisor/internal/store"
)

// SaveRun records a completed recommendation as an audit run.
func SaveRun(ctx context.Context, st store.Store, profile model.Profile, advice *model.Advice) (*model.Run, error) {
	run, err := st.CreateRun(ctx, profile)
	if err != nil {
		return nil, eris.Wrap(err, "scorer: create run")
	}

	if err := st.UpdateRunResult(ctx, run.ID, advice); err != nil {
		return nil, eris.Wrapf(err, "scorer: save run %s", run.ID)
	}

	run.Status = model.RunStatusComplete
	run.Result = advice

	zap.L().Info("scorer: run saved",
		zap.String("run_id", run.ID),
		zap.Int("recommendations", len(advice.Recommendations)),
	)

	return run, nil
}
