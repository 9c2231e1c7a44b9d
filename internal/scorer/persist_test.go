package scorer

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sells-group/insurance-advisor/internal/model"
	"github.com/sells-group/insurance-advisor/internal/store"
)

func TestSaveRun(t *testing.T) {
	st, err := store.NewSQLite(":memory:")
	require.NoError(t, err)
	defer st.Close() //nolint:errcheck
	require.NoError(t, st.Migrate(context.Background()))

	profile := model.Profile{Age: 35, Income: 2_000_000, Gender: "Male"}
	advice := &model.Advice{
		Analysis: model.Analysis{RecommendedCover: 50_000_000, Logic: "test"},
		Recommendations: []model.Recommendation{
			{Company: "Secure Life", ProductName: "Secure Term", Score: 71.8},
		},
	}

	run, err := SaveRun(context.Background(), st, profile, advice)
	require.NoError(t, err)
	assert.Equal(t, model.RunStatusComplete, run.Status)

	stored, err := st.GetRun(context.Background(), run.ID)
	require.NoError(t, err)
	require.NotNil(t, stored.Result)
	assert.Equal(t, "Secure Life", stored.Result.Recommendations[0].Company)
}
