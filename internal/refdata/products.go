package refdata

import (
	"encoding/json"
	"os"

	"github.com/rotisserie/eris"

	"github.com/sells-group/insurance-advisor/internal/model"
)

// LoadProducts reads the product catalogue JSON. The file holds a single
// "policies" array; catalogue order is preserved because the matcher's
// first-match-wins rule depends on it.
func LoadProducts(path string) ([]model.Product, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, eris.Wrapf(err, "refdata: read products %s", path)
	}

	var catalogue struct {
		Policies []model.Product `json:"policies"`
	}
	if err := json.Unmarshal(data, &catalogue); err != nil {
		return nil, eris.Wrapf(err, "refdata: parse products %s", path)
	}

	return catalogue.Policies, nil
}
