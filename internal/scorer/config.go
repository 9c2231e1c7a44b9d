package scorer

import (
	"fmt"
	"os"
	"strings"

	"github.com/rotisserie/eris"
	"gopkg.in/yaml.v3"
)

// Config holds the composite-score weights used by the Ranker.
type Config struct {
	CSRWeight      float64 `yaml:"csr_weight" mapstructure:"csr_weight"`
	SolvencyWeight float64 `yaml:"solvency_weight" mapstructure:"solvency_weight"`
	PremiumDivisor float64 `yaml:"premium_divisor" mapstructure:"premium_divisor"`
	TopN           int     `yaml:"top_n" mapstructure:"top_n"`
}

// DefaultConfig returns the production weights: composite score is
// csr + 2*solvency + suitability - premium/2500, top 3 results.
func DefaultConfig() Config {
	return Config{
		CSRWeight:      1,
		SolvencyWeight: 2,
		PremiumDivisor: 2500,
		TopN:           3,
	}
}

// Validate checks that a Config is internally consistent.
func Validate(c Config) error {
	var errs []string

	if c.CSRWeight < 0 {
		errs = append(errs, "csr_weight must be >= 0")
	}
	if c.SolvencyWeight < 0 {
		errs = append(errs, "solvency_weight must be >= 0")
	}
	if c.PremiumDivisor <= 0 {
		errs = append(errs, "premium_divisor must be > 0")
	}
	if c.TopN <= 0 {
		errs = append(errs, fmt.Sprintf("top_n must be > 0 (got %d)", c.TopN))
	}

	if len(errs) > 0 {
		return eris.Errorf("scorer: config validation failed: %s", strings.Join(errs, "; "))
	}
	return nil
}

// LoadConfig reads ranker weights from a YAML file with a top-level
// "ranker" key. Absent keys keep their defaults.
func LoadConfig(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, eris.Wrapf(err, "scorer: read config %s", path)
	}

	wrapper := struct {
		Ranker Config `yaml:"ranker"`
	}{Ranker: DefaultConfig()}

	if err := yaml.Unmarshal(data, &wrapper); err != nil {
		return Config{}, eris.Wrap(err, "scorer: parse config")
	}

	if err := Validate(wrapper.Ranker); err != nil {
		return Config{}, err
	}
	return wrapper.Ranker, nil
}
