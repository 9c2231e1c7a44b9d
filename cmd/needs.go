package main

import (
	"fmt"
	"time"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"

	"github.com/sells-group/insurance-advisor/internal/estimate"
)

var needsCmd = &cobra.Command{
	Use:   "needs",
	Short: "Calculate recommended life cover for an applicant",
	Example: `  needs --income 2000000 --age 35
  needs --income 1500000 --dob 1988-04-12 --liabilities 3000000 --assets 500000`,
	RunE: func(cmd *cobra.Command, _ []string) error {
		income, _ := cmd.Flags().GetFloat64("income")
		liabilities, _ := cmd.Flags().GetFloat64("liabilities")
		assets, _ := cmd.Flags().GetFloat64("assets")
		age, _ := cmd.Flags().GetInt("age")
		dob, _ := cmd.Flags().GetString("dob")

		if dob != "" {
			d, err := time.Parse("2006-01-02", dob)
			if err != nil {
				return eris.Wrapf(err, "needs: parse --dob %q (want YYYY-MM-DD)", dob)
			}
			age = estimate.AgeFromDOB(d, time.Now())
		}
		if age <= 0 {
			return eris.New("needs: provide --age or --dob")
		}

		cover := estimate.RecommendedCover(income, liabilities, age, assets)

		fmt.Printf("Age:               %d\n", age)
		fmt.Printf("Annual income:     ₹%s\n", formatINR(income))
		fmt.Printf("Liabilities:       ₹%s\n", formatINR(liabilities))
		fmt.Printf("Assets:            ₹%s\n", formatINR(assets))
		fmt.Printf("Recommended cover: ₹%s\n", formatINR(cover))
		return nil
	},
}

func init() {
	f := needsCmd.Flags()
	f.Float64("income", 0, "annual income in INR")
	f.Float64("liabilities", 0, "outstanding loans and debts in INR")
	f.Float64("assets", 0, "savings and assets to deduct, in INR")
	f.Int("age", 0, "applicant age in years")
	f.String("dob", "", "date of birth (YYYY-MM-DD), overrides --age")
	needsCmd.MarkFlagRequired("income") //nolint:errcheck
	rootCmd.AddCommand(needsCmd)
}

// formatINR renders an amount with thousands separators. Paise are dropped;
// every amount in the engine is whole rupees.
func formatINR(amount float64) string {
	s := fmt.Sprintf("%.0f", amount)
	neg := false
	if len(s) > 0 && s[0] == '-' {
		neg = true
		s = s[1:]
	}
	var result []byte
	for i, c := range s {
		if i > 0 && (len(s)-i)%3 == 0 {
			result = append(result, ',')
		}
		result = append(result, byte(c))
	}
	if neg {
		return "-" + string(result)
	}
	return string(result)
}
