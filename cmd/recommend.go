package main

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/sells-group/insurance-advisor/internal/model"
	"github.com/sells-group/insurance-advisor/internal/scorer"
)

var recommendCmd = &cobra.Command{
	Use:   "recommend",
	Short: "Rank term insurance plans for an applicant profile",
	Example: `  recommend --age 35 --income 2000000 --gender Male
  recommend --age 42 --income 1200000 --gender Female --smoker --policy-type "Return of Premium" --format csv --output plans.csv
  recommend --age 35 --income 2000000 --gender Male --save`,
	RunE: func(cmd *cobra.Command, _ []string) error {
		ctx := cmd.Context()

		profile, err := profileFromFlags(cmd)
		if err != nil {
			return err
		}

		format, _ := cmd.Flags().GetString("format")
		if format != "table" && format != "csv" && format != "json" {
			return eris.Errorf("recommend: --format must be table, csv or json (got %q)", format)
		}

		snap, err := loadSnapshot(ctx)
		if err != nil {
			return err
		}

		weightsPath, _ := cmd.Flags().GetString("weights")
		ranker, err := initRanker(snap, weightsPath)
		if err != nil {
			return err
		}

		advice, err := ranker.Recommend(profile)
		if err != nil {
			return err
		}

		if save, _ := cmd.Flags().GetBool("save"); save {
			st, err := initStore(ctx)
			if err != nil {
				return err
			}
			defer st.Close() //nolint:errcheck

			run, err := scorer.SaveRun(ctx, st, profile, advice)
			if err != nil {
				return err
			}
			zap.L().Info("run saved", zap.String("id", run.ID))
		}

		outputPath, _ := cmd.Flags().GetString("output")
		return outputAdvice(advice, format, outputPath)
	},
}

func profileFromFlags(cmd *cobra.Command) (model.Profile, error) {
	age, _ := cmd.Flags().GetInt("age")
	income, _ := cmd.Flags().GetFloat64("income")
	liabilities, _ := cmd.Flags().GetFloat64("liabilities")
	assets, _ := cmd.Flags().GetFloat64("assets")
	smoker, _ := cmd.Flags().GetBool("smoker")
	rop, _ := cmd.Flags().GetBool("rop")
	gender, _ := cmd.Flags().GetString("gender")
	coverType, _ := cmd.Flags().GetString("cover-type")
	policyType, _ := cmd.Flags().GetString("policy-type")

	if age <= 0 {
		return model.Profile{}, eris.New("recommend: --age is required")
	}

	return model.Profile{
		Age:         age,
		Income:      income,
		Liabilities: liabilities,
		Assets:      assets,
		Smoker:      smoker,
		WantsROP:    rop,
		Gender:      gender,
		CoverType:   coverType,
		PolicyType:  policyType,
	}, nil
}

func outputAdvice(advice *model.Advice, format, outputPath string) error {
	var w *os.File
	if outputPath != "" {
		var err error
		w, err = os.Create(outputPath)
		if err != nil {
			return eris.Wrapf(err, "recommend: create output file %s", outputPath)
		}
		defer w.Close() //nolint:errcheck
	} else {
		w = os.Stdout
	}

	switch format {
	case "csv":
		return writeAdviceCSV(w, advice)
	case "json":
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(advice)
	case "table":
		return writeAdviceTable(w, advice)
	default:
		return eris.Errorf("recommend: unsupported format %q", format)
	}
}

func writeAdviceCSV(w *os.File, advice *model.Advice) error {
	cw := csv.NewWriter(w)
	defer cw.Flush()

	header := []string{"company", "product_name", "premium_estimate", "csr", "solvency", "suitability", "score", "usp"}
	if err := cw.Write(header); err != nil {
		return eris.Wrap(err, "recommend: write CSV header")
	}

	for _, r := range advice.Recommendations {
		row := []string{
			r.Company,
			r.ProductName,
			fmt.Sprintf("%d", r.PremiumEstimate),
			fmt.Sprintf("%.2f", r.CSR),
			fmt.Sprintf("%.2f", r.Solvency),
			fmt.Sprintf("%d", r.Suitability),
			fmt.Sprintf("%.1f", r.Score),
			r.USP,
		}
		if err := cw.Write(row); err != nil {
			return eris.Wrap(err, "recommend: write CSV row")
		}
	}
	return nil
}

func writeAdviceTable(w *os.File, advice *model.Advice) error {
	if _, err := fmt.Fprintf(w, "Recommended cover: ₹%s\n%s\n\n",
		formatINR(advice.Analysis.RecommendedCover), advice.Analysis.Logic); err != nil {
		return eris.Wrap(err, "recommend: write analysis")
	}

	if len(advice.Recommendations) == 0 {
		_, err := fmt.Fprintln(w, "No plans found for this profile.")
		return err
	}

	header := fmt.Sprintf("%-22s %-34s %12s %6s %8s %7s\n",
		"Company", "Product", "Premium", "CSR", "Solvency", "Score")
	if _, err := fmt.Fprint(w, header); err != nil {
		return eris.Wrap(err, "recommend: write table header")
	}
	if _, err := fmt.Fprintln(w, strings.Repeat("-", 94)); err != nil {
		return eris.Wrap(err, "recommend: write table separator")
	}

	for _, r := range advice.Recommendations {
		name := r.ProductName
		if len(name) > 34 {
			name = name[:31] + "..."
		}
		line := fmt.Sprintf("%-22s %-34s %12s %6.1f %8.2f %7.1f\n",
			r.Company, name, formatINR(float64(r.PremiumEstimate)), r.CSR, r.Solvency, r.Score)
		if _, err := fmt.Fprint(w, line); err != nil {
			return eris.Wrap(err, "recommend: write table row")
		}
	}
	return nil
}

func init() {
	f := recommendCmd.Flags()
	f.Int("age", 0, "applicant age in years")
	f.Float64("income", 0, "annual income in INR")
	f.Float64("liabilities", 0, "outstanding loans and debts in INR")
	f.Float64("assets", 0, "savings and assets to deduct, in INR")
	f.Bool("smoker", false, "tobacco or nicotine consumption")
	f.Bool("rop", false, "wants return of premium")
	f.String("gender", "", "applicant gender")
	f.String("cover-type", "", `cover type: Flat, Increasing or Decreasing (default "Flat")`)
	f.String("policy-type", "", `policy type: Pure Term, Return of Premium, TULIP, Joint, Increased (default "Pure Term")`)
	f.String("format", "table", "output format: table, csv or json")
	f.String("output", "", "write output to file instead of stdout")
	f.String("weights", "", "path to a ranker weights YAML file")
	f.Bool("save", false, "persist the run to the store")
	recommendCmd.MarkFlagRequired("income") //nolint:errcheck
	rootCmd.AddCommand(recommendCmd)
}
