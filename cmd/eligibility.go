package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

var eligibilityCmd = &cobra.Command{
	Use:   "eligibility",
	Short: "Print the term insurance eligibility conditions",
	RunE: func(cmd *cobra.Command, _ []string) error {
		snap, err := loadSnapshot(cmd.Context())
		if err != nil {
			return err
		}
		fmt.Println(snap.EligibilityContext())
		return nil
	},
}

func init() {
	rootCmd.AddCommand(eligibilityCmd)
}
