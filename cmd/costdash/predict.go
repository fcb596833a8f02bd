package main

import (
	"fmt"

	"github.com/aouyang1/go-utilitycost"

	"github.com/goccy/go-json"
	"github.com/spf13/cobra"
)

var (
	predictReq  utilitycost.Request
	predictJSON bool
)

var predictCmd = &cobra.Command{
	Use:   "predict",
	Short: "Estimate the monthly cost of a single customer",
	Long: `Fits the model, or loads a saved one, and estimates the monthly cost of the given customer.
Building area and occupant count must be at least 1.`,
	RunE: runPredict,
}

func init() {
	predictCmd.Flags().StringVar(&predictReq.CustomerType, "customer-type", "Residential", "customer type")
	predictCmd.Flags().StringVar(&predictReq.Region, "region", "North", "region")
	predictCmd.Flags().Float64Var(&predictReq.Area, "area", 1, "building area in m2")
	predictCmd.Flags().IntVar(&predictReq.Occupants, "occupants", 1, "number of occupants")
	predictCmd.Flags().BoolVar(&predictJSON, "json", false, "print the result as json")
	rootCmd.AddCommand(predictCmd)
}

func runPredict(cmd *cobra.Command, args []string) error {
	if err := predictReq.Validate(); err != nil {
		return err
	}

	p, err := loadPredictor()
	if err != nil {
		return err
	}
	res, err := p.Evaluate(predictReq)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	if predictJSON {
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		return enc.Encode(res)
	}

	fmt.Fprintf(out, "Estimated monthly cost: %s\n", money(res.Value))
	fmt.Fprintf(out, "Observed cost range:    %s - %s\n", money(res.Min), money(res.Max))
	if !res.InRange {
		fmt.Fprintln(out, "Estimate lies outside of the observed cost range")
	}
	return nil
}
