package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/goccy/go-json"
	"github.com/spf13/cobra"
)

var modelOut string

var modelCmd = &cobra.Command{
	Use:   "model",
	Short: "Print the fitted model and optionally save it",
	Long:  `Prints the cost summary, category vocabulary, scores and weights of the fitted model.`,
	RunE:  runModel,
}

func init() {
	modelCmd.Flags().StringVar(&modelOut, "out", "", "write the model as json to this file")
	rootCmd.AddCommand(modelCmd)
}

func runModel(cmd *cobra.Command, args []string) error {
	p, err := loadPredictor()
	if err != nil {
		return err
	}
	m, err := p.Model()
	if err != nil {
		return err
	}
	if err := m.TablePrint(cmd.OutOrStdout(), "", "  "); err != nil {
		return err
	}

	if modelOut == "" {
		return nil
	}
	b, err := json.MarshalIndent(m, "", "  ")
	if err != nil {
		return fmt.Errorf("unable to encode model, %w", err)
	}
	if err := os.WriteFile(modelOut, b, 0o644); err != nil {
		return fmt.Errorf("unable to write model, %w", err)
	}
	slog.Info("saved utility cost model", "path", modelOut)
	return nil
}
