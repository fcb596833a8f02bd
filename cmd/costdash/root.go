package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/aouyang1/go-utilitycost"
	"github.com/aouyang1/go-utilitycost/dataset"
	"github.com/aouyang1/go-utilitycost/internal/config"

	"github.com/dustin/go-humanize"
	"github.com/goccy/go-json"
	"github.com/pkg/profile"
	"github.com/spf13/cobra"
)

var (
	cfgFile     string
	datasetPath string
	modelPath   string
	logLevel    string
	profileDir  string

	cfg      *config.Config
	profiler interface{ Stop() }
)

var rootCmd = &cobra.Command{
	Use:   "costdash",
	Short: "Estimate monthly utility costs with a linear regression model",
	Long: `costdash fits a linear regression of monthly utility cost over customer type, region,
building area and occupant count from a CSV dataset. It serves an information and prediction
dashboard and answers single predictions from the command line.`,
	SilenceUsage:      true,
	PersistentPreRunE: setup,
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if profiler != nil {
			profiler.Stop()
		}
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is ./config.yaml)")
	rootCmd.PersistentFlags().StringVar(&datasetPath, "dataset", "", "dataset csv (default is ./"+config.DefaultDataset+")")
	rootCmd.PersistentFlags().StringVar(&modelPath, "model", "", "saved model json to load instead of fitting the dataset")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "log level: debug, info, warn or error")
	rootCmd.PersistentFlags().StringVar(&profileDir, "profile", "", "write a cpu profile into this directory")
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func getConfigPath() string {
	if cfgFile != "" {
		return cfgFile
	}
	return config.DefaultConfigPath()
}

func getDatasetPath() string {
	if datasetPath != "" {
		return datasetPath
	}
	return cfg.GetDataset()
}

func setup(cmd *cobra.Command, args []string) error {
	var err error
	cfg, err = config.Load(getConfigPath())
	if err != nil {
		return err
	}
	if logLevel != "" {
		cfg.LogLevel = logLevel
	}
	level, err := cfg.GetLogLevel()
	if err != nil {
		return err
	}
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})))

	if profileDir != "" {
		profiler = profile.Start(profile.CPUProfile, profile.ProfilePath(profileDir), profile.NoShutdownHook)
	}
	return nil
}

func loadDataset() (*dataset.Dataset, error) {
	path := getDatasetPath()
	ds, err := dataset.Load(path, cfg.GetColumns())
	if err != nil {
		return nil, err
	}
	slog.Debug("loaded dataset", "path", path, "records", ds.Len())
	return ds, nil
}

// loadPredictor restores a saved model when one is given and otherwise fits the dataset
func loadPredictor() (*utilitycost.Predictor, error) {
	if modelPath != "" {
		return loadModel(modelPath)
	}

	ds, err := loadDataset()
	if err != nil {
		return nil, err
	}
	p, err := utilitycost.New(cfg.Options())
	if err != nil {
		return nil, err
	}
	if err := p.Fit(ds); err != nil {
		return nil, err
	}

	scores := p.Scores()
	slog.Info("fit utility cost model",
		"records", ds.Len(),
		"r2", scores.R2,
		"mape", scores.MAPE,
		"outliers", len(p.Outliers()),
	)
	return p, nil
}

func loadModel(path string) (*utilitycost.Predictor, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("unable to read model, %w", err)
	}
	var m utilitycost.Model
	if err := json.Unmarshal(b, &m); err != nil {
		return nil, fmt.Errorf("unable to decode model %s, %w", path, err)
	}
	p, err := utilitycost.NewFromModel(m)
	if err != nil {
		return nil, err
	}
	slog.Info("loaded utility cost model", "path", path)
	return p, nil
}

func money(v float64) string {
	return "$" + humanize.FormatFloat("#,###.##", v)
}
