package main

import (
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/vforvarun/aws-auto-inventory/config"
	"github.com/vforvarun/aws-auto-inventory/report"
	"github.com/vforvarun/aws-auto-inventory/storage"
)

var (
	reportInput      string
	reportOutputDir  string
	reportFormats    []string
	reportConfigPath string
	reportHistoryDir string
)

// reportCmd represents the report command
var reportCmd = &cobra.Command{
	Use:   "report",
	Short: "Generate reports from saved scan results",
	Long: `Generate reports from a saved scan-results file.

The input is the JSON the scanner produced: a mapping from inventory
name to its per-region, per-service results. Output formats:
- json:  full normalized results plus a summary, two timestamped files
- excel: one workbook with a Summary sheet and a sheet per service`,
	Example: `  awsinv report --input results.json                  # JSON + Excel into ./output
  awsinv report --input results.json --format json    # JSON only
  awsinv report --input results.json -o /tmp/reports  # Custom output dir
  awsinv report --input results.json --config awsinv.yaml`,
	RunE: runReport,
}

func init() {
	rootCmd.AddCommand(reportCmd)

	reportCmd.Flags().StringVarP(&reportInput, "input", "i", "", "Scan results file (JSON)")
	reportCmd.Flags().StringVarP(&reportOutputDir, "output-dir", "o", "", "Directory for report files")
	reportCmd.Flags().StringSliceVarP(&reportFormats, "format", "f", nil, "Output formats: json, excel")
	reportCmd.Flags().StringVarP(&reportConfigPath, "config", "c", "", "Config file (YAML)")
	reportCmd.Flags().StringVar(&reportHistoryDir, "history-dir", "", "Record this run in the history database under the given directory")
	_ = reportCmd.MarkFlagRequired("input")
}

func runReport(cmd *cobra.Command, args []string) error {
	cfg, err := loadReportConfig()
	if err != nil {
		return err
	}

	results, err := loadResults(reportInput)
	if err != nil {
		return err
	}

	processor := report.NewProcessor(log.Logger)
	outcome, err := processor.Process(results, cfg.Output.Dir, cfg.Output.Formats)
	if err != nil {
		return err
	}

	if cfg.History.Enabled {
		if err := recordRun(cfg, outcome); err != nil {
			// History is bookkeeping, not part of the report itself.
			log.Warn().Err(err).Msg("failed to record run history")
		}
	}

	log.Info().
		Int("resources", outcome.Summary.TotalResources).
		Int("files", len(outcome.Files)).
		Msg("report complete")

	fmt.Printf("Report complete: %d inventories, %d regions, %d services, %d resources\n",
		outcome.Summary.TotalInventories,
		outcome.Summary.TotalRegions,
		outcome.Summary.TotalServices,
		outcome.Summary.TotalResources)
	for _, file := range outcome.Files {
		fmt.Printf("  wrote %s\n", file)
	}
	return nil
}

// loadReportConfig merges the optional config file with flag overrides.
func loadReportConfig() (*config.Config, error) {
	cfg := &config.Config{Version: "v1"}
	if reportConfigPath != "" {
		loaded, err := config.LoadConfig(reportConfigPath)
		if err != nil {
			return nil, err
		}
		cfg = loaded
	}

	if reportOutputDir != "" {
		cfg.Output.Dir = reportOutputDir
	}
	if len(reportFormats) > 0 {
		cfg.Output.Formats = reportFormats
	}
	if reportHistoryDir != "" {
		cfg.History.Enabled = true
		cfg.History.Dir = reportHistoryDir
	}

	if cfg.Output.Dir == "" {
		cfg.Output.Dir = "output"
	}
	if len(cfg.Output.Formats) == 0 {
		cfg.Output.Formats = []string{report.FormatJSON, report.FormatExcel}
	}
	return cfg, nil
}

// loadResults reads a saved scan-results file into the generic mapping the
// report pipeline consumes.
func loadResults(path string) (map[string]any, error) {
	data, err := os.ReadFile(path) // #nosec G304 -- path is intentional user input
	if err != nil {
		return nil, fmt.Errorf("read results file: %w", err)
	}

	var results map[string]any
	if err := json.Unmarshal(data, &results); err != nil {
		return nil, fmt.Errorf("parse results file: %w", err)
	}
	return results, nil
}

func recordRun(cfg *config.Config, outcome *report.Outcome) error {
	store, err := storage.OpenRunStore(cfg.History.Dir)
	if err != nil {
		return err
	}
	defer func() { _ = store.Close() }()

	return store.RecordRun(storage.ReportRun{
		Timestamp:        time.Now(),
		OutputDir:        cfg.Output.Dir,
		Formats:          cfg.Output.Formats,
		Files:            outcome.Files,
		TotalInventories: outcome.Summary.TotalInventories,
		TotalRegions:     outcome.Summary.TotalRegions,
		TotalServices:    outcome.Summary.TotalServices,
		TotalResources:   outcome.Summary.TotalResources,
	})
}
