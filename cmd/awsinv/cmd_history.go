package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/vforvarun/aws-auto-inventory/storage"
)

var (
	historyDir   string
	historyLimit int
)

// historyCmd represents the history command
var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "List past report runs",
	Long: `List report runs recorded in the local history database
(populated by "awsinv report --history-dir ...").`,
	Example: `  awsinv history --dir output          # Last 10 runs
  awsinv history --dir output --limit 0  # All runs`,
	RunE: runHistory,
}

func init() {
	rootCmd.AddCommand(historyCmd)

	historyCmd.Flags().StringVarP(&historyDir, "dir", "d", "output", "Directory holding the history database")
	historyCmd.Flags().IntVarP(&historyLimit, "limit", "n", 10, "Maximum runs to show (0 for all)")
}

func runHistory(cmd *cobra.Command, args []string) error {
	store, err := storage.OpenRunStore(historyDir)
	if err != nil {
		return err
	}
	defer func() { _ = store.Close() }()

	runs, err := store.ListRuns(historyLimit)
	if err != nil {
		return err
	}

	if len(runs) == 0 {
		fmt.Println("No report runs recorded.")
		return nil
	}

	for _, run := range runs {
		fmt.Printf("%s  %d resources (%d inventories, %d regions, %d services)  formats: %s\n",
			run.Timestamp.Format("2006-01-02 15:04:05"),
			run.TotalResources,
			run.TotalInventories,
			run.TotalRegions,
			run.TotalServices,
			strings.Join(run.Formats, ","))
		for _, file := range run.Files {
			fmt.Printf("    %s\n", file)
		}
	}
	return nil
}
