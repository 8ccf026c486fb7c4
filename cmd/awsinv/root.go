package main

import (
	"fmt"
	"os"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
)

var (
	version = "0.1.0"
	debug   bool

	rootCmd = &cobra.Command{
		Use:   "awsinv",
		Short: "AWS inventory report generator",
		Long: `awsinv - AWS Auto Inventory

Turns raw inventory scan results into shareable reports: a JSON report
pair (full results plus summary) and an Excel workbook with one sheet
per service.`,
		Version: version,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			setupLogging(debug)
		},
	}
)

// Execute runs the root command
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func setupLogging(debug bool) {
	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix
	if debug {
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	} else {
		zerolog.SetGlobalLevel(zerolog.InfoLevel)
	}
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})
}

// init sets up the root command
func init() {
	rootCmd.SetVersionTemplate(`awsinv {{.Version}} - AWS Auto Inventory
`)
	rootCmd.PersistentFlags().BoolVar(&debug, "debug", false, "Enable debug logging")
}
