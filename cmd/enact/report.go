package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/enact-eco/enact/internal/export"
	"github.com/enact-eco/enact/internal/storage"
)

var (
	reportDays       int
	reportAllHistory bool
	reportFormat     string
	reportOutput     string
)

var reportCmd = &cobra.Command{
	Use:   "report",
	Short: "Export an emission report as CSV, JSON or PDF",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, logger, err := loadConfig()
		if err != nil {
			return err
		}

		store, err := storage.NewEmissionLog(cfg.LogDir, logger)
		if err != nil {
			return err
		}

		report, err := export.BuildReport(store, reportDays, reportAllHistory)
		if err != nil {
			return err
		}

		out := os.Stdout
		if reportOutput != "" {
			f, err := os.Create(reportOutput)
			if err != nil {
				return err
			}
			defer f.Close()
			out = f
		}

		switch strings.ToLower(reportFormat) {
		case "csv":
			err = export.WriteCSV(out, report)
		case "json":
			err = export.WriteJSON(out, report)
		case "pdf":
			if reportOutput == "" {
				return fmt.Errorf("pdf output requires --output")
			}
			err = export.WritePDF(out, report)
		default:
			return fmt.Errorf("unknown format %q (want csv, json or pdf)", reportFormat)
		}
		if err != nil {
			return err
		}

		if reportOutput != "" {
			color.Green("Report written to %s (%d days, %.2f g CO2)",
				reportOutput, report.PeriodDays, report.TotalGrams)
		}
		return nil
	},
}

func init() {
	reportCmd.Flags().IntVar(&reportDays, "days", 7, "number of days to include")
	reportCmd.Flags().BoolVar(&reportAllHistory, "all-history", false, "include every recorded day")
	reportCmd.Flags().StringVar(&reportFormat, "format", "csv", "output format: csv, json or pdf")
	reportCmd.Flags().StringVarP(&reportOutput, "output", "o", "", "output file (default stdout)")
}
