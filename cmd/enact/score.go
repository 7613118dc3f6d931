package main

import (
	"fmt"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/enact-eco/enact/internal/carbon"
	"github.com/enact-eco/enact/internal/storage"
)

var scoreDays int

var scoreCmd = &cobra.Command{
	Use:   "score",
	Short: "Show the current eco score for the recent period",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, logger, err := loadConfig()
		if err != nil {
			return err
		}

		store, err := storage.NewEmissionLog(cfg.LogDir, logger)
		if err != nil {
			return err
		}

		summaries, err := store.RecentSummaries(scoreDays)
		if err != nil {
			return err
		}

		total := 0.0
		for _, s := range summaries {
			total += s.EmissionsGrams
		}
		score := carbon.ComputeEcoScore(summaries)
		rating := carbon.ScoreRating(score)

		paint := color.New(color.FgGreen, color.Bold)
		switch rating {
		case "fair":
			paint = color.New(color.FgYellow, color.Bold)
		case "poor":
			paint = color.New(color.FgRed, color.Bold)
		}

		paint.Printf("Eco Score: %d/100 (%s)\n", score, rating)
		fmt.Printf("Last %d days: %.2f g CO2, %s\n",
			scoreDays, total, carbon.EquivalencyFor(total))
		return nil
	},
}

func init() {
	scoreCmd.Flags().IntVar(&scoreDays, "days", 7, "number of days to score")
}
