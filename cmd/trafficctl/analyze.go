package main

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/Abhisg5/trafficDetector/internal/hotspot"
)

var (
	analyzeRegion        string
	analyzeDays          int
	analyzeMinCongestion float64
	analyzeLimit         int
)

var analyzeCmd = &cobra.Command{
	Use:   "analyze",
	Short: "Rank congestion hotspots in a region over a historical window",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, log, err := loadEnv()
		if err != nil {
			return err
		}

		repo, closeRepo, err := openRepo(cmd.Context(), cfg, log)
		if err != nil {
			return err
		}
		defer closeRepo()

		analyzer := hotspot.New(repo, log.With("component", "hotspot"))
		report, err := analyzer.Analyze(cmd.Context(), hotspot.Params{
			Region:        analyzeRegion,
			WindowDays:    analyzeDays,
			MinCongestion: analyzeMinCongestion,
			TopN:          analyzeLimit,
		})
		if err != nil {
			return err
		}

		out, err := json.MarshalIndent(report, "", "  ")
		if err != nil {
			return err
		}
		fmt.Println(string(out))
		return nil
	},
}

func init() {
	analyzeCmd.Flags().StringVar(&analyzeRegion, "region", "", "region to analyze, e.g. \"Atlanta\"")
	analyzeCmd.Flags().IntVar(&analyzeDays, "days", 90, "trailing window in days")
	analyzeCmd.Flags().Float64Var(&analyzeMinCongestion, "min-congestion", 0.4, "minimum average congestion score")
	analyzeCmd.Flags().IntVar(&analyzeLimit, "limit", hotspot.DefaultTopN, "maximum hotspots reported")
	_ = analyzeCmd.MarkFlagRequired("region")
	rootCmd.AddCommand(analyzeCmd)
}
