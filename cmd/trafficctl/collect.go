package main

import (
	"fmt"

	"github.com/schollz/progressbar/v3"
	"github.com/spf13/cobra"

	"github.com/Abhisg5/trafficDetector/internal/collector"
	"github.com/Abhisg5/trafficDetector/internal/hotspot"
	"github.com/Abhisg5/trafficDetector/internal/service"
)

var collectSources []string

var collectCmd = &cobra.Command{
	Use:   "collect <location> [location...]",
	Short: "Collect live traffic readings for one or more locations",
	Args:  cobra.MinimumNArgs(1),
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

		coll := collector.FromConfig(cfg, log.With("component", "collector"))
		defer coll.Close()
		svc := service.NewTrafficService(coll, hotspot.New(repo, log), repo, log)

		var bar *progressbar.ProgressBar
		if len(args) > 1 {
			bar = progressbar.Default(int64(len(args)), "collecting")
		}

		failures := 0
		for _, location := range args {
			readings, ids, err := svc.CollectAndSave(cmd.Context(), location, collectSources)
			if bar != nil {
				_ = bar.Add(1)
			}
			if err != nil {
				failures++
				fmt.Printf("%-24s error: %v\n", location, err)
				continue
			}
			if len(readings) == 0 {
				failures++
				fmt.Printf("%-24s no data (check provider credentials)\n", location)
				continue
			}
			for i, r := range readings {
				fmt.Printf("%-24s %-7s score=%.3f level=%-6s speed=%.1fkm/h id=%s\n",
					location, r.Source, r.CongestionScore, r.TrafficLevel, r.AverageSpeed, ids[i])
			}
		}

		if failures == len(args) {
			return fmt.Errorf("no readings collected for any of %d location(s)", len(args))
		}
		return nil
	},
}

func init() {
	collectCmd.Flags().StringSliceVar(&collectSources, "sources", nil,
		"providers to query (default: configured default_sources)")
	rootCmd.AddCommand(collectCmd)
}
