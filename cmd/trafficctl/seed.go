package main

import (
	"fmt"
	"time"

	"github.com/schollz/progressbar/v3"
	"github.com/spf13/cobra"

	"github.com/Abhisg5/trafficDetector/internal/geo"
	"github.com/Abhisg5/trafficDetector/internal/simulate"
)

var (
	seedDays   int
	seedPerDay int
	seedSeed   int64
)

var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Seed the store with synthetic historical readings",
	Long: `Seed appends rush-hour-shaped synthetic readings for every gazetteer
place over a trailing window, so hotspot analyses have data to rank before
real provider credentials are configured.`,
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

		gen := simulate.New(seedSeed)
		places := geo.Known()
		total := len(places) * seedDays * seedPerDay
		bar := progressbar.Default(int64(total), "seeding")

		start := time.Now().UTC().AddDate(0, 0, -seedDays)
		step := 24 * time.Hour / time.Duration(seedPerDay)

		saved := 0
		for _, place := range places {
			lat, lng, err := geo.Resolve(place)
			if err != nil {
				return err
			}
			for day := 0; day < seedDays; day++ {
				for i := 0; i < seedPerDay; i++ {
					at := start.AddDate(0, 0, day).Add(time.Duration(i) * step)
					reading := gen.Reading(place, lat, lng, at)
					if _, err := repo.SaveReading(cmd.Context(), reading); err != nil {
						return err
					}
					saved++
					_ = bar.Add(1)
				}
			}
		}

		fmt.Printf("seeded %d readings across %d locations over %d days\n", saved, len(places), seedDays)
		return nil
	},
}

func init() {
	seedCmd.Flags().IntVar(&seedDays, "days", 90, "days of history to generate")
	seedCmd.Flags().IntVar(&seedPerDay, "per-day", 4, "readings per location per day")
	seedCmd.Flags().Int64Var(&seedSeed, "seed", 42, "random seed")
	rootCmd.AddCommand(seedCmd)
}
