package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/Abhisg5/trafficDetector/internal/geo"
)

var resolveCmd = &cobra.Command{
	Use:   "resolve <name>",
	Short: "Resolve a place name against the gazetteer",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		lat, lng, err := geo.Resolve(args[0])
		if err != nil {
			return err
		}
		fmt.Printf("%s -> %.4f, %.4f\n", args[0], lat, lng)
		return nil
	},
}

var knownCmd = &cobra.Command{
	Use:   "known",
	Short: "List the gazetteer place names",
	Run: func(cmd *cobra.Command, args []string) {
		for _, name := range geo.Known() {
			fmt.Println(name)
		}
	},
}

func init() {
	resolveCmd.AddCommand(knownCmd)
	rootCmd.AddCommand(resolveCmd)
}
