package main

import (
	"fmt"
	"time"

	"github.com/bloodmagesoftware/venture-csg/idgen"
	"github.com/bloodmagesoftware/venture-csg/solid"
	"github.com/spf13/cobra"
)

var benchScenarioPath string

var benchCmd = &cobra.Command{
	Use:   "bench",
	Short: "Time Union/Difference/Intersection over a scenario's solids",
	RunE: func(cmd *cobra.Command, args []string) error {
		sc, err := loadScenario(benchScenarioPath)
		if err != nil {
			return err
		}
		solids, err := sc.Build()
		if err != nil {
			return fmt.Errorf("building scenario: %w", err)
		}

		names := make([]string, 0, len(solids))
		for name := range solids {
			names = append(names, name)
		}
		if len(names) == 0 {
			return fmt.Errorf("scenario has no solids to benchmark")
		}

		all := make([]solid.Solid, 0, len(names))
		for _, name := range names {
			all = append(all, solids[name])
		}

		tags := idgen.New()
		start := time.Now()
		u := solid.Union(tags, all...)
		fmt.Printf("union of %d solids: %d polygons in %s\n", len(all), len(u.Polygons), time.Since(start))

		if len(all) >= 2 {
			start = time.Now()
			d := solid.Difference(tags, all[0], all[1:]...)
			fmt.Printf("difference: %d polygons in %s\n", len(d.Polygons), time.Since(start))

			start = time.Now()
			i := solid.Intersection(tags, all...)
			fmt.Printf("intersection: %d polygons in %s\n", len(i.Polygons), time.Since(start))
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(benchCmd)
	benchCmd.Flags().StringVar(&benchScenarioPath, "scenario", "", "path to a scenario YAML file (defaults to a built-in overlapping-cube pair)")
}
