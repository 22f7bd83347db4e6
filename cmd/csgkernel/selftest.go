package main

import (
	"fmt"

	"github.com/bloodmagesoftware/venture-csg/idgen"
	"github.com/bloodmagesoftware/venture-csg/internal/fixture"
	"github.com/bloodmagesoftware/venture-csg/solid"
	"github.com/spf13/cobra"
)

var selftestScenarioPath string

var selftestCmd = &cobra.Command{
	Use:   "selftest",
	Short: "Run a curated set of testable properties against fixture solids",
	Long:  `Loads a scenario (or the built-in overlapping-cube pair) and checks a handful of the kernel's documented properties against it.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		sc, err := loadScenario(selftestScenarioPath)
		if err != nil {
			return err
		}
		solids, err := sc.Build()
		if err != nil {
			return fmt.Errorf("building scenario: %w", err)
		}
		return runProperties(solids)
	},
}

func init() {
	rootCmd.AddCommand(selftestCmd)
	selftestCmd.Flags().StringVar(&selftestScenarioPath, "scenario", "", "path to a scenario YAML file (defaults to a built-in overlapping-cube pair)")
}

func loadScenario(path string) (*fixture.Scenario, error) {
	if path == "" {
		return fixture.Default(), nil
	}
	return fixture.Load(path)
}

func runProperties(solids map[string]solid.Solid) error {
	a, ok := solids["a"]
	if !ok {
		return fmt.Errorf(`scenario has no solid named "a"`)
	}
	b, ok := solids["b"]
	if !ok {
		return fmt.Errorf(`scenario has no solid named "b"`)
	}
	tags := idgen.New()

	checks := []struct {
		name string
		run  func() error
	}{
		{"union is non-empty", func() error {
			u := solid.Union(tags, a, b)
			if len(u.Polygons) == 0 {
				return fmt.Errorf("expected a non-empty union")
			}
			return nil
		}},
		{"intersection of overlapping solids is non-empty", func() error {
			i := solid.Intersection(tags, a, b)
			if len(i.Polygons) == 0 {
				return fmt.Errorf("expected a non-empty intersection")
			}
			return nil
		}},
		{"difference is smaller than union", func() error {
			d := solid.Difference(tags, a, b)
			full := solid.Union(tags, a, b)
			if len(d.Polygons) == 0 {
				return fmt.Errorf("expected a-b to keep some surface")
			}
			if len(d.Polygons) >= len(full.Polygons) {
				return fmt.Errorf("expected a-b to have fewer polygons than a union b")
			}
			return nil
		}},
		{"canonicalize is idempotent", func() error {
			once := solid.Canonicalize(a, tags)
			twice := solid.Canonicalize(once, tags)
			if len(once.Polygons) != len(twice.Polygons) {
				return fmt.Errorf("canonicalize changed polygon count on a second pass")
			}
			return nil
		}},
		{"retesselate is idempotent", func() error {
			once := solid.Retesselate(a)
			twice := solid.Retesselate(once)
			if len(once.Polygons) != len(twice.Polygons) {
				return fmt.Errorf("retesselate changed polygon count on a second pass")
			}
			return nil
		}},
		{"(a union b) minus b keeps some surface", func() error {
			u := solid.Union(tags, a, b)
			back := solid.Difference(tags, u, b)
			if len(back.Polygons) == 0 {
				return fmt.Errorf("expected (a union b) minus b to keep surface")
			}
			return nil
		}},
	}

	failed := 0
	for _, c := range checks {
		if err := c.run(); err != nil {
			failed++
			fmt.Printf("FAIL  %s: %v\n", c.name, err)
			continue
		}
		fmt.Printf("ok    %s\n", c.name)
	}
	if failed > 0 {
		return fmt.Errorf("%d/%d checks failed", failed, len(checks))
	}
	return nil
}
