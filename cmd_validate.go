package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/veilbreakers/gambit-core/gambit"
)

var validateCmd = &cobra.Command{
	Use:   "validate [dir]",
	Short: "Check archetype definition files without serving them",
	Long: `Loads archetype YAML files the same way serve does and reports what came
out. Exits non-zero on the first file that fails to load, so it works as a
pre-commit check for archetype data.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runValidate,
}

func runValidate(_ *cobra.Command, args []string) error {
	dir := rootFlags.defsDir
	if len(args) > 0 {
		dir = args[0]
	}

	reg := gambit.NewRegistry()
	if dir == "" {
		if err := reg.LoadDefaults(); err != nil {
			return err
		}
		fmt.Println("validating embedded archetype set")
	} else if err := reg.LoadDir(dir); err != nil {
		return err
	}

	names := reg.Archetypes()
	if len(names) == 0 {
		return fmt.Errorf("no complete archetypes found")
	}

	for _, name := range names {
		rs, _ := reg.RuleSet(name)
		p, _ := reg.Personality(name)
		fmt.Printf("  %-12s %2d rules, ultimate targeting %s\n", name, rs.Len(), p.UltimateTargeting)
	}
	fmt.Printf("%d archetype(s) ok\n", len(names))
	return nil
}
