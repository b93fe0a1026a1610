package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

var archetypesFlags struct {
	rules bool
}

var archetypesCmd = &cobra.Command{
	Use:   "archetypes",
	Short: "List loaded archetypes and their personalities",
	RunE:  runArchetypes,
}

func init() {
	archetypesCmd.Flags().BoolVar(&archetypesFlags.rules, "rules", false, "Also list each archetype's rules by bucket")
}

func runArchetypes(_ *cobra.Command, _ []string) error {
	reg, err := loadRegistry()
	if err != nil {
		return err
	}

	for _, name := range reg.Archetypes() {
		p, _ := reg.Personality(name)
		rs, _ := reg.RuleSet(name)

		w := p.Weights
		fmt.Printf("%-12s damage=%g survival=%g team=%g positioning=%g control=%g\n",
			name, w.Damage, w.Survival, w.TeamValue, w.Positioning, w.Control)

		if !archetypesFlags.rules {
			continue
		}
		for _, r := range rs.Rules() {
			fmt.Printf("    [%s] %-22s priority=%d utility=%g %s\n",
				r.Bucket, r.Name, r.Priority, r.Utility, r.Action.Kind)
		}
	}
	return nil
}
