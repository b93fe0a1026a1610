package main

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/veilbreakers/gambit-core/agent"
	"github.com/veilbreakers/gambit-core/arena"
	"github.com/veilbreakers/gambit-core/gambit"
	"github.com/veilbreakers/gambit-core/model"
)

var simulateFlags struct {
	squadA   string
	squadB   string
	runs     int
	parallel int
	seed     int64
	maxTicks int
}

var simulateCmd = &cobra.Command{
	Use:   "simulate",
	Short: "Pit two archetype squads against each other in the arena",
	Long: `Runs scripted battles between two squads of AI agents and reports win
rates. Squads are comma-separated archetype names, each with an optional
:role suffix, e.g. "berserker,mender:healer,warden:tank".`,
	RunE: runSimulate,
}

func init() {
	f := simulateCmd.Flags()
	f.StringVar(&simulateFlags.squadA, "squad-a", "berserker,mender", "Squad A archetypes (name[:role],...)")
	f.StringVar(&simulateFlags.squadB, "squad-b", "warden,hexer", "Squad B archetypes (name[:role],...)")
	f.IntVar(&simulateFlags.runs, "runs", 1, "Number of battles to run")
	f.IntVar(&simulateFlags.parallel, "parallel", 4, "Battles run concurrently")
	f.Int64Var(&simulateFlags.seed, "seed", 1, "Base seed; run i uses seed+i")
	f.IntVar(&simulateFlags.maxTicks, "max-ticks", 200, "Declare a draw after this many ticks")
}

// fighter is one slot in a squad spec.
type fighter struct {
	archetype string
	role      model.Role
}

// archetypeRoles maps the stock archetypes to the role they usually fill.
// Squad specs can override with an explicit :role suffix.
var archetypeRoles = map[string]model.Role{
	"balanced":  model.RoleStriker,
	"berserker": model.RoleStriker,
	"warden":    model.RoleTank,
	"mender":    model.RoleHealer,
	"stalker":   model.RoleStriker,
	"hexer":     model.RoleCaster,
}

func parseSquad(spec string) ([]fighter, error) {
	parts := strings.Split(spec, ",")
	squad := make([]fighter, 0, len(parts))
	for _, part := range parts {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		name, roleStr, hasRole := strings.Cut(part, ":")
		f := fighter{archetype: name}
		switch {
		case hasRole:
			f.role = model.Role(roleStr)
		case archetypeRoles[name] != "":
			f.role = archetypeRoles[name]
		default:
			f.role = model.RoleStriker
		}
		squad = append(squad, f)
	}
	if len(squad) == 0 {
		return nil, fmt.Errorf("empty squad spec %q", spec)
	}
	return squad, nil
}

// outcome is the result of one simulated battle.
type outcome struct {
	winner  arena.Side
	decided bool
	ticks   int
}

func runSimulate(cmd *cobra.Command, _ []string) error {
	reg, err := loadRegistry()
	if err != nil {
		return err
	}

	squadA, err := parseSquad(simulateFlags.squadA)
	if err != nil {
		return err
	}
	squadB, err := parseSquad(simulateFlags.squadB)
	if err != nil {
		return err
	}

	runs := simulateFlags.runs
	if runs < 1 {
		runs = 1
	}

	start := time.Now()
	results := make([]outcome, runs)

	g, _ := errgroup.WithContext(cmd.Context())
	g.SetLimit(simulateFlags.parallel)
	for i := 0; i < runs; i++ {
		i := i
		g.Go(func() error {
			out, err := runBattle(reg, squadA, squadB, simulateFlags.seed+int64(i), simulateFlags.maxTicks)
			if err != nil {
				return err
			}
			results[i] = out
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}

	report(results, squadA, squadB, time.Since(start))
	return nil
}

// runBattle plays a single battle to the end: each round every living
// combatant takes one turn, sides interleaved, then the battle advances
// a tick.
func runBattle(reg *gambit.Registry, squadA, squadB []fighter, seed int64, maxTicks int) (outcome, error) {
	build := func(squad []fighter, side string, base int64) []*arena.Combatant {
		cs := make([]*arena.Combatant, len(squad))
		for i, f := range squad {
			name := fmt.Sprintf("%s-%s%d", f.archetype, side, i+1)
			cs[i] = arena.NewCombatant(model.CombatantID(base+int64(i)), name, f.role, arena.RoleStats(f.role))
		}
		return cs
	}
	fightersA := build(squadA, "a", 1)
	fightersB := build(squadB, "b", 101)

	battle := arena.NewBattle(arena.DefaultField, fightersA, fightersB, seed)

	type turn struct {
		id   model.CombatantID
		ctrl *agent.Controller
	}

	enlist := func(squad []fighter, cs []*arena.Combatant, side arena.Side) ([]turn, error) {
		view := battle.View(side)
		turns := make([]turn, len(squad))
		for i, f := range squad {
			ev, err := reg.NewEvaluator(f.archetype)
			if err != nil {
				return nil, err
			}
			ctrl, err := agent.New(agent.Config{
				Self:      cs[i].ID(),
				Evaluator: ev,
				World:     view,
				Executor:  view,
			})
			if err != nil {
				return nil, err
			}
			turns[i] = turn{id: cs[i].ID(), ctrl: ctrl}
		}
		return turns, nil
	}

	ordA, err := enlist(squadA, fightersA, arena.SideA)
	if err != nil {
		return outcome{}, err
	}
	ordB, err := enlist(squadB, fightersB, arena.SideB)
	if err != nil {
		return outcome{}, err
	}

	// Interleave sides so neither squad gets a full alpha strike.
	var order []turn
	for i := 0; i < len(ordA) || i < len(ordB); i++ {
		if i < len(ordA) {
			order = append(order, ordA[i])
		}
		if i < len(ordB) {
			order = append(order, ordB[i])
		}
	}

	for battle.Tick() < maxTicks && !battle.Over() {
		for _, t := range order {
			if battle.Over() {
				break
			}
			if !battle.CanAct(t.id) {
				continue
			}
			t.ctrl.DecideAndAct()
		}
		battle.Advance()
	}

	winner, decided := battle.Winner()
	return outcome{winner: winner, decided: decided, ticks: battle.Tick()}, nil
}

func report(results []outcome, squadA, squadB []fighter, elapsed time.Duration) {
	var winsA, winsB, draws, totalTicks int
	for _, r := range results {
		totalTicks += r.ticks
		switch {
		case !r.decided:
			draws++
		case r.winner == arena.SideA:
			winsA++
		default:
			winsB++
		}
	}

	names := func(squad []fighter) string {
		parts := make([]string, len(squad))
		for i, f := range squad {
			parts[i] = f.archetype
		}
		return strings.Join(parts, ", ")
	}

	n := len(results)
	fmt.Printf("simulated %d battle(s) in %s\n", n, elapsed.Round(time.Millisecond))
	fmt.Printf("  squad A (%s): %d wins (%.1f%%)\n", names(squadA), winsA, 100*float64(winsA)/float64(n))
	fmt.Printf("  squad B (%s): %d wins (%.1f%%)\n", names(squadB), winsB, 100*float64(winsB)/float64(n))
	fmt.Printf("  draws: %d\n", draws)
	fmt.Printf("  avg battle length: %.1f ticks\n", float64(totalTicks)/float64(n))
}
