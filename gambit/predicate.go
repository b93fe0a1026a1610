package gambit

import (
	"log/slog"

	"github.com/expr-lang/expr/vm"

	"github.com/veilbreakers/gambit-core/model"
)

// PredicateKind selects the check a Predicate performs.
type PredicateKind string

// Self checks are evaluated against the acting agent; ally kinds are
// aggregates (true if any living ally qualifies); enemy kinds test the
// candidate target the rule's action put in front of them, so they should
// be paired with actions of the matching class.
const (
	PredSelfHPBelow       PredicateKind = "SELF_HP_BELOW"
	PredSelfHPAbove       PredicateKind = "SELF_HP_ABOVE"
	PredSelfResourceBelow PredicateKind = "SELF_RESOURCE_BELOW"
	PredSelfResourceAbove PredicateKind = "SELF_RESOURCE_ABOVE"
	PredSelfHasStatus     PredicateKind = "SELF_HAS_STATUS"

	PredAllyHPBelow     PredicateKind = "ALLY_HP_BELOW"
	PredAllyHPAbove     PredicateKind = "ALLY_HP_ABOVE"
	PredAllyHasStatus   PredicateKind = "ALLY_HAS_STATUS"
	PredAllyUnderAttack PredicateKind = "ALLY_UNDER_ATTACK"

	PredEnemyHPBelow     PredicateKind = "ENEMY_HP_BELOW"
	PredEnemyHPAbove     PredicateKind = "ENEMY_HP_ABOVE"
	PredEnemyCasting     PredicateKind = "ENEMY_CASTING"
	PredEnemyHasStatus   PredicateKind = "ENEMY_HAS_STATUS"
	PredEnemyRole        PredicateKind = "ENEMY_ROLE"
	PredEnemyIsLowestHP  PredicateKind = "ENEMY_IS_LOWEST_HP"
	PredEnemyIsHighestHP PredicateKind = "ENEMY_IS_HIGHEST_HP"

	PredEnemiesClustered  PredicateKind = "ENEMIES_CLUSTERED"
	PredEnemyCountAtLeast PredicateKind = "ENEMY_COUNT_AT_LEAST"
	PredAllyCountAtLeast  PredicateKind = "ALLY_COUNT_AT_LEAST"

	PredAbilityReady PredicateKind = "ABILITY_READY"

	// PredScript evaluates an expr expression compiled at rule-set build time.
	PredScript PredicateKind = "SCRIPT"

	PredAlways PredicateKind = "ALWAYS"
	PredNever  PredicateKind = "NEVER"
)

// Predicate is one condition on a rule. Kind picks the check; the other
// fields parameterize it. HP and resource thresholds (Value) are percentages
// 0–100 as written in rule data. Negate inverts a recognized check; unknown
// kinds and script errors stay false regardless.
type Predicate struct {
	Kind   PredicateKind
	Value  float64
	Status model.StatusTag
	Role   model.Role
	Count  int
	Slot   model.AbilitySlot
	Script string
	Negate bool

	program *vm.Program // compiled Script, set by RuleSet construction
}

// Evaluate runs the check against the candidate target. It never panics:
// unknown kinds and script runtime errors log a warning and evaluate false.
func (p *Predicate) Evaluate(self, target model.Combatant, snap *model.Snapshot) bool {
	ok, known := p.eval(self, target, snap)
	if !known {
		return false
	}
	if p.Negate {
		return !ok
	}
	return ok
}

func (p *Predicate) eval(self, target model.Combatant, snap *model.Snapshot) (ok, known bool) {
	switch p.Kind {
	case PredSelfHPBelow:
		return self.HealthPct()*100 < p.Value, true
	case PredSelfHPAbove:
		return self.HealthPct()*100 > p.Value, true
	case PredSelfResourceBelow:
		return self.ResourcePct()*100 < p.Value, true
	case PredSelfResourceAbove:
		return self.ResourcePct()*100 > p.Value, true
	case PredSelfHasStatus:
		return snap.Status.HasStatus(self.ID(), p.Status), true

	case PredAllyHPBelow:
		return snap.AnyAllyBelow(p.Value / 100), true
	case PredAllyHPAbove:
		return snap.AnyAllyAbove(p.Value / 100), true
	case PredAllyHasStatus:
		return snap.AnyAllyWithStatus(p.Status), true
	case PredAllyUnderAttack:
		return snap.AnyAllyTargeted(), true

	case PredEnemyHPBelow:
		return target.HealthPct()*100 < p.Value, true
	case PredEnemyHPAbove:
		return target.HealthPct()*100 > p.Value, true
	case PredEnemyCasting:
		return snap.Status.IsCasting(target.ID()), true
	case PredEnemyHasStatus:
		return snap.Status.HasStatus(target.ID(), p.Status), true
	case PredEnemyRole:
		return target.Role() == p.Role, true
	case PredEnemyIsLowestHP:
		idx, found := snap.LowestHealthEnemy()
		return found && snap.Enemies[idx].ID() == target.ID(), true
	case PredEnemyIsHighestHP:
		idx, found := snap.HighestHealthEnemy()
		return found && snap.Enemies[idx].ID() == target.ID(), true

	case PredEnemiesClustered:
		return snap.Status.ClusteredEnemies() >= p.Count, true
	case PredEnemyCountAtLeast:
		return snap.LivingEnemies() >= p.Count, true
	case PredAllyCountAtLeast:
		return snap.LivingAllies() >= p.Count, true

	case PredAbilityReady:
		return snap.Status.AbilityReady(self.ID(), p.Slot), true

	case PredScript:
		if p.program == nil {
			slog.Warn("script condition not compiled", "script", p.Script)
			return false, false
		}
		result, err := vm.Run(p.program, newScriptEnv(self, target, snap))
		if err != nil {
			slog.Warn("script condition error", "script", p.Script, "error", err)
			return false, false
		}
		match, _ := result.(bool)
		return match, true

	case PredAlways:
		return true, true
	case PredNever:
		return false, true
	}

	slog.Warn("unknown condition kind", "kind", p.Kind)
	return false, false
}
