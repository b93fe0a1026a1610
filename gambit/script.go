package gambit

import (
	"fmt"

	"github.com/expr-lang/expr"
	"github.com/expr-lang/expr/vm"

	"github.com/veilbreakers/gambit-core/model"
)

// ScriptEnv exposes battle-state helpers callable from script conditions.
// HP and resource values are percentages 0–100 to match rule data, so a
// script reads like `SelfHP() < 40 && EnemyCount() >= 2`.
type ScriptEnv struct {
	self   model.Combatant
	target model.Combatant
	snap   *model.Snapshot
}

func newScriptEnv(self, target model.Combatant, snap *model.Snapshot) ScriptEnv {
	return ScriptEnv{self: self, target: target, snap: snap}
}

// compileScript builds expr bytecode for a script condition. Compilation
// happens once at rule-set construction, never during evaluation.
func compileScript(src string) (*vm.Program, error) {
	prog, err := expr.Compile(src, expr.Env(ScriptEnv{}), expr.AsBool())
	if err != nil {
		return nil, fmt.Errorf("compile script %q: %w", src, err)
	}
	return prog, nil
}

func (e ScriptEnv) SelfHP() float64       { return e.self.HealthPct() * 100 }
func (e ScriptEnv) SelfResource() float64 { return e.self.ResourcePct() * 100 }
func (e ScriptEnv) SelfRole() string      { return string(e.self.Role()) }

func (e ScriptEnv) SelfHasStatus(tag string) bool {
	return e.snap.Status.HasStatus(e.self.ID(), model.StatusTag(tag))
}

func (e ScriptEnv) TargetHP() float64  { return e.target.HealthPct() * 100 }
func (e ScriptEnv) TargetRole() string { return string(e.target.Role()) }

func (e ScriptEnv) TargetCasting() bool {
	return e.snap.Status.IsCasting(e.target.ID())
}

func (e ScriptEnv) TargetHasStatus(tag string) bool {
	return e.snap.Status.HasStatus(e.target.ID(), model.StatusTag(tag))
}

func (e ScriptEnv) TargetDebuffed() bool {
	return model.HasAnyDebuff(e.snap.Status, e.target.ID())
}

func (e ScriptEnv) AllyCount() int  { return e.snap.LivingAllies() }
func (e ScriptEnv) EnemyCount() int { return e.snap.LivingEnemies() }

// TeamHP is the mean health percentage across living allies.
func (e ScriptEnv) TeamHP() float64 { return e.snap.TeamHealthPct() * 100 }

func (e ScriptEnv) AnyAllyBelow(pct float64) bool { return e.snap.AnyAllyBelow(pct / 100) }

func (e ScriptEnv) AllyUnderAttack() bool { return e.snap.AnyAllyTargeted() }

func (e ScriptEnv) ClusteredEnemies() int { return e.snap.Status.ClusteredEnemies() }

func (e ScriptEnv) AbilityReady(slot int) bool {
	return e.snap.Status.AbilityReady(e.self.ID(), model.AbilitySlot(slot))
}
