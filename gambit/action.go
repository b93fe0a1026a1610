package gambit

import (
	"fmt"
	"log/slog"

	"github.com/veilbreakers/gambit-core/model"
)

// ActionKind names what a rule does when it fires.
type ActionKind string

const (
	// Enemy-targeted.
	ActionAttack    ActionKind = "ATTACK"
	ActionExecute   ActionKind = "EXECUTE"
	ActionAbility   ActionKind = "ABILITY"
	ActionDebuff    ActionKind = "DEBUFF"
	ActionAOEAttack ActionKind = "AOE_ATTACK"

	// Ally-targeted.
	ActionHeal      ActionKind = "HEAL"
	ActionCleanse   ActionKind = "CLEANSE"
	ActionBuffAlly  ActionKind = "BUFF_ALLY"
	ActionGuardAlly ActionKind = "GUARD_ALLY"

	// Self-targeted.
	ActionDefendSelf ActionKind = "DEFEND_SELF"
	ActionBuffSelf   ActionKind = "BUFF_SELF"

	// ActionUltimate is fired by the controller's override machinery, never
	// by ordinary rule evaluation. Its real target comes from the
	// personality's ultimate targeting mode or a manual override.
	ActionUltimate ActionKind = "ULTIMATE"
)

// TargetStrategy picks the concrete combatant an action lands on.
type TargetStrategy string

const (
	// TargetAuto infers a sensible default from the action kind: offensive
	// actions pick the lowest-health enemy, support actions the
	// lowest-health ally, self actions the agent.
	TargetAuto TargetStrategy = "AUTO"

	TargetLowestHPEnemy  TargetStrategy = "LOWEST_HP_ENEMY"
	TargetHighestHPEnemy TargetStrategy = "HIGHEST_HP_ENEMY"
	TargetLowestHPAlly   TargetStrategy = "LOWEST_HP_ALLY"
	TargetHighestHPAlly  TargetStrategy = "HIGHEST_HP_ALLY"
	TargetSpecificAlly   TargetStrategy = "SPECIFIC_ALLY"
	TargetEnemyHealer    TargetStrategy = "ENEMY_HEALER"
	TargetEnemyTank      TargetStrategy = "ENEMY_TANK"
	TargetEnemyCaster    TargetStrategy = "ENEMY_CASTER"
	TargetEnemyDebuffed  TargetStrategy = "ENEMY_DEBUFFED"
	TargetSelf           TargetStrategy = "SELF"
)

// executeFlagPct marks a hit as an execute in results when the target is
// below this health percentage, regardless of personality thresholds.
const executeFlagPct = 25.0

// Action describes what a rule does: a kind, a targeting strategy, and the
// parameters the kind needs. Actions are pure data; Execute builds a Result
// and touches nothing outside its arguments.
type Action struct {
	Kind      ActionKind
	Target    TargetStrategy
	Slot      model.AbilitySlot
	Status    model.StatusTag
	AllyIndex int
}

// Result reports what an executed action did. OK is false when the target
// was gone or the kind unknown; callers fall back rather than crash.
type Result struct {
	OK      bool
	Message string
	Target  model.TargetRef
	Slot    model.AbilitySlot
	Status  model.StatusTag
	Execute bool
}

// TargetClass maps the action kind to the snapshot array its targets live in.
func (a Action) TargetClass() model.TargetClass {
	switch a.Kind {
	case ActionAttack, ActionExecute, ActionAbility, ActionDebuff, ActionAOEAttack:
		return model.ClassEnemy
	case ActionHeal, ActionCleanse, ActionBuffAlly, ActionGuardAlly:
		return model.ClassAlly
	case ActionDefendSelf, ActionBuffSelf, ActionUltimate:
		return model.ClassSelf
	}
	return model.ClassNone
}

// offensive reports whether the kind seeks damage on an enemy.
func (a Action) offensive() bool {
	return a.TargetClass() == model.ClassEnemy
}

// ResolveTarget applies the strategy against the snapshot. Returns NoTarget
// when nothing qualifies: no living enemy, no enemy with the wanted role,
// a dead or out-of-range specific ally.
func (a Action) ResolveTarget(self model.Combatant, snap *model.Snapshot) model.TargetRef {
	switch a.Target {
	case TargetAuto, "":
		return a.autoTarget(self, snap)
	case TargetLowestHPEnemy:
		if i, ok := snap.LowestHealthEnemy(); ok {
			return model.EnemyRef(i)
		}
	case TargetHighestHPEnemy:
		if i, ok := snap.HighestHealthEnemy(); ok {
			return model.EnemyRef(i)
		}
	case TargetLowestHPAlly:
		if i, ok := snap.LowestHealthAlly(); ok {
			return model.AllyRef(i)
		}
	case TargetHighestHPAlly:
		if i, ok := snap.HighestHealthAlly(); ok {
			return model.AllyRef(i)
		}
	case TargetSpecificAlly:
		if a.AllyIndex >= 0 && a.AllyIndex < len(snap.Allies) && snap.Allies[a.AllyIndex].Alive() {
			return model.AllyRef(a.AllyIndex)
		}
	case TargetEnemyHealer:
		if i, ok := snap.EnemyByRole(model.RoleHealer); ok {
			return model.EnemyRef(i)
		}
	case TargetEnemyTank:
		if i, ok := snap.EnemyByRole(model.RoleTank); ok {
			return model.EnemyRef(i)
		}
	case TargetEnemyCaster:
		if i, ok := snap.EnemyByRole(model.RoleCaster); ok {
			return model.EnemyRef(i)
		}
	case TargetEnemyDebuffed:
		if i, ok := snap.FirstDebuffedEnemy(); ok {
			return model.EnemyRef(i)
		}
	case TargetSelf:
		return selfRef(self, snap)
	default:
		slog.Warn("unknown target strategy", "strategy", a.Target)
	}
	return model.NoTarget
}

func (a Action) autoTarget(self model.Combatant, snap *model.Snapshot) model.TargetRef {
	switch a.TargetClass() {
	case model.ClassEnemy:
		if i, ok := snap.LowestHealthEnemy(); ok {
			return model.EnemyRef(i)
		}
	case model.ClassAlly:
		if i, ok := snap.LowestHealthAlly(); ok {
			return model.AllyRef(i)
		}
	case model.ClassSelf:
		return selfRef(self, snap)
	}
	return model.NoTarget
}

func selfRef(self model.Combatant, snap *model.Snapshot) model.TargetRef {
	if i := snap.AllyIndex(self.ID()); i >= 0 {
		return model.SelfRef(i)
	}
	return model.NoTarget
}

// Execute validates the target and builds the structured result. It never
// mutates battle state; applying damage or healing is the battle engine's
// job after it receives the decision.
func (a Action) Execute(self model.Combatant, target model.TargetRef, snap *model.Snapshot) Result {
	victim, ok := snap.At(target)
	if !ok || !victim.Alive() {
		return Result{Message: fmt.Sprintf("%s has no valid target for %s", self.Name(), a.Kind)}
	}

	res := Result{
		OK:     true,
		Target: target,
		Slot:   a.Slot,
		Status: a.Status,
	}

	if a.offensive() {
		res.Execute = a.Kind == ActionExecute || victim.HealthPct()*100 < executeFlagPct
	}

	switch a.Kind {
	case ActionAttack:
		res.Message = fmt.Sprintf("%s attacks %s", self.Name(), victim.Name())
	case ActionExecute:
		res.Message = fmt.Sprintf("%s moves to execute %s", self.Name(), victim.Name())
	case ActionAbility:
		res.Message = fmt.Sprintf("%s uses ability %d on %s", self.Name(), a.Slot, victim.Name())
	case ActionDebuff:
		res.Message = fmt.Sprintf("%s afflicts %s with %s", self.Name(), victim.Name(), a.Status)
	case ActionAOEAttack:
		res.Message = fmt.Sprintf("%s unleashes an area attack around %s", self.Name(), victim.Name())
	case ActionHeal:
		res.Message = fmt.Sprintf("%s heals %s", self.Name(), victim.Name())
	case ActionCleanse:
		if res.Status == "" {
			if worst, found := model.WorstStatus(snap.Status, victim.ID()); found {
				res.Status = worst
			}
		}
		res.Message = fmt.Sprintf("%s cleanses %s of %s", self.Name(), victim.Name(), res.Status)
	case ActionBuffAlly:
		res.Message = fmt.Sprintf("%s bolsters %s with %s", self.Name(), victim.Name(), a.Status)
	case ActionGuardAlly:
		res.Message = fmt.Sprintf("%s guards %s", self.Name(), victim.Name())
	case ActionDefendSelf:
		res.Message = fmt.Sprintf("%s takes a defensive stance", self.Name())
	case ActionBuffSelf:
		res.Message = fmt.Sprintf("%s empowers %s with %s", self.Name(), self.Name(), a.Status)
	case ActionUltimate:
		res.Message = fmt.Sprintf("%s unleashes their ultimate on %s", self.Name(), victim.Name())
	default:
		slog.Warn("unknown action kind", "kind", a.Kind)
		return Result{Message: fmt.Sprintf("unknown action %s", a.Kind)}
	}

	return res
}

// ParseActionKind maps the data-file spelling to an ActionKind.
func ParseActionKind(s string) (ActionKind, error) {
	switch k := ActionKind(s); k {
	case ActionAttack, ActionExecute, ActionAbility, ActionDebuff, ActionAOEAttack,
		ActionHeal, ActionCleanse, ActionBuffAlly, ActionGuardAlly,
		ActionDefendSelf, ActionBuffSelf, ActionUltimate:
		return k, nil
	}
	return "", fmt.Errorf("unknown action kind %q", s)
}

// ParseStrategy maps the data-file spelling to a TargetStrategy. Empty
// strings mean AUTO so rule files can omit the field.
func ParseStrategy(s string) (TargetStrategy, error) {
	if s == "" {
		return TargetAuto, nil
	}
	switch t := TargetStrategy(s); t {
	case TargetAuto, TargetLowestHPEnemy, TargetHighestHPEnemy,
		TargetLowestHPAlly, TargetHighestHPAlly, TargetSpecificAlly,
		TargetEnemyHealer, TargetEnemyTank, TargetEnemyCaster,
		TargetEnemyDebuffed, TargetSelf:
		return t, nil
	}
	return "", fmt.Errorf("unknown target strategy %q", s)
}
