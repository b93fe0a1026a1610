package arena

import (
	"github.com/veilbreakers/gambit-core/gambit"
	"github.com/veilbreakers/gambit-core/model"
)

// View orients a battle for one side: its squad as allies, the opposition
// as enemies. A View is what gets handed to a controller as its world,
// executor and status query.
type View struct {
	battle *Battle
	side   Side
}

// Side returns the squad this view belongs to.
func (v *View) Side() Side { return v.side }

// Snapshot builds the oriented battle view for one decision cycle.
func (v *View) Snapshot() *model.Snapshot {
	mine := v.battle.sides[v.side]
	theirs := v.battle.sides[v.side.other()]

	snap := &model.Snapshot{
		Tick:    v.battle.tick,
		Allies:  make([]model.Combatant, len(mine)),
		Enemies: make([]model.Combatant, len(theirs)),
		Status:  v,
	}
	for i, c := range mine {
		snap.Allies[i] = c
	}
	for i, c := range theirs {
		snap.Enemies[i] = c
	}
	return snap
}

// Execute forwards a decided action to the battle.
func (v *View) Execute(actor model.CombatantID, kind gambit.ActionKind, res gambit.Result) error {
	return v.battle.Execute(actor, kind, res)
}

func (v *View) HasStatus(id model.CombatantID, tag model.StatusTag) bool {
	c, _ := v.battle.find(id)
	return c != nil && c.HasStatus(tag)
}

func (v *View) IsCasting(id model.CombatantID) bool {
	c, _ := v.battle.find(id)
	return c != nil && c.castingUntil > v.battle.tick
}

// IsTargeted reports whether any living opponent of the combatant's own
// side is currently attacking it.
func (v *View) IsTargeted(id model.CombatantID) bool {
	c, side := v.battle.find(id)
	if c == nil {
		return false
	}
	for _, e := range v.battle.sides[side.other()] {
		if e.Alive() && e.threat == id {
			return true
		}
	}
	return false
}

// ClusteredEnemies measures the tightest enemy formation from this side's
// point of view.
func (v *View) ClusteredEnemies() int {
	return clusterSize(v.battle.sides[v.side.other()], clusterRadius)
}

func (v *View) AbilityReady(id model.CombatantID, slot model.AbilitySlot) bool {
	c, _ := v.battle.find(id)
	if c == nil || !c.Alive() {
		return false
	}
	return c.cooldowns[slot] <= v.battle.tick && c.resource >= costAbility
}
