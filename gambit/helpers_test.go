package gambit

import (
	"github.com/veilbreakers/gambit-core/model"
)

// testCombatant satisfies model.Combatant. hp and res are percentages for
// fixture readability, matching how rule data is written.
type testCombatant struct {
	id   model.CombatantID
	name string
	role model.Role
	hp   float64
	res  float64
}

func (c testCombatant) ID() model.CombatantID { return c.id }
func (c testCombatant) Name() string          { return c.name }
func (c testCombatant) Alive() bool           { return c.hp > 0 }
func (c testCombatant) HealthPct() float64    { return c.hp / 100 }
func (c testCombatant) ResourcePct() float64  { return c.res / 100 }
func (c testCombatant) Role() model.Role      { return c.role }

// testStatus satisfies model.StatusQuery with fixed answers.
type testStatus struct {
	statuses  map[model.CombatantID][]model.StatusTag
	casting   map[model.CombatantID]bool
	targeted  map[model.CombatantID]bool
	ready     map[model.CombatantID][]model.AbilitySlot
	clustered int
}

func (s *testStatus) HasStatus(id model.CombatantID, tag model.StatusTag) bool {
	for _, t := range s.statuses[id] {
		if t == tag {
			return true
		}
	}
	return false
}

func (s *testStatus) IsCasting(id model.CombatantID) bool  { return s.casting[id] }
func (s *testStatus) IsTargeted(id model.CombatantID) bool { return s.targeted[id] }
func (s *testStatus) ClusteredEnemies() int                { return s.clustered }

func (s *testStatus) AbilityReady(id model.CombatantID, slot model.AbilitySlot) bool {
	for _, sl := range s.ready[id] {
		if sl == slot {
			return true
		}
	}
	return false
}

// testSnap builds a snapshot around the fixtures. A nil status means a
// quiet battle: no statuses, no casts, nobody targeted.
func testSnap(allies, enemies []model.Combatant, status *testStatus) *model.Snapshot {
	if status == nil {
		status = &testStatus{}
	}
	return &model.Snapshot{Tick: 1, Allies: allies, Enemies: enemies, Status: status}
}
