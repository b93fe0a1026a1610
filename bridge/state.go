package bridge

import (
	"github.com/veilbreakers/gambit-core/model"
)

// wireCombatant adapts a client-reported combatant to the read-only view
// the decision core consumes. The client reports percentages; the model
// speaks fractions.
type wireCombatant struct {
	src StateCombatant
}

func (w wireCombatant) ID() model.CombatantID { return model.CombatantID(w.src.ID) }
func (w wireCombatant) Name() string          { return w.src.Name }
func (w wireCombatant) Alive() bool           { return w.src.Alive }
func (w wireCombatant) Role() model.Role      { return model.Role(w.src.Role) }

func (w wireCombatant) HealthPct() float64   { return pctToFrac(w.src.Health) }
func (w wireCombatant) ResourcePct() float64 { return pctToFrac(w.src.Resource) }

func pctToFrac(pct float64) float64 {
	if pct < 0 {
		return 0
	}
	if pct > 100 {
		return 1
	}
	return pct / 100
}

// wireStatus answers status queries from the flags the client sent along
// with the battle state.
type wireStatus struct {
	statuses  map[model.CombatantID]map[model.StatusTag]bool
	casting   map[model.CombatantID]bool
	targeted  map[model.CombatantID]bool
	ready     map[model.CombatantID]map[model.AbilitySlot]bool
	clustered int
}

func newWireStatus(clustered int) *wireStatus {
	return &wireStatus{
		statuses:  make(map[model.CombatantID]map[model.StatusTag]bool),
		casting:   make(map[model.CombatantID]bool),
		targeted:  make(map[model.CombatantID]bool),
		ready:     make(map[model.CombatantID]map[model.AbilitySlot]bool),
		clustered: clustered,
	}
}

func (s *wireStatus) add(c StateCombatant) {
	id := model.CombatantID(c.ID)
	if len(c.Statuses) > 0 {
		tags := make(map[model.StatusTag]bool, len(c.Statuses))
		for _, tag := range c.Statuses {
			tags[model.StatusTag(tag)] = true
		}
		s.statuses[id] = tags
	}
	s.casting[id] = c.Casting
	s.targeted[id] = c.Targeted
	if len(c.ReadySlots) > 0 {
		slots := make(map[model.AbilitySlot]bool, len(c.ReadySlots))
		for _, slot := range c.ReadySlots {
			slots[model.AbilitySlot(slot)] = true
		}
		s.ready[id] = slots
	}
}

func (s *wireStatus) HasStatus(id model.CombatantID, tag model.StatusTag) bool {
	return s.statuses[id][tag]
}

func (s *wireStatus) IsCasting(id model.CombatantID) bool  { return s.casting[id] }
func (s *wireStatus) IsTargeted(id model.CombatantID) bool { return s.targeted[id] }
func (s *wireStatus) ClusteredEnemies() int                { return s.clustered }

func (s *wireStatus) AbilityReady(id model.CombatantID, slot model.AbilitySlot) bool {
	return s.ready[id][slot]
}

// toSnapshot converts a battle state message into the snapshot a decision
// cycle runs against.
func toSnapshot(msg BattleStateMessage) *model.Snapshot {
	status := newWireStatus(msg.ClusteredEnemies)

	snap := &model.Snapshot{
		Tick:    msg.Tick,
		Allies:  make([]model.Combatant, len(msg.Allies)),
		Enemies: make([]model.Combatant, len(msg.Enemies)),
		Status:  status,
	}
	for i, c := range msg.Allies {
		snap.Allies[i] = wireCombatant{src: c}
		status.add(c)
	}
	for i, c := range msg.Enemies {
		snap.Enemies[i] = wireCombatant{src: c}
		status.add(c)
	}
	return snap
}
