package agent

import (
	"github.com/veilbreakers/gambit-core/model"
)

// defeat is a combatant observed alive on a previous snapshot and dead now.
type defeat struct {
	id    model.CombatantID
	name  string
	enemy bool
}

// battleDiff detects defeats by comparing consecutive snapshots. Hosts that
// report kills through NoteDefeat get precise attribution; for everyone else
// the diff keeps momentum and defeat notices working.
type battleDiff struct {
	alive map[model.CombatantID]bool
}

// observe compares the snapshot against the previous one and returns newly
// observed defeats. The first call only seeds the baseline and reports
// nothing.
func (d *battleDiff) observe(snap *model.Snapshot) []defeat {
	first := d.alive == nil
	if first {
		d.alive = make(map[model.CombatantID]bool, len(snap.Allies)+len(snap.Enemies))
	}

	var defeats []defeat
	record := func(c model.Combatant, enemy bool) {
		id := c.ID()
		wasAlive, seen := d.alive[id]
		nowAlive := c.Alive()
		if !first && seen && wasAlive && !nowAlive {
			defeats = append(defeats, defeat{id: id, name: c.Name(), enemy: enemy})
		}
		d.alive[id] = nowAlive
	}

	for _, a := range snap.Allies {
		record(a, false)
	}
	for _, e := range snap.Enemies {
		record(e, true)
	}

	if first {
		return nil
	}
	return defeats
}

// markDead suppresses a future diff report for a defeat the host already
// reported through NoteDefeat.
func (d *battleDiff) markDead(id model.CombatantID) {
	if d.alive == nil {
		d.alive = make(map[model.CombatantID]bool)
	}
	d.alive[id] = false
}
