package model

// Snapshot is the stable view of the battle a decision cycle works against.
// The battle engine builds one per tick; the decision core treats it as
// immutable for the duration of the cycle. Allies includes the acting agent.
type Snapshot struct {
	Tick    int
	Allies  []Combatant
	Enemies []Combatant
	Status  StatusQuery
}

// At resolves a TargetRef against the snapshot arrays. The bool is false for
// NoTarget and for out-of-range indexes.
func (s *Snapshot) At(ref TargetRef) (Combatant, bool) {
	switch ref.Class {
	case ClassEnemy:
		if ref.Index < 0 || ref.Index >= len(s.Enemies) {
			return nil, false
		}
		return s.Enemies[ref.Index], true
	case ClassAlly, ClassSelf:
		if ref.Index < 0 || ref.Index >= len(s.Allies) {
			return nil, false
		}
		return s.Allies[ref.Index], true
	}
	return nil, false
}

// AllyIndex returns the ally-array position of the combatant, or -1.
func (s *Snapshot) AllyIndex(id CombatantID) int {
	for i, a := range s.Allies {
		if a.ID() == id {
			return i
		}
	}
	return -1
}

func (s *Snapshot) LivingAllies() int {
	n := 0
	for _, a := range s.Allies {
		if a.Alive() {
			n++
		}
	}
	return n
}

func (s *Snapshot) LivingEnemies() int {
	n := 0
	for _, e := range s.Enemies {
		if e.Alive() {
			n++
		}
	}
	return n
}

// LowestHealthEnemy returns the index of the living enemy with the lowest
// health fraction. Ties break to the lower index so identical snapshots
// always produce identical picks.
func (s *Snapshot) LowestHealthEnemy() (int, bool) {
	return lowest(s.Enemies)
}

func (s *Snapshot) HighestHealthEnemy() (int, bool) {
	return highest(s.Enemies)
}

func (s *Snapshot) LowestHealthAlly() (int, bool) {
	return lowest(s.Allies)
}

func (s *Snapshot) HighestHealthAlly() (int, bool) {
	return highest(s.Allies)
}

func lowest(cs []Combatant) (int, bool) {
	best := -1
	for i, c := range cs {
		if !c.Alive() {
			continue
		}
		if best < 0 || c.HealthPct() < cs[best].HealthPct() {
			best = i
		}
	}
	return best, best >= 0
}

func highest(cs []Combatant) (int, bool) {
	best := -1
	for i, c := range cs {
		if !c.Alive() {
			continue
		}
		if best < 0 || c.HealthPct() > cs[best].HealthPct() {
			best = i
		}
	}
	return best, best >= 0
}

// EnemyByRole returns the first living enemy with the role.
func (s *Snapshot) EnemyByRole(role Role) (int, bool) {
	for i, e := range s.Enemies {
		if e.Alive() && e.Role() == role {
			return i, true
		}
	}
	return -1, false
}

// FirstDebuffedEnemy returns the first living enemy carrying any debuff.
func (s *Snapshot) FirstDebuffedEnemy() (int, bool) {
	for i, e := range s.Enemies {
		if e.Alive() && HasAnyDebuff(s.Status, e.ID()) {
			return i, true
		}
	}
	return -1, false
}

// TeamHealthPct is the mean health fraction across living allies.
// Returns 0 when the whole team is down.
func (s *Snapshot) TeamHealthPct() float64 {
	sum, n := 0.0, 0
	for _, a := range s.Allies {
		if a.Alive() {
			sum += a.HealthPct()
			n++
		}
	}
	if n == 0 {
		return 0
	}
	return sum / float64(n)
}

// AnyAllyBelow reports whether any living ally's health fraction is under frac.
func (s *Snapshot) AnyAllyBelow(frac float64) bool {
	for _, a := range s.Allies {
		if a.Alive() && a.HealthPct() < frac {
			return true
		}
	}
	return false
}

// AnyAllyAbove reports whether any living ally's health fraction is over frac.
func (s *Snapshot) AnyAllyAbove(frac float64) bool {
	for _, a := range s.Allies {
		if a.Alive() && a.HealthPct() > frac {
			return true
		}
	}
	return false
}

// AnyAllyWithStatus reports whether any living ally carries the tag.
func (s *Snapshot) AnyAllyWithStatus(tag StatusTag) bool {
	for _, a := range s.Allies {
		if a.Alive() && s.Status.HasStatus(a.ID(), tag) {
			return true
		}
	}
	return false
}

// AnyAllyTargeted reports whether any living ally is being attacked.
func (s *Snapshot) AnyAllyTargeted() bool {
	for _, a := range s.Allies {
		if a.Alive() && s.Status.IsTargeted(a.ID()) {
			return true
		}
	}
	return false
}
