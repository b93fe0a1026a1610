package arena

import (
	"github.com/veilbreakers/gambit-core/model"
)

// Stats are the fixed numbers a combatant is built from. Power feeds the
// damage and healing formulas; everything else is capacity.
type Stats struct {
	MaxHP       int
	MaxResource int
	Power       int
}

// RoleStats returns the stat template for a role. Unknown roles fight as
// strikers.
func RoleStats(role model.Role) Stats {
	switch role {
	case model.RoleTank:
		return Stats{MaxHP: 180, MaxResource: 60, Power: 12}
	case model.RoleHealer:
		return Stats{MaxHP: 110, MaxResource: 120, Power: 8}
	case model.RoleCaster:
		return Stats{MaxHP: 100, MaxResource: 130, Power: 16}
	case model.RoleSupport:
		return Stats{MaxHP: 115, MaxResource: 100, Power: 10}
	}
	return Stats{MaxHP: 120, MaxResource: 80, Power: 18}
}

// Combatant is a concrete fighter in an arena battle. The battle mutates
// it; decision cores only ever see it through the model.Combatant view.
type Combatant struct {
	id    model.CombatantID
	name  string
	role  model.Role
	stats Stats

	hp       int
	resource int
	x, y     int

	// statuses holds remaining ticks per active tag; cooldowns holds the
	// tick at which each ability slot comes off cooldown.
	statuses     map[model.StatusTag]int
	cooldowns    map[model.AbilitySlot]int
	castingUntil int
	threat       model.CombatantID
}

// NewCombatant builds a combatant at full health and resource.
func NewCombatant(id model.CombatantID, name string, role model.Role, stats Stats) *Combatant {
	if stats.MaxHP <= 0 {
		stats = RoleStats(role)
	}
	return &Combatant{
		id:        id,
		name:      name,
		role:      role,
		stats:     stats,
		hp:        stats.MaxHP,
		resource:  stats.MaxResource,
		statuses:  make(map[model.StatusTag]int),
		cooldowns: make(map[model.AbilitySlot]int),
	}
}

func (c *Combatant) ID() model.CombatantID { return c.id }
func (c *Combatant) Name() string          { return c.name }
func (c *Combatant) Role() model.Role      { return c.role }
func (c *Combatant) Alive() bool           { return c.hp > 0 }

func (c *Combatant) HealthPct() float64 {
	if c.stats.MaxHP <= 0 {
		return 0
	}
	return float64(c.hp) / float64(c.stats.MaxHP)
}

func (c *Combatant) ResourcePct() float64 {
	if c.stats.MaxResource <= 0 {
		return 0
	}
	return float64(c.resource) / float64(c.stats.MaxResource)
}

// HP returns current hit points.
func (c *Combatant) HP() int { return c.hp }

// Resource returns current resource points.
func (c *Combatant) Resource() int { return c.resource }

// Power returns the combatant's damage and healing base.
func (c *Combatant) Power() int { return c.stats.Power }

// Position returns the zone coordinates.
func (c *Combatant) Position() (int, int) { return c.x, c.y }

// PlaceAt moves the combatant to a zone.
func (c *Combatant) PlaceAt(x, y int) {
	c.x = x
	c.y = y
}

// HasStatus reports whether the tag is active.
func (c *Combatant) HasStatus(tag model.StatusTag) bool {
	return c.statuses[tag] > 0
}

// ApplyStatus sets the tag for at least the given duration. Reapplying a
// shorter duration never shortens an active status.
func (c *Combatant) ApplyStatus(tag model.StatusTag, ticks int) {
	if ticks <= 0 {
		return
	}
	if c.statuses[tag] < ticks {
		c.statuses[tag] = ticks
	}
}

// ClearStatus removes the tag.
func (c *Combatant) ClearStatus(tag model.StatusTag) {
	delete(c.statuses, tag)
}

func (c *Combatant) damage(n int) {
	if n < 0 {
		n = 0
	}
	c.hp -= n
	if c.hp < 0 {
		c.hp = 0
	}
}

func (c *Combatant) heal(n int) {
	if !c.Alive() || n < 0 {
		return
	}
	c.hp += n
	if c.hp > c.stats.MaxHP {
		c.hp = c.stats.MaxHP
	}
}

// spend deducts resource if enough is available.
func (c *Combatant) spend(n int) bool {
	if c.resource < n {
		return false
	}
	c.resource -= n
	return true
}

func (c *Combatant) regen(n int) {
	c.resource += n
	if c.resource > c.stats.MaxResource {
		c.resource = c.stats.MaxResource
	}
}
