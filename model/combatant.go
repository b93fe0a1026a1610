package model

// CombatantID identifies a combatant for the lifetime of a battle.
// IDs are opaque: the engine assigns them, the AI never derives meaning
// from their values beyond equality.
type CombatantID int64

// Role is the coarse battlefield archetype of a combatant. Targeting
// strategies and score multipliers key off it; it carries no stats.
type Role string

const (
	RoleTank    Role = "tank"
	RoleHealer  Role = "healer"
	RoleCaster  Role = "caster"
	RoleStriker Role = "striker"
	RoleSupport Role = "support"
)

// Combatant is the read-only view of a single fighter the decision core
// works with. The battle engine owns the mutable state; the AI only
// observes. HealthPct and ResourcePct are fractions in [0, 1].
type Combatant interface {
	ID() CombatantID
	Name() string
	Alive() bool
	HealthPct() float64
	ResourcePct() float64
	Role() Role
}

// AbilitySlot indexes an ability on a combatant's bar.
type AbilitySlot int

// StatusQuery answers battle-state questions that live outside the
// per-combatant view: status effects, cast bars, threat and formation.
// Implementations must be cheap; predicates call these per candidate.
type StatusQuery interface {
	// HasStatus reports whether the combatant currently carries the tag.
	HasStatus(id CombatantID, tag StatusTag) bool
	// IsCasting reports whether the combatant is mid-cast.
	IsCasting(id CombatantID) bool
	// IsTargeted reports whether any opponent is currently attacking the combatant.
	IsTargeted(id CombatantID) bool
	// ClusteredEnemies returns the size of the largest enemy group standing
	// close enough together to be hit by one area attack.
	ClusteredEnemies() int
	// AbilityReady reports whether the combatant's ability slot is off cooldown
	// and affordable.
	AbilityReady(id CombatantID, slot AbilitySlot) bool
}
