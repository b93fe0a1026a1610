package model

// StatusTag names a status effect. Tags are plain strings so battle engines
// can introduce effects the core has never heard of; unknown tags simply
// classify as SeverityMinor for cleanse purposes.
type StatusTag string

const (
	StatusArmorShred StatusTag = "armor_shred"
	StatusStun       StatusTag = "stun"
	StatusCharm      StatusTag = "charm"
	StatusDoom       StatusTag = "doom"
	StatusPoison     StatusTag = "poison"
	StatusBurn       StatusTag = "burn"
	StatusBleed      StatusTag = "bleed"
	StatusSlow       StatusTag = "slow"
	StatusWeaken     StatusTag = "weaken"
	StatusShield     StatusTag = "shield"
	StatusRegen      StatusTag = "regen"
	StatusRally      StatusTag = "rally"
)

// Severity grades how urgently a status should be cleansed.
type Severity int

const (
	SeverityMinor    Severity = iota // inconvenient: slow, weaken
	SeverityModerate                 // damaging over time: poison, burn, bleed, armor_shred
	SeveritySevere                   // loss of control: stun, charm, doom
)

var statusSeverity = map[StatusTag]Severity{
	StatusStun:       SeveritySevere,
	StatusCharm:      SeveritySevere,
	StatusDoom:       SeveritySevere,
	StatusPoison:     SeverityModerate,
	StatusBurn:       SeverityModerate,
	StatusBleed:      SeverityModerate,
	StatusArmorShred: SeverityModerate,
}

// StatusSeverity returns the cleanse urgency of a tag. Unknown tags are minor.
func StatusSeverity(tag StatusTag) Severity {
	return statusSeverity[tag]
}

// DebuffTags lists the harmful tags in canonical order. Used when scanning a
// combatant for "any debuff" and for picking the worst status to cleanse.
var DebuffTags = []StatusTag{
	StatusStun, StatusCharm, StatusDoom,
	StatusPoison, StatusBurn, StatusBleed, StatusArmorShred,
	StatusSlow, StatusWeaken,
}

// WorstStatus returns the highest-severity debuff currently on the combatant,
// scanning canonical tags in order. The bool is false when the combatant is
// clean.
func WorstStatus(q StatusQuery, id CombatantID) (StatusTag, bool) {
	var worst StatusTag
	found := false
	for _, tag := range DebuffTags {
		if !q.HasStatus(id, tag) {
			continue
		}
		if !found || StatusSeverity(tag) > StatusSeverity(worst) {
			worst = tag
			found = true
		}
	}
	return worst, found
}

// HasAnyDebuff reports whether the combatant carries at least one harmful tag.
func HasAnyDebuff(q StatusQuery, id CombatantID) bool {
	for _, tag := range DebuffTags {
		if q.HasStatus(id, tag) {
			return true
		}
	}
	return false
}
