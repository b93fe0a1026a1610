package gambit

import "github.com/veilbreakers/gambit-core/model"

// MatchMode says how a rule combines its conditions.
type MatchMode string

const (
	MatchAll MatchMode = "all" // every condition must hold
	MatchAny MatchMode = "any" // at least one condition must hold
)

// Rule is the atomic unit of combat behavior: conditions → action, placed
// in an urgency bucket with a priority inside it. Utility is the base score
// (0–100) the personality multiplies into a final score.
type Rule struct {
	Name       string
	Bucket     Bucket
	Priority   int     // 1–100, higher evaluates first within the bucket
	Utility    float64 // 0–100 base desirability
	Match      MatchMode
	Conditions []Predicate
	Action     Action
	Disabled   bool
}

// Matches evaluates the conditions against a candidate target. A rule with
// zero conditions always matches; an empty Match mode means MatchAll.
func (r *Rule) Matches(self, target model.Combatant, snap *model.Snapshot) bool {
	if len(r.Conditions) == 0 {
		return true
	}
	if r.Match == MatchAny {
		for i := range r.Conditions {
			if r.Conditions[i].Evaluate(self, target, snap) {
				return true
			}
		}
		return false
	}
	for i := range r.Conditions {
		if !r.Conditions[i].Evaluate(self, target, snap) {
			return false
		}
	}
	return true
}
