package gambit

import (
	"errors"
	"log/slog"
	"sync"

	"github.com/veilbreakers/gambit-core/model"
)

// Score bounds. Raw scores above MaxScore clamp; candidates scoring below
// MinScore are discarded entirely.
const (
	MinScore = 1.0
	MaxScore = 1000.0
)

// Scoring constants shared by every personality. Personalities tune the
// multipliers in their profile; these are the fixed points of the formula.
const (
	midBandPct  = 50.0 // target HP at or below this gets the mid-band boost
	highBandPct = 80.0 // target HP at or above this gets dampened

	lowSelfHPDampener     = 0.5 // damage-seeking while critically hurt
	executeProximityBonus = 1.5 // basic attacks against execute-range targets

	overhealPct      = 90.0 // healing past this is mostly wasted
	overhealDampener = 0.3

	severeCleanseBonus   = 3.0
	moderateCleanseBonus = 2.5

	criticalSurvivalBoost = 2.0
	lowSurvivalBoost      = 1.5
)

// Candidate is a matched rule scored against one concrete target.
type Candidate struct {
	Rule   *Rule
	Target model.TargetRef
	Score  float64
}

// Decision is the outcome of one evaluation cycle. When no rule produced a
// candidate and a living enemy exists, the decision is the built-in fallback
// attack; with no living enemies it is invalid and the caller must check
// Valid before acting.
type Decision struct {
	Rule     *Rule
	Target   model.TargetRef
	Score    float64
	Fallback bool
}

// Valid reports whether the decision points at an actionable target.
func (d Decision) Valid() bool { return d.Rule != nil && d.Target.Valid() }

var fallbackRule = &Rule{
	Name:     "basic-attack-fallback",
	Bucket:   BucketLow,
	Priority: 1,
	Utility:  10,
	Action:   Action{Kind: ActionAttack, Target: TargetLowestHPEnemy},
}

// Evaluator scores one agent's options each decision cycle. It owns scratch
// buffers, so an Evaluator serves a single agent; give each AI combatant its
// own. The rule set pointer is guarded so a reload goroutine can swap it
// while battles run.
type Evaluator struct {
	mu          sync.RWMutex
	rules       *RuleSet
	personality *Personality
	candidates  []Candidate // scratch, reused across cycles
}

// NewEvaluator wires a rule set to a personality. Both are required; the
// personality is validated (clamped) on the way in.
func NewEvaluator(rs *RuleSet, p *Personality) (*Evaluator, error) {
	if rs == nil {
		return nil, errors.New("evaluator needs a rule set")
	}
	if p == nil {
		return nil, errors.New("evaluator needs a personality")
	}
	p.Validate()
	return &Evaluator{rules: rs, personality: p}, nil
}

// Personality returns the tuning profile the evaluator scores with.
func (e *Evaluator) Personality() *Personality { return e.personality }

// SwapRules atomically replaces the rule set. The old set stays active for
// any evaluation already in flight.
func (e *Evaluator) SwapRules(rs *RuleSet) {
	if rs == nil {
		return
	}
	e.mu.Lock()
	e.rules = rs
	e.mu.Unlock()
	slog.Info("rule set swapped", "set", rs.Name(), "rules", rs.Len())
}

// EvaluateBest walks the buckets in urgency order and returns the highest
// scoring candidate from the first bucket that produces any. Ties break by
// score, then rule order in the sorted set, then target index, so the same
// snapshot always yields the same decision.
func (e *Evaluator) EvaluateBest(self model.Combatant, snap *model.Snapshot) Decision {
	e.mu.RLock()
	rules := e.rules
	e.mu.RUnlock()

	e.candidates = e.candidates[:0]

	for _, b := range Buckets {
		for _, r := range rules.InBucket(b) {
			e.collect(r, self, snap)
		}
		if len(e.candidates) > 0 {
			break
		}
	}

	if len(e.candidates) == 0 {
		return e.fallback(self, snap)
	}

	best := 0
	for i := 1; i < len(e.candidates); i++ {
		if e.candidates[i].Score > e.candidates[best].Score {
			best = i
		}
	}
	c := e.candidates[best]
	slog.Debug("decision",
		"agent", self.Name(),
		"rule", c.Rule.Name,
		"bucket", c.Rule.Bucket,
		"target", c.Target,
		"score", c.Score,
		"considered", len(e.candidates),
	)
	return Decision{Rule: c.Rule, Target: c.Target, Score: c.Score}
}

// Candidates returns the scored survivors from the last EvaluateBest call.
// The slice is scratch: it is only valid until the next call.
func (e *Evaluator) Candidates() []Candidate { return e.candidates }

// collect enumerates the rule's candidate targets and scores each match.
// An explicit strategy pins a single candidate; AUTO explores the whole
// class pool and lets scoring pick.
func (e *Evaluator) collect(r *Rule, self model.Combatant, snap *model.Snapshot) {
	if r.Action.Target == TargetAuto || r.Action.Target == "" {
		switch r.Action.TargetClass() {
		case model.ClassEnemy:
			for i, en := range snap.Enemies {
				if en.Alive() {
					e.push(r, self, en, model.EnemyRef(i), snap)
				}
			}
		case model.ClassAlly:
			for i, al := range snap.Allies {
				if al.Alive() {
					e.push(r, self, al, model.AllyRef(i), snap)
				}
			}
		case model.ClassSelf:
			if ref := selfRef(self, snap); ref.Valid() {
				e.push(r, self, self, ref, snap)
			}
		}
		return
	}

	ref := r.Action.ResolveTarget(self, snap)
	if !ref.Valid() {
		return
	}
	target, ok := snap.At(ref)
	if !ok || !target.Alive() {
		return
	}
	e.push(r, self, target, ref, snap)
}

func (e *Evaluator) push(r *Rule, self, target model.Combatant, ref model.TargetRef, snap *model.Snapshot) {
	if !r.Matches(self, target, snap) {
		return
	}
	score := e.score(r, self, target, snap)
	if score < MinScore {
		return
	}
	if score > MaxScore {
		score = MaxScore
	}
	e.candidates = append(e.candidates, Candidate{Rule: r, Target: ref, Score: score})
}

// score multiplies the rule's base utility through the personality:
// target or ally state, self condition, category weight (neutral at 25),
// and the intra-bucket priority bonus. The defend gate applies last and
// forces exactly MinScore.
func (e *Evaluator) score(r *Rule, self, target model.Combatant, snap *model.Snapshot) float64 {
	p := e.personality
	score := r.Utility

	switch r.Action.TargetClass() {
	case model.ClassEnemy:
		score *= e.targetStateMultiplier(target, snap)
		score *= e.selfConditionMultiplier(r, self, target)
		score *= p.Weights.Damage / 25
	case model.ClassAlly:
		score *= e.allyNeedMultiplier(r, target, snap)
		score *= p.Weights.TeamValue / 25
	case model.ClassSelf:
		score *= e.selfPreservationMultiplier(self)
		score *= p.Weights.Survival / 25
	}

	score *= 1 + float64(r.Priority)/100

	if r.Action.Kind == ActionDefendSelf && !p.Behavior.CanAutoDefend &&
		self.HealthPct()*100 >= p.Behavior.AutoDefendThreshold {
		return MinScore
	}

	return score
}

// targetStateMultiplier prices an enemy target: its HP band, then exactly
// one of shredded armor / any debuff / healer role / tank role (first that
// applies), and a casting bonus on top of either.
func (e *Evaluator) targetStateMultiplier(target model.Combatant, snap *model.Snapshot) float64 {
	p := e.personality
	m := 1.0

	hp := target.HealthPct() * 100
	switch {
	case hp <= p.Thresholds.Execute:
		m *= p.Multipliers.LowHPTarget
	case hp <= midBandPct:
		m *= p.Multipliers.MidHPTarget
	case hp >= highBandPct:
		m *= p.Multipliers.HighHPTarget
	}

	switch {
	case snap.Status.HasStatus(target.ID(), model.StatusArmorShred):
		m *= p.Multipliers.ShreddedTarget
	case model.HasAnyDebuff(snap.Status, target.ID()):
		m *= p.Multipliers.DebuffedTarget
	case target.Role() == model.RoleHealer:
		m *= p.Multipliers.HealerTarget
	case target.Role() == model.RoleTank:
		m *= p.Multipliers.TankTarget
	}

	if snap.Status.IsCasting(target.ID()) {
		m *= p.Multipliers.CastingTarget
	}

	return m
}

// selfConditionMultiplier dampens damage-seeking while the agent is
// critically hurt and nudges basic attacks toward execute-range targets.
// Execute actions already price the window through the HP band.
func (e *Evaluator) selfConditionMultiplier(r *Rule, self, target model.Combatant) float64 {
	p := e.personality
	m := 1.0

	if self.HealthPct()*100 < p.Thresholds.CriticalHP {
		m *= lowSelfHPDampener
	}
	if r.Action.Kind == ActionAttack && target.HealthPct()*100 < p.Thresholds.Execute {
		m *= executeProximityBonus
	}

	return m
}

// allyNeedMultiplier prices an ally target: HP urgency, wasted healing,
// and how dangerous the statuses a cleanse would strip are.
func (e *Evaluator) allyNeedMultiplier(r *Rule, target model.Combatant, snap *model.Snapshot) float64 {
	p := e.personality
	m := 1.0

	hp := target.HealthPct() * 100
	switch {
	case hp < p.Thresholds.CriticalHP:
		m *= p.Multipliers.CriticalAlly
	case hp < p.Thresholds.LowHP:
		m *= p.Multipliers.LowAlly
	}

	if r.Action.Kind == ActionHeal && hp > overhealPct {
		m *= overhealDampener
	}

	if r.Action.Kind == ActionCleanse {
		if worst, found := model.WorstStatus(snap.Status, target.ID()); found {
			switch model.StatusSeverity(worst) {
			case model.SeveritySevere:
				m *= severeCleanseBonus
			case model.SeverityModerate:
				m *= moderateCleanseBonus
			}
		}
	}

	return m
}

func (e *Evaluator) selfPreservationMultiplier(self model.Combatant) float64 {
	p := e.personality
	hp := self.HealthPct() * 100
	switch {
	case hp < p.Thresholds.CriticalHP:
		return criticalSurvivalBoost
	case hp < p.Thresholds.LowHP:
		return lowSurvivalBoost
	}
	return 1.0
}

// fallback is the guaranteed floor: basic attack on the lowest-health
// living enemy. With nobody left to hit the decision comes back invalid,
// which callers treat as "stand down", never as a crash.
func (e *Evaluator) fallback(self model.Combatant, snap *model.Snapshot) Decision {
	if i, ok := snap.LowestHealthEnemy(); ok {
		slog.Debug("no rule matched, using fallback attack", "agent", self.Name())
		return Decision{Rule: fallbackRule, Target: model.EnemyRef(i), Score: MinScore, Fallback: true}
	}
	return Decision{}
}

// DesperationMultiplier is an opt-in query for battle engines that scale
// outgoing damage as a fight turns dire. It is never folded into candidate
// scores. Tiers by mean team health: above two thirds 1x, above one third
// 1.5x, below that 2x.
func (e *Evaluator) DesperationMultiplier(snap *model.Snapshot) float64 {
	if !e.personality.Behavior.StrongerWhenLosing {
		return 1.0
	}
	team := snap.TeamHealthPct()
	switch {
	case team > 2.0/3.0:
		return 1.0
	case team > 1.0/3.0:
		return 1.5
	default:
		return 2.0
	}
}
