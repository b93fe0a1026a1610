package gambit

import (
	"log/slog"
	"math"
)

// Weights split 100 points of attention across scoring categories. The
// evaluator divides by 25 so a weight of 25 is neutral, 50 doubles a
// category and 10 starves it.
type Weights struct {
	Damage      float64 `yaml:"damage"`
	Survival    float64 `yaml:"survival"`
	TeamValue   float64 `yaml:"team_value"`
	Positioning float64 `yaml:"positioning"`
	Control     float64 `yaml:"control"`
}

// Sum is the total attention budget. Should be 100; Validate warns when not.
func (w Weights) Sum() float64 {
	return w.Damage + w.Survival + w.TeamValue + w.Positioning + w.Control
}

// Thresholds are health and resource percentages (0–100) that flip behavior.
type Thresholds struct {
	CriticalHP   float64 `yaml:"critical_hp"`
	LowHP        float64 `yaml:"low_hp"`
	Execute      float64 `yaml:"execute"`
	ManaConserve float64 `yaml:"mana_conserve"`
}

// Multipliers tune how hard target and ally state bends a score.
type Multipliers struct {
	LowHPTarget    float64 `yaml:"low_hp_target"`
	MidHPTarget    float64 `yaml:"mid_hp_target"`
	HighHPTarget   float64 `yaml:"high_hp_target"`
	ShreddedTarget float64 `yaml:"shredded_target"`
	DebuffedTarget float64 `yaml:"debuffed_target"`
	TankTarget     float64 `yaml:"tank_target"`
	HealerTarget   float64 `yaml:"healer_target"`
	CastingTarget  float64 `yaml:"casting_target"`
	CriticalAlly   float64 `yaml:"critical_ally"`
	LowAlly        float64 `yaml:"low_ally"`
}

// Behavior holds the binary switches that gate whole behaviors rather than
// bending scores.
type Behavior struct {
	CanAutoDefend       bool    `yaml:"can_auto_defend"`
	AutoDefendThreshold float64 `yaml:"auto_defend_threshold"`
	PrefersRanged       bool    `yaml:"prefers_ranged"`
	PrefersAOE          bool    `yaml:"prefers_aoe"`
	TracksMomentum      bool    `yaml:"tracks_momentum"`
	StrongerWhenLosing  bool    `yaml:"stronger_when_losing"`
}

// Personality is the tuning profile that turns one shared scoring formula
// into visibly different fighters. It is plain data: rules describe what a
// combatant can do, the personality decides how much each option is worth.
type Personality struct {
	Name              string         `yaml:"name"`
	Weights           Weights        `yaml:"weights"`
	Thresholds        Thresholds     `yaml:"thresholds"`
	Multipliers       Multipliers    `yaml:"multipliers"`
	Behavior          Behavior       `yaml:"behavior"`
	UltimateTargeting TargetStrategy `yaml:"ultimate_targeting"`
}

// DefaultPersonality returns the balanced baseline. Loaded profiles start
// from it, so omitted fields inherit these values.
func DefaultPersonality() Personality {
	return Personality{
		Name: "balanced",
		Weights: Weights{
			Damage:      20,
			Survival:    20,
			TeamValue:   20,
			Positioning: 20,
			Control:     20,
		},
		Thresholds: Thresholds{
			CriticalHP:   20,
			LowHP:        40,
			Execute:      25,
			ManaConserve: 15,
		},
		Multipliers: Multipliers{
			LowHPTarget:    2.5,
			MidHPTarget:    1.5,
			HighHPTarget:   0.8,
			ShreddedTarget: 2.0,
			DebuffedTarget: 1.3,
			TankTarget:     0.7,
			HealerTarget:   1.6,
			CastingTarget:  1.4,
			CriticalAlly:   2.0,
			LowAlly:        1.5,
		},
		Behavior: Behavior{
			CanAutoDefend:       true,
			AutoDefendThreshold: 30,
		},
		UltimateTargeting: TargetLowestHPEnemy,
	}
}

// Validate clamps every field to its valid range and warns when the weight
// budget drifts from 100.
func (p *Personality) Validate() {
	p.Weights.Damage = clamp(p.Weights.Damage, 0, 100)
	p.Weights.Survival = clamp(p.Weights.Survival, 0, 100)
	p.Weights.TeamValue = clamp(p.Weights.TeamValue, 0, 100)
	p.Weights.Positioning = clamp(p.Weights.Positioning, 0, 100)
	p.Weights.Control = clamp(p.Weights.Control, 0, 100)

	p.Thresholds.CriticalHP = clamp(p.Thresholds.CriticalHP, 0, 100)
	p.Thresholds.LowHP = clamp(p.Thresholds.LowHP, 0, 100)
	p.Thresholds.Execute = clamp(p.Thresholds.Execute, 0, 100)
	p.Thresholds.ManaConserve = clamp(p.Thresholds.ManaConserve, 0, 100)

	p.Multipliers.LowHPTarget = clamp(p.Multipliers.LowHPTarget, 0, 10)
	p.Multipliers.MidHPTarget = clamp(p.Multipliers.MidHPTarget, 0, 10)
	p.Multipliers.HighHPTarget = clamp(p.Multipliers.HighHPTarget, 0, 10)
	p.Multipliers.ShreddedTarget = clamp(p.Multipliers.ShreddedTarget, 0, 10)
	p.Multipliers.DebuffedTarget = clamp(p.Multipliers.DebuffedTarget, 0, 10)
	p.Multipliers.TankTarget = clamp(p.Multipliers.TankTarget, 0, 10)
	p.Multipliers.HealerTarget = clamp(p.Multipliers.HealerTarget, 0, 10)
	p.Multipliers.CastingTarget = clamp(p.Multipliers.CastingTarget, 0, 10)
	p.Multipliers.CriticalAlly = clamp(p.Multipliers.CriticalAlly, 0, 10)
	p.Multipliers.LowAlly = clamp(p.Multipliers.LowAlly, 0, 10)

	p.Behavior.AutoDefendThreshold = clamp(p.Behavior.AutoDefendThreshold, 0, 100)

	if sum := p.Weights.Sum(); math.Abs(sum-100) > 0.5 {
		slog.Warn("personality weights do not sum to 100", "personality", p.Name, "sum", sum)
	}
}

// clamp restricts v to [min, max].
func clamp(v, min, max float64) float64 {
	if v < min {
		return min
	}
	if v > max {
		return max
	}
	return v
}

// clampInt restricts v to [min, max].
func clampInt(v, min, max int) int {
	if v < min {
		return min
	}
	if v > max {
		return max
	}
	return v
}
