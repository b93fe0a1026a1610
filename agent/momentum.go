package agent

import "time"

const (
	momentumWindow  = 6 * time.Second
	momentumPerKill = 0.25
	momentumCap     = 2.0
)

// Momentum tracks kills inside a sliding window so a fighter that just
// dropped someone presses the advantage instead of resetting to a cold
// rotation. Old kills age out; the bonus decays back to neutral on its own.
type Momentum struct {
	window time.Duration
	kills  []time.Time
}

func NewMomentum(window time.Duration) *Momentum {
	if window <= 0 {
		window = momentumWindow
	}
	return &Momentum{window: window}
}

// Record notes a kill at time t.
func (m *Momentum) Record(t time.Time) {
	m.prune(t)
	m.kills = append(m.kills, t)
}

// Count returns the kills still inside the window at now.
func (m *Momentum) Count(now time.Time) int {
	m.prune(now)
	return len(m.kills)
}

// Bonus is the damage multiplier earned by recent kills: 1.0 when cold,
// +0.25 per kill in the window, capped at 2.0.
func (m *Momentum) Bonus(now time.Time) float64 {
	bonus := 1.0 + momentumPerKill*float64(m.Count(now))
	if bonus > momentumCap {
		return momentumCap
	}
	return bonus
}

func (m *Momentum) prune(now time.Time) {
	live := m.kills[:0]
	for _, t := range m.kills {
		if now.Sub(t) <= m.window {
			live = append(live, t)
		}
	}
	m.kills = live
}
