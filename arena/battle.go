package arena

import (
	"fmt"
	"log/slog"
	"math/rand"

	"github.com/veilbreakers/gambit-core/gambit"
	"github.com/veilbreakers/gambit-core/model"
)

// Side names one of the two squads in a battle.
type Side int

const (
	SideA Side = iota
	SideB
)

func (s Side) other() Side {
	if s == SideA {
		return SideB
	}
	return SideA
}

func (s Side) String() string {
	if s == SideA {
		return "A"
	}
	return "B"
}

// Battle pacing and effect numbers. Durations are in ticks.
const (
	clusterRadius = 1
	aoeRadius     = 1
	aoeFalloff    = 0.6

	castTicks     = 2
	statusTicks   = 3
	buffTicks     = 4
	defendTicks   = 2
	cooldownTicks = 4

	resourceRegen = 5
	regenHeal     = 4

	costAbility = 20
	costDebuff  = 15
	costAOE     = 25
	costHeal    = 20
	costCleanse = 10
	costBuff    = 15
)

// dotDamage is the per-tick damage of each damaging status.
var dotDamage = map[model.StatusTag]int{
	model.StatusPoison: 3,
	model.StatusBurn:   4,
	model.StatusBleed:  2,
}

// Battle is the reference battle engine: two squads on a zone field, turn
// by turn. It implements the executor side of the decision loop; agents
// see it through per-side Views.
type Battle struct {
	field Field
	tick  int
	sides [2][]*Combatant
	rng   *rand.Rand
}

// NewBattle places the two squads on opposite edges of the field. The seed
// fixes the damage variance so runs are reproducible.
func NewBattle(field Field, squadA, squadB []*Combatant, seed int64) *Battle {
	if field.Cols <= 0 || field.Rows <= 0 {
		field = DefaultField
	}
	b := &Battle{
		field: field,
		sides: [2][]*Combatant{squadA, squadB},
		rng:   rand.New(rand.NewSource(seed)),
	}
	b.deploy(SideA, 1)
	b.deploy(SideB, field.Cols-2)
	return b
}

func (b *Battle) deploy(side Side, col int) {
	squad := b.sides[side]
	top := b.field.Rows/2 - len(squad)/2
	for i, c := range squad {
		x, y := b.field.Clamp(col, top+i)
		c.PlaceAt(x, y)
	}
}

// Tick returns the current battle tick.
func (b *Battle) Tick() int { return b.tick }

// Squad returns a side's combatants, dead included.
func (b *Battle) Squad(side Side) []*Combatant { return b.sides[side] }

// View returns a side's oriented view: its combatants as allies, the other
// side's as enemies. Views implement the snapshot, status query and
// executor surfaces a controller needs.
func (b *Battle) View(side Side) *View {
	return &View{battle: b, side: side}
}

func (b *Battle) find(id model.CombatantID) (*Combatant, Side) {
	for _, side := range []Side{SideA, SideB} {
		for _, c := range b.sides[side] {
			if c.ID() == id {
				return c, side
			}
		}
	}
	return nil, SideA
}

// CanAct reports whether the combatant may take a turn: alive and not
// locked down by a control status.
func (b *Battle) CanAct(id model.CombatantID) bool {
	c, _ := b.find(id)
	if c == nil || !c.Alive() {
		return false
	}
	return !c.HasStatus(model.StatusStun) && !c.HasStatus(model.StatusCharm)
}

// StartCast marks the combatant as casting for the given ticks. Scripted
// encounters use it to telegraph interruptible abilities.
func (b *Battle) StartCast(id model.CombatantID, ticks int) {
	if c, _ := b.find(id); c != nil && c.Alive() {
		c.castingUntil = b.tick + ticks
	}
}

// Execute applies a decided action to the battle. It is the write half of
// the decision loop: the controller decides, the battle mutates.
func (b *Battle) Execute(actor model.CombatantID, kind gambit.ActionKind, res gambit.Result) error {
	attacker, side := b.find(actor)
	if attacker == nil {
		return fmt.Errorf("unknown actor %d", actor)
	}
	if !attacker.Alive() {
		return fmt.Errorf("%s is dead", attacker.Name())
	}

	victim, err := b.resolve(side, res.Target)
	if err != nil {
		return err
	}

	switch kind {
	case gambit.ActionAttack:
		b.hit(attacker, victim, b.roll(attacker.Power()), res.Execute)

	case gambit.ActionExecute:
		b.hit(attacker, victim, b.roll(attacker.Power()*2), true)

	case gambit.ActionAbility:
		if !attacker.spend(costAbility) {
			return fmt.Errorf("%s lacks resource for ability %d", attacker.Name(), res.Slot)
		}
		attacker.cooldowns[res.Slot] = b.tick + cooldownTicks
		attacker.castingUntil = b.tick + castTicks
		b.hit(attacker, victim, b.roll(attacker.Power()*3/2), res.Execute)

	case gambit.ActionDebuff:
		if !attacker.spend(costDebuff) {
			return fmt.Errorf("%s lacks resource to afflict %s", attacker.Name(), victim.Name())
		}
		tag := res.Status
		if tag == "" {
			tag = model.StatusWeaken
		}
		victim.ApplyStatus(tag, statusTicks)
		if tag == model.StatusStun {
			victim.castingUntil = 0
		}
		attacker.threat = victim.ID()

	case gambit.ActionAOEAttack:
		if !attacker.spend(costAOE) {
			return fmt.Errorf("%s lacks resource for an area attack", attacker.Name())
		}
		x, y := victim.Position()
		for _, v := range withinRadius(b.sides[side.other()], x, y, aoeRadius) {
			b.hit(attacker, v, int(float64(b.roll(attacker.Power()))*aoeFalloff), false)
		}

	case gambit.ActionHeal:
		if !attacker.spend(costHeal) {
			return fmt.Errorf("%s lacks resource to heal %s", attacker.Name(), victim.Name())
		}
		victim.heal(b.roll(attacker.Power() * 2))

	case gambit.ActionCleanse:
		if !attacker.spend(costCleanse) {
			return fmt.Errorf("%s lacks resource to cleanse %s", attacker.Name(), victim.Name())
		}
		if res.Status != "" {
			victim.ClearStatus(res.Status)
		}

	case gambit.ActionBuffAlly, gambit.ActionBuffSelf:
		if !attacker.spend(costBuff) {
			return fmt.Errorf("%s lacks resource to buff %s", attacker.Name(), victim.Name())
		}
		tag := res.Status
		if tag == "" {
			tag = model.StatusRally
		}
		victim.ApplyStatus(tag, buffTicks)

	case gambit.ActionGuardAlly:
		victim.ApplyStatus(model.StatusShield, buffTicks)
		for _, e := range b.sides[side.other()] {
			if e.Alive() && e.threat == victim.ID() {
				e.threat = attacker.ID()
			}
		}

	case gambit.ActionDefendSelf:
		attacker.ApplyStatus(model.StatusShield, defendTicks)

	case gambit.ActionUltimate:
		b.ultimate(attacker, victim, res.Target.Class)

	default:
		return fmt.Errorf("battle cannot apply action %s", kind)
	}

	return nil
}

func (b *Battle) resolve(side Side, ref model.TargetRef) (*Combatant, error) {
	var arr []*Combatant
	switch ref.Class {
	case model.ClassEnemy:
		arr = b.sides[side.other()]
	case model.ClassAlly, model.ClassSelf:
		arr = b.sides[side]
	default:
		return nil, fmt.Errorf("unresolvable target %s", ref)
	}
	if ref.Index < 0 || ref.Index >= len(arr) {
		return nil, fmt.Errorf("target %s out of range", ref)
	}
	c := arr[ref.Index]
	if !c.Alive() {
		return nil, fmt.Errorf("target %s is already down", c.Name())
	}
	return c, nil
}

// roll adds damage variance on top of a base amount.
func (b *Battle) roll(base int) int {
	if base <= 0 {
		return 0
	}
	return base + b.rng.Intn(base/4+1)
}

// hit applies a damage packet with the attacker's and victim's status
// modifiers. Executes land half again as hard.
func (b *Battle) hit(attacker, victim *Combatant, dmg int, execute bool) {
	attacker.threat = victim.ID()

	if attacker.HasStatus(model.StatusRally) {
		dmg = dmg * 6 / 5
	}
	if attacker.HasStatus(model.StatusWeaken) {
		dmg = dmg * 7 / 10
	}
	if execute {
		dmg = dmg * 3 / 2
	}
	if victim.HasStatus(model.StatusShield) {
		dmg /= 2
		victim.ClearStatus(model.StatusShield)
	}
	if victim.HasStatus(model.StatusArmorShred) {
		dmg = dmg * 13 / 10
	}

	victim.damage(dmg)
	b.afterHit(victim)
}

// ultimate is the charged finisher. Offensive against an enemy, a mass
// restore on an ally, a bulwark on self.
func (b *Battle) ultimate(attacker, victim *Combatant, class model.TargetClass) {
	switch class {
	case model.ClassEnemy:
		b.hit(attacker, victim, b.roll(attacker.Power()*3), false)
	case model.ClassAlly:
		victim.heal(b.roll(attacker.Power() * 3))
		victim.ClearStatus(model.StatusStun)
		victim.ClearStatus(model.StatusCharm)
		victim.ClearStatus(model.StatusDoom)
	case model.ClassSelf:
		attacker.ApplyStatus(model.StatusShield, buffTicks)
		attacker.heal(b.roll(attacker.Power() * 3 / 2))
	}
}

func (b *Battle) afterHit(victim *Combatant) {
	if victim.Alive() {
		return
	}
	victim.statuses = make(map[model.StatusTag]int)
	victim.castingUntil = 0
	slog.Debug("combatant defeated", "name", victim.Name(), "tick", b.tick)
}

// Advance moves the battle one tick: damage over time lands, statuses and
// cast bars run down, resource trickles back.
func (b *Battle) Advance() {
	b.tick++
	for _, side := range b.sides {
		for _, c := range side {
			if !c.Alive() {
				continue
			}
			for tag, dmg := range dotDamage {
				if c.HasStatus(tag) {
					c.damage(dmg)
				}
			}
			if !c.Alive() {
				b.afterHit(c)
				continue
			}
			if c.HasStatus(model.StatusRegen) {
				c.heal(regenHeal)
			}
			c.regen(resourceRegen)
			for tag, ticks := range c.statuses {
				if ticks <= 1 {
					delete(c.statuses, tag)
				} else {
					c.statuses[tag] = ticks - 1
				}
			}
			if c.castingUntil > 0 && c.castingUntil <= b.tick {
				c.castingUntil = 0
			}
		}
	}
}

// Over reports whether at least one side has been wiped out.
func (b *Battle) Over() bool {
	return living(b.sides[SideA]) == 0 || living(b.sides[SideB]) == 0
}

// Winner returns the side that still stands once the other is wiped out.
func (b *Battle) Winner() (Side, bool) {
	aliveA := living(b.sides[SideA])
	aliveB := living(b.sides[SideB])
	switch {
	case aliveA == 0 && aliveB == 0:
		return SideA, false
	case aliveA == 0:
		return SideB, true
	case aliveB == 0:
		return SideA, true
	}
	return SideA, false
}

func living(squad []*Combatant) int {
	n := 0
	for _, c := range squad {
		if c.Alive() {
			n++
		}
	}
	return n
}
