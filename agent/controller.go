package agent

import (
	"errors"
	"log/slog"
	"time"

	"github.com/veilbreakers/gambit-core/gambit"
	"github.com/veilbreakers/gambit-core/model"
)

// World provides the battle view. Snapshot must return a view that stays
// stable for the duration of one decision cycle.
type World interface {
	Snapshot() *model.Snapshot
}

// Executor carries a decision into the battle engine. The engine applies
// damage, healing and statuses; the controller never mutates battle state
// itself.
type Executor interface {
	Execute(actor model.CombatantID, kind gambit.ActionKind, res gambit.Result) error
}

// Phase is where a controller currently is in its decision cycle. The cycle
// runs to completion inside DecideAndAct; Phase exists for logs and tests.
type Phase string

const (
	PhaseIdle      Phase = "idle"
	PhaseDeciding  Phase = "deciding"
	PhaseExecuting Phase = "executing"
)

// UltimateState tracks the override window for a charged ultimate.
type UltimateState string

const (
	UltimateNotReady         UltimateState = "not_ready"
	UltimateAwaitingOverride UltimateState = "awaiting_override"
)

// defaultUltimateWindow is how long a charged ultimate waits for a manual
// target before the personality's targeting mode resolves it.
const defaultUltimateWindow = 5 * time.Second

// Config wires a controller's collaborators. Self, Evaluator, World and
// Executor are required.
type Config struct {
	Self      model.CombatantID
	Evaluator *gambit.Evaluator
	World     World
	Executor  Executor

	// Notifier receives battle notices. Nil discards them.
	Notifier model.Notifier

	// UltimateWindow bounds the wait for a manual ultimate target.
	// Zero means the default.
	UltimateWindow time.Duration

	// Clock is the time source, replaceable in tests. Nil means time.Now.
	Clock func() time.Time
}

// Controller owns the decision cycle for one AI combatant: observe the
// snapshot, let the evaluator pick, bias by overlay, execute, notify.
// All methods must be called from the battle thread; the controller holds
// no locks of its own.
type Controller struct {
	id        model.CombatantID
	evaluator *gambit.Evaluator
	world     World
	executor  Executor
	notifier  model.Notifier

	phase Phase

	ultState    UltimateState
	ultDeadline time.Time
	ultTarget   model.TargetRef
	ultWindow   time.Duration

	overlay   Overlay
	protectee model.CombatantID

	momentum *Momentum
	diff     battleDiff
	lastDec  gambit.Decision

	now func() time.Time
}

var ultimateRule = &gambit.Rule{
	Name:     "ultimate-override",
	Bucket:   gambit.BucketCritical,
	Priority: 100,
	Utility:  100,
	Action:   gambit.Action{Kind: gambit.ActionUltimate},
}

func New(cfg Config) (*Controller, error) {
	if cfg.Self == 0 {
		return nil, errors.New("controller needs a combatant id")
	}
	if cfg.Evaluator == nil {
		return nil, errors.New("controller needs an evaluator")
	}
	if cfg.World == nil {
		return nil, errors.New("controller needs a world")
	}
	if cfg.Executor == nil {
		return nil, errors.New("controller needs an executor")
	}
	if cfg.Notifier == nil {
		cfg.Notifier = model.NopNotifier
	}
	if cfg.UltimateWindow <= 0 {
		cfg.UltimateWindow = defaultUltimateWindow
	}
	if cfg.Clock == nil {
		cfg.Clock = time.Now
	}
	return &Controller{
		id:        cfg.Self,
		evaluator: cfg.Evaluator,
		world:     cfg.World,
		executor:  cfg.Executor,
		notifier:  cfg.Notifier,
		phase:     PhaseIdle,
		ultState:  UltimateNotReady,
		ultWindow: cfg.UltimateWindow,
		overlay:   OverlayNone,
		momentum:  NewMomentum(momentumWindow),
		now:       cfg.Clock,
	}, nil
}

// ID returns the combatant this controller drives.
func (c *Controller) ID() model.CombatantID { return c.id }

// Phase returns where the controller is in its cycle.
func (c *Controller) Phase() Phase { return c.phase }

// UltimateState returns the override machine's state.
func (c *Controller) UltimateState() UltimateState { return c.ultState }

// Evaluator exposes the underlying evaluator, mainly so hosts can query
// DesperationMultiplier or swap rule sets.
func (c *Controller) Evaluator() *gambit.Evaluator { return c.evaluator }

// LastDecision returns the most recent decision that made it to execution.
func (c *Controller) LastDecision() gambit.Decision { return c.lastDec }

// DecideAndAct runs one full decision cycle and reports whether an action
// was executed. Dead or missing agents act no more; a battle with no valid
// move returns false rather than erroring.
func (c *Controller) DecideAndAct() bool {
	snap := c.world.Snapshot()
	if snap == nil {
		slog.Warn("no snapshot available", "agent", c.id)
		return false
	}

	c.phase = PhaseDeciding
	defer func() { c.phase = PhaseIdle }()

	idx := snap.AllyIndex(c.id)
	if idx < 0 || !snap.Allies[idx].Alive() {
		return false
	}
	self := snap.Allies[idx]

	c.observe(snap)

	if c.ultState == UltimateAwaitingOverride {
		if target, fire := c.resolveUltimate(self, snap); fire {
			dec := gambit.Decision{Rule: ultimateRule, Target: target, Score: gambit.MaxScore}
			c.phase = PhaseExecuting
			return c.execute(self, snap, dec)
		}
	}

	dec := c.evaluator.EvaluateBest(self, snap)
	if !dec.Valid() {
		slog.Debug("nothing to do", "agent", self.Name(), "tick", snap.Tick)
		return false
	}
	dec = c.applyOverlay(dec, snap)

	c.phase = PhaseExecuting
	return c.execute(self, snap, dec)
}

func (c *Controller) execute(self model.Combatant, snap *model.Snapshot, dec gambit.Decision) bool {
	res := dec.Rule.Action.Execute(self, dec.Target, snap)
	if !res.OK {
		slog.Warn("action not executable", "agent", self.Name(), "rule", dec.Rule.Name, "detail", res.Message)
		return false
	}

	if err := c.executor.Execute(c.id, dec.Rule.Action.Kind, res); err != nil {
		slog.Error("executor rejected action", "agent", self.Name(), "rule", dec.Rule.Name, "error", err)
		return false
	}

	c.lastDec = dec

	kind := model.NoticeActionTaken
	if dec.Rule.Action.Kind == gambit.ActionUltimate {
		kind = model.NoticeUltimateFired
		c.ultState = UltimateNotReady
		c.ultTarget = model.NoTarget
	}

	var targetID model.CombatantID
	if t, ok := snap.At(res.Target); ok {
		targetID = t.ID()
	}
	c.notifier.Notify(model.Notification{
		Kind:    kind,
		Actor:   c.id,
		Target:  targetID,
		Message: res.Message,
		Tick:    snap.Tick,
	})

	slog.Info("action taken",
		"agent", self.Name(),
		"rule", dec.Rule.Name,
		"target", dec.Target,
		"score", dec.Score,
		"fallback", dec.Fallback,
	)
	return true
}

// UltimateReady opens the override window: the ultimate is charged, a
// manual target may arrive, and when the window closes the personality's
// targeting mode resolves it automatically.
func (c *Controller) UltimateReady() {
	if c.ultState == UltimateAwaitingOverride {
		return
	}
	c.ultState = UltimateAwaitingOverride
	c.ultDeadline = c.now().Add(c.ultWindow)
	c.ultTarget = model.NoTarget
	c.notifier.Notify(model.Notification{
		Kind:    model.NoticeUltimateReady,
		Actor:   c.id,
		Message: "ultimate charged, awaiting override",
	})
	slog.Info("ultimate ready", "agent", c.id, "window", c.ultWindow)
}

// SetUltimateTarget records a manual target for the pending ultimate.
// Ignored when no ultimate is awaiting an override.
func (c *Controller) SetUltimateTarget(ref model.TargetRef) {
	if c.ultState != UltimateAwaitingOverride {
		slog.Debug("ultimate target ignored, no ultimate pending", "agent", c.id)
		return
	}
	c.ultTarget = ref
}

// resolveUltimate decides whether the pending ultimate fires this cycle.
// A manual target fires immediately (re-resolved if it died); otherwise the
// window must have expired, and the personality's mode picks the target.
func (c *Controller) resolveUltimate(self model.Combatant, snap *model.Snapshot) (model.TargetRef, bool) {
	if c.ultTarget.Valid() {
		if t, ok := snap.At(c.ultTarget); ok && t.Alive() {
			return c.ultTarget, true
		}
		slog.Warn("ultimate override target gone, auto-resolving", "agent", c.id, "target", c.ultTarget)
		c.ultTarget = model.NoTarget
		return c.autoUltimateTarget(self, snap), true
	}

	if c.now().Before(c.ultDeadline) {
		return model.NoTarget, false
	}
	return c.autoUltimateTarget(self, snap), true
}

func (c *Controller) autoUltimateTarget(self model.Combatant, snap *model.Snapshot) model.TargetRef {
	strategy := c.evaluator.Personality().UltimateTargeting
	if strategy == "" || strategy == gambit.TargetAuto {
		strategy = gambit.TargetLowestHPEnemy
	}
	action := gambit.Action{Kind: gambit.ActionUltimate, Target: strategy}
	return action.ResolveTarget(self, snap)
}

// NoteDefeat records a kill this agent scored. Hosts that don't call it
// still get momentum from snapshot diffing, just without attribution.
func (c *Controller) NoteDefeat(victim model.CombatantID) {
	c.momentum.Record(c.now())
	c.diff.markDead(victim)
}

// MomentumBonus is the current pressed-advantage multiplier, 1.0 for
// personalities that don't track momentum. Like desperation, it is a
// query for the battle engine, never folded into candidate scores.
func (c *Controller) MomentumBonus() float64 {
	if !c.evaluator.Personality().Behavior.TracksMomentum {
		return 1.0
	}
	return c.momentum.Bonus(c.now())
}

// observe diffs the snapshot against the last cycle, feeding momentum and
// defeat notices.
func (c *Controller) observe(snap *model.Snapshot) {
	for _, d := range c.diff.observe(snap) {
		if d.enemy {
			c.momentum.Record(c.now())
		}
		c.notifier.Notify(model.Notification{
			Kind:    model.NoticeUnitDefeated,
			Actor:   c.id,
			Target:  d.id,
			Message: d.name + " has fallen",
			Tick:    snap.Tick,
		})
	}
}
