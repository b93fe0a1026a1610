package agent

import (
	"fmt"
	"log/slog"

	"github.com/veilbreakers/gambit-core/gambit"
	"github.com/veilbreakers/gambit-core/model"
)

// Overlay is a manual bias a player or commander layers over the automatic
// decision. Overlays are single-select: setting one replaces the last.
type Overlay string

const (
	OverlayNone    Overlay = "none"
	OverlayAttack  Overlay = "focus_attack"
	OverlayDefense Overlay = "focus_defense"
	OverlaySupport Overlay = "focus_support"
	OverlayProtect Overlay = "protect_ally"
)

// ParseOverlay maps the wire spelling to an Overlay. The empty string means
// no overlay.
func ParseOverlay(s string) (Overlay, error) {
	if s == "" {
		return OverlayNone, nil
	}
	switch o := Overlay(s); o {
	case OverlayNone, OverlayAttack, OverlayDefense, OverlaySupport, OverlayProtect:
		return o, nil
	}
	return OverlayNone, fmt.Errorf("unknown overlay %q", s)
}

// targetClass is the class of candidate the overlay pulls decisions toward.
func (o Overlay) targetClass() model.TargetClass {
	switch o {
	case OverlayAttack:
		return model.ClassEnemy
	case OverlayDefense:
		return model.ClassSelf
	case OverlaySupport, OverlayProtect:
		return model.ClassAlly
	}
	return model.ClassNone
}

// SetOverlay replaces the active overlay. OverlayProtect needs a protectee;
// use ProtectAlly instead, which sets both.
func (c *Controller) SetOverlay(o Overlay) {
	c.overlay = o
	if o != OverlayProtect {
		c.protectee = 0
	}
	c.notifier.Notify(model.Notification{
		Kind:    model.NoticeOverlaySet,
		Actor:   c.id,
		Message: string(o),
	})
	slog.Info("overlay set", "agent", c.id, "overlay", o)
}

// ProtectAlly sets the protect overlay aimed at the ally. A zero id clears
// back to no overlay.
func (c *Controller) ProtectAlly(id model.CombatantID) {
	if id == 0 {
		c.SetOverlay(OverlayNone)
		return
	}
	c.protectee = id
	c.overlay = OverlayProtect
	c.notifier.Notify(model.Notification{
		Kind:    model.NoticeOverlaySet,
		Actor:   c.id,
		Target:  id,
		Message: string(OverlayProtect),
	})
	slog.Info("overlay set", "agent", c.id, "overlay", OverlayProtect, "protectee", id)
}

// Overlay returns the active overlay.
func (c *Controller) Overlay() Overlay { return c.overlay }

// applyOverlay biases the decision after scoring: among the surviving
// candidates of the winning bucket, prefer the best one whose target class
// matches the overlay. Scores and buckets are never altered; if the bucket
// offered no candidate of the wanted class, the original decision stands.
func (c *Controller) applyOverlay(dec gambit.Decision, snap *model.Snapshot) gambit.Decision {
	if c.overlay == OverlayNone || c.overlay == "" {
		return dec
	}

	want := c.overlay.targetClass()
	if dec.Target.Class != want {
		cands := c.evaluator.Candidates()
		best := -1
		for i := range cands {
			if cands[i].Target.Class != want {
				continue
			}
			if best < 0 || cands[i].Score > cands[best].Score {
				best = i
			}
		}
		if best >= 0 {
			slog.Debug("overlay redirected decision",
				"overlay", c.overlay,
				"from", dec.Rule.Name,
				"to", cands[best].Rule.Name,
			)
			dec = gambit.Decision{Rule: cands[best].Rule, Target: cands[best].Target, Score: cands[best].Score}
		}
	}

	// Protect re-aims ally-targeted actions at the protectee while they live.
	if c.overlay == OverlayProtect && dec.Rule.Action.TargetClass() == model.ClassAlly {
		if idx := snap.AllyIndex(c.protectee); idx >= 0 && snap.Allies[idx].Alive() {
			dec.Target = model.AllyRef(idx)
		}
	}

	return dec
}
