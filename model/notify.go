package model

// NotificationKind categorizes fire-and-forget events the controller emits.
type NotificationKind string

const (
	NoticeActionTaken   NotificationKind = "action_taken"
	NoticeUltimateReady NotificationKind = "ultimate_ready"
	NoticeUltimateFired NotificationKind = "ultimate_fired"
	NoticeUnitDefeated  NotificationKind = "unit_defeated"
	NoticeOverlaySet    NotificationKind = "overlay_set"
)

// Notification is a one-way event for UI layers and battle logs. The
// controller never waits on delivery and never reads anything back.
type Notification struct {
	Kind    NotificationKind `json:"kind"`
	Actor   CombatantID      `json:"actor"`
	Target  CombatantID      `json:"target,omitempty"`
	Message string           `json:"message"`
	Tick    int              `json:"tick"`
}

// Notifier receives notifications. Implementations must not block.
type Notifier interface {
	Notify(n Notification)
}

// NotifierFunc adapts a function to the Notifier interface.
type NotifierFunc func(n Notification)

func (f NotifierFunc) Notify(n Notification) { f(n) }

// NopNotifier discards everything. Used when no sink is wired.
var NopNotifier Notifier = NotifierFunc(func(Notification) {})
