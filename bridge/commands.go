package bridge

// Command type constants for player overrides flowing from the client into
// the bridge. These must stay in sync with the client's command dispatcher.
const (
	TypeOverlay        = "overlay"
	TypeProtect        = "protect"
	TypeUltimateReady  = "ultimate_ready"
	TypeUltimateTarget = "ultimate_target"
)

// OverlayCommand sets or clears a tactical overlay on one agent.
type OverlayCommand struct {
	AgentID int64  `json:"agent_id"`
	Overlay string `json:"overlay"`
}

// ProtectCommand points an agent's protect overlay at an ally. A zero
// target clears it.
type ProtectCommand struct {
	AgentID  int64 `json:"agent_id"`
	TargetID int64 `json:"target_id"`
}

// UltimateReadyCommand tells the bridge an agent's ultimate has charged,
// opening the manual override window.
type UltimateReadyCommand struct {
	AgentID int64 `json:"agent_id"`
}

// UltimateTargetCommand supplies the manual target for a pending ultimate.
type UltimateTargetCommand struct {
	AgentID int64  `json:"agent_id"`
	Class   string `json:"class"`
	Index   int    `json:"index"`
}
