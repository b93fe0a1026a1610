package bridge

// Message type constants for client-to-bridge state and bridge-to-client
// replies. These must stay in sync with the game client's enum.
const (
	TypeHello       = "hello"
	TypeAck         = "ack"
	TypeBattleState = "battle_state"
	TypeDecision    = "decision"
	TypeNotice      = "notice"
)

// HelloMessage opens a session: the client names itself and lists the
// party members the bridge should drive.
type HelloMessage struct {
	Client string        `json:"client"`
	Party  []PartyMember `json:"party"`
}

// PartyMember binds a combatant to the archetype whose personality and
// rules drive it.
type PartyMember struct {
	ID        int64  `json:"id"`
	Name      string `json:"name"`
	Archetype string `json:"archetype"`
}

type AckMessage struct {
	Status string `json:"status"`
	Detail string `json:"detail,omitempty"`
}

// BattleStateMessage is the full battle view the client sends when one of
// the bridge's agents has a turn. Allies are the party's side, the acting
// agent included.
type BattleStateMessage struct {
	Tick    int              `json:"tick"`
	Turn    int64            `json:"turn"`
	Allies  []StateCombatant `json:"allies"`
	Enemies []StateCombatant `json:"enemies"`

	// ClusteredEnemies is the size of the tightest enemy formation, as
	// measured by the client's own positioning model.
	ClusteredEnemies int `json:"clusteredEnemies"`
}

// StateCombatant is a combatant as the client reports it. Health and
// resource are percentages in [0, 100].
type StateCombatant struct {
	ID         int64    `json:"id"`
	Name       string   `json:"name"`
	Role       string   `json:"role"`
	Health     float64  `json:"health"`
	Resource   float64  `json:"resource"`
	Alive      bool     `json:"alive"`
	Statuses   []string `json:"statuses,omitempty"`
	Casting    bool     `json:"casting,omitempty"`
	Targeted   bool     `json:"targeted,omitempty"`
	ReadySlots []int    `json:"readySlots,omitempty"`
}

// DecisionMessage is the bridge's reply to a battle state: what the acting
// agent does this turn.
type DecisionMessage struct {
	Agent   int64   `json:"agent"`
	Action  string  `json:"action"`
	Class   string  `json:"class"`
	Index   int     `json:"index"`
	Slot    int     `json:"slot,omitempty"`
	Status  string  `json:"status,omitempty"`
	Execute bool    `json:"execute,omitempty"`
	Rule    string  `json:"rule"`
	Score   float64 `json:"score"`
	Message string  `json:"message,omitempty"`
}
