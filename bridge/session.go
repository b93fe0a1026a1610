package bridge

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/veilbreakers/gambit-core/agent"
	"github.com/veilbreakers/gambit-core/gambit"
	"github.com/veilbreakers/gambit-core/model"
)

// latestWorld hands a controller the battle state that arrived with the
// current message. The session swaps the snapshot before each cycle.
type latestWorld struct {
	snap *model.Snapshot
}

func (w *latestWorld) Snapshot() *model.Snapshot { return w.snap }

// replyExecutor captures the decided action so the battle state handler
// can send it back as the reply envelope. The client applies the action;
// the bridge never mutates battle state.
type replyExecutor struct {
	decision *DecisionMessage
}

func (e *replyExecutor) Execute(actor model.CombatantID, kind gambit.ActionKind, res gambit.Result) error {
	e.decision = &DecisionMessage{
		Agent:   int64(actor),
		Action:  string(kind),
		Class:   string(res.Target.Class),
		Index:   res.Target.Index,
		Slot:    int(res.Slot),
		Status:  string(res.Status),
		Execute: res.Execute,
		Message: res.Message,
	}
	return nil
}

// remoteAgent is one party member driven over the wire.
type remoteAgent struct {
	controller *agent.Controller
	world      *latestWorld
	exec       *replyExecutor
}

// Session owns the decision-making for one connected game client: a
// controller per enrolled party member, fed by battle states and steered
// by override commands.
type Session struct {
	conn      *Connection
	reg       *gambit.Registry
	ultWindow time.Duration
	agents    map[model.CombatantID]*remoteAgent
}

func NewSession(conn *Connection, reg *gambit.Registry, ultWindow time.Duration) *Session {
	s := &Session{
		conn:      conn,
		reg:       reg,
		ultWindow: ultWindow,
		agents:    make(map[model.CombatantID]*remoteAgent),
	}
	conn.RegisterHandler(TypeHello, s.handleHello)
	conn.RegisterHandler(TypeBattleState, s.handleBattleState)
	conn.RegisterHandler(TypeOverlay, s.handleOverlay)
	conn.RegisterHandler(TypeProtect, s.handleProtect)
	conn.RegisterHandler(TypeUltimateReady, s.handleUltimateReady)
	conn.RegisterHandler(TypeUltimateTarget, s.handleUltimateTarget)
	return s
}

// Run blocks until the client disconnects.
func (s *Session) Run() { s.conn.ReadLoop() }

// handleHello completes the handshake: the client names itself and the
// bridge builds a controller per party member.
func (s *Session) handleHello(env Envelope) (*Envelope, error) {
	var hello HelloMessage
	if err := json.Unmarshal(env.Data, &hello); err != nil {
		return nil, fmt.Errorf("unmarshal hello: %w", err)
	}

	s.conn.Client = hello.Client
	for _, member := range hello.Party {
		if err := s.enroll(member); err != nil {
			slog.Error("cannot enroll party member",
				"name", member.Name,
				"archetype", member.Archetype,
				"error", err,
			)
			return ack("error", err.Error())
		}
	}

	slog.Info("client identified", "client", hello.Client, "party", len(hello.Party))
	return ack("ok", "")
}

func (s *Session) enroll(member PartyMember) error {
	ev, err := s.reg.NewEvaluator(member.Archetype)
	if err != nil {
		return err
	}

	id := model.CombatantID(member.ID)
	world := &latestWorld{}
	exec := &replyExecutor{}
	ctrl, err := agent.New(agent.Config{
		Self:           id,
		Evaluator:      ev,
		World:          world,
		Executor:       exec,
		Notifier:       s.notifier(),
		UltimateWindow: s.ultWindow,
	})
	if err != nil {
		return err
	}

	s.agents[id] = &remoteAgent{controller: ctrl, world: world, exec: exec}
	slog.Info("party member enrolled", "name", member.Name, "archetype", member.Archetype, "id", member.ID)
	return nil
}

// handleBattleState runs one decision cycle for the agent whose turn it is
// and replies with the decision, or a pass when there is nothing to do.
func (s *Session) handleBattleState(env Envelope) (*Envelope, error) {
	var state BattleStateMessage
	if err := json.Unmarshal(env.Data, &state); err != nil {
		return nil, fmt.Errorf("unmarshal battle state: %w", err)
	}

	ra, err := s.agent(state.Turn)
	if err != nil {
		return nil, err
	}

	ra.world.snap = toSnapshot(state)
	ra.exec.decision = nil

	if !ra.controller.DecideAndAct() || ra.exec.decision == nil {
		return ack("pass", "")
	}

	dec := ra.exec.decision
	if last := ra.controller.LastDecision(); last.Rule != nil {
		dec.Rule = last.Rule.Name
		dec.Score = last.Score
	}

	resp, err := NewEnvelope(TypeDecision, dec)
	if err != nil {
		return nil, err
	}
	return &resp, nil
}

func (s *Session) handleOverlay(env Envelope) (*Envelope, error) {
	var cmd OverlayCommand
	if err := json.Unmarshal(env.Data, &cmd); err != nil {
		return nil, fmt.Errorf("unmarshal overlay: %w", err)
	}

	ra, err := s.agent(cmd.AgentID)
	if err != nil {
		return nil, err
	}
	overlay, err := agent.ParseOverlay(cmd.Overlay)
	if err != nil {
		return ack("error", err.Error())
	}

	ra.controller.SetOverlay(overlay)
	return ack("ok", "")
}

func (s *Session) handleProtect(env Envelope) (*Envelope, error) {
	var cmd ProtectCommand
	if err := json.Unmarshal(env.Data, &cmd); err != nil {
		return nil, fmt.Errorf("unmarshal protect: %w", err)
	}

	ra, err := s.agent(cmd.AgentID)
	if err != nil {
		return nil, err
	}

	ra.controller.ProtectAlly(model.CombatantID(cmd.TargetID))
	return ack("ok", "")
}

func (s *Session) handleUltimateReady(env Envelope) (*Envelope, error) {
	var cmd UltimateReadyCommand
	if err := json.Unmarshal(env.Data, &cmd); err != nil {
		return nil, fmt.Errorf("unmarshal ultimate ready: %w", err)
	}

	ra, err := s.agent(cmd.AgentID)
	if err != nil {
		return nil, err
	}

	ra.controller.UltimateReady()
	return ack("ok", "")
}

func (s *Session) handleUltimateTarget(env Envelope) (*Envelope, error) {
	var cmd UltimateTargetCommand
	if err := json.Unmarshal(env.Data, &cmd); err != nil {
		return nil, fmt.Errorf("unmarshal ultimate target: %w", err)
	}

	ra, err := s.agent(cmd.AgentID)
	if err != nil {
		return nil, err
	}

	ref := model.TargetRef{Class: model.TargetClass(cmd.Class), Index: cmd.Index}
	switch ref.Class {
	case model.ClassEnemy, model.ClassAlly, model.ClassSelf:
	default:
		return ack("error", fmt.Sprintf("unknown target class %q", cmd.Class))
	}

	ra.controller.SetUltimateTarget(ref)
	return ack("ok", "")
}

func (s *Session) agent(id int64) (*remoteAgent, error) {
	ra, ok := s.agents[model.CombatantID(id)]
	if !ok {
		return nil, fmt.Errorf("no enrolled agent %d", id)
	}
	return ra, nil
}

// notifier forwards controller notices to the client. Notices are
// fire-and-forget; a failed send never stops a decision cycle.
func (s *Session) notifier() model.Notifier {
	return model.NotifierFunc(func(n model.Notification) {
		if err := s.conn.Send(TypeNotice, n); err != nil {
			slog.Warn("notice dropped", "kind", n.Kind, "error", err)
		}
	})
}

func ack(status, detail string) (*Envelope, error) {
	env, err := NewEnvelope(TypeAck, AckMessage{Status: status, Detail: detail})
	if err != nil {
		return nil, err
	}
	return &env, nil
}
