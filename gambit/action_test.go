package gambit

import (
	"strings"
	"testing"

	"github.com/veilbreakers/gambit-core/model"
)

func actionTestSnap() (testCombatant, *model.Snapshot) {
	hero := testCombatant{id: 1, name: "hero", role: model.RoleStriker, hp: 60}
	snap := testSnap(
		[]model.Combatant{
			hero,
			testCombatant{id: 2, name: "mender", role: model.RoleHealer, hp: 30},
			testCombatant{id: 3, name: "fallen", hp: 0},
		},
		[]model.Combatant{
			testCombatant{id: 10, name: "brute", role: model.RoleTank, hp: 90},
			testCombatant{id: 11, name: "witch", role: model.RoleCaster, hp: 20},
			testCombatant{id: 12, name: "reaper", role: model.RoleStriker, hp: 45},
		},
		&testStatus{statuses: map[model.CombatantID][]model.StatusTag{
			2:  {model.StatusSlow, model.StatusStun},
			11: {model.StatusPoison},
		}},
	)
	return hero, snap
}

func TestResolveTargetStrategies(t *testing.T) {
	hero, snap := actionTestSnap()

	cases := []struct {
		name   string
		action Action
		want   model.TargetRef
	}{
		{"auto offensive", Action{Kind: ActionAttack, Target: TargetAuto}, model.EnemyRef(1)},
		{"auto support", Action{Kind: ActionHeal, Target: TargetAuto}, model.AllyRef(1)},
		{"auto self", Action{Kind: ActionDefendSelf, Target: TargetAuto}, model.SelfRef(0)},
		{"empty strategy means auto", Action{Kind: ActionAttack}, model.EnemyRef(1)},
		{"lowest enemy", Action{Kind: ActionAttack, Target: TargetLowestHPEnemy}, model.EnemyRef(1)},
		{"highest enemy", Action{Kind: ActionAttack, Target: TargetHighestHPEnemy}, model.EnemyRef(0)},
		{"lowest ally", Action{Kind: ActionHeal, Target: TargetLowestHPAlly}, model.AllyRef(1)},
		{"highest ally", Action{Kind: ActionBuffAlly, Target: TargetHighestHPAlly}, model.AllyRef(0)},
		{"specific ally", Action{Kind: ActionGuardAlly, Target: TargetSpecificAlly, AllyIndex: 1}, model.AllyRef(1)},
		{"specific ally dead", Action{Kind: ActionGuardAlly, Target: TargetSpecificAlly, AllyIndex: 2}, model.NoTarget},
		{"specific ally out of range", Action{Kind: ActionGuardAlly, Target: TargetSpecificAlly, AllyIndex: 5}, model.NoTarget},
		{"enemy healer absent", Action{Kind: ActionAttack, Target: TargetEnemyHealer}, model.NoTarget},
		{"enemy tank", Action{Kind: ActionAttack, Target: TargetEnemyTank}, model.EnemyRef(0)},
		{"enemy caster", Action{Kind: ActionAttack, Target: TargetEnemyCaster}, model.EnemyRef(1)},
		{"enemy debuffed", Action{Kind: ActionAttack, Target: TargetEnemyDebuffed}, model.EnemyRef(1)},
		{"self", Action{Kind: ActionBuffSelf, Target: TargetSelf}, model.SelfRef(0)},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := tc.action.ResolveTarget(hero, snap); got != tc.want {
				t.Errorf("ResolveTarget = %+v, want %+v", got, tc.want)
			}
		})
	}
}

func TestExecuteFlagsFinishers(t *testing.T) {
	hero, snap := actionTestSnap()

	attack := Action{Kind: ActionAttack}
	res := attack.Execute(hero, model.EnemyRef(1), snap) // witch at 20%
	if !res.OK {
		t.Fatalf("attack on witch failed: %s", res.Message)
	}
	if !res.Execute {
		t.Error("attack on a target below 25% should carry the execute flag")
	}

	res = attack.Execute(hero, model.EnemyRef(0), snap) // brute at 90%
	if !res.OK || res.Execute {
		t.Errorf("attack on brute: OK=%v Execute=%v, want OK and no execute flag", res.OK, res.Execute)
	}

	execute := Action{Kind: ActionExecute}
	res = execute.Execute(hero, model.EnemyRef(0), snap)
	if !res.OK || !res.Execute {
		t.Errorf("execute on brute: OK=%v Execute=%v, want both", res.OK, res.Execute)
	}

	heal := Action{Kind: ActionHeal}
	res = heal.Execute(hero, model.AllyRef(1), snap) // mender at 30%
	if !res.OK || res.Execute {
		t.Errorf("heal: OK=%v Execute=%v, support actions never carry the flag", res.OK, res.Execute)
	}
}

func TestExecuteCleanseResolvesWorstStatus(t *testing.T) {
	hero, snap := actionTestSnap()

	cleanse := Action{Kind: ActionCleanse}
	res := cleanse.Execute(hero, model.AllyRef(1), snap) // mender carries slow and stun
	if !res.OK {
		t.Fatalf("cleanse failed: %s", res.Message)
	}
	if res.Status != model.StatusStun {
		t.Errorf("cleansed %q, want the severe %q", res.Status, model.StatusStun)
	}

	pinned := Action{Kind: ActionCleanse, Status: model.StatusSlow}
	res = pinned.Execute(hero, model.AllyRef(1), snap)
	if res.Status != model.StatusSlow {
		t.Errorf("pinned cleanse resolved %q, want %q", res.Status, model.StatusSlow)
	}
}

func TestExecuteRejectsBadTargets(t *testing.T) {
	hero, snap := actionTestSnap()

	attack := Action{Kind: ActionAttack}
	if res := attack.Execute(hero, model.AllyRef(2), snap); res.OK {
		t.Error("executing against a dead combatant should fail")
	}
	if res := attack.Execute(hero, model.NoTarget, snap); res.OK {
		t.Error("executing against no target should fail")
	}
	if res := attack.Execute(hero, model.EnemyRef(9), snap); res.OK {
		t.Error("executing against an out-of-range index should fail")
	}

	dance := Action{Kind: "DANCE"}
	if res := dance.Execute(hero, model.EnemyRef(0), snap); res.OK {
		t.Error("unknown action kinds should fail")
	}
}

func TestExecuteMessages(t *testing.T) {
	hero, snap := actionTestSnap()

	res := Action{Kind: ActionAttack}.Execute(hero, model.EnemyRef(1), snap)
	if !strings.Contains(res.Message, "hero") || !strings.Contains(res.Message, "witch") {
		t.Errorf("attack message %q should name both fighters", res.Message)
	}
}

func TestParseActionKind(t *testing.T) {
	kind, err := ParseActionKind("AOE_ATTACK")
	if err != nil {
		t.Fatalf("ParseActionKind: %v", err)
	}
	if kind != ActionAOEAttack {
		t.Errorf("ParseActionKind = %q, want %q", kind, ActionAOEAttack)
	}
	if _, err := ParseActionKind("SING"); err == nil {
		t.Error("ParseActionKind accepted an unknown kind")
	}
}

func TestParseStrategy(t *testing.T) {
	strat, err := ParseStrategy("")
	if err != nil {
		t.Fatalf("ParseStrategy: %v", err)
	}
	if strat != TargetAuto {
		t.Errorf(`ParseStrategy("") = %q, want %q`, strat, TargetAuto)
	}

	strat, err = ParseStrategy("ENEMY_HEALER")
	if err != nil {
		t.Fatalf("ParseStrategy: %v", err)
	}
	if strat != TargetEnemyHealer {
		t.Errorf("ParseStrategy = %q, want %q", strat, TargetEnemyHealer)
	}

	if _, err := ParseStrategy("NEAREST"); err == nil {
		t.Error("ParseStrategy accepted an unknown strategy")
	}
}
