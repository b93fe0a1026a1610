package model

import "testing"

// stubCombatant satisfies Combatant for snapshot tests. hp and res are
// fractions, like the real battle views report.
type stubCombatant struct {
	id   CombatantID
	name string
	role Role
	hp   float64
	res  float64
}

func (s stubCombatant) ID() CombatantID      { return s.id }
func (s stubCombatant) Name() string         { return s.name }
func (s stubCombatant) Alive() bool          { return s.hp > 0 }
func (s stubCombatant) HealthPct() float64   { return s.hp }
func (s stubCombatant) ResourcePct() float64 { return s.res }
func (s stubCombatant) Role() Role           { return s.role }

// stubStatus satisfies StatusQuery with fixed answers.
type stubStatus struct {
	statuses  map[CombatantID][]StatusTag
	casting   map[CombatantID]bool
	targeted  map[CombatantID]bool
	ready     map[CombatantID][]AbilitySlot
	clustered int
}

func (s *stubStatus) HasStatus(id CombatantID, tag StatusTag) bool {
	for _, t := range s.statuses[id] {
		if t == tag {
			return true
		}
	}
	return false
}

func (s *stubStatus) IsCasting(id CombatantID) bool  { return s.casting[id] }
func (s *stubStatus) IsTargeted(id CombatantID) bool { return s.targeted[id] }
func (s *stubStatus) ClusteredEnemies() int          { return s.clustered }

func (s *stubStatus) AbilityReady(id CombatantID, slot AbilitySlot) bool {
	for _, sl := range s.ready[id] {
		if sl == slot {
			return true
		}
	}
	return false
}

func testSnapshot() *Snapshot {
	return &Snapshot{
		Tick: 7,
		Allies: []Combatant{
			stubCombatant{id: 1, name: "tank", role: RoleTank, hp: 0.90, res: 0.50},
			stubCombatant{id: 2, name: "healer", role: RoleHealer, hp: 0.35, res: 0.80},
			stubCombatant{id: 3, name: "fallen", role: RoleStriker, hp: 0}, // dead
		},
		Enemies: []Combatant{
			stubCombatant{id: 10, name: "brute", role: RoleTank, hp: 0.80},
			stubCombatant{id: 11, name: "witch", role: RoleCaster, hp: 0.20},
			stubCombatant{id: 12, name: "corpse", role: RoleStriker, hp: 0}, // dead
		},
		Status: &stubStatus{},
	}
}

func TestSnapshotAt(t *testing.T) {
	snap := testSnapshot()

	if c, ok := snap.At(EnemyRef(1)); !ok || c.Name() != "witch" {
		t.Errorf("At(enemy[1]): got %v ok=%v, want witch", c, ok)
	}
	if c, ok := snap.At(AllyRef(0)); !ok || c.Name() != "tank" {
		t.Errorf("At(ally[0]): got %v ok=%v, want tank", c, ok)
	}
	// Self refs resolve through the ally array.
	if c, ok := snap.At(SelfRef(1)); !ok || c.Name() != "healer" {
		t.Errorf("At(self[1]): got %v ok=%v, want healer", c, ok)
	}
	if _, ok := snap.At(NoTarget); ok {
		t.Error("At(NoTarget) should not resolve")
	}
	if _, ok := snap.At(EnemyRef(99)); ok {
		t.Error("At(enemy[99]) should not resolve")
	}
	if _, ok := snap.At(AllyRef(-1)); ok {
		t.Error("At(ally[-1]) should not resolve")
	}
}

func TestAllyIndex(t *testing.T) {
	snap := testSnapshot()

	if got := snap.AllyIndex(2); got != 1 {
		t.Errorf("AllyIndex(2) = %d, want 1", got)
	}
	if got := snap.AllyIndex(10); got != -1 {
		t.Errorf("AllyIndex(10) = %d, want -1 (enemy id)", got)
	}
	if got := snap.AllyIndex(999); got != -1 {
		t.Errorf("AllyIndex(999) = %d, want -1", got)
	}
}

func TestLivingCounts(t *testing.T) {
	snap := testSnapshot()

	if got := snap.LivingAllies(); got != 2 {
		t.Errorf("LivingAllies = %d, want 2", got)
	}
	if got := snap.LivingEnemies(); got != 2 {
		t.Errorf("LivingEnemies = %d, want 2", got)
	}
}

func TestHealthExtremes(t *testing.T) {
	snap := testSnapshot()

	// Dead combatants never count, even at 0% health.
	if i, ok := snap.LowestHealthEnemy(); !ok || i != 1 {
		t.Errorf("LowestHealthEnemy = %d ok=%v, want index 1 (witch at 20%%)", i, ok)
	}
	if i, ok := snap.HighestHealthEnemy(); !ok || i != 0 {
		t.Errorf("HighestHealthEnemy = %d ok=%v, want index 0 (brute at 80%%)", i, ok)
	}
	if i, ok := snap.LowestHealthAlly(); !ok || i != 1 {
		t.Errorf("LowestHealthAlly = %d ok=%v, want index 1 (healer at 35%%)", i, ok)
	}
	if i, ok := snap.HighestHealthAlly(); !ok || i != 0 {
		t.Errorf("HighestHealthAlly = %d ok=%v, want index 0 (tank at 90%%)", i, ok)
	}
}

func TestHealthExtremesTieBreak(t *testing.T) {
	snap := &Snapshot{
		Enemies: []Combatant{
			stubCombatant{id: 1, hp: 0.40},
			stubCombatant{id: 2, hp: 0.40}, // same health, higher index
		},
	}
	if i, ok := snap.LowestHealthEnemy(); !ok || i != 0 {
		t.Errorf("tie should keep the lower index, got %d ok=%v", i, ok)
	}
}

func TestHealthExtremesAllDead(t *testing.T) {
	snap := &Snapshot{
		Enemies: []Combatant{stubCombatant{id: 1, hp: 0}},
	}
	if _, ok := snap.LowestHealthEnemy(); ok {
		t.Error("LowestHealthEnemy should report none when everyone is dead")
	}
}

func TestEnemyByRole(t *testing.T) {
	snap := testSnapshot()

	if i, ok := snap.EnemyByRole(RoleCaster); !ok || i != 1 {
		t.Errorf("EnemyByRole(caster) = %d ok=%v, want 1", i, ok)
	}
	// The only striker is dead.
	if _, ok := snap.EnemyByRole(RoleStriker); ok {
		t.Error("EnemyByRole(striker) should not find the corpse")
	}
	if _, ok := snap.EnemyByRole(RoleHealer); ok {
		t.Error("EnemyByRole(healer) should find nothing")
	}
}

func TestFirstDebuffedEnemy(t *testing.T) {
	snap := testSnapshot()
	snap.Status = &stubStatus{statuses: map[CombatantID][]StatusTag{
		11: {StatusPoison},
	}}

	if i, ok := snap.FirstDebuffedEnemy(); !ok || i != 1 {
		t.Errorf("FirstDebuffedEnemy = %d ok=%v, want 1", i, ok)
	}

	snap.Status = &stubStatus{}
	if _, ok := snap.FirstDebuffedEnemy(); ok {
		t.Error("FirstDebuffedEnemy should find nothing on a clean field")
	}
}

func TestTeamHealthPct(t *testing.T) {
	snap := testSnapshot()

	// Living allies at 0.90 and 0.35; the dead one is excluded.
	want := (0.90 + 0.35) / 2
	if got := snap.TeamHealthPct(); got < want-0.001 || got > want+0.001 {
		t.Errorf("TeamHealthPct = %.3f, want %.3f", got, want)
	}

	wiped := &Snapshot{Allies: []Combatant{stubCombatant{id: 1, hp: 0}}}
	if got := wiped.TeamHealthPct(); got != 0 {
		t.Errorf("TeamHealthPct of a wiped team = %.3f, want 0", got)
	}
}

func TestAnyAllyHelpers(t *testing.T) {
	snap := testSnapshot()
	snap.Status = &stubStatus{
		statuses: map[CombatantID][]StatusTag{2: {StatusStun}},
		targeted: map[CombatantID]bool{1: true},
	}

	if !snap.AnyAllyBelow(0.40) {
		t.Error("AnyAllyBelow(0.40) should see the healer at 35%")
	}
	if snap.AnyAllyBelow(0.30) {
		t.Error("AnyAllyBelow(0.30) should see nobody; the dead don't count")
	}
	if !snap.AnyAllyAbove(0.85) {
		t.Error("AnyAllyAbove(0.85) should see the tank at 90%")
	}
	if !snap.AnyAllyWithStatus(StatusStun) {
		t.Error("AnyAllyWithStatus(stun) should see the healer")
	}
	if snap.AnyAllyWithStatus(StatusDoom) {
		t.Error("AnyAllyWithStatus(doom) should see nobody")
	}
	if !snap.AnyAllyTargeted() {
		t.Error("AnyAllyTargeted should see the tank under attack")
	}
}
