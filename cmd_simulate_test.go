package main

import (
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/veilbreakers/gambit-core/gambit"
	"github.com/veilbreakers/gambit-core/model"
)

func TestParseSquad(t *testing.T) {
	cases := []struct {
		name    string
		spec    string
		want    []fighter
		wantErr bool
	}{
		{
			name: "stock roles",
			spec: "berserker,mender",
			want: []fighter{
				{archetype: "berserker", role: model.RoleStriker},
				{archetype: "mender", role: model.RoleHealer},
			},
		},
		{
			name: "explicit role overrides",
			spec: "warden:striker,hexer",
			want: []fighter{
				{archetype: "warden", role: model.RoleStriker},
				{archetype: "hexer", role: model.RoleCaster},
			},
		},
		{
			name: "unknown archetype defaults to striker",
			spec: "bard",
			want: []fighter{{archetype: "bard", role: model.RoleStriker}},
		},
		{
			name: "spaces and empty slots",
			spec: " berserker , ,mender:healer ",
			want: []fighter{
				{archetype: "berserker", role: model.RoleStriker},
				{archetype: "mender", role: model.RoleHealer},
			},
		},
		{name: "empty spec", spec: "", wantErr: true},
		{name: "only separators", spec: " , ,", wantErr: true},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := parseSquad(tc.spec)
			if tc.wantErr {
				if err == nil {
					t.Fatal("parseSquad accepted the spec")
				}
				return
			}
			if err != nil {
				t.Fatalf("parseSquad: %v", err)
			}
			if diff := cmp.Diff(tc.want, got, cmp.AllowUnexported(fighter{})); diff != "" {
				t.Errorf("squad mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestRunBattleIsReproducible(t *testing.T) {
	reg := gambit.NewRegistry()
	if err := reg.LoadDefaults(); err != nil {
		t.Fatalf("LoadDefaults: %v", err)
	}
	squadA, err := parseSquad("berserker,mender")
	if err != nil {
		t.Fatalf("parseSquad: %v", err)
	}
	squadB, err := parseSquad("warden,hexer")
	if err != nil {
		t.Fatalf("parseSquad: %v", err)
	}

	first, err := runBattle(reg, squadA, squadB, 11, 60)
	if err != nil {
		t.Fatalf("runBattle: %v", err)
	}
	if first.ticks < 1 || first.ticks > 60 {
		t.Errorf("battle ran %d ticks, want within 1..60", first.ticks)
	}

	second, err := runBattle(reg, squadA, squadB, 11, 60)
	if err != nil {
		t.Fatalf("runBattle: %v", err)
	}
	if first != second {
		t.Errorf("same seed replayed differently: %+v vs %+v", first, second)
	}
}

func TestRunBattleUnknownArchetype(t *testing.T) {
	reg := gambit.NewRegistry()
	if err := reg.LoadDefaults(); err != nil {
		t.Fatalf("LoadDefaults: %v", err)
	}
	squadA := []fighter{{archetype: "bard", role: model.RoleStriker}}
	squadB, err := parseSquad("warden")
	if err != nil {
		t.Fatalf("parseSquad: %v", err)
	}

	if _, err := runBattle(reg, squadA, squadB, 1, 10); err == nil {
		t.Error("runBattle accepted an unknown archetype")
	}
}

func TestInitLogging(t *testing.T) {
	if err := initLogging("warn"); err != nil {
		t.Errorf("initLogging(warn): %v", err)
	}
	if err := initLogging("shout"); err == nil {
		t.Error("initLogging accepted a bogus level")
	}
}
