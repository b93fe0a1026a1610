package gambit

import (
	"embed"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/veilbreakers/gambit-core/model"
)

//go:embed defs/*.yaml
var defFS embed.FS

// archetypeDef is the YAML schema for one archetype file: a personality
// profile plus its rule set.
type archetypeDef struct {
	Archetype   string      `yaml:"archetype"`
	Personality Personality `yaml:"personality"`
	Rules       []ruleDef   `yaml:"rules"`
}

type ruleDef struct {
	Name       string         `yaml:"name"`
	Bucket     string         `yaml:"bucket"`
	Priority   int            `yaml:"priority"`
	Utility    float64        `yaml:"utility"`
	Match      string         `yaml:"match"`
	Disabled   bool           `yaml:"disabled"`
	Conditions []conditionDef `yaml:"conditions"`
	Action     actionDef      `yaml:"action"`
}

type conditionDef struct {
	Kind   string  `yaml:"kind"`
	Value  float64 `yaml:"value"`
	Status string  `yaml:"status"`
	Role   string  `yaml:"role"`
	Count  int     `yaml:"count"`
	Slot   int     `yaml:"slot"`
	Script string  `yaml:"script"`
	Negate bool    `yaml:"negate"`
}

type actionDef struct {
	Kind      string `yaml:"kind"`
	Target    string `yaml:"target"`
	Slot      int    `yaml:"slot"`
	Status    string `yaml:"status"`
	AllyIndex int    `yaml:"ally_index"`
}

// LoadDefaults loads the built-in archetype definitions shipped in the
// binary.
func (reg *Registry) LoadDefaults() error {
	entries, err := defFS.ReadDir("defs")
	if err != nil {
		return fmt.Errorf("read embedded defs: %w", err)
	}
	for _, e := range entries {
		if !strings.HasSuffix(e.Name(), ".yaml") {
			continue
		}
		data, err := defFS.ReadFile("defs/" + e.Name())
		if err != nil {
			return fmt.Errorf("read embedded def %s: %w", e.Name(), err)
		}
		if err := reg.loadArchetype(data, e.Name()); err != nil {
			return err
		}
	}
	return nil
}

// LoadDir merges archetype files from an on-disk directory over whatever the
// registry already holds. Same-named archetypes are replaced whole. The
// first malformed file aborts the load and leaves previous entries active,
// mirroring how rule swaps refuse to half-apply.
func (reg *Registry) LoadDir(dir string) error {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return fmt.Errorf("read archetype dir %s: %w", dir, err)
	}
	for _, e := range entries {
		name := e.Name()
		if e.IsDir() || (!strings.HasSuffix(name, ".yaml") && !strings.HasSuffix(name, ".yml")) {
			continue
		}
		data, err := os.ReadFile(filepath.Join(dir, name))
		if err != nil {
			return fmt.Errorf("read archetype file %s: %w", name, err)
		}
		if err := reg.loadArchetype(data, name); err != nil {
			return err
		}
	}
	return nil
}

func (reg *Registry) loadArchetype(data []byte, source string) error {
	def := archetypeDef{Personality: DefaultPersonality()}
	if err := yaml.Unmarshal(data, &def); err != nil {
		return fmt.Errorf("parse archetype %s: %w", source, err)
	}
	if def.Archetype == "" {
		return fmt.Errorf("archetype %s: missing archetype name", source)
	}

	p := def.Personality
	p.Name = def.Archetype
	if _, err := ParseStrategy(string(p.UltimateTargeting)); err != nil {
		slog.Warn("invalid ultimate targeting, using default", "archetype", def.Archetype, "error", err)
		p.UltimateTargeting = TargetLowestHPEnemy
	}
	p.Validate()

	rs, err := NewRuleSet(def.Archetype, convertRules(def.Archetype, def.Rules))
	if err != nil {
		return fmt.Errorf("archetype %s: %w", source, err)
	}

	reg.SetPersonality(p)
	reg.SetRuleSet(rs)
	slog.Info("archetype loaded", "archetype", def.Archetype, "rules", rs.Len(), "source", source)
	return nil
}

// convertRules turns rule defs into rules, skipping any with unknown kinds,
// strategies or buckets. A skipped rule warns and never reaches evaluation.
func convertRules(archetype string, defs []ruleDef) []Rule {
	rules := make([]Rule, 0, len(defs))
	for _, rd := range defs {
		rule, err := rd.toRule()
		if err != nil {
			slog.Warn("skipping rule", "archetype", archetype, "rule", rd.Name, "error", err)
			continue
		}
		rules = append(rules, rule)
	}
	return rules
}

func (rd ruleDef) toRule() (Rule, error) {
	bucket, err := ParseBucket(rd.Bucket)
	if err != nil {
		return Rule{}, err
	}

	var match MatchMode
	switch rd.Match {
	case "", "all":
		match = MatchAll
	case "any":
		match = MatchAny
	default:
		return Rule{}, fmt.Errorf("unknown match mode %q", rd.Match)
	}

	kind, err := ParseActionKind(rd.Action.Kind)
	if err != nil {
		return Rule{}, err
	}
	strategy, err := ParseStrategy(rd.Action.Target)
	if err != nil {
		return Rule{}, err
	}

	conditions := make([]Predicate, 0, len(rd.Conditions))
	for _, cd := range rd.Conditions {
		conditions = append(conditions, Predicate{
			Kind:   PredicateKind(cd.Kind),
			Value:  cd.Value,
			Status: model.StatusTag(cd.Status),
			Role:   model.Role(cd.Role),
			Count:  cd.Count,
			Slot:   model.AbilitySlot(cd.Slot),
			Script: cd.Script,
			Negate: cd.Negate,
		})
	}

	return Rule{
		Name:       rd.Name,
		Bucket:     bucket,
		Priority:   rd.Priority,
		Utility:    rd.Utility,
		Match:      match,
		Conditions: conditions,
		Action: Action{
			Kind:      kind,
			Target:    strategy,
			Slot:      model.AbilitySlot(rd.Action.Slot),
			Status:    model.StatusTag(rd.Action.Status),
			AllyIndex: rd.Action.AllyIndex,
		},
		Disabled: rd.Disabled,
	}, nil
}
