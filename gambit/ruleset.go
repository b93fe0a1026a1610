package gambit

import (
	"fmt"
	"log/slog"
	"sort"
)

// RuleSet is the ordered rule collection for one archetype. Construction
// compiles script conditions into expr bytecode and sorts once by bucket,
// then priority descending; evaluation never re-sorts. Rules keep their
// registration order on ties so identical inputs always rank identically.
type RuleSet struct {
	name     string
	rules    []*Rule
	byBucket [][]*Rule
}

// NewRuleSet builds a rule set. Disabled rules are dropped; out-of-range
// priorities and utilities are clamped; a script condition that fails to
// compile aborts construction so a bad data file can't half-load.
func NewRuleSet(name string, rules []Rule) (*RuleSet, error) {
	rs := &RuleSet{
		name:     name,
		rules:    make([]*Rule, 0, len(rules)),
		byBucket: make([][]*Rule, len(Buckets)),
	}

	for i := range rules {
		r := rules[i]
		if r.Disabled {
			slog.Debug("skipping disabled rule", "set", name, "rule", r.Name)
			continue
		}
		if int(r.Bucket) < 0 || int(r.Bucket) >= len(Buckets) {
			slog.Warn("rule with unknown bucket dropped", "set", name, "rule", r.Name, "bucket", r.Bucket)
			continue
		}
		r.Priority = clampInt(r.Priority, 1, 100)
		r.Utility = clamp(r.Utility, 0, 100)
		if r.Match == "" {
			r.Match = MatchAll
		}
		for c := range r.Conditions {
			if r.Conditions[c].Kind != PredScript {
				continue
			}
			prog, err := compileScript(r.Conditions[c].Script)
			if err != nil {
				return nil, fmt.Errorf("rule %q: %w", r.Name, err)
			}
			r.Conditions[c].program = prog
		}
		rs.rules = append(rs.rules, &r)
	}

	sort.SliceStable(rs.rules, func(i, j int) bool {
		if rs.rules[i].Bucket != rs.rules[j].Bucket {
			return rs.rules[i].Bucket < rs.rules[j].Bucket
		}
		return rs.rules[i].Priority > rs.rules[j].Priority
	})

	for _, r := range rs.rules {
		rs.byBucket[r.Bucket] = append(rs.byBucket[r.Bucket], r)
	}

	return rs, nil
}

func (rs *RuleSet) Name() string { return rs.name }

// Len reports the number of active rules.
func (rs *RuleSet) Len() int { return len(rs.rules) }

// Rules returns the sorted rule slice. Callers must not mutate it.
func (rs *RuleSet) Rules() []*Rule { return rs.rules }

// InBucket returns the bucket's rules in evaluation order.
func (rs *RuleSet) InBucket(b Bucket) []*Rule {
	if int(b) < 0 || int(b) >= len(rs.byBucket) {
		return nil
	}
	return rs.byBucket[b]
}
