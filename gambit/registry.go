package gambit

import (
	"fmt"
	"sort"
	"sync"
)

// Registry holds loaded personalities and rule sets keyed by archetype name.
// There is no package-level archetype state: callers construct a registry,
// load data into it, and pass it to whoever needs lookups. Lookups and swaps
// are goroutine-safe so a file watcher can reload behind live battles.
type Registry struct {
	mu            sync.RWMutex
	personalities map[string]Personality
	ruleSets      map[string]*RuleSet
}

func NewRegistry() *Registry {
	return &Registry{
		personalities: make(map[string]Personality),
		ruleSets:      make(map[string]*RuleSet),
	}
}

// Personality returns a copy of the named profile, so per-agent tweaks never
// leak back into the registry.
func (reg *Registry) Personality(name string) (Personality, bool) {
	reg.mu.RLock()
	defer reg.mu.RUnlock()
	p, ok := reg.personalities[name]
	return p, ok
}

// RuleSet returns the named rule set. Rule sets are immutable after
// construction and may be shared across agents.
func (reg *Registry) RuleSet(name string) (*RuleSet, bool) {
	reg.mu.RLock()
	defer reg.mu.RUnlock()
	rs, ok := reg.ruleSets[name]
	return rs, ok
}

// SetPersonality stores or replaces a profile under its name.
func (reg *Registry) SetPersonality(p Personality) {
	reg.mu.Lock()
	reg.personalities[p.Name] = p
	reg.mu.Unlock()
}

// SetRuleSet stores or replaces a rule set under its name.
func (reg *Registry) SetRuleSet(rs *RuleSet) {
	reg.mu.Lock()
	reg.ruleSets[rs.Name()] = rs
	reg.mu.Unlock()
}

// Archetypes lists the names that have both a personality and a rule set,
// sorted for stable output.
func (reg *Registry) Archetypes() []string {
	reg.mu.RLock()
	defer reg.mu.RUnlock()

	names := make([]string, 0, len(reg.personalities))
	for name := range reg.personalities {
		if _, ok := reg.ruleSets[name]; ok {
			names = append(names, name)
		}
	}
	sort.Strings(names)
	return names
}

// NewEvaluator builds an evaluator for the archetype, with its own
// personality copy.
func (reg *Registry) NewEvaluator(archetype string) (*Evaluator, error) {
	p, ok := reg.Personality(archetype)
	if !ok {
		return nil, fmt.Errorf("unknown archetype personality %q", archetype)
	}
	rs, ok := reg.RuleSet(archetype)
	if !ok {
		return nil, fmt.Errorf("unknown archetype rule set %q", archetype)
	}
	return NewEvaluator(rs, &p)
}
