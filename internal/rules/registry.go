package rules

import "strings"

// Registry indexes read-only rule references by exact target key, with a
// fallback bucket for wildcard targets. Rules are never mutated after
// registration.
type Registry struct {
	byKey    map[string][]Rule
	wildcard []Rule
}

// NewRegistry indexes the given rules. A rule with any wildcard in a target
// key lands in the wildcard bucket only, even if it also lists exact keys;
// the wildcard bucket is consulted for every entry, and its own Evaluate
// re-checks key applicability, so the index can only over-approximate, never
// miss, and each rule sees each entry at most once.
func NewRegistry(rules []Rule) *Registry {
	reg := &Registry{byKey: make(map[string][]Rule)}
	for _, r := range rules {
		wild := false
		for _, key := range r.TargetKeys() {
			if strings.Contains(key, "*") {
				wild = true
				break
			}
		}
		if wild {
			reg.wildcard = append(reg.wildcard, r)
			continue
		}
		for _, key := range r.TargetKeys() {
			reg.byKey[key] = append(reg.byKey[key], r)
		}
	}
	return reg
}

// Candidates returns the rules that may apply to an entry key: the exact
// bucket unioned with the wildcard bucket.
func (reg *Registry) Candidates(key string) []Rule {
	exact := reg.byKey[key]
	if len(reg.wildcard) == 0 {
		return exact
	}
	out := make([]Rule, 0, len(exact)+len(reg.wildcard))
	out = append(out, exact...)
	out = append(out, reg.wildcard...)
	return out
}

// Len reports the number of registered rules (wildcard rules included once).
func (reg *Registry) Len() int {
	seen := map[string]bool{}
	for _, bucket := range reg.byKey {
		for _, r := range bucket {
			seen[r.ID()] = true
		}
	}
	for _, r := range reg.wildcard {
		seen[r.ID()] = true
	}
	return len(seen)
}
