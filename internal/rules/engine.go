package rules

import (
	"sort"

	"github.com/onrcanogul/prod-analyzer/internal/model"
)

// Engine applies indexed rules to entries under an active scan profile.
type Engine struct {
	registry *Registry
	profile  model.Profile
}

func NewEngine(registry *Registry, profile model.Profile) *Engine {
	return &Engine{registry: registry, profile: profile}
}

// Evaluate runs every applicable rule against every entry. It returns the
// full violation list (not deduplicated: a rule legitimately fires once per
// offending entry) and the sorted set of distinct rule ids actually invoked.
//
// A rule whose platform set excludes the active profile is skipped entirely,
// not merely suppressed from output.
func (en *Engine) Evaluate(entries []model.Entry) ([]model.Violation, []string) {
	var violations []model.Violation
	invoked := make(map[string]bool)

	for _, e := range entries {
		for _, r := range en.registry.Candidates(e.Key) {
			if !en.profile.Includes(r.Platforms()) {
				continue
			}
			invoked[r.ID()] = true
			violations = append(violations, r.Evaluate(e)...)
		}
	}

	ids := make([]string, 0, len(invoked))
	for id := range invoked {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return violations, ids
}
