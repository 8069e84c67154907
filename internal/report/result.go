package report

import (
	"github.com/onrcanogul/prod-analyzer/internal/model"
)

// Stats carries the scan-level counters renderers display but never
// recompute.
type Stats struct {
	FilesScanned     int      `json:"filesScanned"`
	FilesFailed      int      `json:"filesFailed"`
	EntriesEvaluated int      `json:"entriesEvaluated"`
	RulesInvoked     []string `json:"rulesInvoked"`
}

// Result aggregates one scan's violations plus everything the renderers and
// the CI gate need. Computed once, immutable afterwards; renderers must not
// re-derive counts or ordering, so all three output formats report identical
// facts.
type Result struct {
	Violations  []model.Violation      `json:"violations"`
	Groups      []Group                `json:"groups"`
	Counts      map[model.Severity]int `json:"counts"`
	MaxSeverity model.Severity         `json:"maxSeverity"`
	Threshold   model.Severity         `json:"threshold"`
	Passed      bool                   `json:"passed"`
	Profile     string                 `json:"profile"`
	PolicyName  string                 `json:"policyName,omitempty"`
	Stats       Stats                  `json:"stats"`
}

// Aggregate computes the severity histogram (zero-initialized for every
// defined level), the maximum severity (the lowest defined level when the
// list is empty, never undefined), and the pass/fail verdict: the scan fails
// iff at least one violation's severity is at or above the threshold.
func Aggregate(violations []model.Violation, threshold model.Severity, profile, policyName string, stats Stats) *Result {
	counts := make(map[model.Severity]int, len(model.Severities))
	for _, s := range model.Severities {
		counts[s] = 0
	}
	maxSev := model.SeverityInfo
	for _, v := range violations {
		counts[v.Severity]++
		if v.Severity > maxSev {
			maxSev = v.Severity
		}
	}
	res := &Result{
		Violations:  violations,
		Groups:      Grouped(violations),
		Counts:      counts,
		MaxSeverity: maxSev,
		Threshold:   threshold,
		Profile:     profile,
		PolicyName:  policyName,
		Stats:       stats,
	}
	res.Passed = !res.HasViolationsAboveThreshold(threshold)
	return res
}

// HasViolationsAboveThreshold reports whether any violation is at or above
// the given severity. Monotonic in the threshold: true at T implies true at
// every lower T.
func (r *Result) HasViolationsAboveThreshold(threshold model.Severity) bool {
	for _, v := range r.Violations {
		if v.Severity.AtLeast(threshold) {
			return true
		}
	}
	return false
}
