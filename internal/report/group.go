// Package report turns the raw violation list into the deterministic
// grouped/ordered structure all renderers consume, and computes the summary
// statistics the CI gate decides on.
package report

import (
	"sort"

	"github.com/onrcanogul/prod-analyzer/internal/model"
)

// Group is all occurrences of one rule, ordered for stable output.
type Group struct {
	RuleID     string            `json:"ruleId"`
	Severity   model.Severity    `json:"severity"`
	Violations []model.Violation `json:"violations"`
}

// Grouped buckets violations by rule id and orders everything
// deterministically: occurrences by (file ascending, line ascending, missing
// line treated as 0), groups by (severity descending, rule id ascending).
// Identical input always produces byte-identical ordering; CI diffs depend
// on it.
//
// A group's severity is the highest severity among its occurrences, so a
// rule that escalated for one value sorts by its worst finding.
func Grouped(violations []model.Violation) []Group {
	byRule := make(map[string][]model.Violation)
	for _, v := range violations {
		byRule[v.RuleID] = append(byRule[v.RuleID], v)
	}

	groups := make([]Group, 0, len(byRule))
	for ruleID, vs := range byRule {
		sort.SliceStable(vs, func(i, j int) bool {
			if vs[i].FilePath != vs[j].FilePath {
				return vs[i].FilePath < vs[j].FilePath
			}
			return vs[i].Line < vs[j].Line
		})
		severity := model.SeverityInfo
		for _, v := range vs {
			if v.Severity > severity {
				severity = v.Severity
			}
		}
		groups = append(groups, Group{RuleID: ruleID, Severity: severity, Violations: vs})
	}

	sort.Slice(groups, func(i, j int) bool {
		if groups[i].Severity != groups[j].Severity {
			return groups[i].Severity > groups[j].Severity
		}
		return groups[i].RuleID < groups[j].RuleID
	})
	return groups
}

// TopGroups returns the first n groups at or above the threshold, preserving
// the grouped ordering. n <= 0 means no count limit.
func TopGroups(groups []Group, n int, threshold model.Severity) []Group {
	var out []Group
	for _, g := range groups {
		if !g.Severity.AtLeast(threshold) {
			continue
		}
		out = append(out, g)
		if n > 0 && len(out) == n {
			break
		}
	}
	return out
}
