// Package rules holds the built-in misconfiguration detectors, the registry
// that indexes them, and the engine that applies them to canonical entries.
package rules

import (
	"strings"

	"github.com/onrcanogul/prod-analyzer/internal/model"
)

// Rule is a built-in, stateless detector of one misconfiguration pattern.
// Evaluate must be pure: identical input always yields identical output, and
// implementations must not retain cross-call state.
type Rule interface {
	ID() string
	DefaultSeverity() model.Severity
	TargetKeys() []string
	Platforms() []model.Platform
	Evaluate(e model.Entry) []model.Violation
}

// detection is what a rule's check reports when it fires. Severity lets a
// rule escalate (or downgrade) from its default based on the value found.
type detection struct {
	Severity model.Severity
	Message  string
}

// builtinRule is the single concrete Rule implementation; catalog entries
// differ only in data and in their detect closure.
type builtinRule struct {
	id         string
	severity   model.Severity
	keys       []string
	platforms  []model.Platform
	suggestion string
	detect     func(e model.Entry, defaultSeverity model.Severity) *detection
}

func (r *builtinRule) ID() string                      { return r.id }
func (r *builtinRule) DefaultSeverity() model.Severity { return r.severity }
func (r *builtinRule) TargetKeys() []string            { return r.keys }
func (r *builtinRule) Platforms() []model.Platform     { return r.platforms }

func (r *builtinRule) Evaluate(e model.Entry) []model.Violation {
	if !r.appliesTo(e.Key) {
		return nil
	}
	d := r.detect(e, r.severity)
	if d == nil {
		return nil
	}
	return []model.Violation{{
		RuleID:      r.id,
		Severity:    d.Severity,
		Message:     d.Message,
		FilePath:    e.SourceFile,
		ConfigKey:   e.Key,
		ConfigValue: e.Value,
		Line:        e.Line,
		Suggestion:  r.suggestion,
	}}
}

// appliesTo guards the rule against keys outside its target set. Candidate
// selection in the registry is an efficiency layer only; correctness lives
// here, so a brute-force "every rule against every entry" evaluation gives
// the same violations.
func (r *builtinRule) appliesTo(key string) bool {
	for _, target := range r.keys {
		if targetKeyMatches(target, key) {
			return true
		}
	}
	return false
}

// targetKeyMatches implements built-in target keys: the literal "*" matches
// everything, a trailing ".*" matches keys under the dot-prefix, anything
// else must match exactly.
func targetKeyMatches(target, key string) bool {
	if target == "*" {
		return true
	}
	if prefix, ok := strings.CutSuffix(target, ".*"); ok {
		return key == prefix || strings.HasPrefix(key, prefix+".")
	}
	return key == target
}
