// Package policy implements the user-authored declarative rule layer: a
// YAML document of key patterns with forbidden values, required values, and
// forbidden regex patterns, evaluated against the same canonical entries as
// the built-in detectors.
package policy

import (
	"fmt"

	"github.com/onrcanogul/prod-analyzer/internal/model"
)

// Policy is one loaded policy document, held read-only through evaluation.
type Policy struct {
	Name    string `yaml:"name"`
	Version string `yaml:"version"`
	Rules   []Rule `yaml:"rules"`
}

// Rule is a single user-authored enforcement. At least one of the three
// clauses (forbidden_values, required_value, forbidden_pattern) must be
// present; a rule without any can never fire and is rejected at load time.
//
// RequiredValue and CaseInsensitive are pointers so "unset" stays
// distinguishable from the zero value (a required empty string is legal, and
// case folding defaults to on).
type Rule struct {
	ID              string   `yaml:"id"`
	Key             string   `yaml:"key"`
	ForbiddenValues []string `yaml:"forbidden_values"`
	RequiredValue   *string  `yaml:"required_value"`
	ForbiddenPattern string  `yaml:"forbidden_pattern"`
	Severity        string   `yaml:"severity"`
	Message         string   `yaml:"message"`
	Suggestion      string   `yaml:"suggestion"`
	CaseInsensitive *bool    `yaml:"case_insensitive"`
}

func (r Rule) caseInsensitive() bool {
	return r.CaseInsensitive == nil || *r.CaseInsensitive
}

func (r Rule) hasClause() bool {
	return len(r.ForbiddenValues) > 0 || r.RequiredValue != nil || r.ForbiddenPattern != ""
}

// severity resolves the rule's severity, defaulting to MEDIUM when the
// document omits it.
func (r Rule) severity() (model.Severity, error) {
	if r.Severity == "" {
		return model.SeverityMedium, nil
	}
	return model.ParseSeverity(r.Severity)
}

// Empty returns a policy that applies zero rules; the scan core treats a
// missing policy file exactly like this.
func Empty() *Policy {
	return &Policy{Name: "none"}
}

func (p *Policy) validateRule(i int) error {
	r := p.Rules[i]
	if r.ID == "" {
		return fmt.Errorf("rule %d has no id", i)
	}
	if r.Key == "" {
		return fmt.Errorf("rule %q has no key pattern", r.ID)
	}
	if !r.hasClause() {
		return fmt.Errorf("rule %q has no enforcement clause (forbidden_values, required_value, or forbidden_pattern)", r.ID)
	}
	if _, err := r.severity(); err != nil {
		return fmt.Errorf("rule %q: %w", r.ID, err)
	}
	return nil
}
