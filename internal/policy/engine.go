package policy

import (
	"fmt"
	"regexp"
	"strings"

	"go.uber.org/zap"

	"github.com/onrcanogul/prod-analyzer/internal/model"
)

// RuleIDPrefix tags policy-produced violations so they stay distinguishable
// from built-in ones without needing a separate violation type.
const RuleIDPrefix = "POLICY:"

// Engine evaluates one policy against canonical entries.
type Engine struct {
	policy   *Policy
	patterns map[string]*regexp.Regexp // compiled forbidden_pattern per rule id
	skipped  map[string]bool           // rules disabled by a malformed regex
}

// NewEngine compiles the policy's regex clauses up front. A malformed regex
// never crashes evaluation: the offending rule is skipped with a warning and
// every other rule keeps running.
func NewEngine(p *Policy, log *zap.SugaredLogger) *Engine {
	en := &Engine{
		policy:   p,
		patterns: make(map[string]*regexp.Regexp),
		skipped:  make(map[string]bool),
	}
	for _, r := range p.Rules {
		if r.ForbiddenPattern == "" {
			continue
		}
		re, err := regexp.Compile("(?i)" + r.ForbiddenPattern)
		if err != nil {
			log.Warnw("skipping policy rule with invalid regex",
				"policy", p.Name, "rule", r.ID, "pattern", r.ForbiddenPattern, "error", err)
			en.skipped[r.ID] = true
			continue
		}
		en.patterns[r.ID] = re
	}
	return en
}

// Evaluate applies every rule, in document order, to every entry.
func (en *Engine) Evaluate(entries []model.Entry) []model.Violation {
	var violations []model.Violation
	for _, e := range entries {
		for _, r := range en.policy.Rules {
			if en.skipped[r.ID] {
				continue
			}
			if !MatchKey(r.Key, e.Key) {
				continue
			}
			if v := en.enforce(r, e); v != nil {
				violations = append(violations, *v)
			}
		}
	}
	return violations
}

// enforce evaluates the clauses in their fixed order, short-circuiting on
// the first violation: forbidden values, then required value, then the
// forbidden pattern.
func (en *Engine) enforce(r Rule, e model.Entry) *model.Violation {
	fold := r.caseInsensitive()
	value := e.Value
	if fold {
		value = strings.ToLower(value)
	}

	for _, forbidden := range r.ForbiddenValues {
		if fold {
			forbidden = strings.ToLower(forbidden)
		}
		if value == forbidden {
			return en.violation(r, e, messageOr(r.Message,
				fmt.Sprintf("Value %q is forbidden for %s", e.Value, e.Key)))
		}
	}

	if r.RequiredValue != nil {
		required := *r.RequiredValue
		if fold {
			required = strings.ToLower(required)
		}
		if value != required {
			base := messageOr(r.Message, fmt.Sprintf("Unexpected value for %s", e.Key))
			return en.violation(r, e,
				fmt.Sprintf("%s (expected %q, found %q)", base, *r.RequiredValue, e.Value))
		}
	}

	if re := en.patterns[r.ID]; re != nil && re.MatchString(e.Value) {
		return en.violation(r, e, messageOr(r.Message,
			fmt.Sprintf("Value for %s matches forbidden pattern %q", e.Key, r.ForbiddenPattern)))
	}

	return nil
}

func (en *Engine) violation(r Rule, e model.Entry, msg string) *model.Violation {
	sev, err := r.severity()
	if err != nil {
		// Loader validation rejects these; kept as a safety net.
		sev = model.SeverityMedium
	}
	return &model.Violation{
		RuleID:      RuleIDPrefix + r.ID,
		Severity:    sev,
		Message:     fmt.Sprintf("[%s] %s", en.policy.Name, msg),
		FilePath:    e.SourceFile,
		ConfigKey:   e.Key,
		ConfigValue: e.Value,
		Line:        e.Line,
		Suggestion:  r.Suggestion,
	}
}

func messageOr(custom, fallback string) string {
	if custom != "" {
		return custom
	}
	return fallback
}

// ---------------------------------------------------------------------------
// Key pattern matching
// ---------------------------------------------------------------------------

// MatchKey reports whether a policy key pattern matches an entry key.
// Semantics: "*" matches every key; a pattern ending in ".*" matches any key
// under the dot-prefix; a pattern with an inner "*" is a segment wildcard;
// anything else must match exactly. Both sides are compared after
// lowercasing and folding "_" and "-" to ".".
func MatchKey(pattern, key string) bool {
	if pattern == "*" {
		return true
	}
	normKey := NormalizeKey(key)
	if rest, ok := strings.CutSuffix(pattern, ".*"); ok && !strings.Contains(rest, "*") {
		prefix := NormalizeKey(rest)
		return normKey == prefix || strings.HasPrefix(normKey, prefix+".")
	}
	if strings.Contains(pattern, "*") {
		return wildcardRegexp(NormalizeKey(pattern)).MatchString(normKey)
	}
	return normKey == NormalizeKey(pattern)
}

// NormalizeKey folds a key to comparison form: lowercase, "_" and "-"
// replaced with ".".
func NormalizeKey(key string) string {
	key = strings.ToLower(key)
	key = strings.ReplaceAll(key, "_", ".")
	return strings.ReplaceAll(key, "-", ".")
}

// wildcardRegexp translates a normalized pattern with "*" wildcards into an
// anchored regular expression. Pure function of the pattern, no state.
func wildcardRegexp(pattern string) *regexp.Regexp {
	parts := strings.Split(pattern, "*")
	for i, p := range parts {
		parts[i] = regexp.QuoteMeta(p)
	}
	return regexp.MustCompile("^" + strings.Join(parts, ".*") + "$")
}
