package policy

import (
	"fmt"
	"os"
	"path/filepath"

	"go.uber.org/zap"
	"gopkg.in/yaml.v3"

	"github.com/onrcanogul/prod-analyzer/internal/support"
)

// conventionalNames are probed in order in the scan root.
var conventionalNames = []string{
	".prod-analyzer-policy.yml",
	".prod-analyzer-policy.yaml",
	"prod-analyzer-policy.yml",
	"prod-analyzer-policy.yaml",
}

// Discover probes the conventional policy filenames in root. Absence of any
// policy file is not an error: the scan simply runs with zero policy rules.
func Discover(root string, log *zap.SugaredLogger) *Policy {
	for _, name := range conventionalNames {
		path := filepath.Join(root, name)
		if _, err := os.Stat(path); err != nil {
			continue
		}
		p, err := Load(path)
		if err != nil {
			log.Warnw("ignoring unusable policy file", "file", path, "error", err)
			return Empty()
		}
		dropInvalidRules(p, path, log)
		return p
	}
	return Empty()
}

// Load reads and parses one policy document.
func Load(path string) (*Policy, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var p Policy
	if err := yaml.Unmarshal(support.StripBOM(data), &p); err != nil {
		return nil, fmt.Errorf("failed to parse policy: %w", err)
	}
	if p.Name == "" {
		p.Name = filepath.Base(path)
	}
	return &p, nil
}

// LoadStrict is Load plus validation that refuses documents with broken
// rules instead of dropping them. Used when the caller named the policy file
// explicitly: a typo in a hand-picked policy should be loud.
func LoadStrict(path string) (*Policy, error) {
	p, err := Load(path)
	if err != nil {
		return nil, err
	}
	for i := range p.Rules {
		if err := p.validateRule(i); err != nil {
			return nil, err
		}
	}
	return p, nil
}

// dropInvalidRules removes rules that can never fire or carry an unknown
// severity, warning once per dropped rule. Valid rules keep evaluating: one
// broken rule must not disable the rest of the policy.
func dropInvalidRules(p *Policy, path string, log *zap.SugaredLogger) {
	kept := p.Rules[:0]
	for i := range p.Rules {
		if err := p.validateRule(i); err != nil {
			log.Warnw("skipping invalid policy rule", "file", path, "error", err)
			continue
		}
		kept = append(kept, p.Rules[i])
	}
	p.Rules = kept
}
