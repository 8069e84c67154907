// Package scan wires the pipeline together: discovery, normalization, both
// rule engines, and aggregation. One call, one immutable result.
package scan

import (
	"os"

	"go.uber.org/zap"

	"github.com/onrcanogul/prod-analyzer/internal/discovery"
	"github.com/onrcanogul/prod-analyzer/internal/model"
	"github.com/onrcanogul/prod-analyzer/internal/normalize"
	"github.com/onrcanogul/prod-analyzer/internal/policy"
	"github.com/onrcanogul/prod-analyzer/internal/report"
	"github.com/onrcanogul/prod-analyzer/internal/rules"
)

// Options configures one scan invocation. All validation of user input
// happens before an Options is built; the pipeline itself only ever degrades
// softly.
type Options struct {
	Root      string
	Profile   model.Profile
	Threshold model.Severity
	Policy    *policy.Policy
	Log       *zap.SugaredLogger
}

// Run executes one full scan. Per-file parse failures degrade to zero
// entries with a warning and never abort the scan; only an unreadable root
// is an error.
func Run(opts Options) (*report.Result, error) {
	files, err := discovery.Discover(opts.Root)
	if err != nil {
		return nil, err
	}

	pol := opts.Policy
	if pol == nil {
		pol = policy.Empty()
	}

	entries, stats := collectEntries(files, opts.Log)

	engine := rules.NewEngine(rules.NewRegistry(rules.Catalog()), opts.Profile)
	builtinViolations, invoked := engine.Evaluate(entries)
	policyViolations := policy.NewEngine(pol, opts.Log).Evaluate(entries)

	// Built-in first, policy second; grouping relies on this stable concat
	// order for its final tie-breaks.
	violations := append(builtinViolations, policyViolations...)

	stats.RulesInvoked = invoked
	policyName := ""
	if len(pol.Rules) > 0 {
		policyName = pol.Name
	}
	return report.Aggregate(violations, opts.Threshold, opts.Profile.Name, policyName, stats), nil
}

// collectEntries reads and normalizes every discovered file sequentially in
// the deterministic discovery order, so diagnostic ordering never depends on
// I/O timing.
func collectEntries(files []model.SourceFile, log *zap.SugaredLogger) ([]model.Entry, report.Stats) {
	var entries []model.Entry
	stats := report.Stats{}
	for _, f := range files {
		n, ok := normalize.ForFormat(f.Format)
		if !ok {
			continue
		}
		raw, err := os.ReadFile(f.Path)
		if err != nil {
			log.Warnw("skipping unreadable file", "file", f.Path, "error", err)
			stats.FilesFailed++
			continue
		}
		stats.FilesScanned++
		fileEntries, err := n.Normalize(raw, f.Path)
		if err != nil {
			// Degraded parse: the file contributes zero entries and the
			// scan continues.
			log.Warnw("skipping unparseable file", "file", f.Path, "error", err)
			stats.FilesFailed++
			continue
		}
		entries = append(entries, fileEntries...)
	}
	stats.EntriesEvaluated = len(entries)
	return entries, stats
}
