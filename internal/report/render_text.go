package report

import (
	"fmt"
	"io"

	"github.com/fatih/color"

	"github.com/onrcanogul/prod-analyzer/internal/model"
)

var severityColors = map[model.Severity]*color.Color{
	model.SeverityCritical: color.New(color.FgRed, color.Bold),
	model.SeverityHigh:     color.New(color.FgRed),
	model.SeverityMedium:   color.New(color.FgYellow),
	model.SeverityLow:      color.New(color.FgCyan),
	model.SeverityInfo:     color.New(color.FgWhite),
}

// RenderText writes the human-readable report. The pro tier prints every
// occurrence plus suggestions; community truncates long occurrence lists and
// omits suggestions. Both tiers see identical facts and the identical
// verdict.
func RenderText(w io.Writer, res *Result, tier Tier) {
	fmt.Fprintf(w, "prod-analyzer scan (profile: %s", res.Profile)
	if res.PolicyName != "" && res.PolicyName != "none" {
		fmt.Fprintf(w, ", policy: %s", res.PolicyName)
	}
	fmt.Fprintln(w, ")")
	fmt.Fprintf(w, "Scanned %d files, %d entries", res.Stats.FilesScanned, res.Stats.EntriesEvaluated)
	if res.Stats.FilesFailed > 0 {
		fmt.Fprintf(w, " (%d files skipped as unparseable)", res.Stats.FilesFailed)
	}
	fmt.Fprintln(w)
	fmt.Fprintln(w)

	if len(res.Groups) == 0 {
		fmt.Fprintln(w, "No production-readiness issues found.")
	}

	for _, g := range res.Groups {
		c := severityColors[g.Severity]
		c.Fprintf(w, "[%s] %s", g.Severity, g.RuleID)
		fmt.Fprintf(w, " - %d occurrence(s)\n", len(g.Violations))

		shown := g.Violations
		truncated := 0
		if tier == TierCommunity && len(shown) > communityOccurrenceCap {
			truncated = len(shown) - communityOccurrenceCap
			shown = shown[:communityOccurrenceCap]
		}
		for _, v := range shown {
			loc := v.FilePath
			if v.Line > 0 {
				loc = fmt.Sprintf("%s:%d", v.FilePath, v.Line)
			}
			fmt.Fprintf(w, "    %s\n", loc)
			fmt.Fprintf(w, "      %s = %s\n", v.ConfigKey, v.ConfigValue)
			fmt.Fprintf(w, "      %s\n", v.Message)
			if tier == TierPro && v.Suggestion != "" {
				fmt.Fprintf(w, "      fix: %s\n", v.Suggestion)
			}
		}
		if truncated > 0 {
			fmt.Fprintf(w, "    ... and %d more occurrence(s)\n", truncated)
		}
		fmt.Fprintln(w)
	}

	fmt.Fprint(w, "Summary:")
	for i := len(model.Severities) - 1; i >= 0; i-- {
		s := model.Severities[i]
		fmt.Fprintf(w, " %s=%d", s, res.Counts[s])
	}
	fmt.Fprintln(w)

	if res.Passed {
		color.New(color.FgGreen, color.Bold).Fprintf(w, "PASS")
		fmt.Fprintf(w, " (no violations at or above %s)\n", res.Threshold)
	} else {
		color.New(color.FgRed, color.Bold).Fprintf(w, "FAIL")
		fmt.Fprintf(w, " (violations at or above %s found)\n", res.Threshold)
	}
}
