package report

import (
	"encoding/json"
	"io"

	"github.com/onrcanogul/prod-analyzer/internal/model"
)

// ---------------------------------------------------------------------------
// SARIF 2.1.0 output
// ---------------------------------------------------------------------------

type sarifDocument struct {
	Schema  string     `json:"$schema"`
	Version string     `json:"version"`
	Runs    []sarifRun `json:"runs"`
}
type sarifRun struct {
	Tool    sarifTool     `json:"tool"`
	Results []sarifResult `json:"results"`
}
type sarifTool struct {
	Driver sarifDriver `json:"driver"`
}
type sarifDriver struct {
	Name    string `json:"name"`
	Version string `json:"version"`
}
type sarifResult struct {
	RuleID  string          `json:"ruleId"`
	Level   string          `json:"level"`
	Message sarifMessage    `json:"message"`
	Locs    []sarifLocation `json:"locations,omitempty"`
}
type sarifMessage struct {
	Text string `json:"text"`
}
type sarifLocation struct {
	PhysicalLocation sarifPhysical `json:"physicalLocation"`
}
type sarifPhysical struct {
	ArtifactLocation sarifArtifact `json:"artifactLocation"`
	Region           *sarifRegion  `json:"region,omitempty"`
}
type sarifArtifact struct {
	URI string `json:"uri"`
}
type sarifRegion struct {
	StartLine int `json:"startLine"`
}

// sarifLevel maps the severity rank onto SARIF's three levels.
func sarifLevel(s model.Severity) string {
	switch {
	case s >= model.SeverityHigh:
		return "error"
	case s == model.SeverityMedium:
		return "warning"
	}
	return "note"
}

// RenderSARIF writes a SARIF 2.1.0 document, walking the precomputed groups
// so result ordering matches every other renderer.
func RenderSARIF(w io.Writer, res *Result, version string) error {
	var results []sarifResult
	for _, g := range res.Groups {
		for _, v := range g.Violations {
			r := sarifResult{
				RuleID:  v.RuleID,
				Level:   sarifLevel(v.Severity),
				Message: sarifMessage{Text: v.Message},
			}
			if v.FilePath != "" {
				loc := sarifLocation{PhysicalLocation: sarifPhysical{ArtifactLocation: sarifArtifact{URI: v.FilePath}}}
				if v.Line > 0 {
					loc.PhysicalLocation.Region = &sarifRegion{StartLine: v.Line}
				}
				r.Locs = append(r.Locs, loc)
			}
			results = append(results, r)
		}
	}

	doc := sarifDocument{
		Schema:  "https://raw.githubusercontent.com/oasis-tcs/sarif-spec/master/Schemata/sarif-schema-2.1.0.json",
		Version: "2.1.0",
		Runs: []sarifRun{{
			Tool:    sarifTool{Driver: sarifDriver{Name: "prod-analyzer", Version: version}},
			Results: results,
		}},
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(doc)
}
