package report

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/onrcanogul/prod-analyzer/internal/model"
)

func TestAggregate_EmptyScanPasses(t *testing.T) {
	res := Aggregate(nil, model.SeverityHigh, "all", "", Stats{FilesScanned: 2})
	if !res.Passed {
		t.Error("no violations must pass")
	}
	if res.MaxSeverity != model.SeverityInfo {
		t.Errorf("empty max severity must be INFO, got %s", res.MaxSeverity)
	}
	for _, s := range model.Severities {
		if _, ok := res.Counts[s]; !ok {
			t.Errorf("histogram missing zero-initialized bucket %s", s)
		}
	}
}

func TestAggregate_FailsAtOrAboveThreshold(t *testing.T) {
	violations := []model.Violation{
		{RuleID: "R", Severity: model.SeverityHigh},
	}
	if Aggregate(violations, model.SeverityHigh, "all", "", Stats{}).Passed {
		t.Error("HIGH violation at HIGH threshold must fail")
	}
	if Aggregate(violations, model.SeverityCritical, "all", "", Stats{}).Passed == false {
		t.Error("HIGH violation at CRITICAL threshold must pass")
	}
}

func TestHasViolationsAboveThreshold_Monotonic(t *testing.T) {
	res := Aggregate([]model.Violation{
		{RuleID: "R", Severity: model.SeverityMedium},
	}, model.SeverityHigh, "all", "", Stats{})

	prev := true
	for _, th := range model.Severities {
		cur := res.HasViolationsAboveThreshold(th)
		if cur && !prev {
			t.Fatalf("verdict not monotonic at threshold %s", th)
		}
		prev = cur
	}
}

func TestRenderJSON_Shape(t *testing.T) {
	res := Aggregate([]model.Violation{
		{RuleID: "R", Severity: model.SeverityHigh, FilePath: "a.yml", ConfigKey: "k", ConfigValue: "v", Line: 1},
	}, model.SeverityHigh, "spring", "corp", Stats{FilesScanned: 1, EntriesEvaluated: 3})

	var buf bytes.Buffer
	if err := RenderJSON(&buf, res, "1.2.3"); err != nil {
		t.Fatal(err)
	}

	var doc map[string]interface{}
	if err := json.Unmarshal(buf.Bytes(), &doc); err != nil {
		t.Fatalf("output is not valid JSON: %v", err)
	}
	if doc["tool"] != "prod-analyzer" || doc["version"] != "1.2.3" {
		t.Errorf("envelope wrong: %v", doc)
	}
	if doc["passed"] != false {
		t.Error("expected failed verdict in document")
	}
	counts := doc["counts"].(map[string]interface{})
	if counts["HIGH"].(float64) != 1 {
		t.Errorf("severity keys must marshal as names, got %v", counts)
	}
}

func TestRenderText_TierGating(t *testing.T) {
	var violations []model.Violation
	for i := 1; i <= 7; i++ {
		violations = append(violations, model.Violation{
			RuleID: "R", Severity: model.SeverityHigh,
			FilePath: "a.yml", Line: i,
			ConfigKey: "k", ConfigValue: "v",
			Message: "bad", Suggestion: "do better",
		})
	}
	res := Aggregate(violations, model.SeverityHigh, "all", "", Stats{})

	var community bytes.Buffer
	RenderText(&community, res, TierCommunity)
	if !strings.Contains(community.String(), "... and 2 more occurrence(s)") {
		t.Errorf("community output must truncate after the cap:\n%s", community.String())
	}
	if strings.Contains(community.String(), "do better") {
		t.Error("community output must not print suggestions")
	}

	var pro bytes.Buffer
	RenderText(&pro, res, TierPro)
	if strings.Contains(pro.String(), "more occurrence(s)") {
		t.Error("pro output must not truncate")
	}
	if !strings.Contains(pro.String(), "fix: do better") {
		t.Error("pro output must print suggestions")
	}
	if !strings.Contains(pro.String(), "FAIL") || !strings.Contains(community.String(), "FAIL") {
		t.Error("both tiers must report the identical verdict")
	}
}

func TestRenderJUnit_FailureAndGate(t *testing.T) {
	res := Aggregate([]model.Violation{
		{RuleID: "R", Severity: model.SeverityHigh, FilePath: "a.yml", ConfigKey: "k", ConfigValue: "v", Message: "bad"},
		{RuleID: "S", Severity: model.SeverityLow, FilePath: "a.yml", ConfigKey: "k2", ConfigValue: "v2", Message: "minor"},
	}, model.SeverityHigh, "all", "", Stats{})

	var buf bytes.Buffer
	if err := RenderJUnit(&buf, res); err != nil {
		t.Fatal(err)
	}
	out := buf.String()
	if !strings.Contains(out, `name="R[0]"`) {
		t.Error("expected a testcase per violation")
	}
	if !strings.Contains(out, "production-readiness-gate") {
		t.Error("expected the gate testcase")
	}
	if !strings.Contains(out, "below failure threshold") {
		t.Error("sub-threshold violation should be reported as skipped")
	}
	if !strings.Contains(out, `failures="2"`) {
		t.Errorf("expected the violation failure plus the gate failure:\n%s", out)
	}
}

func TestRenderSARIF_Levels(t *testing.T) {
	res := Aggregate([]model.Violation{
		{RuleID: "A", Severity: model.SeverityCritical, FilePath: "a.yml", Line: 1, Message: "very bad"},
		{RuleID: "B", Severity: model.SeverityMedium, FilePath: "a.yml", Line: 2, Message: "kind of bad"},
		{RuleID: "C", Severity: model.SeverityInfo, FilePath: "a.yml", Line: 3, Message: "note this"},
	}, model.SeverityHigh, "all", "", Stats{})

	var buf bytes.Buffer
	if err := RenderSARIF(&buf, res, "1.0.0"); err != nil {
		t.Fatal(err)
	}
	out := buf.String()
	if !strings.Contains(out, `"2.1.0"`) {
		t.Error("expected SARIF schema version 2.1.0")
	}
	for _, level := range []string{`"error"`, `"warning"`, `"note"`} {
		if !strings.Contains(out, level) {
			t.Errorf("expected level %s in output", level)
		}
	}
}
