package report

import (
	"reflect"
	"testing"

	"github.com/onrcanogul/prod-analyzer/internal/model"
)

func v(rule string, sev model.Severity, file string, line int) model.Violation {
	return model.Violation{RuleID: rule, Severity: sev, FilePath: file, Line: line}
}

func TestGrouped_OrdersGroupsBySeverityThenID(t *testing.T) {
	groups := Grouped([]model.Violation{
		v("B_RULE", model.SeverityHigh, "a.yml", 1),
		v("A_RULE", model.SeverityHigh, "a.yml", 2),
		v("Z_RULE", model.SeverityCritical, "a.yml", 3),
		v("C_RULE", model.SeverityLow, "a.yml", 4),
	})

	var order []string
	for _, g := range groups {
		order = append(order, g.RuleID)
	}
	want := []string{"Z_RULE", "A_RULE", "B_RULE", "C_RULE"}
	if !reflect.DeepEqual(order, want) {
		t.Errorf("group order %v, want %v", order, want)
	}
}

func TestGrouped_OrdersOccurrencesByFileThenLine(t *testing.T) {
	groups := Grouped([]model.Violation{
		v("R", model.SeverityHigh, "b.yml", 9),
		v("R", model.SeverityHigh, "a.yml", 20),
		v("R", model.SeverityHigh, "a.yml", 3),
		v("R", model.SeverityHigh, "a.yml", 0), // missing line sorts first
	})
	if len(groups) != 1 {
		t.Fatalf("expected one group, got %d", len(groups))
	}
	vs := groups[0].Violations
	wantFiles := []string{"a.yml", "a.yml", "a.yml", "b.yml"}
	wantLines := []int{0, 3, 20, 9}
	for i := range vs {
		if vs[i].FilePath != wantFiles[i] || vs[i].Line != wantLines[i] {
			t.Errorf("occurrence %d is %s:%d, want %s:%d", i, vs[i].FilePath, vs[i].Line, wantFiles[i], wantLines[i])
		}
	}
}

func TestGrouped_GroupSeverityIsMaxOccurrence(t *testing.T) {
	groups := Grouped([]model.Violation{
		v("DDL", model.SeverityHigh, "a.yml", 1),
		v("DDL", model.SeverityCritical, "b.yml", 1),
	})
	if groups[0].Severity != model.SeverityCritical {
		t.Errorf("expected CRITICAL, got %s", groups[0].Severity)
	}
}

func TestGrouped_Deterministic(t *testing.T) {
	input := []model.Violation{
		v("A", model.SeverityHigh, "x.yml", 1),
		v("B", model.SeverityHigh, "y.yml", 2),
		v("C", model.SeverityMedium, "z.yml", 3),
		v("A", model.SeverityHigh, "w.yml", 4),
	}
	first := Grouped(append([]model.Violation(nil), input...))
	for i := 0; i < 20; i++ {
		again := Grouped(append([]model.Violation(nil), input...))
		if !reflect.DeepEqual(first, again) {
			t.Fatal("grouping must be order-stable across runs")
		}
	}
}

func TestTopGroups(t *testing.T) {
	groups := Grouped([]model.Violation{
		v("A", model.SeverityCritical, "a.yml", 1),
		v("B", model.SeverityHigh, "a.yml", 2),
		v("C", model.SeverityMedium, "a.yml", 3),
		v("D", model.SeverityLow, "a.yml", 4),
	})

	top := TopGroups(groups, 2, model.SeverityMedium)
	if len(top) != 2 || top[0].RuleID != "A" || top[1].RuleID != "B" {
		t.Errorf("expected [A B], got %+v", top)
	}

	// n <= 0 means unlimited, threshold still filters.
	all := TopGroups(groups, 0, model.SeverityHigh)
	if len(all) != 2 {
		t.Errorf("expected two groups at or above HIGH, got %d", len(all))
	}
}
