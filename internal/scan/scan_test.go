package scan

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"go.uber.org/zap"

	"github.com/onrcanogul/prod-analyzer/internal/model"
	"github.com/onrcanogul/prod-analyzer/internal/policy"
	"github.com/onrcanogul/prod-analyzer/internal/report"
)

func write(t *testing.T, root, rel, content string) {
	t.Helper()
	path := filepath.Join(root, filepath.FromSlash(rel))
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
}

func run(t *testing.T, root string, profile string) *report.Result {
	t.Helper()
	p, err := model.ParseProfile(profile)
	if err != nil {
		t.Fatal(err)
	}
	res, err := Run(Options{
		Root:      root,
		Profile:   p,
		Threshold: model.SeverityHigh,
		Log:       zap.NewNop().Sugar(),
	})
	if err != nil {
		t.Fatal(err)
	}
	return res
}

func TestRun_SpringProjectEndToEnd(t *testing.T) {
	root := t.TempDir()
	write(t, root, "application.yml", `
spring:
  profiles:
    active: dev
  jpa:
    hibernate:
      ddl-auto: create-drop
server:
  port: 8080
`)

	res := run(t, root, "spring")

	if res.Passed {
		t.Error("dev profile plus create-drop must fail the gate")
	}
	if res.MaxSeverity != model.SeverityCritical {
		t.Errorf("expected CRITICAL max severity, got %s", res.MaxSeverity)
	}

	seen := map[string]bool{}
	for _, v := range res.Violations {
		seen[v.RuleID] = true
	}
	if !seen["SPRING_PROFILE_DEV_ACTIVE"] || !seen["HIBERNATE_DDL_AUTO_UNSAFE"] {
		t.Errorf("expected both built-in findings, got %v", seen)
	}
	if res.Stats.FilesScanned != 1 || res.Stats.FilesFailed != 0 {
		t.Errorf("unexpected stats: %+v", res.Stats)
	}
}

func TestRun_UnparseableFileDegradesNotAborts(t *testing.T) {
	root := t.TempDir()
	write(t, root, "application.yml", "spring: [broken")
	write(t, root, "app.properties", "spring.profiles.active=dev\n")

	res := run(t, root, "all")

	if res.Stats.FilesFailed != 1 {
		t.Errorf("expected one failed file, got %d", res.Stats.FilesFailed)
	}
	found := false
	for _, v := range res.Violations {
		if v.RuleID == "SPRING_PROFILE_DEV_ACTIVE" && v.FilePath == filepath.Join(root, "app.properties") {
			found = true
		}
	}
	if !found {
		t.Error("healthy file must still be evaluated after a parse failure")
	}
}

func TestRun_PolicyViolationsJoinBuiltins(t *testing.T) {
	root := t.TempDir()
	write(t, root, ".env", "API_BASE_URL=http://localhost:8080\n")

	p, err := model.ParseProfile("all")
	if err != nil {
		t.Fatal(err)
	}
	res, err := Run(Options{
		Root:      root,
		Profile:   p,
		Threshold: model.SeverityMedium,
		Policy: &policy.Policy{
			Name: "corp",
			Rules: []policy.Rule{{
				ID:               "NO_LOCALHOST",
				Key:              "*",
				ForbiddenPattern: "localhost",
			}},
		},
		Log: zap.NewNop().Sugar(),
	})
	if err != nil {
		t.Fatal(err)
	}

	found := false
	for _, v := range res.Violations {
		if v.RuleID == "POLICY:NO_LOCALHOST" {
			found = true
		}
	}
	if !found {
		t.Fatalf("policy rule did not fire: %+v", res.Violations)
	}
	if res.PolicyName != "corp" {
		t.Errorf("result must name the applied policy, got %q", res.PolicyName)
	}
}

func TestRun_EmptyRootPasses(t *testing.T) {
	res := run(t, t.TempDir(), "all")
	if !res.Passed || len(res.Violations) != 0 {
		t.Errorf("empty project must pass cleanly, got %+v", res)
	}
	if res.MaxSeverity != model.SeverityInfo {
		t.Errorf("expected INFO floor, got %s", res.MaxSeverity)
	}
}

func TestRun_Deterministic(t *testing.T) {
	root := t.TempDir()
	write(t, root, "application.yml", "spring:\n  profiles:\n    active: dev\n  h2:\n    console:\n      enabled: true\n")
	write(t, root, "config/application.properties", "spring.jpa.show-sql=true\nlogging.level.root=DEBUG\n")
	write(t, root, ".env", "DEBUG=true\nNODE_ENV=development\n")

	first := renderJSON(t, run(t, root, "all"))
	for i := 0; i < 5; i++ {
		if again := renderJSON(t, run(t, root, "all")); !bytes.Equal(first, again) {
			t.Fatal("identical scans must produce byte-identical reports")
		}
	}
}

func renderJSON(t *testing.T, res *report.Result) []byte {
	t.Helper()
	var buf bytes.Buffer
	if err := report.RenderJSON(&buf, res, "test"); err != nil {
		t.Fatal(err)
	}
	return buf.Bytes()
}
