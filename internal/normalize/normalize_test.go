package normalize

import (
	"testing"

	"github.com/onrcanogul/prod-analyzer/internal/model"
)

func normalizeOk(t *testing.T, format model.Format, raw, path string) []model.Entry {
	t.Helper()
	n, ok := ForFormat(format)
	if !ok {
		t.Fatalf("no normalizer for %s", format)
	}
	entries, err := n.Normalize([]byte(raw), path)
	if err != nil {
		t.Fatalf("unexpected normalize error: %v", err)
	}
	return entries
}

func findEntry(t *testing.T, entries []model.Entry, key string) model.Entry {
	t.Helper()
	for _, e := range entries {
		if e.Key == key {
			return e
		}
	}
	t.Fatalf("no entry with key %q in %+v", key, entries)
	return model.Entry{}
}

// ---------------------------------------------------------------------------
// YAML
// ---------------------------------------------------------------------------

func TestYAML_NestedSpringConfig(t *testing.T) {
	raw := `
spring:
  jpa:
    hibernate:
      ddl-auto: create-drop
  profiles:
    active: dev
server:
  port: 8080
`
	entries := normalizeOk(t, model.FormatYAML, raw, "application.yml")

	e := findEntry(t, entries, "spring.jpa.hibernate.ddl-auto")
	if e.Value != "create-drop" {
		t.Errorf("expected create-drop, got %q", e.Value)
	}
	if findEntry(t, entries, "server.port").Value != "8080" {
		t.Error("number should stringify to its literal text")
	}
}

func TestYAML_MultiDocumentStream(t *testing.T) {
	raw := "spring:\n  profiles:\n    active: dev\n---\nserver:\n  port: 9090\n"
	entries := normalizeOk(t, model.FormatYAML, raw, "application.yml")
	findEntry(t, entries, "spring.profiles.active")
	findEntry(t, entries, "server.port")
}

func TestYAML_MalformedReturnsError(t *testing.T) {
	n, _ := ForFormat(model.FormatYAML)
	entries, err := n.Normalize([]byte("spring: [unclosed"), "broken.yml")
	if err == nil {
		t.Fatal("expected error for malformed YAML")
	}
	if len(entries) != 0 {
		t.Fatalf("malformed file must contribute zero entries, got %d", len(entries))
	}
}

// ---------------------------------------------------------------------------
// JSON
// ---------------------------------------------------------------------------

func TestJSON_PreservesKeyCasing(t *testing.T) {
	raw := `{"Logging": {"LogLevel": {"Default": "Debug"}}, "DetailedErrors": true}`
	entries := normalizeOk(t, model.FormatJSON, raw, "appsettings.json")

	findEntry(t, entries, "Logging.LogLevel.Default")
	if findEntry(t, entries, "DetailedErrors").Value != "true" {
		t.Error("expected stringified boolean")
	}
}

func TestJSON_NumbersKeepLiteralText(t *testing.T) {
	raw := `{"timeout": 30, "ratio": 0.5}`
	entries := normalizeOk(t, model.FormatJSON, raw, "config.json")
	if findEntry(t, entries, "timeout").Value != "30" {
		t.Error("integer literal mangled")
	}
	if findEntry(t, entries, "ratio").Value != "0.5" {
		t.Error("float literal mangled")
	}
}

func TestJSON_MalformedReturnsError(t *testing.T) {
	n, _ := ForFormat(model.FormatJSON)
	if _, err := n.Normalize([]byte("{not json"), "bad.json"); err == nil {
		t.Fatal("expected error for malformed JSON")
	}
}

// ---------------------------------------------------------------------------
// .properties
// ---------------------------------------------------------------------------

func TestProperties_SplitsOnFirstSeparator(t *testing.T) {
	raw := "# comment\n! also a comment\n\nspring.profiles.active = dev\nurl=jdbc:mysql://host/db\nname : value\n"
	entries := normalizeOk(t, model.FormatProperties, raw, "application.properties")

	e := findEntry(t, entries, "spring.profiles.active")
	if e.Value != "dev" {
		t.Errorf("expected dev, got %q", e.Value)
	}
	if e.Line != 4 {
		t.Errorf("expected 1-based line 4, got %d", e.Line)
	}
	// '=' comes before ':' here, so the jdbc URL stays intact.
	if findEntry(t, entries, "url").Value != "jdbc:mysql://host/db" {
		t.Error("split on the wrong separator")
	}
	if findEntry(t, entries, "name").Value != "value" {
		t.Error("colon separator not handled")
	}
}

func TestProperties_KeysAreLowercased(t *testing.T) {
	entries := normalizeOk(t, model.FormatProperties, "Server.Port=80\n", "app.properties")
	findEntry(t, entries, "server.port")
}

// ---------------------------------------------------------------------------
// .env
// ---------------------------------------------------------------------------

func TestEnv_KeyTransformAndQuotes(t *testing.T) {
	raw := "# secrets\nNODE_TLS_REJECT_UNAUTHORIZED=0\nAPP_NAME=\"my app\"\nTOKEN='abc'\nexport NODE_ENV=development\n"
	entries := normalizeOk(t, model.FormatEnv, raw, ".env")

	e := findEntry(t, entries, "node.tls.reject.unauthorized")
	if e.Value != "0" {
		t.Errorf("expected 0, got %q", e.Value)
	}
	if e.Line != 2 {
		t.Errorf("expected line 2, got %d", e.Line)
	}
	if findEntry(t, entries, "app.name").Value != "my app" {
		t.Error("double quotes not stripped")
	}
	if findEntry(t, entries, "token").Value != "abc" {
		t.Error("single quotes not stripped")
	}
	if findEntry(t, entries, "node.env").Value != "development" {
		t.Error("export prefix not handled")
	}
}

func TestEnv_OnlyOneQuoteLayerStripped(t *testing.T) {
	entries := normalizeOk(t, model.FormatEnv, `KEY=""quoted""`+"\n", ".env")
	if findEntry(t, entries, "key").Value != `"quoted"` {
		t.Error("expected exactly one quote layer stripped")
	}
}
