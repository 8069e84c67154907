package normalize

import (
	"strings"

	"github.com/onrcanogul/prod-analyzer/internal/model"
	"github.com/onrcanogul/prod-analyzer/internal/support"
)

// envNormalizer handles shell-style .env files. Keys fold to the canonical
// form by lowercasing and replacing underscores with dots, so
// NODE_TLS_REJECT_UNAUTHORIZED lands on node.tls.reject.unauthorized and
// matches the same rules a YAML spelling would.
type envNormalizer struct{}

func (envNormalizer) Normalize(raw []byte, sourcePath string) ([]model.Entry, error) {
	var entries []model.Entry
	lines := strings.Split(string(support.StripBOM(raw)), "\n")
	for i, line := range lines {
		line = strings.TrimSpace(strings.TrimSuffix(line, "\r"))
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		line = strings.TrimPrefix(line, "export ")
		key, value, found := strings.Cut(line, "=")
		if !found {
			continue
		}
		key = strings.TrimSpace(key)
		if key == "" {
			continue
		}
		entries = append(entries, model.Entry{
			Key:        envKey(key),
			Value:      unquote(strings.TrimSpace(value)),
			SourceFile: sourcePath,
			Line:       i + 1,
		})
	}
	return entries, nil
}

func envKey(key string) string {
	return strings.ReplaceAll(strings.ToLower(key), "_", ".")
}

// unquote strips one layer of matching single or double quotes.
func unquote(v string) string {
	if len(v) >= 2 {
		first, last := v[0], v[len(v)-1]
		if first == last && (first == '"' || first == '\'') {
			return v[1 : len(v)-1]
		}
	}
	return v
}
