package normalize

import (
	"strings"

	"github.com/onrcanogul/prod-analyzer/internal/model"
	"github.com/onrcanogul/prod-analyzer/internal/support"
)

// propertiesNormalizer handles Java .properties files: one key per line,
// split on the first '=' or ':', '#' and '!' comments. Line numbers are
// 1-based and preserved for diagnostics.
type propertiesNormalizer struct{}

func (propertiesNormalizer) Normalize(raw []byte, sourcePath string) ([]model.Entry, error) {
	var entries []model.Entry
	lines := strings.Split(string(support.StripBOM(raw)), "\n")
	for i, line := range lines {
		line = strings.TrimSpace(strings.TrimSuffix(line, "\r"))
		if line == "" || strings.HasPrefix(line, "#") || strings.HasPrefix(line, "!") {
			continue
		}
		key, value, ok := splitProperty(line)
		if !ok {
			continue
		}
		entries = append(entries, model.Entry{
			Key:        strings.ToLower(key),
			Value:      value,
			SourceFile: sourcePath,
			Line:       i + 1,
		})
	}
	return entries, nil
}

// splitProperty splits on whichever of '=' or ':' appears first.
func splitProperty(line string) (key, value string, ok bool) {
	eq := strings.Index(line, "=")
	colon := strings.Index(line, ":")
	sep := eq
	if sep < 0 || (colon >= 0 && colon < sep) {
		sep = colon
	}
	if sep < 0 {
		return "", "", false
	}
	key = strings.TrimSpace(line[:sep])
	value = strings.TrimSpace(line[sep+1:])
	if key == "" {
		return "", "", false
	}
	return key, value, true
}
