// Package normalize converts format-specific configuration files into the
// canonical flat entry sequence both rule engines consume.
//
// Every normalizer follows the same contract: raw file content in, zero or
// more entries out. A parse failure is reported as an error so the caller
// can log it, but it is never fatal for the scan; the failing file simply
// contributes zero entries.
package normalize

import (
	"github.com/onrcanogul/prod-analyzer/internal/model"
)

// Normalizer turns one file's raw content into canonical entries.
type Normalizer interface {
	Normalize(raw []byte, sourcePath string) ([]model.Entry, error)
}

// ForFormat returns the normalizer for a detected format. The boolean is
// false for formats the scanner does not understand.
func ForFormat(f model.Format) (Normalizer, bool) {
	switch f {
	case model.FormatYAML:
		return yamlNormalizer{}, true
	case model.FormatJSON:
		return jsonNormalizer{}, true
	case model.FormatProperties:
		return propertiesNormalizer{}, true
	case model.FormatEnv:
		return envNormalizer{}, true
	}
	return nil, false
}
