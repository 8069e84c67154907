package normalize

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/onrcanogul/prod-analyzer/internal/model"
	"github.com/onrcanogul/prod-analyzer/internal/support"
)

// jsonNormalizer flattens JSON configuration files. Unlike every other
// normalizer it preserves key casing: .NET reads appsettings keys
// case-sensitively, and folding them would make violations unmappable back
// to the source.
type jsonNormalizer struct{}

func (jsonNormalizer) Normalize(raw []byte, sourcePath string) ([]model.Entry, error) {
	dec := json.NewDecoder(bytes.NewReader(support.StripBOM(raw)))
	dec.UseNumber() // keep numeric literals byte-for-byte

	var doc interface{}
	if err := dec.Decode(&doc); err != nil {
		return nil, fmt.Errorf("malformed JSON: %w", err)
	}

	var entries []model.Entry
	flattenTree("", doc, sourcePath, false, &entries)
	return entries, nil
}
