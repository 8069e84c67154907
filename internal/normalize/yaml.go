package normalize

import (
	"bytes"
	"errors"
	"fmt"
	"io"

	"gopkg.in/yaml.v3"

	"github.com/onrcanogul/prod-analyzer/internal/model"
	"github.com/onrcanogul/prod-analyzer/internal/support"
)

// yamlNormalizer flattens YAML documents. Spring-style files often hold
// several documents separated by ---, so the whole stream is decoded; a
// malformed document anywhere voids the entire file.
type yamlNormalizer struct{}

func (yamlNormalizer) Normalize(raw []byte, sourcePath string) ([]model.Entry, error) {
	var entries []model.Entry
	dec := yaml.NewDecoder(bytes.NewReader(support.StripBOM(raw)))
	for {
		var doc interface{}
		err := dec.Decode(&doc)
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("malformed YAML: %w", err)
		}
		flattenTree("", doc, sourcePath, true, &entries)
	}
	return entries, nil
}
