package report

import (
	"encoding/json"
	"io"
)

// jsonDocument is the machine report envelope. The embedded Result already
// carries deterministic ordering, so byte-identical input scans produce
// byte-identical documents.
type jsonDocument struct {
	Tool    string `json:"tool"`
	Version string `json:"version"`
	*Result
}

// RenderJSON writes the machine-readable JSON report.
func RenderJSON(w io.Writer, res *Result, version string) error {
	doc := jsonDocument{Tool: "prod-analyzer", Version: version, Result: res}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(doc)
}
