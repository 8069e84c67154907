package support

import (
	"encoding/json"
	"os"
	"path/filepath"
	"time"
)

// OutputDir is the directory under the scan root where machine artifacts
// (reports, audit trail) are written.
const OutputDir = ".prod-analyzer"

// AuditEntry is one line of the append-only scan audit trail.
type AuditEntry struct {
	TimestampUtc  string         `json:"timestampUtc"`
	Profile       string         `json:"profile"`
	Pass          bool           `json:"pass"`
	Threshold     string         `json:"threshold"`
	MaxSeverity   string         `json:"maxSeverity"`
	Counts        map[string]int `json:"counts"`
	FilesScanned  int            `json:"filesScanned"`
	PolicyApplied string         `json:"policyApplied,omitempty"`
}

// AppendAudit appends one JSON line per scan to <root>/.prod-analyzer/audit.log.
func AppendAudit(root string, entry AuditEntry) error {
	entry.TimestampUtc = time.Now().UTC().Format(time.RFC3339)
	path := filepath.Join(root, OutputDir, "audit.log")
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	f, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return err
	}
	defer f.Close()
	data, err := json.Marshal(entry)
	if err != nil {
		return err
	}
	_, err = f.Write(append(data, '\n'))
	return err
}
