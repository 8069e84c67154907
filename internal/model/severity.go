package model

import (
	"fmt"
	"strings"
)

// Severity is an ordered rank used for display and pass/fail thresholding.
type Severity int

const (
	SeverityInfo Severity = iota
	SeverityLow
	SeverityMedium
	SeverityHigh
	SeverityCritical
)

// Severities lists every defined level in ascending order.
var Severities = []Severity{
	SeverityInfo,
	SeverityLow,
	SeverityMedium,
	SeverityHigh,
	SeverityCritical,
}

func (s Severity) String() string {
	switch s {
	case SeverityInfo:
		return "INFO"
	case SeverityLow:
		return "LOW"
	case SeverityMedium:
		return "MEDIUM"
	case SeverityHigh:
		return "HIGH"
	case SeverityCritical:
		return "CRITICAL"
	}
	return fmt.Sprintf("SEVERITY(%d)", int(s))
}

// AtLeast reports whether s is at or above the given threshold.
func (s Severity) AtLeast(threshold Severity) bool {
	return s >= threshold
}

// ParseSeverity converts a user-supplied name to a Severity. Unknown names
// are an input error and must be rejected before any scanning work begins.
func ParseSeverity(name string) (Severity, error) {
	switch strings.ToUpper(strings.TrimSpace(name)) {
	case "INFO":
		return SeverityInfo, nil
	case "LOW":
		return SeverityLow, nil
	case "MEDIUM":
		return SeverityMedium, nil
	case "HIGH":
		return SeverityHigh, nil
	case "CRITICAL":
		return SeverityCritical, nil
	}
	return SeverityInfo, fmt.Errorf("unknown severity %q (expected INFO, LOW, MEDIUM, HIGH, or CRITICAL)", name)
}

// MarshalText renders the severity name so JSON reports and histogram map
// keys stay human-readable.
func (s Severity) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

func (s *Severity) UnmarshalText(data []byte) error {
	sev, err := ParseSeverity(string(data))
	if err != nil {
		return err
	}
	*s = sev
	return nil
}
