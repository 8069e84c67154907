package model

// Violation is one detected instance of a rule or policy firing against a
// specific entry. Both engines produce this same shape; policy violations
// are distinguished only by their "POLICY:" rule-id prefix.
type Violation struct {
	RuleID      string   `json:"ruleId"`
	Severity    Severity `json:"severity"`
	Message     string   `json:"message"`
	FilePath    string   `json:"filePath"`
	ConfigKey   string   `json:"configKey"`
	ConfigValue string   `json:"configValue"`
	Line        int      `json:"line,omitempty"`
	Suggestion  string   `json:"suggestion,omitempty"`
}
