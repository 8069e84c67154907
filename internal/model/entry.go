// Package model holds the shared value types of the scan pipeline: the
// canonical configuration entry, the violation produced by rule evaluation,
// and the severity/platform enums both engines agree on.
package model

// Entry is one flattened configuration setting, format-independent.
//
// Keys are lowercase dot-notation regardless of source format (nested
// objects flatten to a.b.c, array elements to a.b[0], UPPER_SNAKE env keys
// to upper.snake). The one exception is JSON, whose normalizer preserves
// source casing because .NET configuration keys are case-sensitive. Values
// are always strings; source-format type information is discarded.
//
// Line is 1-based and 0 when the source format cannot attribute a line.
type Entry struct {
	Key        string
	Value      string
	SourceFile string
	Line       int
}
