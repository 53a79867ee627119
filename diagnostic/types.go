package diagnostic

import "strings"

// Severity classifies how serious a diagnostic is.
type Severity int

const (
	SeverityError Severity = iota
	SeverityWarning
	SeverityInfo
	SeverityHint
)

// String renders the severity the way CLI output and formatted diagnostics
// expect to see it (upper case, as in compiler-style tooling).
func (s Severity) String() string {
	switch s {
	case SeverityError:
		return "ERROR"
	case SeverityWarning:
		return "WARNING"
	case SeverityInfo:
		return "INFO"
	case SeverityHint:
		return "HINT"
	default:
		return "UNKNOWN"
	}
}

// Position is a zero-indexed line/character location plus the byte offset
// it was computed from.
type Position struct {
	Line      int
	Character int
	Offset    int
}

// Range spans from Start up to (but not including) End.
type Range struct {
	Start Position
	End   Position
}

// Diagnostic is one reported issue: a code location, a severity, a short
// machine-readable code, and a human message.
type Diagnostic struct {
	Range    Range
	Severity Severity
	Code     string
	Message  string
}

// NewDiagnostic builds a Diagnostic from its parts.
func NewDiagnostic(r Range, severity Severity, code, message string) Diagnostic {
	return Diagnostic{Range: r, Severity: severity, Code: code, Message: message}
}

// PositionFromOffset converts a byte offset into source text into a
// zero-indexed line/character Position.
func PositionFromOffset(content string, offset int) Position {
	if offset < 0 {
		offset = 0
	}
	if offset > len(content) {
		offset = len(content)
	}

	line := strings.Count(content[:offset], "\n")
	lastNewline := strings.LastIndex(content[:offset], "\n")
	character := offset - lastNewline - 1

	return Position{Line: line, Character: character, Offset: offset}
}

// RangeFromOffsets builds a Range from a pair of byte offsets into content.
func RangeFromOffsets(content string, start, end int) Range {
	return Range{
		Start: PositionFromOffset(content, start),
		End:   PositionFromOffset(content, end),
	}
}
