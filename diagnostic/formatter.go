package diagnostic

import (
	"fmt"
	"strings"
)

// Formatter renders a Diagnostic as human-readable CLI text, in the style
// of a compiler pointing at the offending source span.
type Formatter struct {
	ShowSource      bool
	ShowCodeContext bool
}

// NewFormatter returns a Formatter with both display options enabled.
func NewFormatter() *Formatter {
	return &Formatter{ShowSource: true, ShowCodeContext: true}
}

// Format renders diag against content, prefixed with filename.
func (f *Formatter) Format(diag Diagnostic, filename, content string) string {
	var b strings.Builder

	fmt.Fprintf(&b, "%s:%d:%d: %s [%s]: %s\n",
		filename, diag.Range.Start.Line+1, diag.Range.Start.Character+1,
		diag.Severity, diag.Code, diag.Message)

	if !f.ShowCodeContext {
		return strings.TrimRight(b.String(), "\n")
	}

	lines := strings.Split(content, "\n")
	line := diag.Range.Start.Line
	if line < 0 || line >= len(lines) {
		return strings.TrimRight(b.String(), "\n")
	}

	fmt.Fprintf(&b, "  → %d | %s\n", line+1, lines[line])

	underlineWidth := diag.Range.End.Character - diag.Range.Start.Character
	if diag.Range.End.Line != diag.Range.Start.Line || underlineWidth <= 0 {
		underlineWidth = 1
	}
	gutter := fmt.Sprintf("  %d | ", line+1)
	b.WriteString(strings.Repeat(" ", len(gutter)+diag.Range.Start.Character))
	b.WriteString(strings.Repeat("~", underlineWidth))
	b.WriteString("\n")

	return strings.TrimRight(b.String(), "\n")
}
