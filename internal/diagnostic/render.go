package diagnostic

import (
	"fmt"
	"strings"

	"github.com/fatih/color"

	"lak/internal/source"
)

var (
	colorError   = color.New(color.FgRed, color.Bold)
	colorWarning = color.New(color.FgYellow, color.Bold)
	colorGrey    = color.New(color.FgHiBlack)
	colorHint    = color.New(color.FgYellow)
)

func severityColor(s Severity) *color.Color {
	if s == SeverityWarning {
		return colorWarning
	}
	return colorError
}

// Render formats one Diagnostic as a multi-line report: a header
// naming the phase and message, the file:line:column, a source
// snippet with an underline beneath the offending span, and any hint
// (spec §4.6). primaryFile/primaryText back the diagnostic unless the
// Diagnostic overrides them with its own File/Text (an error surfaced
// from an imported file).
func Render(primaryFile string, primaryText []byte, d Diagnostic) string {
	path, text := primaryFile, primaryText
	if d.File != "" {
		path, text = d.File, d.Text
	}

	c := severityColor(d.Severity)
	var b strings.Builder

	label := "Error"
	if d.Severity == SeverityWarning {
		label = "Warning"
	}
	fmt.Fprintf(&b, "%s", c.Sprintf("[%s while %s]: ", label, d.Phase))
	fmt.Fprintln(&b, d.Message)

	if !d.HasSpan || len(text) == 0 {
		colorGrey.Fprintf(&b, "--> %s\n", path)
		if d.Help != "" {
			colorHint.Fprintf(&b, "  hint: %s\n", d.Help)
		}
		return b.String()
	}

	snippet, underline, ok := renderSnippet(text, d.Span)
	colorGrey.Fprintf(&b, "--> [%s:%d:%d]\n", path, d.Span.Line, d.Span.Column)
	if !ok {
		if d.Help != "" {
			colorHint.Fprintf(&b, "  hint: %s\n", d.Help)
		}
		return b.String()
	}

	b.WriteString(snippet)
	b.WriteString(c.Sprint(underline))
	if d.Help != "" {
		b.WriteString(" ")
		colorHint.Fprintln(&b, d.Help)
	} else {
		b.WriteString("\n")
	}
	return b.String()
}

// renderSnippet reproduces the teacher's bar/line-number/underline
// layout using byte-indexed spans instead of the teacher's row/column
// source.Location.
func renderSnippet(text []byte, span source.Span) (snippet, underline string, ok bool) {
	defer func() {
		if r := recover(); r != nil {
			ok = false
		}
	}()

	file := &source.File{Text: text}
	line := file.Line(span.Line)

	width := span.EndByte - span.StartByte
	if width < 1 {
		width = 1
	}

	lineNumber := fmt.Sprintf("%d | ", span.Line)
	bar := fmt.Sprintf("%s|", strings.Repeat(" ", len(lineNumber)-1))

	var b strings.Builder
	colorGrey.Fprintln(&b, bar)
	colorGrey.Fprint(&b, lineNumber)
	b.WriteString(line)
	b.WriteString("\n")
	colorGrey.Fprint(&b, bar)
	b.WriteString("\n")

	padding := strings.Repeat(" ", len(lineNumber)+span.Column-1)
	underline = padding + "^" + strings.Repeat("~", width-1)

	return b.String(), underline, true
}
