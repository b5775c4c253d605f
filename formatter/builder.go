package formatter

import (
	"bytes"
	"fmt"
	"strings"
	"text/template"

	"github.com/fatih/color"

	"github.com/gnolang/pycheck/internal"
	tt "github.com/gnolang/pycheck/internal/types"
)

const tabWidth = 8

var (
	errorStyle   = color.New(color.FgRed, color.Bold)
	warningStyle = color.New(color.FgHiYellow, color.Bold)
	ruleStyle    = color.New(color.FgYellow, color.Bold)
	fileStyle    = color.New(color.FgCyan, color.Bold)
	lineStyle    = color.New(color.FgHiBlue, color.Bold)
	messageStyle = color.New(color.FgRed, color.Bold)
)

const violationTemplate = `{{header .Code .MaxLineNumWidth .Filename .Line}}
{{snippet .SourceLine .Line .MaxLineNumWidth .Padding}}
{{message .Message .Padding}}
`

var violationTmpl = template.Must(template.New("violation").Funcs(template.FuncMap{
	"header":  header,
	"snippet": codeSnippet,
	"message": message,
}).Parse(violationTemplate))

/***** Violation Formatter Builder *****/

type ViolationData struct {
	Code            tt.Code
	Filename        string
	Line            int
	Message         string
	SourceLine      string
	MaxLineNumWidth int
	Padding         string
}

// GeneratePrettyReport renders every violation of report with the
// offending source line. snippet may be nil when the source is unavailable.
func GeneratePrettyReport(report tt.FileReport, snippet *internal.SourceCode) string {
	var builder strings.Builder
	for _, v := range report.Violations {
		builder.WriteString(buildViolation(report.Path, v, snippet))
	}
	return builder.String()
}

func buildViolation(filename string, v tt.Violation, snippet *internal.SourceCode) string {
	maxLineNumWidth := calculateMaxLineNumWidth(v.Line)

	var sourceLine string
	if snippet != nil && v.Line <= len(snippet.Lines) {
		sourceLine = snippet.Lines[v.Line-1]
	}

	data := ViolationData{
		Code:            v.Code,
		Filename:        filename,
		Line:            v.Line,
		Message:         v.Message(),
		SourceLine:      expandTabs(sourceLine),
		MaxLineNumWidth: maxLineNumWidth,
		Padding:         strings.Repeat(" ", maxLineNumWidth+1),
	}

	var buf bytes.Buffer
	if err := violationTmpl.Execute(&buf, data); err != nil {
		return fmt.Sprintf("Error formatting violation: %v\n", err)
	}
	return buf.String()
}

// utils functions used in the text templates

func header(code tt.Code, maxLineNumWidth int, filename string, line int) string {
	endString := warningStyle.Sprint("warning: ")
	endString += ruleStyle.Sprintf("%s\n", code)

	padding := strings.Repeat(" ", maxLineNumWidth)
	endString += lineStyle.Sprintf("%s--> ", padding)
	endString += fileStyle.Sprintf("%s:%d", filename, line)
	return endString
}

func codeSnippet(sourceLine string, line int, maxLineNumWidth int, padding string) string {
	endString := lineStyle.Sprintf("%s|\n", padding)
	lineNum := fmt.Sprintf("%*d", maxLineNumWidth, line)
	endString += lineStyle.Sprintf("%s | ", lineNum)
	endString += sourceLine
	return endString
}

func message(msg string, padding string) string {
	return lineStyle.Sprintf("%s= ", padding) + messageStyle.Sprintf("%s\n", msg)
}

func calculateMaxLineNumWidth(line int) int {
	return len(fmt.Sprintf("%d", line))
}

// expandTabs replaces tabs with spaces up to the next tab stop.
func expandTabs(line string) string {
	if !strings.Contains(line, "\t") {
		return line
	}
	var b strings.Builder
	col := 0
	for _, ch := range line {
		if ch == '\t' {
			n := tabWidth - (col % tabWidth)
			b.WriteString(strings.Repeat(" ", n))
			col += n
			continue
		}
		b.WriteRune(ch)
		col++
	}
	return b.String()
}
