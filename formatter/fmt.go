package formatter

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/gnolang/pycheck/internal"
	tt "github.com/gnolang/pycheck/internal/types"
)

// Format selects how a run is rendered.
type Format string

const (
	FormatText   Format = "text"
	FormatJSON   Format = "json"
	FormatPretty Format = "pretty"
)

// ParseFormat validates a format name.
func ParseFormat(name string) (Format, error) {
	switch f := Format(name); f {
	case FormatText, FormatJSON, FormatPretty:
		return f, nil
	}
	return "", fmt.Errorf("unknown output format %q", name)
}

// Write renders the violations of run to w in ascending path order.
func Write(w io.Writer, run *tt.AnalysisRun, format Format) error {
	switch format {
	case FormatJSON:
		return WriteJSON(w, run)
	case FormatPretty:
		return WritePretty(w, run)
	default:
		return WriteText(w, run)
	}
}

// WriteText writes one line per violation:
//
//	<path>: Line <line>: <code> <message>
func WriteText(w io.Writer, run *tt.AnalysisRun) error {
	for _, path := range run.Paths() {
		for _, v := range run.Reports[path].Violations {
			_, err := fmt.Fprintf(w, "%s Line %d: %s %s\n",
				fileStyle.Sprintf("%s:", path), v.Line, ruleStyle.Sprint(v.Code), v.Message())
			if err != nil {
				return err
			}
		}
	}
	return nil
}

// WritePretty writes every violation with its source line.
func WritePretty(w io.Writer, run *tt.AnalysisRun) error {
	for _, path := range run.Paths() {
		report := run.Reports[path]
		if len(report.Violations) == 0 {
			continue
		}
		// the file was readable moments ago; fall back to no snippet if not
		sourceCode, _ := internal.ReadSourceCode(path)
		if _, err := fmt.Fprintln(w, GeneratePrettyReport(report, sourceCode)); err != nil {
			return err
		}
	}
	return nil
}

// WriteFailures writes one line per file-scoped failure:
//
//	<path>: error: <message>
func WriteFailures(w io.Writer, run *tt.AnalysisRun) error {
	for _, path := range run.FailedPaths() {
		_, err := fmt.Fprintf(w, "%s %s%v\n", fileStyle.Sprintf("%s:", path), errorStyle.Sprint("error: "), run.Failures[path])
		if err != nil {
			return err
		}
	}
	return nil
}

type jsonViolation struct {
	Code    tt.Code `json:"code"`
	Line    int     `json:"line"`
	Detail  string  `json:"detail,omitempty"`
	Message string  `json:"message"`
}

type jsonFile struct {
	Path       string          `json:"path"`
	Violations []jsonViolation `json:"violations"`
}

type jsonFailure struct {
	Path  string `json:"path"`
	Error string `json:"error"`
}

type jsonReport struct {
	Files    []jsonFile    `json:"files"`
	Failures []jsonFailure `json:"failures,omitempty"`
}

// WriteJSON writes the whole run, failures included, as one JSON document.
func WriteJSON(w io.Writer, run *tt.AnalysisRun) error {
	out := jsonReport{Files: []jsonFile{}}
	for _, path := range run.Paths() {
		file := jsonFile{Path: path, Violations: []jsonViolation{}}
		for _, v := range run.Reports[path].Violations {
			file.Violations = append(file.Violations, jsonViolation{
				Code:    v.Code,
				Line:    v.Line,
				Detail:  v.Detail,
				Message: v.Message(),
			})
		}
		out.Files = append(out.Files, file)
	}
	for _, path := range run.FailedPaths() {
		out.Failures = append(out.Failures, jsonFailure{Path: path, Error: run.Failures[path].Error()})
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(out)
}
