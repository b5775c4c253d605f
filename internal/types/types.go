package types

import (
	"fmt"
	"sort"
)

// Code identifies a style rule. The string value is the stable rule
// identifier printed in reports.
type Code string

const (
	TooLong             Code = "S001"
	Indentation         Code = "S002"
	Semicolon           Code = "S003"
	InlineCommentSpaces Code = "S004"
	Todo                Code = "S005"
	BlankLines          Code = "S006"
	ConstructorSpaces   Code = "S007"
	ClassCamelCase      Code = "S008"
	FunctionSnakeCase   Code = "S009"
	ArgumentSnakeCase   Code = "S010"
	VariableSnakeCase   Code = "S011"
	MutableDefault      Code = "S012"
)

// AllCodes lists every rule code in identifier order.
var AllCodes = []Code{
	TooLong,
	Indentation,
	Semicolon,
	InlineCommentSpaces,
	Todo,
	BlankLines,
	ConstructorSpaces,
	ClassCamelCase,
	FunctionSnakeCase,
	ArgumentSnakeCase,
	VariableSnakeCase,
	MutableDefault,
}

// messageTemplates holds the fixed message for each code. Templates with
// a %s verb are interpolated with the violation detail.
var messageTemplates = map[Code]string{
	TooLong:             "Too long",
	Indentation:         "Indentation is not a multiple of four",
	Semicolon:           "Unnecessary semicolon after a statement",
	InlineCommentSpaces: "Less than two spaces before inline comments",
	Todo:                "TODO found",
	BlankLines:          "More than two blank lines preceding a code line",
	ConstructorSpaces:   "Too many spaces after '%s'",
	ClassCamelCase:      "Class name '%s' should be written in CamelCase",
	FunctionSnakeCase:   "Function name '%s' should be written in snake_case",
	ArgumentSnakeCase:   "Argument name %s should be written in snake_case",
	VariableSnakeCase:   "Variable %s should be written in snake_case",
	MutableDefault:      "The default argument value is mutable",
}

// HasDetail reports whether messages for the code name an identifier.
func (c Code) HasDetail() bool {
	switch c {
	case ConstructorSpaces, ClassCamelCase, FunctionSnakeCase, ArgumentSnakeCase, VariableSnakeCase:
		return true
	}
	return false
}

// Template returns the raw message template for the code.
func (c Code) Template() string {
	return messageTemplates[c]
}

// Violation is a single style issue found in a file.
type Violation struct {
	Code   Code   `json:"code"`
	Line   int    `json:"line"`
	Detail string `json:"detail,omitempty"`
}

// NewViolation creates a violation at the given 1-based line.
func NewViolation(code Code, line int, detail string) Violation {
	if line < 1 {
		line = 1
	}
	return Violation{Code: code, Line: line, Detail: detail}
}

// Message renders the human readable message of the violation.
func (v Violation) Message() string {
	tmpl, ok := messageTemplates[v.Code]
	if !ok {
		return "Unknown rule"
	}
	if v.Code.HasDetail() {
		return fmt.Sprintf(tmpl, v.Detail)
	}
	return tmpl
}

// String renders the violation as "Line <line>: <code> <message>".
func (v Violation) String() string {
	return fmt.Sprintf("Line %d: %s %s", v.Line, v.Code, v.Message())
}

// Compare orders violations by line, then by rule code.
// It returns -1, 0 or +1.
func Compare(a, b Violation) int {
	switch {
	case a.Line < b.Line:
		return -1
	case a.Line > b.Line:
		return 1
	case a.Code < b.Code:
		return -1
	case a.Code > b.Code:
		return 1
	}
	return 0
}

// SortViolations sorts violations in report order. Violations that compare
// equal keep their insertion order.
func SortViolations(vs []Violation) {
	sort.SliceStable(vs, func(i, j int) bool {
		return Compare(vs[i], vs[j]) < 0
	})
}

// FileReport holds the violations found in one file, in report order.
type FileReport struct {
	Path       string      `json:"path"`
	Violations []Violation `json:"violations"`
}

// AnalysisRun collects the outcome of one run over many files. A file
// either has a report or a failure, never both.
type AnalysisRun struct {
	Reports  map[string]FileReport
	Failures map[string]error
}

// NewAnalysisRun creates an empty run.
func NewAnalysisRun() *AnalysisRun {
	return &AnalysisRun{
		Reports:  make(map[string]FileReport),
		Failures: make(map[string]error),
	}
}

// Add records the report of a successfully analyzed file.
func (r *AnalysisRun) Add(report FileReport) {
	delete(r.Failures, report.Path)
	r.Reports[report.Path] = report
}

// Fail records a file-scoped failure.
func (r *AnalysisRun) Fail(path string, err error) {
	delete(r.Reports, path)
	r.Failures[path] = err
}

// Paths returns the paths of analyzed files in ascending order.
func (r *AnalysisRun) Paths() []string {
	return sortedKeys(r.Reports)
}

// FailedPaths returns the paths of failed files in ascending order.
func (r *AnalysisRun) FailedPaths() []string {
	return sortedKeys(r.Failures)
}

// ViolationCount returns the number of violations across all files.
func (r *AnalysisRun) ViolationCount() int {
	n := 0
	for _, report := range r.Reports {
		n += len(report.Violations)
	}
	return n
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
