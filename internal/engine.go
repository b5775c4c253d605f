package internal

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/gnolang/pycheck/internal/pyast"
	tt "github.com/gnolang/pycheck/internal/types"
)

// Engine runs every rule over a file and orders the result.
// It keeps no state between files and is safe for concurrent use.
type Engine struct {
	rules []LintRule
}

// NewEngine creates a new lint engine with the built-in rules.
func NewEngine() *Engine {
	return &Engine{
		rules: []LintRule{
			&LineRule{},
			&TreeRule{},
		},
	}
}

// Rules returns the names of the registered rules.
func (e *Engine) Rules() []string {
	names := make([]string, 0, len(e.rules))
	for _, r := range e.rules {
		names = append(names, r.Name())
	}
	return names
}

// Run reads, parses and checks the file at filename.
func (e *Engine) Run(ctx context.Context, filename string) (tt.FileReport, error) {
	content, err := os.ReadFile(filename)
	if err != nil {
		return tt.FileReport{}, fmt.Errorf("error reading file: %w", err)
	}
	return e.RunSource(ctx, filename, content)
}

// RunSource parses and checks source as if it were read from filename.
func (e *Engine) RunSource(ctx context.Context, filename string, source []byte) (tt.FileReport, error) {
	file, err := NewSourceFile(ctx, filename, source)
	if err != nil {
		return tt.FileReport{}, err
	}
	return e.Check(file), nil
}

// Check applies all rules to an already parsed file.
func (e *Engine) Check(file *SourceFile) tt.FileReport {
	var violations []tt.Violation
	for _, rule := range e.rules {
		violations = append(violations, rule.Check(file)...)
	}
	tt.SortViolations(violations)

	return tt.FileReport{
		Path:       file.Path,
		Violations: violations,
	}
}

// SourceFile is a file ready for analysis: its physical lines and its
// syntax tree.
type SourceFile struct {
	Path  string
	Lines []string
	Tree  *pyast.Module
}

// NewSourceFile splits and parses source. Parse failures are returned as
// errors wrapping a *pyast.SyntaxError.
func NewSourceFile(ctx context.Context, filename string, source []byte) (*SourceFile, error) {
	tree, err := pyast.Parse(ctx, source)
	if err != nil {
		return nil, fmt.Errorf("error parsing file: %w", err)
	}
	return &SourceFile{
		Path:  filename,
		Lines: SplitLines(string(source)),
		Tree:  tree,
	}, nil
}

// SourceCode stores the content of a source code file.
type SourceCode struct {
	Lines []string
}

// ReadSourceCode reads the content of a file and returns it as a `SourceCode` struct.
func ReadSourceCode(filename string) (*SourceCode, error) {
	content, err := os.ReadFile(filename)
	if err != nil {
		return nil, err
	}
	return &SourceCode{Lines: SplitLines(string(content))}, nil
}

// SplitLines splits text into physical lines without their terminators.
// "\n", "\r\n" and "\r" all end a line; a final terminator does not start
// an extra empty line.
func SplitLines(text string) []string {
	if text == "" {
		return nil
	}
	text = strings.ReplaceAll(text, "\r\n", "\n")
	text = strings.ReplaceAll(text, "\r", "\n")
	text = strings.TrimSuffix(text, "\n")
	return strings.Split(text, "\n")
}
