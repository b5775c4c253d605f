package internal

import (
	"github.com/gnolang/pycheck/internal/lints"
	tt "github.com/gnolang/pycheck/internal/types"
)

/*
* Each detector family is a separate rule
 */

// LintRule defines the interface for all lint rules.
type LintRule interface {
	// Check runs the lint rule on the given file and returns its violations.
	Check(file *SourceFile) []tt.Violation

	// Name returns the name of the lint rule.
	Name() string
}

// LineRule runs the text level checks (S001-S007).
type LineRule struct{}

func (r *LineRule) Check(file *SourceFile) []tt.Violation {
	return lints.ScanLines(file.Lines)
}

func (r *LineRule) Name() string {
	return "line-style"
}

// TreeRule runs the syntax tree checks (S008-S012).
type TreeRule struct{}

func (r *TreeRule) Check(file *SourceFile) []tt.Violation {
	if file.Tree == nil {
		return nil
	}
	return lints.ScanTree(file.Tree)
}

func (r *TreeRule) Name() string {
	return "naming"
}
