package lints

import (
	"github.com/gnolang/pycheck/internal/pyast"
	tt "github.com/gnolang/pycheck/internal/types"
)

// ScanTree runs the naming and default value rules over a parsed module.
func ScanTree(m *pyast.Module) []tt.Violation {
	s := &treeScanner{}
	pyast.Walk(m, s)
	return s.violations
}

type treeScanner struct {
	violations []tt.Violation
}

func (s *treeScanner) report(code tt.Code, line int, detail string) {
	s.violations = append(s.violations, tt.NewViolation(code, line, detail))
}

func (s *treeScanner) VisitFuncDef(n *pyast.FuncDef) {
	if !IsSnakeCase(n.Name) {
		s.report(tt.FunctionSnakeCase, n.Line, n.Name)
	}
	for _, param := range n.Params {
		if !IsSnakeCase(param) {
			s.report(tt.ArgumentSnakeCase, n.Line, param)
		}
	}
	for _, def := range n.Defaults {
		if !def.Constant {
			s.report(tt.MutableDefault, n.Line, "")
		}
	}
}

func (s *treeScanner) VisitClassDef(n *pyast.ClassDef) {
	if !IsCamelCase(n.Name) {
		s.report(tt.ClassCamelCase, n.Line, n.Name)
	}
}

// VisitAttribute shares the argument rule code: attribute and parameter
// names form one category.
func (s *treeScanner) VisitAttribute(n *pyast.Attribute) {
	if !IsSnakeCase(n.Member) {
		s.report(tt.ArgumentSnakeCase, n.Line, n.Member)
	}
}

func (s *treeScanner) VisitAssign(n *pyast.Assign) {
	if n.Target == "" {
		return
	}
	if !IsSnakeCase(n.Target) {
		s.report(tt.VariableSnakeCase, n.Line, n.Target)
	}
}
