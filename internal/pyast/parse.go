package pyast

import (
	"context"
	"fmt"
	"strings"

	sitter "github.com/smacker/go-tree-sitter"
	"github.com/smacker/go-tree-sitter/python"
)

// SyntaxError reports source that could not be parsed.
type SyntaxError struct {
	Line   int
	Column int
	// Missing is set when the parser expected a token that is absent.
	Missing string
}

func (e *SyntaxError) Error() string {
	if e.Missing != "" {
		return fmt.Sprintf("invalid syntax at line %d, column %d: missing %q", e.Line, e.Column, e.Missing)
	}
	return fmt.Sprintf("invalid syntax at line %d, column %d", e.Line, e.Column)
}

// Parse parses Python source and extracts the typed nodes.
// A *SyntaxError is returned for malformed source.
func Parse(ctx context.Context, src []byte) (*Module, error) {
	parser := sitter.NewParser()
	defer parser.Close()
	parser.SetLanguage(python.GetLanguage())

	tree, err := parser.ParseCtx(ctx, nil, src)
	if err != nil {
		return nil, fmt.Errorf("error parsing source: %w", err)
	}
	defer tree.Close()

	root := tree.RootNode()
	if root.HasError() {
		return nil, syntaxError(root)
	}

	m := &Module{}
	collect(root, "", src, &m.Nodes)
	return m, nil
}

func collect(n *sitter.Node, parentType string, src []byte, out *[]Node) {
	switch n.Type() {
	case "function_definition":
		*out = append(*out, newFuncDef(n, src))
	case "class_definition":
		*out = append(*out, &ClassDef{
			Name: fieldContent(n, "name", src),
			Line: lineOf(n),
		})
	case "attribute":
		*out = append(*out, &Attribute{
			Member: fieldContent(n, "attribute", src),
			Line:   lineOf(n),
		})
	case "assignment":
		// nested assignments are the tail of a chain like `a = b = 1`
		if parentType == "expression_statement" && n.ChildByFieldName("type") == nil {
			*out = append(*out, newAssign(n, src))
		}
	}

	typ := n.Type()
	for i := 0; i < int(n.NamedChildCount()); i++ {
		collect(n.NamedChild(i), typ, src, out)
	}
}

func newFuncDef(n *sitter.Node, src []byte) *FuncDef {
	fn := &FuncDef{
		Name: fieldContent(n, "name", src),
		Line: lineOf(n),
	}

	params := n.ChildByFieldName("parameters")
	if params == nil {
		return fn
	}

	keywordOnly := false
	for i := 0; i < int(params.NamedChildCount()); i++ {
		p := params.NamedChild(i)
		switch p.Type() {
		case "identifier":
			if !keywordOnly {
				fn.Params = append(fn.Params, p.Content(src))
			}
		case "typed_parameter":
			inner := p.NamedChild(0)
			if inner == nil {
				continue
			}
			switch inner.Type() {
			case "identifier":
				if !keywordOnly {
					fn.Params = append(fn.Params, inner.Content(src))
				}
			case "list_splat_pattern":
				keywordOnly = true
			}
		case "default_parameter", "typed_default_parameter":
			if keywordOnly {
				continue
			}
			if name := p.ChildByFieldName("name"); name != nil && name.Type() == "identifier" {
				fn.Params = append(fn.Params, name.Content(src))
			}
			if value := p.ChildByFieldName("value"); value != nil {
				fn.Defaults = append(fn.Defaults, Default{
					Kind:     value.Type(),
					Constant: isConstant(value, src),
				})
			}
		case "positional_separator":
			// everything declared so far is positional-only
			fn.Params = nil
		case "keyword_separator", "list_splat_pattern":
			keywordOnly = true
		}
	}
	return fn
}

func newAssign(n *sitter.Node, src []byte) *Assign {
	a := &Assign{Line: lineOf(n)}
	if left := n.ChildByFieldName("left"); left != nil && left.Type() == "identifier" {
		a.Target = left.Content(src)
	}
	return a
}

// isConstant reports whether a default value expression is a literal constant.
func isConstant(n *sitter.Node, src []byte) bool {
	switch n.Type() {
	case "integer", "float", "true", "false", "none", "ellipsis":
		return true
	case "string":
		return !isFormatString(n, src)
	case "concatenated_string":
		for i := 0; i < int(n.NamedChildCount()); i++ {
			if !isConstant(n.NamedChild(i), src) {
				return false
			}
		}
		return true
	case "unary_operator":
		arg := n.ChildByFieldName("argument")
		if arg == nil {
			return false
		}
		op := fieldContent(n, "operator", src)
		return (op == "-" || op == "+") && (arg.Type() == "integer" || arg.Type() == "float")
	case "parenthesized_expression":
		if n.NamedChildCount() == 1 {
			return isConstant(n.NamedChild(0), src)
		}
	}
	return false
}

func isFormatString(n *sitter.Node, src []byte) bool {
	for i := 0; i < int(n.ChildCount()); i++ {
		c := n.Child(i)
		switch c.Type() {
		case "interpolation":
			return true
		case "string_start":
			if strings.ContainsAny(c.Content(src), "fF") {
				return true
			}
		}
	}
	return false
}

// syntaxError locates the first error or missing node below n.
func syntaxError(n *sitter.Node) *SyntaxError {
	if bad := firstErrorNode(n); bad != nil {
		n = bad
	}
	pt := n.StartPoint()
	err := &SyntaxError{
		Line:   int(pt.Row) + 1,
		Column: int(pt.Column) + 1,
	}
	if n.IsMissing() {
		err.Missing = n.Type()
	}
	return err
}

func firstErrorNode(n *sitter.Node) *sitter.Node {
	if n.IsError() || n.IsMissing() {
		return n
	}
	if !n.HasError() {
		return nil
	}
	for i := 0; i < int(n.ChildCount()); i++ {
		if bad := firstErrorNode(n.Child(i)); bad != nil {
			return bad
		}
	}
	return nil
}

func fieldContent(n *sitter.Node, field string, src []byte) string {
	if c := n.ChildByFieldName(field); c != nil {
		return c.Content(src)
	}
	return ""
}

func lineOf(n *sitter.Node) int {
	return int(n.StartPoint().Row) + 1
}
