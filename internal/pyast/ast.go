package pyast

// Node is one of FuncDef, ClassDef, Attribute or Assign.
type Node interface {
	// StartLine returns the 1-based source line of the node.
	StartLine() int
	node()
}

// Module is the parsed form of one source file.
type Module struct {
	Nodes []Node
}

// FuncDef is a `def` or `async def` statement.
type FuncDef struct {
	Name string
	// Params holds the positional parameter names, excluding
	// positional-only parameters declared before a `/` separator.
	Params []string
	// Defaults holds the default values of positional and
	// positional-only parameters, in declaration order.
	Defaults []Default
	Line     int
}

// Default describes a parameter default value.
type Default struct {
	// Kind is the grammar node type of the expression, e.g. "list" or "integer".
	Kind     string
	Constant bool
}

// ClassDef is a `class` statement.
type ClassDef struct {
	Name string
	Line int
}

// Attribute is an `object.member` expression, read or written.
type Attribute struct {
	Member string
	Line   int
}

// Assign is a plain `=` statement. Target is empty when the first target
// is not a bare name (subscript, attribute, tuple unpacking).
type Assign struct {
	Target string
	Line   int
}

func (n *FuncDef) StartLine() int   { return n.Line }
func (n *ClassDef) StartLine() int  { return n.Line }
func (n *Attribute) StartLine() int { return n.Line }
func (n *Assign) StartLine() int    { return n.Line }

func (*FuncDef) node()   {}
func (*ClassDef) node()  {}
func (*Attribute) node() {}
func (*Assign) node()    {}

// Visitor receives the nodes of a module by kind.
type Visitor interface {
	VisitFuncDef(n *FuncDef)
	VisitClassDef(n *ClassDef)
	VisitAttribute(n *Attribute)
	VisitAssign(n *Assign)
}

// Walk calls the matching Visitor method once for every node of m.
func Walk(m *Module, v Visitor) {
	if m == nil {
		return
	}
	for _, n := range m.Nodes {
		switch n := n.(type) {
		case *FuncDef:
			v.VisitFuncDef(n)
		case *ClassDef:
			v.VisitClassDef(n)
		case *Attribute:
			v.VisitAttribute(n)
		case *Assign:
			v.VisitAssign(n)
		}
	}
}
