package ast

// Node is the base interface for all AST nodes.
// Every node knows the source line it came from (-1 for built-ins).
type Node interface {
	Line() int
}

// Member is a Node declared directly inside a class body: a Field or a Method.
type Member interface {
	Node
	memberNode()
	MemberName() string
}

// Statement is a Node that can appear in a method body.
type Statement interface {
	Node
	statementNode()
}

// Expression is a Node that produces a value.
// The resolved type slot starts empty and is written by the type checker.
type Expression interface {
	Node
	expressionNode()
	ExprType() string
	SetExprType(typ string)
}

// Program is the root node of every AST handed to the analyzer.
type Program struct {
	Classes []*Class
}

func (p *Program) Line() int {
	if len(p.Classes) > 0 {
		return p.Classes[0].Line()
	}
	return 0
}

// Class is a class declaration.
// class Name extends Parent { members }
type Class struct {
	LineNum  int
	Filename string // Source file the declaration came from
	Name     string
	Parent   string // Empty only for Object
	Members  []Member
}

func (c *Class) Line() int { return c.LineNum }

// Fields returns the fields declared directly on the class, in order.
func (c *Class) Fields() []*Field {
	var fields []*Field
	for _, m := range c.Members {
		if f, ok := m.(*Field); ok {
			fields = append(fields, f)
		}
	}
	return fields
}

// Methods returns the methods declared directly on the class, in order.
func (c *Class) Methods() []*Method {
	var methods []*Method
	for _, m := range c.Members {
		if md, ok := m.(*Method); ok {
			methods = append(methods, md)
		}
	}
	return methods
}

// Field is a field declaration with an optional initializer.
// Type name [= init];
type Field struct {
	LineNum int
	Type    string
	Name    string
	Init    Expression // Optional
}

func (f *Field) Line() int          { return f.LineNum }
func (f *Field) memberNode()        {}
func (f *Field) MemberName() string { return f.Name }

// Method is a method declaration.
// ReturnType name(formals) { body }
type Method struct {
	LineNum    int
	ReturnType string
	Name       string
	Formals    []*Formal
	Body       []Statement
}

func (m *Method) Line() int          { return m.LineNum }
func (m *Method) memberNode()        {}
func (m *Method) MemberName() string { return m.Name }

// FormalTypes returns the declared types of the formal parameters, in order.
func (m *Method) FormalTypes() []string {
	types := make([]string, 0, len(m.Formals))
	for _, f := range m.Formals {
		types = append(types, f.Type)
	}
	return types
}

// Formal is a formal parameter.
type Formal struct {
	LineNum int
	Type    string
	Name    string
}

func (f *Formal) Line() int { return f.LineNum }

// NewClass creates a class declaration.
func NewClass(line int, filename, name, parent string, members ...Member) *Class {
	return &Class{LineNum: line, Filename: filename, Name: name, Parent: parent, Members: members}
}

// NewField creates a field declaration. init may be nil.
func NewField(line int, typ, name string, init Expression) *Field {
	return &Field{LineNum: line, Type: typ, Name: name, Init: init}
}

// NewMethod creates a method declaration.
func NewMethod(line int, returnType, name string, formals []*Formal, body ...Statement) *Method {
	return &Method{LineNum: line, ReturnType: returnType, Name: name, Formals: formals, Body: body}
}

// NewFormal creates a formal parameter.
func NewFormal(line int, typ, name string) *Formal {
	return &Formal{LineNum: line, Type: typ, Name: name}
}
