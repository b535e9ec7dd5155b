package ast

import (
	"fmt"

	"gopkg.in/yaml.v3"
)

// DecodeError reports a malformed AST document. Line is the 1-based line of
// the offending YAML node.
type DecodeError struct {
	File string
	Line int
	Msg  string
}

func (e *DecodeError) Error() string {
	if e.File != "" {
		return fmt.Sprintf("%s:%d: %s", e.File, e.Line, e.Msg)
	}
	return fmt.Sprintf("line %d: %s", e.Line, e.Msg)
}

// Decode parses a YAML or JSON AST document into a Program.
// source names the document in errors and is the default filename of every
// class that does not carry its own.
func Decode(data []byte, source string) (*Program, error) {
	var root yaml.Node
	if err := yaml.Unmarshal(data, &root); err != nil {
		return nil, fmt.Errorf("parsing %s: %w", source, err)
	}
	d := &decoder{source: source}
	if root.Kind == 0 || len(root.Content) == 0 {
		return nil, d.errorf(&root, "empty document")
	}
	return d.program(root.Content[0])
}

type rawProgram struct {
	File    string      `yaml:"file"`
	Classes []yaml.Node `yaml:"classes"`
}

type rawClass struct {
	Name    string      `yaml:"name"`
	Parent  *string     `yaml:"parent"`
	Line    *int        `yaml:"line"`
	File    string      `yaml:"file"`
	Members []yaml.Node `yaml:"members"`
}

type rawMember struct {
	Kind    string      `yaml:"kind"`
	Name    string      `yaml:"name"`
	Type    string      `yaml:"type"`
	Line    *int        `yaml:"line"`
	Init    yaml.Node   `yaml:"init"`
	Formals []yaml.Node `yaml:"formals"`
	Body    []yaml.Node `yaml:"body"`
}

type rawFormal struct {
	Name string `yaml:"name"`
	Type string `yaml:"type"`
	Line *int   `yaml:"line"`
}

type rawStatement struct {
	Kind   string      `yaml:"kind"`
	Line   *int        `yaml:"line"`
	Name   string      `yaml:"name"`
	Expr   yaml.Node   `yaml:"expr"`
	Init   yaml.Node   `yaml:"init"`
	Pred   yaml.Node   `yaml:"pred"`
	Update yaml.Node   `yaml:"update"`
	Then   yaml.Node   `yaml:"then"`
	Else   yaml.Node   `yaml:"else"`
	Body   yaml.Node   `yaml:"body"`
	Stmts  []yaml.Node `yaml:"stmts"`
}

type rawExpression struct {
	Kind    string      `yaml:"kind"`
	Line    *int        `yaml:"line"`
	Name    string      `yaml:"name"`
	Ref     yaml.Node   `yaml:"ref"`
	Method  string      `yaml:"method"`
	Args    []yaml.Node `yaml:"args"`
	Type    string      `yaml:"type"`
	Expr    yaml.Node   `yaml:"expr"`
	Op      string      `yaml:"op"`
	Left    yaml.Node   `yaml:"left"`
	Right   yaml.Node   `yaml:"right"`
	Postfix bool        `yaml:"postfix"`
	Value   *string     `yaml:"value"`
}

type decoder struct {
	source string
}

func (d *decoder) errorf(n *yaml.Node, format string, args ...interface{}) error {
	return &DecodeError{File: d.source, Line: n.Line, Msg: fmt.Sprintf(format, args...)}
}

// lineOf returns the explicit line when given, otherwise the YAML line.
func lineOf(explicit *int, n *yaml.Node) int {
	if explicit != nil {
		return *explicit
	}
	return n.Line
}

func present(n *yaml.Node) bool {
	return n.Kind != 0 && !(n.Kind == yaml.ScalarNode && n.Tag == "!!null")
}

func (d *decoder) decode(n *yaml.Node, into interface{}) error {
	if n.Kind != yaml.MappingNode {
		return d.errorf(n, "expected a mapping")
	}
	if err := n.Decode(into); err != nil {
		return d.errorf(n, "%v", err)
	}
	return nil
}

func (d *decoder) program(n *yaml.Node) (*Program, error) {
	var raw rawProgram
	if err := d.decode(n, &raw); err != nil {
		return nil, err
	}
	file := raw.File
	if file == "" {
		file = d.source
	}

	prog := &Program{}
	for i := range raw.Classes {
		c, err := d.class(&raw.Classes[i], file)
		if err != nil {
			return nil, err
		}
		prog.Classes = append(prog.Classes, c)
	}
	return prog, nil
}

func (d *decoder) class(n *yaml.Node, file string) (*Class, error) {
	var raw rawClass
	if err := d.decode(n, &raw); err != nil {
		return nil, err
	}
	if raw.Name == "" {
		return nil, d.errorf(n, "class without a name")
	}
	if raw.File != "" {
		file = raw.File
	}
	parent := "Object"
	if raw.Parent != nil {
		parent = *raw.Parent
	}

	c := &Class{LineNum: lineOf(raw.Line, n), Filename: file, Name: raw.Name, Parent: parent}
	for i := range raw.Members {
		m, err := d.member(&raw.Members[i])
		if err != nil {
			return nil, err
		}
		c.Members = append(c.Members, m)
	}
	return c, nil
}

func (d *decoder) member(n *yaml.Node) (Member, error) {
	var raw rawMember
	if err := d.decode(n, &raw); err != nil {
		return nil, err
	}
	if raw.Name == "" || raw.Type == "" {
		return nil, d.errorf(n, "%s needs both name and type", raw.Kind)
	}
	line := lineOf(raw.Line, n)

	switch raw.Kind {
	case "field":
		init, err := d.optionalExpression(&raw.Init)
		if err != nil {
			return nil, err
		}
		return &Field{LineNum: line, Type: raw.Type, Name: raw.Name, Init: init}, nil
	case "method":
		m := &Method{LineNum: line, ReturnType: raw.Type, Name: raw.Name}
		for i := range raw.Formals {
			f, err := d.formal(&raw.Formals[i])
			if err != nil {
				return nil, err
			}
			m.Formals = append(m.Formals, f)
		}
		body, err := d.statements(raw.Body)
		if err != nil {
			return nil, err
		}
		m.Body = body
		return m, nil
	default:
		return nil, d.errorf(n, "unknown member kind %q", raw.Kind)
	}
}

func (d *decoder) formal(n *yaml.Node) (*Formal, error) {
	var raw rawFormal
	if err := d.decode(n, &raw); err != nil {
		return nil, err
	}
	if raw.Name == "" || raw.Type == "" {
		return nil, d.errorf(n, "formal needs both name and type")
	}
	return &Formal{LineNum: lineOf(raw.Line, n), Type: raw.Type, Name: raw.Name}, nil
}

func (d *decoder) statements(nodes []yaml.Node) ([]Statement, error) {
	var stmts []Statement
	for i := range nodes {
		s, err := d.statement(&nodes[i])
		if err != nil {
			return nil, err
		}
		stmts = append(stmts, s)
	}
	return stmts, nil
}

func (d *decoder) optionalStatement(n *yaml.Node) (Statement, error) {
	if !present(n) {
		return nil, nil
	}
	return d.statement(n)
}

func (d *decoder) statement(n *yaml.Node) (Statement, error) {
	var raw rawStatement
	if err := d.decode(n, &raw); err != nil {
		return nil, err
	}
	line := lineOf(raw.Line, n)

	switch raw.Kind {
	case "expr":
		e, err := d.expression(&raw.Expr)
		if err != nil {
			return nil, err
		}
		return &ExprStmt{LineNum: line, Expr: e}, nil

	case "decl":
		if raw.Name == "" {
			return nil, d.errorf(n, "decl without a name")
		}
		if !present(&raw.Init) {
			return nil, d.errorf(n, "decl %s without an initializer", raw.Name)
		}
		init, err := d.expression(&raw.Init)
		if err != nil {
			return nil, err
		}
		return &DeclStmt{LineNum: line, Name: raw.Name, Init: init}, nil

	case "if":
		pred, err := d.expression(&raw.Pred)
		if err != nil {
			return nil, err
		}
		then, err := d.statement(&raw.Then)
		if err != nil {
			return nil, err
		}
		els, err := d.optionalStatement(&raw.Else)
		if err != nil {
			return nil, err
		}
		return &IfStmt{LineNum: line, Pred: pred, Then: then, Else: els}, nil

	case "while":
		pred, err := d.expression(&raw.Pred)
		if err != nil {
			return nil, err
		}
		body, err := d.statement(&raw.Body)
		if err != nil {
			return nil, err
		}
		return &WhileStmt{LineNum: line, Pred: pred, Body: body}, nil

	case "for":
		fs := &ForStmt{LineNum: line}
		var err error
		if fs.Init, err = d.optionalExpression(&raw.Init); err != nil {
			return nil, err
		}
		if fs.Pred, err = d.optionalExpression(&raw.Pred); err != nil {
			return nil, err
		}
		if fs.Update, err = d.optionalExpression(&raw.Update); err != nil {
			return nil, err
		}
		if fs.Body, err = d.statement(&raw.Body); err != nil {
			return nil, err
		}
		return fs, nil

	case "break":
		return &BreakStmt{LineNum: line}, nil

	case "block":
		stmts, err := d.statements(raw.Stmts)
		if err != nil {
			return nil, err
		}
		return &BlockStmt{LineNum: line, Stmts: stmts}, nil

	case "return":
		e, err := d.optionalExpression(&raw.Expr)
		if err != nil {
			return nil, err
		}
		return &ReturnStmt{LineNum: line, Expr: e}, nil

	default:
		return nil, d.errorf(n, "unknown statement kind %q", raw.Kind)
	}
}

func (d *decoder) optionalExpression(n *yaml.Node) (Expression, error) {
	if !present(n) {
		return nil, nil
	}
	return d.expression(n)
}

// reference decodes a receiver: either a full expression mapping or the
// scalar shorthand "this" / "super".
func (d *decoder) reference(n *yaml.Node) (Expression, error) {
	if !present(n) {
		return nil, nil
	}
	if n.Kind == yaml.ScalarNode {
		return NewVar(n.Line, nil, n.Value), nil
	}
	return d.expression(n)
}

func (d *decoder) expression(n *yaml.Node) (Expression, error) {
	if !present(n) {
		return nil, d.errorf(n, "missing expression")
	}
	var raw rawExpression
	if err := d.decode(n, &raw); err != nil {
		return nil, err
	}
	line := lineOf(raw.Line, n)
	info := exprInfo{LineNum: line}

	switch raw.Kind {
	case "var":
		if raw.Name == "" {
			return nil, d.errorf(n, "var without a name")
		}
		ref, err := d.reference(&raw.Ref)
		if err != nil {
			return nil, err
		}
		return &VarExpr{exprInfo: info, Ref: ref, Name: raw.Name}, nil

	case "dispatch":
		if raw.Method == "" {
			return nil, d.errorf(n, "dispatch without a method")
		}
		ref, err := d.reference(&raw.Ref)
		if err != nil {
			return nil, err
		}
		de := &DispatchExpr{exprInfo: info, Ref: ref, Method: raw.Method}
		for i := range raw.Args {
			a, err := d.expression(&raw.Args[i])
			if err != nil {
				return nil, err
			}
			de.Args = append(de.Args, a)
		}
		return de, nil

	case "new":
		if raw.Type == "" {
			return nil, d.errorf(n, "new without a type")
		}
		return &NewExpr{exprInfo: info, ClassType: raw.Type}, nil

	case "instanceof", "cast":
		if raw.Type == "" {
			return nil, d.errorf(n, "%s without a type", raw.Kind)
		}
		e, err := d.expression(&raw.Expr)
		if err != nil {
			return nil, err
		}
		if raw.Kind == "cast" {
			return &CastExpr{exprInfo: info, CastType: raw.Type, Expr: e}, nil
		}
		return &InstanceofExpr{exprInfo: info, Expr: e, CheckType: raw.Type}, nil

	case "assign":
		if raw.Name == "" {
			return nil, d.errorf(n, "assign without a name")
		}
		refName := ""
		if present(&raw.Ref) {
			if raw.Ref.Kind != yaml.ScalarNode {
				return nil, d.errorf(&raw.Ref, "assign ref must be this or super")
			}
			refName = raw.Ref.Value
		}
		e, err := d.expression(&raw.Expr)
		if err != nil {
			return nil, err
		}
		return &AssignExpr{exprInfo: info, RefName: refName, Name: raw.Name, Expr: e}, nil

	case "binary":
		op, ok := ParseBinaryOp(raw.Op)
		if !ok {
			return nil, d.errorf(n, "unknown binary operator %q", raw.Op)
		}
		left, err := d.expression(&raw.Left)
		if err != nil {
			return nil, err
		}
		right, err := d.expression(&raw.Right)
		if err != nil {
			return nil, err
		}
		return &BinaryExpr{exprInfo: info, Op: op, Left: left, Right: right}, nil

	case "unary":
		op, ok := ParseUnaryOp(raw.Op)
		if !ok {
			return nil, d.errorf(n, "unknown unary operator %q", raw.Op)
		}
		e, err := d.expression(&raw.Expr)
		if err != nil {
			return nil, err
		}
		return &UnaryExpr{exprInfo: info, Op: op, Expr: e, Postfix: raw.Postfix}, nil

	case "int", "boolean", "string":
		if raw.Value == nil {
			return nil, d.errorf(n, "%s literal without a value", raw.Kind)
		}
		switch raw.Kind {
		case "int":
			return &ConstIntExpr{exprInfo: info, Value: *raw.Value}, nil
		case "boolean":
			return &ConstBooleanExpr{exprInfo: info, Value: *raw.Value}, nil
		default:
			return &ConstStringExpr{exprInfo: info, Value: *raw.Value}, nil
		}

	default:
		return nil, d.errorf(n, "unknown expression kind %q", raw.Kind)
	}
}
