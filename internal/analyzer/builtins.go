package analyzer

import (
	"github.com/funvibe/bantam/internal/ast"
	"github.com/funvibe/bantam/internal/classtree"
	"github.com/funvibe/bantam/internal/config"
)

const builtinLine = config.BuiltinLine

func formal(typ, name string) *ast.Formal {
	return ast.NewFormal(builtinLine, typ, name)
}

func formals(fs ...*ast.Formal) []*ast.Formal {
	return fs
}

// builtinMethod declares a built-in method whose body returns a placeholder
// of its return type.
func builtinMethod(ret, name string, params ...*ast.Formal) *ast.Method {
	var body ast.Statement
	switch ret {
	case config.VoidTypeName:
		body = ast.NewReturn(builtinLine, nil)
	case config.IntTypeName:
		body = ast.NewReturn(builtinLine, ast.NewInt(builtinLine, "0"))
	case config.BooleanTypeName:
		body = ast.NewReturn(builtinLine, ast.NewBoolean(builtinLine, "false"))
	default:
		body = ast.NewReturn(builtinLine, ast.NewVar(builtinLine, nil, config.NullTypeName))
	}
	return ast.NewMethod(builtinLine, ret, name, formals(params...), body)
}

func builtinClass(name, parent string, members ...ast.Member) *ast.Class {
	return ast.NewClass(builtinLine, config.BuiltinFilename, name, parent, members...)
}

// BuiltinClasses returns fresh declarations of Object, String, TextIO and
// Sys, in that order.
func BuiltinClasses() []*ast.Class {
	object := builtinClass(config.ObjectClassName, "",
		builtinMethod(config.ObjectClassName, "clone"),
		builtinMethod(config.BooleanTypeName, "equals", formal(config.ObjectClassName, "o")),
		ast.NewMethod(builtinLine, config.VoidTypeName, "print", formals(formal(config.StringClassName, "string"))),
		builtinMethod(config.StringClassName, "toString"),
	)

	str := builtinClass(config.StringClassName, config.ObjectClassName,
		ast.NewField(builtinLine, config.IntTypeName, "length", nil),
		builtinMethod(config.IntTypeName, "length"),
		builtinMethod(config.BooleanTypeName, "equals", formal(config.ObjectClassName, "str")),
		builtinMethod(config.StringClassName, "toString"),
		builtinMethod(config.StringClassName, "substring",
			formal(config.IntTypeName, "beginIndex"), formal(config.IntTypeName, "endIndex")),
		builtinMethod(config.StringClassName, "concat", formal(config.StringClassName, "str")),
	)

	textIO := builtinClass(config.TextIOClassName, config.ObjectClassName,
		ast.NewField(builtinLine, config.IntTypeName, "readFD", nil),
		ast.NewField(builtinLine, config.IntTypeName, "writeFD", ast.NewInt(builtinLine, "1")),
		builtinMethod(config.VoidTypeName, "readStdin"),
		builtinMethod(config.VoidTypeName, "readFile", formal(config.StringClassName, "readFile")),
		builtinMethod(config.VoidTypeName, "writeStdout"),
		builtinMethod(config.VoidTypeName, "writeStderr"),
		builtinMethod(config.VoidTypeName, "writeFile", formal(config.StringClassName, "writeFile")),
		builtinMethod(config.StringClassName, "getString"),
		builtinMethod(config.IntTypeName, "getInt"),
		builtinMethod(config.TextIOClassName, "putString", formal(config.StringClassName, "str")),
		builtinMethod(config.TextIOClassName, "putInt", formal(config.IntTypeName, "n")),
	)

	sys := builtinClass(config.SysClassName, config.ObjectClassName,
		builtinMethod(config.VoidTypeName, "exit", formal(config.IntTypeName, "status")),
		builtinMethod(config.IntTypeName, "time"),
		builtinMethod(config.IntTypeName, "random"),
	)

	return []*ast.Class{object, str, textIO, sys}
}

// installBuiltins registers the built-in classes in classMap and returns the
// Object node. Sealed built-ins are registered as not extendable.
func installBuiltins(classMap *classtree.ClassMap) *classtree.Node {
	var root *classtree.Node
	for _, decl := range BuiltinClasses() {
		node := classtree.NewNode(decl, true, !config.SealedClasses[decl.Name], classMap)
		classMap.Add(node)
		if decl.Name == config.ObjectClassName {
			root = node
		}
	}
	return root
}
