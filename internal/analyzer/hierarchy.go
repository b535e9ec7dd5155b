package analyzer

import (
	"fmt"

	"github.com/funvibe/bantam/internal/ast"
	"github.com/funvibe/bantam/internal/classtree"
	"github.com/funvibe/bantam/internal/config"
	"github.com/funvibe/bantam/internal/diagnostics"
)

// buildClassMap registers every user class. The first declaration of a name
// wins; reserved names are never registered.
func buildClassMap(program *ast.Program, classMap *classtree.ClassMap, handler *diagnostics.Handler) {
	for _, decl := range program.Classes {
		if classMap.Lookup(decl.Name) != nil {
			handler.RegisterError(diagnostics.ErrS001, decl.Filename, decl.Line(),
				"Two classes declared with the same name; "+decl.Name)
			continue
		}
		if config.IsReserved(decl.Name) {
			handler.RegisterError(diagnostics.ErrS002, decl.Filename, decl.Line(),
				"A class cannot be named 'this', 'super','void', 'int', 'boolean', or 'null'; "+decl.Name)
			continue
		}
		classMap.Add(classtree.NewNode(decl, false, true, classMap))
	}
}

// buildInheritance resolves every parent pointer, then breaks cycles so the
// hierarchy is a tree rooted at root.
func buildInheritance(classMap *classtree.ClassMap, root *classtree.Node, handler *diagnostics.Handler) {
	for _, node := range classMap.Nodes() {
		if node == root {
			continue
		}
		decl := node.AST()
		parent := classMap.Lookup(decl.Parent)

		switch {
		case parent == nil:
			handler.RegisterError(diagnostics.ErrS003, decl.Filename, decl.Line(),
				fmt.Sprintf("Superclass %s of class %s does not exist.", decl.Parent, decl.Name))
			node.SetParent(root)
		case !parent.IsExtendable():
			handler.RegisterError(diagnostics.ErrS004, decl.Filename, decl.Line(),
				fmt.Sprintf("Superclass %s of class %s is not allowed to have subclasses (it is final).",
					decl.Parent, decl.Name))
			node.SetParent(parent)
		default:
			node.SetParent(parent)
		}
	}

	for _, node := range classMap.Nodes() {
		breakCycle(node, root, handler)
	}
	root.Recount()
}

// breakCycle walks up from start. The first node seen twice is reported and
// moved under root.
func breakCycle(start, root *classtree.Node, handler *diagnostics.Handler) {
	marked := make(map[*classtree.Node]bool)
	for node := start; node != nil; node = node.Parent() {
		if !marked[node] {
			marked[node] = true
			continue
		}

		decl := node.AST()
		handler.RegisterError(diagnostics.ErrS005, decl.Filename, decl.Line(),
			fmt.Sprintf("Class %s is part of a cycle  of inheritances.", node.Name()))
		node.Parent().RemoveChild(node)
		node.SetParent(root)
		return
	}
}

// buildMemberTables opens the base scope of every class's tables and binds
// the members declared directly on the class.
func buildMemberTables(classMap *classtree.ClassMap, handler *diagnostics.Handler) {
	for _, node := range classMap.Nodes() {
		fields, methods := node.Fields(), node.Methods()

		fields.EnterScope()
		fields.Add(config.ThisName, node.Name())
		super := ""
		if node.Parent() != nil {
			super = node.Parent().Name()
		}
		fields.Add(config.SuperName, super)
		methods.EnterScope()

		decl := node.AST()
		for _, member := range decl.Members {
			switch m := member.(type) {
			case *ast.Field:
				switch {
				case config.IsReserved(m.Name):
					handler.RegisterError(diagnostics.ErrS006, decl.Filename, m.Line(),
						fmt.Sprintf("Class %s has a field named: %s, which is illegal.", node.Name(), m.Name))
				case peekField(fields, m.Name):
					handler.RegisterError(diagnostics.ErrS007, decl.Filename, m.Line(),
						fmt.Sprintf("Class %s has two fields of the same name: %s.", node.Name(), m.Name))
				default:
					fields.Add(m.Name, m.Type)
				}
			case *ast.Method:
				switch {
				case config.IsReserved(m.Name):
					handler.RegisterError(diagnostics.ErrS008, decl.Filename, m.Line(),
						fmt.Sprintf("Class %s has a method named: %s, which is illegal.", node.Name(), m.Name))
				case peekMethod(methods, m.Name):
					handler.RegisterError(diagnostics.ErrS009, decl.Filename, m.Line(),
						fmt.Sprintf("Class %s has two methods of the same name: %s.", node.Name(), m.Name))
				default:
					methods.Add(m.Name, m)
				}
			}
		}
	}
}

func peekField(t *classtree.FieldTable, name string) bool {
	_, ok := t.Peek(name)
	return ok
}

func peekMethod(t *classtree.MethodTable, name string) bool {
	_, ok := t.Peek(name)
	return ok
}

// hasMainMethod reports whether some class named Main declares
// void main() with no parameters.
func hasMainMethod(program *ast.Program) bool {
	for _, decl := range program.Classes {
		if decl.Name != config.MainClassName {
			continue
		}
		for _, m := range decl.Methods() {
			if m.Name == config.MainMethodName && m.ReturnType == config.VoidTypeName && len(m.Formals) == 0 {
				return true
			}
		}
	}
	return false
}

func checkMainMethod(program *ast.Program, handler *diagnostics.Handler) {
	if !hasMainMethod(program) {
		handler.RegisterGlobal(diagnostics.ErrS010, "No main class")
	}
}
