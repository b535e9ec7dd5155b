package analyzer

import (
	"fmt"

	"github.com/funvibe/bantam/internal/ast"
	"github.com/funvibe/bantam/internal/classtree"
	"github.com/funvibe/bantam/internal/config"
	"github.com/funvibe/bantam/internal/diagnostics"
)

// unknownType marks an expression whose type could not be determined
// because an error was already reported for it. Checks that involve an
// unknown operand are skipped; the expression's slot holds Object.
const unknownType = ""

func known(typ string) bool {
	return typ != unknownType
}

// typeChecker walks user classes, resolving and validating every
// expression and statement.
type typeChecker struct {
	classMap *classtree.ClassMap
	handler  *diagnostics.Handler
	strict   bool

	class      *classtree.Node
	classLevel int // 0-based level of the class's base field scope
	method     *ast.Method
	vars       *classtree.FieldTable
	loops      []ast.Statement
	filename   string
}

func newTypeChecker(classMap *classtree.ClassMap, handler *diagnostics.Handler, strict bool) *typeChecker {
	return &typeChecker{classMap: classMap, handler: handler, strict: strict}
}

func (tc *typeChecker) errorf(code diagnostics.ErrorCode, node ast.Node, format string, args ...interface{}) {
	tc.handler.RegisterError(code, tc.filename, node.Line(), fmt.Sprintf(format, args...))
}

func (tc *typeChecker) isSubtype(t1, t2 string) bool {
	return IsSubtype(tc.classMap, t1, t2)
}

func (tc *typeChecker) typeExists(typ string) bool {
	return typeExists(tc.classMap, typ)
}

func (tc *typeChecker) checkProgram(program *ast.Program) {
	for _, decl := range program.Classes {
		tc.checkClass(decl)
	}
}

// checkClass checks the members of decl against its own tables. A
// declaration that was rejected from the class map (duplicate or reserved
// name) has no tables and is skipped.
func (tc *typeChecker) checkClass(decl *ast.Class) {
	node := tc.classMap.Lookup(decl.Name)
	if node == nil || node.AST() != decl {
		return
	}

	tc.class = node
	tc.vars = node.Fields()
	tc.classLevel = tc.vars.CurrScopeLevel() - 1
	tc.filename = decl.Filename
	tc.loops = nil

	for _, member := range decl.Members {
		switch m := member.(type) {
		case *ast.Field:
			tc.checkField(m)
		case *ast.Method:
			tc.checkMethod(m)
		}
	}
	tc.class = nil
	tc.vars = nil
}

func (tc *typeChecker) checkField(f *ast.Field) {
	declared := tc.typeExists(f.Type)
	if !declared {
		tc.errorf(diagnostics.ErrS011, f, "The declared type %s of the field %s is undefined.", f.Type, f.Name)
	}
	if f.Init == nil {
		return
	}
	initType := tc.checkExpr(f.Init)
	if declared && known(initType) && !tc.isSubtype(initType, f.Type) {
		tc.errorf(diagnostics.ErrS012, f,
			"The type of the initializer is %s which is not compatible with the %s field's type %s",
			initType, f.Name, f.Type)
	}
}

func (tc *typeChecker) checkMethod(m *ast.Method) {
	if m.ReturnType != config.VoidTypeName && !tc.typeExists(m.ReturnType) {
		tc.errorf(diagnostics.ErrS011, m, "The return type %s of the method %s is undefined.", m.ReturnType, m.Name)
	}

	tc.vars.EnterScope()
	tc.method = m
	for _, f := range m.Formals {
		tc.checkFormal(f)
	}
	for _, s := range m.Body {
		tc.checkStmt(s)
	}

	if m.ReturnType != config.VoidTypeName {
		if n := len(m.Body); n == 0 || !isReturn(m.Body[n-1]) {
			tc.errorf(diagnostics.ErrS015, m, "Methods with non-void return type must end with a return statement.")
		}
	}
	tc.method = nil
	tc.vars.ExitScope()
}

func isReturn(s ast.Statement) bool {
	_, ok := s.(*ast.ReturnStmt)
	return ok
}

func (tc *typeChecker) checkFormal(f *ast.Formal) {
	if !tc.typeExists(f.Type) {
		tc.errorf(diagnostics.ErrS011, f, "The declared type %s of the formal parameter %s is undefined.", f.Type, f.Name)
	}
	if config.IsReserved(f.Name) {
		tc.errorf(diagnostics.ErrS023, f, "The formal parameter %s has a reserved name.", f.Name)
		return
	}
	if tc.vars.ScopeLevel(f.Name) == tc.vars.CurrScopeLevel() {
		tc.errorf(diagnostics.ErrS014, f,
			"The name of the formal parameter %s is the same as the name of another formal parameter.", f.Name)
	}
	tc.vars.Add(f.Name, f.Type)
}
