package analyzer

import (
	"github.com/funvibe/bantam/internal/ast"
	"github.com/funvibe/bantam/internal/config"
	"github.com/funvibe/bantam/internal/diagnostics"
)

func (tc *typeChecker) checkStmt(s ast.Statement) {
	switch n := s.(type) {
	case *ast.ExprStmt:
		tc.checkExpr(n.Expr)
	case *ast.DeclStmt:
		tc.checkDecl(n)
	case *ast.IfStmt:
		tc.checkIf(n)
	case *ast.WhileStmt:
		tc.checkWhile(n)
	case *ast.ForStmt:
		tc.checkFor(n)
	case *ast.BreakStmt:
		if len(tc.loops) == 0 {
			tc.errorf(diagnostics.ErrS017, n, "Break statement not inside loop")
		}
	case *ast.BlockStmt:
		tc.inScope(func() {
			for _, inner := range n.Stmts {
				tc.checkStmt(inner)
			}
		})
	case *ast.ReturnStmt:
		tc.checkReturn(n)
	}
}

// inScope runs fn inside a fresh scope of the active table.
func (tc *typeChecker) inScope(fn func()) {
	tc.vars.EnterScope()
	defer tc.vars.ExitScope()
	fn()
}

// inLoop runs fn inside a fresh scope with loop on the break stack.
func (tc *typeChecker) inLoop(loop ast.Statement, fn func()) {
	tc.loops = append(tc.loops, loop)
	defer func() { tc.loops = tc.loops[:len(tc.loops)-1] }()
	tc.inScope(fn)
}

func (tc *typeChecker) checkDecl(d *ast.DeclStmt) {
	initType := tc.checkExpr(d.Init)

	if call, ok := d.Init.(*ast.DispatchExpr); ok && initType == config.VoidTypeName {
		tc.errorf(diagnostics.ErrS020, d, "Method %s has return type void", call.Method)
		initType = config.ObjectClassName
	}
	if !known(initType) {
		initType = config.ObjectClassName
	}

	if config.IsReserved(d.Name) {
		tc.errorf(diagnostics.ErrS023, d, "The variable %s has a reserved name.", d.Name)
		return
	}
	if _, exists := tc.vars.Peek(d.Name); exists {
		tc.errorf(diagnostics.ErrS014, d, "Variable %s has already been declared", d.Name)
		initType = config.ObjectClassName
	}
	tc.vars.Add(d.Name, initType)
}

func (tc *typeChecker) checkIf(s *ast.IfStmt) {
	predType := tc.checkExpr(s.Pred)
	if known(predType) && predType != config.BooleanTypeName {
		tc.errorf(diagnostics.ErrS016, s, "The type of the predicate is %s, not boolean.", predType)
	}

	tc.inScope(func() { tc.checkStmt(s.Then) })
	if s.Else != nil {
		tc.inScope(func() { tc.checkStmt(s.Else) })
	}
}

func (tc *typeChecker) checkLoopPredicate(loop ast.Statement, pred ast.Expression) {
	predType := tc.checkExpr(pred)
	if known(predType) && !tc.isSubtype(predType, config.BooleanTypeName) {
		tc.errorf(diagnostics.ErrS016, loop, "The type of the predicate is %s which is not boolean.", predType)
	}
}

func (tc *typeChecker) checkWhile(s *ast.WhileStmt) {
	tc.checkLoopPredicate(s, s.Pred)
	tc.inLoop(s, func() { tc.checkStmt(s.Body) })
}

func (tc *typeChecker) checkFor(s *ast.ForStmt) {
	if s.Init != nil {
		tc.checkExpr(s.Init)
	}
	if s.Pred != nil {
		tc.checkLoopPredicate(s, s.Pred)
	}
	if s.Update != nil {
		tc.checkExpr(s.Update)
	}
	tc.inLoop(s, func() { tc.checkStmt(s.Body) })
}

func (tc *typeChecker) checkReturn(s *ast.ReturnStmt) {
	m := tc.method
	if s.Expr == nil {
		if m.ReturnType != config.VoidTypeName {
			tc.errorf(diagnostics.ErrS015, s,
				"The type of the method %s is not void and so return statements in it must return a value.", m.Name)
		}
		return
	}

	exprType := tc.checkExpr(s.Expr)
	if m.ReturnType == config.VoidTypeName || !known(exprType) || !tc.typeExists(m.ReturnType) {
		return
	}
	if !tc.isSubtype(exprType, m.ReturnType) {
		tc.errorf(diagnostics.ErrS012, s,
			"The type of the return expr is %s which is not compatible with the %s method's return type %s",
			exprType, m.Name, m.ReturnType)
	}
}
