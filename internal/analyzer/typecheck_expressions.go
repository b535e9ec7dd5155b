package analyzer

import (
	"github.com/funvibe/bantam/internal/ast"
	"github.com/funvibe/bantam/internal/classtree"
	"github.com/funvibe/bantam/internal/config"
	"github.com/funvibe/bantam/internal/diagnostics"
)

// checkExpr resolves the type of e, stores it in e's slot and returns it.
// An unknown result is stored as Object.
func (tc *typeChecker) checkExpr(e ast.Expression) string {
	var typ string
	switch n := e.(type) {
	case *ast.VarExpr:
		typ = tc.checkVar(n)
	case *ast.DispatchExpr:
		typ = tc.checkDispatch(n)
	case *ast.NewExpr:
		typ = tc.checkNew(n)
	case *ast.InstanceofExpr:
		typ = tc.checkInstanceof(n)
	case *ast.CastExpr:
		typ = tc.checkCast(n)
	case *ast.AssignExpr:
		typ = tc.checkAssign(n)
	case *ast.BinaryExpr:
		typ = tc.checkBinary(n)
	case *ast.UnaryExpr:
		typ = tc.checkUnary(n)
	case *ast.ConstIntExpr:
		typ = config.IntTypeName
	case *ast.ConstBooleanExpr:
		typ = config.BooleanTypeName
	case *ast.ConstStringExpr:
		typ = config.StringClassName
	default:
		return unknownType
	}

	if known(typ) {
		e.SetExprType(typ)
	} else {
		e.SetExprType(config.ObjectClassName)
	}
	return typ
}

// refName returns "this" or "super" when ref is that bare pseudo-variable,
// and "" otherwise.
func refName(ref ast.Expression) string {
	v, ok := ref.(*ast.VarExpr)
	if !ok || v.Ref != nil {
		return ""
	}
	if v.Name == config.ThisName || v.Name == config.SuperName {
		return v.Name
	}
	return ""
}

// parentClass returns the superclass of the class being checked, reporting
// at node when there is none.
func (tc *typeChecker) parentClass(node ast.Node) *classtree.Node {
	parent := tc.class.Parent()
	if parent == nil {
		tc.errorf(diagnostics.ErrS022, node, "Class %s has no superclass.", tc.class.Name())
	}
	return parent
}

// lookupQualified resolves this.name or super.name in the field tables.
func (tc *typeChecker) lookupQualified(node ast.Node, ref, name string) (string, bool) {
	if ref == config.ThisName {
		return tc.vars.LookupLevel(name, tc.classLevel)
	}
	parent := tc.parentClass(node)
	if parent == nil {
		return unknownType, false
	}
	return parent.Fields().Lookup(name)
}

func (tc *typeChecker) checkVar(v *ast.VarExpr) string {
	if v.Ref == nil {
		if v.Name == config.NullTypeName {
			return config.NullTypeName
		}
		typ, ok := tc.vars.Lookup(v.Name)
		if !ok {
			tc.errorf(diagnostics.ErrS013, v, "The variable %s has not been declared.", v.Name)
			return unknownType
		}
		return typ
	}

	tc.checkExpr(v.Ref)
	ref := refName(v.Ref)
	if ref == "" {
		tc.errorf(diagnostics.ErrS022, v, "Fields can only be accessed through this or super, not through another expression: %s.", v.Name)
		return unknownType
	}
	typ, ok := tc.lookupQualified(v, ref, v.Name)
	if !ok {
		if tc.class.Parent() != nil || ref == config.ThisName {
			tc.errorf(diagnostics.ErrS013, v, "The field %s.%s has not been declared.", ref, v.Name)
		}
		return unknownType
	}
	return typ
}

// resolveMethod finds the target of a call. It returns nil after reporting
// when no method can be found.
func (tc *typeChecker) resolveMethod(d *ast.DispatchExpr) *ast.Method {
	var (
		method *ast.Method
		ok     bool
		owner  = tc.class.Name()
	)

	switch {
	case d.Ref == nil:
		method, ok = tc.class.Methods().Lookup(d.Method)

	case refName(d.Ref) == config.ThisName:
		tc.checkExpr(d.Ref)
		method, ok = tc.class.Methods().LookupLocal(d.Method)

	case refName(d.Ref) == config.SuperName:
		tc.checkExpr(d.Ref)
		parent := tc.parentClass(d)
		if parent == nil {
			return nil
		}
		owner = parent.Name()
		method, ok = parent.Methods().Lookup(d.Method)

	default:
		refType := tc.checkExpr(d.Ref)
		if !known(refType) {
			return nil
		}
		receiver := tc.classMap.Lookup(refType)
		if receiver == nil {
			tc.errorf(diagnostics.ErrS022, d, "The method %s cannot be called on a value of type %s.", d.Method, refType)
			return nil
		}
		owner = receiver.Name()
		method, ok = receiver.Methods().Lookup(d.Method)
	}

	if !ok {
		tc.errorf(diagnostics.ErrS022, d, "The method %s does not exist in class %s.", d.Method, owner)
		return nil
	}
	return method
}

func (tc *typeChecker) checkDispatch(d *ast.DispatchExpr) string {
	method := tc.resolveMethod(d)
	if method == nil {
		for _, arg := range d.Args {
			tc.checkExpr(arg)
		}
		return unknownType
	}

	if len(d.Args) != len(method.Formals) {
		tc.errorf(diagnostics.ErrS018, d, "Actual arguments did not match size of expected arguments.")
		for _, arg := range d.Args {
			tc.checkExpr(arg)
		}
		return method.ReturnType
	}

	for i, arg := range d.Args {
		argType := tc.checkExpr(arg)
		expected := method.Formals[i].Type
		if known(argType) && argType != expected {
			tc.errorf(diagnostics.ErrS012, d, "Expected type %s, got type %s.", expected, argType)
		}
	}
	return method.ReturnType
}

func (tc *typeChecker) checkNew(n *ast.NewExpr) string {
	if tc.classMap.Lookup(n.ClassType) == nil {
		tc.errorf(diagnostics.ErrS011, n, "The type %s does not exist.", n.ClassType)
		return config.ObjectClassName
	}
	return n.ClassType
}

func (tc *typeChecker) checkInstanceof(n *ast.InstanceofExpr) string {
	declared := tc.classMap.Lookup(n.CheckType) != nil
	if !declared {
		tc.errorf(diagnostics.ErrS011, n, "The reference type %s does not exist.", n.CheckType)
	}

	exprType := tc.checkExpr(n.Expr)
	if declared && known(exprType) {
		switch {
		case tc.isSubtype(exprType, n.CheckType):
			n.UpCheck = true
		case tc.isSubtype(n.CheckType, exprType):
			n.UpCheck = false
		default:
			tc.errorf(diagnostics.ErrS012, n, "You can't compare type %sto incompatible type %s.", exprType, n.CheckType)
		}
	}
	return config.BooleanTypeName
}

func (tc *typeChecker) checkCast(n *ast.CastExpr) string {
	declared := tc.typeExists(n.CastType)
	if !declared {
		tc.errorf(diagnostics.ErrS011, n, "Cast  %s not a defined type.", n.CastType)
	}

	tc.checkExpr(n.Expr)
	n.Expr.SetExprType(n.CastType)
	if !declared {
		return config.ObjectClassName
	}
	return n.CastType
}

func (tc *typeChecker) checkAssign(n *ast.AssignExpr) string {
	exprType := tc.checkExpr(n.Expr)
	if call, ok := n.Expr.(*ast.DispatchExpr); ok && exprType == config.VoidTypeName {
		tc.errorf(diagnostics.ErrS020, n, "Method %s has return type void", call.Method)
		exprType = unknownType
	}

	var (
		existing string
		bound    bool
	)
	switch n.RefName {
	case "":
		existing, bound = tc.vars.Lookup(n.Name)
	case config.ThisName, config.SuperName:
		existing, bound = tc.lookupQualified(n, n.RefName, n.Name)
		if !bound {
			tc.errorf(diagnostics.ErrS013, n, "The field %s.%s has not been declared.", n.RefName, n.Name)
			return exprType
		}
	default:
		tc.errorf(diagnostics.ErrS022, n, "Fields can only be assigned through this or super, not through %s.", n.RefName)
		return exprType
	}

	if bound {
		if known(exprType) && existing != exprType {
			tc.errorf(diagnostics.ErrS012, n, "expected  %s, got  %s.", existing, exprType)
		}
		return exprType
	}

	if tc.strict {
		tc.errorf(diagnostics.ErrS013, n, "The variable %s has not been declared.", n.Name)
		return exprType
	}
	if known(exprType) {
		tc.vars.Add(n.Name, exprType)
	} else {
		tc.vars.Add(n.Name, config.ObjectClassName)
	}
	return exprType
}
