package analyzer

import (
	"github.com/funvibe/bantam/internal/ast"
	"github.com/funvibe/bantam/internal/config"
	"github.com/funvibe/bantam/internal/diagnostics"
)

// arithmeticVerbs name the operation in "The two values being ... are not
// both ints." messages. Modulus uses its own wording.
var arithmeticVerbs = map[ast.BinaryOp]string{
	ast.OpPlus:   "added",
	ast.OpMinus:  "subtraced",
	ast.OpTimes:  "multiplied",
	ast.OpDivide: "divided",
}

func (tc *typeChecker) checkBinary(n *ast.BinaryExpr) string {
	left := tc.checkExpr(n.Left)
	right := tc.checkExpr(n.Right)
	bothKnown := known(left) && known(right)

	switch n.Op {
	case ast.OpPlus, ast.OpMinus, ast.OpTimes, ast.OpDivide, ast.OpModulus:
		if bothKnown && (left != config.IntTypeName || right != config.IntTypeName) {
			if n.Op == ast.OpModulus {
				tc.errorf(diagnostics.ErrS019, n, "The two values being operated on with %% are not both ints.")
			} else {
				tc.errorf(diagnostics.ErrS019, n, "The two values being %s are not both ints.", arithmeticVerbs[n.Op])
			}
		}
		return config.IntTypeName

	case ast.OpLt, ast.OpLeq, ast.OpGt, ast.OpGeq:
		if bothKnown && (left != config.IntTypeName || right != config.IntTypeName) {
			tc.errorf(diagnostics.ErrS019, n, "The two values being compared by \"%s\" are not both ints.", n.Op)
		}
		return config.BooleanTypeName

	case ast.OpEq, ast.OpNe:
		if bothKnown && !tc.isSubtype(left, right) && !tc.isSubtype(right, left) {
			tc.errorf(diagnostics.ErrS012, n, "The two values being compared for equality are not compatible types.")
		}
		return config.BooleanTypeName

	case ast.OpAnd, ast.OpOr:
		if bothKnown && (left != config.BooleanTypeName || right != config.BooleanTypeName) {
			tc.errorf(diagnostics.ErrS019, n, "The two values being operated on with %s are not both booleans.", n.Op)
		}
		return config.BooleanTypeName
	}
	return unknownType
}

func (tc *typeChecker) checkUnary(n *ast.UnaryExpr) string {
	switch n.Op {
	case ast.OpNeg:
		typ := tc.checkExpr(n.Expr)
		if known(typ) && typ != config.IntTypeName {
			tc.errorf(diagnostics.ErrS019, n, "The value being negated is of type %s, not int.", typ)
		}
		return config.IntTypeName

	case ast.OpNot:
		typ := tc.checkExpr(n.Expr)
		if known(typ) && typ != config.BooleanTypeName {
			tc.errorf(diagnostics.ErrS019, n,
				"The not (!) operator applies only to boolean expressions, not %s expressions.", typ)
		}
		return config.BooleanTypeName

	case ast.OpIncr, ast.OpDecr:
		verb := "incremented"
		if n.Op == ast.OpDecr {
			verb = "decremented"
		}
		if !isAssignable(n.Expr) {
			tc.errorf(diagnostics.ErrS021, n,
				"The  expression being %s can only be a variable name with an optional \"this.\" or \"super.\" prefix.", verb)
		}
		typ := tc.checkExpr(n.Expr)
		if known(typ) && typ != config.IntTypeName {
			tc.errorf(diagnostics.ErrS019, n, "The value being %s is of type %s, not int.", verb, typ)
		}
		return config.IntTypeName
	}
	return unknownType
}

// isAssignable reports whether e is name, this.name or super.name.
func isAssignable(e ast.Expression) bool {
	v, ok := e.(*ast.VarExpr)
	if !ok {
		return false
	}
	return v.Ref == nil || refName(v.Ref) != ""
}
