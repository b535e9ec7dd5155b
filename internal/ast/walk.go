package ast

// Inspect traverses the tree rooted at node in depth-first order, calling f
// for every non-nil node. If f returns false the children of that node are
// skipped.
func Inspect(node Node, f func(Node) bool) {
	if node == nil || !f(node) {
		return
	}

	switch n := node.(type) {
	case *Program:
		for _, c := range n.Classes {
			Inspect(c, f)
		}
	case *Class:
		for _, m := range n.Members {
			Inspect(m, f)
		}
	case *Field:
		inspectExpr(n.Init, f)
	case *Method:
		for _, formal := range n.Formals {
			Inspect(formal, f)
		}
		for _, s := range n.Body {
			Inspect(s, f)
		}
	case *Formal, *BreakStmt:
	case *ExprStmt:
		inspectExpr(n.Expr, f)
	case *DeclStmt:
		inspectExpr(n.Init, f)
	case *IfStmt:
		inspectExpr(n.Pred, f)
		inspectStmt(n.Then, f)
		inspectStmt(n.Else, f)
	case *WhileStmt:
		inspectExpr(n.Pred, f)
		inspectStmt(n.Body, f)
	case *ForStmt:
		inspectExpr(n.Init, f)
		inspectExpr(n.Pred, f)
		inspectExpr(n.Update, f)
		inspectStmt(n.Body, f)
	case *BlockStmt:
		for _, s := range n.Stmts {
			Inspect(s, f)
		}
	case *ReturnStmt:
		inspectExpr(n.Expr, f)
	case *VarExpr:
		inspectExpr(n.Ref, f)
	case *DispatchExpr:
		inspectExpr(n.Ref, f)
		for _, a := range n.Args {
			Inspect(a, f)
		}
	case *InstanceofExpr:
		inspectExpr(n.Expr, f)
	case *CastExpr:
		inspectExpr(n.Expr, f)
	case *AssignExpr:
		inspectExpr(n.Expr, f)
	case *BinaryExpr:
		inspectExpr(n.Left, f)
		inspectExpr(n.Right, f)
	case *UnaryExpr:
		inspectExpr(n.Expr, f)
	case *NewExpr, *ConstIntExpr, *ConstBooleanExpr, *ConstStringExpr:
	}
}

// Optional children are typed interfaces that may hold nil; they must not
// reach Inspect as non-nil Node values.
func inspectExpr(e Expression, f func(Node) bool) {
	if e != nil {
		Inspect(e, f)
	}
}

func inspectStmt(s Statement, f func(Node) bool) {
	if s != nil {
		Inspect(s, f)
	}
}
