package ast

// ExprStmt is an expression evaluated for its effect.
type ExprStmt struct {
	LineNum int
	Expr    Expression
}

func (es *ExprStmt) Line() int      { return es.LineNum }
func (es *ExprStmt) statementNode() {}

// DeclStmt declares a local variable whose type is that of its initializer.
// var name = init;
type DeclStmt struct {
	LineNum int
	Name    string
	Init    Expression // Required
}

func (ds *DeclStmt) Line() int      { return ds.LineNum }
func (ds *DeclStmt) statementNode() {}

// IfStmt represents if (pred) then [else else].
type IfStmt struct {
	LineNum int
	Pred    Expression
	Then    Statement
	Else    Statement // Optional
}

func (is *IfStmt) Line() int      { return is.LineNum }
func (is *IfStmt) statementNode() {}

// WhileStmt represents while (pred) body.
type WhileStmt struct {
	LineNum int
	Pred    Expression
	Body    Statement
}

func (ws *WhileStmt) Line() int      { return ws.LineNum }
func (ws *WhileStmt) statementNode() {}

// ForStmt represents for (init; pred; update) body. All three header parts
// are optional.
type ForStmt struct {
	LineNum int
	Init    Expression
	Pred    Expression
	Update  Expression
	Body    Statement
}

func (fs *ForStmt) Line() int      { return fs.LineNum }
func (fs *ForStmt) statementNode() {}

// BreakStmt represents break;
type BreakStmt struct {
	LineNum int
}

func (bs *BreakStmt) Line() int      { return bs.LineNum }
func (bs *BreakStmt) statementNode() {}

// BlockStmt represents { stmts }.
type BlockStmt struct {
	LineNum int
	Stmts   []Statement
}

func (bs *BlockStmt) Line() int      { return bs.LineNum }
func (bs *BlockStmt) statementNode() {}

// ReturnStmt represents return [expr];
type ReturnStmt struct {
	LineNum int
	Expr    Expression // Optional
}

func (rs *ReturnStmt) Line() int      { return rs.LineNum }
func (rs *ReturnStmt) statementNode() {}

func NewExprStmt(line int, expr Expression) *ExprStmt {
	return &ExprStmt{LineNum: line, Expr: expr}
}

func NewDecl(line int, name string, init Expression) *DeclStmt {
	return &DeclStmt{LineNum: line, Name: name, Init: init}
}

func NewIf(line int, pred Expression, then, els Statement) *IfStmt {
	return &IfStmt{LineNum: line, Pred: pred, Then: then, Else: els}
}

func NewWhile(line int, pred Expression, body Statement) *WhileStmt {
	return &WhileStmt{LineNum: line, Pred: pred, Body: body}
}

func NewFor(line int, init, pred, update Expression, body Statement) *ForStmt {
	return &ForStmt{LineNum: line, Init: init, Pred: pred, Update: update, Body: body}
}

func NewBreak(line int) *BreakStmt {
	return &BreakStmt{LineNum: line}
}

func NewBlock(line int, stmts ...Statement) *BlockStmt {
	return &BlockStmt{LineNum: line, Stmts: stmts}
}

func NewReturn(line int, expr Expression) *ReturnStmt {
	return &ReturnStmt{LineNum: line, Expr: expr}
}
