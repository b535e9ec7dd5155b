package ast

// exprInfo carries what every expression node shares: its line and the
// resolved type slot.
type exprInfo struct {
	LineNum int
	Type    string
}

func (e *exprInfo) Line() int              { return e.LineNum }
func (e *exprInfo) expressionNode()        {}
func (e *exprInfo) ExprType() string       { return e.Type }
func (e *exprInfo) SetExprType(typ string) { e.Type = typ }

// BinaryOp enumerates the binary operators.
type BinaryOp int

const (
	OpPlus BinaryOp = iota
	OpMinus
	OpTimes
	OpDivide
	OpModulus
	OpLt
	OpLeq
	OpGt
	OpGeq
	OpEq
	OpNe
	OpAnd
	OpOr
)

var binaryOpSymbols = [...]string{
	OpPlus:    "+",
	OpMinus:   "-",
	OpTimes:   "*",
	OpDivide:  "/",
	OpModulus: "%",
	OpLt:      "<",
	OpLeq:     "<=",
	OpGt:      ">",
	OpGeq:     ">=",
	OpEq:      "==",
	OpNe:      "!=",
	OpAnd:     "&&",
	OpOr:      "||",
}

func (op BinaryOp) String() string {
	if int(op) < len(binaryOpSymbols) {
		return binaryOpSymbols[op]
	}
	return "?"
}

// ParseBinaryOp maps an operator symbol to its BinaryOp.
func ParseBinaryOp(symbol string) (BinaryOp, bool) {
	for op, s := range binaryOpSymbols {
		if s == symbol {
			return BinaryOp(op), true
		}
	}
	return 0, false
}

// UnaryOp enumerates the unary operators.
type UnaryOp int

const (
	OpNeg UnaryOp = iota
	OpNot
	OpIncr
	OpDecr
)

var unaryOpSymbols = [...]string{
	OpNeg:  "-",
	OpNot:  "!",
	OpIncr: "++",
	OpDecr: "--",
}

func (op UnaryOp) String() string {
	if int(op) < len(unaryOpSymbols) {
		return unaryOpSymbols[op]
	}
	return "?"
}

// ParseUnaryOp maps an operator symbol to its UnaryOp.
func ParseUnaryOp(symbol string) (UnaryOp, bool) {
	for op, s := range unaryOpSymbols {
		if s == symbol {
			return UnaryOp(op), true
		}
	}
	return 0, false
}

// VarExpr is a variable reference with an optional this/super qualifier.
// The literal null is a VarExpr named "null".
type VarExpr struct {
	exprInfo
	Ref  Expression // Optional
	Name string
}

// DispatchExpr is a method call with an optional receiver.
// [ref.]method(args)
type DispatchExpr struct {
	exprInfo
	Ref    Expression // Optional
	Method string
	Args   []Expression
}

// NewExpr represents new Type().
type NewExpr struct {
	exprInfo
	ClassType string
}

// InstanceofExpr represents expr instanceof Type.
type InstanceofExpr struct {
	exprInfo
	Expr      Expression
	CheckType string
	// UpCheck is true when the static type of Expr already is-a CheckType.
	UpCheck bool
}

// CastExpr represents cast(Type, expr).
type CastExpr struct {
	exprInfo
	CastType string
	Expr     Expression
}

// AssignExpr represents [ref.]name = expr, where ref is "", "this" or "super".
type AssignExpr struct {
	exprInfo
	RefName string
	Name    string
	Expr    Expression
}

// BinaryExpr represents left op right.
type BinaryExpr struct {
	exprInfo
	Op    BinaryOp
	Left  Expression
	Right Expression
}

// UnaryExpr represents op expr or expr op (Postfix).
type UnaryExpr struct {
	exprInfo
	Op      UnaryOp
	Expr    Expression
	Postfix bool
}

// ConstIntExpr is an integer literal.
type ConstIntExpr struct {
	exprInfo
	Value string
}

// ConstBooleanExpr is true or false.
type ConstBooleanExpr struct {
	exprInfo
	Value string
}

// ConstStringExpr is a string literal.
type ConstStringExpr struct {
	exprInfo
	Value string
}

func NewVar(line int, ref Expression, name string) *VarExpr {
	return &VarExpr{exprInfo: exprInfo{LineNum: line}, Ref: ref, Name: name}
}

func NewDispatch(line int, ref Expression, method string, args ...Expression) *DispatchExpr {
	return &DispatchExpr{exprInfo: exprInfo{LineNum: line}, Ref: ref, Method: method, Args: args}
}

func NewNew(line int, typ string) *NewExpr {
	return &NewExpr{exprInfo: exprInfo{LineNum: line}, ClassType: typ}
}

func NewInstanceof(line int, expr Expression, typ string) *InstanceofExpr {
	return &InstanceofExpr{exprInfo: exprInfo{LineNum: line}, Expr: expr, CheckType: typ}
}

func NewCast(line int, typ string, expr Expression) *CastExpr {
	return &CastExpr{exprInfo: exprInfo{LineNum: line}, CastType: typ, Expr: expr}
}

func NewAssign(line int, refName, name string, expr Expression) *AssignExpr {
	return &AssignExpr{exprInfo: exprInfo{LineNum: line}, RefName: refName, Name: name, Expr: expr}
}

func NewBinary(line int, op BinaryOp, left, right Expression) *BinaryExpr {
	return &BinaryExpr{exprInfo: exprInfo{LineNum: line}, Op: op, Left: left, Right: right}
}

func NewUnary(line int, op UnaryOp, expr Expression, postfix bool) *UnaryExpr {
	return &UnaryExpr{exprInfo: exprInfo{LineNum: line}, Op: op, Expr: expr, Postfix: postfix}
}

func NewInt(line int, value string) *ConstIntExpr {
	return &ConstIntExpr{exprInfo: exprInfo{LineNum: line}, Value: value}
}

func NewBoolean(line int, value string) *ConstBooleanExpr {
	return &ConstBooleanExpr{exprInfo: exprInfo{LineNum: line}, Value: value}
}

func NewString(line int, value string) *ConstStringExpr {
	return &ConstStringExpr{exprInfo: exprInfo{LineNum: line}, Value: value}
}
