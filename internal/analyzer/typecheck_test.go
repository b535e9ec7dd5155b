package analyzer

import (
	"testing"

	"github.com/go-test/deep"

	"github.com/funvibe/bantam/internal/ast"
	"github.com/funvibe/bantam/internal/diagnostics"
)

// body wraps statements in class A { void f() { ... } }.
func body(stmts ...ast.Statement) *ast.Program {
	return program(class("A", "Object", field("int", "x", nil), voidMethod("f", stmts...)))
}

func assign(ref, name string, e ast.Expression) *ast.AssignExpr { return ast.NewAssign(1, ref, name, e) }
func unary(op ast.UnaryOp, e ast.Expression) *ast.UnaryExpr     { return ast.NewUnary(1, op, e, false) }
func block(stmts ...ast.Statement) *ast.BlockStmt               { return ast.NewBlock(1, stmts...) }

// ---------------------------------------------------------------------------
// S011 / S012: Field declarations
// ---------------------------------------------------------------------------

func TestS011_FieldTypeUndefined(t *testing.T) {
	expectAnalyzerErrorText(t, program(class("A", "Object", field("Foo", "x", nil))),
		diagnostics.ErrS011, "The declared type Foo of the field x is undefined.")
}

func TestS012_FieldInitializer(t *testing.T) {
	expectAnalyzerErrorText(t, program(class("A", "Object", field("int", "x", boolean("true")))),
		diagnostics.ErrS012, "The type of the initializer is boolean which is not compatible with the x field's type int")

	expectNoAnalyzerErrors(t, program(class("A", "Object",
		field("Object", "o", str("s")),
		field("String", "s", v("null")),
	)))
}

func TestFieldInitializer_SeesEarlierFields(t *testing.T) {
	expectNoAnalyzerErrors(t, program(class("A", "Object",
		field("int", "x", num("1")),
		field("int", "y", bin(ast.OpPlus, v("x"), num("1"))),
	)))
}

// ---------------------------------------------------------------------------
// S011 / S014 / S023: Methods and formals
// ---------------------------------------------------------------------------

func TestS011_ReturnTypeUndefined(t *testing.T) {
	prog := program(class("A", "Object", method("Foo", "f", nil, ret(v("null")))))
	errs := expectExactly(t, prog, diagnostics.ErrS011, 1)
	if len(errs) != 1 || errs[0].Message != "The return type Foo of the method f is undefined." {
		t.Fatalf("unexpected diagnostics:\n%s", dump(errs))
	}
}

func TestS011_FormalTypeUndefined(t *testing.T) {
	prog := program(class("A", "Object", method("void", "f", params(param("Foo", "p")))))
	expectAnalyzerErrorText(t, prog, diagnostics.ErrS011, "The declared type Foo of the formal parameter p is undefined.")
}

func TestS014_DuplicateFormal(t *testing.T) {
	prog := program(class("A", "Object", method("void", "f", params(param("int", "a"), param("boolean", "a")))))
	expectAnalyzerErrorText(t, prog, diagnostics.ErrS014,
		"The name of the formal parameter a is the same as the name of another formal parameter.")
}

func TestS023_ReservedFormal(t *testing.T) {
	prog := program(class("A", "Object", method("void", "f", params(param("int", "this")))))
	expectAnalyzerErrorText(t, prog, diagnostics.ErrS023, "The formal parameter this has a reserved name.")
}

func TestFormal_ShadowsField(t *testing.T) {
	prog := program(class("A", "Object",
		field("int", "x", nil),
		method("boolean", "f", params(param("boolean", "x")), ret(v("x"))),
	))
	expectNoAnalyzerErrors(t, prog)
}

// ---------------------------------------------------------------------------
// S015: Return statements
// ---------------------------------------------------------------------------

func TestS015_MissingTrailingReturn(t *testing.T) {
	errs := expectExactly(t, program(class("A", "Object", method("int", "f", nil))), diagnostics.ErrS015, 1)
	if errs[0].Message != "Methods with non-void return type must end with a return statement." {
		t.Fatalf("unexpected message %q", errs[0].Message)
	}

	// Both branches return, but the last statement is an if.
	branches := ast.NewIf(1, boolean("true"), ret(num("1")), ret(num("2")))
	expectExactly(t, program(class("A", "Object", method("int", "f", nil, branches))), diagnostics.ErrS015, 1)
}

func TestS015_ReturnWithoutValue(t *testing.T) {
	prog := program(class("A", "Object", method("int", "f", nil, ret(nil))))
	errs := expectExactly(t, prog, diagnostics.ErrS015, 1)
	if errs[0].Message != "The type of the method f is not void and so return statements in it must return a value." {
		t.Fatalf("unexpected message %q", errs[0].Message)
	}
}

func TestS012_ReturnMismatch(t *testing.T) {
	prog := program(class("A", "Object", method("int", "f", nil, ret(boolean("true")))))
	expectAnalyzerErrorText(t, prog, diagnostics.ErrS012,
		"The type of the return expr is boolean which is not compatible with the f method's return type int")
}

func TestReturn_Accepted(t *testing.T) {
	expectNoAnalyzerErrors(t, program(class("A", "Object",
		method("Object", "f", nil, ret(str("s"))),
		method("String", "g", nil, ret(v("null"))),
		voidMethod("h", ret(nil)),
		voidMethod("k", ret(num("1"))),
	)))
}

// ---------------------------------------------------------------------------
// S013 / S014 / S020 / S023: Local declarations
// ---------------------------------------------------------------------------

func TestS014_Redeclaration(t *testing.T) {
	expectAnalyzerErrorText(t, body(decl("y", num("1")), decl("y", num("2"))),
		diagnostics.ErrS014, "Variable y has already been declared")
}

func TestDecl_ShadowingIsLegal(t *testing.T) {
	expectNoAnalyzerErrors(t, body(
		decl("x", boolean("true")),
		decl("y", num("1")),
		block(decl("y", str("s"))),
	))
}

func TestS013_UndeclaredVariable(t *testing.T) {
	expectAnalyzerErrorText(t, body(decl("y", v("z"))), diagnostics.ErrS013, "The variable z has not been declared.")
}

func TestS020_VoidInitializer(t *testing.T) {
	prog := program(class("A", "Object",
		voidMethod("g"),
		voidMethod("f",
			decl("y", call(nil, "g")),
			do(bin(ast.OpPlus, v("y"), num("1"))),
		),
	))
	errs := analyzeProgram(prog)
	if countCode(errs, diagnostics.ErrS020) != 1 || countCode(errs, diagnostics.ErrS019) != 1 {
		t.Fatalf("expected S020 and S019, got:\n%s", dump(errs))
	}
	for _, e := range errs {
		if e.Code == diagnostics.ErrS020 && e.Message != "Method g has return type void" {
			t.Fatalf("unexpected message %q", e.Message)
		}
	}
}

func TestS020_VoidAssignment(t *testing.T) {
	prog := program(class("A", "Object",
		voidMethod("g"),
		voidMethod("f",
			do(assign("", "y", call(nil, "g"))),
			do(bin(ast.OpPlus, v("y"), num("1"))),
		),
	))
	errs := analyzeProgram(prog)
	if countCode(errs, diagnostics.ErrS020) != 1 || countCode(errs, diagnostics.ErrS019) != 1 || len(errs) != 2 {
		t.Fatalf("expected S020 and S019, got:\n%s", dump(errs))
	}

	// Assigning a void result to a declared variable is not also a mismatch.
	prog = program(class("A", "Object",
		voidMethod("g"),
		voidMethod("f", decl("n", num("1")), do(assign("", "n", call(nil, "g")))),
	))
	errs = expectExactly(t, prog, diagnostics.ErrS020, 1)
	if len(errs) != 1 || errs[0].Message != "Method g has return type void" {
		t.Fatalf("unexpected diagnostics:\n%s", dump(errs))
	}
}

func TestS023_ReservedLocal(t *testing.T) {
	expectAnalyzerErrorText(t, body(decl("null", num("1"))), diagnostics.ErrS023, "The variable null has a reserved name.")
}

// ---------------------------------------------------------------------------
// S016 / S017: Control flow
// ---------------------------------------------------------------------------

func TestS016_Predicates(t *testing.T) {
	expectAnalyzerErrorText(t, body(ast.NewIf(1, num("1"), do(num("2")), nil)),
		diagnostics.ErrS016, "The type of the predicate is int, not boolean.")
	expectAnalyzerErrorText(t, body(ast.NewWhile(1, num("1"), block())),
		diagnostics.ErrS016, "The type of the predicate is int which is not boolean.")
	expectAnalyzerErrorText(t, body(ast.NewFor(1, nil, str("s"), nil, block())),
		diagnostics.ErrS016, "The type of the predicate is String which is not boolean.")
	expectNoAnalyzerErrors(t, body(ast.NewFor(1, nil, nil, nil, ast.NewBreak(1))))
}

func TestIf_BranchScopes(t *testing.T) {
	prog := body(
		ast.NewIf(1, boolean("true"), decl("y", num("1")), decl("y", boolean("false"))),
		do(v("y")),
	)
	errs := expectExactly(t, prog, diagnostics.ErrS013, 1)
	if countCode(errs, diagnostics.ErrS014) != 0 {
		t.Fatalf("branches must not share a scope:\n%s", dump(errs))
	}
}

func TestS017_Break(t *testing.T) {
	expectAnalyzerErrorText(t, body(ast.NewBreak(1)), diagnostics.ErrS017, "Break statement not inside loop")
	expectExactly(t, body(ast.NewIf(1, boolean("true"), ast.NewBreak(1), nil)), diagnostics.ErrS017, 1)

	expectNoAnalyzerErrors(t, body(
		ast.NewWhile(1, boolean("true"), ast.NewBreak(1)),
		ast.NewFor(1, nil, boolean("true"), nil, block(
			ast.NewIf(1, boolean("false"), block(ast.NewBreak(1)), nil),
		)),
		ast.NewWhile(1, boolean("true"), ast.NewWhile(1, boolean("true"), ast.NewBreak(1))),
	))

	// The loop ends with its body.
	expectExactly(t, body(ast.NewWhile(1, boolean("true"), block()), ast.NewBreak(1)), diagnostics.ErrS017, 1)
}

// ---------------------------------------------------------------------------
// S012 / S018 / S022: Dispatch
// ---------------------------------------------------------------------------

func twoArgs(stmts ...ast.Statement) *ast.Program {
	return program(class("A", "Object",
		method("int", "g", params(param("int", "a"), param("int", "b")), ret(num("0"))),
		voidMethod("f", stmts...),
	))
}

func TestS018_ArityMismatch(t *testing.T) {
	errs := expectExactly(t, twoArgs(do(call(nil, "g", boolean("true")))), diagnostics.ErrS018, 1)
	if countCode(errs, diagnostics.ErrS012) != 0 {
		t.Fatalf("arity mismatch must not report argument types:\n%s", dump(errs))
	}
	if errs[0].Message != "Actual arguments did not match size of expected arguments." {
		t.Fatalf("unexpected message %q", errs[0].Message)
	}
}

func TestS012_ArgumentMismatch(t *testing.T) {
	errs := expectExactly(t, twoArgs(do(call(nil, "g", num("1"), boolean("true")))), diagnostics.ErrS012, 1)
	if len(errs) != 1 || errs[0].Message != "Expected type int, got type boolean." {
		t.Fatalf("unexpected diagnostics:\n%s", dump(errs))
	}

	// Arguments must match the formal type exactly.
	prog := program(class("A", "Object",
		method("void", "g", params(param("Object", "o"))),
		voidMethod("f", do(call(nil, "g", str("s")))),
	))
	expectAnalyzerErrorText(t, prog, diagnostics.ErrS012, "Expected type Object, got type String.")
}

func TestDispatch_ResultType(t *testing.T) {
	expectNoAnalyzerErrors(t, twoArgs(
		decl("n", call(nil, "g", num("1"), num("2"))),
		do(bin(ast.OpPlus, v("n"), call(str("abc"), "length"))),
	))
}

func TestDispatch_ThisAndSuper(t *testing.T) {
	parent := class("P", "Object", voidMethod("inherited"))
	child := func(stmts ...ast.Statement) *ast.Program {
		return program(parent, class("C", "P", voidMethod("own"), voidMethod("f", stmts...)))
	}

	expectNoAnalyzerErrors(t, child(
		do(call(nil, "inherited")),
		do(call(thisRef(), "own")),
		do(call(superRef(), "inherited")),
		do(call(superRef(), "equals", ast.NewNew(1, "Object"))),
	))
	expectAnalyzerErrorText(t, child(do(call(thisRef(), "inherited"))),
		diagnostics.ErrS022, "The method inherited does not exist in class C.")
	expectAnalyzerErrorText(t, child(do(call(superRef(), "own"))),
		diagnostics.ErrS022, "The method own does not exist in class P.")
	expectAnalyzerErrorText(t, child(do(call(nil, "missing"))),
		diagnostics.ErrS022, "The method missing does not exist in class C.")
}

func TestDispatch_Receivers(t *testing.T) {
	expectNoAnalyzerErrors(t, body(
		decl("s", str("abc")),
		do(call(v("s"), "substring", num("0"), num("1"))),
		do(call(ast.NewNew(1, "TextIO"), "putInt", num("3"))),
	))
	expectAnalyzerErrorText(t, body(decl("s", str("abc")), do(call(v("s"), "nope"))),
		diagnostics.ErrS022, "The method nope does not exist in class String.")
	expectAnalyzerErrorText(t, body(decl("n", num("1")), do(call(v("n"), "f"))),
		diagnostics.ErrS022, "The method f cannot be called on a value of type int.")
}

func TestDispatch_UnknownMethodVisitsArguments(t *testing.T) {
	errs := analyzeProgram(body(do(call(nil, "missing", v("undeclared")))))
	if countCode(errs, diagnostics.ErrS022) != 1 || countCode(errs, diagnostics.ErrS013) != 1 {
		t.Fatalf("expected S022 and S013, got:\n%s", dump(errs))
	}
}

func TestDispatch_UnknownMethodDoesNotCascade(t *testing.T) {
	missing := call(nil, "missing")
	for _, prog := range []*ast.Program{
		body(do(bin(ast.OpPlus, missing, num("1")))),
		body(ast.NewIf(1, call(nil, "missing"), block(), nil)),
		body(ast.NewWhile(1, call(v("x"), "missing"), block())),
	} {
		errs := analyzeProgram(prog)
		if len(errs) != 1 || errs[0].Code != diagnostics.ErrS022 {
			t.Fatalf("expected only S022, got:\n%s", dump(errs))
		}
	}
	if missing.ExprType() != "Object" {
		t.Errorf("failed call slot holds %q", missing.ExprType())
	}
}

// ---------------------------------------------------------------------------
// S013 / S022: Variables and fields
// ---------------------------------------------------------------------------

func TestVar_QualifiedAccess(t *testing.T) {
	prog := program(
		class("P", "Object", field("boolean", "flag", nil)),
		class("C", "P", field("int", "x", nil), voidMethod("f",
			decl("a", ast.NewVar(1, thisRef(), "x")),
			decl("b", ast.NewVar(1, superRef(), "flag")),
			decl("c", ast.NewVar(1, thisRef(), "flag")),
			do(bin(ast.OpAnd, v("b"), v("c"))),
			do(bin(ast.OpPlus, v("a"), num("1"))),
		)),
	)
	expectNoAnalyzerErrors(t, prog)
}

func TestS013_QualifiedLocalIsNotAField(t *testing.T) {
	expectAnalyzerErrorText(t, body(decl("y", num("1")), do(ast.NewVar(1, thisRef(), "y"))),
		diagnostics.ErrS013, "The field this.y has not been declared.")
	expectAnalyzerErrorText(t, body(do(ast.NewVar(1, superRef(), "x"))),
		diagnostics.ErrS013, "The field super.x has not been declared.")
}

func TestS022_FieldThroughExpression(t *testing.T) {
	expectAnalyzerErrorText(t, body(do(ast.NewVar(1, str("s"), "length"))), diagnostics.ErrS022,
		"Fields can only be accessed through this or super, not through another expression: length.")
}

// ---------------------------------------------------------------------------
// S012 / S013 / S022: Assignment
// ---------------------------------------------------------------------------

func TestAssign_LenientDeclares(t *testing.T) {
	expectNoAnalyzerErrors(t, body(
		do(assign("", "y", num("1"))),
		do(bin(ast.OpPlus, v("y"), num("2"))),
	))
}

func TestAssign_Strict(t *testing.T) {
	errs, _ := analyzeWith(body(do(assign("", "y", num("1")))), Options{StrictAssignment: true})
	if len(errs) != 1 || errs[0].Code != diagnostics.ErrS013 || errs[0].Message != "The variable y has not been declared." {
		t.Fatalf("unexpected diagnostics:\n%s", dump(errs))
	}
}

func TestS012_AssignMismatch(t *testing.T) {
	expectAnalyzerErrorText(t, body(decl("y", num("1")), do(assign("", "y", boolean("true")))),
		diagnostics.ErrS012, "expected  int, got  boolean.")
	expectAnalyzerErrorText(t, body(do(assign("this", "x", str("s")))),
		diagnostics.ErrS012, "expected  int, got  String.")
}

func TestAssign_QualifiedTargets(t *testing.T) {
	prog := program(
		class("P", "Object", field("int", "base", nil)),
		class("C", "P", field("int", "x", nil), voidMethod("f",
			do(assign("this", "x", num("1"))),
			do(assign("super", "base", num("2"))),
			do(assign("this", "base", num("3"))),
		)),
	)
	expectNoAnalyzerErrors(t, prog)

	expectAnalyzerErrorText(t, body(do(assign("this", "nope", num("1")))),
		diagnostics.ErrS013, "The field this.nope has not been declared.")
	expectAnalyzerErrorText(t, body(do(assign("other", "x", num("1")))),
		diagnostics.ErrS022, "Fields can only be assigned through this or super, not through other.")
}

// ---------------------------------------------------------------------------
// S012 / S019 / S021: Operators
// ---------------------------------------------------------------------------

func TestS019_Arithmetic(t *testing.T) {
	cases := map[ast.BinaryOp]string{
		ast.OpPlus:    "The two values being added are not both ints.",
		ast.OpMinus:   "The two values being subtraced are not both ints.",
		ast.OpTimes:   "The two values being multiplied are not both ints.",
		ast.OpDivide:  "The two values being divided are not both ints.",
		ast.OpModulus: "The two values being operated on with % are not both ints.",
		ast.OpLt:      `The two values being compared by "<" are not both ints.`,
		ast.OpGeq:     `The two values being compared by ">=" are not both ints.`,
	}
	for op, msg := range cases {
		expectAnalyzerErrorText(t, body(do(bin(op, num("1"), boolean("true")))), diagnostics.ErrS019, msg)
	}
}

func TestS019_Logical(t *testing.T) {
	expectAnalyzerErrorText(t, body(do(bin(ast.OpAnd, num("1"), boolean("true")))),
		diagnostics.ErrS019, "The two values being operated on with && are not both booleans.")
	expectAnalyzerErrorText(t, body(do(bin(ast.OpOr, boolean("true"), str("s")))),
		diagnostics.ErrS019, "The two values being operated on with || are not both booleans.")
}

func TestS012_Equality(t *testing.T) {
	expectAnalyzerErrorText(t, body(do(bin(ast.OpEq, num("1"), str("s")))),
		diagnostics.ErrS012, "The two values being compared for equality are not compatible types.")
	expectNoAnalyzerErrors(t, body(
		do(bin(ast.OpEq, v("null"), str("s"))),
		do(bin(ast.OpNe, str("s"), ast.NewNew(1, "Object"))),
		do(bin(ast.OpEq, num("1"), num("2"))),
	))
}

func TestS019_Unary(t *testing.T) {
	expectAnalyzerErrorText(t, body(do(unary(ast.OpNeg, boolean("true")))),
		diagnostics.ErrS019, "The value being negated is of type boolean, not int.")
	expectAnalyzerErrorText(t, body(do(unary(ast.OpNot, num("1")))),
		diagnostics.ErrS019, "The not (!) operator applies only to boolean expressions, not int expressions.")
	expectAnalyzerErrorText(t, body(decl("b", boolean("true")), do(unary(ast.OpIncr, v("b")))),
		diagnostics.ErrS019, "The value being incremented is of type boolean, not int.")
}

func TestS021_IncrementTarget(t *testing.T) {
	errs := expectExactly(t, body(do(unary(ast.OpIncr, num("1")))), diagnostics.ErrS021, 1)
	if len(errs) != 1 {
		t.Fatalf("expected only S021:\n%s", dump(errs))
	}
	want := `The  expression being incremented can only be a variable name with an optional "this." or "super." prefix.`
	if errs[0].Message != want {
		t.Fatalf("unexpected message %q", errs[0].Message)
	}

	expectNoAnalyzerErrors(t, body(
		do(unary(ast.OpDecr, ast.NewVar(1, thisRef(), "x"))),
		do(ast.NewUnary(1, ast.OpIncr, v("x"), true)),
	))
}

// ---------------------------------------------------------------------------
// S011 / S012: new, instanceof, cast
// ---------------------------------------------------------------------------

func TestS011_New(t *testing.T) {
	expectAnalyzerErrorText(t, body(do(ast.NewNew(1, "Foo"))), diagnostics.ErrS011, "The type Foo does not exist.")
}

func TestInstanceof(t *testing.T) {
	expectAnalyzerErrorText(t, body(do(ast.NewInstanceof(1, str("s"), "Foo"))),
		diagnostics.ErrS011, "The reference type Foo does not exist.")

	prog := program(class("P", "Object"), class("C", "P"))
	prog.Classes = append(prog.Classes, class("A", "Object", voidMethod("f",
		do(ast.NewInstanceof(1, str("s"), "P")),
	)))
	expectAnalyzerErrorText(t, prog, diagnostics.ErrS012, "You can't compare type Stringto incompatible type P.")

	up := ast.NewInstanceof(1, ast.NewNew(1, "C"), "P")
	down := ast.NewInstanceof(1, ast.NewNew(1, "P"), "C")
	prog = program(class("P", "Object"), class("C", "P", voidMethod("f", do(up), do(down))))
	expectNoAnalyzerErrors(t, prog)
	if !up.UpCheck || down.UpCheck {
		t.Fatalf("unexpected up-check flags: up=%v down=%v", up.UpCheck, down.UpCheck)
	}
	if up.ExprType() != "boolean" {
		t.Fatalf("instanceof must be boolean, got %s", up.ExprType())
	}
}

func TestCast(t *testing.T) {
	inner := num("1")
	undefined := ast.NewCast(1, "Foo", inner)
	expectAnalyzerErrorText(t, body(do(undefined)), diagnostics.ErrS011, "Cast  Foo not a defined type.")
	if undefined.ExprType() != "Object" || inner.ExprType() != "Foo" {
		t.Fatalf("unexpected slots: cast=%s inner=%s", undefined.ExprType(), inner.ExprType())
	}

	source := ast.NewNew(1, "P")
	down := ast.NewCast(1, "C", source)
	expectNoAnalyzerErrors(t, program(class("P", "Object"), class("C", "P", voidMethod("f", do(down)))))
	if down.ExprType() != "C" || source.ExprType() != "C" {
		t.Fatalf("unexpected slots: cast=%s source=%s", down.ExprType(), source.ExprType())
	}
}

// ---------------------------------------------------------------------------
// Whole-program properties
// ---------------------------------------------------------------------------

func messyProgram() *ast.Program {
	return program(
		class("A", "B", field("Foo", "x", nil), voidMethod("f",
			decl("y", v("z")),
			do(bin(ast.OpPlus, boolean("true"), num("1"))),
			do(call(nil, "g", num("1"))),
			ast.NewBreak(7),
		)),
		class("B", "A", method("int", "g", nil)),
		class("S", "String"),
	)
}

func TestExpressionSlotsAlwaysFilled(t *testing.T) {
	prog := messyProgram()
	analyzeProgram(prog)

	ast.Inspect(prog, func(n ast.Node) bool {
		if e, ok := n.(ast.Expression); ok && e.ExprType() == "" {
			t.Errorf("expression %T at line %d has no type", e, e.Line())
		}
		return true
	})
}

func TestAnalysisIsDeterministic(t *testing.T) {
	first := analyzeProgram(messyProgram())
	second := analyzeProgram(messyProgram())
	if len(first) == 0 {
		t.Fatal("expected diagnostics")
	}
	if diff := deep.Equal(first, second); diff != nil {
		t.Error(diff)
	}

	prog := messyProgram()
	again := analyzeProgram(prog)
	if diff := deep.Equal(again, analyzeProgram(prog)); diff != nil {
		t.Errorf("re-analysis of the same tree differs: %v", diff)
	}
}

func TestHandlerAccumulatesAcrossRuns(t *testing.T) {
	handler := diagnostics.NewHandler()
	a := New(handler, Options{})
	prog := body(ast.NewBreak(1))

	if _, err := a.Analyze(prog); err == nil {
		t.Fatal("expected an error")
	}
	if _, err := a.Analyze(prog); err == nil {
		t.Fatal("expected an error")
	}
	if handler.Count() != 2 {
		t.Fatalf("expected 2 accumulated diagnostics, got %d", handler.Count())
	}

	handler.Clear()
	if _, err := a.Analyze(program()); err != nil {
		t.Fatalf("unexpected error after Clear: %v", err)
	}
	if a.Root() == nil || a.ClassMap().Lookup("Main") == nil {
		t.Fatal("expected a populated hierarchy")
	}
}

func TestTypeOf(t *testing.T) {
	sum := bin(ast.OpPlus, v("x"), num("1"))
	cmp := bin(ast.OpLt, v("x"), num("2"))
	prog := body(do(assign("", "x", sum)), decl("s", str("hi")), do(cmp))

	if TypeOf(sum) != "" {
		t.Fatal("nothing is resolved before analysis")
	}
	if errs := analyzeProgram(prog); len(errs) != 0 {
		t.Fatalf("unexpected diagnostics:\n%s", dump(errs))
	}
	if TypeOf(sum) != "int" || TypeOf(cmp) != "boolean" || TypeOf(nil) != "" {
		t.Errorf("got %q and %q", TypeOf(sum), TypeOf(cmp))
	}
}
