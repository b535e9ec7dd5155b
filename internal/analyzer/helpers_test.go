package analyzer

import (
	"errors"
	"strings"
	"testing"

	"github.com/funvibe/bantam/internal/ast"
	"github.com/funvibe/bantam/internal/diagnostics"
)

const testFile = "test.btm"

// AST builders. Every node is placed on line 1 unless a test needs ordering.

func class(name, parent string, members ...ast.Member) *ast.Class {
	return ast.NewClass(1, testFile, name, parent, members...)
}

func mainClass() *ast.Class {
	return class("Main", "Object", ast.NewMethod(1, "void", "main", nil))
}

// program prepends a valid Main class to classes.
func program(classes ...*ast.Class) *ast.Program {
	return &ast.Program{Classes: append([]*ast.Class{mainClass()}, classes...)}
}

func voidMethod(name string, body ...ast.Statement) *ast.Method {
	return ast.NewMethod(1, "void", name, nil, body...)
}

func method(ret, name string, formals []*ast.Formal, body ...ast.Statement) *ast.Method {
	return ast.NewMethod(1, ret, name, formals, body...)
}

func params(fs ...*ast.Formal) []*ast.Formal { return fs }

func param(typ, name string) *ast.Formal { return ast.NewFormal(1, typ, name) }

func field(typ, name string, init ast.Expression) *ast.Field {
	return ast.NewField(1, typ, name, init)
}

func v(name string) *ast.VarExpr             { return ast.NewVar(1, nil, name) }
func thisRef() *ast.VarExpr                  { return v("this") }
func superRef() *ast.VarExpr                 { return v("super") }
func num(n string) *ast.ConstIntExpr         { return ast.NewInt(1, n) }
func boolean(b string) *ast.ConstBooleanExpr { return ast.NewBoolean(1, b) }
func str(s string) *ast.ConstStringExpr      { return ast.NewString(1, s) }

func call(ref ast.Expression, name string, args ...ast.Expression) *ast.DispatchExpr {
	return ast.NewDispatch(1, ref, name, args...)
}

func bin(op ast.BinaryOp, l, r ast.Expression) *ast.BinaryExpr { return ast.NewBinary(1, op, l, r) }

func do(e ast.Expression) ast.Statement { return ast.NewExprStmt(1, e) }

func decl(name string, init ast.Expression) ast.Statement { return ast.NewDecl(1, name, init) }

func ret(e ast.Expression) ast.Statement { return ast.NewReturn(1, e) }

// analyzeWith runs a fresh analyzer with its own handler.
func analyzeWith(prog *ast.Program, opts Options) ([]*diagnostics.DiagnosticError, *Analyzer) {
	a := New(diagnostics.NewHandler(), opts)
	_, err := a.Analyze(prog)
	var ce *diagnostics.CompilationError
	if errors.As(err, &ce) {
		return ce.Errors, a
	}
	return nil, a
}

func analyzeProgram(prog *ast.Program) []*diagnostics.DiagnosticError {
	errs, _ := analyzeWith(prog, Options{})
	return errs
}

func dump(errs []*diagnostics.DiagnosticError) string {
	var msgs []string
	for _, e := range errs {
		msgs = append(msgs, string(e.Code)+" "+e.Error())
	}
	return strings.Join(msgs, "\n")
}

func countCode(errs []*diagnostics.DiagnosticError, code diagnostics.ErrorCode) int {
	n := 0
	for _, e := range errs {
		if e.Code == code {
			n++
		}
	}
	return n
}

// expectAnalyzerError asserts that at least one error with the given code is produced.
func expectAnalyzerError(t *testing.T, prog *ast.Program, code diagnostics.ErrorCode) *diagnostics.DiagnosticError {
	t.Helper()
	errs := analyzeProgram(prog)
	for _, e := range errs {
		if e.Code == code {
			return e
		}
	}
	t.Fatalf("expected error %s, got:\n%s", code, dump(errs))
	return nil
}

// expectAnalyzerErrorText asserts an error with the given code and exact message.
func expectAnalyzerErrorText(t *testing.T, prog *ast.Program, code diagnostics.ErrorCode, message string) {
	t.Helper()
	errs := analyzeProgram(prog)
	for _, e := range errs {
		if e.Code == code && e.Message == message {
			return
		}
	}
	t.Fatalf("expected %s %q, got:\n%s", code, message, dump(errs))
}

// expectExactly asserts that code occurs exactly n times.
func expectExactly(t *testing.T, prog *ast.Program, code diagnostics.ErrorCode, n int) []*diagnostics.DiagnosticError {
	t.Helper()
	errs := analyzeProgram(prog)
	if got := countCode(errs, code); got != n {
		t.Fatalf("expected %d x %s, got %d:\n%s", n, code, got, dump(errs))
	}
	return errs
}

// expectNoAnalyzerErrors asserts that analysis produces no errors.
func expectNoAnalyzerErrors(t *testing.T, prog *ast.Program) {
	t.Helper()
	if errs := analyzeProgram(prog); len(errs) > 0 {
		t.Fatalf("expected no errors, got:\n%s", dump(errs))
	}
}
