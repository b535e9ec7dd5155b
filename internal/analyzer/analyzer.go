package analyzer

import (
	"github.com/tliron/commonlog"

	"github.com/funvibe/bantam/internal/ast"
	"github.com/funvibe/bantam/internal/classtree"
	"github.com/funvibe/bantam/internal/diagnostics"
	"github.com/funvibe/bantam/internal/pipeline"
)

var log = commonlog.GetLogger("bantam.analyzer")

// Options tunes the type checker.
type Options struct {
	// StrictAssignment reports an assignment to a name that was never
	// declared. By default such an assignment declares the name with the
	// type of the right-hand side.
	StrictAssignment bool
}

// Analyzer performs semantic analysis on the AST.
type Analyzer struct {
	handler  *diagnostics.Handler
	options  Options
	classMap *classtree.ClassMap
	root     *classtree.Node
}

// New creates an analyzer reporting into handler. The handler belongs to the
// caller: diagnostics accumulate across Analyze calls until it is cleared.
func New(handler *diagnostics.Handler, options Options) *Analyzer {
	return &Analyzer{
		handler:  handler,
		options:  options,
		classMap: classtree.NewClassMap(),
	}
}

// Analyze checks program and returns the Object node of the class hierarchy.
// If the handler holds any diagnostic afterwards, Analyze returns a
// *diagnostics.CompilationError carrying all of them instead.
//
// The class map is rebuilt from scratch on every call. Expression nodes of
// program have their type slots filled in either case.
func (a *Analyzer) Analyze(program *ast.Program) (*classtree.Node, error) {
	a.classMap.Clear()

	ctx := pipeline.NewPipelineContext(a.handler)
	ctx.ClassMap = a.classMap
	ctx.Program = program
	ctx.StrictAssignment = a.options.StrictAssignment

	ctx = pipeline.New(Stages()...).Run(ctx)
	a.root = ctx.Root

	if a.handler.ErrorsFound() {
		log.Debugf("analysis failed with %d diagnostics", a.handler.Count())
		return nil, &diagnostics.CompilationError{Errors: a.handler.Errors()}
	}
	return a.root, nil
}

// Root returns the Object node built by the last Analyze call, even when
// that call failed.
func (a *Analyzer) Root() *classtree.Node {
	return a.root
}

// ClassMap returns the classes registered by the last Analyze call.
func (a *Analyzer) ClassMap() *classtree.ClassMap {
	return a.classMap
}

// Handler returns the diagnostic sink the analyzer reports into.
func (a *Analyzer) Handler() *diagnostics.Handler {
	return a.handler
}

// TypeOf returns the type resolved for e by the last analysis, or "" if e
// was never checked.
func TypeOf(e ast.Expression) string {
	if e == nil {
		return ""
	}
	return e.ExprType()
}
