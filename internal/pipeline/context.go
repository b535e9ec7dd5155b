package pipeline

import (
	"github.com/funvibe/bantam/internal/ast"
	"github.com/funvibe/bantam/internal/classtree"
	"github.com/funvibe/bantam/internal/diagnostics"
)

// Source is one AST document waiting to be decoded.
type Source struct {
	Name string
	Data []byte
}

// PipelineContext is threaded through every stage of one analysis run.
type PipelineContext struct {
	Sources []Source
	Program *ast.Program

	ClassMap *classtree.ClassMap
	Root     *classtree.Node // Object, once built-ins are installed

	// Handler receives every diagnostic. It is owned by the caller and may
	// already hold records from earlier runs.
	Handler *diagnostics.Handler

	StrictAssignment bool

	// Errors holds failures that are not diagnostics about the program,
	// such as an unreadable document. A run with Errors has no Program.
	Errors []error
}

// NewPipelineContext creates a context for one run reporting into handler.
// A nil handler gets a fresh one.
func NewPipelineContext(handler *diagnostics.Handler) *PipelineContext {
	if handler == nil {
		handler = diagnostics.NewHandler()
	}
	return &PipelineContext{
		ClassMap: classtree.NewClassMap(),
		Handler:  handler,
	}
}

// AddSource queues a document for the decode stage.
func (ctx *PipelineContext) AddSource(name string, data []byte) {
	ctx.Sources = append(ctx.Sources, Source{Name: name, Data: data})
}
