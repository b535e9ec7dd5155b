package analyzer

import (
	"errors"

	"github.com/funvibe/bantam/internal/pipeline"
)

// Stages returns the analysis stages in the order they must run. Each stage
// completes over the whole program before the next begins.
func Stages() []pipeline.Processor {
	return []pipeline.Processor{
		&BuiltinsProcessor{},
		&ClassMapProcessor{},
		&InheritanceProcessor{},
		&MemberTablesProcessor{},
		&MainMethodProcessor{},
		&TypeCheckProcessor{},
	}
}

func logStage(stage string, ctx *pipeline.PipelineContext) {
	log.Debugf("%s: %d classes, %d diagnostics", stage, ctx.ClassMap.Len(), ctx.Handler.Count())
}

// BuiltinsProcessor installs Object, String, TextIO and Sys.
type BuiltinsProcessor struct{}

func (bp *BuiltinsProcessor) Process(ctx *pipeline.PipelineContext) *pipeline.PipelineContext {
	if ctx.Program == nil {
		return ctx
	}
	ctx.Root = installBuiltins(ctx.ClassMap)
	logStage("builtins", ctx)
	return ctx
}

// ClassMapProcessor registers user classes.
type ClassMapProcessor struct{}

func (cp *ClassMapProcessor) Process(ctx *pipeline.PipelineContext) *pipeline.PipelineContext {
	if ctx.Program == nil {
		return ctx
	}
	buildClassMap(ctx.Program, ctx.ClassMap, ctx.Handler)
	logStage("class map", ctx)
	return ctx
}

// InheritanceProcessor links parents and breaks cycles.
type InheritanceProcessor struct{}

func (ip *InheritanceProcessor) Process(ctx *pipeline.PipelineContext) *pipeline.PipelineContext {
	if ctx.Program == nil || ctx.Root == nil {
		return ctx
	}
	buildInheritance(ctx.ClassMap, ctx.Root, ctx.Handler)
	logStage("inheritance", ctx)
	return ctx
}

// MemberTablesProcessor fills field and method tables.
type MemberTablesProcessor struct{}

func (mp *MemberTablesProcessor) Process(ctx *pipeline.PipelineContext) *pipeline.PipelineContext {
	if ctx.Program == nil || ctx.Root == nil {
		return ctx
	}
	buildMemberTables(ctx.ClassMap, ctx.Handler)
	logStage("member tables", ctx)
	return ctx
}

// MainMethodProcessor requires class Main with void main().
type MainMethodProcessor struct{}

func (mp *MainMethodProcessor) Process(ctx *pipeline.PipelineContext) *pipeline.PipelineContext {
	if ctx.Program == nil {
		return ctx
	}
	checkMainMethod(ctx.Program, ctx.Handler)
	logStage("main method", ctx)
	return ctx
}

// TypeCheckProcessor type-checks every user class.
type TypeCheckProcessor struct{}

func (tp *TypeCheckProcessor) Process(ctx *pipeline.PipelineContext) *pipeline.PipelineContext {
	if ctx.Program == nil || ctx.Root == nil {
		return ctx
	}
	newTypeChecker(ctx.ClassMap, ctx.Handler, ctx.StrictAssignment).checkProgram(ctx.Program)
	logStage("type check", ctx)
	return ctx
}

// SemanticAnalyzerProcessor runs a full analysis of ctx.Program as one stage
// of a larger pipeline, after decoding.
type SemanticAnalyzerProcessor struct{}

func (sap *SemanticAnalyzerProcessor) Process(ctx *pipeline.PipelineContext) *pipeline.PipelineContext {
	if ctx.Program == nil {
		return ctx
	}
	ctx.ClassMap.Clear()
	return pipeline.New(Stages()...).Run(ctx)
}

// CheckSources decodes sources into one program, in order, and analyzes it
// with a fresh handler. A document that cannot be decoded fails the whole run
// before any analysis.
func CheckSources(sources []pipeline.Source, options Options) (*pipeline.PipelineContext, error) {
	ctx := pipeline.NewPipelineContext(nil)
	ctx.Sources = sources
	ctx.StrictAssignment = options.StrictAssignment

	ctx = pipeline.New(&pipeline.DecodeProcessor{}, &SemanticAnalyzerProcessor{}).Run(ctx)
	if len(ctx.Errors) > 0 {
		return nil, errors.Join(ctx.Errors...)
	}
	log.Debugf("analyzed %d classes from %d sources", ctx.ClassMap.Len(), len(sources))
	return ctx, nil
}
