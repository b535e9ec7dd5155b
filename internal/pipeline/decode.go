package pipeline

import "github.com/funvibe/bantam/internal/ast"

// DecodeProcessor turns every queued source into classes of a single Program,
// keeping argument order.
type DecodeProcessor struct{}

func (dp *DecodeProcessor) Process(ctx *PipelineContext) *PipelineContext {
	if len(ctx.Sources) == 0 {
		return ctx
	}

	program := &ast.Program{}
	for _, src := range ctx.Sources {
		prog, err := ast.Decode(src.Data, src.Name)
		if err != nil {
			ctx.Errors = append(ctx.Errors, err)
			continue
		}
		program.Classes = append(program.Classes, prog.Classes...)
	}

	if len(ctx.Errors) == 0 {
		ctx.Program = program
	}
	return ctx
}
