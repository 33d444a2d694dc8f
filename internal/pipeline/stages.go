package pipeline

import (
	"github.com/chopinballadeno4/static-program-analysis/internal/cfg"
	"github.com/chopinballadeno4/static-program-analysis/internal/constraints"
	"github.com/chopinballadeno4/static-program-analysis/internal/diagnostics"
	"github.com/chopinballadeno4/static-program-analysis/internal/fixpoint"
	"github.com/chopinballadeno4/static-program-analysis/internal/parser"
	"github.com/chopinballadeno4/static-program-analysis/internal/token"
	"github.com/chopinballadeno4/static-program-analysis/internal/unify"
)

// ParseProcessor lexes and parses ctx.Source into ctx.Program.
type ParseProcessor struct{}

func (ParseProcessor) Process(ctx *Context) *Context {
	prog, errs := parser.ParseProgram(ctx.Source)
	ctx.Program = prog
	ctx.Errors = append(ctx.Errors, errs...)
	return ctx
}

// ConstraintAndUnifyProcessor collects type-equality constraints over
// ctx.Program and solves them, populating ctx.UnionFind and
// ctx.RecordFields.
type ConstraintAndUnifyProcessor struct{}

func (ConstraintAndUnifyProcessor) Process(ctx *Context) *Context {
	collector := constraints.NewCollector()
	cs, fields := collector.Collect(ctx.Program)
	ctx.RecordFields = fields

	uc := make([]unify.Constraint, len(cs))
	copy(uc, cs)

	uf, err := unify.Solve(uc)
	ctx.UnionFind = uf
	if err != nil {
		ctx.Errors = append(ctx.Errors, err)
	}
	return ctx
}

// SignAnalysisProcessor builds main's CFG and runs the sign fixed-point
// solver over it.
type SignAnalysisProcessor struct{}

func (SignAnalysisProcessor) Process(ctx *Context) *Context {
	main := ctx.Program.FindFunction("main")
	if main == nil {
		ctx.Errors = append(ctx.Errors, diagnostics.NewError(
			diagnostics.ErrCFG001, token.Token{}, "program has no function named main"))
		return ctx
	}
	g := cfg.Build(main)
	ctx.CFG = g
	ctx.Signs = fixpoint.Solve(g, main)
	return ctx
}

// Default builds the standard analyzer pipeline: parse, then constraint
// collection and unification, then sign analysis over main's CFG. Sign
// analysis runs independently of whether unification succeeded, since the
// two analyses don't depend on each other's results.
func Default() *Pipeline {
	return New(
		ParseProcessor{},
		ConstraintAndUnifyProcessor{},
		SignAnalysisProcessor{},
	)
}
