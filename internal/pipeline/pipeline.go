// Package pipeline wires the analyzer's passes (lex, parse, collect
// constraints, unify, build CFG, solve signs) into a single ordered run
// over a shared Context, the way a staged compiler chains Processors over
// a shared context object.
package pipeline

import (
	"github.com/google/uuid"

	"github.com/chopinballadeno4/static-program-analysis/internal/ast"
	"github.com/chopinballadeno4/static-program-analysis/internal/cfg"
	"github.com/chopinballadeno4/static-program-analysis/internal/diagnostics"
	"github.com/chopinballadeno4/static-program-analysis/internal/fixpoint"
	"github.com/chopinballadeno4/static-program-analysis/internal/unify"
)

// Context carries one source file's state through every stage. Each
// Processor reads the fields earlier stages populated and writes its own.
type Context struct {
	RunID    string
	FilePath string
	Source   string

	Program      *ast.Program
	RecordFields map[string]bool
	UnionFind    *unify.UnionFind
	CFG          *cfg.Graph
	Signs        *fixpoint.Result

	Errors []*diagnostics.DiagnosticError
}

// NewContext starts a fresh run over source, tagging it with a unique
// run identity for correlating diagnostics across concurrent runs.
func NewContext(filePath, source string) *Context {
	return &Context{
		RunID:    uuid.NewString(),
		FilePath: filePath,
		Source:   source,
	}
}

// Fatal reports whether any stage has recorded an unrecoverable error.
func (c *Context) Fatal() bool { return len(c.Errors) > 0 }

// Processor is one pipeline stage.
type Processor interface {
	Process(ctx *Context) *Context
}

// Pipeline runs a fixed sequence of Processors over a Context.
type Pipeline struct {
	processors []Processor
}

// New builds a Pipeline from an ordered list of stages.
func New(processors ...Processor) *Pipeline {
	return &Pipeline{processors: processors}
}

// Run executes every stage in order. Stages run even after an earlier one
// records an error, so a single invocation collects diagnostics from
// every pass instead of stopping at the first failure.
func (p *Pipeline) Run(ctx *Context) *Context {
	for _, proc := range p.processors {
		ctx = proc.Process(ctx)
	}
	return ctx
}
