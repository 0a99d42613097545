package privacy

import (
	"context"
	"strconv"

	"vischeck/internal/ast"
	"vischeck/internal/diag"
	"vischeck/internal/source"
	"vischeck/internal/symbols"
	"vischeck/internal/trace"
	"vischeck/internal/types"
)

// Options configures one run of the pass.
type Options struct {
	Reporter diag.Reporter
	Symbols  *symbols.Result
	Types    *types.Table

	// LegacyExports makes Inherited members private. Callers usually take
	// it from the crate attributes via ast.Crate.HasLegacyExports.
	LegacyExports bool
	ForeignUnions ForeignUnionPolicy
}

// Result summarises a completed run.
type Result struct {
	Violations int
	Modules    int // modules entered
	Checks     int // access sites inspected
}

type checker struct {
	ctx     context.Context
	builder *ast.Builder
	syms    *symbols.Result
	table   *symbols.Table
	types   *types.Table
	opts    Options

	scope  Scope
	report reporter
	stats  Result

	tracer   trace.Tracer
	passSpan uint64

	// afterModule is called with the stack depth before entering and
	// after leaving each module.
	afterModule func(mod ast.ItemID, before, after int)
}

// Check walks the whole unit held by builder, starting at the crate root.
// Violations go to opts.Reporter; the returned error is nil unless the walk
// hit an inconsistency, in which case it is an *InternalError.
func Check(ctx context.Context, builder *ast.Builder, opts Options) (Result, error) {
	c, err := newChecker(ctx, builder, opts)
	if err != nil {
		return Result{}, err
	}
	return c.run()
}

func newChecker(ctx context.Context, builder *ast.Builder, opts Options) (*checker, error) {
	if builder == nil {
		return nil, &InternalError{Msg: "no AST to check"}
	}
	if opts.Symbols == nil || opts.Symbols.Table == nil {
		return nil, &InternalError{Msg: "privacy pass run without name resolution results"}
	}
	if opts.Types == nil {
		return nil, &InternalError{Msg: "privacy pass run without type information"}
	}
	if ctx == nil {
		ctx = context.Background()
	}
	return &checker{
		ctx:     ctx,
		builder: builder,
		syms:    opts.Symbols,
		table:   opts.Symbols.Table,
		types:   opts.Types,
		opts:    opts,
		report:  reporter{sink: opts.Reporter},
		tracer:  trace.FromContext(ctx),
	}, nil
}

func (c *checker) run() (res Result, err error) {
	span := trace.Begin(c.tracer, trace.ScopePass, "privacy", trace.ParentSpan(c.ctx))
	c.passSpan = span.ID()
	defer func() {
		if rec := recover(); rec != nil {
			ice, ok := rec.(*InternalError)
			if !ok {
				panic(rec)
			}
			span.WithExtra("ice", ice.Msg).End("failed")
			res, err = c.result(), ice
		}
	}()

	root := c.builder.Crate.Root
	if !root.IsValid() {
		c.report.internal(c.builder.Crate.Span, "crate %q has no root module", c.builder.Crate.Name)
	}
	c.walkModule(root)

	res = c.result()
	span.WithExtra("violations", strconv.Itoa(res.Violations)).
		WithExtra("checks", strconv.Itoa(res.Checks)).
		End("")
	return res, nil
}

func (c *checker) result() Result {
	res := c.stats
	res.Violations = c.report.violations
	return res
}

// debug emits a node-level trace point.
func (c *checker) debug(name string, sp source.Span, detail string) {
	if detail != "" {
		detail = sp.String() + " " + detail
	} else {
		detail = sp.String()
	}
	trace.Point(c.tracer, trace.ScopeNode, name, detail, c.passSpan)
}

func (c *checker) lookup(sp source.Span, id symbols.DefID, what string) *symbols.Def {
	def, ok := c.table.Lookup(id)
	if !ok {
		c.report.internal(sp, "%s %s not found in item table", what, id)
	}
	return def
}

// privileged reports whether local item id is on the privilege stack.
func (c *checker) privileged(id symbols.DefID) bool {
	return c.table.IsLocal(id) && c.scope.Privileged(id)
}
