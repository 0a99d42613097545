package privacy

import (
	"strconv"

	"vischeck/internal/ast"
	"vischeck/internal/source"
	"vischeck/internal/trace"
)

func (c *checker) walkModule(id ast.ItemID) {
	item := c.builder.Items.Get(id)
	data, ok := c.builder.Items.Module(id)
	if item == nil || !ok {
		c.report.internal(c.builder.Crate.Span, "item %d is not a module", id)
	}
	c.stats.Modules++
	before := c.scope.Depth()

	span := trace.Begin(c.tracer, trace.ScopeModule, "module "+item.Name, c.passSpan)
	pushed := c.walkModuleItems(data)
	span.WithExtra("privileged", strconv.Itoa(pushed)).End("")

	if c.afterModule != nil {
		c.afterModule(id, before, c.scope.Depth())
	}
}

func (c *checker) walkModuleItems(data *ast.ModuleData) int {
	declared := make([]Declared, 0, len(data.Items))
	for _, itemID := range data.Items {
		item := c.builder.Items.Get(itemID)
		if item == nil {
			c.report.internal(c.builder.Crate.Span, "module lists unknown item %d", itemID)
		}
		if !item.Kind.Privileging() {
			continue
		}
		def, ok := c.table.ItemDef(itemID)
		if !ok {
			c.report.internal(item.Span, "%s `%s` has no item table entry", item.Kind, item.Name)
		}
		declared = append(declared, Declared{ID: def, Kind: item.Kind})
	}

	guard := c.scope.Enter(declared)
	defer guard.Release()

	for _, itemID := range data.Items {
		c.walkItem(itemID)
	}
	return guard.Count()
}

func (c *checker) walkItem(id ast.ItemID) {
	item := c.builder.Items.Get(id)
	if item == nil {
		c.report.internal(c.builder.Crate.Span, "item %d not found", id)
	}
	switch item.Kind {
	case ast.ItemModule:
		c.walkModule(id)
	case ast.ItemFn:
		c.walkFn(id)
	case ast.ItemImpl:
		data, ok := c.builder.Items.Impl(id)
		if !ok {
			c.noPayload(item.Span, "impl")
		}
		for _, m := range data.Methods {
			c.walkFn(m)
		}
	case ast.ItemInterface:
		// provided methods have bodies
		data, ok := c.builder.Items.Interface(id)
		if !ok {
			c.noPayload(item.Span, "interface `"+item.Name+"`")
		}
		for _, m := range data.Methods {
			c.walkFn(m)
		}
	case ast.ItemRecord, ast.ItemUnion:
		// nothing executable
	}
}

func (c *checker) walkFn(id ast.ItemID) {
	fn, ok := c.builder.Items.Fn(id)
	if !ok {
		item := c.builder.Items.Get(id)
		if item == nil {
			c.report.internal(c.builder.Crate.Span, "fn item %d not found", id)
		}
		if item.Kind == ast.ItemFn {
			c.noPayload(item.Span, "fn `"+item.Name+"`")
		}
		c.report.internal(item.Span, "%s `%s` listed as a method", item.Kind, item.Name)
	}
	for _, p := range fn.Params {
		c.walkPat(p)
	}
	if fn.HasBody() {
		c.walkExpr(fn.Body)
	}
}

func (c *checker) walkStmt(id ast.StmtID) {
	stmt := c.builder.Stmts.Get(id)
	if stmt == nil {
		c.report.internal(c.builder.Crate.Span, "statement %d not found", id)
	}
	switch stmt.Kind {
	case ast.StmtLet:
		c.walkPat(stmt.Pat)
		c.walkExpr(stmt.Expr)
	case ast.StmtExpr:
		c.walkExpr(stmt.Expr)
	case ast.StmtItem:
		// items inside bodies are walked but never become privileged
		c.walkItem(stmt.Item)
	}
}

func (c *checker) walkExpr(id ast.ExprID) {
	if !id.IsValid() {
		return
	}
	expr := c.builder.Exprs.Get(id)
	if expr == nil {
		c.report.internal(c.builder.Crate.Span, "expression %d not found", id)
	}
	exprs := c.builder.Exprs
	switch expr.Kind {
	case ast.ExprField:
		data, ok := exprs.Field(id)
		if !ok {
			c.noPayload(expr.Span, expr.Kind.String()+" expression")
		}
		c.checkFieldAccess(id, expr, data)
		c.walkExpr(data.Base)
	case ast.ExprCall:
		data, ok := exprs.Call(id)
		if !ok {
			c.noPayload(expr.Span, expr.Kind.String()+" expression")
		}
		c.walkExpr(data.Callee)
		for _, a := range data.Args {
			c.walkExpr(a)
		}
	case ast.ExprStruct:
		data, ok := exprs.Struct(id)
		if !ok {
			c.noPayload(expr.Span, expr.Kind.String()+" expression")
		}
		c.checkStructExpr(id, expr, data)
		for _, f := range data.Fields {
			c.walkExpr(f.Value)
		}
		c.walkExpr(data.Base)
	case ast.ExprUnary:
		data, ok := exprs.Unary(id)
		if !ok {
			c.noPayload(expr.Span, expr.Kind.String()+" expression")
		}
		if data.Op == ast.ExprUnaryDeref {
			c.checkDeref(expr, data.Operand)
		}
		c.walkExpr(data.Operand)
	case ast.ExprBinary:
		data, ok := exprs.Binary(id)
		if !ok {
			c.noPayload(expr.Span, expr.Kind.String()+" expression")
		}
		c.walkExpr(data.Left)
		c.walkExpr(data.Right)
	case ast.ExprBlock:
		data, ok := exprs.Block(id)
		if !ok {
			c.noPayload(expr.Span, expr.Kind.String()+" expression")
		}
		for _, s := range data.Stmts {
			c.walkStmt(s)
		}
		c.walkExpr(data.Tail)
	case ast.ExprIf:
		data, ok := exprs.If(id)
		if !ok {
			c.noPayload(expr.Span, expr.Kind.String()+" expression")
		}
		c.walkExpr(data.Cond)
		c.walkExpr(data.Then)
		c.walkExpr(data.Else)
	case ast.ExprMatch:
		data, ok := exprs.Match(id)
		if !ok {
			c.noPayload(expr.Span, expr.Kind.String()+" expression")
		}
		c.walkExpr(data.Scrutinee)
		for _, arm := range data.Arms {
			c.walkPat(arm.Pat)
			c.walkExpr(arm.Guard)
			c.walkExpr(arm.Body)
		}
	case ast.ExprReturn:
		data, ok := exprs.Return(id)
		if !ok {
			c.noPayload(expr.Span, expr.Kind.String()+" expression")
		}
		c.walkExpr(data.Value)
	case ast.ExprIndex:
		data, ok := exprs.Index(id)
		if !ok {
			c.noPayload(expr.Span, expr.Kind.String()+" expression")
		}
		c.walkExpr(data.Target)
		c.walkExpr(data.Index)
	case ast.ExprTuple:
		data, ok := exprs.Tuple(id)
		if !ok {
			c.noPayload(expr.Span, expr.Kind.String()+" expression")
		}
		for _, e := range data.Elems {
			c.walkExpr(e)
		}
	case ast.ExprIdent, ast.ExprLit:
	}
}

func (c *checker) walkPat(id ast.PatID) {
	if !id.IsValid() {
		return
	}
	pat := c.builder.Pats.Get(id)
	if pat == nil {
		c.report.internal(c.builder.Crate.Span, "pattern %d not found", id)
	}
	pats := c.builder.Pats
	switch pat.Kind {
	case ast.PatBinding:
		data, ok := pats.Binding(id)
		if !ok {
			c.noPayload(pat.Span, pat.Kind.String()+" pattern")
		}
		c.walkPat(data.Sub)
	case ast.PatStruct:
		data, ok := pats.Struct(id)
		if !ok {
			c.noPayload(pat.Span, pat.Kind.String()+" pattern")
		}
		c.checkStructPat(id, pat, data)
		for _, f := range data.Fields {
			c.walkPat(f.Pat)
		}
	case ast.PatVariant:
		data, ok := pats.Variant(id)
		if !ok {
			c.noPayload(pat.Span, pat.Kind.String()+" pattern")
		}
		for _, e := range data.Elems {
			c.walkPat(e)
		}
	case ast.PatTuple:
		data, ok := pats.Tuple(id)
		if !ok {
			c.noPayload(pat.Span, pat.Kind.String()+" pattern")
		}
		for _, e := range data.Elems {
			c.walkPat(e)
		}
	case ast.PatRef:
		data, ok := pats.Ref(id)
		if !ok {
			c.noPayload(pat.Span, pat.Kind.String()+" pattern")
		}
		c.walkPat(data.Inner)
	case ast.PatWild, ast.PatLit:
	}
}

// noPayload aborts on a node whose payload index is outside its arena.
func (c *checker) noPayload(sp source.Span, what string) {
	c.report.internal(sp, "%s has no payload", what)
}
