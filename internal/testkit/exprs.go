package testkit

import (
	"vischeck/internal/ast"
	"vischeck/internal/symbols"
	"vischeck/internal/types"
)

func (p *Program) RecordType(def symbols.DefID) types.TypeID {
	return p.Types.Interner.Intern(types.MakeRecord(def))
}

func (p *Program) UnionType(def symbols.DefID) types.TypeID {
	return p.Types.Interner.Intern(types.MakeUnion(def))
}

func (p *Program) InterfaceType(def symbols.DefID) types.TypeID {
	return p.Types.Interner.Intern(types.MakeInterface(def))
}

// ParamType is a generic parameter bounded by bound (NoDefID for none).
func (p *Program) ParamType(name string, bound symbols.DefID) types.TypeID {
	return p.Types.Interner.Intern(types.MakeParam(name, bound))
}

func (p *Program) RefType(elem types.TypeID) types.TypeID {
	return p.Types.Interner.Intern(types.MakeReference(elem, false))
}

func (p *Program) Unit() types.TypeID { return p.Types.Interner.Builtins().Unit }
func (p *Program) Int() types.TypeID  { return p.Types.Interner.Builtins().Int }

func (p *Program) typed(id ast.ExprID, ty types.TypeID) ast.ExprID {
	if ty != types.NoTypeID {
		p.Types.SetExpr(id, ty)
	}
	return id
}

// Local is a reference to a local binding of type ty.
func (p *Program) Local(name string, ty types.TypeID) ast.ExprID {
	return p.typed(p.B.Exprs.NewIdent(p.Span(), name), ty)
}

func (p *Program) Lit(text string) ast.ExprID {
	return p.typed(p.B.Exprs.NewLit(p.Span(), text), p.Int())
}

// Read is the field read `base.name` producing ty.
func (p *Program) Read(base ast.ExprID, name string, ty types.TypeID) ast.ExprID {
	sp := p.Span()
	return p.typed(p.B.Exprs.NewField(sp, base, name, p.Span()), ty)
}

// MethodCallee builds `recv.name` resolved as a method with origin.
func (p *Program) MethodCallee(recv ast.ExprID, name string, origin symbols.MethodOrigin) ast.ExprID {
	callee := p.B.Exprs.NewField(p.Span(), recv, name, p.Span())
	p.Syms.RecordMethod(callee, origin)
	return callee
}

// Call builds `recv.name(args...)` and returns the call and the callee.
func (p *Program) Call(recv ast.ExprID, name string, origin symbols.MethodOrigin, args ...ast.ExprID) (call, callee ast.ExprID) {
	callee = p.MethodCallee(recv, name, origin)
	call = p.typed(p.B.Exprs.NewCall(p.Span(), callee, args), p.Unit())
	return call, callee
}

// Construct builds a struct literal of type ty. def is the record or the
// variant the front end resolved the path to.
func (p *Program) Construct(ty types.TypeID, def symbols.DefID, fields ...string) ast.ExprID {
	return p.ConstructFrom(ty, def, ast.NoExprID, fields...)
}

// ConstructFrom is Construct with a functional update base.
func (p *Program) ConstructFrom(ty types.TypeID, def symbols.DefID, base ast.ExprID, fields ...string) ast.ExprID {
	inits := make([]ast.ExprStructField, 0, len(fields))
	for _, f := range fields {
		inits = append(inits, ast.ExprStructField{Name: f, Value: p.Lit("0"), Span: p.Span()})
	}
	id := p.B.Exprs.NewStruct(p.Span(), p.path(def), inits, base)
	if def.IsValid() {
		p.Syms.ExprDefs[id] = def
	}
	return p.typed(id, ty)
}

func (p *Program) path(def symbols.DefID) string {
	d, ok := p.Table().Lookup(def)
	if !ok {
		return ""
	}
	if d.Kind == symbols.DefVariant {
		if parent, ok := p.Table().Lookup(d.Parent); ok {
			return parent.Name + "::" + d.Name
		}
	}
	return d.Name
}

// Deref builds `*operand` producing ty.
func (p *Program) Deref(operand ast.ExprID, ty types.TypeID) ast.ExprID {
	return p.typed(p.B.Exprs.NewUnary(p.Span(), ast.ExprUnaryDeref, operand), ty)
}

// Borrow builds `&operand`.
func (p *Program) Borrow(operand ast.ExprID) ast.ExprID {
	id := p.B.Exprs.NewUnary(p.Span(), ast.ExprUnaryRef, operand)
	if ty, ok := p.Types.ExprTypes[operand]; ok {
		p.typed(id, p.RefType(ty))
	}
	return id
}

func (p *Program) Assign(left, right ast.ExprID) ast.ExprID {
	return p.typed(p.B.Exprs.NewBinary(p.Span(), ast.ExprBinaryAssign, left, right), p.Unit())
}

// Block wraps exprs as expression statements.
func (p *Program) Block(exprs ...ast.ExprID) ast.ExprID {
	stmts := make([]ast.StmtID, 0, len(exprs))
	for _, e := range exprs {
		stmts = append(stmts, p.B.Stmts.NewExpr(p.Span(), e))
	}
	return p.BlockOf(stmts, ast.NoExprID)
}

func (p *Program) BlockOf(stmts []ast.StmtID, tail ast.ExprID) ast.ExprID {
	return p.typed(p.B.Exprs.NewBlock(p.Span(), stmts, tail), p.Unit())
}

func (p *Program) Let(pat ast.PatID, init ast.ExprID) ast.StmtID {
	return p.B.Stmts.NewLet(p.Span(), pat, init)
}

func (p *Program) ExprStmt(e ast.ExprID) ast.StmtID {
	return p.B.Stmts.NewExpr(p.Span(), e)
}

// ItemStmt declares item inside a block.
func (p *Program) ItemStmt(item ast.ItemID) ast.StmtID {
	return p.B.Stmts.NewItem(p.Span(), item)
}

func (p *Program) Match(scrutinee ast.ExprID, arms ...ast.MatchArm) ast.ExprID {
	return p.typed(p.B.Exprs.NewMatch(p.Span(), scrutinee, arms), p.Unit())
}

func Arm(pat ast.PatID, body ast.ExprID) ast.MatchArm {
	return ast.MatchArm{Pat: pat, Body: body}
}

// Bind is a binding pattern of type ty.
func (p *Program) Bind(name string, ty types.TypeID) ast.PatID {
	id := p.B.Pats.NewBinding(p.Span(), name, ast.NoPatID)
	p.Types.SetPat(id, ty)
	return id
}

// Destructure builds `Path { fields.. }` of type ty, def being the record
// or variant the path resolved to.
func (p *Program) Destructure(ty types.TypeID, def symbols.DefID, fields ...string) ast.PatID {
	pf := make([]ast.PatField, 0, len(fields))
	for _, f := range fields {
		pf = append(pf, ast.PatField{Name: f, Span: p.Span()})
	}
	id := p.B.Pats.NewStruct(p.Span(), p.path(def), pf, true)
	if def.IsValid() {
		p.Syms.PatDefs[id] = def
	}
	p.Types.SetPat(id, ty)
	return id
}

func (p *Program) RefPat(inner ast.PatID) ast.PatID {
	id := p.B.Pats.NewRef(p.Span(), inner)
	if ty, ok := p.Types.PatTypes[inner]; ok {
		p.Types.SetPat(id, p.RefType(ty))
	}
	return id
}
