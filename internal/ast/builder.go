package ast

import (
	"vischeck/internal/source"
)

type Hints struct{ Items, Stmts, Exprs, Pats uint }

// Builder owns every arena of one compilation unit.
type Builder struct {
	Crate Crate
	Items *Items
	Stmts *Stmts
	Exprs *Exprs
	Pats  *Pats
}

func NewBuilder(hints Hints) *Builder {
	if hints.Items == 0 {
		hints.Items = 1 << 7
	}
	if hints.Stmts == 0 {
		hints.Stmts = 1 << 8
	}
	if hints.Exprs == 0 {
		hints.Exprs = 1 << 9
	}
	if hints.Pats == 0 {
		hints.Pats = 1 << 7
	}
	return &Builder{
		Items: NewItems(hints.Items),
		Stmts: NewStmts(hints.Stmts),
		Exprs: NewExprs(hints.Exprs),
		Pats:  NewPats(hints.Pats),
	}
}

// NewCrate initialises the crate header and allocates its root module.
func (b *Builder) NewCrate(name string, attrs []string, sp source.Span) ItemID {
	root := b.Items.NewModule(name, VisPublic, sp)
	b.Crate = Crate{Name: name, Attrs: attrs, Root: root, Span: sp}
	return root
}

// Declare attaches an already allocated item to module mod.
func (b *Builder) Declare(mod, item ItemID) {
	if !b.Items.AddToModule(mod, item) {
		panic("ast: Declare target is not a module")
	}
}
