package ast

import (
	"vischeck/internal/source"
)

type StmtKind uint8

const (
	StmtLet StmtKind = iota
	StmtExpr
	StmtItem // item declared inside a block
)

// Stmt keeps its operands inline: each kind uses at most one of them.
type Stmt struct {
	Kind StmtKind
	Span source.Span
	Pat  PatID  // StmtLet
	Expr ExprID // StmtLet initializer (optional), StmtExpr
	Item ItemID // StmtItem
}

type Stmts struct {
	Arena *Arena[Stmt]
}

func NewStmts(capHint uint) *Stmts {
	return &Stmts{Arena: NewArena[Stmt](capHint)}
}

func (s *Stmts) Get(id StmtID) *Stmt {
	return s.Arena.Get(uint32(id))
}

func (s *Stmts) NewLet(span source.Span, pat PatID, init ExprID) StmtID {
	return StmtID(s.Arena.Allocate(Stmt{Kind: StmtLet, Span: span, Pat: pat, Expr: init}))
}

func (s *Stmts) NewExpr(span source.Span, expr ExprID) StmtID {
	return StmtID(s.Arena.Allocate(Stmt{Kind: StmtExpr, Span: span, Expr: expr}))
}

func (s *Stmts) NewItem(span source.Span, item ItemID) StmtID {
	return StmtID(s.Arena.Allocate(Stmt{Kind: StmtItem, Span: span, Item: item}))
}
