package types

import (
	"vischeck/internal/ast"
)

// Table holds the type checker's answers for one compilation unit.
type Table struct {
	Interner  *Interner
	ExprTypes map[ast.ExprID]TypeID
	PatTypes  map[ast.PatID]TypeID
}

func NewTable(in *Interner) *Table {
	if in == nil {
		in = NewInterner()
	}
	return &Table{
		Interner:  in,
		ExprTypes: make(map[ast.ExprID]TypeID),
		PatTypes:  make(map[ast.PatID]TypeID),
	}
}

func (t *Table) SetExpr(id ast.ExprID, ty TypeID) { t.ExprTypes[id] = ty }
func (t *Table) SetPat(id ast.PatID, ty TypeID)   { t.PatTypes[id] = ty }

// ExprType returns the resolved type of expression id.
func (t *Table) ExprType(id ast.ExprID) (Type, bool) {
	if t == nil {
		return Type{}, false
	}
	return t.Interner.Lookup(t.ExprTypes[id])
}

// PatType returns the resolved type of pattern id.
func (t *Table) PatType(id ast.PatID) (Type, bool) {
	if t == nil {
		return Type{}, false
	}
	return t.Interner.Lookup(t.PatTypes[id])
}

// Peel strips references until a non-reference type is reached.
func (t *Table) Peel(ty Type) Type {
	for depth := 0; ty.Kind == KindReference && depth < 64; depth++ {
		next, ok := t.Interner.Lookup(ty.Elem)
		if !ok {
			return Type{}
		}
		ty = next
	}
	return ty
}
