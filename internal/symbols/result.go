package symbols

import (
	"vischeck/internal/ast"
)

// Result bundles name-resolution and method-resolution output for one unit.
type Result struct {
	Table    *Table
	ExprDefs map[ast.ExprID]DefID // construction expressions -> record or variant
	PatDefs  map[ast.PatID]DefID  // struct patterns -> record or variant
	Methods  map[ast.ExprID]MethodEntry
}

func NewResult(table *Table) *Result {
	return &Result{
		Table:    table,
		ExprDefs: make(map[ast.ExprID]DefID),
		PatDefs:  make(map[ast.PatID]DefID),
		Methods:  make(map[ast.ExprID]MethodEntry),
	}
}

func (r *Result) ExprDef(id ast.ExprID) (DefID, bool) {
	if r == nil {
		return NoDefID, false
	}
	def, ok := r.ExprDefs[id]
	return def, ok
}

func (r *Result) PatDef(id ast.PatID) (DefID, bool) {
	if r == nil {
		return NoDefID, false
	}
	def, ok := r.PatDefs[id]
	return def, ok
}

// MethodOrigin returns the resolved origin if expr was resolved as a method.
func (r *Result) MethodOrigin(expr ast.ExprID) (MethodOrigin, bool) {
	if r == nil {
		return nil, false
	}
	entry, ok := r.Methods[expr]
	if !ok {
		return nil, false
	}
	return entry.Origin(), true
}

// RecordMethod stores origin for the field expression expr.
func (r *Result) RecordMethod(expr ast.ExprID, origin MethodOrigin) {
	if r.Methods == nil {
		r.Methods = make(map[ast.ExprID]MethodEntry)
	}
	r.Methods[expr] = EntryOf(origin)
}
