package testkit

import (
	"vischeck/internal/ast"
	"vischeck/internal/symbols"
)

// Foreign registers a dependency unit.
func (p *Program) Foreign(unit symbols.UnitID, name string) {
	if unit == LocalUnit {
		panic("testkit: foreign unit id collides with the local unit")
	}
	p.Table().AddUnit(unit, name)
}

func (p *Program) ForeignRecord(unit symbols.UnitID, name string, fields ...FieldSpec) Decl {
	sp := p.Span()
	_, syms := p.fields(fields)
	def := p.add(unit, symbols.Def{Kind: symbols.DefRecord, Name: name, Vis: ast.VisPublic, Span: sp, Fields: syms})
	return Decl{Def: def, Span: sp}
}

func (p *Program) ForeignUnion(unit symbols.UnitID, name string, variants ...VariantSpec) Decl {
	return p.union(unit, name, ast.VisPublic, variants)
}

func (p *Program) ForeignInterface(unit symbols.UnitID, name string, methods ...MethodSpec) Decl {
	sp := p.Span()
	id := p.Table().NewID(unit)
	_, members := p.methods(unit, id, methods)
	p.add(unit, symbols.Def{ID: id, Kind: symbols.DefInterface, Name: name, Vis: ast.VisPublic, Span: sp, Methods: defsOf(members)})
	return Decl{Def: id, Span: sp, Members: members}
}

// ForeignMethod declares an impl method in unit, owned by a synthetic impl.
func (p *Program) ForeignMethod(unit symbols.UnitID, name string, vis ast.Visibility) symbols.DefID {
	if p.foreignImpls == nil {
		p.foreignImpls = make(map[symbols.UnitID]symbols.DefID)
	}
	impl, ok := p.foreignImpls[unit]
	if !ok {
		impl = p.add(unit, symbols.Def{Kind: symbols.DefImpl, Name: "impl", Span: p.Span()})
		p.foreignImpls[unit] = impl
	}
	_, members := p.methods(unit, impl, []MethodSpec{{Name: name, Vis: vis}})
	def, _ := p.Table().Lookup(impl)
	def.Methods = append(def.Methods, members[0].Def)
	return members[0].Def
}
