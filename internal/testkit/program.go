package testkit

import (
	"fmt"

	"vischeck/internal/ast"
	"vischeck/internal/source"
	"vischeck/internal/symbols"
	"vischeck/internal/types"
)

// LocalUnit is the unit id Program gives the crate under construction.
const LocalUnit symbols.UnitID = 1

const crateExtent = 1 << 20

// Program assembles a crate together with the name-resolution and type
// tables a front end would produce for it. Every node gets a distinct span
// so diagnostics can be matched against the node that caused them.
type Program struct {
	B     *ast.Builder
	Syms  *symbols.Result
	Types *types.Table
	Root  ast.ItemID

	pos          uint32
	foreignImpls map[symbols.UnitID]symbols.DefID
}

// FieldSpec describes a record or variant field.
type FieldSpec struct {
	Name string
	Vis  ast.Visibility
}

// VariantSpec describes a union variant.
type VariantSpec struct {
	Name   string
	Vis    ast.Visibility
	Fields []FieldSpec
}

// MethodSpec describes an interface or impl method.
type MethodSpec struct {
	Name     string
	Vis      ast.Visibility
	Required bool
}

// Member is a variant or method created together with its owner.
type Member struct {
	Name string
	Item ast.ItemID // NoItemID for variants and foreign members
	Def  symbols.DefID
	Span source.Span
}

// Decl is what the declaration helpers return.
type Decl struct {
	Item    ast.ItemID // NoItemID for foreign declarations
	Def     symbols.DefID
	Span    source.Span
	Members []Member
}

func Field(name string, vis ast.Visibility) FieldSpec { return FieldSpec{Name: name, Vis: vis} }

func Variant(name string, vis ast.Visibility, fields ...FieldSpec) VariantSpec {
	return VariantSpec{Name: name, Vis: vis, Fields: fields}
}

func Method(name string, vis ast.Visibility) MethodSpec { return MethodSpec{Name: name, Vis: vis} }

// Required is a bodiless interface method.
func Required(name string) MethodSpec { return MethodSpec{Name: name, Required: true} }

// Member returns the member called name; it panics if there is none.
func (d Decl) Member(name string) Member {
	for _, m := range d.Members {
		if m.Name == name {
			return m
		}
	}
	panic(fmt.Sprintf("testkit: no member %q", name))
}

// NewProgram starts a crate called name with the given crate attributes.
func NewProgram(name string, attrs ...string) *Program {
	b := ast.NewBuilder(ast.Hints{})
	root := b.NewCrate(name, attrs, source.Span{Start: 0, End: crateExtent})
	p := &Program{
		B:     b,
		Syms:  symbols.NewResult(symbols.NewTable(LocalUnit, name)),
		Types: types.NewTable(nil),
		Root:  root,
		pos:   1,
	}
	id := p.add(LocalUnit, symbols.Def{Kind: symbols.DefModule, Name: name, Vis: ast.VisPublic, Span: b.Crate.Span})
	p.Table().BindItem(root, id)
	return p
}

func (p *Program) Table() *symbols.Table { return p.Syms.Table }

// Span allocates a fresh, non-empty span.
func (p *Program) Span() source.Span {
	sp := source.Span{Start: p.pos, End: p.pos + 1}
	p.pos += 2
	if p.pos >= crateExtent {
		panic("testkit: program too large")
	}
	return sp
}

func (p *Program) add(unit symbols.UnitID, def symbols.Def) symbols.DefID {
	if !def.ID.IsValid() {
		def.ID = p.Table().NewID(unit)
	}
	if err := p.Table().Add(def); err != nil {
		panic(err)
	}
	return def.ID
}

func (p *Program) declare(mod, item ast.ItemID, def symbols.DefID) {
	p.Table().BindItem(item, def)
	if mod.IsValid() {
		p.B.Declare(mod, item)
	}
}

// Module declares a submodule of parent.
func (p *Program) Module(parent ast.ItemID, name string) ast.ItemID {
	sp := p.Span()
	item := p.B.Items.NewModule(name, ast.VisPublic, sp)
	def := p.add(LocalUnit, symbols.Def{Kind: symbols.DefModule, Name: name, Vis: ast.VisPublic, Span: sp})
	p.declare(parent, item, def)
	return item
}

func (p *Program) fields(specs []FieldSpec) ([]ast.FieldDecl, []symbols.Field) {
	decls := make([]ast.FieldDecl, 0, len(specs))
	fields := make([]symbols.Field, 0, len(specs))
	for _, f := range specs {
		sp := p.Span()
		decls = append(decls, ast.FieldDecl{Name: f.Name, Vis: f.Vis, Span: sp})
		fields = append(fields, symbols.Field{Name: f.Name, Vis: f.Vis, Span: sp})
	}
	return decls, fields
}

// Record declares a record in mod. An invalid mod leaves the item
// undeclared, for use with ItemStmt.
func (p *Program) Record(mod ast.ItemID, name string, vis ast.Visibility, fields ...FieldSpec) Decl {
	sp := p.Span()
	decls, syms := p.fields(fields)
	item := p.B.Items.NewRecord(name, vis, sp, decls)
	def := p.add(LocalUnit, symbols.Def{Kind: symbols.DefRecord, Name: name, Vis: vis, Span: sp, Fields: syms})
	p.declare(mod, item, def)
	return Decl{Item: item, Def: def, Span: sp}
}

// Union declares a union in mod; Members are its variants.
func (p *Program) Union(mod ast.ItemID, name string, vis ast.Visibility, variants ...VariantSpec) Decl {
	d := p.union(LocalUnit, name, vis, variants)
	decls := make([]ast.VariantDecl, 0, len(variants))
	for i, v := range variants {
		def, _ := p.Table().Lookup(d.Members[i].Def)
		fields := make([]ast.FieldDecl, 0, len(def.Fields))
		for _, f := range def.Fields {
			fields = append(fields, ast.FieldDecl(f))
		}
		decls = append(decls, ast.VariantDecl{Name: v.Name, Vis: v.Vis, Span: d.Members[i].Span, Fields: fields})
	}
	d.Item = p.B.Items.NewUnion(name, vis, d.Span, decls)
	p.declare(mod, d.Item, d.Def)
	return d
}

func (p *Program) union(unit symbols.UnitID, name string, vis ast.Visibility, variants []VariantSpec) Decl {
	sp := p.Span()
	id := p.Table().NewID(unit)
	d := Decl{Def: id, Span: sp}
	ids := make([]symbols.DefID, 0, len(variants))
	for _, v := range variants {
		vsp := p.Span()
		_, fields := p.fields(v.Fields)
		vid := p.add(unit, symbols.Def{Kind: symbols.DefVariant, Name: v.Name, Vis: v.Vis, Span: vsp, Parent: id, Fields: fields})
		ids = append(ids, vid)
		d.Members = append(d.Members, Member{Name: v.Name, Def: vid, Span: vsp})
	}
	p.add(unit, symbols.Def{ID: id, Kind: symbols.DefUnion, Name: name, Vis: vis, Span: sp, Variants: ids})
	return d
}

// methods creates method items (local only) and defs owned by parent.
func (p *Program) methods(unit symbols.UnitID, parent symbols.DefID, specs []MethodSpec) ([]ast.ItemID, []Member) {
	var items []ast.ItemID
	members := make([]Member, 0, len(specs))
	for _, m := range specs {
		sp := p.Span()
		kind := symbols.MethodProvided
		if m.Required {
			kind = symbols.MethodRequired
		}
		def := p.add(unit, symbols.Def{Kind: symbols.DefMethod, Name: m.Name, Vis: m.Vis, Span: sp, Parent: parent, Method: kind})
		mem := Member{Name: m.Name, Def: def, Span: sp}
		if unit == LocalUnit {
			mem.Item = p.B.Items.NewFn(m.Name, m.Vis, sp, nil, ast.NoExprID)
			p.Table().BindItem(mem.Item, def)
			items = append(items, mem.Item)
		}
		members = append(members, mem)
	}
	return items, members
}

// Interface declares an interface in mod. Provided methods get their body
// later through SetBody.
func (p *Program) Interface(mod ast.ItemID, name string, vis ast.Visibility, methods ...MethodSpec) Decl {
	sp := p.Span()
	id := p.Table().NewID(LocalUnit)
	items, members := p.methods(LocalUnit, id, methods)
	p.add(LocalUnit, symbols.Def{ID: id, Kind: symbols.DefInterface, Name: name, Vis: vis, Span: sp, Methods: defsOf(members)})
	item := p.B.Items.NewInterface(name, vis, sp, items)
	p.declare(mod, item, id)
	return Decl{Item: item, Def: id, Span: sp, Members: members}
}

// Impl declares an impl block for self (of iface, when not empty) in mod.
func (p *Program) Impl(mod ast.ItemID, self, iface string, methods ...MethodSpec) Decl {
	sp := p.Span()
	id := p.Table().NewID(LocalUnit)
	items, members := p.methods(LocalUnit, id, methods)
	p.add(LocalUnit, symbols.Def{ID: id, Kind: symbols.DefImpl, Name: self, Vis: ast.VisInherited, Span: sp, Methods: defsOf(members)})
	item := p.B.Items.NewImpl(self, iface, sp, items)
	p.declare(mod, item, id)
	return Decl{Item: item, Def: id, Span: sp, Members: members}
}

// Fn declares a free function in mod.
func (p *Program) Fn(mod ast.ItemID, name string, body ast.ExprID, params ...ast.PatID) Decl {
	sp := p.Span()
	item := p.B.Items.NewFn(name, ast.VisInherited, sp, params, body)
	def := p.add(LocalUnit, symbols.Def{Kind: symbols.DefFn, Name: name, Vis: ast.VisInherited, Span: sp})
	p.declare(mod, item, def)
	return Decl{Item: item, Def: def, Span: sp}
}

// SetBody attaches body to a function or method item.
func (p *Program) SetBody(fn ast.ItemID, body ast.ExprID) {
	data, ok := p.B.Items.Fn(fn)
	if !ok {
		panic(fmt.Sprintf("testkit: item %d is not a function", fn))
	}
	data.Body = body
}

// SetParams replaces the parameter patterns of fn.
func (p *Program) SetParams(fn ast.ItemID, params ...ast.PatID) {
	data, ok := p.B.Items.Fn(fn)
	if !ok {
		panic(fmt.Sprintf("testkit: item %d is not a function", fn))
	}
	data.Params = params
}

func defsOf(members []Member) []symbols.DefID {
	out := make([]symbols.DefID, 0, len(members))
	for _, m := range members {
		out = append(out, m.Def)
	}
	return out
}
