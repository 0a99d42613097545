package ast

import (
	"vischeck/internal/source"
)

type PatKind uint8

const (
	PatWild PatKind = iota
	PatBinding
	PatLit
	PatStruct  // R { x, y: p, .. } and Union::V { x, .. }
	PatVariant // Union::V(p0, p1)
	PatTuple
	PatRef
)

var patKindNames = [...]string{
	PatWild:    "wildcard",
	PatBinding: "binding",
	PatLit:     "literal",
	PatStruct:  "struct",
	PatVariant: "variant",
	PatTuple:   "tuple",
	PatRef:     "ref",
}

func (k PatKind) String() string {
	if int(k) < len(patKindNames) {
		return patKindNames[k]
	}
	return "unknown"
}

type Pat struct {
	Kind    PatKind
	Span    source.Span
	Payload PayloadID
}

type PatBindingData struct {
	Name string
	Sub  PatID // name @ sub
}

type PatLitData struct {
	Text string
}

type PatField struct {
	Name string
	Pat  PatID // NoPatID for shorthand `x`
	Span source.Span
}

type PatStructData struct {
	Path   string
	Fields []PatField
	Rest   bool
}

type PatVariantData struct {
	Path  string
	Elems []PatID
}

type PatTupleData struct {
	Elems []PatID
}

type PatRefData struct {
	Inner PatID
}

type Pats struct {
	Arena    *Arena[Pat]
	Bindings *Arena[PatBindingData]
	Lits     *Arena[PatLitData]
	Structs  *Arena[PatStructData]
	Variants *Arena[PatVariantData]
	Tuples   *Arena[PatTupleData]
	Refs     *Arena[PatRefData]
}

func NewPats(capHint uint) *Pats {
	return &Pats{
		Arena:    NewArena[Pat](capHint),
		Bindings: NewArena[PatBindingData](capHint / 2),
		Lits:     NewArena[PatLitData](capHint / 8),
		Structs:  NewArena[PatStructData](capHint / 8),
		Variants: NewArena[PatVariantData](capHint / 8),
		Tuples:   NewArena[PatTupleData](capHint / 8),
		Refs:     NewArena[PatRefData](capHint / 8),
	}
}

func (p *Pats) new(kind PatKind, span source.Span, payload PayloadID) PatID {
	return PatID(p.Arena.Allocate(Pat{Kind: kind, Span: span, Payload: payload}))
}

func (p *Pats) Get(id PatID) *Pat {
	return p.Arena.Get(uint32(id))
}

func (p *Pats) payload(id PatID, kind PatKind) (uint32, bool) {
	pat := p.Get(id)
	if pat == nil || pat.Kind != kind {
		return 0, false
	}
	return uint32(pat.Payload), true
}

func (p *Pats) NewWild(span source.Span) PatID {
	return p.new(PatWild, span, NoPayloadID)
}

func (p *Pats) NewBinding(span source.Span, name string, sub PatID) PatID {
	return p.new(PatBinding, span, PayloadID(p.Bindings.Allocate(PatBindingData{Name: name, Sub: sub})))
}

func (p *Pats) Binding(id PatID) (*PatBindingData, bool) {
	idx, ok := p.payload(id, PatBinding)
	if !ok {
		return nil, false
	}
	data := p.Bindings.Get(idx)
	return data, data != nil
}

func (p *Pats) NewLit(span source.Span, text string) PatID {
	return p.new(PatLit, span, PayloadID(p.Lits.Allocate(PatLitData{Text: text})))
}

func (p *Pats) NewStruct(span source.Span, path string, fields []PatField, rest bool) PatID {
	return p.new(PatStruct, span, PayloadID(p.Structs.Allocate(PatStructData{Path: path, Fields: fields, Rest: rest})))
}

func (p *Pats) Struct(id PatID) (*PatStructData, bool) {
	idx, ok := p.payload(id, PatStruct)
	if !ok {
		return nil, false
	}
	data := p.Structs.Get(idx)
	return data, data != nil
}

func (p *Pats) NewVariant(span source.Span, path string, elems []PatID) PatID {
	return p.new(PatVariant, span, PayloadID(p.Variants.Allocate(PatVariantData{Path: path, Elems: elems})))
}

func (p *Pats) Variant(id PatID) (*PatVariantData, bool) {
	idx, ok := p.payload(id, PatVariant)
	if !ok {
		return nil, false
	}
	data := p.Variants.Get(idx)
	return data, data != nil
}

func (p *Pats) NewTuple(span source.Span, elems []PatID) PatID {
	return p.new(PatTuple, span, PayloadID(p.Tuples.Allocate(PatTupleData{Elems: elems})))
}

func (p *Pats) Tuple(id PatID) (*PatTupleData, bool) {
	idx, ok := p.payload(id, PatTuple)
	if !ok {
		return nil, false
	}
	data := p.Tuples.Get(idx)
	return data, data != nil
}

func (p *Pats) NewRef(span source.Span, inner PatID) PatID {
	return p.new(PatRef, span, PayloadID(p.Refs.Allocate(PatRefData{Inner: inner})))
}

func (p *Pats) Ref(id PatID) (*PatRefData, bool) {
	idx, ok := p.payload(id, PatRef)
	if !ok {
		return nil, false
	}
	data := p.Refs.Get(idx)
	return data, data != nil
}
