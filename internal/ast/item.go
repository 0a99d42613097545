package ast

import (
	"vischeck/internal/source"
)

type ItemKind uint8

const (
	ItemModule ItemKind = iota
	ItemRecord
	ItemInterface
	ItemImpl
	ItemUnion
	ItemFn
)

func (k ItemKind) String() string {
	switch k {
	case ItemModule:
		return "module"
	case ItemRecord:
		return "record"
	case ItemInterface:
		return "interface"
	case ItemImpl:
		return "impl"
	case ItemUnion:
		return "union"
	case ItemFn:
		return "fn"
	default:
		return "unknown"
	}
}

// Privileging reports whether items of this kind grant access to their
// private members to code lexically inside the declaring module.
func (k ItemKind) Privileging() bool {
	switch k {
	case ItemRecord, ItemInterface, ItemImpl, ItemUnion:
		return true
	default:
		return false
	}
}

type Item struct {
	Kind    ItemKind
	Name    string
	Vis     Visibility
	Span    source.Span
	Payload PayloadID
}

type ModuleData struct {
	Items []ItemID
}

type FieldDecl struct {
	Name string
	Vis  Visibility
	Span source.Span
}

type RecordData struct {
	Fields []FieldDecl
}

type VariantDecl struct {
	Name   string
	Vis    Visibility
	Span   source.Span
	Fields []FieldDecl
}

type UnionData struct {
	Variants []VariantDecl
}

// InterfaceData lists methods in declaration order; method call resolution
// refers to them by index.
type InterfaceData struct {
	Methods []ItemID
}

type ImplData struct {
	Self      string
	Interface string // пусто для inherent impl
	Methods   []ItemID
}

// FnData is a free function, an impl method or an interface method.
// Interface methods without a body are required methods.
type FnData struct {
	Params []PatID
	Body   ExprID
}

func (f *FnData) HasBody() bool { return f != nil && f.Body.IsValid() }

type Items struct {
	Arena      *Arena[Item]
	Modules    *Arena[ModuleData]
	Records    *Arena[RecordData]
	Unions     *Arena[UnionData]
	Interfaces *Arena[InterfaceData]
	Impls      *Arena[ImplData]
	Fns        *Arena[FnData]
}

func NewItems(capHint uint) *Items {
	return &Items{
		Arena:      NewArena[Item](capHint),
		Modules:    NewArena[ModuleData](capHint / 8),
		Records:    NewArena[RecordData](capHint / 4),
		Unions:     NewArena[UnionData](capHint / 8),
		Interfaces: NewArena[InterfaceData](capHint / 8),
		Impls:      NewArena[ImplData](capHint / 4),
		Fns:        NewArena[FnData](capHint / 2),
	}
}

func (i *Items) new(kind ItemKind, name string, vis Visibility, span source.Span, payload PayloadID) ItemID {
	return ItemID(i.Arena.Allocate(Item{Kind: kind, Name: name, Vis: vis, Span: span, Payload: payload}))
}

func (i *Items) Get(id ItemID) *Item {
	return i.Arena.Get(uint32(id))
}

func (i *Items) NewModule(name string, vis Visibility, span source.Span) ItemID {
	payload := PayloadID(i.Modules.Allocate(ModuleData{}))
	return i.new(ItemModule, name, vis, span, payload)
}

func (i *Items) Module(id ItemID) (*ModuleData, bool) {
	item := i.Get(id)
	if item == nil || item.Kind != ItemModule {
		return nil, false
	}
	data := i.Modules.Get(uint32(item.Payload))
	return data, data != nil
}

// AddToModule appends item to the direct item list of module mod.
func (i *Items) AddToModule(mod, item ItemID) bool {
	data, ok := i.Module(mod)
	if !ok || data == nil {
		return false
	}
	data.Items = append(data.Items, item)
	return true
}

func (i *Items) NewRecord(name string, vis Visibility, span source.Span, fields []FieldDecl) ItemID {
	payload := PayloadID(i.Records.Allocate(RecordData{Fields: fields}))
	return i.new(ItemRecord, name, vis, span, payload)
}

func (i *Items) Record(id ItemID) (*RecordData, bool) {
	item := i.Get(id)
	if item == nil || item.Kind != ItemRecord {
		return nil, false
	}
	data := i.Records.Get(uint32(item.Payload))
	return data, data != nil
}

func (i *Items) NewUnion(name string, vis Visibility, span source.Span, variants []VariantDecl) ItemID {
	payload := PayloadID(i.Unions.Allocate(UnionData{Variants: variants}))
	return i.new(ItemUnion, name, vis, span, payload)
}

func (i *Items) Union(id ItemID) (*UnionData, bool) {
	item := i.Get(id)
	if item == nil || item.Kind != ItemUnion {
		return nil, false
	}
	data := i.Unions.Get(uint32(item.Payload))
	return data, data != nil
}

func (i *Items) NewInterface(name string, vis Visibility, span source.Span, methods []ItemID) ItemID {
	payload := PayloadID(i.Interfaces.Allocate(InterfaceData{Methods: methods}))
	return i.new(ItemInterface, name, vis, span, payload)
}

func (i *Items) Interface(id ItemID) (*InterfaceData, bool) {
	item := i.Get(id)
	if item == nil || item.Kind != ItemInterface {
		return nil, false
	}
	data := i.Interfaces.Get(uint32(item.Payload))
	return data, data != nil
}

func (i *Items) NewImpl(self, iface string, span source.Span, methods []ItemID) ItemID {
	payload := PayloadID(i.Impls.Allocate(ImplData{Self: self, Interface: iface, Methods: methods}))
	return i.new(ItemImpl, self, VisInherited, span, payload)
}

func (i *Items) Impl(id ItemID) (*ImplData, bool) {
	item := i.Get(id)
	if item == nil || item.Kind != ItemImpl {
		return nil, false
	}
	data := i.Impls.Get(uint32(item.Payload))
	return data, data != nil
}

func (i *Items) NewFn(name string, vis Visibility, span source.Span, params []PatID, body ExprID) ItemID {
	payload := PayloadID(i.Fns.Allocate(FnData{Params: params, Body: body}))
	return i.new(ItemFn, name, vis, span, payload)
}

func (i *Items) Fn(id ItemID) (*FnData, bool) {
	item := i.Get(id)
	if item == nil || item.Kind != ItemFn {
		return nil, false
	}
	data := i.Fns.Get(uint32(item.Payload))
	return data, data != nil
}
