package symbols

import (
	"vischeck/internal/ast"
	"vischeck/internal/source"
)

// DefKind classifies a definition in the item table.
type DefKind uint8

const (
	DefInvalid DefKind = iota
	DefModule
	DefRecord
	DefInterface
	DefImpl
	DefUnion
	DefVariant
	DefMethod
	DefFn
)

func (k DefKind) String() string {
	switch k {
	case DefModule:
		return "module"
	case DefRecord:
		return "record"
	case DefInterface:
		return "interface"
	case DefImpl:
		return "impl"
	case DefUnion:
		return "union"
	case DefVariant:
		return "variant"
	case DefMethod:
		return "method"
	case DefFn:
		return "fn"
	default:
		return "invalid"
	}
}

// MethodKind tells provided (default-bodied) methods from required ones.
// Impl methods are always provided.
type MethodKind uint8

const (
	MethodProvided MethodKind = iota
	MethodRequired
)

func (k MethodKind) String() string {
	if k == MethodRequired {
		return "required"
	}
	return "provided"
}

type Field struct {
	Name string
	Vis  ast.Visibility
	Span source.Span
}

// Def is one entry of the item table.
type Def struct {
	ID     DefID
	Kind   DefKind
	Name   string
	Vis    ast.Visibility
	Span   source.Span
	Parent DefID // variant -> union, method -> impl or interface

	Fields   []Field // record, variant
	Variants []DefID // union, in declaration order
	Methods  []DefID // interface (ordered, indexed by method calls), impl
	Method   MethodKind
}

// LookupField returns the first field named name. Later fields with the
// same name are never consulted.
func LookupField(fields []Field, name string) (*Field, bool) {
	for i := range fields {
		if fields[i].Name == name {
			return &fields[i], true
		}
	}
	return nil, false
}
