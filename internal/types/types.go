package types

import (
	"fmt"

	"vischeck/internal/symbols"
)

// TypeID uniquely identifies a type inside the interner.
type TypeID uint32

// NoTypeID marks the absence of a type.
const NoTypeID TypeID = 0

// Kind enumerates the type shapes the checker distinguishes.
type Kind uint8

const (
	KindInvalid Kind = iota
	KindUnit
	KindBool
	KindInt
	KindFloat
	KindString
	KindRecord
	KindUnion
	KindInterface // interface object
	KindParam     // generic type parameter, including Self
	KindReference
	KindTuple
	KindFn
)

func (k Kind) String() string {
	switch k {
	case KindInvalid:
		return "invalid"
	case KindUnit:
		return "unit"
	case KindBool:
		return "bool"
	case KindInt:
		return "int"
	case KindFloat:
		return "float"
	case KindString:
		return "string"
	case KindRecord:
		return "record"
	case KindUnion:
		return "union"
	case KindInterface:
		return "interface"
	case KindParam:
		return "param"
	case KindReference:
		return "reference"
	case KindTuple:
		return "tuple"
	case KindFn:
		return "fn"
	default:
		return fmt.Sprintf("Kind(%d)", k)
	}
}

// Type is a compact, comparable descriptor.
type Type struct {
	Kind    Kind
	Def     symbols.DefID // record, union, interface; bound interface for params
	Elem    TypeID        // reference target
	Mutable bool          // for references
	Name    string        // param name
}

// IsNominal reports whether the type names an item of the item table.
func (t Type) IsNominal() bool {
	switch t.Kind {
	case KindRecord, KindUnion, KindInterface:
		return t.Def.IsValid()
	default:
		return false
	}
}

func MakeRecord(def symbols.DefID) Type    { return Type{Kind: KindRecord, Def: def} }
func MakeUnion(def symbols.DefID) Type     { return Type{Kind: KindUnion, Def: def} }
func MakeInterface(def symbols.DefID) Type { return Type{Kind: KindInterface, Def: def} }

func MakeParam(name string, bound symbols.DefID) Type {
	return Type{Kind: KindParam, Name: name, Def: bound}
}

func MakeReference(elem TypeID, mutable bool) Type {
	return Type{Kind: KindReference, Elem: elem, Mutable: mutable}
}
