package types

import (
	"fmt"

	"fortio.org/safecast"
)

// Builtins stores TypeIDs for common primitive types.
type Builtins struct {
	Unit   TypeID
	Bool   TypeID
	Int    TypeID
	Float  TypeID
	String TypeID
}

// Interner provides stable TypeIDs for structurally equal descriptors.
type Interner struct {
	Types []Type // index 0 is the invalid sentinel

	index map[Type]TypeID
}

// NewInterner constructs an interner seeded with built-in primitives.
func NewInterner() *Interner {
	in := &Interner{
		Types: []Type{{Kind: KindInvalid}},
		index: make(map[Type]TypeID, 64),
	}
	for _, k := range []Kind{KindUnit, KindBool, KindInt, KindFloat, KindString} {
		in.Intern(Type{Kind: k})
	}
	return in
}

// Builtins returns TypeIDs for primitive types.
func (in *Interner) Builtins() Builtins {
	return Builtins{
		Unit:   in.Intern(Type{Kind: KindUnit}),
		Bool:   in.Intern(Type{Kind: KindBool}),
		Int:    in.Intern(Type{Kind: KindInt}),
		Float:  in.Intern(Type{Kind: KindFloat}),
		String: in.Intern(Type{Kind: KindString}),
	}
}

// Intern ensures the provided descriptor has a stable TypeID.
func (in *Interner) Intern(t Type) TypeID {
	if t.Kind == KindInvalid {
		return NoTypeID
	}
	in.ensureIndex()
	if id, ok := in.index[t]; ok {
		return id
	}
	n, err := safecast.Conv[uint32](len(in.Types))
	if err != nil {
		panic(fmt.Errorf("len(types) overflow: %w", err))
	}
	id := TypeID(n)
	in.Types = append(in.Types, t)
	in.index[t] = id
	return id
}

// Lookup returns the descriptor for a TypeID.
func (in *Interner) Lookup(id TypeID) (Type, bool) {
	if in == nil || id == NoTypeID || int(id) >= len(in.Types) {
		return Type{}, false
	}
	return in.Types[id], true
}

// ensureIndex rebuilds the dedup map after Types was decoded.
func (in *Interner) ensureIndex() {
	if in.index != nil {
		return
	}
	if len(in.Types) == 0 {
		in.Types = []Type{{Kind: KindInvalid}}
	}
	in.index = make(map[Type]TypeID, len(in.Types))
	for i := 1; i < len(in.Types); i++ {
		in.index[in.Types[i]] = TypeID(i) // #nosec G115 -- bounded by Intern
	}
}
