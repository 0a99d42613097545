package symbols

import "fmt"

// UnitID identifies a compilation unit. Ids are assigned by the loader;
// the unit being checked is Table.Local.
type UnitID uint32

// DefID is a definition identifier, unique within its owning unit.
type DefID struct {
	Unit  UnitID
	Local uint32
}

var NoDefID = DefID{}

// IsValid reports whether id refers to a definition. Local index 0 is reserved.
func (id DefID) IsValid() bool { return id.Local != 0 }

func (id DefID) String() string {
	return fmt.Sprintf("%d:%d", id.Unit, id.Local)
}
