package symbols

import (
	"fmt"

	"vischeck/internal/ast"
)

// Unit names a compilation unit known to the table.
type Unit struct {
	ID   UnitID
	Name string
}

// Table is the item table of one check: definitions of the local unit plus
// whatever foreign definitions the loader imported from dependencies.
type Table struct {
	Local    UnitID
	Units    []Unit
	Defs     []Def
	ItemDefs map[ast.ItemID]DefID

	index map[DefID]int
	next  map[UnitID]uint32
}

func NewTable(local UnitID, name string) *Table {
	return &Table{
		Local:    local,
		Units:    []Unit{{ID: local, Name: name}},
		ItemDefs: make(map[ast.ItemID]DefID),
	}
}

// AddUnit registers a foreign unit name.
func (t *Table) AddUnit(id UnitID, name string) {
	for _, u := range t.Units {
		if u.ID == id {
			return
		}
	}
	t.Units = append(t.Units, Unit{ID: id, Name: name})
}

// UnitName returns the registered name of unit id.
func (t *Table) UnitName(id UnitID) string {
	for _, u := range t.Units {
		if u.ID == id {
			return u.Name
		}
	}
	return fmt.Sprintf("unit#%d", id)
}

// IsLocal reports whether id belongs to the unit being checked.
func (t *Table) IsLocal(id DefID) bool {
	return id.Unit == t.Local
}

// NewID allocates the next unused local index within unit.
func (t *Table) NewID(unit UnitID) DefID {
	t.ensureIndex()
	n := t.next[unit] + 1
	t.next[unit] = n
	return DefID{Unit: unit, Local: n}
}

// Add inserts def. Ids must be valid and unique.
func (t *Table) Add(def Def) error {
	if !def.ID.IsValid() {
		return fmt.Errorf("symbols: invalid def id for %q", def.Name)
	}
	t.ensureIndex()
	if _, dup := t.index[def.ID]; dup {
		return fmt.Errorf("symbols: duplicate def %s (%q)", def.ID, def.Name)
	}
	t.Defs = append(t.Defs, def)
	t.index[def.ID] = len(t.Defs) - 1
	if def.ID.Local > t.next[def.ID.Unit] {
		t.next[def.ID.Unit] = def.ID.Local
	}
	return nil
}

// Lookup returns the definition for id.
func (t *Table) Lookup(id DefID) (*Def, bool) {
	if t == nil || !id.IsValid() {
		return nil, false
	}
	t.ensureIndex()
	idx, ok := t.index[id]
	if !ok {
		return nil, false
	}
	return &t.Defs[idx], true
}

// BindItem records that AST item item declares def.
func (t *Table) BindItem(item ast.ItemID, def DefID) {
	if t.ItemDefs == nil {
		t.ItemDefs = make(map[ast.ItemID]DefID)
	}
	t.ItemDefs[item] = def
}

// ItemDef returns the definition declared by a local AST item.
func (t *Table) ItemDef(item ast.ItemID) (DefID, bool) {
	if t == nil {
		return NoDefID, false
	}
	id, ok := t.ItemDefs[item]
	return id, ok
}

// Reindex rebuilds lookup indexes, e.g. after Defs was decoded from a snapshot.
func (t *Table) Reindex() error {
	t.index = make(map[DefID]int, len(t.Defs))
	t.next = make(map[UnitID]uint32)
	for i := range t.Defs {
		id := t.Defs[i].ID
		if !id.IsValid() {
			return fmt.Errorf("symbols: invalid def id at %d (%q)", i, t.Defs[i].Name)
		}
		if _, dup := t.index[id]; dup {
			return fmt.Errorf("symbols: duplicate def %s (%q)", id, t.Defs[i].Name)
		}
		t.index[id] = i
		if id.Local > t.next[id.Unit] {
			t.next[id.Unit] = id.Local
		}
	}
	return nil
}

func (t *Table) ensureIndex() {
	if t.index != nil {
		return
	}
	if err := t.Reindex(); err != nil {
		panic(err)
	}
}
