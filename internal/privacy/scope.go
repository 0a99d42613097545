package privacy

import (
	"slices"

	"vischeck/internal/ast"
	"vischeck/internal/symbols"
)

// Declared is an item declared directly in a module.
type Declared struct {
	ID   symbols.DefID
	Kind ast.ItemKind
}

// Scope is the stack of privileged items for the current traversal point.
type Scope struct {
	items []symbols.DefID
}

// Guard undoes one Enter. Release pops exactly what Enter pushed.
type Guard struct {
	scope    *Scope
	count    int
	released bool
}

// Enter pushes every record, interface, impl and union of items.
func (s *Scope) Enter(items []Declared) *Guard {
	n := 0
	for _, it := range items {
		if !it.Kind.Privileging() {
			continue
		}
		s.items = append(s.items, it.ID)
		n++
	}
	return &Guard{scope: s, count: n}
}

// Count returns how many items the matching Enter pushed.
func (g *Guard) Count() int {
	if g == nil {
		return 0
	}
	return g.count
}

// Release pops the pushed items. Calling it more than once is a no-op.
func (g *Guard) Release() {
	if g == nil || g.released {
		return
	}
	g.released = true
	s := g.scope
	s.items = s.items[:len(s.items)-g.count]
}

// Privileged reports whether id is anywhere on the stack.
func (s *Scope) Privileged(id symbols.DefID) bool {
	return slices.Contains(s.items, id)
}

// Depth returns the current stack size.
func (s *Scope) Depth() int {
	return len(s.items)
}
