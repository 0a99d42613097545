package ast

import (
	"strings"

	"vischeck/internal/source"
)

// LegacyExportsAttr is the crate attribute that switches inherited
// visibility to private for the whole compilation unit.
const LegacyExportsAttr = "legacy_exports"

// Crate is the root of one compilation unit.
type Crate struct {
	Name  string
	Attrs []string
	Root  ItemID // ItemModule
	Span  source.Span
}

// HasLegacyExports reports whether the crate carries the legacy_exports attribute.
func (c *Crate) HasLegacyExports() bool {
	if c == nil {
		return false
	}
	for _, attr := range c.Attrs {
		if strings.EqualFold(strings.TrimSpace(attr), LegacyExportsAttr) {
			return true
		}
	}
	return false
}
