package privacy

import (
	"fmt"
	"strings"

	"vischeck/internal/symbols"
)

// ForeignUnionPolicy chooses the parent visibility assumed for a union from
// another compilation unit when its single variant is dereferenced. The
// item table does not carry a verified visibility for foreign unions.
type ForeignUnionPolicy uint8

const (
	// AssumePublic treats foreign unions as public. Inherited variants of a
	// foreign union are then dereferenceable.
	AssumePublic ForeignUnionPolicy = iota
	// AssumePrivate treats foreign unions as private.
	AssumePrivate
)

func (p ForeignUnionPolicy) String() string {
	if p == AssumePrivate {
		return "assume-private"
	}
	return "assume-public"
}

// ParentPrivacy returns the assumed effective visibility of a foreign union.
// The union's own Vis is not consulted: snapshots do not carry the exported
// visibility of dependency items.
func (p ForeignUnionPolicy) ParentPrivacy(*symbols.Def) Privacy {
	if p == AssumePrivate {
		return Private
	}
	return Public
}

// ParseForeignUnionPolicy parses a config or flag value.
func ParseForeignUnionPolicy(s string) (ForeignUnionPolicy, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "assume-public", "public":
		return AssumePublic, nil
	case "assume-private", "private":
		return AssumePrivate, nil
	default:
		return AssumePublic, fmt.Errorf("invalid foreign union policy %q (expected assume-public|assume-private)", s)
	}
}
