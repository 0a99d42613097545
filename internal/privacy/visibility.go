package privacy

import (
	"vischeck/internal/ast"
)

// Privacy is an effective visibility: declared visibility after the
// Inherited case has been resolved.
type Privacy uint8

const (
	Public Privacy = iota
	Private
)

func (p Privacy) String() string {
	if p == Private {
		return "private"
	}
	return "public"
}

// Effective resolves a member's declared visibility. Inherited means public,
// unless the unit is in legacy-export mode, where it means private.
func Effective(declared ast.Visibility, legacyExports bool) Privacy {
	switch declared {
	case ast.VisPublic:
		return Public
	case ast.VisPrivate:
		return Private
	default:
		if legacyExports {
			return Private
		}
		return Public
	}
}

// EffectiveVariant resolves a union variant's declared visibility.
// An Inherited variant takes the effective visibility of its union.
func EffectiveVariant(declared ast.Visibility, parent Privacy) Privacy {
	switch declared {
	case ast.VisPublic:
		return Public
	case ast.VisPrivate:
		return Private
	default:
		return parent
	}
}
