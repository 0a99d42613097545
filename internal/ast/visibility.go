package ast

// Visibility is the visibility written in source.
// The zero value is VisInherited: nothing was written and the effective
// visibility comes from context (legacy-export mode or the enclosing union).
type Visibility uint8

const (
	VisInherited Visibility = iota
	VisPublic
	VisPrivate
)

func (v Visibility) String() string {
	switch v {
	case VisPublic:
		return "public"
	case VisPrivate:
		return "private"
	default:
		return "inherited"
	}
}
