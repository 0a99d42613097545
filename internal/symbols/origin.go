package symbols

import "fmt"

// MethodOrigin is how the type checker resolved a method call. It is a
// closed sum: DirectOrigin or InterfaceOrigin.
type MethodOrigin interface {
	methodOrigin()
	String() string
}

// DirectOrigin resolves to exactly one implementation-block method.
type DirectOrigin struct {
	Method DefID
}

// Dispatch records which mechanism produced an interface dispatch.
// It is informational: every flavour carries the same payload.
type Dispatch uint8

const (
	DispatchParam  Dispatch = iota // через ограниченный параметр типа
	DispatchObject                 // через значение интерфейсного типа
	DispatchSelf                   // self-вызов внутри метода по умолчанию
)

func (d Dispatch) String() string {
	switch d {
	case DispatchParam:
		return "param"
	case DispatchObject:
		return "object"
	case DispatchSelf:
		return "self"
	default:
		return "unknown"
	}
}

// InterfaceOrigin resolves to the Index-th method of Interface.
type InterfaceOrigin struct {
	Interface DefID
	Index     int
	Via       Dispatch
}

func (DirectOrigin) methodOrigin()    {}
func (InterfaceOrigin) methodOrigin() {}

func (o DirectOrigin) String() string { return "direct " + o.Method.String() }

func (o InterfaceOrigin) String() string {
	return fmt.Sprintf("interface %s#%d via %s", o.Interface, o.Index, o.Via)
}

// OriginKind tags a MethodEntry.
type OriginKind uint8

const (
	OriginDirect OriginKind = iota
	OriginInterface
)

// MethodEntry is the flat, serialisable form of a MethodOrigin.
type MethodEntry struct {
	Kind      OriginKind
	Method    DefID
	Interface DefID
	Index     int
	Via       Dispatch
}

// Origin converts the entry back into its sum-type form.
func (e MethodEntry) Origin() MethodOrigin {
	if e.Kind == OriginInterface {
		return InterfaceOrigin{Interface: e.Interface, Index: e.Index, Via: e.Via}
	}
	return DirectOrigin{Method: e.Method}
}

// EntryOf flattens origin.
func EntryOf(origin MethodOrigin) MethodEntry {
	switch o := origin.(type) {
	case DirectOrigin:
		return MethodEntry{Kind: OriginDirect, Method: o.Method}
	case InterfaceOrigin:
		return MethodEntry{Kind: OriginInterface, Interface: o.Interface, Index: o.Index, Via: o.Via}
	default:
		panic(fmt.Sprintf("symbols: unknown method origin %T", origin))
	}
}
