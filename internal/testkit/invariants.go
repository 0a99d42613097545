package testkit

import (
	"fmt"

	"vischeck/internal/ast"
	"vischeck/internal/source"
	"vischeck/internal/symbols"
)

// CheckSpanInvariants runs a minimal set of span invariants on a crate:
// 1) the crate span is non-empty
// 2) every item reachable from the root has a non-empty span inside it
func CheckSpanInvariants(b *ast.Builder) error {
	if b == nil {
		return fmt.Errorf("nil builder")
	}
	crate := b.Crate.Span
	if crate.End <= crate.Start {
		return fmt.Errorf("crate span is empty: %v", crate)
	}
	return walkModules(b, b.Crate.Root, func(id ast.ItemID, item *ast.Item) error {
		if id == b.Crate.Root {
			return nil
		}
		return checkSpan(crate, item.Span, fmt.Sprintf("%s %q", item.Kind, item.Name))
	})
}

func checkSpan(outer, sp source.Span, what string) error {
	if sp.End <= sp.Start {
		return fmt.Errorf("empty span for %s: %v", what, sp)
	}
	if !outer.Contains(sp) {
		return fmt.Errorf("%s span %v not within %v", what, sp, outer)
	}
	return nil
}

// CheckTableInvariants verifies that the item table agrees with the AST:
// every item reachable from the root module has a definition of the
// matching kind, and every recorded method origin points at known defs.
func CheckTableInvariants(b *ast.Builder, syms *symbols.Result) error {
	if b == nil || syms == nil || syms.Table == nil {
		return fmt.Errorf("nil builder or symbols")
	}
	err := walkModules(b, b.Crate.Root, func(id ast.ItemID, item *ast.Item) error {
		def, ok := syms.Table.ItemDef(id)
		if !ok {
			return fmt.Errorf("%s %q has no definition", item.Kind, item.Name)
		}
		d, ok := syms.Table.Lookup(def)
		if !ok {
			return fmt.Errorf("%s %q bound to unknown def %s", item.Kind, item.Name, def)
		}
		if want := defKindOf(item.Kind); d.Kind != want {
			return fmt.Errorf("%s %q bound to a %s", item.Kind, item.Name, d.Kind)
		}
		return nil
	})
	if err != nil {
		return err
	}
	for expr, entry := range syms.Methods {
		switch o := entry.Origin().(type) {
		case symbols.DirectOrigin:
			if _, ok := syms.Table.Lookup(o.Method); !ok {
				return fmt.Errorf("expr %d: unknown method %s", expr, o.Method)
			}
		case symbols.InterfaceOrigin:
			d, ok := syms.Table.Lookup(o.Interface)
			if !ok {
				return fmt.Errorf("expr %d: unknown interface %s", expr, o.Interface)
			}
			if o.Index < 0 || o.Index >= len(d.Methods) {
				return fmt.Errorf("expr %d: method index %d out of range", expr, o.Index)
			}
		}
	}
	return nil
}

func defKindOf(k ast.ItemKind) symbols.DefKind {
	switch k {
	case ast.ItemModule:
		return symbols.DefModule
	case ast.ItemRecord:
		return symbols.DefRecord
	case ast.ItemInterface:
		return symbols.DefInterface
	case ast.ItemImpl:
		return symbols.DefImpl
	case ast.ItemUnion:
		return symbols.DefUnion
	case ast.ItemFn:
		return symbols.DefFn
	default:
		return symbols.DefInvalid
	}
}

func walkModules(b *ast.Builder, mod ast.ItemID, fn func(ast.ItemID, *ast.Item) error) error {
	item := b.Items.Get(mod)
	if item == nil {
		return fmt.Errorf("nil item for id=%d", mod)
	}
	if err := fn(mod, item); err != nil {
		return err
	}
	data, ok := b.Items.Module(mod)
	if !ok {
		return fmt.Errorf("item %d is not a module", mod)
	}
	for _, it := range data.Items {
		child := b.Items.Get(it)
		if child == nil {
			return fmt.Errorf("nil item for id=%d", it)
		}
		if child.Kind == ast.ItemModule {
			if err := walkModules(b, it, fn); err != nil {
				return err
			}
			continue
		}
		if err := fn(it, child); err != nil {
			return err
		}
	}
	return nil
}
