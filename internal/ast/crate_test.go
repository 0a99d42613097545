package ast

import (
	"testing"

	"vischeck/internal/source"
)

func TestHasLegacyExports(t *testing.T) {
	cases := []struct {
		attrs []string
		want  bool
	}{
		{nil, false},
		{[]string{"no_std"}, false},
		{[]string{"no_std", "legacy_exports"}, true},
		{[]string{" Legacy_Exports "}, true},
	}
	for _, tc := range cases {
		c := Crate{Attrs: tc.attrs}
		if got := c.HasLegacyExports(); got != tc.want {
			t.Fatalf("attrs %v: got %v, want %v", tc.attrs, got, tc.want)
		}
	}
	var nilCrate *Crate
	if nilCrate.HasLegacyExports() {
		t.Fatalf("nil crate must not report legacy exports")
	}
}

func TestModuleDeclarationOrder(t *testing.T) {
	b := NewBuilder(Hints{})
	root := b.NewCrate("demo", nil, source.Span{})
	rec := b.Items.NewRecord("R", VisPublic, source.Span{}, []FieldDecl{{Name: "x", Vis: VisPrivate}})
	fn := b.Items.NewFn("f", VisPublic, source.Span{}, nil, NoExprID)
	b.Declare(root, rec)
	b.Declare(root, fn)

	mod, ok := b.Items.Module(root)
	if !ok {
		t.Fatalf("root is not a module")
	}
	if len(mod.Items) != 2 || mod.Items[0] != rec || mod.Items[1] != fn {
		t.Fatalf("unexpected module items: %v", mod.Items)
	}
	if !b.Items.Get(rec).Kind.Privileging() || b.Items.Get(fn).Kind.Privileging() {
		t.Fatalf("unexpected privileging kinds")
	}
	if _, ok := b.Items.Record(fn); ok {
		t.Fatalf("fn must not decode as record")
	}
	if data, _ := b.Items.Fn(fn); data.HasBody() {
		t.Fatalf("fn without body reported a body")
	}
}

func TestExprPayloadKindMismatch(t *testing.T) {
	b := NewBuilder(Hints{})
	id := b.Exprs.NewIdent(source.Span{}, "r")
	field := b.Exprs.NewField(source.Span{}, id, "x", source.Span{})
	if _, ok := b.Exprs.Field(id); ok {
		t.Fatalf("ident must not decode as field access")
	}
	data, ok := b.Exprs.Field(field)
	if !ok || data.Base != id || data.Name != "x" {
		t.Fatalf("unexpected field payload: %+v", data)
	}
	if b.Exprs.Get(ExprID(99)) != nil {
		t.Fatalf("out of range id must return nil")
	}
}
