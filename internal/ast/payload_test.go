package ast

import (
	"testing"

	"vischeck/internal/source"
)

func TestAccessorsRejectOutOfRangePayload(t *testing.T) {
	b := NewBuilder(Hints{})
	field := b.Exprs.NewField(source.Span{}, NoExprID, "x", source.Span{})
	if _, ok := b.Exprs.Field(field); !ok {
		t.Fatalf("fresh field expression should have a payload")
	}
	b.Exprs.Get(field).Payload = 999
	if data, ok := b.Exprs.Field(field); ok || data != nil {
		t.Fatalf("Field() = %v, %v for a dangling payload", data, ok)
	}

	pat := b.Pats.NewBinding(source.Span{}, "v", NoPatID)
	b.Pats.Get(pat).Payload = 999
	if _, ok := b.Pats.Binding(pat); ok {
		t.Fatalf("Binding() reported a dangling payload as present")
	}

	fn := b.Items.NewFn("f", VisPublic, source.Span{}, nil, NoExprID)
	b.Items.Get(fn).Payload = 999
	if _, ok := b.Items.Fn(fn); ok {
		t.Fatalf("Fn() reported a dangling payload as present")
	}
}

func TestKindNames(t *testing.T) {
	if got := ExprStruct.String(); got != "struct literal" {
		t.Fatalf("ExprStruct = %q", got)
	}
	if got := PatKind(200).String(); got != "unknown" {
		t.Fatalf("PatKind(200) = %q", got)
	}
}
