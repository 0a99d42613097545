package testkit

import (
	"testing"

	"vischeck/internal/ast"
	"vischeck/internal/symbols"
)

func TestProgramInvariants(t *testing.T) {
	p := NewProgram("demo")
	m := p.Module(p.Root, "inner")
	r := p.Record(m, "R", ast.VisPublic, Field("x", ast.VisPrivate))
	iface := p.Interface(p.Root, "I", ast.VisPublic, Method("f", ast.VisPublic), Required("g"))
	u := p.Union(m, "U", ast.VisPublic, Variant("V", ast.VisInherited, Field("y", ast.VisInherited)))

	recv := p.Local("r", p.RecordType(r.Def))
	call, _ := p.Call(recv, "f", symbols.InterfaceOrigin{Interface: iface.Def, Index: 0})
	p.Fn(p.Root, "main", p.Block(call, p.Construct(p.UnionType(u.Def), u.Member("V").Def, "y")))

	if err := CheckSpanInvariants(p.B); err != nil {
		t.Fatalf("span invariants: %v", err)
	}
	if err := CheckTableInvariants(p.B, p.Syms); err != nil {
		t.Fatalf("table invariants: %v", err)
	}
}

func TestTableInvariantsCatchDanglingOrigin(t *testing.T) {
	p := NewProgram("demo")
	iface := p.Interface(p.Root, "I", ast.VisPublic, Method("f", ast.VisPublic))
	recv := p.Local("x", p.InterfaceType(iface.Def))
	p.Call(recv, "f", symbols.InterfaceOrigin{Interface: iface.Def, Index: 3})
	if err := CheckTableInvariants(p.B, p.Syms); err == nil {
		t.Fatalf("expected out-of-range method index to be reported")
	}
}

func TestForeignMembersGetForeignIDs(t *testing.T) {
	p := NewProgram("demo")
	p.Foreign(2, "dep")
	rec := p.ForeignRecord(2, "R", Field("x", ast.VisPrivate))
	m := p.ForeignMethod(2, "g", ast.VisPrivate)
	if p.Table().IsLocal(rec.Def) || p.Table().IsLocal(m) {
		t.Fatalf("foreign defs reported as local: %s %s", rec.Def, m)
	}
	def, ok := p.Table().Lookup(m)
	if !ok || def.Kind != symbols.DefMethod {
		t.Fatalf("foreign method not registered: %+v", def)
	}
	if got := p.Table().UnitName(2); got != "dep" {
		t.Fatalf("unit name = %q", got)
	}
}
