package privacy

import (
	"testing"

	"vischeck/internal/ast"
	"vischeck/internal/symbols"
	"vischeck/internal/testkit"
)

// legacyFixture declares a record field, an impl method and a provided
// interface method, all with visibility vis, and accesses each from b.
func legacyFixture(vis ast.Visibility, attrs ...string) *testkit.Program {
	p := testkit.NewProgram("demo", attrs...)
	a := p.Module(p.Root, "a")
	b := p.Module(p.Root, "b")
	r := p.Record(a, "R", ast.VisPublic, testkit.Field("x", vis))
	impl := p.Impl(a, "R", "", testkit.Method("h", vis))
	iface := p.Interface(a, "T", ast.VisPublic, testkit.Method("g", vis))
	ty := p.RecordType(r.Def)

	direct, _ := p.Call(p.Local("r", ty), "h", symbols.DirectOrigin{Method: impl.Member("h").Def})
	dyn, _ := p.Call(p.Local("t", p.InterfaceType(iface.Def)), "g", via(iface.Def, 0, symbols.DispatchObject))
	p.Fn(b, "f", p.Block(p.Read(p.Local("r", ty), "x", p.Int()), direct, dyn))
	return p
}

func TestLegacyExportsOnlyAffectsInherited(t *testing.T) {
	all := []string{"field `x` is private", "method `h` is private", "method `g` is private"}
	cases := []struct {
		vis  ast.Visibility
		off  []string
		on   []string
		name string
	}{
		{ast.VisPublic, nil, nil, "public"},
		{ast.VisPrivate, all, all, "private"},
		// методы проверяются по объявленной видимости
		{ast.VisInherited, nil, []string{"field `x` is private"}, "inherited"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, off := check(t, legacyFixture(tc.vis))
			wantMessages(t, off, tc.off...)

			// режим включается атрибутом крейта
			_, on := check(t, legacyFixture(tc.vis, ast.LegacyExportsAttr))
			wantMessages(t, on, tc.on...)
		})
	}
}
