package privacy

import (
	"testing"

	"vischeck/internal/ast"
	"vischeck/internal/diag"
	"vischeck/internal/symbols"
	"vischeck/internal/testkit"
)

func TestVariantConstructionAndPattern(t *testing.T) {
	p := testkit.NewProgram("demo")
	a := p.Module(p.Root, "a")
	b := p.Module(p.Root, "b")
	u := p.Union(a, "U", ast.VisPublic,
		testkit.Variant("V", ast.VisPublic,
			testkit.Field("f", ast.VisPrivate),
			testkit.Field("g", ast.VisInherited)),
		testkit.Variant("W", ast.VisPublic))
	ty := p.UnionType(u.Def)
	v := u.Member("V").Def

	p.Fn(a, "in", p.Block(p.Construct(ty, v, "f", "g")))
	pat := p.Let(p.Destructure(ty, v, "f"), p.Local("u", ty))
	p.Fn(b, "out", p.BlockOf([]ast.StmtID{pat}, p.Construct(ty, v, "g", "f")))

	_, got := check(t, p)
	wantMessages(t, got, "field `f` is private", "field `f` is private")
}

func derefFixture(unionVis, variantVis ast.Visibility) (*testkit.Program, ast.ItemID, ast.ItemID, testkit.Decl) {
	p := testkit.NewProgram("demo")
	a := p.Module(p.Root, "a")
	b := p.Module(p.Root, "b")
	u := p.Union(a, "U", unionVis, testkit.Variant("V", variantVis))
	return p, a, b, u
}

func TestDerefSingleVariant(t *testing.T) {
	cases := []struct {
		name       string
		unionVis   ast.Visibility
		variantVis ast.Visibility
		legacy     bool
		violations int
	}{
		{"public union inherited variant", ast.VisPublic, ast.VisInherited, false, 0},
		{"private union inherited variant", ast.VisPrivate, ast.VisInherited, false, 1},
		{"private union public variant", ast.VisPrivate, ast.VisPublic, false, 0},
		{"public union private variant", ast.VisPublic, ast.VisPrivate, false, 1},
		{"inherited union inherited variant", ast.VisInherited, ast.VisInherited, false, 0},
		{"inherited union inherited variant, legacy", ast.VisInherited, ast.VisInherited, true, 1},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			p, _, b, u := derefFixture(tc.unionVis, tc.variantVis)
			ty := p.UnionType(u.Def)
			p.Fn(b, "f", p.Block(p.Deref(p.Local("u", ty), p.Int())))
			_, got := check(t, p, func(o *Options) { o.LegacyExports = tc.legacy })
			if len(got) != tc.violations {
				t.Fatalf("got %d violations, want %d: %+v", len(got), tc.violations, got)
			}
			for _, d := range got {
				if d.Code != diag.SemaPrivateVariantDeref || d.Message != derefMessage {
					t.Fatalf("unexpected diagnostic %+v", d)
				}
			}
		})
	}
}

func TestDerefInsideDeclaringModule(t *testing.T) {
	p, a, _, u := derefFixture(ast.VisPublic, ast.VisPrivate)
	p.Fn(a, "f", p.Block(p.Deref(p.Local("u", p.UnionType(u.Def)), p.Int())))
	_, got := check(t, p)
	wantMessages(t, got)
}

func TestDerefOfNonUnionIgnored(t *testing.T) {
	p, _, b, u := derefFixture(ast.VisPublic, ast.VisPrivate)
	ref := p.RefType(p.UnionType(u.Def))
	p.Fn(b, "f", p.Block(p.Deref(p.Local("r", ref), p.UnionType(u.Def))))
	_, got := check(t, p)
	wantMessages(t, got)
}

func TestDerefConsultsFirstVariantOnly(t *testing.T) {
	p := testkit.NewProgram("demo")
	a := p.Module(p.Root, "a")
	u := p.Union(a, "U", ast.VisPublic,
		testkit.Variant("V", ast.VisPublic),
		testkit.Variant("W", ast.VisPrivate))
	p.Fn(p.Root, "f", p.Block(p.Deref(p.Local("u", p.UnionType(u.Def)), p.Int())))
	_, got := check(t, p)
	wantMessages(t, got)
}

func TestDerefForeignUnionPolicy(t *testing.T) {
	build := func() *testkit.Program {
		p := testkit.NewProgram("demo")
		p.Foreign(2, "dep")
		inherited := p.ForeignUnion(2, "U", testkit.Variant("V", ast.VisInherited))
		public := p.ForeignUnion(2, "P", testkit.Variant("V", ast.VisPublic))
		p.Fn(p.Root, "f", p.Block(
			p.Deref(p.Local("u", p.UnionType(inherited.Def)), p.Int()),
			p.Deref(p.Local("p", p.UnionType(public.Def)), p.Int()),
		))
		return p
	}

	_, got := check(t, build())
	wantMessages(t, got)

	_, got = check(t, build(), func(o *Options) { o.ForeignUnions = AssumePrivate })
	wantMessages(t, got, derefMessage)
}

func TestUnionConstructionNeedsVariant(t *testing.T) {
	p := testkit.NewProgram("demo")
	u := p.Union(p.Root, "U", ast.VisPublic, testkit.Variant("V", ast.VisPublic, testkit.Field("f", ast.VisPrivate)))
	other := p.Module(p.Root, "other")
	p.Fn(other, "f", p.Block(p.Construct(p.UnionType(u.Def), symbols.NoDefID, "f")))
	// U is declared in the root, so it is privileged everywhere; a body-local
	// union is not, and reaches the variant lookup
	local := p.Union(ast.NoItemID, "L", ast.VisPublic, testkit.Variant("V", ast.VisPublic))
	p.Fn(other, "g", p.BlockOf(
		[]ast.StmtID{p.ItemStmt(local.Item)},
		p.Construct(p.UnionType(local.Def), symbols.NoDefID),
	))
	checkInternal(t, p, "not resolved to a variant")
}

func TestUnionConstructionResolvedToNonVariant(t *testing.T) {
	p := testkit.NewProgram("demo")
	a := p.Module(p.Root, "a")
	u := p.Union(a, "U", ast.VisPublic, testkit.Variant("V", ast.VisPublic))
	p.Fn(p.Root, "f", p.Block(p.Construct(p.UnionType(u.Def), u.Def)))
	checkInternal(t, p, "resolved to a union")
}

func TestStructExpressionOfWrongType(t *testing.T) {
	p := testkit.NewProgram("demo")
	p.Fn(p.Root, "f", p.Block(p.Construct(p.Int(), symbols.NoDefID, "x")))
	checkInternal(t, p, "didn't have record or union type")
}
