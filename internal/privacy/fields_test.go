package privacy

import (
	"testing"

	"github.com/google/go-cmp/cmp"

	"vischeck/internal/ast"
	"vischeck/internal/diag"
	"vischeck/internal/source"
	"vischeck/internal/testkit"
)

// recordInA builds `mod a { record R { x: Private, y: Public } impl R { fn get } }`
// and an empty `mod b`.
func recordInA() (p *testkit.Program, a, b ast.ItemID, r, impl testkit.Decl) {
	p = testkit.NewProgram("demo")
	a = p.Module(p.Root, "a")
	b = p.Module(p.Root, "b")
	r = p.Record(a, "R", ast.VisPublic,
		testkit.Field("x", ast.VisPrivate),
		testkit.Field("y", ast.VisPublic))
	impl = p.Impl(a, "R", "", testkit.Method("get", ast.VisPublic))
	return p, a, b, r, impl
}

func TestPrivateFieldReadFromOtherModule(t *testing.T) {
	p, _, b, r, _ := recordInA()
	read := p.Read(p.Local("r", p.RecordType(r.Def)), "x", p.Int())
	p.Fn(b, "f", p.Block(read))

	_, got := check(t, p)
	wantMessages(t, got, "field `x` is private")
	if got[0].Code != diag.SemaPrivateField {
		t.Fatalf("code = %s", got[0].Code.ID())
	}
	if got[0].Primary != p.B.Exprs.Get(read).Span {
		t.Fatalf("primary span %v is not the read %v", got[0].Primary, p.B.Exprs.Get(read).Span)
	}
}

func TestPrivateFieldReadInsideDeclaringModule(t *testing.T) {
	p, a, _, r, impl := recordInA()
	p.Fn(a, "f", p.Block(p.Read(p.Local("r", p.RecordType(r.Def)), "x", p.Int())))
	self := p.Local("self", p.RefType(p.RecordType(r.Def)))
	p.SetBody(impl.Member("get").Item, p.Block(p.Read(self, "x", p.Int())))

	res, got := check(t, p)
	wantMessages(t, got)
	if res.Checks != 2 {
		t.Fatalf("checks = %d, want 2", res.Checks)
	}
}

func TestPrivilegeReachesNestedModules(t *testing.T) {
	p, a, _, r, _ := recordInA()
	inner := p.Module(a, "inner")
	deeper := p.Module(inner, "deeper")
	p.Fn(deeper, "f", p.Block(p.Read(p.Local("r", p.RecordType(r.Def)), "x", p.Int())))

	_, got := check(t, p)
	wantMessages(t, got)
}

func TestPrivilegeEndsWithModule(t *testing.T) {
	// b is visited after a: a's items must be gone from the stack by then
	p, a, b, r, _ := recordInA()
	ty := p.RecordType(r.Def)
	p.Fn(a, "ok", p.Block(p.Read(p.Local("r", ty), "x", p.Int())))
	p.Fn(b, "bad", p.Block(p.Read(p.Local("r", ty), "x", p.Int())))
	p.Fn(p.Root, "top", p.Block(p.Read(p.Local("r", ty), "x", p.Int())))

	_, got := check(t, p)
	wantMessages(t, got, "field `x` is private", "field `x` is private")
}

func TestPublicFieldNeverReported(t *testing.T) {
	p, _, b, r, _ := recordInA()
	p.Fn(b, "f", p.Block(p.Read(p.Local("r", p.RecordType(r.Def)), "y", p.Int())))
	_, got := check(t, p)
	wantMessages(t, got)
}

func TestFieldReadThroughReferences(t *testing.T) {
	p, _, b, r, _ := recordInA()
	ty := p.RefType(p.RefType(p.RecordType(r.Def)))
	p.Fn(b, "f", p.Block(p.Read(p.Local("r", ty), "x", p.Int())))
	_, got := check(t, p)
	wantMessages(t, got, "field `x` is private")
}

func TestForeignRecordNeverPrivileged(t *testing.T) {
	p := testkit.NewProgram("demo")
	p.Foreign(2, "dep")
	r := p.ForeignRecord(2, "R", testkit.Field("x", ast.VisPrivate))
	p.Fn(p.Root, "f", p.Block(p.Read(p.Local("r", p.RecordType(r.Def)), "x", p.Int())))
	_, got := check(t, p)
	wantMessages(t, got, "field `x` is private")
}

func TestFirstFieldWithNameWins(t *testing.T) {
	p := testkit.NewProgram("demo")
	a := p.Module(p.Root, "a")
	first := p.Record(a, "First", ast.VisPublic,
		testkit.Field("x", ast.VisPublic),
		testkit.Field("x", ast.VisPrivate))
	second := p.Record(a, "Second", ast.VisPublic,
		testkit.Field("x", ast.VisPrivate),
		testkit.Field("x", ast.VisPublic))
	p.Fn(p.Root, "f", p.Block(
		p.Read(p.Local("a", p.RecordType(first.Def)), "x", p.Int()),
		p.Read(p.Local("b", p.RecordType(second.Def)), "x", p.Int()),
	))
	_, got := check(t, p)
	wantMessages(t, got, "field `x` is private")
}

func TestUnknownFieldIgnored(t *testing.T) {
	p, _, b, r, _ := recordInA()
	p.Fn(b, "f", p.Block(p.Read(p.Local("r", p.RecordType(r.Def)), "zzz", p.Int())))
	_, got := check(t, p)
	wantMessages(t, got)
}

func TestViolationCarriesDeclarationNote(t *testing.T) {
	p, _, b, r, _ := recordInA()
	read := p.Read(p.Local("r", p.RecordType(r.Def)), "x", p.Int())
	p.Fn(b, "f", p.Block(read))
	_, got := check(t, p)

	decl, _ := p.Table().Lookup(r.Def)
	want := []diag.Diagnostic{{
		Severity: diag.SevError,
		Code:     diag.SemaPrivateField,
		Message:  "field `x` is private",
		Primary:  p.B.Exprs.Get(read).Span,
		Notes:    []diag.Note{{Span: decl.Fields[0].Span, Msg: "field declared here"}},
	}}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("diagnostics mismatch (-want +got):\n%s", diff)
	}
}

func TestRecordLiteralFields(t *testing.T) {
	p, a, b, r, _ := recordInA()
	ty := p.RecordType(r.Def)
	p.Fn(b, "mk", p.Block(p.Construct(ty, r.Def, "x", "y")))
	p.Fn(a, "mkInside", p.Block(p.Construct(ty, r.Def, "x", "y")))

	_, got := check(t, p)
	wantMessages(t, got, "field `x` is private")
}

func TestFunctionalUpdateChecksNamedFieldsAndBase(t *testing.T) {
	p, _, b, r, _ := recordInA()
	ty := p.RecordType(r.Def)
	// R { y: 0, ..R { x: 0 } }: only y is named here, the base is walked separately
	base := p.Construct(ty, r.Def, "x")
	p.Fn(b, "mk", p.Block(p.ConstructFrom(ty, r.Def, base, "y")))

	_, got := check(t, p)
	wantMessages(t, got, "field `x` is private")
}

func TestDestructuringPattern(t *testing.T) {
	p, a, b, r, _ := recordInA()
	ty := p.RecordType(r.Def)
	outside := p.Let(p.Destructure(ty, r.Def, "x"), p.Local("r", ty))
	p.Fn(b, "f", p.BlockOf([]ast.StmtID{outside}, ast.NoExprID))
	inside := p.Let(p.Destructure(ty, r.Def, "x"), p.Local("r", ty))
	p.Fn(a, "g", p.BlockOf([]ast.StmtID{inside}, ast.NoExprID))
	// параметры функций тоже паттерны
	p.Fn(b, "h", p.Block(), p.RefPat(p.Destructure(ty, r.Def, "y", "x")))

	_, got := check(t, p)
	wantMessages(t, got, "field `x` is private", "field `x` is private")
}

func TestMatchArmPatterns(t *testing.T) {
	p, _, b, r, _ := recordInA()
	ty := p.RecordType(r.Def)
	m := p.Match(p.Local("r", ty),
		testkit.Arm(p.Destructure(ty, r.Def, "x"), p.Lit("1")),
		testkit.Arm(p.Bind("other", ty), p.Read(p.Local("other", ty), "x", p.Int())),
	)
	p.Fn(b, "f", p.Block(m))
	_, got := check(t, p)
	wantMessages(t, got, "field `x` is private", "field `x` is private")
}

func TestBodyItemsAreNotPrivileged(t *testing.T) {
	p := testkit.NewProgram("demo")
	s := p.Record(ast.NoItemID, "S", ast.VisPublic, testkit.Field("z", ast.VisPrivate))
	read := p.Read(p.Local("s", p.RecordType(s.Def)), "z", p.Int())
	p.Fn(p.Root, "f", p.BlockOf([]ast.StmtID{p.ItemStmt(s.Item), p.ExprStmt(read)}, ast.NoExprID))
	_, got := check(t, p)
	wantMessages(t, got, "field `z` is private")
}

func TestEmptySpanNoteOmitted(t *testing.T) {
	p := testkit.NewProgram("demo")
	p.Foreign(2, "dep")
	r := p.ForeignRecord(2, "R", testkit.Field("x", ast.VisPrivate))
	d, _ := p.Table().Lookup(r.Def)
	d.Fields[0].Span = source.Span{}
	p.Fn(p.Root, "f", p.Block(p.Read(p.Local("r", p.RecordType(r.Def)), "x", p.Int())))
	_, got := check(t, p)
	wantMessages(t, got, "field `x` is private")
	if len(got[0].Notes) != 0 {
		t.Fatalf("unexpected notes %+v", got[0].Notes)
	}
}
