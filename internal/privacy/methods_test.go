package privacy

import (
	"testing"

	"vischeck/internal/ast"
	"vischeck/internal/symbols"
	"vischeck/internal/testkit"
)

// interfaceInA builds `mod a { interface T { priv fn g() {..}; fn r(); pub fn p() {..} } record S }`
// plus `mod b`.
func interfaceInA() (p *testkit.Program, a, b ast.ItemID, iface, s testkit.Decl) {
	p = testkit.NewProgram("demo")
	a = p.Module(p.Root, "a")
	b = p.Module(p.Root, "b")
	iface = p.Interface(a, "T", ast.VisPublic,
		testkit.Method("g", ast.VisPrivate),
		testkit.MethodSpec{Name: "r", Vis: ast.VisPrivate, Required: true},
		testkit.Method("p", ast.VisPublic))
	s = p.Record(a, "S", ast.VisPublic)
	p.Impl(a, "S", "T", testkit.Method("r", ast.VisInherited))
	return p, a, b, iface, s
}

func via(iface symbols.DefID, index int, d symbols.Dispatch) symbols.InterfaceOrigin {
	return symbols.InterfaceOrigin{Interface: iface, Index: index, Via: d}
}

func TestGenericBoundCallOutsideDeclaringModule(t *testing.T) {
	p, _, b, iface, _ := interfaceInA()
	// fn f<X: T>(a: &X) { a.g() }
	x := p.ParamType("X", iface.Def)
	call, _ := p.Call(p.Local("a", p.RefType(x)), "g", via(iface.Def, 0, symbols.DispatchParam))
	p.Fn(b, "f", p.Block(call), p.Bind("a", p.RefType(x)))

	_, got := check(t, p)
	wantMessages(t, got, "method `g` is private")
}

func TestSelfCallInsideDefaultBody(t *testing.T) {
	p, _, _, iface, _ := interfaceInA()
	self := p.Local("self", p.RefType(p.ParamType("Self", iface.Def)))
	recursive, _ := p.Call(self, "g", via(iface.Def, 0, symbols.DispatchSelf))
	p.SetBody(iface.Member("g").Item, p.Block(recursive))

	self2 := p.Local("self", p.RefType(p.ParamType("Self", iface.Def)))
	fromP, _ := p.Call(self2, "g", via(iface.Def, 0, symbols.DispatchSelf))
	p.SetBody(iface.Member("p").Item, p.Block(fromP))

	_, got := check(t, p)
	wantMessages(t, got)
}

func TestDispatchFlavorDoesNotMatter(t *testing.T) {
	for _, d := range []symbols.Dispatch{symbols.DispatchParam, symbols.DispatchObject, symbols.DispatchSelf} {
		t.Run(d.String(), func(t *testing.T) {
			p, a, b, iface, _ := interfaceInA()
			var recvTy = p.InterfaceType(iface.Def)
			if d != symbols.DispatchObject {
				recvTy = p.ParamType("X", iface.Def)
			}
			outside, _ := p.Call(p.Local("v", recvTy), "g", via(iface.Def, 0, d))
			p.Fn(b, "out", p.Block(outside))
			inside, _ := p.Call(p.Local("v", recvTy), "g", via(iface.Def, 0, d))
			p.Fn(a, "in", p.Block(inside))

			_, got := check(t, p)
			wantMessages(t, got, "method `g` is private")
		})
	}
}

func TestRequiredMethodNeverChecked(t *testing.T) {
	p, _, b, iface, _ := interfaceInA()
	call, _ := p.Call(p.Local("v", p.InterfaceType(iface.Def)), "r", via(iface.Def, 1, symbols.DispatchObject))
	p.Fn(b, "f", p.Block(call))
	_, got := check(t, p, func(o *Options) { o.LegacyExports = true })
	wantMessages(t, got)
}

func TestPublicProvidedMethod(t *testing.T) {
	p, _, b, iface, _ := interfaceInA()
	call, _ := p.Call(p.Local("v", p.InterfaceType(iface.Def)), "p", via(iface.Def, 2, symbols.DispatchObject))
	p.Fn(b, "f", p.Block(call))
	_, got := check(t, p)
	wantMessages(t, got)
}

func TestInterfaceMethodOnRecordReceiver(t *testing.T) {
	p, _, b, iface, s := interfaceInA()
	// S implements T; calling g on an S value resolves through T
	call, _ := p.Call(p.Local("s", p.RecordType(s.Def)), "g", via(iface.Def, 0, symbols.DispatchParam))
	p.Fn(b, "f", p.Block(call))
	_, got := check(t, p)
	wantMessages(t, got, "method `g` is private")
}

func TestForeignInterfaceNotChecked(t *testing.T) {
	p := testkit.NewProgram("demo")
	p.Foreign(2, "dep")
	iface := p.ForeignInterface(2, "T", testkit.Method("g", ast.VisPrivate))
	call, _ := p.Call(p.Local("v", p.InterfaceType(iface.Def)), "g", via(iface.Def, 0, symbols.DispatchObject))
	p.Fn(p.Root, "f", p.Block(call))
	_, got := check(t, p)
	wantMessages(t, got)
}

func TestDirectMethod(t *testing.T) {
	p := testkit.NewProgram("demo")
	a := p.Module(p.Root, "a")
	b := p.Module(p.Root, "b")
	r := p.Record(a, "R", ast.VisPublic)
	impl := p.Impl(a, "R", "", testkit.Method("h", ast.VisPrivate), testkit.Method("k", ast.VisPublic))
	h := symbols.DirectOrigin{Method: impl.Member("h").Def}
	k := symbols.DirectOrigin{Method: impl.Member("k").Def}
	ty := p.RecordType(r.Def)

	outH, _ := p.Call(p.Local("r", ty), "h", h)
	outK, _ := p.Call(p.Local("r", ty), "k", k)
	p.Fn(b, "out", p.Block(outH, outK))
	inH, _ := p.Call(p.Local("r", ty), "h", h)
	p.Fn(a, "in", p.Block(inH))

	_, got := check(t, p)
	wantMessages(t, got, "method `h` is private")
}

func TestDirectMethodPrivilegeFollowsImplNotReceiver(t *testing.T) {
	// receiver record lives in a, the impl in c: privilege comes from the impl block
	p := testkit.NewProgram("demo")
	a := p.Module(p.Root, "a")
	c := p.Module(p.Root, "c")
	r := p.Record(a, "R", ast.VisPublic)
	impl := p.Impl(c, "R", "", testkit.Method("h", ast.VisPrivate))
	recv := p.Local("r", p.RefType(p.RecordType(r.Def)))
	call, _ := p.Call(recv, "h", symbols.DirectOrigin{Method: impl.Member("h").Def})
	p.Fn(c, "f", p.Block(call))
	_, got := check(t, p)
	wantMessages(t, got)
}

func TestForeignDirectMethodNotChecked(t *testing.T) {
	p := testkit.NewProgram("demo")
	p.Foreign(2, "dep")
	r := p.ForeignRecord(2, "R")
	m := p.ForeignMethod(2, "h", ast.VisPrivate)
	call, _ := p.Call(p.Local("r", p.RecordType(r.Def)), "h", symbols.DirectOrigin{Method: m})
	p.Fn(p.Root, "f", p.Block(call))
	_, got := check(t, p)
	wantMessages(t, got)
}

func TestMethodCallArgumentsAreWalked(t *testing.T) {
	p, _, b, iface, s := interfaceInA()
	rec := p.Record(p.Module(p.Root, "c"), "Q", ast.VisPublic, testkit.Field("x", ast.VisPrivate))
	arg := p.Read(p.Local("q", p.RecordType(rec.Def)), "x", p.Int())
	call, _ := p.Call(p.Local("s", p.RecordType(s.Def)), "p", via(iface.Def, 2, symbols.DispatchParam), arg)
	p.Fn(b, "f", p.Block(call))
	_, got := check(t, p)
	wantMessages(t, got, "field `x` is private")
}
