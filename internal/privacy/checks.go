package privacy

import (
	"fmt"

	"vischeck/internal/ast"
	"vischeck/internal/diag"
	"vischeck/internal/source"
	"vischeck/internal/symbols"
	"vischeck/internal/types"
)

const derefMessage = "can only dereference single-variant tagged unions whose variant is public"

// checkFieldAccess handles `base.name`, which is either a field read or the
// callee of a method call.
func (c *checker) checkFieldAccess(id ast.ExprID, expr *ast.Expr, data *ast.ExprFieldData) {
	c.stats.Checks++
	baseTy, ok := c.types.ExprType(data.Base)
	if !ok {
		c.report.internal(expr.Span, "receiver of `.%s` has no type", data.Name)
	}
	base := c.types.Peel(baseTy)
	origin, isMethod := c.syms.MethodOrigin(id)

	if base.Kind != types.KindRecord {
		// generic params, interface objects and Self only dispatch methods
		if isMethod {
			c.checkMethod(expr.Span, data.Name, origin)
		}
		return
	}
	if c.privileged(base.Def) {
		c.debug("access.privileged", expr.Span, data.Name)
		return
	}
	if isMethod {
		c.checkMethod(expr.Span, data.Name, origin)
		return
	}
	c.checkField(expr.Span, base.Def, data.Name)
}

// checkField reports name if it is private in the record or variant owner.
func (c *checker) checkField(sp source.Span, owner symbols.DefID, name string) {
	def := c.lookup(sp, owner, "field owner")
	if def.Kind != symbols.DefRecord && def.Kind != symbols.DefVariant {
		c.report.internal(sp, "field owner `%s` is a %s", def.Name, def.Kind)
	}
	field, ok := symbols.LookupField(def.Fields, name)
	if !ok {
		// unknown fields are the type checker's business
		return
	}
	if Effective(field.Vis, c.opts.LegacyExports) == Private {
		c.report.privacyError(diag.SemaPrivateField, sp,
			fmt.Sprintf("field `%s` is private", name),
			field.Span, "field declared here")
	}
}

func (c *checker) checkStructExpr(id ast.ExprID, expr *ast.Expr, data *ast.ExprStructData) {
	c.stats.Checks++
	ty, ok := c.types.ExprType(id)
	if !ok {
		c.report.internal(expr.Span, "struct expression `%s` has no type", data.Path)
	}
	def, resolved := c.syms.ExprDef(id)
	owner, check := c.constructedOwner(expr.Span, ty, def, resolved, "struct expression")
	if !check {
		return
	}
	for _, f := range data.Fields {
		c.checkField(fieldSpan(f.Span, expr.Span), owner, f.Name)
	}
}

func (c *checker) checkStructPat(id ast.PatID, pat *ast.Pat, data *ast.PatStructData) {
	c.stats.Checks++
	ty, ok := c.types.PatType(id)
	if !ok {
		c.report.internal(pat.Span, "struct pattern `%s` has no type", data.Path)
	}
	def, resolved := c.syms.PatDef(id)
	owner, check := c.constructedOwner(pat.Span, ty, def, resolved, "struct pattern")
	if !check {
		return
	}
	for _, f := range data.Fields {
		c.checkField(fieldSpan(f.Span, pat.Span), owner, f.Name)
	}
}

// constructedOwner picks the definition whose fields a struct literal or
// pattern names: the record itself, or the resolved variant of a union.
// check is false when the owner is privileged.
func (c *checker) constructedOwner(sp source.Span, ty types.Type, def symbols.DefID, resolved bool, what string) (owner symbols.DefID, check bool) {
	switch ty.Kind {
	case types.KindRecord:
		if c.privileged(ty.Def) {
			c.debug("construct.privileged", sp, "")
			return symbols.NoDefID, false
		}
		return ty.Def, true
	case types.KindUnion:
		if c.privileged(ty.Def) {
			c.debug("construct.privileged", sp, "")
			return symbols.NoDefID, false
		}
		if !resolved {
			c.report.internal(sp, "%s of union type was not resolved to a variant", what)
		}
		variant := c.lookup(sp, def, "variant")
		if variant.Kind != symbols.DefVariant {
			c.report.internal(sp, "%s of union type resolved to a %s", what, variant.Kind)
		}
		if variant.Parent != ty.Def {
			c.report.internal(sp, "variant `%s` does not belong to union %s", variant.Name, ty.Def)
		}
		return def, true
	default:
		c.report.internal(sp, "%s didn't have record or union type (got %s)", what, ty.Kind)
		return symbols.NoDefID, false
	}
}

func fieldSpan(field, whole source.Span) source.Span {
	if field.Empty() {
		return whole
	}
	return field
}

// checkDeref handles `*e` where e has union type. The union is assumed to
// have a single variant; only the first one is consulted.
func (c *checker) checkDeref(expr *ast.Expr, operand ast.ExprID) {
	ty, ok := c.types.ExprType(operand)
	if !ok {
		c.report.internal(expr.Span, "dereferenced expression has no type")
	}
	if ty.Kind != types.KindUnion {
		return
	}
	c.stats.Checks++
	if c.privileged(ty.Def) {
		c.debug("deref.privileged", expr.Span, "")
		return
	}
	union := c.lookup(expr.Span, ty.Def, "union")
	if union.Kind != symbols.DefUnion {
		c.report.internal(expr.Span, "union type refers to %s `%s`", union.Kind, union.Name)
	}
	if len(union.Variants) == 0 {
		c.report.internal(expr.Span, "dereferenced union `%s` has no variants", union.Name)
	}
	variant := c.lookup(expr.Span, union.Variants[0], "variant")

	var parent Privacy
	if c.table.IsLocal(union.ID) {
		parent = Effective(union.Vis, c.opts.LegacyExports)
	} else {
		parent = c.opts.ForeignUnions.ParentPrivacy(union)
		c.debug("deref.foreign", expr.Span, c.opts.ForeignUnions.String())
	}
	if EffectiveVariant(variant.Vis, parent) == Private {
		c.report.privacyError(diag.SemaPrivateVariantDeref, expr.Span, derefMessage,
			variant.Span, fmt.Sprintf("variant `%s` declared here", variant.Name))
	}
}

func (c *checker) checkMethod(sp source.Span, name string, origin symbols.MethodOrigin) {
	switch o := origin.(type) {
	case symbols.DirectOrigin:
		c.checkDirectMethod(sp, name, o)
	case symbols.InterfaceOrigin:
		c.checkInterfaceMethod(sp, name, o)
	default:
		c.report.internal(sp, "unknown method origin %T", origin)
	}
}

func (c *checker) checkDirectMethod(sp source.Span, name string, o symbols.DirectOrigin) {
	if !c.table.IsLocal(o.Method) {
		c.debug("method.foreign", sp, name)
		return
	}
	m := c.lookup(sp, o.Method, "method")
	if m.Kind != symbols.DefMethod {
		c.report.internal(sp, "method `%s` wasn't actually a method (%s)", name, m.Kind)
	}
	if m.Vis != ast.VisPrivate {
		return
	}
	if c.privileged(m.Parent) {
		c.debug("method.privileged", sp, name)
		return
	}
	c.reportMethod(sp, m)
}

func (c *checker) checkInterfaceMethod(sp source.Span, name string, o symbols.InterfaceOrigin) {
	if !c.table.IsLocal(o.Interface) {
		c.debug("method.foreign", sp, name)
		return
	}
	iface := c.lookup(sp, o.Interface, "interface")
	if iface.Kind != symbols.DefInterface {
		c.report.internal(sp, "`%s` wasn't actually an interface (%s)", iface.Name, iface.Kind)
	}
	if o.Index < 0 || o.Index >= len(iface.Methods) {
		c.report.internal(sp, "method index %d out of range for interface `%s` (%d methods)",
			o.Index, iface.Name, len(iface.Methods))
	}
	m := c.lookup(sp, iface.Methods[o.Index], "interface method")
	if m.Kind != symbols.DefMethod {
		c.report.internal(sp, "interface member `%s` wasn't actually a method", m.Name)
	}
	if m.Method == symbols.MethodRequired {
		return
	}
	if m.Vis != ast.VisPrivate {
		return
	}
	if c.scope.Privileged(o.Interface) {
		c.debug("method.privileged", sp, name)
		return
	}
	c.reportMethod(sp, m)
}

func (c *checker) reportMethod(sp source.Span, m *symbols.Def) {
	c.report.privacyError(diag.SemaPrivateMethod, sp,
		fmt.Sprintf("method `%s` is private", m.Name),
		m.Span, "method declared here")
}
