// Package privacy implements the visibility-enforcement pass.
//
// The pass runs after name resolution and type checking. It walks the AST
// of the local compilation unit once and checks every access to a private
// field, a private method or a restricted union variant against the
// lexical privilege in effect at the access site.
//
// # Privilege
//
// Entering a module pushes every record, interface, impl block and union
// declared directly in that module onto a Scope; leaving it pops exactly
// those entries. An item is privileged while it is anywhere on the stack,
// so code in nested modules inherits the privilege of its ancestors.
// Scope.Enter returns a Guard and the walker releases it with defer, which
// keeps the stack balanced on every exit path.
//
// # Checks
//
//   - field reads `r.x` on records that are foreign or not privileged;
//   - record literals, struct-like variant constructions and the matching
//     destructuring patterns;
//   - method calls, through their resolved symbols.MethodOrigin: direct
//     calls check the impl method, interface dispatch checks provided
//     methods of local interfaces (required methods are never checked);
//   - dereference of a single-variant union, which requires the variant to
//     be public.
//
// Members of foreign interfaces and foreign impl methods are not checked.
// For foreign unions the parent visibility used by the dereference check is
// an assumption chosen by ForeignUnionPolicy.
//
// # Failures
//
// Privacy violations are reported to the diag.Reporter and the walk goes
// on. Inconsistent input from earlier phases (dangling ids, out-of-range
// method indexes, construction expressions of the wrong type) aborts the
// walk; Check returns it as an *InternalError.
package privacy
