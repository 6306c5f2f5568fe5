// Package rewrite replaces literal initializers of decorated
// declarations with values looked up from an env.Provider.
//
// The override key defaults to the declaration identifier and may be
// supplied explicitly through the from_env attribute argument. An absent
// key leaves the declaration untouched; a present value must parse as
// the same literal kind as the original initializer, and the rewritten
// literal keeps the original's source span so diagnostics continue to
// point at the declaration site.
package rewrite
