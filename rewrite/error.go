package rewrite

import "github.com/DXist/const-env/decl"

// Predefined errors (sentinel values). Every failure here aborts the
// run; a malformed override must never silently degrade a constant.
var (
	ErrKeyNotStringLit = decl.NewError(
		"attribute argument is not a string literal expression")
	ErrEmptyKey = decl.NewError("override key is empty")
	ErrUnsupportedLiteral = decl.NewError(
		"initializer is not a supported literal expression")
	ErrValueParse = decl.NewError(
		"override value cannot be parsed as the declared literal kind")
)
