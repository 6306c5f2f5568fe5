package decl

// ExprKind indicates the shape of an initializer expression.
type ExprKind int

const (
	// ExprLit is a bare literal.
	ExprLit ExprKind = iota

	// ExprNeg is a unary-minus wrapper around an inner expression.
	ExprNeg
)

// String returns a string representation of the expression kind.
func (k ExprKind) String() string {
	if k == ExprNeg {
		return "Neg"
	}

	return "Lit"
}

// Expr is an initializer expression: a literal, optionally wrapped in a
// unary-minus marker. Exactly one of Lit or Inner is set based on Kind.
type Expr struct {
	Kind  ExprKind
	Lit   *Lit  // ExprLit
	Inner *Expr // ExprNeg
	Span  Span
}

// NewLitExpr wraps a literal in an expression node carrying the
// literal's span.
func NewLitExpr(lit *Lit) *Expr {
	return &Expr{
		Kind: ExprLit,
		Lit:  lit,
		Span: lit.Span,
	}
}

// NewNegExpr wraps an expression in a unary-minus marker spanning from
// the given span through the inner expression.
func NewNegExpr(inner *Expr, span Span) *Expr {
	return &Expr{
		Kind:  ExprNeg,
		Inner: inner,
		Span:  span,
	}
}

// Text re-emits the expression as source text.
func (e *Expr) Text() string {
	if e.Kind == ExprNeg {
		return "-" + e.Inner.Text()
	}

	return e.Lit.Text
}

// Literal returns the innermost literal of the expression, unwrapping
// any unary-minus markers.
func (e *Expr) Literal() *Lit {
	if e.Kind == ExprNeg {
		return e.Inner.Literal()
	}

	return e.Lit
}

// Equal reports structural equality of two expressions, spans included.
func (e *Expr) Equal(o *Expr) bool {
	if e == nil || o == nil {
		return e == o
	}

	if e.Kind != o.Kind || e.Span != o.Span {
		return false
	}

	if e.Kind == ExprNeg {
		return e.Inner.Equal(o.Inner)
	}

	return e.Lit.Equal(o.Lit)
}
