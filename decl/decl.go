package decl

import "strings"

// Span locates a node in manifest source as a half-open byte range with
// the 1-based line and column of its start.
type Span struct {
	Start int
	End   int
	Line  int
	Col   int
}

// IsZero reports whether the span is unset.
func (s Span) IsZero() bool { return s == Span{} }

// Kind distinguishes the two declaration shapes.
type Kind int

const (
	// Const is an immutable constant declaration.
	Const Kind = iota

	// Static is a mutable-static declaration.
	Static
)

// String returns the declaration keyword.
func (k Kind) String() string {
	if k == Static {
		return "static"
	}

	return "const"
}

// Attr is a from_env attribute decorating a declaration.
// Arg holds the raw argument text between the parentheses, verbatim.
type Attr struct {
	Name   string
	Arg    string
	HasArg bool
	Span   Span
}

// Decl is a named, typed binding with a literal-valued initializer.
type Decl struct {
	Kind Kind
	Name string
	Type string // verbatim type annotation text
	Init *Expr
	Attr *Attr // nil when undecorated
	Span Span
}

// WithInit returns a copy of the declaration with the initializer slot
// replaced. The original declaration is not mutated.
func (d *Decl) WithInit(init *Expr) *Decl {
	clone := *d
	clone.Init = init

	return &clone
}

// String re-emits the declaration in canonical form, without its
// attribute.
func (d *Decl) String() string {
	var buf strings.Builder

	buf.WriteString(d.Kind.String())
	buf.WriteByte(' ')
	buf.WriteString(d.Name)
	buf.WriteString(": ")
	buf.WriteString(d.Type)
	buf.WriteString(" = ")
	buf.WriteString(d.Init.Text())
	buf.WriteByte(';')

	return buf.String()
}

// Manifest is a parsed manifest file.
type Manifest struct {
	Decls  []*Decl
	Source string
}

// Get retrieves a declaration by identifier.
// Returns (nil, false) if no declaration has that name.
func (m *Manifest) Get(name string) (*Decl, bool) {
	for _, d := range m.Decls {
		if d.Name == name {
			return d, true
		}
	}

	return nil, false
}
