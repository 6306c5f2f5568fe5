package decl

import (
	"errors"
	"strings"
	"testing"
)

func TestParse(t *testing.T) {
	src := `// connection limits
#[from_env]
const MAX_CONNS: i32 = 10;

#[from_env("SERVICE_NAME")]
static NAME: &str = "default";

const TIMEOUT_MS: u64 = 5_000u64;
`

	m, err := Parse(src)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(m.Decls) != 3 {
		t.Fatalf("declarations = %d, want 3", len(m.Decls))
	}

	conns := m.Decls[0]
	if conns.Kind != Const || conns.Name != "MAX_CONNS" || conns.Type != "i32" {
		t.Errorf("first declaration = %v %q: %q", conns.Kind, conns.Name, conns.Type)
	}

	if conns.Attr == nil || conns.Attr.HasArg {
		t.Errorf("first attribute = %+v, want bare from_env", conns.Attr)
	}

	name := m.Decls[1]
	if name.Kind != Static || name.Type != "&str" {
		t.Errorf("second declaration = %v: %q", name.Kind, name.Type)
	}

	if name.Attr == nil || !name.Attr.HasArg || name.Attr.Arg != `"SERVICE_NAME"` {
		t.Errorf("second attribute = %+v", name.Attr)
	}

	timeout := m.Decls[2]
	if timeout.Attr != nil {
		t.Errorf("third attribute = %+v, want nil", timeout.Attr)
	}

	lit := timeout.Init.Literal()
	if lit.Kind != LitInt || lit.Suffix != "u64" {
		t.Errorf("third literal = %v suffix %q", lit.Kind, lit.Suffix)
	}

	if d, ok := m.Get("NAME"); !ok || d != name {
		t.Errorf("Get(NAME) = %v, %v", d, ok)
	}

	if _, ok := m.Get("MISSING"); ok {
		t.Error("Get(MISSING) should not find a declaration")
	}
}

func TestParseDeclSpans(t *testing.T) {
	src := `const LIMIT: i32 = 10;`

	d, err := ParseDecl(src)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	lit := d.Init.Literal()
	if got := src[lit.Span.Start:lit.Span.End]; got != "10" {
		t.Errorf("literal span = %q, want %q", got, "10")
	}

	if lit.Span.Line != 1 || lit.Span.Col != 20 {
		t.Errorf("literal position = %d:%d, want 1:20", lit.Span.Line, lit.Span.Col)
	}

	if got := src[d.Span.Start:d.Span.End]; got != src {
		t.Errorf("declaration span = %q", got)
	}
}

func TestParseDeclSpanIncludesAttr(t *testing.T) {
	src := "#[from_env]\nconst LIMIT: i32 = 10;"

	d, err := ParseDecl(src)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if d.Span.Start != 0 || d.Span.Line != 1 {
		t.Errorf("declaration span = %+v, want to start at the attribute", d.Span)
	}

	if got := src[d.Attr.Span.Start:d.Attr.Span.End]; got != "#[from_env]" {
		t.Errorf("attribute span = %q", got)
	}
}

func TestParseNegatedInit(t *testing.T) {
	d, err := ParseDecl(`const OFFSET: i32 = -5;`)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if d.Init.Kind != ExprNeg {
		t.Fatalf("initializer kind = %v, want Neg", d.Init.Kind)
	}

	if got := d.Init.Text(); got != "-5" {
		t.Errorf("initializer text = %q, want %q", got, "-5")
	}

	if lit := d.Init.Literal(); lit.Kind != LitInt || lit.Text != "5" {
		t.Errorf("inner literal = %v %q", lit.Kind, lit.Text)
	}
}

func TestParseDoubleNegation(t *testing.T) {
	d, err := ParseDecl(`const X: i32 = - -3;`)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if d.Init.Kind != ExprNeg || d.Init.Inner.Kind != ExprNeg {
		t.Fatalf("initializer = %+v, want nested Neg", d.Init)
	}

	if got := d.Init.Text(); got != "--3" {
		t.Errorf("initializer text = %q", got)
	}
}

func TestParseLiteralKinds(t *testing.T) {
	tests := []struct {
		name string
		src  string
		kind LitKind
	}{
		{name: "string", src: `const S: &str = "hi";`, kind: LitString},
		{name: "string with apostrophe", src: `const S: &str = "it's";`, kind: LitString},
		{name: "char double quote", src: `const C: char = '"';`, kind: LitChar},
		{name: "byte string", src: `const B: &[u8] = b"raw";`, kind: LitByteString},
		{name: "byte", src: `const B: u8 = b'x';`, kind: LitByte},
		{name: "char", src: `const C: char = 'x';`, kind: LitChar},
		{name: "int", src: `const I: i64 = 0xFF;`, kind: LitInt},
		{name: "float", src: `const F: f64 = 2.5;`, kind: LitFloat},
		{name: "bool", src: `const T: bool = true;`, kind: LitBool},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d, err := ParseDecl(tt.src)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}

			if got := d.Init.Literal().Kind; got != tt.kind {
				t.Errorf("kind = %v, want %v", got, tt.kind)
			}
		})
	}
}

func TestParseErrors(t *testing.T) {
	tests := []struct {
		name string
		src  string
		want string
	}{
		{
			name: "unknown keyword",
			src:  `let X: i32 = 1;`,
			want: "expected const or static",
		},
		{
			name: "unknown attribute",
			src:  "#[derive(Debug)]\nconst X: i32 = 1;",
			want: "unsupported attribute",
		},
		{
			name: "dangling attribute",
			src:  "#[from_env]",
			want: "not followed by a declaration",
		},
		{
			name: "missing type",
			src:  `const X: = 1;`,
			want: "missing type annotation",
		},
		{
			name: "missing semicolon",
			src:  `const X: i32 = 1`,
			want: `expected ";"`,
		},
		{
			name: "missing initializer",
			src:  `const X: i32 = ;`,
			want: "expected literal",
		},
		{
			name: "unterminated string",
			src:  `const X: &str = "abc`,
			want: "unterminated literal",
		},
		{
			name: "identifier initializer",
			src:  `const X: i32 = other;`,
			want: "expected literal",
		},
		{
			name: "bad number",
			src:  `const X: i32 = 12ab;`,
			want: "invalid numeric literal",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse(tt.src)
			if err == nil {
				t.Fatal("expected error")
			}

			var perr *ParseError
			if !errors.As(err, &perr) {
				t.Fatalf("error type = %T: %v", err, err)
			}

			if !strings.Contains(perr.Msg, tt.want) {
				t.Errorf("message = %q, want substring %q", perr.Msg, tt.want)
			}
		})
	}
}

func TestParseErrorSnippet(t *testing.T) {
	_, err := Parse("const A: i32 = 1;\nconst B: i32 = oops;")

	var perr *ParseError
	if !errors.As(err, &perr) {
		t.Fatalf("error type = %T: %v", err, err)
	}

	if perr.Line != 2 {
		t.Errorf("line = %d, want 2", perr.Line)
	}

	msg := perr.Error()
	if !strings.Contains(msg, "const B") || !strings.Contains(msg, "^") {
		t.Errorf("rendered error missing source snippet:\n%s", msg)
	}
}

func TestParseReader(t *testing.T) {
	m, err := ParseReader(strings.NewReader(`const X: i32 = 1;`))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(m.Decls) != 1 {
		t.Fatalf("declarations = %d, want 1", len(m.Decls))
	}
}

func TestDeclString(t *testing.T) {
	d, err := ParseDecl("#[from_env]\nstatic GREETING: &str = \"hello\";")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	want := `static GREETING: &str = "hello";`
	if got := d.String(); got != want {
		t.Errorf("String() = %q, want %q", got, want)
	}
}
