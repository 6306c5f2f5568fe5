package decl

import (
	"fmt"
	"io"
	"strings"
)

// Parse parses manifest source and returns the declarations it contains.
func Parse(src string) (*Manifest, error) {
	p := &parser{src: src, line: 1, col: 1}
	m := &Manifest{Source: src}

	for {
		p.skipSpace()

		if p.eof() {
			break
		}

		var attr *Attr

		if p.has("#[") {
			a, err := p.parseAttr()
			if err != nil {
				return nil, err
			}

			attr = a

			p.skipSpace()

			if p.eof() {
				return nil, p.errorf("attribute not followed by a declaration")
			}
		}

		d, err := p.parseDecl(attr)
		if err != nil {
			return nil, err
		}

		m.Decls = append(m.Decls, d)
	}

	return m, nil
}

// ParseReader reads all input from r and parses it as a manifest.
func ParseReader(r io.Reader) (*Manifest, error) {
	src, err := io.ReadAll(r)
	if err != nil {
		return nil, WrapError(err)
	}

	return Parse(string(src))
}

// ParseDecl parses a single declaration, optionally preceded by an
// attribute.
func ParseDecl(src string) (*Decl, error) {
	m, err := Parse(src)
	if err != nil {
		return nil, err
	}

	if len(m.Decls) != 1 {
		return nil, &ParseError{
			Msg:    fmt.Sprintf("expected one declaration, found %d", len(m.Decls)),
			Line:   1,
			Col:    1,
			Source: src,
		}
	}

	return m.Decls[0], nil
}

// parser is the manifest scanner/parser state.
type parser struct {
	src  string
	pos  int
	line int // 1-based
	col  int // 1-based
}

// mark is a saved scanner position.
type mark struct {
	pos  int
	line int
	col  int
}

func (p *parser) mark() mark {
	return mark{pos: p.pos, line: p.line, col: p.col}
}

func (p *parser) spanFrom(m mark) Span {
	return Span{Start: m.pos, End: p.pos, Line: m.line, Col: m.col}
}

func (p *parser) eof() bool { return p.pos >= len(p.src) }

func (p *parser) has(s string) bool {
	return strings.HasPrefix(p.src[p.pos:], s)
}

// advance consumes n bytes, tracking line and column.
func (p *parser) advance(n int) {
	for i := 0; i < n && p.pos+i < len(p.src); i++ {
		if p.src[p.pos+i] == '\n' {
			p.line++
			p.col = 1
		} else {
			p.col++
		}
	}

	p.pos += n
	if p.pos > len(p.src) {
		p.pos = len(p.src)
	}
}

// skipSpace consumes whitespace and line comments.
func (p *parser) skipSpace() {
	for !p.eof() {
		switch c := p.src[p.pos]; {
		case c == ' ' || c == '\t' || c == '\r' || c == '\n':
			p.advance(1)

		case p.has("//"):
			for !p.eof() && p.src[p.pos] != '\n' {
				p.advance(1)
			}

		default:
			return
		}
	}
}

func (p *parser) errorf(format string, args ...any) *ParseError {
	return &ParseError{
		Msg:    fmt.Sprintf(format, args...),
		Line:   p.line,
		Col:    p.col,
		Source: p.src,
	}
}

// expect consumes the exact text s or fails.
func (p *parser) expect(s string) error {
	if !p.has(s) {
		return p.errorf("expected %q", s)
	}

	p.advance(len(s))

	return nil
}

// parseIdent scans an identifier: a letter or underscore followed by
// letters, digits, or underscores.
func (p *parser) parseIdent() (string, error) {
	start := p.pos

	for !p.eof() {
		c := p.src[p.pos]

		ok := c == '_' ||
			c >= 'a' && c <= 'z' ||
			c >= 'A' && c <= 'Z' ||
			(p.pos > start && c >= '0' && c <= '9')
		if !ok {
			break
		}

		p.advance(1)
	}

	if start == p.pos {
		return "", p.errorf("expected identifier")
	}

	return p.src[start:p.pos], nil
}

// parseAttr parses a #[from_env] or #[from_env(ARG)] attribute. The
// argument text between the parentheses is captured verbatim; it is
// interpreted later by the key resolver.
func (p *parser) parseAttr() (*Attr, error) {
	m := p.mark()
	p.advance(2) // #[
	p.skipSpace()

	name, err := p.parseIdent()
	if err != nil {
		return nil, err
	}

	if name != "from_env" {
		return nil, p.errorf("unsupported attribute %q", name)
	}

	p.skipSpace()

	var (
		arg    string
		hasArg bool
	)

	if p.has("(") {
		p.advance(1)

		start := p.pos
		depth := 1

		for depth > 0 {
			if p.eof() {
				return nil, p.errorf("unterminated attribute argument")
			}

			switch c := p.src[p.pos]; c {
			case '"':
				if err := p.skipQuoted(); err != nil {
					return nil, err
				}

				continue

			case '(':
				depth++

			case ')':
				depth--
				if depth == 0 {
					continue
				}
			}

			p.advance(1)
		}

		arg = p.src[start:p.pos]
		hasArg = true

		p.advance(1) // )
		p.skipSpace()
	}

	if err := p.expect("]"); err != nil {
		return nil, err
	}

	return &Attr{
		Name:   name,
		Arg:    arg,
		HasArg: hasArg,
		Span:   p.spanFrom(m),
	}, nil
}

// skipQuoted consumes a double-quoted string including both quotes,
// honoring backslash escapes.
func (p *parser) skipQuoted() error {
	p.advance(1) // opening quote

	for {
		if p.eof() {
			return p.errorf("unterminated string")
		}

		switch p.src[p.pos] {
		case '\\':
			p.advance(2)

		case '"':
			p.advance(1)

			return nil

		default:
			p.advance(1)
		}
	}
}

// parseDecl parses one declaration:
//
//	("const" | "static") ident ":" type "=" init ";"
func (p *parser) parseDecl(attr *Attr) (*Decl, error) {
	m := p.mark()
	if attr != nil {
		m = mark{pos: attr.Span.Start, line: attr.Span.Line, col: attr.Span.Col}
	}

	keyword, err := p.parseIdent()
	if err != nil {
		return nil, err
	}

	var kind Kind

	switch keyword {
	case "const":
		kind = Const

	case "static":
		kind = Static

	default:
		return nil, p.errorf("expected const or static, found %q", keyword)
	}

	p.skipSpace()

	name, err := p.parseIdent()
	if err != nil {
		return nil, err
	}

	p.skipSpace()

	if err := p.expect(":"); err != nil {
		return nil, err
	}

	// The type annotation is captured verbatim up to the '=' and never
	// interpreted.
	idx := strings.IndexByte(p.src[p.pos:], '=')
	if idx < 0 {
		return nil, p.errorf("expected '=' in declaration of %q", name)
	}

	typ := strings.TrimSpace(p.src[p.pos : p.pos+idx])
	if typ == "" {
		return nil, p.errorf("missing type annotation in declaration of %q", name)
	}

	p.advance(idx + 1)
	p.skipSpace()

	init, err := p.parseInit()
	if err != nil {
		return nil, err
	}

	p.skipSpace()

	if err := p.expect(";"); err != nil {
		return nil, err
	}

	return &Decl{
		Kind: kind,
		Name: name,
		Type: typ,
		Init: init,
		Attr: attr,
		Span: p.spanFrom(m),
	}, nil
}

// parseInit parses an initializer: a literal with any number of
// unary-minus wrappers.
func (p *parser) parseInit() (*Expr, error) {
	m := p.mark()

	if p.has("-") {
		p.advance(1)
		p.skipSpace()

		inner, err := p.parseInit()
		if err != nil {
			return nil, err
		}

		span := Span{
			Start: m.pos,
			End:   inner.Span.End,
			Line:  m.line,
			Col:   m.col,
		}

		return NewNegExpr(inner, span), nil
	}

	lit, err := p.parseLit()
	if err != nil {
		return nil, err
	}

	return NewLitExpr(lit), nil
}

// parseLit scans one literal token and validates it with the per-kind
// parse function selected by its leading characters.
func (p *parser) parseLit() (*Lit, error) {
	m := p.mark()

	var (
		lit *Lit
		err error
	)

	switch {
	case p.has(`b"`):
		var text string

		text, err = p.scanQuoted(2, '"')
		if err == nil {
			lit, err = ParseByteStringLit(text)
		}

	case p.has("b'"):
		var text string

		text, err = p.scanQuoted(2, '\'')
		if err == nil {
			lit, err = ParseByteLit(text)
		}

	case p.has(`"`):
		var text string

		text, err = p.scanQuoted(1, '"')
		if err == nil {
			lit, err = ParseStringLit(text)
		}

	case p.has("'"):
		var text string

		text, err = p.scanQuoted(1, '\'')
		if err == nil {
			lit, err = ParseCharLit(text)
		}

	case !p.eof() && p.src[p.pos] >= '0' && p.src[p.pos] <= '9':
		text := p.scanNumber()

		lit, err = ParseIntLit(text)
		if err != nil {
			lit, err = ParseFloatLit(text)
		}

		if err != nil {
			return nil, p.errAt(m, "invalid numeric literal %q", text)
		}

	case !p.eof() && (p.src[p.pos] == 't' || p.src[p.pos] == 'f'):
		word, werr := p.parseIdent()
		if werr != nil {
			return nil, werr
		}

		lit, err = ParseBoolLit(word)
		if err != nil {
			return nil, p.errAt(m, "expected literal, found %q", word)
		}

	default:
		return nil, p.errorf("expected literal")
	}

	if err != nil {
		return nil, p.errAt(m, "%s", err.Error())
	}

	lit.Span = p.spanFrom(m)

	return lit, nil
}

// errAt reports a parse error positioned at a saved mark.
func (p *parser) errAt(m mark, format string, args ...any) *ParseError {
	return &ParseError{
		Msg:    fmt.Sprintf(format, args...),
		Line:   m.line,
		Col:    m.col,
		Source: p.src,
	}
}

// scanQuoted scans a quoted token including its prefix and both
// delimiters, honoring backslash escapes in the body.
func (p *parser) scanQuoted(prefix int, quote byte) (string, error) {
	start := p.pos
	p.advance(prefix)

	for {
		if p.eof() {
			return "", p.errorf("unterminated literal")
		}

		switch p.src[p.pos] {
		case '\\':
			p.advance(2)

		case quote:
			p.advance(1)

			return p.src[start:p.pos], nil

		default:
			p.advance(1)
		}
	}
}

// scanNumber scans one numeric token. An exponent sign is consumed only
// in decimal tokens, directly after 'e' or 'E'.
func (p *parser) scanNumber() string {
	start := p.pos

	for !p.eof() {
		c := p.src[p.pos]

		switch {
		case c >= '0' && c <= '9',
			c >= 'a' && c <= 'z',
			c >= 'A' && c <= 'Z',
			c == '_', c == '.':
			p.advance(1)

		case (c == '+' || c == '-') &&
			p.pos > start &&
			(p.src[p.pos-1] == 'e' || p.src[p.pos-1] == 'E') &&
			!strings.HasPrefix(p.src[start:], "0x"):
			p.advance(1)

		default:
			return p.src[start:p.pos]
		}
	}

	return p.src[start:p.pos]
}
