package decl

import (
	"log/slog"
	"strings"
	"unicode/utf8"
)

// LitKind indicates the kind of a literal. The set is closed: rewriting
// never changes a literal's kind, only its payload.
type LitKind int

const (
	// LitString represents a quoted string literal.
	LitString LitKind = iota

	// LitByteString represents a byte-string literal.
	LitByteString

	// LitByte represents a single-byte literal.
	LitByte

	// LitChar represents a single-character literal.
	LitChar

	// LitInt represents an integer literal.
	LitInt

	// LitFloat represents a floating-point literal.
	LitFloat

	// LitBool represents a boolean literal.
	LitBool
)

// String returns a string representation of the literal kind.
func (k LitKind) String() string {
	switch k {
	case LitString:
		return "String"

	case LitByteString:
		return "ByteString"

	case LitByte:
		return "Byte"

	case LitChar:
		return "Char"

	case LitInt:
		return "Int"

	case LitFloat:
		return "Float"

	case LitBool:
		return "Bool"

	default:
		return "Unknown"
	}
}

// Lit is a literal token. Text holds the verbatim source form including
// delimiters and any numeric suffix. The payload fields are populated
// according to Kind.
type Lit struct {
	Kind   LitKind
	Text   string
	Suffix string // numeric suffix (Int, Float), "" if none
	Str    string // decoded payload (String)
	Bytes  []byte // decoded payload (ByteString)
	Byte   byte   // decoded payload (Byte)
	Rune   rune   // decoded payload (Char)
	Bool   bool   // decoded payload (Bool)
	Span   Span
}

// Equal reports structural equality, spans included. Text captures the
// payload, so comparing kind, text, and span is sufficient.
func (l *Lit) Equal(o *Lit) bool {
	if l == nil || o == nil {
		return l == o
	}

	return l.Kind == o.Kind && l.Text == o.Text && l.Span == o.Span
}

// WithSpan returns a copy of the literal positioned at the given span.
func (l *Lit) WithSpan(span Span) *Lit {
	clone := *l
	clone.Span = span

	return &clone
}

// ParseStringLit parses a quoted string literal token.
func ParseStringLit(text string) (*Lit, error) {
	body, ok := delimited(text, `"`, `"`)
	if !ok {
		return nil, ErrUnterminated.With(
			slog.String("kind", "String"),
			slog.String("text", text),
		)
	}

	str, err := unescapeString(body, '"')
	if err != nil {
		return nil, WrapError(err).With(slog.String("kind", "String"))
	}

	return &Lit{Kind: LitString, Text: text, Str: str}, nil
}

// ParseByteStringLit parses a byte-string literal token. Unescaped bytes
// must be ASCII; \xNN escapes cover the full byte range.
func ParseByteStringLit(text string) (*Lit, error) {
	body, ok := delimited(text, `b"`, `"`)
	if !ok {
		return nil, ErrUnterminated.With(
			slog.String("kind", "ByteString"),
			slog.String("text", text),
		)
	}

	bytes, err := unescapeBytes(body, '"')
	if err != nil {
		return nil, WrapError(err).With(slog.String("kind", "ByteString"))
	}

	return &Lit{Kind: LitByteString, Text: text, Bytes: bytes}, nil
}

// ParseByteLit parses a single-byte literal token. The body must decode
// to exactly one byte.
func ParseByteLit(text string) (*Lit, error) {
	body, ok := delimited(text, "b'", "'")
	if !ok {
		return nil, ErrUnterminated.With(
			slog.String("kind", "Byte"),
			slog.String("text", text),
		)
	}

	bytes, err := unescapeBytes(body, '\'')
	if err != nil {
		return nil, WrapError(err).With(slog.String("kind", "Byte"))
	}

	if len(bytes) != 1 {
		return nil, ErrInvalidLiteral.With(
			slog.String("kind", "Byte"),
			slog.String("text", text),
			slog.Int("byte_count", len(bytes)),
		)
	}

	return &Lit{Kind: LitByte, Text: text, Byte: bytes[0]}, nil
}

// ParseCharLit parses a single-character literal token. The body must
// decode to exactly one character.
func ParseCharLit(text string) (*Lit, error) {
	body, ok := delimited(text, "'", "'")
	if !ok {
		return nil, ErrUnterminated.With(
			slog.String("kind", "Char"),
			slog.String("text", text),
		)
	}

	str, err := unescapeString(body, '\'')
	if err != nil {
		return nil, WrapError(err).With(slog.String("kind", "Char"))
	}

	if utf8.RuneCountInString(str) != 1 {
		return nil, ErrInvalidLiteral.With(
			slog.String("kind", "Char"),
			slog.String("text", text),
			slog.Int("rune_count", utf8.RuneCountInString(str)),
		)
	}

	r, _ := utf8.DecodeRuneInString(str)

	return &Lit{Kind: LitChar, Text: text, Rune: r}, nil
}

// intSuffixes is the closed set of recognized integer type suffixes.
var intSuffixes = map[string]struct{}{
	"i8": {}, "i16": {}, "i32": {}, "i64": {}, "i128": {}, "isize": {},
	"u8": {}, "u16": {}, "u32": {}, "u64": {}, "u128": {}, "usize": {},
}

// ParseIntLit parses an integer literal token: an optional base prefix
// (0x, 0o, 0b), digits with underscore separators, and an optional type
// suffix. A leading sign is not part of the token.
func ParseIntLit(text string) (*Lit, error) {
	body, base := text, 10

	switch {
	case strings.HasPrefix(text, "0x"):
		body, base = text[2:], 16
	case strings.HasPrefix(text, "0o"):
		body, base = text[2:], 8
	case strings.HasPrefix(text, "0b"):
		body, base = text[2:], 2
	}

	i, digits := 0, 0
	for i < len(body) {
		c := body[i]
		if c == '_' {
			i++

			continue
		}

		if !isBaseDigit(c, base) {
			break
		}

		digits++
		i++
	}

	suffix := body[i:]

	if digits == 0 || (len(text) > 0 && !isBaseDigit(text[0], 10)) {
		return nil, ErrInvalidLiteral.With(
			slog.String("kind", "Int"),
			slog.String("text", text),
		)
	}

	if suffix != "" {
		if _, ok := intSuffixes[suffix]; !ok {
			return nil, ErrInvalidSuffix.With(
				slog.String("kind", "Int"),
				slog.String("text", text),
				slog.String("suffix", suffix),
			)
		}
	}

	return &Lit{Kind: LitInt, Text: text, Suffix: suffix}, nil
}

// ParseFloatLit parses a floating-point literal token: decimal digits
// with an optional fraction, optional exponent, and an optional f32/f64
// suffix. At least one of fraction, exponent, or suffix must be present
// to distinguish the token from an integer.
func ParseFloatLit(text string) (*Lit, error) {
	body, suffix := text, ""

	for _, s := range []string{"f32", "f64"} {
		if strings.HasSuffix(body, s) {
			body, suffix = body[:len(body)-len(s)], s

			break
		}
	}

	fail := func() (*Lit, error) {
		return nil, ErrInvalidLiteral.With(
			slog.String("kind", "Float"),
			slog.String("text", text),
		)
	}

	i, digits := 0, 0
	for i < len(body) && (isBaseDigit(body[i], 10) || body[i] == '_') {
		if body[i] != '_' {
			digits++
		}

		i++
	}

	if digits == 0 || !isBaseDigit(body[0], 10) {
		return fail()
	}

	sawDot := false
	if i < len(body) && body[i] == '.' {
		sawDot = true
		i++

		for i < len(body) && (isBaseDigit(body[i], 10) || body[i] == '_') {
			i++
		}
	}

	sawExp := false

	if i < len(body) && (body[i] == 'e' || body[i] == 'E') {
		sawExp = true
		i++

		if i < len(body) && (body[i] == '+' || body[i] == '-') {
			i++
		}

		expDigits := 0
		for i < len(body) && (isBaseDigit(body[i], 10) || body[i] == '_') {
			if body[i] != '_' {
				expDigits++
			}

			i++
		}

		if expDigits == 0 {
			return fail()
		}
	}

	if i != len(body) {
		return fail()
	}

	if !sawDot && !sawExp && suffix == "" {
		return fail()
	}

	return &Lit{Kind: LitFloat, Text: text, Suffix: suffix}, nil
}

// ParseBoolLit parses a boolean literal token: exactly "true" or
// "false", case-sensitive.
func ParseBoolLit(text string) (*Lit, error) {
	switch text {
	case "true":
		return &Lit{Kind: LitBool, Text: text, Bool: true}, nil

	case "false":
		return &Lit{Kind: LitBool, Text: text, Bool: false}, nil

	default:
		return nil, ErrInvalidLiteral.With(
			slog.String("kind", "Bool"),
			slog.String("text", text),
		)
	}
}

// delimited strips the prefix and suffix delimiters from a token,
// reporting whether both were present.
func delimited(text, open, term string) (string, bool) {
	if len(text) < len(open)+len(term) ||
		!strings.HasPrefix(text, open) ||
		!strings.HasSuffix(text, term) {
		return "", false
	}

	return text[len(open) : len(text)-len(term)], true
}

// isBaseDigit reports whether c is a digit in the given base.
func isBaseDigit(c byte, base int) bool {
	switch base {
	case 2:
		return c == '0' || c == '1'
	case 8:
		return c >= '0' && c <= '7'
	case 16:
		return c >= '0' && c <= '9' ||
			c >= 'a' && c <= 'f' ||
			c >= 'A' && c <= 'F'
	default:
		return c >= '0' && c <= '9'
	}
}

// hexVal returns the value of a hex digit, or -1.
func hexVal(c byte) int {
	switch {
	case c >= '0' && c <= '9':
		return int(c - '0')
	case c >= 'a' && c <= 'f':
		return int(c-'a') + 10
	case c >= 'A' && c <= 'F':
		return int(c-'A') + 10
	default:
		return -1
	}
}

// unescapeString decodes the body of a string or character literal
// enclosed by quote. Unescaped text may contain any character except
// the enclosing quote or a backslash; the other quote kind is plain
// text. \xNN escapes are limited to ASCII; \u{...} covers the rest.
func unescapeString(body string, quote byte) (string, error) {
	var buf strings.Builder

	for i := 0; i < len(body); {
		c := body[i]
		if c != '\\' {
			if c == quote {
				return "", ErrInvalidLiteral.With(
					slog.String("body", body),
				)
			}

			r, size := utf8.DecodeRuneInString(body[i:])
			if r == utf8.RuneError && size == 1 {
				return "", ErrInvalidLiteral.With(
					slog.String("body", body),
				)
			}

			buf.WriteRune(r)
			i += size

			continue
		}

		esc, size, err := escapeAt(body, i, true)
		if err != nil {
			return "", err
		}

		buf.WriteRune(esc)
		i += size
	}

	return buf.String(), nil
}

// unescapeBytes decodes the body of a byte or byte-string literal
// enclosed by quote. Unescaped bytes must be ASCII and may not include
// the enclosing quote; \xNN escapes cover 0x00 through 0xFF.
func unescapeBytes(body string, quote byte) ([]byte, error) {
	var buf []byte

	for i := 0; i < len(body); {
		c := body[i]
		if c != '\\' {
			if c >= 0x80 || c == quote {
				return nil, ErrInvalidLiteral.With(
					slog.String("body", body),
				)
			}

			buf = append(buf, c)
			i++

			continue
		}

		esc, size, err := escapeAt(body, i, false)
		if err != nil {
			return nil, err
		}

		buf = append(buf, byte(esc))
		i += size
	}

	return buf, nil
}

// escapeAt decodes one escape sequence starting at the backslash at
// body[i]. It returns the decoded value and the sequence length.
// unicode selects string semantics: \u{...} allowed and \xNN limited to
// ASCII. Byte semantics allow \xNN up to 0xFF and forbid \u.
func escapeAt(body string, i int, unicode bool) (rune, int, error) {
	bad := func() (rune, int, error) {
		return 0, 0, ErrInvalidEscape.With(slog.String("body", body[i:]))
	}

	if i+1 >= len(body) {
		return bad()
	}

	switch body[i+1] {
	case 'n':
		return '\n', 2, nil
	case 'r':
		return '\r', 2, nil
	case 't':
		return '\t', 2, nil
	case '0':
		return 0, 2, nil
	case '\\':
		return '\\', 2, nil
	case '\'':
		return '\'', 2, nil
	case '"':
		return '"', 2, nil

	case 'x':
		if i+3 >= len(body) {
			return bad()
		}

		hi, lo := hexVal(body[i+2]), hexVal(body[i+3])
		if hi < 0 || lo < 0 {
			return bad()
		}

		v := rune(hi<<4 | lo)
		if unicode && v > 0x7F {
			return bad()
		}

		return v, 4, nil

	case 'u':
		if !unicode || i+2 >= len(body) || body[i+2] != '{' {
			return bad()
		}

		end := strings.IndexByte(body[i+3:], '}')
		if end < 0 || end == 0 || end > 6 {
			return bad()
		}

		var v rune
		for _, c := range []byte(body[i+3 : i+3+end]) {
			h := hexVal(c)
			if h < 0 {
				return bad()
			}

			v = v<<4 | rune(h)
		}

		if !utf8.ValidRune(v) {
			return bad()
		}

		return v, end + 4, nil

	default:
		return bad()
	}
}
