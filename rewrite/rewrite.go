package rewrite

import (
	"context"
	"log/slog"
	"sort"
	"strings"

	"github.com/DXist/const-env/decl"
	"github.com/DXist/const-env/env"
	"github.com/DXist/const-env/log"
)

// config holds rewriting options.
type config struct {
	logger log.Logger
}

// Option configures rewriting behavior.
type Option func(*config)

// WithLogger sets the structured logger for trace-level debugging.
// If not provided, the logger is zero-valued and all logging is a no-op.
func WithLogger(logger log.Logger) Option {
	return func(c *config) {
		c.logger = logger
	}
}

func makeConfig(opts ...Option) config {
	var c config

	for _, opt := range opts {
		opt(&c)
	}

	return c
}

// Apply resolves the override key for d, consults the provider, and
// returns the declaration with its initializer slot replaced by the
// override value. An absent key returns d unchanged with changed false.
// The input declaration is never mutated, and its declared type and
// identifier are never altered.
func Apply(
	ctx context.Context,
	d *decl.Decl,
	p env.Provider,
	opts ...Option,
) (rewritten *decl.Decl, changed bool, err error) {
	rewritten, _, changed, err = apply(ctx, d, p, makeConfig(opts...))

	return rewritten, changed, err
}

// apply does the work of Apply and additionally reports the resolved
// override key, so callers recording the key do not resolve it twice.
func apply(
	ctx context.Context,
	d *decl.Decl,
	p env.Provider,
	cfg config,
) (rewritten *decl.Decl, key string, changed bool, err error) {
	key, err = Key(d.Attr, d.Name)
	if err != nil {
		return nil, "", false, decl.WrapError(err).With(
			slog.String("declaration", d.Name),
		)
	}

	raw, ok := p.Lookup(key)
	if !ok {
		cfg.logger.TraceContext(ctx, "override absent",
			slog.String("declaration", d.Name),
			slog.String("key", key),
		)

		return d, key, false, nil
	}

	cfg.logger.DebugContext(ctx, "override found",
		slog.String("declaration", d.Name),
		slog.String("key", key),
		slog.String("value", raw),
	)

	init, err := rewriteExpr(d.Init, raw)
	if err != nil {
		return nil, key, false, decl.WrapError(err).With(
			slog.String("declaration", d.Name),
			slog.String("key", key),
		)
	}

	return d.WithInit(init), key, true, nil
}

// rewriteExpr rebuilds an initializer expression around the raw
// override value, preserving the expression's structural shape.
//
// A unary-minus wrapper is unwrapped recursively: the raw value is
// trimmed of surrounding ASCII whitespace and must then carry an
// explicit leading '-', which is stripped before the inner literal is
// rewritten. The wrapper is reattached around the result. An unsigned
// or '+'-prefixed value cannot preserve the negated shape and fails.
func rewriteExpr(orig *decl.Expr, raw string) (*decl.Expr, error) {
	switch orig.Kind {
	case decl.ExprNeg:
		norm := strings.TrimSpace(raw)
		if !strings.HasPrefix(norm, "-") {
			return nil, ErrValueParse.With(
				slog.String("expected",
					"negated "+orig.Literal().Kind.String()),
				slog.String("value", raw),
			)
		}

		inner, err := rewriteExpr(orig.Inner, norm[1:])
		if err != nil {
			return nil, err
		}

		return decl.NewNegExpr(inner, orig.Span), nil

	case decl.ExprLit:
		lit, err := rewriteLit(orig.Lit, raw)
		if err != nil {
			return nil, err
		}

		return decl.NewLitExpr(lit), nil

	default:
		return nil, ErrUnsupportedLiteral.With(
			slog.String("shape", orig.Kind.String()),
		)
	}
}

// rewriteLit builds a literal of the same kind as orig from the raw
// override value. Delimited kinds wrap the raw text in their delimiters
// before parsing; numeric kinds parse the raw text directly as a
// literal token. The new literal carries the original's span, never a
// position derived from the replacement text.
func rewriteLit(orig *decl.Lit, raw string) (*decl.Lit, error) {
	var (
		lit *decl.Lit
		err error
	)

	switch orig.Kind {
	case decl.LitString:
		lit, err = decl.ParseStringLit(`"` + raw + `"`)

	case decl.LitByteString:
		lit, err = decl.ParseByteStringLit(`b"` + raw + `"`)

	case decl.LitByte:
		lit, err = decl.ParseByteLit("b'" + raw + "'")

	case decl.LitChar:
		lit, err = decl.ParseCharLit("'" + raw + "'")

	case decl.LitInt:
		lit, err = rewriteNumeric(orig, raw, decl.ParseIntLit)

	case decl.LitFloat:
		lit, err = rewriteNumeric(orig, raw, decl.ParseFloatLit)

	case decl.LitBool:
		lit, err = decl.ParseBoolLit(raw)

	default:
		return nil, ErrUnsupportedLiteral.With(
			slog.String("kind", orig.Kind.String()),
		)
	}

	if err != nil {
		return nil, ErrValueParse.Wrap(err).With(
			slog.String("expected", orig.Kind.String()),
			slog.String("value", raw),
		)
	}

	return lit.WithSpan(orig.Span), nil
}

// rewriteNumeric parses a numeric override, carrying the original
// literal's type suffix onto an unsuffixed value. A suffixed value must
// carry the same suffix as the original.
func rewriteNumeric(
	orig *decl.Lit,
	raw string,
	parse func(string) (*decl.Lit, error),
) (*decl.Lit, error) {
	lit, err := parse(raw)
	if err != nil {
		// An unsuffixed value such as "42" is not a valid float token on
		// its own but may be valid with the inherited suffix.
		if orig.Suffix != "" {
			if inherited, ierr := parse(raw + orig.Suffix); ierr == nil {
				return inherited, nil
			}
		}

		return nil, err
	}

	if orig.Suffix == "" || lit.Suffix == orig.Suffix {
		return lit, nil
	}

	if lit.Suffix == "" {
		return parse(raw + orig.Suffix)
	}

	return nil, decl.ErrInvalidSuffix.With(
		slog.String("expected", orig.Suffix),
		slog.String("found", lit.Suffix),
	)
}

// Change records one rewritten declaration within a manifest.
type Change struct {
	Name string
	Key  string
	Old  string
	New  string
	Line int
}

// File parses a whole manifest, applies every decorated declaration,
// and splices the replacement literal text into the original source by
// span. Bytes outside the rewritten initializers and the consumed
// from_env attributes survive verbatim.
func File(
	ctx context.Context,
	src string,
	p env.Provider,
	opts ...Option,
) (string, []Change, error) {
	cfg := makeConfig(opts...)

	m, err := decl.Parse(src)
	if err != nil {
		return "", nil, err
	}

	type splice struct {
		start, end int
		text       string
	}

	var (
		edits   []splice
		changes []Change
	)

	for _, d := range m.Decls {
		if d.Attr == nil {
			continue
		}

		rewritten, key, changed, err := apply(ctx, d, p, cfg)
		if err != nil {
			return "", nil, err
		}

		// The attribute is consumed: drop it along with its line break.
		edits = append(edits, splice{
			start: d.Attr.Span.Start,
			end:   attrLineEnd(src, d.Attr.Span.End),
		})

		if !changed {
			continue
		}

		span := d.Init.Span
		edits = append(edits, splice{
			start: span.Start,
			end:   span.End,
			text:  rewritten.Init.Text(),
		})

		change := Change{
			Name: d.Name,
			Key:  key,
			Old:  d.Init.Text(),
			New:  rewritten.Init.Text(),
			Line: d.Span.Line,
		}

		cfg.logger.DebugContext(ctx, "declaration rewritten",
			slog.String("declaration", change.Name),
			slog.String("key", change.Key),
			slog.String("old", change.Old),
			slog.String("new", change.New),
		)

		changes = append(changes, change)
	}

	sort.Slice(edits, func(i, j int) bool {
		return edits[i].start < edits[j].start
	})

	var buf strings.Builder

	last := 0
	for _, e := range edits {
		buf.WriteString(src[last:e.start])
		buf.WriteString(e.text)
		last = e.end
	}

	buf.WriteString(src[last:])

	return buf.String(), changes, nil
}

// attrLineEnd extends an attribute's end offset past trailing blanks
// and one line break, so removing the attribute does not leave an empty
// line behind.
func attrLineEnd(src string, end int) int {
	for end < len(src) && (src[end] == ' ' || src[end] == '\t') {
		end++
	}

	if end < len(src) && src[end] == '\r' {
		end++
	}

	if end < len(src) && src[end] == '\n' {
		end++
	}

	return end
}

// KeyInfo describes one decorated declaration and its resolved
// override key.
type KeyInfo struct {
	Name     string
	Key      string
	Kind     decl.LitKind
	Line     int
	Explicit bool
}

// ManifestKeys resolves the override key of every decorated declaration
// in the manifest.
func ManifestKeys(m *decl.Manifest) ([]KeyInfo, error) {
	var infos []KeyInfo

	for _, d := range m.Decls {
		if d.Attr == nil {
			continue
		}

		key, err := Key(d.Attr, d.Name)
		if err != nil {
			return nil, decl.WrapError(err).With(
				slog.String("declaration", d.Name),
			)
		}

		infos = append(infos, KeyInfo{
			Name:     d.Name,
			Key:      key,
			Kind:     d.Init.Literal().Kind,
			Line:     d.Span.Line,
			Explicit: d.Attr.HasArg,
		})
	}

	return infos, nil
}
