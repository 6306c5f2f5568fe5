package rewrite

import (
	"fmt"
	"log/slog"

	"github.com/expr-lang/expr/ast"
	"github.com/expr-lang/expr/parser"

	"github.com/DXist/const-env/decl"
)

// Key resolves the override key for a declaration. Without an attribute
// argument the key is the declaration identifier verbatim. An argument
// must be an expression reducing to a string literal; parenthesization
// layers reduce in the expression parser, so ("KEY") and "KEY" resolve
// identically. Any other expression shape is fatal: the key must be
// statically known.
func Key(attr *decl.Attr, name string) (string, error) {
	if attr == nil || !attr.HasArg {
		if name == "" {
			return "", ErrEmptyKey
		}

		return name, nil
	}

	tree, err := parser.Parse(attr.Arg)
	if err != nil {
		return "", ErrKeyNotStringLit.Wrap(err).With(
			slog.String("argument", attr.Arg),
		)
	}

	str, ok := tree.Node.(*ast.StringNode)
	if !ok {
		return "", ErrKeyNotStringLit.With(
			slog.String("argument", attr.Arg),
			slog.String("shape", fmt.Sprintf("%T", tree.Node)),
		)
	}

	if str.Value == "" {
		return "", ErrEmptyKey.With(slog.String("argument", attr.Arg))
	}

	return str.Value, nil
}
