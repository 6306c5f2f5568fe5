package rewrite

import (
	"errors"
	"testing"

	"github.com/DXist/const-env/decl"
)

func TestKey(t *testing.T) {
	tests := []struct {
		name string
		attr *decl.Attr
		decl string
		want string
		err  error
	}{
		{
			name: "nil attribute uses identifier",
			decl: "MAX_CONNS",
			want: "MAX_CONNS",
		},
		{
			name: "bare attribute uses identifier",
			attr: &decl.Attr{Name: "from_env"},
			decl: "MAX_CONNS",
			want: "MAX_CONNS",
		},
		{
			name: "explicit key",
			attr: &decl.Attr{Name: "from_env", Arg: `"SERVICE_NAME"`, HasArg: true},
			decl: "NAME",
			want: "SERVICE_NAME",
		},
		{
			name: "parenthesized key",
			attr: &decl.Attr{Name: "from_env", Arg: `("SERVICE_NAME")`, HasArg: true},
			decl: "NAME",
			want: "SERVICE_NAME",
		},
		{
			name: "nested parentheses",
			attr: &decl.Attr{Name: "from_env", Arg: `(("SERVICE_NAME"))`, HasArg: true},
			decl: "NAME",
			want: "SERVICE_NAME",
		},
		{
			name: "identifier argument",
			attr: &decl.Attr{Name: "from_env", Arg: "SERVICE_NAME", HasArg: true},
			decl: "NAME",
			err:  ErrKeyNotStringLit,
		},
		{
			name: "concatenation argument",
			attr: &decl.Attr{Name: "from_env", Arg: `"A" + "B"`, HasArg: true},
			decl: "NAME",
			err:  ErrKeyNotStringLit,
		},
		{
			name: "call argument",
			attr: &decl.Attr{Name: "from_env", Arg: `env("A")`, HasArg: true},
			decl: "NAME",
			err:  ErrKeyNotStringLit,
		},
		{
			name: "integer argument",
			attr: &decl.Attr{Name: "from_env", Arg: "42", HasArg: true},
			decl: "NAME",
			err:  ErrKeyNotStringLit,
		},
		{
			name: "empty string key",
			attr: &decl.Attr{Name: "from_env", Arg: `""`, HasArg: true},
			decl: "NAME",
			err:  ErrEmptyKey,
		},
		{
			name: "unparsable argument",
			attr: &decl.Attr{Name: "from_env", Arg: `"unclosed`, HasArg: true},
			decl: "NAME",
			err:  ErrKeyNotStringLit,
		},
		{
			name: "no attribute and empty identifier",
			decl: "",
			err:  ErrEmptyKey,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Key(tt.attr, tt.decl)
			if tt.err != nil {
				if !errors.Is(err, tt.err) {
					t.Fatalf("error = %v, want %v", err, tt.err)
				}

				return
			}

			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}

			if got != tt.want {
				t.Errorf("key = %q, want %q", got, tt.want)
			}
		})
	}
}
