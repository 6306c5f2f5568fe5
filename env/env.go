// Package env provides the key-value lookup capability consulted for
// override values. Lookups are read-only; absence of a key is a normal
// outcome, not an error.
package env

import (
	"maps"
	"os"
	"unicode/utf8"
)

// Provider is a read-only, string-keyed lookup for override values.
// Lookup reports the value for key and whether the key was present.
type Provider interface {
	Lookup(key string) (string, bool)
}

// OS is a Provider backed by the process environment. Every lookup
// re-queries the live environment; nothing is cached.
type OS struct{}

// Lookup implements Provider. A value that is not valid UTF-8 is
// reported as absent, so undecodable and unset keys both leave the
// declaration untouched.
func (OS) Lookup(key string) (string, bool) {
	val, ok := os.LookupEnv(key)
	if !ok || !utf8.ValidString(val) {
		return "", false
	}

	return val, true
}

// Fixed is an immutable in-memory Provider for deterministic tests and
// pinned override sets. Construct one with a Builder or Load.
type Fixed struct {
	vars map[string]string
}

// Lookup implements Provider.
func (f *Fixed) Lookup(key string) (string, bool) {
	val, ok := f.vars[key]

	return val, ok
}

// Len returns the number of entries.
func (f *Fixed) Len() int { return len(f.vars) }

// Builder accumulates key-value entries for a Fixed provider.
type Builder struct {
	vars map[string]string
}

// NewBuilder returns an empty Builder.
func NewBuilder() *Builder {
	return &Builder{vars: map[string]string{}}
}

// Set records a key-value entry and returns the builder for chaining.
// Setting an existing key replaces its value.
func (b *Builder) Set(key, value string) *Builder {
	b.vars[key] = value

	return b
}

// Build finalizes the accumulated entries into an immutable Fixed
// provider. The builder may continue to be used without affecting
// providers already built.
func (b *Builder) Build() *Fixed {
	return &Fixed{vars: maps.Clone(b.vars)}
}
