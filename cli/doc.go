// Package cli defines the constenv command-line interface with kong.
package cli
