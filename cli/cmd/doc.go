// Package cmd implements the constenv subcommands.
package cmd
