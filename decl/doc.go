// Package decl models constant manifest declarations and the narrow
// literal grammar they may contain.
//
// A manifest is a sequence of constant-like declarations:
//
//	#[from_env]
//	const LIMIT: i32 = 10;
//
//	#[from_env("SERVER_NAME")]
//	static NAME: &str = "default";
//
// The package provides the declaration and literal node types, a
// recursive-descent parser for the manifest grammar, per-kind literal
// parse functions, and printers that re-emit source text. It never
// interprets type annotations and never parses general expressions;
// initializers are restricted to literals with an optional unary-minus
// wrapper.
package decl
