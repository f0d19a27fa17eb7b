// Package safecalc evaluates arithmetic expressions inside a strict sandbox.
//
// An expression may use the binary operators + - * / // % **, unary + and -,
// parentheses, a fixed set of math functions, and the constants pi and e.
// Nothing else: no variables, no assignment, no control flow, no strings or
// booleans. Anything outside the whitelist is rejected with a typed error
// rather than evaluated.
//
// Integer arithmetic is exact to arbitrary size, so factorial(25) does not
// lose digits; any operation touching a float follows IEEE-754 double
// semantics. Results report which of the two they are, and the caller
// chooses display formatting.
//
// Parsing and evaluation are pure functions with no shared mutable state, so
// concurrent calls need no locking.
package safecalc
