package safecalc

import (
	"io"
	"strings"
)

// Expr is a parsed expression ready to evaluate.
type Expr struct {
	// n is the root node of the expression.
	n *node
}

// Parse parses a single arithmetic expression. The input must be exactly one
// expression: no statements, no assignments, nothing but the arithmetic
// grammar. Every returned error implements Error, and errors with a position
// in the input implement InputError.
func Parse(src io.RuneScanner) (*Expr, error) {
	n, err := parse(src)
	if err != nil {
		return nil, err
	}
	return &Expr{n: n}, nil
}

// ParseString is a shortcut to parse an expression from a string.
func ParseString(src string) (*Expr, error) {
	return Parse(strings.NewReader(src))
}

// Eval evaluates the expression and returns its value. Evaluation first
// re-checks the whole tree against the allowed node shapes, then walks it
// bottom-up applying only whitelisted operators, functions, and constants.
// Eval is pure: it reads no state outside the immutable whitelist tables, so
// any number of evaluations may run concurrently.
func (e *Expr) Eval() (Number, error) {
	if err := e.n.check(0); err != nil {
		return Number{}, err
	}
	return e.n.eval(0)
}

// String creates a fully parenthesized string representation of the parsed
// expression.
func (e *Expr) String() string {
	return e.n.String()
}

// Evaluate parses and evaluates an expression in one step. It is the whole
// public contract in one call: text in, a Number or an Error out, with no
// state carried between calls.
func Evaluate(src string) (Number, error) {
	e, err := ParseString(src)
	if err != nil {
		return Number{}, err
	}
	return e.Eval()
}
