package safecalc

// Expr    = Add
// Add     = Mul | Add ('+' | '-') Mul
// Mul     = Unary | Mul ('*' | '/' | '//' | '%') Unary
// Unary   = Pow | ('+' | '-') Unary
// Pow     = Primary | Primary '**' Unary
// Primary = num | name | name '(' Args ')' | '(' Expr ')'
// Args    = [ Expr { ',' Expr } ]

import "io"

// keywordConstructs maps identifier tokens that are keywords in the host
// grammar to the construct they introduce. None of them have a meaning in an
// arithmetic expression, and recognizing them keeps the error distinct from a
// plain unknown identifier.
var keywordConstructs = map[string]string{
	"lambda":   "lambda definition",
	"def":      "function definition",
	"class":    "class definition",
	"import":   "import",
	"from":     "import",
	"global":   "name scoping",
	"nonlocal": "name scoping",
	"del":      "name deletion",
	"if":       "conditional expression",
	"elif":     "conditional expression",
	"else":     "conditional expression",
	"for":      "loop",
	"while":    "loop",
	"break":    "loop",
	"continue": "loop",
	"and":      "boolean operator",
	"or":       "boolean operator",
	"not":      "boolean operator",
	"in":       "comparison",
	"is":       "comparison",
	"return":   "statement",
	"yield":    "statement",
	"pass":     "statement",
	"raise":    "statement",
	"try":      "statement",
	"except":   "statement",
	"finally":  "statement",
	"with":     "statement",
	"assert":   "statement",
	"async":    "statement",
	"await":    "statement",
	"True":     "boolean literal",
	"False":    "boolean literal",
	"None":     "None literal",
}

type parser struct {
	scan *lexer
	// depth counts live parseterm calls to bound recursion.
	depth int
}

// parse parses a complete expression from src.
func parse(src io.RuneScanner) (*node, error) {
	p := parser{scan: lex(src)}
	n, err := p.parseterm(exprprec)
	if err != nil {
		return nil, err
	}
	tok := p.scan.must()
	switch tok.kind {
	case tokenEOF:
		if n == nil {
			return nil, &EmptyExpressionError{Col: tok.pos}
		}
		return n, nil
	case tokenClose:
		return nil, &BracketError{Col: tok.pos, Right: tok.text}
	case tokenSep:
		return nil, &SeparatorError{Col: tok.pos, Sep: tok.text}
	default:
		panic("safecalc: it really should not have ended this way: " + tok.String())
	}
}

// parseterm parses a single term. If there is no error, then parseterm pushes
// the last token it scans, including EOF. If the input is an empty
// subexpression ended by a close parenthesis, the result is nil with no
// error; callers create an error in contexts where that is illegal.
func (p *parser) parseterm(until operator) (*node, error) {
	p.depth++
	defer func() { p.depth-- }()
	if p.depth > maxDepth {
		return nil, &ComplexityError{What: "nesting too deep"}
	}
	n, err := p.parselhs(until)
	if err != nil {
		return nil, err
	}
	if n == nil {
		return nil, nil
	}
	for {
		tok, err := p.scan.next()
		if err != nil {
			return nil, err
		}
		switch tok.kind {
		case tokenOp:
			prec := binop(tok.text)
			if prec.op == nodeNone {
				return nil, &OperatorError{Col: tok.pos, Operator: tok.text}
			}
			if !prec.moreBinding(until) {
				p.scan.push(tok)
				return n, nil
			}
			rhs, err := p.parseterm(prec)
			if err != nil {
				return nil, err
			}
			if rhs == nil {
				end := p.scan.must()
				return nil, &EmptyExpressionError{Col: end.pos, End: end.text}
			}
			n = &node{kind: prec.op, left: n, right: rhs}
		case tokenNum, tokenIdent:
			// Adjacent terms with no operator between them. There is no
			// implicit multiplication; keywords get the better error.
			if c, ok := keywordConstructs[tok.text]; ok {
				return nil, &DisallowedError{Col: tok.pos, Construct: c, Token: tok.text}
			}
			return nil, &UnexpectedTokenError{Col: tok.pos, Token: tok.text}
		case tokenOpen:
			// A parenthesis directly after a value would call it. Only bare
			// function names are callable.
			return nil, &DisallowedError{Col: tok.pos, Construct: "call of a value that is not a function name", Token: tok.text}
		case tokenClose, tokenSep, tokenEOF:
			// End of term.
			p.scan.push(tok)
			return n, nil
		default:
			panic("safecalc: unknown token: " + tok.String())
		}
	}
}

// parselhs parses the first component of a term. I.e., operators are unary,
// and any encountered token must be valid as the start of a subexpression.
func (p *parser) parselhs(until operator) (*node, error) {
	tok, err := p.scan.next()
	if err != nil {
		return nil, err
	}
	var n *node
	switch tok.kind {
	case tokenNum:
		v, err := parseNumber(tok.text)
		if err != nil {
			return nil, err
		}
		n = &node{kind: nodeNum, num: v}
	case tokenIdent:
		if c, ok := keywordConstructs[tok.text]; ok {
			return nil, &DisallowedError{Col: tok.pos, Construct: c, Token: tok.text}
		}
		nxt, err := p.scan.next()
		if err != nil {
			return nil, err
		}
		if nxt.kind == tokenOpen {
			// A call. The name is resolved against the function table at
			// evaluation time, not here.
			args, err := p.parseargs(nxt)
			if err != nil {
				return nil, err
			}
			n = &node{kind: nodeCall, name: tok.text, args: args}
		} else {
			p.scan.push(nxt)
			n = &node{kind: nodeName, name: tok.text}
		}
	case tokenOp:
		// Unary operator.
		prec := unop(tok.text)
		if prec.op == nodeNone {
			return nil, &OperatorError{Col: tok.pos, Operator: tok.text, Unary: true}
		}
		if !prec.moreBinding(until) {
			// x**-y -> x**(-y)
			// Just use the new operator's precedence to simplify.
			prec.prec, prec.right = until.prec, until.right
		}
		rhs, err := p.parseterm(prec)
		if err != nil {
			return nil, err
		}
		if rhs == nil {
			end := p.scan.must()
			return nil, &EmptyExpressionError{Col: end.pos, End: end.text}
		}
		n = &node{kind: prec.op, left: rhs}
	case tokenOpen:
		rhs, err := p.parseterm(exprprec)
		if err != nil {
			return nil, err
		}
		end := p.scan.must()
		switch end.kind {
		case tokenClose:
		case tokenEOF:
			return nil, &BracketError{Col: end.pos, Left: tok.text}
		default:
			panic("safecalc: parseterm ended on " + end.String())
		}
		if rhs == nil {
			return nil, &EmptyExpressionError{Col: end.pos, End: end.text}
		}
		n = rhs
	case tokenClose:
		// This might close a niladic call or an empty parenthesized group, so
		// just let the caller decide what to do.
		p.scan.push(tok)
		return nil, nil
	case tokenSep:
		return nil, &SeparatorError{Col: tok.pos, Sep: tok.text}
	case tokenEOF:
		return nil, &EmptyExpressionError{Col: tok.pos}
	default:
		panic("safecalc: unknown token: " + tok.String())
	}
	return n, nil
}

// parseargs parses a parenthesized, comma-separated list of zero or more call
// arguments. open is the already-scanned open parenthesis.
func (p *parser) parseargs(open lexToken) ([]*node, error) {
	var args []*node
	for {
		arg, err := p.parseterm(exprprec)
		if err != nil {
			// Unclosed argument lists read better as a parenthesis error.
			if ee, ok := err.(*EmptyExpressionError); ok && ee.End == "" {
				return nil, &BracketError{Col: ee.Col, Left: open.text}
			}
			return nil, err
		}
		end := p.scan.must()
		switch end.kind {
		case tokenClose:
			if arg == nil {
				if len(args) != 0 {
					// f(a,) has an empty argument slot.
					return nil, &EmptyExpressionError{Col: end.pos, End: end.text}
				}
				// f() parses; arity is the evaluator's business.
				return nil, nil
			}
			return append(args, arg), nil
		case tokenSep:
			args = append(args, arg)
		case tokenEOF:
			return nil, &BracketError{Col: end.pos, Left: open.text}
		default:
			panic("safecalc: parseterm ended on " + end.String())
		}
	}
}

type operator struct {
	// prec is the precedence value. Higher is more binding.
	prec int8
	// right indicates right-associativity.
	right bool
	// op is the node kind to use when this operator is selected.
	op nodeKind
}

func (p operator) moreBinding(than operator) bool {
	if p.prec != than.prec {
		return p.prec > than.prec
	}
	return p.right
}

// binop gets a binary operator for a token string. If there is no such binary
// operator, then the result has an op of nodeNone.
func binop(text string) operator {
	switch text {
	case "+":
		return operator{1, false, nodeAdd}
	case "-":
		return operator{1, false, nodeSub}
	case "*":
		return operator{5, false, nodeMul}
	case "/":
		return operator{5, false, nodeDiv}
	case "//":
		return operator{5, false, nodeFloorDiv}
	case "%":
		return operator{5, false, nodeMod}
	case "**":
		return operator{15, true, nodePow}
	default:
		return operator{}
	}
}

// unop gets a unary operator for a token string. If there is no such unary
// operator, then the result has an op of nodeNone.
func unop(text string) operator {
	switch text {
	case "+":
		return operator{10, true, nodePos}
	case "-":
		return operator{10, true, nodeNeg}
	default:
		return operator{}
	}
}

var (
	// powprec is the precedence of exponentiation, the only right-associative
	// binary operator.
	powprec = binop("**")
	// exprprec is the precedence required to parse an entire subexpression.
	exprprec = operator{-128, true, nodeNone}
)
