package safecalc

import "strconv"

// ErrorKind classifies every error this package returns.
type ErrorKind int

const (
	// ErrSyntax indicates input that does not parse as a single expression.
	ErrSyntax ErrorKind = iota
	// ErrDisallowed indicates a construct outside the expression grammar,
	// such as assignment, attribute access, or a string literal.
	ErrDisallowed
	// ErrUnknownIdent indicates a name that is not a known constant.
	ErrUnknownIdent
	// ErrUnknownFunc indicates a call of a name that is not a known function.
	ErrUnknownFunc
	// ErrBadArguments indicates a function called with the wrong number of
	// arguments or with an argument outside the function's domain.
	ErrBadArguments
	// ErrOperation indicates an operator applied to invalid operand values,
	// such as division by zero.
	ErrOperation
	// ErrTooComplex indicates that an expression tripped a nesting or result
	// size guard.
	ErrTooComplex
)

func (k ErrorKind) String() string {
	switch k {
	case ErrSyntax:
		return "SyntaxError"
	case ErrDisallowed:
		return "DisallowedConstruct"
	case ErrUnknownIdent:
		return "UnknownIdentifier"
	case ErrUnknownFunc:
		return "UnknownFunction"
	case ErrBadArguments:
		return "BadArguments"
	case ErrOperation:
		return "OperationError"
	case ErrTooComplex:
		return "TooComplex"
	default:
		return "ErrorKind(" + strconv.Itoa(int(k)) + ")"
	}
}

// Error is implemented by every error returned from Parse, Eval, and
// Evaluate. The message is suitable for showing to the person who typed the
// expression.
type Error interface {
	error
	// Kind returns the classification of the error.
	Kind() ErrorKind
}

// InputError is an error with position information. Every error resulting
// from invalid input text implements InputError.
type InputError interface {
	Error
	// Pos returns the position of the error as the number of runes up to and
	// including the start of the token that caused the error.
	Pos() int
}

// Kind reports the classification of err, or ErrSyntax, false if err is not
// an Error from this package.
func Kind(err error) (ErrorKind, bool) {
	e, ok := err.(Error)
	if !ok {
		return ErrSyntax, false
	}
	return e.Kind(), true
}

// LexError indicates an invalid token.
type LexError struct {
	// Text is the token the lexer was scanning when the invalid rune was
	// encountered, plus the invalid rune.
	Text string
	// Class is the type of token the lexer was scanning. This may be
	// "number" or the empty string (if a token kind hadn't been decided).
	Class string
	// Col is the total number of runes scanned by the lexer up to and
	// including this error.
	Col int
}

func (err *LexError) Error() string {
	pos := "column " + strconv.Itoa(err.Col)
	if err.Class == "" {
		return "invalid token at " + pos + ": " + strconv.Quote(err.Text)
	}
	return "invalid " + err.Class + " token at " + pos + ": " + strconv.Quote(err.Text)
}

func (err *LexError) Kind() ErrorKind { return ErrSyntax }

func (err *LexError) Pos() int { return err.Col }

// OperatorError is an error indicating an operator token in a position where
// it cannot apply, e.g. a binary operator at the start of an expression.
type OperatorError struct {
	// Col is the position of the operator.
	Col int
	// Operator is the token that was not understood.
	Operator string
	// Unary is whether the parser expected a unary operator at the time.
	Unary bool
}

func (err *OperatorError) Error() string {
	s := "binary"
	if err.Unary {
		s = "unary"
	}
	return errpos(err.Col, "invalid "+s+" operator "+strconv.Quote(err.Operator))
}

func (err *OperatorError) Kind() ErrorKind { return ErrSyntax }

func (err *OperatorError) Pos() int { return err.Col }

// BracketError is an error indicating unbalanced parentheses in the input.
type BracketError struct {
	// Col is the position of the mismatch.
	Col int
	// Left is the unmatched opening parenthesis, or empty if the error is a
	// close parenthesis with no matching open.
	Left string
	// Right is the mismatched closing token, or empty at end of input.
	Right string
}

func (err *BracketError) Error() string {
	if err.Left == "" {
		return errpos(err.Col, "close parenthesis with no open parenthesis")
	}
	return errpos(err.Col, "open parenthesis with no close parenthesis")
}

func (err *BracketError) Kind() ErrorKind { return ErrSyntax }

func (err *BracketError) Pos() int { return err.Col }

// SeparatorError is an error indicating a comma outside a function argument
// list.
type SeparatorError struct {
	// Col is the position of the separator.
	Col int
	// Sep is the separator.
	Sep string
}

func (err *SeparatorError) Error() string {
	return errpos(err.Col, "invalid occurrence of separator "+strconv.Quote(err.Sep))
}

func (err *SeparatorError) Kind() ErrorKind { return ErrSyntax }

func (err *SeparatorError) Pos() int { return err.Col }

// EmptyExpressionError is an error indicating an empty expression or
// subexpression, including blank input and trailing operators.
type EmptyExpressionError struct {
	// Col is the position of the token that ended the subexpression.
	Col int
	// End is the token that ended the subexpression.
	End string
}

func (err *EmptyExpressionError) Error() string {
	if err.End == "" {
		if err.Col <= 1 {
			return errpos(err.Col, "no expression")
		}
		return errpos(err.Col, "no expression at end")
	}
	return errpos(err.Col, "no expression up to "+strconv.Quote(err.End))
}

func (err *EmptyExpressionError) Kind() ErrorKind { return ErrSyntax }

func (err *EmptyExpressionError) Pos() int { return err.Col }

// UnexpectedTokenError is an error indicating a token that cannot continue
// the expression, e.g. two adjacent terms with no operator between them.
type UnexpectedTokenError struct {
	// Col is the position of the token.
	Col int
	// Token is the offending token text.
	Token string
}

func (err *UnexpectedTokenError) Error() string {
	return errpos(err.Col, "unexpected "+strconv.Quote(err.Token))
}

func (err *UnexpectedTokenError) Kind() ErrorKind { return ErrSyntax }

func (err *UnexpectedTokenError) Pos() int { return err.Col }

// DisallowedError is an error indicating a construct that parses in a more
// general language but is deliberately outside the expression grammar.
type DisallowedError struct {
	// Col is the position of the construct.
	Col int
	// Construct names the disallowed construct, e.g. "assignment".
	Construct string
	// Token is the token that revealed the construct, if any.
	Token string
}

func (err *DisallowedError) Error() string {
	return errpos(err.Col, "disallowed construct: "+err.Construct)
}

func (err *DisallowedError) Kind() ErrorKind { return ErrDisallowed }

func (err *DisallowedError) Pos() int { return err.Col }

// ComplexityError is an error indicating that an expression exceeded a
// nesting or result size limit.
type ComplexityError struct {
	// What describes the limit that was exceeded.
	What string
}

func (err *ComplexityError) Error() string {
	return "expression too complex: " + err.What
}

func (err *ComplexityError) Kind() ErrorKind { return ErrTooComplex }

// NameError is an error from a lookup of an identifier that is not a known
// constant.
type NameError struct {
	// Name is the unknown identifier.
	Name string
}

func (err *NameError) Error() string {
	return "unknown identifier: " + strconv.Quote(err.Name)
}

func (err *NameError) Kind() ErrorKind { return ErrUnknownIdent }

// FuncError is an error from a call of a name that is not a known function.
type FuncError struct {
	// Name is the unknown function name.
	Name string
}

func (err *FuncError) Error() string {
	return "unknown function: " + strconv.Quote(err.Name)
}

func (err *FuncError) Kind() ErrorKind { return ErrUnknownFunc }

// ArgumentError is an error from calling a known function with the wrong
// number of arguments or with an argument outside its domain.
type ArgumentError struct {
	// Func is the function name that was called.
	Func string
	// Msg describes what was wrong with the arguments.
	Msg string
}

func (err *ArgumentError) Error() string {
	return "bad arguments for " + err.Func + ": " + err.Msg
}

func (err *ArgumentError) Kind() ErrorKind { return ErrBadArguments }

// OperationError is an error from applying an operator to operand values for
// which it has no result, such as division by zero.
type OperationError struct {
	// Op is the operator symbol.
	Op string
	// Msg describes the fault.
	Msg string
}

func (err *OperationError) Error() string {
	return "invalid operation " + strconv.Quote(err.Op) + ": " + err.Msg
}

func (err *OperationError) Kind() ErrorKind { return ErrOperation }

// errpos is a shortcut to create an error message with a position.
func errpos(pos int, msg string) string {
	return "column " + strconv.Itoa(pos) + ": " + msg
}

var (
	_ InputError = (*LexError)(nil)
	_ InputError = (*OperatorError)(nil)
	_ InputError = (*BracketError)(nil)
	_ InputError = (*SeparatorError)(nil)
	_ InputError = (*EmptyExpressionError)(nil)
	_ InputError = (*UnexpectedTokenError)(nil)
	_ InputError = (*DisallowedError)(nil)
	_ Error      = (*ComplexityError)(nil)
	_ Error      = (*NameError)(nil)
	_ Error      = (*FuncError)(nil)
	_ Error      = (*ArgumentError)(nil)
	_ Error      = (*OperationError)(nil)
)
