package safecalc

import (
	"errors"
	"io"
	"strconv"
	"strings"
	"unicode"
	"unicode/utf8"
)

type lexToken struct {
	text string
	kind tokenKind
	pos  int
}

func (t lexToken) String() string {
	return t.kind.String() + ":" + t.text + "@" + strconv.Itoa(t.pos)
}

type tokenKind int

const (
	tokenNone tokenKind = iota
	// tokenEOF indicates the end of the input.
	tokenEOF
	// tokenNum is an integer or real token.
	tokenNum
	// tokenIdent is a constant or function name.
	tokenIdent
	// tokenOp is an operator.
	tokenOp
	// tokenOpen is an open parenthesis.
	tokenOpen
	// tokenClose is a close parenthesis.
	tokenClose
	// tokenSep is the function argument separator, a comma.
	tokenSep
)

func (k tokenKind) String() string {
	switch k {
	case tokenNone:
		return "None"
	case tokenEOF:
		return "EOF"
	case tokenNum:
		return "Num"
	case tokenIdent:
		return "Ident"
	case tokenOp:
		return "Op"
	case tokenOpen:
		return "Open"
	case tokenClose:
		return "Close"
	case tokenSep:
		return "Sep"
	default:
		return "tokenKind(" + strconv.Itoa(int(k)) + ")"
	}
}

// disallowedRunes maps each rune that begins a construct outside the
// expression grammar to the name of that construct. Classifying these at lex
// time keeps the error distinct from a plain syntax error.
var disallowedRunes = map[rune]string{
	'=':  "assignment",
	'<':  "comparison",
	'>':  "comparison",
	'!':  "comparison",
	'&':  "bitwise operator",
	'|':  "bitwise operator",
	'^':  "bitwise operator",
	'~':  "bitwise operator",
	'[':  "subscript or list literal",
	']':  "subscript or list literal",
	'{':  "dict or set literal",
	'}':  "dict or set literal",
	'"':  "string literal",
	'\'': "string literal",
	';':  "statement sequence",
	':':  "lambda or slice",
	'@':  "decorator or matrix multiplication",
}

type lexer struct {
	src  io.RuneScanner
	buf  strings.Builder
	rune int
	p    lexToken
	eof  bool
}

func lex(src io.RuneScanner) *lexer {
	return &lexer{
		src:  src,
		rune: 1,
	}
}

// push unreads a token so that it is the next token returned from next. Panics
// if there is already a pushed token.
func (l *lexer) push(tok lexToken) {
	if l.p.kind != tokenNone {
		panic("safecalc: double push")
	}
	l.p = tok
}

// must scans the pushed token. Panics if there is no pushed token.
func (l *lexer) must() lexToken {
	tok := l.p
	if tok.kind == tokenNone {
		panic("safecalc: no pushed token")
	}
	l.p = lexToken{}
	return tok
}

// readRune reads a rune from the src and updates the lexer's position info.
func (l *lexer) readRune() (r rune, err error) {
	r, sz, err := l.src.ReadRune()
	if sz > 0 {
		l.rune++
	}
	return r, err
}

// unreadRune unreads a rune from the src and updates the lexer's position
// info. Panics if unreading returns an error.
func (l *lexer) unreadRune() {
	if err := l.src.UnreadRune(); err != nil {
		panic(err)
	}
	l.rune--
}

// next scans the next token from the input. The first time EOF is encountered,
// the result is an EOF token with a nil error. Subsequent times, if the EOF
// token is not pushed, the result is an empty token with io.EOF.
func (l *lexer) next() (lexToken, error) {
	if l.p.kind != tokenNone {
		tok := l.p
		l.p = lexToken{}
		return tok, nil
	}
	if l.eof {
		return lexToken{}, io.EOF
	}
	defer l.buf.Reset()
	tok := lexToken{pos: l.rune}
	for {
		r, err := l.readRune()
		if err != nil {
			if errors.Is(err, io.EOF) {
				tok.kind = tokenEOF
				l.eof = true
				return tok, nil
			}
			return tok, err
		}
		switch {
		case unicode.IsSpace(r):
			tok.pos++
			continue
		case '0' <= r && r <= '9':
			l.unreadRune()
			if err := l.scanNum(false); err != nil {
				return tok, err
			}
			tok.text = l.buf.String()
			tok.kind = tokenNum
			return tok, nil
		case r == '.':
			// A dot starts a number only when it is not followed by a name.
			// A name following a dot is attribute access, which has no place
			// in arithmetic.
			r2, err := l.readRune()
			switch {
			case err != nil && !errors.Is(err, io.EOF):
				return tok, err
			case err == nil && (r2 == '_' || unicode.IsLetter(r2)):
				return tok, &DisallowedError{Col: tok.pos, Construct: "attribute access", Token: "."}
			case err == nil:
				l.unreadRune()
			}
			l.buf.WriteRune('.')
			if err := l.scanNum(true); err != nil {
				return tok, err
			}
			tok.text = l.buf.String()
			tok.kind = tokenNum
			return tok, nil
		case r == '_', unicode.IsLetter(r):
			l.unreadRune()
			if err := l.scanIdent(); err != nil {
				return tok, err
			}
			tok.text = l.buf.String()
			tok.kind = tokenIdent
			return tok, nil
		case r == ',':
			tok.text = ","
			tok.kind = tokenSep
			return tok, nil
		case r == '(':
			tok.text = "("
			tok.kind = tokenOpen
			return tok, nil
		case r == ')':
			tok.text = ")"
			tok.kind = tokenClose
			return tok, nil
		case r == '+', r == '-', r == '%':
			tok.text = string(r)
			tok.kind = tokenOp
			return tok, nil
		case r == '*', r == '/':
			// Doubled, these are the power and floor-division operators.
			tok.text = string(r)
			r2, err := l.readRune()
			switch {
			case err != nil && !errors.Is(err, io.EOF):
				return tok, err
			case err == nil && r2 == r:
				tok.text = string(r) + string(r)
			case err == nil:
				l.unreadRune()
			}
			tok.kind = tokenOp
			return tok, nil
		default:
			if c, ok := disallowedRunes[r]; ok {
				return tok, &DisallowedError{Col: tok.pos, Construct: c, Token: string(r)}
			}
			// Write the rune so that it shows up in the error message.
			l.buf.WriteRune(r)
			return tok, l.error("")
		}
	}
}

// scanNum scans the remainder of a numeric literal: a decimal integer or
// float with an optional fractional part and an optional exponent. dot tells
// whether the leading dot has already been consumed.
func (l *lexer) scanNum(dot bool) error {
	var dig, e, le, ed bool
	for {
		r, err := l.readRune()
		if err != nil {
			if errors.Is(err, io.EOF) {
				break
			}
			return err
		}
		if r == '+' || r == '-' {
			// + or - anywhere other than immediately following an exponent
			// marker means a new token, as it is an operator.
			if !le {
				l.unreadRune()
				break
			}
			le = false
			l.buf.WriteRune(r)
			continue
		}
		switch r {
		case '.':
			if dot || e {
				l.buf.WriteRune(r)
				return l.error("number")
			}
			dot = true
			le = false
			l.buf.WriteRune(r)
		case 'e', 'E':
			if !dig || e {
				l.buf.WriteRune(r)
				return l.error("number")
			}
			e = true
			le = true
			l.buf.WriteRune(r)
		case '0', '1', '2', '3', '4', '5', '6', '7', '8', '9':
			if e {
				ed = true
			} else {
				dig = true
			}
			le = false
			l.buf.WriteRune(r)
		default:
			l.unreadRune()
			if (!dig && !ed) || (e && !ed) {
				return l.error("number")
			}
			return nil
		}
	}
	if (!dig && !ed) || (e && !ed) {
		return l.error("number")
	}
	return nil
}

// scanIdent scans an identifier: letters, digits, and underscores.
func (l *lexer) scanIdent() error {
	for {
		r, err := l.readRune()
		if err != nil {
			if errors.Is(err, io.EOF) {
				// next unreads the rune that decides ident scanning before
				// calling scanIdent, so we have scanned at least one rune.
				return nil
			}
			return err
		}
		switch {
		case r == '_', unicode.IsLetter(r), unicode.IsDigit(r):
			l.buf.WriteRune(r)
		default:
			l.unreadRune()
			return nil
		}
	}
}

func (l *lexer) error(class string) error {
	// The buffer holds everything scanned for the current token, so backing up
	// by its length gives the column where the bad text started.
	return &LexError{
		Text:  l.buf.String(),
		Class: class,
		Col:   l.rune - utf8.RuneCountInString(l.buf.String()),
	}
}
