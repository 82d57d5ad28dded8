package mathovi

import (
	"errors"
	"io"
	"strings"
)

// Statements = Expr { ';' Expr } [ ';' ]
// Expr = Equality
// Equality = Sum [ '=' Equality ]
// Sum = Product [ ('+' | '-') Sum ]
// Product = Primary [ ('*' | '/' | '^') Product ]
// Primary = '...' | '-' Expr | num | letter | '(' Expr ')' | funcname '(' [ Expr { ',' Expr } ] ')'

// primarystart is the set of tokens that can begin a primary.
var primarystart = []TokenKind{TokenDot, TokenMinus, TokenNumber, TokenIdent, TokenParenOpen}

// parser holds the token source, a single token of lookahead, and the parse
// options.
type parser struct {
	src TokenSource
	// tok and err are the lookahead token and the error that came with it.
	// They are valid only when peeked is set.
	tok    Token
	err    error
	peeked bool
	// last is the most recently consumed token, used to locate the end of
	// the input when src does not report its own position.
	last Token

	parsectx
}

// peek returns the next token without consuming it. At the end of the input,
// the error is io.EOF.
func (p *parser) peek() (Token, error) {
	if !p.peeked {
		p.tok, p.err = p.src.Next()
		p.peeked = true
	}
	return p.tok, p.err
}

// advance consumes and returns the next token.
func (p *parser) advance() (Token, error) {
	tok, err := p.peek()
	if err == nil {
		p.peeked = false
		p.last = tok
	}
	return tok, err
}

// eof creates an error describing the end of the input.
func (p *parser) eof() error {
	if l, ok := p.src.(interface{ Pos() (int, int) }); ok {
		line, col := l.Pos()
		return &UnexpectedEOFError{Line: line, Col: col}
	}
	return &UnexpectedEOFError{Line: p.last.Line, Col: p.last.Col + p.last.Len}
}

// expect consumes a token which must be of kind k.
func (p *parser) expect(k TokenKind) (Token, error) {
	tok, err := p.advance()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return tok, p.eof()
		}
		return tok, err
	}
	if tok.Kind != k {
		return tok, unexpected(tok, k)
	}
	return tok, nil
}

// unexpected creates an error for a token that is not one of the expected
// kinds.
func unexpected(tok Token, expected ...TokenKind) error {
	return &UnexpectedTokenError{
		Line:     tok.Line,
		Col:      tok.Col,
		Expected: expected,
		Found:    &tok,
	}
}

// ParseTokens parses a sequence of statements separated by TokenEnd. A
// terminator after the final statement is optional. Parsing stops at the
// first error; no statements are returned in that case.
func ParseTokens(src TokenSource, opts ...ParseOption) ([]*Expr, error) {
	p := parser{src: src}
	for _, opt := range opts {
		p.parsectx = opt.parseOption(p.parsectx)
	}
	var r []*Expr
	for {
		n, err := p.parse(equalsprec)
		if err != nil {
			return nil, err
		}
		r = append(r, n)
		tok, err := p.advance()
		if err != nil {
			if errors.Is(err, io.EOF) {
				return r, nil
			}
			return nil, err
		}
		if tok.Kind != TokenEnd {
			return nil, unexpected(tok, TokenEnd)
		}
		if _, err := p.peek(); err != nil {
			if errors.Is(err, io.EOF) {
				return r, nil
			}
			return nil, err
		}
	}
}

// Parse lexes and parses statements from src.
func Parse(src io.RuneScanner, opts ...ParseOption) ([]*Expr, error) {
	return ParseTokens(Lex(src), opts...)
}

// ParseString lexes and parses statements from a string.
func ParseString(src string, opts ...ParseOption) ([]*Expr, error) {
	return Parse(strings.NewReader(src), opts...)
}

// parse parses an expression whose operators bind at least as tightly as
// prec. A chain of operators at the same level nests to the right, so a-b-c is
// a-(b-c), unless the left associativity option applies to the level.
func (p *parser) parse(prec int) (*Expr, error) {
	if prec >= maxprec {
		return p.parsePrimary()
	}
	lhs, err := p.parse(prec + 1)
	if err != nil {
		return nil, err
	}
	for {
		op, err := p.peekop(prec)
		if err != nil {
			return nil, err
		}
		if op == opNone {
			return lhs, nil
		}
		p.advance()
		if !p.leftassoc(prec) {
			rhs, err := p.parse(prec)
			if err != nil {
				return nil, err
			}
			return Binary(op, lhs, rhs), nil
		}
		rhs, err := p.parse(prec + 1)
		if err != nil {
			return nil, err
		}
		lhs = Binary(op, lhs, rhs)
	}
}

// peekop returns the binary operator at the lookahead token if it has
// precedence prec, or opNone otherwise.
func (p *parser) peekop(prec int) (Op, error) {
	tok, err := p.peek()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return opNone, nil
		}
		return opNone, err
	}
	op := binop(tok.Kind)
	if op == opNone || op.Precedence() != prec {
		return opNone, nil
	}
	return op, nil
}

// parsePrimary parses the smallest unit of an expression.
func (p *parser) parsePrimary() (*Expr, error) {
	tok, err := p.advance()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return nil, p.eof()
		}
		return nil, err
	}
	switch tok.Kind {
	case TokenDot:
		for i := 0; i < 2; i++ {
			if _, err := p.expect(TokenDot); err != nil {
				return nil, err
			}
		}
		return Dots(), nil
	case TokenMinus:
		x, err := p.parse(equalsprec)
		if err != nil {
			return nil, err
		}
		return Unary(OpSub, x), nil
	case TokenNumber:
		return Val(tok.Num), nil
	case TokenIdent:
		if len(tok.Text) == 1 {
			r := rune(tok.Text[0])
			if !isLetter(r) {
				return nil, &UnexpectedIdentError{Line: tok.Line, Col: tok.Col, Ident: tok.Text}
			}
			return Sym(r), nil
		}
		return p.parseCall(tok)
	case TokenParenOpen:
		x, err := p.parse(equalsprec)
		if err != nil {
			return nil, err
		}
		if _, err := p.expect(TokenParenClose); err != nil {
			return nil, err
		}
		return x, nil
	default:
		return nil, unexpected(tok, primarystart...)
	}
}

// parseCall parses the argument list following a function name and checks
// it against the function.
func (p *parser) parseCall(name Token) (*Expr, error) {
	open, err := p.expect(TokenParenOpen)
	if err != nil {
		return nil, err
	}
	args, err := p.parseArgs()
	if err != nil {
		return nil, err
	}
	fn, ok := LookupFunc(name.Text)
	if !ok {
		return nil, &UnexpectedIdentError{Line: name.Line, Col: name.Col, Ident: name.Text}
	}
	n, err := Call(fn, args...)
	if err != nil {
		ae := err.(*ArgumentsError)
		ae.Line, ae.Col = open.Line, open.Col
		return nil, ae
	}
	return n, nil
}

// parseArgs parses a comma-separated argument list through the closing
// parenthesis. The open parenthesis has already been consumed.
func (p *parser) parseArgs() ([]*Expr, error) {
	tok, err := p.peek()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return nil, p.eof()
		}
		return nil, err
	}
	if tok.Kind == TokenParenClose {
		p.advance()
		return nil, nil
	}
	var args []*Expr
	for {
		x, err := p.parse(equalsprec)
		if err != nil {
			return nil, err
		}
		args = append(args, x)
		tok, err := p.advance()
		if err != nil {
			if errors.Is(err, io.EOF) {
				return nil, p.eof()
			}
			return nil, err
		}
		switch tok.Kind {
		case TokenComma:
			// Next argument.
		case TokenParenClose:
			return args, nil
		default:
			return nil, unexpected(tok, TokenParenClose)
		}
	}
}
