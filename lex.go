package mathovi

import (
	"errors"
	"io"
	"strconv"
	"strings"
)

// Token is a single lexical unit with its position in the source.
type Token struct {
	// Kind is the token's classification.
	Kind TokenKind
	// Text is the source text of the token. For identifiers it is the name.
	Text string
	// Num is the value of a TokenNumber.
	Num float64
	// Line and Col are the 1-based position of the first rune of the token.
	Line, Col int
	// Len is the length of the token in runes.
	Len int
}

func (t Token) String() string {
	return t.Kind.String() + ":" + strconv.Quote(t.Text) + "@" + strconv.Itoa(t.Line) + ":" + strconv.Itoa(t.Col)
}

// TokenKind is the classification of a token.
type TokenKind int8

const (
	tokenNone TokenKind = iota
	// TokenNumber is a decimal literal, e.g. 1 or 2.5.
	TokenNumber
	// TokenIdent is a symbol or function name.
	TokenIdent
	TokenPlus
	TokenMinus
	TokenMultiply
	TokenDivider
	TokenPower
	TokenParenOpen
	TokenParenClose
	TokenEquals
	// TokenEnd terminates a statement.
	TokenEnd
	// TokenDot is a single period. Three in a row make an ellipsis.
	TokenDot
	TokenComma
)

var tokenNames = [...]string{
	tokenNone:       "none",
	TokenNumber:     "number",
	TokenIdent:      "identifier",
	TokenPlus:       "+",
	TokenMinus:      "-",
	TokenMultiply:   "*",
	TokenDivider:    "/",
	TokenPower:      "^",
	TokenParenOpen:  "(",
	TokenParenClose: ")",
	TokenEquals:     "=",
	TokenEnd:        ";",
	TokenDot:        ".",
	TokenComma:      ",",
}

func (k TokenKind) String() string {
	if k < 0 || int(k) >= len(tokenNames) {
		return "TokenKind(" + strconv.Itoa(int(k)) + ")"
	}
	return tokenNames[k]
}

// Punctuation contains the runes which lex as single-rune tokens.
const Punctuation = "+-*/^()=;,."

var punctkinds = [...]TokenKind{
	TokenPlus,
	TokenMinus,
	TokenMultiply,
	TokenDivider,
	TokenPower,
	TokenParenOpen,
	TokenParenClose,
	TokenEquals,
	TokenEnd,
	TokenComma,
	TokenDot,
}

// TokenSource is a pull-based sequence of tokens. Next returns io.EOF once
// the sequence is exhausted.
type TokenSource interface {
	Next() (Token, error)
}

// Lexer scans tokens from a rune source on demand. It implements TokenSource.
type Lexer struct {
	src  io.RuneScanner
	buf  strings.Builder
	line int
	col  int
	// prev is the column before the last rune read, to support unreading
	// across a newline.
	prev int
	eof  bool
}

// Lex creates a lexer reading from src.
func Lex(src io.RuneScanner) *Lexer {
	return &Lexer{
		src:  src,
		line: 1,
		col:  1,
	}
}

// Pos returns the position of the next rune the lexer will read.
func (l *Lexer) Pos() (line, col int) {
	return l.line, l.col
}

// readRune reads a rune from the src and updates the lexer's position info.
func (l *Lexer) readRune() (rune, error) {
	r, sz, err := l.src.ReadRune()
	if sz > 0 {
		l.prev = l.col
		if r == '\n' {
			l.line++
			l.col = 1
		} else {
			l.col++
		}
	}
	return r, err
}

// unreadRune unreads a rune from the src and updates the lexer's position
// info. Panics if unreading returns an error. r must be the last rune read.
func (l *Lexer) unreadRune(r rune) {
	if err := l.src.UnreadRune(); err != nil {
		panic(err)
	}
	if r == '\n' {
		l.line--
	}
	l.col = l.prev
}

// Next scans the next token from the input. Whitespace between tokens is
// skipped. When the input is exhausted, the result is an empty token with
// io.EOF. An invalid rune or malformed number results in a *LexError; the
// lexer may still be used afterward.
func (l *Lexer) Next() (Token, error) {
	if l.eof {
		return Token{}, io.EOF
	}
	defer l.buf.Reset()
	for {
		tok := Token{Line: l.line, Col: l.col}
		r, err := l.readRune()
		if err != nil {
			if errors.Is(err, io.EOF) {
				l.eof = true
			}
			return Token{}, err
		}
		switch {
		case r == ' ', r == '\t', r == '\r', r == '\n', r == '\v', r == '\f':
			continue
		case isDigit(r):
			l.unreadRune(r)
			if err := l.scanNum(&tok); err != nil {
				return tok, err
			}
			return tok, nil
		case r == '_', isLetter(r):
			l.unreadRune(r)
			l.scanIdent()
			tok.Kind = TokenIdent
			tok.Text = l.buf.String()
			tok.Len = len(tok.Text)
			return tok, nil
		default:
			if k := strings.IndexRune(Punctuation, r); k >= 0 {
				tok.Kind = punctkinds[k]
				tok.Text = string(r)
				tok.Len = 1
				return tok, nil
			}
			// Write the rune so that it shows up in the error message.
			l.buf.WriteRune(r)
			return tok, l.error(tok, "")
		}
	}
}

// scanNum scans a run of digits and decimal points into tok.
func (l *Lexer) scanNum(tok *Token) error {
	n := 0
	for {
		r, err := l.readRune()
		if err != nil {
			if errors.Is(err, io.EOF) {
				break
			}
			return err
		}
		if !isDigit(r) && r != '.' {
			l.unreadRune(r)
			break
		}
		l.buf.WriteRune(r)
		n++
	}
	text := l.buf.String()
	// A well-formed run that overflows is +Inf rather than an error.
	v, err := strconv.ParseFloat(text, 64)
	if err != nil && !errors.Is(err, strconv.ErrRange) {
		return l.error(*tok, "number")
	}
	tok.Kind = TokenNumber
	tok.Text = text
	tok.Num = v
	tok.Len = n
	return nil
}

// scanIdent scans a run of letters and digits. next unreads the rune that
// decides identifier scanning before calling scanIdent, so at least one rune
// is always scanned.
func (l *Lexer) scanIdent() {
	first := true
	for {
		r, err := l.readRune()
		if err != nil {
			return
		}
		switch {
		case first && r == '_', isLetter(r), isDigit(r):
			l.buf.WriteRune(r)
			first = false
		default:
			l.unreadRune(r)
			return
		}
	}
}

func (l *Lexer) error(tok Token, kind string) error {
	return &LexError{
		Text: l.buf.String(),
		Kind: kind,
		Line: tok.Line,
		Col:  tok.Col,
	}
}

func isDigit(r rune) bool {
	return '0' <= r && r <= '9'
}

func isLetter(r rune) bool {
	return 'a' <= r && r <= 'z' || 'A' <= r && r <= 'Z'
}

// LexError indicates an invalid token. It implements InputError.
type LexError struct {
	// Text is the token the lexer was scanning when the invalid rune was
	// encountered, plus the invalid rune.
	Text string
	// Kind is the type of token the lexer was scanning. This is "number" or
	// the empty string if a token kind hadn't been decided.
	Kind string
	// Line and Col are the position of the start of the invalid token.
	Line, Col int
}

func (err *LexError) Error() string {
	if err.Kind == "" {
		return errpos(err.Line, err.Col, "undefined token "+strconv.Quote(err.Text))
	}
	return errpos(err.Line, err.Col, "invalid "+err.Kind+" token "+strconv.Quote(err.Text))
}

func (err *LexError) Pos() (line, col int) {
	return err.Line, err.Col
}
