package mathovi

import (
	"io"
	"regexp"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOpPrecsExist(t *testing.T) {
	for _, k := range []TokenKind{TokenPlus, TokenMinus, TokenMultiply, TokenDivider, TokenPower, TokenEquals} {
		op := binop(k)
		if assert.NotEqual(t, opNone, op, "no operator for %v", k) {
			assert.True(t, op.Precedence() >= equalsprec && op.Precedence() < maxprec, "%v has prec %d", op, op.Precedence())
		}
	}
	assert.Equal(t, opNone, binop(TokenComma))
	assert.Less(t, OpEquals.Precedence(), OpAdd.Precedence())
	assert.Equal(t, OpAdd.Precedence(), OpSub.Precedence())
	assert.Less(t, OpSub.Precedence(), OpMult.Precedence())
	assert.Equal(t, OpMult.Precedence(), OpFrac.Precedence())
	assert.Equal(t, OpMult.Precedence(), OpPow.Precedence())
}

func TestParseTrees(t *testing.T) {
	cases := []struct {
		name string
		a, b string
	}{
		{"paren", "(x)", "x"},
		{"multi", "(((x)))", "x"},
		{"add", "x+y", "(x)+(y)"},

		{"sub3", "a-b-c", "a-(b-c)"},
		{"div3", "a/b/c", "a/(b/c)"},
		{"add3", "a+b+c", "a+(b+c)"},
		{"mulpow", "a*b^c", "a*(b^c)"},
		{"powmul", "a^b*c", "a^(b*c)"},
		{"asc", "a+b*c", "a+(b*c)"},
		{"desc", "a*b+c", "(a*b)+c"},
		{"eqsum", "a=b+c", "a=(b+c)"},
		{"eq3", "a=b=c", "a=(b=c)"},

		{"neg", "-a+b", "-(a+b)"},
		{"mulneg", "a*-b+c", "a*(-(b+c))"},
		{"negneg", "--x", "-(-x)"},

		{"call", "sqrt(x+1)", "sqrt((x+1))"},
		{"callcase", "SIN(x)", "sin(x)"},
		{"callmixed", "CoS(x)", "cos(x)"},
		{"dots", "...", ". . ."},
		{"dotsum", "a + ... + z", "a + (... + z)"},

		{"statements", "1;2", "1;2;"},
		{"lines", "x\n=\ny", "x = y"},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			a, err := ParseString(c.a)
			require.NoError(t, err, "failed to parse %q", c.a)
			b, err := ParseString(c.b)
			require.NoError(t, err, "failed to parse %q", c.b)
			assert.Equal(t, b, a, "%q parses %v, %q parses %v", c.a, a, c.b, b)
		})
	}
}

func TestLeftAssociative(t *testing.T) {
	cases := []struct {
		name string
		a, b string
	}{
		{"sub3", "a-b-c", "(a-b)-c"},
		{"div3", "a/b/c", "(a/b)/c"},
		{"mixed", "a*b/c^d", "((a*b)/c)^d"},
		{"sums", "a+b*c-d", "(a+(b*c))-d"},
		{"eq3", "a=b=c", "a=(b=c)"},
		{"neg", "-a-b", "-((a-b))"},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			a, err := ParseString(c.a, LeftAssociative())
			require.NoError(t, err, "failed to parse %q", c.a)
			b, err := ParseString(c.b, LeftAssociative())
			require.NoError(t, err, "failed to parse %q", c.b)
			assert.Equal(t, b, a, "%q parses %v, %q parses %v", c.a, a, c.b, b)
		})
	}

	t.Run("override", func(t *testing.T) {
		a, err := ParseString("a-b-c", LeftAssociative(), RightAssociative())
		require.NoError(t, err)
		assert.Equal(t, "(a - (b - c))", a[0].String())
	})
	t.Run("preset", func(t *testing.T) {
		preset := ParsingPreset(LeftAssociative())
		a, err := ParseString("a-b-c", preset)
		require.NoError(t, err)
		assert.Equal(t, "((a - b) - c)", a[0].String())
	})
}

func TestParseExact(t *testing.T) {
	sqrtx, err := Call(FuncSqrt, Sym('x'))
	require.NoError(t, err)
	cases := []struct {
		name string
		src  string
		want []*Expr
	}{
		{"val", "1.5", []*Expr{Val(1.5)}},
		{"sym", "x", []*Expr{Sym('x')}},
		{"neg", "-x", []*Expr{Unary(OpSub, Sym('x'))}},
		{"mul", "2 * x", []*Expr{Binary(OpMult, Val(2), Sym('x'))}},
		{"frac", "1 / 2", []*Expr{Binary(OpFrac, Val(1), Val(2))}},
		{"call", "sqrt(x)", []*Expr{sqrtx}},
		{"dots", "...", []*Expr{Dots()}},
		{
			name: "statements",
			src:  "a = 1; b = 2;",
			want: []*Expr{
				Binary(OpEquals, Sym('a'), Val(1)),
				Binary(OpEquals, Sym('b'), Val(2)),
			},
		},
		{
			name: "sub3",
			src:  "a - b - c",
			want: []*Expr{Binary(OpSub, Sym('a'), Binary(OpSub, Sym('b'), Sym('c')))},
		},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			got, err := ParseString(c.src)
			require.NoError(t, err)
			assert.Equal(t, c.want, got)
		})
	}
}

func TestExprString(t *testing.T) {
	cases := []struct {
		name string
		src  string
		want string
	}{
		{"sym", "x", "x"},
		{"val", "2.5", "2.5"},
		{"big", "100000000000000000000000", "100000000000000000000000"},
		{"neg", "-x", "(-x)"},
		{"negsum", "-a+b", "(-(a + b))"},
		{"sub3", "a-b-c", "(a - (b - c))"},
		{"eq", "y = 2*x + 1", "(y = ((2 * x) + 1))"},
		{"call", "sqrt(x/2)", "sqrt((x / 2))"},
		{"dotsum", "1 + ... + n", "(1 + (... + n))"},
		{"mulneg", "x * -y", "(x * (-y))"},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			a, err := ParseString(c.src)
			require.NoError(t, err)
			require.Len(t, a, 1)
			s := a[0].String()
			assert.Equal(t, c.want, s)
			b, err := ParseString(s)
			require.NoError(t, err, "%q -> %q failed to parse", c.src, s)
			assert.Equal(t, a, b)
		})
	}
}

func TestParseErrors(t *testing.T) {
	tok := func(k TokenKind, text string, col int) *Token {
		return &Token{Kind: k, Text: text, Line: 1, Col: col, Len: len(text)}
	}
	cases := []struct {
		name string
		src  string
		err  error
		res  []string
	}{
		{"empty", "", &UnexpectedEOFError{Line: 1, Col: 1}, []string{`(?i)\bend\b`}},
		{"operand", "x +", &UnexpectedEOFError{Line: 1, Col: 4}, nil},
		{"open", "(x", &UnexpectedEOFError{Line: 1, Col: 3}, nil},
		{"openend", "(x;", &UnexpectedTokenError{Line: 1, Col: 3, Expected: []TokenKind{TokenParenClose}, Found: tok(TokenEnd, ";", 3)}, []string{`"\)"`, `";"`}},
		{"close", ")", &UnexpectedTokenError{Line: 1, Col: 1, Expected: primarystart, Found: tok(TokenParenClose, ")", 1)}, []string{`"\."`, `"-"`, `"number"`, `"identifier"`, `"\("`}},
		{"sep", "a = 1 b = 2", &UnexpectedTokenError{Line: 1, Col: 7, Expected: []TokenKind{TokenEnd}, Found: tok(TokenIdent, "b", 7)}, []string{`^1:7: `, `";"`, `"b"`}},
		{"emptystmt", "a;;b", &UnexpectedTokenError{Line: 1, Col: 3, Expected: primarystart, Found: tok(TokenEnd, ";", 3)}, nil},
		{"dots2", "..", &UnexpectedEOFError{Line: 1, Col: 3}, nil},
		{"dots2x", "..x", &UnexpectedTokenError{Line: 1, Col: 3, Expected: []TokenKind{TokenDot}, Found: tok(TokenIdent, "x", 3)}, nil},
		{"unknown", "tan(x)", &UnexpectedIdentError{Line: 1, Col: 1, Ident: "tan"}, []string{`"tan"`}},
		{"unknownopen", "tan(", &UnexpectedEOFError{Line: 1, Col: 5}, nil},
		{"underscore", "_", &UnexpectedIdentError{Line: 1, Col: 1, Ident: "_"}, nil},
		{"bare", "sqrt", &UnexpectedEOFError{Line: 1, Col: 5}, nil},
		{"noparen", "sqrt x", &UnexpectedTokenError{Line: 1, Col: 6, Expected: []TokenKind{TokenParenOpen}, Found: tok(TokenIdent, "x", 6)}, nil},
		{"argseof", "sqrt(x", &UnexpectedEOFError{Line: 1, Col: 7}, nil},
		{"argsend", "sqrt(x;", &UnexpectedTokenError{Line: 1, Col: 7, Expected: []TokenKind{TokenParenClose}, Found: tok(TokenEnd, ";", 7)}, nil},
		{"sqrt0", "sqrt()", &ArgumentsError{Line: 1, Col: 5, Func: FuncSqrt, Expected: 1, Found: 0}, []string{`\bsqrt\b`, `\b0\b`, `\b1\b`}},
		{"sin2", "sin(x, y)", &ArgumentsError{Line: 1, Col: 4, Func: FuncSin, Expected: 1, Found: 2}, []string{`\bsin\b`, `\b2\b`}},
		{"cos0", "cos()", &ArgumentsError{Line: 1, Col: 4, Func: FuncCos, Expected: 1, Found: 0}, nil},
		{"sqrt2", "y = 2 * sqrt(a, b)", &ArgumentsError{Line: 1, Col: 13, Func: FuncSqrt, Expected: 1, Found: 2}, nil},
		{"lexer", "2^sqrt(-$)", &LexError{Text: "$", Line: 1, Col: 9}, []string{`\$`}},
		{"number", "x = 1.2.3", &LexError{Text: "1.2.3", Kind: "number", Line: 1, Col: 5}, nil},
		{"secondline", "a = 1;\nb = )", &UnexpectedTokenError{Line: 2, Col: 5, Expected: primarystart, Found: &Token{Kind: TokenParenClose, Text: ")", Line: 2, Col: 5, Len: 1}}, []string{`^2:5: `}},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			a, err := ParseString(c.src)
			assert.Nil(t, a)
			require.Equal(t, c.err, err)
			ie, ok := err.(InputError)
			require.True(t, ok, "%T is not an InputError", err)
			line, col := ie.Pos()
			assert.NotZero(t, line)
			assert.NotZero(t, col)
			msg := err.Error()
			for _, re := range c.res {
				assert.Regexp(t, regexp.MustCompile(re), msg)
			}
		})
	}
}

func TestParseDeterministic(t *testing.T) {
	srcs := []string{
		"a = sqrt(5 ^ 23) / 3 * 21",
		"y = -x^2 + sin(x) * cos(x); z = 1, ...",
		"1 + ... + n = n * (n + 1) / 2;",
	}
	for _, src := range srcs {
		a, aerr := ParseString(src)
		b, berr := ParseString(src)
		assert.Equal(t, aerr, berr)
		assert.Equal(t, a, b)
		if aerr == nil {
			assert.Equal(t, RenderAll(a), RenderAll(b))
		}
	}
}

// tokenSlice is a TokenSource over a fixed list of tokens.
type tokenSlice []Token

func (s *tokenSlice) Next() (Token, error) {
	if len(*s) == 0 {
		return Token{}, io.EOF
	}
	tok := (*s)[0]
	*s = (*s)[1:]
	return tok, nil
}

func TestParseTokens(t *testing.T) {
	src := tokenSlice{
		{Kind: TokenIdent, Text: "x", Line: 1, Col: 1, Len: 1},
		{Kind: TokenMultiply, Text: "*", Line: 1, Col: 2, Len: 1},
		{Kind: TokenNumber, Text: "2", Num: 2, Line: 1, Col: 3, Len: 1},
	}
	got, err := ParseTokens(&src)
	require.NoError(t, err)
	assert.Equal(t, []*Expr{Binary(OpMult, Sym('x'), Val(2))}, got)

	// Without a lexer to ask, the end of input is just past the last token.
	src = tokenSlice{
		{Kind: TokenIdent, Text: "x", Line: 1, Col: 1, Len: 1},
		{Kind: TokenPlus, Text: "+", Line: 1, Col: 3, Len: 1},
	}
	_, err = ParseTokens(&src)
	assert.Equal(t, &UnexpectedEOFError{Line: 1, Col: 4}, err)
}

func TestExprStringOverflow(t *testing.T) {
	es, err := ParseString("x = 1" + strings.Repeat("0", 320))
	require.NoError(t, err)
	re, err := ParseString(es[0].String())
	require.NoError(t, err)
	assert.Equal(t, es, re)
}
