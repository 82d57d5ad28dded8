package mathovi

import (
	"math"
	"strconv"
	"strings"
)

// Expr is a node in the syntax tree of a statement. Each node owns its
// children; trees are never shared.
type Expr struct {
	Kind ExprKind

	// Op is the operator of a unary or binary node. Unary nodes only use
	// OpSub.
	Op Op
	// Fn is the called function of a call node.
	Fn Func
	// Sym is the letter of a symbol node.
	Sym rune
	// Val is the value of a numeric literal node.
	Val float64

	// Left is the left operand of a binary node or the operand of a unary
	// node. Right is the right operand of a binary node.
	Left, Right *Expr
	// Args are the arguments of a call node.
	Args []*Expr
}

// ExprKind is the variant of an Expr.
type ExprKind int8

const (
	exprNone ExprKind = iota

	ExprUnary  // Op applied to Left
	ExprBinary // Left Op Right
	ExprSym    // single letter variable
	ExprVal    // numeric literal
	ExprFunc   // Fn applied to Args
	ExprDots   // ellipsis
)

func (k ExprKind) String() string {
	switch k {
	case ExprUnary:
		return "Unary"
	case ExprBinary:
		return "Binary"
	case ExprSym:
		return "Sym"
	case ExprVal:
		return "Val"
	case ExprFunc:
		return "Func"
	case ExprDots:
		return "Dots"
	default:
		return "ExprKind(" + strconv.Itoa(int(k)) + ")"
	}
}

// Op is a unary or binary operator.
type Op int8

const (
	opNone Op = iota
	OpAdd
	OpSub
	OpMult
	OpFrac
	OpPow
	OpEquals
)

type opinfo struct {
	// tok is the token that denotes the operator.
	tok TokenKind
	// prec is the precedence level. Higher is more binding.
	prec int
	// tex is the LaTeX symbol placed between operands, if any.
	tex string
}

// Precedence levels, from least to most binding. Anything at maxprec or above
// is a primary.
const (
	equalsprec = iota
	sumprec
	productprec
	maxprec
)

var ops = [...]opinfo{
	opNone:   {tokenNone, -1, ""},
	OpAdd:    {TokenPlus, sumprec, "+"},
	OpSub:    {TokenMinus, sumprec, "-"},
	OpMult:   {TokenMultiply, productprec, ""},
	OpFrac:   {TokenDivider, productprec, ""},
	OpPow:    {TokenPower, productprec, "^"},
	OpEquals: {TokenEquals, equalsprec, "="},
}

// binop gets the binary operator for a token kind. If there is no such
// operator, the result is opNone.
func binop(k TokenKind) Op {
	for op := OpAdd; int(op) < len(ops); op++ {
		if ops[op].tok == k {
			return op
		}
	}
	return opNone
}

// Precedence returns the binding strength of a binary operator. Higher values
// bind more tightly. Unary negation binds more tightly than any binary
// operator.
func (op Op) Precedence() int {
	if op <= opNone || int(op) >= len(ops) {
		return -1
	}
	return ops[op].prec
}

func (op Op) String() string {
	if op <= opNone || int(op) >= len(ops) {
		return "Op(" + strconv.Itoa(int(op)) + ")"
	}
	return ops[op].tok.String()
}

// Unary creates a unary operator node. The only unary operator is OpSub.
func Unary(op Op, x *Expr) *Expr {
	return &Expr{Kind: ExprUnary, Op: op, Left: x}
}

// Binary creates a binary operator node.
func Binary(op Op, l, r *Expr) *Expr {
	return &Expr{Kind: ExprBinary, Op: op, Left: l, Right: r}
}

// Sym creates a symbol node.
func Sym(r rune) *Expr {
	return &Expr{Kind: ExprSym, Sym: r}
}

// Val creates a numeric literal node.
func Val(v float64) *Expr {
	return &Expr{Kind: ExprVal, Val: v}
}

// Dots creates an ellipsis node.
func Dots() *Expr {
	return &Expr{Kind: ExprDots}
}

// Call creates a call node. If the number of arguments does not match the
// function's arity, the result is nil and an *ArgumentsError with no
// position.
func Call(fn Func, args ...*Expr) (*Expr, error) {
	if !fn.CanCall(len(args)) {
		return nil, &ArgumentsError{Func: fn, Expected: fn.Arity(), Found: len(args)}
	}
	return &Expr{Kind: ExprFunc, Fn: fn, Args: args}, nil
}

// overflow is a literal too large for a float64. It lexes as +Inf.
var overflow = "1" + strings.Repeat("0", 309)

// String creates a fully parenthesized representation of the expression in
// source syntax. Parsing the result yields an equal tree.
func (e *Expr) String() string {
	var b strings.Builder
	e.fmt(&b)
	return b.String()
}

func (e *Expr) fmt(b *strings.Builder) {
	if e == nil {
		b.WriteString("<nil>")
		return
	}
	switch e.Kind {
	case ExprSym:
		b.WriteRune(e.Sym)
	case ExprVal:
		if math.IsInf(e.Val, 1) {
			b.WriteString(overflow)
			break
		}
		b.WriteString(strconv.FormatFloat(e.Val, 'f', -1, 64))
	case ExprDots:
		b.WriteString("...")
	case ExprFunc:
		b.WriteString(e.Fn.String())
		b.WriteByte('(')
		for i, arg := range e.Args {
			if i > 0 {
				b.WriteString(", ")
			}
			arg.fmt(b)
		}
		b.WriteByte(')')
	case ExprUnary:
		b.WriteByte('(')
		b.WriteString(e.Op.String())
		e.Left.fmt(b)
		b.WriteByte(')')
	case ExprBinary:
		b.WriteByte('(')
		e.Left.fmt(b)
		b.WriteByte(' ')
		b.WriteString(e.Op.String())
		b.WriteByte(' ')
		e.Right.fmt(b)
		b.WriteByte(')')
	default:
		// Invalid nodes use invalid characters.
		b.WriteByte('$')
		b.WriteString(e.Kind.String())
		b.WriteByte('$')
	}
}
