package mathovi

import (
	"strconv"
	"strings"
)

// Func is a named function recognized in call position. The set of functions
// is closed; adding one means adding a constant and a row in funcs.
type Func int8

const (
	funcNone Func = iota
	FuncSqrt
	FuncSin
	FuncCos
)

type funcinfo struct {
	// name is the lower-case source name.
	name string
	// arity is the exact number of arguments the function takes.
	arity int
	// tmpl is the LaTeX form. Each %s is replaced by a rendered argument.
	tmpl string
}

var funcs = [...]funcinfo{
	funcNone: {},
	FuncSqrt: {"sqrt", 1, `\sqrt{%s}`},
	FuncSin:  {"sin", 1, `\sin(%s)`},
	FuncCos:  {"cos", 1, `\cos(%s)`},
}

// LookupFunc finds the function with the given name, ignoring case.
func LookupFunc(name string) (Func, bool) {
	for f := FuncSqrt; int(f) < len(funcs); f++ {
		if strings.EqualFold(funcs[f].name, name) {
			return f, true
		}
	}
	return funcNone, false
}

// Arity returns the number of arguments f requires.
func (f Func) Arity() int {
	return f.info().arity
}

// CanCall returns whether the function can be called with n arguments.
func (f Func) CanCall(n int) bool {
	return f.valid() && n == f.Arity()
}

func (f Func) String() string {
	if !f.valid() {
		return "Func(" + strconv.Itoa(int(f)) + ")"
	}
	return funcs[f].name
}

func (f Func) valid() bool {
	return f > funcNone && int(f) < len(funcs)
}

func (f Func) info() funcinfo {
	if !f.valid() {
		return funcinfo{}
	}
	return funcs[f]
}
