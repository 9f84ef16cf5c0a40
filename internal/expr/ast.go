// Package expr implements the integer expressions used by guards, final
// conditions and assignments of program graphs.
package expr

import (
	"errors"
	"strconv"
)

var (
	ErrParse           = errors.New("parse error")
	ErrDivisionByZero  = errors.New("division by zero")
	ErrUnboundVariable = errors.New("unbound variable")
)

// Kind tags the variant held by an Expr.
type Kind uint8

const (
	Num Kind = iota
	Var
	Op
)

// Operator of an Op node. Neg and Not are unary and use only R.
type Operator uint8

const (
	Plus Operator = iota + 1
	Minus
	Times
	Div
	Mod
	Eq
	Neq
	Lt
	Leq
	Gt
	Geq
	Or
	And
	Not
	Neg
)

var symbols = map[Operator]string{
	Plus: "+", Minus: "-", Times: "*", Div: "/", Mod: "%",
	Eq: "==", Neq: "!=", Lt: "<", Leq: "<=", Gt: ">", Geq: ">=",
	Or: "||", And: "&&", Not: "!", Neg: "-",
}

func (o Operator) String() string {
	return symbols[o]
}

// Expr is a node of an expression tree.
type Expr struct {
	Kind  Kind
	Value int
	Name  string
	Op    Operator
	L, R  *Expr
	// Paren records that the source wrapped this node in parentheses.
	Paren bool
}

// Number returns a constant node.
func Number(v int) *Expr {
	return &Expr{Kind: Num, Value: v}
}

// Variable returns a variable reference.
func Variable(name string) *Expr {
	return &Expr{Kind: Var, Name: name}
}

// Binary returns l op r.
func Binary(op Operator, l, r *Expr) *Expr {
	return &Expr{Kind: Op, Op: op, L: l, R: r}
}

// Unary returns op r.
func Unary(op Operator, r *Expr) *Expr {
	return &Expr{Kind: Op, Op: op, R: r}
}

// String renders the expression without spaces, e.g. "(x+1)*2".
func (e *Expr) String() string {
	if e == nil {
		return "true"
	}
	var s string
	switch e.Kind {
	case Num:
		s = strconv.Itoa(e.Value)
	case Var:
		s = e.Name
	default:
		if e.L != nil {
			s = e.L.String()
		}
		s += e.Op.String() + e.R.String()
	}
	if e.Paren {
		return "(" + s + ")"
	}
	return s
}

// Vars returns the distinct variable names referenced by e in order of appearance.
func Vars(e *Expr) []string {
	var out []string
	seen := map[string]bool{}
	var walk func(*Expr)
	walk = func(n *Expr) {
		if n == nil {
			return
		}
		if n.Kind == Var && !seen[n.Name] {
			seen[n.Name] = true
			out = append(out, n.Name)
		}
		walk(n.L)
		walk(n.R)
	}
	walk(e)
	return out
}

// Assignment sets Var to the value of Expr.
type Assignment struct {
	Var  string
	Expr *Expr
}

func (a Assignment) String() string {
	return a.Var + "=" + a.Expr.String()
}
