package expr

import "fmt"

// Env resolves variable values.
type Env interface {
	Lookup(name string) (int, bool)
}

// MapEnv is an Env backed by a map.
type MapEnv map[string]int

// Lookup implements Env.
func (m MapEnv) Lookup(name string) (int, bool) {
	v, ok := m[name]
	return v, ok
}

func truth(b bool) int {
	if b {
		return 1
	}
	return 0
}

// Eval computes e with C integer semantics. Comparisons and logical operators
// yield 0 or 1, && and || short-circuit. A nil expression is true.
func Eval(e *Expr, env Env) (int, error) {
	if e == nil {
		return 1, nil
	}
	switch e.Kind {
	case Num:
		return e.Value, nil
	case Var:
		if env != nil {
			if v, ok := env.Lookup(e.Name); ok {
				return v, nil
			}
		}
		return 0, fmt.Errorf("%w: %s", ErrUnboundVariable, e.Name)
	}

	if e.L == nil {
		r, err := Eval(e.R, env)
		if err != nil {
			return 0, err
		}
		switch e.Op {
		case Neg, Minus:
			return -r, nil
		case Not:
			return truth(r == 0), nil
		}
		return 0, fmt.Errorf("eval: %s is not unary", e.Op)
	}

	l, err := Eval(e.L, env)
	if err != nil {
		return 0, err
	}
	switch e.Op {
	case Or:
		if l != 0 {
			return 1, nil
		}
	case And:
		if l == 0 {
			return 0, nil
		}
	}
	r, err := Eval(e.R, env)
	if err != nil {
		return 0, err
	}
	switch e.Op {
	case Or, And:
		return truth(r != 0), nil
	case Plus:
		return l + r, nil
	case Minus:
		return l - r, nil
	case Times:
		return l * r, nil
	case Div, Mod:
		if r == 0 {
			return 0, fmt.Errorf("%w: %s", ErrDivisionByZero, e)
		}
		if e.Op == Div {
			return l / r, nil
		}
		return l % r, nil
	case Eq:
		return truth(l == r), nil
	case Neq:
		return truth(l != r), nil
	case Lt:
		return truth(l < r), nil
	case Leq:
		return truth(l <= r), nil
	case Gt:
		return truth(l > r), nil
	case Geq:
		return truth(l >= r), nil
	}
	return 0, fmt.Errorf("eval: unknown operator %d", e.Op)
}

// Holds reports whether e evaluates to a non-zero value.
func Holds(e *Expr, env Env) (bool, error) {
	v, err := Eval(e, env)
	return v != 0, err
}
