package pgraph

import (
	"errors"

	"github.com/comalice/pg2hda/internal/expr"
)

var (
	ErrInvalidSystem   = errors.New("invalid system")
	ErrUnknownVariable = errors.New("unknown variable")
	ErrUnknownLocation = errors.New("unknown location")
	ErrUnsatisfiable   = errors.New("condition has no satisfying evaluation")
	ErrNoMapping       = errors.New("no evaluation of the action matches")
	ErrDomain          = errors.New("value outside variable domain")

	ErrDivisionByZero = expr.ErrDivisionByZero
)
