package core

import "errors"

var (
	ErrNoInitialState = errors.New("system has no initial state")
	ErrStateLimit     = errors.New("state limit exceeded")
	ErrOracle         = errors.New("oracle failed")
)
