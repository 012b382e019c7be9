package dsl

import "errors"

var (
	ErrInvalidKind     = errors.New("invalid container kind")
	ErrInvalidArgument = errors.New("invalid argument")
	ErrMissingField    = errors.New("missing field designator")
)
