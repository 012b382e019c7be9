package ion

import "errors"

var (
	ErrParse      = errors.New("parse error")
	ErrNoValue    = errors.New("no value at reader position")
	ErrUnbalanced = errors.New("unbalanced container events")
	ErrNilInt     = errors.New("int value without a number")
)
