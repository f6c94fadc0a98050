package selekt

import "errors"

var (
	ErrNilContainer  = errors.New("selekt: container is nil")
	ErrNilArbiter    = errors.New("selekt: arbiter is nil")
	ErrInvalidMarker = errors.New("selekt: invalid marker name")
)
