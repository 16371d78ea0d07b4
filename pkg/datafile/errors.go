package datafile

import "errors"

var (
	// ErrMalformedDatafile is returned when the datafile is not valid JSON
	// or does not match the expected document shape.
	ErrMalformedDatafile = errors.New("malformed datafile")

	// ErrMalformedCondition is returned when an audience condition tree
	// cannot be decoded.
	ErrMalformedCondition = errors.New("malformed audience condition")
)
