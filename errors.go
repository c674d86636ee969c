package pointplot

import (
	errors "gopkg.in/src-d/go-errors.v1"
)

// The closed set of failures a render can end in. Every kind reaches the
// user the same way, but callers and tests tell them apart with Kind.Is.
var (
	// ErrParse is returned when the input is not JSON or a field has the wrong type.
	ErrParse = errors.NewKind("cannot parse %s")

	// ErrMissingField is returned when a required key is absent or null.
	ErrMissingField = errors.NewKind("missing required field %s")

	// ErrFilesystem is returned when the output image cannot be created or written.
	ErrFilesystem = errors.NewKind("filesystem error at %s")

	// ErrRender is returned by the plotting backend.
	ErrRender = errors.NewKind("cannot render %s")
)
