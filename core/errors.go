package core

import "errors"

// Sentinel errors for the core data model and the stages built on it.
var (
	// ErrBadConfig indicates an invalid phi, malformed context, or a
	// dimension disagreement at construction time.
	ErrBadConfig = errors.New("core: invalid engine configuration")
	// ErrOutOfOrder indicates Ingest was called with a timestamp smaller
	// than one already observed.
	ErrOutOfOrder = errors.New("core: sample timestamp precedes last observed timestamp")
	// ErrDimensionMismatch indicates a sample's length does not match the
	// context's declared dimensionality.
	ErrDimensionMismatch = errors.New("core: sample dimensionality does not match context")
	// ErrEmptyPopulation indicates the density stage was run with zero
	// live microclusters. Not fatal: callers should treat it as "nothing
	// to classify" rather than abort.
	ErrEmptyPopulation = errors.New("core: no live microclusters to classify")
)
