package domain

import "errors"

// Domain errors represent business logic failures.
// These are distinct from infrastructure errors.
var (
	// ErrNotFound indicates a requested entity does not exist.
	ErrNotFound = errors.New("not found")

	// ErrInvalidInput indicates malformed or invalid input.
	ErrInvalidInput = errors.New("invalid input")

	// ErrNotImplemented indicates functionality is not yet available.
	ErrNotImplemented = errors.New("not implemented")

	// ErrUnsupportedType indicates an unknown storage driver or format.
	ErrUnsupportedType = errors.New("unsupported type")

	// Ingest Errors.

	// ErrMalformedDocument indicates the bytes could not be parsed as XML at all.
	// It is the only failure the extraction engine reports; every other
	// irregularity degrades to default field values.
	ErrMalformedDocument = errors.New("malformed document")

	// ErrUnsupportedFile indicates an upload that is not an XML file.
	ErrUnsupportedFile = errors.New("only XML files are accepted")
)
