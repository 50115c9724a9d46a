package goqubo

import "errors"

// Errors
var (
	ErrDimensionMismatch = errors.New("vector or matrix size does not match the variable count")
	ErrInvalidParameter  = errors.New("invalid parameter")
	ErrBadGraphExpr      = errors.New("bad graph expression")
	ErrBadVtxID          = errors.New("bad graph vertex ID")
	ErrBadReadout        = errors.New("bad readout message")
	ErrBadCatalogParam   = errors.New("bad catalog param")
	ErrProblemNotFound   = errors.New("problem not found")
	ErrRunNotFound       = errors.New("run not found")
	ErrUnmarshal         = errors.New("unmarshal failed")
	ErrCatalogClosed     = errors.New("catalog is closed")
	ErrCatalogReadOnly   = errors.New("catalog is in read-only mode")
)
