package psm

import "errors"

// Errors
var (
	ErrInvalidStructure = errors.New("structure is not valid")
	ErrEmptyStructure   = errors.New("structure has no particles")
	ErrBadDepth         = errors.New("neighbor depth must be at least 1")
	ErrBadAnchors       = errors.New("anchor count must be 1 or match the number of parts")
	ErrBadBondLength    = errors.New("bond length must be positive")
	ErrMultipleParts    = errors.New("structure has multiple parts")
	ErrNoStartEnd       = errors.New("part has no START and END particle")
	ErrBadAnchorExpr    = errors.New("bad anchor expression")
)
