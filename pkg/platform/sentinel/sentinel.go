package sentinel

import "errors"

// Sentinel errors for infrastructure facts. Lookups and sinks return these
// (optionally wrapped) so services can translate them into domain errors.
//
// - ErrNotFound: the requested entry does not exist (e.g. a course name)
// - ErrInvalidState: a static resource failed its load-time invariants
// - ErrUnavailable: a sink or broker could not accept a write
//
// For validation errors (bad input, missing fields), use pkg/domain-errors directly.
var (
	ErrNotFound     = errors.New("not found")
	ErrInvalidState = errors.New("invalid state")
	ErrUnavailable  = errors.New("unavailable")
)
