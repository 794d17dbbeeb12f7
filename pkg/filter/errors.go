package filter

import "errors"

// Sentinel errors for the filter subsystem. All are raised synchronously
// at the point of misuse and carry detail via fmt.Errorf wrapping; match
// them with errors.Is.
var (
	// ErrFilterConfig reports structurally invalid construction
	// arguments (bad bounding box, inverted time interval, ambiguous
	// rename map). Construction never partially applies: when it is
	// returned, no filter was created.
	ErrFilterConfig = errors.New("invalid filter configuration")

	// ErrDuplicateFilter is returned by Registry.Register when the name
	// is already taken. The existing registration is left untouched.
	ErrDuplicateFilter = errors.New("filter name already registered")

	// ErrUnknownFilter is returned by Registry lookups for absent names.
	ErrUnknownFilter = errors.New("unknown filter")

	// ErrNoEnvelope is returned by TimeBoundsFilter.Envelope when the
	// filter has no include intervals, or the computed envelope is
	// internally inconsistent.
	ErrNoEnvelope = errors.New("time bounds filter has no envelope")
)
