package host

import "errors"

// Failure classes shared by every stage of a build. Stages wrap these with
// fmt.Errorf("...: %w") and callers branch with errors.Is.
var (
	// ErrConfiguration is a malformed or unresolvable agent, mesh or
	// parameter. Fatal before any keyframe is written.
	ErrConfiguration = errors.New("configuration error")

	// ErrCurveUnavailable is a missing or invalid guide curve, or one with a
	// zero-length span. Only the curve pass is abandoned.
	ErrCurveUnavailable = errors.New("curve unavailable")

	// ErrGeometryQuery is a mesh without vertices or a vertex or face query
	// that returned no data.
	ErrGeometryQuery = errors.New("geometry query failed")
)
