package carbon

import "errors"

// Validation failures are detected before any computation commits and are
// always surfaced to the caller. None of them are retryable: the estimator
// performs no I/O.
var (
	// ErrInvalidActivityType is returned when the activity type has no
	// entry in the base power table. Unknown activities are rejected, not
	// silently defaulted.
	ErrInvalidActivityType = errors.New("invalid activity type")

	// ErrInvalidDuration is returned for negative durations.
	ErrInvalidDuration = errors.New("invalid duration")

	// ErrInvalidMetadata is returned when metadata carries an unknown
	// quality or device value. Malformed metadata is the caller's input
	// error, distinct from a failed computation.
	ErrInvalidMetadata = errors.New("invalid metadata")

	// ErrInvalidPeriod is returned when a score is requested over a
	// zero or negative day count.
	ErrInvalidPeriod = errors.New("invalid period")

	// ErrEstimation is returned when inputs produce a non-finite result,
	// for example a NaN duration or CPU reading. A corrupted record must
	// never be returned.
	ErrEstimation = errors.New("estimation failed")
)
