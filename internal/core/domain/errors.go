package domain

import "errors"

// Domain errors represent analysis failures.
// These are distinct from infrastructure errors.
var (
	// ErrInvalidCoordinate indicates structurally broken identity data.
	// It is fatal to the whole analysis run.
	ErrInvalidCoordinate = errors.New("invalid coordinate")

	// ErrInvalidSuppression indicates a suppression rule with a missing field.
	ErrInvalidSuppression = errors.New("invalid suppression rule")

	// ErrClosureResolution indicates the transitive closure of a dependency
	// could not be resolved. The analyzer recovers from it locally.
	ErrClosureResolution = errors.New("closure resolution failed")

	// ErrRedundantExclusions indicates the run completed and found redundant
	// exclusions. It is surfaced as a build failure, not a crash.
	ErrRedundantExclusions = errors.New("redundant dependency exclusions detected")

	// ErrNotFound indicates a requested entity does not exist.
	ErrNotFound = errors.New("not found")
)
