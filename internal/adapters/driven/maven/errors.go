package maven

import (
	"errors"
	"fmt"
	"net/http"
	"time"
)

// Maven-specific errors.
var (
	// ErrArtifactNotFound indicates no configured repository has the POM.
	ErrArtifactNotFound = errors.New("maven: artifact not found in any repository")

	// ErrInvalidPOM indicates a POM could not be parsed.
	ErrInvalidPOM = errors.New("maven: invalid pom")

	// ErrMissingVersion indicates a dependency version could not be determined.
	ErrMissingVersion = errors.New("maven: missing dependency version")

	// ErrUnsupportedVersion indicates a version range that cannot be pinned.
	ErrUnsupportedVersion = errors.New("maven: unsupported version range")

	// ErrModelTooDeep indicates a parent or import chain that does not terminate.
	ErrModelTooDeep = errors.New("maven: parent chain too deep")
)

// StatusError represents an unexpected repository response.
type StatusError struct {
	StatusCode int
	URL        string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("maven: unexpected status %d (URL: %s)", e.StatusCode, e.URL)
}

// RateLimitError represents a throttled repository response.
type RateLimitError struct {
	RetryAt time.Time
	URL     string
}

func (e *RateLimitError) Error() string {
	return fmt.Sprintf("maven: rate limited, retry at %s (URL: %s)", e.RetryAt.Format(time.RFC3339), e.URL)
}

// IsNotFound checks if the error indicates a missing artifact.
func IsNotFound(err error) bool {
	var statusErr *StatusError
	if errors.As(err, &statusErr) {
		return statusErr.StatusCode == http.StatusNotFound || statusErr.StatusCode == http.StatusGone
	}
	return errors.Is(err, ErrArtifactNotFound)
}

// IsRateLimited checks if the error indicates rate limiting.
func IsRateLimited(err error) bool {
	var rateLimitErr *RateLimitError
	return errors.As(err, &rateLimitErr)
}

// IsUnauthorized checks if the error indicates an authentication failure.
func IsUnauthorized(err error) bool {
	var statusErr *StatusError
	if errors.As(err, &statusErr) {
		return statusErr.StatusCode == http.StatusUnauthorized || statusErr.StatusCode == http.StatusForbidden
	}
	return false
}
