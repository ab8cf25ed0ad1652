package domain

import (
	"errors"
	"fmt"
)

// FindingKind classifies one analysed (dependency, exclusion) pair.
type FindingKind int

// Finding kinds.
const (
	// FindingSuppressed means a suppression rule exempted the pair.
	FindingSuppressed FindingKind = iota

	// FindingInvalid means the excluded coordinate is not in the dependency's closure.
	FindingInvalid

	// FindingUnnecessary means the exclusion prevents no version clash.
	FindingUnnecessary

	// FindingNecessary means the exclusion avoids a real version disagreement.
	FindingNecessary
)

// ReasonNotADependency is the reason attached to invalid findings.
const ReasonNotADependency = "exclusion is not a dependency"

// String returns the lower-case name of the kind.
func (k FindingKind) String() string {
	switch k {
	case FindingSuppressed:
		return "suppressed"
	case FindingInvalid:
		return "invalid"
	case FindingUnnecessary:
		return "unnecessary"
	case FindingNecessary:
		return "necessary"
	default:
		return fmt.Sprintf("FindingKind(%d)", int(k))
	}
}

// MarshalText encodes the kind by name for JSON and YAML output.
func (k FindingKind) MarshalText() ([]byte, error) {
	return []byte(k.String()), nil
}

// IsRedundant returns true for kinds that produce a report message.
func (k FindingKind) IsRedundant() bool {
	return k == FindingInvalid || k == FindingUnnecessary
}

// Finding is the outcome of analysing one (dependency, exclusion) pair.
type Finding struct {
	Kind       FindingKind
	Dependency Dependency
	Exclusion  Exclusion

	// Reason is set for invalid findings.
	Reason string

	// ClosureVersion is the version the dependency would pull in, when found.
	ClosureVersion string

	// ClashingVersions are the resolved versions that differ from ClosureVersion.
	ClashingVersions []string
}

// Message returns the human-readable report line, or "" when the finding is not reported.
func (f Finding) Message() string {
	switch f.Kind {
	case FindingInvalid:
		return fmt.Sprintf("Dependency %s is excluded from %s but is not one of its dependencies",
			f.Exclusion, f.Dependency)
	case FindingUnnecessary:
		return fmt.Sprintf("Dependency %s is excluded from %s but it would not clash with any other dependency",
			f.Exclusion, f.Dependency)
	default:
		return ""
	}
}

// RedundantExclusionsError is the build-failure signal of a run with findings.
type RedundantExclusionsError struct {
	Count int
}

func (e *RedundantExclusionsError) Error() string {
	return fmt.Sprintf("Redundant dependency exclusions detected (%d errors, check previous logs)", e.Count)
}

// Is makes errors.Is(err, ErrRedundantExclusions) hold.
func (e *RedundantExclusionsError) Is(target error) bool {
	return target == ErrRedundantExclusions
}

// Report aggregates findings of one run into ordered messages.
// Messages keep the order in which findings were recorded.
type Report struct {
	// RunID identifies the analysis run.
	RunID string

	findings []Finding
	messages []string
	warnings []string
}

// NewReport creates an empty report.
func NewReport(runID string) *Report {
	return &Report{RunID: runID}
}

// Record adds a finding. Suppressed and necessary findings add no message.
func (r *Report) Record(f Finding) {
	r.findings = append(r.findings, f)
	if msg := f.Message(); msg != "" {
		r.messages = append(r.messages, msg)
	}
}

// Warn records a side-channel warning. Warnings do not affect the verdict.
func (r *Report) Warn(msg string) {
	r.warnings = append(r.warnings, msg)
}

// Finalize returns the ordered messages and whether any was recorded.
func (r *Report) Finalize() ([]string, bool) {
	out := make([]string, len(r.messages))
	copy(out, r.messages)
	return out, len(out) > 0
}

// HasErrors returns true if at least one message was recorded.
func (r *Report) HasErrors() bool {
	return len(r.messages) > 0
}

// ErrorCount returns the number of recorded messages.
func (r *Report) ErrorCount() int {
	return len(r.messages)
}

// Findings returns all recorded findings, in record order.
func (r *Report) Findings() []Finding {
	out := make([]Finding, len(r.findings))
	copy(out, r.findings)
	return out
}

// Warnings returns the recorded warnings, in record order.
func (r *Report) Warnings() []string {
	out := make([]string, len(r.warnings))
	copy(out, r.warnings)
	return out
}

// Err returns a *RedundantExclusionsError when the report has errors, nil otherwise.
func (r *Report) Err() error {
	if !r.HasErrors() {
		return nil
	}
	return &RedundantExclusionsError{Count: len(r.messages)}
}

// IsRedundantExclusions reports whether err signals redundant exclusions.
func IsRedundantExclusions(err error) bool {
	return errors.Is(err, ErrRedundantExclusions)
}
