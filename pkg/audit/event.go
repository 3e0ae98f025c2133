package audit

import (
	"errors"
	"fmt"
	"time"

	"github.com/mhatzl/pacemaker/pkg/param"
	"github.com/mhatzl/pacemaker/pkg/validate"
)

// Event is one validation decision.
// CBOR encoding uses integer keys for compactness.
type Event struct {
	// Timestamp when the decision was made (nanosecond precision).
	Timestamp time.Time `cbor:"1,keyasint"`

	// ID uniquely identifies the event (UUID).
	ID string `cbor:"2,keyasint"`

	// Source is where the candidate came from.
	Source Source `cbor:"3,keyasint"`

	// DeviceSerial identifies the implant, if known.
	DeviceSerial string `cbor:"4,keyasint,omitempty"`

	// Calibration is the name of the bound set that was applied.
	Calibration string `cbor:"5,keyasint,omitempty"`

	// Digest is the BLAKE2b-256 digest of the candidate (see Digest).
	Digest []byte `cbor:"6,keyasint,omitempty"`

	// Outcome is the decision.
	Outcome Outcome `cbor:"7,keyasint"`

	// Candidate is the checked parameter set, unchanged.
	Candidate param.Param `cbor:"8,keyasint"`

	// Violations lists every failed check in report order.
	Violations []ViolationRecord `cbor:"9,keyasint,omitempty"`

	// DigestError is set when Digest could not be computed.
	DigestError string `cbor:"10,keyasint,omitempty"`
}

// Source identifies the origin of a candidate.
type Source string

const (
	SourceProgrammer Source = "programmer"
	SourceTelemetry  Source = "telemetry"
	SourceFile       Source = "file"
)

// ErrUnknownSource is returned by ParseSource for unrecognised origins.
var ErrUnknownSource = errors.New("unknown candidate source")

// ParseSource returns the Source named s.
func ParseSource(s string) (Source, error) {
	switch src := Source(s); src {
	case SourceProgrammer, SourceTelemetry, SourceFile:
		return src, nil
	default:
		return "", fmt.Errorf("%w %q (want %s, %s or %s)", ErrUnknownSource, s, SourceProgrammer, SourceTelemetry, SourceFile)
	}
}

// Outcome is the result of a validation decision.
type Outcome uint8

const (
	// OutcomeAccepted means the candidate passed every rule.
	OutcomeAccepted Outcome = 0
	// OutcomeRejected means at least one rule fired.
	OutcomeRejected Outcome = 1
)

// String returns the outcome name.
func (o Outcome) String() string {
	switch o {
	case OutcomeAccepted:
		return "ACCEPTED"
	case OutcomeRejected:
		return "REJECTED"
	default:
		return "UNKNOWN"
	}
}

// ViolationRecord is the logged form of a validate.Violation.
type ViolationRecord struct {
	RuleID  string  `cbor:"1,keyasint"`
	Kind    string  `cbor:"2,keyasint"`
	Field   string  `cbor:"3,keyasint"`
	Related string  `cbor:"4,keyasint,omitempty"`
	Tag     string  `cbor:"5,keyasint"`
	Value   float64 `cbor:"6,keyasint"`
	Min     float64 `cbor:"7,keyasint,omitempty"`
	Max     float64 `cbor:"8,keyasint,omitempty"`
	Limit   float64 `cbor:"9,keyasint,omitempty"`
}

// NewViolationRecord converts a violation to its logged form.
func NewViolationRecord(v validate.Violation) ViolationRecord {
	return ViolationRecord{
		RuleID:  v.RuleID,
		Kind:    v.Kind.String(),
		Field:   string(v.Field),
		Related: string(v.Related),
		Tag:     string(v.Tag),
		Value:   v.Value,
		Min:     v.Bound.Min,
		Max:     v.Bound.Max,
		Limit:   v.Limit,
	}
}

// HasTag reports whether any violation of the event traces to tag.
func (e Event) HasTag(tag string) bool {
	for _, v := range e.Violations {
		if v.Tag == tag {
			return true
		}
	}
	return false
}
