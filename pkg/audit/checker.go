package audit

import (
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/mhatzl/pacemaker/pkg/param"
	"github.com/mhatzl/pacemaker/pkg/validate"
)

// Checker validates candidates and records every decision.
type Checker struct {
	validator    *validate.Validator
	logger       Logger
	source       Source
	deviceSerial string
	now          func() time.Time
	newID        func() string
	digest       func(param.Param) ([]byte, error)
}

// CheckerOption configures a Checker.
type CheckerOption func(*Checker)

// WithSource sets the candidate origin recorded in events.
func WithSource(s Source) CheckerOption {
	return func(c *Checker) { c.source = s }
}

// WithDeviceSerial sets the implant serial recorded in events.
func WithDeviceSerial(serial string) CheckerOption {
	return func(c *Checker) { c.deviceSerial = serial }
}

// WithClock overrides the event timestamp source.
func WithClock(now func() time.Time) CheckerOption {
	return func(c *Checker) { c.now = now }
}

// NewChecker creates a Checker. A nil logger disables recording.
func NewChecker(v *validate.Validator, logger Logger, opts ...CheckerOption) *Checker {
	if logger == nil {
		logger = NoopLogger{}
	}
	c := &Checker{
		validator: v,
		logger:    logger,
		source:    SourceProgrammer,
		now:       time.Now,
		newID:     func() string { return uuid.New().String() },
		digest:    Digest,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Validate validates candidate, logs the decision and returns the
// validator's result unchanged.
func (c *Checker) Validate(candidate param.Param) (validate.Validated, error) {
	validated, err := c.validator.Validate(candidate)

	event := Event{
		Timestamp:    c.now(),
		ID:           c.newID(),
		Source:       c.source,
		DeviceSerial: c.deviceSerial,
		Calibration:  c.validator.Limits().Name,
		Outcome:      OutcomeAccepted,
		Candidate:    candidate,
	}
	if digest, derr := c.digest(candidate); derr != nil {
		event.DigestError = derr.Error()
	} else {
		event.Digest = digest
	}

	var vs validate.Violations
	if errors.As(err, &vs) {
		event.Outcome = OutcomeRejected
		for _, v := range vs {
			event.Violations = append(event.Violations, NewViolationRecord(v))
		}
	}

	c.logger.Log(event)
	return validated, err
}
