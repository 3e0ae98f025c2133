package validate

import (
	"fmt"
	"sync"

	"github.com/mhatzl/pacemaker/pkg/calibration"
	"github.com/mhatzl/pacemaker/pkg/param"
	"github.com/mhatzl/pacemaker/pkg/req"
)

// Validated is a parameter set that passed every rule of a Validator.
// The zero value is not valid; check IsValid when a Validated is received
// from code that may not have produced it through Validate.
type Validated struct {
	p     param.Param
	valid bool
}

// Param returns the validated parameter set.
func (v Validated) Param() param.Param {
	return v.p
}

// IsValid reports whether v was produced by a successful validation.
func (v Validated) IsValid() bool {
	return v.valid
}

// Validator applies an ordered rule list to candidates.
type Validator struct {
	limits   calibration.Limits
	registry *req.Registry
	rules    []Rule
}

// New creates a validator for the given bounds and requirement registry.
// Every field and constraint of param must be registered.
func New(limits calibration.Limits, registry *req.Registry) (*Validator, error) {
	if err := limits.Validate(); err != nil {
		return nil, err
	}
	if err := registry.CheckComplete(param.Fields()); err != nil {
		return nil, err
	}

	v := &Validator{limits: limits, registry: registry}

	for _, f := range param.Fields() {
		tag, err := registry.TagFor(f)
		if err != nil {
			return nil, err
		}
		bound, ok := limits.For(f)
		if !ok {
			return nil, fmt.Errorf("%w: no bound for %s", calibration.ErrInvalidCalibration, f)
		}
		v.rules = append(v.rules, newRangeRule(f, bound, tag))
	}

	divTag, err := registry.ConstraintTag(param.ConstraintLRLNonZero)
	if err != nil {
		return nil, err
	}
	v.rules = append(v.rules, newDivisionHazardRule(divTag))

	xfdTag, err := registry.ConstraintTag(param.ConstraintVRPWithinLRLInterval)
	if err != nil {
		return nil, err
	}
	v.rules = append(v.rules, newIntervalRule(xfdTag))

	return v, nil
}

var defaultValidator = sync.OnceValue(func() *Validator {
	v, err := New(calibration.Default(), param.Requirements())
	if err != nil {
		panic(fmt.Sprintf("default validator: %v", err))
	}
	return v
})

// Default returns the validator for the embedded calibration and the
// parameter requirement registry.
func Default() *Validator {
	return defaultValidator()
}

// Limits returns the bounds this validator checks against.
func (v *Validator) Limits() calibration.Limits {
	return v.limits
}

// Registry returns the requirement registry the rules trace to.
func (v *Validator) Registry() *req.Registry {
	return v.registry
}

// Rules returns the rules in evaluation order.
func (v *Validator) Rules() []Rule {
	out := make([]Rule, len(v.rules))
	copy(out, v.rules)
	return out
}

// Check runs every rule and returns all violations in rule order.
// It returns nil when the candidate is valid.
func (v *Validator) Check(candidate param.Param) Violations {
	var out Violations
	for _, r := range v.rules {
		out = append(out, r.Check(candidate)...)
	}
	return out
}

// Validate checks candidate and, if no rule fires, returns it as Validated.
// On failure the error is a Violations value.
func (v *Validator) Validate(candidate param.Param) (Validated, error) {
	if vs := v.Check(candidate); len(vs) > 0 {
		return Validated{}, vs
	}
	return Validated{p: candidate, valid: true}, nil
}
