package validate

import (
	"github.com/mhatzl/pacemaker/pkg/calibration"
	"github.com/mhatzl/pacemaker/pkg/param"
	"github.com/mhatzl/pacemaker/pkg/req"
	"github.com/mhatzl/pacemaker/pkg/units"
)

// Rule is a single check applied to a candidate.
type Rule interface {
	// ID returns the unique identifier for this rule (e.g. "RNG-lrl").
	ID() string
	// Name returns a human-readable name for the rule.
	Name() string
	// Tag returns the requirement the rule traces to.
	Tag() req.Tag
	// Check applies the rule and returns any violations.
	Check(p param.Param) []Violation
}

type baseRule struct {
	id   string
	name string
	tag  req.Tag
}

func (r *baseRule) ID() string   { return r.id }
func (r *baseRule) Name() string { return r.name }
func (r *baseRule) Tag() req.Tag { return r.tag }

// rangeRule checks one leaf field against its calibrated interval.
type rangeRule struct {
	baseRule
	field req.FieldPath
	bound calibration.Interval
}

func newRangeRule(field req.FieldPath, bound calibration.Interval, tag req.Tag) *rangeRule {
	return &rangeRule{
		baseRule: baseRule{id: "RNG-" + string(field), name: string(field) + " within " + bound.String(), tag: tag},
		field:    field,
		bound:    bound,
	}
}

func (r *rangeRule) Check(p param.Param) []Violation {
	v, _ := p.Value(r.field)
	if r.bound.Contains(v) {
		return nil
	}
	return []Violation{{
		RuleID: r.id,
		Kind:   KindOutOfRange,
		Field:  r.field,
		Tag:    r.tag,
		Value:  v,
		Bound:  r.bound,
	}}
}

// divisionHazardRule rejects lrl == 0.
type divisionHazardRule struct {
	baseRule
}

func newDivisionHazardRule(tag req.Tag) *divisionHazardRule {
	return &divisionHazardRule{baseRule{id: "DIV-lrl", name: "lrl is non-zero", tag: tag}}
}

func (r *divisionHazardRule) Check(p param.Param) []Violation {
	if p.LRL != 0 {
		return nil
	}
	return []Violation{{
		RuleID: r.id,
		Kind:   KindDivisionHazard,
		Field:  param.FieldLRL,
		Tag:    r.tag,
		Value:  0,
	}}
}

// intervalRule requires vrp < 60000/lrl. It is silent for lrl == 0, which
// divisionHazardRule reports.
type intervalRule struct {
	baseRule
}

func newIntervalRule(tag req.Tag) *intervalRule {
	return &intervalRule{baseRule{id: "XFD-vrp-lrl", name: "vrp shorter than lrl interval", tag: tag}}
}

func (r *intervalRule) Check(p param.Param) []Violation {
	if p.LRL == 0 || units.RefractoryFits(p.VRP, p.LRL) {
		return nil
	}
	interval, _ := units.IntervalMs(p.LRL)
	return []Violation{{
		RuleID:  r.id,
		Kind:    KindCrossFieldInconsistency,
		Field:   param.FieldVRP,
		Related: param.FieldLRL,
		Tag:     r.tag,
		Value:   float64(p.VRP),
		Limit:   interval,
	}}
}
