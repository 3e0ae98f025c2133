package validate

import (
	"fmt"
	"strings"

	"github.com/mhatzl/pacemaker/pkg/calibration"
	"github.com/mhatzl/pacemaker/pkg/param"
	"github.com/mhatzl/pacemaker/pkg/req"
)

// Kind classifies a violation.
type Kind uint8

const (
	// KindOutOfRange indicates a field outside its calibrated interval.
	KindOutOfRange Kind = iota + 1
	// KindCrossFieldInconsistency indicates vrp is not shorter than the pacing interval.
	KindCrossFieldInconsistency
	// KindDivisionHazard indicates lrl is zero and the pacing interval is undefined.
	KindDivisionHazard
)

func (k Kind) String() string {
	switch k {
	case KindOutOfRange:
		return "out_of_range"
	case KindCrossFieldInconsistency:
		return "cross_field_inconsistency"
	case KindDivisionHazard:
		return "division_hazard"
	default:
		return fmt.Sprintf("unknown(%d)", k)
	}
}

// Violation describes one failed check.
type Violation struct {
	// RuleID is the ID of the rule that produced the violation.
	RuleID string

	// Kind classifies the violation.
	Kind Kind

	// Field is the offending field.
	Field req.FieldPath

	// Related is the other field of a cross-field violation, empty otherwise.
	Related req.FieldPath

	// Tag is the requirement the violated check traces to.
	Tag req.Tag

	// Value is the offending value in stored units.
	Value float64

	// Bound is the interval that was violated (KindOutOfRange only).
	Bound calibration.Interval

	// Limit is the pacing interval in ms (KindCrossFieldInconsistency only).
	Limit float64
}

// Fields returns the offending field followed by the related field, if any.
func (v Violation) Fields() []req.FieldPath {
	if v.Related == "" {
		return []req.FieldPath{v.Field}
	}
	return []req.FieldPath{v.Field, v.Related}
}

// Message returns a clinician-readable description.
func (v Violation) Message() string {
	unit := param.Unit(v.Field)
	switch v.Kind {
	case KindOutOfRange:
		return fmt.Sprintf("%s %g %s outside %s %s", v.Field, v.Value, unit, v.Bound, unit)
	case KindDivisionHazard:
		return fmt.Sprintf("%s is 0 ppm, pacing interval undefined", v.Field)
	case KindCrossFieldInconsistency:
		return fmt.Sprintf("%s %g ms not shorter than %s interval %g ms", v.Field, v.Value, v.Related, v.Limit)
	default:
		return fmt.Sprintf("%s: %s", v.Field, v.Kind)
	}
}

// String returns "[tag] kind: message".
func (v Violation) String() string {
	return fmt.Sprintf("[%s] %s: %s", v.Tag, v.Kind, v.Message())
}

// Violations is the ordered result of a failed validation.
type Violations []Violation

func (vs Violations) Error() string {
	msgs := make([]string, len(vs))
	for i, v := range vs {
		msgs[i] = v.String()
	}
	if len(vs) == 1 {
		return "parameter violation: " + msgs[0]
	}
	return fmt.Sprintf("%d parameter violations: %s", len(vs), strings.Join(msgs, "; "))
}

// HasKind reports whether any violation has the given kind.
func (vs Violations) HasKind(k Kind) bool {
	for _, v := range vs {
		if v.Kind == k {
			return true
		}
	}
	return false
}

// ForField returns the violations whose Field or Related is path.
func (vs Violations) ForField(path req.FieldPath) Violations {
	var out Violations
	for _, v := range vs {
		if v.Field == path || v.Related == path {
			out = append(out, v)
		}
	}
	return out
}
