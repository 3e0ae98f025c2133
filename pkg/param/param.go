package param

import (
	"fmt"

	"github.com/mhatzl/pacemaker/pkg/req"
)

// Chamber identifies a heart chamber with its own pulse settings.
type Chamber uint8

const (
	ChamberAtrial Chamber = iota
	ChamberVentricular
)

// String returns the chamber name as used in field paths.
func (c Chamber) String() string {
	switch c {
	case ChamberAtrial:
		return "atrial"
	case ChamberVentricular:
		return "ventricular"
	default:
		return fmt.Sprintf("chamber(%d)", c)
	}
}

// Field paths of all leaf fields, in declaration order.
const (
	FieldAtrialAmplitude      req.FieldPath = "atrial.amplitude"
	FieldAtrialWidth          req.FieldPath = "atrial.width"
	FieldVentricularAmplitude req.FieldPath = "ventricular.amplitude"
	FieldVentricularWidth     req.FieldPath = "ventricular.width"
	FieldLRL                  req.FieldPath = "lrl"
	FieldVRP                  req.FieldPath = "vrp"
)

// Constraint IDs for rules spanning more than one field.
const (
	ConstraintLRLNonZero           = "lrl_nonzero"
	ConstraintVRPWithinLRLInterval = "vrp_within_lrl_interval"
)

var fieldOrder = []req.FieldPath{
	FieldAtrialAmplitude,
	FieldAtrialWidth,
	FieldVentricularAmplitude,
	FieldVentricularWidth,
	FieldLRL,
	FieldVRP,
}

// Unit returns the stored unit of a leaf field, or "" for unknown paths.
func Unit(path req.FieldPath) string {
	switch path {
	case FieldAtrialAmplitude, FieldVentricularAmplitude:
		return "V"
	case FieldAtrialWidth, FieldVentricularWidth, FieldVRP:
		return "ms"
	case FieldLRL:
		return "ppm"
	default:
		return ""
	}
}

// Fields returns the path of every leaf field of Param in declaration order.
func Fields() []req.FieldPath {
	out := make([]req.FieldPath, len(fieldOrder))
	copy(out, fieldOrder)
	return out
}

// Param is the pacing parameter set exchanged with the rest of the device.
// Two Params are equal iff all leaf fields are equal.
type Param struct {
	// Atrial holds the atrial chamber pulse settings.
	Atrial PulseParam `yaml:"atrial" json:"atrial" cbor:"1,keyasint"`

	// Ventricular holds the ventricular chamber pulse settings.
	Ventricular PulseParam `yaml:"ventricular" json:"ventricular" cbor:"2,keyasint"`

	// LRL is the lower rate limit [ppm].
	LRL uint32 `yaml:"lrl" json:"lrl" cbor:"3,keyasint"`

	// VRP is the ventricular refractory period [ms].
	VRP uint32 `yaml:"vrp" json:"vrp" cbor:"4,keyasint"`
}

// Pulse returns the pulse settings of the given chamber.
func (p Param) Pulse(c Chamber) PulseParam {
	if c == ChamberVentricular {
		return p.Ventricular
	}
	return p.Atrial
}

// Value returns the numeric value of a leaf field.
// The integer fields convert to float64 exactly.
func (p Param) Value(path req.FieldPath) (float64, bool) {
	switch path {
	case FieldAtrialAmplitude:
		return p.Atrial.Amplitude, true
	case FieldAtrialWidth:
		return p.Atrial.Width, true
	case FieldVentricularAmplitude:
		return p.Ventricular.Amplitude, true
	case FieldVentricularWidth:
		return p.Ventricular.Width, true
	case FieldLRL:
		return float64(p.LRL), true
	case FieldVRP:
		return float64(p.VRP), true
	default:
		return 0, false
	}
}

func (p Param) String() string {
	return fmt.Sprintf("atrial=%s ventricular=%s lrl=%dppm vrp=%dms", p.Atrial, p.Ventricular, p.LRL, p.VRP)
}
