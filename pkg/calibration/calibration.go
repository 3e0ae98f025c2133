// Package calibration holds the device-safe bound set used for parameter
// validation.
//
// The embedded default set carries illustrative physiological limits. A
// certified device loads its own limits with [Load].
package calibration

import (
	_ "embed"
	"errors"
	"bytes"
	"fmt"
	"io"
	"math"
	"os"
	"strings"
	"sync"

	"github.com/mhatzl/pacemaker/pkg/param"
	"github.com/mhatzl/pacemaker/pkg/req"
	"gopkg.in/yaml.v3"
)

//go:embed default.yaml
var defaultManifest []byte

// ErrInvalidCalibration is returned for bound sets that cannot be used.
var ErrInvalidCalibration = errors.New("invalid calibration")

// Interval is an inclusive numeric range.
type Interval struct {
	Min float64 `yaml:"min" json:"min"`
	Max float64 `yaml:"max" json:"max"`
}

// Contains reports whether v lies in [Min, Max]. NaN is never contained.
func (i Interval) Contains(v float64) bool {
	return v >= i.Min && v <= i.Max
}

func (i Interval) String() string {
	return fmt.Sprintf("[%g, %g]", i.Min, i.Max)
}

func (i Interval) check(name string) error {
	if math.IsNaN(i.Min) || math.IsNaN(i.Max) || math.IsInf(i.Min, 0) || math.IsInf(i.Max, 0) {
		return fmt.Errorf("%w: %s bound is not finite", ErrInvalidCalibration, name)
	}
	if i.Min <= 0 {
		return fmt.Errorf("%w: %s minimum %g must be positive", ErrInvalidCalibration, name, i.Min)
	}
	if i.Min > i.Max {
		return fmt.Errorf("%w: %s minimum %g exceeds maximum %g", ErrInvalidCalibration, name, i.Min, i.Max)
	}
	return nil
}

// Pulse holds the bounds for one chamber's pulse.
type Pulse struct {
	Amplitude Interval `yaml:"amplitude" json:"amplitude"` // [V]
	Width     Interval `yaml:"width" json:"width"`         // [ms]
}

// Limits is a complete bound set for param.Param.
type Limits struct {
	Name        string   `yaml:"name" json:"name"`
	Atrial      Pulse    `yaml:"atrial" json:"atrial"`
	Ventricular Pulse    `yaml:"ventricular" json:"ventricular"`
	LRL         Interval `yaml:"lrl" json:"lrl"` // [ppm]
	VRP         Interval `yaml:"vrp" json:"vrp"` // [ms]
}

// For returns the bound interval of a leaf field.
func (l Limits) For(path req.FieldPath) (Interval, bool) {
	switch path {
	case param.FieldAtrialAmplitude:
		return l.Atrial.Amplitude, true
	case param.FieldAtrialWidth:
		return l.Atrial.Width, true
	case param.FieldVentricularAmplitude:
		return l.Ventricular.Amplitude, true
	case param.FieldVentricularWidth:
		return l.Ventricular.Width, true
	case param.FieldLRL:
		return l.LRL, true
	case param.FieldVRP:
		return l.VRP, true
	default:
		return Interval{}, false
	}
}

// Validate checks that every bound is finite, positive and ordered,
// and that integer fields have integral bounds.
func (l Limits) Validate() error {
	for _, f := range param.Fields() {
		iv, _ := l.For(f)
		if err := iv.check(string(f)); err != nil {
			return err
		}
	}
	for _, f := range []req.FieldPath{param.FieldLRL, param.FieldVRP} {
		iv, _ := l.For(f)
		if iv.Min != math.Trunc(iv.Min) || iv.Max != math.Trunc(iv.Max) {
			return fmt.Errorf("%w: %s bounds must be integers", ErrInvalidCalibration, f)
		}
		if iv.Max > math.MaxUint32 {
			return fmt.Errorf("%w: %s maximum exceeds uint32", ErrInvalidCalibration, f)
		}
	}
	return nil
}

// limitsDoc is the on-disk form of Limits. Pointers tell an omitted bound
// apart from an explicit zero.
type limitsDoc struct {
	Name        string       `yaml:"name"`
	Atrial      *pulseDoc    `yaml:"atrial"`
	Ventricular *pulseDoc    `yaml:"ventricular"`
	LRL         *intervalDoc `yaml:"lrl"`
	VRP         *intervalDoc `yaml:"vrp"`
}

type pulseDoc struct {
	Amplitude *intervalDoc `yaml:"amplitude"`
	Width     *intervalDoc `yaml:"width"`
}

type intervalDoc struct {
	Min *float64 `yaml:"min"`
	Max *float64 `yaml:"max"`
}

// Parse decodes and validates a YAML bound set. Unknown keys are rejected
// and every min and max must be given.
func Parse(data []byte) (Limits, error) {
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)

	var doc limitsDoc
	if err := dec.Decode(&doc); err != nil {
		if errors.Is(err, io.EOF) {
			return Limits{}, fmt.Errorf("%w: empty document", ErrInvalidCalibration)
		}
		return Limits{}, fmt.Errorf("parsing calibration: %w", err)
	}

	var missing []string
	interval := func(name string, d *intervalDoc) Interval {
		if d == nil {
			d = &intervalDoc{}
		}
		var iv Interval
		if d.Min == nil {
			missing = append(missing, name+".min")
		} else {
			iv.Min = *d.Min
		}
		if d.Max == nil {
			missing = append(missing, name+".max")
		} else {
			iv.Max = *d.Max
		}
		return iv
	}
	pulse := func(chamber string, d *pulseDoc) Pulse {
		if d == nil {
			d = &pulseDoc{}
		}
		return Pulse{
			Amplitude: interval(chamber+".amplitude", d.Amplitude),
			Width:     interval(chamber+".width", d.Width),
		}
	}

	l := Limits{
		Name:        doc.Name,
		Atrial:      pulse("atrial", doc.Atrial),
		Ventricular: pulse("ventricular", doc.Ventricular),
		LRL:         interval(string(param.FieldLRL), doc.LRL),
		VRP:         interval(string(param.FieldVRP), doc.VRP),
	}
	if l.Name == "" {
		missing = append([]string{"name"}, missing...)
	}
	if len(missing) > 0 {
		return Limits{}, fmt.Errorf("%w: missing %s", ErrInvalidCalibration, strings.Join(missing, ", "))
	}

	if err := l.Validate(); err != nil {
		return Limits{}, err
	}
	return l, nil
}

// Load reads a YAML bound set from a file.
func Load(path string) (Limits, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Limits{}, fmt.Errorf("reading calibration: %w", err)
	}
	l, err := Parse(data)
	if err != nil {
		return Limits{}, fmt.Errorf("%s: %w", path, err)
	}
	return l, nil
}

var defaults = sync.OnceValue(func() Limits {
	l, err := Parse(defaultManifest)
	if err != nil {
		panic(fmt.Sprintf("embedded calibration: %v", err))
	}
	return l
})

// Default returns the embedded bound set.
func Default() Limits {
	return defaults()
}
