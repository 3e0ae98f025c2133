// Package paramfile reads and writes candidate parameter files.
//
// A parameter file is YAML (JSON is accepted as well) and must specify every
// leaf field; unknown keys are rejected. An optional device section carries
// the implant information:
//
//	atrial:
//	  amplitude: 3.5
//	  width: 0.4
//	ventricular:
//	  amplitude: 3.5
//	  width: 0.4
//	lrl: 60
//	vrp: 320
//	device:
//	  serial_number: "123456"
//
// Decoding only checks presence and types. Safety checks belong to package
// validate.
package paramfile

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/mhatzl/pacemaker/pkg/device"
	"github.com/mhatzl/pacemaker/pkg/param"
	"github.com/mhatzl/pacemaker/pkg/req"
	"gopkg.in/yaml.v3"
)

// ErrMissingField is returned when a parameter file omits a leaf field.
var ErrMissingField = errors.New("missing parameter field")

// File is a decoded parameter file.
type File struct {
	Param  param.Param
	Device *device.Info
}

type pulseDoc struct {
	Amplitude *float64 `yaml:"amplitude"`
	Width     *float64 `yaml:"width"`
}

type document struct {
	Atrial      *pulseDoc    `yaml:"atrial"`
	Ventricular *pulseDoc    `yaml:"ventricular"`
	LRL         *uint32      `yaml:"lrl"`
	VRP         *uint32      `yaml:"vrp"`
	Device      *device.Info `yaml:"device,omitempty"`
}

// Decode reads one parameter file from r.
func Decode(r io.Reader) (File, error) {
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)

	var doc document
	if err := dec.Decode(&doc); err != nil {
		if errors.Is(err, io.EOF) {
			return File{}, fmt.Errorf("%w: empty document", ErrMissingField)
		}
		return File{}, fmt.Errorf("decoding parameter file: %w", err)
	}

	var missing []string
	need := func(ok bool, path req.FieldPath) {
		if !ok {
			missing = append(missing, string(path))
		}
	}

	var f File
	if doc.Atrial == nil {
		doc.Atrial = &pulseDoc{}
	}
	if doc.Ventricular == nil {
		doc.Ventricular = &pulseDoc{}
	}
	need(doc.Atrial.Amplitude != nil, param.FieldAtrialAmplitude)
	need(doc.Atrial.Width != nil, param.FieldAtrialWidth)
	need(doc.Ventricular.Amplitude != nil, param.FieldVentricularAmplitude)
	need(doc.Ventricular.Width != nil, param.FieldVentricularWidth)
	need(doc.LRL != nil, param.FieldLRL)
	need(doc.VRP != nil, param.FieldVRP)
	if len(missing) > 0 {
		return File{}, fmt.Errorf("%w: %s", ErrMissingField, strings.Join(missing, ", "))
	}

	f.Param = param.Param{
		Atrial:      param.PulseParam{Amplitude: *doc.Atrial.Amplitude, Width: *doc.Atrial.Width},
		Ventricular: param.PulseParam{Amplitude: *doc.Ventricular.Amplitude, Width: *doc.Ventricular.Width},
		LRL:         *doc.LRL,
		VRP:         *doc.VRP,
	}
	f.Device = doc.Device
	return f, nil
}

// Load reads a parameter file from disk.
func Load(path string) (File, error) {
	fh, err := os.Open(path)
	if err != nil {
		return File{}, err
	}
	defer fh.Close()

	f, err := Decode(fh)
	if err != nil {
		return File{}, fmt.Errorf("%s: %w", path, err)
	}
	return f, nil
}

// Encode writes f as YAML.
func Encode(w io.Writer, f File) error {
	p := f.Param
	doc := document{
		Atrial:      &pulseDoc{Amplitude: &p.Atrial.Amplitude, Width: &p.Atrial.Width},
		Ventricular: &pulseDoc{Amplitude: &p.Ventricular.Amplitude, Width: &p.Ventricular.Width},
		LRL:         &p.LRL,
		VRP:         &p.VRP,
		Device:      f.Device,
	}

	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(doc); err != nil {
		return fmt.Errorf("encoding parameter file: %w", err)
	}
	return enc.Close()
}
