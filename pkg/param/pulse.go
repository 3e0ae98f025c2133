package param

import "fmt"

// PulseParam holds the stimulation pulse settings of one chamber.
type PulseParam struct {
	// Amplitude is the pulse voltage [V].
	Amplitude float64 `yaml:"amplitude" json:"amplitude" cbor:"1,keyasint"`

	// Width is the pulse duration [ms].
	Width float64 `yaml:"width" json:"width" cbor:"2,keyasint"`
}

// String returns the pulse as "<amplitude>V/<width>ms".
func (p PulseParam) String() string {
	return fmt.Sprintf("%gV/%gms", p.Amplitude, p.Width)
}
