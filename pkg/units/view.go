package units

import (
	"fmt"

	"github.com/mhatzl/pacemaker/pkg/param"
	"github.com/mhatzl/pacemaker/pkg/req"
)

// PulseView is a display view of one chamber's pulse.
type PulseView struct {
	AmplitudeMV int64 `json:"amplitude_mv"`
	WidthUS     int64 `json:"width_us"`
}

// View is a display view of a parameter set.
// IntervalMs is zero when the rate is zero. NonFinite lists the pulse fields
// whose value is NaN or infinite; their display values are meaningless.
type View struct {
	Atrial      PulseView       `json:"atrial"`
	Ventricular PulseView       `json:"ventricular"`
	LRL         uint32          `json:"lrl_ppm"`
	IntervalMs  float64         `json:"interval_ms"`
	VRP         uint32          `json:"vrp_ms"`
	NonFinite   []req.FieldPath `json:"non_finite,omitempty"`
}

// NewView converts p into display units.
func NewView(p param.Param) View {
	interval, _ := IntervalMs(p.LRL)
	v := View{
		Atrial:      pulseView(p.Atrial),
		Ventricular: pulseView(p.Ventricular),
		LRL:         p.LRL,
		IntervalMs:  interval,
		VRP:         p.VRP,
	}
	for _, f := range []req.FieldPath{
		param.FieldAtrialAmplitude, param.FieldAtrialWidth,
		param.FieldVentricularAmplitude, param.FieldVentricularWidth,
	} {
		if value, _ := p.Value(f); !Finite(value) {
			v.NonFinite = append(v.NonFinite, f)
		}
	}
	return v
}

func pulseView(p param.PulseParam) PulseView {
	return PulseView{
		AmplitudeMV: VoltsToMillivolts(p.Amplitude),
		WidthUS:     MillisecondsToMicroseconds(p.Width),
	}
}

func (v PulseView) String() string {
	return fmt.Sprintf("%d mV / %d µs", v.AmplitudeMV, v.WidthUS)
}
