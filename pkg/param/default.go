package param

// Default returns the factory parameter set: 60 ppm, 3.5 V / 0.4 ms in both
// chambers and a 320 ms refractory period.
func Default() Param {
	return Param{
		Atrial: PulseParam{
			Amplitude: 3.5,
			Width:     0.4,
		},
		Ventricular: PulseParam{
			Amplitude: 3.5,
			Width:     0.4,
		},
		LRL: 60,
		VRP: 320,
	}
}
