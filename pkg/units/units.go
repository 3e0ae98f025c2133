package units

import (
	"errors"
	"math"
)

// MsPerMinute is the number of milliseconds in one minute.
const MsPerMinute = 60_000

// ErrZeroRate is returned when a pacing interval is requested for 0 ppm.
var ErrZeroRate = errors.New("rate of 0 ppm has no interval")

// VoltsToMillivolts converts volts to millivolts, rounding half away from zero.
// See Milli for non-finite and out-of-range input.
func VoltsToMillivolts(v float64) int64 {
	return Milli(v)
}

// MillivoltsToVolts converts millivolts to volts.
func MillivoltsToVolts(mv int64) float64 {
	return float64(mv) / 1000
}

// MillisecondsToMicroseconds converts milliseconds to microseconds,
// rounding half away from zero. See Milli for non-finite and out-of-range input.
func MillisecondsToMicroseconds(ms float64) int64 {
	return Milli(ms)
}

// Milli returns v*1000 rounded half away from zero. NaN maps to 0; values
// beyond the int64 range, infinities included, saturate at MinInt64 or MaxInt64.
func Milli(v float64) int64 {
	r := math.Round(v * 1000)
	switch {
	case math.IsNaN(r):
		return 0
	case r >= math.MaxInt64:
		return math.MaxInt64
	case r <= math.MinInt64:
		return math.MinInt64
	}
	return int64(r)
}

// Finite reports whether v is neither NaN nor infinite.
func Finite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}

// MicrosecondsToMilliseconds converts microseconds to milliseconds.
func MicrosecondsToMilliseconds(us int64) float64 {
	return float64(us) / 1000
}

// IntervalMs returns the pacing interval 60000/ppm in milliseconds.
func IntervalMs(ppm uint32) (float64, error) {
	if ppm == 0 {
		return 0, ErrZeroRate
	}
	return MsPerMinute / float64(ppm), nil
}

// IntervalMicroseconds returns the pacing interval in whole microseconds,
// truncated toward zero.
func IntervalMicroseconds(ppm uint32) (uint64, error) {
	if ppm == 0 {
		return 0, ErrZeroRate
	}
	return MsPerMinute * 1000 / uint64(ppm), nil
}

// RateForInterval returns the rate in ppm whose interval is closest to ms,
// rounding half away from zero.
func RateForInterval(ms uint32) (uint32, error) {
	if ms == 0 {
		return 0, ErrZeroRate
	}
	return uint32((2*MsPerMinute + uint64(ms)) / (2 * uint64(ms))), nil
}

// RefractoryFits reports whether vrpMs is strictly shorter than the pacing
// interval at ppm. It compares vrp*ppm < 60000 in integer arithmetic, so
// the result is exact for every input. A rate of 0 never fits.
func RefractoryFits(vrpMs, ppm uint32) bool {
	if ppm == 0 {
		return false
	}
	return uint64(vrpMs)*uint64(ppm) < MsPerMinute
}
