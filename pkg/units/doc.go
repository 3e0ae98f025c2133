// Package units converts parameter values between their stored units and
// the units callers display or transmit.
//
// Stored units are fixed: amplitude in volts, width in milliseconds, rate in
// pulses per minute and refractory period in milliseconds. Every function
// here is a read-only view; its result is never authoritative over the
// stored value.
//
// # Rounding
//
// Conversions between integer units are exact. Conversions from a real
// value to an integer unit round half away from zero ([math.Round]);
// functions that truncate say so. NaN converts to 0 and values outside the
// int64 range saturate; [NewView] lists the fields that were not finite.
package units
