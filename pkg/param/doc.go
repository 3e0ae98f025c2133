// Package param defines the clinician-programmable pacing parameters.
//
// A [Param] aggregates the atrial and ventricular pulse settings with the
// lower rate limit (LRL) and the ventricular refractory period (VRP). Values
// of this package are shape-valid by construction only: any combination of
// numbers can be held, so that drafts can exist while a clinician edits them.
// Safety validity is established by package validate, which consumes a Param
// candidate and produces a sealed validated value.
//
// # Units
//
//   - Pulse amplitude: volts (real)
//   - Pulse width: milliseconds (real)
//   - LRL: pulses per minute (integer)
//   - VRP: milliseconds (integer)
//
// # Traceability
//
// Every leaf field has a [req.FieldPath] (see [Fields]) and is bound to a
// requirement tag in the registry returned by [Requirements].
package param
