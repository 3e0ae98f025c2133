// Package validate checks candidate parameter sets against their
// calibrated safety bounds and cross-field consistency rules.
//
// A [Validator] runs an ordered list of rules and collects every violation
// instead of stopping at the first one:
//
//  1. One range rule per leaf field, in declaration order
//     (atrial → ventricular → lrl → vrp). Bounds are inclusive.
//  2. The division hazard rule: lrl == 0 makes the pacing interval
//     undefined and suppresses the cross-field rule.
//  3. The interval rule: vrp must be strictly less than 60000/lrl. It uses
//     the candidate lrl even when lrl is itself out of range.
//
// No value is clamped or corrected. When no rule fires, [Validator.Validate]
// returns a [Validated] wrapping the unchanged candidate; a Validated can
// not be produced any other way.
//
// # Example
//
//	v := validate.Default()
//	ok, err := v.Validate(candidate)
//	var vs validate.Violations
//	if errors.As(err, &vs) {
//	    for _, violation := range vs {
//	        fmt.Println(violation)
//	    }
//	    return
//	}
//	loop.Apply(ok)
//
// Validators hold only immutable configuration and are safe for concurrent
// use.
package validate
