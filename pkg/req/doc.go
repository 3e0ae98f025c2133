// Package req provides requirement traceability for configuration fields.
//
// Every safety-relevant field is bound to exactly one requirement tag. A
// [Registry] makes that binding checkable: tooling and tests look up the tag
// for a field with [Registry.TagFor] and verify with [Registry.CheckComplete]
// that the set of registered fields matches the fields a data model declares.
//
// # Manifest Format
//
// Registries are usually built from a YAML manifest:
//
//	requirement: param
//	fields:
//	  - path: atrial.amplitude
//	    tag: param.pulse_amplitude.atrial
//	  - path: lrl
//	    tag: param.lrl
//	constraints:
//	  - id: vrp_within_lrl_interval
//	    tag: param.vrp.lrl_interval
//
// Fields are kept in manifest order. Constraints carry tags for rules that
// span more than one field and are not part of the field enumeration.
//
// A Registry is immutable once constructed and safe for concurrent reads.
package req
