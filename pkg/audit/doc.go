// Package audit records every parameter validation decision.
//
// The audit trail is separate from operational logging (slog): it captures
// one machine-readable [Event] per decision, carrying the candidate, a
// digest of its canonical encoding, the outcome and every violation with
// its requirement tag.
//
// # Basic Usage
//
// A [Checker] wraps a validator and reports to a [Logger]:
//
//	// For development: log to console via slog
//	logger := audit.NewSlogAdapter(slog.Default())
//
//	// For devices and programmers: append to a binary file
//	logger, _ := audit.NewFileLogger("/var/log/pacemaker/params.plog")
//
//	// Both: use MultiLogger
//	logger := audit.NewMultiLogger(slogAdapter, fileLogger)
//
//	checker := audit.NewChecker(validate.Default(), logger,
//	    audit.WithSource(audit.SourceProgrammer))
//	ok, err := checker.Validate(candidate)
//
// # File Format
//
// Log files are a sequence of CBOR-encoded events with integer keys
// (.plog). [Reader] streams them back with an optional [Filter].
package audit
