package commands

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"

	"github.com/mhatzl/pacemaker/pkg/audit"
	"github.com/mhatzl/pacemaker/pkg/paramfile"
	"github.com/mhatzl/pacemaker/pkg/validate"
	"github.com/spf13/cobra"
)

type validateOptions struct {
	json     bool
	auditLog string
	source   string

	parsedSource audit.Source
}

// ValidationOutput is the result for one parameter file.
type ValidationOutput struct {
	File       string            `json:"file"`
	Valid      bool              `json:"valid"`
	Error      string            `json:"error,omitempty"`
	Violations []ViolationOutput `json:"violations,omitempty"`
}

// ViolationOutput is one reported violation.
type ViolationOutput struct {
	Rule    string   `json:"rule"`
	Kind    string   `json:"kind"`
	Tag     string   `json:"tag"`
	Fields  []string `json:"fields"`
	Value   float64  `json:"value"`
	Message string   `json:"message"`
}

func newValidateCmd(opts *options) *cobra.Command {
	vopts := &validateOptions{}

	cmd := &cobra.Command{
		Use:   "validate <files...>",
		Short: "Validate parameter files against the calibrated limits.",
		Long: "Validate checks every leaf field against its bounds and the refractory " +
			"period against the pacing interval. All violations are reported. " +
			"Exit code is 2 if any file is invalid.",
		Args: cobra.MinimumNArgs(1),
		PreRunE: func(cmd *cobra.Command, args []string) error {
			src, err := audit.ParseSource(vopts.source)
			if err != nil {
				return fmt.Errorf("invalid --source: %w", err)
			}
			vopts.parsedSource = src
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return runValidate(cmd.OutOrStdout(), opts, vopts, args)
		},
	}

	cmd.Flags().BoolVar(&vopts.json, "json", false, "output results as JSON")
	cmd.Flags().StringVar(&vopts.auditLog, "audit-log", "", "append decisions to this CBOR audit log")
	cmd.Flags().StringVar(&vopts.source, "source", string(audit.SourceFile), "candidate source recorded in the audit log")
	return cmd
}

func runValidate(w io.Writer, opts *options, vopts *validateOptions, files []string) error {
	v, err := opts.validator()
	if err != nil {
		return err
	}

	var loggers []audit.Logger
	if opts.verbose {
		loggers = append(loggers, audit.NewSlogAdapter(opts.logger))
	}
	var journal *audit.FileLogger
	if vopts.auditLog != "" {
		journal, err = audit.NewFileLogger(vopts.auditLog)
		if err != nil {
			return err
		}
		defer journal.Close()
		loggers = append(loggers, journal)
	}
	logger := audit.NewMultiLogger(loggers...)

	results := make([]ValidationOutput, 0, len(files))
	failed := false

	for _, file := range files {
		out := ValidationOutput{File: file, Valid: true}

		f, err := paramfile.Load(file)
		if err != nil {
			out.Valid = false
			out.Error = err.Error()
			results = append(results, out)
			failed = true
			opts.logger.Debug("parameter file rejected", slog.String("file", file), slog.Any("error", err))
			continue
		}

		checkerOpts := []audit.CheckerOption{audit.WithSource(vopts.parsedSource)}
		if f.Device != nil {
			checkerOpts = append(checkerOpts, audit.WithDeviceSerial(f.Device.SerialNumber))
		}
		_, err = audit.NewChecker(v, logger, checkerOpts...).Validate(f.Param)

		var vs validate.Violations
		if errors.As(err, &vs) {
			out.Valid = false
			failed = true
			for _, violation := range vs {
				out.Violations = append(out.Violations, newViolationOutput(violation))
			}
		}
		results = append(results, out)
	}

	if journal != nil {
		if err := journal.Close(); err != nil {
			return err
		}
		opts.logger.Debug("audit log written", slog.String("path", vopts.auditLog), slog.Int("events", journal.Count()))
	}

	if vopts.json {
		data, err := json.MarshalIndent(results, "", "  ")
		if err != nil {
			return err
		}
		fmt.Fprintln(w, string(data))
	} else {
		for _, r := range results {
			printValidationResult(w, r)
		}
	}

	if failed {
		return errValidation
	}
	return nil
}

func newViolationOutput(v validate.Violation) ViolationOutput {
	fields := make([]string, 0, 2)
	for _, f := range v.Fields() {
		fields = append(fields, string(f))
	}
	return ViolationOutput{
		Rule:    v.RuleID,
		Kind:    v.Kind.String(),
		Tag:     string(v.Tag),
		Fields:  fields,
		Value:   v.Value,
		Message: v.Message(),
	}
}

func printValidationResult(w io.Writer, r ValidationOutput) {
	switch {
	case r.Error != "":
		fmt.Fprintf(w, "%s: ERROR %s\n", r.File, r.Error)
	case r.Valid:
		fmt.Fprintf(w, "%s: OK\n", r.File)
	default:
		fmt.Fprintf(w, "%s: FAILED (%d violations)\n", r.File, len(r.Violations))
		for _, v := range r.Violations {
			fmt.Fprintf(w, "  [%s] %s: %s\n", v.Tag, v.Kind, v.Message)
		}
	}
}
