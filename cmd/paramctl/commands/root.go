// Package commands implements the paramctl subcommands.
package commands

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/mhatzl/pacemaker/pkg/calibration"
	"github.com/mhatzl/pacemaker/pkg/param"
	"github.com/mhatzl/pacemaker/pkg/validate"
	"github.com/spf13/cobra"
)

const (
	exitSuccess      = 0
	exitCommandError = 1
	exitValidation   = 2
)

// envCalibration names the calibration file when --calibration is not given.
const envCalibration = "PACEMAKER_CALIBRATION"

// errValidation signals that the command ran but found violations.
var errValidation = errors.New("validation failed")

type options struct {
	calibrationPath string
	logLevel        string
	verbose         bool

	logger *slog.Logger
}

// validator builds the validator for the configured calibration.
func (o *options) validator() (*validate.Validator, error) {
	path := o.calibrationPath
	if path == "" {
		path = os.Getenv(envCalibration)
	}
	if path == "" {
		return validate.Default(), nil
	}

	limits, err := calibration.Load(path)
	if err != nil {
		return nil, err
	}
	o.logger.Debug("calibration loaded", slog.String("path", path), slog.String("name", limits.Name))
	return validate.New(limits, param.Requirements())
}

// NewRootCmd creates the paramctl command tree writing to stdout and stderr.
func NewRootCmd(stdout, stderr io.Writer) *cobra.Command {
	opts := &options{}

	root := &cobra.Command{
		Use:   "paramctl",
		Short: "Validate pacemaker parameter sets and check requirement traceability.",
		Long: `paramctl validates pacing parameter files against the device's ` +
			`calibrated safety limits, reports every violation with its ` +
			`requirement tag, and checks that each parameter field traces ` +
			`to exactly one requirement.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			var level slog.Level
			if err := level.UnmarshalText([]byte(opts.logLevel)); err != nil {
				return fmt.Errorf("invalid --log-level %q", opts.logLevel)
			}
			opts.logger = slog.New(slog.NewTextHandler(stderr, &slog.HandlerOptions{Level: level}))
			return nil
		},
	}
	root.SetOut(stdout)
	root.SetErr(stderr)

	root.PersistentFlags().StringVar(&opts.calibrationPath, "calibration", "",
		"calibration file (default: $"+envCalibration+" or the embedded limits)")
	root.PersistentFlags().StringVar(&opts.logLevel, "log-level", "info", "log level (debug, info, warn, error)")
	root.PersistentFlags().BoolVarP(&opts.verbose, "verbose", "v", false, "log every decision to stderr")

	root.AddCommand(
		newValidateCmd(opts),
		newTraceCmd(opts),
		newShowCmd(opts),
		newDefaultCmd(opts),
		newAuditCmd(opts),
		newVersionCmd(),
	)
	return root
}

// Execute runs paramctl with args and returns the process exit code.
func Execute(args []string, stdout, stderr io.Writer) int {
	root := NewRootCmd(stdout, stderr)
	root.SetArgs(args)

	err := root.Execute()
	switch {
	case err == nil:
		return exitSuccess
	case errors.Is(err, errValidation):
		return exitValidation
	default:
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return exitCommandError
	}
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the paramctl version.",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintln(cmd.OutOrStdout(), "paramctl version 0.1.0")
		},
	}
}
