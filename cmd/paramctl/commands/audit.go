package commands

import (
	"encoding/hex"
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/mhatzl/pacemaker/pkg/audit"
	"github.com/spf13/cobra"
)

type auditOptions struct {
	rejected bool
	tag      string
	serial   string
}

func newAuditCmd(opts *options) *cobra.Command {
	aopts := &auditOptions{}

	cmd := &cobra.Command{
		Use:   "audit <log>",
		Short: "Print decisions recorded in an audit log.",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runAudit(cmd.OutOrStdout(), opts, args[0], aopts)
		},
	}
	cmd.Flags().BoolVar(&aopts.rejected, "rejected", false, "only rejected decisions")
	cmd.Flags().StringVar(&aopts.tag, "tag", "", "only decisions violating this requirement tag")
	cmd.Flags().StringVar(&aopts.serial, "serial", "", "only decisions for this device serial")
	return cmd
}

func runAudit(w io.Writer, opts *options, path string, aopts *auditOptions) error {
	filter := audit.Filter{Tag: aopts.tag, DeviceSerial: aopts.serial}
	if aopts.rejected {
		rejected := audit.OutcomeRejected
		filter.Outcome = &rejected
	}

	r, err := audit.NewFilteredReader(path, filter)
	if err != nil {
		return err
	}
	defer r.Close()

	events, err := r.ReadAll()
	if err != nil {
		return fmt.Errorf("reading audit log: %w", err)
	}
	opts.logger.Debug("audit log read", slog.String("path", path), slog.Int("events", len(events)))

	for _, e := range events {
		digest := hex.EncodeToString(e.Digest)
		if len(digest) > 16 {
			digest = digest[:16]
		}
		fmt.Fprintf(w, "%s %s %-8s %s %s\n",
			e.Timestamp.UTC().Format(time.RFC3339), e.ID, e.Outcome, digest, e.Candidate)
		if e.DigestError != "" {
			fmt.Fprintf(w, "    digest: %s\n", e.DigestError)
		}
		for _, v := range e.Violations {
			fmt.Fprintf(w, "    [%s] %s %s=%g\n", v.Tag, v.Kind, v.Field, v.Value)
		}
	}
	fmt.Fprintf(w, "%d events\n", len(events))
	return nil
}
