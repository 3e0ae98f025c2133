package commands

import (
	"encoding/json"
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/mhatzl/pacemaker/pkg/device"
	"github.com/mhatzl/pacemaker/pkg/param"
	"github.com/mhatzl/pacemaker/pkg/req"
	"github.com/mhatzl/pacemaker/pkg/validate"
	"github.com/spf13/cobra"
)

// TraceOutput lists the requirement bindings of one registry.
type TraceOutput struct {
	Registry    string            `json:"registry"`
	Complete    bool              `json:"complete"`
	Problem     string            `json:"problem,omitempty"`
	Fields      map[string]string `json:"fields"`
	Constraints map[string]string `json:"constraints,omitempty"`
	Rules       map[string]string `json:"rules,omitempty"`
}

func newTraceCmd(opts *options) *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "trace",
		Short: "List requirement tags and check registry completeness.",
		Long: "Trace prints every field and rule with the requirement it traces to " +
			"and fails with exit code 2 if a registry does not cover its data model exactly.",
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runTrace(cmd.OutOrStdout(), opts, asJSON)
		},
	}
	cmd.Flags().BoolVar(&asJSON, "json", false, "output as JSON")
	return cmd
}

func runTrace(w io.Writer, opts *options, asJSON bool) error {
	v, err := opts.validator()
	if err != nil {
		return err
	}

	paramTrace := traceRegistry(param.Requirements(), param.Fields())
	paramTrace.Rules = make(map[string]string)
	for _, r := range v.Rules() {
		paramTrace.Rules[r.ID()] = string(r.Tag())
	}
	traces := []TraceOutput{
		paramTrace,
		traceRegistry(device.Requirements(), device.Fields()),
	}

	if asJSON {
		data, err := json.MarshalIndent(traces, "", "  ")
		if err != nil {
			return err
		}
		fmt.Fprintln(w, string(data))
	} else {
		printTrace(w, param.Requirements(), traces[0], v.Rules())
		printTrace(w, device.Requirements(), traces[1], nil)
	}

	for _, t := range traces {
		if !t.Complete {
			return errValidation
		}
	}
	return nil
}

func traceRegistry(r *req.Registry, model []req.FieldPath) TraceOutput {
	out := TraceOutput{
		Registry: r.Name(),
		Complete: true,
		Fields:   make(map[string]string),
	}
	for _, e := range r.Fields() {
		out.Fields[string(e.Path)] = string(e.Tag)
	}
	for _, c := range r.Constraints() {
		if out.Constraints == nil {
			out.Constraints = make(map[string]string)
		}
		out.Constraints[c.ID] = string(c.Tag)
	}

	if err := r.CheckComplete(model); err != nil {
		out.Complete = false
		out.Problem = err.Error()
	}
	return out
}

func printTrace(w io.Writer, r *req.Registry, t TraceOutput, rules []validate.Rule) {
	fmt.Fprintf(w, "%s:\n", t.Registry)

	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	for _, e := range r.Fields() {
		fmt.Fprintf(tw, "  field\t%s\t%s\n", e.Path, e.Tag)
	}
	for _, c := range r.Constraints() {
		fmt.Fprintf(tw, "  constraint\t%s\t%s\n", c.ID, c.Tag)
	}
	for _, rule := range rules {
		fmt.Fprintf(tw, "  rule\t%s\t%s\n", rule.ID(), rule.Tag())
	}
	tw.Flush()

	if t.Complete {
		fmt.Fprintf(w, "  complete: %d fields\n", r.Count())
	} else {
		fmt.Fprintf(w, "  INCOMPLETE: %s\n", t.Problem)
	}
}
