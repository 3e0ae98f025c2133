package commands

import (
	"encoding/json"
	"fmt"
	"io"
	"log/slog"

	"github.com/mhatzl/pacemaker/pkg/device"
	"github.com/mhatzl/pacemaker/pkg/paramfile"
	"github.com/mhatzl/pacemaker/pkg/units"
	"github.com/spf13/cobra"
)

// ShowOutput is the display form of a parameter file.
type ShowOutput struct {
	File   string       `json:"file"`
	View   units.View   `json:"view"`
	Device *device.Info `json:"device,omitempty"`
}

func newShowCmd(opts *options) *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "show <file>",
		Short: "Display a parameter file in display units.",
		Long:  "Show prints the parameters in mV, µs and ms. The values are a view only; nothing is validated.",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runShow(cmd.OutOrStdout(), opts, args[0], asJSON)
		},
	}
	cmd.Flags().BoolVar(&asJSON, "json", false, "output as JSON")
	return cmd
}

func runShow(w io.Writer, opts *options, path string, asJSON bool) error {
	f, err := paramfile.Load(path)
	if err != nil {
		return err
	}
	out := ShowOutput{File: path, View: units.NewView(f.Param), Device: f.Device}
	if len(out.View.NonFinite) > 0 {
		opts.logger.Warn("parameter file has non-finite values", slog.String("file", path), slog.Any("fields", out.View.NonFinite))
	}

	if asJSON {
		data, err := json.MarshalIndent(out, "", "  ")
		if err != nil {
			return err
		}
		fmt.Fprintln(w, string(data))
		return nil
	}

	fmt.Fprintf(w, "%s:\n", path)
	fmt.Fprintf(w, "  atrial:       %s\n", out.View.Atrial)
	fmt.Fprintf(w, "  ventricular:  %s\n", out.View.Ventricular)
	if out.View.LRL == 0 {
		fmt.Fprintf(w, "  lrl:          0 ppm (no interval)\n")
	} else {
		fmt.Fprintf(w, "  lrl:          %d ppm (interval %.1f ms)\n", out.View.LRL, out.View.IntervalMs)
	}
	fmt.Fprintf(w, "  vrp:          %d ms\n", out.View.VRP)
	for _, f := range out.View.NonFinite {
		fmt.Fprintf(w, "  not finite:   %s\n", f)
	}
	if out.Device != nil {
		fmt.Fprintf(w, "  device:       %s\n", out.Device)
	}
	return nil
}
