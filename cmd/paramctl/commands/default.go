package commands

import (
	"log/slog"

	"github.com/mhatzl/pacemaker/pkg/device"
	"github.com/mhatzl/pacemaker/pkg/param"
	"github.com/mhatzl/pacemaker/pkg/paramfile"
	"github.com/spf13/cobra"
)

func newDefaultCmd(opts *options) *cobra.Command {
	var withDevice bool

	cmd := &cobra.Command{
		Use:   "default",
		Short: "Print the factory parameter set as a parameter file.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			f := paramfile.File{Param: param.Default()}
			if withDevice {
				info := device.Default()
				f.Device = &info
			}
			opts.logger.Debug("writing factory parameters", slog.String("param", f.Param.String()), slog.Bool("device", withDevice))
			return paramfile.Encode(cmd.OutOrStdout(), f)
		},
	}
	cmd.Flags().BoolVar(&withDevice, "device", false, "include the factory device section")
	return cmd
}
