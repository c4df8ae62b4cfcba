// Copyright (c) 2025 Team 4206 and Contributors
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

package command

import (
	"fmt"

	"github.com/frc4206/battleaid/config/printer"
	"github.com/frc4206/battleaid/internal/try"
	"github.com/frc4206/battleaid/joystick"

	"github.com/spf13/cobra"
)

func (app *App) joystickCmd() *cobra.Command {
	var samples []float64

	cmd := &cobra.Command{
		Use:   "joystick FILE",
		Short: "Load joystick tuning and show how it shapes stick input",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) (err error) {
			defer try.Recover(&err)

			var cfg joystick.Config
			err = app.loader().Load(cmd.Context(), &cfg, args[0])
			if err != nil {
				return err
			}

			tuned, err := joystick.FromConfig(nil, cfg)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			err = printer.Fprint(out, cfg)
			if err != nil {
				return err
			}
			for _, s := range samples {
				fmt.Fprintf(out, "%g -> %g\n", s, tuned.Tune(s))
			}
			return nil
		},
	}
	cmd.Flags().Float64SliceVar(&samples, "sample", nil, "raw stick value to tune, may be repeated")
	return cmd
}
