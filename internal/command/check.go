// Copyright (c) 2025 Team 4206 and Contributors
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

package command

import (
	"errors"
	"fmt"
	"runtime"

	"github.com/frc4206/battleaid/config/document"
	"github.com/frc4206/battleaid/internal/slogfield"
	"github.com/frc4206/battleaid/internal/try"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"
)

// CheckError is returned by the check command when any file is invalid.
type CheckError struct {
	Failed int
	Total  int
}

// Error implements the error interface.
func (e *CheckError) Error() string {
	return fmt.Sprintf("%d of %d config files failed to parse", e.Failed, e.Total)
}

func (app *App) checkCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "check FILE...",
		Short: "Parse config files and report every syntax error",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) (err error) {
			defer try.Recover(&err)

			ctx, span := app.tracer().Start(cmd.Context(), "check")
			defer span.End()

			l := app.loader()
			errs := make([]error, len(args))

			var g errgroup.Group
			g.SetLimit(runtime.GOMAXPROCS(0))
			for i, name := range args {
				g.Go(func() error {
					_, errs[i] = l.Document(ctx, name)
					return nil
				})
			}
			// every file is checked regardless of the others failing
			_ = g.Wait()

			out := cmd.OutOrStdout()
			failed := 0
			for i, name := range args {
				if errs[i] == nil {
					fmt.Fprintf(out, "ok   %s\n", name)
					continue
				}

				failed++
				fmt.Fprintf(out, "FAIL %s\n", name)
				for _, issue := range issues(errs[i]) {
					fmt.Fprintf(out, "     %s\n", issue)
				}
			}

			app.log.DebugContext(ctx, "checked config files", slogfield.Int("total", len(args)), slogfield.Int("failed", failed))
			if failed > 0 {
				return &CheckError{Failed: failed, Total: len(args)}
			}
			return nil
		},
	}
}

func issues(err error) []string {
	var serr *document.SyntaxError
	if errors.As(err, &serr) {
		return serr.Messages
	}
	return []string{err.Error()}
}
