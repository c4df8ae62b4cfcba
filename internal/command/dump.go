// Copyright (c) 2025 Team 4206 and Contributors
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

package command

import (
	"fmt"
	"io"
	"strconv"

	"github.com/frc4206/battleaid/config/document"
	"github.com/frc4206/battleaid/config/key"
	"github.com/frc4206/battleaid/internal/try"

	"github.com/davecgh/go-spew/spew"
	"github.com/spf13/cobra"
)

func (app *App) dumpCmd() *cobra.Command {
	var raw bool

	cmd := &cobra.Command{
		Use:   "dump FILE",
		Short: "Print every key of a parsed config file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) (err error) {
			defer try.Recover(&err)

			tbl, err := app.loader().Document(cmd.Context(), args[0])
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if raw {
				cfg := spew.ConfigState{Indent: "    ", SortKeys: true, DisablePointerAddresses: true}
				cfg.Fdump(out, tbl)
				return nil
			}
			dumpValue(out, nil, tbl)
			return nil
		},
	}
	cmd.Flags().BoolVar(&raw, "raw", false, "dump the document model with go-spew")
	return cmd
}

// dumpValue writes one line per leaf as its full key path.
func dumpValue(w io.Writer, chain key.Chain, v document.Value) {
	switch x := v.(type) {
	case *document.Table:
		if x.Len() == 0 && len(chain) > 0 {
			fmt.Fprintf(w, "%s = {}\n", chain)
			return
		}
		for _, k := range x.Keys() {
			child, _ := x.Get(k)
			dumpValue(w, chain.Append(key.Name(k)), child)
		}
	case document.Array:
		if x.Len() == 0 {
			fmt.Fprintf(w, "%s = []\n", chain)
			return
		}
		for i, el := range x {
			dumpValue(w, chain.Append(key.Index(i)), el)
		}
	default:
		fmt.Fprintf(w, "%s = %s (%s)\n", chain, formatLeaf(v), document.KindOf(v))
	}
}

func formatLeaf(v document.Value) string {
	switch x := v.(type) {
	case document.Integer:
		return strconv.FormatInt(int64(x), 10)
	case document.Float:
		return strconv.FormatFloat(float64(x), 'g', -1, 64)
	case document.Bool:
		return strconv.FormatBool(bool(x))
	case document.String:
		return strconv.Quote(string(x))
	}
	return fmt.Sprint(v)
}
