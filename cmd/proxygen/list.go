package main

import (
	"fmt"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/chazu/interpose/proxygen"
)

func newListCmd(opts *options) *cobra.Command {
	var methods bool
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List shells, their status and their method surface",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			reqs, _, err := opts.plan()
			if err != nil {
				return err
			}

			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(w, "PACKAGE\tBASE\tSHELL\tMETHODS\tSTATUS")
			for _, req := range reqs {
				model, status, err := proxygen.Check(req)
				if err != nil {
					return err
				}
				fmt.Fprintf(w, "%s\t%s\t%s\t%d\t%s\n", model.PkgPath, model.Base, model.TypeName, len(model.Methods), status)
				if methods {
					for _, m := range model.Methods {
						fmt.Fprintf(w, "\t\t%s\t%s\n", m.Name, strings.TrimPrefix(m.Declarer, model.PkgName+"."))
					}
				}
			}
			return w.Flush()
		},
	}
	cmd.Flags().BoolVarP(&methods, "methods", "m", false, "Also print each method and the type declaring it")
	return cmd
}
