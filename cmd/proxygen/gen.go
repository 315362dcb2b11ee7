package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/chazu/interpose/proxygen"
)

func newGenCmd(opts *options) *cobra.Command {
	var dryRun bool
	cmd := &cobra.Command{
		Use:   "gen",
		Short: "Generate shells",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			reqs, m, err := opts.plan()
			if err != nil {
				return err
			}
			genOpts := proxygen.Options{DryRun: dryRun}
			if m != nil {
				genOpts.Concurrency = m.Generate.Concurrency
			}

			results, err := proxygen.GenerateAll(cmd.Context(), reqs, genOpts)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			changed := 0
			for _, res := range results {
				if res.Status == proxygen.StatusCurrent {
					continue
				}
				changed++
				verb := "wrote"
				if dryRun {
					verb = "would write"
				}
				fmt.Fprintf(out, "%s %s (%s, %d methods)\n", verb, res.Path, res.Status, res.Methods)
			}
			if changed == 0 {
				fmt.Fprintf(out, "%d shell(s) up to date\n", len(results))
			}
			return nil
		},
	}
	cmd.Flags().BoolVarP(&dryRun, "dry-run", "n", false, "Report changes without writing files")
	return cmd
}
