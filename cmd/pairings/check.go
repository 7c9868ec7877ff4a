/* Copyright © 2025 Mike Brown. All Rights Reserved.
 *
 * See LICENSE file at the root of this repository for license terms
 */
package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/mikeb26/bbp-pairings/report"
	"github.com/mikeb26/bbp-pairings/roster"
)

func checkCmd(opts *rootOptions) *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "check FILE|URL",
		Short: "Validate a tournament snapshot and show standings",
		Args:  cobra.ExactArgs(1),

		RunE: func(cmd *cobra.Command, args []string) error {
			t, err := roster.Load(cmd.Context(),
				opts.httpClient(cmd.Context()), args[0])
			if err != nil {
				return err
			}
			rep := report.Check(t)

			out := cmd.OutOrStdout()
			if asJSON {
				return writeJSON(out, rep)
			}

			fmt.Fprintf(out, "%v players, next round %v (%v system)\n\n",
				rep.TotalPlayers, rep.CurrentRound, rep.System)
			fmt.Fprint(out, report.BuildStandingsOutput(t))
			if rep.WarningCount() > 0 {
				fmt.Fprintf(out, "\nWarnings:\n")
				for _, p := range rep.Players {
					for _, w := range p.Warnings {
						fmt.Fprintf(out, "  %v\n", w)
					}
				}
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&asJSON, "json", false, "print the check report as JSON")

	return cmd
}
