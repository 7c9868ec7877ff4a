/* Copyright © 2025 Mike Brown. All Rights Reserved.
 *
 * See LICENSE file at the root of this repository for license terms
 */
package main

import (
	"fmt"

	"github.com/MakeNowJust/heredoc/v2"
	"github.com/spf13/cobra"

	"github.com/mikeb26/bbp-pairings/report"
	"github.com/mikeb26/bbp-pairings/roster"
	"github.com/mikeb26/bbp-pairings/swiss"
)

func round1Cmd(opts *rootOptions) *cobra.Command {
	var asJSON bool
	var system string

	cmd := &cobra.Command{
		Use:   "round1 FILE|URL",
		Short: "Predict round 1 pairings from a registration page",
		Long: heredoc.Doc(`
			Read the player table from an HTML registration page and pair
			round 1. Players are ranked by rating; the table must have an id
			(or name) column and a rating column.
		`),
		Args: cobra.ExactArgs(1),

		RunE: func(cmd *cobra.Command, args []string) error {
			t, err := roster.LoadRegistration(cmd.Context(),
				opts.httpClient(cmd.Context()), args[0], system)
			if err != nil {
				return err
			}
			res, err := swiss.NewEngine(swiss.ParseSystem(t.System)).
				ComputePairings(t)
			if err != nil {
				return fmt.Errorf("unable to pair %v: %w", args[0], err)
			}

			if asJSON {
				return writeJSON(cmd.OutOrStdout(), res.Record())
			}
			fmt.Fprint(cmd.OutOrStdout(), report.BuildPairingsOutput(res, t))
			return nil
		},
	}

	cmd.Flags().BoolVar(&asJSON, "json", false, "print pairings as JSON")
	cmd.Flags().StringVarP(&system, "system", "s", string(swiss.Dutch),
		"pairing system (dutch, burstein)")

	return cmd
}
