/* Copyright © 2025 Mike Brown. All Rights Reserved.
 *
 * See LICENSE file at the root of this repository for license terms
 */
package main

import (
	"fmt"

	"github.com/MakeNowJust/heredoc/v2"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/mikeb26/bbp-pairings/report"
	"github.com/mikeb26/bbp-pairings/roster"
	"github.com/mikeb26/bbp-pairings/swiss"
)

type nextOutput struct {
	src    string
	text   string
	record swiss.ResultRecord
}

func nextCmd(opts *rootOptions) *cobra.Command {
	var asJSON bool
	var system string

	cmd := &cobra.Command{
		Use:   "next FILE|URL...",
		Short: "Compute next round pairings",
		Long: heredoc.Doc(`
			Compute the next round pairings for each tournament snapshot.

			Several snapshots may be given; they are loaded and paired
			concurrently and printed in argument order.
		`),
		Example: heredoc.Doc(`
			$ pairings next round3.json
			$ pairings next --json https://example.org/open/snapshot.json
		`),
		Args: cobra.MinimumNArgs(1),

		RunE: func(cmd *cobra.Command, args []string) error {
			client := opts.httpClient(cmd.Context())
			outputs := make([]nextOutput, len(args))

			g, ctx := errgroup.WithContext(cmd.Context())
			for idx, src := range args {
				g.Go(func() error {
					t, err := roster.Load(ctx, client, src)
					if err != nil {
						return err
					}
					if cmd.Flags().Changed("system") {
						t.System = system
					}
					engine := swiss.NewEngine(swiss.ParseSystem(t.System))
					res, err := engine.ComputePairings(t)
					if err != nil {
						return fmt.Errorf("unable to pair %v: %w", src, err)
					}
					logrus.Debugf("pairings.next: %v: round %v, %v pairings, %v byes",
						src, res.RoundNumber, len(res.Pairings), res.ByeCount())

					outputs[idx] = nextOutput{
						src:    src,
						text:   report.BuildPairingsOutput(res, t),
						record: res.Record(),
					}
					return nil
				})
			}
			if err := g.Wait(); err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if asJSON {
				if len(outputs) == 1 {
					return writeJSON(out, outputs[0].record)
				}
				results := make([]swiss.ResultRecord, 0, len(outputs))
				for _, o := range outputs {
					results = append(results, o.record)
				}
				return writeJSON(out, map[string]any{"results": results})
			}

			for idx, o := range outputs {
				if len(outputs) > 1 {
					if idx > 0 {
						fmt.Fprintln(out)
					}
					fmt.Fprintf(out, "==> %v <==\n", o.src)
				}
				fmt.Fprint(out, o.text)
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&asJSON, "json", false, "print pairings as JSON")
	cmd.Flags().StringVarP(&system, "system", "s", "",
		"override the snapshot's pairing system (dutch, burstein)")

	return cmd
}
