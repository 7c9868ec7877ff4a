/* Copyright © 2025 Mike Brown. All Rights Reserved.
 *
 * See LICENSE file at the root of this repository for license terms
 */
package main

import (
	"context"
	"encoding/json"
	"io"
	"net/http"

	"github.com/MakeNowJust/heredoc/v2"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/mikeb26/bbp-pairings/internal"
	"github.com/mikeb26/bbp-pairings/internal/config"
)

type rootOptions struct {
	configPath string
	verbose    bool

	cfg    *config.Config
	client *http.Client
}

func rootCmd() *cobra.Command {
	opts := &rootOptions{}

	root := &cobra.Command{
		Use:   "pairings",
		Short: "Swiss tournament pairing tool",
		Long: heredoc.Doc(`
			Compute Swiss system pairings for the next round of a tournament.

			Tournament snapshots are JSON documents read from a local file or
			an http(s) URL. Fetched URLs are cached; set BBP_HTTP_CACHE_BUCKET
			to keep the cache in S3.
		`),
		Args:    cobra.NoArgs,
		Version: internal.AppVersion,

		SilenceErrors: true,
		SilenceUsage:  true,

		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(opts.configPath)
			if err != nil {
				return err
			}
			if opts.verbose {
				cfg.LogLevel = "debug"
			}
			internal.InitLogging(cmd.ErrOrStderr(), cfg.LogLevel, cfg.LogFormat)
			opts.cfg = cfg
			return nil
		},
	}

	root.PersistentFlags().StringVarP(&opts.configPath, "config", "c", "",
		"path to YAML config file")
	root.PersistentFlags().BoolVarP(&opts.verbose, "verbose", "v", false,
		"show debug logging")

	root.AddCommand(nextCmd(opts))
	root.AddCommand(checkCmd(opts))
	root.AddCommand(round1Cmd(opts))

	return root
}

// httpClient returns the shared caching client, creating it on first use.
func (opts *rootOptions) httpClient(ctx context.Context) *http.Client {
	if opts.client == nil {
		opts.client = internal.NewCachedHttpClient(ctx,
			opts.cfg.HttpCacheBucket, opts.cfg.HttpCacheMaxAge)
		logrus.Debugf("pairings: http cache bucket=%q maxAge=%v",
			opts.cfg.HttpCacheBucket, opts.cfg.HttpCacheMaxAge)
	}

	return opts.client
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
