/* Copyright © 2025 Mike Brown. All Rights Reserved.
 *
 * See LICENSE file at the root of this repository for license terms
 */
package main

import (
	"context"
	"errors"
	"flag"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/mikeb26/bbp-pairings/internal"
	"github.com/mikeb26/bbp-pairings/internal/config"
	"github.com/mikeb26/bbp-pairings/internal/resultcache"
)

func main() {
	configPath := flag.String("config", "", "path to YAML config file")
	listen := flag.String("listen", "", "listen address (overrides config)")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		logrus.Fatalf("pairingsd: %v", err)
	}
	if *listen != "" {
		cfg.ListenAddr = *listen
	}
	internal.InitLogging(os.Stderr, cfg.LogLevel, cfg.LogFormat)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt,
		syscall.SIGTERM)
	defer stop()

	var cache *resultcache.Cache
	if cfg.RedisURL != "" {
		cache, err = resultcache.Dial(ctx, cfg.RedisURL, cfg.ResultCacheTTL)
		if err != nil {
			logrus.Fatalf("pairingsd: %v", err)
		}
		defer cache.Close()
		logrus.Infof("pairingsd: memoizing results in redis ttl=%v",
			cfg.ResultCacheTTL)
	}

	srv := &http.Server{
		Addr:              cfg.ListenAddr,
		Handler:           newServer(cfg, cache).routes(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(),
			5*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			logrus.Warnf("pairingsd: shutdown: %v", err)
		}
	}()

	logrus.Infof("pairingsd: %v %v listening on %v", internal.AppName,
		internal.AppVersion, cfg.ListenAddr)
	err = srv.ListenAndServe()
	if err != nil && !errors.Is(err, http.ErrServerClosed) {
		logrus.Fatalf("pairingsd: %v", err)
	}
}
