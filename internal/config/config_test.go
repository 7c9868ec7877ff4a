/* Copyright © 2025 Mike Brown. All Rights Reserved.
 *
 * See LICENSE file at the root of this repository for license terms
 */
package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestLoadFileAndEnv(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "pairingsd.yaml")
	yml := []byte("listen: \":9000\"\nlog_level: debug\nresult_cache_ttl: 5m\ncors_origins:\n  - https://a.example\n")
	if err := os.WriteFile(path, yml, 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	t.Setenv("BBP_LOG_LEVEL", "warn")
	t.Setenv("BBP_CORS_ORIGINS", "https://b.example, https://c.example")

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if cfg.ListenAddr != ":9000" {
		t.Errorf("ListenAddr = %q; want :9000", cfg.ListenAddr)
	}
	if cfg.LogLevel != "warn" {
		t.Errorf("LogLevel = %q; env should win", cfg.LogLevel)
	}
	if cfg.ResultCacheTTL != 5*time.Minute {
		t.Errorf("ResultCacheTTL = %v; want 5m", cfg.ResultCacheTTL)
	}
	if len(cfg.CORSOrigins) != 2 || cfg.CORSOrigins[1] != "https://c.example" {
		t.Errorf("CORSOrigins = %v", cfg.CORSOrigins)
	}
	if cfg.MaxBodyBytes != 1<<20 {
		t.Errorf("MaxBodyBytes default lost: %v", cfg.MaxBodyBytes)
	}
}

func TestApplyEnvErrors(t *testing.T) {
	cases := map[string]string{
		"BBP_MAX_BODY_BYTES":     "lots",
		"BBP_RESULT_CACHE_TTL":   "forever",
		"BBP_HTTP_CACHE_MAX_AGE": "10 parsecs",
	}
	for key, val := range cases {
		t.Run(key, func(t *testing.T) {
			cfg := Default()
			err := cfg.applyEnv(func(k string) string {
				if k == key {
					return val
				}
				return ""
			})
			if err == nil {
				t.Errorf("expected error for %v=%v", key, val)
			}
		})
	}
}

func TestValidate(t *testing.T) {
	cfg := Default()
	cfg.MaxBodyBytes = 0
	if err := cfg.validate(); err == nil {
		t.Errorf("expected error for zero body limit")
	}
}
