/* Copyright © 2025 Mike Brown. All Rights Reserved.
 *
 * See LICENSE file at the root of this repository for license terms
 */
package main

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"

	"github.com/mikeb26/bbp-pairings/internal"
	"github.com/mikeb26/bbp-pairings/internal/config"
	"github.com/mikeb26/bbp-pairings/internal/resultcache"
	"github.com/mikeb26/bbp-pairings/report"
	"github.com/mikeb26/bbp-pairings/swiss"
)

const cacheHeader = "X-Pairings-Cache"

type server struct {
	cfg     *config.Config
	cache   *resultcache.Cache
	started time.Time
}

func newServer(cfg *config.Config, cache *resultcache.Cache) *server {
	return &server{cfg: cfg, cache: cache, started: time.Now()}
}

func (s *server) routes() http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RequestLogger(&middleware.DefaultLogFormatter{
		Logger:  logrus.StandardLogger(),
		NoColor: true,
	}))
	r.Use(middleware.Recoverer)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   s.cfg.CORSOrigins,
		AllowedMethods:   []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders:   []string{"*"},
		AllowCredentials: true,
	}))

	r.Get("/", s.handleRoot)
	r.Get("/info", s.handleInfo)
	r.Post("/pairings", s.handlePairings)
	r.Post("/pairings/batch", s.handleBatch)
	r.Post("/check", s.handleCheck)
	r.Post("/add_player", s.handleAddPlayer)

	return r
}

func (s *server) handleRoot(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, jsonResponse{
		"message": internal.AppName + " Server",
		"version": internal.AppVersion,
		"built":   s.started.Format("Jan 02 2006 15:04:05"),
		"endpoints": map[string]string{
			"POST /pairings":       "Generate next round pairings",
			"POST /pairings/batch": "Generate pairings for several tournaments",
			"POST /check":          "Check tournament data validity",
			"POST /add_player":     "Validate a player joining the tournament",
			"GET /info":            "Get API information",
		},
	})
}

func (s *server) handleInfo(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, jsonResponse{
		"name":              internal.AppName,
		"description":       "Swiss Tournament Pairing System",
		"version":           internal.AppVersion,
		"built":             s.started.Format("Jan 02 2006 15:04:05"),
		"supported_systems": swiss.SupportedSystems,
	})
}

func (s *server) handlePairings(w http.ResponseWriter, r *http.Request) {
	body, err := readBody(w, r, s.cfg.MaxBodyBytes)
	if err != nil {
		writeError(w, r, err)
		return
	}
	t, err := swiss.ParseTournament(body)
	if err != nil {
		writeError(w, r, err)
		return
	}

	res, hit, err := s.pair(r.Context(), t)
	if err != nil {
		writeError(w, r, err)
		return
	}
	if s.cache != nil {
		if hit {
			w.Header().Set(cacheHeader, "hit")
		} else {
			w.Header().Set(cacheHeader, "miss")
		}
	}

	writeJSON(w, http.StatusOK, res)
}

func (s *server) handleBatch(w http.ResponseWriter, r *http.Request) {
	body, err := readBody(w, r, s.cfg.MaxBodyBytes)
	if err != nil {
		writeError(w, r, err)
		return
	}
	var req struct {
		Tournaments []json.RawMessage `json:"tournaments"`
	}
	if err := json.Unmarshal(body, &req); err != nil || req.Tournaments == nil {
		writeError(w, r, &swiss.InputError{Field: "tournaments",
			Msg: "JSON must contain a 'tournaments' list"})
		return
	}

	results := make([]*swiss.ResultRecord, len(req.Tournaments))
	g, ctx := errgroup.WithContext(r.Context())
	for idx, raw := range req.Tournaments {
		g.Go(func() error {
			t, err := swiss.ParseTournament(raw)
			if err != nil {
				if inErr, ok := err.(*swiss.InputError); ok {
					field := fmt.Sprintf("tournaments[%d]", idx)
					if inErr.Field != "" {
						field += "." + inErr.Field
					}
					return &swiss.InputError{Field: field, Msg: inErr.Msg}
				}
				return err
			}
			res, _, err := s.pair(ctx, t)
			if err != nil {
				return fmt.Errorf("tournaments[%d]: %w", idx, err)
			}
			results[idx] = res
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		writeError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, jsonResponse{"results": results})
}

func (s *server) handleCheck(w http.ResponseWriter, r *http.Request) {
	body, err := readBody(w, r, s.cfg.MaxBodyBytes)
	if err != nil {
		writeError(w, r, err)
		return
	}
	t, err := swiss.ParseTournament(body)
	if err != nil {
		writeError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, report.Check(t))
}

// handleAddPlayer validates a player joining at current_round. Joining after
// round 1 counts the missed rounds as half point byes; joining after round 2
// is refused.
func (s *server) handleAddPlayer(w http.ResponseWriter, r *http.Request) {
	currentRound := 1
	if v := r.URL.Query().Get("current_round"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			writeError(w, r, &swiss.InputError{Field: "current_round",
				Msg: "value is not a valid integer"})
			return
		}
		currentRound = n
	}
	if currentRound > 2 {
		writeJSON(w, http.StatusBadRequest, jsonResponse{
			"detail": "Cannot add players after round 2 has started"})
		return
	}

	body, err := readBody(w, r, s.cfg.MaxBodyBytes)
	if err != nil {
		writeError(w, r, err)
		return
	}
	rec, err := swiss.ParsePlayerRecord(body, "")
	if err != nil {
		writeError(w, r, err)
		return
	}

	if rec.ColorHistory == nil {
		rec.ColorHistory = []string{}
	}
	if rec.Opponents == nil {
		rec.Opponents = []string{}
	}
	lateJoiner := currentRound > 1
	if lateJoiner {
		rec.HasBye = true
		rec.Score += 0.5 * float64(currentRound-1)
	}

	writeJSON(w, http.StatusOK, jsonResponse{
		"message":     fmt.Sprintf("Player %v added successfully", rec.ID),
		"late_joiner": lateJoiner,
		"bye_awarded": lateJoiner,
		"player":      rec,
	})
}

// pair runs the engine for t, consulting the result cache first when one is
// configured. Cache failures only cost the memoization.
func (s *server) pair(ctx context.Context,
	t *swiss.Tournament) (*swiss.ResultRecord, bool, error) {

	var key string
	if s.cache != nil {
		k, err := resultcache.Key(t.Record())
		if err == nil {
			key = k
			var cached swiss.ResultRecord
			ok, err := s.cache.Get(ctx, key, &cached)
			if err != nil {
				logrus.Warnf("pairingsd.pair: cache get failed: %v", err)
			} else if ok {
				return &cached, true, nil
			}
		}
	}

	engine := swiss.NewEngine(swiss.ParseSystem(t.System))
	res, err := engine.ComputePairings(t)
	if err != nil {
		return nil, false, err
	}

	out := res.Record()

	if key != "" {
		if err := s.cache.Set(ctx, key, &out); err != nil {
			logrus.Warnf("pairingsd.pair: cache set failed: %v", err)
		}
	}

	return &out, false, nil
}
