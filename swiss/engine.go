/* Copyright © 2025 Mike Brown. All Rights Reserved.
 *
 * See LICENSE file at the root of this repository for license terms
 */
package swiss

import "time"

// Engine computes next round pairings for a Tournament. It keeps no state
// between calls and may be shared by concurrent callers.
type Engine struct {
	system   System
	strategy Strategy
}

func NewEngine(system System) *Engine {
	strategy, ok := strategies[system]
	if !ok {
		system = Dutch
		strategy = strategies[Dutch]
	}

	return &Engine{system: system, strategy: strategy}
}

// NewEngineWithStrategy runs system's round structure with a caller supplied
// strategy.
func NewEngineWithStrategy(system System, strategy Strategy) *Engine {
	return &Engine{system: system, strategy: strategy}
}

func (e *Engine) System() System {
	return e.system
}

// Result is the outcome of one pairing computation.
type Result struct {
	Pairings    []Pairing
	RoundNumber int
	System      string
	RoundDate   time.Time

	// Players holds the engine's working copies after bye allocation.
	Players []*Player
}

func (r *Result) ByeCount() int {
	n := 0
	for _, p := range r.Pairings {
		if p.IsBye {
			n++
		}
	}

	return n
}

// ComputePairings pairs the next round of t. Byes come first (late joiners
// in rank order, then the odd-pool bye), followed by games in matching
// order. Ranks, color balances and the round number are derived again from
// the players' current scores and histories, so edits made after
// NewTournament are honored. t itself is not modified.
func (e *Engine) ComputePairings(t *Tournament) (*Result, error) {
	players := make([]*Player, 0, len(t.Players))
	for _, p := range t.Players {
		players = append(players, p.clone())
	}
	rankPlayers(players)
	maxGames := maxGamesPlayed(players)

	res := &Result{
		RoundNumber: maxGames + 1,
		System:      t.System,
		RoundDate:   t.RoundDate,
		Players:     players,
	}

	// players who missed rounds sit out with a bye
	pool := make([]*Player, 0, len(players))
	for _, p := range players {
		if p.GamesPlayed() < maxGames {
			p.HasBye = true
			res.Pairings = append(res.Pairings, NewBye(p.ID))
		} else {
			pool = append(pool, p)
		}
	}

	if len(pool)%2 == 1 {
		idx := e.strategy.SelectBye(pool)
		p := pool[idx]
		p.HasBye = true
		res.Pairings = append(res.Pairings, NewBye(p.ID))
		pool = removeIndex(pool, idx)
	}

	for len(pool) >= 2 {
		anchor := pool[0]
		pool = pool[1:]

		idx := e.strategy.FindOpponent(anchor, pool)
		if idx < 0 || idx >= len(pool) {
			return nil, &AlgorithmError{PlayerID: anchor.ID}
		}
		opp := pool[idx]
		pool = removeIndex(pool, idx)

		w, b := e.strategy.AssignColors(anchor, opp)
		res.Pairings = append(res.Pairings, NewGame(w.ID, b.ID))
	}

	return res, nil
}

func removeIndex(s []*Player, i int) []*Player {
	return append(s[:i], s[i+1:]...)
}
