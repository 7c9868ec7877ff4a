/* Copyright © 2025 Mike Brown. All Rights Reserved.
 *
 * See LICENSE file at the root of this repository for license terms
 */
package report

import (
	"fmt"

	"github.com/mikeb26/bbp-pairings/swiss"
)

// CheckReport summarizes a snapshot without pairing it.
type CheckReport struct {
	TotalPlayers int           `json:"total_players"`
	CurrentRound int           `json:"current_round"`
	System       string        `json:"system"`
	Players      []PlayerCheck `json:"players"`
}

type PlayerCheck struct {
	ID           string   `json:"id"`
	Rating       int      `json:"rating"`
	Score        float64  `json:"score"`
	Rank         int      `json:"rank"`
	ColorBalance int      `json:"color_balance"`
	GamesPlayed  int      `json:"games_played"`
	Warnings     []string `json:"warnings"`
}

func Check(t *swiss.Tournament) *CheckReport {
	rep := &CheckReport{
		TotalPlayers: len(t.Players),
		CurrentRound: t.CurrentRound,
		System:       t.System,
		Players:      make([]PlayerCheck, 0, len(t.Players)),
	}

	for _, p := range t.Players {
		pc := PlayerCheck{
			ID:           p.ID,
			Rating:       p.Rating,
			Score:        p.Score,
			Rank:         p.Rank,
			ColorBalance: p.ColorBalance(),
			GamesPlayed:  p.GamesPlayed(),
			Warnings:     []string{},
		}
		if len(p.ColorHistory) != len(p.Opponents) {
			pc.Warnings = append(pc.Warnings, fmt.Sprintf(
				"Player %v has mismatched history lengths", p.ID))
		}
		for _, opp := range p.Opponents {
			if t.Player(opp) == nil {
				pc.Warnings = append(pc.Warnings, fmt.Sprintf(
					"Player %v lists unknown opponent %v", p.ID, opp))
			}
		}
		rep.Players = append(rep.Players, pc)
	}

	return rep
}

func (rep *CheckReport) WarningCount() int {
	n := 0
	for _, p := range rep.Players {
		n += len(p.Warnings)
	}

	return n
}
