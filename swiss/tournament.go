/* Copyright © 2025 Mike Brown. All Rights Reserved.
 *
 * See LICENSE file at the root of this repository for license terms
 */
package swiss

import (
	"sort"
	"time"
)

// Tournament is a snapshot of every player going into the next round. It
// owns its Players; nothing else should hold on to them. Rank and
// CurrentRound go stale if players are edited in place until UpdateRanks is
// called.
type Tournament struct {
	Players      []*Player
	CurrentRound int
	System       string
	RoundDate    time.Time
}

// NewTournament takes ownership of players, derives the current round and
// assigns ranks. An empty system label defaults to dutch.
func NewTournament(players []*Player, system string) *Tournament {
	if system == "" {
		system = string(Dutch)
	}
	t := &Tournament{
		Players: players,
		System:  system,
	}
	t.UpdateRanks()

	return t
}

// AddPlayer appends p and recomputes the round number and ranks.
func (t *Tournament) AddPlayer(p *Player) {
	t.Players = append(t.Players, p)
	t.UpdateRanks()
}

func (t *Tournament) Player(id string) *Player {
	for _, p := range t.Players {
		if p.ID == id {
			return p
		}
	}

	return nil
}

// MaxGamesPlayed is the longest color history in the snapshot.
func (t *Tournament) MaxGamesPlayed() int {
	return maxGamesPlayed(t.Players)
}

// UpdateRanks orders Players by score then rating, both descending, numbers
// them from 1 and recomputes CurrentRound. Ties keep their input order. Call
// it after editing a player's score or history in place.
func (t *Tournament) UpdateRanks() {
	t.CurrentRound = t.MaxGamesPlayed() + 1
	rankPlayers(t.Players)
}

func rankPlayers(players []*Player) {
	sort.SliceStable(players, func(i, j int) bool {
		if players[i].Score != players[j].Score {
			return players[i].Score > players[j].Score
		}
		return players[i].Rating > players[j].Rating
	})

	for idx, p := range players {
		p.Rank = idx + 1
	}
}

func maxGamesPlayed(players []*Player) int {
	max := 0
	for _, p := range players {
		if n := p.GamesPlayed(); n > max {
			max = n
		}
	}

	return max
}
