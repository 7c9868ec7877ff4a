/* Copyright © 2025 Mike Brown. All Rights Reserved.
 *
 * See LICENSE file at the root of this repository for license terms
 */
package swiss

import (
	"math"
	"strings"
)

type System string

const (
	Dutch    System = "dutch"
	Burstein System = "burstein"
)

// SupportedSystems lists the labels accepted by ParseSystem.
var SupportedSystems = []System{Dutch, Burstein}

// ParseSystem maps a label to a System. Anything other than burstein is
// treated as dutch.
func ParseSystem(label string) System {
	if strings.EqualFold(strings.TrimSpace(label), string(Burstein)) {
		return Burstein
	}

	return Dutch
}

// Strategy holds the decisions that a pairing system may make differently.
// The engine drives the round structure and calls into the strategy for
// each choice.
type Strategy interface {
	// SelectBye picks the odd-pool bye from a non-empty pool in rank order.
	SelectBye(pool []*Player) int
	// FindOpponent returns the pool index of the anchor's opponent, or -1.
	FindOpponent(anchor *Player, pool []*Player) int
	// AssignColors returns the (white, black) players for a game between
	// the anchor a and its opponent b.
	AssignColors(a, b *Player) (*Player, *Player)
}

// both labels currently run the same greedy rules
var strategies = map[System]Strategy{
	Dutch:    greedyStrategy{},
	Burstein: greedyStrategy{},
}

type greedyStrategy struct{}

// SelectBye prefers the worst ranked player who has not had a bye yet and
// otherwise the worst ranked player overall.
func (greedyStrategy) SelectBye(pool []*Player) int {
	best, bestNoBye := -1, -1
	for idx, p := range pool {
		if best == -1 || p.Rank > pool[best].Rank {
			best = idx
		}
		if !p.HasBye && (bestNoBye == -1 || p.Rank > pool[bestNoBye].Rank) {
			bestNoBye = idx
		}
	}
	if bestNoBye != -1 {
		return bestNoBye
	}

	return best
}

// FindOpponent picks the closest score among players the anchor has not met,
// falling back to rematches when every candidate has been met. Equal score
// gaps go to the earlier pool entry.
func (greedyStrategy) FindOpponent(anchor *Player, pool []*Player) int {
	pick := func(allowRematch bool) int {
		found := -1
		bestDiff := 0.0
		for idx, p := range pool {
			if !allowRematch && anchor.HasPlayed(p.ID) {
				continue
			}
			diff := math.Abs(p.Score - anchor.Score)
			if found == -1 || diff < bestDiff {
				found = idx
				bestDiff = diff
			}
		}
		return found
	}

	if idx := pick(false); idx != -1 {
		return idx
	}

	return pick(true)
}

// AssignColors gives black to the player with more whites; with equal
// balance the higher rated player, or the anchor on equal rating, is white.
func (greedyStrategy) AssignColors(a, b *Player) (*Player, *Player) {
	if a.ColorBalance() > b.ColorBalance() {
		return b, a
	} else if b.ColorBalance() > a.ColorBalance() {
		return a, b
	}

	if a.Rating >= b.Rating {
		return a, b
	}

	return b, a
}
