/* Copyright © 2025 Mike Brown. All Rights Reserved.
 *
 * See LICENSE file at the root of this repository for license terms
 */
package swiss

import (
	"fmt"
	"strings"
)

type Color int

const (
	NoColor Color = iota
	White
	Black
)

func (c Color) String() string {
	switch c {
	case White:
		return "white"
	case Black:
		return "black"
	default:
		return "none"
	}
}

// ParseColor accepts "white" or "black" in any case.
func ParseColor(s string) (Color, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "white":
		return White, nil
	case "black":
		return Black, nil
	}

	return NoColor, fmt.Errorf("unknown color %q", s)
}

// Player is one entrant's state going into the next round. ColorBalance and
// PreferredColor are derived from ColorHistory and are only updated through
// NewPlayer and SetHistory.
type Player struct {
	ID           string
	Rating       int
	Score        float64
	ColorHistory []Color
	Opponents    []string
	HasBye       bool
	Rank         int

	colorBalance   int
	preferredColor Color
}

func NewPlayer(id string, rating int, score float64, colors []Color,
	opponents []string, hasBye bool) *Player {

	p := &Player{
		ID:     id,
		Rating: rating,
		Score:  score,
		HasBye: hasBye,
	}
	p.SetHistory(colors, opponents)

	return p
}

// SetHistory replaces the color and opponent history and recomputes the
// derived color fields.
func (p *Player) SetHistory(colors []Color, opponents []string) {
	p.ColorHistory = append([]Color(nil), colors...)
	p.Opponents = append([]string(nil), opponents...)

	p.colorBalance = 0
	for _, c := range p.ColorHistory {
		if c == White {
			p.colorBalance++
		} else if c == Black {
			p.colorBalance--
		}
	}

	if p.colorBalance > 0 {
		p.preferredColor = Black
	} else if p.colorBalance < 0 {
		p.preferredColor = White
	} else {
		p.preferredColor = NoColor
	}
}

// ColorBalance is whites played minus blacks played.
func (p *Player) ColorBalance() int {
	return p.colorBalance
}

func (p *Player) PreferredColor() Color {
	return p.preferredColor
}

func (p *Player) GamesPlayed() int {
	return len(p.ColorHistory)
}

func (p *Player) HasPlayed(id string) bool {
	for _, opp := range p.Opponents {
		if opp == id {
			return true
		}
	}

	return false
}

// clone copies p with its derived fields recomputed from the history.
func (p *Player) clone() *Player {
	c := *p
	c.SetHistory(p.ColorHistory, p.Opponents)

	return &c
}
