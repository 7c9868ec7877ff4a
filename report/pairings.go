/* Copyright © 2025 Mike Brown. All Rights Reserved.
 *
 * See LICENSE file at the root of this repository for license terms
 */
package report

import (
	"fmt"
	"strings"

	"github.com/mikeb26/bbp-pairings/internal"
	"github.com/mikeb26/bbp-pairings/swiss"
)

// BuildPairingsOutput formats a pairing result into an aligned board list.
// t supplies the ratings and scores shown next to each name.
func BuildPairingsOutput(res *swiss.Result, t *swiss.Tournament) string {
	var sb strings.Builder

	if len(res.Pairings) == 0 {
		sb.WriteString("No pairings: the tournament has no players\n")
		return sb.String()
	}

	sb.WriteString(fmt.Sprintf("Round %v Pairings (%v system)", res.RoundNumber,
		res.System))
	if !res.RoundDate.IsZero() {
		sb.WriteString(fmt.Sprintf(" for %v", res.RoundDate.Format("Mon Jan 2, 2006")))
	}
	sb.WriteString(":\n\n")

	describe := func(id string) string {
		p := t.Player(id)
		if p == nil {
			return id
		}
		return fmt.Sprintf("%s(%d %v)", p.ID, p.Rating,
			internal.ScoreToString(p.Score))
	}

	type row struct{ board, white, black string }
	var rows, byes []row
	boardNum := 1
	for _, p := range res.Pairings {
		if p.IsBye {
			byes = append(byes, row{board: "n/a", white: describe(p.White),
				black: "BYE"})
			continue
		}
		rows = append(rows, row{board: fmt.Sprintf("%d.", boardNum),
			white: describe(p.White), black: describe(p.Black)})
		boardNum++
	}
	// byes go under the boards
	rows = append(rows, byes...)

	maxB, maxW, maxBl := len("Board"), len("White"), len("Black")
	for _, r := range rows {
		if l := len(r.board); l > maxB {
			maxB = l
		}
		if l := len(r.white); l > maxW {
			maxW = l
		}
		if l := len(r.black); l > maxBl {
			maxBl = l
		}
	}

	sb.WriteString(fmt.Sprintf("%-*s  %-*s  %-*s\n", maxB, "Board", maxW,
		"White", maxBl, "Black"))
	for _, r := range rows {
		sb.WriteString(fmt.Sprintf("%-*s  %-*s  %-*s\n", maxB, r.board,
			maxW, r.white, maxBl, r.black))
	}
	sb.WriteString("\n")

	return sb.String()
}
