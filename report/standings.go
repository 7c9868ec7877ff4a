/* Copyright © 2025 Mike Brown. All Rights Reserved.
 *
 * See LICENSE file at the root of this repository for license terms
 */
package report

import (
	"fmt"
	"strings"

	"github.com/mikeb26/bbp-pairings/swiss"
)

// BuildStandingsOutput formats the ranked snapshot into an aligned table.
// Players tied on score share a place label.
func BuildStandingsOutput(t *swiss.Tournament) string {
	var sb strings.Builder

	sb.WriteString(fmt.Sprintf("Standings prior to Round %v:\n\n",
		t.CurrentRound))

	type row struct{ rank, player, rating, score, balance, games string }
	var rows []row
	priorScore := -1.0
	for idx, p := range t.Players {
		var rank string
		if idx != 0 && p.Score == priorScore {
			rank = ""
		} else {
			rank = fmt.Sprintf("%v.", p.Rank)
			priorScore = p.Score
		}
		rows = append(rows, row{
			rank:    rank,
			player:  p.ID,
			rating:  fmt.Sprintf("%v", p.Rating),
			score:   fmt.Sprintf("%.1f", p.Score),
			balance: fmt.Sprintf("%+d", p.ColorBalance()),
			games:   fmt.Sprintf("%v", p.GamesPlayed()),
		})
	}

	headers := row{"Place", "Player", "Rating", "Score", "Color", "Games"}
	widths := []int{len(headers.rank), len(headers.player),
		len(headers.rating), len(headers.score), len(headers.balance),
		len(headers.games)}
	for _, r := range rows {
		for i, s := range []string{r.rank, r.player, r.rating, r.score,
			r.balance, r.games} {
			if len(s) > widths[i] {
				widths[i] = len(s)
			}
		}
	}

	write := func(r row) {
		sb.WriteString(fmt.Sprintf("%-*s  %-*s  %*s  %*s  %*s  %*s\n",
			widths[0], r.rank, widths[1], r.player, widths[2], r.rating,
			widths[3], r.score, widths[4], r.balance, widths[5], r.games))
	}
	write(headers)
	for _, r := range rows {
		write(r)
	}
	sb.WriteString("\n")

	return sb.String()
}
