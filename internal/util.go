/* Copyright © 2025 Mike Brown. All Rights Reserved.
 *
 * See LICENSE file at the root of this repository for license terms
 */
package internal

import (
	"fmt"
	"math"
	"strings"
	"time"
	"unicode"

	"github.com/araddon/dateparse"
)

// ParseDateOrZero returns a parsed time or zero if input is empty or "null".
func ParseDateOrZero(s string) (time.Time, error) {
	if s == "" || s == "null" {
		return time.Time{}, nil
	}
	return dateparse.ParseAny(s)
}

// ScoreToString renders half points the way wallcharts do, e.g. 2½.
func ScoreToString(score float64) string {
	sign := ""
	if score < 0 {
		sign = "-"
		score = -score
	}
	whole := math.Floor(score)
	frac := score - whole
	if math.Abs(frac-0.5) < 1e-9 {
		if whole == 0 {
			return sign + "½"
		}
		return fmt.Sprintf("%v%v½", sign, whole)
	}
	if frac == 0 {
		return fmt.Sprintf("%v%v", sign, whole)
	}

	return fmt.Sprintf("%v%.2f", sign, score)
}

// NormalizeName title cases every word of a registration name and
// collapses whitespace. Middle names are kept so distinct entrants stay
// distinct.
func NormalizeName(s string) string {
	parts := strings.Fields(s)
	for idx, w := range parts {
		r := []rune(strings.ToLower(w))
		r[0] = unicode.ToUpper(r[0])
		parts[idx] = string(r)
	}

	return strings.Join(parts, " ")
}
