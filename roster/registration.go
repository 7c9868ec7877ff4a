/* Copyright © 2025 Mike Brown. All Rights Reserved.
 *
 * See LICENSE file at the root of this repository for license terms
 */
package roster

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"strconv"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/mikeb26/bbp-pairings/internal"
	"github.com/mikeb26/bbp-pairings/swiss"
)

// ErrNoRegistrationTable is returned when a page has no usable player table.
var ErrNoRegistrationTable = errors.New("no registration table found")

// ErrDuplicateEntrant is returned when players are identified by name and
// two rows carry the same name.
var ErrDuplicateEntrant = errors.New("duplicate entrant name")

// ParseRegistration extracts players from an HTML registration table. The
// table with id "members" is preferred, otherwise the first table is used.
// Columns are located by header text; an id column and a rating column are
// required, a score column is optional.
func ParseRegistration(r io.Reader) ([]swiss.PlayerRecord, error) {
	doc, err := goquery.NewDocumentFromReader(r)
	if err != nil {
		return nil, err
	}

	table := doc.Find("table#members").First()
	if table.Length() == 0 {
		table = doc.Find("table").First()
	}
	if table.Length() == 0 {
		return nil, ErrNoRegistrationTable
	}

	idIdx, nameIdx, rateIdx, scoreIdx := -1, -1, -1, -1
	table.Find("tr").First().Find("th, td").Each(func(i int, s *goquery.Selection) {
		switch strings.ToLower(strings.TrimSpace(s.Text())) {
		case "id", "uscf id", "fide id", "member id":
			idIdx = i
		case "name", "player":
			nameIdx = i
		case "rating", "rtg":
			rateIdx = i
		case "score", "pts", "points":
			scoreIdx = i
		}
	})
	if idIdx == -1 && nameIdx != -1 {
		idIdx = nameIdx
	}
	if idIdx == -1 || rateIdx == -1 {
		return nil, fmt.Errorf("%w: missing id or rating column",
			ErrNoRegistrationTable)
	}

	var records []swiss.PlayerRecord
	var dupErr error
	seen := make(map[string]bool)
	table.Find("tr").Slice(1, goquery.ToEnd).Each(func(_ int, row *goquery.Selection) {
		cells := row.Find("td")
		if cells.Length() <= idIdx || cells.Length() <= rateIdx {
			return
		}
		id := strings.TrimSpace(cells.Eq(idIdx).Text())
		if idIdx == nameIdx {
			id = internal.NormalizeName(id)
		}
		if id == "" || dupErr != nil {
			return
		}
		if seen[id] {
			// a repeated member id is the same player listed twice; a
			// repeated name may be two people
			if idIdx == nameIdx {
				dupErr = fmt.Errorf("%w: %q", ErrDuplicateEntrant, id)
			}
			return
		}
		seen[id] = true

		rec := swiss.PlayerRecord{
			ID:     id,
			Rating: strRatingToInt(cells.Eq(rateIdx).Text()),
		}
		if scoreIdx != -1 && cells.Length() > scoreIdx {
			rec.Score = strScoreToFloat(cells.Eq(scoreIdx).Text())
		}
		records = append(records, rec)
	})
	if dupErr != nil {
		return nil, dupErr
	}

	return records, nil
}

// LoadRegistration builds a round 1 snapshot from a registration page at src
// (file or URL).
func LoadRegistration(ctx context.Context, client *http.Client,
	src string, system string) (*swiss.Tournament, error) {

	var rdr io.ReadCloser
	if isURL(src) {
		resp, err := fetch(ctx, client, src)
		if err != nil {
			return nil, fmt.Errorf("unable to fetch %v: %w", src, err)
		}
		rdr = resp.Body
	} else {
		f, err := os.Open(src)
		if err != nil {
			return nil, fmt.Errorf("unable to open %v: %w", src, err)
		}
		rdr = f
	}
	defer rdr.Close()

	records, err := ParseRegistration(rdr)
	if err != nil {
		return nil, fmt.Errorf("unable to parse %v: %w", src, err)
	}

	return swiss.TournamentRecord{Players: records, System: system}.Build()
}

// strRatingToInt handles "1500", "559/24" and "unrated".
func strRatingToInt(rating string) int {
	rating = strings.TrimSpace(rating)
	if idx := strings.Index(rating, "/"); idx != -1 {
		rating = rating[:idx]
	}
	r, err := strconv.Atoi(strings.TrimSpace(rating))
	if err != nil {
		return 0
	}

	return r
}

func strScoreToFloat(score string) float64 {
	score = strings.TrimSpace(score)
	half := 0.0
	if strings.HasSuffix(score, "½") {
		half = 0.5
		score = strings.TrimSuffix(score, "½")
		if score == "" {
			return half
		}
	}
	v, err := strconv.ParseFloat(score, 64)
	if err != nil {
		return 0
	}

	return v + half
}
