/* Copyright © 2025 Mike Brown. All Rights Reserved.
 *
 * See LICENSE file at the root of this repository for license terms
 */
package swiss

import (
	"bytes"
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/mikeb26/bbp-pairings/internal"
)

// PlayerRecord is the wire form of a Player.
type PlayerRecord struct {
	ID           string   `json:"id"`
	Rating       int      `json:"rating"`
	Score        float64  `json:"score"`
	ColorHistory []string `json:"color_history"`
	Opponents    []string `json:"opponents"`
	HasBye       bool     `json:"has_bye"`
}

// TournamentRecord is the wire form of a Tournament.
type TournamentRecord struct {
	Players   []PlayerRecord `json:"players"`
	System    string         `json:"system"`
	RoundDate string         `json:"round_date,omitempty"`
}

// ResultRecord is the wire form of a Result.
type ResultRecord struct {
	Pairings      []Pairing `json:"pairings"`
	TotalPairings int       `json:"total_pairings"`
	RoundNumber   int       `json:"round_number"`
	System        string    `json:"system"`
	RoundDate     string    `json:"round_date,omitempty"`
}

// ParseTournament decodes a tournament snapshot from JSON. Any missing or
// malformed field yields an *InputError naming it; no partial Tournament is
// returned.
func ParseTournament(data []byte) (*Tournament, error) {
	var top map[string]json.RawMessage
	if err := decodeStrict(data, &top); err != nil {
		return nil, inputErrorf("", "body is not a JSON object: %v", err)
	}

	rawPlayers, ok := top["players"]
	if !ok || isNull(rawPlayers) {
		return nil, inputErrorf("players", "JSON must contain 'players' field")
	}
	var playerList []json.RawMessage
	if err := json.Unmarshal(rawPlayers, &playerList); err != nil {
		return nil, inputErrorf("players", "must be a list")
	}

	rec := TournamentRecord{}
	for idx, raw := range playerList {
		pr, err := ParsePlayerRecord(raw, fmt.Sprintf("players[%d]", idx))
		if err != nil {
			return nil, err
		}
		rec.Players = append(rec.Players, pr)
	}

	if raw, ok := top["system"]; ok && !isNull(raw) {
		if err := json.Unmarshal(raw, &rec.System); err != nil {
			return nil, inputErrorf("system", "must be a string")
		}
	}
	if raw, ok := top["round_date"]; ok && !isNull(raw) {
		if err := json.Unmarshal(raw, &rec.RoundDate); err != nil {
			return nil, inputErrorf("round_date", "must be a string")
		}
	}

	return rec.Build()
}

// ParsePlayerRecord decodes one player object. field prefixes the names in
// any returned *InputError.
func ParsePlayerRecord(data []byte, field string) (PlayerRecord, error) {
	var rec PlayerRecord
	var obj map[string]json.RawMessage
	if err := json.Unmarshal(data, &obj); err != nil || obj == nil {
		return rec, inputErrorf(field, "must be an object")
	}
	name := func(key string) string {
		if field == "" {
			return key
		}
		return field + "." + key
	}

	var err error
	raw, ok := obj["id"]
	if !ok || isNull(raw) {
		return rec, inputErrorf(name("id"), "field required")
	}
	if rec.ID, err = parseID(raw); err != nil || rec.ID == "" {
		return rec, inputErrorf(name("id"), "must be a non-empty string")
	}

	raw, ok = obj["rating"]
	if !ok || isNull(raw) {
		return rec, inputErrorf(name("rating"), "field required")
	}
	rating, err := parseNumber(raw)
	if err != nil {
		return rec, inputErrorf(name("rating"), "value is not a valid integer")
	}
	if rating < math.MinInt32 || rating > math.MaxInt32 {
		return rec, inputErrorf(name("rating"), "value is out of range")
	}
	rec.Rating = int(math.Trunc(rating))

	raw, ok = obj["score"]
	if !ok || isNull(raw) {
		return rec, inputErrorf(name("score"), "field required")
	}
	if rec.Score, err = parseNumber(raw); err != nil {
		return rec, inputErrorf(name("score"), "value is not a valid number")
	}

	if raw, ok = obj["color_history"]; ok && !isNull(raw) {
		if err := json.Unmarshal(raw, &rec.ColorHistory); err != nil {
			return rec, inputErrorf(name("color_history"),
				"must be a list of strings")
		}
		for idx, c := range rec.ColorHistory {
			if _, err := ParseColor(c); err != nil {
				return rec, inputErrorf(fmt.Sprintf("%v[%d]",
					name("color_history"), idx), "%v", err)
			}
		}
	}

	if raw, ok = obj["opponents"]; ok && !isNull(raw) {
		var opps []json.RawMessage
		if err := json.Unmarshal(raw, &opps); err != nil {
			return rec, inputErrorf(name("opponents"), "must be a list")
		}
		for idx, o := range opps {
			id, err := parseID(o)
			if err != nil {
				return rec, inputErrorf(fmt.Sprintf("%v[%d]",
					name("opponents"), idx), "must be a string")
			}
			rec.Opponents = append(rec.Opponents, id)
		}
	}

	if raw, ok = obj["has_bye"]; ok && !isNull(raw) {
		if err := json.Unmarshal(raw, &rec.HasBye); err != nil {
			return rec, inputErrorf(name("has_bye"), "must be a boolean")
		}
	}

	return rec, nil
}

// Build validates the record and constructs a ranked Tournament.
func (rec TournamentRecord) Build() (*Tournament, error) {
	players := make([]*Player, 0, len(rec.Players))
	seen := make(map[string]bool)
	for idx, pr := range rec.Players {
		field := fmt.Sprintf("players[%d]", idx)
		p, err := pr.Player(field)
		if err != nil {
			return nil, err
		}
		if seen[p.ID] {
			return nil, inputErrorf(field+".id", "duplicate player id %q",
				p.ID)
		}
		seen[p.ID] = true
		players = append(players, p)
	}

	t := NewTournament(players, rec.System)
	if rec.RoundDate != "" {
		d, err := internal.ParseDateOrZero(rec.RoundDate)
		if err != nil {
			return nil, inputErrorf("round_date", "unrecognized date %q",
				rec.RoundDate)
		}
		t.RoundDate = d
	}

	return t, nil
}

// Player converts the record, naming field in any *InputError.
func (pr PlayerRecord) Player(field string) (*Player, error) {
	if pr.ID == "" {
		return nil, inputErrorf(field+".id", "field required")
	}
	colors := make([]Color, 0, len(pr.ColorHistory))
	for idx, s := range pr.ColorHistory {
		c, err := ParseColor(s)
		if err != nil {
			return nil, inputErrorf(fmt.Sprintf("%v.color_history[%d]", field,
				idx), "%v", err)
		}
		colors = append(colors, c)
	}

	return NewPlayer(pr.ID, pr.Rating, pr.Score, colors, pr.Opponents,
		pr.HasBye), nil
}

// Record converts t back to its wire form.
func (t *Tournament) Record() TournamentRecord {
	rec := TournamentRecord{System: t.System}
	if !t.RoundDate.IsZero() {
		rec.RoundDate = t.RoundDate.Format("2006-01-02")
	}
	for _, p := range t.Players {
		rec.Players = append(rec.Players, p.Record())
	}

	return rec
}

func (r *Result) Record() ResultRecord {
	rec := ResultRecord{
		Pairings:      append([]Pairing{}, r.Pairings...),
		TotalPairings: len(r.Pairings),
		RoundNumber:   r.RoundNumber,
		System:        r.System,
	}
	if !r.RoundDate.IsZero() {
		rec.RoundDate = r.RoundDate.Format("2006-01-02")
	}

	return rec
}

func (p *Player) Record() PlayerRecord {
	colors := make([]string, 0, len(p.ColorHistory))
	for _, c := range p.ColorHistory {
		colors = append(colors, c.String())
	}

	return PlayerRecord{
		ID:           p.ID,
		Rating:       p.Rating,
		Score:        p.Score,
		ColorHistory: colors,
		Opponents:    append([]string{}, p.Opponents...),
		HasBye:       p.HasBye,
	}
}

func decodeStrict(data []byte, dst any) error {
	dec := json.NewDecoder(bytes.NewReader(data))
	if err := dec.Decode(dst); err != nil {
		return err
	}
	if dec.More() {
		return fmt.Errorf("body must only contain a single JSON value")
	}

	return nil
}

func isNull(raw json.RawMessage) bool {
	return len(bytes.TrimSpace(raw)) == 0 || string(bytes.TrimSpace(raw)) == "null"
}

// parseID accepts a string or a bare number, which is kept as written.
func parseID(raw json.RawMessage) (string, error) {
	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		return s, nil
	}
	var n json.Number
	if err := json.Unmarshal(raw, &n); err != nil {
		return "", err
	}

	return n.String(), nil
}

// parseNumber accepts a JSON number or a numeric string.
func parseNumber(raw json.RawMessage) (float64, error) {
	var f float64
	if err := json.Unmarshal(raw, &f); err == nil {
		return f, nil
	}
	var s string
	if err := json.Unmarshal(raw, &s); err != nil {
		return 0, err
	}
	f, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, fmt.Errorf("not a number: %q", s)
	}

	return f, nil
}
