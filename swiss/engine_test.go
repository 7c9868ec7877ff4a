/* Copyright © 2025 Mike Brown. All Rights Reserved.
 *
 * See LICENSE file at the root of this repository for license terms
 */
package swiss

import (
	"errors"
	"fmt"
	"math/rand"
	"reflect"
	"testing"
)

func mustPair(t *testing.T, tourney *Tournament) *Result {
	t.Helper()
	res, err := NewEngine(Dutch).ComputePairings(tourney)
	if err != nil {
		t.Fatalf("ComputePairings returned error: %v", err)
	}
	return res
}

func checkPairings(t *testing.T, res *Result, want []Pairing) {
	t.Helper()
	if !reflect.DeepEqual(res.Pairings, want) {
		t.Fatalf("pairings = %+v; want %+v", res.Pairings, want)
	}
}

func TestOddPoolByeGoesToLowestRanked(t *testing.T) {
	scores := []float64{2, 2, 1, 1, 0}
	ratings := []int{1800, 1700, 1600, 1500, 1400}
	var players []*Player
	for i := range scores {
		players = append(players, NewPlayer(fmt.Sprintf("p%d", i+1), ratings[i],
			scores[i], []Color{White, Black}, []string{"x", "y"}, false))
	}
	res := mustPair(t, NewTournament(players, ""))

	checkPairings(t, res, []Pairing{
		NewBye("p5"),
		NewGame("p1", "p2"),
		NewGame("p3", "p4"),
	})
	if res.RoundNumber != 3 {
		t.Errorf("round = %v; want 3", res.RoundNumber)
	}
}

func TestLateJoinerGetsBye(t *testing.T) {
	players := []*Player{
		NewPlayer("late", 2200, 2, []Color{White}, []string{"b"}, false),
		NewPlayer("b", 1800, 1, []Color{Black, White}, []string{"late", "c"}, false),
		NewPlayer("c", 1700, 1, []Color{White, Black}, []string{"d", "b"}, false),
		NewPlayer("d", 1600, 0, []Color{Black, White}, []string{"c", "x"}, false),
	}
	res := mustPair(t, NewTournament(players, ""))

	// late ranks first but still sits out; d is the worst ranked of the rest
	checkPairings(t, res, []Pairing{
		NewBye("late"),
		NewBye("d"),
		NewGame("b", "c"),
	})
	for _, id := range []string{"late", "d"} {
		if !playerByID(res.Players, id).HasBye {
			t.Errorf("%v should be marked as having a bye", id)
		}
	}
}

func TestLateJoinersInRankOrder(t *testing.T) {
	players := []*Player{
		NewPlayer("weak", 1200, 0, nil, nil, false),
		NewPlayer("a", 1500, 1, []Color{White}, []string{"b"}, false),
		NewPlayer("strong", 2000, 0.5, nil, nil, false),
		NewPlayer("b", 1400, 0, []Color{Black}, []string{"a"}, false),
	}
	res := mustPair(t, NewTournament(players, ""))

	// b outranks weak on rating; a has the higher balance so plays black
	checkPairings(t, res, []Pairing{
		NewBye("strong"),
		NewBye("weak"),
		NewGame("b", "a"),
	})
}

func TestEqualPlayersAnchorGetsWhite(t *testing.T) {
	players := []*Player{
		NewPlayer("first", 1500, 1, nil, nil, false),
		NewPlayer("second", 1500, 1, nil, nil, false),
	}
	res := mustPair(t, NewTournament(players, ""))
	checkPairings(t, res, []Pairing{NewGame("first", "second")})
}

func TestHigherRatedGetsWhiteOnEqualBalance(t *testing.T) {
	players := []*Player{
		NewPlayer("anchor", 1500, 2, nil, nil, false),
		NewPlayer("strong", 1900, 1, nil, nil, false),
	}
	res := mustPair(t, NewTournament(players, ""))
	checkPairings(t, res, []Pairing{NewGame("strong", "anchor")})
}

func TestHigherBalanceGetsBlack(t *testing.T) {
	players := []*Player{
		NewPlayer("anchor", 2000, 2, []Color{White, White}, []string{"x", "y"}, false),
		NewPlayer("opp", 1500, 2, []Color{White, Black}, []string{"z", "w"}, false),
	}
	res := mustPair(t, NewTournament(players, ""))
	checkPairings(t, res, []Pairing{NewGame("opp", "anchor")})
}

func TestRematchAvoided(t *testing.T) {
	players := []*Player{
		NewPlayer("a", 2000, 2, []Color{White, Black}, []string{"b", "x"}, false),
		NewPlayer("b", 1900, 2, []Color{Black, White}, []string{"a", "y"}, false),
		NewPlayer("c", 1800, 1, []Color{White, Black}, []string{"d", "z"}, false),
		NewPlayer("d", 1700, 1, []Color{Black, White}, []string{"c", "w"}, false),
	}
	res := mustPair(t, NewTournament(players, ""))

	// a skips b despite the equal score; b then has to take d
	checkPairings(t, res, []Pairing{
		NewGame("a", "c"),
		NewGame("b", "d"),
	})
}

func TestRematchWhenUnavoidable(t *testing.T) {
	players := []*Player{
		NewPlayer("a", 2000, 1, []Color{White}, []string{"b"}, false),
		NewPlayer("b", 1900, 0, []Color{Black}, []string{"a"}, false),
	}
	res := mustPair(t, NewTournament(players, ""))
	// a has the higher balance so takes black in the rematch
	checkPairings(t, res, []Pairing{NewGame("b", "a")})
}

func TestClosestScoreTieGoesToPoolOrder(t *testing.T) {
	players := []*Player{
		NewPlayer("a", 2000, 2, nil, nil, false),
		NewPlayer("b", 1900, 2.5, nil, nil, false),
		NewPlayer("c", 1800, 1.5, nil, nil, false),
		NewPlayer("d", 1700, 1, nil, nil, false),
	}
	res := mustPair(t, NewTournament(players, ""))
	// ranked b, a, c, d: b's nearest is a (0.5), then c and d remain
	checkPairings(t, res, []Pairing{
		NewGame("a", "b"),
		NewGame("c", "d"),
	})

	players = []*Player{
		NewPlayer("top", 2000, 2, nil, nil, false),
		NewPlayer("x", 1900, 1.5, nil, nil, false),
		NewPlayer("y", 1800, 1.5, nil, nil, false),
		NewPlayer("z", 1700, 0, nil, nil, false),
	}
	res = mustPair(t, NewTournament(players, ""))
	checkPairings(t, res, []Pairing{
		NewGame("top", "x"),
		NewGame("y", "z"),
	})
}

func TestByeFairness(t *testing.T) {
	players := []*Player{
		NewPlayer("a", 2000, 2, []Color{White, Black}, []string{"x", "y"}, false),
		NewPlayer("b", 1900, 1, []Color{Black, White}, []string{"x", "y"}, false),
		NewPlayer("c", 1800, 0.5, []Color{White, Black}, []string{"x", "y"}, true),
	}
	res := mustPair(t, NewTournament(players, ""))
	checkPairings(t, res, []Pairing{
		NewBye("b"),
		NewGame("a", "c"),
	})

	for _, p := range players {
		p.HasBye = true
	}
	res = mustPair(t, NewTournament(players, ""))
	if res.Pairings[0] != NewBye("c") {
		t.Errorf("with every player byed, the worst ranked should sit out: %+v",
			res.Pairings)
	}
}

func TestSnapshotNotModified(t *testing.T) {
	players := []*Player{
		NewPlayer("a", 2000, 1, []Color{White}, []string{"b"}, false),
		NewPlayer("b", 1900, 0, []Color{Black}, []string{"a"}, false),
		NewPlayer("c", 1800, 0, nil, nil, false),
	}
	tourney := NewTournament(players, "")
	first := mustPair(t, tourney)
	second := mustPair(t, tourney)

	if !reflect.DeepEqual(first.Pairings, second.Pairings) {
		t.Errorf("repeat computation differs: %+v vs %+v", first.Pairings,
			second.Pairings)
	}
	for _, p := range tourney.Players {
		if p.HasBye {
			t.Errorf("snapshot player %v was modified", p.ID)
		}
	}
	if !playerByID(first.Players, "c").HasBye {
		t.Errorf("working copy of c should carry the bye")
	}
}

func TestEditedScoresAreReranked(t *testing.T) {
	players := []*Player{
		NewPlayer("a", 2000, 0, nil, nil, false),
		NewPlayer("b", 1900, 0, nil, nil, false),
		NewPlayer("c", 1800, 0, nil, nil, false),
	}
	tourney := NewTournament(players, "")
	// c now leads, so b is the lowest ranked and sits out
	tourney.Player("c").Score = 2

	res := mustPair(t, tourney)
	checkPairings(t, res, []Pairing{NewBye("b"), NewGame("a", "c")})
	if playerByID(res.Players, "c").Rank != 1 {
		t.Errorf("working copy of c should be ranked first")
	}
}

func TestEditedHistoryIsHonored(t *testing.T) {
	players := []*Player{
		NewPlayer("a", 2000, 0, nil, nil, false),
		NewPlayer("b", 1900, 0, nil, nil, false),
	}
	tourney := NewTournament(players, "")
	a, b := tourney.Player("a"), tourney.Player("b")
	a.ColorHistory = append(a.ColorHistory, White)
	a.Opponents = append(a.Opponents, "x")
	b.ColorHistory = append(b.ColorHistory, Black)
	b.Opponents = append(b.Opponents, "y")

	res := mustPair(t, tourney)
	// a has had white, so b gets it despite the lower rating
	checkPairings(t, res, []Pairing{NewGame("b", "a")})
	if res.RoundNumber != 2 {
		t.Errorf("round = %v; want 2", res.RoundNumber)
	}
}

func TestBursteinMatchesDutch(t *testing.T) {
	tourney := randomTournament(rand.New(rand.NewSource(7)), 11)
	dutch, err := NewEngine(Dutch).ComputePairings(tourney)
	if err != nil {
		t.Fatalf("dutch: %v", err)
	}
	burstein, err := NewEngine(Burstein).ComputePairings(tourney)
	if err != nil {
		t.Fatalf("burstein: %v", err)
	}
	if !reflect.DeepEqual(dutch.Pairings, burstein.Pairings) {
		t.Errorf("burstein diverged from dutch")
	}
	if NewEngine(System("monrad")).System() != Dutch {
		t.Errorf("unknown system should fall back to dutch")
	}
	if ParseSystem(" BURSTEIN ") != Burstein || ParseSystem("whatever") != Dutch {
		t.Errorf("ParseSystem mapping broken")
	}
}

type stuckStrategy struct{ greedyStrategy }

func (stuckStrategy) FindOpponent(*Player, []*Player) int { return -1 }

func TestAlgorithmError(t *testing.T) {
	players := []*Player{
		NewPlayer("a", 2000, 1, nil, nil, false),
		NewPlayer("b", 1900, 0, nil, nil, false),
	}
	_, err := NewEngineWithStrategy(Dutch, stuckStrategy{}).ComputePairings(
		NewTournament(players, ""))

	var algErr *AlgorithmError
	if !errors.As(err, &algErr) {
		t.Fatalf("expected AlgorithmError, got %v", err)
	}
	if algErr.PlayerID != "a" {
		t.Errorf("error names %v; want anchor a", algErr.PlayerID)
	}
}

func TestEmptyTournament(t *testing.T) {
	res := mustPair(t, NewTournament(nil, ""))
	if len(res.Pairings) != 0 || res.RoundNumber != 1 {
		t.Errorf("unexpected result %+v", res)
	}
}

// randomTournament builds a plausible mid-event snapshot: most players have
// the same number of games, a few are behind, opponents are drawn from the
// field.
func randomTournament(rng *rand.Rand, n int) *Tournament {
	rounds := rng.Intn(5)
	var players []*Player
	for i := 0; i < n; i++ {
		games := rounds
		if games > 0 && rng.Intn(5) == 0 {
			games = rng.Intn(rounds)
		}
		var colors []Color
		var opps []string
		for g := 0; g < games; g++ {
			colors = append(colors, Color(1+rng.Intn(2)))
			opps = append(opps, fmt.Sprintf("p%d", rng.Intn(n)))
		}
		score := float64(rng.Intn(2*games+1)) / 2
		players = append(players, NewPlayer(fmt.Sprintf("p%d", i),
			1000+rng.Intn(1500), score, colors, opps, rng.Intn(4) == 0))
	}

	return NewTournament(players, "")
}

func playerByID(players []*Player, id string) *Player {
	for _, p := range players {
		if p.ID == id {
			return p
		}
	}
	return nil
}

func TestPairingProperties(t *testing.T) {
	rng := rand.New(rand.NewSource(42))
	for iter := 0; iter < 200; iter++ {
		n := rng.Intn(16)
		tourney := randomTournament(rng, n)
		res, err := NewEngine(Dutch).ComputePairings(tourney)
		if err != nil {
			t.Fatalf("iter %v: ComputePairings returned error: %v", iter, err)
		}

		again, _ := NewEngine(Dutch).ComputePairings(tourney)
		if !reflect.DeepEqual(res.Pairings, again.Pairings) {
			t.Fatalf("iter %v: non-deterministic pairings", iter)
		}

		seen := make(map[string]int)
		byes, games := 0, 0
		for _, p := range res.Pairings {
			if p.White == "" {
				t.Fatalf("iter %v: empty white id in %+v", iter, p)
			}
			if p.IsBye != (p.Black == "") {
				t.Fatalf("iter %v: inconsistent bye flag %+v", iter, p)
			}
			seen[p.White]++
			if p.IsBye {
				byes++
				continue
			}
			games++
			seen[p.Black]++
			if p.White == p.Black {
				t.Fatalf("iter %v: self pairing %+v", iter, p)
			}

			w := tourney.Player(p.White)
			b := tourney.Player(p.Black)
			if w.ColorBalance() > b.ColorBalance() {
				t.Fatalf("iter %v: %v has the higher balance but got white",
					iter, w.ID)
			}
		}
		if byes+2*games != n {
			t.Fatalf("iter %v: %v byes + %v games for %v players", iter, byes,
				games, n)
		}
		for _, p := range tourney.Players {
			if seen[p.ID] != 1 {
				t.Fatalf("iter %v: %v appears %v times", iter, p.ID, seen[p.ID])
			}
		}
	}
}
