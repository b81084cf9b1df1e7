// Package results scores a pool's bets and saved games against an official
// lottery draw.
package results

import (
	"sort"
	"time"

	"github.com/ExudusTech/bolao-engine/lottery"
	"github.com/samber/lo"
)

// Draw is one official lottery draw.
type Draw struct {
	Lottery  string    `json:"lottery"`
	Contest  int       `json:"contest"`
	Numbers  []int     `json:"numbers"`
	DrawDate time.Time `json:"draw_date"`
}

// EntryResult is the score of one bet or saved game against a draw.
type EntryResult struct {
	Label    string `json:"label"`
	Numbers  []int  `json:"numbers"`
	Hits     []int  `json:"hits"`
	HitCount int    `json:"hit_count"`
	IsWinner bool   `json:"is_winner"`
}

// PoolCheck is the outcome of checking a whole pool against a draw.
type PoolCheck struct {
	Lottery      string        `json:"lottery"`
	Contest      int           `json:"contest"`
	DrawnNumbers []int         `json:"drawn_numbers"`
	Bets         []EntryResult `json:"bets"`
	Games        []EntryResult `json:"games"`
	BestHitCount int           `json:"best_hit_count"`
	WinnerCount  int           `json:"winner_count"`
}

// CheckPool scores every bet and saved game against the draw. An entry is a
// winner when it matched at least winThreshold numbers (e.g. 4 for the
// quadra tier of a 6/60 lottery).
func CheckPool(draw Draw, bets []lottery.Bet, games []lottery.SuggestedGame, winThreshold int) *PoolCheck {
	drawn := make(map[int]struct{}, len(draw.Numbers))
	for _, n := range draw.Numbers {
		drawn[n] = struct{}{}
	}

	check := &PoolCheck{
		Lottery:      draw.Lottery,
		Contest:      draw.Contest,
		DrawnNumbers: sortedNumbers(draw.Numbers),
	}

	for _, bet := range bets {
		entry := scoreEntry(bet.Nickname, bet.Numbers, drawn, winThreshold)
		check.Bets = append(check.Bets, entry)
		check.tally(entry)
	}
	for _, game := range games {
		entry := scoreEntry(game.Type, game.Numbers, drawn, winThreshold)
		check.Games = append(check.Games, entry)
		check.tally(entry)
	}

	return check
}

func (c *PoolCheck) tally(entry EntryResult) {
	if entry.HitCount > c.BestHitCount {
		c.BestHitCount = entry.HitCount
	}
	if entry.IsWinner {
		c.WinnerCount++
	}
}

func scoreEntry(label string, numbers []int, drawn map[int]struct{}, winThreshold int) EntryResult {
	hits := lo.Filter(sortedNumbers(numbers), func(n int, _ int) bool {
		_, ok := drawn[n]
		return ok
	})
	return EntryResult{
		Label:    label,
		Numbers:  sortedNumbers(numbers),
		Hits:     hits,
		HitCount: len(hits),
		IsWinner: winThreshold > 0 && len(hits) >= winThreshold,
	}
}

func sortedNumbers(numbers []int) []int {
	sorted := make([]int, len(numbers))
	copy(sorted, numbers)
	sort.Ints(sorted)
	return sorted
}
