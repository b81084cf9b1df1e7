package lottery

import (
	"fmt"
	"sort"
)

// rankingWindow is how many entries the most/least voted views expose. When
// fewer than 2*rankingWindow distinct numbers were voted the two windows
// overlap at the boundary; that is expected and covered by tests.
const rankingWindow = 20

// RankingEntry is one number with its vote count.
type RankingEntry struct {
	Number int `json:"number"`
	Votes  int `json:"votes"`
}

// Analysis is the vote-frequency breakdown of a pool's bets.
//
// FullRanking has exactly NumberRange entries, every number in the range,
// sorted by votes descending then number ascending. MostVoted and LeastVoted
// are top-20 windows over the voted subset only; numbers nobody picked are
// never "least voted" — they live in NotVoted.
type Analysis struct {
	NumberRange int            `json:"number_range"`
	FullRanking []RankingEntry `json:"full_ranking"`
	MostVoted   []RankingEntry `json:"most_voted"`
	LeastVoted  []RankingEntry `json:"least_voted"`
	NotVoted    []int          `json:"not_voted"`

	// Full orderings over the voted subset, used by the generation engine.
	// Not serialized: the engine always runs against a freshly built Analysis.
	votedDesc []int
	votedAsc  []int
}

// Analyze counts votes for every number in [1, numberRange] across all bets
// and builds the canonical rankings. Pure function, no failure modes beyond
// input validation.
func Analyze(bets []Bet, numberRange int) (*Analysis, error) {
	if numberRange < 1 {
		return nil, fmt.Errorf("number range must be positive, got %d", numberRange)
	}

	counts := make(map[int]int, numberRange)
	for n := 1; n <= numberRange; n++ {
		counts[n] = 0
	}
	for _, bet := range bets {
		for _, n := range bet.Numbers {
			if n < 1 || n > numberRange {
				return nil, fmt.Errorf("bet %q has number %d outside range 1..%d", bet.Nickname, n, numberRange)
			}
			counts[n]++
		}
	}

	full := make([]RankingEntry, 0, numberRange)
	for n := 1; n <= numberRange; n++ {
		full = append(full, RankingEntry{Number: n, Votes: counts[n]})
	}
	sort.SliceStable(full, func(i, j int) bool {
		if full[i].Votes != full[j].Votes {
			return full[i].Votes > full[j].Votes
		}
		return full[i].Number < full[j].Number
	})

	var voted []RankingEntry
	var notVoted []int
	for _, entry := range full {
		if entry.Votes > 0 {
			voted = append(voted, entry)
		} else {
			notVoted = append(notVoted, entry.Number)
		}
	}
	sort.Ints(notVoted)

	// voted is already (votes desc, number asc); re-sort a copy ascending.
	votedAscEntries := make([]RankingEntry, len(voted))
	copy(votedAscEntries, voted)
	sort.SliceStable(votedAscEntries, func(i, j int) bool {
		if votedAscEntries[i].Votes != votedAscEntries[j].Votes {
			return votedAscEntries[i].Votes < votedAscEntries[j].Votes
		}
		return votedAscEntries[i].Number < votedAscEntries[j].Number
	})

	analysis := &Analysis{
		NumberRange: numberRange,
		FullRanking: full,
		MostVoted:   windowOf(voted),
		LeastVoted:  windowOf(votedAscEntries),
		NotVoted:    notVoted,
		votedDesc:   numbersOf(voted),
		votedAsc:    numbersOf(votedAscEntries),
	}
	return analysis, nil
}

// MostVotedOrder returns every voted number, most voted first.
func (a *Analysis) MostVotedOrder() []int {
	return a.votedDesc
}

// LeastVotedOrder returns every voted number, least voted first.
func (a *Analysis) LeastVotedOrder() []int {
	return a.votedAsc
}

// VotedCount returns how many distinct numbers received at least one vote.
func (a *Analysis) VotedCount() int {
	return len(a.votedDesc)
}

func windowOf(entries []RankingEntry) []RankingEntry {
	if len(entries) > rankingWindow {
		entries = entries[:rankingWindow]
	}
	window := make([]RankingEntry, len(entries))
	copy(window, entries)
	return window
}

func numbersOf(entries []RankingEntry) []int {
	numbers := make([]int, len(entries))
	for i, e := range entries {
		numbers[i] = e.Number
	}
	return numbers
}
