package engine

import (
	"sort"

	"github.com/ExudusTech/bolao-engine/lottery"
	"github.com/shopspring/decimal"
)

// maxMixedOffsetRetries bounds the offset walk used to keep mixed games of
// different sizes from collapsing into one another.
const maxMixedOffsetRetries = 10

// Selection is an explicit caller request: how many games of one size and
// category to produce.
type Selection struct {
	Size     int              `json:"size"`
	Category lottery.Category `json:"category"`
	Quantity int              `json:"quantity"`
}

// SelectionsRequest carries the input of an explicit-selection call.
type SelectionsRequest struct {
	Modality     lottery.Modality
	Analysis     *lottery.Analysis
	Budget       decimal.Decimal
	Selections   []Selection
	ExistingKeys []string
}

// GenerateFromSelections produces exactly what the caller asked for, largest
// sizes first. Most/least voted picks are deliberately the fixed top-N slice
// of the ranking; the duplicate-signature set is the safety net against
// meaningless repeat requests. Mixed games walk an increasing offset into
// both rankings and additionally reject candidates that are a pure subset of
// a mixed game already accepted this session.
func GenerateFromSelections(req SelectionsRequest) *Result {
	state := newGenerationState(req.Modality, req.Analysis, req.ExistingKeys)
	gen := &generator{
		state:     state,
		modality:  req.Modality,
		remaining: req.Budget,
		skipSeen:  make(map[string]struct{}),
	}

	selections := make([]Selection, len(req.Selections))
	copy(selections, req.Selections)
	sort.SliceStable(selections, func(i, j int) bool {
		return selections[i].Size > selections[j].Size
	})

	var acceptedMixed [][]int

	for _, sel := range selections {
		price, ok := req.Modality.PriceFor(sel.Size)
		if !ok {
			continue
		}

		for i := 0; i < sel.Quantity; i++ {
			var numbers []int
			var feasible bool

			switch sel.Category {
			case lottery.CategoryMostVoted:
				numbers, feasible = topSlice(req.Analysis.MostVotedOrder(), sel.Size)
			case lottery.CategoryLeastVoted:
				numbers, feasible = topSlice(req.Analysis.LeastVotedOrder(), sel.Size)
			case lottery.CategoryNotVoted:
				numbers, feasible = topSlice(req.Analysis.NotVoted, sel.Size)
			case lottery.CategoryMixed:
				numbers, feasible = mixedWithOffset(req.Analysis, sel.Size, state, acceptedMixed)
			default:
				feasible = false
			}
			if !feasible {
				// Feasibility failure: silently yields nothing for this
				// iteration.
				continue
			}

			if price.GreaterThan(gen.remaining) {
				gen.recordSkip(sel.Size, sel.Category, price)
				break
			}

			if state.isDuplicate(numbers) {
				continue
			}

			game := buildGame(numbers, sel.Size, sel.Category, price)
			state.register(numbers)
			gen.suggestions = append(gen.suggestions, game)
			gen.remaining = gen.remaining.Sub(price)
			gen.spent = gen.spent.Add(price)

			if sel.Category == lottery.CategoryMixed {
				acceptedMixed = append(acceptedMixed, game.Numbers)
			}
		}
	}

	sortSuggestions(gen.suggestions)

	return &Result{
		Suggestions: gen.suggestions,
		Skipped:     gen.skipped,
		TotalCost:   gen.spent,
	}
}

// topSlice returns the first size numbers of pool, or false when the pool is
// too short.
func topSlice(pool []int, size int) ([]int, bool) {
	if len(pool) < size {
		return nil, false
	}
	slice := make([]int, size)
	copy(slice, pool[:size])
	return slice, true
}

// mixedWithOffset builds a mixed candidate, retrying with an increasing
// offset into both rankings until it finds one that is neither an exact
// duplicate nor a subset of a mixed game accepted earlier this session.
func mixedWithOffset(analysis *lottery.Analysis, size int, state *generationState, acceptedMixed [][]int) ([]int, bool) {
	mostHalf := (size + 1) / 2
	most := analysis.MostVotedOrder()
	least := analysis.LeastVotedOrder()

	for offset := 0; offset < maxMixedOffsetRetries; offset++ {
		candidate := make([]int, 0, size)
		inCandidate := make(map[int]struct{}, size)

		for _, n := range sliceFrom(most, offset) {
			if len(candidate) == mostHalf {
				break
			}
			candidate = append(candidate, n)
			inCandidate[n] = struct{}{}
		}
		if len(candidate) < mostHalf {
			return nil, false
		}

		for _, n := range sliceFrom(least, offset) {
			if len(candidate) == size {
				break
			}
			if _, dup := inCandidate[n]; dup {
				continue
			}
			candidate = append(candidate, n)
			inCandidate[n] = struct{}{}
		}
		if len(candidate) < size {
			return nil, false
		}

		if state.isDuplicate(candidate) {
			continue
		}
		if isSubsetOfAny(candidate, acceptedMixed) {
			continue
		}
		return candidate, true
	}
	return nil, false
}

func sliceFrom(pool []int, offset int) []int {
	if offset >= len(pool) {
		return nil
	}
	return pool[offset:]
}

// isSubsetOfAny reports whether every number of candidate appears in one of
// the accepted games. Subset games are rejected even when their signature
// differs from every accepted game.
func isSubsetOfAny(candidate []int, accepted [][]int) bool {
	for _, game := range accepted {
		inGame := make(map[int]struct{}, len(game))
		for _, n := range game {
			inGame[n] = struct{}{}
		}
		subset := true
		for _, n := range candidate {
			if _, ok := inGame[n]; !ok {
				subset = false
				break
			}
		}
		if subset {
			return true
		}
	}
	return false
}
