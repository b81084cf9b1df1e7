// Package engine generates candidate lottery games from a pool's vote
// analysis without exceeding the pool's spending budget and without ever
// repeating a combination already present in the pool (individual bets,
// previously saved games or games generated earlier in the same session).
//
// The engine is pure: it receives the full input on every call and keeps no
// state between calls. Budget failures are reported as SkippedGame records;
// feasibility failures (not enough numbers in a category) are skipped
// silently; duplicate candidates are discarded silently.
package engine

import (
	"fmt"
	"sort"

	"github.com/ExudusTech/bolao-engine/lottery"
	"github.com/shopspring/decimal"
)

// maxFillPasses bounds the exhaustive fill phase so generation always
// terminates even if cursors stop making progress.
const maxFillPasses = 50

// Request carries the input of an automatic generation call.
type Request struct {
	Modality lottery.Modality
	Analysis *lottery.Analysis
	Budget   decimal.Decimal
	// ExistingKeys are signatures of every combination already present in
	// the pool. The caller owns continuity across calls.
	ExistingKeys []string
}

// Result is the outcome of a generation call.
type Result struct {
	Suggestions []lottery.SuggestedGame `json:"suggestions"`
	Skipped     []lottery.SkippedGame   `json:"skipped"`
	TotalCost   decimal.Decimal         `json:"total_cost"`
}

// Generate runs automatic generation: phase 1 guarantees one game per
// priority category per size (largest first), phase 2 fills the remaining
// budget across all four categories. Deterministic for identical inputs.
func Generate(req Request) *Result {
	state := newGenerationState(req.Modality, req.Analysis, req.ExistingKeys)
	gen := &generator{
		state:     state,
		modality:  req.Modality,
		remaining: req.Budget,
		skipSeen:  make(map[string]struct{}),
	}

	sizes := req.Modality.Sizes()

	// Phase 1: one game per priority category per size, larger sizes first.
	for _, category := range []lottery.Category{lottery.CategoryMostVoted, lottery.CategoryLeastVoted} {
		for _, size := range sizes {
			gen.attempt(size, category)
		}
	}

	// Phase 2: keep filling until a full pass adds nothing or the remaining
	// budget cannot buy even the cheapest game.
	cheapest := req.Modality.CheapestPrice()
	for pass := 0; pass < maxFillPasses; pass++ {
		if gen.remaining.LessThan(cheapest) {
			break
		}
		added := false
		for _, size := range sizes {
			for _, category := range lottery.Categories {
				if gen.attempt(size, category) {
					added = true
				}
			}
		}
		if !added {
			break
		}
	}

	sortSuggestions(gen.suggestions)

	return &Result{
		Suggestions: gen.suggestions,
		Skipped:     gen.skipped,
		TotalCost:   gen.spent,
	}
}

// generator accumulates output while walking sizes and categories.
type generator struct {
	state     *generationState
	modality  lottery.Modality
	remaining decimal.Decimal
	spent     decimal.Decimal

	suggestions []lottery.SuggestedGame
	skipped     []lottery.SkippedGame
	skipSeen    map[string]struct{}
}

// attempt tries to build exactly one game of the given size and category.
// Returns true only when a game was accepted. Budget failures are recorded
// once per size/category pair; feasibility failures and duplicates are
// silent.
func (g *generator) attempt(size int, category lottery.Category) bool {
	price, ok := g.modality.PriceFor(size)
	if !ok {
		return false
	}

	// Feasibility comes first: a combination that cannot be built at all is
	// never a budget failure.
	var numbers []int
	var feasible bool
	if category == lottery.CategoryMixed {
		numbers, feasible = g.state.peekMixed(size)
	} else {
		numbers, feasible = g.state.peek(category, size)
	}
	if !feasible {
		return false
	}

	if price.GreaterThan(g.remaining) {
		g.recordSkip(size, category, price)
		return false
	}

	// The slice is consumed even if the candidate turns out to be a
	// duplicate, so the next attempt moves on to fresh numbers.
	if category == lottery.CategoryMixed {
		g.state.consumeMixed(numbers)
	} else {
		g.state.consume(category, size)
	}

	if g.state.isDuplicate(numbers) {
		return false
	}

	game := buildGame(numbers, size, category, price)
	g.state.register(numbers)
	g.suggestions = append(g.suggestions, game)
	g.remaining = g.remaining.Sub(price)
	g.spent = g.spent.Add(price)
	return true
}

// recordSkip registers a budget failure, at most once per size/category.
func (g *generator) recordSkip(size int, category lottery.Category, price decimal.Decimal) {
	key := fmt.Sprintf("%d:%s", size, category)
	if _, seen := g.skipSeen[key]; seen {
		return
	}
	g.skipSeen[key] = struct{}{}
	g.skipped = append(g.skipped, lottery.SkippedGame{
		Size:     size,
		Category: category,
		Price:    price,
		Reason:   shortfallReason(size, price, g.remaining),
	})
}

// sortSuggestions orders games for presentation: category priority first,
// then larger games first. Generation order is unaffected.
func sortSuggestions(suggestions []lottery.SuggestedGame) {
	sort.SliceStable(suggestions, func(i, j int) bool {
		if suggestions[i].Category != suggestions[j].Category {
			return suggestions[i].Category.Priority() < suggestions[j].Category.Priority()
		}
		return len(suggestions[i].Numbers) > len(suggestions[j].Numbers)
	})
}
