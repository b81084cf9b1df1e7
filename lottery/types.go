package lottery

import (
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
)

// Category classifies how a suggested game is built from the vote ranking.
type Category string

const (
	CategoryMostVoted  Category = "most_voted"
	CategoryLeastVoted Category = "least_voted"
	CategoryNotVoted   Category = "not_voted"
	CategoryMixed      Category = "mixed"
)

// Categories lists all categories in presentation priority order.
var Categories = []Category{CategoryMostVoted, CategoryLeastVoted, CategoryNotVoted, CategoryMixed}

var categoryPriority = map[Category]int{
	CategoryMostVoted:  0,
	CategoryLeastVoted: 1,
	CategoryNotVoted:   2,
	CategoryMixed:      3,
}

// Valid reports whether c is a known category.
func (c Category) Valid() bool {
	_, ok := categoryPriority[c]
	return ok
}

// Priority returns the presentation priority of the category (lower first).
func (c Category) Priority() int {
	return categoryPriority[c]
}

// Bet is an individual participant bet recorded in the pool.
type Bet struct {
	Nickname string `json:"nickname"`
	Numbers  []int  `json:"numbers"`
}

// Validate checks the bet against the modality rules. A bet always has the
// minimum game size for its modality and never repeats a number.
func (b Bet) Validate(m Modality) error {
	if len(b.Numbers) != m.MinGameSize {
		return fmt.Errorf("bet %q has %d numbers, modality %s requires %d", b.Nickname, len(b.Numbers), m.Code, m.MinGameSize)
	}
	seen := make(map[int]struct{}, len(b.Numbers))
	for _, n := range b.Numbers {
		if n < 1 || n > m.NumberRange {
			return fmt.Errorf("bet %q has number %d outside range 1..%d", b.Nickname, n, m.NumberRange)
		}
		if _, dup := seen[n]; dup {
			return fmt.Errorf("bet %q repeats number %d", b.Nickname, n)
		}
		seen[n] = struct{}{}
	}
	return nil
}

// Key returns the canonical signature of the bet's numbers.
func (b Bet) Key() string {
	return GameKey(b.Numbers)
}

// SuggestedGame is a generated candidate game.
type SuggestedGame struct {
	ID       string          `json:"id"`
	Numbers  []int           `json:"numbers"`
	Cost     decimal.Decimal `json:"cost"`
	Type     string          `json:"type"`
	Reason   string          `json:"reason"`
	Category Category        `json:"category"`
}

// Key returns the canonical signature of the game's numbers.
func (g SuggestedGame) Key() string {
	return GameKey(g.Numbers)
}

// SkippedGame records a size/category combination that could not be afforded.
type SkippedGame struct {
	Size     int             `json:"size"`
	Category Category        `json:"category"`
	Price    decimal.Decimal `json:"price"`
	Reason   string          `json:"reason"`
}

// GameKey builds the canonical signature for a set of numbers: sorted
// ascending and joined with dashes. Two games with the same numbers always
// produce the same key regardless of input order.
func GameKey(numbers []int) string {
	sorted := make([]int, len(numbers))
	copy(sorted, numbers)
	sort.Ints(sorted)

	parts := make([]string, len(sorted))
	for i, n := range sorted {
		parts[i] = strconv.Itoa(n)
	}
	return strings.Join(parts, "-")
}

// GameTypeLabel is the display label for a game of the given size.
func GameTypeLabel(size int) string {
	return fmt.Sprintf("%d dezenas", size)
}
