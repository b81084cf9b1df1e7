package lottery

import (
	"fmt"
	"sort"

	"github.com/samber/lo"
	"github.com/shopspring/decimal"
)

// Modality describes one lottery type: its number range, the game sizes a
// player may buy and the price of each size.
type Modality struct {
	Code        string                  `json:"code"`
	Name        string                  `json:"name"`
	NumberRange int                     `json:"number_range"`
	MinGameSize int                     `json:"min_game_size"`
	MaxGameSize int                     `json:"max_game_size"`
	Pricing     map[int]decimal.Decimal `json:"pricing"`
}

// Validate checks the modality definition is coherent.
func (m Modality) Validate() error {
	if m.Code == "" {
		return fmt.Errorf("modality code is required")
	}
	if m.NumberRange < 1 {
		return fmt.Errorf("modality %s: number_range must be positive, got %d", m.Code, m.NumberRange)
	}
	if m.MinGameSize < 1 || m.MinGameSize > m.MaxGameSize {
		return fmt.Errorf("modality %s: invalid game size bounds %d..%d", m.Code, m.MinGameSize, m.MaxGameSize)
	}
	if m.MaxGameSize > m.NumberRange {
		return fmt.Errorf("modality %s: max game size %d exceeds number range %d", m.Code, m.MaxGameSize, m.NumberRange)
	}
	if len(m.Pricing) == 0 {
		return fmt.Errorf("modality %s: pricing table is empty", m.Code)
	}
	if _, ok := m.Pricing[m.MinGameSize]; !ok {
		return fmt.Errorf("modality %s: pricing table has no price for minimum size %d", m.Code, m.MinGameSize)
	}
	for size, price := range m.Pricing {
		if size < m.MinGameSize || size > m.MaxGameSize {
			return fmt.Errorf("modality %s: priced size %d outside bounds %d..%d", m.Code, size, m.MinGameSize, m.MaxGameSize)
		}
		if !price.IsPositive() {
			return fmt.Errorf("modality %s: price for size %d must be positive, got %s", m.Code, size, price)
		}
	}
	return nil
}

// Sizes returns the priced game sizes in descending order. Generation always
// tries larger games first.
func (m Modality) Sizes() []int {
	sizes := lo.Keys(m.Pricing)
	sort.Sort(sort.Reverse(sort.IntSlice(sizes)))
	return sizes
}

// PriceFor returns the price of a game with the given size.
func (m Modality) PriceFor(size int) (decimal.Decimal, bool) {
	price, ok := m.Pricing[size]
	return price, ok
}

// CheapestPrice returns the lowest price in the pricing table.
func (m Modality) CheapestPrice() decimal.Decimal {
	cheapest := decimal.Zero
	for _, price := range m.Pricing {
		if cheapest.IsZero() || price.LessThan(cheapest) {
			cheapest = price
		}
	}
	return cheapest
}

// SupportsSize reports whether a game of the given size can be bought.
func (m Modality) SupportsSize(size int) bool {
	_, ok := m.Pricing[size]
	return ok
}
