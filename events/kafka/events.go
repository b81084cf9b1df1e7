package kafka

import (
	"time"

	"github.com/shopspring/decimal"
)

// Default topic names, overridable through config.
const (
	TopicSuggestionsGenerated = "bolao.suggestions.generated"
	TopicResultsChecked       = "bolao.results.checked"
)

// SuggestionsGeneratedEvent is published after a bulk generation call.
type SuggestionsGeneratedEvent struct {
	PoolCode        string          `json:"pool_code"`
	Lottery         string          `json:"lottery"`
	Mode            string          `json:"mode"`
	SuggestionCount int             `json:"suggestion_count"`
	SkippedCount    int             `json:"skipped_count"`
	TotalCost       decimal.Decimal `json:"total_cost"`
	GeneratedAt     time.Time       `json:"generated_at"`
}

// ResultsCheckedEvent is published after a pool was checked against an
// official draw.
type ResultsCheckedEvent struct {
	PoolCode     string    `json:"pool_code"`
	Lottery      string    `json:"lottery"`
	Contest      int       `json:"contest"`
	BestHitCount int       `json:"best_hit_count"`
	WinnerCount  int       `json:"winner_count"`
	CheckedAt    time.Time `json:"checked_at"`
}
