package engine

import (
	"fmt"
	"sort"

	"github.com/ExudusTech/bolao-engine/lottery"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// generationState tracks everything one generation call needs to honor the
// non-duplication rules: the global signature set, one sequential cursor per
// ranked category, and the numbers already consumed by mixed games. It lives
// only for the duration of a single call; continuity across calls comes from
// the caller resubmitting exclusion keys.
type generationState struct {
	modality lottery.Modality
	analysis *lottery.Analysis
	existing map[string]struct{}

	cursors   map[lottery.Category]int
	mixedUsed map[int]struct{}
}

func newGenerationState(modality lottery.Modality, analysis *lottery.Analysis, existingKeys []string) *generationState {
	existing := make(map[string]struct{}, len(existingKeys))
	for _, key := range existingKeys {
		existing[key] = struct{}{}
	}
	return &generationState{
		modality:  modality,
		analysis:  analysis,
		existing:  existing,
		cursors:   make(map[lottery.Category]int),
		mixedUsed: make(map[int]struct{}),
	}
}

// categoryPool returns the full ordered pool for a cursor-driven category.
func (s *generationState) categoryPool(category lottery.Category) []int {
	switch category {
	case lottery.CategoryMostVoted:
		return s.analysis.MostVotedOrder()
	case lottery.CategoryLeastVoted:
		return s.analysis.LeastVotedOrder()
	case lottery.CategoryNotVoted:
		return s.analysis.NotVoted
	default:
		return nil
	}
}

// peek returns the next unconsumed slice of the category's pool without
// advancing the cursor. Returns false when fewer than size numbers remain.
func (s *generationState) peek(category lottery.Category, size int) ([]int, bool) {
	pool := s.categoryPool(category)
	cursor := s.cursors[category]
	if cursor+size > len(pool) {
		return nil, false
	}
	slice := make([]int, size)
	copy(slice, pool[cursor:cursor+size])
	return slice, true
}

// consume advances the category cursor past a slice returned by peek.
func (s *generationState) consume(category lottery.Category, size int) {
	s.cursors[category] += size
}

// peekMixed assembles a mixed candidate: ceil(size/2) numbers from the
// most-voted ordering and the remainder from the least-voted ordering,
// skipping anything a previous mixed game already used. Returns false when
// the combined pool cannot fill the game.
func (s *generationState) peekMixed(size int) ([]int, bool) {
	mostHalf := (size + 1) / 2

	picked := make([]int, 0, size)
	inCandidate := make(map[int]struct{}, size)

	for _, n := range s.analysis.MostVotedOrder() {
		if len(picked) == mostHalf {
			break
		}
		if _, used := s.mixedUsed[n]; used {
			continue
		}
		picked = append(picked, n)
		inCandidate[n] = struct{}{}
	}
	if len(picked) < mostHalf {
		return nil, false
	}

	for _, n := range s.analysis.LeastVotedOrder() {
		if len(picked) == size {
			break
		}
		if _, used := s.mixedUsed[n]; used {
			continue
		}
		if _, dup := inCandidate[n]; dup {
			continue
		}
		picked = append(picked, n)
		inCandidate[n] = struct{}{}
	}
	if len(picked) < size {
		return nil, false
	}
	return picked, true
}

// consumeMixed marks a mixed candidate's numbers as used.
func (s *generationState) consumeMixed(numbers []int) {
	for _, n := range numbers {
		s.mixedUsed[n] = struct{}{}
	}
}

// isDuplicate reports whether the candidate collides with a bet, a saved
// game or a game generated earlier in this session.
func (s *generationState) isDuplicate(numbers []int) bool {
	_, dup := s.existing[lottery.GameKey(numbers)]
	return dup
}

// register adds an accepted game's signature to the session exclusion set.
func (s *generationState) register(numbers []int) {
	s.existing[lottery.GameKey(numbers)] = struct{}{}
}

// buildGame assembles a SuggestedGame from an accepted candidate.
func buildGame(numbers []int, size int, category lottery.Category, cost decimal.Decimal) lottery.SuggestedGame {
	return lottery.SuggestedGame{
		ID:       uuid.New().String(),
		Numbers:  sortedCopy(numbers),
		Cost:     cost,
		Type:     lottery.GameTypeLabel(size),
		Reason:   reasonFor(category, size),
		Category: category,
	}
}

// reasonFor builds the human-readable justification shown next to each game.
func reasonFor(category lottery.Category, size int) string {
	switch category {
	case lottery.CategoryMostVoted:
		return fmt.Sprintf("Jogo com os %d números mais votados do bolão", size)
	case lottery.CategoryLeastVoted:
		return fmt.Sprintf("Jogo com os %d números menos votados do bolão", size)
	case lottery.CategoryNotVoted:
		return fmt.Sprintf("Jogo com %d números que ninguém escolheu", size)
	case lottery.CategoryMixed:
		mostHalf := (size + 1) / 2
		return fmt.Sprintf("Jogo misto com %d números mais votados e %d menos votados", mostHalf, size-mostHalf)
	default:
		return fmt.Sprintf("Jogo de %d dezenas", size)
	}
}

// shortfallReason explains a budget skip.
func shortfallReason(size int, price, remaining decimal.Decimal) string {
	return fmt.Sprintf("Saldo insuficiente: jogo de %d dezenas custa R$ %s e restam R$ %s",
		size, price.StringFixed(2), remaining.StringFixed(2))
}

func sortedCopy(numbers []int) []int {
	sorted := make([]int, len(numbers))
	copy(sorted, numbers)
	sort.Ints(sorted)
	return sorted
}
