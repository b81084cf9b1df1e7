package engine

import (
	"math/rand"

	"github.com/ExudusTech/bolao-engine/lottery"
)

// maxCustomAttempts bounds the retry loop of the ad hoc generator.
const maxCustomAttempts = 30

// CustomRequest asks for exactly one game of one size and category.
type CustomRequest struct {
	Modality lottery.Modality
	Analysis *lottery.Analysis
	Size     int
	Category lottery.Category
	// ExistingKeys are signatures of every combination already present in
	// the pool, including games produced by earlier ad hoc calls.
	ExistingKeys []string
	// UsedNumbers are numbers already consumed by earlier ad hoc games of
	// this same criteria; they are excluded from the candidate pool.
	UsedNumbers []int
	// Seed drives the shuffle of the not-voted pool so repeated calls are
	// reproducible. The other categories are fully deterministic.
	Seed int64
}

// GenerateOne builds a single ad hoc game, retrying with an increasing skip
// offset into the relevant ranking until it finds a combination not yet
// present in the pool. Returns nil when the pool is too small or every
// attempt collided. Affordability is the caller's check.
func GenerateOne(req CustomRequest) *lottery.SuggestedGame {
	price, ok := req.Modality.PriceFor(req.Size)
	if !ok {
		return nil
	}

	existing := make(map[string]struct{}, len(req.ExistingKeys))
	for _, key := range req.ExistingKeys {
		existing[key] = struct{}{}
	}
	used := make(map[int]struct{}, len(req.UsedNumbers))
	for _, n := range req.UsedNumbers {
		used[n] = struct{}{}
	}

	rng := rand.New(rand.NewSource(req.Seed))

	for attempt := 0; attempt < maxCustomAttempts; attempt++ {
		skip := attempt * (req.Size / 2)

		var numbers []int
		var feasible bool
		switch req.Category {
		case lottery.CategoryMostVoted:
			numbers, feasible = rankedCandidate(req.Analysis.MostVotedOrder(), used, req.Size, skip)
		case lottery.CategoryLeastVoted:
			numbers, feasible = rankedCandidate(req.Analysis.LeastVotedOrder(), used, req.Size, skip)
		case lottery.CategoryNotVoted:
			numbers, feasible = shuffledCandidate(req.Analysis.NotVoted, used, req.Size, rng)
		case lottery.CategoryMixed:
			numbers, feasible = mixedCandidate(req.Analysis, used, req.Size, skip)
		default:
			return nil
		}
		if !feasible {
			return nil
		}

		if _, dup := existing[lottery.GameKey(numbers)]; dup {
			continue
		}

		game := buildGame(numbers, req.Size, req.Category, price)
		return &game
	}

	return nil
}

// rankedCandidate takes size numbers from the pool starting at skip,
// excluding used numbers. The skip is clamped so late attempts still yield a
// full slice from the tail of the pool.
func rankedCandidate(pool []int, used map[int]struct{}, size, skip int) ([]int, bool) {
	available := filterUsed(pool, used)
	if len(available) < size {
		return nil, false
	}
	if skip+size > len(available) {
		skip = len(available) - size
	}
	slice := make([]int, size)
	copy(slice, available[skip:skip+size])
	return slice, true
}

// shuffledCandidate shuffles the pool and takes the first size numbers.
// There is no meaningful ranking among untouched numbers, so a seeded
// shuffle is how attempts differ.
func shuffledCandidate(pool []int, used map[int]struct{}, size int, rng *rand.Rand) ([]int, bool) {
	available := filterUsed(pool, used)
	if len(available) < size {
		return nil, false
	}
	rng.Shuffle(len(available), func(i, j int) {
		available[i], available[j] = available[j], available[i]
	})
	slice := make([]int, size)
	copy(slice, available[:size])
	return slice, true
}

// mixedCandidate takes ceil(size/2) from the most-voted ordering and the
// remainder from the least-voted ordering, both offset by skip.
func mixedCandidate(analysis *lottery.Analysis, used map[int]struct{}, size, skip int) ([]int, bool) {
	mostHalf := (size + 1) / 2

	most := filterUsed(analysis.MostVotedOrder(), used)
	least := filterUsed(analysis.LeastVotedOrder(), used)

	mostPart, ok := clampedSlice(most, mostHalf, skip)
	if !ok {
		return nil, false
	}
	inCandidate := make(map[int]struct{}, size)
	for _, n := range mostPart {
		inCandidate[n] = struct{}{}
	}

	rest := size - mostHalf
	leastSkip := skip
	if leastSkip+rest > len(least) {
		leastSkip = max(len(least)-rest, 0)
	}

	candidate := append([]int{}, mostPart...)
	for _, n := range least[leastSkip:] {
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
	return candidate, true
}

func clampedSlice(pool []int, size, skip int) ([]int, bool) {
	if len(pool) < size {
		return nil, false
	}
	if skip+size > len(pool) {
		skip = len(pool) - size
	}
	slice := make([]int, size)
	copy(slice, pool[skip:skip+size])
	return slice, true
}

func filterUsed(pool []int, used map[int]struct{}) []int {
	filtered := make([]int, 0, len(pool))
	for _, n := range pool {
		if _, ok := used[n]; !ok {
			filtered = append(filtered, n)
		}
	}
	return filtered
}
