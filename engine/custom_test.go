package engine

import (
	"reflect"
	"testing"

	"github.com/ExudusTech/bolao-engine/lottery"
)

func TestGenerateOneRankedCategories(t *testing.T) {
	tests := []struct {
		name     string
		category lottery.Category
		wantKey  string
	}{
		{
			name:     "most voted",
			category: lottery.CategoryMostVoted,
			wantKey:  "1-2-3",
		},
		{
			name:     "least voted",
			category: lottery.CategoryLeastVoted,
			wantKey:  "3-4-5",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			game := GenerateOne(CustomRequest{
				Modality: testModality(),
				Analysis: testAnalysis(t),
				Size:     3,
				Category: tt.category,
			})

			if game == nil {
				t.Fatal("expected a game, got nil")
			}
			if got := game.Key(); got != tt.wantKey {
				t.Errorf("game key = %q, want %q", got, tt.wantKey)
			}
			if game.Category != tt.category {
				t.Errorf("game category = %s, want %s", game.Category, tt.category)
			}
		})
	}
}

func TestGenerateOneMixed(t *testing.T) {
	game := GenerateOne(CustomRequest{
		Modality: testModality(),
		Analysis: testAnalysis(t),
		Size:     4,
		Category: lottery.CategoryMixed,
	})

	if game == nil {
		t.Fatal("expected a game, got nil")
	}
	// ceil(4/2) from the top of the most-voted ranking plus the bottom two.
	if got := game.Key(); got != "1-2-3-4" {
		t.Errorf("game key = %q, want %q", got, "1-2-3-4")
	}
}

func TestGenerateOneRetriesPastCollisions(t *testing.T) {
	game := GenerateOne(CustomRequest{
		Modality:     testModality(),
		Analysis:     testAnalysis(t),
		Size:         3,
		Category:     lottery.CategoryMostVoted,
		ExistingKeys: []string{"1-2-3"},
	})

	if game == nil {
		t.Fatal("expected a game, got nil")
	}
	if got := game.Key(); got == "1-2-3" {
		t.Error("returned a combination already in the pool")
	}
}

func TestGenerateOneExcludesUsedNumbers(t *testing.T) {
	game := GenerateOne(CustomRequest{
		Modality:    testModality(),
		Analysis:    testAnalysis(t),
		Size:        3,
		Category:    lottery.CategoryMostVoted,
		UsedNumbers: []int{1, 2},
	})

	if game == nil {
		t.Fatal("expected a game, got nil")
	}
	for _, n := range game.Numbers {
		if n == 1 || n == 2 {
			t.Errorf("game %v contains a used number", game.Numbers)
		}
	}
	if got := game.Key(); got != "3-4-5" {
		t.Errorf("game key = %q, want %q", got, "3-4-5")
	}
}

func TestGenerateOneNilWhenPoolTooSmall(t *testing.T) {
	tests := []struct {
		name string
		req  CustomRequest
	}{
		{
			name: "not voted pool smaller than game",
			req: CustomRequest{
				Size:     3,
				Category: lottery.CategoryNotVoted,
				// Used numbers shrink the 4-number pool below the game size.
				UsedNumbers: []int{7, 8},
			},
		},
		{
			name: "unpriced size",
			req: CustomRequest{
				Size:     5,
				Category: lottery.CategoryMostVoted,
			},
		},
		{
			name: "unknown category",
			req: CustomRequest{
				Size:     3,
				Category: lottery.Category("random"),
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.req.Modality = testModality()
			tt.req.Analysis = testAnalysis(t)
			if game := GenerateOne(tt.req); game != nil {
				t.Errorf("expected nil, got %v", game.Numbers)
			}
		})
	}
}

func TestGenerateOneNotVotedIsSeeded(t *testing.T) {
	req := CustomRequest{
		Modality: testModality(),
		Analysis: testAnalysis(t),
		Size:     3,
		Category: lottery.CategoryNotVoted,
		Seed:     42,
	}

	first := GenerateOne(req)
	second := GenerateOne(req)
	if first == nil || second == nil {
		t.Fatal("expected games, got nil")
	}
	if !reflect.DeepEqual(first.Numbers, second.Numbers) {
		t.Errorf("same seed produced different games: %v vs %v", first.Numbers, second.Numbers)
	}

	// Every number must come from the untouched pool.
	notVoted := map[int]struct{}{7: {}, 8: {}, 9: {}, 10: {}}
	for _, n := range first.Numbers {
		if _, ok := notVoted[n]; !ok {
			t.Errorf("number %d was voted, not-voted game must avoid it", n)
		}
	}
}

func TestGenerateOneNilWhenEverythingCollides(t *testing.T) {
	// Only one 4-number not-voted combination exists; excluding it leaves
	// nothing for any attempt.
	game := GenerateOne(CustomRequest{
		Modality:     testModality(),
		Analysis:     testAnalysis(t),
		Size:         4,
		Category:     lottery.CategoryNotVoted,
		ExistingKeys: []string{"7-8-9-10"},
	})
	if game != nil {
		t.Errorf("expected nil, got %v", game.Numbers)
	}
}
