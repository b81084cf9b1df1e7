package engine

import (
	"reflect"
	"testing"

	"github.com/ExudusTech/bolao-engine/lottery"
	"github.com/shopspring/decimal"
)

// testModality prices games of 3 and 4 numbers over a 1..10 range.
func testModality() lottery.Modality {
	return lottery.Modality{
		Code:        "mini",
		Name:        "Mini",
		NumberRange: 10,
		MinGameSize: 3,
		MaxGameSize: 4,
		Pricing: map[int]decimal.Decimal{
			3: decimal.RequireFromString("2.50"),
			4: decimal.RequireFromString("5.00"),
		},
	}
}

// testAnalysis builds a fixed ranking:
//
//	votes:      1:3  2:2  3:1  4:1  5:1  6:1
//	most voted: 1 2 3 4 5 6
//	least voted: 3 4 5 6 1 2
//	not voted:  7 8 9 10
func testAnalysis(t *testing.T) *lottery.Analysis {
	t.Helper()
	bets := []lottery.Bet{
		{Nickname: "a", Numbers: []int{1, 2, 3}},
		{Nickname: "b", Numbers: []int{1, 2, 4}},
		{Nickname: "c", Numbers: []int{1, 5, 6}},
	}
	analysis, err := lottery.Analyze(bets, 10)
	if err != nil {
		t.Fatalf("Analyze() error = %v", err)
	}
	return analysis
}

func keysOf(games []lottery.SuggestedGame) []string {
	keys := make([]string, len(games))
	for i, g := range games {
		keys[i] = g.Key()
	}
	return keys
}

func TestGenerateFillsBudget(t *testing.T) {
	result := Generate(Request{
		Modality: testModality(),
		Analysis: testAnalysis(t),
		Budget:   decimal.RequireFromString("20.00"),
	})

	// Phase 1 yields the top-4 most voted and top-4 least voted; the fill
	// phase adds the not-voted game. Mixed collapses into the most-voted
	// signature and is discarded.
	want := []string{"1-2-3-4", "3-4-5-6", "7-8-9-10"}
	if got := keysOf(result.Suggestions); !reflect.DeepEqual(got, want) {
		t.Errorf("suggestion keys = %v, want %v", got, want)
	}

	wantCost := decimal.RequireFromString("15.00")
	if !result.TotalCost.Equal(wantCost) {
		t.Errorf("TotalCost = %s, want %s", result.TotalCost, wantCost)
	}
	if len(result.Skipped) != 0 {
		t.Errorf("expected no skips, got %v", result.Skipped)
	}
}

func TestGenerateNeverExceedsBudget(t *testing.T) {
	budgets := []string{"0.00", "2.50", "4.00", "7.50", "12.00", "100.00"}
	for _, raw := range budgets {
		budget := decimal.RequireFromString(raw)
		result := Generate(Request{
			Modality: testModality(),
			Analysis: testAnalysis(t),
			Budget:   budget,
		})
		if result.TotalCost.GreaterThan(budget) {
			t.Errorf("budget %s: TotalCost %s exceeds budget", budget, result.TotalCost)
		}

		sum := decimal.Zero
		for _, game := range result.Suggestions {
			sum = sum.Add(game.Cost)
		}
		if !sum.Equal(result.TotalCost) {
			t.Errorf("budget %s: cost sum %s != TotalCost %s", budget, sum, result.TotalCost)
		}
	}
}

func TestGenerateRecordsBudgetSkips(t *testing.T) {
	result := Generate(Request{
		Modality: testModality(),
		Analysis: testAnalysis(t),
		Budget:   decimal.RequireFromString("4.00"),
	})

	// 4.00 buys one 3-number game; every constructible 4-number attempt is a
	// budget failure, recorded once per size/category pair.
	if len(result.Suggestions) != 1 {
		t.Fatalf("expected 1 suggestion, got %d", len(result.Suggestions))
	}
	if got := result.Suggestions[0].Key(); got != "1-2-3" {
		t.Errorf("suggestion key = %q, want %q", got, "1-2-3")
	}

	found := false
	for _, skip := range result.Skipped {
		if skip.Size == 4 && skip.Category == lottery.CategoryMostVoted {
			found = true
			if !skip.Price.Equal(decimal.RequireFromString("5.00")) {
				t.Errorf("skip price = %s, want 5.00", skip.Price)
			}
			if skip.Reason == "" {
				t.Error("skip reason is empty")
			}
		}
	}
	if !found {
		t.Errorf("no skip recorded for 4/most_voted; got %v", result.Skipped)
	}

	seen := make(map[string]int)
	for _, skip := range result.Skipped {
		seen[string(skip.Category)+":"+lottery.GameTypeLabel(skip.Size)]++
	}
	for combo, count := range seen {
		if count > 1 {
			t.Errorf("combination %s skipped %d times, want at most once", combo, count)
		}
	}
}

func TestGenerateIsDeterministic(t *testing.T) {
	req := Request{
		Modality: testModality(),
		Analysis: testAnalysis(t),
		Budget:   decimal.RequireFromString("20.00"),
	}

	first := Generate(req)
	second := Generate(req)

	if !reflect.DeepEqual(keysOf(first.Suggestions), keysOf(second.Suggestions)) {
		t.Errorf("two identical calls diverged: %v vs %v",
			keysOf(first.Suggestions), keysOf(second.Suggestions))
	}
	if !first.TotalCost.Equal(second.TotalCost) {
		t.Errorf("TotalCost diverged: %s vs %s", first.TotalCost, second.TotalCost)
	}
}

func TestGenerateHonorsExclusions(t *testing.T) {
	result := Generate(Request{
		Modality:     testModality(),
		Analysis:     testAnalysis(t),
		Budget:       decimal.RequireFromString("20.00"),
		ExistingKeys: []string{"1-2-3-4", "7-8-9-10"},
	})

	for _, game := range result.Suggestions {
		key := game.Key()
		if key == "1-2-3-4" || key == "7-8-9-10" {
			t.Errorf("excluded combination %s was generated", key)
		}
	}
}

func TestGenerateNeverDuplicatesWithinCall(t *testing.T) {
	result := Generate(Request{
		Modality: testModality(),
		Analysis: testAnalysis(t),
		Budget:   decimal.RequireFromString("1000.00"),
	})

	seen := make(map[string]struct{})
	for _, game := range result.Suggestions {
		key := game.Key()
		if _, dup := seen[key]; dup {
			t.Errorf("combination %s generated twice", key)
		}
		seen[key] = struct{}{}
	}
}

func TestGenerateOrdersByCategoryThenSize(t *testing.T) {
	result := Generate(Request{
		Modality: testModality(),
		Analysis: testAnalysis(t),
		Budget:   decimal.RequireFromString("1000.00"),
	})
	if len(result.Suggestions) < 2 {
		t.Fatalf("expected several suggestions, got %d", len(result.Suggestions))
	}

	for i := 1; i < len(result.Suggestions); i++ {
		prev, cur := result.Suggestions[i-1], result.Suggestions[i]
		if prev.Category.Priority() > cur.Category.Priority() {
			t.Errorf("suggestion %d category %s sorts after %s", i, prev.Category, cur.Category)
		}
		if prev.Category == cur.Category && len(prev.Numbers) < len(cur.Numbers) {
			t.Errorf("within category %s, size %d sorts after %d",
				cur.Category, len(prev.Numbers), len(cur.Numbers))
		}
	}
}

func TestGenerateZeroBudget(t *testing.T) {
	result := Generate(Request{
		Modality: testModality(),
		Analysis: testAnalysis(t),
		Budget:   decimal.Zero,
	})

	if len(result.Suggestions) != 0 {
		t.Errorf("expected no suggestions on zero budget, got %d", len(result.Suggestions))
	}
	if len(result.Skipped) == 0 {
		t.Error("expected budget skips on zero budget, got none")
	}
}

func TestGenerateGameShape(t *testing.T) {
	result := Generate(Request{
		Modality: testModality(),
		Analysis: testAnalysis(t),
		Budget:   decimal.RequireFromString("20.00"),
	})
	if len(result.Suggestions) == 0 {
		t.Fatal("expected suggestions")
	}

	game := result.Suggestions[0]
	if game.ID == "" {
		t.Error("game has empty ID")
	}
	if game.Type != "4 dezenas" {
		t.Errorf("game type = %q, want %q", game.Type, "4 dezenas")
	}
	if game.Reason == "" {
		t.Error("game has empty reason")
	}
	for i := 1; i < len(game.Numbers); i++ {
		if game.Numbers[i-1] >= game.Numbers[i] {
			t.Errorf("numbers not sorted ascending: %v", game.Numbers)
			break
		}
	}
}
