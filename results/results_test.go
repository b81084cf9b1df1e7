package results

import (
	"reflect"
	"testing"

	"github.com/ExudusTech/bolao-engine/lottery"
)

func TestCheckPool(t *testing.T) {
	draw := Draw{
		Lottery: "mega-sena",
		Contest: 2700,
		Numbers: []int{4, 18, 29, 33, 41, 57},
	}
	bets := []lottery.Bet{
		{Nickname: "ana", Numbers: []int{4, 18, 29, 33, 2, 7}},
		{Nickname: "bruno", Numbers: []int{1, 2, 3, 5, 6, 8}},
	}
	games := []lottery.SuggestedGame{
		{Type: "6 dezenas", Numbers: []int{4, 18, 29, 33, 41, 57}},
	}

	check := CheckPool(draw, bets, games, 4)

	if len(check.Bets) != 2 || len(check.Games) != 1 {
		t.Fatalf("expected 2 bet results and 1 game result, got %d and %d",
			len(check.Bets), len(check.Games))
	}

	ana := check.Bets[0]
	if ana.HitCount != 4 {
		t.Errorf("ana HitCount = %d, want 4", ana.HitCount)
	}
	if !ana.IsWinner {
		t.Error("ana matched the quadra threshold but is not a winner")
	}
	if want := []int{4, 18, 29, 33}; !reflect.DeepEqual(ana.Hits, want) {
		t.Errorf("ana Hits = %v, want %v", ana.Hits, want)
	}

	bruno := check.Bets[1]
	if bruno.HitCount != 0 || bruno.IsWinner {
		t.Errorf("bruno should have no hits, got %+v", bruno)
	}

	full := check.Games[0]
	if full.HitCount != 6 || !full.IsWinner {
		t.Errorf("full-match game scored %+v", full)
	}

	if check.BestHitCount != 6 {
		t.Errorf("BestHitCount = %d, want 6", check.BestHitCount)
	}
	if check.WinnerCount != 2 {
		t.Errorf("WinnerCount = %d, want 2", check.WinnerCount)
	}
	if want := []int{4, 18, 29, 33, 41, 57}; !reflect.DeepEqual(check.DrawnNumbers, want) {
		t.Errorf("DrawnNumbers = %v, want %v", check.DrawnNumbers, want)
	}
}

func TestCheckPoolZeroThresholdNeverWins(t *testing.T) {
	draw := Draw{Lottery: "quina", Contest: 100, Numbers: []int{1, 2, 3, 4, 5}}
	bets := []lottery.Bet{
		{Nickname: "full", Numbers: []int{1, 2, 3, 4, 5}},
	}

	check := CheckPool(draw, bets, nil, 0)
	if check.WinnerCount != 0 {
		t.Errorf("WinnerCount = %d, want 0 when no threshold is set", check.WinnerCount)
	}
	if check.BestHitCount != 5 {
		t.Errorf("BestHitCount = %d, want 5", check.BestHitCount)
	}
}

func TestCheckPoolEmptyEntries(t *testing.T) {
	draw := Draw{Lottery: "mega-sena", Contest: 1, Numbers: []int{10, 20, 30, 40, 50, 60}}

	check := CheckPool(draw, nil, nil, 4)
	if check.BestHitCount != 0 || check.WinnerCount != 0 {
		t.Errorf("empty pool scored %+v", check)
	}
}
