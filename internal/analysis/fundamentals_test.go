package analysis

import (
	"testing"

	"github.com/huchl0920/stockSelect/internal/marketdata"
)

func fptr(v float64) *float64 { return &v }

func TestScoreFundamentals_TopBuckets(t *testing.T) {
	f := &marketdata.Fundamentals{
		ROE:            fptr(0.25),
		ProfitMargin:   fptr(0.30),
		RevenueGrowth:  fptr(0.30),
		EarningsGrowth: fptr(0.30),
		TrailingPE:     fptr(10),
	}

	result := ScoreFundamentals(f)

	// Все показатели в верхней корзине: 20+20+15+15+15.
	if result.Score != 85 {
		t.Errorf("Score = %d, want 85", result.Score)
	}
	if len(result.Reasons) != 5 {
		t.Errorf("Reasons = %v, want 5 entries", result.Reasons)
	}
}

func TestScoreFundamentals_MiddleBuckets(t *testing.T) {
	f := &marketdata.Fundamentals{
		ROE:            fptr(0.10),
		ProfitMargin:   fptr(0.15),
		RevenueGrowth:  fptr(0.10),
		EarningsGrowth: fptr(0.10),
		TrailingPE:     fptr(20),
	}

	result := ScoreFundamentals(f)

	// Средние корзины: 10+10+5+5+5, причины только за верхние пороги.
	if result.Score != 35 {
		t.Errorf("Score = %d, want 35", result.Score)
	}
	if len(result.Reasons) != 0 {
		t.Errorf("Reasons = %v, want none for middle buckets", result.Reasons)
	}
}

func TestScoreFundamentals_MissingFields(t *testing.T) {
	if result := ScoreFundamentals(nil); result.Score != 0 {
		t.Errorf("nil fundamentals Score = %d, want 0", result.Score)
	}
	if result := ScoreFundamentals(&marketdata.Fundamentals{}); result.Score != 0 {
		t.Errorf("empty fundamentals Score = %d, want 0", result.Score)
	}
}

func TestScoreFundamentals_NegativePE(t *testing.T) {
	// Убыточная компания: отрицательный P/E баллов не даёт.
	f := &marketdata.Fundamentals{TrailingPE: fptr(-5)}

	if result := ScoreFundamentals(f); result.Score != 0 {
		t.Errorf("negative P/E Score = %d, want 0", result.Score)
	}
}
