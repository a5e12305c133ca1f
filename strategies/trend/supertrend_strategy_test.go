package trend

import (
	"math"
	"testing"

	"github.com/huchl0920/stockSelect/internal"
)

// vShape — обвал с base до трети, затем сильный рост: гарантированно даёт
// переключение направления Supertrend в обе стороны.
func vShape(n int, base float64) []internal.Candle {
	candles := make([]internal.Candle, n)
	price := base
	for i := range candles {
		if i < n/2 {
			price -= base / float64(n)
		} else {
			price += 2 * base / float64(n)
		}
		candles[i] = internal.Candle{
			Open:   price,
			High:   price + 2,
			Low:    price - 2,
			Close:  price,
			Volume: 1000,
		}
	}
	return candles
}

func TestSupertrend_SignalsMatchDirectionFlips(t *testing.T) {
	s := &SupertrendStrategy{cfg: SupertrendConfig{Period: 10, Multiplier: 3.0}}

	candles := vShape(80, 100)
	signals := s.GenerateSignals(candles)
	_, direction := internal.CalculateSupertrend(candles, 10, 3.0)

	if len(signals) != len(candles) {
		t.Fatalf("signals length %d, want %d", len(signals), len(candles))
	}

	// Сигналы ровно на переключениях направления, начиная с периода.
	for i := 10; i < len(candles); i++ {
		switch {
		case direction[i-1] == -1 && direction[i] == 1:
			if signals[i].Type != internal.BUY {
				t.Errorf("signals[%d] = %s, want BUY on flip up", i, signals[i].Type)
			}
		case direction[i-1] == 1 && direction[i] == -1:
			if signals[i].Type != internal.SELL {
				t.Errorf("signals[%d] = %s, want SELL on flip down", i, signals[i].Type)
			}
		default:
			if signals[i].Type != internal.HOLD {
				t.Errorf("signals[%d] = %s, want HOLD without flip", i, signals[i].Type)
			}
		}
	}

	// V-образный ряд обязан дать хотя бы один разворот вверх.
	buys := 0
	for _, sig := range signals {
		if sig.Type == internal.BUY {
			buys++
		}
	}
	if buys == 0 {
		t.Error("expected at least one BUY on a V-shaped series")
	}
}

func TestSupertrend_AnalyzeSignal_Levels(t *testing.T) {
	s := &SupertrendStrategy{cfg: SupertrendConfig{Period: 10, Multiplier: 3.0}}

	candles := vShape(80, 100)
	result := s.AnalyzeSignal(candles)

	values, _ := internal.CalculateSupertrend(candles, 10, 3.0)
	last := len(candles) - 1
	st := values[last]
	entry := candles[last].Close

	if result.SuggestedEntry != entry {
		t.Errorf("SuggestedEntry = %f, want %f", result.SuggestedEntry, entry)
	}
	if result.SuggestedStopLoss != st {
		t.Errorf("SuggestedStopLoss = %f, want Supertrend value %f", result.SuggestedStopLoss, st)
	}
	wantTarget := entry + 2*math.Abs(entry-st)
	if math.Abs(result.SuggestedTarget-wantTarget) > 1e-9 {
		t.Errorf("SuggestedTarget = %f, want %f (1:2 risk:reward)", result.SuggestedTarget, wantTarget)
	}
}

func TestSupertrend_AnalyzeSignal_RequiresHistory(t *testing.T) {
	s := &SupertrendStrategy{cfg: SupertrendConfig{Period: 10, Multiplier: 3.0}}

	result := s.AnalyzeSignal(vShape(59, 100))
	if result != (internal.SignalAnalysis{}) {
		t.Errorf("below 60 candles analysis must be zero, got %+v", result)
	}
}
