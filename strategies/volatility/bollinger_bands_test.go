package volatility

import (
	"strings"
	"testing"

	"github.com/huchl0920/stockSelect/internal"
)

// flatCandles — n свечей с одинаковым закрытием: полосы схлопываются в цену.
func flatCandles(n int, close float64) []internal.Candle {
	candles := make([]internal.Candle, n)
	for i := range candles {
		candles[i] = internal.Candle{
			Open:   close,
			High:   close + 1,
			Low:    close - 1,
			Close:  close,
			Volume: 1000,
		}
	}
	return candles
}

func TestBollinger_GenerateSignals_BuyBelowLowerBand(t *testing.T) {
	s := &BollingerStrategy{cfg: BollingerConfig{Period: 20, Multiplier: 2}}

	// Боковик, затем провал закрытия: цена уходит ниже нижней полосы.
	candles := flatCandles(31, 100)
	candles[30] = internal.Candle{Open: 100, High: 100, Low: 98, Close: 99, Volume: 1000}

	signals := s.GenerateSignals(candles)
	if signals[30].Type != internal.BUY {
		t.Fatalf("signals[30] = %s, want BUY below lower band", signals[30].Type)
	}
	if !strings.HasPrefix(signals[30].Reason, "Lower Band Touch") {
		t.Errorf("Reason = %q", signals[30].Reason)
	}

	// На плоском участке полосы равны цене: строгие неравенства не срабатывают.
	for i := 20; i < 30; i++ {
		if signals[i].Type != internal.HOLD {
			t.Errorf("signals[%d] = %s, want HOLD on flat series", i, signals[i].Type)
		}
	}
}

func TestBollinger_GenerateSignals_SellAboveUpperBand(t *testing.T) {
	s := &BollingerStrategy{cfg: BollingerConfig{Period: 20, Multiplier: 2}}

	candles := flatCandles(31, 100)
	candles[30] = internal.Candle{Open: 100, High: 102, Low: 100, Close: 101, Volume: 1000}

	signals := s.GenerateSignals(candles)
	if signals[30].Type != internal.SELL {
		t.Errorf("signals[30] = %s, want SELL above upper band", signals[30].Type)
	}
}

func TestBollinger_IntrabarClassifierDivergesFromBacktest(t *testing.T) {
	s := &BollingerStrategy{cfg: BollingerConfig{Period: 20, Multiplier: 2}}

	// Последняя свеча прокалывает нижнюю полосу тенью (Low), но закрывается
	// на уровне полос. Классификатор смотрит на экстремумы и даёт BUY,
	// бэктест смотрит только на закрытия и не даёт ничего. Эти правила
	// специфицированы раздельно, расхождение — часть контракта.
	candles := flatCandles(60, 100)
	candles[59] = internal.Candle{Open: 100, High: 100.5, Low: 98, Close: 100, Volume: 1000}

	analysis := s.AnalyzeSignal(candles)
	if analysis.Signal != internal.BUY {
		t.Fatalf("classifier Signal = %s, want BUY on intrabar touch", analysis.Signal)
	}

	signals := s.GenerateSignals(candles)
	if signals[59].Type != internal.HOLD {
		t.Errorf("backtest signal = %s, want HOLD (close stayed inside bands)", signals[59].Type)
	}
}

func TestBollinger_AnalyzeSignal_Levels(t *testing.T) {
	s := &BollingerStrategy{cfg: BollingerConfig{Period: 20, Multiplier: 2}}

	candles := flatCandles(60, 100)
	candles[59] = internal.Candle{Open: 100, High: 100.5, Low: 98, Close: 100, Volume: 1000}

	result := s.AnalyzeSignal(candles)

	// Вход — нижняя полоса, цель — верхняя, стоп — нижняя с буфером 3%.
	if result.SuggestedEntry <= 0 || result.SuggestedTarget < result.SuggestedEntry {
		t.Errorf("levels inconsistent: entry %f target %f", result.SuggestedEntry, result.SuggestedTarget)
	}
	wantStop := result.SuggestedEntry * 0.97
	if result.SuggestedStopLoss != wantStop {
		t.Errorf("SuggestedStopLoss = %f, want %f", result.SuggestedStopLoss, wantStop)
	}
}

func TestBollinger_AnalyzeSignal_RequiresHistory(t *testing.T) {
	s := &BollingerStrategy{cfg: BollingerConfig{Period: 20, Multiplier: 2}}

	result := s.AnalyzeSignal(flatCandles(59, 100))
	if result != (internal.SignalAnalysis{}) {
		t.Errorf("below 60 candles analysis must be zero, got %+v", result)
	}
}
