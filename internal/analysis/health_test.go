package analysis

import (
	"math"
	"strings"
	"testing"

	"github.com/pkg/errors"

	"github.com/huchl0920/stockSelect/internal"
	"github.com/huchl0920/stockSelect/internal/marketdata"
)

// trendCandles — линейное изменение закрытий от start с шагом step,
// тени фиксированной ширины 1.
func trendCandles(n int, start, step float64) []internal.Candle {
	candles := make([]internal.Candle, n)
	price := start
	for i := range candles {
		candles[i] = internal.Candle{
			Open:   price,
			High:   price + 1,
			Low:    price - 1,
			Close:  price,
			Volume: 1000,
		}
		price += step
	}
	return candles
}

func TestCheckHealth_RequiresHistory(t *testing.T) {
	_, err := CheckHealth(trendCandles(59, 100, 1), 0, nil)
	if !errors.Is(err, marketdata.ErrInsufficientHistory) {
		t.Errorf("err = %v, want ErrInsufficientHistory", err)
	}
}

func TestCheckHealth_BullishTrend(t *testing.T) {
	// Монотонный рост: выравнивание средних даёт +20, RSI в сильной зоне
	// (около 67) баллов не меняет, всплеска объёма нет. Итог: 70, Bullish.
	report, err := CheckHealth(trendCandles(70, 100, 2), 0, nil)
	if err != nil {
		t.Fatal(err)
	}

	if report.Score != 70 {
		t.Errorf("Score = %d, want 70", report.Score)
	}
	if report.Trend != "Bullish" {
		t.Errorf("Trend = %q, want Bullish", report.Trend)
	}
	if report.Technical.SMA5 <= report.Technical.SMA20 || report.Technical.SMA20 <= report.Technical.SMA60 {
		t.Errorf("expected bullish MA alignment, got %+v", report.Technical)
	}
}

func TestCheckHealth_BearishTrend(t *testing.T) {
	// Монотонное падение: цена под обеими средними (-20), RSI на нуле
	// даёт перепроданность (+5). Итог: 35, Bearish.
	report, err := CheckHealth(trendCandles(70, 300, -2), 0, nil)
	if err != nil {
		t.Fatal(err)
	}

	if report.Score != 35 {
		t.Errorf("Score = %d, want 35", report.Score)
	}
	if report.Trend != "Bearish" {
		t.Errorf("Trend = %q, want Bearish", report.Trend)
	}
}

func TestCheckHealth_VolumeSurge(t *testing.T) {
	// Рост плюс двойной объём на последней свече: +10 к бычьему базису.
	candles := trendCandles(70, 100, 2)
	candles[69].Volume = 2000

	report, err := CheckHealth(candles, 0, nil)
	if err != nil {
		t.Fatal(err)
	}
	if report.Score != 80 {
		t.Errorf("Score = %d, want 80 with volume surge", report.Score)
	}
}

func TestCheckHealth_NoPositionLevels(t *testing.T) {
	// Без позиции стоп считается от текущей цены, тейк не задаётся.
	candles := trendCandles(70, 100, 2)
	report, err := CheckHealth(candles, 0, nil)
	if err != nil {
		t.Fatal(err)
	}

	currentPrice := candles[69].Close
	wantStop := currentPrice - 2*report.Technical.ATR
	if math.Abs(report.StopLoss-wantStop) > 1e-9 {
		t.Errorf("StopLoss = %f, want %f (2x ATR below price)", report.StopLoss, wantStop)
	}
	if report.TakeProfit != 0 {
		t.Errorf("TakeProfit = %f, want 0 without a position", report.TakeProfit)
	}
}

func TestCheckHealth_EntryFarAboveSupport(t *testing.T) {
	// Вход далеко над поддержкой: стоп волатильностный (2x ATR), цель
	// срезается ближайшим сопротивлением.
	candles := trendCandles(70, 100, 2)
	entry := candles[69].Close // 238, поддержка за 20 свечей — 199

	report, err := CheckHealth(candles, entry, nil)
	if err != nil {
		t.Fatal(err)
	}

	wantStop := entry - 2*report.Technical.ATR
	if math.Abs(report.StopLoss-wantStop) > 1e-9 {
		t.Errorf("StopLoss = %f, want %f", report.StopLoss, wantStop)
	}
	if !strings.HasPrefix(report.StopLossReason, "Entry far above support") {
		t.Errorf("StopLossReason = %q", report.StopLossReason)
	}

	// risk = 2*ATR, цель 1:2 = entry + 4*ATR, но сопротивление (239) ближе.
	if report.TakeProfit != report.Technical.Resistance {
		t.Errorf("TakeProfit = %f, want resistance %f", report.TakeProfit, report.Technical.Resistance)
	}
	if !strings.HasPrefix(report.TakeProfitReason, "Swing resistance overhead") {
		t.Errorf("TakeProfitReason = %q", report.TakeProfitReason)
	}
}

func TestCheckHealth_EntryNearSupport(t *testing.T) {
	// Вход близко к поддержке: стоп на 2% под ней, цель — чистые 1:2,
	// сопротивление выше и не мешает.
	candles := trendCandles(70, 100, 2)
	entry := internal.LowestLow(candles[len(candles)-20:]) + 3 // меньше буфера 2x ATR

	report, err := CheckHealth(candles, entry, nil)
	if err != nil {
		t.Fatal(err)
	}

	wantStop := report.Technical.Support * 0.98
	if math.Abs(report.StopLoss-wantStop) > 1e-9 {
		t.Errorf("StopLoss = %f, want %f (2%% below support)", report.StopLoss, wantStop)
	}

	risk := entry - report.StopLoss
	wantTP := entry + risk*2
	if math.Abs(report.TakeProfit-wantTP) > 1e-9 {
		t.Errorf("TakeProfit = %f, want %f (1:2 risk:reward)", report.TakeProfit, wantTP)
	}
	if !strings.HasPrefix(report.TakeProfitReason, "Projected from 1:2") {
		t.Errorf("TakeProfitReason = %q", report.TakeProfitReason)
	}
}

func TestCheckHealth_FundamentalOverlay(t *testing.T) {
	candles := trendCandles(70, 100, 2)

	strong := &marketdata.Fundamentals{
		ROE:            fptr(0.25),
		ProfitMargin:   fptr(0.30),
		RevenueGrowth:  fptr(0.30),
		EarningsGrowth: fptr(0.30),
		TrailingPE:     fptr(10),
	}
	report, err := CheckHealth(candles, 0, strong)
	if err != nil {
		t.Fatal(err)
	}
	if report.Score != 75 {
		t.Errorf("Score = %d, want 75 (bullish base + fundamentals)", report.Score)
	}
	if report.Fundamental == nil || report.Fundamental.Score != 85 {
		t.Errorf("Fundamental = %+v, want score 85", report.Fundamental)
	}

	weak := &marketdata.Fundamentals{}
	report, err = CheckHealth(candles, 0, weak)
	if err != nil {
		t.Fatal(err)
	}
	if report.Score != 65 {
		t.Errorf("Score = %d, want 65 (bullish base - weak fundamentals)", report.Score)
	}
}
