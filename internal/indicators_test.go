package internal

import (
	"math"
	"testing"
)

// risingCandles — линейный рост закрытий от start с шагом step.
func risingCandles(n int, start, step float64) []Candle {
	candles := make([]Candle, n)
	price := start
	for i := range candles {
		candles[i] = Candle{
			Open:   price - step/2,
			High:   price + step,
			Low:    price - step,
			Close:  price,
			Volume: 1000,
		}
		price += step
	}
	return candles
}

func TestIndicators_LengthAndPadding(t *testing.T) {
	candles := risingCandles(50, 100, 1)

	sma := CalculateSMA(candles, 20)
	if len(sma) != len(candles) {
		t.Fatalf("SMA length %d, want %d", len(sma), len(candles))
	}
	for i := 0; i < 19; i++ {
		if Defined(sma[i]) {
			t.Errorf("sma[%d] must be undefined before lookback", i)
		}
	}
	if !Defined(sma[19]) {
		t.Error("sma[19] must be defined")
	}

	rsi := CalculateRSI(candles, 14)
	if len(rsi) != len(candles) {
		t.Fatalf("RSI length %d, want %d", len(rsi), len(candles))
	}
	for i := 0; i < 14; i++ {
		if Defined(rsi[i]) {
			t.Errorf("rsi[%d] must be undefined before lookback", i)
		}
	}
	if !Defined(rsi[14]) {
		t.Error("rsi[14] must be defined")
	}

	upper, middle, lower := CalculateBollinger(candles, 20, 2)
	for _, series := range [][]float64{upper, middle, lower} {
		if len(series) != len(candles) {
			t.Fatalf("Bollinger length %d, want %d", len(series), len(candles))
		}
		if Defined(series[18]) || !Defined(series[19]) {
			t.Error("Bollinger bands must become defined exactly at period-1")
		}
	}
}

func TestCalculateSMA_KnownValues(t *testing.T) {
	candles := risingCandles(10, 100, 1) // закрытия 100..109

	sma := CalculateSMA(candles, 5)
	// SMA5 на индексе 4: (100+101+102+103+104)/5 = 102
	if math.Abs(sma[4]-102) > 1e-9 {
		t.Errorf("sma[4] = %f, want 102", sma[4])
	}
	if math.Abs(sma[9]-107) > 1e-9 {
		t.Errorf("sma[9] = %f, want 107", sma[9])
	}
}

func TestCalculateEMA_SeededFromFirstValue(t *testing.T) {
	candles := risingCandles(5, 100, 2)

	ema := CalculateEMA(candles, 3)
	if ema[0] != candles[0].Close {
		t.Errorf("ema[0] = %f, want seed %f", ema[0], candles[0].Close)
	}

	// k = 2/(3+1) = 0.5: ema[1] = 102*0.5 + 100*0.5 = 101
	if math.Abs(ema[1]-101) > 1e-9 {
		t.Errorf("ema[1] = %f, want 101", ema[1])
	}
}

func TestCalculateRSI_RisingSequenceStaysHigh(t *testing.T) {
	// Монотонный рост 100 -> 160: RSI к 20-й свече должен быть выше 50.
	// Нулевое среднее падение трактуется как 1, поэтому средний прирост 2
	// даёт RSI около 67, а не 100.
	candles := risingCandles(30, 100, 2)

	rsi := CalculateRSI(candles, 14)
	for i := 20; i < len(rsi); i++ {
		if !Defined(rsi[i]) {
			t.Fatalf("rsi[%d] must be defined", i)
		}
		if rsi[i] <= 50 {
			t.Errorf("rsi[%d] = %f, want > 50 on a monotone rise", i, rsi[i])
		}
	}
}

func TestCalculateBollinger_BandsSymmetric(t *testing.T) {
	candles := risingCandles(40, 100, 1)

	upper, middle, lower := CalculateBollinger(candles, 20, 2)
	for i := 19; i < len(candles); i++ {
		if math.Abs((upper[i]-middle[i])-(middle[i]-lower[i])) > 1e-9 {
			t.Errorf("bands not symmetric around middle at %d", i)
		}
		if upper[i] < lower[i] {
			t.Errorf("upper < lower at %d", i)
		}
	}
}

func TestCalculateMACD_DefinedFromStart(t *testing.T) {
	candles := risingCandles(60, 100, 1)

	macdLine, signalLine := CalculateMACD(candles, 12, 26, 9)
	if len(macdLine) != len(candles) || len(signalLine) != len(candles) {
		t.Fatal("MACD series must match input length")
	}
	// EMA затравлены первой ценой: ряды определены с индекса 0.
	if !Defined(macdLine[0]) || !Defined(signalLine[0]) {
		t.Error("MACD lines must be defined from index 0")
	}
	// На устойчивом росте быстрая EMA выше медленной: MACD положителен.
	if macdLine[len(macdLine)-1] <= 0 {
		t.Errorf("MACD on a steady rise must be positive, got %f", macdLine[len(macdLine)-1])
	}
}

func TestCalculateSupertrend_RatchetProperty(t *testing.T) {
	// Пилообразный ряд с трендом вверх, чтобы погонять обе ветки храповика.
	candles := make([]Candle, 60)
	price := 100.0
	for i := range candles {
		step := 1.0
		if i%7 < 3 {
			step = -1.5
		}
		price += step
		candles[i] = Candle{
			High:   price + 2,
			Low:    price - 2,
			Close:  price,
			Volume: 1000,
		}
	}

	values, direction := CalculateSupertrend(candles, 10, 3)
	if len(values) != len(candles) || len(direction) != len(candles) {
		t.Fatal("Supertrend series must match input length")
	}

	// Восстанавливаем финальную верхнюю полосу и проверяем храповик:
	// она может вырасти только после пробоя закрытием вверх.
	atr := CalculateATR(candles, 10)
	finalUpper := make([]float64, len(candles))
	finalUpper[0] = (candles[0].High+candles[0].Low)/2 + 3*atr[0]
	for i := 1; i < len(candles); i++ {
		basic := (candles[i].High+candles[i].Low)/2 + 3*atr[i]
		if basic < finalUpper[i-1] || candles[i-1].Close > finalUpper[i-1] {
			finalUpper[i] = basic
		} else {
			finalUpper[i] = finalUpper[i-1]
		}
		if finalUpper[i] > finalUpper[i-1] && candles[i-1].Close <= finalUpper[i-1] {
			t.Errorf("final upper band rose at %d without a close above it", i)
		}
	}

	for i, d := range direction {
		if d != 1 && d != -1 {
			t.Errorf("direction[%d] = %d, want +1 or -1", i, d)
		}
	}
}

func TestCalculateATR_FirstValueZero(t *testing.T) {
	candles := risingCandles(20, 100, 1)

	atr := CalculateATR(candles, 14)
	if atr[0] != 0 {
		t.Errorf("atr[0] = %f, want 0 (no previous close)", atr[0])
	}
	if atr[15] <= 0 {
		t.Errorf("atr[15] = %f, want positive", atr[15])
	}
}

func TestHighestHighLowestLow(t *testing.T) {
	candles := []Candle{
		{High: 105, Low: 95},
		{High: 110, Low: 99},
		{High: 103, Low: 90},
	}

	if hh := HighestHigh(candles); hh != 110 {
		t.Errorf("HighestHigh = %f, want 110", hh)
	}
	if ll := LowestLow(candles); ll != 90 {
		t.Errorf("LowestLow = %f, want 90", ll)
	}
	if Defined(HighestHigh(nil)) || Defined(LowestLow(nil)) {
		t.Error("empty slice must yield undefined")
	}
}
