// internal/analysis/health.go

// Экспресс-диагностика позиции: скалярные индикаторы по хвосту истории,
// эвристический балл 0-100 и уровни стоп-лосс / тейк-профит.
//
// В отличие от стратегий, здесь не нужны полные серии индикаторов: все
// значения считаются только для последней свечи, поэтому у пакета свои
// "хвостовые" варианты SMA/ATR/RSI.

package analysis

import (
	"fmt"
	"math"

	"github.com/pkg/errors"
	"gonum.org/v1/gonum/stat"

	"github.com/huchl0920/stockSelect/internal"
	"github.com/huchl0920/stockSelect/internal/marketdata"
)

// MinHealthCandles — минимум истории для диагностики. В отличие от
// сканирования, нехватка данных здесь — явная ошибка, а не пустой результат.
const MinHealthCandles = 60

type TechnicalSnapshot struct {
	SMA5       float64 `json:"sma5"`
	SMA20      float64 `json:"sma20"`
	SMA60      float64 `json:"sma60"`
	ATR        float64 `json:"atr"`
	RSI        float64 `json:"rsi"`
	Support    float64 `json:"support"`
	Resistance float64 `json:"resistance"`
}

type HealthReport struct {
	Score            int               `json:"score"`
	Trend            string            `json:"trend"`
	StopLoss         float64           `json:"stop_loss"`
	StopLossReason   string            `json:"stop_loss_reason"`
	TakeProfit       float64           `json:"take_profit"`
	TakeProfitReason string            `json:"take_profit_reason"`
	Reasons          []string          `json:"reasons"`
	Technical        TechnicalSnapshot `json:"technical"`
	Fundamental      *FundamentalScore `json:"fundamental,omitempty"`
}

// lastSMA — среднее закрытие последних period свечей.
func lastSMA(candles []internal.Candle, period int) float64 {
	if len(candles) < period {
		return 0
	}
	tail := candles[len(candles)-period:]
	closes := make([]float64, period)
	for i, c := range tail {
		closes[i] = c.Close
	}
	return stat.Mean(closes, nil)
}

// lastATR — простое среднее истинного диапазона последних period свечей
// (без сглаживания Уайлдера: для уровня стопа достаточно грубой оценки).
func lastATR(candles []internal.Candle, period int) float64 {
	if len(candles) < period+1 {
		return 0
	}
	trs := make([]float64, 0, period)
	for i := len(candles) - period; i < len(candles); i++ {
		highLow := candles[i].High - candles[i].Low
		highClose := math.Abs(candles[i].High - candles[i-1].Close)
		lowClose := math.Abs(candles[i].Low - candles[i-1].Close)
		trs = append(trs, math.Max(highLow, math.Max(highClose, lowClose)))
	}
	return stat.Mean(trs, nil)
}

// lastRSI — RSI по последним period изменениям, без экспоненциального
// накопления. Нулевой средний убыток считается единицей.
func lastRSI(candles []internal.Candle, period int) float64 {
	if len(candles) < period+1 {
		return 50
	}
	var gains, losses float64
	for i := len(candles) - period; i < len(candles); i++ {
		change := candles[i].Close - candles[i-1].Close
		if change > 0 {
			gains += change
		} else {
			losses += -change
		}
	}
	avgGain := gains / float64(period)
	avgLoss := losses / float64(period)
	if avgLoss == 0 {
		avgLoss = 1
	}
	rs := avgGain / avgLoss
	return 100 - 100/(1+rs)
}

// supportResistance — минимум low и максимум high за последние period свечей.
func supportResistance(candles []internal.Candle, period int) (support, resistance float64) {
	if len(candles) < period {
		return 0, 0
	}
	tail := candles[len(candles)-period:]
	return internal.LowestLow(tail), internal.HighestHigh(tail)
}

// CheckHealth оценивает состояние бумаги для уже открытой или планируемой
// позиции. entryPrice <= 0 означает "позиции нет": уровни считаются от
// текущей цены. fundamentals может быть nil.
func CheckHealth(candles []internal.Candle, entryPrice float64, fundamentals *marketdata.Fundamentals) (*HealthReport, error) {
	if len(candles) < MinHealthCandles {
		return nil, errors.Wrapf(marketdata.ErrInsufficientHistory,
			"health check needs %d candles, got %d", MinHealthCandles, len(candles))
	}

	last := len(candles) - 1
	currentPrice := candles[last].Close

	tech := TechnicalSnapshot{
		SMA5:  lastSMA(candles, 5),
		SMA20: lastSMA(candles, 20),
		SMA60: lastSMA(candles, 60),
		ATR:   lastATR(candles, 14),
		RSI:   lastRSI(candles, 14),
	}
	tech.Support, tech.Resistance = supportResistance(candles, 20)

	score := 50
	var reasons []string

	// Выравнивание трендов
	switch {
	case tech.SMA5 > tech.SMA20 && tech.SMA20 > tech.SMA60:
		score += 20
		reasons = append(reasons, "Bullish MA alignment (5 > 20 > 60), trend up")
	case currentPrice > tech.SMA20:
		score += 10
		reasons = append(reasons, "Price above 20MA, short-term strength")
	case currentPrice < tech.SMA20 && currentPrice < tech.SMA60:
		score -= 20
		reasons = append(reasons, "Price below 20MA and 60MA, weak trend")
	}

	// Зона RSI
	switch {
	case tech.RSI > 70:
		score -= 5
		reasons = append(reasons, "RSI overheated (>70), pullback risk")
	case tech.RSI < 30:
		score += 5
		reasons = append(reasons, "RSI oversold (<30), possible rebound")
	case tech.RSI > 50:
		reasons = append(reasons, "RSI in strong zone (>50)")
	}

	// Всплеск объёма на росте
	if last >= 5 {
		vols := make([]float64, 5)
		for i, c := range candles[len(candles)-5:] {
			vols[i] = float64(c.Volume)
		}
		avgVol := stat.Mean(vols, nil)
		if float64(candles[last].Volume) > avgVol*1.5 && currentPrice > candles[last-1].Close {
			score += 10
			reasons = append(reasons, "Volume surge on up day, strong buying")
		}
	}

	// Фундаментальная поправка
	var fundamental *FundamentalScore
	if fundamentals != nil {
		fs := ScoreFundamentals(fundamentals)
		fundamental = &fs
		if fs.Score > 70 {
			score += 5
			reasons = append(reasons, "Solid fundamentals, long-term support")
		} else if fs.Score < 30 {
			score -= 5
			reasons = append(reasons, "Weak fundamentals, short-term trades only")
		}
	}

	if score > 95 {
		score = 95
	}
	if score < 5 {
		score = 5
	}

	trend := "Neutral"
	if score > 60 {
		trend = "Bullish"
	} else if score < 40 {
		trend = "Bearish"
	}

	// Стоп: волатильностный, если вход далеко от поддержки, иначе от
	// поддержки с буфером 2%.
	slBuffer := 2 * tech.ATR
	var stopLoss float64
	var slReason string
	if entryPrice > 0 {
		if entryPrice-tech.Support > slBuffer {
			stopLoss = entryPrice - slBuffer
			slReason = fmt.Sprintf("Entry far above support, trailing 2x ATR stop (%.2f)", slBuffer)
		} else {
			stopLoss = tech.Support * 0.98
			slReason = fmt.Sprintf("2%% below swing support (%.2f)", tech.Support)
		}
	} else {
		stopLoss = currentPrice - slBuffer
		slReason = "2x ATR below current price"
	}

	// Тейк: 1:2 к риску, но сопротивление ближе цели понижает её.
	var takeProfit float64
	var tpReason string
	if entryPrice > 0 {
		risk := entryPrice - stopLoss
		target := entryPrice + risk*2
		if tech.Resistance > entryPrice && tech.Resistance < target {
			takeProfit = tech.Resistance
			tpReason = fmt.Sprintf("Swing resistance overhead (%.2f), watch for breakout", tech.Resistance)
		} else {
			takeProfit = target
			tpReason = "Projected from 1:2 risk:reward"
		}
	}

	return &HealthReport{
		Score:            score,
		Trend:            trend,
		StopLoss:         stopLoss,
		StopLossReason:   slReason,
		TakeProfit:       takeProfit,
		TakeProfitReason: tpReason,
		Reasons:          reasons,
		Technical:        tech,
		Fundamental:      fundamental,
	}, nil
}
