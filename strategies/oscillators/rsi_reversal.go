// strategies/oscillators/rsi_reversal.go

// RSI Reversal Strategy
//
// Описание стратегии:
// Контртрендовая стратегия на RSI Уайлдера: покупка в зоне перепроданности,
// продажа в зоне перекупленности.
//
// Как работает:
// - Рассчитывается RSI за период (обычно 14) со сглаживанием Уайлдера
// - Покупка: RSI < 30 (перепроданность)
// - Продажа: RSI > 70 (перекупленность)
//
// Классификация "на сегодня":
// - Подтверждённый сигнал — RSI пересёк порог между вчерашней и сегодняшней свечой
// - Прогноз: RSI в коридоре [30,38] — приближение к покупке, [62,70] — к продаже
//
// Сильные стороны:
// - Высокий процент прибыльных сделок в боковых рынках
//
// Слабые стороны:
// - В сильном тренде RSI может долго оставаться в экстремальной зоне

package oscillators

import (
	"errors"
	"fmt"

	"github.com/huchl0920/stockSelect/internal"
)

type RSIReversalConfig struct {
	Period    int     `json:"period"`
	BuyLevel  float64 `json:"buy_level"`
	SellLevel float64 `json:"sell_level"`
}

func (c *RSIReversalConfig) Validate() error {
	if c.Period <= 0 {
		return errors.New("period must be positive")
	}
	if c.BuyLevel >= c.SellLevel {
		return errors.New("buy level must be below sell level")
	}
	return nil
}

func (c *RSIReversalConfig) DefaultConfigString() string {
	return fmt.Sprintf("RSIReversal(period=%d, buy=%.0f, sell=%.0f)",
		c.Period, c.BuyLevel, c.SellLevel)
}

type RSIReversalStrategy struct {
	cfg RSIReversalConfig
}

func (s *RSIReversalStrategy) ID() internal.StrategyID {
	return internal.StrategyRSI
}

func (s *RSIReversalStrategy) Name() string {
	return "rsi_reversal"
}

func (s *RSIReversalStrategy) GenerateSignals(candles []internal.Candle) []internal.Signal {
	signals := make([]internal.Signal, len(candles))
	if s.cfg.Validate() != nil || len(candles) <= s.cfg.Period {
		return signals
	}

	rsi := internal.CalculateRSI(candles, s.cfg.Period)

	for i := s.cfg.Period; i < len(candles); i++ {
		if !internal.Defined(rsi[i]) {
			continue
		}
		if rsi[i] < s.cfg.BuyLevel {
			signals[i] = internal.Signal{
				Type:   internal.BUY,
				Reason: fmt.Sprintf("RSI %.1f < %.0f", rsi[i], s.cfg.BuyLevel),
			}
		} else if rsi[i] > s.cfg.SellLevel {
			signals[i] = internal.Signal{
				Type:   internal.SELL,
				Reason: fmt.Sprintf("RSI %.1f > %.0f", rsi[i], s.cfg.SellLevel),
			}
		}
	}
	return signals
}

func (s *RSIReversalStrategy) AnalyzeSignal(candles []internal.Candle) internal.SignalAnalysis {
	var result internal.SignalAnalysis
	if !internal.HasMinimumHistory(candles) {
		return result
	}

	last := len(candles) - 1
	rsi := internal.CalculateRSI(candles, s.cfg.Period)
	currRSI, prevRSI := rsi[last], rsi[last-1]

	// Цель — возврат к среднему (SMA60), стоп — минимум за 10 свечей.
	sma60 := internal.CalculateSMA(candles, 60)
	result.SuggestedEntry = candles[last].Close
	result.SuggestedTarget = sma60[last]
	result.SuggestedStopLoss = internal.LowestLow(candles[len(candles)-10:])

	switch {
	case prevRSI >= s.cfg.BuyLevel && currRSI < s.cfg.BuyLevel:
		result.Signal = internal.BUY
		result.Details = fmt.Sprintf("RSI < %.0f (%.1f)", s.cfg.BuyLevel, currRSI)
	case prevRSI <= s.cfg.SellLevel && currRSI > s.cfg.SellLevel:
		result.Signal = internal.SELL
		result.Details = fmt.Sprintf("RSI > %.0f (%.1f)", s.cfg.SellLevel, currRSI)
	case currRSI >= 30 && currRSI <= 38:
		result.Prediction = internal.ApproachingBuy
		result.Details = fmt.Sprintf("RSI: %.1f", currRSI)
	case currRSI >= 62 && currRSI <= 70:
		result.Prediction = internal.ApproachingSell
		result.Details = fmt.Sprintf("RSI: %.1f", currRSI)
	}
	return result
}

func init() {
	internal.RegisterStrategy(&RSIReversalStrategy{
		cfg: RSIReversalConfig{Period: 14, BuyLevel: 30, SellLevel: 70},
	})
}
