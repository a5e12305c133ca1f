// strategies/momentum/macd.go

// MACD Strategy (Moving Average Convergence Divergence)
//
// Описание стратегии:
// Трендовый momentum-индикатор: разность быстрой и медленной EMA плюс
// сигнальная линия (EMA от MACD). Обе EMA затравливаются первой ценой и
// считаются с индекса 0 без отсечки по периодам — ранние значения построены
// на незрелых EMA, поэтому генерация сигналов начинается с slow+signal.
//
// Как работает:
// - Покупка: MACD линия пересекает сигнальную снизу вверх
// - Продажа: MACD линия пересекает сигнальную сверху вниз
//
// Классификация "на сегодня":
// - Подтверждённый сигнал — пересечение между вчерашней и сегодняшней свечой
// - Прогноз: MACD ниже сигнальной, разрыв < 0.05 по модулю и сужается
//
// Сильные стороны:
// - Учитывает и направление, и скорость движения цены
//
// Слабые стороны:
// - Пила ложных пересечений в боковике, запаздывание на разворотах

package momentum

import (
	"errors"
	"fmt"
	"math"

	"github.com/huchl0920/stockSelect/internal"
)

type MACDConfig struct {
	FastPeriod   int `json:"fast_period"`
	SlowPeriod   int `json:"slow_period"`
	SignalPeriod int `json:"signal_period"`
}

func (c *MACDConfig) Validate() error {
	if c.FastPeriod <= 0 {
		return errors.New("fast period must be positive")
	}
	if c.SlowPeriod <= 0 {
		return errors.New("slow period must be positive")
	}
	if c.SignalPeriod <= 0 {
		return errors.New("signal period must be positive")
	}
	if c.FastPeriod >= c.SlowPeriod {
		return errors.New("fast period must be less than slow period")
	}
	return nil
}

func (c *MACDConfig) DefaultConfigString() string {
	return fmt.Sprintf("MACD(fast=%d, slow=%d, signal=%d)",
		c.FastPeriod, c.SlowPeriod, c.SignalPeriod)
}

type MACDStrategy struct {
	cfg MACDConfig
}

func (s *MACDStrategy) ID() internal.StrategyID {
	return internal.StrategyMACD
}

func (s *MACDStrategy) Name() string {
	return "macd"
}

func (s *MACDStrategy) GenerateSignals(candles []internal.Candle) []internal.Signal {
	signals := make([]internal.Signal, len(candles))
	warmup := s.cfg.SlowPeriod + s.cfg.SignalPeriod
	if s.cfg.Validate() != nil || len(candles) <= warmup {
		return signals
	}

	macdLine, signalLine := internal.CalculateMACD(candles,
		s.cfg.FastPeriod, s.cfg.SlowPeriod, s.cfg.SignalPeriod)

	for i := warmup; i < len(candles); i++ {
		prevMACD, prevSignal := macdLine[i-1], signalLine[i-1]
		currMACD, currSignal := macdLine[i], signalLine[i]

		if prevMACD <= prevSignal && currMACD > currSignal {
			signals[i] = internal.Signal{Type: internal.BUY, Reason: "MACD Bullish Cross"}
		} else if prevMACD >= prevSignal && currMACD < currSignal {
			signals[i] = internal.Signal{Type: internal.SELL, Reason: "MACD Bearish Cross"}
		}
	}
	return signals
}

func (s *MACDStrategy) AnalyzeSignal(candles []internal.Candle) internal.SignalAnalysis {
	var result internal.SignalAnalysis
	if !internal.HasMinimumHistory(candles) {
		return result
	}

	last := len(candles) - 1
	today := candles[last]

	macdLine, signalLine := internal.CalculateMACD(candles,
		s.cfg.FastPeriod, s.cfg.SlowPeriod, s.cfg.SignalPeriod)

	result.SuggestedEntry = today.Close
	result.SuggestedTarget = internal.HighestHigh(candles[len(candles)-60:])
	result.SuggestedStopLoss = internal.LowestLow(candles[len(candles)-10:])

	prevMACD, prevSignal := macdLine[last-1], signalLine[last-1]
	currMACD, currSignal := macdLine[last], signalLine[last]

	if prevMACD <= prevSignal && currMACD > currSignal {
		result.Signal = internal.BUY
		result.Details = "MACD Bullish Cross Today"
		return result
	}
	if prevMACD >= prevSignal && currMACD < currSignal {
		result.Signal = internal.SELL
		result.Details = "MACD Bearish Cross Today"
		return result
	}

	// Прогноз: MACD снизу догоняет сигнальную линию.
	if currMACD < currSignal {
		gap := currSignal - currMACD
		prevGap := prevSignal - prevMACD
		if math.Abs(gap) < 0.05 && gap < prevGap {
			result.Prediction = internal.ApproachingBuy
			result.Details = fmt.Sprintf("MACD Gap: %.3f", gap)
		}
	}
	return result
}

func init() {
	internal.RegisterStrategy(&MACDStrategy{
		cfg: MACDConfig{FastPeriod: 12, SlowPeriod: 26, SignalPeriod: 9},
	})
}
