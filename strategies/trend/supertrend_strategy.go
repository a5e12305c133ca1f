// strategies/trend/supertrend_strategy.go

// Supertrend Strategy
//
// Описание стратегии:
// Трендовая стратегия на индикаторе Supertrend: полосы от медианной цены
// (high+low)/2 плюс/минус множитель ATR, с "храповиком" (полосы не
// отступают против позиции) и машиной состояний направления.
//
// Как работает:
// - Покупка: направление переключилось с нисходящего на восходящее
// - Продажа: направление переключилось с восходящего на нисходящее
// - Сама линия Supertrend служит скользящим стоп-уровнем
//
// Классификация "на сегодня":
// - Подтверждённый сигнал — переключение направления на последней свече
// - Прогноз: восходящий тренд, закрытие в пределах 2% над линией
//
// Сильные стороны:
// - Встроенный trailing stop, хорошо держит длинные тренды
//
// Слабые стороны:
// - В боковике частые переключения направления съедают капитал

package trend

import (
	"errors"
	"fmt"
	"math"

	"github.com/huchl0920/stockSelect/internal"
)

type SupertrendConfig struct {
	Period     int     `json:"period"`
	Multiplier float64 `json:"multiplier"`
}

func (c *SupertrendConfig) Validate() error {
	if c.Period <= 0 {
		return errors.New("period must be positive")
	}
	if c.Multiplier <= 0 {
		return errors.New("multiplier must be positive")
	}
	return nil
}

func (c *SupertrendConfig) DefaultConfigString() string {
	return fmt.Sprintf("Supertrend(period=%d, mult=%.1f)", c.Period, c.Multiplier)
}

type SupertrendStrategy struct {
	cfg SupertrendConfig
}

func (s *SupertrendStrategy) ID() internal.StrategyID {
	return internal.StrategySupertrend
}

func (s *SupertrendStrategy) Name() string {
	return "supertrend"
}

func (s *SupertrendStrategy) GenerateSignals(candles []internal.Candle) []internal.Signal {
	signals := make([]internal.Signal, len(candles))
	if s.cfg.Validate() != nil || len(candles) <= s.cfg.Period {
		return signals
	}

	values, direction := internal.CalculateSupertrend(candles, s.cfg.Period, s.cfg.Multiplier)

	for i := s.cfg.Period; i < len(candles); i++ {
		if direction[i-1] == -1 && direction[i] == 1 {
			signals[i] = internal.Signal{
				Type:   internal.BUY,
				Reason: fmt.Sprintf("Trend Up %.1f", values[i]),
			}
		} else if direction[i-1] == 1 && direction[i] == -1 {
			signals[i] = internal.Signal{
				Type:   internal.SELL,
				Reason: fmt.Sprintf("Trend Down %.1f", values[i]),
			}
		}
	}
	return signals
}

func (s *SupertrendStrategy) AnalyzeSignal(candles []internal.Candle) internal.SignalAnalysis {
	var result internal.SignalAnalysis
	if !internal.HasMinimumHistory(candles) {
		return result
	}

	last := len(candles) - 1
	today := candles[last]

	values, direction := internal.CalculateSupertrend(candles, s.cfg.Period, s.cfg.Multiplier)
	st := values[last]

	// Стоп — сама линия Supertrend; цель — вход плюс два риска (1:2).
	result.SuggestedEntry = today.Close
	result.SuggestedStopLoss = st
	result.SuggestedTarget = today.Close + 2*math.Abs(today.Close-st)

	if direction[last-1] == -1 && direction[last] == 1 {
		result.Signal = internal.BUY
		result.Details = fmt.Sprintf("Trend Flip Up %.1f", st)
		return result
	}
	if direction[last-1] == 1 && direction[last] == -1 {
		result.Signal = internal.SELL
		result.Details = fmt.Sprintf("Trend Flip Down %.1f", st)
		return result
	}

	// Прогноз только в восходящем тренде: цена прижалась к линии поддержки.
	if direction[last] == 1 {
		dist := (today.Close - st) / st
		if dist >= 0 && dist < 0.02 {
			result.Prediction = internal.ApproachingBuy
			result.Details = fmt.Sprintf("Near Support (%.1f%%)", dist*100)
		}
	}
	return result
}

func init() {
	internal.RegisterStrategy(&SupertrendStrategy{
		cfg: SupertrendConfig{Period: 10, Multiplier: 3.0},
	})
}
