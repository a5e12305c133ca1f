// strategies/volatility/bollinger_bands.go

// Bollinger Bands Reversion Strategy
//
// Описание стратегии:
// Возврат к среднему через полосы Боллинджера: SMA за период плюс/минус
// множитель популяционного стандартного отклонения.
//
// Как работает (бэктест):
// - Покупка: закрытие ниже нижней полосы
// - Продажа: закрытие выше верхней полосы
//
// Классификация "на сегодня":
// - Подтверждённый сигнал проверяет ВНУТРИДНЕВНЫЕ экстремумы: low <= нижней
//   полосы — покупка, high >= верхней — продажа. Бэктест при этом смотрит
//   только на закрытия. Это два независимых набора правил, расхождение
//   сохранено сознательно — см. DESIGN.md.
// - Прогноз: закрытие в пределах 1.5% над нижней полосой
//
// Сильные стороны:
// - Высокая частота и точность сигналов в боковике
//
// Слабые стороны:
// - В сильном тренде цена "едет" по полосе, давая преждевременные сигналы

package volatility

import (
	"errors"
	"fmt"

	"github.com/huchl0920/stockSelect/internal"
)

type BollingerConfig struct {
	Period     int     `json:"period"`
	Multiplier float64 `json:"multiplier"`
}

func (c *BollingerConfig) Validate() error {
	if c.Period <= 0 {
		return errors.New("period must be positive")
	}
	if c.Multiplier <= 0 {
		return errors.New("multiplier must be positive")
	}
	return nil
}

func (c *BollingerConfig) DefaultConfigString() string {
	return fmt.Sprintf("BBands(period=%d, mult=%.2f)", c.Period, c.Multiplier)
}

type BollingerStrategy struct {
	cfg BollingerConfig
}

func (s *BollingerStrategy) ID() internal.StrategyID {
	return internal.StrategyBollinger
}

func (s *BollingerStrategy) Name() string {
	return "bollinger_bands"
}

func (s *BollingerStrategy) GenerateSignals(candles []internal.Candle) []internal.Signal {
	signals := make([]internal.Signal, len(candles))
	if s.cfg.Validate() != nil || len(candles) <= s.cfg.Period {
		return signals
	}

	upper, _, lower := internal.CalculateBollinger(candles, s.cfg.Period, s.cfg.Multiplier)

	for i := s.cfg.Period; i < len(candles); i++ {
		if candles[i].Close < lower[i] {
			signals[i] = internal.Signal{
				Type:   internal.BUY,
				Reason: fmt.Sprintf("Lower Band Touch %.1f", lower[i]),
			}
		} else if candles[i].Close > upper[i] {
			signals[i] = internal.Signal{
				Type:   internal.SELL,
				Reason: fmt.Sprintf("Upper Band Touch %.1f", upper[i]),
			}
		}
	}
	return signals
}

func (s *BollingerStrategy) AnalyzeSignal(candles []internal.Candle) internal.SignalAnalysis {
	var result internal.SignalAnalysis
	if !internal.HasMinimumHistory(candles) {
		return result
	}

	last := len(candles) - 1
	today := candles[last]

	upper, _, lower := internal.CalculateBollinger(candles, s.cfg.Period, s.cfg.Multiplier)
	up, lo := upper[last], lower[last]

	result.SuggestedEntry = lo
	result.SuggestedTarget = up
	result.SuggestedStopLoss = lo * 0.97

	// Классификатор смотрит на внутридневные экстремумы, не на закрытие.
	if today.Low <= lo {
		result.Signal = internal.BUY
		result.Details = fmt.Sprintf("Lower Band %.1f", lo)
		return result
	}
	if today.High >= up {
		result.Signal = internal.SELL
		result.Details = fmt.Sprintf("Upper Band %.1f", up)
		return result
	}

	dist := (today.Close - lo) / lo
	if dist > 0 && dist < 0.015 {
		result.Prediction = internal.ApproachingBuy
		result.Details = fmt.Sprintf("Near Lower (%.1f%%)", dist*100)
	}
	return result
}

func init() {
	internal.RegisterStrategy(&BollingerStrategy{
		cfg: BollingerConfig{Period: 20, Multiplier: 2},
	})
}
