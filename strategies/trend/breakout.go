// strategies/trend/breakout.go

// Breakout Strategy (пробой многолетнего максимума)
//
// Описание стратегии:
// Трендовая стратегия на пробой максимума за длинное окно (по умолчанию 500
// торговых дней, ~2 года). Сегодняшняя свеча в окно не входит: проверяется,
// что закрытие пробило максимум именно прошлой истории.
//
// Как работает:
// - Покупка: close > max(high) за trailing-окно, исключая сегодняшний день
// - Продажа: close < SMA20 (разворот тренда, а не фиксированный стоп)
// - Сканирование начинается с индекса min(250, len-10), чтобы гарантировать
//   наличие истории для осмысленного максимума
//
// Классификация "на сегодня":
// - Подтверждённый сигнал — закрытие пробило максимум, а вчерашнее ещё нет
// - Прогноз: закрытие в пределах 3% ниже уровня пробоя
//
// Сильные стороны:
// - Ловит начало сильных импульсных движений
//
// Слабые стороны:
// - Ложные пробои на тонком рынке, поздний выход по SMA20

package trend

import (
	"errors"
	"fmt"

	"github.com/huchl0920/stockSelect/internal"
)

type BreakoutConfig struct {
	LookbackDays int `json:"lookback_days"`
	ExitMAPeriod int `json:"exit_ma_period"`
}

func (c *BreakoutConfig) Validate() error {
	if c.LookbackDays <= 0 {
		return errors.New("lookback must be positive")
	}
	if c.ExitMAPeriod <= 0 {
		return errors.New("exit MA period must be positive")
	}
	return nil
}

func (c *BreakoutConfig) DefaultConfigString() string {
	return fmt.Sprintf("Breakout(lookback=%d, exitMA=%d)", c.LookbackDays, c.ExitMAPeriod)
}

type BreakoutStrategy struct {
	cfg BreakoutConfig
}

func (s *BreakoutStrategy) ID() internal.StrategyID {
	return internal.StrategyBreakout
}

func (s *BreakoutStrategy) Name() string {
	return "breakout"
}

func (s *BreakoutStrategy) GenerateSignals(candles []internal.Candle) []internal.Signal {
	signals := make([]internal.Signal, len(candles))
	if s.cfg.Validate() != nil || len(candles) < 10 {
		return signals
	}

	sma := internal.CalculateSMA(candles, s.cfg.ExitMAPeriod)

	startIdx := min(250, len(candles)-10)
	if startIdx < 1 {
		startIdx = 1
	}

	for i := startIdx; i < len(candles); i++ {
		historyStart := max(0, i-s.cfg.LookbackDays)
		maxHigh := internal.HighestHigh(candles[historyStart:i])

		if candles[i].Close > maxHigh {
			signals[i] = internal.Signal{
				Type:   internal.BUY,
				Reason: fmt.Sprintf("Breakout High %.2f", maxHigh),
			}
		} else if internal.Defined(sma[i]) && candles[i].Close < sma[i] {
			signals[i] = internal.Signal{Type: internal.SELL, Reason: "Below MA20"}
		}
	}
	return signals
}

func (s *BreakoutStrategy) AnalyzeSignal(candles []internal.Candle) internal.SignalAnalysis {
	var result internal.SignalAnalysis
	if !internal.HasMinimumHistory(candles) {
		return result
	}

	last := len(candles) - 1
	today := candles[last]

	historyStart := max(0, last-s.cfg.LookbackDays)
	maxHigh := internal.HighestHigh(candles[historyStart:last])

	// Точка входа — сам уровень пробоя; цель и стоп — фиксированные доли уровня.
	result.SuggestedEntry = maxHigh
	result.SuggestedTarget = maxHigh * 1.20
	result.SuggestedStopLoss = maxHigh * 0.93

	if today.Close > maxHigh && candles[last-1].Close <= maxHigh {
		result.Signal = internal.BUY
		result.Details = fmt.Sprintf("New High! > %.2f", maxHigh)
		return result
	}
	if today.Close <= maxHigh {
		dist := (maxHigh - today.Close) / maxHigh
		if dist < 0.03 {
			result.Prediction = internal.ApproachingBuy
			result.Details = fmt.Sprintf("Near High (-%.1f%%)", dist*100)
		}
	}
	return result
}

func init() {
	internal.RegisterStrategy(&BreakoutStrategy{
		cfg: BreakoutConfig{LookbackDays: 500, ExitMAPeriod: 20},
	})
}
