// strategies/trend/ma_crossover.go

// MA Crossover Strategy (Golden Cross)
//
// Описание стратегии:
// Классическое пересечение скользящих средних: короткая SMA против длинной.
// Золотой крест — короткая средняя пересекает длинную снизу вверх, сигнал на
// покупку. Крест смерти — пересечение сверху вниз, сигнал на продажу.
//
// Как работает:
// - Рассчитываются SMA за короткий период (обычно 5) и длинный (обычно 20)
// - Покупка: prevShort <= prevLong и currShort > currLong
// - Продажа: prevShort >= prevLong и currShort < currLong
//
// Классификация "на сегодня":
// - Подтверждённый сигнал — пересечение случилось между вчерашней и сегодняшней свечой
// - Прогноз: короткая ниже длинной, разрыв < 2% и сужается по сравнению со вчерашним
//
// Сильные стороны:
// - Простота и однозначность сигналов
// - Хорошо ловит среднесрочные развороты тренда
//
// Слабые стороны:
// - Запаздывает, в боковике даёт пилу ложных пересечений

package trend

import (
	"errors"
	"fmt"

	"github.com/huchl0920/stockSelect/internal"
)

type MACrossoverConfig struct {
	ShortPeriod int `json:"short_period"`
	LongPeriod  int `json:"long_period"`
}

func (c *MACrossoverConfig) Validate() error {
	if c.ShortPeriod <= 0 || c.LongPeriod <= 0 {
		return errors.New("periods must be positive")
	}
	if c.ShortPeriod >= c.LongPeriod {
		return errors.New("short period must be less than long period")
	}
	return nil
}

func (c *MACrossoverConfig) DefaultConfigString() string {
	return fmt.Sprintf("MACrossover(short=%d, long=%d)", c.ShortPeriod, c.LongPeriod)
}

type MACrossoverStrategy struct {
	cfg MACrossoverConfig
}

func (s *MACrossoverStrategy) ID() internal.StrategyID {
	return internal.StrategyMA
}

func (s *MACrossoverStrategy) Name() string {
	return "ma_crossover"
}

func (s *MACrossoverStrategy) GenerateSignals(candles []internal.Candle) []internal.Signal {
	signals := make([]internal.Signal, len(candles))
	if s.cfg.Validate() != nil || len(candles) <= s.cfg.LongPeriod {
		return signals
	}

	smaShort := internal.CalculateSMA(candles, s.cfg.ShortPeriod)
	smaLong := internal.CalculateSMA(candles, s.cfg.LongPeriod)

	for i := s.cfg.LongPeriod; i < len(candles); i++ {
		prevShort, prevLong := smaShort[i-1], smaLong[i-1]
		currShort, currLong := smaShort[i], smaLong[i]

		if prevShort <= prevLong && currShort > currLong {
			signals[i] = internal.Signal{Type: internal.BUY, Reason: "Golden Cross"}
		} else if prevShort >= prevLong && currShort < currLong {
			signals[i] = internal.Signal{Type: internal.SELL, Reason: "Death Cross"}
		}
	}
	return signals
}

func (s *MACrossoverStrategy) AnalyzeSignal(candles []internal.Candle) internal.SignalAnalysis {
	var result internal.SignalAnalysis
	if !internal.HasMinimumHistory(candles) {
		return result
	}

	last := len(candles) - 1
	today := candles[last]

	smaShort := internal.CalculateSMA(candles, s.cfg.ShortPeriod)
	smaLong := internal.CalculateSMA(candles, s.cfg.LongPeriod)

	prevShort, prevLong := smaShort[last-1], smaLong[last-1]
	currShort, currLong := smaShort[last], smaLong[last]

	// Уровни для отображения: цель — максимум за 60 свечей, стоп — минимум за 10.
	result.SuggestedEntry = today.Close
	result.SuggestedTarget = internal.HighestHigh(candles[len(candles)-60:])
	result.SuggestedStopLoss = internal.LowestLow(candles[len(candles)-10:])

	if prevShort <= prevLong && currShort > currLong {
		result.Signal = internal.BUY
		result.Details = "Golden Cross Today"
		return result
	}
	if prevShort >= prevLong && currShort < currLong {
		result.Signal = internal.SELL
		result.Details = "Death Cross Today"
		return result
	}

	// Прогноз: короткая ниже длинной, разрыв меньше 2% и сужается.
	if currShort < currLong {
		gap := (currLong - currShort) / currLong
		prevGap := (prevLong - prevShort) / prevLong
		if gap < 0.02 && gap < prevGap {
			result.Prediction = internal.ApproachingBuy
			result.Details = fmt.Sprintf("MA Gap: %.2f%%", gap*100)
		}
	}
	return result
}

func init() {
	internal.RegisterStrategy(&MACrossoverStrategy{
		cfg: MACrossoverConfig{ShortPeriod: 5, LongPeriod: 20},
	})
}
