// internal/scan/scan.go

// Оркестратор сканирования рынка.
//
// Инструменты обрабатываются пакетами по 5: внутри пакета запросы истории
// идут параллельно, между пакетами — пауза, чтобы не перегружать провайдера.
// Ошибка по отдельной бумаге глотается: бумага просто выпадает из выдачи,
// скан продолжается. Отмена через контекст проверяется на границе пакета —
// начатый пакет всегда дорабатывает до конца.

package scan

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/huchl0920/stockSelect/internal"
)

const (
	batchSize = 5

	screenBatchPause = 200 * time.Millisecond
	picksBatchPause  = 100 * time.Millisecond
)

// HistoryProvider — то, что нужно сканеру от слоя данных.
// Реализуется marketdata.HistoryCache.
type HistoryProvider interface {
	History(ctx context.Context, code, rng, interval string) ([]internal.Candle, error)
}

// ProgressFunc получает процент готовности после каждого пакета.
type ProgressFunc func(percent int)

// ScreenResult — строка выдачи скринера по одной бумаге.
type ScreenResult struct {
	Code        string                  `json:"code"`
	Name        string                  `json:"name"`
	WinRate     float64                 `json:"win_rate"`
	TotalReturn float64                 `json:"total_return"`
	TradeCount  int                     `json:"trade_count"`
	Signal      internal.SignalType     `json:"signal"`
	Prediction  internal.PredictionType `json:"prediction"`
	Details     string                  `json:"details"`
}

// Screen прогоняет одну стратегию по всей вселенной: классификатор даёт
// состояние "на сегодня", бэктест — статистику. Сортировка выдачи:
// подтверждённый сигнал, затем прогноз, затем общая доходность по убыванию.
func Screen(ctx context.Context, provider HistoryProvider, universe []Instrument, strategyID internal.StrategyID, rng string, onProgress ProgressFunc) ([]ScreenResult, error) {
	strategy, ok := internal.GetStrategy(strategyID)
	if !ok {
		return nil, internal.ErrUnknownStrategy
	}

	var results []ScreenResult
	forEachBatch(ctx, universe, screenBatchPause, onProgress, func(inst Instrument) []ScreenResult {
		candles, err := provider.History(ctx, inst.Code, rng, "1d")
		if err != nil {
			return nil
		}

		analysis := strategy.AnalyzeSignal(candles)
		stats := internal.Backtest(candles, strategy.GenerateSignals(candles))

		return []ScreenResult{{
			Code:        inst.Code,
			Name:        inst.Name,
			WinRate:     stats.WinRate,
			TotalReturn: stats.TotalReturn,
			TradeCount:  len(stats.Trades),
			Signal:      analysis.Signal,
			Prediction:  analysis.Prediction,
			Details:     analysis.Details,
		}}
	}, &results)

	sort.SliceStable(results, func(i, j int) bool {
		a, b := results[i], results[j]
		aSignal, bSignal := a.Signal != internal.HOLD, b.Signal != internal.HOLD
		if aSignal != bSignal {
			return aSignal
		}
		aPred, bPred := a.Prediction != internal.NoPrediction, b.Prediction != internal.NoPrediction
		if aPred != bPred {
			return aPred
		}
		return a.TotalReturn > b.TotalReturn
	})
	return results, nil
}

// Pick — рекомендация "на сегодня": бумага плюс стратегия, давшая
// подтверждённый сигнал на покупку.
type Pick struct {
	Code         string              `json:"code"`
	Name         string              `json:"name"`
	Strategy     internal.StrategyID `json:"-"`
	StrategyName string              `json:"strategy"`
	Detail       string              `json:"detail"`
	Entry        float64             `json:"entry"`
	Target       float64             `json:"target"`
	StopLoss     float64             `json:"stop_loss"`
	WinRate      float64             `json:"win_rate"`
	ExpReturn    float64             `json:"exp_return"`
	Score        float64             `json:"score"`
}

// DailyPicks прогоняет все шесть стратегий по каждой бумаге и оставляет
// только подтверждённые сигналы на покупку. Композитный балл ценит
// стабильность и потенциал: winRate*0.6 + avgTradeReturn*10. Стратегии
// с winRate < 40% или средней сделкой < 0.5% отбрасываются.
func DailyPicks(ctx context.Context, provider HistoryProvider, universe []Instrument, onProgress ProgressFunc) []Pick {
	var picks []Pick
	forEachBatch(ctx, universe, picksBatchPause, onProgress, func(inst Instrument) []Pick {
		candles, err := provider.History(ctx, inst.Code, "2y", "1d")
		if err != nil {
			return nil
		}

		var recs []Pick
		for _, strategy := range internal.AllStrategies() {
			analysis := strategy.AnalyzeSignal(candles)
			if analysis.Signal != internal.BUY {
				continue
			}

			stats := internal.Backtest(candles, strategy.GenerateSignals(candles))
			if stats.WinRate < 40 || stats.AvgTradeReturn < 0.5 {
				continue
			}

			recs = append(recs, Pick{
				Code:         inst.Code,
				Name:         inst.Name,
				Strategy:     strategy.ID(),
				StrategyName: strategy.Name(),
				Detail:       analysis.Details,
				Entry:        analysis.SuggestedEntry,
				Target:       analysis.SuggestedTarget,
				StopLoss:     analysis.SuggestedStopLoss,
				WinRate:      stats.WinRate,
				ExpReturn:    stats.AvgTradeReturn,
				Score:        stats.WinRate*0.6 + stats.AvgTradeReturn*10,
			})
		}
		return recs
	}, &picks)

	sort.SliceStable(picks, func(i, j int) bool {
		return picks[i].Score > picks[j].Score
	})
	return picks
}

// forEachBatch — общий пакетный цикл: параллельный fan-out внутри пакета,
// пауза между пакетами, проверка отмены только на границе.
func forEachBatch[T any](ctx context.Context, universe []Instrument, pause time.Duration, onProgress ProgressFunc, work func(Instrument) []T, out *[]T) {
	total := len(universe)
	if total == 0 {
		return
	}

	for i := 0; i < total; i += batchSize {
		if ctx.Err() != nil {
			return
		}

		end := i + batchSize
		if end > total {
			end = total
		}
		batch := universe[i:end]

		perInstrument := make([][]T, len(batch))
		var wg sync.WaitGroup
		for j, inst := range batch {
			wg.Add(1)
			go func(j int, inst Instrument) {
				defer wg.Done()
				perInstrument[j] = work(inst)
			}(j, inst)
		}
		wg.Wait()

		for _, recs := range perInstrument {
			*out = append(*out, recs...)
		}

		if onProgress != nil {
			onProgress(end * 100 / total)
		}
		if end < total {
			time.Sleep(pause)
		}
	}
}
