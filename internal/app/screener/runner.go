package screener

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/pkg/errors"

	"github.com/huchl0920/stockSelect/internal"
	"github.com/huchl0920/stockSelect/internal/analysis"
	"github.com/huchl0920/stockSelect/internal/marketdata"
	"github.com/huchl0920/stockSelect/internal/scan"
)

// Runner — связывает слой данных, стратегии и сканер в команды приложения.
// Кэш истории живёт столько же, сколько Runner: один запуск — одна сессия.
type Runner struct {
	config  Config
	client  *marketdata.Client
	cache   *marketdata.HistoryCache
	printer ResultPrinter
	saver   ResultSaver
}

// NewRunner — конструктор для Runner
func NewRunner(config Config, printer ResultPrinter, saver ResultSaver) *Runner {
	client := marketdata.NewClient()
	return &Runner{
		config:  config,
		client:  client,
		cache:   marketdata.NewHistoryCache(client),
		printer: printer,
		saver:   saver,
	}
}

// universe возвращает вселенную: из файла, если задан, иначе встроенную.
func (r *Runner) universe() ([]scan.Instrument, error) {
	if r.config.UniverseFile != "" {
		return scan.LoadUniverse(r.config.UniverseFile)
	}
	return scan.PopularUniverse(), nil
}

// RunBacktest — прогоняет все шесть стратегий по одной бумаге параллельно.
// Ошибка загрузки истории здесь доходит до пользователя: это явный запрос
// по конкретной бумаге, а не сканирование.
func (r *Runner) RunBacktest(ctx context.Context, code string) error {
	fmt.Printf("📥 Загрузка истории %s (%s, %s)...\n", code, r.config.Range, r.config.Interval)

	candles, err := r.cache.History(ctx, code, r.config.Range, r.config.Interval)
	if err != nil {
		return errors.Wrapf(err, "backtest %s", code)
	}
	fmt.Printf("📊 Данных для анализа: %d свечей\n", len(candles))

	strategies := internal.AllStrategies()
	resultsChan := make(chan StrategyRunResult, len(strategies))
	var wg sync.WaitGroup

	for _, strategy := range strategies {
		wg.Add(1)
		go func(s internal.Strategy) {
			defer wg.Done()
			start := time.Now()
			result := internal.Backtest(candles, s.GenerateSignals(candles))
			resultsChan <- StrategyRunResult{
				Strategy:      s.ID(),
				Name:          s.Name(),
				Result:        result,
				Analysis:      s.AnalyzeSignal(candles),
				ExecutionTime: time.Since(start),
			}
		}(strategy)
	}
	wg.Wait()
	close(resultsChan)

	var results []StrategyRunResult
	for result := range resultsChan {
		results = append(results, result)
		if r.config.Debug {
			fmt.Printf("🐛 DEBUG: %-15s │ сделок: %3d │ время: %v\n",
				result.Name, len(result.Result.Trades), result.ExecutionTime)
		}
	}

	r.printer.PrintBacktest(code, results)

	if r.config.OutputFile != "" {
		return r.saver.Save(r.config.OutputFile, results)
	}
	return nil
}

// RunScreen — скринер одной стратегии по всей вселенной.
func (r *Runner) RunScreen(ctx context.Context, strategyID internal.StrategyID) error {
	universe, err := r.universe()
	if err != nil {
		return err
	}

	fmt.Printf("🤖 Сканирование %d бумаг стратегией %s...\n", len(universe), strategyID)

	results, err := scan.Screen(ctx, r.cache, universe, strategyID, r.config.Range, r.printer.PrintProgress)
	if err != nil {
		return errors.Wrap(err, "screen")
	}

	r.printer.PrintScreen(strategyID, results)

	if r.config.OutputFile != "" {
		return r.saver.Save(r.config.OutputFile, results)
	}
	return nil
}

// RunPicks — рекомендации дня: все стратегии против всей вселенной.
func (r *Runner) RunPicks(ctx context.Context) error {
	universe, err := r.universe()
	if err != nil {
		return err
	}

	fmt.Printf("🔍 Поиск сигналов дня по %d бумагам (%d стратегий)...\n",
		len(universe), len(internal.AllStrategies()))

	picks := scan.DailyPicks(ctx, r.cache, universe, r.printer.PrintProgress)
	r.printer.PrintPicks(picks)

	if r.config.OutputFile != "" {
		return r.saver.Save(r.config.OutputFile, picks)
	}
	return nil
}

// RunHealth — диагностика одной бумаги: котировка, техническое состояние,
// фундаментальный скоринг. Недоступность фундаментальных данных не ошибка —
// диагностика проходит без них.
func (r *Runner) RunHealth(ctx context.Context, code string) error {
	candles, err := r.cache.History(ctx, code, r.config.Range, r.config.Interval)
	if err != nil {
		return errors.Wrapf(err, "health %s", code)
	}

	quote, err := r.client.FetchQuote(code)
	if err != nil && r.config.Debug {
		fmt.Printf("🐛 DEBUG: котировка недоступна: %v\n", err)
	}

	fundamentals, err := r.client.FetchFundamentals(ctx, code)
	if err != nil {
		if r.config.Debug {
			fmt.Printf("🐛 DEBUG: фундаментальные данные недоступны: %v\n", err)
		}
		fundamentals = nil
	}

	report, err := analysis.CheckHealth(candles, r.config.EntryPrice, fundamentals)
	if err != nil {
		return errors.Wrapf(err, "health %s", code)
	}

	r.printer.PrintHealth(code, quote, report)

	if r.config.OutputFile != "" {
		return r.saver.Save(r.config.OutputFile, report)
	}
	return nil
}

// RunFetch — прогрев кэша истории по всей вселенной.
func (r *Runner) RunFetch(ctx context.Context) error {
	universe, err := r.universe()
	if err != nil {
		return err
	}

	fmt.Printf("📥 Предзагрузка истории %d бумаг...\n", len(universe))

	codes := make([]string, len(universe))
	for i, inst := range universe {
		codes[i] = inst.Code
	}
	r.cache.Preload(ctx, codes, r.printer.PrintProgress)

	loaded := 0
	for _, code := range codes {
		if _, ok := r.cache.Cached(code, marketdata.DefaultRange, marketdata.DefaultInterval); ok {
			loaded++
		}
	}
	fmt.Printf("✅ Загружено %d из %d бумаг\n", loaded, len(codes))
	return nil
}
