package screener

import (
	"time"

	"github.com/huchl0920/stockSelect/internal"
	"github.com/huchl0920/stockSelect/internal/analysis"
	"github.com/huchl0920/stockSelect/internal/marketdata"
	"github.com/huchl0920/stockSelect/internal/scan"
)

// StrategyRunResult — результат прогона одной стратегии по одной бумаге:
// статистика бэктеста плюс состояние сигнала "на сегодня".
type StrategyRunResult struct {
	Strategy      internal.StrategyID     `json:"-"`
	Name          string                  `json:"strategy"`
	Result        internal.BacktestResult `json:"result"`
	Analysis      internal.SignalAnalysis `json:"analysis"`
	ExecutionTime time.Duration           `json:"-"`
}

// ResultPrinter — интерфейс для вывода результатов
type ResultPrinter interface {
	PrintBacktest(code string, results []StrategyRunResult)
	PrintScreen(strategy internal.StrategyID, results []scan.ScreenResult)
	PrintPicks(picks []scan.Pick)
	PrintHealth(code string, quote *marketdata.QuoteSnapshot, report *analysis.HealthReport)
	PrintProgress(percent int)
}

// ResultSaver — интерфейс для сохранения результатов
type ResultSaver interface {
	Save(filename string, payload interface{}) error
}

// Config — конфигурация приложения
type Config struct {
	Range        string  // период истории: 1y, 2y, 5y
	Interval     string  // интервал свечей, на практике всегда 1d
	UniverseFile string  // путь к JSON со вселенной; пусто — встроенный список
	OutputFile   string  // путь для сохранения результатов; пусто — не сохранять
	EntryPrice   float64 // цена входа для диагностики позиции
	Debug        bool
}
