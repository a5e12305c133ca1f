package screener

import (
	"fmt"
	"sort"
	"strings"

	"github.com/huchl0920/stockSelect/internal"
	"github.com/huchl0920/stockSelect/internal/analysis"
	"github.com/huchl0920/stockSelect/internal/marketdata"
	"github.com/huchl0920/stockSelect/internal/scan"
)

// ConsolePrinter — реализация вывода результатов в консоль
type ConsolePrinter struct {
	lastPercent int
}

// NewConsolePrinter — конструктор для ConsolePrinter
func NewConsolePrinter() *ConsolePrinter {
	return &ConsolePrinter{lastPercent: -1}
}

// PrintBacktest — сравнительная таблица стратегий по одной бумаге.
func (p *ConsolePrinter) PrintBacktest(code string, results []StrategyRunResult) {
	sort.Slice(results, func(i, j int) bool {
		return results[i].Result.TotalReturn > results[j].Result.TotalReturn
	})

	fmt.Println("\n" + strings.Repeat("=", 100))
	fmt.Printf("📊 СРАВНЕНИЕ СТРАТЕГИЙ: %s\n", code)
	fmt.Println(strings.Repeat("=", 100))
	fmt.Printf("%-18s %-12s %-10s %-12s %-14s %-20s\n",
		"Стратегия", "Доходность", "Сделки", "Win Rate", "Ср. сделка", "Сигнал сегодня")
	fmt.Println(strings.Repeat("-", 100))

	for i, r := range results {
		medal := "  "
		switch i {
		case 0:
			medal = "🥇"
		case 1:
			medal = "🥈"
		case 2:
			medal = "🥉"
		}

		fmt.Printf("%s %-15s %+10.2f%% %-10d %9.1f%% %+12.2f%% %-20s\n",
			medal,
			r.Name,
			r.Result.TotalReturn,
			len(r.Result.Trades),
			r.Result.WinRate,
			r.Result.AvgTradeReturn,
			signalStatus(r.Analysis))
	}
	fmt.Println(strings.Repeat("-", 100))
}

// PrintScreen — таблица скринера, первые 50 строк.
func (p *ConsolePrinter) PrintScreen(strategy internal.StrategyID, results []scan.ScreenResult) {
	fmt.Println("\n" + strings.Repeat("=", 100))
	fmt.Printf("🤖 РЕЗУЛЬТАТЫ СКРИНЕРА (%s): %d бумаг\n", strategy, len(results))
	fmt.Println(strings.Repeat("=", 100))
	fmt.Printf("%-14s %-8s %-14s %-10s %-12s %-30s\n",
		"Статус", "Код", "Название", "Win Rate", "Доходность", "Детали")
	fmt.Println(strings.Repeat("-", 100))

	shown := 0
	for _, r := range results {
		if shown >= 50 {
			break
		}
		fmt.Printf("%-14s %-8s %-14s %8.0f%% %+10.1f%% %-30s\n",
			screenStatus(r), r.Code, r.Name, r.WinRate, r.TotalReturn, r.Details)
		shown++
	}
	if len(results) > shown {
		fmt.Printf("... и ещё %d бумаг\n", len(results)-shown)
	}
}

// PrintPicks — рекомендации дня с уровнями входа.
func (p *ConsolePrinter) PrintPicks(picks []scan.Pick) {
	if len(picks) == 0 {
		fmt.Println("\n📭 Сегодня подтверждённых сигналов на покупку нет")
		return
	}

	fmt.Println("\n" + strings.Repeat("=", 110))
	fmt.Printf("⭐ СИГНАЛЫ ДНЯ: %d рекомендаций\n", len(picks))
	fmt.Println(strings.Repeat("=", 110))
	fmt.Printf("%-8s %-14s %-16s %-10s %-10s %-10s %-10s %-10s %-8s\n",
		"Код", "Название", "Стратегия", "Вход", "Цель", "Стоп", "Win Rate", "Ср. сдлк", "Балл")
	fmt.Println(strings.Repeat("-", 110))

	for _, pick := range picks {
		fmt.Printf("%-8s %-14s %-16s %10.2f %10.2f %10.2f %8.0f%% %+7.2f%% %8.1f\n",
			pick.Code, pick.Name, pick.StrategyName,
			pick.Entry, pick.Target, pick.StopLoss,
			pick.WinRate, pick.ExpReturn, pick.Score)
	}
	fmt.Println(strings.Repeat("-", 110))
}

// PrintHealth — отчёт диагностики позиции.
func (p *ConsolePrinter) PrintHealth(code string, quote *marketdata.QuoteSnapshot, report *analysis.HealthReport) {
	fmt.Println("\n" + strings.Repeat("=", 80))
	if quote != nil {
		fmt.Printf("🩺 ДИАГНОСТИКА: %s (%s)  %.2f  %+.2f (%+.2f%%)\n",
			code, quote.Name, quote.Price, quote.Change, quote.ChangePercent)
	} else {
		fmt.Printf("🩺 ДИАГНОСТИКА: %s\n", code)
	}
	fmt.Println(strings.Repeat("=", 80))

	trendEmoji := "➡️"
	switch report.Trend {
	case "Bullish":
		trendEmoji = "📈"
	case "Bearish":
		trendEmoji = "📉"
	}
	fmt.Printf("%s Балл здоровья: %d/100 (%s)\n", trendEmoji, report.Score, report.Trend)

	for _, reason := range report.Reasons {
		fmt.Printf("   • %s\n", reason)
	}

	fmt.Println(strings.Repeat("-", 80))
	t := report.Technical
	fmt.Printf("📐 SMA5 %.2f │ SMA20 %.2f │ SMA60 %.2f │ ATR %.2f │ RSI %.1f\n",
		t.SMA5, t.SMA20, t.SMA60, t.ATR, t.RSI)
	fmt.Printf("📏 Поддержка %.2f │ Сопротивление %.2f\n", t.Support, t.Resistance)

	fmt.Println(strings.Repeat("-", 80))
	fmt.Printf("🛑 Стоп-лосс:   %.2f — %s\n", report.StopLoss, report.StopLossReason)
	if report.TakeProfit > 0 {
		fmt.Printf("🎯 Тейк-профит: %.2f — %s\n", report.TakeProfit, report.TakeProfitReason)
	}

	if report.Fundamental != nil {
		fmt.Println(strings.Repeat("-", 80))
		fmt.Printf("🏦 Фундаментальный балл: %d/100\n", report.Fundamental.Score)
		for _, reason := range report.Fundamental.Reasons {
			fmt.Printf("   • %s\n", reason)
		}
	}
	fmt.Println(strings.Repeat("=", 80))
}

// PrintProgress — прогресс сканирования, без повторов одного процента.
func (p *ConsolePrinter) PrintProgress(percent int) {
	if percent == p.lastPercent {
		return
	}
	p.lastPercent = percent
	fmt.Printf("📊 Прогресс: %d%%\n", percent)
}

func signalStatus(a internal.SignalAnalysis) string {
	switch {
	case a.Signal == internal.BUY:
		return "🟢 BUY: " + a.Details
	case a.Signal == internal.SELL:
		return "🔴 SELL: " + a.Details
	case a.Prediction != internal.NoPrediction:
		return "🔵 WATCH: " + a.Details
	default:
		return "-"
	}
}

func screenStatus(r scan.ScreenResult) string {
	switch {
	case r.Signal == internal.BUY:
		return "🟢 BUY NOW"
	case r.Signal == internal.SELL:
		return "🔴 SELL"
	case r.Prediction == internal.ApproachingBuy:
		return "🔵 WATCH"
	case r.Prediction == internal.ApproachingSell:
		return "🟠 WATCH"
	default:
		return "-"
	}
}
