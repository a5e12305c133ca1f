// internal/cli/commands.go

// Команды приложения. Конфигурация собирается в три слоя: значения по
// умолчанию, переменные окружения (.env через godotenv), флаги командной
// строки. Флаг всегда побеждает.

package cli

import (
	"fmt"
	"os"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/huchl0920/stockSelect/internal"
	"github.com/huchl0920/stockSelect/internal/app/screener"
)

var validRanges = map[string]bool{"1y": true, "2y": true, "5y": true}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

// NewRootCmd — собирает дерево команд приложения.
func NewRootCmd() *cobra.Command {
	// .env необязателен: его отсутствие — не ошибка.
	_ = godotenv.Load()

	cfg := screener.Config{
		Range:        envOr("STOCKSELECT_RANGE", "2y"),
		Interval:     envOr("STOCKSELECT_INTERVAL", "1d"),
		UniverseFile: os.Getenv("STOCKSELECT_UNIVERSE"),
	}

	rootCmd := &cobra.Command{
		Use:   "stockselect",
		Short: "Сканер тайваньского рынка акций на технических стратегиях",
		Long: `stockselect — скринер и бэктестер для тайваньского рынка акций.

Шесть встроенных стратегий (MA, RSI, BREAKOUT, BOLLINGER, MACD, SUPERTREND),
классификация сигналов "на сегодня", рекомендации дня и диагностика позиций.
Данные загружаются с Yahoo Finance с перебором площадок TSE/OTC.`,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if !validRanges[cfg.Range] {
				return fmt.Errorf("недопустимый период %q (доступны: 1y, 2y, 5y)", cfg.Range)
			}
			return nil
		},
		SilenceUsage: true,
	}

	rootCmd.PersistentFlags().StringVar(&cfg.Range, "range", cfg.Range, "период истории: 1y, 2y, 5y")
	rootCmd.PersistentFlags().StringVar(&cfg.UniverseFile, "universe", cfg.UniverseFile, "JSON-файл со вселенной инструментов")
	rootCmd.PersistentFlags().StringVar(&cfg.OutputFile, "output", "", "сохранить результаты в JSON-файл")
	rootCmd.PersistentFlags().BoolVar(&cfg.Debug, "debug", false, "отладочный вывод")

	rootCmd.AddCommand(newBacktestCmd(&cfg))
	rootCmd.AddCommand(newScreenCmd(&cfg))
	rootCmd.AddCommand(newPicksCmd(&cfg))
	rootCmd.AddCommand(newHealthCmd(&cfg))
	rootCmd.AddCommand(newFetchCmd(&cfg))

	return rootCmd
}

func newRunner(cfg *screener.Config) *screener.Runner {
	return screener.NewRunner(*cfg, screener.NewConsolePrinter(), screener.NewJSONSaver())
}

func newBacktestCmd(cfg *screener.Config) *cobra.Command {
	return &cobra.Command{
		Use:   "backtest [CODE]",
		Short: "Прогнать все стратегии по одной бумаге",
		Long: `Загружает историю бумаги и прогоняет все шесть стратегий параллельно.
Пример: stockselect backtest 2330 --range=2y`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return newRunner(cfg).RunBacktest(cmd.Context(), args[0])
		},
	}
}

func newScreenCmd(cfg *screener.Config) *cobra.Command {
	return &cobra.Command{
		Use:   "screen [STRATEGY]",
		Short: "Просканировать вселенную одной стратегией",
		Long: fmt.Sprintf(`Скринер: классификатор и бэктест выбранной стратегии по всем бумагам.
Доступные стратегии: %s.
Пример: stockselect screen MA`, strings.Join(internal.StrategyNames(), ", ")),
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			strategyID, err := internal.ParseStrategyID(args[0])
			if err != nil {
				return err
			}
			return newRunner(cfg).RunScreen(cmd.Context(), strategyID)
		},
	}
}

func newPicksCmd(cfg *screener.Config) *cobra.Command {
	return &cobra.Command{
		Use:   "picks",
		Short: "Рекомендации дня: подтверждённые сигналы на покупку",
		RunE: func(cmd *cobra.Command, args []string) error {
			return newRunner(cfg).RunPicks(cmd.Context())
		},
	}
}

func newHealthCmd(cfg *screener.Config) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "health [CODE]",
		Short: "Диагностика бумаги: балл здоровья, уровни стопа и тейка",
		Long: `Технический и фундаментальный разбор одной бумаги.
Пример: stockselect health 2330 --entry=580`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return newRunner(cfg).RunHealth(cmd.Context(), args[0])
		},
	}
	cmd.Flags().Float64Var(&cfg.EntryPrice, "entry", 0, "цена входа в позицию (0 — позиции нет)")
	return cmd
}

func newFetchCmd(cfg *screener.Config) *cobra.Command {
	return &cobra.Command{
		Use:   "fetch",
		Short: "Прогреть кэш истории по всей вселенной",
		RunE: func(cmd *cobra.Command, args []string) error {
			return newRunner(cfg).RunFetch(cmd.Context())
		},
	}
}
