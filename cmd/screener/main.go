package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/huchl0920/stockSelect/internal/cli"

	// Регистрация стратегий через init().
	_ "github.com/huchl0920/stockSelect/strategies/momentum"
	_ "github.com/huchl0920/stockSelect/strategies/oscillators"
	_ "github.com/huchl0920/stockSelect/strategies/trend"
	_ "github.com/huchl0920/stockSelect/strategies/volatility"
)

func main() {
	// Ctrl+C останавливает сканирование на границе пакета.
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := cli.NewRootCmd().ExecuteContext(ctx); err != nil {
		fmt.Printf("❌ %v\n", err)
		os.Exit(1)
	}
}
