// backtest.go
package internal

import (
	"log"
	"math"

	"gonum.org/v1/gonum/stat"
)

// StartingCapital — условный стартовый капитал каждого прогона.
const StartingCapital = 100000.0

// Position — открытая позиция внутри прогона. Живёт только в цикле Backtest:
// уничтожается при продаже или по завершении прогона (незакрытая позиция не
// порождает сделку).
type Position struct {
	EntryDate  string
	EntryPrice float64
}

// Trade — завершённый круг покупка-продажа.
type Trade struct {
	EntryDate     string  `json:"entryDate"`
	ExitDate      string  `json:"exitDate"`
	EntryPrice    float64 `json:"entryPrice"`
	ExitPrice     float64 `json:"exitPrice"`
	ReturnPercent float64 `json:"returnPercent"`
	Profit        float64 `json:"profit"`
}

// LogEntry — запись журнала действий. Заполняется 1:1 с открытием и закрытием
// позиций; PnL имеет смысл только для SELL.
type LogEntry struct {
	Type   SignalType `json:"type"`
	Date   string     `json:"date"`
	Price  float64    `json:"price"`
	Reason string     `json:"reason"`
	PnL    float64    `json:"pnl,omitempty"`
}

// BacktestResult — итог прогона стратегии.
type BacktestResult struct {
	Trades         []Trade    `json:"trades"`
	Log            []LogEntry `json:"log"`
	WinRate        float64    `json:"winRate"`
	TotalReturn    float64    `json:"totalReturn"`
	AvgTradeReturn float64    `json:"avgTradeReturn"`
}

// Backtest прогоняет сигналы стратегии через машину состояний одиночной
// длинной позиции: BUY при открытой позиции и SELL без позиции игнорируются.
// Капитал реинвестируется целиком, прибыль каждой сделки округляется до целых
// единиц (roundHalfUp) — это намеренный шум компаундирования, он входит в
// контракт результата. TotalReturn считается от итогового капитала, а не как
// сумма доходностей сделок: при компаундировании эти величины расходятся.
func Backtest(candles []Candle, signals []Signal) BacktestResult {
	if len(candles) != len(signals) {
		log.Fatal("Mismatch between candles and signals length")
	}

	capital := StartingCapital
	var position *Position
	trades := []Trade{}
	logEntries := []LogEntry{}

	for i, signal := range signals {
		today := candles[i]

		switch signal.Type {
		case BUY:
			if position == nil {
				position = &Position{EntryDate: today.Date, EntryPrice: today.Close}
				logEntries = append(logEntries, LogEntry{
					Type:   BUY,
					Date:   today.Date,
					Price:  today.Close,
					Reason: signal.Reason,
				})
			}
		case SELL:
			if position != nil {
				pnl := (today.Close - position.EntryPrice) / position.EntryPrice
				profit := roundHalfUp(capital * pnl)
				capital += profit

				trades = append(trades, Trade{
					EntryDate:     position.EntryDate,
					ExitDate:      today.Date,
					EntryPrice:    position.EntryPrice,
					ExitPrice:     today.Close,
					ReturnPercent: pnl * 100,
					Profit:        profit,
				})
				logEntries = append(logEntries, LogEntry{
					Type:   SELL,
					Date:   today.Date,
					Price:  today.Close,
					Reason: signal.Reason,
					PnL:    pnl * 100,
				})
				position = nil
			}
		}
	}

	return BacktestResult{
		Trades:         trades,
		Log:            logEntries,
		WinRate:        winRate(trades),
		TotalReturn:    (capital - StartingCapital) / StartingCapital * 100,
		AvgTradeReturn: avgTradeReturn(trades),
	}
}

// roundHalfUp округляет как Math.round: половинки всегда вверх, а не от нуля.
func roundHalfUp(v float64) float64 {
	return math.Floor(v + 0.5)
}

func winRate(trades []Trade) float64 {
	if len(trades) == 0 {
		return 0
	}
	wins := 0
	for _, t := range trades {
		if t.ReturnPercent > 0 {
			wins++
		}
	}
	return float64(wins) / float64(len(trades)) * 100
}

func avgTradeReturn(trades []Trade) float64 {
	if len(trades) == 0 {
		return 0
	}
	returns := make([]float64, len(trades))
	for i, t := range trades {
		returns[i] = t.ReturnPercent
	}
	return stat.Mean(returns, nil)
}
