// candle.go
package internal

import (
	"log"
	"time"
)

// Candle — дневная свеча OHLCV. Последовательность свечей всегда отсортирована
// по возрастанию даты, по одной свече на торговый день.
type Candle struct {
	Date   string  `json:"date"` // формат YYYY-MM-DD
	Open   float64 `json:"open"`
	High   float64 `json:"high"`
	Low    float64 `json:"low"`
	Close  float64 `json:"close"`
	Volume int64   `json:"volume"`
}

// ToTime возвращает дату свечи как time.Time.
func (c Candle) ToTime() time.Time {
	t, err := time.Parse("2006-01-02", c.Date)
	if err != nil {
		log.Printf("не удалось распарсить дату свечи '%s': %v", c.Date, err)
		return time.Time{}
	}
	return t
}

type SignalType int

const (
	HOLD SignalType = iota
	BUY
	SELL
)

func (s SignalType) String() string {
	return [...]string{"HOLD", "BUY", "SELL"}[s]
}

// Signal — торговый сигнал на конкретной свече. Reason попадает в журнал
// бэктеста как человекочитаемое обоснование действия.
type Signal struct {
	Type   SignalType
	Reason string
}
