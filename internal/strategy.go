// strategy.go
package internal

import (
	"errors"
	"fmt"
	"sort"
	"strings"
)

// ErrUnknownStrategy — запрошенный идентификатор не зарегистрирован.
var ErrUnknownStrategy = errors.New("unknown strategy")

// StrategyID — идентификатор стратегии. Диспетчеризация по перечислению, а не
// по строковым именам: каждая стратегия регистрирует себя в init() своего
// пакета и отвечает одновременно за бэктест и за классификацию сигнала.
type StrategyID int

const (
	StrategyMA StrategyID = iota
	StrategyRSI
	StrategyBreakout
	StrategyBollinger
	StrategyMACD
	StrategySupertrend
)

var strategyIDNames = map[StrategyID]string{
	StrategyMA:         "MA",
	StrategyRSI:        "RSI",
	StrategyBreakout:   "BREAKOUT",
	StrategyBollinger:  "BOLLINGER",
	StrategyMACD:       "MACD",
	StrategySupertrend: "SUPERTREND",
}

func (id StrategyID) String() string {
	if name, ok := strategyIDNames[id]; ok {
		return name
	}
	return fmt.Sprintf("StrategyID(%d)", int(id))
}

// ParseStrategyID разбирает идентификатор стратегии из командной строки.
func ParseStrategyID(s string) (StrategyID, error) {
	upper := strings.ToUpper(strings.TrimSpace(s))
	for id, name := range strategyIDNames {
		if name == upper {
			return id, nil
		}
	}
	return 0, fmt.Errorf("неизвестная стратегия: %q (доступны: %s)", s, strings.Join(StrategyNames(), ", "))
}

// StrategyNames возвращает имена всех идентификаторов в стабильном порядке.
func StrategyNames() []string {
	names := make([]string, 0, len(strategyIDNames))
	for _, name := range strategyIDNames {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// StrategyConfig defines the interface for strategy configuration
type StrategyConfig interface {
	Validate() error
	DefaultConfigString() string
}

// Strategy — пара контрактов одной стратегии: генерация сигналов для бэктеста
// и классификация состояния "на сегодня" для скринера.
type Strategy interface {
	ID() StrategyID
	Name() string

	// GenerateSignals возвращает ряд сигналов той же длины, что и свечи.
	// Сигналы выдаются безотносительно состояния позиции: машина состояний
	// в Backtest сама игнорирует повторные BUY и SELL без позиции.
	GenerateSignals(candles []Candle) []Signal

	// AnalyzeSignal оценивает только последнюю свечу относительно предыдущей.
	AnalyzeSignal(candles []Candle) SignalAnalysis
}

// PredictionType — градация "приближающегося" сигнала.
type PredictionType int

const (
	NoPrediction PredictionType = iota
	ApproachingBuy
	ApproachingSell
)

func (p PredictionType) String() string {
	return [...]string{"", "APPROACHING_BUY", "APPROACHING_SELL"}[p]
}

// SignalAnalysis — состояние сигнала по последней свече. Подтверждённый сигнал
// (Signal != HOLD) подавляет расчёт прогноза, но структурно поля независимы.
// Нулевое значение структуры — легитимный ответ "недостаточно истории".
type SignalAnalysis struct {
	Signal            SignalType     `json:"signal"`
	Prediction        PredictionType `json:"prediction"`
	Details           string         `json:"details"`
	SuggestedEntry    float64        `json:"suggestedEntry,omitempty"`
	SuggestedTarget   float64        `json:"suggestedTarget,omitempty"`
	SuggestedStopLoss float64        `json:"suggestedStopLoss,omitempty"`
}

// MinAnalysisCandles — минимум истории для классификации сигнала.
const MinAnalysisCandles = 60

// HasMinimumHistory сообщает, достаточно ли свечей для AnalyzeSignal.
func HasMinimumHistory(candles []Candle) bool {
	return len(candles) >= MinAnalysisCandles
}

var strategies = make(map[StrategyID]Strategy)

// RegisterStrategy регистрирует стратегию. Вызывается из init() пакетов
// strategies/*; повторная регистрация одного ID — ошибка программиста.
func RegisterStrategy(s Strategy) {
	if _, exists := strategies[s.ID()]; exists {
		panic(fmt.Sprintf("стратегия %s зарегистрирована дважды", s.ID()))
	}
	strategies[s.ID()] = s
}

// GetStrategy возвращает стратегию по идентификатору.
func GetStrategy(id StrategyID) (Strategy, bool) {
	s, ok := strategies[id]
	return s, ok
}

// AllStrategies возвращает зарегистрированные стратегии в порядке перечисления.
func AllStrategies() []Strategy {
	ids := make([]int, 0, len(strategies))
	for id := range strategies {
		ids = append(ids, int(id))
	}
	sort.Ints(ids)
	result := make([]Strategy, 0, len(ids))
	for _, id := range ids {
		result = append(result, strategies[StrategyID(id)])
	}
	return result
}
