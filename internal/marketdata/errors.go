package marketdata

import "errors"

// Сигнальные ошибки слоя данных. Оборачиваются через pkg/errors,
// проверяются через errors.Is.
var (
	// ErrDataUnavailable — история не найдена ни на одной площадке.
	ErrDataUnavailable = errors.New("marketdata: data unavailable")

	// ErrInsufficientHistory — свечей меньше, чем требует анализ.
	ErrInsufficientHistory = errors.New("marketdata: insufficient history")
)
