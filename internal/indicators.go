// indicators.go
// Библиотека индикаторов. Все функции принимают полную последовательность свечей
// и возвращают ряд той же длины, выровненный по индексам со свечами. Позиции до
// накопления необходимой истории заполняются сентинелом NaN — вызывающий код
// обязан проверять Defined(), а не трактовать их как ноль.

package internal

import (
	"math"

	"gonum.org/v1/gonum/stat"
)

// Undefined — сентинел "значение не определено" для начала ряда.
func Undefined() float64 {
	return math.NaN()
}

// Defined сообщает, рассчитано ли значение индикатора в данной позиции.
func Defined(v float64) bool {
	return !math.IsNaN(v)
}

// ClosePrices извлекает цены закрытия в отдельный массив.
func ClosePrices(candles []Candle) []float64 {
	prices := make([]float64, len(candles))
	for i, c := range candles {
		prices[i] = c.Close
	}
	return prices
}

// CalculateSMA — простая скользящая средняя по ценам закрытия.
// Не определена для индексов < period-1.
func CalculateSMA(candles []Candle, period int) []float64 {
	prices := ClosePrices(candles)
	sma := make([]float64, len(candles))
	for i := range sma {
		if i < period-1 {
			sma[i] = Undefined()
			continue
		}
		sma[i] = stat.Mean(prices[i-period+1:i+1], nil)
	}
	return sma
}

// CalculateEMA — экспоненциальная скользящая средняя, затравка — первая цена
// закрытия, k = 2/(period+1). Определена с индекса 0.
func CalculateEMA(candles []Candle, period int) []float64 {
	return CalculateEMAForValues(ClosePrices(candles), period)
}

// CalculateEMAForValues — EMA для произвольного ряда значений, затравка —
// первый элемент ряда. Используется и для сигнальной линии MACD.
func CalculateEMAForValues(values []float64, period int) []float64 {
	if len(values) == 0 {
		return nil
	}
	ema := make([]float64, len(values))
	k := 2.0 / (float64(period) + 1.0)
	ema[0] = values[0]
	for i := 1; i < len(values); i++ {
		ema[i] = values[i]*k + ema[i-1]*(1-k)
	}
	return ema
}

// CalculateRSI — RSI со сглаживанием Уайлдера. Затравка — средние прирост и
// падение по первым period изменениям цены. Нулевое среднее падение трактуется
// как 1: это сознательное приближение (RSI стремится к 100, а не становится
// неопределённым), унаследованное от исходной реализации.
func CalculateRSI(candles []Candle, period int) []float64 {
	rsi := make([]float64, len(candles))
	for i := range rsi {
		rsi[i] = Undefined()
	}
	if len(candles) < period+1 {
		return rsi
	}

	var gains, losses float64
	for i := 1; i <= period; i++ {
		change := candles[i].Close - candles[i-1].Close
		if change > 0 {
			gains += change
		} else {
			losses += -change
		}
	}
	avgGain := gains / float64(period)
	avgLoss := losses / float64(period)

	rsi[period] = 100 - 100/(1+avgGain/orOne(avgLoss))

	for i := period + 1; i < len(candles); i++ {
		change := candles[i].Close - candles[i-1].Close
		gain, loss := 0.0, 0.0
		if change > 0 {
			gain = change
		} else {
			loss = -change
		}
		avgGain = (avgGain*float64(period-1) + gain) / float64(period)
		avgLoss = (avgLoss*float64(period-1) + loss) / float64(period)
		rsi[i] = 100 - 100/(1+avgGain/orOne(avgLoss))
	}
	return rsi
}

func orOne(v float64) float64 {
	if v == 0 {
		return 1
	}
	return v
}

// CalculateATR — Average True Range со сглаживанием Уайлдера.
// TR первой свечи равен 0 (нет предыдущего закрытия), atr[0] = tr[0].
func CalculateATR(candles []Candle, period int) []float64 {
	atr := make([]float64, len(candles))
	if len(candles) == 0 {
		return atr
	}
	atr[0] = 0
	for i := 1; i < len(candles); i++ {
		tr := trueRange(candles[i], candles[i-1].Close)
		atr[i] = (atr[i-1]*float64(period-1) + tr) / float64(period)
	}
	return atr
}

func trueRange(c Candle, prevClose float64) float64 {
	return math.Max(c.High-c.Low,
		math.Max(math.Abs(c.High-prevClose), math.Abs(c.Low-prevClose)))
}

// CalculateMACD — MACD линия и сигнальная линия. Обе EMA считаются с индекса 0
// без отсечки по периодам, поэтому ранние значения построены на незрелых EMA —
// вызывающий код не должен доверять индексам до ~slow+signal. Это поведение
// воспроизводится намеренно, см. DESIGN.md.
func CalculateMACD(candles []Candle, fastPeriod, slowPeriod, signalPeriod int) (macdLine, signalLine []float64) {
	fastEMA := CalculateEMA(candles, fastPeriod)
	slowEMA := CalculateEMA(candles, slowPeriod)

	macdLine = make([]float64, len(candles))
	for i := range macdLine {
		macdLine[i] = fastEMA[i] - slowEMA[i]
	}
	signalLine = CalculateEMAForValues(macdLine, signalPeriod)
	return macdLine, signalLine
}

// CalculateBollinger — полосы Боллинджера: SMA ± multiplier * популяционное
// стандартное отклонение за то же окно. Не определены до period-1.
func CalculateBollinger(candles []Candle, period int, multiplier float64) (upper, middle, lower []float64) {
	prices := ClosePrices(candles)
	upper = make([]float64, len(candles))
	middle = make([]float64, len(candles))
	lower = make([]float64, len(candles))

	for i := range candles {
		if i < period-1 {
			upper[i], middle[i], lower[i] = Undefined(), Undefined(), Undefined()
			continue
		}
		window := prices[i-period+1 : i+1]
		mean := stat.Mean(window, nil)
		std := stat.PopStdDev(window, nil)
		middle[i] = mean
		upper[i] = mean + std*multiplier
		lower[i] = mean - std*multiplier
	}
	return upper, middle, lower
}

// CalculateSupertrend — значения Supertrend и ряд направления тренда
// (+1 — восходящий, -1 — нисходящий). Полосы строятся от hl2 ± multiplier*ATR
// и храповиком подтягиваются к цене: верхняя финальная полоса может только
// снижаться, пока закрытие не пробьёт её вверх, нижняя — только расти, пока
// закрытие не пробьёт её вниз. Направление — машина состояний: каждый шаг
// зависит от предыдущего направления, а не только от самих полос.
func CalculateSupertrend(candles []Candle, period int, multiplier float64) (values []float64, direction []int) {
	n := len(candles)
	values = make([]float64, n)
	direction = make([]int, n)
	if n == 0 {
		return values, direction
	}

	atr := CalculateATR(candles, period)

	basicUpper := make([]float64, n)
	basicLower := make([]float64, n)
	for i, c := range candles {
		hl2 := (c.High + c.Low) / 2
		basicUpper[i] = hl2 + multiplier*atr[i]
		basicLower[i] = hl2 - multiplier*atr[i]
	}

	finalUpper := make([]float64, n)
	finalLower := make([]float64, n)
	finalUpper[0] = basicUpper[0]
	finalLower[0] = basicLower[0]
	for i := 1; i < n; i++ {
		if basicUpper[i] < finalUpper[i-1] || candles[i-1].Close > finalUpper[i-1] {
			finalUpper[i] = basicUpper[i]
		} else {
			finalUpper[i] = finalUpper[i-1]
		}
		if basicLower[i] > finalLower[i-1] || candles[i-1].Close < finalLower[i-1] {
			finalLower[i] = basicLower[i]
		} else {
			finalLower[i] = finalLower[i-1]
		}
	}

	direction[0] = 1
	values[0] = basicLower[0]
	for i := 1; i < n; i++ {
		if direction[i-1] == 1 {
			if candles[i].Close < finalLower[i] {
				direction[i] = -1
				values[i] = finalUpper[i]
			} else {
				direction[i] = 1
				values[i] = finalLower[i]
			}
		} else {
			if candles[i].Close > finalUpper[i] {
				direction[i] = 1
				values[i] = finalLower[i]
			} else {
				direction[i] = -1
				values[i] = finalUpper[i]
			}
		}
	}
	return values, direction
}

// HighestHigh — максимум High по срезу свечей.
func HighestHigh(candles []Candle) float64 {
	if len(candles) == 0 {
		return Undefined()
	}
	max := candles[0].High
	for _, c := range candles[1:] {
		if c.High > max {
			max = c.High
		}
	}
	return max
}

// LowestLow — минимум Low по срезу свечей.
func LowestLow(candles []Candle) float64 {
	if len(candles) == 0 {
		return Undefined()
	}
	min := candles[0].Low
	for _, c := range candles[1:] {
		if c.Low < min {
			min = c.Low
		}
	}
	return min
}
