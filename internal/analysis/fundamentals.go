// internal/analysis/fundamentals.go

// Фундаментальный скоринг: чистая таблица порогов без состояния и истории.
// Каждый показатель даёт баллы по корзинам, заметные пороги попадают в
// человекочитаемые причины. Отсутствующий показатель (nil) баллов не даёт.

package analysis

import (
	"fmt"

	"github.com/huchl0920/stockSelect/internal/marketdata"
)

type FundamentalScore struct {
	Score   int      `json:"score"`
	Reasons []string `json:"reasons"`
}

// ScoreFundamentals оценивает показатели по шкале 0-100:
// рентабельность до 40, рост до 30, оценка стоимости до 15.
func ScoreFundamentals(f *marketdata.Fundamentals) FundamentalScore {
	var result FundamentalScore
	if f == nil {
		return result
	}

	// Рентабельность (максимум 40)
	if f.ROE != nil {
		if *f.ROE > 0.15 {
			result.Score += 20
			result.Reasons = append(result.Reasons,
				fmt.Sprintf("Excellent ROE (%.1f%%)", *f.ROE*100))
		} else if *f.ROE > 0.08 {
			result.Score += 10
		}
	}
	if f.ProfitMargin != nil {
		if *f.ProfitMargin > 0.2 {
			result.Score += 20
			result.Reasons = append(result.Reasons,
				fmt.Sprintf("High profit margin (%.1f%%)", *f.ProfitMargin*100))
		} else if *f.ProfitMargin > 0.1 {
			result.Score += 10
		}
	}

	// Рост (максимум 30)
	if f.RevenueGrowth != nil {
		if *f.RevenueGrowth > 0.2 {
			result.Score += 15
			result.Reasons = append(result.Reasons,
				fmt.Sprintf("Strong revenue growth (%.1f%%)", *f.RevenueGrowth*100))
		} else if *f.RevenueGrowth > 0 {
			result.Score += 5
		}
	}
	if f.EarningsGrowth != nil {
		if *f.EarningsGrowth > 0.2 {
			result.Score += 15
			result.Reasons = append(result.Reasons,
				fmt.Sprintf("Strong earnings growth (%.1f%%)", *f.EarningsGrowth*100))
		} else if *f.EarningsGrowth > 0 {
			result.Score += 5
		}
	}

	// Оценка стоимости (максимум 15), консервативная проверка
	if f.TrailingPE != nil && *f.TrailingPE > 0 {
		if *f.TrailingPE < 15 {
			result.Score += 15
			result.Reasons = append(result.Reasons,
				fmt.Sprintf("Reasonably low P/E (%.1f)", *f.TrailingPE))
		} else if *f.TrailingPE < 25 {
			result.Score += 5
		}
	}

	if result.Score > 100 {
		result.Score = 100
	}
	return result
}
