// internal/marketdata/fundamentals.go

// Фундаментальные показатели через /v10/finance/quoteSummary.
// Любое поле может отсутствовать — Yahoo отдаёт пустые объекты для бумаг
// без отчётности, поэтому всё через указатели.

package marketdata

import (
	"context"
	"encoding/json"

	"github.com/pkg/errors"
)

type Fundamentals struct {
	ROE            *float64 `json:"roe,omitempty"`
	ProfitMargin   *float64 `json:"profit_margin,omitempty"`
	RevenueGrowth  *float64 `json:"revenue_growth,omitempty"`
	EarningsGrowth *float64 `json:"earnings_growth,omitempty"`
	TrailingPE     *float64 `json:"trailing_pe,omitempty"`
}

// Числа в quoteSummary завёрнуты в {"raw": ..., "fmt": ...}.
type rawNumber struct {
	Raw *float64 `json:"raw"`
}

type quoteSummaryResponse struct {
	QuoteSummary struct {
		Result []struct {
			FinancialData struct {
				ReturnOnEquity rawNumber `json:"returnOnEquity"`
				ProfitMargins  rawNumber `json:"profitMargins"`
				RevenueGrowth  rawNumber `json:"revenueGrowth"`
				EarningsGrowth rawNumber `json:"earningsGrowth"`
			} `json:"financialData"`
			DefaultKeyStatistics struct {
				TrailingPE rawNumber `json:"trailingPE"`
			} `json:"defaultKeyStatistics"`
		} `json:"result"`
	} `json:"quoteSummary"`
}

// FetchFundamentals загружает показатели с тем же перебором площадок,
// что и история. Отсутствие данных — не ошибка: вернётся структура
// с nil-полями, скоринг сам решит, что с этим делать.
func (c *Client) FetchFundamentals(ctx context.Context, code string) (*Fundamentals, error) {
	for _, suffix := range exchangeSuffixes {
		f, err := c.fetchQuoteSummary(ctx, code+suffix)
		if err != nil {
			continue
		}
		return f, nil
	}
	return nil, errors.Wrapf(ErrDataUnavailable, "fundamentals for %s", code)
}

func (c *Client) fetchQuoteSummary(ctx context.Context, ticker string) (*Fundamentals, error) {
	resp, err := c.http.R().
		SetContext(ctx).
		SetQueryParam("modules", "financialData,defaultKeyStatistics").
		Get("/v10/finance/quoteSummary/" + ticker)
	if err != nil {
		return nil, errors.Wrapf(err, "fetch quoteSummary %s", ticker)
	}
	if resp.StatusCode() != 200 {
		return nil, errors.Errorf("quoteSummary %s: status %d", ticker, resp.StatusCode())
	}

	var parsed quoteSummaryResponse
	if err := json.Unmarshal(resp.Body(), &parsed); err != nil {
		return nil, errors.Wrapf(err, "parse quoteSummary %s", ticker)
	}
	if len(parsed.QuoteSummary.Result) == 0 {
		return nil, errors.Errorf("quoteSummary %s: empty result", ticker)
	}

	r := parsed.QuoteSummary.Result[0]
	return &Fundamentals{
		ROE:            r.FinancialData.ReturnOnEquity.Raw,
		ProfitMargin:   r.FinancialData.ProfitMargins.Raw,
		RevenueGrowth:  r.FinancialData.RevenueGrowth.Raw,
		EarningsGrowth: r.FinancialData.EarningsGrowth.Raw,
		TrailingPE:     r.DefaultKeyStatistics.TrailingPE.Raw,
	}, nil
}
