// internal/marketdata/client.go

// Клиент Yahoo Finance для тайваньского рынка.
//
// Код акции приходит без суффикса ("2330"). Сначала пробуем основную биржу
// (.TW), при неудаче — внебиржевой рынок (.TWO). Свечи с пустым закрытием
// (неполные торговые дни) отбрасываются.

package marketdata

import (
	"context"
	"encoding/json"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/piquette/finance-go/quote"
	"github.com/pkg/errors"

	"github.com/huchl0920/stockSelect/internal"
)

const baseURL = "https://query1.finance.yahoo.com"

// Суффиксы площадок в порядке перебора: TSE, затем OTC.
var exchangeSuffixes = []string{".TW", ".TWO"}

type Client struct {
	http *resty.Client
}

func NewClient() *Client {
	c := resty.New().
		SetBaseURL(baseURL).
		SetTimeout(30 * time.Second).
		SetHeader("User-Agent", "Mozilla/5.0 (compatible; stockSelect/1.0)")

	return &Client{http: c}
}

// Ответ /v8/finance/chart. Цены приходят указателями: null — неполный день.
type chartResponse struct {
	Chart struct {
		Result []struct {
			Timestamp  []int64 `json:"timestamp"`
			Indicators struct {
				Quote []struct {
					Open   []*float64 `json:"open"`
					High   []*float64 `json:"high"`
					Low    []*float64 `json:"low"`
					Close  []*float64 `json:"close"`
					Volume []*int64   `json:"volume"`
				} `json:"quote"`
			} `json:"indicators"`
		} `json:"result"`
		Error *struct {
			Code        string `json:"code"`
			Description string `json:"description"`
		} `json:"error"`
	} `json:"chart"`
}

// FetchHistory загружает дневные свечи за указанный период ("2y", "1d" и т.п.).
func (c *Client) FetchHistory(ctx context.Context, code, rng, interval string) ([]internal.Candle, error) {
	for _, suffix := range exchangeSuffixes {
		candles, err := c.fetchChart(ctx, code+suffix, rng, interval)
		if err != nil {
			continue
		}
		return candles, nil
	}
	return nil, errors.Wrapf(ErrDataUnavailable, "history for %s", code)
}

func (c *Client) fetchChart(ctx context.Context, ticker, rng, interval string) ([]internal.Candle, error) {
	resp, err := c.http.R().
		SetContext(ctx).
		SetQueryParams(map[string]string{
			"range":    rng,
			"interval": interval,
		}).
		Get("/v8/finance/chart/" + ticker)
	if err != nil {
		return nil, errors.Wrapf(err, "fetch chart %s", ticker)
	}
	if resp.StatusCode() != 200 {
		return nil, errors.Errorf("chart %s: status %d", ticker, resp.StatusCode())
	}

	var parsed chartResponse
	if err := json.Unmarshal(resp.Body(), &parsed); err != nil {
		return nil, errors.Wrapf(err, "parse chart %s", ticker)
	}
	if len(parsed.Chart.Result) == 0 || len(parsed.Chart.Result[0].Indicators.Quote) == 0 {
		return nil, errors.Errorf("chart %s: empty result", ticker)
	}

	result := parsed.Chart.Result[0]
	q := result.Indicators.Quote[0]

	candles := make([]internal.Candle, 0, len(result.Timestamp))
	for i, ts := range result.Timestamp {
		if i >= len(q.Close) || q.Close[i] == nil {
			continue
		}
		candle := internal.Candle{
			Date:  time.Unix(ts, 0).UTC().Format("2006-01-02"),
			Close: *q.Close[i],
		}
		if i < len(q.Open) && q.Open[i] != nil {
			candle.Open = *q.Open[i]
		}
		if i < len(q.High) && q.High[i] != nil {
			candle.High = *q.High[i]
		}
		if i < len(q.Low) && q.Low[i] != nil {
			candle.Low = *q.Low[i]
		}
		if i < len(q.Volume) && q.Volume[i] != nil {
			candle.Volume = *q.Volume[i]
		}
		candles = append(candles, candle)
	}
	return candles, nil
}

// QuoteSnapshot — текущая котировка для шапки отчёта.
type QuoteSnapshot struct {
	Symbol        string  `json:"symbol"`
	Name          string  `json:"name"`
	Price         float64 `json:"price"`
	Change        float64 `json:"change"`
	ChangePercent float64 `json:"change_percent"`
	Volume        int64   `json:"volume"`
}

// FetchQuote берёт снимок котировки через finance-go, с тем же перебором
// суффиксов, что и у истории.
func (c *Client) FetchQuote(code string) (*QuoteSnapshot, error) {
	var lastErr error
	for _, suffix := range exchangeSuffixes {
		q, err := quote.Get(code + suffix)
		if err != nil || q == nil {
			lastErr = err
			continue
		}
		return &QuoteSnapshot{
			Symbol:        q.Symbol,
			Name:          q.ShortName,
			Price:         q.RegularMarketPrice,
			Change:        q.RegularMarketChange,
			ChangePercent: q.RegularMarketChangePercent,
			Volume:        int64(q.RegularMarketVolume),
		}, nil
	}
	if lastErr != nil {
		return nil, errors.Wrapf(lastErr, "quote for %s", code)
	}
	return nil, errors.Wrapf(ErrDataUnavailable, "quote for %s", code)
}
