// internal/marketdata/cache.go

// Кэш истории: read-through, write-once. Записи не устаревают в пределах
// одного запуска — дневные свечи за прошедшие дни не меняются.
// singleflight гарантирует один сетевой запрос на ключ при параллельном
// сканировании.

package marketdata

import (
	"context"
	"fmt"
	"sync"
	"time"

	"golang.org/x/sync/singleflight"

	"github.com/huchl0920/stockSelect/internal"
)

const (
	DefaultRange    = "2y"
	DefaultInterval = "1d"

	// Пауза между пакетами при предзагрузке, чтобы не душить API.
	preloadBatchSize  = 3
	preloadBatchPause = 200 * time.Millisecond
)

type HistoryCache struct {
	client *Client

	mu      sync.RWMutex
	entries map[string][]internal.Candle
	group   singleflight.Group
}

func NewHistoryCache(client *Client) *HistoryCache {
	return &HistoryCache{
		client:  client,
		entries: make(map[string][]internal.Candle),
	}
}

func cacheKey(code, rng, interval string) string {
	return fmt.Sprintf("%s-%s-%s", code, rng, interval)
}

// History возвращает свечи из кэша или загружает их. Параллельные запросы
// одного ключа сливаются в один сетевой вызов.
func (h *HistoryCache) History(ctx context.Context, code, rng, interval string) ([]internal.Candle, error) {
	key := cacheKey(code, rng, interval)

	h.mu.RLock()
	cached, ok := h.entries[key]
	h.mu.RUnlock()
	if ok {
		return cached, nil
	}

	v, err, _ := h.group.Do(key, func() (interface{}, error) {
		candles, err := h.client.FetchHistory(ctx, code, rng, interval)
		if err != nil {
			return nil, err
		}
		h.mu.Lock()
		h.entries[key] = candles
		h.mu.Unlock()
		return candles, nil
	})
	if err != nil {
		return nil, err
	}
	return v.([]internal.Candle), nil
}

// Cached возвращает запись без похода в сеть.
func (h *HistoryCache) Cached(code, rng, interval string) ([]internal.Candle, bool) {
	h.mu.RLock()
	defer h.mu.RUnlock()
	candles, ok := h.entries[cacheKey(code, rng, interval)]
	return candles, ok
}

// Preload прогревает кэш пакетами по 3 кода. Ошибки отдельных бумаг
// глотаются: предзагрузка — это оптимизация, а не обязательство.
// onProgress (может быть nil) получает процент готовности.
func (h *HistoryCache) Preload(ctx context.Context, codes []string, onProgress func(percent int)) {
	total := len(codes)
	if total == 0 {
		return
	}

	completed := 0
	for i := 0; i < total; i += preloadBatchSize {
		end := i + preloadBatchSize
		if end > total {
			end = total
		}
		batch := codes[i:end]

		var wg sync.WaitGroup
		for _, code := range batch {
			wg.Add(1)
			go func(code string) {
				defer wg.Done()
				_, _ = h.History(ctx, code, DefaultRange, DefaultInterval)
			}(code)
		}
		wg.Wait()
		completed += len(batch)

		if onProgress != nil {
			onProgress(completed * 100 / total)
		}

		if ctx.Err() != nil {
			return
		}
		if end < total {
			time.Sleep(preloadBatchPause)
		}
	}
}
