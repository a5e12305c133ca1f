package marketdata

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"sync/atomic"
	"testing"
	"time"
)

// countingServer отдаёт один и тот же дневной график и считает запросы.
func countingServer(hits *int32) *httptest.Server {
	t1 := time.Date(2024, 3, 1, 5, 0, 0, 0, time.UTC).Unix()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if strings.Contains(r.URL.Path, "FAIL") {
			w.WriteHeader(http.StatusNotFound)
			return
		}
		atomic.AddInt32(hits, 1)
		fmt.Fprintf(w, `{
			"chart": {
				"result": [{
					"timestamp": [%d],
					"indicators": {"quote": [{
						"open": [100.0], "high": [101.0], "low": [99.0],
						"close": [100.5], "volume": [1000]
					}]}
				}],
				"error": null
			}
		}`, t1)
	}))
}

func TestHistoryCache_SingleFetchPerKey(t *testing.T) {
	var hits int32
	ts := countingServer(&hits)
	defer ts.Close()

	cache := NewHistoryCache(testClient(ts))

	// Десять параллельных запросов одного ключа: кэш и singleflight
	// сводят их к одному сетевому вызову.
	var wg sync.WaitGroup
	for i := 0; i < 10; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if _, err := cache.History(context.Background(), "2330", "2y", "1d"); err != nil {
				t.Error(err)
			}
		}()
	}
	wg.Wait()

	if got := atomic.LoadInt32(&hits); got != 1 {
		t.Errorf("server hits = %d, want 1", got)
	}

	// Повторный последовательный запрос берётся из кэша.
	if _, err := cache.History(context.Background(), "2330", "2y", "1d"); err != nil {
		t.Fatal(err)
	}
	if got := atomic.LoadInt32(&hits); got != 1 {
		t.Errorf("server hits after repeat = %d, want 1", got)
	}
}

func TestHistoryCache_KeyIncludesRangeAndInterval(t *testing.T) {
	var hits int32
	ts := countingServer(&hits)
	defer ts.Close()

	cache := NewHistoryCache(testClient(ts))
	ctx := context.Background()

	if _, err := cache.History(ctx, "2330", "2y", "1d"); err != nil {
		t.Fatal(err)
	}
	if _, err := cache.History(ctx, "2330", "5y", "1d"); err != nil {
		t.Fatal(err)
	}

	// Другой период — другой ключ, второй сетевой вызов обязателен.
	if got := atomic.LoadInt32(&hits); got != 2 {
		t.Errorf("server hits = %d, want 2 for distinct ranges", got)
	}

	if _, ok := cache.Cached("2330", "2y", "1d"); !ok {
		t.Error("expected 2y entry in cache")
	}
	if _, ok := cache.Cached("2330", "1y", "1d"); ok {
		t.Error("unexpected 1y entry in cache")
	}
}

func TestHistoryCache_ErrorsAreNotCached(t *testing.T) {
	var hits int32
	ts := countingServer(&hits)
	defer ts.Close()

	cache := NewHistoryCache(testClient(ts))

	if _, err := cache.History(context.Background(), "FAIL", "2y", "1d"); err == nil {
		t.Fatal("expected error for failing code")
	}
	if _, ok := cache.Cached("FAIL", "2y", "1d"); ok {
		t.Error("failed fetch must not populate the cache")
	}
}

func TestPreload_WarmsCacheAndSwallowsErrors(t *testing.T) {
	var hits int32
	ts := countingServer(&hits)
	defer ts.Close()

	cache := NewHistoryCache(testClient(ts))

	var reports []int
	cache.Preload(context.Background(), []string{"2330", "FAIL", "2317", "2454"},
		func(percent int) { reports = append(reports, percent) })

	for _, code := range []string{"2330", "2317", "2454"} {
		if _, ok := cache.Cached(code, DefaultRange, DefaultInterval); !ok {
			t.Errorf("code %s not preloaded", code)
		}
	}
	if _, ok := cache.Cached("FAIL", DefaultRange, DefaultInterval); ok {
		t.Error("failing code must stay out of the cache")
	}

	// Пакеты по 3: два отчёта о прогрессе, последний — 100%.
	if len(reports) != 2 || reports[len(reports)-1] != 100 {
		t.Errorf("progress reports = %v, want two reports ending at 100", reports)
	}
}
