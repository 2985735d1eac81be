package rates

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/shopspring/decimal"
)

func TestUSDTRY(t *testing.T) {
	t.Run("fetches_live_rate", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			w.Header().Set("Content-Type", "application/json")
			_, _ = w.Write([]byte(`{"base":"USD","rates":{"TRY":40.12,"EUR":0.92}}`))
		}))
		defer srv.Close()

		f := NewFetcher(srv.Client(), srv.URL, decimal.NewFromFloat(39.89))

		rate, live := f.USDTRY(context.Background())
		if !live {
			t.Fatal("expected live rate")
		}
		if !rate.Equal(decimal.NewFromFloat(40.12)) {
			t.Errorf("expected 40.12, got %s", rate)
		}
	})

	t.Run("falls_back_to_default", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			w.WriteHeader(http.StatusInternalServerError)
		}))
		defer srv.Close()

		fallback := decimal.NewFromFloat(39.89)
		f := NewFetcher(srv.Client(), srv.URL, fallback)

		rate, live := f.USDTRY(context.Background())
		if live {
			t.Fatal("expected fallback, got live")
		}
		if !rate.Equal(fallback) {
			t.Errorf("expected fallback %s, got %s", fallback, rate)
		}
	})

	t.Run("falls_back_to_last_known", func(t *testing.T) {
		var fail atomic.Bool
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			if fail.Load() {
				w.WriteHeader(http.StatusBadGateway)
				return
			}
			_, _ = w.Write([]byte(`{"rates":{"TRY":41.50}}`))
		}))
		defer srv.Close()

		f := NewFetcher(srv.Client(), srv.URL, decimal.NewFromFloat(39.89))

		rate, live := f.USDTRY(context.Background())
		if !live || !rate.Equal(decimal.NewFromFloat(41.50)) {
			t.Fatalf("expected live 41.50, got %s (live=%v)", rate, live)
		}

		fail.Store(true)
		rate, live = f.USDTRY(context.Background())
		if live {
			t.Fatal("expected fallback after failure")
		}
		if !rate.Equal(decimal.NewFromFloat(41.50)) {
			t.Errorf("expected last known 41.50, got %s", rate)
		}
	})

	t.Run("missing_try_rate", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			_, _ = w.Write([]byte(`{"rates":{"EUR":0.92}}`))
		}))
		defer srv.Close()

		fallback := decimal.NewFromFloat(39.89)
		f := NewFetcher(srv.Client(), srv.URL, fallback)

		rate, live := f.USDTRY(context.Background())
		if live {
			t.Fatal("expected fallback for missing TRY")
		}
		if !rate.Equal(fallback) {
			t.Errorf("expected fallback %s, got %s", fallback, rate)
		}
	})

	t.Run("timeout_uses_fallback", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			time.Sleep(200 * time.Millisecond)
			_, _ = w.Write([]byte(`{"rates":{"TRY":40.0}}`))
		}))
		defer srv.Close()

		fallback := decimal.NewFromFloat(39.89)
		f := NewFetcher(srv.Client(), srv.URL, fallback)

		ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
		defer cancel()

		rate, live := f.USDTRY(ctx)
		if live {
			t.Fatal("expected fallback on timeout")
		}
		if !rate.Equal(fallback) {
			t.Errorf("expected fallback %s, got %s", fallback, rate)
		}
	})
}
