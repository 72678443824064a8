package exchange

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/adhamoui/splitpal/internal/currency"
)

type fakeFetcher struct {
	snap  Snapshot
	err   error
	calls int
}

func (f *fakeFetcher) Fetch(_ context.Context) (Snapshot, error) {
	f.calls++
	return f.snap, f.err
}

func freshSnapshot(age time.Duration) Snapshot {
	return Snapshot{
		Base:      currency.Base,
		Rates:     currency.Rates{currency.USD: 1.0, currency.EUR: 0.9},
		FetchedAt: time.Now().Add(-age),
	}
}

func TestProviderServesFreshCache(t *testing.T) {
	cache := NewInMemoryCache()
	cache.Set(context.Background(), freshSnapshot(time.Hour))
	fetcher := &fakeFetcher{}

	prov := NewProvider(fetcher, cache, DefaultTTL)
	snap := prov.Snapshot(context.Background())

	if fetcher.calls != 0 {
		t.Errorf("fetcher called %d times for a fresh cache, want 0", fetcher.calls)
	}
	if snap.Rates[currency.EUR] != 0.9 {
		t.Errorf("got rates %v, want cached table", snap.Rates)
	}
}

func TestProviderFetchesWhenStale(t *testing.T) {
	cache := NewInMemoryCache()
	cache.Set(context.Background(), freshSnapshot(25*time.Hour))
	fetcher := &fakeFetcher{snap: Snapshot{
		Base:      currency.Base,
		Rates:     currency.Rates{currency.USD: 1.0, currency.EUR: 0.95},
		FetchedAt: time.Now(),
	}}

	prov := NewProvider(fetcher, cache, DefaultTTL)
	snap := prov.Snapshot(context.Background())

	if fetcher.calls != 1 {
		t.Errorf("fetcher calls = %d, want 1", fetcher.calls)
	}
	if snap.Rates[currency.EUR] != 0.95 {
		t.Errorf("got rates %v, want freshly fetched table", snap.Rates)
	}

	// The fresh result must now be cached.
	cached, ok := cache.Get(context.Background())
	if !ok || cached.Rates[currency.EUR] != 0.95 {
		t.Errorf("cache after fetch = %v, %v; want fresh snapshot", cached.Rates, ok)
	}
}

func TestProviderFallsBackToStaleCache(t *testing.T) {
	cache := NewInMemoryCache()
	cache.Set(context.Background(), freshSnapshot(48*time.Hour))
	fetcher := &fakeFetcher{err: errors.New("api down")}

	prov := NewProvider(fetcher, cache, DefaultTTL)
	snap := prov.Snapshot(context.Background())

	if fetcher.calls != 1 {
		t.Errorf("fetcher calls = %d, want exactly one attempt with no retry", fetcher.calls)
	}
	if snap.Rates[currency.EUR] != 0.9 {
		t.Errorf("got rates %v, want stale cached table", snap.Rates)
	}
}

func TestProviderFallsBackToStaticTable(t *testing.T) {
	prov := NewProvider(&fakeFetcher{err: errors.New("api down")}, NewInMemoryCache(), DefaultTTL)
	snap := prov.Snapshot(context.Background())

	for _, code := range currency.Codes() {
		if _, ok := snap.Rates[code]; !ok {
			t.Errorf("static fallback missing %s", code)
		}
	}
}

func TestProviderWithoutFetcher(t *testing.T) {
	prov := NewProvider(nil, NewInMemoryCache(), DefaultTTL)
	snap := prov.Snapshot(context.Background())
	if len(snap.Rates) == 0 {
		t.Fatal("provider without fetcher returned no rates")
	}
}

func TestClientFetch(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/latest/USD" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		w.Write([]byte(`{"base_code":"USD","rates":{"EUR":0.92,"JPY":149.5,"XYZ":3.0,"GBP":0}}`))
	}))
	defer srv.Close()

	snap, err := NewClient(srv.URL).Fetch(context.Background())
	if err != nil {
		t.Fatalf("Fetch() error = %v", err)
	}
	if snap.Rates[currency.EUR] != 0.92 || snap.Rates[currency.JPY] != 149.5 {
		t.Errorf("rates = %v, want EUR and JPY from response", snap.Rates)
	}
	if _, ok := snap.Rates[currency.Code("XYZ")]; ok {
		t.Error("unsupported code kept in snapshot")
	}
	if _, ok := snap.Rates[currency.GBP]; ok {
		t.Error("zero rate kept in snapshot")
	}
}

func TestClientFetchErrors(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer srv.Close()

	if _, err := NewClient(srv.URL).Fetch(context.Background()); err == nil {
		t.Error("Fetch() on 502 returned nil error")
	}
}
