package exchange

import (
	"time"

	"github.com/adhamoui/splitpal/internal/currency"
)

// fallbackRates is the static table used when neither a live fetch nor
// a cached snapshot is available. Values are approximate and only exist
// to keep conversions working offline.
var fallbackRates = currency.Rates{
	currency.USD: 1.0,
	currency.EUR: 0.92,
	currency.GBP: 0.79,
	currency.CAD: 1.36,
	currency.AUD: 1.52,
	currency.INR: 83.12,
	currency.JPY: 149.50,
}

// FallbackSnapshot returns a copy of the built-in rate table. The
// FetchedAt zero value marks it as static data rather than fetched.
func FallbackSnapshot() Snapshot {
	rates := make(currency.Rates, len(fallbackRates))
	for code, rate := range fallbackRates {
		rates[code] = rate
	}
	return Snapshot{Base: currency.Base, Rates: rates, FetchedAt: time.Time{}}
}
