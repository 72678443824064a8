package currency

import (
	"math"
	"testing"
)

var testRates = Rates{
	USD: 1.0,
	EUR: 0.92,
	GBP: 0.79,
	CAD: 1.36,
	AUD: 1.52,
	INR: 83.12,
	JPY: 149.50,
}

func TestConvertIdentity(t *testing.T) {
	// Same-code conversion must be exact, not merely within tolerance.
	amounts := []float64{0, 0.01, 39.0, 120.50, 1e9, 0.004999}
	for _, code := range Codes() {
		for _, amount := range amounts {
			got, ok := Convert(amount, code, code, testRates)
			if !ok {
				t.Errorf("Convert(%v, %s, %s) ok = false, want true", amount, code, code)
			}
			if got != amount {
				t.Errorf("Convert(%v, %s, %s) = %v, want exact identity", amount, code, code, got)
			}
		}
	}
}

func TestConvertIdentityWithoutRates(t *testing.T) {
	// Identity must hold even when the code has no rate at all.
	got, ok := Convert(42.0, JPY, JPY, Rates{})
	if !ok || got != 42.0 {
		t.Errorf("Convert(42, JPY, JPY, empty) = %v, %v; want 42, true", got, ok)
	}
}

func TestConvert(t *testing.T) {
	tests := []struct {
		name   string
		amount float64
		from   Code
		to     Code
		want   float64
		wantOK bool
	}{
		{"eur to usd", 39.0, EUR, USD, 39.0 / 0.92, true},
		{"usd to eur", 100.0, USD, EUR, 92.0, true},
		{"cross via base", 10.0, GBP, JPY, 10.0 / 0.79 * 149.50, true},
		{"zero amount", 0, EUR, USD, 0, true},
		{"missing from rate", 50.0, Code("CHF"), USD, 50.0, false},
		{"missing to rate", 50.0, USD, Code("CHF"), 50.0, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := Convert(tt.amount, tt.from, tt.to, testRates)
			if ok != tt.wantOK {
				t.Fatalf("Convert ok = %v, want %v", ok, tt.wantOK)
			}
			if math.Abs(got-tt.want) > 1e-9 {
				t.Errorf("Convert = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestConvertRoundTrip(t *testing.T) {
	codes := Codes()
	for _, a := range codes {
		for _, b := range codes {
			x := 123.45
			there, ok1 := Convert(x, a, b, testRates)
			back, ok2 := Convert(there, b, a, testRates)
			if !ok1 || !ok2 {
				t.Fatalf("round trip %s->%s lost a rate", a, b)
			}
			if math.Abs(back-x) > 1e-9 {
				t.Errorf("round trip %s->%s->%s = %v, want %v", a, b, a, back, x)
			}
		}
	}
}

func TestConvertZeroFromRate(t *testing.T) {
	rates := Rates{USD: 1.0, EUR: 0}
	got, ok := Convert(10.0, EUR, USD, rates)
	if ok || got != 10.0 {
		t.Errorf("Convert with zero rate = %v, %v; want 10, false", got, ok)
	}
}
