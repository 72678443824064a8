package currency

// Rates maps currency codes to their value relative to one unit of the
// base currency, i.e. 1 base unit = Rates[code] units of code.
type Rates map[Code]float64

// Convert converts an amount between two currencies using the given rate
// table. The second return value reports whether the conversion was
// actually performed: when either code is missing from the table the
// amount is returned unchanged with ok=false so that display keeps
// working while the caller can log the condition. Identical codes return
// the amount unchanged, exactly, with ok=true.
//
// Convert has no side effects and is safe for concurrent use.
func Convert(amount float64, from, to Code, rates Rates) (float64, bool) {
	if from == to {
		return amount, true
	}

	fromRate, okFrom := rates[from]
	toRate, okTo := rates[to]
	if !okFrom || !okTo || fromRate == 0 {
		return amount, false
	}

	// Convert to the base currency, then to the target.
	return amount / fromRate * toRate, true
}
