package ledger

import (
	"log/slog"

	"github.com/adhamoui/splitpal/internal/currency"
)

// Balance is the aggregate position between the user and one friend.
// FriendOwesUser, UserOwesFriend and Net are expressed in Currency (the
// user's default display currency); PerCurrency keeps the raw amounts
// keyed by each transaction's original currency, positive when the
// friend owes the user and negative the other way.
type Balance struct {
	FriendOwesUser float64
	UserOwesFriend float64
	Net            float64
	Currency       currency.Code
	PerCurrency    map[currency.Code]float64
}

// Outstanding reports whether anything meaningful is still owed in
// either direction, treating near-zero drift as settled.
func (b Balance) Outstanding() bool {
	return b.FriendOwesUser > Epsilon || b.UserOwesFriend > Epsilon
}

// BalanceWith computes the balance between the user (represented by the
// id of their "self" friend record) and one friend, over the
// transactions the pair shares. Each transaction must carry its splits.
//
// A split owed by the friend on a transaction the user paid for counts
// toward FriendOwesUser; a split owed by the user on a transaction the
// friend paid for counts toward UserOwesFriend. Remaining amounts are
// converted through the transaction's frozen rate snapshot into the
// display currency. Conversions with a missing rate fall back to the
// unconverted amount and are logged, per the soft-fail contract of
// currency.Convert.
//
// The function is idempotent and side-effect free: the same records
// always produce the same balance.
func BalanceWith(display currency.Code, selfID, friendID int64, transactions []Transaction) Balance {
	balance := Balance{
		Currency:    display,
		PerCurrency: make(map[currency.Code]float64),
	}

	// No self record means the user is not fully onboarded; report a
	// zero balance rather than guessing.
	if selfID == 0 {
		return balance
	}

	for _, tx := range transactions {
		switch tx.PayerID {
		case selfID:
			split, ok := tx.splitFor(friendID)
			if !ok || !split.Outstanding() {
				continue
			}
			balance.FriendOwesUser += convertRemaining(split.Remaining(), tx, display)
			balance.PerCurrency[tx.Currency] += split.Remaining()
		case friendID:
			split, ok := tx.splitFor(selfID)
			if !ok || !split.Outstanding() {
				continue
			}
			balance.UserOwesFriend += convertRemaining(split.Remaining(), tx, display)
			balance.PerCurrency[tx.Currency] -= split.Remaining()
		}
	}

	// Positive net means the friend owes the user.
	balance.Net = balance.FriendOwesUser - balance.UserOwesFriend
	return balance
}

// convertRemaining converts a remaining amount into the display currency
// using the transaction's frozen snapshot
func convertRemaining(remaining float64, tx Transaction, display currency.Code) float64 {
	converted, ok := currency.Convert(remaining, tx.Currency, display, tx.RateSnapshot)
	if !ok {
		slog.Warn("rate unavailable, using unconverted amount",
			"transaction_id", tx.ID,
			"from", tx.Currency,
			"to", display,
		)
	}
	return converted
}
