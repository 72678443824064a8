// Package ledger implements the balance and settlement accounting over
// plain expense records. It is purely computational: callers fetch the
// records, the ledger sums, allocates and merges them, and the results
// are plain values. Nothing in this package touches storage.
package ledger

import (
	"errors"
	"fmt"
	"time"

	"github.com/adhamoui/splitpal/internal/currency"
)

// Epsilon is the tolerance under which a remaining amount is treated as
// zero, absorbing floating-point drift from repeated conversions.
const Epsilon = 0.01

// Direction says which way the money moved in a settlement
type Direction string

const (
	// DirectionToFriend means the user pays the friend
	DirectionToFriend Direction = "to_friend"
	// DirectionFromFriend means the friend pays the user back
	DirectionFromFriend Direction = "from_friend"
)

// ErrInvalidDirection is returned for any direction outside the closed
// two-value set
var ErrInvalidDirection = errors.New("invalid settlement direction")

// ParseDirection validates a direction string. Unknown values are
// rejected, never defaulted.
func ParseDirection(s string) (Direction, error) {
	switch Direction(s) {
	case DirectionToFriend:
		return DirectionToFriend, nil
	case DirectionFromFriend:
		return DirectionFromFriend, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrInvalidDirection, s)
	}
}

// Split is one participant's share of a transaction.
//
// SettledAmount is the running settled progress. Records written before
// the schema grew that column carry only the IsSettled boolean, so
// SettledAmount is optional and Remaining applies the fallback rule in
// one place.
type Split struct {
	ID            int64
	TransactionID int64
	FriendID      int64
	Amount        float64
	SettledAmount *float64
	IsSettled     bool
}

// Remaining returns the unsettled portion of the split. When
// SettledAmount is absent the legacy boolean decides: settled means
// nothing remains, unsettled means the full amount does.
func (s Split) Remaining() float64 {
	if s.SettledAmount == nil {
		if s.IsSettled {
			return 0
		}
		return s.Amount
	}
	remaining := s.Amount - *s.SettledAmount
	if remaining < 0 {
		return 0
	}
	return remaining
}

// Outstanding reports whether the split still carries a balance worth
// acting on, treating near-zero remainders as settled.
func (s Split) Outstanding() bool {
	return s.Remaining() > Epsilon
}

// Transaction is a shared expense with its splits. RateSnapshot is the
// exchange-rate table frozen at creation time; balance computations must
// use it rather than live rates so historical amounts stay stable.
type Transaction struct {
	ID           int64
	PayerID      int64 // friend id of whoever paid
	Title        string
	Amount       float64
	Currency     currency.Code
	RateSnapshot currency.Rates
	OccurredOn   time.Time
	CreatedAt    time.Time
	Splits       []Split
}

// splitFor returns the transaction's split owned by the given friend,
// if any.
func (t Transaction) splitFor(friendID int64) (Split, bool) {
	for _, s := range t.Splits {
		if s.FriendID == friendID {
			return s, true
		}
	}
	return Split{}, false
}

// Settlement is a recorded payment event between the user and a friend
type Settlement struct {
	ID        int64
	FriendID  int64
	Amount    float64
	Currency  currency.Code
	Direction Direction
	Note      string
	CreatedAt time.Time
}
