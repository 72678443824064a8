package settlement

import (
	"time"

	"github.com/adhamoui/splitpal/internal/currency"
	"github.com/adhamoui/splitpal/internal/ledger"
)

// Settlement is the audit record of one payment event between the user
// and a friend. It is written once and never mutated; the allocation
// rows record exactly which splits the payment landed on.
type Settlement struct {
	ID            int64            `json:"id"`
	Reference     string           `json:"reference"`
	CreatorID     int64            `json:"creator_id"`
	FriendID      int64            `json:"friend_id"`
	Amount        float64          `json:"amount"`
	AppliedAmount float64          `json:"applied_amount"`
	Currency      currency.Code    `json:"currency"`
	Direction     ledger.Direction `json:"direction"`
	Note          *string          `json:"note,omitempty"`
	BalanceBefore *float64         `json:"balance_before,omitempty"`
	RateSnapshot  currency.Rates   `json:"rate_snapshot,omitempty"`
	CreatedAt     time.Time        `json:"created_at"`
	Allocations   []*Allocation    `json:"allocations,omitempty"`
}

// Allocation is how much of a settlement was applied to one split
type Allocation struct {
	ID           int64   `json:"id"`
	SettlementID int64   `json:"settlement_id"`
	SplitID      int64   `json:"split_id"`
	Amount       float64 `json:"amount"`
}

// ToLedger converts the settlement to the plain record the activity
// feed consumes
func (s *Settlement) ToLedger() ledger.Settlement {
	note := ""
	if s.Note != nil {
		note = *s.Note
	}
	return ledger.Settlement{
		ID:        s.ID,
		FriendID:  s.FriendID,
		Amount:    s.Amount,
		Currency:  s.Currency,
		Direction: s.Direction,
		Note:      note,
		CreatedAt: s.CreatedAt,
	}
}
