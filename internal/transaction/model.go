package transaction

import (
	"time"

	"github.com/adhamoui/splitpal/internal/currency"
	"github.com/adhamoui/splitpal/internal/ledger"
	"github.com/adhamoui/splitpal/internal/transaction/split"
)

// Transaction is a shared expense created by a user. PayerID references
// a friend record, so "I paid" means the creator's self friend paid.
// RateSnapshot is the exchange-rate table captured when the transaction
// was created; it never changes afterwards.
type Transaction struct {
	ID           int64          `json:"id"`
	CreatorID    int64          `json:"creator_id"`
	PayerID      int64          `json:"payer_id"`
	Title        string         `json:"title"`
	Category     *string        `json:"category,omitempty"`
	Amount       float64        `json:"amount"`
	Currency     currency.Code  `json:"currency"`
	SplitMethod  split.Method   `json:"split_method"`
	RateSnapshot currency.Rates `json:"rate_snapshot"`
	OccurredOn   time.Time      `json:"occurred_on"`
	CreatedAt    time.Time      `json:"created_at"`
	Splits       []*Split       `json:"splits,omitempty"`
	Items        []*Item        `json:"items,omitempty"`
}

// Split is one participant's share of a transaction. SettledAmount is
// nullable because older records predate partial settlement and carry
// only the IsSettled flag.
type Split struct {
	ID            int64      `json:"id"`
	TransactionID int64      `json:"transaction_id"`
	FriendID      int64      `json:"friend_id"`
	Amount        float64    `json:"amount"`
	Percentage    *float64   `json:"percentage,omitempty"`
	SettledAmount *float64   `json:"settled_amount,omitempty"`
	IsSettled     bool       `json:"is_settled"`
	SettledAt     *time.Time `json:"settled_at,omitempty"`
}

// Item is a line item on a by-item transaction
type Item struct {
	ID            int64   `json:"id"`
	TransactionID int64   `json:"transaction_id"`
	Description   string  `json:"description"`
	Amount        float64 `json:"amount"`
	Assignees     []int64 `json:"assignees"`
}

// ToLedger converts the split to the plain record the ledger consumes
func (s *Split) ToLedger() ledger.Split {
	return ledger.Split{
		ID:            s.ID,
		TransactionID: s.TransactionID,
		FriendID:      s.FriendID,
		Amount:        s.Amount,
		SettledAmount: s.SettledAmount,
		IsSettled:     s.IsSettled,
	}
}

// ToLedger converts the transaction and its splits to the plain record
// the ledger consumes
func (t *Transaction) ToLedger() ledger.Transaction {
	splits := make([]ledger.Split, len(t.Splits))
	for i, s := range t.Splits {
		splits[i] = s.ToLedger()
	}
	return ledger.Transaction{
		ID:           t.ID,
		PayerID:      t.PayerID,
		Title:        t.Title,
		Amount:       t.Amount,
		Currency:     t.Currency,
		RateSnapshot: t.RateSnapshot,
		OccurredOn:   t.OccurredOn,
		CreatedAt:    t.CreatedAt,
		Splits:       splits,
	}
}
