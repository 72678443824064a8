package transaction

import (
	"time"

	"github.com/adhamoui/splitpal/internal/transaction/split"
)

// CreateTransactionRequest represents the request to create a transaction
type CreateTransactionRequest struct {
	PayerID      int64               `json:"payer_id" validate:"required"`
	Title        string              `json:"title" validate:"required,min=1,max=255"`
	Category     *string             `json:"category,omitempty"`
	Amount       float64             `json:"amount" validate:"required,gt=0"`
	Currency     string              `json:"currency" validate:"required"`
	SplitMethod  string              `json:"split_method" validate:"required,oneof=equal unequal by_shares by_item"`
	OccurredOn   string              `json:"occurred_on,omitempty"` // YYYY-MM-DD, defaults to today
	Participants []split.Participant `json:"participants" validate:"required,min=1"`
	Items        []split.Item        `json:"items,omitempty"`
}

// TransactionResponse represents the response for a transaction
type TransactionResponse struct {
	ID          int64            `json:"id"`
	PayerID     int64            `json:"payer_id"`
	Title       string           `json:"title"`
	Category    *string          `json:"category,omitempty"`
	Amount      float64          `json:"amount"`
	Currency    string           `json:"currency"`
	SplitMethod string           `json:"split_method"`
	OccurredOn  string           `json:"occurred_on"`
	CreatedAt   string           `json:"created_at"`
	Splits      []*SplitResponse `json:"splits,omitempty"`
	Items       []*ItemResponse  `json:"items,omitempty"`
}

// SplitResponse represents the response for a split
type SplitResponse struct {
	ID            int64    `json:"id"`
	FriendID      int64    `json:"friend_id"`
	Amount        float64  `json:"amount"`
	Percentage    *float64 `json:"percentage,omitempty"`
	SettledAmount *float64 `json:"settled_amount,omitempty"`
	Remaining     float64  `json:"remaining"`
	IsSettled     bool     `json:"is_settled"`
	SettledAt     *string  `json:"settled_at,omitempty"`
}

// ItemResponse represents the response for a line item
type ItemResponse struct {
	ID          int64   `json:"id"`
	Description string  `json:"description"`
	Amount      float64 `json:"amount"`
	Assignees   []int64 `json:"assignees"`
}

// ToResponse converts a Transaction model to a TransactionResponse DTO
func (t *Transaction) ToResponse() *TransactionResponse {
	resp := &TransactionResponse{
		ID:          t.ID,
		PayerID:     t.PayerID,
		Title:       t.Title,
		Category:    t.Category,
		Amount:      t.Amount,
		Currency:    string(t.Currency),
		SplitMethod: string(t.SplitMethod),
		OccurredOn:  t.OccurredOn.Format("2006-01-02"),
		CreatedAt:   t.CreatedAt.Format(time.RFC3339),
	}
	if len(t.Splits) > 0 {
		resp.Splits = make([]*SplitResponse, len(t.Splits))
		for i, s := range t.Splits {
			resp.Splits[i] = s.ToResponse()
		}
	}
	if len(t.Items) > 0 {
		resp.Items = make([]*ItemResponse, len(t.Items))
		for i, item := range t.Items {
			resp.Items[i] = item.ToResponse()
		}
	}
	return resp
}

// ToResponse converts a Split model to a SplitResponse DTO
func (s *Split) ToResponse() *SplitResponse {
	resp := &SplitResponse{
		ID:            s.ID,
		FriendID:      s.FriendID,
		Amount:        s.Amount,
		Percentage:    s.Percentage,
		SettledAmount: s.SettledAmount,
		Remaining:     s.ToLedger().Remaining(),
		IsSettled:     s.IsSettled,
	}
	if s.SettledAt != nil {
		settledAt := s.SettledAt.Format(time.RFC3339)
		resp.SettledAt = &settledAt
	}
	return resp
}

// ToResponse converts an Item model to an ItemResponse DTO
func (i *Item) ToResponse() *ItemResponse {
	return &ItemResponse{
		ID:          i.ID,
		Description: i.Description,
		Amount:      i.Amount,
		Assignees:   i.Assignees,
	}
}
