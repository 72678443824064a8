package settlement

import (
	"time"

	"github.com/adhamoui/splitpal/internal/ledger"
)

// ApplySettlementRequest represents the request to record a payment
type ApplySettlementRequest struct {
	FriendID  int64   `json:"friend_id" validate:"required"`
	Amount    float64 `json:"amount" validate:"required,gt=0"`
	Currency  string  `json:"currency" validate:"required"`
	Direction string  `json:"direction" validate:"required,oneof=to_friend from_friend"`
	Note      *string `json:"note,omitempty"`
}

// AllocationResponse represents one split touched by a settlement
type AllocationResponse struct {
	SplitID       int64   `json:"split_id"`
	TransactionID int64   `json:"transaction_id,omitempty"`
	Amount        float64 `json:"amount_applied"`
	FullySettled  bool    `json:"fully_settled"`
}

// SettlementResponse represents the response for a settlement
type SettlementResponse struct {
	ID            int64                 `json:"id"`
	Reference     string                `json:"reference"`
	FriendID      int64                 `json:"friend_id"`
	Amount        float64               `json:"amount_requested"`
	AppliedAmount float64               `json:"amount_applied"`
	Remainder     float64               `json:"unapplied_remainder"`
	Currency      string                `json:"currency"`
	Direction     string                `json:"direction"`
	Note          *string               `json:"note,omitempty"`
	BalanceBefore *float64              `json:"balance_before,omitempty"`
	CreatedAt     string                `json:"created_at"`
	Allocations   []*AllocationResponse `json:"splits_touched,omitempty"`
}

// ToResponse converts a Settlement model to a SettlementResponse DTO.
// The plan, when present, supplies the per-allocation detail a fresh
// apply has that a later read does not.
func (s *Settlement) ToResponse(plan *ledger.Plan) *SettlementResponse {
	resp := &SettlementResponse{
		ID:            s.ID,
		Reference:     s.Reference,
		FriendID:      s.FriendID,
		Amount:        s.Amount,
		AppliedAmount: s.AppliedAmount,
		Remainder:     s.Amount - s.AppliedAmount,
		Currency:      string(s.Currency),
		Direction:     string(s.Direction),
		Note:          s.Note,
		BalanceBefore: s.BalanceBefore,
		CreatedAt:     s.CreatedAt.Format(time.RFC3339),
	}

	if plan != nil {
		resp.Remainder = plan.Remainder
		resp.Allocations = make([]*AllocationResponse, len(plan.Allocations))
		for i, a := range plan.Allocations {
			resp.Allocations[i] = &AllocationResponse{
				SplitID:       a.SplitID,
				TransactionID: a.TransactionID,
				Amount:        a.Amount,
				FullySettled:  a.FullySettled,
			}
		}
		return resp
	}

	if len(s.Allocations) > 0 {
		resp.Allocations = make([]*AllocationResponse, len(s.Allocations))
		for i, a := range s.Allocations {
			resp.Allocations[i] = &AllocationResponse{
				SplitID: a.SplitID,
				Amount:  a.Amount,
			}
		}
	}
	return resp
}
