// Package split resolves a transaction's total into per-participant
// owed amounts. Each split method is a strategy; a factory picks the
// implementation from the method tag. The ledger never interprets the
// tag itself; by the time balances are computed the amounts here have
// already been stored as split records.
package split

import (
	"errors"
	"fmt"
	"math"
)

// Method is the closed set of supported split methods
type Method string

const (
	MethodEqual    Method = "equal"
	MethodUnequal  Method = "unequal"
	MethodByShares Method = "by_shares"
	MethodByItem   Method = "by_item"
)

// Participant is one person in a split with the per-method inputs
type Participant struct {
	FriendID int64    `json:"friend_id"`
	Amount   *float64 `json:"amount,omitempty"` // for unequal
	Shares   *int     `json:"shares,omitempty"` // for by_shares
}

// Item is a line item assigned to one or more participants (by_item)
type Item struct {
	Description string  `json:"description"`
	Amount      float64 `json:"amount"`
	Assignees   []int64 `json:"assignees"`
}

// Request carries everything a strategy needs to resolve amounts
type Request struct {
	Total        float64
	PayerID      int64
	Participants []Participant
	Items        []Item
}

// Output is the resolved share for one participant. Percentage is the
// share of the total, kept for display.
type Output struct {
	FriendID   int64
	Amount     float64
	Percentage *float64
}

// Strategy is the interface all split methods implement
type Strategy interface {
	Method() Method
	Validate(req Request) error
	Calculate(req Request) ([]Output, error)
}

// Factory creates split strategies based on the requested method
type Factory struct{}

// NewFactory creates a new factory instance
func NewFactory() *Factory {
	return &Factory{}
}

// Create returns the strategy implementation for the method
func (f *Factory) Create(method Method) (Strategy, error) {
	switch method {
	case MethodEqual:
		return &EqualStrategy{}, nil
	case MethodUnequal:
		return &UnequalStrategy{}, nil
	case MethodByShares:
		return &SharesStrategy{}, nil
	case MethodByItem:
		return &ItemStrategy{}, nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownMethod, method)
	}
}

// CreateFromString creates a strategy from a raw method tag
func (f *Factory) CreateFromString(method string) (Strategy, error) {
	return f.Create(Method(method))
}

var (
	ErrUnknownMethod   = errors.New("unknown split method")
	ErrNoParticipants  = errors.New("at least one participant is required")
	ErrNegativeAmount  = errors.New("amounts cannot be negative")
	ErrMissingAmount   = errors.New("amount required for all participants")
	ErrAmountMismatch  = errors.New("participant amounts must sum to the total")
	ErrMissingShares   = errors.New("shares required for all participants")
	ErrInvalidShares   = errors.New("shares must be positive")
	ErrNoItems         = errors.New("at least one item is required")
	ErrItemsMismatch   = errors.New("item amounts must sum to the total")
	ErrUnknownAssignee = errors.New("item assigned to someone outside the participants")
	ErrPayerNotInSplit = errors.New("payer must be one of the participants")
)

// amountTolerance absorbs floating-point error when validating that
// user-supplied parts sum to the total
const amountTolerance = 0.01

// validateCommon runs the checks shared by every strategy
func validateCommon(req Request) error {
	if len(req.Participants) == 0 {
		return ErrNoParticipants
	}
	if req.Total < 0 {
		return ErrNegativeAmount
	}
	for _, p := range req.Participants {
		if p.FriendID == req.PayerID {
			return nil
		}
	}
	return ErrPayerNotInSplit
}

// percentOf returns the share of total as a percentage pointer
func percentOf(amount, total float64) *float64 {
	if total == 0 {
		return nil
	}
	pct := amount / total * 100
	return &pct
}

// sumsToTotal checks a computed sum against the requested total
func sumsToTotal(sum, total float64) bool {
	return math.Abs(sum-total) <= amountTolerance
}
