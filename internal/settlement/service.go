package settlement

import (
	"context"
	"errors"

	"github.com/google/uuid"

	"github.com/adhamoui/splitpal/internal/currency"
	"github.com/adhamoui/splitpal/internal/exchange"
	"github.com/adhamoui/splitpal/internal/friend"
	"github.com/adhamoui/splitpal/internal/ledger"
)

// Common errors
var (
	ErrSettlementNotFound = errors.New("settlement not found")
	ErrNotOwner           = errors.New("settlement belongs to another user")
	ErrFriendNotFound     = errors.New("friend not found")
	ErrFriendNotOwned     = errors.New("friend belongs to another user")
	ErrCannotSettleSelf   = errors.New("cannot settle with yourself")
	ErrInvalidAmount      = errors.New("settlement amount must be positive")
)

// Service handles settlement business logic
type Service struct {
	repo    *Repository
	friends *friend.Repository
	rates   *exchange.Provider
}

// NewService creates a new settlement service with dependencies injected
func NewService(repo *Repository, friends *friend.Repository, rates *exchange.Provider) *Service {
	return &Service{
		repo:    repo,
		friends: friends,
		rates:   rates,
	}
}

// Apply records a payment between the user and a friend and allocates
// it across the outstanding splits on the paying side, oldest debt
// first. All input validation happens before anything is read or
// written. The repository then owns the rest of the flow: it locks the
// candidate splits, plans against the locked rows and commits the
// settlement, its allocations and the split patches as one unit, so
// two concurrent payments can never allocate against the same stale
// remainders.
//
// When the amount exceeds the outstanding debt the excess stays
// unapplied and the returned plan reports it, so the caller can warn
// instead of recording a false full settlement.
func (s *Service) Apply(ctx context.Context, creatorID int64, req *ApplySettlementRequest) (*Settlement, *ledger.Plan, error) {
	if req.Amount <= 0 {
		return nil, nil, ErrInvalidAmount
	}
	code, err := currency.Parse(req.Currency)
	if err != nil {
		return nil, nil, err
	}
	direction, err := ledger.ParseDirection(req.Direction)
	if err != nil {
		return nil, nil, err
	}

	f, err := s.friends.GetByID(ctx, req.FriendID)
	if err != nil {
		return nil, nil, err
	}
	if f == nil {
		return nil, nil, ErrFriendNotFound
	}
	if f.OwnerID != creatorID {
		return nil, nil, ErrFriendNotOwned
	}
	if f.IsSelf {
		return nil, nil, ErrCannotSettleSelf
	}

	self, err := s.friends.GetSelf(ctx, creatorID)
	if err != nil {
		return nil, nil, err
	}
	if self == nil {
		return nil, nil, ErrFriendNotFound
	}

	snapshot := s.rates.Snapshot(ctx)
	record := &Settlement{
		Reference:    uuid.NewString(),
		CreatorID:    creatorID,
		FriendID:     f.ID,
		Amount:       req.Amount,
		Currency:     code,
		Direction:    direction,
		Note:         req.Note,
		RateSnapshot: snapshot.Rates,
	}

	payerID, owerID := settlementSides(direction, self.ID, f.ID)
	// Without live or cached rates, let the repository fall back to the
	// frozen snapshot of a transaction this settlement touches.
	reuseTxRates := snapshot.FetchedAt.IsZero()

	record, plan, err := s.repo.ApplyWithLock(ctx, record, payerID, owerID, reuseTxRates)
	if err != nil {
		return nil, nil, err
	}
	return record, &plan, nil
}

// settlementSides resolves which friend paid and which friend's debt
// the payment clears. A payment from the friend clears what the friend
// owes on transactions the user paid for; a payment to the friend
// clears what the user owes on transactions the friend paid for.
func settlementSides(direction ledger.Direction, selfID, friendID int64) (payerID, owerID int64) {
	payerID, owerID = selfID, friendID
	if direction == ledger.DirectionToFriend {
		payerID, owerID = friendID, selfID
	}
	return payerID, owerID
}

// GetByID retrieves a settlement owned by the user
func (s *Service) GetByID(ctx context.Context, id, userID int64) (*Settlement, error) {
	record, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if record == nil {
		return nil, ErrSettlementNotFound
	}
	if record.CreatorID != userID {
		return nil, ErrNotOwner
	}
	return record, nil
}

// List retrieves a page of the user's settlements
func (s *Service) List(ctx context.Context, userID int64, page, perPage int) ([]*Settlement, int, error) {
	if page < 1 {
		page = 1
	}
	if perPage < 1 || perPage > 100 {
		perPage = 20
	}

	offset := (page - 1) * perPage
	return s.repo.ListByCreator(ctx, userID, perPage, offset)
}
