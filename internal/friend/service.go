package friend

import (
	"context"
	"errors"

	"github.com/adhamoui/splitpal/internal/currency"
	"github.com/adhamoui/splitpal/internal/ledger"
	"github.com/adhamoui/splitpal/internal/transaction"
	"github.com/adhamoui/splitpal/internal/user"
)

// Common errors
var (
	ErrFriendNotFound     = errors.New("friend not found")
	ErrNotOwner           = errors.New("friend belongs to another user")
	ErrAlreadyLinked      = errors.New("friend is already linked to a user")
	ErrCannotDeleteFriend = errors.New("cannot delete a friend with recorded splits")
	ErrCannotDeleteSelf   = errors.New("cannot delete your own record")
)

// Service handles friend business logic
type Service struct {
	repo         *Repository
	users        *user.Repository
	transactions *transaction.Repository
}

// NewService creates a new friend service with dependencies injected
func NewService(repo *Repository, users *user.Repository, transactions *transaction.Repository) *Service {
	return &Service{
		repo:         repo,
		users:        users,
		transactions: transactions,
	}
}

// Create adds a friend for the owner. Without a linked user the friend
// is a dummy that can be promoted later.
func (s *Service) Create(ctx context.Context, ownerID int64, req *CreateFriendRequest) (*Friend, error) {
	if req.LinkedUserID != nil {
		linked, err := s.users.GetByID(ctx, *req.LinkedUserID)
		if err != nil {
			return nil, err
		}
		if linked == nil {
			return nil, user.ErrUserNotFound
		}
	}
	return s.repo.Create(ctx, ownerID, req)
}

// GetByID retrieves a friend owned by the user
func (s *Service) GetByID(ctx context.Context, id, ownerID int64) (*Friend, error) {
	f, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if f == nil {
		return nil, ErrFriendNotFound
	}
	if f.OwnerID != ownerID {
		return nil, ErrNotOwner
	}
	return f, nil
}

// List retrieves the owner's friends, self excluded
func (s *Service) List(ctx context.Context, ownerID int64) ([]*Friend, error) {
	return s.repo.ListByOwnerID(ctx, ownerID)
}

// Update modifies a friend's contact fields
func (s *Service) Update(ctx context.Context, id, ownerID int64, req *UpdateFriendRequest) (*Friend, error) {
	if _, err := s.GetByID(ctx, id, ownerID); err != nil {
		return nil, err
	}
	f, err := s.repo.Update(ctx, id, req)
	if err != nil {
		return nil, err
	}
	if f == nil {
		return nil, ErrFriendNotFound
	}
	return f, nil
}

// Link promotes a dummy friend to a linked one. Linking is one way:
// once a friend points at a real user it stays that way, so a second
// link attempt fails rather than silently rebinding history.
func (s *Service) Link(ctx context.Context, id, ownerID int64, req *LinkFriendRequest) (*Friend, error) {
	f, err := s.GetByID(ctx, id, ownerID)
	if err != nil {
		return nil, err
	}
	if f.LinkedUserID != nil {
		return nil, ErrAlreadyLinked
	}

	linked, err := s.users.GetByID(ctx, req.UserID)
	if err != nil {
		return nil, err
	}
	if linked == nil {
		return nil, user.ErrUserNotFound
	}

	f, err = s.repo.Link(ctx, id, req.UserID)
	if err != nil {
		return nil, err
	}
	if f == nil {
		return nil, ErrAlreadyLinked
	}
	return f, nil
}

// Delete removes a friend. Friends referenced by any split stay, since
// removing them would orphan the transaction history.
func (s *Service) Delete(ctx context.Context, id, ownerID int64) error {
	f, err := s.GetByID(ctx, id, ownerID)
	if err != nil {
		return err
	}
	if f.IsSelf {
		return ErrCannotDeleteSelf
	}

	count, err := s.repo.CountSplits(ctx, id)
	if err != nil {
		return err
	}
	if count > 0 {
		return ErrCannotDeleteFriend
	}

	return s.repo.Delete(ctx, id)
}

// Balance computes the aggregate position with one friend in the
// owner's default currency. It reads the pair's transactions and sums
// them; nothing is written, so reading the balance twice in a row gives
// the same answer.
func (s *Service) Balance(ctx context.Context, id, ownerID int64) (*BalanceResponse, error) {
	f, err := s.GetByID(ctx, id, ownerID)
	if err != nil {
		return nil, err
	}

	owner, err := s.users.GetByID(ctx, ownerID)
	if err != nil {
		return nil, err
	}
	if owner == nil {
		return nil, user.ErrUserNotFound
	}

	self, err := s.repo.GetSelf(ctx, ownerID)
	if err != nil {
		return nil, err
	}
	if self == nil {
		return nil, ErrFriendNotFound
	}

	transactions, err := s.transactions.ListForPair(ctx, ownerID, self.ID, f.ID)
	if err != nil {
		return nil, err
	}

	display := owner.DefaultCurrency
	if display == "" {
		display = currency.Base
	}
	balance := ledger.BalanceWith(display, self.ID, f.ID, transactions)

	perCurrency := make(map[string]float64, len(balance.PerCurrency))
	for code, amount := range balance.PerCurrency {
		perCurrency[string(code)] = amount
	}

	return &BalanceResponse{
		FriendID:       f.ID,
		FriendOwesUser: balance.FriendOwesUser,
		UserOwesFriend: balance.UserOwesFriend,
		NetBalance:     balance.Net,
		Currency:       string(balance.Currency),
		PerCurrency:    perCurrency,
		Outstanding:    balance.Outstanding(),
	}, nil
}
