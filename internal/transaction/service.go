package transaction

import (
	"context"
	"errors"
	"time"

	"github.com/adhamoui/splitpal/internal/currency"
	"github.com/adhamoui/splitpal/internal/exchange"
	"github.com/adhamoui/splitpal/internal/ledger"
	"github.com/adhamoui/splitpal/internal/transaction/split"
)

// Common errors
var (
	ErrTransactionNotFound = errors.New("transaction not found")
	ErrNotCreator          = errors.New("only the creator can access this transaction")
	ErrFriendNotOwned      = errors.New("participant is not one of your friends")
	ErrInvalidAmount       = errors.New("amount must be positive")
	ErrInvalidOccurredOn   = errors.New("occurred_on must be a YYYY-MM-DD date")
	ErrCannotDelete        = errors.New("cannot delete a transaction with settled splits")
)

// Service handles transaction business logic
type Service struct {
	repo         *Repository
	splitFactory *split.Factory
	rates        *exchange.Provider
}

// NewService creates a new transaction service with dependencies injected
func NewService(repo *Repository, splitFactory *split.Factory, rates *exchange.Provider) *Service {
	return &Service{
		repo:         repo,
		splitFactory: splitFactory,
		rates:        rates,
	}
}

// Create creates a transaction and resolves its splits with the
// requested strategy. The exchange-rate snapshot is taken here, once,
// and stored with the record; later rate changes never move historical
// balances. The payer's own share is marked settled immediately since
// nobody owes themselves.
func (s *Service) Create(ctx context.Context, creatorID int64, req *CreateTransactionRequest) (*Transaction, error) {
	if req.Amount <= 0 {
		return nil, ErrInvalidAmount
	}

	code, err := currency.Parse(req.Currency)
	if err != nil {
		return nil, err
	}

	strategy, err := s.splitFactory.CreateFromString(req.SplitMethod)
	if err != nil {
		return nil, err
	}

	outputs, err := strategy.Calculate(split.Request{
		Total:        req.Amount,
		PayerID:      req.PayerID,
		Participants: req.Participants,
		Items:        req.Items,
	})
	if err != nil {
		return nil, err
	}

	friendIDs := make([]int64, 0, len(req.Participants)+1)
	friendIDs = append(friendIDs, req.PayerID)
	for _, p := range req.Participants {
		friendIDs = append(friendIDs, p.FriendID)
	}
	owned, err := s.repo.CountFriendsOwned(ctx, creatorID, friendIDs)
	if err != nil {
		return nil, err
	}
	if owned != len(uniqueIDs(friendIDs)) {
		return nil, ErrFriendNotOwned
	}

	occurredOn := time.Now().UTC()
	if req.OccurredOn != "" {
		occurredOn, err = time.Parse("2006-01-02", req.OccurredOn)
		if err != nil {
			return nil, ErrInvalidOccurredOn
		}
	}

	now := time.Now().UTC()
	splits := make([]*Split, len(outputs))
	for i, out := range outputs {
		sp := &Split{
			FriendID:   out.FriendID,
			Amount:     out.Amount,
			Percentage: out.Percentage,
		}
		if out.FriendID == req.PayerID {
			settled := out.Amount
			settledAt := now
			sp.SettledAmount = &settled
			sp.IsSettled = true
			sp.SettledAt = &settledAt
		}
		splits[i] = sp
	}

	items := make([]*Item, len(req.Items))
	for i, item := range req.Items {
		items[i] = &Item{
			Description: item.Description,
			Amount:      item.Amount,
			Assignees:   item.Assignees,
		}
	}

	t := &Transaction{
		CreatorID:    creatorID,
		PayerID:      req.PayerID,
		Title:        req.Title,
		Category:     req.Category,
		Amount:       req.Amount,
		Currency:     code,
		SplitMethod:  strategy.Method(),
		RateSnapshot: s.rates.Snapshot(ctx).Rates,
		OccurredOn:   occurredOn,
		Splits:       splits,
		Items:        items,
	}

	return s.repo.Create(ctx, t)
}

// GetByID retrieves a transaction owned by the user
func (s *Service) GetByID(ctx context.Context, id, userID int64) (*Transaction, error) {
	t, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if t == nil {
		return nil, ErrTransactionNotFound
	}
	if t.CreatorID != userID {
		return nil, ErrNotCreator
	}
	return t, nil
}

// List retrieves a page of the user's transactions
func (s *Service) List(ctx context.Context, userID int64, page, perPage int) ([]*Transaction, int, error) {
	if page < 1 {
		page = 1
	}
	if perPage < 1 || perPage > 100 {
		perPage = 20
	}

	offset := (page - 1) * perPage
	return s.repo.ListByCreator(ctx, userID, perPage, offset)
}

// ListForPair returns the pair's transactions as ledger records
func (s *Service) ListForPair(ctx context.Context, creatorID, selfFriendID, friendID int64) ([]ledger.Transaction, error) {
	return s.repo.ListForPair(ctx, creatorID, selfFriendID, friendID)
}

// Delete removes a transaction unless settlements already consumed part
// of it. Deleting a partially settled transaction would silently change
// where past payments landed.
func (s *Service) Delete(ctx context.Context, id, userID int64) error {
	t, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if t == nil {
		return ErrTransactionNotFound
	}
	if t.CreatorID != userID {
		return ErrNotCreator
	}

	settled, err := s.repo.HasSettledProgress(ctx, id)
	if err != nil {
		return err
	}
	if settled {
		return ErrCannotDelete
	}

	return s.repo.Delete(ctx, id)
}

func uniqueIDs(ids []int64) []int64 {
	seen := make(map[int64]bool, len(ids))
	unique := make([]int64, 0, len(ids))
	for _, id := range ids {
		if !seen[id] {
			seen[id] = true
			unique = append(unique, id)
		}
	}
	return unique
}
