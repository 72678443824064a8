// Package activity assembles the merged transaction and settlement
// history shown on a friend's screen.
package activity

import (
	"context"
	"errors"

	"github.com/adhamoui/splitpal/internal/friend"
	"github.com/adhamoui/splitpal/internal/ledger"
	"github.com/adhamoui/splitpal/internal/settlement"
	"github.com/adhamoui/splitpal/internal/transaction"
)

// Common errors
var (
	ErrFriendNotFound = errors.New("friend not found")
	ErrNotOwner       = errors.New("friend belongs to another user")
)

// Service handles activity feed assembly
type Service struct {
	friends      *friend.Repository
	transactions *transaction.Repository
	settlements  *settlement.Repository
}

// NewService creates a new activity service with dependencies injected
func NewService(friends *friend.Repository, transactions *transaction.Repository, settlements *settlement.Repository) *Service {
	return &Service{
		friends:      friends,
		transactions: transactions,
		settlements:  settlements,
	}
}

// FriendFeed merges the pair's transactions and settlements into one
// newest-first sequence and marks how much of it is recent. It reads
// and derives; recomputing from the same records gives the same feed.
func (s *Service) FriendFeed(ctx context.Context, userID, friendID int64) (*FeedResponse, error) {
	f, err := s.friends.GetByID(ctx, friendID)
	if err != nil {
		return nil, err
	}
	if f == nil {
		return nil, ErrFriendNotFound
	}
	if f.OwnerID != userID {
		return nil, ErrNotOwner
	}

	self, err := s.friends.GetSelf(ctx, userID)
	if err != nil {
		return nil, err
	}
	if self == nil {
		return nil, ErrFriendNotFound
	}

	transactions, err := s.transactions.ListForPair(ctx, userID, self.ID, f.ID)
	if err != nil {
		return nil, err
	}
	settlements, err := s.settlements.ListForFriend(ctx, userID, f.ID)
	if err != nil {
		return nil, err
	}

	feed := ledger.MergedFeed(self.ID, f.ID, transactions, settlements)
	return toFeedResponse(f.ID, feed), nil
}
