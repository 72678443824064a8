package activity

import (
	"time"

	"github.com/adhamoui/splitpal/internal/ledger"
)

// FeedItemResponse is one entry in the merged activity feed
type FeedItemResponse struct {
	Type          string  `json:"type"`
	TransactionID int64   `json:"transaction_id,omitempty"`
	SettlementID  int64   `json:"settlement_id,omitempty"`
	Title         string  `json:"title,omitempty"`
	Amount        float64 `json:"amount"`
	Currency      string  `json:"currency"`
	Direction     string  `json:"direction,omitempty"`
	Timestamp     string  `json:"timestamp"`
	Remaining     float64 `json:"remaining"`
}

// FeedResponse is the merged feed for one friend, newest first. The
// first RecentCount items are the "recent" partition: everything since
// the last settlement that left the pair fully cleared.
type FeedResponse struct {
	FriendID    int64               `json:"friend_id"`
	Items       []*FeedItemResponse `json:"items"`
	RecentCount int                 `json:"recent_count"`
}

func toFeedResponse(friendID int64, feed ledger.Feed) *FeedResponse {
	items := make([]*FeedItemResponse, len(feed.Items))
	for i, item := range feed.Items {
		items[i] = &FeedItemResponse{
			Type:          string(item.Type),
			TransactionID: item.TransactionID,
			SettlementID:  item.SettlementID,
			Title:         item.Title,
			Amount:        item.Amount,
			Currency:      string(item.Currency),
			Direction:     string(item.Direction),
			Timestamp:     item.Timestamp.Format(time.RFC3339),
			Remaining:     item.Remaining,
		}
	}
	return &FeedResponse{
		FriendID:    friendID,
		Items:       items,
		RecentCount: feed.RecentCount,
	}
}
