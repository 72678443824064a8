package ledger

import (
	"sort"
	"time"

	"github.com/adhamoui/splitpal/internal/currency"
)

// FeedItemType tags a feed entry as expense history or payment history
type FeedItemType string

const (
	FeedItemTransaction FeedItemType = "transaction"
	FeedItemSettlement  FeedItemType = "settlement"
)

// FeedItem is one entry in a friend's merged activity feed. For
// transaction items Amount is the relevant split's original amount, not
// its remaining balance: history shows what was owed at the time, not a
// moving target. Remaining carries the pair's current unsettled total
// for that transaction and drives the recent/older partition.
type FeedItem struct {
	Type          FeedItemType
	TransactionID int64
	SettlementID  int64
	Title         string
	Amount        float64
	Currency      currency.Code
	Direction     Direction
	Timestamp     time.Time
	Remaining     float64
}

// Feed is the merged, newest-first activity between the user and one
// friend. Items[:RecentCount] is the "recent" partition: everything
// since the last settlement that left the pair fully cleared. When no
// such settlement exists the whole feed is recent.
type Feed struct {
	Items       []FeedItem
	RecentCount int
}

// MergedFeed combines a friend's transactions and settlements into one
// chronological sequence. It is a derived, read-only view: recomputing
// it from the same inputs always yields the same feed.
func MergedFeed(selfID, friendID int64, transactions []Transaction, settlements []Settlement) Feed {
	items := make([]FeedItem, 0, len(transactions)+len(settlements))

	for _, tx := range transactions {
		// The display amount comes from whichever side of the pair owes
		// on this transaction.
		var relevant Split
		var found bool
		switch tx.PayerID {
		case selfID:
			relevant, found = tx.splitFor(friendID)
		case friendID:
			relevant, found = tx.splitFor(selfID)
		}
		if !found {
			continue
		}

		// Partition checks need both sides of the pair to be clear.
		var remaining float64
		if s, ok := tx.splitFor(friendID); ok {
			remaining += s.Remaining()
		}
		if s, ok := tx.splitFor(selfID); ok {
			remaining += s.Remaining()
		}

		items = append(items, FeedItem{
			Type:          FeedItemTransaction,
			TransactionID: tx.ID,
			Title:         tx.Title,
			Amount:        relevant.Amount,
			Currency:      tx.Currency,
			Timestamp:     tx.CreatedAt,
			Remaining:     remaining,
		})
	}

	for _, st := range settlements {
		items = append(items, FeedItem{
			Type:         FeedItemSettlement,
			SettlementID: st.ID,
			Title:        st.Note,
			Amount:       st.Amount,
			Currency:     st.Currency,
			Direction:    st.Direction,
			Timestamp:    st.CreatedAt,
		})
	}

	// Newest first; equal timestamps keep insertion order.
	sort.SliceStable(items, func(i, j int) bool {
		return items[i].Timestamp.After(items[j].Timestamp)
	})

	return Feed{
		Items:       items,
		RecentCount: recentCount(items),
	}
}

// recentCount finds the most recent settlement after which every older
// transaction item is fully settled. That settlement and everything
// older belong to the historical partition; the index of the settlement
// is therefore the length of the recent prefix.
func recentCount(items []FeedItem) int {
	for i, item := range items {
		if item.Type != FeedItemSettlement {
			continue
		}
		cleared := true
		for _, older := range items[i+1:] {
			if older.Type == FeedItemTransaction && older.Remaining > Epsilon {
				cleared = false
				break
			}
		}
		if cleared {
			return i
		}
	}
	return len(items)
}
