package transaction

import (
	"testing"
	"time"

	"github.com/adhamoui/splitpal/internal/currency"
)

func TestSplitToLedgerKeepsLegacyFallback(t *testing.T) {
	// A record written before settled_amount existed carries only the
	// boolean; the ledger applies the fallback rule.
	legacy := &Split{ID: 1, TransactionID: 5, FriendID: 2, Amount: 40, IsSettled: false}
	if got := legacy.ToLedger().Remaining(); got != 40 {
		t.Errorf("unsettled legacy split remaining = %v, want 40", got)
	}

	legacy.IsSettled = true
	if got := legacy.ToLedger().Remaining(); got != 0 {
		t.Errorf("settled legacy split remaining = %v, want 0", got)
	}

	partial := 15.0
	rich := &Split{ID: 2, TransactionID: 5, FriendID: 2, Amount: 40, SettledAmount: &partial}
	if got := rich.ToLedger().Remaining(); got != 25 {
		t.Errorf("partially settled split remaining = %v, want 25", got)
	}
}

func TestTransactionToLedgerCarriesSnapshot(t *testing.T) {
	rates := currency.Rates{currency.USD: 1, currency.EUR: 0.92}
	tx := &Transaction{
		ID:           7,
		PayerID:      1,
		Title:        "groceries",
		Amount:       78,
		Currency:     currency.EUR,
		RateSnapshot: rates,
		OccurredOn:   time.Date(2025, 2, 1, 0, 0, 0, 0, time.UTC),
		Splits: []*Split{
			{ID: 70, TransactionID: 7, FriendID: 1, Amount: 39},
			{ID: 71, TransactionID: 7, FriendID: 2, Amount: 39},
		},
	}

	lt := tx.ToLedger()
	if lt.RateSnapshot[currency.EUR] != 0.92 {
		t.Errorf("snapshot EUR rate = %v, want 0.92", lt.RateSnapshot[currency.EUR])
	}
	if len(lt.Splits) != 2 {
		t.Fatalf("got %d splits, want 2", len(lt.Splits))
	}
	if lt.Splits[1].FriendID != 2 || lt.Splits[1].Amount != 39 {
		t.Errorf("split conversion lost fields: %+v", lt.Splits[1])
	}
}

func TestSplitResponseRemaining(t *testing.T) {
	partial := 10.0
	s := &Split{ID: 1, Amount: 25, SettledAmount: &partial}
	if got := s.ToResponse().Remaining; got != 15 {
		t.Errorf("response remaining = %v, want 15", got)
	}
}
