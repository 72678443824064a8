package ledger

import (
	"math"
	"reflect"
	"testing"
	"time"

	"github.com/adhamoui/splitpal/internal/currency"
)

const (
	selfID   = int64(1)
	friendID = int64(2)
	otherID  = int64(3)
)

var usdRates = currency.Rates{currency.USD: 1.0, currency.EUR: 0.92}

func float64Ptr(v float64) *float64 { return &v }

func day(n int) time.Time {
	return time.Date(2024, time.January, n, 12, 0, 0, 0, time.UTC)
}

// pairTransaction builds a two-person transaction where payerID paid and
// owerID owes owed. The payer's own split is settled at creation.
func pairTransaction(id, payerID, owerID int64, total, owed float64, code currency.Code, rates currency.Rates, occurred time.Time) Transaction {
	return Transaction{
		ID:           id,
		PayerID:      payerID,
		Title:        "expense",
		Amount:       total,
		Currency:     code,
		RateSnapshot: rates,
		OccurredOn:   occurred,
		CreatedAt:    occurred,
		Splits: []Split{
			{ID: id * 10, TransactionID: id, FriendID: payerID, Amount: total - owed, SettledAmount: float64Ptr(total - owed)},
			{ID: id*10 + 1, TransactionID: id, FriendID: owerID, Amount: owed},
		},
	}
}

func TestBalanceWithNoSelf(t *testing.T) {
	txs := []Transaction{pairTransaction(1, selfID, friendID, 20, 10, currency.USD, usdRates, day(1))}
	got := BalanceWith(currency.USD, 0, friendID, txs)
	if got.FriendOwesUser != 0 || got.UserOwesFriend != 0 || got.Net != 0 {
		t.Errorf("balance without self record = %+v, want zero", got)
	}
}

func TestBalanceSymmetry(t *testing.T) {
	txs := []Transaction{
		pairTransaction(1, selfID, friendID, 60, 30, currency.USD, usdRates, day(1)),
		pairTransaction(2, friendID, selfID, 24, 12, currency.USD, usdRates, day(2)),
	}

	mine := BalanceWith(currency.USD, selfID, friendID, txs)
	if math.Abs(mine.FriendOwesUser-mine.UserOwesFriend-mine.Net) > 1e-9 {
		t.Errorf("net = %v, want friendOwes-userOwes = %v", mine.Net, mine.FriendOwesUser-mine.UserOwesFriend)
	}

	// The friend's view of the same records negates the net.
	theirs := BalanceWith(currency.USD, friendID, selfID, txs)
	if math.Abs(mine.Net+theirs.Net) > 1e-9 {
		t.Errorf("swapped roles: net %v and %v should cancel", mine.Net, theirs.Net)
	}
}

func TestBalanceIdempotentRead(t *testing.T) {
	txs := []Transaction{
		pairTransaction(1, selfID, friendID, 120.50, 40.17, currency.USD, usdRates, day(1)),
		pairTransaction(2, friendID, selfID, 78, 39, currency.EUR, usdRates, day(3)),
	}

	first := BalanceWith(currency.USD, selfID, friendID, txs)
	second := BalanceWith(currency.USD, selfID, friendID, txs)
	if !reflect.DeepEqual(first, second) {
		t.Errorf("repeated reads differ: %+v vs %+v", first, second)
	}
}

func TestBalanceEqualSplitDinner(t *testing.T) {
	// $120.50 split equally among self + two friends; self paid.
	share := 120.50 / 3
	tx := Transaction{
		ID:           1,
		PayerID:      selfID,
		Amount:       120.50,
		Currency:     currency.USD,
		RateSnapshot: usdRates,
		OccurredOn:   day(1),
		CreatedAt:    day(1),
		Splits: []Split{
			{ID: 10, TransactionID: 1, FriendID: selfID, Amount: share, SettledAmount: float64Ptr(share)},
			{ID: 11, TransactionID: 1, FriendID: friendID, Amount: share},
			{ID: 12, TransactionID: 1, FriendID: otherID, Amount: share},
		},
	}
	txs := []Transaction{tx}

	withFriend := BalanceWith(currency.USD, selfID, friendID, txs)
	withOther := BalanceWith(currency.USD, selfID, otherID, txs)

	if math.Abs(withFriend.FriendOwesUser-40.1667) > 0.001 {
		t.Errorf("friend owes %v, want ~40.1667", withFriend.FriendOwesUser)
	}
	combined := withFriend.FriendOwesUser + withOther.FriendOwesUser
	if math.Abs(combined-80.33) > 0.01 {
		t.Errorf("combined owed = %v, want ~80.33", combined)
	}
	// The payer's own split is pre-settled and must not surface anywhere.
	if withFriend.UserOwesFriend != 0 {
		t.Errorf("userOwesFriend = %v, want 0", withFriend.UserOwesFriend)
	}
}

func TestBalanceCrossCurrency(t *testing.T) {
	// €78 paid by the friend, user's split €39, snapshot 1 USD = 0.92 EUR.
	snapshot := currency.Rates{currency.USD: 1.0, currency.EUR: 0.92}
	tx := pairTransaction(1, friendID, selfID, 78, 39, currency.EUR, snapshot, day(1))

	got := BalanceWith(currency.USD, selfID, friendID, []Transaction{tx})
	want := 39.0 / 0.92
	if math.Abs(got.UserOwesFriend-want) > 0.01 {
		t.Errorf("userOwesFriend = %v, want ~%.2f", got.UserOwesFriend, want)
	}
	if got.Net > 0 {
		t.Errorf("net = %v, want negative (user owes)", got.Net)
	}
	// Breakdown keeps the raw EUR amount, negative because the user owes.
	if math.Abs(got.PerCurrency[currency.EUR]+39.0) > 1e-9 {
		t.Errorf("EUR breakdown = %v, want -39", got.PerCurrency[currency.EUR])
	}
}

func TestBalanceMissingRateFallsBack(t *testing.T) {
	// Snapshot with no EUR rate: the amount passes through unconverted.
	tx := pairTransaction(1, friendID, selfID, 78, 39, currency.EUR, currency.Rates{currency.USD: 1.0}, day(1))
	got := BalanceWith(currency.USD, selfID, friendID, []Transaction{tx})
	if got.UserOwesFriend != 39.0 {
		t.Errorf("userOwesFriend = %v, want unconverted 39", got.UserOwesFriend)
	}
}

func TestBalanceSkipsSettledAndLegacySplits(t *testing.T) {
	tx1 := pairTransaction(1, selfID, friendID, 20, 10, currency.USD, usdRates, day(1))
	tx1.Splits[1].SettledAmount = float64Ptr(10) // fully settled

	// Legacy record: no settled amount, boolean only.
	tx2 := pairTransaction(2, selfID, friendID, 30, 15, currency.USD, usdRates, day(2))
	tx2.Splits[1].SettledAmount = nil
	tx2.Splits[1].IsSettled = true

	tx3 := pairTransaction(3, selfID, friendID, 40, 20, currency.USD, usdRates, day(3))
	tx3.Splits[1].SettledAmount = float64Ptr(5) // partially settled

	got := BalanceWith(currency.USD, selfID, friendID, []Transaction{tx1, tx2, tx3})
	if math.Abs(got.FriendOwesUser-15.0) > 1e-9 {
		t.Errorf("friendOwesUser = %v, want 15 (only the partial remainder)", got.FriendOwesUser)
	}
}

func TestSplitRemainingFallback(t *testing.T) {
	tests := []struct {
		name  string
		split Split
		want  float64
	}{
		{"legacy unsettled", Split{Amount: 25}, 25},
		{"legacy settled", Split{Amount: 25, IsSettled: true}, 0},
		{"partial", Split{Amount: 25, SettledAmount: float64Ptr(10)}, 15},
		{"overshoot clamps", Split{Amount: 25, SettledAmount: float64Ptr(25.005)}, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.split.Remaining(); got != tt.want {
				t.Errorf("Remaining() = %v, want %v", got, tt.want)
			}
		})
	}
}
