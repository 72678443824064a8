package settlement

import (
	"testing"

	"github.com/adhamoui/splitpal/internal/ledger"
)

const (
	selfID   = int64(1)
	friendID = int64(2)
)

func TestSettlementSides(t *testing.T) {
	tests := []struct {
		name      string
		direction ledger.Direction
		wantPayer int64
		wantOwer  int64
	}{
		{
			name:      "friend paying clears what the friend owes",
			direction: ledger.DirectionFromFriend,
			wantPayer: selfID,
			wantOwer:  friendID,
		},
		{
			name:      "user paying clears what the user owes",
			direction: ledger.DirectionToFriend,
			wantPayer: friendID,
			wantOwer:  selfID,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			payerID, owerID := settlementSides(tt.direction, selfID, friendID)
			if payerID != tt.wantPayer {
				t.Errorf("payer = %d, want %d", payerID, tt.wantPayer)
			}
			if owerID != tt.wantOwer {
				t.Errorf("ower = %d, want %d", owerID, tt.wantOwer)
			}
		})
	}
}
