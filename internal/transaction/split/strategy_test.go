package split

import (
	"errors"
	"math"
	"testing"
)

func floatPtr(v float64) *float64 { return &v }
func intPtr(v int) *int           { return &v }

func TestFactoryCreate(t *testing.T) {
	factory := NewFactory()

	tests := []struct {
		method  Method
		wantErr error
	}{
		{MethodEqual, nil},
		{MethodUnequal, nil},
		{MethodByShares, nil},
		{MethodByItem, nil},
		{Method("percentage"), ErrUnknownMethod},
		{Method(""), ErrUnknownMethod},
	}

	for _, tt := range tests {
		strategy, err := factory.Create(tt.method)
		if tt.wantErr != nil {
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("Create(%q) error = %v, want %v", tt.method, err, tt.wantErr)
			}
			continue
		}
		if err != nil {
			t.Errorf("Create(%q) unexpected error: %v", tt.method, err)
			continue
		}
		if strategy.Method() != tt.method {
			t.Errorf("Create(%q).Method() = %q", tt.method, strategy.Method())
		}
	}
}

func TestEqualStrategy(t *testing.T) {
	strategy := &EqualStrategy{}

	req := Request{
		Total:   120.50,
		PayerID: 1,
		Participants: []Participant{
			{FriendID: 1},
			{FriendID: 2},
			{FriendID: 3},
		},
	}

	outputs, err := strategy.Calculate(req)
	if err != nil {
		t.Fatalf("Calculate() error: %v", err)
	}
	if len(outputs) != 3 {
		t.Fatalf("got %d outputs, want 3", len(outputs))
	}

	var sum float64
	for _, out := range outputs {
		want := 120.50 / 3
		if math.Abs(out.Amount-want) > 1e-9 {
			t.Errorf("friend %d amount = %v, want %v", out.FriendID, out.Amount, want)
		}
		sum += out.Amount
	}
	if math.Abs(sum-120.50) > 1e-9 {
		t.Errorf("shares sum to %v, want exactly the total 120.50", sum)
	}
}

func TestEqualStrategyValidation(t *testing.T) {
	strategy := &EqualStrategy{}

	tests := []struct {
		name    string
		req     Request
		wantErr error
	}{
		{
			name:    "no participants",
			req:     Request{Total: 50, PayerID: 1},
			wantErr: ErrNoParticipants,
		},
		{
			name: "negative total",
			req: Request{Total: -10, PayerID: 1, Participants: []Participant{
				{FriendID: 1},
			}},
			wantErr: ErrNegativeAmount,
		},
		{
			name: "payer not among participants",
			req: Request{Total: 50, PayerID: 9, Participants: []Participant{
				{FriendID: 1}, {FriendID: 2},
			}},
			wantErr: ErrPayerNotInSplit,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if err := strategy.Validate(tt.req); !errors.Is(err, tt.wantErr) {
				t.Errorf("Validate() error = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestUnequalStrategy(t *testing.T) {
	strategy := &UnequalStrategy{}

	req := Request{
		Total:   100,
		PayerID: 1,
		Participants: []Participant{
			{FriendID: 1, Amount: floatPtr(60)},
			{FriendID: 2, Amount: floatPtr(40)},
		},
	}

	outputs, err := strategy.Calculate(req)
	if err != nil {
		t.Fatalf("Calculate() error: %v", err)
	}
	if outputs[0].Amount != 60 || outputs[1].Amount != 40 {
		t.Errorf("amounts = %v, %v; want 60, 40", outputs[0].Amount, outputs[1].Amount)
	}
	if outputs[0].Percentage == nil || math.Abs(*outputs[0].Percentage-60) > 1e-9 {
		t.Errorf("percentage = %v, want 60", outputs[0].Percentage)
	}
}

func TestUnequalStrategyValidation(t *testing.T) {
	strategy := &UnequalStrategy{}

	tests := []struct {
		name    string
		req     Request
		wantErr error
	}{
		{
			name: "missing amount",
			req: Request{Total: 100, PayerID: 1, Participants: []Participant{
				{FriendID: 1, Amount: floatPtr(100)},
				{FriendID: 2},
			}},
			wantErr: ErrMissingAmount,
		},
		{
			name: "negative amount",
			req: Request{Total: 100, PayerID: 1, Participants: []Participant{
				{FriendID: 1, Amount: floatPtr(110)},
				{FriendID: 2, Amount: floatPtr(-10)},
			}},
			wantErr: ErrNegativeAmount,
		},
		{
			name: "sum mismatch",
			req: Request{Total: 100, PayerID: 1, Participants: []Participant{
				{FriendID: 1, Amount: floatPtr(60)},
				{FriendID: 2, Amount: floatPtr(60)},
			}},
			wantErr: ErrAmountMismatch,
		},
		{
			name: "sum within tolerance",
			req: Request{Total: 100, PayerID: 1, Participants: []Participant{
				{FriendID: 1, Amount: floatPtr(33.33)},
				{FriendID: 2, Amount: floatPtr(33.33)},
				{FriendID: 3, Amount: floatPtr(33.33)},
			}},
			wantErr: nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if err := strategy.Validate(tt.req); !errors.Is(err, tt.wantErr) {
				t.Errorf("Validate() error = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestSharesStrategy(t *testing.T) {
	strategy := &SharesStrategy{}

	// 2:1:1 over 100 -> 50, 25, 25
	req := Request{
		Total:   100,
		PayerID: 1,
		Participants: []Participant{
			{FriendID: 1, Shares: intPtr(2)},
			{FriendID: 2, Shares: intPtr(1)},
			{FriendID: 3, Shares: intPtr(1)},
		},
	}

	outputs, err := strategy.Calculate(req)
	if err != nil {
		t.Fatalf("Calculate() error: %v", err)
	}

	want := []float64{50, 25, 25}
	for i, out := range outputs {
		if math.Abs(out.Amount-want[i]) > 1e-9 {
			t.Errorf("friend %d amount = %v, want %v", out.FriendID, out.Amount, want[i])
		}
	}
}

func TestSharesStrategyValidation(t *testing.T) {
	strategy := &SharesStrategy{}

	tests := []struct {
		name    string
		req     Request
		wantErr error
	}{
		{
			name: "missing shares",
			req: Request{Total: 100, PayerID: 1, Participants: []Participant{
				{FriendID: 1, Shares: intPtr(1)},
				{FriendID: 2},
			}},
			wantErr: ErrMissingShares,
		},
		{
			name: "zero shares",
			req: Request{Total: 100, PayerID: 1, Participants: []Participant{
				{FriendID: 1, Shares: intPtr(1)},
				{FriendID: 2, Shares: intPtr(0)},
			}},
			wantErr: ErrInvalidShares,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if err := strategy.Validate(tt.req); !errors.Is(err, tt.wantErr) {
				t.Errorf("Validate() error = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestItemStrategy(t *testing.T) {
	strategy := &ItemStrategy{}

	req := Request{
		Total:   70,
		PayerID: 1,
		Participants: []Participant{
			{FriendID: 1},
			{FriendID: 2},
		},
		Items: []Item{
			{Description: "pasta", Amount: 30, Assignees: []int64{1}},
			{Description: "wine", Amount: 40, Assignees: []int64{1, 2}},
		},
	}

	outputs, err := strategy.Calculate(req)
	if err != nil {
		t.Fatalf("Calculate() error: %v", err)
	}

	byFriend := make(map[int64]float64)
	for _, out := range outputs {
		byFriend[out.FriendID] = out.Amount
	}
	if math.Abs(byFriend[1]-50) > 1e-9 {
		t.Errorf("friend 1 amount = %v, want 50", byFriend[1])
	}
	if math.Abs(byFriend[2]-20) > 1e-9 {
		t.Errorf("friend 2 amount = %v, want 20", byFriend[2])
	}
}

func TestItemStrategyValidation(t *testing.T) {
	strategy := &ItemStrategy{}

	participants := []Participant{{FriendID: 1}, {FriendID: 2}}

	tests := []struct {
		name    string
		req     Request
		wantErr error
	}{
		{
			name:    "no items",
			req:     Request{Total: 50, PayerID: 1, Participants: participants},
			wantErr: ErrNoItems,
		},
		{
			name: "assignee not a participant",
			req: Request{Total: 50, PayerID: 1, Participants: participants, Items: []Item{
				{Description: "dessert", Amount: 50, Assignees: []int64{7}},
			}},
			wantErr: ErrUnknownAssignee,
		},
		{
			name: "item without assignees",
			req: Request{Total: 50, PayerID: 1, Participants: participants, Items: []Item{
				{Description: "dessert", Amount: 50},
			}},
			wantErr: ErrUnknownAssignee,
		},
		{
			name: "items do not sum to total",
			req: Request{Total: 100, PayerID: 1, Participants: participants, Items: []Item{
				{Description: "dessert", Amount: 50, Assignees: []int64{1, 2}},
			}},
			wantErr: ErrItemsMismatch,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if err := strategy.Validate(tt.req); !errors.Is(err, tt.wantErr) {
				t.Errorf("Validate() error = %v, want %v", err, tt.wantErr)
			}
		})
	}
}
