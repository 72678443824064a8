package ledger

import (
	"math"
	"testing"
)

func candidate(splitID, txID int64, amount, settled float64, occurredDay int) Candidate {
	return Candidate{
		Split: Split{
			ID:            splitID,
			TransactionID: txID,
			Amount:        amount,
			SettledAmount: float64Ptr(settled),
		},
		OccurredOn: day(occurredDay).Unix(),
	}
}

func TestPlanSettlementFIFO(t *testing.T) {
	// Jan 1 $10, Jan 5 $20, Jan 10 $15 outstanding; settle $25.
	// Oldest debt clears first, the middle one partially, newest untouched.
	candidates := []Candidate{
		candidate(3, 30, 15, 0, 10),
		candidate(1, 10, 10, 0, 1),
		candidate(2, 20, 20, 0, 5),
	}

	plan := PlanSettlement(25, candidates)

	if plan.Applied != 25 || plan.Remainder != 0 {
		t.Fatalf("applied = %v, remainder = %v; want 25, 0", plan.Applied, plan.Remainder)
	}
	if plan.BalanceBefore != 45 {
		t.Errorf("balance before = %v, want 45", plan.BalanceBefore)
	}
	if len(plan.Allocations) != 2 {
		t.Fatalf("allocations = %d, want 2", len(plan.Allocations))
	}

	first := plan.Allocations[0]
	if first.SplitID != 1 || first.Amount != 10 || !first.FullySettled {
		t.Errorf("first allocation = %+v, want split 1 fully cleared with 10", first)
	}

	second := plan.Allocations[1]
	if second.SplitID != 2 || second.Amount != 15 || second.FullySettled {
		t.Errorf("second allocation = %+v, want split 2 partially cleared with 15", second)
	}
	if second.NewSettled != 15 {
		t.Errorf("second NewSettled = %v, want 15", second.NewSettled)
	}
}

func TestPlanSettlementConservation(t *testing.T) {
	candidates := []Candidate{
		candidate(1, 10, 12.34, 0, 1),
		candidate(2, 20, 7.66, 0, 2),
		candidate(3, 30, 40, 25, 3),
	}

	for _, requested := range []float64{5, 12.34, 20, 35} {
		plan := PlanSettlement(requested, candidates)

		var sum float64
		for _, a := range plan.Allocations {
			sum += a.Amount
		}
		if math.Abs(sum-plan.Applied) > 1e-9 {
			t.Errorf("requested %v: allocations sum %v != applied %v", requested, sum, plan.Applied)
		}
		if plan.Applied > requested {
			t.Errorf("requested %v: applied %v exceeds request", requested, plan.Applied)
		}
		if requested <= plan.BalanceBefore && math.Abs(plan.Applied-requested) > 1e-9 {
			t.Errorf("requested %v <= outstanding %v but applied only %v", requested, plan.BalanceBefore, plan.Applied)
		}
	}
}

func TestPlanSettlementOverPayment(t *testing.T) {
	// Outstanding $30, request $50: apply 30, report the 20 remainder,
	// clear every split.
	candidates := []Candidate{
		candidate(1, 10, 10, 0, 1),
		candidate(2, 20, 20, 0, 2),
	}

	plan := PlanSettlement(50, candidates)

	if plan.Applied != 30 {
		t.Errorf("applied = %v, want 30", plan.Applied)
	}
	if plan.Remainder != 20 {
		t.Errorf("remainder = %v, want 20", plan.Remainder)
	}
	for _, a := range plan.Allocations {
		if !a.FullySettled {
			t.Errorf("split %d not fully settled after over-payment", a.SplitID)
		}
	}
}

func TestPlanSettlementSkipsSettled(t *testing.T) {
	candidates := []Candidate{
		candidate(1, 10, 10, 10, 1),   // fully settled
		candidate(2, 20, 20, 19.995, 2), // within epsilon of settled
		candidate(3, 30, 15, 0, 3),
	}

	plan := PlanSettlement(100, candidates)

	if len(plan.Allocations) != 1 || plan.Allocations[0].SplitID != 3 {
		t.Fatalf("allocations = %+v, want only split 3", plan.Allocations)
	}
	if plan.BalanceBefore != 15 {
		t.Errorf("balance before = %v, want 15", plan.BalanceBefore)
	}
}

func TestPlanSettlementStableTies(t *testing.T) {
	// Same occurrence date: input order decides, reproducibly.
	candidates := []Candidate{
		candidate(7, 70, 10, 0, 1),
		candidate(8, 80, 10, 0, 1),
	}

	plan := PlanSettlement(15, candidates)
	if len(plan.Allocations) != 2 {
		t.Fatalf("allocations = %d, want 2", len(plan.Allocations))
	}
	if plan.Allocations[0].SplitID != 7 || plan.Allocations[1].SplitID != 8 {
		t.Errorf("tie order = %d,%d; want 7,8", plan.Allocations[0].SplitID, plan.Allocations[1].SplitID)
	}
	if plan.Allocations[1].Amount != 5 {
		t.Errorf("second tie allocation = %v, want 5", plan.Allocations[1].Amount)
	}
}

func TestPlanSettlementNoCandidates(t *testing.T) {
	plan := PlanSettlement(25, nil)
	if plan.Applied != 0 || plan.Remainder != 25 || len(plan.Allocations) != 0 {
		t.Errorf("empty plan = %+v, want nothing applied and full remainder", plan)
	}
}

func TestParseDirection(t *testing.T) {
	if _, err := ParseDirection("to_friend"); err != nil {
		t.Errorf("to_friend rejected: %v", err)
	}
	if _, err := ParseDirection("from_friend"); err != nil {
		t.Errorf("from_friend rejected: %v", err)
	}
	for _, bad := range []string{"", "both", "TO_FRIEND", "friend"} {
		if _, err := ParseDirection(bad); err == nil {
			t.Errorf("ParseDirection(%q) accepted, want rejection", bad)
		}
	}
}
