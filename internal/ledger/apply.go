package ledger

import "sort"

// Candidate is a split eligible for settlement, paired with its parent
// transaction's occurrence date for ordering.
type Candidate struct {
	Split      Split
	OccurredOn int64 // unix seconds of the parent transaction's occurrence date
}

// Allocation records how much of a settlement landed on one split
type Allocation struct {
	SplitID       int64
	TransactionID int64
	Amount        float64
	NewSettled    float64 // split's settled amount after this allocation
	FullySettled  bool
}

// Plan is the result of allocating a settlement amount across candidate
// splits. Applied may be less than Requested when the amount exceeds the
// total outstanding debt; the difference is reported in Remainder rather
// than silently dropped, so callers can warn instead of recording a
// false full settlement.
type Plan struct {
	Requested     float64
	Applied       float64
	Remainder     float64
	BalanceBefore float64
	Allocations   []Allocation
}

// PlanSettlement walks the candidates oldest-first and allocates the
// payment across them. The FIFO order is a policy choice: it fixes which
// debts count as paid off under a partial settlement, and the audit
// trail depends on it being reproduced exactly. Ties on occurrence date
// keep their input order.
//
// The plan only describes the mutation; the caller is responsible for
// applying it to storage atomically together with the settlement record.
func PlanSettlement(amount float64, candidates []Candidate) Plan {
	eligible := make([]Candidate, 0, len(candidates))
	for _, c := range candidates {
		if c.Split.Outstanding() {
			eligible = append(eligible, c)
		}
	}

	sort.SliceStable(eligible, func(i, j int) bool {
		return eligible[i].OccurredOn < eligible[j].OccurredOn
	})

	plan := Plan{Requested: amount}
	for _, c := range eligible {
		plan.BalanceBefore += c.Split.Remaining()
	}

	left := amount
	for _, c := range eligible {
		if left <= 0 {
			break
		}

		remaining := c.Split.Remaining()
		applied := remaining
		if left < applied {
			applied = left
		}

		settled := c.Split.Amount - remaining + applied
		fully := c.Split.Amount-settled <= Epsilon

		plan.Allocations = append(plan.Allocations, Allocation{
			SplitID:       c.Split.ID,
			TransactionID: c.Split.TransactionID,
			Amount:        applied,
			NewSettled:    settled,
			FullySettled:  fully,
		})

		plan.Applied += applied
		left -= applied
	}

	plan.Remainder = plan.Requested - plan.Applied
	if plan.Remainder < 0 {
		plan.Remainder = 0
	}
	return plan
}
