package settlement

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/adhamoui/splitpal/internal/currency"
	"github.com/adhamoui/splitpal/internal/ledger"
)

// Repository handles settlement data persistence
type Repository struct {
	db *sql.DB
}

// NewRepository creates a new settlement repository
func NewRepository(db *sql.DB) *Repository {
	return &Repository{db: db}
}

// lockCandidatesQuery reads the splits a settlement can land on and
// locks them for the rest of the transaction. The FOR UPDATE is what
// serializes concurrent settlements against the same friend: the
// second one blocks here until the first commits, then reads the
// already-patched remainders instead of the same stale snapshot.
const lockCandidatesQuery = `
	SELECT sp.id, sp.transaction_id, sp.friend_id, sp.amount, sp.settled_amount, sp.is_settled, t.occurred_on, t.rate_snapshot
	FROM splits sp
	JOIN transactions t ON sp.transaction_id = t.id
	WHERE t.creator_id = $1 AND t.payer_id = $2 AND sp.friend_id = $3
	ORDER BY t.occurred_on, sp.id
	FOR UPDATE OF sp
`

// ApplyWithLock runs the whole settle flow in one database
// transaction: the candidate splits are read with FOR UPDATE, the
// payment is planned against those locked rows, and the settlement
// row, allocation rows and split patches commit together. The record's
// AppliedAmount and BalanceBefore are filled from the plan; when
// reuseTxRates is set and the record carries no usable snapshot of its
// own, the frozen rates of a touched transaction are stored instead.
func (r *Repository) ApplyWithLock(ctx context.Context, s *Settlement, payerID, owerID int64, reuseTxRates bool) (*Settlement, ledger.Plan, error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, ledger.Plan{}, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	candidates, ratesByTx, err := lockCandidates(ctx, tx, s.CreatorID, payerID, owerID)
	if err != nil {
		return nil, ledger.Plan{}, err
	}

	plan := ledger.PlanSettlement(s.Amount, candidates)
	s.AppliedAmount = plan.Applied
	balanceBefore := plan.BalanceBefore
	s.BalanceBefore = &balanceBefore
	if reuseTxRates {
		if rates, ok := reuseSnapshot(plan, ratesByTx); ok {
			s.RateSnapshot = rates
		}
	}

	var snapshot []byte
	if s.RateSnapshot != nil {
		if snapshot, err = json.Marshal(s.RateSnapshot); err != nil {
			return nil, ledger.Plan{}, fmt.Errorf("failed to encode rate snapshot: %w", err)
		}
	}

	query := `
		INSERT INTO settlements (reference, creator_id, friend_id, amount, applied_amount, currency_code, direction, note, balance_before, rate_snapshot)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		RETURNING id, created_at
	`
	err = tx.QueryRowContext(ctx, query,
		s.Reference,
		s.CreatorID,
		s.FriendID,
		s.Amount,
		s.AppliedAmount,
		s.Currency,
		s.Direction,
		s.Note,
		s.BalanceBefore,
		snapshot,
	).Scan(&s.ID, &s.CreatedAt)
	if err != nil {
		return nil, ledger.Plan{}, fmt.Errorf("failed to create settlement: %w", err)
	}

	allocQuery := `
		INSERT INTO settlement_allocations (settlement_id, split_id, amount)
		VALUES ($1, $2, $3)
		RETURNING id
	`
	splitQuery := `
		UPDATE splits
		SET settled_amount = $2,
		    is_settled = $3,
		    settled_at = CASE WHEN $3 THEN NOW() ELSE settled_at END
		WHERE id = $1
	`
	for _, a := range plan.Allocations {
		alloc := &Allocation{SettlementID: s.ID, SplitID: a.SplitID, Amount: a.Amount}
		if err := tx.QueryRowContext(ctx, allocQuery, s.ID, a.SplitID, a.Amount).Scan(&alloc.ID); err != nil {
			return nil, ledger.Plan{}, fmt.Errorf("failed to create allocation: %w", err)
		}
		if _, err := tx.ExecContext(ctx, splitQuery, a.SplitID, a.NewSettled, a.FullySettled); err != nil {
			return nil, ledger.Plan{}, fmt.Errorf("failed to patch split: %w", err)
		}
		s.Allocations = append(s.Allocations, alloc)
	}

	if err := tx.Commit(); err != nil {
		return nil, ledger.Plan{}, fmt.Errorf("failed to commit settlement: %w", err)
	}
	return s, plan, nil
}

// lockCandidates loads and locks the eligible splits inside the given
// transaction, returning them as plan candidates together with each
// parent transaction's frozen rate table.
func lockCandidates(ctx context.Context, tx *sql.Tx, creatorID, payerID, owerID int64) ([]ledger.Candidate, map[int64]currency.Rates, error) {
	rows, err := tx.QueryContext(ctx, lockCandidatesQuery, creatorID, payerID, owerID)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to lock candidate splits: %w", err)
	}
	defer rows.Close()

	var candidates []ledger.Candidate
	ratesByTx := make(map[int64]currency.Rates)
	for rows.Next() {
		var sp ledger.Split
		var occurred time.Time
		var snapshot []byte
		if err := rows.Scan(
			&sp.ID,
			&sp.TransactionID,
			&sp.FriendID,
			&sp.Amount,
			&sp.SettledAmount,
			&sp.IsSettled,
			&occurred,
			&snapshot,
		); err != nil {
			return nil, nil, fmt.Errorf("failed to scan candidate split: %w", err)
		}
		candidates = append(candidates, ledger.Candidate{Split: sp, OccurredOn: occurred.Unix()})

		if _, seen := ratesByTx[sp.TransactionID]; !seen && len(snapshot) > 0 {
			var rates currency.Rates
			if err := json.Unmarshal(snapshot, &rates); err == nil && len(rates) > 0 {
				ratesByTx[sp.TransactionID] = rates
			}
		}
	}
	return candidates, ratesByTx, rows.Err()
}

// reuseSnapshot finds the frozen rates of a transaction the plan
// touched
func reuseSnapshot(plan ledger.Plan, ratesByTx map[int64]currency.Rates) (currency.Rates, bool) {
	for _, a := range plan.Allocations {
		if rates, ok := ratesByTx[a.TransactionID]; ok {
			return rates, true
		}
	}
	return nil, false
}

const settlementColumns = `id, reference, creator_id, friend_id, amount, applied_amount, currency_code, direction, note, balance_before, created_at`

func scanSettlement(row interface{ Scan(...interface{}) error }) (*Settlement, error) {
	s := &Settlement{}
	var code, direction string
	err := row.Scan(
		&s.ID,
		&s.Reference,
		&s.CreatorID,
		&s.FriendID,
		&s.Amount,
		&s.AppliedAmount,
		&code,
		&direction,
		&s.Note,
		&s.BalanceBefore,
		&s.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	s.Currency = currency.Code(code)
	s.Direction = ledger.Direction(direction)
	return s, nil
}

// GetByID retrieves a settlement with its allocations
func (r *Repository) GetByID(ctx context.Context, id int64) (*Settlement, error) {
	query := `SELECT ` + settlementColumns + ` FROM settlements WHERE id = $1`

	s, err := scanSettlement(r.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get settlement: %w", err)
	}

	allocQuery := `
		SELECT id, settlement_id, split_id, amount
		FROM settlement_allocations
		WHERE settlement_id = $1
		ORDER BY id
	`
	rows, err := r.db.QueryContext(ctx, allocQuery, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get allocations: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		a := &Allocation{}
		if err := rows.Scan(&a.ID, &a.SettlementID, &a.SplitID, &a.Amount); err != nil {
			return nil, fmt.Errorf("failed to scan allocation: %w", err)
		}
		s.Allocations = append(s.Allocations, a)
	}
	return s, rows.Err()
}

// ListByCreator retrieves a page of the user's settlements, newest first
func (r *Repository) ListByCreator(ctx context.Context, creatorID int64, limit, offset int) ([]*Settlement, int, error) {
	var total int
	countQuery := `SELECT COUNT(*) FROM settlements WHERE creator_id = $1`
	if err := r.db.QueryRowContext(ctx, countQuery, creatorID).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count settlements: %w", err)
	}

	query := `
		SELECT ` + settlementColumns + `
		FROM settlements
		WHERE creator_id = $1
		ORDER BY created_at DESC, id DESC
		LIMIT $2 OFFSET $3
	`

	rows, err := r.db.QueryContext(ctx, query, creatorID, limit, offset)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list settlements: %w", err)
	}
	defer rows.Close()

	var settlements []*Settlement
	for rows.Next() {
		s, err := scanSettlement(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("failed to scan settlement: %w", err)
		}
		settlements = append(settlements, s)
	}
	return settlements, total, rows.Err()
}

// ListForFriend returns the pair's settlements as ledger records,
// oldest first, for the activity feed
func (r *Repository) ListForFriend(ctx context.Context, creatorID, friendID int64) ([]ledger.Settlement, error) {
	query := `
		SELECT id, friend_id, amount, currency_code, direction, COALESCE(note, ''), created_at
		FROM settlements
		WHERE creator_id = $1 AND friend_id = $2
		ORDER BY created_at, id
	`

	rows, err := r.db.QueryContext(ctx, query, creatorID, friendID)
	if err != nil {
		return nil, fmt.Errorf("failed to list friend settlements: %w", err)
	}
	defer rows.Close()

	var settlements []ledger.Settlement
	for rows.Next() {
		var s ledger.Settlement
		var code, direction string
		if err := rows.Scan(&s.ID, &s.FriendID, &s.Amount, &code, &direction, &s.Note, &s.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan friend settlement: %w", err)
		}
		s.Currency = currency.Code(code)
		s.Direction = ledger.Direction(direction)
		settlements = append(settlements, s)
	}
	return settlements, rows.Err()
}
