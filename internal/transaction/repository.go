package transaction

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	"github.com/lib/pq"

	"github.com/adhamoui/splitpal/internal/currency"
	"github.com/adhamoui/splitpal/internal/ledger"
)

// Repository handles transaction, split and item data persistence
type Repository struct {
	db *sql.DB
}

// NewRepository creates a new transaction repository
func NewRepository(db *sql.DB) *Repository {
	return &Repository{db: db}
}

// Create inserts a transaction with its splits and items in one
// database transaction, so a failed split insert never leaves a
// half-written expense behind.
func (r *Repository) Create(ctx context.Context, t *Transaction) (*Transaction, error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	snapshot, err := json.Marshal(t.RateSnapshot)
	if err != nil {
		return nil, fmt.Errorf("failed to encode rate snapshot: %w", err)
	}

	query := `
		INSERT INTO transactions (creator_id, payer_id, title, category, amount, currency_code, split_method, rate_snapshot, occurred_on)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING id, created_at
	`
	err = tx.QueryRowContext(ctx, query,
		t.CreatorID,
		t.PayerID,
		t.Title,
		t.Category,
		t.Amount,
		t.Currency,
		t.SplitMethod,
		snapshot,
		t.OccurredOn,
	).Scan(&t.ID, &t.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("failed to create transaction: %w", err)
	}

	splitQuery := `
		INSERT INTO splits (transaction_id, friend_id, amount, percentage, settled_amount, is_settled, settled_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id
	`
	for _, s := range t.Splits {
		s.TransactionID = t.ID
		if err := tx.QueryRowContext(ctx, splitQuery,
			t.ID, s.FriendID, s.Amount, s.Percentage, s.SettledAmount, s.IsSettled, s.SettledAt,
		).Scan(&s.ID); err != nil {
			return nil, fmt.Errorf("failed to create split: %w", err)
		}
	}

	itemQuery := `
		INSERT INTO transaction_items (transaction_id, description, amount, assignees)
		VALUES ($1, $2, $3, $4)
		RETURNING id
	`
	for _, item := range t.Items {
		item.TransactionID = t.ID
		if err := tx.QueryRowContext(ctx, itemQuery,
			t.ID, item.Description, item.Amount, pq.Array(item.Assignees),
		).Scan(&item.ID); err != nil {
			return nil, fmt.Errorf("failed to create item: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit transaction: %w", err)
	}
	return t, nil
}

// GetByID retrieves a transaction with its splits and items
func (r *Repository) GetByID(ctx context.Context, id int64) (*Transaction, error) {
	query := `
		SELECT id, creator_id, payer_id, title, category, amount, currency_code, split_method, rate_snapshot, occurred_on, created_at
		FROM transactions
		WHERE id = $1
	`

	t := &Transaction{}
	var snapshot []byte
	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&t.ID,
		&t.CreatorID,
		&t.PayerID,
		&t.Title,
		&t.Category,
		&t.Amount,
		&t.Currency,
		&t.SplitMethod,
		&snapshot,
		&t.OccurredOn,
		&t.CreatedAt,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get transaction: %w", err)
	}
	if err := json.Unmarshal(snapshot, &t.RateSnapshot); err != nil {
		return nil, fmt.Errorf("failed to decode rate snapshot: %w", err)
	}

	if t.Splits, err = r.getSplits(ctx, id); err != nil {
		return nil, err
	}
	if t.Items, err = r.getItems(ctx, id); err != nil {
		return nil, err
	}
	return t, nil
}

func (r *Repository) getSplits(ctx context.Context, transactionID int64) ([]*Split, error) {
	query := `
		SELECT id, transaction_id, friend_id, amount, percentage, settled_amount, is_settled, settled_at
		FROM splits
		WHERE transaction_id = $1
		ORDER BY id
	`

	rows, err := r.db.QueryContext(ctx, query, transactionID)
	if err != nil {
		return nil, fmt.Errorf("failed to get splits: %w", err)
	}
	defer rows.Close()

	var splits []*Split
	for rows.Next() {
		s := &Split{}
		if err := rows.Scan(
			&s.ID,
			&s.TransactionID,
			&s.FriendID,
			&s.Amount,
			&s.Percentage,
			&s.SettledAmount,
			&s.IsSettled,
			&s.SettledAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan split: %w", err)
		}
		splits = append(splits, s)
	}
	return splits, rows.Err()
}

func (r *Repository) getItems(ctx context.Context, transactionID int64) ([]*Item, error) {
	query := `
		SELECT id, transaction_id, description, amount, assignees
		FROM transaction_items
		WHERE transaction_id = $1
		ORDER BY id
	`

	rows, err := r.db.QueryContext(ctx, query, transactionID)
	if err != nil {
		return nil, fmt.Errorf("failed to get items: %w", err)
	}
	defer rows.Close()

	var items []*Item
	for rows.Next() {
		item := &Item{}
		if err := rows.Scan(
			&item.ID,
			&item.TransactionID,
			&item.Description,
			&item.Amount,
			pq.Array(&item.Assignees),
		); err != nil {
			return nil, fmt.Errorf("failed to scan item: %w", err)
		}
		items = append(items, item)
	}
	return items, rows.Err()
}

// ListByCreator retrieves a page of the user's transactions, newest
// first, without splits or items
func (r *Repository) ListByCreator(ctx context.Context, creatorID int64, limit, offset int) ([]*Transaction, int, error) {
	var total int
	countQuery := `SELECT COUNT(*) FROM transactions WHERE creator_id = $1`
	if err := r.db.QueryRowContext(ctx, countQuery, creatorID).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count transactions: %w", err)
	}

	query := `
		SELECT id, creator_id, payer_id, title, category, amount, currency_code, split_method, rate_snapshot, occurred_on, created_at
		FROM transactions
		WHERE creator_id = $1
		ORDER BY created_at DESC, id DESC
		LIMIT $2 OFFSET $3
	`

	rows, err := r.db.QueryContext(ctx, query, creatorID, limit, offset)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list transactions: %w", err)
	}
	defer rows.Close()

	var transactions []*Transaction
	for rows.Next() {
		t := &Transaction{}
		var snapshot []byte
		if err := rows.Scan(
			&t.ID,
			&t.CreatorID,
			&t.PayerID,
			&t.Title,
			&t.Category,
			&t.Amount,
			&t.Currency,
			&t.SplitMethod,
			&snapshot,
			&t.OccurredOn,
			&t.CreatedAt,
		); err != nil {
			return nil, 0, fmt.Errorf("failed to scan transaction: %w", err)
		}
		if err := json.Unmarshal(snapshot, &t.RateSnapshot); err != nil {
			return nil, 0, fmt.Errorf("failed to decode rate snapshot: %w", err)
		}
		transactions = append(transactions, t)
	}
	return transactions, total, rows.Err()
}

// ListForPair returns every transaction between the two friends as
// ledger records: transactions the user created where either of them
// paid, with only the pair's splits attached. The balance and
// settlement computations consume this directly.
func (r *Repository) ListForPair(ctx context.Context, creatorID, selfFriendID, friendID int64) ([]ledger.Transaction, error) {
	query := `
		SELECT id, payer_id, title, amount, currency_code, rate_snapshot, occurred_on, created_at
		FROM transactions
		WHERE creator_id = $1 AND payer_id = ANY($2)
		ORDER BY occurred_on, id
	`

	pair := pq.Int64Array{selfFriendID, friendID}
	rows, err := r.db.QueryContext(ctx, query, creatorID, pair)
	if err != nil {
		return nil, fmt.Errorf("failed to list pair transactions: %w", err)
	}
	defer rows.Close()

	var transactions []ledger.Transaction
	var ids []int64
	index := make(map[int64]int)
	for rows.Next() {
		var t ledger.Transaction
		var snapshot []byte
		var code string
		if err := rows.Scan(
			&t.ID,
			&t.PayerID,
			&t.Title,
			&t.Amount,
			&code,
			&snapshot,
			&t.OccurredOn,
			&t.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan pair transaction: %w", err)
		}
		t.Currency = currency.Code(code)
		if err := json.Unmarshal(snapshot, &t.RateSnapshot); err != nil {
			return nil, fmt.Errorf("failed to decode rate snapshot: %w", err)
		}
		index[t.ID] = len(transactions)
		ids = append(ids, t.ID)
		transactions = append(transactions, t)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	if len(transactions) == 0 {
		return nil, nil
	}

	splitQuery := `
		SELECT id, transaction_id, friend_id, amount, settled_amount, is_settled
		FROM splits
		WHERE transaction_id = ANY($1) AND friend_id = ANY($2)
		ORDER BY transaction_id, id
	`

	splitRows, err := r.db.QueryContext(ctx, splitQuery, pq.Int64Array(ids), pair)
	if err != nil {
		return nil, fmt.Errorf("failed to list pair splits: %w", err)
	}
	defer splitRows.Close()

	for splitRows.Next() {
		var s ledger.Split
		if err := splitRows.Scan(
			&s.ID,
			&s.TransactionID,
			&s.FriendID,
			&s.Amount,
			&s.SettledAmount,
			&s.IsSettled,
		); err != nil {
			return nil, fmt.Errorf("failed to scan pair split: %w", err)
		}
		i := index[s.TransactionID]
		transactions[i].Splits = append(transactions[i].Splits, s)
	}
	return transactions, splitRows.Err()
}

// CountFriendsOwned returns how many of the given friend ids belong to
// the owner. Used to reject splits that reference someone else's
// friends.
func (r *Repository) CountFriendsOwned(ctx context.Context, ownerID int64, friendIDs []int64) (int, error) {
	var count int
	query := `SELECT COUNT(*) FROM friends WHERE owner_id = $1 AND id = ANY($2)`
	if err := r.db.QueryRowContext(ctx, query, ownerID, pq.Int64Array(friendIDs)).Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count owned friends: %w", err)
	}
	return count, nil
}

// HasSettledProgress reports whether any non-payer split of the
// transaction has settlement progress recorded against it
func (r *Repository) HasSettledProgress(ctx context.Context, id int64) (bool, error) {
	var count int
	query := `
		SELECT COUNT(*)
		FROM splits s
		JOIN transactions t ON s.transaction_id = t.id
		WHERE s.transaction_id = $1
		  AND s.friend_id <> t.payer_id
		  AND (s.is_settled OR COALESCE(s.settled_amount, 0) > 0)
	`
	if err := r.db.QueryRowContext(ctx, query, id).Scan(&count); err != nil {
		return false, fmt.Errorf("failed to check settled progress: %w", err)
	}
	return count > 0, nil
}

// Delete removes a transaction; splits and items cascade
func (r *Repository) Delete(ctx context.Context, id int64) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM transactions WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete transaction: %w", err)
	}

	rowsAffected, _ := result.RowsAffected()
	if rowsAffected == 0 {
		return fmt.Errorf("transaction not found")
	}
	return nil
}
