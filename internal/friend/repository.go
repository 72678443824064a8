package friend

import (
	"context"
	"database/sql"
	"fmt"
)

// Repository handles friend data persistence
type Repository struct {
	db *sql.DB
}

// NewRepository creates a new friend repository
func NewRepository(db *sql.DB) *Repository {
	return &Repository{db: db}
}

const friendColumns = `id, owner_id, linked_user_id, name, email, phone, is_dummy, is_self, created_at`

func scanFriend(row interface{ Scan(...interface{}) error }) (*Friend, error) {
	f := &Friend{}
	err := row.Scan(
		&f.ID,
		&f.OwnerID,
		&f.LinkedUserID,
		&f.Name,
		&f.Email,
		&f.Phone,
		&f.IsDummy,
		&f.IsSelf,
		&f.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	return f, nil
}

// Create inserts a new friend. Friends created without a linked user
// are dummies until they are linked.
func (r *Repository) Create(ctx context.Context, ownerID int64, req *CreateFriendRequest) (*Friend, error) {
	query := `
		INSERT INTO friends (owner_id, linked_user_id, name, email, phone, is_dummy)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING ` + friendColumns

	isDummy := req.LinkedUserID == nil
	f, err := scanFriend(r.db.QueryRowContext(ctx, query, ownerID, req.LinkedUserID, req.Name, req.Email, req.Phone, isDummy))
	if err != nil {
		return nil, fmt.Errorf("failed to create friend: %w", err)
	}
	return f, nil
}

// GetByID retrieves a friend by its ID
func (r *Repository) GetByID(ctx context.Context, id int64) (*Friend, error) {
	query := `SELECT ` + friendColumns + ` FROM friends WHERE id = $1`

	f, err := scanFriend(r.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get friend: %w", err)
	}
	return f, nil
}

// GetSelf retrieves the owner's "self" friend record
func (r *Repository) GetSelf(ctx context.Context, ownerID int64) (*Friend, error) {
	query := `SELECT ` + friendColumns + ` FROM friends WHERE owner_id = $1 AND is_self`

	f, err := scanFriend(r.db.QueryRowContext(ctx, query, ownerID))
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get self friend: %w", err)
	}
	return f, nil
}

// ListByOwnerID retrieves the owner's friends, self excluded
func (r *Repository) ListByOwnerID(ctx context.Context, ownerID int64) ([]*Friend, error) {
	query := `
		SELECT ` + friendColumns + `
		FROM friends
		WHERE owner_id = $1 AND NOT is_self
		ORDER BY name, id
	`

	rows, err := r.db.QueryContext(ctx, query, ownerID)
	if err != nil {
		return nil, fmt.Errorf("failed to list friends: %w", err)
	}
	defer rows.Close()

	var friends []*Friend
	for rows.Next() {
		f, err := scanFriend(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan friend: %w", err)
		}
		friends = append(friends, f)
	}

	return friends, nil
}

// Update modifies a friend's contact fields
func (r *Repository) Update(ctx context.Context, id int64, req *UpdateFriendRequest) (*Friend, error) {
	query := `
		UPDATE friends
		SET name = COALESCE($2, name),
		    email = COALESCE($3, email),
		    phone = COALESCE($4, phone)
		WHERE id = $1
		RETURNING ` + friendColumns

	f, err := scanFriend(r.db.QueryRowContext(ctx, query, id, req.Name, req.Email, req.Phone))
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to update friend: %w", err)
	}
	return f, nil
}

// Link promotes a dummy friend to a linked one. The linked user id is
// set once and never cleared; a friend that is already linked is left
// untouched and the update reports no rows.
func (r *Repository) Link(ctx context.Context, id, userID int64) (*Friend, error) {
	query := `
		UPDATE friends
		SET linked_user_id = $2, is_dummy = FALSE
		WHERE id = $1 AND linked_user_id IS NULL
		RETURNING ` + friendColumns

	f, err := scanFriend(r.db.QueryRowContext(ctx, query, id, userID))
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to link friend: %w", err)
	}
	return f, nil
}

// CountSplits returns how many splits reference the friend
func (r *Repository) CountSplits(ctx context.Context, id int64) (int, error) {
	var count int
	query := `SELECT COUNT(*) FROM splits WHERE friend_id = $1`
	if err := r.db.QueryRowContext(ctx, query, id).Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count splits: %w", err)
	}
	return count, nil
}

// Delete removes a friend record
func (r *Repository) Delete(ctx context.Context, id int64) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM friends WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete friend: %w", err)
	}

	rowsAffected, _ := result.RowsAffected()
	if rowsAffected == 0 {
		return fmt.Errorf("friend not found")
	}
	return nil
}
