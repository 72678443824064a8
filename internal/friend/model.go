package friend

import "time"

// Friend is a per-owner contact record. It represents another real user
// (linked), a placeholder no account is attached to yet (dummy), or the
// owner themselves (self). Exactly one self friend exists per owner,
// created together with the user account.
type Friend struct {
	ID           int64     `json:"id"`
	OwnerID      int64     `json:"owner_id"`
	LinkedUserID *int64    `json:"linked_user_id,omitempty"`
	Name         string    `json:"name"`
	Email        *string   `json:"email,omitempty"`
	Phone        *string   `json:"phone,omitempty"`
	IsDummy      bool      `json:"is_dummy"`
	IsSelf       bool      `json:"is_self"`
	CreatedAt    time.Time `json:"created_at"`
}
