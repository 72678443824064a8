package friend

// CreateFriendRequest represents the request to add a friend
type CreateFriendRequest struct {
	Name         string  `json:"name" validate:"required,min=1,max=100"`
	Email        *string `json:"email,omitempty"`
	Phone        *string `json:"phone,omitempty"`
	LinkedUserID *int64  `json:"linked_user_id,omitempty"`
}

// UpdateFriendRequest represents the request to edit a friend's contact info
type UpdateFriendRequest struct {
	Name  *string `json:"name,omitempty" validate:"omitempty,min=1,max=100"`
	Email *string `json:"email,omitempty"`
	Phone *string `json:"phone,omitempty"`
}

// LinkFriendRequest promotes a dummy friend to a linked one
type LinkFriendRequest struct {
	UserID int64 `json:"user_id" validate:"required"`
}

// FriendResponse represents the response for a friend
type FriendResponse struct {
	ID           int64   `json:"id"`
	LinkedUserID *int64  `json:"linked_user_id,omitempty"`
	Name         string  `json:"name"`
	Email        *string `json:"email,omitempty"`
	Phone        *string `json:"phone,omitempty"`
	IsDummy      bool    `json:"is_dummy"`
	IsSelf       bool    `json:"is_self"`
	CreatedAt    string  `json:"created_at"`
}

// BalanceResponse is the aggregate position with one friend, expressed
// in the user's default currency with a per-currency breakdown of the
// raw amounts.
type BalanceResponse struct {
	FriendID       int64              `json:"friend_id"`
	FriendOwesUser float64            `json:"friend_owes_user"`
	UserOwesFriend float64            `json:"user_owes_friend"`
	NetBalance     float64            `json:"net_balance"`
	Currency       string             `json:"currency"`
	PerCurrency    map[string]float64 `json:"per_currency_breakdown"`
	Outstanding    bool               `json:"outstanding"`
}

// ToResponse converts a Friend model to a FriendResponse DTO
func (f *Friend) ToResponse() *FriendResponse {
	return &FriendResponse{
		ID:           f.ID,
		LinkedUserID: f.LinkedUserID,
		Name:         f.Name,
		Email:        f.Email,
		Phone:        f.Phone,
		IsDummy:      f.IsDummy,
		IsSelf:       f.IsSelf,
		CreatedAt:    f.CreatedAt.Format("2006-01-02T15:04:05Z"),
	}
}
