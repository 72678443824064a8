package user

// RegisterRequest represents the request body for registering a user
type RegisterRequest struct {
	Username        string  `json:"username" validate:"required,min=3,max=50"`
	Email           string  `json:"email" validate:"required,email"`
	Password        string  `json:"password" validate:"required,min=8"`
	AvatarURL       *string `json:"avatar_url,omitempty"`
	DefaultCurrency string  `json:"default_currency,omitempty"`
}

// LoginRequest represents the request body for logging in
type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// AuthResponse carries a session token and the authenticated user
type AuthResponse struct {
	Token string        `json:"token"`
	User  *UserResponse `json:"user"`
}

// UpdateUserRequest represents the request body for updating a user
type UpdateUserRequest struct {
	Username        *string `json:"username,omitempty" validate:"omitempty,min=3,max=50"`
	AvatarURL       *string `json:"avatar_url,omitempty"`
	DefaultCurrency *string `json:"default_currency,omitempty"`
}

// UserResponse represents the response for a single user
type UserResponse struct {
	ID              int64   `json:"id"`
	Username        string  `json:"username"`
	Email           string  `json:"email"`
	AvatarURL       *string `json:"avatar_url,omitempty"`
	DefaultCurrency string  `json:"default_currency"`
	CreatedAt       string  `json:"created_at"`
}

// ToResponse converts a User model to a UserResponse DTO
func (u *User) ToResponse() *UserResponse {
	return &UserResponse{
		ID:              u.ID,
		Username:        u.Username,
		Email:           u.Email,
		AvatarURL:       u.AvatarURL,
		DefaultCurrency: string(u.DefaultCurrency),
		CreatedAt:       u.CreatedAt.Format("2006-01-02T15:04:05Z"),
	}
}
