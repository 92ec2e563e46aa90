package dto

// RegisterRequest represents the request payload for user registration
type RegisterRequest struct {
	Name     string `json:"name" validate:"required,max=100"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=6,max=72"`
}

// LoginRequest represents the request payload for user login
type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// AuthResponse represents the response after successful authentication
type AuthResponse struct {
	User  UserResponse `json:"user"`
	Token string       `json:"token"`
}

// UserResponse represents user data in API responses
type UserResponse struct {
	ID                    string  `json:"id"`
	Email                 string  `json:"email"`
	Name                  string  `json:"name"`
	AvatarURL             *string `json:"avatar_url"`
	Bio                   *string `json:"bio"`
	Role                  string  `json:"role"`
	Status                string  `json:"status"`
	SubscriptionType      string  `json:"subscription_type,omitempty"`
	SubscriptionExpiresAt *string `json:"subscription_expires_at,omitempty"`
	Premium               bool    `json:"premium"`
	Rating                float64 `json:"rating"`
	CreatedAt             string  `json:"created_at"`
	UpdatedAt             string  `json:"updated_at"`
}

// UserSummaryResponse is the public card shown next to connections,
// join requests and reviews
type UserSummaryResponse struct {
	ID        string  `json:"id"`
	Name      string  `json:"name"`
	AvatarURL *string `json:"avatar_url"`
	Rating    float64 `json:"rating"`
}

// ErrorResponse represents an error response
type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
}

// MessageResponse is returned by endpoints with nothing else to say
type MessageResponse struct {
	Message string `json:"message"`
}

// Pagination describes the page returned by list endpoints
type Pagination struct {
	Total  int `json:"total"`
	Limit  int `json:"limit"`
	Offset int `json:"offset"`
}
