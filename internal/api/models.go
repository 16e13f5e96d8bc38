package api

// SignupRequest defines the payload for the signup endpoint.
type SignupRequest struct {
	Username string `json:"username" validate:"required"`
	Email    string `json:"email"    validate:"required,email"`
	Password string `json:"password" validate:"required,min=8"`
}

// SignupResponse is the data payload of a successful signup.
type SignupResponse struct {
	ID       int64  `json:"id"`
	Username string `json:"username"`
	Email    string `json:"email"`

	// APIKey is the prefixed plaintext key. It is returned only here and
	// cannot be recovered later.
	APIKey string `json:"apiKey"`
}
