package dto

// LoginRequest is the request body for operator and agent logins.
type LoginRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// LoginResponse carries the issued bearer token.
type LoginResponse struct {
	Token     string `json:"token"`
	ExpiresIn int64  `json:"expiresIn"` // seconds
	Role      string `json:"role"`      // admin or agent
	Username  string `json:"username"`
}
