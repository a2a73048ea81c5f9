// Package identity provides HTTP handlers and middleware for user authentication.
package identity

// AuthRequest represents the credentials submitted to register or log in.
type AuthRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// AuthResponse represents a successful login: the user and their access token.
type AuthResponse struct {
	ID       string `json:"id"`
	Username string `json:"username"`
	Token    string `json:"token"`
}
