package model

import "time"

// DefaultPhoto is the placeholder avatar assigned at registration when
// the client has not uploaded one yet.
const DefaultPhoto = "https://i.ibb.co/4pDNDk1/avatar.png"

// User represents a user account in the database. PasswordHash holds the
// Argon2id encoding of the password and must never appear in a response.
type User struct {
	ID           string
	Name         string
	Email        string
	PasswordHash string
	Photo        string
	Phone        string
	Bio          string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// RegisterRequest represents a user registration request.
type RegisterRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

// LoginRequest represents a user login request.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// UpdateProfileRequest carries the mutable profile fields. Fields left
// empty keep their stored values; email is not part of the update surface.
type UpdateProfileRequest struct {
	Name  string `json:"name"`
	Phone string `json:"phone"`
	Bio   string `json:"bio"`
	Photo string `json:"photo"`
}

// ChangePasswordRequest represents a password rotation request.
type ChangePasswordRequest struct {
	OldPassword string `json:"oldPassword"`
	NewPassword string `json:"newPassword"`
}

// UserResponse represents user data safe for API responses (no sensitive fields).
type UserResponse struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
	Photo string `json:"photo"`
	Phone string `json:"phone"`
	Bio   string `json:"bio"`
}

// AuthResponse is the register/login payload: the user summary plus the
// session token that was also set as a cookie.
type AuthResponse struct {
	UserResponse
	Token string `json:"token"`
}
