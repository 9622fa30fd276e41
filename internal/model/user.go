package model

import (
	"database/sql"
	"time"
)

// User represents a registered user in the database.
type User struct {
	ID           int64
	Username     string
	Email        string
	PasswordHash string
	Active       bool
	LastLogin    sql.NullTime
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// SignUpRequest represents a user registration request.
type SignUpRequest struct {
	Username string `json:"username" validate:"required"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// SignInRequest represents a user sign-in request.
type SignInRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// UserResponse represents user data safe for API responses (no sensitive fields).
type UserResponse struct {
	ID       int64  `json:"id"`
	Username string `json:"username"`
	Email    string `json:"email"`
}

// SignUpResponse is the sign-up response body: a session token plus the created user.
type SignUpResponse struct {
	Token string       `json:"token"`
	User  UserResponse `json:"User"`
}

// SignedInUser mirrors the historical sign-in payload, which keys the
// user id as "user_id" instead of "id".
type SignedInUser struct {
	UserID   int64  `json:"user_id"`
	Username string `json:"username"`
	Email    string `json:"email"`
}

// SignInResponse is the sign-in response body.
type SignInResponse struct {
	Token string       `json:"token"`
	User  SignedInUser `json:"User"`
}
