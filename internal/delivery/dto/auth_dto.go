package dto

import (
	"time"

	"github.com/google/uuid"
)

// Request DTOs

type RegisterRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=8"`
	FullName string `json:"full_name" validate:"omitempty,max=255"`
	UserType string `json:"user_type" validate:"required,oneof=company client"`
}

type VerifyAccountRequest struct {
	Email string `json:"email" validate:"required,email"`
	Code  string `json:"code" validate:"required,len=6,numeric"`
}

type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type RefreshTokenRequest struct {
	RefreshToken string `json:"refresh_token" validate:"required"`
}

// Response DTOs

type TokenResponse struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
	ExpiresIn    int64  `json:"expires_in"`
}

type UserResponse struct {
	ID         uuid.UUID `json:"id"`
	Email      string    `json:"email"`
	FullName   string    `json:"full_name,omitempty"`
	UserType   string    `json:"user_type"`
	IsVerified bool      `json:"is_verified"`
	Image      string    `json:"image,omitempty"`
	CreatedAt  time.Time `json:"created_at"`
}

// AuthResponse is returned by register and login.
type AuthResponse struct {
	UserInfo *UserResponse `json:"user_info"`
	Tokens   TokenResponse `json:"tokens"`
}
