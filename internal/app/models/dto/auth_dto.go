package dto

import (
	"time"

	"github.com/yigit/supervision/internal/app/models"
)

// LoginRequest represents login credentials
type LoginRequest struct {
	Email    string `json:"email" binding:"required,email" example:"supervisor@school.edu"`
	Password string `json:"password" binding:"required" example:"password123"`
}

// TokenResponse represents an issued session token
type TokenResponse struct {
	AccessToken string    `json:"accessToken"`
	TokenType   string    `json:"tokenType" example:"Bearer"`
	ExpiresIn   int64     `json:"expiresIn" example:"2592000"`
	ExpiresAt   time.Time `json:"expiresAt"`
	Role        string    `json:"role" example:"supervisor-school"`
}

// UserResponse represents basic user information
type UserResponse struct {
	ID        int64  `json:"id" example:"1"`
	Email     string `json:"email" example:"supervisor@school.edu"`
	FirstName string `json:"firstName" example:"Ama"`
	LastName  string `json:"lastName" example:"Mensah"`
	Role      string `json:"role" example:"supervisor-school"`
}

// AuthResponse represents successful authentication response
type AuthResponse struct {
	Token TokenResponse `json:"token"`
	User  UserResponse  `json:"user"`
}

// NewUserResponse maps a user model to its public view
func NewUserResponse(u *models.User) UserResponse {
	return UserResponse{
		ID:        u.ID,
		Email:     u.Email,
		FirstName: u.FirstName,
		LastName:  u.LastName,
		Role:      u.Role.String(),
	}
}
