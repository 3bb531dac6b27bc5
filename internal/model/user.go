package model

import "time"

const (
	RoleUser  = "User"
	RoleAdmin = "Admin"
	RoleOwner = "Owner"
)

type User struct {
	ID                  string
	Email               string
	Name                string
	Organization        string
	CardID              *string
	PasswordHash        string
	Role                string
	IsActive            bool
	FailedLoginAttempts int
	LockUntil           *time.Time
	CreatedAt           time.Time
	UpdatedAt           time.Time
}

// PublicUser is the projection returned to clients. It never carries the
// password hash or the lockout metadata.
type PublicUser struct {
	ID           string    `json:"id"`
	Email        string    `json:"email"`
	Name         string    `json:"name"`
	Organization string    `json:"organization,omitempty"`
	CardID       *string   `json:"cardID,omitempty"`
	Role         string    `json:"role"`
	IsActive     bool      `json:"isActive"`
	CreatedAt    time.Time `json:"createdAt"`
}

func (u *User) Public() PublicUser {
	return PublicUser{
		ID:           u.ID,
		Email:        u.Email,
		Name:         u.Name,
		Organization: u.Organization,
		CardID:       u.CardID,
		Role:         u.Role,
		IsActive:     u.IsActive,
		CreatedAt:    u.CreatedAt,
	}
}

type CreateUserRequest struct {
	Name         string  `json:"name" binding:"required,min=2"`
	Email        string  `json:"email" binding:"required,email"`
	Password     string  `json:"password" binding:"required"`
	CardID       *string `json:"cardID"`
	Organization string  `json:"organization"`
	Role         string  `json:"role" binding:"omitempty,oneof=User Admin Owner"`
	IsActive     *bool   `json:"isActive"`
}

type UpdateUserRequest struct {
	Name            string  `json:"name" binding:"omitempty,min=2"`
	Email           string  `json:"email" binding:"omitempty,email"`
	Password        string  `json:"password"`
	CurrentPassword string  `json:"currentPassword"`
	CardID          *string `json:"cardID"`
	Organization    string  `json:"organization"`
	Role            string  `json:"role" binding:"omitempty,oneof=User Admin Owner"`
	IsActive        *bool   `json:"isActive"`
}

type ResetPasswordRequest struct {
	NewPassword string `json:"newPassword" binding:"required"`
}

type CreateUserResponse struct {
	Message string `json:"message"`
	UserID  string `json:"userId"`
}
