package models

import (
	"time"

	"github.com/google/uuid"
)

// Role of a user account
type Role string

const (
	RoleUser  Role = "USER"
	RoleAdmin Role = "ADMIN"
)

// UserStatus of a user account
type UserStatus string

const (
	UserStatusActive UserStatus = "ACTIVE"
	UserStatusBanned UserStatus = "BANNED"
)

// SubscriptionType is the paid tier stored on a user ("" means none)
type SubscriptionType string

const (
	SubscriptionNone     SubscriptionType = ""
	SubscriptionExplorer SubscriptionType = "EXPLORER"
	SubscriptionMonthly  SubscriptionType = "MONTHLY"
	SubscriptionYearly   SubscriptionType = "YEARLY"
)

// Valid reports whether s names a purchasable tier
func (s SubscriptionType) Valid() bool {
	switch s {
	case SubscriptionExplorer, SubscriptionMonthly, SubscriptionYearly:
		return true
	}
	return false
}

// User represents a user in the system
type User struct {
	ID                    uuid.UUID        `json:"id" db:"id"`
	Email                 string           `json:"email" db:"email"`
	PasswordHash          string           `json:"-" db:"password_hash"` // Hidden from JSON responses
	Name                  string           `json:"name" db:"name"`
	AvatarURL             *string          `json:"avatar_url" db:"avatar_url"`
	Bio                   *string          `json:"bio" db:"bio"`
	Role                  Role             `json:"role" db:"role"`
	Status                UserStatus       `json:"status" db:"status"`
	SubscriptionType      SubscriptionType `json:"subscription_type" db:"subscription_type"`
	SubscriptionExpiresAt *time.Time       `json:"subscription_expires_at" db:"subscription_expires_at"`
	Premium               bool             `json:"premium" db:"premium"`
	Rating                float64          `json:"rating" db:"rating"`
	CreatedAt             time.Time        `json:"created_at" db:"created_at"`
	UpdatedAt             time.Time        `json:"updated_at" db:"updated_at"`
}

// IsAdmin reports whether the user holds the ADMIN role
func (u *User) IsAdmin() bool {
	return u.Role == RoleAdmin
}
