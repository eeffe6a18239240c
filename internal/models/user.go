package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type UserRole string

const (
	RoleStudent UserRole = "student"
	RoleAdmin   UserRole = "admin"
)

func (r UserRole) Valid() bool {
	return r == RoleStudent || r == RoleAdmin
}

// User is the identity held by a session.
type User struct {
	ID     string   `json:"id"`
	Name   string   `json:"name"`
	Email  string   `json:"email"`
	Role   UserRole `json:"role"`
	Avatar *string  `json:"avatar,omitempty"`
}

func (u User) IsAdmin() bool {
	return u.Role == RoleAdmin
}

// Account is a registered user with credentials.
type Account struct {
	ID           string    `gorm:"size:64;primaryKey" json:"id"`
	Email        string    `gorm:"uniqueIndex;not null" json:"email"`
	PasswordHash string    `gorm:"not null" json:"-"`
	Role         UserRole  `gorm:"type:varchar(20);default:'student'" json:"role"`
	DisplayName  string    `gorm:"size:100" json:"display_name"`
	Avatar       *string   `gorm:"size:500" json:"avatar,omitempty"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

func (Account) TableName() string {
	return "accounts"
}

func (a *Account) BeforeCreate(tx *gorm.DB) error {
	if a.ID == "" {
		a.ID = uuid.New().String()
	}
	return nil
}

// User projects the account onto the session identity.
func (a Account) User() User {
	return User{
		ID:     a.ID,
		Name:   a.DisplayName,
		Email:  a.Email,
		Role:   a.Role,
		Avatar: a.Avatar,
	}
}
