package domain

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// User é um usuário do painel de inteligência de leads.
type User struct {
	ID           int        `json:"id"`
	Name         string     `json:"name"`
	Lastname     string     `json:"lastname"`
	Email        string     `json:"email"`
	PasswordHash string     `json:"password,omitempty"`
	Active       bool       `json:"active"`
	RoleID       int        `json:"role_id"`
	Deleted      bool       `json:"deleted"`
	DeletedAt    *time.Time `json:"deleted_at,omitempty"`
	CreatedAt    time.Time  `json:"created_at"`
	UpdatedAt    time.Time  `json:"updated_at"`
}

// Claims são as claims JWT emitidas no login.
type Claims struct {
	UserID     int
	UserName   string
	UserEmail  string
	UserActive bool
	UserRoleID int
	jwt.RegisteredClaims
}
