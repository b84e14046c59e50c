package domain

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
)

const (
	RoleAdmin  = 1
	RoleAgent  = 2
	RoleViewer = 3
)

var roleNames = map[int]string{
	RoleAdmin:  "admin",
	RoleAgent:  "agent",
	RoleViewer: "viewer",
}

func RoleName(roleID int) string {
	return roleNames[roleID]
}

func IsValidRole(roleID int) bool {
	_, ok := roleNames[roleID]
	return ok
}

type User struct {
	ID           int        `json:"id"`
	FullName     string     `json:"full_name"`
	Email        string     `json:"email"`
	PasswordHash string     `json:"password,omitempty"`
	Active       bool       `json:"active"`
	RoleID       int        `json:"role_id"`
	Deleted      bool       `json:"deleted"`
	DeletedAt    *time.Time `json:"deleted_at"`
	CreatedAt    time.Time  `json:"created_at"`
	UpdatedAt    time.Time  `json:"updated_at"`
}

type UpdateUserRequest struct {
	ID       int     `json:"id"`
	FullName *string `json:"full_name"`
	Active   *bool   `json:"active"`
	RoleID   *int    `json:"role_id"`
}

type Claims struct {
	UserID       int
	UserFullName string
	UserEmail    string
	UserRoleID   int
	jwt.RegisteredClaims
}

// Session converte as claims validadas na sessão da requisição
func (c *Claims) Session() Session {
	return Session{
		UserID:   c.UserID,
		FullName: c.UserFullName,
		Email:    c.UserEmail,
		RoleID:   c.UserRoleID,
	}
}
