package auth

import (
	"time"

	"github.com/google/uuid"
	"github.com/uptrace/bun"
)

const (
	RoleAdmin  = "admin"
	RoleEditor = "editor"
)

// User is an administrator account.
type User struct {
	bun.BaseModel `bun:"table:users,alias:u"`

	ID           uuid.UUID  `bun:",pk,type:uuid" json:"id"`
	Name         string     `bun:"name,notnull" json:"name"`
	Email        string     `bun:"email,notnull,unique" json:"email"`
	PasswordHash string     `bun:"password_hash,notnull" json:"-"`
	Role         string     `bun:"role,notnull,default:'editor'" json:"role"`
	IsActive     bool       `bun:"is_active,notnull" json:"isActive"`
	LastLogin    *time.Time `bun:"last_login" json:"lastLogin,omitempty"`
	CreatedAt    time.Time  `bun:"created_at,nullzero,notnull,default:current_timestamp" json:"createdAt"`
	UpdatedAt    time.Time  `bun:"updated_at,nullzero,notnull,default:current_timestamp" json:"updatedAt"`
}

// Profile is the public projection of a user returned by login and me.
type Profile struct {
	ID    uuid.UUID `json:"id"`
	Name  string    `json:"name"`
	Email string    `json:"email"`
	Role  string    `json:"role"`
}

func (u *User) Profile() Profile {
	if u == nil {
		return Profile{}
	}
	return Profile{ID: u.ID, Name: u.Name, Email: u.Email, Role: u.Role}
}

// Principal is the verified caller attached to a request.
type Principal struct {
	ID    uuid.UUID
	Name  string
	Email string
	Role  string
}

func (p *Principal) IsAdmin() bool {
	return p != nil && p.Role == RoleAdmin
}
