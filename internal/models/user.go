package models

import "time"

type UserRole string

const (
	UserRoleUser  UserRole = "USER"
	UserRoleAdmin UserRole = "ADMIN"
)

func (r UserRole) Valid() bool {
	return r == UserRoleUser || r == UserRoleAdmin
}

type User struct {
	ID           string
	Username     string
	PasswordHash []byte
	Role         UserRole
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// UserSummary is the admin listing shape: account plus its task count.
type UserSummary struct {
	ID        string
	Username  string
	Role      UserRole
	CreatedAt time.Time
	TaskCount int
}

// Principal is the authenticated identity derived from a verified session
// token. It is never stored; a nil *Principal means "no session".
type Principal struct {
	ID       string
	Username string
	Role     UserRole
}

func (p *Principal) IsAdmin() bool {
	return p != nil && p.Role == UserRoleAdmin
}
