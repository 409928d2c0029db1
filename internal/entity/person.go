package entity

import "time"

// Roles assignable to a person.
const (
	RoleUser  = "ROLE_USER"
	RoleAdmin = "ROLE_ADMIN"
)

// Person is the persisted account record.
type Person struct {
	ID           int64
	Username     string
	YearOfBirth  *int
	Email        *string
	PasswordHash string
	Role         string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// IsAdmin reports whether the person carries the administrator role.
func (p *Person) IsAdmin() bool {
	return p != nil && p.Role == RoleAdmin
}
