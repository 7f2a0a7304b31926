package models

import "time"

// PersonRole is the role a user holds in the training organisation.
type PersonRole string

const (
	RoleStudent    PersonRole = "student"
	RoleInstructor PersonRole = "instructor"
	RoleAdmin      PersonRole = "admin"
)

// Valid reports whether r is one of the known roles.
func (r PersonRole) Valid() bool {
	switch r {
	case RoleStudent, RoleInstructor, RoleAdmin:
		return true
	}
	return false
}

// Person represents a row of the users table.
type Person struct {
	ID        string     `db:"id" json:"id"`
	Name      string     `db:"name" json:"name"`
	Email     string     `db:"email" json:"email"`
	Role      PersonRole `db:"role" json:"role"`
	CreatedAt time.Time  `db:"created_at" json:"created_at"`
	UpdatedAt time.Time  `db:"updated_at" json:"updated_at"`
}

// PersonFilter narrows the people directory.
type PersonFilter struct {
	Role   *PersonRole
	Search string
}
