package tables

import "time"

// UserTable represents the users table, the registered end-users
// of the directory - they never authenticate against this backend
type UserTable struct {
	ID           int        `db:"id,omitempty"`
	FullName     string     `db:"full_name"`
	Email        string     `db:"email"`
	MobileNumber *string    `db:"mobile_number"`
	Status       string     `db:"status"`
	CreatedAt    time.Time  `db:"created_at"`
	UpdatedAt    *time.Time `db:"updated_at,omitempty"`
}
