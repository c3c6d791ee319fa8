package tables

import "time"

// SuperAdminTable represents the super_admins table
type SuperAdminTable struct {
	ID                  int        `db:"id,omitempty"`
	Email               string     `db:"email"`
	PasswordHash        string     `db:"password_hash"         json:"-"`
	FullName            string     `db:"full_name"`
	Status              string     `db:"status"`
	Phone               *string    `db:"phone"`
	LastLogin           *time.Time `db:"last_login"`
	FailedLoginAttempts int        `db:"failed_login_attempts"`
	AccountLockedUntil  *time.Time `db:"account_locked_until"`
	CreatedAt           time.Time  `db:"created_at"`
	UpdatedAt           *time.Time `db:"updated_at,omitempty"`
}

// AdminUserTable represents the admin_users table
type AdminUserTable struct {
	ID                  int        `db:"id,omitempty"`
	Email               string     `db:"email"`
	PasswordHash        string     `db:"password_hash"         json:"-"`
	FullName            string     `db:"full_name"`
	Role                string     `db:"role"`
	Status              string     `db:"status"`
	Phone               *string    `db:"phone"`
	Department          *string    `db:"department"`
	CreatedBy           *string    `db:"created_by"`
	LastLogin           *time.Time `db:"last_login"`
	FailedLoginAttempts int        `db:"failed_login_attempts"`
	AccountLockedUntil  *time.Time `db:"account_locked_until"`
	CreatedAt           time.Time  `db:"created_at"`
	UpdatedAt           *time.Time `db:"updated_at,omitempty"`
}
