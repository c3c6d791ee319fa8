package tables

import "time"

// ClinicTable represents the clinics table
type ClinicTable struct {
	ID        int        `db:"id,omitempty"`
	Name      string     `db:"name"`
	Address   string     `db:"address"`
	Phone     *string    `db:"phone"`
	Email     *string    `db:"email"`
	Status    string     `db:"status"`
	CreatedAt time.Time  `db:"created_at"`
	UpdatedAt *time.Time `db:"updated_at,omitempty"`
}
