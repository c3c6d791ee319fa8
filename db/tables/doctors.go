package tables

import "time"

// DoctorTable represents the doctors table
type DoctorTable struct {
	ID                int        `db:"id,omitempty"`
	FullName          string     `db:"full_name"`
	Email             string     `db:"email"`
	Specialization    string     `db:"specialization"`
	YearsOfExperience int        `db:"years_of_experience"`
	CountryCode       string     `db:"country_code"`
	MobileNumber      string     `db:"mobile_number"`
	LicenseNumber     string     `db:"license_number"`
	ClinicAddress     *string    `db:"clinic_address"`
	Status            string     `db:"status"`
	CreatedAt         time.Time  `db:"created_at"`
	UpdatedAt         *time.Time `db:"updated_at,omitempty"`
}
