package manage

import (
	"net/http"
	"time"

	"github.com/providerdesk/providerdesk/db"
	"github.com/providerdesk/providerdesk/db/tables"
)

type PaginationResponse struct {
	Total   int         `json:"total"`
	Entries interface{} `json:"entries"`
}

func (*PaginationResponse) Render(w http.ResponseWriter, r *http.Request) error {
	return nil
}

type SuperAdminDTO struct {
	ID                  int        `json:"id"`
	Email               string     `json:"email"`
	FullName            string     `json:"full_name"`
	Status              string     `json:"status"`
	Phone               *string    `json:"phone"`
	LastLogin           *time.Time `json:"last_login"`
	FailedLoginAttempts int        `json:"failed_login_attempts"`
	AccountLockedUntil  *time.Time `json:"account_locked_until"`
	CreatedAt           time.Time  `json:"created_at"`
	UpdatedAt           *time.Time `json:"updated_at,omitempty"`
}

func (*SuperAdminDTO) Render(w http.ResponseWriter, r *http.Request) error {
	return nil
}

func superAdminDTOfromDB(t *tables.SuperAdminTable) *SuperAdminDTO {
	return &SuperAdminDTO{
		ID:                  t.ID,
		Email:               t.Email,
		FullName:            t.FullName,
		Status:              t.Status,
		Phone:               t.Phone,
		LastLogin:           t.LastLogin,
		FailedLoginAttempts: t.FailedLoginAttempts,
		AccountLockedUntil:  t.AccountLockedUntil,
		CreatedAt:           t.CreatedAt,
		UpdatedAt:           t.UpdatedAt,
	}
}

type AdminUserDTO struct {
	ID                  int        `json:"id"`
	Email               string     `json:"email"`
	FullName            string     `json:"full_name"`
	Role                string     `json:"role"`
	Status              string     `json:"status"`
	Phone               *string    `json:"phone"`
	Department          *string    `json:"department"`
	CreatedBy           *string    `json:"created_by"`
	LastLogin           *time.Time `json:"last_login"`
	FailedLoginAttempts int        `json:"failed_login_attempts"`
	AccountLockedUntil  *time.Time `json:"account_locked_until"`
	CreatedAt           time.Time  `json:"created_at"`
	UpdatedAt           *time.Time `json:"updated_at,omitempty"`
}

func (*AdminUserDTO) Render(w http.ResponseWriter, r *http.Request) error {
	return nil
}

func adminUserDTOfromDB(t *tables.AdminUserTable) *AdminUserDTO {
	return &AdminUserDTO{
		ID:                  t.ID,
		Email:               t.Email,
		FullName:            t.FullName,
		Role:                t.Role,
		Status:              t.Status,
		Phone:               t.Phone,
		Department:          t.Department,
		CreatedBy:           t.CreatedBy,
		LastLogin:           t.LastLogin,
		FailedLoginAttempts: t.FailedLoginAttempts,
		AccountLockedUntil:  t.AccountLockedUntil,
		CreatedAt:           t.CreatedAt,
		UpdatedAt:           t.UpdatedAt,
	}
}

type DoctorDTO struct {
	ID                int        `json:"id"`
	FullName          string     `json:"full_name"`
	Email             string     `json:"email"`
	Specialization    string     `json:"specialization"`
	YearsOfExperience int        `json:"years_of_experience"`
	CountryCode       string     `json:"country_code"`
	MobileNumber      string     `json:"mobile_number"`
	LicenseNumber     string     `json:"license_number"`
	ClinicAddress     *string    `json:"clinic_address"`
	Status            string     `json:"status"`
	CreatedAt         time.Time  `json:"created_at"`
	UpdatedAt         *time.Time `json:"updated_at,omitempty"`
}

func (*DoctorDTO) Render(w http.ResponseWriter, r *http.Request) error {
	return nil
}

func doctorDTOfromDB(t *tables.DoctorTable) *DoctorDTO {
	return &DoctorDTO{
		ID:                t.ID,
		FullName:          t.FullName,
		Email:             t.Email,
		Specialization:    t.Specialization,
		YearsOfExperience: t.YearsOfExperience,
		CountryCode:       t.CountryCode,
		MobileNumber:      t.MobileNumber,
		LicenseNumber:     t.LicenseNumber,
		ClinicAddress:     t.ClinicAddress,
		Status:            t.Status,
		CreatedAt:         t.CreatedAt,
		UpdatedAt:         t.UpdatedAt,
	}
}

type ClinicDTO struct {
	ID        int        `json:"id"`
	Name      string     `json:"name"`
	Address   string     `json:"address"`
	Phone     *string    `json:"phone"`
	Email     *string    `json:"email"`
	Status    string     `json:"status"`
	CreatedAt time.Time  `json:"created_at"`
	UpdatedAt *time.Time `json:"updated_at,omitempty"`
}

func (*ClinicDTO) Render(w http.ResponseWriter, r *http.Request) error {
	return nil
}

func clinicDTOfromDB(t *tables.ClinicTable) *ClinicDTO {
	return &ClinicDTO{
		ID:        t.ID,
		Name:      t.Name,
		Address:   t.Address,
		Phone:     t.Phone,
		Email:     t.Email,
		Status:    t.Status,
		CreatedAt: t.CreatedAt,
		UpdatedAt: t.UpdatedAt,
	}
}

type EndUserDTO struct {
	ID           int        `json:"id"`
	FullName     string     `json:"full_name"`
	Email        string     `json:"email"`
	MobileNumber *string    `json:"mobile_number"`
	Status       string     `json:"status"`
	CreatedAt    time.Time  `json:"created_at"`
	UpdatedAt    *time.Time `json:"updated_at,omitempty"`
}

func (*EndUserDTO) Render(w http.ResponseWriter, r *http.Request) error {
	return nil
}

func endUserDTOfromDB(t *tables.UserTable) *EndUserDTO {
	return &EndUserDTO{
		ID:           t.ID,
		FullName:     t.FullName,
		Email:        t.Email,
		MobileNumber: t.MobileNumber,
		Status:       t.Status,
		CreatedAt:    t.CreatedAt,
		UpdatedAt:    t.UpdatedAt,
	}
}

type OverviewDTO struct {
	TotalUsers                 int            `json:"totalUsers"`
	ApprovedDoctors            int            `json:"approvedDoctors"`
	TotalClinics               int            `json:"totalClinics"`
	ApplicationStatusBreakdown map[string]int `json:"applicationStatusBreakdown"`
}

func (*OverviewDTO) Render(w http.ResponseWriter, r *http.Request) error {
	return nil
}

type MonthlyCountDTO struct {
	Month string `json:"month"`
	Count int    `json:"count"`
}

func monthlyCountDTOs(rows []db.MonthlyCount) []MonthlyCountDTO {
	dtos := make([]MonthlyCountDTO, 0, len(rows))
	for _, r := range rows {
		dtos = append(dtos, MonthlyCountDTO{Month: r.Month, Count: r.Count})
	}
	return dtos
}
