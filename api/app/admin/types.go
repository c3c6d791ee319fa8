package admin

import (
	"net/http"

	"github.com/go-chi/render"
)

type genericSuccessResponse struct {
	Success bool        `json:"success"`
	Message string      `json:"message,omitempty"`
	Data    interface{} `json:"data,omitempty"`
	status  int
}

func (g *genericSuccessResponse) Render(w http.ResponseWriter, r *http.Request) error {
	if g.status != 0 {
		render.Status(r, g.status)
	}
	return nil
}

func createError(err string, status int) *genericErrorResponse {
	return &genericErrorResponse{
		Error:      err,
		StatusCode: status,
	}
}

type genericErrorResponse struct {
	Success    bool   `json:"success"`
	Error      string `json:"error,omitempty"`
	StatusCode int    `json:"-"`
}

func (e *genericErrorResponse) Render(w http.ResponseWriter, r *http.Request) error {
	render.Status(r, e.StatusCode)
	return nil
}

type createAdminUserRequest struct {
	Email      string  `json:"email"`
	Password   string  `json:"password"`
	FullName   string  `json:"full_name"`
	Role       string  `json:"role"`
	Phone      *string `json:"phone"`
	Department *string `json:"department"`
}

type updateAdminUserRequest struct {
	Email      *string `json:"email"`
	FullName   *string `json:"full_name"`
	Role       *string `json:"role"`
	Status     *string `json:"status"`
	Phone      *string `json:"phone"`
	Department *string `json:"department"`
}

type createSuperAdminRequest struct {
	Email    string  `json:"email"`
	Password string  `json:"password"`
	FullName string  `json:"full_name"`
	Phone    *string `json:"phone"`
}

type updateSuperAdminRequest struct {
	Email    *string `json:"email"`
	FullName *string `json:"full_name"`
	Status   *string `json:"status"`
	Phone    *string `json:"phone"`
}

type changePasswordRequest struct {
	CurrentPassword string `json:"currentPassword"`
	NewPassword     string `json:"newPassword"`
}

type requestPasswordResetRequest struct {
	Email string `json:"email"`
}

type selfServiceResetRequest struct {
	Token       string `json:"token"`
	NewPassword string `json:"newPassword"`
}

type createDoctorRequest struct {
	FullName          string  `json:"full_name"`
	Email             string  `json:"email"`
	Specialization    string  `json:"specialization"`
	YearsOfExperience int     `json:"years_of_experience"`
	CountryCode       string  `json:"country_code"`
	MobileNumber      string  `json:"mobile_number"`
	LicenseNumber     string  `json:"license_number"`
	ClinicAddress     *string `json:"clinic_address"`
}

type updateDoctorRequest struct {
	FullName          *string `json:"full_name"`
	Email             *string `json:"email"`
	Specialization    *string `json:"specialization"`
	YearsOfExperience *int    `json:"years_of_experience"`
	CountryCode       *string `json:"country_code"`
	MobileNumber      *string `json:"mobile_number"`
	LicenseNumber     *string `json:"license_number"`
	ClinicAddress     *string `json:"clinic_address"`
}

type doctorStatusRequest struct {
	Status string `json:"status"`
}

type createClinicRequest struct {
	Name    string  `json:"name"`
	Address string  `json:"address"`
	Phone   *string `json:"phone"`
	Email   *string `json:"email"`
}

type updateClinicRequest struct {
	Name    *string `json:"name"`
	Address *string `json:"address"`
	Phone   *string `json:"phone"`
	Email   *string `json:"email"`
	Status  *string `json:"status"`
}
