package admin

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"
	"github.com/providerdesk/providerdesk/api/auth"
	"github.com/providerdesk/providerdesk/manage"
	"go.uber.org/zap"
)

func (m *AdminRessource) listDoctors(w http.ResponseWriter, r *http.Request) {
	page := r.Context().Value(pageKey).(int)
	pageSize := r.Context().Value(pageSizeKey).(int)
	search := r.Context().Value(searchKey).(string)
	status := r.Context().Value(statusKey).(string)

	doctors, err := m.doctors.List(r.Context(), page, pageSize, search, status)
	if err != nil {
		m.log.Error("error listing doctors", zap.Error(err))
		_ = render.Render(w, r,
			createError("Failed to fetch doctors", http.StatusInternalServerError))
		return
	}
	_ = render.Render(w, r, &genericSuccessResponse{Success: true, Data: doctors})
}

func (m *AdminRessource) listApprovedDoctors(w http.ResponseWriter, r *http.Request) {
	page := r.Context().Value(pageKey).(int)
	pageSize := r.Context().Value(pageSizeKey).(int)
	search := r.Context().Value(searchKey).(string)

	doctors, err := m.doctors.ApprovedList(r.Context(), page, pageSize, search)
	if err != nil {
		m.log.Error("error listing approved doctors", zap.Error(err))
		_ = render.Render(w, r,
			createError("Failed to fetch doctors", http.StatusInternalServerError))
		return
	}
	_ = render.Render(w, r, &genericSuccessResponse{Success: true, Data: doctors})
}

func (m *AdminRessource) listDoctorsByStatus(w http.ResponseWriter, r *http.Request) {
	page := r.Context().Value(pageKey).(int)
	pageSize := r.Context().Value(pageSizeKey).(int)
	status := chi.URLParam(r, "status")

	doctors, err := m.doctors.ByStatus(r.Context(), status, page, pageSize)
	if err != nil {
		if errors.Is(err, manage.ErrEntityInvalidTransition) {
			_ = render.Render(w, r, createError("Invalid status", http.StatusBadRequest))
			return
		}
		m.log.Error("error listing doctors by status", zap.Error(err))
		_ = render.Render(w, r,
			createError("Failed to fetch doctors", http.StatusInternalServerError))
		return
	}
	_ = render.Render(w, r, &genericSuccessResponse{Success: true, Data: doctors})
}

func (m *AdminRessource) doctorByID(w http.ResponseWriter, r *http.Request) {
	id, ok := idParam(r)
	if !ok {
		_ = render.Render(w, r, createError("Invalid id", http.StatusBadRequest))
		return
	}
	doctor, err := m.doctors.ById(r.Context(), id)
	if err != nil {
		if errors.Is(err, manage.ErrNotFound) {
			_ = render.Render(w, r, createError("Doctor not found", http.StatusNotFound))
			return
		}
		m.log.Error("error getting doctor by id", zap.Error(err))
		_ = render.Render(w, r,
			createError("Failed to fetch doctor", http.StatusInternalServerError))
		return
	}
	_ = render.Render(w, r, &genericSuccessResponse{Success: true, Data: doctor})
}

func (m *AdminRessource) createDoctor(w http.ResponseWriter, r *http.Request) {
	var req *createDoctorRequest
	err := json.NewDecoder(r.Body).Decode(&req)
	if err != nil || req == nil || req.FullName == "" || req.Email == "" ||
		req.Specialization == "" || req.MobileNumber == "" || req.LicenseNumber == "" {
		_ = render.Render(w, r, createError(
			"Full name, email, specialization, mobile number and license number are required",
			http.StatusBadRequest))
		return
	}
	if m.validate.Var(req.Email, "required,email") != nil {
		_ = render.Render(w, r, createError("Invalid email format", http.StatusBadRequest))
		return
	}
	doctor, err := m.doctors.Create(
		r.Context(),
		req.FullName,
		req.Email,
		req.Specialization,
		req.YearsOfExperience,
		req.CountryCode,
		req.MobileNumber,
		req.LicenseNumber,
		req.ClinicAddress,
	)
	if err != nil {
		if errors.Is(err, manage.ErrEntityAlreadyExists) {
			_ = render.Render(w, r, createError(
				"A doctor with this email already exists", http.StatusConflict))
			return
		}
		m.log.Error("error creating doctor", zap.Error(err))
		_ = render.Render(w, r,
			createError("Failed to create doctor", http.StatusInternalServerError))
		return
	}
	err = render.Render(w, r, &genericSuccessResponse{
		Success: true,
		Message: "Doctor created successfully",
		Data:    doctor,
		status:  http.StatusCreated,
	})
	if err != nil {
		m.log.Error("unable to render response", zap.Error(err))
	}
}

func (m *AdminRessource) updateDoctor(w http.ResponseWriter, r *http.Request) {
	id, ok := idParam(r)
	if !ok {
		_ = render.Render(w, r, createError("Invalid id", http.StatusBadRequest))
		return
	}
	var req *updateDoctorRequest
	err := json.NewDecoder(r.Body).Decode(&req)
	if err != nil || req == nil {
		_ = render.Render(w, r, createError("Invalid payload", http.StatusBadRequest))
		return
	}
	if req.Email != nil && m.validate.Var(*req.Email, "required,email") != nil {
		_ = render.Render(w, r, createError("Invalid email format", http.StatusBadRequest))
		return
	}
	doctor, err := m.doctors.Update(
		r.Context(),
		id,
		req.FullName,
		req.Email,
		req.Specialization,
		req.YearsOfExperience,
		req.CountryCode,
		req.MobileNumber,
		req.LicenseNumber,
		req.ClinicAddress,
	)
	if err != nil {
		switch {
		case errors.Is(err, manage.ErrNoChanges):
			_ = render.Render(w, r,
				createError("No fields to update", http.StatusBadRequest))
		case errors.Is(err, manage.ErrEntityAlreadyExists):
			_ = render.Render(w, r, createError(
				"A doctor with this email already exists", http.StatusConflict))
		case errors.Is(err, manage.ErrNotFound):
			_ = render.Render(w, r, createError("Doctor not found", http.StatusNotFound))
		default:
			m.log.Error("error updating doctor", zap.Error(err))
			_ = render.Render(w, r,
				createError("Failed to update doctor", http.StatusInternalServerError))
		}
		return
	}
	_ = render.Render(w, r, &genericSuccessResponse{
		Success: true,
		Message: "Doctor updated successfully",
		Data:    doctor,
	})
}

func (m *AdminRessource) updateDoctorStatus(w http.ResponseWriter, r *http.Request) {
	id, ok := idParam(r)
	if !ok {
		_ = render.Render(w, r, createError("Invalid id", http.StatusBadRequest))
		return
	}
	var req *doctorStatusRequest
	err := json.NewDecoder(r.Body).Decode(&req)
	if err != nil || req == nil || req.Status == "" {
		_ = render.Render(w, r, createError("Status is required", http.StatusBadRequest))
		return
	}
	principal, err := auth.FromContext(r.Context())
	if err != nil {
		_ = render.Render(w, r, createError("No token provided", http.StatusUnauthorized))
		return
	}
	actorRole := principal.Role
	if principal.IsSuperAdmin() {
		actorRole = "super_admin"
	}
	doctor, err := m.doctors.UpdateStatus(
		r.Context(),
		id,
		req.Status,
		actorRole,
		principal.Email,
	)
	if err != nil {
		switch {
		case errors.Is(err, manage.ErrEntityInvalidTransition):
			_ = render.Render(w, r, createError("Invalid status", http.StatusBadRequest))
		case errors.Is(err, manage.ErrTransitionDenied):
			_ = render.Render(w, r, createError(
				"Access denied. Super admin privileges required.", http.StatusForbidden))
		case errors.Is(err, manage.ErrNotFound):
			_ = render.Render(w, r, createError("Doctor not found", http.StatusNotFound))
		default:
			m.log.Error("error updating doctor status", zap.Error(err))
			_ = render.Render(w, r, createError(
				"Failed to update doctor status", http.StatusInternalServerError))
		}
		return
	}
	_ = render.Render(w, r, &genericSuccessResponse{
		Success: true,
		Message: "Doctor status updated successfully",
		Data:    doctor,
	})
}

func (m *AdminRessource) resignDoctor(w http.ResponseWriter, r *http.Request) {
	id, ok := idParam(r)
	if !ok {
		_ = render.Render(w, r, createError("Invalid id", http.StatusBadRequest))
		return
	}
	principal, err := auth.FromContext(r.Context())
	if err != nil {
		_ = render.Render(w, r, createError("No token provided", http.StatusUnauthorized))
		return
	}
	doctor, err := m.doctors.Resign(r.Context(), id, principal.Email)
	if err != nil {
		switch {
		case errors.Is(err, manage.ErrEntityInvalidTransition):
			_ = render.Render(w, r, createError(
				"Only approved doctors can resign", http.StatusBadRequest))
		case errors.Is(err, manage.ErrNotFound):
			_ = render.Render(w, r, createError("Doctor not found", http.StatusNotFound))
		default:
			m.log.Error("error resigning doctor", zap.Error(err))
			_ = render.Render(w, r,
				createError("Failed to resign doctor", http.StatusInternalServerError))
		}
		return
	}
	_ = render.Render(w, r, &genericSuccessResponse{
		Success: true,
		Message: "Doctor resigned successfully",
		Data:    doctor,
	})
}

func (m *AdminRessource) deleteDoctor(w http.ResponseWriter, r *http.Request) {
	id, ok := idParam(r)
	if !ok {
		_ = render.Render(w, r, createError("Invalid id", http.StatusBadRequest))
		return
	}
	err := m.doctors.Delete(r.Context(), id)
	if err != nil {
		if errors.Is(err, manage.ErrNotFound) {
			_ = render.Render(w, r, createError("Doctor not found", http.StatusNotFound))
			return
		}
		m.log.Error("error deleting doctor", zap.Error(err))
		_ = render.Render(w, r,
			createError("Failed to delete doctor", http.StatusInternalServerError))
		return
	}
	_ = render.Render(w, r, &genericSuccessResponse{
		Success: true,
		Message: "Doctor deleted successfully",
	})
}
