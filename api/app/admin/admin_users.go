package admin

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/render"
	"github.com/providerdesk/providerdesk/api/auth"
	"github.com/providerdesk/providerdesk/manage"
	"go.uber.org/zap"
)

func (m *AdminRessource) listAdminUsers(w http.ResponseWriter, r *http.Request) {
	page := r.Context().Value(pageKey).(int)
	pageSize := r.Context().Value(pageSizeKey).(int)
	search := r.Context().Value(searchKey).(string)
	status := r.Context().Value(statusKey).(string)
	role := r.Context().Value(roleKey).(string)

	admins, err := m.adminUsers.List(r.Context(), page, pageSize, search, status, role)
	if err != nil {
		m.log.Error("error listing admin users", zap.Error(err))
		_ = render.Render(w, r,
			createError("Failed to fetch admin users", http.StatusInternalServerError))
		return
	}
	_ = render.Render(w, r, &genericSuccessResponse{Success: true, Data: admins})
}

func (m *AdminRessource) adminUserByID(w http.ResponseWriter, r *http.Request) {
	id, ok := idParam(r)
	if !ok {
		_ = render.Render(w, r, createError("Invalid id", http.StatusBadRequest))
		return
	}
	admin, err := m.adminUsers.ById(r.Context(), id)
	if err != nil {
		if errors.Is(err, manage.ErrNotFound) {
			_ = render.Render(w, r,
				createError("Admin user not found", http.StatusNotFound))
			return
		}
		m.log.Error("error getting admin user by id", zap.Error(err))
		_ = render.Render(w, r,
			createError("Failed to fetch admin user", http.StatusInternalServerError))
		return
	}
	_ = render.Render(w, r, &genericSuccessResponse{Success: true, Data: admin})
}

func (m *AdminRessource) createAdminUser(w http.ResponseWriter, r *http.Request) {
	var req *createAdminUserRequest
	err := json.NewDecoder(r.Body).Decode(&req)
	if err != nil || req == nil || req.Email == "" || req.Password == "" ||
		req.FullName == "" {
		_ = render.Render(w, r, createError(
			"Email, password, and full name are required", http.StatusBadRequest))
		return
	}
	if m.validate.Var(req.Email, "required,email") != nil {
		_ = render.Render(w, r, createError("Invalid email format", http.StatusBadRequest))
		return
	}
	principal, err := auth.FromContext(r.Context())
	if err != nil {
		_ = render.Render(w, r, createError("No token provided", http.StatusUnauthorized))
		return
	}
	admin, err := m.adminUsers.Create(
		r.Context(),
		req.Email,
		req.Password,
		req.FullName,
		req.Role,
		req.Phone,
		req.Department,
		&principal.Email,
	)
	if err != nil {
		switch {
		case errors.Is(err, manage.ErrPasswordGuidelines):
			_ = render.Render(w, r, createError(
				"Password must be at least 8 characters long", http.StatusBadRequest))
		case errors.Is(err, manage.ErrEntityAlreadyExists):
			_ = render.Render(w, r, createError(
				"An admin user with this email already exists", http.StatusConflict))
		default:
			m.log.Error("error creating admin user", zap.Error(err))
			_ = render.Render(w, r, createError(
				"Failed to create admin user", http.StatusInternalServerError))
		}
		return
	}
	err = render.Render(w, r, &genericSuccessResponse{
		Success: true,
		Message: "Admin user created successfully",
		Data:    admin,
		status:  http.StatusCreated,
	})
	if err != nil {
		m.log.Error("unable to render response", zap.Error(err))
	}
}

func (m *AdminRessource) updateAdminUser(w http.ResponseWriter, r *http.Request) {
	id, ok := idParam(r)
	if !ok {
		_ = render.Render(w, r, createError("Invalid id", http.StatusBadRequest))
		return
	}
	var req *updateAdminUserRequest
	err := json.NewDecoder(r.Body).Decode(&req)
	if err != nil || req == nil {
		_ = render.Render(w, r, createError("Invalid payload", http.StatusBadRequest))
		return
	}
	if req.Email != nil && m.validate.Var(*req.Email, "required,email") != nil {
		_ = render.Render(w, r, createError("Invalid email format", http.StatusBadRequest))
		return
	}
	admin, err := m.adminUsers.Update(
		r.Context(),
		id,
		req.Email,
		req.FullName,
		req.Role,
		req.Status,
		req.Phone,
		req.Department,
	)
	if err != nil {
		switch {
		case errors.Is(err, manage.ErrNoChanges):
			_ = render.Render(w, r,
				createError("No fields to update", http.StatusBadRequest))
		case errors.Is(err, manage.ErrEntityAlreadyExists):
			_ = render.Render(w, r, createError(
				"An admin user with this email already exists", http.StatusConflict))
		case errors.Is(err, manage.ErrNotFound):
			_ = render.Render(w, r,
				createError("Admin user not found", http.StatusNotFound))
		default:
			m.log.Error("error updating admin user", zap.Error(err))
			_ = render.Render(w, r, createError(
				"Failed to update admin user", http.StatusInternalServerError))
		}
		return
	}
	_ = render.Render(w, r, &genericSuccessResponse{
		Success: true,
		Message: "Admin user updated successfully",
		Data:    admin,
	})
}

func (m *AdminRessource) deleteAdminUser(w http.ResponseWriter, r *http.Request) {
	id, ok := idParam(r)
	if !ok {
		_ = render.Render(w, r, createError("Invalid id", http.StatusBadRequest))
		return
	}
	err := m.adminUsers.Delete(r.Context(), id)
	if err != nil {
		if errors.Is(err, manage.ErrNotFound) {
			_ = render.Render(w, r,
				createError("Admin user not found", http.StatusNotFound))
			return
		}
		m.log.Error("error deleting admin user", zap.Error(err))
		_ = render.Render(w, r,
			createError("Failed to delete admin user", http.StatusInternalServerError))
		return
	}
	_ = render.Render(w, r, &genericSuccessResponse{
		Success: true,
		Message: "Admin user deleted successfully",
	})
}

func (m *AdminRessource) unlockAdminUser(w http.ResponseWriter, r *http.Request) {
	id, ok := idParam(r)
	if !ok {
		_ = render.Render(w, r, createError("Invalid id", http.StatusBadRequest))
		return
	}
	err := m.adminUsers.Unlock(r.Context(), id)
	if err != nil {
		if errors.Is(err, manage.ErrNotFound) {
			_ = render.Render(w, r,
				createError("Admin user not found", http.StatusNotFound))
			return
		}
		m.log.Error("error unlocking admin user", zap.Error(err))
		_ = render.Render(w, r,
			createError("Failed to unlock admin user", http.StatusInternalServerError))
		return
	}
	_ = render.Render(w, r, &genericSuccessResponse{
		Success: true,
		Message: "Admin user unlocked successfully",
	})
}
