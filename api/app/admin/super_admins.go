package admin

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/render"
	"github.com/providerdesk/providerdesk/account"
	"github.com/providerdesk/providerdesk/api/auth"
	"github.com/providerdesk/providerdesk/db"
	"github.com/providerdesk/providerdesk/manage"
	"go.uber.org/zap"
)

func (m *AdminRessource) listSuperAdmins(w http.ResponseWriter, r *http.Request) {
	page := r.Context().Value(pageKey).(int)
	pageSize := r.Context().Value(pageSizeKey).(int)
	search := r.Context().Value(searchKey).(string)
	status := r.Context().Value(statusKey).(string)

	admins, err := m.superAdmins.List(r.Context(), page, pageSize, search, status)
	if err != nil {
		m.log.Error("error listing super admins", zap.Error(err))
		_ = render.Render(w, r,
			createError("Failed to fetch super admins", http.StatusInternalServerError))
		return
	}
	_ = render.Render(w, r, &genericSuccessResponse{Success: true, Data: admins})
}

func (m *AdminRessource) superAdminByID(w http.ResponseWriter, r *http.Request) {
	id, ok := idParam(r)
	if !ok {
		_ = render.Render(w, r, createError("Invalid id", http.StatusBadRequest))
		return
	}
	admin, err := m.superAdmins.ById(r.Context(), id)
	if err != nil {
		if errors.Is(err, manage.ErrNotFound) {
			_ = render.Render(w, r,
				createError("Super admin not found", http.StatusNotFound))
			return
		}
		m.log.Error("error getting super admin by id", zap.Error(err))
		_ = render.Render(w, r,
			createError("Failed to fetch super admin", http.StatusInternalServerError))
		return
	}
	_ = render.Render(w, r, &genericSuccessResponse{Success: true, Data: admin})
}

func (m *AdminRessource) superAdminProfile(w http.ResponseWriter, r *http.Request) {
	principal, err := auth.FromContext(r.Context())
	if err != nil {
		_ = render.Render(w, r, createError("No token provided", http.StatusUnauthorized))
		return
	}
	admin, err := m.superAdmins.ById(r.Context(), principal.ID)
	if err != nil {
		if errors.Is(err, manage.ErrNotFound) {
			_ = render.Render(w, r,
				createError("Super admin not found", http.StatusNotFound))
			return
		}
		m.log.Error("error fetching profile", zap.Error(err))
		_ = render.Render(w, r,
			createError("Failed to fetch profile", http.StatusInternalServerError))
		return
	}
	_ = render.Render(w, r, &genericSuccessResponse{Success: true, Data: admin})
}

func (m *AdminRessource) updateSuperAdminProfile(w http.ResponseWriter, r *http.Request) {
	principal, err := auth.FromContext(r.Context())
	if err != nil {
		_ = render.Render(w, r, createError("No token provided", http.StatusUnauthorized))
		return
	}
	var req *updateSuperAdminRequest
	err = json.NewDecoder(r.Body).Decode(&req)
	if err != nil || req == nil || (req.Email == nil && req.FullName == nil) {
		_ = render.Render(w, r, createError(
			"At least one field (email or full_name) is required", http.StatusBadRequest))
		return
	}
	if req.Email != nil && m.validate.Var(*req.Email, "required,email") != nil {
		_ = render.Render(w, r, createError("Invalid email format", http.StatusBadRequest))
		return
	}
	// the own profile only exposes email and full name
	admin, err := m.superAdmins.Update(
		r.Context(),
		principal.ID,
		req.Email,
		req.FullName,
		nil,
		nil,
	)
	if err != nil {
		m.renderSuperAdminError(w, r, err, "Failed to update profile")
		return
	}
	_ = render.Render(w, r, &genericSuccessResponse{
		Success: true,
		Message: "Profile updated successfully",
		Data:    admin,
	})
}

func (m *AdminRessource) createSuperAdmin(w http.ResponseWriter, r *http.Request) {
	var req *createSuperAdminRequest
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
	admin, err := m.superAdmins.Create(
		r.Context(),
		req.Email,
		req.Password,
		req.FullName,
		req.Phone,
		principal.Email,
	)
	if err != nil {
		switch {
		case errors.Is(err, manage.ErrPasswordGuidelines):
			_ = render.Render(w, r, createError(
				"Password must be at least 8 characters long", http.StatusBadRequest))
		case errors.Is(err, manage.ErrEntityAlreadyExists):
			_ = render.Render(w, r, createError(
				"A super admin with this email already exists", http.StatusConflict))
		default:
			m.log.Error("error creating super admin", zap.Error(err))
			_ = render.Render(w, r, createError(
				"Failed to create super admin", http.StatusInternalServerError))
		}
		return
	}
	err = render.Render(w, r, &genericSuccessResponse{
		Success: true,
		Message: "Super admin created successfully",
		Data:    admin,
		status:  http.StatusCreated,
	})
	if err != nil {
		m.log.Error("unable to render response", zap.Error(err))
	}
}

func (m *AdminRessource) updateSuperAdmin(w http.ResponseWriter, r *http.Request) {
	id, ok := idParam(r)
	if !ok {
		_ = render.Render(w, r, createError("Invalid id", http.StatusBadRequest))
		return
	}
	var req *updateSuperAdminRequest
	err := json.NewDecoder(r.Body).Decode(&req)
	if err != nil || req == nil {
		_ = render.Render(w, r, createError("Invalid payload", http.StatusBadRequest))
		return
	}
	if req.Email != nil && m.validate.Var(*req.Email, "required,email") != nil {
		_ = render.Render(w, r, createError("Invalid email format", http.StatusBadRequest))
		return
	}
	admin, err := m.superAdmins.Update(
		r.Context(),
		id,
		req.Email,
		req.FullName,
		req.Status,
		req.Phone,
	)
	if err != nil {
		m.renderSuperAdminError(w, r, err, "Failed to update super admin")
		return
	}
	_ = render.Render(w, r, &genericSuccessResponse{
		Success: true,
		Message: "Super admin updated successfully",
		Data:    admin,
	})
}

func (m *AdminRessource) renderSuperAdminError(
	w http.ResponseWriter,
	r *http.Request,
	err error,
	fallback string,
) {
	switch {
	case errors.Is(err, manage.ErrNoChanges):
		_ = render.Render(w, r, createError("No fields to update", http.StatusBadRequest))
	case errors.Is(err, manage.ErrEntityAlreadyExists):
		_ = render.Render(w, r, createError(
			"A super admin with this email already exists", http.StatusConflict))
	case errors.Is(err, manage.ErrNotFound):
		_ = render.Render(w, r, createError("Super admin not found", http.StatusNotFound))
	default:
		m.log.Error("super admin request failed", zap.Error(err))
		_ = render.Render(w, r, createError(fallback, http.StatusInternalServerError))
	}
}

func (m *AdminRessource) deleteSuperAdmin(w http.ResponseWriter, r *http.Request) {
	id, ok := idParam(r)
	if !ok {
		_ = render.Render(w, r, createError("Invalid id", http.StatusBadRequest))
		return
	}
	err := m.superAdmins.Delete(r.Context(), id)
	if err != nil {
		switch {
		case errors.Is(err, manage.ErrLastActiveSuperAdmin):
			_ = render.Render(w, r, createError(
				"Cannot delete the last active super admin", http.StatusBadRequest))
		case errors.Is(err, manage.ErrNotFound):
			_ = render.Render(w, r,
				createError("Super admin not found", http.StatusNotFound))
		default:
			m.log.Error("error deleting super admin", zap.Error(err))
			_ = render.Render(w, r, createError(
				"Failed to delete super admin", http.StatusInternalServerError))
		}
		return
	}
	_ = render.Render(w, r, &genericSuccessResponse{
		Success: true,
		Message: "Super admin deleted successfully",
	})
}

func (m *AdminRessource) unlockSuperAdmin(w http.ResponseWriter, r *http.Request) {
	id, ok := idParam(r)
	if !ok {
		_ = render.Render(w, r, createError("Invalid id", http.StatusBadRequest))
		return
	}
	err := m.superAdmins.Unlock(r.Context(), id)
	if err != nil {
		if errors.Is(err, manage.ErrNotFound) {
			_ = render.Render(w, r,
				createError("Super admin not found", http.StatusNotFound))
			return
		}
		m.log.Error("error unlocking super admin", zap.Error(err))
		_ = render.Render(w, r,
			createError("Failed to unlock super admin", http.StatusInternalServerError))
		return
	}
	_ = render.Render(w, r, &genericSuccessResponse{
		Success: true,
		Message: "Super admin unlocked successfully",
	})
}

func (m *AdminRessource) changeSuperAdminPassword(w http.ResponseWriter, r *http.Request) {
	principal, err := auth.FromContext(r.Context())
	if err != nil {
		_ = render.Render(w, r, createError("No token provided", http.StatusUnauthorized))
		return
	}
	var req *changePasswordRequest
	err = json.NewDecoder(r.Body).Decode(&req)
	if err != nil || req == nil || req.CurrentPassword == "" || req.NewPassword == "" {
		_ = render.Render(w, r, createError(
			"Current password and new password are required", http.StatusBadRequest))
		return
	}
	err = m.signin.ChangePassword(
		r.Context(),
		principal.Kind,
		principal.ID,
		req.CurrentPassword,
		req.NewPassword,
	)
	if err != nil {
		switch {
		case errors.Is(err, account.ErrPasswordTooShort):
			_ = render.Render(w, r, createError(
				"New password must be at least 8 characters long", http.StatusBadRequest))
		case errors.Is(err, account.ErrInvalidCredentials):
			_ = render.Render(w, r, createError(
				"Current password is incorrect", http.StatusUnauthorized))
		case errors.Is(err, account.ErrEntityDoesNotExist):
			_ = render.Render(w, r,
				createError("Super admin not found", http.StatusNotFound))
		default:
			m.log.Error("error changing password", zap.Error(err))
			_ = render.Render(w, r, createError(
				"Failed to change password", http.StatusInternalServerError))
		}
		return
	}
	_ = render.Render(w, r, &genericSuccessResponse{
		Success: true,
		Message: "Password changed successfully",
	})
}

// changeSuperAdminPasswordByID swaps the password of another super admin,
// the target's current password still has to be supplied
func (m *AdminRessource) changeSuperAdminPasswordByID(w http.ResponseWriter, r *http.Request) {
	id, ok := idParam(r)
	if !ok {
		_ = render.Render(w, r, createError("Invalid id", http.StatusBadRequest))
		return
	}
	var req *changePasswordRequest
	err := json.NewDecoder(r.Body).Decode(&req)
	if err != nil || req == nil || req.CurrentPassword == "" || req.NewPassword == "" {
		_ = render.Render(w, r, createError(
			"Current password and new password are required", http.StatusBadRequest))
		return
	}
	err = m.signin.ChangePassword(
		r.Context(),
		db.KindSuperAdmin,
		id,
		req.CurrentPassword,
		req.NewPassword,
	)
	if err != nil {
		switch {
		case errors.Is(err, account.ErrPasswordTooShort):
			_ = render.Render(w, r, createError(
				"New password must be at least 8 characters long", http.StatusBadRequest))
		case errors.Is(err, account.ErrInvalidCredentials):
			_ = render.Render(w, r, createError(
				"Current password is incorrect", http.StatusUnauthorized))
		case errors.Is(err, account.ErrEntityDoesNotExist):
			_ = render.Render(w, r,
				createError("Super admin not found", http.StatusNotFound))
		default:
			m.log.Error("error changing password", zap.Error(err))
			_ = render.Render(w, r, createError(
				"Failed to change password", http.StatusInternalServerError))
		}
		return
	}
	_ = render.Render(w, r, &genericSuccessResponse{
		Success: true,
		Message: "Password changed successfully",
	})
}

func (m *AdminRessource) requestSuperAdminPasswordReset(w http.ResponseWriter, r *http.Request) {
	var req *requestPasswordResetRequest
	err := json.NewDecoder(r.Body).Decode(&req)
	if err != nil || req == nil || req.Email == "" {
		_ = render.Render(w, r, createError("Email is required", http.StatusBadRequest))
		return
	}
	err = m.recovery.InitiateResetForKind(r.Context(), db.KindSuperAdmin, req.Email)
	if err != nil {
		m.log.Error("error requesting password reset", zap.Error(err))
		_ = render.Render(w, r, createError(
			"Failed to request password reset", http.StatusInternalServerError))
		return
	}
	// same answer for known and unknown addresses
	_ = render.Render(w, r, &genericSuccessResponse{
		Success: true,
		Message: "If the email exists, a password reset link will be sent",
	})
}

func (m *AdminRessource) selfServiceResetPassword(w http.ResponseWriter, r *http.Request) {
	var req *selfServiceResetRequest
	err := json.NewDecoder(r.Body).Decode(&req)
	if err != nil || req == nil || req.Token == "" || req.NewPassword == "" {
		_ = render.Render(w, r, createError(
			"Reset token and new password are required", http.StatusBadRequest))
		return
	}
	err = m.recovery.SelfServiceReset(r.Context(), req.Token, req.NewPassword)
	if err != nil {
		switch {
		case errors.Is(err, account.ErrPasswordTooShort):
			_ = render.Render(w, r, createError(
				"Password must be at least 8 characters long", http.StatusBadRequest))
		case errors.Is(err, account.ErrInvalidResetToken),
			errors.Is(err, account.ErrResetTokenUsed),
			errors.Is(err, account.ErrResetTokenExpired):
			_ = render.Render(w, r, createError(
				"Invalid or expired reset token", http.StatusBadRequest))
		default:
			m.log.Error("error resetting password", zap.Error(err))
			_ = render.Render(w, r, createError(
				"Failed to reset password", http.StatusInternalServerError))
		}
		return
	}
	_ = render.Render(w, r, &genericSuccessResponse{
		Success: true,
		Message: "Password reset successfully",
	})
}
