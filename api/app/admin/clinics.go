package admin

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/render"
	"github.com/providerdesk/providerdesk/manage"
	"go.uber.org/zap"
)

func (m *AdminRessource) listClinics(w http.ResponseWriter, r *http.Request) {
	page := r.Context().Value(pageKey).(int)
	pageSize := r.Context().Value(pageSizeKey).(int)
	search := r.Context().Value(searchKey).(string)
	status := r.Context().Value(statusKey).(string)

	clinics, err := m.clinics.List(r.Context(), page, pageSize, search, status)
	if err != nil {
		m.log.Error("error listing clinics", zap.Error(err))
		_ = render.Render(w, r,
			createError("Failed to fetch clinics", http.StatusInternalServerError))
		return
	}
	_ = render.Render(w, r, &genericSuccessResponse{Success: true, Data: clinics})
}

func (m *AdminRessource) clinicByID(w http.ResponseWriter, r *http.Request) {
	id, ok := idParam(r)
	if !ok {
		_ = render.Render(w, r, createError("Invalid id", http.StatusBadRequest))
		return
	}
	clinic, err := m.clinics.ById(r.Context(), id)
	if err != nil {
		if errors.Is(err, manage.ErrNotFound) {
			_ = render.Render(w, r, createError("Clinic not found", http.StatusNotFound))
			return
		}
		m.log.Error("error getting clinic by id", zap.Error(err))
		_ = render.Render(w, r,
			createError("Failed to fetch clinic", http.StatusInternalServerError))
		return
	}
	_ = render.Render(w, r, &genericSuccessResponse{Success: true, Data: clinic})
}

func (m *AdminRessource) createClinic(w http.ResponseWriter, r *http.Request) {
	var req *createClinicRequest
	err := json.NewDecoder(r.Body).Decode(&req)
	if err != nil || req == nil || req.Name == "" || req.Address == "" {
		_ = render.Render(w, r,
			createError("Name and address are required", http.StatusBadRequest))
		return
	}
	if req.Email != nil && m.validate.Var(*req.Email, "required,email") != nil {
		_ = render.Render(w, r, createError("Invalid email format", http.StatusBadRequest))
		return
	}
	clinic, err := m.clinics.Create(r.Context(), req.Name, req.Address, req.Phone, req.Email)
	if err != nil {
		if errors.Is(err, manage.ErrEntityAlreadyExists) {
			_ = render.Render(w, r, createError(
				"A clinic with this name already exists", http.StatusConflict))
			return
		}
		m.log.Error("error creating clinic", zap.Error(err))
		_ = render.Render(w, r,
			createError("Failed to create clinic", http.StatusInternalServerError))
		return
	}
	err = render.Render(w, r, &genericSuccessResponse{
		Success: true,
		Message: "Clinic created successfully",
		Data:    clinic,
		status:  http.StatusCreated,
	})
	if err != nil {
		m.log.Error("unable to render response", zap.Error(err))
	}
}

func (m *AdminRessource) updateClinic(w http.ResponseWriter, r *http.Request) {
	id, ok := idParam(r)
	if !ok {
		_ = render.Render(w, r, createError("Invalid id", http.StatusBadRequest))
		return
	}
	var req *updateClinicRequest
	err := json.NewDecoder(r.Body).Decode(&req)
	if err != nil || req == nil {
		_ = render.Render(w, r, createError("Invalid payload", http.StatusBadRequest))
		return
	}
	if req.Email != nil && m.validate.Var(*req.Email, "required,email") != nil {
		_ = render.Render(w, r, createError("Invalid email format", http.StatusBadRequest))
		return
	}
	clinic, err := m.clinics.Update(
		r.Context(),
		id,
		req.Name,
		req.Address,
		req.Phone,
		req.Email,
		req.Status,
	)
	if err != nil {
		switch {
		case errors.Is(err, manage.ErrNoChanges):
			_ = render.Render(w, r,
				createError("No fields to update", http.StatusBadRequest))
		case errors.Is(err, manage.ErrNotFound):
			_ = render.Render(w, r, createError("Clinic not found", http.StatusNotFound))
		default:
			m.log.Error("error updating clinic", zap.Error(err))
			_ = render.Render(w, r,
				createError("Failed to update clinic", http.StatusInternalServerError))
		}
		return
	}
	_ = render.Render(w, r, &genericSuccessResponse{
		Success: true,
		Message: "Clinic updated successfully",
		Data:    clinic,
	})
}

func (m *AdminRessource) deleteClinic(w http.ResponseWriter, r *http.Request) {
	id, ok := idParam(r)
	if !ok {
		_ = render.Render(w, r, createError("Invalid id", http.StatusBadRequest))
		return
	}
	err := m.clinics.Delete(r.Context(), id)
	if err != nil {
		if errors.Is(err, manage.ErrNotFound) {
			_ = render.Render(w, r, createError("Clinic not found", http.StatusNotFound))
			return
		}
		m.log.Error("error deleting clinic", zap.Error(err))
		_ = render.Render(w, r,
			createError("Failed to delete clinic", http.StatusInternalServerError))
		return
	}
	_ = render.Render(w, r, &genericSuccessResponse{
		Success: true,
		Message: "Clinic deleted successfully",
	})
}
