package admin

import (
	"errors"
	"net/http"

	"github.com/go-chi/render"
	"github.com/providerdesk/providerdesk/manage"
	"go.uber.org/zap"
)

func (m *AdminRessource) listEndUsers(w http.ResponseWriter, r *http.Request) {
	page := r.Context().Value(pageKey).(int)
	pageSize := r.Context().Value(pageSizeKey).(int)
	search := r.Context().Value(searchKey).(string)
	status := r.Context().Value(statusKey).(string)

	users, err := m.endUsers.List(r.Context(), page, pageSize, search, status)
	if err != nil {
		m.log.Error("error listing users", zap.Error(err))
		_ = render.Render(w, r,
			createError("Failed to fetch users", http.StatusInternalServerError))
		return
	}
	_ = render.Render(w, r, &genericSuccessResponse{Success: true, Data: users})
}

func (m *AdminRessource) endUserByID(w http.ResponseWriter, r *http.Request) {
	id, ok := idParam(r)
	if !ok {
		_ = render.Render(w, r, createError("Invalid id", http.StatusBadRequest))
		return
	}
	user, err := m.endUsers.ById(r.Context(), id)
	if err != nil {
		if errors.Is(err, manage.ErrNotFound) {
			_ = render.Render(w, r, createError("User not found", http.StatusNotFound))
			return
		}
		m.log.Error("error getting user by id", zap.Error(err))
		_ = render.Render(w, r,
			createError("Failed to fetch user", http.StatusInternalServerError))
		return
	}
	_ = render.Render(w, r, &genericSuccessResponse{Success: true, Data: user})
}
