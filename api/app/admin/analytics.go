package admin

import (
	"net/http"

	"github.com/go-chi/render"
	"go.uber.org/zap"
)

func (m *AdminRessource) analyticsOverview(w http.ResponseWriter, r *http.Request) {
	overview, err := m.analytics.Overview(r.Context())
	if err != nil {
		m.log.Error("error building analytics overview", zap.Error(err))
		_ = render.Render(w, r,
			createError("Failed to fetch overview", http.StatusInternalServerError))
		return
	}
	_ = render.Render(w, r, &genericSuccessResponse{Success: true, Data: overview})
}

func (m *AdminRessource) clinicsGrowth(w http.ResponseWriter, r *http.Request) {
	rows, err := m.analytics.ClinicsGrowth(r.Context())
	if err != nil {
		m.log.Error("error building clinics growth", zap.Error(err))
		_ = render.Render(w, r,
			createError("Failed to fetch clinics growth", http.StatusInternalServerError))
		return
	}
	_ = render.Render(w, r, &genericSuccessResponse{Success: true, Data: rows})
}

func (m *AdminRessource) applicationsTrend(w http.ResponseWriter, r *http.Request) {
	rows, err := m.analytics.ApplicationsTrend(r.Context())
	if err != nil {
		m.log.Error("error building applications trend", zap.Error(err))
		_ = render.Render(w, r, createError(
			"Failed to fetch applications trend", http.StatusInternalServerError))
		return
	}
	_ = render.Render(w, r, &genericSuccessResponse{Success: true, Data: rows})
}

func (m *AdminRessource) doctorStatusDistribution(w http.ResponseWriter, r *http.Request) {
	distribution, err := m.analytics.DoctorStatusDistribution(r.Context())
	if err != nil {
		m.log.Error("error building doctor status distribution", zap.Error(err))
		_ = render.Render(w, r, createError(
			"Failed to fetch doctor status distribution", http.StatusInternalServerError))
		return
	}
	_ = render.Render(w, r, &genericSuccessResponse{Success: true, Data: distribution})
}
