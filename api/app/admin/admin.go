package admin

import (
	"context"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"
	"github.com/providerdesk/providerdesk/account"
	"github.com/providerdesk/providerdesk/api/auth"
	"github.com/providerdesk/providerdesk/config"
	"github.com/providerdesk/providerdesk/manage"
	"github.com/providerdesk/providerdesk/sanitize"
	"go.uber.org/zap"
)

// AdminRessource habours the headless admin endpoints of the directory
type AdminRessource struct {
	log         *zap.Logger
	cfg         *config.Configuration
	validate    *validator.Validate
	middleware  *auth.Middleware
	signin      *account.SigninService
	recovery    *account.RecoveryService
	adminUsers  *manage.AdminUserService
	superAdmins *manage.SuperAdminService
	doctors     *manage.DoctorService
	clinics     *manage.ClinicService
	endUsers    *manage.EndUserService
	analytics   *manage.AnalyticsService
}

func NewAdminRessource(log *zap.Logger,
	cfg *config.Configuration,
	validate *validator.Validate,
	middleware *auth.Middleware,
	signin *account.SigninService,
	recovery *account.RecoveryService,
	adminUsers *manage.AdminUserService,
	superAdmins *manage.SuperAdminService,
	doctors *manage.DoctorService,
	clinics *manage.ClinicService,
	endUsers *manage.EndUserService,
	analytics *manage.AnalyticsService) *AdminRessource {
	return &AdminRessource{
		log:         log,
		cfg:         cfg,
		validate:    validate,
		middleware:  middleware,
		signin:      signin,
		recovery:    recovery,
		adminUsers:  adminUsers,
		superAdmins: superAdmins,
		doctors:     doctors,
		clinics:     clinics,
		endUsers:    endUsers,
		analytics:   analytics,
	}
}

func (m *AdminRessource) Router() *chi.Mux {
	r := chi.NewRouter()

	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		m.log.Debug(
			"Could not found",
			zap.String("method", r.Method),
			sanitize.UserInputString("path", r.URL.Path),
		)
		w.WriteHeader(404)
	})

	r.Route("/super-admins", func(r chi.Router) {
		// the self service recovery endpoints are reachable without a
		// token, a locked out super admin has none
		r.Post("/request-password-reset", m.requestSuperAdminPasswordReset)
		r.Post("/reset-password", m.selfServiceResetPassword)
		r.Group(func(sr chi.Router) {
			sr.Use(m.middleware.Authenticator)
			sr.Use(m.middleware.RequireSuperAdmin)
			sr.With(pageinate).Get("/", m.listSuperAdmins)
			sr.Post("/", m.createSuperAdmin)
			sr.Get("/profile/me", m.superAdminProfile)
			sr.Put("/profile/me", m.updateSuperAdminProfile)
			sr.Post("/profile/change-password", m.changeSuperAdminPassword)
			sr.Get("/{id}", m.superAdminByID)
			sr.Put("/{id}", m.updateSuperAdmin)
			sr.Delete("/{id}", m.deleteSuperAdmin)
			sr.Put("/{id}/unlock", m.unlockSuperAdmin)
			sr.Post("/{id}/change-password", m.changeSuperAdminPasswordByID)
		})
	})

	r.Group(func(gr chi.Router) {
		gr.Use(m.middleware.Authenticator)

		gr.Group(func(sr chi.Router) {
			sr.Use(m.middleware.RequireSuperAdmin)
			sr.Route("/admin-users", func(r chi.Router) {
				r.With(pageinate).Get("/", m.listAdminUsers)
				r.Post("/", m.createAdminUser)
				r.Get("/{id}", m.adminUserByID)
				r.Put("/{id}", m.updateAdminUser)
				r.Delete("/{id}", m.deleteAdminUser)
				r.Put("/{id}/unlock", m.unlockAdminUser)
			})
		})

		// doctors, clinics and end users are staff wide, both account
		// kinds the Authenticator admits may manage them
		gr.Group(func(ar chi.Router) {
			ar.Route("/doctors", func(r chi.Router) {
				r.With(pageinate).Get("/", m.listDoctors)
				r.Post("/", m.createDoctor)
				r.With(pageinate).Get("/approved/list", m.listApprovedDoctors)
				r.With(pageinate).Get("/status/{status}", m.listDoctorsByStatus)
				r.Get("/{id}", m.doctorByID)
				r.Put("/{id}", m.updateDoctor)
				r.Delete("/{id}", m.deleteDoctor)
				r.Put("/{id}/status", m.updateDoctorStatus)
				r.Put("/{id}/resign", m.resignDoctor)
			})
			ar.Route("/clinics", func(r chi.Router) {
				r.With(pageinate).Get("/", m.listClinics)
				r.Post("/", m.createClinic)
				r.Get("/{id}", m.clinicByID)
				r.Put("/{id}", m.updateClinic)
				r.Delete("/{id}", m.deleteClinic)
			})
			ar.Route("/users", func(r chi.Router) {
				r.With(pageinate).Get("/", m.listEndUsers)
				r.Get("/{id}", m.endUserByID)
			})
		})

		gr.Route("/analytics", func(r chi.Router) {
			r.Get("/overview", m.analyticsOverview)
			r.Get("/clinics-growth", m.clinicsGrowth)
			r.Get("/applications-trend", m.applicationsTrend)
			r.Get("/doctor-status-distribution", m.doctorStatusDistribution)
		})
	})
	return r
}

type listingKey string

var pageKey listingKey = "page"
var pageSizeKey listingKey = "page_size"
var searchKey listingKey = "search"
var statusKey listingKey = "status"
var roleKey listingKey = "role"

func pageinate(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		p := r.URL.Query().Get("page")

		intOrDefault := func(in string, def int) int {
			if in == "" {
				return def
			}
			i, err := strconv.Atoi(in)
			if err != nil {
				return def
			}
			return i
		}
		ctx = context.WithValue(ctx, pageKey, intOrDefault(p, 1))
		s := r.URL.Query().Get("page_size")
		ctx = context.WithValue(ctx, pageSizeKey, intOrDefault(s, 20))

		search := r.URL.Query().Get("search")
		ctx = context.WithValue(ctx, searchKey, search)

		status := r.URL.Query().Get("status")
		ctx = context.WithValue(ctx, statusKey, status)

		role := r.URL.Query().Get("role")
		ctx = context.WithValue(ctx, roleKey, role)

		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

func idParam(r *http.Request) (int, bool) {
	id, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil || id <= 0 {
		return 0, false
	}
	return id, true
}
