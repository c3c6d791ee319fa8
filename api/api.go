package api

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/go-playground/validator/v10"
	"github.com/providerdesk/providerdesk/account"
	"github.com/providerdesk/providerdesk/api/app/admin"
	"github.com/providerdesk/providerdesk/api/app/authflow"
	"github.com/providerdesk/providerdesk/api/app/meta"
	"github.com/providerdesk/providerdesk/api/auth"
	"github.com/providerdesk/providerdesk/config"
	"github.com/providerdesk/providerdesk/manage"
	"github.com/providerdesk/providerdesk/tokens"
	"go.uber.org/zap"
)

func compose(logger *zap.Logger,
	cfg *config.Configuration,
	issuer *tokens.TokenIssuer,
	verifier *tokens.TokenVerifier,
	signinService *account.SigninService,
	recoveryService *account.RecoveryService,
	adminUserService *manage.AdminUserService,
	superAdminService *manage.SuperAdminService,
	doctorService *manage.DoctorService,
	clinicService *manage.ClinicService,
	endUserService *manage.EndUserService,
	analyticsService *manage.AnalyticsService) (*chi.Mux, error) {
	validate := validator.New()

	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)

	r.Use(loggerMiddleware(logger))

	r.Use(middleware.Recoverer)

	r.Use(middleware.Timeout(50 * time.Second))

	if cfg.CORS != nil {
		r.Use(cors.Handler(cors.Options{
			AllowedOrigins:   cfg.CORS.AllowedOrigins,
			AllowedMethods:   cfg.CORS.AllowedMethods,
			AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
			ExposedHeaders:   []string{"Link"},
			AllowCredentials: cfg.CORS.AllowCredentials,
			MaxAge:           300,
		}))
	}

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"status":"ok"}`))
	})

	authMiddleware := auth.NewMiddleware(logger.Named("auth_middleware"), verifier)

	authRessource := authflow.NewAuthRessource(
		logger.Named("auth_ressource"),
		cfg,
		signinService,
		recoveryService,
		issuer,
		authMiddleware,
	)
	adminRessource := admin.NewAdminRessource(
		logger.Named("admin_ressource"),
		cfg,
		validate,
		authMiddleware,
		signinService,
		recoveryService,
		adminUserService,
		superAdminService,
		doctorService,
		clinicService,
		endUserService,
		analyticsService,
	)

	metaRessource := meta.NewMetaRessource(logger.Named("meta_ressource"), issuer)

	r.Route("/api", func(ar chi.Router) {
		ar.Mount("/auth", authRessource.Router())
		ar.Mount("/", adminRessource.Router())
	})
	r.Mount("/.well-known", metaRessource.Router())

	return r, nil
}
