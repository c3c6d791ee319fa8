package auth

import (
	"net/http"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/providerdesk/providerdesk/config"
	"github.com/providerdesk/providerdesk/db"
	"github.com/providerdesk/providerdesk/tokens"
	"github.com/providerdesk/providerdesk/tokens/mocks"
	"github.com/steinfletcher/apitest"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"go.uber.org/zap"
)

func testMiddleware(t *testing.T) (*Middleware, *tokens.TokenIssuer, *mocks.Fetcher) {
	cfg := &config.JWTConfiguration{
		Algorithm:      "HS256",
		Issuer:         "providerdesk",
		Audience:       []string{"providerdesk-admin"},
		Expiry:         time.Hour,
		HMACSigningKey: "oTQViBZwcMuipZspTAsmqTbuvsDmRDyz",
	}
	issuer := tokens.NewIssuer(zap.NewNop(), cfg)
	loader := mocks.NewFetcher(t)
	verifier := tokens.NewTokenVerifier(zap.NewNop(), issuer, loader)
	return NewMiddleware(zap.NewNop(), verifier), issuer, loader
}

func signedBearer(t *testing.T, issuer *tokens.TokenIssuer, id int, userType string, role string) string {
	token, err := issuer.IssueAccessToken(id, "test@example.com", userType, role)
	assert.Nil(t, err)
	signed, err := issuer.Sign(token)
	assert.Nil(t, err)
	return "Bearer " + string(signed)
}

func guardedRouter(m *Middleware) *chi.Mux {
	r := chi.NewRouter()
	r.Group(func(gr chi.Router) {
		gr.Use(m.Authenticator)
		gr.Get("/any", func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusOK)
		})
		gr.Group(func(sr chi.Router) {
			sr.Use(m.RequireSuperAdmin)
			sr.Get("/super", func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(http.StatusOK)
			})
		})
		gr.Group(func(sr chi.Router) {
			sr.Use(m.RequireAdmin)
			sr.Get("/admin", func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(http.StatusOK)
			})
		})
	})
	return r
}

func TestAuthenticatorWithoutToken(t *testing.T) {
	m, _, _ := testMiddleware(t)
	apitest.New().
		Handler(guardedRouter(m)).
		Get("/any").
		Expect(t).
		Body(`{"success":false,"error":"No token provided"}`).
		Status(http.StatusUnauthorized).
		End()
}

func TestAuthenticatorGarbageToken(t *testing.T) {
	m, _, _ := testMiddleware(t)
	apitest.New().
		Handler(guardedRouter(m)).
		Get("/any").
		Header("Authorization", "Bearer not.a.token").
		Expect(t).
		Body(`{"success":false,"error":"Invalid or expired token"}`).
		Status(http.StatusUnauthorized).
		End()
}

func TestAuthenticatorDeletedAccount(t *testing.T) {
	m, issuer, loader := testMiddleware(t)
	loader.On("AccountByID", mock.Anything, db.KindAdminUser, 3).
		Return(nil, db.ErrNotFound)
	apitest.New().
		Handler(guardedRouter(m)).
		Get("/any").
		Header("Authorization", signedBearer(t, issuer, 3, "admin", "admin")).
		Expect(t).
		Body(`{"success":false,"error":"Account not found or inactive"}`).
		Status(http.StatusUnauthorized).
		End()
}

func TestAuthenticatorInactiveAccount(t *testing.T) {
	m, issuer, loader := testMiddleware(t)
	loader.On("AccountByID", mock.Anything, db.KindAdminUser, 3).
		Return(&db.AccountData{ID: 3, Kind: db.KindAdminUser, Status: "inactive"}, nil)
	apitest.New().
		Handler(guardedRouter(m)).
		Get("/any").
		Header("Authorization", signedBearer(t, issuer, 3, "admin", "admin")).
		Expect(t).
		Body(`{"success":false,"error":"Account not found or inactive"}`).
		Status(http.StatusUnauthorized).
		End()
}

func TestAuthenticatorActiveAccount(t *testing.T) {
	m, issuer, loader := testMiddleware(t)
	loader.On("AccountByID", mock.Anything, db.KindAdminUser, 3).
		Return(&db.AccountData{ID: 3, Kind: db.KindAdminUser, Status: "active"}, nil)
	apitest.New().
		Handler(guardedRouter(m)).
		Get("/any").
		Header("Authorization", signedBearer(t, issuer, 3, "admin", "admin")).
		Expect(t).
		Status(http.StatusOK).
		End()
}

func TestRequireSuperAdminDeniesAdminUser(t *testing.T) {
	m, issuer, loader := testMiddleware(t)
	loader.On("AccountByID", mock.Anything, db.KindAdminUser, 3).
		Return(&db.AccountData{ID: 3, Kind: db.KindAdminUser, Status: "active"}, nil)
	apitest.New().
		Handler(guardedRouter(m)).
		Get("/super").
		Header("Authorization", signedBearer(t, issuer, 3, "admin", "admin")).
		Expect(t).
		Body(`{"success":false,"error":"Access denied. Super admin privileges required."}`).
		Status(http.StatusForbidden).
		End()
}

func TestRequireSuperAdminLetsSuperAdminThrough(t *testing.T) {
	m, issuer, loader := testMiddleware(t)
	loader.On("AccountByID", mock.Anything, db.KindSuperAdmin, 1).
		Return(&db.AccountData{ID: 1, Kind: db.KindSuperAdmin, Status: "active"}, nil)
	apitest.New().
		Handler(guardedRouter(m)).
		Get("/super").
		Header("Authorization", signedBearer(t, issuer, 1, "super_admin", "")).
		Expect(t).
		Status(http.StatusOK).
		End()
}

func TestRequireAdminLetsAdminUserThrough(t *testing.T) {
	m, issuer, loader := testMiddleware(t)
	loader.On("AccountByID", mock.Anything, db.KindAdminUser, 3).
		Return(&db.AccountData{ID: 3, Kind: db.KindAdminUser, Status: "active"}, nil)
	apitest.New().
		Handler(guardedRouter(m)).
		Get("/admin").
		Header("Authorization", signedBearer(t, issuer, 3, "admin", "admin")).
		Expect(t).
		Status(http.StatusOK).
		End()
}

func TestRequireAdminRejectsSuperAdmin(t *testing.T) {
	m, issuer, loader := testMiddleware(t)
	loader.On("AccountByID", mock.Anything, db.KindSuperAdmin, 1).
		Return(&db.AccountData{ID: 1, Kind: db.KindSuperAdmin, Status: "active"}, nil)
	apitest.New().
		Handler(guardedRouter(m)).
		Get("/admin").
		Header("Authorization", signedBearer(t, issuer, 1, "super_admin", "")).
		Expect(t).
		Body(`{"success":false,"error":"Access denied. Admin privileges required."}`).
		Status(http.StatusForbidden).
		End()
}

func TestPrincipalFromEmptyContext(t *testing.T) {
	assert := assert.New(t)
	r, _ := http.NewRequest(http.MethodGet, "/", nil)
	_, err := FromContext(r.Context())
	assert.ErrorIs(err, ErrNoPrincipal)
}
