package authflow

import (
	"encoding/json"
	"fmt"
	"net/http"
	"testing"
	"time"

	"github.com/providerdesk/providerdesk/account"
	"github.com/providerdesk/providerdesk/account/mocks"
	"github.com/providerdesk/providerdesk/api/auth"
	"github.com/providerdesk/providerdesk/config"
	"github.com/providerdesk/providerdesk/db"
	"github.com/providerdesk/providerdesk/tokens"
	"github.com/steinfletcher/apitest"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

func testConfiguration() *config.Configuration {
	return &config.Configuration{
		Security: &config.SecurityConfiguration{
			MaxLoginAttempts:     5,
			LockoutDuration:      15 * time.Minute,
			ResetTokenExpiry:     time.Hour,
			PasswordMinLength:    6,
			SelfServiceMinLength: 8,
			FrontendURL:          "https://desk.example.com",
		},
		JWT: &config.JWTConfiguration{
			Algorithm:      "HS256",
			Issuer:         "providerdesk",
			Audience:       []string{"providerdesk-admin"},
			Expiry:         time.Hour,
			HMACSigningKey: "oTQViBZwcMuipZspTAsmqTbuvsDmRDyz",
		},
	}
}

type authTestEnv struct {
	ressource  *AuthRessource
	store      *mocks.AccountStorer
	recovery   *mocks.RecoveryStorer
	mailer     *mocks.RecoveryMailer
	dispatcher *mocks.Dispatcher
	issuer     *tokens.TokenIssuer
}

func newAuthTestEnv(t *testing.T) *authTestEnv {
	cfg := testConfiguration()
	logger := zap.NewNop()
	store := mocks.NewAccountStorer(t)
	recoveryStore := mocks.NewRecoveryStorer(t)
	mailer := mocks.NewRecoveryMailer(t)
	dispatcher := mocks.NewDispatcher(t)
	signin := account.NewSigninService(store, logger, cfg.Security, dispatcher)
	recovery := account.NewRecoveryService(recoveryStore, logger, cfg.Security, mailer, dispatcher)
	issuer := tokens.NewIssuer(logger, cfg.JWT)
	verifier := tokens.NewTokenVerifier(logger, issuer, store)
	middleware := auth.NewMiddleware(logger, verifier)
	return &authTestEnv{
		ressource:  NewAuthRessource(logger, cfg, signin, recovery, issuer, middleware),
		store:      store,
		recovery:   recoveryStore,
		mailer:     mailer,
		dispatcher: dispatcher,
		issuer:     issuer,
	}
}

func hashedPassword(t *testing.T, password string) []byte {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	assert.Nil(t, err)
	return hash
}

func (e *authTestEnv) bearerFor(t *testing.T, id int, email string, userType string, role string) string {
	token, err := e.issuer.IssueAccessToken(id, email, userType, role)
	assert.Nil(t, err)
	signed, err := e.issuer.Sign(token)
	assert.Nil(t, err)
	return "Bearer " + string(signed)
}

func TestLoginMissingFields(t *testing.T) {
	env := newAuthTestEnv(t)
	apitest.New().
		Handler(env.ressource.Router()).
		Post("/login").
		JSON(`{"email":"staff@example.com"}`).
		Expect(t).
		Body(`{"success":false,"error":"Email and password are required"}`).
		Status(http.StatusBadRequest).
		End()
}

func TestLoginUnknownAccount(t *testing.T) {
	env := newAuthTestEnv(t)
	env.store.On("AccountByEmail", mock.Anything, db.KindSuperAdmin, "nobody@example.com").
		Return(nil, db.ErrNotFound)
	env.store.On("AccountByEmail", mock.Anything, db.KindAdminUser, "nobody@example.com").
		Return(nil, db.ErrNotFound)
	apitest.New().
		Handler(env.ressource.Router()).
		Post("/login").
		JSON(`{"email":"nobody@example.com","password":"whatever"}`).
		Expect(t).
		Body(`{"success":false,"error":"Invalid email or password"}`).
		Status(http.StatusUnauthorized).
		End()
}

func TestAdminLoginWrongPasswordCountsDown(t *testing.T) {
	env := newAuthTestEnv(t)
	ad := &db.AccountData{
		ID:           3,
		Email:        "staff@example.com",
		Role:         "admin",
		Status:       "active",
		PasswordHash: hashedPassword(t, "correct"),
	}
	env.store.On("AccountByEmail", mock.Anything, db.KindAdminUser, "staff@example.com").
		Return(ad, nil)
	env.store.On("SetAccountFailureCount", mock.Anything, db.KindAdminUser, 3, 1).Return(nil)
	apitest.New().
		Handler(env.ressource.Router()).
		Post("/admin/login").
		JSON(`{"email":"staff@example.com","password":"wrong"}`).
		Expect(t).
		Body(`{"success":false,"error":"Invalid email or password. 4 attempts remaining."}`).
		Status(http.StatusUnauthorized).
		End()
}

func TestAdminLoginTripsLockout(t *testing.T) {
	env := newAuthTestEnv(t)
	ad := &db.AccountData{
		ID:                  3,
		Email:               "staff@example.com",
		Role:                "admin",
		Status:              "active",
		PasswordHash:        hashedPassword(t, "correct"),
		FailedLoginAttempts: 4,
	}
	env.store.On("AccountByEmail", mock.Anything, db.KindAdminUser, "staff@example.com").
		Return(ad, nil)
	env.store.On("LockAccount", mock.Anything, db.KindAdminUser, 3, mock.Anything).
		Return(true, nil)
	env.store.On("SetAccountFailureCount", mock.Anything, db.KindAdminUser, 3, 5).Return(nil)
	env.dispatcher.On("Dispatch", mock.Anything, mock.Anything).Return()
	apitest.New().
		Handler(env.ressource.Router()).
		Post("/admin/login").
		JSON(`{"email":"staff@example.com","password":"wrong"}`).
		Expect(t).
		Body(`{"success":false,"error":"Account locked due to too many failed login attempts. Please try again in 15 minutes."}`).
		Status(http.StatusForbidden).
		End()
}

func TestAdminLoginLockedAccount(t *testing.T) {
	env := newAuthTestEnv(t)
	until := time.Now().UTC().Add(10 * time.Minute)
	ad := &db.AccountData{
		ID:                 3,
		Email:              "staff@example.com",
		Role:               "admin",
		Status:             "active",
		PasswordHash:       hashedPassword(t, "correct"),
		AccountLockedUntil: &until,
	}
	env.store.On("AccountByEmail", mock.Anything, db.KindAdminUser, "staff@example.com").
		Return(ad, nil)
	apitest.New().
		Handler(env.ressource.Router()).
		Post("/admin/login").
		JSON(`{"email":"staff@example.com","password":"correct"}`).
		Expect(t).
		Body(`{"success":false,"error":"Account is locked. Please try again in 10 minutes."}`).
		Status(http.StatusForbidden).
		End()
}

func TestAdminLoginInactiveAccount(t *testing.T) {
	env := newAuthTestEnv(t)
	ad := &db.AccountData{
		ID:     3,
		Email:  "staff@example.com",
		Status: "inactive",
	}
	env.store.On("AccountByEmail", mock.Anything, db.KindAdminUser, "staff@example.com").
		Return(ad, nil)
	apitest.New().
		Handler(env.ressource.Router()).
		Post("/admin/login").
		JSON(`{"email":"staff@example.com","password":"correct"}`).
		Expect(t).
		Body(`{"success":false,"error":"Account is inactive"}`).
		Status(http.StatusForbidden).
		End()
}

func TestSuperAdminLogin(t *testing.T) {
	env := newAuthTestEnv(t)
	ad := &db.AccountData{
		ID:           1,
		Email:        "boss@example.com",
		FullName:     "The Boss",
		Status:       "active",
		PasswordHash: hashedPassword(t, "correct"),
	}
	env.store.On("AccountByEmail", mock.Anything, db.KindSuperAdmin, "boss@example.com").
		Return(ad, nil)
	env.store.On("RecordAccountLogin", mock.Anything, db.KindSuperAdmin, 1).Return(nil)
	env.dispatcher.On("Dispatch", mock.Anything, mock.Anything).Return()
	apitest.New().
		Handler(env.ressource.Router()).
		Post("/super-admin/login").
		JSON(`{"email":"boss@example.com","password":"correct"}`).
		Expect(t).
		Status(http.StatusOK).
		Assert(func(res *http.Response, req *http.Request) error {
			var body struct {
				Success bool   `json:"success"`
				Message string `json:"message"`
				Data    struct {
					Token string `json:"token"`
					User  struct {
						ID       int    `json:"id"`
						Email    string `json:"email"`
						FullName string `json:"full_name"`
						UserType string `json:"userType"`
					} `json:"user"`
				} `json:"data"`
			}
			if err := json.NewDecoder(res.Body).Decode(&body); err != nil {
				return err
			}
			if !body.Success || body.Message != "Login successful" {
				return fmt.Errorf("unexpected response envelope: %+v", body)
			}
			if body.Data.Token == "" {
				return fmt.Errorf("expected a signed token")
			}
			if body.Data.User.UserType != "super_admin" || body.Data.User.ID != 1 {
				return fmt.Errorf("unexpected user payload: %+v", body.Data.User)
			}
			return nil
		}).
		End()
}

func TestForgotPasswordNeverDisclosesAccounts(t *testing.T) {
	env := newAuthTestEnv(t)
	env.recovery.On("AccountByEmail", mock.Anything, db.KindSuperAdmin, "nobody@example.com").
		Return(nil, db.ErrNotFound)
	env.recovery.On("AccountByEmail", mock.Anything, db.KindAdminUser, "nobody@example.com").
		Return(nil, db.ErrNotFound)
	apitest.New().
		Handler(env.ressource.Router()).
		Post("/forgot-password").
		JSON(`{"email":"nobody@example.com"}`).
		Expect(t).
		Body(`{"success":true,"message":"If an account exists with this email, a password reset link has been sent."}`).
		Status(http.StatusOK).
		End()
}

func TestVerifyResetTokenMissing(t *testing.T) {
	env := newAuthTestEnv(t)
	apitest.New().
		Handler(env.ressource.Router()).
		Post("/verify-reset-token").
		JSON(`{}`).
		Expect(t).
		Body(`{"success":false,"error":"Token is required"}`).
		Status(http.StatusBadRequest).
		End()
}

func TestVerifyResetTokenUnknown(t *testing.T) {
	env := newAuthTestEnv(t)
	env.recovery.On("ResetTokenByDigest", mock.Anything, mock.Anything).
		Return(nil, db.ErrNotFound)
	apitest.New().
		Handler(env.ressource.Router()).
		Post("/verify-reset-token").
		JSON(`{"token":"deadbeef"}`).
		Expect(t).
		Body(`{"success":false,"error":"Invalid or expired reset token"}`).
		Status(http.StatusBadRequest).
		End()
}

func TestResetPasswordTooShort(t *testing.T) {
	env := newAuthTestEnv(t)
	apitest.New().
		Handler(env.ressource.Router()).
		Post("/reset-password").
		JSON(`{"token":"deadbeef","newPassword":"short"}`).
		Expect(t).
		Body(`{"success":false,"error":"Password must be at least 6 characters long"}`).
		Status(http.StatusBadRequest).
		End()
}

func TestMe(t *testing.T) {
	env := newAuthTestEnv(t)
	ad := &db.AccountData{
		ID:       3,
		Kind:     db.KindAdminUser,
		Email:    "staff@example.com",
		FullName: "Test Admin",
		Role:     "admin",
		Status:   "active",
	}
	env.store.On("AccountByID", mock.Anything, db.KindAdminUser, 3).Return(ad, nil)
	apitest.New().
		Handler(env.ressource.Router()).
		Get("/me").
		Header("Authorization", env.bearerFor(t, 3, "staff@example.com", "admin", "admin")).
		Expect(t).
		Body(`{"success":true,"data":{"user":{"id":3,"email":"staff@example.com","full_name":"Test Admin","role":"admin","userType":"admin"}}}`).
		Status(http.StatusOK).
		End()
}

func TestMeWithoutToken(t *testing.T) {
	env := newAuthTestEnv(t)
	apitest.New().
		Handler(env.ressource.Router()).
		Get("/me").
		Expect(t).
		Body(`{"success":false,"error":"No token provided"}`).
		Status(http.StatusUnauthorized).
		End()
}

func TestChangePasswordWrongCurrent(t *testing.T) {
	env := newAuthTestEnv(t)
	ad := &db.AccountData{
		ID:           1,
		Kind:         db.KindSuperAdmin,
		Email:        "boss@example.com",
		Status:       "active",
		PasswordHash: hashedPassword(t, "correct"),
	}
	env.store.On("AccountByID", mock.Anything, db.KindSuperAdmin, 1).Return(ad, nil)
	apitest.New().
		Handler(env.ressource.Router()).
		Post("/change-password").
		Header("Authorization", env.bearerFor(t, 1, "boss@example.com", "super_admin", "")).
		JSON(`{"currentPassword":"wrong","newPassword":"longenough"}`).
		Expect(t).
		Body(`{"success":false,"error":"Current password is incorrect"}`).
		Status(http.StatusUnauthorized).
		End()
}

func TestChangePassword(t *testing.T) {
	env := newAuthTestEnv(t)
	ad := &db.AccountData{
		ID:           1,
		Kind:         db.KindSuperAdmin,
		Email:        "boss@example.com",
		Status:       "active",
		PasswordHash: hashedPassword(t, "correct"),
	}
	env.store.On("AccountByID", mock.Anything, db.KindSuperAdmin, 1).Return(ad, nil)
	env.store.On("SetAccountPassword", mock.Anything, db.KindSuperAdmin, 1, mock.Anything).
		Return(true, nil)
	env.dispatcher.On("Dispatch", mock.Anything, mock.Anything).Return()
	apitest.New().
		Handler(env.ressource.Router()).
		Post("/change-password").
		Header("Authorization", env.bearerFor(t, 1, "boss@example.com", "super_admin", "")).
		JSON(`{"currentPassword":"correct","newPassword":"longenough"}`).
		Expect(t).
		Body(`{"success":true,"message":"Password changed successfully"}`).
		Status(http.StatusOK).
		End()
}
