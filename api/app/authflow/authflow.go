package authflow

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"
	"github.com/providerdesk/providerdesk/account"
	"github.com/providerdesk/providerdesk/api/auth"
	"github.com/providerdesk/providerdesk/config"
	"github.com/providerdesk/providerdesk/db"
	"github.com/providerdesk/providerdesk/sanitize"
	"github.com/providerdesk/providerdesk/tokens"
	"go.uber.org/zap"
)

// AuthRessource habours the sign-in and password recovery endpoints
type AuthRessource struct {
	log        *zap.Logger
	cfg        *config.Configuration
	signin     *account.SigninService
	recovery   *account.RecoveryService
	issuer     *tokens.TokenIssuer
	middleware *auth.Middleware
}

func NewAuthRessource(log *zap.Logger,
	cfg *config.Configuration,
	signin *account.SigninService,
	recovery *account.RecoveryService,
	issuer *tokens.TokenIssuer,
	middleware *auth.Middleware) *AuthRessource {
	return &AuthRessource{
		log:        log,
		cfg:        cfg,
		signin:     signin,
		recovery:   recovery,
		issuer:     issuer,
		middleware: middleware,
	}
}

func (a *AuthRessource) Router() *chi.Mux {
	r := chi.NewRouter()
	r.Post("/login", a.login)
	r.Post("/super-admin/login", a.superAdminLogin)
	r.Post("/admin/login", a.adminLogin)
	r.Post("/forgot-password", a.forgotPassword)
	r.Post("/verify-reset-token", a.verifyResetToken)
	r.Post("/reset-password", a.resetPassword)
	r.Group(func(gr chi.Router) {
		gr.Use(a.middleware.Authenticator)
		gr.Get("/me", a.me)
		gr.Post("/change-password", a.changePassword)
	})
	return r
}

func (a *AuthRessource) login(w http.ResponseWriter, r *http.Request) {
	a.handleLogin(w, r, func(email, password string) (*account.SignedInAccount, error) {
		return a.signin.SignInAny(r.Context(), email, password)
	})
}

func (a *AuthRessource) superAdminLogin(w http.ResponseWriter, r *http.Request) {
	a.handleLogin(w, r, func(email, password string) (*account.SignedInAccount, error) {
		return a.signin.SignIn(r.Context(), db.KindSuperAdmin, email, password)
	})
}

func (a *AuthRessource) adminLogin(w http.ResponseWriter, r *http.Request) {
	a.handleLogin(w, r, func(email, password string) (*account.SignedInAccount, error) {
		return a.signin.SignIn(r.Context(), db.KindAdminUser, email, password)
	})
}

func (a *AuthRessource) handleLogin(
	w http.ResponseWriter,
	r *http.Request,
	signIn func(email, password string) (*account.SignedInAccount, error),
) {
	var req *loginRequest
	err := json.NewDecoder(r.Body).Decode(&req)
	if err != nil || req == nil || req.Email == "" || req.Password == "" {
		_ = render.Render(w, r,
			createError("Email and password are required", http.StatusBadRequest))
		return
	}
	signedIn, err := signIn(req.Email, req.Password)
	if err != nil {
		a.renderSigninError(w, r, req.Email, err)
		return
	}
	token, err := a.issuer.IssueAccessToken(
		signedIn.ID,
		signedIn.Email,
		signedIn.UserType(),
		signedIn.Role,
	)
	if err != nil {
		a.log.Error("could not issue access token", zap.Error(err))
		_ = render.Render(w, r, createError("Login failed", http.StatusInternalServerError))
		return
	}
	signed, err := a.issuer.Sign(token)
	if err != nil {
		a.log.Error("could not sign access token", zap.Error(err))
		_ = render.Render(w, r, createError("Login failed", http.StatusInternalServerError))
		return
	}
	err = render.Render(w, r, &genericSuccessResponse{
		Success: true,
		Message: "Login successful",
		Data: &loginPayload{
			Token: string(signed),
			User: &signedInUser{
				ID:       signedIn.ID,
				Email:    signedIn.Email,
				FullName: signedIn.FullName,
				Role:     signedIn.Role,
				UserType: signedIn.UserType(),
			},
		},
	})
	if err != nil {
		a.log.Error("unable to render response", zap.Error(err))
	}
}

func (a *AuthRessource) renderSigninError(
	w http.ResponseWriter,
	r *http.Request,
	email string,
	err error,
) {
	var attempts *account.AttemptsRemainingError
	var locked *account.LockedError
	switch {
	case errors.As(err, &attempts):
		_ = render.Render(w, r, createError(
			fmt.Sprintf("Invalid email or password. %d attempts remaining.", attempts.Remaining),
			http.StatusUnauthorized))
	case errors.As(err, &locked):
		_ = render.Render(w, r, createError(
			fmt.Sprintf("Account is locked. Please try again in %d minutes.",
				locked.MinutesRemaining()),
			http.StatusForbidden))
	case errors.Is(err, account.ErrAccountNowLocked):
		_ = render.Render(w, r, createError(
			fmt.Sprintf(
				"Account locked due to too many failed login attempts. Please try again in %d minutes.",
				int(a.cfg.Security.LockoutDuration.Minutes())),
			http.StatusForbidden))
	case errors.Is(err, account.ErrAccountInactive):
		_ = render.Render(w, r, createError("Account is inactive", http.StatusForbidden))
	case errors.Is(err, account.ErrInvalidCredentials):
		_ = render.Render(w, r,
			createError("Invalid email or password", http.StatusUnauthorized))
	default:
		a.log.Error("login failed",
			sanitize.UserInputString("email", email), zap.Error(err))
		_ = render.Render(w, r, createError("Login failed", http.StatusInternalServerError))
	}
}

func (a *AuthRessource) forgotPassword(w http.ResponseWriter, r *http.Request) {
	var req *forgotPasswordRequest
	err := json.NewDecoder(r.Body).Decode(&req)
	if err != nil || req == nil || req.Email == "" {
		_ = render.Render(w, r, createError("Email is required", http.StatusBadRequest))
		return
	}
	err = a.recovery.InitiateReset(r.Context(), req.Email)
	if err != nil {
		a.log.Error("could not process password reset request", zap.Error(err))
		_ = render.Render(w, r, createError(
			"Failed to process password reset request",
			http.StatusInternalServerError))
		return
	}
	// the response never discloses whether the address is known
	err = render.Render(w, r, &genericSuccessResponse{
		Success: true,
		Message: "If an account exists with this email, a password reset link has been sent.",
	})
	if err != nil {
		a.log.Error("unable to render response", zap.Error(err))
	}
}

func (a *AuthRessource) verifyResetToken(w http.ResponseWriter, r *http.Request) {
	var req *verifyTokenRequest
	err := json.NewDecoder(r.Body).Decode(&req)
	if err != nil || req == nil || req.Token == "" {
		_ = render.Render(w, r, createError("Token is required", http.StatusBadRequest))
		return
	}
	email, err := a.recovery.VerifyToken(r.Context(), req.Token)
	if err != nil {
		a.renderTokenError(w, r, err, "Failed to verify reset token")
		return
	}
	err = render.Render(w, r, &genericSuccessResponse{
		Success: true,
		Message: "Token is valid",
		Data:    map[string]string{"email": email},
	})
	if err != nil {
		a.log.Error("unable to render response", zap.Error(err))
	}
}

func (a *AuthRessource) resetPassword(w http.ResponseWriter, r *http.Request) {
	var req *resetPasswordRequest
	err := json.NewDecoder(r.Body).Decode(&req)
	if err != nil || req == nil || req.Token == "" || req.NewPassword == "" {
		_ = render.Render(w, r,
			createError("Token and new password are required", http.StatusBadRequest))
		return
	}
	err = a.recovery.ResetPassword(r.Context(), req.Token, req.NewPassword)
	if err != nil {
		if errors.Is(err, account.ErrPasswordTooShort) {
			_ = render.Render(w, r, createError(
				fmt.Sprintf("Password must be at least %d characters long",
					a.cfg.Security.PasswordMinLength),
				http.StatusBadRequest))
			return
		}
		a.renderTokenError(w, r, err, "Failed to reset password")
		return
	}
	err = render.Render(w, r, &genericSuccessResponse{
		Success: true,
		Message: "Password has been reset successfully",
	})
	if err != nil {
		a.log.Error("unable to render response", zap.Error(err))
	}
}

func (a *AuthRessource) renderTokenError(
	w http.ResponseWriter,
	r *http.Request,
	err error,
	fallback string,
) {
	switch {
	case errors.Is(err, account.ErrResetTokenUsed):
		_ = render.Render(w, r, createError(
			"This reset token has already been used", http.StatusBadRequest))
	case errors.Is(err, account.ErrResetTokenExpired):
		_ = render.Render(w, r,
			createError("Reset token has expired", http.StatusBadRequest))
	case errors.Is(err, account.ErrInvalidResetToken):
		_ = render.Render(w, r,
			createError("Invalid or expired reset token", http.StatusBadRequest))
	default:
		a.log.Error("reset token handling failed", zap.Error(err))
		_ = render.Render(w, r, createError(fallback, http.StatusInternalServerError))
	}
}

func (a *AuthRessource) me(w http.ResponseWriter, r *http.Request) {
	principal, err := auth.FromContext(r.Context())
	if err != nil {
		_ = render.Render(w, r, createError("No token provided", http.StatusUnauthorized))
		return
	}
	err = render.Render(w, r, &genericSuccessResponse{
		Success: true,
		Data: map[string]interface{}{
			"user": &signedInUser{
				ID:       principal.ID,
				Email:    principal.Email,
				FullName: principal.FullName,
				Role:     principal.Role,
				UserType: principal.UserType(),
			},
		},
	})
	if err != nil {
		a.log.Error("unable to render response", zap.Error(err))
	}
}

func (a *AuthRessource) changePassword(w http.ResponseWriter, r *http.Request) {
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
	err = a.signin.ChangePassword(
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
				fmt.Sprintf("New password must be at least %d characters long",
					a.cfg.Security.SelfServiceMinLength),
				http.StatusBadRequest))
		case errors.Is(err, account.ErrInvalidCredentials):
			_ = render.Render(w, r,
				createError("Current password is incorrect", http.StatusUnauthorized))
		case errors.Is(err, account.ErrAccountInactive):
			_ = render.Render(w, r,
				createError("Account is inactive", http.StatusForbidden))
		default:
			a.log.Error("could not change password", zap.Error(err))
			_ = render.Render(w, r,
				createError("Failed to change password", http.StatusInternalServerError))
		}
		return
	}
	err = render.Render(w, r, &genericSuccessResponse{
		Success: true,
		Message: "Password changed successfully",
	})
	if err != nil {
		a.log.Error("unable to render response", zap.Error(err))
	}
}
