package auth

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/go-chi/render"
	"github.com/providerdesk/providerdesk/db"
	"github.com/providerdesk/providerdesk/tokens"
	"go.uber.org/zap"
)

type contextKey struct {
	name string
}

var PrincipalContextKey = &contextKey{"Principal"}

var ErrNoPrincipal = errors.New("no principal in request context")

// Principal is the authenticated account attached to a request, it
// reflects the freshness read and not just the token claims
type Principal struct {
	ID       int
	Kind     db.AccountKind
	Email    string
	FullName string
	Role     string
}

func (p *Principal) IsSuperAdmin() bool {
	return p.Kind == db.KindSuperAdmin
}

// UserType mirrors the userType token claim
func (p *Principal) UserType() string {
	return string(p.Kind)
}

// FromContext pulls the authenticated principal out of the request
// context, it is only present behind the Authenticator middleware
func FromContext(ctx context.Context) (*Principal, error) {
	principal, ok := ctx.Value(PrincipalContextKey).(*Principal)
	if !ok || principal == nil {
		return nil, ErrNoPrincipal
	}
	return principal, nil
}

type Middleware struct {
	log      *zap.Logger
	verifier *tokens.TokenVerifier
}

func NewMiddleware(log *zap.Logger, verifier *tokens.TokenVerifier) *Middleware {
	return &Middleware{log: log, verifier: verifier}
}

type unauthorizedResponse struct {
	Success bool   `json:"success"`
	Error   string `json:"error"`
	status  int
}

func (e *unauthorizedResponse) Render(w http.ResponseWriter, r *http.Request) error {
	render.Status(r, e.status)
	return nil
}

func deny(w http.ResponseWriter, r *http.Request, status int, message string) {
	_ = render.Render(w, r, &unauthorizedResponse{
		Success: false,
		Error:   message,
		status:  status,
	})
}

func bearerToken(r *http.Request) string {
	val := r.Header.Get("Authorization")
	if len(val) > 7 && strings.EqualFold(val[0:6], "BEARER") {
		return strings.TrimSpace(val[7:])
	}
	return ""
}

// Authenticator requires a valid bearer token whose account still
// exists and is active, the principal is stored in the context
func (m *Middleware) Authenticator(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		token := bearerToken(r)
		if token == "" {
			deny(w, r, http.StatusUnauthorized, "No token provided")
			return
		}
		_, account, err := m.verifier.ValidateAccessTokenDetails(r.Context(), token)
		if err != nil {
			switch {
			case errors.Is(err, tokens.ErrAccountNotUsable):
				deny(w, r, http.StatusUnauthorized, "Account not found or inactive")
			case errors.Is(err, tokens.ErrTokenExpired),
				errors.Is(err, tokens.ErrInvalidToken):
				deny(w, r, http.StatusUnauthorized, "Invalid or expired token")
			default:
				m.log.Error("token validation failed", zap.Error(err))
				deny(w, r, http.StatusUnauthorized, "Invalid or expired token")
			}
			return
		}
		principal := &Principal{
			ID:       account.ID,
			Kind:     account.Kind,
			Email:    account.Email,
			FullName: account.FullName,
			Role:     account.Role,
		}
		ctx := context.WithValue(r.Context(), PrincipalContextKey, principal)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// RequireSuperAdmin only lets super admins through, it has to sit
// behind the Authenticator
func (m *Middleware) RequireSuperAdmin(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		principal, err := FromContext(r.Context())
		if err != nil {
			deny(w, r, http.StatusUnauthorized, "No token provided")
			return
		}
		if !principal.IsSuperAdmin() {
			deny(w, r, http.StatusForbidden,
				"Access denied. Super admin privileges required.")
			return
		}
		next.ServeHTTP(w, r)
	})
}

// RequireAdmin only lets admin users through, super admins have their
// own endpoints and are refused here, it has to sit behind the
// Authenticator
func (m *Middleware) RequireAdmin(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		principal, err := FromContext(r.Context())
		if err != nil {
			deny(w, r, http.StatusUnauthorized, "No token provided")
			return
		}
		if principal.Kind != db.KindAdminUser {
			deny(w, r, http.StatusForbidden,
				"Access denied. Admin privileges required.")
			return
		}
		next.ServeHTTP(w, r)
	})
}
