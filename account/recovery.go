package account

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/providerdesk/providerdesk/config"
	"github.com/providerdesk/providerdesk/db"
	"github.com/providerdesk/providerdesk/db/tables"
	"github.com/providerdesk/providerdesk/events/event"
	"github.com/providerdesk/providerdesk/generator"
	"github.com/providerdesk/providerdesk/sanitize"
	"go.uber.org/zap"
)

// RecoveryStorer is the persistence surface of the password reset lifecycle
type RecoveryStorer interface {
	AccountByEmail(ctx context.Context, kind db.AccountKind, email string) (*db.AccountData, error)
	AccountByID(ctx context.Context, kind db.AccountKind, id int) (*db.AccountData, error)
	SetAccountPassword(ctx context.Context, kind db.AccountKind, id int, passwordHash string) (bool, error)
	InsertResetToken(ctx context.Context, kind db.AccountKind, accountID int, tokenDigest string, expiresAt time.Time) (int, error)
	ResetTokenByDigest(ctx context.Context, tokenDigest string) (*tables.PasswordResetTokenTable, error)
	ConsumeResetToken(ctx context.Context, id int) (bool, error)
	RetireResetTokens(ctx context.Context, kind db.AccountKind, accountID int) error
}

// RecoveryMailer delivers the reset link, failures are logged and swallowed
type RecoveryMailer interface {
	SendPasswordResetEmail(email string, name string, resetLink string) error
}

// RecoveryService drives the password reset token lifecycle
type RecoveryService struct {
	store      RecoveryStorer
	log        *zap.Logger
	cfg        *config.SecurityConfiguration
	mailer     RecoveryMailer
	dispatcher Dispatcher
}

func NewRecoveryService(store RecoveryStorer,
	log *zap.Logger,
	cfg *config.SecurityConfiguration,
	mailer RecoveryMailer,
	dispatcher Dispatcher) *RecoveryService {
	return &RecoveryService{
		store:      store,
		log:        log,
		cfg:        cfg,
		mailer:     mailer,
		dispatcher: dispatcher,
	}
}

// InitiateReset issues a reset token for the account behind the email.
// An unknown or inactive address is NOT an error, the caller answers
// with the same message either way so addresses cannot be enumerated.
func (g *RecoveryService) InitiateReset(ctx context.Context, email string) error {
	ad, err := g.resolveActiveAccount(ctx, email)
	if err != nil {
		if errors.Is(err, db.ErrNotFound) {
			g.log.Debug(
				"password reset requested for unknown email",
				sanitize.UserInputString("email", email),
			)
			return nil
		}
		return err
	}
	return g.issueReset(ctx, ad)
}

// InitiateResetForKind behaves like InitiateReset but only considers
// accounts of the given kind, used by the kind-scoped self-service
// endpoints
func (g *RecoveryService) InitiateResetForKind(
	ctx context.Context,
	kind db.AccountKind,
	email string,
) error {
	ad, err := g.store.AccountByEmail(ctx, kind, email)
	if err != nil {
		if errors.Is(err, db.ErrNotFound) {
			g.log.Debug(
				"password reset requested for unknown email",
				sanitize.UserInputString("email", email),
			)
			return nil
		}
		return err
	}
	if ad.Status != "active" {
		return nil
	}
	return g.issueReset(ctx, ad)
}

func (g *RecoveryService) issueReset(ctx context.Context, ad *db.AccountData) error {
	token := generator.New().CreateSecureToken()
	digest := generator.DigestToken(string(token))
	expiresAt := time.Now().UTC().Add(g.cfg.ResetTokenExpiry)
	_, err := g.store.InsertResetToken(ctx, ad.Kind, ad.ID, digest, expiresAt)
	if err != nil {
		return err
	}
	g.dispatcher.Dispatch(ctx, &event.AccountPasswordRecoveryRequested{
		AccountID:   ad.ID,
		AccountKind: string(ad.Kind),
	})

	resetLink := fmt.Sprintf("%s/reset-password?token=%s", g.cfg.FrontendURL, token)
	err = g.mailer.SendPasswordResetEmail(ad.Email, ad.FullName, resetLink)
	if err != nil {
		g.log.Warn("could not send password reset email", zap.Error(err))
		return nil
	}
	g.dispatcher.Dispatch(ctx, &event.EmailPasswordRecoverySent{
		AccountID:   ad.ID,
		AccountKind: string(ad.Kind),
		Email:       ad.Email,
		Sent:        time.Now().UTC(),
	})
	return nil
}

// resolveActiveAccount tries the super admin table first, a super admin
// shadowing an admin user with the same address wins
func (g *RecoveryService) resolveActiveAccount(
	ctx context.Context,
	email string,
) (*db.AccountData, error) {
	for _, kind := range []db.AccountKind{db.KindSuperAdmin, db.KindAdminUser} {
		ad, err := g.store.AccountByEmail(ctx, kind, email)
		if err != nil {
			if errors.Is(err, db.ErrNotFound) {
				continue
			}
			return nil, err
		}
		if ad.Status == "active" {
			return ad, nil
		}
	}
	return nil, db.ErrNotFound
}

// VerifyToken checks a reset token without consuming it and reports the
// email it belongs to, used and expired tokens yield distinct errors
func (g *RecoveryService) VerifyToken(ctx context.Context, token string) (string, error) {
	entity, err := g.lookupToken(ctx, token)
	if err != nil {
		return "", err
	}
	ad, err := g.store.AccountByID(ctx, db.AccountKind(entity.AccountKind), entity.AccountID)
	if err != nil {
		if errors.Is(err, db.ErrNotFound) {
			return "", ErrInvalidResetToken
		}
		return "", err
	}
	return ad.Email, nil
}

// ResetPassword redeems a reset token, each token redeems at most once
// and redeeming lifts any lockout on the account
func (g *RecoveryService) ResetPassword(
	ctx context.Context,
	token string,
	newPassword string,
) error {
	return g.redeemToken(ctx, token, newPassword, g.cfg.PasswordMinLength, "")
}

// SelfServiceReset redeems a super admin reset token, it enforces the
// stricter self-service minimum length and refuses tokens of other
// account kinds
func (g *RecoveryService) SelfServiceReset(
	ctx context.Context,
	token string,
	newPassword string,
) error {
	return g.redeemToken(ctx, token, newPassword,
		g.cfg.SelfServiceMinLength, db.KindSuperAdmin)
}

func (g *RecoveryService) redeemToken(
	ctx context.Context,
	token string,
	newPassword string,
	minLength int,
	wantKind db.AccountKind,
) error {
	if len(newPassword) < minLength {
		return ErrPasswordTooShort
	}
	entity, err := g.lookupToken(ctx, token)
	if err != nil {
		return err
	}
	kind := db.AccountKind(entity.AccountKind)
	if wantKind != "" && kind != wantKind {
		return ErrInvalidResetToken
	}
	ad, err := g.store.AccountByID(ctx, kind, entity.AccountID)
	if err != nil {
		if errors.Is(err, db.ErrNotFound) {
			return ErrInvalidResetToken
		}
		return err
	}

	// consume before the swap, a concurrent redeem of the same token
	// loses here instead of silently double-writing the hash
	ok, err := g.store.ConsumeResetToken(ctx, entity.ID)
	if err != nil {
		return err
	}
	if !ok {
		return ErrResetTokenUsed
	}

	hash, err := HashPassword(newPassword)
	if err != nil {
		return err
	}
	_, err = g.store.SetAccountPassword(ctx, kind, ad.ID, hash)
	if err != nil {
		return err
	}
	// the reset went through, any sibling link mailed earlier dies now
	if err := g.store.RetireResetTokens(ctx, kind, ad.ID); err != nil {
		g.log.Warn("could not retire outstanding reset tokens", zap.Error(err))
	}
	g.dispatcher.Dispatch(ctx, &event.AccountPasswordRecoveryUsed{
		AccountID:   ad.ID,
		AccountKind: string(kind),
		Email:       ad.Email,
	})
	g.dispatcher.Dispatch(ctx, &event.AccountPasswordChanged{
		AccountID:   ad.ID,
		AccountKind: string(kind),
	})
	return nil
}

func (g *RecoveryService) lookupToken(
	ctx context.Context,
	token string,
) (*tables.PasswordResetTokenTable, error) {
	if token == "" {
		return nil, ErrInvalidResetToken
	}
	digest := generator.DigestToken(token)
	entity, err := g.store.ResetTokenByDigest(ctx, digest)
	if err != nil {
		if errors.Is(err, db.ErrNotFound) {
			return nil, ErrInvalidResetToken
		}
		return nil, err
	}
	if entity.UsedAt != nil {
		return nil, ErrResetTokenUsed
	}
	if entity.ExpiresAt.Before(time.Now().UTC()) {
		return nil, ErrResetTokenExpired
	}
	return entity, nil
}
