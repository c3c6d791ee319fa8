package account

import (
	"context"
	"errors"
	"time"

	"github.com/providerdesk/providerdesk/config"
	"github.com/providerdesk/providerdesk/db"
	"github.com/providerdesk/providerdesk/events"
	"github.com/providerdesk/providerdesk/events/event"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

// bcryptCost matches the work factor the existing hashes were created with
const bcryptCost = 10

// AccountStorer is the persistence surface of the signin flows
type AccountStorer interface {
	AccountByEmail(ctx context.Context, kind db.AccountKind, email string) (*db.AccountData, error)
	AccountByID(ctx context.Context, kind db.AccountKind, id int) (*db.AccountData, error)
	SetAccountFailureCount(ctx context.Context, kind db.AccountKind, id int, count int) error
	LockAccount(ctx context.Context, kind db.AccountKind, id int, until time.Time) (bool, error)
	UnlockAccount(ctx context.Context, kind db.AccountKind, id int) (bool, error)
	RecordAccountLogin(ctx context.Context, kind db.AccountKind, id int) error
	SetAccountPassword(ctx context.Context, kind db.AccountKind, id int, passwordHash string) (bool, error)
}

// Dispatcher notifies listeners about account activity
type Dispatcher interface {
	Dispatch(ctx context.Context, ev events.Event)
}

// SigninService runs the credential check and lockout bookkeeping
// for both staff account kinds
type SigninService struct {
	store      AccountStorer
	log        *zap.Logger
	cfg        *config.SecurityConfiguration
	dispatcher Dispatcher
}

func NewSigninService(store AccountStorer,
	log *zap.Logger,
	cfg *config.SecurityConfiguration,
	dispatcher Dispatcher) *SigninService {
	return &SigninService{
		store:      store,
		log:        log,
		cfg:        cfg,
		dispatcher: dispatcher,
	}
}

// HashPassword hashes a plaintext password with the shared work factor
func HashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcryptCost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}

// SignIn signs in an account of the given kind with the supplied credentials.
// A failed password check counts towards the lockout, the attempt that
// reaches the configured maximum trips it.
func (g *SigninService) SignIn(
	ctx context.Context,
	kind db.AccountKind,
	email string,
	password string,
) (*SignedInAccount, error) {
	ad, err := g.store.AccountByEmail(ctx, kind, email)
	if err != nil {
		if errors.Is(err, db.ErrNotFound) {
			return nil, ErrInvalidCredentials
		}
		g.log.Error("unexpected data store error", zap.Error(err))
		return nil, err
	}
	provider := &accountSignin{ad: ad}
	if !provider.IsActive() {
		return nil, ErrAccountInactive
	}
	if provider.IsLocked() {
		return nil, &LockedError{Until: provider.LockedUntil()}
	}
	if !provider.ValidatePassword(password) {
		count := provider.CurrentFailureCount() + 1
		if count >= g.cfg.MaxLoginAttempts {
			until := time.Now().UTC().Add(g.cfg.LockoutDuration)
			locked, err := g.store.LockAccount(ctx, kind, provider.ID(), until)
			if err != nil {
				g.log.Error("could not lock account after failure count exceeded", zap.Error(err))
			} else if !locked {
				g.log.Error("lockout update hit no row",
					zap.Int("id", provider.ID()),
					zap.String("kind", string(kind)))
			}
			err = g.store.SetAccountFailureCount(ctx, kind, provider.ID(), count)
			if err != nil {
				g.log.Error("unable to set failure count", zap.Error(err))
			}
			g.dispatcher.Dispatch(ctx, &event.AccountLocked{
				AccountID:   provider.ID(),
				AccountKind: string(kind),
				LockedUntil: until,
			})
			return nil, ErrAccountNowLocked
		}
		err = g.store.SetAccountFailureCount(ctx, kind, provider.ID(), count)
		if err != nil {
			g.log.Error("unable to set failure count", zap.Error(err))
		}
		return nil, &AttemptsRemainingError{Remaining: g.cfg.MaxLoginAttempts - count}
	}
	err = g.store.RecordAccountLogin(ctx, kind, provider.ID())
	if err != nil {
		g.log.Error("unable to record login", zap.Error(err))
	}
	g.dispatcher.Dispatch(ctx, &event.AccountLogin{
		AccountID:   provider.ID(),
		AccountKind: string(kind),
	})
	return &SignedInAccount{
		ID:       provider.ID(),
		Kind:     kind,
		Email:    ad.Email,
		FullName: ad.FullName,
		Role:     ad.Role,
	}, nil
}

// SignInAny resolves the account kind server side, super admins win
// when the same address exists in both tables
func (g *SigninService) SignInAny(
	ctx context.Context,
	email string,
	password string,
) (*SignedInAccount, error) {
	signedIn, err := g.SignIn(ctx, db.KindSuperAdmin, email, password)
	if err == nil {
		return signedIn, nil
	}
	if errors.Is(err, ErrInvalidCredentials) {
		if _, lookupErr := g.store.AccountByEmail(ctx, db.KindSuperAdmin, email); errors.Is(
			lookupErr,
			db.ErrNotFound,
		) {
			return g.SignIn(ctx, db.KindAdminUser, email, password)
		}
	}
	return nil, err
}

// Validate validates a password without touching the lockout counters,
// it exclusively serves the change-password flow
func (g *SigninService) Validate(
	ctx context.Context,
	kind db.AccountKind,
	id int,
	password string,
) error {
	ad, err := g.store.AccountByID(ctx, kind, id)
	if err != nil {
		if errors.Is(err, db.ErrNotFound) {
			return ErrEntityDoesNotExist
		}
		g.log.Error("unexpected data store error", zap.Error(err))
		return err
	}
	provider := &accountSignin{ad: ad}
	if !provider.CanLogin() {
		return ErrAccountInactive
	}
	if !provider.ValidatePassword(password) {
		return ErrInvalidCredentials
	}
	return nil
}

// ChangePassword swaps the password after the current one has been validated
func (g *SigninService) ChangePassword(
	ctx context.Context,
	kind db.AccountKind,
	id int,
	currentPassword string,
	newPassword string,
) error {
	if len(newPassword) < g.cfg.SelfServiceMinLength {
		return ErrPasswordTooShort
	}
	err := g.Validate(ctx, kind, id, currentPassword)
	if err != nil {
		return err
	}
	hash, err := HashPassword(newPassword)
	if err != nil {
		return err
	}
	ok, err := g.store.SetAccountPassword(ctx, kind, id, hash)
	if err != nil {
		return err
	}
	if !ok {
		return ErrEntityDoesNotExist
	}
	g.dispatcher.Dispatch(ctx, &event.AccountPasswordChanged{
		AccountID:   id,
		AccountKind: string(kind),
	})
	return nil
}

// Unlock lifts a lockout and clears the failure counters, unlocking an
// account that is not locked succeeds as a no-op
func (g *SigninService) Unlock(ctx context.Context, kind db.AccountKind, id int) error {
	_, err := g.store.AccountByID(ctx, kind, id)
	if err != nil {
		if errors.Is(err, db.ErrNotFound) {
			return ErrEntityDoesNotExist
		}
		return err
	}
	if _, err := g.store.UnlockAccount(ctx, kind, id); err != nil {
		return err
	}
	g.dispatcher.Dispatch(ctx, &event.AccountUnlocked{
		AccountID:   id,
		AccountKind: string(kind),
	})
	return nil
}

// AccountFromSubject loads the fresh account behind a verified token subject
func (g *SigninService) AccountFromSubject(
	ctx context.Context,
	kind db.AccountKind,
	id int,
) (*SignedInAccount, error) {
	ad, err := g.store.AccountByID(ctx, kind, id)
	if err != nil {
		if errors.Is(err, db.ErrNotFound) {
			return nil, ErrEntityDoesNotExist
		}
		return nil, err
	}
	provider := &accountSignin{ad: ad}
	if !provider.IsActive() {
		return nil, ErrAccountInactive
	}
	return &SignedInAccount{
		ID:       provider.ID(),
		Kind:     kind,
		Email:    ad.Email,
		FullName: ad.FullName,
		Role:     ad.Role,
	}, nil
}
