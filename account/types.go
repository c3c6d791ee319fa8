package account

import (
	"errors"
	"fmt"
	"math"
	"time"

	"github.com/providerdesk/providerdesk/db"
)

var (
	// ErrEntityDoesNotExist is returned when no account exists for the lookup
	ErrEntityDoesNotExist = errors.New("entity does not exist")
	// ErrInvalidCredentials is returned for a wrong email or password,
	// it deliberately carries no detail about which of the two was wrong
	ErrInvalidCredentials = errors.New("invalid credentials")
	// ErrAccountInactive is returned for disabled accounts
	ErrAccountInactive = errors.New("account is inactive")
	// ErrAccountNowLocked is returned on the failed attempt that trips the lockout
	ErrAccountNowLocked = errors.New("account locked due to too many failed login attempts")

	// ErrInvalidResetToken is returned for unknown reset tokens
	ErrInvalidResetToken = errors.New("invalid or expired reset token")
	// ErrResetTokenUsed is returned for already redeemed reset tokens
	ErrResetTokenUsed = errors.New("reset token has already been used")
	// ErrResetTokenExpired is returned for reset tokens past their lifetime
	ErrResetTokenExpired = errors.New("reset token has expired")

	// ErrPasswordTooShort is returned when a new password misses the minimum length
	ErrPasswordTooShort = errors.New("password does not meet the minimum length")
)

// AttemptsRemainingError is a failed credential check that still leaves
// login attempts before the lockout trips
type AttemptsRemainingError struct {
	Remaining int
}

func (e *AttemptsRemainingError) Error() string {
	return fmt.Sprintf("invalid credentials, %d attempts remaining", e.Remaining)
}

func (e *AttemptsRemainingError) Unwrap() error {
	return ErrInvalidCredentials
}

// LockedError is returned while a lockout window is still open
type LockedError struct {
	Until time.Time
}

func (e *LockedError) Error() string {
	return fmt.Sprintf("account is locked until %s", e.Until.Format(time.RFC3339))
}

// MinutesRemaining reports the remaining lockout in whole minutes,
// always rounded up so the caller never understates the wait
func (e *LockedError) MinutesRemaining() int {
	remaining := time.Until(e.Until)
	if remaining <= 0 {
		return 0
	}
	return int(math.Ceil(remaining.Minutes()))
}

// SignedInAccount is the authenticated principal handed to the token issuer
type SignedInAccount struct {
	ID       int
	Kind     db.AccountKind
	Email    string
	FullName string
	Role     string
}

// UserType is the token claim value for the account kind
func (s *SignedInAccount) UserType() string {
	return string(s.Kind)
}
