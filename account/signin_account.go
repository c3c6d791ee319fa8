package account

import (
	"time"

	"github.com/providerdesk/providerdesk/db"
	"golang.org/x/crypto/bcrypt"
)

type accountSignin struct {
	ad *db.AccountData
}

// CanLogin returs true if the account is eligble for login
func (p *accountSignin) CanLogin() bool {
	return !p.IsLocked() && p.IsActive()
}

// IsLocked returns true if the account is locked
// this means there were too many failed login attempts recently
func (p *accountSignin) IsLocked() bool {
	return p.ad.AccountLockedUntil != nil && time.Now().UTC().Before(*p.ad.AccountLockedUntil)
}

// IsActive returns true if the account has not been deactivated
func (p *accountSignin) IsActive() bool {
	return p.ad.Status == "active"
}

// LockedUntil is only meaningful while IsLocked is true
func (p *accountSignin) LockedUntil() time.Time {
	if p.ad.AccountLockedUntil == nil {
		return time.Time{}
	}
	return *p.ad.AccountLockedUntil
}

// ValidatePassword validates the accounts password
func (p *accountSignin) ValidatePassword(password string) bool {
	res := bcrypt.CompareHashAndPassword(p.ad.PasswordHash, []byte(password))
	return res == nil
}

// Gets the current failed login count
func (p *accountSignin) CurrentFailureCount() int {
	return p.ad.FailedLoginAttempts
}

// ID - account ID within its kind table
func (p *accountSignin) ID() int {
	return p.ad.ID
}
