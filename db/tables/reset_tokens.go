package tables

import "time"

// PasswordResetTokenTable represents the password_reset_tokens table,
// only the sha256 digest of the issued token is stored
type PasswordResetTokenTable struct {
	ID          int        `db:"id,omitempty"`
	AccountKind string     `db:"account_kind"`
	AccountID   int        `db:"account_id"`
	TokenDigest string     `db:"token_digest" json:"-"`
	ExpiresAt   time.Time  `db:"expires_at"`
	UsedAt      *time.Time `db:"used_at"`
	CreatedAt   time.Time  `db:"created_at"`
}
