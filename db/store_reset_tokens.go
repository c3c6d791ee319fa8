package db

import (
	"context"
	"database/sql"
	"errors"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/providerdesk/providerdesk/db/tables"
	"go.uber.org/zap"
)

// InsertResetToken stores a new reset token digest, every outstanding
// token of the account stays redeemable until one of them is consumed
func (d *DataStore) InsertResetToken(
	ctx context.Context,
	kind AccountKind,
	accountID int,
	tokenDigest string,
	expiresAt time.Time,
) (int, error) {
	insert := sq.Insert("password_reset_tokens").SetMap(map[string]interface{}{
		"account_kind": string(kind),
		"account_id":   accountID,
		"token_digest": tokenDigest,
		"expires_at":   expiresAt,
		"created_at":   time.Now().UTC(),
	}).Suffix("RETURNING id")
	var id int
	err := d.returningInsertStatement(ctx, &id, insert, nil)
	if err != nil {
		d.log.Error("could not insert reset token", zap.Error(err))
		return 0, err
	}
	return id, nil
}

// ResetTokenByDigest loads a reset token row by its digest regardless
// of its state, the caller decides between used, expired and live
func (d *DataStore) ResetTokenByDigest(
	ctx context.Context,
	tokenDigest string,
) (*tables.PasswordResetTokenTable, error) {
	var entity tables.PasswordResetTokenTable
	q := sq.Select("*").
		From("password_reset_tokens").
		Where(sq.Eq{"token_digest": tokenDigest})
	err := d.getStatement(ctx, &entity, q, nil)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &entity, nil
}

// ConsumeResetToken marks a token as used, returns false when it
// was already redeemed by a concurrent request
func (d *DataStore) ConsumeResetToken(ctx context.Context, id int) (bool, error) {
	q := sq.Update("password_reset_tokens").
		Set("used_at", time.Now().UTC()).
		Where("id = ? AND used_at IS NULL", id)
	rs, err := d.updateStatement(ctx, q, nil)
	if err != nil {
		return false, err
	}
	affected, err := rs.RowsAffected()
	return affected > 0, err
}

// RetireResetTokens marks every still-open token of the account as
// used, called after a successful reset so no sibling link stays live
func (d *DataStore) RetireResetTokens(
	ctx context.Context,
	kind AccountKind,
	accountID int,
) error {
	q := sq.Update("password_reset_tokens").
		Set("used_at", time.Now().UTC()).
		Where(
			"account_kind = ? AND account_id = ? AND used_at IS NULL",
			string(kind),
			accountID,
		)
	_, err := d.updateStatement(ctx, q, nil)
	return err
}

// PurgeExpiredResetTokens deletes tokens whose expiry lies in the past,
// used tokens are kept for the audit trail
func (d *DataStore) PurgeExpiredResetTokens(ctx context.Context) (int64, error) {
	del := sq.Delete("password_reset_tokens").
		Where("expires_at < ? AND used_at IS NULL", time.Now().UTC())
	rs, err := d.deleteStatement(ctx, del, nil)
	if err != nil {
		return 0, err
	}
	return rs.RowsAffected()
}
