package db

import (
	"context"
	"database/sql"
	"errors"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/providerdesk/providerdesk/db/tables"
)

// AccountKind discriminates the two staff account tables,
// both share the same lockout and recovery semantics
type AccountKind string

const (
	// KindSuperAdmin maps to the super_admins table
	KindSuperAdmin AccountKind = "super_admin"
	// KindAdminUser maps to the admin_users table
	KindAdminUser AccountKind = "admin"
)

func (k AccountKind) table() string {
	if k == KindSuperAdmin {
		return "super_admins"
	}
	return "admin_users"
}

// AccountData is the signin view over either staff table
type AccountData struct {
	ID                  int
	Kind                AccountKind
	Email               string
	FullName            string
	Role                string
	Status              string
	PasswordHash        []byte
	FailedLoginAttempts int
	AccountLockedUntil  *time.Time
	LastLogin           *time.Time
}

func (d *DataStore) AccountByEmail(
	ctx context.Context,
	kind AccountKind,
	email string,
) (*AccountData, error) {
	cols := []string{
		"id",
		"email",
		"password_hash",
		"full_name",
		"status",
		"failed_login_attempts",
		"account_locked_until",
		"last_login",
	}
	if kind == KindAdminUser {
		cols = append(cols, "role")
	}
	q := sq.Select(cols...).From(kind.table()).Where(sq.Eq{"email": email})
	return d.scanAccount(ctx, kind, q)
}

func (d *DataStore) AccountByID(
	ctx context.Context,
	kind AccountKind,
	id int,
) (*AccountData, error) {
	cols := []string{
		"id",
		"email",
		"password_hash",
		"full_name",
		"status",
		"failed_login_attempts",
		"account_locked_until",
		"last_login",
	}
	if kind == KindAdminUser {
		cols = append(cols, "role")
	}
	q := sq.Select(cols...).From(kind.table()).Where(sq.Eq{"id": id})
	return d.scanAccount(ctx, kind, q)
}

func (d *DataStore) scanAccount(
	ctx context.Context,
	kind AccountKind,
	q sq.SelectBuilder,
) (*AccountData, error) {
	if kind == KindSuperAdmin {
		var entity tables.SuperAdminTable
		err := d.getStatement(ctx, &entity, q, nil)
		if err != nil {
			if errors.Is(err, sql.ErrNoRows) {
				return nil, ErrNotFound
			}
			return nil, err
		}
		return &AccountData{
			ID:                  entity.ID,
			Kind:                kind,
			Email:               entity.Email,
			FullName:            entity.FullName,
			Role:                "super_admin",
			Status:              entity.Status,
			PasswordHash:        []byte(entity.PasswordHash),
			FailedLoginAttempts: entity.FailedLoginAttempts,
			AccountLockedUntil:  entity.AccountLockedUntil,
			LastLogin:           entity.LastLogin,
		}, nil
	}
	var entity tables.AdminUserTable
	err := d.getStatement(ctx, &entity, q, nil)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &AccountData{
		ID:                  entity.ID,
		Kind:                kind,
		Email:               entity.Email,
		FullName:            entity.FullName,
		Role:                entity.Role,
		Status:              entity.Status,
		PasswordHash:        []byte(entity.PasswordHash),
		FailedLoginAttempts: entity.FailedLoginAttempts,
		AccountLockedUntil:  entity.AccountLockedUntil,
		LastLogin:           entity.LastLogin,
	}, nil
}

func (d *DataStore) IsAccountRegistred(
	ctx context.Context,
	kind AccountKind,
	email string,
) (bool, error) {
	return d.exists(ctx, kind.table(), sq.Eq{"email": email})
}

func (d *DataStore) SetAccountFailureCount(
	ctx context.Context,
	kind AccountKind,
	id int,
	count int,
) error {
	q := sq.
		Update(kind.table()).
		Set("updated_at", time.Now().UTC()).
		Set("failed_login_attempts", count).
		Where("id = ?", id)
	_, err := d.updateStatement(ctx, q, nil)
	return err
}

// LockAccount writes the lockout deadline, a stale deadline from an
// already elapsed lockout is simply overwritten
func (d *DataStore) LockAccount(
	ctx context.Context,
	kind AccountKind,
	id int,
	lockTime time.Time,
) (bool, error) {
	q := sq.
		Update(kind.table()).
		Set("updated_at", time.Now().UTC()).
		Set("account_locked_until", lockTime).
		Where("id = ?", id)
	rs, err := d.updateStatement(ctx, q, nil)
	if err != nil {
		return false, err
	}
	affected, err := rs.RowsAffected()
	return affected > 0, err
}

// UnlockAccount clears the lockout deadline and the failure counter,
// it is idempotent so the caller decides whether a missing row matters
func (d *DataStore) UnlockAccount(
	ctx context.Context,
	kind AccountKind,
	id int,
) (bool, error) {
	q := sq.
		Update(kind.table()).
		Set("updated_at", time.Now().UTC()).
		Set("account_locked_until", nil).
		Set("failed_login_attempts", 0).
		Where("id = ?", id)
	rs, err := d.updateStatement(ctx, q, nil)
	if err != nil {
		return false, err
	}
	affected, err := rs.RowsAffected()
	return affected > 0, err
}

// RecordAccountLogin stamps last_login and clears the failure counters
// after a successful signin
func (d *DataStore) RecordAccountLogin(ctx context.Context, kind AccountKind, id int) error {
	ts := time.Now().UTC()
	q := sq.
		Update(kind.table()).
		Set("updated_at", ts).
		Set("last_login", ts).
		Set("failed_login_attempts", 0).
		Set("account_locked_until", nil).
		Where("id = ?", id)
	_, err := d.updateStatement(ctx, q, nil)
	return err
}

// SetAccountPassword swaps the password hash and lifts any lockout,
// a succeeded reset always leaves a usable account behind
func (d *DataStore) SetAccountPassword(
	ctx context.Context,
	kind AccountKind,
	id int,
	passwordHash string,
) (bool, error) {
	q := sq.
		Update(kind.table()).
		Set("password_hash", passwordHash).
		Set("failed_login_attempts", 0).
		Set("account_locked_until", nil).
		Set("updated_at", time.Now().UTC()).
		Where("id = ?", id)
	rs, err := d.updateStatement(ctx, q, nil)
	if err != nil {
		return false, err
	}
	affected, err := rs.RowsAffected()
	return affected > 0, err
}
