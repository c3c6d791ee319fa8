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

// SuperAdmins lists super admins with optional search and status filters
func (d *DataStore) SuperAdmins(
	ctx context.Context,
	opts ListOptions,
) ([]*tables.SuperAdminTable, int, error) {
	opts.normalize()

	applyWhere := func(q sq.SelectBuilder) sq.SelectBuilder {
		if opts.Search != "" {
			q = q.Where(searchPredicate(opts.Search, "full_name", "email"))
		}
		if opts.Status != "" {
			q = q.Where(sq.Eq{"status": opts.Status})
		}
		return q
	}

	var c int
	count := applyWhere(sq.Select("COUNT(*)").From("super_admins"))
	err := count.RunWith(d.db).Scan(&c)
	if err != nil {
		return nil, 0, err
	}
	offset := opts.offset()
	if c < int(offset) {
		return []*tables.SuperAdminTable{}, c, nil
	}

	var entities []*tables.SuperAdminTable
	q := sq.
		Select(
			"id",
			"email",
			"full_name",
			"status",
			"phone",
			"last_login",
			"failed_login_attempts",
			"account_locked_until",
			"created_at",
			"updated_at",
		).
		From("super_admins")
	q = applyWhere(q)
	q = q.OrderBy("created_at DESC").Offset(offset).Limit(uint64(opts.PageSize))
	err = d.selectStatement(ctx, &entities, q, nil)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, 0, ErrNotFound
		}
		return nil, 0, err
	}
	return entities, c, nil
}

func (d *DataStore) SuperAdmin(ctx context.Context, id int) (*tables.SuperAdminTable, error) {
	var entity tables.SuperAdminTable
	q := sq.Select("*").From("super_admins").Where(sq.Eq{"id": id})
	err := d.getStatement(ctx, &entity, q, nil)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &entity, nil
}

func (d *DataStore) InsertSuperAdmin(
	ctx context.Context,
	email string,
	passwordHash string,
	fullName string,
	status string,
	phone *string,
) (int, error) {
	exists, err := d.exists(ctx, "super_admins", sq.Eq{"email": email})
	if err != nil {
		return 0, err
	}
	if exists {
		return 0, ErrAlreadyExists
	}
	insert := sq.Insert("super_admins").SetMap(map[string]interface{}{
		"email":         email,
		"password_hash": passwordHash,
		"full_name":     fullName,
		"status":        status,
		"phone":         phone,
		"created_at":    time.Now().UTC(),
	}).Suffix("RETURNING id")
	var id int
	err = d.returningInsertStatement(ctx, &id, insert, nil)
	if err != nil {
		d.log.Error("could not insert super admin", zap.Error(err))
		return 0, err
	}
	return id, nil
}

// UpdateSuperAdmin applies a partial update built from the supplied
// columns only, an empty set is rejected with ErrNoUpdates
func (d *DataStore) UpdateSuperAdmin(
	ctx context.Context,
	id int,
	columns map[string]interface{},
) error {
	if len(columns) == 0 {
		return ErrNoUpdates
	}
	if email, ok := columns["email"]; ok {
		taken, err := d.exists(
			ctx,
			"super_admins",
			sq.And{sq.Eq{"email": email}, sq.NotEq{"id": id}},
		)
		if err != nil {
			return err
		}
		if taken {
			return ErrAlreadyExists
		}
	}
	q := sq.Update("super_admins").
		SetMap(columns).
		Set("updated_at", time.Now().UTC()).
		Where(sq.Eq{"id": id})
	rs, err := d.updateStatement(ctx, q, nil)
	if err != nil {
		return err
	}
	affected, err := rs.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrNotFound
	}
	return nil
}

// DeleteSuperAdmin removes a super admin unless it is the last active one,
// the guard and the delete run in one transaction
func (d *DataStore) DeleteSuperAdmin(ctx context.Context, id int) error {
	tx, err := d.db.BeginTxx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() {
		_ = tx.Rollback()
	}()

	var entity tables.SuperAdminTable
	get := sq.Select("id", "status").From("super_admins").Where(sq.Eq{"id": id})
	err = d.getStatement(ctx, &entity, get, tx)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return ErrNotFound
		}
		return err
	}

	if entity.Status == "active" {
		var active int
		count := sq.Select("COUNT(*)").
			From("super_admins").
			Where(sq.And{sq.Eq{"status": "active"}, sq.NotEq{"id": id}})
		err = d.getStatement(ctx, &active, count, tx)
		if err != nil {
			return err
		}
		if active == 0 {
			return ErrLastActiveSuperAdmin
		}
	}

	del := sq.Delete("super_admins").Where(sq.Eq{"id": id})
	_, err = d.deleteStatement(ctx, del, tx)
	if err != nil {
		return err
	}
	return tx.Commit()
}
