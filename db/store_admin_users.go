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

// AdminUsers lists admin users with optional search, role and status filters
func (d *DataStore) AdminUsers(
	ctx context.Context,
	opts ListOptions,
) ([]*tables.AdminUserTable, int, error) {
	opts.normalize()

	applyWhere := func(q sq.SelectBuilder) sq.SelectBuilder {
		if opts.Search != "" {
			q = q.Where(searchPredicate(opts.Search, "full_name", "email"))
		}
		if opts.Status != "" {
			q = q.Where(sq.Eq{"status": opts.Status})
		}
		if opts.Role != "" {
			q = q.Where(sq.Eq{"role": opts.Role})
		}
		return q
	}

	var c int
	count := applyWhere(sq.Select("COUNT(*)").From("admin_users"))
	err := count.RunWith(d.db).Scan(&c)
	if err != nil {
		return nil, 0, err
	}
	offset := opts.offset()
	if c < int(offset) {
		return []*tables.AdminUserTable{}, c, nil
	}

	var entities []*tables.AdminUserTable
	q := sq.
		Select(
			"id",
			"email",
			"full_name",
			"role",
			"status",
			"phone",
			"department",
			"created_by",
			"last_login",
			"failed_login_attempts",
			"account_locked_until",
			"created_at",
			"updated_at",
		).
		From("admin_users")
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

func (d *DataStore) AdminUser(ctx context.Context, id int) (*tables.AdminUserTable, error) {
	var entity tables.AdminUserTable
	q := sq.Select("*").From("admin_users").Where(sq.Eq{"id": id})
	err := d.getStatement(ctx, &entity, q, nil)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &entity, nil
}

func (d *DataStore) InsertAdminUser(
	ctx context.Context,
	email string,
	passwordHash string,
	fullName string,
	role string,
	status string,
	phone *string,
	department *string,
	createdBy *string,
) (int, error) {
	exists, err := d.exists(ctx, "admin_users", sq.Eq{"email": email})
	if err != nil {
		return 0, err
	}
	if exists {
		return 0, ErrAlreadyExists
	}
	insert := sq.Insert("admin_users").SetMap(map[string]interface{}{
		"email":         email,
		"password_hash": passwordHash,
		"full_name":     fullName,
		"role":          role,
		"status":        status,
		"phone":         phone,
		"department":    department,
		"created_by":    createdBy,
		"created_at":    time.Now().UTC(),
	}).Suffix("RETURNING id")
	var id int
	err = d.returningInsertStatement(ctx, &id, insert, nil)
	if err != nil {
		d.log.Error("could not insert admin user", zap.Error(err))
		return 0, err
	}
	return id, nil
}

// UpdateAdminUser applies a partial update built from the supplied
// columns only, an empty set is rejected with ErrNoUpdates
func (d *DataStore) UpdateAdminUser(
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
			"admin_users",
			sq.And{sq.Eq{"email": email}, sq.NotEq{"id": id}},
		)
		if err != nil {
			return err
		}
		if taken {
			return ErrAlreadyExists
		}
	}
	q := sq.Update("admin_users").
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

func (d *DataStore) DeleteAdminUser(ctx context.Context, id int) error {
	del := sq.Delete("admin_users").Where(sq.Eq{"id": id})
	rs, err := d.deleteStatement(ctx, del, nil)
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
