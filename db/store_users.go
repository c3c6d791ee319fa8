package db

import (
	"context"
	"database/sql"
	"errors"

	sq "github.com/Masterminds/squirrel"
	"github.com/providerdesk/providerdesk/db/tables"
)

// Users lists the registered end-users, the dashboard only ever reads them
func (d *DataStore) Users(
	ctx context.Context,
	opts ListOptions,
) ([]*tables.UserTable, int, error) {
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
	count := applyWhere(sq.Select("COUNT(*)").From("users"))
	err := count.RunWith(d.db).Scan(&c)
	if err != nil {
		return nil, 0, err
	}
	offset := opts.offset()
	if c < int(offset) {
		return []*tables.UserTable{}, c, nil
	}

	var entities []*tables.UserTable
	q := sq.
		Select(
			"id",
			"full_name",
			"email",
			"mobile_number",
			"status",
			"created_at",
			"updated_at",
		).
		From("users")
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

func (d *DataStore) EndUser(ctx context.Context, id int) (*tables.UserTable, error) {
	var entity tables.UserTable
	q := sq.Select("*").From("users").Where(sq.Eq{"id": id})
	err := d.getStatement(ctx, &entity, q, nil)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &entity, nil
}
