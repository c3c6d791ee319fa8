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

// Clinics lists clinics with optional search and status filters
func (d *DataStore) Clinics(
	ctx context.Context,
	opts ListOptions,
) ([]*tables.ClinicTable, int, error) {
	opts.normalize()

	applyWhere := func(q sq.SelectBuilder) sq.SelectBuilder {
		if opts.Search != "" {
			q = q.Where(searchPredicate(opts.Search, "name", "address"))
		}
		if opts.Status != "" {
			q = q.Where(sq.Eq{"status": opts.Status})
		}
		return q
	}

	var c int
	count := applyWhere(sq.Select("COUNT(*)").From("clinics"))
	err := count.RunWith(d.db).Scan(&c)
	if err != nil {
		return nil, 0, err
	}
	offset := opts.offset()
	if c < int(offset) {
		return []*tables.ClinicTable{}, c, nil
	}

	var entities []*tables.ClinicTable
	q := sq.
		Select(
			"id",
			"name",
			"address",
			"phone",
			"email",
			"status",
			"created_at",
			"updated_at",
		).
		From("clinics")
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

func (d *DataStore) Clinic(ctx context.Context, id int) (*tables.ClinicTable, error) {
	var entity tables.ClinicTable
	q := sq.Select("*").From("clinics").Where(sq.Eq{"id": id})
	err := d.getStatement(ctx, &entity, q, nil)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &entity, nil
}

func (d *DataStore) InsertClinic(
	ctx context.Context,
	name string,
	address string,
	phone *string,
	email *string,
	status string,
) (int, error) {
	exists, err := d.exists(ctx, "clinics", sq.Eq{"name": name})
	if err != nil {
		return 0, err
	}
	if exists {
		return 0, ErrAlreadyExists
	}
	insert := sq.Insert("clinics").SetMap(map[string]interface{}{
		"name":       name,
		"address":    address,
		"phone":      phone,
		"email":      email,
		"status":     status,
		"created_at": time.Now().UTC(),
	}).Suffix("RETURNING id")
	var id int
	err = d.returningInsertStatement(ctx, &id, insert, nil)
	if err != nil {
		d.log.Error("could not insert clinic", zap.Error(err))
		return 0, err
	}
	return id, nil
}

// UpdateClinic applies a partial update built from the supplied
// columns only, an empty set is rejected with ErrNoUpdates
func (d *DataStore) UpdateClinic(
	ctx context.Context,
	id int,
	columns map[string]interface{},
) error {
	if len(columns) == 0 {
		return ErrNoUpdates
	}
	q := sq.Update("clinics").
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

func (d *DataStore) DeleteClinic(ctx context.Context, id int) error {
	del := sq.Delete("clinics").Where(sq.Eq{"id": id})
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
