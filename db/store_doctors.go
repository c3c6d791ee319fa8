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

// Doctors lists doctor applications with optional search and status filters
func (d *DataStore) Doctors(
	ctx context.Context,
	opts ListOptions,
) ([]*tables.DoctorTable, int, error) {
	opts.normalize()

	applyWhere := func(q sq.SelectBuilder) sq.SelectBuilder {
		if opts.Search != "" {
			q = q.Where(
				searchPredicate(opts.Search, "full_name", "email", "specialization"),
			)
		}
		if opts.Status != "" {
			q = q.Where(sq.Eq{"status": opts.Status})
		}
		return q
	}

	var c int
	count := applyWhere(sq.Select("COUNT(*)").From("doctors"))
	err := count.RunWith(d.db).Scan(&c)
	if err != nil {
		return nil, 0, err
	}
	offset := opts.offset()
	if c < int(offset) {
		return []*tables.DoctorTable{}, c, nil
	}

	var entities []*tables.DoctorTable
	q := sq.
		Select(
			"id",
			"full_name",
			"email",
			"specialization",
			"years_of_experience",
			"country_code",
			"mobile_number",
			"license_number",
			"clinic_address",
			"status",
			"created_at",
			"updated_at",
		).
		From("doctors")
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

func (d *DataStore) Doctor(ctx context.Context, id int) (*tables.DoctorTable, error) {
	var entity tables.DoctorTable
	q := sq.Select("*").From("doctors").Where(sq.Eq{"id": id})
	err := d.getStatement(ctx, &entity, q, nil)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &entity, nil
}

func (d *DataStore) InsertDoctor(
	ctx context.Context,
	fullName string,
	email string,
	specialization string,
	yearsOfExperience int,
	countryCode string,
	mobileNumber string,
	licenseNumber string,
	clinicAddress *string,
	status string,
) (int, error) {
	exists, err := d.exists(ctx, "doctors", sq.Eq{"email": email})
	if err != nil {
		return 0, err
	}
	if exists {
		return 0, ErrAlreadyExists
	}
	insert := sq.Insert("doctors").SetMap(map[string]interface{}{
		"full_name":           fullName,
		"email":               email,
		"specialization":      specialization,
		"years_of_experience": yearsOfExperience,
		"country_code":        countryCode,
		"mobile_number":       mobileNumber,
		"license_number":      licenseNumber,
		"clinic_address":      clinicAddress,
		"status":              status,
		"created_at":          time.Now().UTC(),
	}).Suffix("RETURNING id")
	var id int
	err = d.returningInsertStatement(ctx, &id, insert, nil)
	if err != nil {
		d.log.Error("could not insert doctor", zap.Error(err))
		return 0, err
	}
	return id, nil
}

// UpdateDoctor applies a partial update built from the supplied
// columns only, an empty set is rejected with ErrNoUpdates
func (d *DataStore) UpdateDoctor(
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
			"doctors",
			sq.And{sq.Eq{"email": email}, sq.NotEq{"id": id}},
		)
		if err != nil {
			return err
		}
		if taken {
			return ErrAlreadyExists
		}
	}
	q := sq.Update("doctors").
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

// SetDoctorStatus moves a doctor application to the given status
func (d *DataStore) SetDoctorStatus(ctx context.Context, id int, status string) error {
	q := sq.Update("doctors").
		Set("status", status).
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

func (d *DataStore) DeleteDoctor(ctx context.Context, id int) error {
	del := sq.Delete("doctors").Where(sq.Eq{"id": id})
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
