package store

import (
	"context"
	"database/sql"
	"errors"

	"github.com/plategate/apiserver/types"
)

// PlateRepository handles persistence for registered license plates.
type PlateRepository struct {
	db *sql.DB
}

func NewPlateRepository(db *sql.DB) *PlateRepository {
	return &PlateRepository{db: db}
}

// List returns every plate joined with its province name, database-default
// order, no pagination.
func (r *PlateRepository) List(ctx context.Context) ([]types.LicensePlate, error) {
	const query = `
		SELECT lp.id, lp.first_name, lp.last_name, lp.license_number, lp.province_id, p.province
		FROM license_plate lp
		JOIN provinces p ON lp.province_id = p.id`
	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	plates := make([]types.LicensePlate, 0)
	for rows.Next() {
		var plate types.LicensePlate
		if err := rows.Scan(
			&plate.ID,
			&plate.FirstName,
			&plate.LastName,
			&plate.LicenseNumber,
			&plate.ProvinceID,
			&plate.Province,
		); err != nil {
			return nil, err
		}
		plates = append(plates, plate)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return plates, nil
}

func (r *PlateRepository) Get(ctx context.Context, id int) (types.LicensePlate, error) {
	const query = `
		SELECT lp.id, lp.first_name, lp.last_name, lp.license_number, lp.province_id, p.province
		FROM license_plate lp
		JOIN provinces p ON lp.province_id = p.id
		WHERE lp.id = $1`
	var plate types.LicensePlate
	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&plate.ID,
		&plate.FirstName,
		&plate.LastName,
		&plate.LicenseNumber,
		&plate.ProvinceID,
		&plate.Province,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return types.LicensePlate{}, ErrNotFound
		}
		return types.LicensePlate{}, err
	}
	return plate, nil
}

// Exists reports whether a plate with the given (license_number, province_id)
// pair is already registered. This is the best-effort fast path; the unique
// constraint remains authoritative under concurrent inserts.
func (r *PlateRepository) Exists(ctx context.Context, licenseNumber string, provinceID int) (bool, error) {
	const query = `
		SELECT COUNT(1)
		FROM license_plate
		WHERE license_number = $1 AND province_id = $2`
	var count int
	if err := r.db.QueryRowContext(ctx, query, licenseNumber, provinceID).Scan(&count); err != nil {
		return false, err
	}
	return count > 0, nil
}

func (r *PlateRepository) Create(ctx context.Context, plate types.LicensePlate) (types.LicensePlate, error) {
	const query = `
		INSERT INTO license_plate (first_name, last_name, license_number, province_id)
		VALUES ($1, $2, $3, $4)
		RETURNING id`
	if err := r.db.QueryRowContext(
		ctx,
		query,
		plate.FirstName,
		plate.LastName,
		plate.LicenseNumber,
		plate.ProvinceID,
	).Scan(&plate.ID); err != nil {
		return types.LicensePlate{}, mapConflict(err)
	}
	return plate, nil
}

// Update replaces all four mutable fields unconditionally.
func (r *PlateRepository) Update(ctx context.Context, plate types.LicensePlate) (types.LicensePlate, error) {
	const query = `
		UPDATE license_plate
		SET first_name = $1,
			last_name = $2,
			license_number = $3,
			province_id = $4
		WHERE id = $5`
	result, err := r.db.ExecContext(
		ctx,
		query,
		plate.FirstName,
		plate.LastName,
		plate.LicenseNumber,
		plate.ProvinceID,
		plate.ID,
	)
	if err != nil {
		return types.LicensePlate{}, mapConflict(err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return types.LicensePlate{}, err
	}
	if affected == 0 {
		return types.LicensePlate{}, ErrNotFound
	}
	return plate, nil
}

// DeleteWithHistory removes the plate's access history rows and the plate
// itself in one transaction. A missing plate rolls back the history delete
// and returns ErrNotFound; any error rolls back the whole transaction.
func (r *PlateRepository) DeleteWithHistory(ctx context.Context, id int) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}

	if _, err := tx.ExecContext(ctx,
		`DELETE FROM access_history WHERE license_id = $1`, id,
	); err != nil {
		_ = tx.Rollback()
		return err
	}

	result, err := tx.ExecContext(ctx,
		`DELETE FROM license_plate WHERE id = $1`, id,
	)
	if err != nil {
		_ = tx.Rollback()
		return err
	}
	affected, err := result.RowsAffected()
	if err != nil {
		_ = tx.Rollback()
		return err
	}
	if affected == 0 {
		_ = tx.Rollback()
		return ErrNotFound
	}

	return tx.Commit()
}
