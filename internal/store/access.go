package store

import (
	"context"
	"database/sql"

	"github.com/plategate/apiserver/types"
)

// AccessRepository handles persistence for gate access events and
// unknown-plate sightings.
type AccessRepository struct {
	db *sql.DB
}

func NewAccessRepository(db *sql.DB) *AccessRepository {
	return &AccessRepository{db: db}
}

func (r *AccessRepository) Create(ctx context.Context, event types.AccessEvent) (types.AccessEvent, error) {
	const query = `
		INSERT INTO access_history (license_id, access_date, access_type, image_source)
		VALUES ($1, $2, $3, $4)
		RETURNING id`
	if err := r.db.QueryRowContext(
		ctx,
		query,
		event.LicenseID,
		event.AccessDate,
		event.AccessType,
		event.ImageSource,
	).Scan(&event.ID); err != nil {
		return types.AccessEvent{}, err
	}
	return event, nil
}

func (r *AccessRepository) List(ctx context.Context) ([]types.AccessEvent, error) {
	const query = `
		SELECT id, license_id, access_date, access_type, image_source
		FROM access_history`
	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	events := make([]types.AccessEvent, 0)
	for rows.Next() {
		var event types.AccessEvent
		if err := rows.Scan(
			&event.ID,
			&event.LicenseID,
			&event.AccessDate,
			&event.AccessType,
			&event.ImageSource,
		); err != nil {
			return nil, err
		}
		events = append(events, event)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return events, nil
}

func (r *AccessRepository) CreateUnknown(ctx context.Context, sighting types.UnknownPlate) (types.UnknownPlate, error) {
	const query = `
		INSERT INTO license_plate_unknown (access_date, license_number, image_source)
		VALUES ($1, $2, $3)
		RETURNING id`
	if err := r.db.QueryRowContext(
		ctx,
		query,
		sighting.AccessDate,
		sighting.LicenseNumber,
		sighting.ImageSource,
	).Scan(&sighting.ID); err != nil {
		return types.UnknownPlate{}, err
	}
	return sighting, nil
}

func (r *AccessRepository) ListUnknown(ctx context.Context) ([]types.UnknownPlate, error) {
	const query = `
		SELECT id, access_date, license_number, image_source
		FROM license_plate_unknown`
	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	sightings := make([]types.UnknownPlate, 0)
	for rows.Next() {
		var sighting types.UnknownPlate
		if err := rows.Scan(
			&sighting.ID,
			&sighting.AccessDate,
			&sighting.LicenseNumber,
			&sighting.ImageSource,
		); err != nil {
			return nil, err
		}
		sightings = append(sightings, sighting)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return sightings, nil
}
