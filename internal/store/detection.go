package store

import (
	"context"
	"database/sql"

	"github.com/plategate/apiserver/types"
)

// DetectionRepository handles persistence for detection batches.
type DetectionRepository struct {
	db *sql.DB
}

func NewDetectionRepository(db *sql.DB) *DetectionRepository {
	return &DetectionRepository{db: db}
}

// CreateBatch inserts every detection in one transaction so a failure
// partway through leaves zero rows behind.
func (r *DetectionRepository) CreateBatch(ctx context.Context, detections []types.Detection) ([]types.Detection, error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, err
	}

	const query = `
		INSERT INTO detection_history (no_of_cars, no_of_empty, detection_date, image_source)
		VALUES ($1, $2, $3, $4)
		RETURNING id`
	created := make([]types.Detection, 0, len(detections))
	for _, detection := range detections {
		if err := tx.QueryRowContext(
			ctx,
			query,
			detection.NoOfCars,
			detection.NoOfEmpty,
			detection.DetectionDate,
			detection.ImageSource,
		).Scan(&detection.ID); err != nil {
			_ = tx.Rollback()
			return nil, err
		}
		created = append(created, detection)
	}

	if err := tx.Commit(); err != nil {
		return nil, err
	}
	return created, nil
}

func (r *DetectionRepository) List(ctx context.Context) ([]types.Detection, error) {
	const query = `
		SELECT id, no_of_cars, no_of_empty, detection_date, image_source
		FROM detection_history`
	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	detections := make([]types.Detection, 0)
	for rows.Next() {
		var detection types.Detection
		if err := rows.Scan(
			&detection.ID,
			&detection.NoOfCars,
			&detection.NoOfEmpty,
			&detection.DetectionDate,
			&detection.ImageSource,
		); err != nil {
			return nil, err
		}
		detections = append(detections, detection)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return detections, nil
}
