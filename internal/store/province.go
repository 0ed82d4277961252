package store

import (
	"context"
	"database/sql"
	"errors"

	"github.com/plategate/apiserver/types"
)

// ProvinceRepository handles reads of the fixed province reference list.
type ProvinceRepository struct {
	db *sql.DB
}

func NewProvinceRepository(db *sql.DB) *ProvinceRepository {
	return &ProvinceRepository{db: db}
}

func (r *ProvinceRepository) List(ctx context.Context) ([]types.Province, error) {
	const query = `SELECT id, province FROM provinces`
	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	provinces := make([]types.Province, 0)
	for rows.Next() {
		var province types.Province
		if err := rows.Scan(&province.ID, &province.Name); err != nil {
			return nil, err
		}
		provinces = append(provinces, province)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return provinces, nil
}

func (r *ProvinceRepository) Get(ctx context.Context, id int) (types.Province, error) {
	const query = `SELECT id, province FROM provinces WHERE id = $1`
	var province types.Province
	err := r.db.QueryRowContext(ctx, query, id).Scan(&province.ID, &province.Name)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return types.Province{}, ErrNotFound
		}
		return types.Province{}, err
	}
	return province, nil
}
