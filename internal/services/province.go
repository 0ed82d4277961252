package services

import (
	"context"

	"github.com/plategate/apiserver/types"
)

// ProvinceRepository defines read operations for the province list.
type ProvinceRepository interface {
	List(ctx context.Context) ([]types.Province, error)
	Get(ctx context.Context, id int) (types.Province, error)
}

// ProvinceService encapsulates province reads. The list is seeded at
// startup and read-only afterward.
type ProvinceService struct {
	repo ProvinceRepository
}

func NewProvinceService(repo ProvinceRepository) *ProvinceService {
	return &ProvinceService{repo: repo}
}

func (s *ProvinceService) List(ctx context.Context) ([]types.Province, error) {
	return s.repo.List(ctx)
}

func (s *ProvinceService) Get(ctx context.Context, id int) (types.Province, error) {
	return s.repo.Get(ctx, id)
}
