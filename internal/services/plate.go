package services

import (
	"context"
	"errors"

	"github.com/plategate/apiserver/internal/store"
	"github.com/plategate/apiserver/types"
)

// ErrInvalidProvince is returned when a plate references a province that
// does not exist.
var ErrInvalidProvince = errors.New("invalid province")

// PlateRepository defines persistence operations for license plates.
type PlateRepository interface {
	List(ctx context.Context) ([]types.LicensePlate, error)
	Get(ctx context.Context, id int) (types.LicensePlate, error)
	Exists(ctx context.Context, licenseNumber string, provinceID int) (bool, error)
	Create(ctx context.Context, plate types.LicensePlate) (types.LicensePlate, error)
	Update(ctx context.Context, plate types.LicensePlate) (types.LicensePlate, error)
	DeleteWithHistory(ctx context.Context, id int) error
}

// PlateService encapsulates plate use-cases. Format validation happens in
// the handlers before any call lands here; this layer owns the ordering of
// existence and uniqueness checks against the database.
type PlateService struct {
	repo      PlateRepository
	provinces ProvinceRepository
}

func NewPlateService(repo PlateRepository, provinces ProvinceRepository) *PlateService {
	return &PlateService{repo: repo, provinces: provinces}
}

func (s *PlateService) List(ctx context.Context) ([]types.LicensePlate, error) {
	return s.repo.List(ctx)
}

func (s *PlateService) Get(ctx context.Context, id int) (types.LicensePlate, error) {
	return s.repo.Get(ctx, id)
}

// Add registers a plate: province existence first, then the duplicate fast
// path, then the insert. The unique constraint converts a lost race into
// store.ErrConflict as well.
func (s *PlateService) Add(ctx context.Context, plate types.LicensePlate) (types.LicensePlate, error) {
	if _, err := s.provinces.Get(ctx, plate.ProvinceID); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return types.LicensePlate{}, ErrInvalidProvince
		}
		return types.LicensePlate{}, err
	}

	taken, err := s.repo.Exists(ctx, plate.LicenseNumber, plate.ProvinceID)
	if err != nil {
		return types.LicensePlate{}, err
	}
	if taken {
		return types.LicensePlate{}, store.ErrConflict
	}

	return s.repo.Create(ctx, plate)
}

// Edit replaces all mutable fields of an existing plate. The target lookup
// runs before the province check so a missing plate reports not-found even
// with a bad province in the request.
func (s *PlateService) Edit(ctx context.Context, plate types.LicensePlate) (types.LicensePlate, error) {
	if _, err := s.repo.Get(ctx, plate.ID); err != nil {
		return types.LicensePlate{}, err
	}
	if _, err := s.provinces.Get(ctx, plate.ProvinceID); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return types.LicensePlate{}, ErrInvalidProvince
		}
		return types.LicensePlate{}, err
	}
	return s.repo.Update(ctx, plate)
}

// Delete removes the plate and its access history atomically.
func (s *PlateService) Delete(ctx context.Context, id int) error {
	return s.repo.DeleteWithHistory(ctx, id)
}
