package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"

	"github.com/plategate/apiserver/internal/store"
	"github.com/plategate/apiserver/types"
)

type fakeUserRepo struct {
	users  map[string]types.User
	nextID int
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{users: map[string]types.User{}, nextID: 1}
}

func (f *fakeUserRepo) GetByUsername(_ context.Context, username string) (types.User, error) {
	user, ok := f.users[username]
	if !ok {
		return types.User{}, store.ErrNotFound
	}
	return user, nil
}

func (f *fakeUserRepo) Create(_ context.Context, user types.User) (types.User, error) {
	if _, ok := f.users[user.Username]; ok {
		return types.User{}, store.ErrConflict
	}
	user.ID = f.nextID
	f.nextID++
	f.users[user.Username] = user
	return user, nil
}

type fakeProvinceRepo struct {
	provinces map[int]types.Province
	getCalls  int
}

func newFakeProvinceRepo(provinces ...types.Province) *fakeProvinceRepo {
	repo := &fakeProvinceRepo{provinces: map[int]types.Province{}}
	for _, province := range provinces {
		repo.provinces[province.ID] = province
	}
	return repo
}

func (f *fakeProvinceRepo) List(_ context.Context) ([]types.Province, error) {
	provinces := make([]types.Province, 0, len(f.provinces))
	for _, province := range f.provinces {
		provinces = append(provinces, province)
	}
	return provinces, nil
}

func (f *fakeProvinceRepo) Get(_ context.Context, id int) (types.Province, error) {
	f.getCalls++
	province, ok := f.provinces[id]
	if !ok {
		return types.Province{}, store.ErrNotFound
	}
	return province, nil
}

type fakePlateRepo struct {
	plates map[int]types.LicensePlate
	nextID int
}

func newFakePlateRepo(plates ...types.LicensePlate) *fakePlateRepo {
	repo := &fakePlateRepo{plates: map[int]types.LicensePlate{}, nextID: 1}
	for _, plate := range plates {
		repo.plates[plate.ID] = plate
		if plate.ID >= repo.nextID {
			repo.nextID = plate.ID + 1
		}
	}
	return repo
}

func (f *fakePlateRepo) List(_ context.Context) ([]types.LicensePlate, error) {
	plates := make([]types.LicensePlate, 0, len(f.plates))
	for _, plate := range f.plates {
		plates = append(plates, plate)
	}
	return plates, nil
}

func (f *fakePlateRepo) Get(_ context.Context, id int) (types.LicensePlate, error) {
	plate, ok := f.plates[id]
	if !ok {
		return types.LicensePlate{}, store.ErrNotFound
	}
	return plate, nil
}

func (f *fakePlateRepo) Exists(_ context.Context, licenseNumber string, provinceID int) (bool, error) {
	for _, plate := range f.plates {
		if plate.LicenseNumber == licenseNumber && plate.ProvinceID == provinceID {
			return true, nil
		}
	}
	return false, nil
}

func (f *fakePlateRepo) Create(_ context.Context, plate types.LicensePlate) (types.LicensePlate, error) {
	plate.ID = f.nextID
	f.nextID++
	f.plates[plate.ID] = plate
	return plate, nil
}

func (f *fakePlateRepo) Update(_ context.Context, plate types.LicensePlate) (types.LicensePlate, error) {
	if _, ok := f.plates[plate.ID]; !ok {
		return types.LicensePlate{}, store.ErrNotFound
	}
	f.plates[plate.ID] = plate
	return plate, nil
}

func (f *fakePlateRepo) DeleteWithHistory(_ context.Context, id int) error {
	if _, ok := f.plates[id]; !ok {
		return store.ErrNotFound
	}
	delete(f.plates, id)
	return nil
}

type fakeDetectionRepo struct {
	batches [][]types.Detection
	nextID  int
}

func newFakeDetectionRepo() *fakeDetectionRepo {
	return &fakeDetectionRepo{nextID: 1}
}

func (f *fakeDetectionRepo) CreateBatch(_ context.Context, detections []types.Detection) ([]types.Detection, error) {
	created := make([]types.Detection, 0, len(detections))
	for _, detection := range detections {
		detection.ID = f.nextID
		f.nextID++
		created = append(created, detection)
	}
	f.batches = append(f.batches, created)
	return created, nil
}

func (f *fakeDetectionRepo) List(_ context.Context) ([]types.Detection, error) {
	detections := make([]types.Detection, 0)
	for _, batch := range f.batches {
		detections = append(detections, batch...)
	}
	return detections, nil
}

type fakeAccessRepo struct {
	events    []types.AccessEvent
	sightings []types.UnknownPlate
}

func (f *fakeAccessRepo) Create(_ context.Context, event types.AccessEvent) (types.AccessEvent, error) {
	event.ID = len(f.events) + 1
	f.events = append(f.events, event)
	return event, nil
}

func (f *fakeAccessRepo) List(_ context.Context) ([]types.AccessEvent, error) {
	return append([]types.AccessEvent{}, f.events...), nil
}

func (f *fakeAccessRepo) CreateUnknown(_ context.Context, sighting types.UnknownPlate) (types.UnknownPlate, error) {
	sighting.ID = len(f.sightings) + 1
	f.sightings = append(f.sightings, sighting)
	return sighting, nil
}

func (f *fakeAccessRepo) ListUnknown(_ context.Context) ([]types.UnknownPlate, error) {
	return append([]types.UnknownPlate{}, f.sightings...), nil
}

func testLogger() zerolog.Logger {
	return zerolog.Nop()
}

func newTestRouter(register func(chi.Router)) *chi.Mux {
	router := chi.NewRouter()
	router.Route("/api", register)
	return router
}

func doJSON(t *testing.T, router http.Handler, method, target string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var reader *bytes.Reader
	if body == nil {
		reader = bytes.NewReader(nil)
	} else {
		data, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(data)
	}
	req := httptest.NewRequest(method, target, reader)
	req.Header.Set("Content-Type", "application/json")
	recorder := httptest.NewRecorder()
	router.ServeHTTP(recorder, req)
	return recorder
}

func httptestRequest(method, target string) *http.Request {
	return httptest.NewRequest(method, target, nil)
}

func serve(router http.Handler, req *http.Request) *httptest.ResponseRecorder {
	recorder := httptest.NewRecorder()
	router.ServeHTTP(recorder, req)
	return recorder
}

func decodeBody(t *testing.T, recorder *httptest.ResponseRecorder, value any) {
	t.Helper()
	require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), value))
}
