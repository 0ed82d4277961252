package handlers

import (
	"net/http"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/plategate/apiserver/internal/services"
	"github.com/plategate/apiserver/types"
)

func newHistoryTestRouter(repo *fakeAccessRepo) *chi.Mux {
	accessService := services.NewAccessService(repo, nil, testLogger())
	return newTestRouter(func(r chi.Router) {
		HistoryRouter(r, accessService, testLogger())
	})
}

func TestAddHistory(t *testing.T) {
	repo := &fakeAccessRepo{}
	router := newHistoryTestRouter(repo)

	recorder := doJSON(t, router, http.MethodPost, "/api/addHistory", HistoryRequest{
		LicenseID:   1,
		AccessDate:  time.Date(2026, 8, 30, 8, 0, 0, 0, time.UTC),
		AccessType:  "entry",
		ImageSource: "gate-1.jpg",
	})

	require.Equal(t, http.StatusOK, recorder.Code)
	var body MessageResponse
	decodeBody(t, recorder, &body)
	assert.Equal(t, "Access History inserted successfully", body.Message)
	require.Len(t, repo.events, 1)
	assert.Equal(t, "entry", repo.events[0].AccessType)
}

func TestListHistory(t *testing.T) {
	repo := &fakeAccessRepo{events: []types.AccessEvent{
		{ID: 1, LicenseID: 1, AccessType: "entry"},
		{ID: 2, LicenseID: 1, AccessType: "exit"},
	}}
	router := newHistoryTestRouter(repo)

	recorder := serve(router, httptestRequest(http.MethodGet, "/api/history"))
	require.Equal(t, http.StatusOK, recorder.Code)
	var listed []types.AccessEvent
	decodeBody(t, recorder, &listed)
	assert.Len(t, listed, 2)
}

func TestAddUnknown(t *testing.T) {
	repo := &fakeAccessRepo{}
	router := newHistoryTestRouter(repo)

	recorder := doJSON(t, router, http.MethodPost, "/api/addUnknown", UnknownRequest{
		AccessDate:    time.Date(2026, 8, 30, 8, 0, 0, 0, time.UTC),
		LicenseNumber: "XX9999",
		ImageSource:   "gate-1.jpg",
	})

	require.Equal(t, http.StatusOK, recorder.Code)
	var body MessageResponse
	decodeBody(t, recorder, &body)
	assert.Equal(t, "License Plate Unknown inserted successfully", body.Message)
	require.Len(t, repo.sightings, 1)
	assert.Equal(t, "XX9999", repo.sightings[0].LicenseNumber)
}

func TestListUnknown(t *testing.T) {
	repo := &fakeAccessRepo{sightings: []types.UnknownPlate{
		{ID: 1, LicenseNumber: "XX9999"},
	}}
	router := newHistoryTestRouter(repo)

	recorder := serve(router, httptestRequest(http.MethodGet, "/api/getAllUnknown"))
	require.Equal(t, http.StatusOK, recorder.Code)
	var listed []types.UnknownPlate
	decodeBody(t, recorder, &listed)
	assert.Len(t, listed, 1)
}
