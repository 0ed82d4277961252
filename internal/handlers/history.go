package handlers

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/plategate/apiserver/internal/services"
	"github.com/plategate/apiserver/types"
	"github.com/rs/zerolog"
)

// HistoryHandler provides HTTP handlers for access history and
// unknown-plate sightings.
type HistoryHandler struct {
	accessService *services.AccessService
	logger        zerolog.Logger
}

func NewHistoryHandler(accessService *services.AccessService, logger zerolog.Logger) *HistoryHandler {
	return &HistoryHandler{accessService: accessService, logger: logger}
}

// HistoryRouter registers history routes on the given router.
func HistoryRouter(r chi.Router, accessService *services.AccessService, logger zerolog.Logger) {
	handler := NewHistoryHandler(accessService, logger)

	r.Post("/addHistory", handler.AddHistory)
	r.Get("/history", handler.ListHistory)
	r.Post("/addUnknown", handler.AddUnknown)
	r.Get("/getAllUnknown", handler.ListUnknown)
}

type HistoryRequest struct {
	LicenseID   int       `json:"license_id"`
	AccessDate  time.Time `json:"access_date"`
	AccessType  string    `json:"access_type"`
	ImageSource string    `json:"image_source"`
}

type UnknownRequest struct {
	AccessDate    time.Time `json:"access_date"`
	LicenseNumber string    `json:"license_number"`
	ImageSource   string    `json:"image_source"`
}

func (h *HistoryHandler) AddHistory(w http.ResponseWriter, r *http.Request) {
	var req HistoryRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	created, err := h.accessService.Add(r.Context(), types.AccessEvent{
		LicenseID:   req.LicenseID,
		AccessDate:  req.AccessDate,
		AccessType:  req.AccessType,
		ImageSource: req.ImageSource,
	})
	if err != nil {
		h.logger.Error().Err(err).Msg("insert access history")
		writeInternalError(w)
		return
	}

	writeJSON(w, http.StatusOK, MessageResponse{
		Message: "Access History inserted successfully",
		Result:  created,
	})
}

func (h *HistoryHandler) ListHistory(w http.ResponseWriter, r *http.Request) {
	events, err := h.accessService.List(r.Context())
	if err != nil {
		h.logger.Error().Err(err).Msg("list access history")
		writeInternalError(w)
		return
	}
	writeJSON(w, http.StatusOK, events)
}

func (h *HistoryHandler) AddUnknown(w http.ResponseWriter, r *http.Request) {
	var req UnknownRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	created, err := h.accessService.AddUnknown(r.Context(), types.UnknownPlate{
		AccessDate:    req.AccessDate,
		LicenseNumber: req.LicenseNumber,
		ImageSource:   req.ImageSource,
	})
	if err != nil {
		h.logger.Error().Err(err).Msg("insert unknown plate")
		writeInternalError(w)
		return
	}

	writeJSON(w, http.StatusOK, MessageResponse{
		Message: "License Plate Unknown inserted successfully",
		Result:  created,
	})
}

func (h *HistoryHandler) ListUnknown(w http.ResponseWriter, r *http.Request) {
	sightings, err := h.accessService.ListUnknown(r.Context())
	if err != nil {
		h.logger.Error().Err(err).Msg("list unknown plates")
		writeInternalError(w)
		return
	}
	writeJSON(w, http.StatusOK, sightings)
}
