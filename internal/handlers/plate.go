package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/plategate/apiserver/internal/services"
	"github.com/plategate/apiserver/internal/store"
	"github.com/plategate/apiserver/internal/validate"
	"github.com/plategate/apiserver/types"
	"github.com/rs/zerolog"
)

// PlateHandler provides HTTP handlers for the plate registry.
type PlateHandler struct {
	plateService *services.PlateService
	logger       zerolog.Logger
}

// NewPlateHandler constructs a handler with the provided service.
func NewPlateHandler(plateService *services.PlateService, logger zerolog.Logger) *PlateHandler {
	return &PlateHandler{plateService: plateService, logger: logger}
}

// PlateRouter registers plate routes on the given router.
func PlateRouter(r chi.Router, plateService *services.PlateService, logger zerolog.Logger) {
	handler := NewPlateHandler(plateService, logger)

	r.Post("/addLicense", handler.AddLicense)
	r.Get("/licensePlates", handler.ListLicensePlates)
	r.Get("/licensePlates/{id}", handler.GetLicensePlate)
	r.Put("/editLicense/{id}", handler.EditLicense)
	r.Delete("/deleteLicense/{id}", handler.DeleteLicense)
}

type PlateRequest struct {
	FirstName     string `json:"first_name"`
	LastName      string `json:"last_name"`
	LicenseNumber string `json:"license_number"`
	ProvinceID    int    `json:"province_id"`
}

func (req *PlateRequest) trim() {
	req.FirstName = strings.TrimSpace(req.FirstName)
	req.LastName = strings.TrimSpace(req.LastName)
	req.LicenseNumber = strings.TrimSpace(req.LicenseNumber)
}

// AddLicense registers a plate: format checks before any database round
// trip, then province existence, then the duplicate check, then the insert.
func (h *PlateHandler) AddLicense(w http.ResponseWriter, r *http.Request) {
	var req PlateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	req.trim()

	if err := validate.PlateRecord(req.FirstName, req.LastName, req.LicenseNumber); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	created, err := h.plateService.Add(r.Context(), types.LicensePlate{
		FirstName:     req.FirstName,
		LastName:      req.LastName,
		LicenseNumber: req.LicenseNumber,
		ProvinceID:    req.ProvinceID,
	})
	if err != nil {
		switch {
		case errors.Is(err, services.ErrInvalidProvince):
			writeError(w, http.StatusBadRequest, "Invalid province ID")
		case errors.Is(err, store.ErrConflict):
			writeError(w, http.StatusBadRequest, "License number already exists for this province")
		default:
			h.logger.Error().Err(err).Msg("insert license plate")
			writeInternalError(w)
		}
		return
	}

	writeJSON(w, http.StatusOK, MessageResponse{
		Message: "License plate inserted successfully",
		Result:  created,
	})
}

func (h *PlateHandler) ListLicensePlates(w http.ResponseWriter, r *http.Request) {
	plates, err := h.plateService.List(r.Context())
	if err != nil {
		h.logger.Error().Err(err).Msg("list license plates")
		writeInternalError(w)
		return
	}
	writeJSON(w, http.StatusOK, plates)
}

func (h *PlateHandler) GetLicensePlate(w http.ResponseWriter, r *http.Request) {
	id, err := parseIDParam(r)
	if err != nil {
		writeError(w, http.StatusNotFound, "License plate not found")
		return
	}

	plate, err := h.plateService.Get(r.Context(), id)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			writeError(w, http.StatusNotFound, "License plate not found")
			return
		}
		h.logger.Error().Err(err).Msg("fetch license plate")
		writeInternalError(w)
		return
	}
	writeJSON(w, http.StatusOK, plate)
}

// EditLicense replaces all four mutable fields. The target lookup runs
// before the province check, so a missing plate is a 404 even when the
// request carries a bad province.
func (h *PlateHandler) EditLicense(w http.ResponseWriter, r *http.Request) {
	id, err := parseIDParam(r)
	if err != nil {
		writeError(w, http.StatusNotFound, "License plate not found")
		return
	}

	var req PlateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	req.trim()

	updated, err := h.plateService.Edit(r.Context(), types.LicensePlate{
		ID:            id,
		FirstName:     req.FirstName,
		LastName:      req.LastName,
		LicenseNumber: req.LicenseNumber,
		ProvinceID:    req.ProvinceID,
	})
	if err != nil {
		switch {
		case errors.Is(err, store.ErrNotFound):
			writeError(w, http.StatusNotFound, "License plate not found")
		case errors.Is(err, services.ErrInvalidProvince):
			writeError(w, http.StatusBadRequest, "Invalid province ID")
		default:
			h.logger.Error().Err(err).Msg("update license plate")
			writeInternalError(w)
		}
		return
	}

	writeJSON(w, http.StatusOK, MessageResponse{
		Message: "License plate updated successfully",
		Result:  updated,
	})
}

// DeleteLicense removes the plate and its access history in one
// transaction.
func (h *PlateHandler) DeleteLicense(w http.ResponseWriter, r *http.Request) {
	id, err := parseIDParam(r)
	if err != nil {
		writeError(w, http.StatusNotFound, "License plate not found")
		return
	}

	if err := h.plateService.Delete(r.Context(), id); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			writeError(w, http.StatusNotFound, "License plate not found")
			return
		}
		h.logger.Error().Err(err).Msg("delete license plate")
		writeInternalError(w)
		return
	}

	writeJSON(w, http.StatusOK, MessageResponse{
		Message: "License plate and related access history deleted successfully",
	})
}
