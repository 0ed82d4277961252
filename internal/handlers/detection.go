package handlers

import (
	"bytes"
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/plategate/apiserver/internal/services"
	"github.com/plategate/apiserver/types"
	"github.com/rs/zerolog"
)

// DetectionHandler provides HTTP handlers for detection batches.
type DetectionHandler struct {
	detectionService *services.DetectionService
	logger           zerolog.Logger
}

func NewDetectionHandler(detectionService *services.DetectionService, logger zerolog.Logger) *DetectionHandler {
	return &DetectionHandler{detectionService: detectionService, logger: logger}
}

// DetectionRouter registers detection routes on the given router.
func DetectionRouter(r chi.Router, detectionService *services.DetectionService, logger zerolog.Logger) {
	handler := NewDetectionHandler(detectionService, logger)

	r.Post("/addDetect", handler.AddDetect)
	r.Get("/detection", handler.ListDetections)
}

// DetectionRequest uses pointers so an absent field is distinguishable
// from an explicit zero.
type DetectionRequest struct {
	NoOfCars      *int       `json:"no_of_cars"`
	NoOfEmpty     *int       `json:"no_of_empty"`
	DetectionDate *time.Time `json:"detection_date"`
	ImageSource   *string    `json:"image_source"`
}

func (req DetectionRequest) complete() bool {
	return req.NoOfCars != nil &&
		req.NoOfEmpty != nil &&
		req.DetectionDate != nil &&
		req.ImageSource != nil && *req.ImageSource != ""
}

// AddDetect accepts a single detection object or an array of them. Every
// element must carry all four fields; an incomplete element rejects the
// whole batch and inserts nothing.
func (h *DetectionHandler) AddDetect(w http.ResponseWriter, r *http.Request) {
	var raw json.RawMessage
	if err := json.NewDecoder(r.Body).Decode(&raw); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	var requests []DetectionRequest
	if bytes.HasPrefix(bytes.TrimSpace(raw), []byte("[")) {
		if err := json.Unmarshal(raw, &requests); err != nil {
			writeError(w, http.StatusBadRequest, "Invalid request body")
			return
		}
	} else {
		var single DetectionRequest
		if err := json.Unmarshal(raw, &single); err != nil {
			writeError(w, http.StatusBadRequest, "Invalid request body")
			return
		}
		requests = []DetectionRequest{single}
	}

	if len(requests) == 0 {
		writeError(w, http.StatusBadRequest, "Missing required fields")
		return
	}

	detections := make([]types.Detection, 0, len(requests))
	for _, req := range requests {
		if !req.complete() {
			writeError(w, http.StatusBadRequest, "Missing required fields")
			return
		}
		detections = append(detections, types.Detection{
			NoOfCars:      *req.NoOfCars,
			NoOfEmpty:     *req.NoOfEmpty,
			DetectionDate: *req.DetectionDate,
			ImageSource:   *req.ImageSource,
		})
	}

	created, err := h.detectionService.AddBatch(r.Context(), detections)
	if err != nil {
		h.logger.Error().Err(err).Msg("insert detection batch")
		writeInternalError(w)
		return
	}

	writeJSON(w, http.StatusOK, MessageResponse{
		Message: "Detection data inserted successfully",
		Result:  created,
	})
}

func (h *DetectionHandler) ListDetections(w http.ResponseWriter, r *http.Request) {
	detections, err := h.detectionService.List(r.Context())
	if err != nil {
		h.logger.Error().Err(err).Msg("list detections")
		writeInternalError(w)
		return
	}
	writeJSON(w, http.StatusOK, detections)
}
