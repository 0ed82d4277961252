package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/plategate/apiserver/internal/services"
	"github.com/plategate/apiserver/types"
	"github.com/rs/zerolog"
)

// ProvinceHandler serves the fixed province reference list.
type ProvinceHandler struct {
	provinceService *services.ProvinceService
	logger          zerolog.Logger
}

func NewProvinceHandler(provinceService *services.ProvinceService, logger zerolog.Logger) *ProvinceHandler {
	return &ProvinceHandler{provinceService: provinceService, logger: logger}
}

// ProvinceRouter registers province routes on the given router.
func ProvinceRouter(r chi.Router, provinceService *services.ProvinceService, logger zerolog.Logger) {
	handler := NewProvinceHandler(provinceService, logger)

	r.Get("/province", handler.ListProvinces)
}

type ProvinceListResponse struct {
	Result []types.Province `json:"result"`
}

func (h *ProvinceHandler) ListProvinces(w http.ResponseWriter, r *http.Request) {
	provinces, err := h.provinceService.List(r.Context())
	if err != nil {
		h.logger.Error().Err(err).Msg("list provinces")
		writeInternalError(w)
		return
	}
	writeJSON(w, http.StatusOK, ProvinceListResponse{Result: provinces})
}
