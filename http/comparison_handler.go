package http

import (
	"net/http"

	"income-tax/domain"
	"income-tax/service"
)

type ComparisonHandler struct {
	service *service.ComparisonService
}

func NewComparisonHandler(service *service.ComparisonService) *ComparisonHandler {
	return &ComparisonHandler{service: service}
}

func (h *ComparisonHandler) CompareRegimes(w http.ResponseWriter, r *http.Request) {
	var input domain.ComparisonInput
	if !decodeJSON(w, r, &input) {
		return
	}

	result, err := h.service.CompareRegimes(r.Context(), input)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusOK, result)
}
