package http

import (
	"net/http"

	"income-tax/domain"
	"income-tax/service"
)

type FilingHandler struct {
	service *service.FilingService
}

func NewFilingHandler(service *service.FilingService) *FilingHandler {
	return &FilingHandler{service: service}
}

func (h *FilingHandler) PrepareFiling(w http.ResponseWriter, r *http.Request) {
	var input domain.FilingInput
	if !decodeJSON(w, r, &input) {
		return
	}

	regime, err := service.ParseRegime(string(input.Regime))
	if err != nil {
		writeError(w, r, err)
		return
	}
	input.Regime = regime

	result, err := h.service.Prepare(r.Context(), input)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusOK, result)
}
